package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	html "github.com/gofiber/template/html/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"trapbite/internal/config"
	"trapbite/internal/http/handlers"
	applog "trapbite/internal/log"
	"trapbite/internal/mongostore"
	"trapbite/internal/repos"
	"trapbite/internal/services"
	"trapbite/internal/session"
	"trapbite/internal/store"
)

func main() {
	if err := run(); err != nil {
		applog.L().Error("startup failed", zap.Error(err))
		applog.Sync()
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()
	if err := applog.Init(applog.Options{Level: cfg.LogLevel, File: cfg.LogFile}); err != nil {
		return err
	}
	defer applog.Sync()
	applog.Info(nil, "config.loaded", cfg.Fields())
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()
	if !st.Transactional() {
		applog.Warn(nil, "store.no_transactions", map[string]any{"driver": cfg.StoreDriver})
	}

	if cfg.SeedDemo {
		n, err := store.SeedDemo(ctx, st)
		if err != nil {
			return err
		}
		applog.Info(nil, "store.seeded", map[string]any{"products": n})
	}

	// Auth wiring
	creds, err := services.NewAdminCredentials(cfg.AdminEmail, cfg.AdminPassword, cfg.AdminPasswordHash, bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	authSvc := services.NewAuthService(creds, session.NewJWTIssuer(cfg.SessionSecret, cfg.SessionTTL))

	// Templates & app
	engine := html.New(cfg.TemplateDir, ".html")
	app := handlers.NewApp(st, authSvc, cfg, engine)

	errc := make(chan error, 1)
	go func() {
		applog.Info(nil, "server.start", map[string]any{"port": cfg.Port})
		errc <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	applog.Info(nil, "server.shutdown", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return app.ShutdownWithContext(shutdownCtx)
}

func openStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		return mongostore.Open(ctx, mongostore.Options{
			URI:          cfg.MongoURI,
			Database:     cfg.MongoDB,
			Transactions: cfg.MongoTransactions,
		})
	default:
		db, err := repos.OpenDB(cfg.DBDSN)
		if err != nil {
			return nil, fmt.Errorf("open sqlite %s: %w", cfg.DBDSN, err)
		}
		return repos.NewStore(db), nil
	}
}
