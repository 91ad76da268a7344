package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverSQLite = "sqlite"
	DriverMongo  = "mongo"
)

type Config struct {
	Port        string
	StoreDriver string
	DBDSN       string

	MongoURI          string
	MongoDB           string
	MongoTransactions bool

	AdminEmail        string
	AdminPassword     string
	AdminPasswordHash string

	SessionSecret string
	SessionTTL    time.Duration
	CookieSecure  bool

	LowStockThreshold int
	SeedDemo          bool
	TemplateDir       string
	StaticDir         string

	LogFile        string
	LogLevel       string
	LoginRateLimit int
}

// Load reads the environment, after merging an optional .env file from the
// working directory. Variables already set in the environment win.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:        getEnv("PORT", "8080"),
		StoreDriver: strings.ToLower(getEnv("STORE_DRIVER", DriverSQLite)),
		DBDSN:       getEnv("DB_DSN", "trapbite.db"),

		MongoURI:          getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:           getEnv("MONGO_DB", "trapbite"),
		MongoTransactions: getBool("MONGO_TRANSACTIONS", false),

		AdminEmail:        strings.TrimSpace(os.Getenv("ADMIN_EMAIL")),
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),

		SessionSecret: os.Getenv("SESSION_SECRET"),
		SessionTTL:    time.Duration(getInt("SESSION_TTL_HOURS", 7*24)) * time.Hour,
		CookieSecure:  getBool("COOKIE_SECURE", false),

		LowStockThreshold: getInt("LOW_STOCK_THRESHOLD", 10),
		SeedDemo:          getBool("SEED_DEMO", false),
		TemplateDir:       getEnv("TEMPLATE_DIR", "./web/templates"),
		StaticDir:         getEnv("STATIC_DIR", "./web/static"),

		LogFile:        os.Getenv("LOG_FILE"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LoginRateLimit: getInt("LOGIN_RATE_LIMIT", 20),
	}
}

// Validate reports every setting the server cannot start without.
func (c Config) Validate() error {
	var errs []error
	switch c.StoreDriver {
	case DriverSQLite, DriverMongo:
	default:
		errs = append(errs, fmt.Errorf("STORE_DRIVER %q: want %s or %s", c.StoreDriver, DriverSQLite, DriverMongo))
	}
	if c.AdminEmail == "" {
		errs = append(errs, errors.New("ADMIN_EMAIL is required"))
	}
	if c.AdminPassword == "" && c.AdminPasswordHash == "" {
		errs = append(errs, errors.New("ADMIN_PASSWORD or ADMIN_PASSWORD_HASH is required"))
	}
	if len(c.SessionSecret) < 16 {
		errs = append(errs, errors.New("SESSION_SECRET must be at least 16 characters"))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL_HOURS must be positive"))
	}
	return errors.Join(errs...)
}

// Fields is the loggable view of the config; secrets are left out.
func (c Config) Fields() map[string]any {
	return map[string]any{
		"port":         c.Port,
		"store_driver": c.StoreDriver,
		"db_dsn":       c.DBDSN,
		"mongo_db":     c.MongoDB,
		"admin_email":  c.AdminEmail,
		"session_ttl":  c.SessionTTL.String(),
		"seed_demo":    c.SeedDemo,
		"log_file":     c.LogFile,
	}
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return def
	}
	return v
}

func getBool(key string, def bool) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return def
	}
	return v
}
