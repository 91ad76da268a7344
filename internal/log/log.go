// Package log writes structured JSON events through a process-wide zap
// logger. Request-scoped helpers pull the request id, client address and
// route from the fiber context.
package log

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Options struct {
	Level string // debug, info, warn, error
	File  string // optional rotated log file, in addition to stdout

	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

var (
	mu     sync.RWMutex
	logger = newLogger(zapcore.AddSync(os.Stdout), zapcore.InfoLevel)
)

func newLogger(ws zapcore.WriteSyncer, lvl zapcore.LevelEnabler) *zap.Logger {
	enc := zap.NewProductionEncoderConfig()
	enc.TimeKey = "ts"
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	return zap.New(zapcore.NewCore(zapcore.NewJSONEncoder(enc), ws, lvl))
}

// Init replaces the process logger according to opts.
func Init(opts Options) error {
	lvl := zapcore.InfoLevel
	if opts.Level != "" {
		l, err := zapcore.ParseLevel(opts.Level)
		if err != nil {
			return fmt.Errorf("log level: %w", err)
		}
		lvl = l
	}

	ws := zapcore.AddSync(os.Stdout)
	if opts.File != "" {
		rot := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    orDefault(opts.MaxSizeMB, 64),
			MaxBackups: orDefault(opts.MaxBackups, 7),
			MaxAge:     orDefault(opts.MaxAgeDays, 30),
			Compress:   true,
		}
		ws = zapcore.NewMultiWriteSyncer(ws, zapcore.AddSync(rot))
	}

	mu.Lock()
	logger = newLogger(ws, lvl)
	mu.Unlock()
	zap.ReplaceGlobals(L())
	return nil
}

// SetOutput sends every level to w until the returned restore func runs.
func SetOutput(w io.Writer) (restore func()) {
	mu.Lock()
	old := logger
	logger = newLogger(zapcore.AddSync(w), zapcore.DebugLevel)
	mu.Unlock()
	return func() {
		mu.Lock()
		logger = old
		mu.Unlock()
	}
}

func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

func Sync() { _ = L().Sync() }

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

func write(lvl zapcore.Level, kind string, c *fiber.Ctx, action string, err error, fields map[string]any) {
	ce := L().Check(lvl, action)
	if ce == nil {
		return
	}
	zf := make([]zap.Field, 0, 10)
	zf = append(zf, zap.String("action", action))
	if kind != "" {
		zf = append(zf, zap.String("kind", kind))
	}
	if c != nil {
		zf = append(zf,
			zap.String("ip", c.IP()),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
		)
		if st := c.Response().StatusCode(); st != 0 {
			zf = append(zf, zap.Int("status", st))
		}
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			zf = append(zf, zap.String("req_id", rid))
		}
		if sub, ok := c.Locals("subject").(string); ok && sub != "" {
			zf = append(zf, zap.String("user", sub))
		}
	}
	if err != nil {
		zf = append(zf, zap.Error(err))
	}
	if len(fields) > 0 {
		zf = append(zf, zap.Any("fields", fields))
	}
	ce.Write(zf...)
}

func Info(c *fiber.Ctx, action string, fields map[string]any) {
	write(zapcore.InfoLevel, "", c, action, nil, fields)
}

// Audit records a state change made by the admin.
func Audit(c *fiber.Ctx, action string, fields map[string]any) {
	write(zapcore.InfoLevel, "audit", c, action, nil, fields)
}

// Security records auth failures and gate rejections.
func Security(c *fiber.Ctx, action string, fields map[string]any) {
	write(zapcore.WarnLevel, "security", c, action, nil, fields)
}

func Warn(c *fiber.Ctx, action string, fields map[string]any) {
	write(zapcore.WarnLevel, "", c, action, nil, fields)
}

func Error(c *fiber.Ctx, action string, err error, fields map[string]any) {
	write(zapcore.ErrorLevel, "", c, action, err, fields)
}
