package database

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"campaign/backend/internal/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrNotConfigured is returned when the handle has no DSN to connect with.
var ErrNotConfigured = errors.New("database: store url is not configured")

// Options describes how the store connection is opened on first use.
type Options struct {
	DSN             string
	AutoMigrate     bool
	InstallTriggers bool
	Logger          *zap.Logger
}

// Handle is the shared, read-mostly client handle for the hosted store.
// The connection is opened on first use; concurrent first callers wait for a
// single initialization. A failed initialization is not remembered, so the
// next call tries again.
type Handle struct {
	opts Options

	db      atomic.Pointer[gorm.DB]
	mu      sync.Mutex
	connect func() (*gorm.DB, error)
	dial    func() (*gorm.DB, error)
}

// New returns a lazy handle. No connection is made until DB is called.
func New(opts Options) *Handle {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	h := &Handle{opts: opts}
	h.connect = h.open
	h.dial = h.dialPostgres
	return h
}

// FromDB wraps an already opened connection.
func FromDB(db *gorm.DB) *Handle {
	h := &Handle{opts: Options{Logger: zap.NewNop()}}
	h.db.Store(db)
	return h
}

// DB returns the shared connection bound to ctx, opening it if needed.
func (h *Handle) DB(ctx context.Context) (*gorm.DB, error) {
	if db := h.db.Load(); db != nil {
		return db.WithContext(ctx), nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if db := h.db.Load(); db != nil {
		return db.WithContext(ctx), nil
	}

	db, err := h.connect()
	if err != nil {
		return nil, err
	}
	h.db.Store(db)
	return db.WithContext(ctx), nil
}

// Close releases the underlying pool if it was ever opened.
func (h *Handle) Close() error {
	db := h.db.Load()
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (h *Handle) open() (*gorm.DB, error) {
	if h.opts.DSN == "" {
		return nil, ErrNotConfigured
	}

	db, err := h.dial()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	h.opts.Logger.Info("database connection established")

	if err := h.prepare(db); err != nil {
		// the next call dials again, so this pool must not linger
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
		return nil, err
	}
	return db, nil
}

func (h *Handle) dialPostgres() (*gorm.DB, error) {
	// gorm writes through zap at warn level
	gormLogger := logger.New(
		zap.NewStdLog(h.opts.Logger.Named("gorm")),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond, // Slow SQL threshold
			LogLevel:                  logger.Warn,            // Log level
			IgnoreRecordNotFoundError: true,                   // Ignore ErrRecordNotFound error for logger
			Colorful:                  false,
		},
	)

	return gorm.Open(postgres.Open(h.opts.DSN), &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
}

// prepare runs the optional schema steps on a freshly dialed connection.
func (h *Handle) prepare(db *gorm.DB) error {
	l := h.opts.Logger

	if h.opts.AutoMigrate {
		if err := Migrate(db); err != nil {
			return err
		}
		l.Info("database migrated successfully")
	}

	if h.opts.InstallTriggers {
		if err := InstallChangeTriggers(db); err != nil {
			return err
		}
		l.Info("change notification triggers installed", zap.String("channel", ChangeChannel))
	}
	return nil
}

// Migrate creates or updates the three tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}, &models.Team{}, &models.Registration{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
