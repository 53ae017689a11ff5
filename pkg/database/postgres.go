package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Eursukkul/event-service/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var ErrMissingDSN = errors.New("DATABASE_URL is missing")

// Handle is the process-wide database connection. The pool is opened on the first
// call to DB and reused afterwards; a failed attempt is not cached, so the next
// caller tries again.
type Handle struct {
	dsn  string
	open func(ctx context.Context, dsn string) (*gorm.DB, error)

	mu sync.Mutex
	db *gorm.DB
}

func NewHandle(dsn string) *Handle {
	return &Handle{dsn: dsn, open: openPostgres}
}

// Static wraps an already open connection, e.g. a test database.
func Static(db *gorm.DB) *Handle {
	return &Handle{db: db}
}

func (h *Handle) DB(ctx context.Context) (*gorm.DB, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.db != nil {
		return h.db, nil
	}
	if h.dsn == "" {
		return nil, ErrMissingDSN
	}

	db, err := h.open(ctx, h.dsn)
	if err != nil {
		return nil, err
	}
	h.db = db
	log.Printf("[Database] connected")
	return h.db, nil
}

func (h *Handle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.db == nil {
		return nil
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}
	h.db = nil
	return sqlDB.Close()
}

func openPostgres(ctx context.Context, dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Warn),
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(1 * time.Minute)

	if err := Migrate(db.WithContext(ctx)); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Category{}, &models.Event{}, &models.Order{}, &models.Asset{}); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}
