package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Token is the persisted row. Saves append; Load reads the newest row, so
// the table doubles as a login history.
type Token struct {
	ID        uint   `gorm:"primaryKey"`
	Value     string `gorm:"size:8192"`
	CreatedAt time.Time
}

// DBStore keeps tokens in a gorm-managed table.
type DBStore struct{ db *gorm.DB }

// NewDBStore wraps an existing gorm handle and migrates the token table.
func NewDBStore(db *gorm.DB) (*DBStore, error) {
	if err := db.AutoMigrate(&Token{}); err != nil {
		return nil, fmt.Errorf("migrate tokens: %w", err)
	}
	return &DBStore{db: db}, nil
}

// OpenDB opens a database by driver name, "sqlite" or "mysql", and returns
// a store on it. For sqlite the dsn is the database file path.
func OpenDB(driver, dsn string) (*DBStore, error) {
	var dial gorm.Dialector
	switch driver {
	case "sqlite":
		dial = sqlite.Open(dsn)
	case "mysql":
		dial = mysql.Open(dsn)
	default:
		return nil, fmt.Errorf("unknown token store driver %q", driver)
	}

	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open %s token store: %w", driver, err)
	}
	return NewDBStore(db)
}

func (s *DBStore) Save(ctx context.Context, token string) error {
	return s.db.WithContext(ctx).Create(&Token{Value: token}).Error
}

func (s *DBStore) Load(ctx context.Context) (string, error) {
	var row Token
	err := s.db.WithContext(ctx).Order("id DESC").First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNoToken
	}
	if err != nil {
		return "", err
	}
	if row.Value == "" {
		return "", ErrNoToken
	}
	return row.Value, nil
}

func (s *DBStore) Clear(ctx context.Context) error {
	return s.db.WithContext(ctx).Where("1 = 1").Delete(&Token{}).Error
}
