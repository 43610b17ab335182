package tokenstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

const tokenKey = "token"

type ClientState struct {
	Key       string    `gorm:"primaryKey;size:64"`
	Value     string    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (ClientState) TableName() string {
	return "client_state"
}

// GormStore keeps the token in a single row of the client_state table.
type GormStore struct {
	DB *gorm.DB
}

func isPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

func configurePool(sqlDB *sql.DB, postgresDSN bool) {
	const (
		maxOpenConns    = 5
		maxIdleConns    = 2
		connMaxLifetime = 30 * time.Minute
		connMaxIdleTime = 5 * time.Minute
	)

	if !postgresDSN {
		// sqlite serializes writers anyway; one connection also keeps ":memory:" databases shared.
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		return
	}
	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)
}

// Open connects to a postgres DSN or, for anything else, a sqlite file path.
func Open(ctx context.Context, dsn string) (*GormStore, error) {
	if dsn == "" {
		return nil, errors.New("state DSN is empty")
	}

	pg := isPostgres(dsn)
	var dialector gorm.Dialector
	if pg {
		dialector = postgres.Open(dsn)
	} else {
		dialector = sqlite.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("open state db: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	configurePool(sqlDB, pg)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("ping state db: %w", err)
	}

	return New(db)
}

// New wraps an existing connection and migrates the client_state table.
func New(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&ClientState{}); err != nil {
		return nil, fmt.Errorf("migrate client_state: %w", err)
	}
	return &GormStore{DB: db}, nil
}

func (s *GormStore) Load(ctx context.Context) (string, error) {
	var row ClientState
	err := s.DB.WithContext(ctx).Where(&ClientState{Key: tokenKey}).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load token: %w", err)
	}
	return row.Value, nil
}

func (s *GormStore) Save(ctx context.Context, token string) error {
	row := ClientState{Key: tokenKey, Value: token}
	err := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

func (s *GormStore) Delete(ctx context.Context) error {
	if err := s.DB.WithContext(ctx).Where(&ClientState{Key: tokenKey}).Delete(&ClientState{}).Error; err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}

func (s *GormStore) Close() error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
