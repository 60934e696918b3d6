package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/andsetyobudi/ban-bengkel/shared/models"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB bundles the raw pool used by the read repositories and the GORM handle
// used by the write side. Both share the same lib/pq connection pool.
type DB struct {
	SQL  *sql.DB
	Gorm *gorm.DB
}

func Open(ctx context.Context, dsn string) (*DB, error) {
	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to initialise gorm: %w", err)
	}

	return &DB{SQL: sqlDB, Gorm: gormDB}, nil
}

// Migrate creates or updates the schema, including the ON DELETE CASCADE
// foreign keys from transaksi_detail and transaksi_pembayaran.
func (d *DB) Migrate() error {
	if err := d.Gorm.AutoMigrate(
		&models.Transaksi{},
		&models.TransaksiDetail{},
		&models.TransaksiPembayaran{},
		&models.Admin{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

func (d *DB) Close() error {
	return d.SQL.Close()
}
