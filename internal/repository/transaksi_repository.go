package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/andsetyobudi/ban-bengkel/shared/models"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const pqUniqueViolation = "23505"

// TransaksiWriteRepository handles all state-mutating operations for
// transaksi. It operates exclusively against the PostgreSQL write store.
type TransaksiWriteRepository struct {
	db *gorm.DB
}

func NewTransaksiWriteRepository(db *gorm.DB) *TransaksiWriteRepository {
	return &TransaksiWriteRepository{db: db}
}

// Create inserts the transaksi together with its Details and Pembayaran in
// a single database transaction. IDs are written back into t.
func (r *TransaksiWriteRepository) Create(ctx context.Context, t *models.Transaksi) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(t).Error
	})
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return models.ErrKodeTransaksiExists
		}
		return fmt.Errorf("failed to create transaksi: %w", err)
	}
	return nil
}

func (r *TransaksiWriteRepository) GetByID(ctx context.Context, id int64) (*models.Transaksi, error) {
	var t models.Transaksi
	err := r.db.WithContext(ctx).First(&t, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrTransaksiNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaksi: %w", err)
	}
	return &t, nil
}

// DeleteCascade removes the transaksi and every detail and payment that
// references it. Either all rows go or none do. The parent row is locked
// first so concurrent deletes of the same id serialise; the loser sees
// ErrTransaksiNotFound.
func (r *TransaksiWriteRepository) DeleteCascade(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var locked models.Transaksi
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Select("id").First(&locked, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrTransaksiNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to lock transaksi: %w", err)
		}

		if err := tx.Where("transaksi_id = ?", id).Delete(&models.TransaksiPembayaran{}).Error; err != nil {
			return fmt.Errorf("failed to delete transaksi pembayaran: %w", err)
		}
		if err := tx.Where("transaksi_id = ?", id).Delete(&models.TransaksiDetail{}).Error; err != nil {
			return fmt.Errorf("failed to delete transaksi detail: %w", err)
		}

		result := tx.Delete(&models.Transaksi{}, id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete transaksi: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return models.ErrTransaksiNotFound
		}
		return nil
	})
}
