package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/andsetyobudi/ban-bengkel/shared/models"
)

type AdminRepository struct {
	db *sql.DB
}

func NewAdminRepository(db *sql.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

func (r *AdminRepository) GetByUsername(ctx context.Context, username string) (*models.Admin, error) {
	query := `
		SELECT id, username, nama, password_hash, created_at
		FROM admin_users
		WHERE username = $1
	`

	var admin models.Admin
	var nama sql.NullString

	err := r.db.QueryRowContext(ctx, query, username).Scan(
		&admin.ID, &admin.Username, &nama, &admin.PasswordHash, &admin.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, models.ErrAdminNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}
	admin.Nama = nama.String

	return &admin, nil
}

// CreateIfMissing inserts the admin unless the username is already taken.
// It reports whether a row was written.
func (r *AdminRepository) CreateIfMissing(ctx context.Context, admin *models.Admin) (bool, error) {
	query := `
		INSERT INTO admin_users (username, nama, password_hash, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (username) DO NOTHING
	`
	result, err := r.db.ExecContext(ctx, query, admin.Username, admin.Nama, admin.PasswordHash)
	if err != nil {
		return false, fmt.Errorf("failed to create admin: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check rows affected: %w", err)
	}
	return rows > 0, nil
}
