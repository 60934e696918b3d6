package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/andsetyobudi/ban-bengkel/shared/models"
	sharedredis "github.com/andsetyobudi/ban-bengkel/shared/redis"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const transaksiViewKeyPrefix = "transaksi:view:"

// TransaksiReadRepository handles all read operations for transaksi.
// Single views are served from Redis first, falling back to PostgreSQL.
type TransaksiReadRepository struct {
	db    *sql.DB
	cache *sharedredis.ViewCache[models.TransaksiView]
}

func NewTransaksiReadRepository(db *sql.DB, redisClient *goredis.Client) *TransaksiReadRepository {
	return &TransaksiReadRepository{
		db:    db,
		cache: sharedredis.NewViewCache[models.TransaksiView](redisClient, sharedredis.DefaultViewTTL),
	}
}

func transaksiViewKey(id int64) string {
	return fmt.Sprintf("%s%d", transaksiViewKeyPrefix, id)
}

// GetByID returns the full view of a transaksi, including details and payments.
func (r *TransaksiReadRepository) GetByID(ctx context.Context, id int64) (*models.TransaksiView, error) {
	if view, ok := r.cache.Get(ctx, transaksiViewKey(id)); ok {
		return view, nil
	}

	query := `
		SELECT id, kode_transaksi, nama_pelanggan, no_telepon, no_polisi,
		       total, status, catatan, created_at, updated_at
		FROM transaksi
		WHERE id = $1
	`
	var view models.TransaksiView
	var noTelepon, noPolisi, catatan sql.NullString

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&view.ID, &view.KodeTransaksi, &view.NamaPelanggan, &noTelepon, &noPolisi,
		&view.Total, &view.Status, &catatan, &view.CreatedAt, &view.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, models.ErrTransaksiNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaksi: %w", err)
	}
	view.NoTelepon = noTelepon.String
	view.NoPolisi = noPolisi.String
	view.Catatan = catatan.String

	if view.Details, err = r.listDetails(ctx, id); err != nil {
		return nil, err
	}
	if view.Pembayaran, err = r.listPembayaran(ctx, id); err != nil {
		return nil, err
	}
	view.TotalDibayar = decimal.Zero
	for _, p := range view.Pembayaran {
		view.TotalDibayar = view.TotalDibayar.Add(p.Jumlah)
	}

	r.cache.SetIfValid(ctx, transaksiViewKey(id), &view)
	return &view, nil
}

func (r *TransaksiReadRepository) listDetails(ctx context.Context, transaksiID int64) ([]models.TransaksiDetail, error) {
	query := `
		SELECT id, transaksi_id, nama_item, jumlah, harga_satuan, subtotal
		FROM transaksi_detail
		WHERE transaksi_id = $1
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query, transaksiID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transaksi detail: %w", err)
	}
	defer rows.Close()

	details := []models.TransaksiDetail{}
	for rows.Next() {
		var d models.TransaksiDetail
		if err := rows.Scan(&d.ID, &d.TransaksiID, &d.NamaItem, &d.Jumlah, &d.HargaSatuan, &d.Subtotal); err != nil {
			return nil, fmt.Errorf("failed to scan transaksi detail: %w", err)
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

func (r *TransaksiReadRepository) listPembayaran(ctx context.Context, transaksiID int64) ([]models.TransaksiPembayaran, error) {
	query := `
		SELECT id, transaksi_id, metode, jumlah, dibayar_pada
		FROM transaksi_pembayaran
		WHERE transaksi_id = $1
		ORDER BY dibayar_pada, id
	`
	rows, err := r.db.QueryContext(ctx, query, transaksiID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transaksi pembayaran: %w", err)
	}
	defer rows.Close()

	payments := []models.TransaksiPembayaran{}
	for rows.Next() {
		var p models.TransaksiPembayaran
		if err := rows.Scan(&p.ID, &p.TransaksiID, &p.Metode, &p.Jumlah, &p.DibayarPada); err != nil {
			return nil, fmt.Errorf("failed to scan transaksi pembayaran: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// List returns one page of summaries, newest first. limit <= 0 returns every row.
func (r *TransaksiReadRepository) List(ctx context.Context, status string, limit, offset int) (*models.TransaksiPage, error) {
	where, args := statusFilter(status)

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transaksi t`+where, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count transaksi: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(`
		SELECT t.id, t.kode_transaksi, t.nama_pelanggan, t.no_polisi, t.total, t.status, t.created_at,
		       (SELECT COUNT(*) FROM transaksi_detail d WHERE d.transaksi_id = t.id),
		       (SELECT COUNT(*) FROM transaksi_pembayaran p WHERE p.transaksi_id = t.id)
		FROM transaksi t`)
	sb.WriteString(where)
	sb.WriteString(` ORDER BY t.created_at DESC, t.id DESC`)
	if limit > 0 {
		args = append(args, limit, offset)
		fmt.Fprintf(&sb, ` LIMIT $%d OFFSET $%d`, len(args)-1, len(args))
	}

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transaksi: %w", err)
	}
	defer rows.Close()

	page := &models.TransaksiPage{Items: []models.TransaksiSummary{}, TotalRows: total}
	for rows.Next() {
		var s models.TransaksiSummary
		var noPolisi sql.NullString
		if err := rows.Scan(
			&s.ID, &s.KodeTransaksi, &s.NamaPelanggan, &noPolisi, &s.Total, &s.Status, &s.CreatedAt,
			&s.JumlahItem, &s.JumlahBayar,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaksi: %w", err)
		}
		s.NoPolisi = noPolisi.String
		page.Items = append(page.Items, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transaksi: %w", err)
	}
	return page, nil
}

// CacheTransaksiView is called by the command service right after a create.
func (r *TransaksiReadRepository) CacheTransaksiView(ctx context.Context, view *models.TransaksiView) {
	r.cache.Set(ctx, transaksiViewKey(view.ID), view)
}

// InvalidateTransaksiView drops the cached view and keeps concurrent readers
// from caching it again.
func (r *TransaksiReadRepository) InvalidateTransaksiView(ctx context.Context, id int64) {
	r.cache.Invalidate(ctx, transaksiViewKey(id))
}

func statusFilter(status string) (string, []any) {
	if status == "" {
		return "", nil
	}
	return ` WHERE t.status = $1`, []any{status}
}
