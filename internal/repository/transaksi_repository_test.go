package repository

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/andsetyobudi/ban-bengkel/shared/database"
	"github.com/andsetyobudi/ban-bengkel/shared/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// openTestDB connects to TEST_DATABASE_URL and migrates the schema. The
// tests are skipped when it is not set.
func openTestDB(t *testing.T) *database.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping PostgreSQL integration test")
	}
	db, err := database.Open(context.Background(), dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.Migrate(); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestTransaksi(kode string, details, payments int) *models.Transaksi {
	t := &models.Transaksi{
		KodeTransaksi: kode,
		NamaPelanggan: "Pak Slamet",
		NoPolisi:      "B 1234 XYZ",
		Total:         decimal.Zero,
		Status:        models.StatusBelumLunas,
	}
	for i := 0; i < details; i++ {
		harga := decimal.NewFromInt(425000)
		t.Details = append(t.Details, models.TransaksiDetail{
			NamaItem:    "Ban 185/65 R15",
			Jumlah:      1,
			HargaSatuan: harga,
			Subtotal:    harga,
		})
		t.Total = t.Total.Add(harga)
	}
	for i := 0; i < payments; i++ {
		t.Pembayaran = append(t.Pembayaran, models.TransaksiPembayaran{
			Metode:      "tunai",
			Jumlah:      decimal.NewFromInt(100000),
			DibayarPada: time.Now().UTC(),
		})
	}
	return t
}

func countRows(t *testing.T, db *database.DB, table string, transaksiID int64) int {
	t.Helper()
	var n int
	if err := db.SQL.QueryRow(`SELECT COUNT(*) FROM `+table+` WHERE transaksi_id = $1`, transaksiID).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

func TestDeleteCascadeRemovesDependents(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	writeRepo := NewTransaksiWriteRepository(db.Gorm)
	readRepo := NewTransaksiReadRepository(db.SQL, nil)

	trx := newTestTransaksi("TRX-TEST-"+time.Now().Format("150405.000000"), 2, 1)
	if err := writeRepo.Create(ctx, trx); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got := countRows(t, db, "transaksi_detail", trx.ID); got != 2 {
		t.Fatalf("expected 2 detail rows, got %d", got)
	}
	if got := countRows(t, db, "transaksi_pembayaran", trx.ID); got != 1 {
		t.Fatalf("expected 1 pembayaran row, got %d", got)
	}

	view, err := readRepo.GetByID(ctx, trx.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(view.Details) != 2 || len(view.Pembayaran) != 1 {
		t.Errorf("unexpected view: %d details, %d pembayaran", len(view.Details), len(view.Pembayaran))
	}

	if err := writeRepo.DeleteCascade(ctx, trx.ID); err != nil {
		t.Fatalf("DeleteCascade: %v", err)
	}

	if _, err := writeRepo.GetByID(ctx, trx.ID); !errors.Is(err, models.ErrTransaksiNotFound) {
		t.Errorf("expected ErrTransaksiNotFound after delete, got %v", err)
	}
	if _, err := readRepo.GetByID(ctx, trx.ID); !errors.Is(err, models.ErrTransaksiNotFound) {
		t.Errorf("expected read side not found after delete, got %v", err)
	}
	if got := countRows(t, db, "transaksi_detail", trx.ID); got != 0 {
		t.Errorf("expected 0 detail rows after delete, got %d", got)
	}
	if got := countRows(t, db, "transaksi_pembayaran", trx.ID); got != 0 {
		t.Errorf("expected 0 pembayaran rows after delete, got %d", got)
	}

	if err := writeRepo.DeleteCascade(ctx, trx.ID); !errors.Is(err, models.ErrTransaksiNotFound) {
		t.Errorf("expected second delete to report not found, got %v", err)
	}
}

func TestDeleteCascadeRollsBackOnFailure(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	writeRepo := NewTransaksiWriteRepository(db.Gorm)

	trx := newTestTransaksi("TRX-RBK-"+time.Now().Format("150405.000000"), 2, 2)
	if err := writeRepo.Create(ctx, trx); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Fail the parent delete after the dependents are already gone inside
	// the transaction.
	injected := errors.New("injected parent delete failure")
	err := db.Gorm.Callback().Delete().Before("gorm:delete").Register("test:fail_parent_delete", func(tx *gorm.DB) {
		if tx.Statement.Table == (models.Transaksi{}).TableName() {
			_ = tx.AddError(injected)
		}
	})
	if err != nil {
		t.Fatalf("register callback: %v", err)
	}

	if err := writeRepo.DeleteCascade(ctx, trx.ID); !errors.Is(err, injected) {
		t.Fatalf("expected injected failure, got %v", err)
	}

	if err := db.Gorm.Callback().Delete().Remove("test:fail_parent_delete"); err != nil {
		t.Fatalf("remove callback: %v", err)
	}
	t.Cleanup(func() { _ = writeRepo.DeleteCascade(ctx, trx.ID) })

	if _, err := writeRepo.GetByID(ctx, trx.ID); err != nil {
		t.Errorf("expected transaksi to survive rollback, got %v", err)
	}
	if got := countRows(t, db, "transaksi_detail", trx.ID); got != 2 {
		t.Errorf("expected 2 detail rows after rollback, got %d", got)
	}
	if got := countRows(t, db, "transaksi_pembayaran", trx.ID); got != 2 {
		t.Errorf("expected 2 pembayaran rows after rollback, got %d", got)
	}
}

func TestCreateDuplicateKode(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	writeRepo := NewTransaksiWriteRepository(db.Gorm)

	kode := "TRX-DUP-" + time.Now().Format("150405.000000")
	first := newTestTransaksi(kode, 1, 0)
	if err := writeRepo.Create(ctx, first); err != nil {
		t.Fatalf("Create: %v", err)
	}
	t.Cleanup(func() { _ = writeRepo.DeleteCascade(ctx, first.ID) })

	if err := writeRepo.Create(ctx, newTestTransaksi(kode, 1, 0)); !errors.Is(err, models.ErrKodeTransaksiExists) {
		t.Errorf("expected ErrKodeTransaksiExists, got %v", err)
	}
}

func TestListFiltersByStatus(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	writeRepo := NewTransaksiWriteRepository(db.Gorm)
	readRepo := NewTransaksiReadRepository(db.SQL, nil)

	lunas := newTestTransaksi("TRX-LNS-"+time.Now().Format("150405.000000"), 1, 1)
	lunas.Status = models.StatusLunas
	if err := writeRepo.Create(ctx, lunas); err != nil {
		t.Fatalf("Create: %v", err)
	}
	t.Cleanup(func() { _ = writeRepo.DeleteCascade(ctx, lunas.ID) })

	page, err := readRepo.List(ctx, models.StatusLunas, 100, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	found := false
	for _, s := range page.Items {
		if s.Status != models.StatusLunas {
			t.Errorf("unexpected status %s in filtered list", s.Status)
		}
		if s.ID == lunas.ID {
			found = true
			if s.JumlahItem != 1 || s.JumlahBayar != 1 {
				t.Errorf("unexpected counts: %+v", s)
			}
		}
	}
	if !found {
		t.Error("created transaksi missing from list")
	}
	if page.TotalRows < int64(len(page.Items)) {
		t.Errorf("TotalRows %d smaller than page size %d", page.TotalRows, len(page.Items))
	}
}
