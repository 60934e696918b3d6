package command

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/andsetyobudi/ban-bengkel/shared/cqrs"
	"github.com/andsetyobudi/ban-bengkel/shared/events"
	"github.com/andsetyobudi/ban-bengkel/shared/models"
	"github.com/andsetyobudi/ban-bengkel/shared/utils"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const maxKodeAttempts = 3

// TransaksiWriter is the write store. DeleteCascade must remove the
// transaksi and all of its details and payments atomically.
type TransaksiWriter interface {
	Create(ctx context.Context, t *models.Transaksi) error
	GetByID(ctx context.Context, id int64) (*models.Transaksi, error)
	DeleteCascade(ctx context.Context, id int64) error
}

// ViewCache keeps the Redis read model in step with writes.
type ViewCache interface {
	CacheTransaksiView(ctx context.Context, view *models.TransaksiView)
	InvalidateTransaksiView(ctx context.Context, id int64)
}

type EventPublisher interface {
	Publish(ctx context.Context, stream, eventType string, data any) error
}

// TransaksiCommandService creates and deletes transaksi and keeps the read
// model and the event stream in sync.
type TransaksiCommandService struct {
	writeRepo TransaksiWriter
	views     ViewCache
	publisher EventPublisher
	now       func() time.Time
}

func NewTransaksiCommandService(writeRepo TransaksiWriter, views ViewCache, publisher EventPublisher) *TransaksiCommandService {
	return &TransaksiCommandService{
		writeRepo: writeRepo,
		views:     views,
		publisher: publisher,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// ParseTransaksiID accepts base-10 integers only. "12.5", "" and "abc" are
// rejected with ErrInvalidTransaksiID.
func ParseTransaksiID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, models.ErrInvalidTransaksiID
	}
	return id, nil
}

func (s *TransaksiCommandService) CreateTransaksi(ctx context.Context, cmd cqrs.CreateTransaksiCommand) (*models.Transaksi, error) {
	if err := validateCreate(cmd); err != nil {
		return nil, err
	}

	now := s.now()
	transaksi := &models.Transaksi{
		NamaPelanggan: cmd.NamaPelanggan,
		NoTelepon:     cmd.NoTelepon,
		NoPolisi:      cmd.NoPolisi,
		Catatan:       cmd.Catatan,
		Total:         decimal.Zero,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, item := range cmd.Details {
		subtotal := item.HargaSatuan.Mul(decimal.NewFromInt(int64(item.Jumlah)))
		transaksi.Details = append(transaksi.Details, models.TransaksiDetail{
			NamaItem:    item.NamaItem,
			Jumlah:      item.Jumlah,
			HargaSatuan: item.HargaSatuan,
			Subtotal:    subtotal,
		})
		transaksi.Total = transaksi.Total.Add(subtotal)
	}
	dibayar := decimal.Zero
	for _, p := range cmd.Pembayaran {
		transaksi.Pembayaran = append(transaksi.Pembayaran, models.TransaksiPembayaran{
			Metode:      p.Metode,
			Jumlah:      p.Jumlah,
			DibayarPada: now,
		})
		dibayar = dibayar.Add(p.Jumlah)
	}
	transaksi.Status = models.StatusBelumLunas
	if dibayar.GreaterThanOrEqual(transaksi.Total) {
		transaksi.Status = models.StatusLunas
	}

	var err error
	for attempt := 1; attempt <= maxKodeAttempts; attempt++ {
		transaksi.KodeTransaksi = utils.GenerateKodeTransaksi(now)
		err = s.writeRepo.Create(ctx, transaksi)
		if !errors.Is(err, models.ErrKodeTransaksiExists) {
			break
		}
		log.Warn().Str("kode", transaksi.KodeTransaksi).Int("attempt", attempt).Msg("kode transaksi collision, regenerating")
	}
	if err != nil {
		return nil, err
	}

	s.views.CacheTransaksiView(ctx, transaksiToView(transaksi, dibayar))
	if err := s.publisher.Publish(ctx, events.TransaksiEventsStream, events.TransaksiCreated, events.TransaksiCreatedEvent{
		TransaksiID:   transaksi.ID,
		KodeTransaksi: transaksi.KodeTransaksi,
		NamaPelanggan: transaksi.NamaPelanggan,
		Total:         transaksi.Total.StringFixed(2),
		Status:        transaksi.Status,
		JumlahItem:    len(transaksi.Details),
	}); err != nil {
		log.Error().Err(err).Int64("transaksi_id", transaksi.ID).Msg("failed to publish transaksi.created event")
	}
	return transaksi, nil
}

// DeleteTransaksi removes a transaksi with all its details and payments.
// It returns ErrInvalidTransaksiID before touching storage when the id is
// malformed and ErrTransaksiNotFound when nothing matches.
func (s *TransaksiCommandService) DeleteTransaksi(ctx context.Context, cmd cqrs.DeleteTransaksiCommand) error {
	id, err := ParseTransaksiID(cmd.TransaksiID)
	if err != nil {
		return err
	}

	transaksi, err := s.writeRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	// Invalidate around the delete; a reader that loaded the row before the
	// commit must not write it back.
	s.views.InvalidateTransaksiView(ctx, id)
	if err := s.writeRepo.DeleteCascade(ctx, id); err != nil {
		return err
	}
	s.views.InvalidateTransaksiView(ctx, id)
	if err := s.publisher.Publish(ctx, events.TransaksiEventsStream, events.TransaksiDeleted, events.TransaksiDeletedEvent{
		TransaksiID:   id,
		KodeTransaksi: transaksi.KodeTransaksi,
		Total:         transaksi.Total.StringFixed(2),
		DeletedBy:     cmd.DeletedBy,
	}); err != nil {
		log.Error().Err(err).Int64("transaksi_id", id).Msg("failed to publish transaksi.deleted event")
	}
	return nil
}

func validateCreate(cmd cqrs.CreateTransaksiCommand) error {
	if cmd.NamaPelanggan == "" {
		return fmt.Errorf("%w: nama pelanggan wajib diisi", models.ErrInvalidTransaksi)
	}
	if len(cmd.Details) == 0 {
		return fmt.Errorf("%w: minimal satu item", models.ErrInvalidTransaksi)
	}
	for i, item := range cmd.Details {
		if item.Jumlah <= 0 {
			return fmt.Errorf("%w: details[%d].jumlah harus lebih dari 0", models.ErrInvalidTransaksi, i)
		}
		if item.HargaSatuan.IsNegative() {
			return fmt.Errorf("%w: details[%d].harga_satuan tidak boleh negatif", models.ErrInvalidTransaksi, i)
		}
	}
	for i, p := range cmd.Pembayaran {
		if !p.Jumlah.IsPositive() {
			return fmt.Errorf("%w: pembayaran[%d].jumlah harus lebih dari 0", models.ErrInvalidTransaksi, i)
		}
	}
	return nil
}

// transaksiToView converts the write model to the cached read view.
func transaksiToView(t *models.Transaksi, dibayar decimal.Decimal) *models.TransaksiView {
	return &models.TransaksiView{
		ID:            t.ID,
		KodeTransaksi: t.KodeTransaksi,
		NamaPelanggan: t.NamaPelanggan,
		NoTelepon:     t.NoTelepon,
		NoPolisi:      t.NoPolisi,
		Total:         t.Total,
		TotalDibayar:  dibayar,
		Status:        t.Status,
		Catatan:       t.Catatan,
		Details:       t.Details,
		Pembayaran:    t.Pembayaran,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}
