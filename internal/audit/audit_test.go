package audit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/andsetyobudi/ban-bengkel/shared/events"
)

type fakeStore struct {
	saved []Log
	err   error
}

func (f *fakeStore) Save(ctx context.Context, entry Log) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, entry)
	return nil
}

// streamEvent mimics an event after the Redis round trip, where Data is a map.
func streamEvent(eventType string, data map[string]any) events.Event {
	return events.Event{
		Type:      eventType,
		Timestamp: time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC),
		Data:      data,
	}
}

func TestHandlerSavesDeletedEvent(t *testing.T) {
	store := &fakeStore{}
	h := Handler(store)

	err := h(context.Background(), streamEvent(events.TransaksiDeleted, map[string]any{
		"transaksiId":   float64(42),
		"kodeTransaksi": "TRX-20261019-ABCDEF",
		"total":         "1375000.00",
		"deletedBy":     "budi",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.saved) != 1 {
		t.Fatalf("expected 1 saved log, got %d", len(store.saved))
	}
	got := store.saved[0]
	if got.EventType != events.TransaksiDeleted || got.TransaksiID != 42 || got.Actor != "budi" || got.Total != "1375000.00" {
		t.Errorf("unexpected audit log: %+v", got)
	}
	if !got.OccurredAt.Equal(time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)) {
		t.Errorf("expected event timestamp to be kept, got %s", got.OccurredAt)
	}
}

func TestHandlerSavesCreatedEvent(t *testing.T) {
	store := &fakeStore{}

	err := Handler(store)(context.Background(), streamEvent(events.TransaksiCreated, map[string]any{
		"transaksiId":   float64(7),
		"kodeTransaksi": "TRX-20261019-GHJKLM",
		"namaPelanggan": "Bu Sari",
		"total":         "75000.00",
		"status":        "belum_lunas",
		"jumlahItem":    float64(1),
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := store.saved[0]
	if got.NamaPelanggan != "Bu Sari" || got.Status != "belum_lunas" || got.JumlahItem != 1 || got.Actor != "" {
		t.Errorf("unexpected audit log: %+v", got)
	}
}

func TestHandlerIgnoresUnknownAndMalformedEvents(t *testing.T) {
	store := &fakeStore{}
	h := Handler(store)

	if err := h(context.Background(), streamEvent("transaksi.updated", map[string]any{})); err != nil {
		t.Errorf("unknown event: unexpected error %v", err)
	}
	if err := h(context.Background(), streamEvent(events.TransaksiDeleted, map[string]any{"transaksiId": "not-a-number"})); err != nil {
		t.Errorf("malformed event: unexpected error %v", err)
	}
	if len(store.saved) != 0 {
		t.Errorf("expected nothing saved, got %d", len(store.saved))
	}
}

func TestHandlerReturnsStoreErrorForRedelivery(t *testing.T) {
	boom := errors.New("mongo unavailable")
	store := &fakeStore{err: boom}

	err := Handler(store)(context.Background(), streamEvent(events.TransaksiDeleted, map[string]any{
		"transaksiId": float64(42),
	}))
	if !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
}
