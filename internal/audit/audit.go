// Package audit turns transaksi stream events into audit documents.
package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/andsetyobudi/ban-bengkel/shared/events"
	"github.com/rs/zerolog/log"
)

// Log is one audit document. Stored with bson tags in MongoDB.
type Log struct {
	ID            string    `bson:"_id,omitempty"`
	EventType     string    `bson:"event_type"`
	TransaksiID   int64     `bson:"transaksi_id"`
	KodeTransaksi string    `bson:"kode_transaksi"`
	NamaPelanggan string    `bson:"nama_pelanggan,omitempty"`
	Total         string    `bson:"total"`
	Status        string    `bson:"status,omitempty"`
	JumlahItem    int       `bson:"jumlah_item,omitempty"`
	Actor         string    `bson:"actor,omitempty"`
	OccurredAt    time.Time `bson:"occurred_at"`
	ProcessedAt   time.Time `bson:"processed_at"`
}

type Store interface {
	Save(ctx context.Context, entry Log) error
}

// FromEvent maps a stream event to an audit document. ok is false for event
// types the audit trail does not record.
func FromEvent(event events.Event) (entry Log, ok bool, err error) {
	entry = Log{EventType: event.Type, OccurredAt: event.Timestamp}

	switch event.Type {
	case events.TransaksiCreated:
		data, err := events.DecodeData[events.TransaksiCreatedEvent](event)
		if err != nil {
			return Log{}, false, err
		}
		entry.TransaksiID = data.TransaksiID
		entry.KodeTransaksi = data.KodeTransaksi
		entry.NamaPelanggan = data.NamaPelanggan
		entry.Total = data.Total
		entry.Status = data.Status
		entry.JumlahItem = data.JumlahItem
	case events.TransaksiDeleted:
		data, err := events.DecodeData[events.TransaksiDeletedEvent](event)
		if err != nil {
			return Log{}, false, err
		}
		entry.TransaksiID = data.TransaksiID
		entry.KodeTransaksi = data.KodeTransaksi
		entry.Total = data.Total
		entry.Actor = data.DeletedBy
	default:
		return Log{}, false, nil
	}
	return entry, true, nil
}

// Handler returns the stream handler used by the audit worker. A returned
// error leaves the message pending so it is redelivered.
func Handler(store Store) events.Handler {
	return func(ctx context.Context, event events.Event) error {
		entry, ok, err := FromEvent(event)
		if err != nil {
			// Undecodable payloads never succeed on retry.
			log.Error().Err(err).Str("event_type", event.Type).Msg("dropping malformed audit event")
			return nil
		}
		if !ok {
			log.Debug().Str("event_type", event.Type).Msg("ignoring event")
			return nil
		}
		if err := store.Save(ctx, entry); err != nil {
			return fmt.Errorf("failed to save audit log: %w", err)
		}
		log.Info().Str("event_type", entry.EventType).Int64("transaksi_id", entry.TransaksiID).Msg("audit log saved")
		return nil
	}
}
