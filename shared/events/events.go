package events

import (
	"encoding/json"
	"fmt"
	"time"
)

// Event types
const (
	TransaksiCreated = "transaksi.created"
	TransaksiDeleted = "transaksi.deleted"
)

// Stream names
const (
	TransaksiEventsStream = "transaksi.events"
)

// Base event structure
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

type TransaksiCreatedEvent struct {
	TransaksiID   int64  `json:"transaksiId"`
	KodeTransaksi string `json:"kodeTransaksi"`
	NamaPelanggan string `json:"namaPelanggan"`
	Total         string `json:"total"`
	Status        string `json:"status"`
	JumlahItem    int    `json:"jumlahItem"`
}

type TransaksiDeletedEvent struct {
	TransaksiID   int64  `json:"transaksiId"`
	KodeTransaksi string `json:"kodeTransaksi"`
	Total         string `json:"total"`
	DeletedBy     string `json:"deletedBy,omitempty"`
}

// DecodeData re-decodes the generic Data payload of an event into T.
// Data arrives as map[string]any after the stream round trip.
func DecodeData[T any](event Event) (T, error) {
	var out T
	raw, err := json.Marshal(event.Data)
	if err != nil {
		return out, fmt.Errorf("failed to marshal %s payload: %w", event.Type, err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("failed to unmarshal %s payload: %w", event.Type, err)
	}
	return out, nil
}
