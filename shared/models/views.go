package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransaksiView is the read-optimised projection of a transaksi, including
// its line items and payments.
type TransaksiView struct {
	ID            int64                 `json:"id"`
	KodeTransaksi string                `json:"kodeTransaksi"`
	NamaPelanggan string                `json:"namaPelanggan"`
	NoTelepon     string                `json:"noTelepon,omitempty"`
	NoPolisi      string                `json:"noPolisi,omitempty"`
	Total         decimal.Decimal       `json:"total"`
	TotalDibayar  decimal.Decimal       `json:"totalDibayar"`
	Status        string                `json:"status"`
	Catatan       string                `json:"catatan,omitempty"`
	Details       []TransaksiDetail     `json:"details"`
	Pembayaran    []TransaksiPembayaran `json:"pembayaran"`
	CreatedAt     time.Time             `json:"createdAt"`
	UpdatedAt     time.Time             `json:"updatedAt"`
}

// TransaksiSummary is one row of the transaksi list. Details and payments
// are only counted, not loaded.
type TransaksiSummary struct {
	ID            int64           `json:"id"`
	KodeTransaksi string          `json:"kodeTransaksi"`
	NamaPelanggan string          `json:"namaPelanggan"`
	NoPolisi      string          `json:"noPolisi,omitempty"`
	Total         decimal.Decimal `json:"total"`
	Status        string          `json:"status"`
	JumlahItem    int             `json:"jumlahItem"`
	JumlahBayar   int             `json:"jumlahPembayaran"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// TransaksiPage is a single page of TransaksiSummary rows.
type TransaksiPage struct {
	Items     []TransaksiSummary
	TotalRows int64
}
