package cqrs

import "github.com/shopspring/decimal"

type CreateTransaksiCommand struct {
	NamaPelanggan string
	NoTelepon     string
	NoPolisi      string
	Catatan       string
	Details       []CreateDetailItem
	Pembayaran    []CreatePembayaranItem
}

type CreateDetailItem struct {
	NamaItem    string
	Jumlah      int
	HargaSatuan decimal.Decimal
}

type CreatePembayaranItem struct {
	Metode string
	Jumlah decimal.Decimal
}

// DeleteTransaksiCommand carries the raw path value; parsing it is part of
// the command so that malformed ids never reach storage.
type DeleteTransaksiCommand struct {
	TransaksiID string
	DeletedBy   string
}

type LoginCommand struct {
	Username string
	Password string
}
