package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusLunas      = "lunas"
	StatusBelumLunas = "belum_lunas"
)

// Transaksi is the write model of a sale at the shop. Details and Pembayaran
// are owned by it and are removed together with it.
type Transaksi struct {
	ID            int64                 `json:"id" gorm:"primaryKey;autoIncrement"`
	KodeTransaksi string                `json:"kodeTransaksi" gorm:"type:varchar(32);uniqueIndex;not null"`
	NamaPelanggan string                `json:"namaPelanggan" gorm:"type:varchar(120);not null"`
	NoTelepon     string                `json:"noTelepon,omitempty" gorm:"type:varchar(32)"`
	NoPolisi      string                `json:"noPolisi,omitempty" gorm:"type:varchar(16)"`
	Total         decimal.Decimal       `json:"total" gorm:"type:numeric(14,2);not null"`
	Status        string                `json:"status" gorm:"type:varchar(20);not null"`
	Catatan       string                `json:"catatan,omitempty" gorm:"type:text"`
	Details       []TransaksiDetail     `json:"details" gorm:"foreignKey:TransaksiID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Pembayaran    []TransaksiPembayaran `json:"pembayaran" gorm:"foreignKey:TransaksiID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	CreatedAt     time.Time             `json:"createdAt"`
	UpdatedAt     time.Time             `json:"updatedAt"`
}

func (Transaksi) TableName() string { return "transaksi" }

// TransaksiDetail is a line item (tire, service, valve...) of a Transaksi.
type TransaksiDetail struct {
	ID          int64           `json:"id" gorm:"primaryKey;autoIncrement"`
	TransaksiID int64           `json:"transaksiId" gorm:"not null;index"`
	NamaItem    string          `json:"namaItem" gorm:"type:varchar(160);not null"`
	Jumlah      int             `json:"jumlah" gorm:"not null"`
	HargaSatuan decimal.Decimal `json:"hargaSatuan" gorm:"type:numeric(14,2);not null"`
	Subtotal    decimal.Decimal `json:"subtotal" gorm:"type:numeric(14,2);not null"`
}

func (TransaksiDetail) TableName() string { return "transaksi_detail" }

// TransaksiPembayaran is a payment made against a Transaksi.
type TransaksiPembayaran struct {
	ID          int64           `json:"id" gorm:"primaryKey;autoIncrement"`
	TransaksiID int64           `json:"transaksiId" gorm:"not null;index"`
	Metode      string          `json:"metode" gorm:"type:varchar(20);not null"`
	Jumlah      decimal.Decimal `json:"jumlah" gorm:"type:numeric(14,2);not null"`
	DibayarPada time.Time       `json:"dibayarPada" gorm:"not null"`
}

func (TransaksiPembayaran) TableName() string { return "transaksi_pembayaran" }

// Admin is an account allowed to use the admin backend.
type Admin struct {
	ID           int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Username     string    `json:"username" gorm:"type:varchar(64);uniqueIndex;not null"`
	Nama         string    `json:"nama" gorm:"type:varchar(120)"`
	PasswordHash string    `json:"-" gorm:"type:varchar(100);not null"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (Admin) TableName() string { return "admin_users" }
