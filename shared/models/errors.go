package models

import "errors"

var (
	ErrInvalidTransaksiID  = errors.New("invalid transaction ID")
	ErrTransaksiNotFound   = errors.New("transaction not found")
	ErrKodeTransaksiExists = errors.New("transaction code already exists")
	ErrInvalidTransaksi    = errors.New("invalid transaction data")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrAdminNotFound       = errors.New("admin not found")
)
