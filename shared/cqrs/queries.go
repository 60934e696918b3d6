package cqrs

// GetTransaksiQuery fetches a single transaksi with its details and payments.
type GetTransaksiQuery struct {
	TransaksiID string
}

// ListTransaksiQuery fetches one page of transaksi, newest first.
// An empty Status returns every status.
type ListTransaksiQuery struct {
	Page     int
	PageSize int
	Status   string
}

// ExportTransaksiQuery selects the rows written to the spreadsheet export.
type ExportTransaksiQuery struct {
	Status string
}
