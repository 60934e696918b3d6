package query

import (
	"context"

	"github.com/andsetyobudi/ban-bengkel/internal/command"
	"github.com/andsetyobudi/ban-bengkel/internal/report"
	"github.com/andsetyobudi/ban-bengkel/shared/cqrs"
	"github.com/andsetyobudi/ban-bengkel/shared/models"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	MaxPage         = 1000000
)

// TransaksiReader is the read model behind TransaksiQueryService.
type TransaksiReader interface {
	GetByID(ctx context.Context, id int64) (*models.TransaksiView, error)
	List(ctx context.Context, status string, limit, offset int) (*models.TransaksiPage, error)
}

// TransaksiQueryService serves transaksi reads from the cached read model.
type TransaksiQueryService struct {
	readRepo TransaksiReader
}

func NewTransaksiQueryService(readRepo TransaksiReader) *TransaksiQueryService {
	return &TransaksiQueryService{readRepo: readRepo}
}

func (s *TransaksiQueryService) GetTransaksi(ctx context.Context, q cqrs.GetTransaksiQuery) (*models.TransaksiView, error) {
	id, err := command.ParseTransaksiID(q.TransaksiID)
	if err != nil {
		return nil, err
	}
	return s.readRepo.GetByID(ctx, id)
}

// ListTransaksi clamps paging to sane bounds before hitting the read model.
func (s *TransaksiQueryService) ListTransaksi(ctx context.Context, q cqrs.ListTransaksiQuery) (*models.TransaksiPage, error) {
	page, pageSize := NormalizePage(q.Page, q.PageSize)
	return s.readRepo.List(ctx, q.Status, pageSize, (page-1)*pageSize)
}

// ExportTransaksi renders every matching transaksi as an xlsx workbook.
func (s *TransaksiQueryService) ExportTransaksi(ctx context.Context, q cqrs.ExportTransaksiQuery) ([]byte, error) {
	all, err := s.readRepo.List(ctx, q.Status, 0, 0)
	if err != nil {
		return nil, err
	}
	return report.TransaksiWorkbook(all.Items)
}

// NormalizePage clamps paging into range; the resulting offset always fits
// in an int.
func NormalizePage(page, pageSize int) (int, int) {
	switch {
	case page <= 0:
		page = 1
	case page > MaxPage:
		page = MaxPage
	}
	switch {
	case pageSize > MaxPageSize:
		pageSize = MaxPageSize
	case pageSize <= 0:
		pageSize = DefaultPageSize
	}
	return page, pageSize
}
