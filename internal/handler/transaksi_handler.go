package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/andsetyobudi/ban-bengkel/internal/report"
	"github.com/andsetyobudi/ban-bengkel/shared/cqrs"
	"github.com/andsetyobudi/ban-bengkel/shared/middleware"
	"github.com/andsetyobudi/ban-bengkel/shared/models"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	msgInvalidID     = "ID transaksi tidak valid."
	msgNotFound      = "Transaksi tidak ditemukan."
	msgDeleteFailed  = "Gagal menghapus transaksi."
	msgCreateFailed  = "Gagal menyimpan transaksi."
	msgLoadFailed    = "Gagal memuat transaksi."
	msgExportFailed  = "Gagal mengekspor transaksi."
	msgInvalidBody   = "Body permintaan tidak valid."
	msgInvalidFilter = "Parameter filter tidak valid."
)

// TransaksiCommander defines the write-side operations used by TransaksiHandler.
type TransaksiCommander interface {
	CreateTransaksi(context.Context, cqrs.CreateTransaksiCommand) (*models.Transaksi, error)
	DeleteTransaksi(context.Context, cqrs.DeleteTransaksiCommand) error
}

// TransaksiQuerier defines the read-side operations used by TransaksiHandler.
type TransaksiQuerier interface {
	GetTransaksi(context.Context, cqrs.GetTransaksiQuery) (*models.TransaksiView, error)
	ListTransaksi(context.Context, cqrs.ListTransaksiQuery) (*models.TransaksiPage, error)
	ExportTransaksi(context.Context, cqrs.ExportTransaksiQuery) ([]byte, error)
}

type TransaksiHandler struct {
	commands TransaksiCommander
	queries  TransaksiQuerier
}

type CreateDetailRequest struct {
	NamaItem    string          `json:"nama_item" validate:"required,max=160"`
	Jumlah      int             `json:"jumlah" validate:"required,gt=0"`
	HargaSatuan decimal.Decimal `json:"harga_satuan"`
}

type CreatePembayaranRequest struct {
	Metode string          `json:"metode" validate:"required,oneof=tunai transfer qris debit"`
	Jumlah decimal.Decimal `json:"jumlah"`
}

type CreateTransaksiRequest struct {
	NamaPelanggan string                    `json:"nama_pelanggan" validate:"required,max=120"`
	NoTelepon     string                    `json:"no_telepon" validate:"max=32"`
	NoPolisi      string                    `json:"no_polisi" validate:"max=16"`
	Catatan       string                    `json:"catatan"`
	Details       []CreateDetailRequest     `json:"details" validate:"required,min=1,dive"`
	Pembayaran    []CreatePembayaranRequest `json:"pembayaran" validate:"dive"`
}

type ListTransaksiRequest struct {
	Page     int    `form:"page" validate:"omitempty,min=1,max=1000000"`
	PageSize int    `form:"pageSize"`
	Status   string `form:"status" validate:"omitempty,oneof=lunas belum_lunas"`
}

type DeleteTransaksiResponse struct {
	Success bool `json:"success"`
}

func NewTransaksiHandler(commands TransaksiCommander, queries TransaksiQuerier) *TransaksiHandler {
	return &TransaksiHandler{commands: commands, queries: queries}
}

func (h *TransaksiHandler) CreateTransaksi(c *gin.Context) {
	var req CreateTransaksiRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, msgInvalidBody)
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	cmd := cqrs.CreateTransaksiCommand{
		NamaPelanggan: req.NamaPelanggan,
		NoTelepon:     req.NoTelepon,
		NoPolisi:      req.NoPolisi,
		Catatan:       req.Catatan,
	}
	for _, d := range req.Details {
		cmd.Details = append(cmd.Details, cqrs.CreateDetailItem{NamaItem: d.NamaItem, Jumlah: d.Jumlah, HargaSatuan: d.HargaSatuan})
	}
	for _, p := range req.Pembayaran {
		cmd.Pembayaran = append(cmd.Pembayaran, cqrs.CreatePembayaranItem{Metode: p.Metode, Jumlah: p.Jumlah})
	}

	transaksi, err := h.commands.CreateTransaksi(c.Request.Context(), cmd)
	if err != nil {
		if errors.Is(err, models.ErrInvalidTransaksi) {
			middleware.RespondWithValidationError(c, []middleware.ValidationError{
				{Message: err.Error(), Type: "invalid"},
			})
			return
		}
		log.Error().Err(err).Msg("failed to create transaksi")
		middleware.RespondWithError(c, http.StatusInternalServerError, msgCreateFailed)
		return
	}

	c.JSON(http.StatusCreated, transaksi)
}

func (h *TransaksiHandler) GetTransaksi(c *gin.Context) {
	view, err := h.queries.GetTransaksi(c.Request.Context(), cqrs.GetTransaksiQuery{TransaksiID: c.Param("id")})
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidTransaksiID):
			middleware.RespondWithError(c, http.StatusBadRequest, msgInvalidID)
		case errors.Is(err, models.ErrTransaksiNotFound):
			middleware.RespondWithError(c, http.StatusNotFound, msgNotFound)
		default:
			log.Error().Err(err).Str("transaksiId", c.Param("id")).Msg("failed to load transaksi")
			middleware.RespondWithError(c, http.StatusInternalServerError, msgLoadFailed)
		}
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *TransaksiHandler) ListTransaksi(c *gin.Context) {
	var req ListTransaksiRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, msgInvalidFilter)
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	page, err := h.queries.ListTransaksi(c.Request.Context(), cqrs.ListTransaksiQuery{
		Page:     req.Page,
		PageSize: req.PageSize,
		Status:   req.Status,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to list transaksi")
		middleware.RespondWithError(c, http.StatusInternalServerError, msgLoadFailed)
		return
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(page.Items, page.TotalRows, req.Page, req.PageSize))
}

func (h *TransaksiHandler) ExportTransaksi(c *gin.Context) {
	status := c.Query("status")
	if status != "" && status != models.StatusLunas && status != models.StatusBelumLunas {
		middleware.RespondWithError(c, http.StatusBadRequest, msgInvalidFilter)
		return
	}

	data, err := h.queries.ExportTransaksi(c.Request.Context(), cqrs.ExportTransaksiQuery{Status: status})
	if err != nil {
		log.Error().Err(err).Msg("failed to export transaksi")
		middleware.RespondWithError(c, http.StatusInternalServerError, msgExportFailed)
		return
	}

	fileName := report.ExportFileName(time.Now().Format("20060102"))
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	c.Data(http.StatusOK, report.ContentTypeXLSX, data)
}

// DeleteTransaksi removes a transaksi together with its details and payments.
func (h *TransaksiHandler) DeleteTransaksi(c *gin.Context) {
	rawID := c.Param("id")
	deletedBy, _ := middleware.GetUsername(c)

	err := h.commands.DeleteTransaksi(c.Request.Context(), cqrs.DeleteTransaksiCommand{
		TransaksiID: rawID,
		DeletedBy:   deletedBy,
	})
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidTransaksiID):
			middleware.RespondWithError(c, http.StatusBadRequest, msgInvalidID)
		case errors.Is(err, models.ErrTransaksiNotFound):
			middleware.RespondWithError(c, http.StatusNotFound, msgNotFound)
		default:
			log.Error().Err(err).Str("transaksiId", rawID).Msg("failed to delete transaksi")
			middleware.RespondWithError(c, http.StatusInternalServerError, msgDeleteFailed)
		}
		return
	}

	c.JSON(http.StatusOK, DeleteTransaksiResponse{Success: true})
}
