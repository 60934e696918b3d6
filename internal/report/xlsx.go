package report

import (
	"bytes"
	"fmt"

	"github.com/andsetyobudi/ban-bengkel/shared/models"
	"github.com/xuri/excelize/v2"
)

const (
	SheetTransaksi  = "Transaksi"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	// numFmtThousands is the built-in "#,##0.00" number format.
	numFmtThousands = 4
)

var transaksiHeaders = []string{
	"Kode Transaksi", "Tanggal", "Nama Pelanggan", "No. Polisi", "Jumlah Item", "Jumlah Pembayaran", "Total", "Status",
}

// TransaksiWorkbook renders one row per transaksi on the "Transaksi" sheet.
func TransaksiWorkbook(items []models.TransaksiSummary) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(SheetTransaksi)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	totalStyle, err := f.NewStyle(&excelize.Style{NumFmt: numFmtThousands})
	if err != nil {
		return nil, fmt.Errorf("failed to create total style: %w", err)
	}

	for i, header := range transaksiHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(SheetTransaksi, cell, header)
	}

	for i, t := range items {
		row := i + 2
		f.SetCellValue(SheetTransaksi, fmt.Sprintf("A%d", row), t.KodeTransaksi)
		f.SetCellValue(SheetTransaksi, fmt.Sprintf("B%d", row), t.CreatedAt.Format("02.01.2006 15:04"))
		f.SetCellValue(SheetTransaksi, fmt.Sprintf("C%d", row), t.NamaPelanggan)
		f.SetCellValue(SheetTransaksi, fmt.Sprintf("D%d", row), t.NoPolisi)
		f.SetCellValue(SheetTransaksi, fmt.Sprintf("E%d", row), t.JumlahItem)
		f.SetCellValue(SheetTransaksi, fmt.Sprintf("F%d", row), t.JumlahBayar)
		// Total goes in as the exact decimal text of a numeric cell, not a
		// float64.
		totalCell := fmt.Sprintf("G%d", row)
		if err := f.SetCellDefault(SheetTransaksi, totalCell, t.Total.StringFixed(2)); err != nil {
			return nil, fmt.Errorf("failed to write total: %w", err)
		}
		if err := f.SetCellStyle(SheetTransaksi, totalCell, totalCell, totalStyle); err != nil {
			return nil, fmt.Errorf("failed to style total: %w", err)
		}
		f.SetCellValue(SheetTransaksi, fmt.Sprintf("H%d", row), t.Status)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportFileName is the download name for an export taken at the given date stamp.
func ExportFileName(stamp string) string {
	return "transaksi_" + stamp + ".xlsx"
}
