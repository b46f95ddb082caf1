package infra

// pdf.go — receipt generation using go-pdf/fpdf. Renders a thermal
// receipt-style PDF for a completed transaction:
//   - store name header
//   - transaction id and timestamp
//   - item table (name, qty, line total at sale price)
//   - bold total, cash received and change
//   - cashier display name
//
// The output file is saved to storagePath/receipt_{id}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"github.com/DvineConqueror/GroceryStorePOS/internal/model"
	"github.com/DvineConqueror/GroceryStorePOS/internal/money"
)

// ReceiptPath returns where a transaction's receipt lives on disk.
func ReceiptPath(storagePath string, id string) string {
	return filepath.Join(storagePath, fmt.Sprintf("receipt_%s.pdf", id))
}

// GenerateReceiptPDF renders the receipt for a completed transaction and
// returns the absolute path of the written file.
func GenerateReceiptPDF(tx *model.Transaction, storeName, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}
	filePath := ReceiptPath(storagePath, tx.ID.String())

	// 74mm × 105mm — close to thermal receipt paper
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: 105},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, storeName, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, "Official Receipt", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, fmt.Sprintf("Ref %s", tx.ID), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 4, tx.CreatedAt.Format("01/02/2006  15:04"), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 4, fmt.Sprintf("Cashier: %s", tx.CashierName), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	col1 := contentW * 0.52
	col2 := contentW * 0.16
	col3 := contentW * 0.32

	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(col1, 4, "Item", "", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 4, "Qty", "", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 4, "Amount", "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	for _, item := range tx.Items {
		name := ""
		if item.Product != nil {
			name = item.Product.Name
		}
		lineTotal := item.PriceAtTime.Mul(decimal.NewFromInt(int64(item.Quantity)))
		pdf.CellFormat(col1, 4, name, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 4, fmt.Sprintf("%d", item.Quantity), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 4, money.Format(lineTotal), "", 1, "R", false, 0, "")
	}

	pdf.Ln(1)
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(1)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1+col2, 5, "TOTAL", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 5, money.Format(tx.Total), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(col1+col2, 4, "Cash", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 4, money.Format(tx.CashReceived), "", 1, "R", false, 0, "")
	pdf.CellFormat(col1+col2, 4, "Change", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 4, money.Format(tx.ChangeAmount), "", 1, "R", false, 0, "")

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "I", 6)
	pdf.CellFormat(contentW, 4, "Thank you for shopping!", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write receipt: %w", err)
	}
	return filePath, nil
}
