package pdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"facility-services-be/internal/entity"
)

// InvoiceRenderer produces the downloadable PDF for a client invoice.
type InvoiceRenderer struct {
	issuerName string
}

func NewInvoiceRenderer(issuerName string) *InvoiceRenderer {
	return &InvoiceRenderer{issuerName: issuerName}
}

func (r *InvoiceRenderer) Render(invoice *entity.Invoice, company *entity.Company) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetTitle(fmt.Sprintf("Fatura %s", invoice.Number), true)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 18)
	doc.Cell(0, 10, r.issuerName)
	doc.Ln(14)

	doc.SetFont("Helvetica", "B", 12)
	doc.Cell(0, 8, fmt.Sprintf("Fatura %s", invoice.Number))
	doc.Ln(8)

	doc.SetFont("Helvetica", "", 10)
	doc.Cell(0, 6, fmt.Sprintf("Cliente: %s", company.Name))
	doc.Ln(6)
	doc.Cell(0, 6, fmt.Sprintf("CNPJ: %s", company.Document))
	doc.Ln(6)
	doc.Cell(0, 6, fmt.Sprintf("Emissão: %s", invoice.IssueDate.Format("02/01/2006")))
	doc.Ln(6)
	doc.Cell(0, 6, fmt.Sprintf("Vencimento: %s", invoice.DueDate.Format("02/01/2006")))
	doc.Ln(6)
	doc.Cell(0, 6, fmt.Sprintf("Status: %s", invoice.Status))
	doc.Ln(12)

	// Line items table
	doc.SetFont("Helvetica", "B", 10)
	doc.SetFillColor(230, 230, 230)
	doc.CellFormat(90, 8, "Descrição", "1", 0, "L", true, 0, "")
	doc.CellFormat(25, 8, "Qtd", "1", 0, "R", true, 0, "")
	doc.CellFormat(35, 8, "Valor unit.", "1", 0, "R", true, 0, "")
	doc.CellFormat(35, 8, "Total", "1", 1, "R", true, 0, "")

	doc.SetFont("Helvetica", "", 10)
	for _, line := range invoice.Lines {
		doc.CellFormat(90, 8, line.Description, "1", 0, "L", false, 0, "")
		doc.CellFormat(25, 8, fmt.Sprintf("%.2f", line.Quantity), "1", 0, "R", false, 0, "")
		doc.CellFormat(35, 8, fmt.Sprintf("R$ %.2f", line.UnitPrice), "1", 0, "R", false, 0, "")
		doc.CellFormat(35, 8, fmt.Sprintf("R$ %.2f", line.Amount), "1", 1, "R", false, 0, "")
	}

	doc.SetFont("Helvetica", "B", 11)
	doc.CellFormat(150, 10, "Total", "1", 0, "R", false, 0, "")
	doc.CellFormat(35, 10, fmt.Sprintf("R$ %.2f", invoice.TotalAmount), "1", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
