// internal/pkg/pdf/invoice.go
package pdf

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/your-org/storefront-backend/internal/domain/order"
)

// CompanyInfo is the seller block printed on invoices, usually filled from
// the site settings.
type CompanyInfo struct {
	Name    string
	Address string
	Phone   string
	Email   string
}

// InvoiceData is the template payload
type InvoiceData struct {
	InvoiceNumber string
	InvoiceDate   string
	Order         *order.Order
	Company       CompanyInfo
}

// Service renders order invoices as PDF via wkhtmltopdf
type Service struct{}

// NewService creates a new PDF service
func NewService() *Service {
	return &Service{}
}

// GenerateInvoice renders the order as a PDF invoice
func (s *Service) GenerateInvoice(o *order.Order, company CompanyInfo) (*bytes.Buffer, error) {
	data := InvoiceData{
		InvoiceNumber: fmt.Sprintf("INV-%s", o.ID),
		InvoiceDate:   o.CreatedAt.Format("January 2, 2006"),
		Order:         o,
		Company:       company,
	}

	htmlContent, err := s.generateHTML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader([]byte(htmlContent)))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)
	page.Zoom.Set(0.95)
	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}
	return bytes.NewBuffer(pdfg.Bytes()), nil
}

func (s *Service) generateHTML(data InvoiceData) (string, error) {
	tmpl := template.Must(template.New("invoice").Funcs(template.FuncMap{
		"money": func(v float64) string { return fmt.Sprintf("%.2f", v) },
		"line":  func(price float64, qty int) string { return fmt.Sprintf("%.2f", price*float64(qty)) },
		"now":   func() string { return time.Now().Format("January 2, 2006") },
	}).Parse(invoiceTemplate))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

const invoiceTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Invoice {{.InvoiceNumber}}</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 0; padding: 24px; color: #111; }
        .header { display: flex; justify-content: space-between; margin-bottom: 32px; }
        .company h1 { margin: 0 0 4px 0; font-size: 20px; }
        .company p, .meta p { margin: 2px 0; font-size: 12px; color: #444; }
        .meta { text-align: right; }
        .buyer { margin-bottom: 24px; font-size: 13px; }
        table { width: 100%; border-collapse: collapse; font-size: 13px; }
        th { text-align: left; border-bottom: 2px solid #111; padding: 6px 4px; }
        td { border-bottom: 1px solid #ddd; padding: 6px 4px; }
        .num { text-align: right; }
        .total { margin-top: 16px; text-align: right; font-size: 15px; font-weight: bold; }
    </style>
</head>
<body>
    <div class="header">
        <div class="company">
            <h1>{{.Company.Name}}</h1>
            <p>{{.Company.Address}}</p>
            <p>{{.Company.Phone}} · {{.Company.Email}}</p>
        </div>
        <div class="meta">
            <p><strong>{{.InvoiceNumber}}</strong></p>
            <p>Date: {{.InvoiceDate}}</p>
        </div>
    </div>
    <div class="buyer">
        <strong>Bill to</strong><br>
        {{.Order.FullName}}<br>
        {{.Order.Address}}, {{.Order.City}}<br>
        {{.Order.Phone}} · {{.Order.UserEmail}}
        {{if .Order.CompanyName}}<br>{{.Order.CompanyName}}{{end}}
        {{if .Order.TaxOffice}} · {{.Order.TaxOffice}}{{end}}
        {{if .Order.TaxNumber}} · Tax no: {{.Order.TaxNumber}}{{end}}
    </div>
    <table>
        <tr><th>Item</th><th class="num">Qty</th><th class="num">Unit</th><th class="num">Amount</th></tr>
        {{range .Order.Items}}
        <tr>
            <td>{{.Title}}</td>
            <td class="num">{{.Quantity}}</td>
            <td class="num">{{money .Price}}</td>
            <td class="num">{{line .Price .Quantity}}</td>
        </tr>
        {{end}}
    </table>
    <div class="total">Total: {{money .Order.TotalAmount}}</div>
</body>
</html>
`
