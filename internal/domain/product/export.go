// internal/domain/product/export.go
package product

import (
	"fmt"
	"strings"

	"github.com/tealeg/xlsx"
)

// ExportExcel builds an Excel workbook with the full product catalog for
// the back office.
func (s *Service) ExportExcel() (*xlsx.File, error) {
	var products []Product
	if err := s.db.Order("created_at desc").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch products for export: %w", err)
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	headers := []string{
		"ID", "Title", "Description", "Category", "Price",
		"Features", "Featured", "FeaturedOrder", "ImageURL", "CreatedAt",
	}
	headerRow := sheet.AddRow()
	for _, h := range headers {
		headerRow.AddCell().SetValue(h)
	}

	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetValue(p.ID.String())
		row.AddCell().SetValue(p.Title)
		row.AddCell().SetValue(p.Description)
		row.AddCell().SetValue(p.Category)
		if p.Price != nil {
			row.AddCell().SetValue(*p.Price)
		} else {
			row.AddCell().SetValue("")
		}
		row.AddCell().SetValue(strings.Join(p.Features, ", "))
		row.AddCell().SetValue(p.IsFeatured)
		row.AddCell().SetValue(p.FeaturedOrder)
		row.AddCell().SetValue(p.ImageURL)
		row.AddCell().SetValue(p.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	return file, nil
}
