package service

import (
	"fmt"

	"github.com/dpaiva/lojinha-backend/internal/catalog"
	"github.com/dpaiva/lojinha-backend/pkg/logger"
	"github.com/xuri/excelize/v2"
)

// ReportService renders back-office exports of the catalog.
type ReportService interface {
	CatalogWorkbook() (*excelize.File, error)
}

type reportService struct {
	feed *catalog.Feed
}

func NewReportService(feed *catalog.Feed) ReportService {
	return &reportService{feed: feed}
}

var catalogHeader = []string{"ID", "Nome", "Marca", "Categoria", "Preço", "Preço antigo", "Avaliação", "Vendidos"}

func (s *reportService) CatalogWorkbook() (*excelize.File, error) {
	products := s.feed.Products()

	logger.Info("Building catalog workbook", map[string]interface{}{
		"count": len(products),
	})

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for col, title := range catalogHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return nil, err
		}
	}

	for i, p := range products {
		row := []interface{}{
			p.ID, p.Name, p.Brand, p.Category, p.Price,
			floatOrEmpty(p.OldPrice), floatOrEmpty(p.Rating), p.SoldOrZero(),
		}
		start, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, start, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	return f, nil
}

func floatOrEmpty(v *float64) interface{} {
	if v == nil {
		return ""
	}
	return *v
}
