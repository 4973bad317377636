package generate_excel

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
	"shop-analytics/internal/service/period"
	"shop-analytics/internal/service/profit"
)

type TrendProvider interface {
	Trend(ctx context.Context, periodsBack int, t period.Type) ([]profit.TrendEntry, error)
}

type GenerateExcelService struct {
	trend TrendProvider
}

func NewGenerateService(trend TrendProvider) *GenerateExcelService {
	return &GenerateExcelService{trend: trend}
}

const sheet = "Profitability"

var headers = []string{
	"Period", "Start", "End", "Revenue", "Material cost", "Labour cost", "Overhead", "Other expenses",
	"Total costs", "Net profit", "Margin, %", "Payments received", "Cash flow",
	"Orders", "Pending", "Cancelled", "Completed", "Warning",
}

func (g *GenerateExcelService) GenerateTrendExcel(ctx context.Context, periodsBack int, t period.Type) ([]byte, error) {
	const op = "service.generate-excel.GenerateTrendExcel"

	entries, err := g.trend.Trend(ctx, periodsBack, t)
	if err != nil {
		return nil, fmt.Errorf("%s: fetch data: %w", op, err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// --- СТИЛИ ---
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// период без данных подсвечиваем, чтобы нули не приняли за реальные цифры
	degradedStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Italic: true, Color: "9C0006"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"FFC7CE"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for i, name := range headers {
		f.SetCellValue(sheet, cellName(i+1, 1), name)
	}
	f.SetCellStyle(sheet, "A1", cellName(len(headers), 1), headerStyle)

	for idx, e := range entries {
		row := idx + 2
		s := e.Summary

		values := []interface{}{
			e.Label,
			s.Period.Start.Format("2006-01-02"),
			s.Period.End.Format("2006-01-02"),
			s.Revenue.InexactFloat64(),
			s.MaterialCost.InexactFloat64(),
			s.LabourCost.InexactFloat64(),
			s.Overhead.InexactFloat64(),
			s.OtherExpenses.InexactFloat64(),
			s.TotalCosts.InexactFloat64(),
			s.NetProfit.InexactFloat64(),
			s.ProfitMargin.InexactFloat64(),
			s.PaymentsReceived.InexactFloat64(),
			s.CashFlow.InexactFloat64(),
			s.TotalOrders,
			s.PendingOrders,
			s.CancelledOrders,
			s.CompletedOrders,
			e.Warning,
		}
		for col, v := range values {
			f.SetCellValue(sheet, cellName(col+1, row), v)
		}

		f.SetCellStyle(sheet, cellName(4, row), cellName(13, row), moneyStyle)
		if e.Degraded {
			f.SetCellStyle(sheet, cellName(1, row), cellName(len(headers), row), degradedStyle)
		}
	}

	f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		Split:       false,
		XSplit:      0,
		YSplit:      1,
		TopLeftCell: "A2",
	})

	f.SetColWidth(sheet, "A", "A", 16)
	f.SetColWidth(sheet, "B", "M", 14)
	f.SetColWidth(sheet, "R", "R", 32)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return buf.Bytes(), nil
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
