package reports

import (
	"fmt"

	"github.com/sepolpinturas/obras_backend/internal/core/domain"
	"github.com/sepolpinturas/obras_backend/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

var payrollExportHeaders = []string{"Profissional", "Tipo", "Período", "Situação", "Valor"}

const payrollDateLayout = "02/01/2006"

// PayrollWorkbook renders the payments of one period into a spreadsheet, one
// row per payment plus a grand total, for handing to whoever runs the money.
func PayrollWorkbook(payments []domain.Payment, workerNames map[string]string) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := "Pagamentos"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for i, h := range payrollExportHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	total := decimal.Zero
	for rowIdx, p := range payments {
		row := rowIdx + 2
		name := workerNames[p.WorkerID]
		if name == "" {
			name = p.WorkerID
		}
		period := p.PeriodStart.Format(payrollDateLayout)
		if !p.PeriodEnd.Equal(p.PeriodStart) {
			period += " a " + p.PeriodEnd.Format(payrollDateLayout)
		}
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), name)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), string(p.Kind))
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), period)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), string(p.Status))
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), utils.FormatBRL(p.Total))
		total = total.Add(p.Total)
	}

	summaryRow := len(payments) + 2
	summaryStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create summary style: %w", err)
	}
	f.SetCellValue(sheet, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("Total (%d pagamentos)", len(payments)))
	f.SetCellValue(sheet, fmt.Sprintf("E%d", summaryRow), utils.FormatBRL(total))
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("E%d", summaryRow), summaryStyle)

	colWidths := []float64{28, 10, 26, 10, 14}
	for i, w := range colWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, w)
	}

	return f, nil
}
