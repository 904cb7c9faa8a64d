package reports

import (
	"fmt"

	"github.com/sepolpinturas/obras_backend/internal/core/domain"
	"github.com/sepolpinturas/obras_backend/internal/utils"
	"github.com/xuri/excelize/v2"
)

var budgetExportHeaders = []string{"Fase", "Seq", "Serviço", "Qtd", "Preço unit.", "Valor"}

// BudgetWorkbook renders a budget snapshot (phases with line items loaded)
// into a client-facing spreadsheet with per-phase subtotals and the
// gross/discount/final summary.
func BudgetWorkbook(budget *domain.Budget, serviceNames map[string]string) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := "Orçamento"
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
	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create bold style: %w", err)
	}

	f.SetCellValue(sheet, "A1", budget.Title)
	f.SetCellStyle(sheet, "A1", "A1", boldStyle)
	f.SetCellValue(sheet, "B1", string(budget.Status))

	headerRow := 3
	for i, h := range budgetExportHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := fmt.Sprintf("%s%d", col, headerRow)
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	row := headerRow + 1
	for _, phase := range budget.Phases {
		for _, item := range phase.Items {
			name := serviceNames[item.ServiceID]
			if name == "" {
				name = item.ServiceID
			}
			f.SetCellValue(sheet, fmt.Sprintf("A%d", row), phase.Name)
			f.SetCellValue(sheet, fmt.Sprintf("B%d", row), phase.Sequence)
			f.SetCellValue(sheet, fmt.Sprintf("C%d", row), name)
			qty, _ := item.Quantity.Float64()
			f.SetCellValue(sheet, fmt.Sprintf("D%d", row), qty)
			f.SetCellValue(sheet, fmt.Sprintf("E%d", row), utils.FormatBRL(item.UnitPrice))
			f.SetCellValue(sheet, fmt.Sprintf("F%d", row), utils.FormatBRL(item.Amount))
			row++
		}
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("Subtotal %s", phase.Name))
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), utils.FormatBRL(phase.Total))
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("F%d", row), boldStyle)
		row++
	}

	row++
	f.SetCellValue(sheet, fmt.Sprintf("E%d", row), "Total bruto")
	f.SetCellValue(sheet, fmt.Sprintf("F%d", row), utils.FormatBRL(budget.GrossTotal))
	row++
	f.SetCellValue(sheet, fmt.Sprintf("E%d", row), "Desconto")
	f.SetCellValue(sheet, fmt.Sprintf("F%d", row), utils.FormatBRL(budget.Discount))
	row++
	f.SetCellValue(sheet, fmt.Sprintf("E%d", row), "Total final")
	f.SetCellValue(sheet, fmt.Sprintf("F%d", row), utils.FormatBRL(budget.FinalTotal))
	f.SetCellStyle(sheet, fmt.Sprintf("E%d", row), fmt.Sprintf("F%d", row), boldStyle)

	colWidths := []float64{24, 6, 32, 10, 14, 14}
	for i, w := range colWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, w)
	}

	return f, nil
}
