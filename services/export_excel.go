package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// GenerateEstimateExcel renders an estimate as an Excel workbook: the
// material ledger, the labor ledger and the project totals on one sheet.
func GenerateEstimateExcel(data EstimateExport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// Sheet names cap at 31 chars.
	sheetName := data.ProjectName
	if len(sheetName) > 31 {
		sheetName = sheetName[:31]
	}
	if sheetName == "" {
		sheetName = "Estimate"
	}

	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	columns := []string{"A", "B", "C", "D", "E", "F", "G"}
	lastCol := columns[len(columns)-1]

	widths := []float64{16, 40, 12, 12, 10, 12, 14}
	for i, col := range columns {
		if err := f.SetColWidth(sheetName, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	// ── Styles ──────────────────────────────────────────────────────────

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 16,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}

	subtitleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Size: 11,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create subtitle style: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:  true,
			Color: "#FFFFFF",
			Size:  11,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#333333"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	rowStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Size: 10,
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create row style: %w", err)
	}

	manualRowStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Size:   10,
			Italic: true,
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create manual row style: %w", err)
	}

	summaryLabelStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 11,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "right",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary label style: %w", err)
	}

	summaryValueStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 11,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary value style: %w", err)
	}

	// ── Header rows ─────────────────────────────────────────────────────

	if err := f.MergeCell(sheetName, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheetName, "A1", sanitizeExcelCell(data.ProjectName))
	f.SetCellStyle(sheetName, "A1", lastCol+"1", titleStyle)

	if err := f.MergeCell(sheetName, "A2", lastCol+"2"); err != nil {
		return nil, fmt.Errorf("merge date: %w", err)
	}
	f.SetCellValue(sheetName, "A2", "Date: "+data.CreatedDate)
	f.SetCellStyle(sheetName, "A2", lastCol+"2", subtitleStyle)

	if err := f.MergeCell(sheetName, "A3", lastCol+"3"); err != nil {
		return nil, fmt.Errorf("merge footage: %w", err)
	}
	f.SetCellValue(sheetName, "A3", fmt.Sprintf("Net footage: %s ft", FormatQty(data.NetFootage)))
	f.SetCellStyle(sheetName, "A3", lastCol+"3", subtitleStyle)

	// ── Materials section ───────────────────────────────────────────────

	row := 5
	materialHeaders := []string{"SKU", "Description", "Unit Cost", "Calculated", "Adj", "Qty", "Total"}
	for i, h := range materialHeaders {
		f.SetCellValue(sheetName, fmt.Sprintf("%s%d", columns[i], row), h)
	}
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("%s%d", lastCol, row), headerStyle)
	row++

	for _, m := range data.Materials {
		rowStr := fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, "A"+rowStr, sanitizeExcelCell(m.SKU))
		f.SetCellValue(sheetName, "B"+rowStr, sanitizeExcelCell(m.Name))
		f.SetCellValue(sheetName, "C"+rowStr, FormatUSD(m.UnitCost))
		f.SetCellValue(sheetName, "D"+rowStr, FormatQty(m.CalculatedQty))
		f.SetCellValue(sheetName, "E"+rowStr, FormatQty(m.Adjustment))
		f.SetCellValue(sheetName, "F"+rowStr, FormatQty(m.TotalQty))
		f.SetCellValue(sheetName, "G"+rowStr, FormatUSD(m.TotalCost))

		style := rowStyle
		if m.IsManual {
			style = manualRowStyle
		}
		f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, style)
		row++
	}

	// ── Labor section ───────────────────────────────────────────────────

	row++
	laborHeaders := []string{"Code", "Description", "Rate", "Quantity", "", "Adj $", "Total"}
	for i, h := range laborHeaders {
		if h == "" {
			continue
		}
		f.SetCellValue(sheetName, fmt.Sprintf("%s%d", columns[i], row), h)
	}
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("%s%d", lastCol, row), headerStyle)
	row++

	for _, l := range data.Labor {
		rowStr := fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, "A"+rowStr, sanitizeExcelCell(l.Code))
		f.SetCellValue(sheetName, "B"+rowStr, sanitizeExcelCell(l.Description))
		f.SetCellValue(sheetName, "C"+rowStr, FormatUSD(l.Rate))
		f.SetCellValue(sheetName, "D"+rowStr, FormatQty(l.Quantity))
		f.SetCellValue(sheetName, "F"+rowStr, FormatUSD(l.Adjustment))
		f.SetCellValue(sheetName, "G"+rowStr, FormatUSD(l.TotalCost))

		style := rowStyle
		if l.IsManual {
			style = manualRowStyle
		}
		f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, style)
		row++
	}

	// ── Summary rows ────────────────────────────────────────────────────

	row++
	summaries := []struct {
		label string
		value string
	}{
		{"Material Total:", FormatUSD(data.Summary.MaterialTotal)},
		{"Labor Total:", FormatUSD(data.Summary.LaborTotal)},
		{"Project Total:", FormatUSD(data.Summary.ProjectTotal)},
		{"Cost / Foot:", FormatUSD(data.Summary.CostPerFoot)},
	}
	for _, s := range summaries {
		rowStr := fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, "F"+rowStr, s.label)
		f.SetCellStyle(sheetName, "F"+rowStr, "F"+rowStr, summaryLabelStyle)
		f.SetCellValue(sheetName, "G"+rowStr, s.value)
		f.SetCellStyle(sheetName, "G"+rowStr, "G"+rowStr, summaryValueStyle)
		row++
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}

	return buf.Bytes(), nil
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Excel interprets cells starting with =, +, -,
// @, \t or \r as formulas, which can be abused for code execution or data theft.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns a slice of excelize.Border for thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1, // thin
		}
	}
	return borders
}
