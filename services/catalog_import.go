package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/xuri/excelize/v2"
)

// ValidationError represents a single field-level error on one row.
type ValidationError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult is returned after parsing and validating an uploaded file.
type ValidationResult struct {
	TotalRows  int                 `json:"total_rows"`
	ValidRows  int                 `json:"valid_rows"`
	ErrorRows  int                 `json:"error_rows"`
	Errors     []ValidationError   `json:"errors"`
	ParsedRows []map[string]string `json:"-"`
	FileName   string              `json:"-"`
}

// parseCSV reads a CSV file and returns headers + data rows.
func parseCSV(file io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(allRows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}

	return allRows[0], allRows[1:], nil
}

// parseExcel reads an xlsx file and returns headers + data rows from the first sheet.
func parseExcel(file io.Reader) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}

	return rows[0], rows[1:], nil
}

// importColumn describes one expected column of an import file.
type importColumn struct {
	Key      string
	Label    string
	Required bool
	Numeric  bool
}

// materialColumns is the material import layout. Only SKU and Base Cost are
// mandatory; everything else defaults on the existing record.
var materialColumns = []importColumn{
	{Key: "sku", Label: "SKU", Required: true},
	{Key: "name", Label: "Name", Required: true},
	{Key: "uom", Label: "UOM"},
	{Key: "base_cost", Label: "Base Cost", Required: true, Numeric: true},
	{Key: "category", Label: "Category"},
}

// rateSheetItemColumns is the rate-sheet item import layout. The three
// price columns are optional individually, but each row needs at least one.
var rateSheetItemColumns = []importColumn{
	{Key: "sku", Label: "SKU", Required: true},
	{Key: "fixed_price", Label: "Fixed Price", Numeric: true},
	{Key: "markup_percent", Label: "Markup %", Numeric: true},
	{Key: "margin_percent", Label: "Margin %", Numeric: true},
}

// mapHeadersToColumns maps uploaded column headers to import column keys.
// Unrecognized columns are ignored rather than rejected.
func mapHeadersToColumns(headers []string, cols []importColumn) []string {
	labelToKey := make(map[string]string, len(cols))
	for _, c := range cols {
		labelToKey[strings.ToLower(strings.TrimSpace(c.Label))] = c.Key
		labelToKey[strings.ToLower(c.Key)] = c.Key
	}

	mapped := make([]string, len(headers))
	for i, h := range headers {
		norm := strings.ToLower(strings.TrimSpace(h))
		norm = strings.TrimSuffix(norm, " *")
		mapped[i] = labelToKey[strings.TrimSpace(norm)]
	}
	return mapped
}

// parseImportFile parses and validates an uploaded catalog file against a
// column layout. The caller applies the parsed rows only when ErrorRows is
// zero.
func parseImportFile(file io.Reader, fileName string, cols []importColumn) (*ValidationResult, error) {
	var headers []string
	var dataRows [][]string
	var err error

	lowerName := strings.ToLower(fileName)
	switch {
	case strings.HasSuffix(lowerName, ".csv"):
		headers, dataRows, err = parseCSV(file)
	case strings.HasSuffix(lowerName, ".xlsx"):
		headers, dataRows, err = parseExcel(file)
	default:
		return nil, fmt.Errorf("unsupported file format: must be .csv or .xlsx")
	}
	if err != nil {
		return nil, err
	}

	columnKeys := mapHeadersToColumns(headers, cols)

	result := &ValidationResult{
		TotalRows:  len(dataRows),
		FileName:   fileName,
		ParsedRows: make([]map[string]string, 0, len(dataRows)),
	}

	for rowIdx, row := range dataRows {
		rowNum := rowIdx + 2 // 1-indexed, +1 for header row
		rowData := make(map[string]string)
		var rowErrors []ValidationError

		for colIdx, key := range columnKeys {
			if key == "" {
				continue
			}
			value := ""
			if colIdx < len(row) {
				value = strings.TrimSpace(row[colIdx])
			}
			rowData[key] = value
		}

		for _, c := range cols {
			v := rowData[c.Key]
			if c.Required && v == "" {
				rowErrors = append(rowErrors, ValidationError{
					Row:     rowNum,
					Field:   c.Label,
					Message: fmt.Sprintf("%s is required", c.Label),
				})
				continue
			}
			if c.Numeric && v != "" {
				if n, err := strconv.ParseFloat(v, 64); err != nil || n < 0 {
					rowErrors = append(rowErrors, ValidationError{
						Row:     rowNum,
						Field:   c.Label,
						Message: fmt.Sprintf("%s must be a non-negative number", c.Label),
					})
				}
			}
		}

		result.Errors = append(result.Errors, rowErrors...)
		result.ParsedRows = append(result.ParsedRows, rowData)
	}

	errorRowSet := make(map[int]bool)
	for _, e := range result.Errors {
		errorRowSet[e.Row] = true
	}
	result.ErrorRows = len(errorRowSet)
	result.ValidRows = result.TotalRows - result.ErrorRows

	return result, nil
}

// ValidateMaterialFile parses and validates an uploaded material price file.
func ValidateMaterialFile(file io.Reader, fileName string) (*ValidationResult, error) {
	return parseImportFile(file, fileName, materialColumns)
}

// ValidateRateSheetItemFile parses and validates an uploaded rate-sheet
// item file. Beyond the column checks, every row must set at least one of
// the three price columns.
func ValidateRateSheetItemFile(file io.Reader, fileName string) (*ValidationResult, error) {
	result, err := parseImportFile(file, fileName, rateSheetItemColumns)
	if err != nil {
		return nil, err
	}

	for rowIdx, rowData := range result.ParsedRows {
		if rowData["fixed_price"] == "" && rowData["markup_percent"] == "" && rowData["margin_percent"] == "" {
			result.Errors = append(result.Errors, ValidationError{
				Row:     rowIdx + 2,
				Field:   "Fixed Price",
				Message: "row must set a fixed price, markup % or margin %",
			})
		}
	}

	errorRowSet := make(map[int]bool)
	for _, e := range result.Errors {
		errorRowSet[e.Row] = true
	}
	result.ErrorRows = len(errorRowSet)
	result.ValidRows = result.TotalRows - result.ErrorRows

	return result, nil
}

// ImportMaterials upserts validated material rows by SKU. Returns how many
// records were created vs updated.
func ImportMaterials(app *pocketbase.PocketBase, rows []map[string]string) (created, updated int, err error) {
	col, err := app.FindCollectionByNameOrId("materials")
	if err != nil {
		return 0, 0, fmt.Errorf("import materials: %w", err)
	}

	for _, rowData := range rows {
		sku := rowData["sku"]
		record, findErr := app.FindFirstRecordByData(col, "sku", sku)
		if findErr != nil {
			record = core.NewRecord(col)
			record.Set("sku", sku)
			created++
		} else {
			updated++
		}

		record.Set("name", rowData["name"])
		if v := rowData["uom"]; v != "" {
			record.Set("uom", v)
		}
		if v := rowData["category"]; v != "" {
			record.Set("category", v)
		}
		cost, _ := strconv.ParseFloat(rowData["base_cost"], 64)
		record.Set("base_cost", cost)

		if err := app.Save(record); err != nil {
			return created, updated, fmt.Errorf("import materials: save %s: %w", sku, err)
		}
	}

	return created, updated, nil
}

// ImportRateSheetItems upserts validated item rows into one rate sheet.
func ImportRateSheetItems(app *pocketbase.PocketBase, sheetID string, rows []map[string]string) (created, updated int, err error) {
	col, err := app.FindCollectionByNameOrId("rate_sheet_items")
	if err != nil {
		return 0, 0, fmt.Errorf("import rate sheet items: %w", err)
	}

	for _, rowData := range rows {
		sku := rowData["sku"]
		existing, findErr := app.FindRecordsByFilter(col,
			"sheet = {:sheetId} && sku = {:sku}", "", 1, 0,
			map[string]any{"sheetId": sheetID, "sku": sku},
		)

		var record *core.Record
		if findErr != nil || len(existing) == 0 {
			record = core.NewRecord(col)
			record.Set("sheet", sheetID)
			record.Set("sku", sku)
			created++
		} else {
			record = existing[0]
			updated++
		}

		for _, key := range []string{"fixed_price", "markup_percent", "margin_percent"} {
			v, _ := strconv.ParseFloat(rowData[key], 64)
			record.Set(key, v)
		}

		if err := app.Save(record); err != nil {
			return created, updated, fmt.Errorf("import rate sheet items: save %s: %w", sku, err)
		}
	}

	return created, updated, nil
}

// GenerateErrorReport creates a downloadable .xlsx file from validation errors.
func GenerateErrorReport(errors []ValidationError) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Errors"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DC2626"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})

	f.SetCellValue(sheet, "A1", "Row #")
	f.SetCellValue(sheet, "B1", "Field")
	f.SetCellValue(sheet, "C1", "Error")
	f.SetCellStyle(sheet, "A1", "C1", headerStyle)
	f.SetColWidth(sheet, "A", "A", 8)
	f.SetColWidth(sheet, "B", "B", 22)
	f.SetColWidth(sheet, "C", "C", 55)

	for i, e := range errors {
		row := strconv.Itoa(i + 2)
		f.SetCellValue(sheet, "A"+row, e.Row)
		f.SetCellValue(sheet, "B"+row, e.Field)
		f.SetCellValue(sheet, "C"+row, e.Message)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write error report: %w", err)
	}
	return buf.Bytes(), nil
}
