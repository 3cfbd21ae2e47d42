package services

import (
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestParseCSV_Valid(t *testing.T) {
	input := "SKU,Name,Base Cost\nPKT-6,6ft Picket,3.10\nRAIL-8,8ft Rail,4.80\n"
	headers, rows, err := parseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parseCSV() error = %v", err)
	}
	if len(headers) != 3 {
		t.Errorf("expected 3 headers, got %d", len(headers))
	}
	if len(rows) != 2 {
		t.Errorf("expected 2 data rows, got %d", len(rows))
	}
}

func TestParseCSV_HeaderOnly(t *testing.T) {
	_, _, err := parseCSV(strings.NewReader("SKU,Name,Base Cost\n"))
	if err == nil {
		t.Error("expected error for header-only file")
	}
	if !strings.Contains(err.Error(), "at least one data row") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestParseCSV_Empty(t *testing.T) {
	if _, _, err := parseCSV(strings.NewReader("")); err == nil {
		t.Error("expected error for empty file")
	}
}

func TestMapHeadersToColumns(t *testing.T) {
	t.Run("exact labels", func(t *testing.T) {
		mapped := mapHeadersToColumns([]string{"SKU", "Name", "Base Cost"}, materialColumns)
		if mapped[0] != "sku" || mapped[1] != "name" || mapped[2] != "base_cost" {
			t.Errorf("unexpected mapping: %v", mapped)
		}
	})

	t.Run("case insensitive with asterisk", func(t *testing.T) {
		mapped := mapHeadersToColumns([]string{"sku *", "NAME", "base cost"}, materialColumns)
		if mapped[0] != "sku" || mapped[1] != "name" || mapped[2] != "base_cost" {
			t.Errorf("unexpected mapping: %v", mapped)
		}
	})

	t.Run("raw keys accepted", func(t *testing.T) {
		mapped := mapHeadersToColumns([]string{"base_cost"}, materialColumns)
		if mapped[0] != "base_cost" {
			t.Errorf("unexpected mapping: %v", mapped)
		}
	})

	t.Run("unknown column ignored", func(t *testing.T) {
		mapped := mapHeadersToColumns([]string{"SKU", "Vendor Notes"}, materialColumns)
		if mapped[1] != "" {
			t.Errorf("unknown column should map to empty, got %q", mapped[1])
		}
	})
}

func TestValidateMaterialFile(t *testing.T) {
	t.Run("valid file", func(t *testing.T) {
		input := "SKU,Name,UOM,Base Cost\nPKT-6,6ft Picket,Each,3.10\n"
		result, err := ValidateMaterialFile(strings.NewReader(input), "materials.csv")
		if err != nil {
			t.Fatalf("ValidateMaterialFile() error = %v", err)
		}
		if result.ErrorRows != 0 || result.ValidRows != 1 {
			t.Errorf("got %d errors / %d valid, want 0/1: %v", result.ErrorRows, result.ValidRows, result.Errors)
		}
	})

	t.Run("missing required and bad number", func(t *testing.T) {
		input := "SKU,Name,Base Cost\n,6ft Picket,3.10\nRAIL-8,8ft Rail,free\n"
		result, err := ValidateMaterialFile(strings.NewReader(input), "materials.csv")
		if err != nil {
			t.Fatalf("ValidateMaterialFile() error = %v", err)
		}
		if result.ErrorRows != 2 {
			t.Errorf("error rows = %d, want 2: %v", result.ErrorRows, result.Errors)
		}
	})

	t.Run("negative cost rejected", func(t *testing.T) {
		input := "SKU,Name,Base Cost\nPKT-6,6ft Picket,-1\n"
		result, _ := ValidateMaterialFile(strings.NewReader(input), "materials.csv")
		if result.ErrorRows != 1 {
			t.Errorf("expected negative cost to be rejected: %v", result.Errors)
		}
	})

	t.Run("unsupported extension", func(t *testing.T) {
		if _, err := ValidateMaterialFile(strings.NewReader("x"), "materials.pdf"); err == nil {
			t.Error("expected error for unsupported file format")
		}
	})
}

func TestValidateRateSheetItemFile_RequiresAPrice(t *testing.T) {
	input := "SKU,Fixed Price,Markup %,Margin %\nPKT-6,4.25,,\nRAIL-8,,,\n"
	result, err := ValidateRateSheetItemFile(strings.NewReader(input), "sheet.csv")
	if err != nil {
		t.Fatalf("ValidateRateSheetItemFile() error = %v", err)
	}
	if result.ErrorRows != 1 {
		t.Errorf("error rows = %d, want 1 (row with no price columns): %v", result.ErrorRows, result.Errors)
	}
}

func TestParseExcel_RoundTrip(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	f.SetCellValue(sheet, "A1", "SKU")
	f.SetCellValue(sheet, "B1", "Name")
	f.SetCellValue(sheet, "C1", "Base Cost")
	f.SetCellValue(sheet, "A2", "PKT-6")
	f.SetCellValue(sheet, "B2", "6ft Picket")
	f.SetCellValue(sheet, "C2", 3.10)

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer() error = %v", err)
	}

	result, err := ValidateMaterialFile(bytesReader(buf.Bytes()), "materials.xlsx")
	if err != nil {
		t.Fatalf("ValidateMaterialFile() error = %v", err)
	}
	if result.TotalRows != 1 || result.ErrorRows != 0 {
		t.Errorf("got %d rows / %d errors, want 1/0: %v", result.TotalRows, result.ErrorRows, result.Errors)
	}
}

func TestGenerateErrorReport(t *testing.T) {
	report, err := GenerateErrorReport([]ValidationError{
		{Row: 2, Field: "SKU", Message: "SKU is required"},
	})
	if err != nil {
		t.Fatalf("GenerateErrorReport() error = %v", err)
	}

	f, err := excelize.OpenReader(bytesReader(report))
	if err != nil {
		t.Fatalf("generated report is not a valid xlsx: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Errors")
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("expected header + 1 error row, got %d rows", len(rows))
	}
}
