package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"fenceworks/services"
)

const maxImportSize = 10 << 20 // 10 MB

// HandleMaterialImport accepts a CSV or Excel upload of catalog materials.
// With ?dry_run=1 it only validates and reports; otherwise a clean file is
// upserted by SKU. A file with errors is never partially imported.
func HandleMaterialImport(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseMultipartForm(maxImportSize); err != nil {
			return apiError(e, http.StatusBadRequest, "invalid multipart form")
		}
		file, header, err := e.Request.FormFile("file")
		if err != nil {
			return apiError(e, http.StatusBadRequest, "missing file upload")
		}
		defer file.Close()

		result, err := services.ValidateMaterialFile(file, header.Filename)
		if err != nil {
			log.Printf("material import: parse %s: %v", header.Filename, err)
			return apiError(e, http.StatusBadRequest, err.Error())
		}

		if result.ErrorRows > 0 || e.Request.URL.Query().Get("dry_run") == "1" {
			return e.JSON(http.StatusOK, result)
		}

		created, updated, err := services.ImportMaterials(app, result.ParsedRows)
		if err != nil {
			log.Printf("material import: %v", err)
			return apiError(e, http.StatusInternalServerError, "import failed")
		}

		log.Printf("material import: %s: %d created, %d updated", header.Filename, created, updated)
		return e.JSON(http.StatusOK, map[string]any{
			"total_rows": result.TotalRows,
			"created":    created,
			"updated":    updated,
		})
	}
}

// HandleRateSheetItemImport uploads SKU price overrides into one rate sheet.
func HandleRateSheetItemImport(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sheet, err := app.FindRecordById("rate_sheets", e.Request.PathValue("sheetId"))
		if err != nil {
			return apiError(e, http.StatusNotFound, "rate sheet not found")
		}

		if err := e.Request.ParseMultipartForm(maxImportSize); err != nil {
			return apiError(e, http.StatusBadRequest, "invalid multipart form")
		}
		file, header, err := e.Request.FormFile("file")
		if err != nil {
			return apiError(e, http.StatusBadRequest, "missing file upload")
		}
		defer file.Close()

		result, err := services.ValidateRateSheetItemFile(file, header.Filename)
		if err != nil {
			log.Printf("rate sheet import: parse %s: %v", header.Filename, err)
			return apiError(e, http.StatusBadRequest, err.Error())
		}

		if result.ErrorRows > 0 || e.Request.URL.Query().Get("dry_run") == "1" {
			return e.JSON(http.StatusOK, result)
		}

		created, updated, err := services.ImportRateSheetItems(app, sheet.Id, result.ParsedRows)
		if err != nil {
			log.Printf("rate sheet import: %v", err)
			return apiError(e, http.StatusInternalServerError, "import failed")
		}

		log.Printf("rate sheet import: %s into %s: %d created, %d updated",
			header.Filename, sheet.GetString("name"), created, updated)
		return e.JSON(http.StatusOK, map[string]any{
			"total_rows": result.TotalRows,
			"created":    created,
			"updated":    updated,
		})
	}
}

// HandleImportErrorReport validates an upload and streams back an Excel
// workbook listing every row error, for fixing the file offline.
func HandleImportErrorReport(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseMultipartForm(maxImportSize); err != nil {
			return apiError(e, http.StatusBadRequest, "invalid multipart form")
		}
		file, header, err := e.Request.FormFile("file")
		if err != nil {
			return apiError(e, http.StatusBadRequest, "missing file upload")
		}
		defer file.Close()

		var result *services.ValidationResult
		if e.Request.URL.Query().Get("kind") == "rate_sheet_items" {
			result, err = services.ValidateRateSheetItemFile(file, header.Filename)
		} else {
			result, err = services.ValidateMaterialFile(file, header.Filename)
		}
		if err != nil {
			log.Printf("error report: parse %s: %v", header.Filename, err)
			return apiError(e, http.StatusBadRequest, err.Error())
		}

		report, err := services.GenerateErrorReport(result.Errors)
		if err != nil {
			log.Printf("error report: generate: %v", err)
			return apiError(e, http.StatusInternalServerError, "failed to generate report")
		}

		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", `attachment; filename="import-errors.xlsx"`)
		_, err = e.Response.Write(report)
		return err
	}
}
