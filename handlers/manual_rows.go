package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"fenceworks/services"
)

// HandleManualMaterialAdd appends a user-entered material row to the
// ledger. Manual rows survive recalculation untouched.
func HandleManualMaterialAdd(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		project, err := app.FindRecordById("projects", e.Request.PathValue("id"))
		if err != nil {
			return apiError(e, http.StatusNotFound, "project not found")
		}

		var req services.ManualMaterialInput
		if err := e.BindBody(&req); err != nil {
			return apiError(e, http.StatusBadRequest, "invalid request body")
		}
		if err := req.Validate(); err != nil {
			return validationError(e, err)
		}

		materials, labor, err := loadPriorRows(app, project.Id)
		if err != nil {
			log.Printf("manual material %s: %v", project.Id, err)
			return apiError(e, http.StatusInternalServerError, "failed to load estimate")
		}

		materials = services.AddManualMaterialRow(materials, req.SKU, req.Name, req.UnitCost, req.Qty)

		if err := persistRows(app, project.Id, materials, labor); err != nil {
			log.Printf("manual material %s: %v", project.Id, err)
			return apiError(e, http.StatusInternalServerError, "failed to save estimate")
		}

		payload, err := ledgerPayload(app, project)
		if err != nil {
			log.Printf("manual material %s: %v", project.Id, err)
			return apiError(e, http.StatusInternalServerError, "failed to load estimate")
		}
		return e.JSON(http.StatusCreated, payload)
	}
}

// HandleManualLaborAdd appends a user-entered labor row to the ledger.
func HandleManualLaborAdd(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		project, err := app.FindRecordById("projects", e.Request.PathValue("id"))
		if err != nil {
			return apiError(e, http.StatusNotFound, "project not found")
		}

		var req services.ManualLaborInput
		if err := e.BindBody(&req); err != nil {
			return apiError(e, http.StatusBadRequest, "invalid request body")
		}
		if err := req.Validate(); err != nil {
			return validationError(e, err)
		}

		materials, labor, err := loadPriorRows(app, project.Id)
		if err != nil {
			log.Printf("manual labor %s: %v", project.Id, err)
			return apiError(e, http.StatusInternalServerError, "failed to load estimate")
		}

		labor = services.AddManualLaborRow(labor, req.Code, req.Description, req.Rate, req.Qty)

		if err := persistRows(app, project.Id, materials, labor); err != nil {
			log.Printf("manual labor %s: %v", project.Id, err)
			return apiError(e, http.StatusInternalServerError, "failed to save estimate")
		}

		payload, err := ledgerPayload(app, project)
		if err != nil {
			log.Printf("manual labor %s: %v", project.Id, err)
			return apiError(e, http.StatusInternalServerError, "failed to load estimate")
		}
		return e.JSON(http.StatusCreated, payload)
	}
}

// HandleMaterialRowRemove removes a manual or orphaned material row.
// Rows still backed by geometry cannot be removed.
func HandleMaterialRowRemove(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		project, err := app.FindRecordById("projects", e.Request.PathValue("id"))
		if err != nil {
			return apiError(e, http.StatusNotFound, "project not found")
		}
		sku := e.Request.PathValue("sku")

		materials, labor, err := loadPriorRows(app, project.Id)
		if err != nil {
			log.Printf("remove material row %s: %v", project.Id, err)
			return apiError(e, http.StatusInternalServerError, "failed to load estimate")
		}

		materials, ok := services.RemoveMaterialRow(materials, sku)
		if !ok {
			return apiError(e, http.StatusConflict, "row is backed by calculated quantities and cannot be removed")
		}

		if err := persistRows(app, project.Id, materials, labor); err != nil {
			log.Printf("remove material row %s: %v", project.Id, err)
			return apiError(e, http.StatusInternalServerError, "failed to save estimate")
		}

		payload, err := ledgerPayload(app, project)
		if err != nil {
			log.Printf("remove material row %s: %v", project.Id, err)
			return apiError(e, http.StatusInternalServerError, "failed to load estimate")
		}
		return e.JSON(http.StatusOK, payload)
	}
}

// HandleLaborRowRemove removes a manual or orphaned labor row.
func HandleLaborRowRemove(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		project, err := app.FindRecordById("projects", e.Request.PathValue("id"))
		if err != nil {
			return apiError(e, http.StatusNotFound, "project not found")
		}
		code := e.Request.PathValue("code")

		materials, labor, err := loadPriorRows(app, project.Id)
		if err != nil {
			log.Printf("remove labor row %s: %v", project.Id, err)
			return apiError(e, http.StatusInternalServerError, "failed to load estimate")
		}

		labor, ok := services.RemoveLaborRow(labor, code)
		if !ok {
			return apiError(e, http.StatusConflict, "row is backed by calculated quantities and cannot be removed")
		}

		if err := persistRows(app, project.Id, materials, labor); err != nil {
			log.Printf("remove labor row %s: %v", project.Id, err)
			return apiError(e, http.StatusInternalServerError, "failed to save estimate")
		}

		payload, err := ledgerPayload(app, project)
		if err != nil {
			log.Printf("remove labor row %s: %v", project.Id, err)
			return apiError(e, http.StatusInternalServerError, "failed to load estimate")
		}
		return e.JSON(http.StatusOK, payload)
	}
}
