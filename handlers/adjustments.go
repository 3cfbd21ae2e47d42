package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"fenceworks/services"
)

type adjustmentRequest struct {
	Adjustment float64 `json:"adjustment"`
}

// HandleMaterialAdjustment sets the manual quantity adjustment on one
// material row. The adjustment is absolute, not additive: sending 0 clears
// a prior adjustment.
func HandleMaterialAdjustment(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		project, err := app.FindRecordById("projects", e.Request.PathValue("id"))
		if err != nil {
			return apiError(e, http.StatusNotFound, "project not found")
		}
		sku := e.Request.PathValue("sku")
		if sku == "" {
			return apiError(e, http.StatusBadRequest, "sku is required")
		}

		var req adjustmentRequest
		if err := e.BindBody(&req); err != nil {
			return apiError(e, http.StatusBadRequest, "invalid request body")
		}

		materials, labor, err := loadPriorRows(app, project.Id)
		if err != nil {
			log.Printf("material adjustment %s: %v", project.Id, err)
			return apiError(e, http.StatusInternalServerError, "failed to load estimate")
		}

		materials, ok := services.ApplyMaterialAdjustment(materials, sku, req.Adjustment)
		if !ok {
			return apiError(e, http.StatusNotFound, "no material row with that sku")
		}

		if err := persistRows(app, project.Id, materials, labor); err != nil {
			log.Printf("material adjustment %s: %v", project.Id, err)
			return apiError(e, http.StatusInternalServerError, "failed to save estimate")
		}

		payload, err := ledgerPayload(app, project)
		if err != nil {
			log.Printf("material adjustment %s: %v", project.Id, err)
			return apiError(e, http.StatusInternalServerError, "failed to load estimate")
		}
		return e.JSON(http.StatusOK, payload)
	}
}

// HandleLaborAdjustment sets the manual dollar adjustment on one labor row.
func HandleLaborAdjustment(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		project, err := app.FindRecordById("projects", e.Request.PathValue("id"))
		if err != nil {
			return apiError(e, http.StatusNotFound, "project not found")
		}

		code := e.Request.PathValue("code")
		if code == "" {
			return apiError(e, http.StatusBadRequest, "code is required")
		}

		var req adjustmentRequest
		if err := e.BindBody(&req); err != nil {
			return apiError(e, http.StatusBadRequest, "invalid request body")
		}

		materials, labor, err := loadPriorRows(app, project.Id)
		if err != nil {
			log.Printf("labor adjustment %s: %v", project.Id, err)
			return apiError(e, http.StatusInternalServerError, "failed to load estimate")
		}

		labor, ok := services.ApplyLaborAdjustment(labor, code, req.Adjustment)
		if !ok {
			return apiError(e, http.StatusNotFound, "no labor row with that code")
		}

		if err := persistRows(app, project.Id, materials, labor); err != nil {
			log.Printf("labor adjustment %s: %v", project.Id, err)
			return apiError(e, http.StatusInternalServerError, "failed to save estimate")
		}

		payload, err := ledgerPayload(app, project)
		if err != nil {
			log.Printf("labor adjustment %s: %v", project.Id, err)
			return apiError(e, http.StatusInternalServerError, "failed to load estimate")
		}
		return e.JSON(http.StatusOK, payload)
	}
}
