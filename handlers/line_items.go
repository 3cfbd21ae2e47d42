package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"fenceworks/services"
)

type lineItemRequest struct {
	Family       string  `json:"family"`
	Product      string  `json:"product"`
	TotalFootage float64 `json:"totalFootage"`
	BufferFeet   float64 `json:"bufferFeet"`
	NumLines     int     `json:"numLines"`
	NumGates     int     `json:"numGates"`
	SortOrder    int     `json:"sortOrder"`
}

func (req lineItemRequest) toLineItem() services.LineItem {
	return services.LineItem{
		Family:       services.FenceFamily(req.Family),
		TotalFootage: req.TotalFootage,
		BufferFeet:   req.BufferFeet,
		NumLines:     req.NumLines,
		NumGates:     req.NumGates,
	}
}

// resolveProduct checks the product reference on a line item request. An
// empty id is fine; the line item just contributes nothing yet. A non-empty
// id must point at an existing product of the same family.
func resolveProduct(app *pocketbase.PocketBase, productID, family string) (int, string) {
	if productID == "" {
		return 0, ""
	}
	r, err := app.FindRecordById("products", productID)
	if err != nil {
		return http.StatusBadRequest, "product not found"
	}
	if r.GetString("family") != family {
		return http.StatusBadRequest, "product family does not match line item family"
	}
	return 0, ""
}

// HandleLineItemCreate adds a line item to a project and recalculates.
func HandleLineItemCreate(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		project, err := app.FindRecordById("projects", e.Request.PathValue("id"))
		if err != nil {
			return apiError(e, http.StatusNotFound, "project not found")
		}

		var req lineItemRequest
		if err := e.BindBody(&req); err != nil {
			return apiError(e, http.StatusBadRequest, "invalid request body")
		}
		if err := req.toLineItem().Validate(); err != nil {
			return validationError(e, err)
		}
		if status, msg := resolveProduct(app, req.Product, req.Family); status != 0 {
			return apiError(e, status, msg)
		}

		col, err := app.FindCollectionByNameOrId("line_items")
		if err != nil {
			log.Printf("line item create: %v", err)
			return apiError(e, http.StatusInternalServerError, "failed to create line item")
		}

		r := core.NewRecord(col)
		r.Set("project", project.Id)
		r.Set("sort_order", req.SortOrder)
		r.Set("family", req.Family)
		r.Set("product", req.Product)
		r.Set("total_footage", req.TotalFootage)
		r.Set("buffer_feet", req.BufferFeet)
		r.Set("num_lines", req.NumLines)
		r.Set("num_gates", req.NumGates)
		if err := app.Save(r); err != nil {
			log.Printf("line item create: save: %v", err)
			return apiError(e, http.StatusInternalServerError, "failed to create line item")
		}

		payload, err := recalcProject(app, project)
		if err != nil {
			log.Printf("line item create: recalc: %v", err)
			return apiError(e, http.StatusInternalServerError, "failed to recalculate estimate")
		}
		return e.JSON(http.StatusCreated, map[string]any{
			"lineItem":  r.Id,
			"materials": payload.Materials,
			"labor":     payload.Labor,
			"summary":   payload.Summary,
			"warnings":  payload.Warnings,
		})
	}
}

// HandleLineItemUpdate edits a line item's dimensions or product and
// recalculates the project.
func HandleLineItemUpdate(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		item, err := app.FindRecordById("line_items", e.Request.PathValue("itemId"))
		if err != nil {
			return apiError(e, http.StatusNotFound, "line item not found")
		}
		project, err := app.FindRecordById("projects", item.GetString("project"))
		if err != nil {
			return apiError(e, http.StatusNotFound, "project not found")
		}

		var req lineItemRequest
		if err := e.BindBody(&req); err != nil {
			return apiError(e, http.StatusBadRequest, "invalid request body")
		}
		if err := req.toLineItem().Validate(); err != nil {
			return validationError(e, err)
		}
		if status, msg := resolveProduct(app, req.Product, req.Family); status != 0 {
			return apiError(e, status, msg)
		}

		item.Set("sort_order", req.SortOrder)
		item.Set("family", req.Family)
		item.Set("product", req.Product)
		item.Set("total_footage", req.TotalFootage)
		item.Set("buffer_feet", req.BufferFeet)
		item.Set("num_lines", req.NumLines)
		item.Set("num_gates", req.NumGates)
		if err := app.Save(item); err != nil {
			log.Printf("line item update %s: save: %v", item.Id, err)
			return apiError(e, http.StatusInternalServerError, "failed to update line item")
		}

		payload, err := recalcProject(app, project)
		if err != nil {
			log.Printf("line item update %s: recalc: %v", item.Id, err)
			return apiError(e, http.StatusInternalServerError, "failed to recalculate estimate")
		}
		return e.JSON(http.StatusOK, map[string]any{
			"lineItem":  item.Id,
			"materials": payload.Materials,
			"labor":     payload.Labor,
			"summary":   payload.Summary,
			"warnings":  payload.Warnings,
		})
	}
}

// HandleLineItemDelete removes a line item and recalculates. Calculated
// rows that lose all their quantity but carry an adjustment stay on the
// ledger zeroed out.
func HandleLineItemDelete(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		item, err := app.FindRecordById("line_items", e.Request.PathValue("itemId"))
		if err != nil {
			return apiError(e, http.StatusNotFound, "line item not found")
		}
		project, err := app.FindRecordById("projects", item.GetString("project"))
		if err != nil {
			return apiError(e, http.StatusNotFound, "project not found")
		}

		if err := app.Delete(item); err != nil {
			log.Printf("line item delete %s: %v", item.Id, err)
			return apiError(e, http.StatusInternalServerError, "failed to delete line item")
		}

		payload, err := recalcProject(app, project)
		if err != nil {
			log.Printf("line item delete %s: recalc: %v", item.Id, err)
			return apiError(e, http.StatusInternalServerError, "failed to recalculate estimate")
		}
		return e.JSON(http.StatusOK, map[string]any{
			"deleted":   item.Id,
			"materials": payload.Materials,
			"labor":     payload.Labor,
			"summary":   payload.Summary,
			"warnings":  payload.Warnings,
		})
	}
}

// HandleRecalculate reruns the full pipeline for a project on demand.
func HandleRecalculate(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		project, err := app.FindRecordById("projects", e.Request.PathValue("id"))
		if err != nil {
			return apiError(e, http.StatusNotFound, "project not found")
		}
		payload, err := recalcProject(app, project)
		if err != nil {
			log.Printf("recalculate %s: %v", project.Id, err)
			return apiError(e, http.StatusInternalServerError, "failed to recalculate estimate")
		}
		return e.JSON(http.StatusOK, payload)
	}
}
