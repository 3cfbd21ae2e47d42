package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"fenceworks/services"
)

// HandleOptions returns the dropdown values the estimate form needs.
func HandleOptions() func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return e.JSON(http.StatusOK, map[string]any{
			"families": services.FamilyOptions,
			"styles":   services.StyleOptions,
			"concrete": services.ConcreteOptions,
			"uoms":     services.UOMOptions,
		})
	}
}

// HandleProductList returns the product catalog, optionally filtered by
// family for the line-item product picker.
func HandleProductList(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		filter := "id != ''"
		params := map[string]any{}
		if family := e.Request.URL.Query().Get("family"); family != "" {
			filter = "family = {:family}"
			params["family"] = family
		}

		records, err := app.FindRecordsByFilter("products", filter, "sku", 0, 0, params)
		if err != nil {
			log.Printf("product list: %v", err)
			return apiError(e, http.StatusInternalServerError, "failed to load products")
		}

		payload := make([]map[string]any, 0, len(records))
		for _, r := range records {
			payload = append(payload, map[string]any{
				"id":         r.Id,
				"sku":        r.GetString("sku"),
				"name":       r.GetString("name"),
				"family":     r.GetString("family"),
				"style":      r.GetString("style"),
				"heightFeet": r.GetFloat("height_feet"),
			})
		}
		return e.JSON(http.StatusOK, payload)
	}
}

// HandleMaterialList returns the material catalog for the manual-row picker.
func HandleMaterialList(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		records, err := app.FindRecordsByFilter("materials", "id != ''", "sku", 0, 0, nil)
		if err != nil {
			log.Printf("material list: %v", err)
			return apiError(e, http.StatusInternalServerError, "failed to load materials")
		}

		payload := make([]map[string]any, 0, len(records))
		for _, r := range records {
			payload = append(payload, map[string]any{
				"sku":      r.GetString("sku"),
				"name":     r.GetString("name"),
				"uom":      r.GetString("uom"),
				"baseCost": r.GetFloat("base_cost"),
				"category": r.GetString("category"),
			})
		}
		return e.JSON(http.StatusOK, payload)
	}
}
