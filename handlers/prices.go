package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"fenceworks/services"
)

// HandlePriceAudit explains where a SKU's price comes from for one
// project's pricing context: which sheet handled it and with which method,
// next to the raw catalog cost.
func HandlePriceAudit(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		project, err := app.FindRecordById("projects", e.Request.PathValue("id"))
		if err != nil {
			return apiError(e, http.StatusNotFound, "project not found")
		}
		sku := e.Request.PathValue("sku")

		cat, err := services.LoadCatalog(app,
			project.GetString("community"),
			project.GetString("client"),
			project.GetString("business_unit"),
		)
		if err != nil {
			log.Printf("price audit %s: %v", project.Id, err)
			return apiError(e, http.StatusInternalServerError, "failed to load catalog")
		}

		m, ok := cat.Material(sku)
		if !ok {
			return apiError(e, http.StatusNotFound, "no material with that sku")
		}

		resolved := cat.UnitPrice(sku)
		return e.JSON(http.StatusOK, map[string]any{
			"sku":      sku,
			"name":     m.Name,
			"baseCost": m.BaseCost,
			"price":    resolved.Price,
			"scope":    resolved.Scope,
			"method":   resolved.Method,
			"sheet":    resolved.Sheet,
		})
	}
}
