package main

import (
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"fenceworks/collections"
	"fenceworks/handlers"
)

func main() {
	app := pocketbase.New()

	// Create collections and seed data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		if err := collections.MigrateDefaultConcreteType(app); err != nil {
			log.Printf("Warning: concrete type migration failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// ── Project CRUD ─────────────────────────────────────────
		se.Router.GET("/api/projects", handlers.HandleProjectList(app))
		se.Router.POST("/api/projects", handlers.HandleProjectCreate(app))
		se.Router.GET("/api/projects/{id}", handlers.HandleProjectGet(app))
		se.Router.PATCH("/api/projects/{id}", handlers.HandleProjectUpdate(app))
		se.Router.DELETE("/api/projects/{id}", handlers.HandleProjectDelete(app))

		// ── Line items & recomputation ───────────────────────────
		se.Router.POST("/api/projects/{id}/line-items", handlers.HandleLineItemCreate(app))
		se.Router.PATCH("/api/line-items/{itemId}", handlers.HandleLineItemUpdate(app))
		se.Router.DELETE("/api/line-items/{itemId}", handlers.HandleLineItemDelete(app))
		se.Router.POST("/api/projects/{id}/recalculate", handlers.HandleRecalculate(app))

		// ── Ledger adjustments & manual rows ─────────────────────
		se.Router.PATCH("/api/projects/{id}/materials/{sku}/adjustment", handlers.HandleMaterialAdjustment(app))
		se.Router.PATCH("/api/projects/{id}/labor/{code}/adjustment", handlers.HandleLaborAdjustment(app))
		se.Router.POST("/api/projects/{id}/materials/manual", handlers.HandleManualMaterialAdd(app))
		se.Router.POST("/api/projects/{id}/labor/manual", handlers.HandleManualLaborAdd(app))
		se.Router.DELETE("/api/projects/{id}/materials/{sku}", handlers.HandleMaterialRowRemove(app))
		se.Router.DELETE("/api/projects/{id}/labor/{code}", handlers.HandleLaborRowRemove(app))

		// ── Totals, pricing audit & export ───────────────────────
		se.Router.GET("/api/projects/{id}/totals", handlers.HandleProjectTotals(app))
		se.Router.GET("/api/projects/{id}/prices/{sku}", handlers.HandlePriceAudit(app))
		se.Router.GET("/api/projects/{id}/export/excel", handlers.HandleEstimateExportExcel(app))

		// ── Catalog reference & import ───────────────────────────
		se.Router.GET("/api/options", handlers.HandleOptions())
		se.Router.GET("/api/products", handlers.HandleProductList(app))
		se.Router.GET("/api/materials", handlers.HandleMaterialList(app))
		se.Router.POST("/api/catalog/materials/import", handlers.HandleMaterialImport(app))
		se.Router.POST("/api/rate-sheets/{sheetId}/import", handlers.HandleRateSheetItemImport(app))
		se.Router.POST("/api/catalog/import/error-report", handlers.HandleImportErrorReport(app))

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
