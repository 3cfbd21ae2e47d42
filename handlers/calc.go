package handlers

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"fenceworks/services"
)

// calcPayload is the JSON body returned by every endpoint that touches the
// ledgers, so the client always has a consistent view after a mutation.
type calcPayload struct {
	Materials []services.MaterialRow `json:"materials"`
	Labor     []services.LaborRow    `json:"labor"`
	Summary   services.Summary       `json:"summary"`
	Warnings  []string               `json:"warnings,omitempty"`
}

// loadLineItems reads a project's line items and resolves their products.
// A line item whose product record is missing keeps a nil product and adds
// a warning; it contributes nothing to the estimate.
func loadLineItems(app *pocketbase.PocketBase, projectID string) ([]services.LineItem, []string, error) {
	records, err := app.FindRecordsByFilter(
		"line_items",
		"project = {:projectId}",
		"sort_order", 0, 0,
		map[string]any{"projectId": projectID},
	)
	if err != nil {
		return nil, nil, fmt.Errorf("load line items: %w", err)
	}

	var items []services.LineItem
	var warnings []string
	for _, r := range records {
		li := services.LineItem{
			ID:           r.Id,
			Family:       services.FenceFamily(r.GetString("family")),
			TotalFootage: r.GetFloat("total_footage"),
			BufferFeet:   r.GetFloat("buffer_feet"),
			NumLines:     r.GetInt("num_lines"),
			NumGates:     r.GetInt("num_gates"),
		}

		if productID := r.GetString("product"); productID != "" {
			productRecord, err := app.FindRecordById("products", productID)
			if err != nil {
				warnings = append(warnings, fmt.Sprintf("line item %s: product %s not found", r.Id, productID))
			} else if p := services.ProductFromRecord(productRecord); p != nil {
				li.Product = p
			} else {
				warnings = append(warnings, fmt.Sprintf("line item %s: product %s has an unknown family", r.Id, productID))
			}
		}

		items = append(items, li)
	}
	return items, warnings, nil
}

// loadPriorRows reads the persisted ledgers, which carry the adjustments
// and manual rows the next recomputation must preserve.
func loadPriorRows(app *pocketbase.PocketBase, projectID string) ([]services.MaterialRow, []services.LaborRow, error) {
	materialRecords, err := app.FindRecordsByFilter(
		"material_rows",
		"project = {:projectId}",
		"sku", 0, 0,
		map[string]any{"projectId": projectID},
	)
	if err != nil {
		return nil, nil, fmt.Errorf("load material rows: %w", err)
	}

	materials := make([]services.MaterialRow, 0, len(materialRecords))
	for _, r := range materialRecords {
		materials = append(materials, services.MaterialRow{
			SKU:           r.GetString("sku"),
			Name:          r.GetString("name"),
			UnitCost:      r.GetFloat("unit_cost"),
			CalculatedQty: r.GetFloat("calculated_qty"),
			RoundedQty:    r.GetFloat("rounded_qty"),
			Adjustment:    r.GetFloat("adjustment"),
			TotalQty:      r.GetFloat("total_qty"),
			TotalCost:     r.GetFloat("total_cost"),
			IsManual:      r.GetBool("is_manual"),
			PriceScope:    r.GetString("price_scope"),
			PriceMethod:   r.GetString("price_method"),
			PriceSheet:    r.GetString("price_sheet"),
		})
	}

	laborRecords, err := app.FindRecordsByFilter(
		"labor_rows",
		"project = {:projectId}",
		"code", 0, 0,
		map[string]any{"projectId": projectID},
	)
	if err != nil {
		return nil, nil, fmt.Errorf("load labor rows: %w", err)
	}

	labor := make([]services.LaborRow, 0, len(laborRecords))
	for _, r := range laborRecords {
		labor = append(labor, services.LaborRow{
			Code:           r.GetString("code"),
			Description:    r.GetString("description"),
			Rate:           r.GetFloat("rate"),
			Quantity:       r.GetFloat("quantity"),
			CalculatedCost: r.GetFloat("calculated_cost"),
			Adjustment:     r.GetFloat("adjustment"),
			TotalCost:      r.GetFloat("total_cost"),
			IsManual:       r.GetBool("is_manual"),
		})
	}

	return materials, labor, nil
}

// persistRows replaces a project's persisted ledgers with fresh ones.
func persistRows(app *pocketbase.PocketBase, projectID string, materials []services.MaterialRow, labor []services.LaborRow) error {
	materialRowsCol, err := app.FindCollectionByNameOrId("material_rows")
	if err != nil {
		return fmt.Errorf("persist rows: %w", err)
	}
	laborRowsCol, err := app.FindCollectionByNameOrId("labor_rows")
	if err != nil {
		return fmt.Errorf("persist rows: %w", err)
	}

	for _, col := range []*core.Collection{materialRowsCol, laborRowsCol} {
		old, err := app.FindRecordsByFilter(col, "project = {:projectId}", "", 0, 0,
			map[string]any{"projectId": projectID})
		if err != nil {
			return fmt.Errorf("persist rows: load %s: %w", col.Name, err)
		}
		for _, r := range old {
			if err := app.Delete(r); err != nil {
				return fmt.Errorf("persist rows: clear %s %s: %w", col.Name, r.Id, err)
			}
		}
	}

	for _, m := range materials {
		r := core.NewRecord(materialRowsCol)
		r.Set("project", projectID)
		r.Set("sku", m.SKU)
		r.Set("name", m.Name)
		r.Set("unit_cost", m.UnitCost)
		r.Set("calculated_qty", m.CalculatedQty)
		r.Set("rounded_qty", m.RoundedQty)
		r.Set("adjustment", m.Adjustment)
		r.Set("total_qty", m.TotalQty)
		r.Set("total_cost", m.TotalCost)
		r.Set("is_manual", m.IsManual)
		r.Set("price_scope", m.PriceScope)
		r.Set("price_method", m.PriceMethod)
		r.Set("price_sheet", m.PriceSheet)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("persist rows: save material %s: %w", m.SKU, err)
		}
	}

	for _, l := range labor {
		r := core.NewRecord(laborRowsCol)
		r.Set("project", projectID)
		r.Set("code", l.Code)
		r.Set("description", l.Description)
		r.Set("rate", l.Rate)
		r.Set("quantity", l.Quantity)
		r.Set("calculated_cost", l.CalculatedCost)
		r.Set("adjustment", l.Adjustment)
		r.Set("total_cost", l.TotalCost)
		r.Set("is_manual", l.IsManual)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("persist rows: save labor %s: %w", l.Code, err)
		}
	}

	return nil
}

// recalcProject runs the full pipeline for one project and persists the new
// ledgers. Every line-item mutation and explicit recalculate call funnels
// through here.
func recalcProject(app *pocketbase.PocketBase, project *core.Record) (*calcPayload, error) {
	cat, err := services.LoadCatalog(app,
		project.GetString("community"),
		project.GetString("client"),
		project.GetString("business_unit"),
	)
	if err != nil {
		return nil, err
	}

	items, warnings, err := loadLineItems(app, project.Id)
	if err != nil {
		return nil, err
	}

	priorMaterials, priorLabor, err := loadPriorRows(app, project.Id)
	if err != nil {
		return nil, err
	}

	concreteType := services.ConcreteType(project.GetString("concrete_type"))
	if concreteType == "" {
		concreteType = services.ConcreteThreePart
	}

	result := services.Calculate(services.CalcInput{
		LineItems:      items,
		ConcreteType:   concreteType,
		PriorMaterials: priorMaterials,
		PriorLabor:     priorLabor,
		Catalog:        cat,
	})

	if err := persistRows(app, project.Id, result.Materials, result.Labor); err != nil {
		return nil, err
	}

	warnings = append(warnings, result.Warnings...)
	for _, w := range warnings {
		log.Printf("recalc %s: %s", project.Id, w)
	}

	return &calcPayload{
		Materials: result.Materials,
		Labor:     result.Labor,
		Summary:   services.Summarize(result.Materials, result.Labor, services.NetFootage(items)),
		Warnings:  warnings,
	}, nil
}

// ledgerPayload rebuilds the response body from the persisted ledgers
// without recomputing geometry. Adjustment and manual-row endpoints use it.
func ledgerPayload(app *pocketbase.PocketBase, project *core.Record) (*calcPayload, error) {
	materials, labor, err := loadPriorRows(app, project.Id)
	if err != nil {
		return nil, err
	}
	items, _, err := loadLineItems(app, project.Id)
	if err != nil {
		return nil, err
	}
	return &calcPayload{
		Materials: materials,
		Labor:     labor,
		Summary:   services.Summarize(materials, labor, services.NetFootage(items)),
	}, nil
}
