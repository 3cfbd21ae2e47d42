// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"fenceworks/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestProject creates a project record with the given name and returns it.
func CreateTestProject(t *testing.T, app *pocketbase.PocketBase, name string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("projects")
	if err != nil {
		t.Fatalf("failed to find projects collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("business_unit", "austin-res")
	record.Set("concrete_type", "three_part")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test project: %v", err)
	}

	return record
}

// CreateTestProduct creates a minimal wood-vertical product record.
func CreateTestProduct(t *testing.T, app *pocketbase.PocketBase, sku string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("products")
	if err != nil {
		t.Fatalf("failed to find products collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("sku", sku)
	record.Set("name", "6ft Cedar Nail-Up, Wood Posts")
	record.Set("family", "wood_vertical")
	record.Set("style", "standard")
	record.Set("post_material", "wood")
	record.Set("height_feet", 6)
	record.Set("picket_width_in", 5.5)
	record.Set("rails_per_section", 3)
	record.Set("post_sku", "POST-W-8")
	record.Set("post_name", "8ft 4x4 Treated Pine Post")
	record.Set("picket_sku", "PKT-6")
	record.Set("picket_name", "6ft 1x6 Cedar Picket")
	record.Set("rail_sku", "RAIL-8")
	record.Set("rail_name", "8ft 2x4 Treated Rail")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test product: %v", err)
	}

	return record
}

// CreateTestLineItem creates a line item linked to a project and product.
func CreateTestLineItem(t *testing.T, app *pocketbase.PocketBase, projectID, productID string, footage float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("line_items")
	if err != nil {
		t.Fatalf("failed to find line_items collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("project", projectID)
	record.Set("sort_order", 1)
	record.Set("family", "wood_vertical")
	record.Set("product", productID)
	record.Set("total_footage", footage)
	record.Set("num_lines", 1)
	record.Set("num_gates", 0)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test line item: %v", err)
	}

	return record
}

// CreateTestMaterial creates a material record with the given SKU and cost.
func CreateTestMaterial(t *testing.T, app *pocketbase.PocketBase, sku, name string, baseCost float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("materials")
	if err != nil {
		t.Fatalf("failed to find materials collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("sku", sku)
	record.Set("name", name)
	record.Set("uom", "Each")
	record.Set("base_cost", baseCost)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test material: %v", err)
	}

	return record
}

// CreateTestLaborRate creates a labor rate record.
func CreateTestLaborRate(t *testing.T, app *pocketbase.PocketBase, code, basis string, rate float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("labor_rates")
	if err != nil {
		t.Fatalf("failed to find labor_rates collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("code", code)
	record.Set("description", "Test rate "+code)
	record.Set("basis", basis)
	record.Set("rate", rate)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test labor rate: %v", err)
	}

	return record
}

// CreateTestRateSheet creates an active rate sheet for a scope/target.
func CreateTestRateSheet(t *testing.T, app *pocketbase.PocketBase, name, scope, target, defaultMethod string, defaultPercent float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("rate_sheets")
	if err != nil {
		t.Fatalf("failed to find rate_sheets collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("scope", scope)
	record.Set("target", target)
	if defaultMethod != "" {
		record.Set("default_method", defaultMethod)
		record.Set("default_percent", defaultPercent)
	}
	record.Set("active", true)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test rate sheet: %v", err)
	}

	return record
}

// CreateTestRateSheetItem creates a per-SKU override on a rate sheet.
func CreateTestRateSheetItem(t *testing.T, app *pocketbase.PocketBase, sheetID, sku string, fixedPrice float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("rate_sheet_items")
	if err != nil {
		t.Fatalf("failed to find rate_sheet_items collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("sheet", sheetID)
	record.Set("sku", sku)
	record.Set("fixed_price", fixedPrice)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test rate sheet item: %v", err)
	}

	return record
}

// AssertJSONContains checks that a response body contains all fragments.
func AssertJSONContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected response to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
