package collections_test

import (
	"testing"

	"fenceworks/collections"
	"fenceworks/testhelpers"

	"github.com/pocketbase/pocketbase/core"
)

// expectedCollections is the full list of collections that Setup() must create.
var expectedCollections = []string{
	"projects",
	"line_items",
	"products",
	"materials",
	"labor_rates",
	"rate_sheets",
	"rate_sheet_items",
	"material_rows",
	"labor_rows",
}

func TestSetup_AllCollectionsExist(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	for _, name := range expectedCollections {
		col, err := app.FindCollectionByNameOrId(name)
		if err != nil {
			t.Errorf("collection %q not found after Setup(): %v", name, err)
			continue
		}
		if col.Name != name {
			t.Errorf("expected collection name %q, got %q", name, col.Name)
		}
	}
}

func TestSetup_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t) // Setup() already called once via NewTestApp

	ids := make(map[string]string)
	for _, name := range expectedCollections {
		col, _ := app.FindCollectionByNameOrId(name)
		ids[name] = col.Id
	}

	collections.Setup(app)

	for _, name := range expectedCollections {
		col, err := app.FindCollectionByNameOrId(name)
		if err != nil {
			t.Errorf("collection %q missing after second Setup(): %v", name, err)
			continue
		}
		if col.Id != ids[name] {
			t.Errorf("collection %q id changed after second Setup(): %s -> %s", name, ids[name], col.Id)
		}
	}
}

func TestSetup_ProjectFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	col, _ := app.FindCollectionByNameOrId("projects")

	for _, f := range []string{"name", "community", "client", "business_unit", "concrete_type", "created", "updated"} {
		if col.Fields.GetByName(f) == nil {
			t.Errorf("projects: missing field %q", f)
		}
	}
}

func TestSetup_LineItemRelations(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	col, _ := app.FindCollectionByNameOrId("line_items")

	projectField, ok := col.Fields.GetByName("project").(*core.RelationField)
	if !ok {
		t.Fatal("line_items: project field is not a relation")
	}
	if !projectField.CascadeDelete {
		t.Error("line_items: deleting a project should cascade to its line items")
	}

	productField, ok := col.Fields.GetByName("product").(*core.RelationField)
	if !ok {
		t.Fatal("line_items: product field is not a relation")
	}
	if productField.Required {
		t.Error("line_items: product must be optional while the user fills the form")
	}
}

func TestSetup_ProductGeometryFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	col, _ := app.FindCollectionByNameOrId("products")

	fields := []string{
		"family", "style", "post_material", "height_feet",
		"picket_width_in", "overlap_gap_in", "rails_per_section",
		"board_width_in", "board_length_ft", "double_sided",
		"panel_width_ft", "rails_per_panel", "welded_panels",
		"post_sku", "picket_sku", "rail_sku", "board_sku", "panel_sku", "bracket_sku",
	}
	for _, f := range fields {
		if col.Fields.GetByName(f) == nil {
			t.Errorf("products: missing field %q", f)
		}
	}
}

func TestSetup_LedgerFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	materialRows, _ := app.FindCollectionByNameOrId("material_rows")
	for _, f := range []string{"sku", "unit_cost", "calculated_qty", "rounded_qty", "adjustment", "total_qty", "total_cost", "is_manual", "price_scope", "price_method", "price_sheet"} {
		if materialRows.Fields.GetByName(f) == nil {
			t.Errorf("material_rows: missing field %q", f)
		}
	}

	laborRows, _ := app.FindCollectionByNameOrId("labor_rows")
	for _, f := range []string{"code", "rate", "quantity", "calculated_cost", "adjustment", "total_cost", "is_manual"} {
		if laborRows.Fields.GetByName(f) == nil {
			t.Errorf("labor_rows: missing field %q", f)
		}
	}
}

func TestSetup_RateSheetScopes(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	col, _ := app.FindCollectionByNameOrId("rate_sheets")

	scopeField, ok := col.Fields.GetByName("scope").(*core.SelectField)
	if !ok {
		t.Fatal("rate_sheets: scope field is not a select")
	}
	want := map[string]bool{"community": true, "client": true, "bu": true}
	for _, v := range scopeField.Values {
		if !want[v] {
			t.Errorf("rate_sheets: unexpected scope value %q", v)
		}
		delete(want, v)
	}
	for v := range want {
		t.Errorf("rate_sheets: missing scope value %q", v)
	}
}
