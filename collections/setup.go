package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// Setup programmatically creates/ensures the estimation collections exist:
// the project and line-item inputs, the product/material/labor reference
// catalog, the rate-sheet pricing tables and the two persisted ledgers.
func Setup(app *pocketbase.PocketBase) {
	projects := ensureCollection(app, "projects", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "community", Required: false})
		c.Fields.Add(&core.TextField{Name: "client", Required: false})
		c.Fields.Add(&core.TextField{Name: "business_unit", Required: false})
		// Not required so that pre-migration records remain loadable; the
		// concrete backfill migration fills the default.
		c.Fields.Add(&core.SelectField{
			Name:      "concrete_type",
			Required:  false,
			Values:    []string{"three_part", "bag_a", "bag_b"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	products := ensureCollection(app, "products", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "sku", Required: true})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.SelectField{
			Name:      "family",
			Required:  true,
			Values:    []string{"wood_vertical", "wood_horizontal", "iron"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.SelectField{
			Name:      "style",
			Required:  true,
			Values:    []string{"standard", "good_neighbor", "board_on_board", "ameristar", "iron_rail"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.SelectField{
			Name:      "post_material",
			Required:  true,
			Values:    []string{"wood", "steel"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.NumberField{Name: "height_feet", Required: true})
		c.Fields.Add(&core.NumberField{Name: "post_spacing", Required: false})

		// Wood-vertical geometry fields.
		c.Fields.Add(&core.NumberField{Name: "picket_width_in", Required: false})
		c.Fields.Add(&core.NumberField{Name: "overlap_gap_in", Required: false})
		c.Fields.Add(&core.NumberField{Name: "rails_per_section", Required: false})
		c.Fields.Add(&core.NumberField{Name: "extra_rails", Required: false})
		c.Fields.Add(&core.BoolField{Name: "has_cap"})
		c.Fields.Add(&core.BoolField{Name: "has_trim"})
		c.Fields.Add(&core.BoolField{Name: "has_rot_board"})
		c.Fields.Add(&core.NumberField{Name: "accessory_board_length_ft", Required: false})

		// Wood-horizontal geometry fields.
		c.Fields.Add(&core.NumberField{Name: "board_width_in", Required: false})
		c.Fields.Add(&core.NumberField{Name: "board_length_ft", Required: false})
		c.Fields.Add(&core.BoolField{Name: "double_sided"})

		// Iron geometry fields.
		c.Fields.Add(&core.NumberField{Name: "panel_width_ft", Required: false})
		c.Fields.Add(&core.NumberField{Name: "rails_per_panel", Required: false})
		c.Fields.Add(&core.BoolField{Name: "welded_panels"})

		// Component SKU/name pairs the geometry output references.
		for _, comp := range []string{"post", "picket", "rail", "cap", "trim", "rot_board", "board", "panel", "bracket"} {
			c.Fields.Add(&core.TextField{Name: comp + "_sku", Required: false})
			c.Fields.Add(&core.TextField{Name: comp + "_name", Required: false})
		}
	})

	ensureCollection(app, "line_items", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "project",
			Required:      true,
			CollectionId:  projects.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "family",
			Required:  true,
			Values:    []string{"wood_vertical", "wood_horizontal", "iron"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.RelationField{
			Name:         "product",
			Required:     false,
			CollectionId: products.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.NumberField{Name: "total_footage", Required: false})
		c.Fields.Add(&core.NumberField{Name: "buffer_feet", Required: false})
		c.Fields.Add(&core.NumberField{Name: "num_lines", Required: true})
		c.Fields.Add(&core.NumberField{Name: "num_gates", Required: false})
	})

	ensureCollection(app, "materials", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "sku", Required: true})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "uom", Required: false})
		c.Fields.Add(&core.NumberField{Name: "base_cost", Required: false})
		c.Fields.Add(&core.TextField{Name: "category", Required: false})
	})

	ensureCollection(app, "labor_rates", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "code", Required: true})
		c.Fields.Add(&core.TextField{Name: "description", Required: true})
		c.Fields.Add(&core.SelectField{
			Name:      "basis",
			Required:  true,
			Values:    []string{"per_foot", "per_gate", "per_extra_rail"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.NumberField{Name: "rate", Required: true})
	})

	rateSheets := ensureCollection(app, "rate_sheets", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.SelectField{
			Name:      "scope",
			Required:  true,
			Values:    []string{"community", "client", "bu"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "target", Required: true})
		c.Fields.Add(&core.SelectField{
			Name:      "default_method",
			Required:  false,
			Values:    []string{"markup", "margin"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.NumberField{Name: "default_percent", Required: false})
		c.Fields.Add(&core.BoolField{Name: "active"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
	})

	ensureCollection(app, "rate_sheet_items", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "sheet",
			Required:      true,
			CollectionId:  rateSheets.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "sku", Required: true})
		c.Fields.Add(&core.NumberField{Name: "fixed_price", Required: false})
		c.Fields.Add(&core.NumberField{Name: "markup_percent", Required: false})
		c.Fields.Add(&core.NumberField{Name: "margin_percent", Required: false})
	})

	ensureCollection(app, "material_rows", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "project",
			Required:      true,
			CollectionId:  projects.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "sku", Required: true})
		c.Fields.Add(&core.TextField{Name: "name", Required: false})
		c.Fields.Add(&core.NumberField{Name: "unit_cost", Required: false})
		c.Fields.Add(&core.NumberField{Name: "calculated_qty", Required: false})
		c.Fields.Add(&core.NumberField{Name: "rounded_qty", Required: false})
		c.Fields.Add(&core.NumberField{Name: "adjustment", Required: false})
		c.Fields.Add(&core.NumberField{Name: "total_qty", Required: false})
		c.Fields.Add(&core.NumberField{Name: "total_cost", Required: false})
		c.Fields.Add(&core.BoolField{Name: "is_manual"})
		c.Fields.Add(&core.TextField{Name: "price_scope", Required: false})
		c.Fields.Add(&core.TextField{Name: "price_method", Required: false})
		c.Fields.Add(&core.TextField{Name: "price_sheet", Required: false})
	})

	ensureCollection(app, "labor_rows", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "project",
			Required:      true,
			CollectionId:  projects.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "code", Required: true})
		c.Fields.Add(&core.TextField{Name: "description", Required: false})
		c.Fields.Add(&core.NumberField{Name: "rate", Required: false})
		c.Fields.Add(&core.NumberField{Name: "quantity", Required: false})
		c.Fields.Add(&core.NumberField{Name: "calculated_cost", Required: false})
		c.Fields.Add(&core.NumberField{Name: "adjustment", Required: false})
		c.Fields.Add(&core.NumberField{Name: "total_cost", Required: false})
		c.Fields.Add(&core.BoolField{Name: "is_manual"})
	})
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
