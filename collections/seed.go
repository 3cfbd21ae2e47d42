package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// ── Definition structs ───────────────────────────────────────────────────

type materialDef struct {
	sku      string
	name     string
	uom      string
	baseCost float64
	category string
}

type laborRateDef struct {
	code        string
	description string
	basis       string
	rate        float64
}

type productDef struct {
	sku          string
	name         string
	family       string
	style        string
	postMaterial string
	heightFeet   float64
	fields       map[string]any // family-specific geometry + component fields
}

type rateSheetDef struct {
	name           string
	scope          string
	target         string
	defaultMethod  string
	defaultPercent float64
	items          []rateSheetItemDef
}

type rateSheetItemDef struct {
	sku           string
	fixedPrice    float64
	markupPercent float64
	marginPercent float64
}

type lineItemDef struct {
	sortOrder    int
	family       string
	productSKU   string
	totalFootage float64
	bufferFeet   float64
	numLines     int
	numGates     int
}

// Seed inserts a realistic starter catalog and one demo project so a fresh
// install has something to estimate against. It is idempotent: if any
// project already exists it does nothing.
func Seed(app *pocketbase.PocketBase) error {
	// ── idempotency: skip if projects already exist ──────────────────
	projectsCol, err := app.FindCollectionByNameOrId("projects")
	if err != nil {
		return fmt.Errorf("seed: could not find projects collection: %w", err)
	}
	existing, err := app.FindAllRecords(projectsCol)
	if err != nil {
		return fmt.Errorf("seed: could not query projects: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	log.Println("seed: projects collection is empty – inserting seed data …")

	// ── lookup helper collections ────────────────────────────────────
	materialsCol, err := app.FindCollectionByNameOrId("materials")
	if err != nil {
		return fmt.Errorf("seed: could not find materials collection: %w", err)
	}
	laborRatesCol, err := app.FindCollectionByNameOrId("labor_rates")
	if err != nil {
		return fmt.Errorf("seed: could not find labor_rates collection: %w", err)
	}
	productsCol, err := app.FindCollectionByNameOrId("products")
	if err != nil {
		return fmt.Errorf("seed: could not find products collection: %w", err)
	}
	rateSheetsCol, err := app.FindCollectionByNameOrId("rate_sheets")
	if err != nil {
		return fmt.Errorf("seed: could not find rate_sheets collection: %w", err)
	}
	rateSheetItemsCol, err := app.FindCollectionByNameOrId("rate_sheet_items")
	if err != nil {
		return fmt.Errorf("seed: could not find rate_sheet_items collection: %w", err)
	}
	lineItemsCol, err := app.FindCollectionByNameOrId("line_items")
	if err != nil {
		return fmt.Errorf("seed: could not find line_items collection: %w", err)
	}

	// ── helper: create material ──────────────────────────────────────
	createMaterial := func(d materialDef) error {
		r := core.NewRecord(materialsCol)
		r.Set("sku", d.sku)
		r.Set("name", d.name)
		r.Set("uom", d.uom)
		r.Set("base_cost", d.baseCost)
		r.Set("category", d.category)
		return app.Save(r)
	}

	// ── helper: create labor rate ────────────────────────────────────
	createLaborRate := func(d laborRateDef) error {
		r := core.NewRecord(laborRatesCol)
		r.Set("code", d.code)
		r.Set("description", d.description)
		r.Set("basis", d.basis)
		r.Set("rate", d.rate)
		return app.Save(r)
	}

	// ── helper: create product ───────────────────────────────────────
	createProduct := func(d productDef) error {
		r := core.NewRecord(productsCol)
		r.Set("sku", d.sku)
		r.Set("name", d.name)
		r.Set("family", d.family)
		r.Set("style", d.style)
		r.Set("post_material", d.postMaterial)
		r.Set("height_feet", d.heightFeet)
		for k, v := range d.fields {
			r.Set(k, v)
		}
		return app.Save(r)
	}

	// ── helper: create rate sheet with items ─────────────────────────
	createRateSheet := func(d rateSheetDef) error {
		r := core.NewRecord(rateSheetsCol)
		r.Set("name", d.name)
		r.Set("scope", d.scope)
		r.Set("target", d.target)
		if d.defaultMethod != "" {
			r.Set("default_method", d.defaultMethod)
			r.Set("default_percent", d.defaultPercent)
		}
		r.Set("active", true)
		if err := app.Save(r); err != nil {
			return err
		}

		for _, item := range d.items {
			ir := core.NewRecord(rateSheetItemsCol)
			ir.Set("sheet", r.Id)
			ir.Set("sku", item.sku)
			ir.Set("fixed_price", item.fixedPrice)
			ir.Set("markup_percent", item.markupPercent)
			ir.Set("margin_percent", item.marginPercent)
			if err := app.Save(ir); err != nil {
				return fmt.Errorf("save item %q: %w", item.sku, err)
			}
		}
		return nil
	}

	// ── materials ────────────────────────────────────────────────────
	materials := []materialDef{
		{"POST-W-8", "8ft 4x4 Treated Pine Post", "Each", 11.50, "posts"},
		{"POST-S-9", "9ft Postmaster Steel Post", "Each", 24.75, "posts"},
		{"POST-I-8", "2.5in Ornamental Iron Post", "Each", 32.00, "posts"},
		{"PKT-6", "6ft 1x6 Cedar Picket", "Each", 3.10, "pickets"},
		{"PKT-8", "8ft 1x6 Cedar Picket", "Each", 4.90, "pickets"},
		{"RAIL-8", "8ft 2x4 Treated Rail", "Each", 4.80, "framing"},
		{"CAP-8", "8ft 2x6 Cedar Cap Board", "Each", 9.25, "accessories"},
		{"TRIM-8", "8ft 1x4 Cedar Trim Board", "Each", 3.60, "accessories"},
		{"ROT-8", "8ft 2x6 Treated Rot Board", "Each", 8.75, "accessories"},
		{"BRD-12", "12ft 1x6 Cedar Board", "Each", 8.40, "boards"},
		{"PNL-AM-8", "8ft Ameristar Montage Panel", "Panel", 155.00, "iron"},
		{"PNL-RW-8", "8ft Welded Rail Panel", "Panel", 120.00, "iron"},
		{"BRKT", "Universal Panel Bracket", "Each", 1.85, "iron"},
		{"FAST-PK-300", "Picket Screws (box of 300)", "Box", 18.00, "fasteners"},
		{"FAST-FR-28", "Framing Screws (box of 28)", "Box", 6.50, "fasteners"},
		{"CONC-SAND", "Sand/Gravel Bag", "Bag", 5.00, "concrete"},
		{"CONC-CEM", "Cement Bag", "Bag", 9.10, "concrete"},
		{"CONC-QUIK", "Quick-Mix Bag", "Bag", 5.85, "concrete"},
		{"CONC-BAG-A", "Single-Bag Mix Type A", "Bag", 6.40, "concrete"},
		{"CONC-BAG-B", "Single-Bag Mix Type B", "Bag", 4.25, "concrete"},
	}
	for _, m := range materials {
		if err := createMaterial(m); err != nil {
			return fmt.Errorf("seed: save material %q: %w", m.sku, err)
		}
	}

	// ── labor rates (wood/steel coded pairs) ─────────────────────────
	laborRates := []laborRateDef{
		{"NU6-W", "Install 6ft nail-up fence, wood posts", "per_foot", 6.25},
		{"NU6-S", "Install 6ft nail-up fence, steel posts", "per_foot", 7.10},
		{"NU8-W", "Install 8ft nail-up fence, wood posts", "per_foot", 8.40},
		{"NU8-S", "Install 8ft nail-up fence, steel posts", "per_foot", 9.25},
		{"GN6-W", "Install 6ft good-neighbor fence, wood posts", "per_foot", 7.90},
		{"GN6-S", "Install 6ft good-neighbor fence, steel posts", "per_foot", 8.75},
		{"GN8-W", "Install 8ft good-neighbor fence, wood posts", "per_foot", 9.80},
		{"GN8-S", "Install 8ft good-neighbor fence, steel posts", "per_foot", 10.60},
		{"BOB6-W", "Install 6ft board-on-board fence, wood posts", "per_foot", 8.90},
		{"BOB6-S", "Install 6ft board-on-board fence, steel posts", "per_foot", 9.75},
		{"BOB8-W", "Install 8ft board-on-board fence, wood posts", "per_foot", 10.90},
		{"BOB8-S", "Install 8ft board-on-board fence, steel posts", "per_foot", 11.80},
		{"HZ6-W", "Install 6ft horizontal fence, wood posts", "per_foot", 8.10},
		{"HZ6-S", "Install 6ft horizontal fence, steel posts", "per_foot", 8.95},
		{"HZ8-W", "Install 8ft horizontal fence, wood posts", "per_foot", 10.20},
		{"HZ8-S", "Install 8ft horizontal fence, steel posts", "per_foot", 11.05},
		{"IRP", "Install pre-welded iron panels", "per_foot", 9.50},
		{"IRW", "Install site-welded iron rail", "per_foot", 11.25},
		{"CT-W", "Install cap/trim, wood posts", "per_foot", 1.40},
		{"CT-S", "Install cap/trim, steel posts", "per_foot", 1.60},
		{"RB-W", "Install rot board, wood posts", "per_foot", 1.10},
		{"RB-S", "Install rot board, steel posts", "per_foot", 1.30},
		{"XRAIL", "Install extra rail", "per_extra_rail", 1.10},
		{"GATE6", "Hang gate, 6ft fence", "per_gate", 85.00},
		{"GATE8", "Hang gate, 8ft fence", "per_gate", 115.00},
	}
	for _, lr := range laborRates {
		if err := createLaborRate(lr); err != nil {
			return fmt.Errorf("seed: save labor rate %q: %w", lr.code, err)
		}
	}

	// ── products ─────────────────────────────────────────────────────
	products := []productDef{
		{
			sku: "WV-STD-6", name: "6ft Cedar Nail-Up, Wood Posts",
			family: "wood_vertical", style: "standard", postMaterial: "wood", heightFeet: 6,
			fields: map[string]any{
				"picket_width_in": 5.5, "rails_per_section": 3,
				"post_sku": "POST-W-8", "post_name": "8ft 4x4 Treated Pine Post",
				"picket_sku": "PKT-6", "picket_name": "6ft 1x6 Cedar Picket",
				"rail_sku": "RAIL-8", "rail_name": "8ft 2x4 Treated Rail",
			},
		},
		{
			sku: "WV-STD-8-S", name: "8ft Cedar Nail-Up, Steel Posts",
			family: "wood_vertical", style: "standard", postMaterial: "steel", heightFeet: 8,
			fields: map[string]any{
				"picket_width_in": 5.5, "rails_per_section": 4,
				"post_sku": "POST-S-9", "post_name": "9ft Postmaster Steel Post",
				"picket_sku": "PKT-8", "picket_name": "8ft 1x6 Cedar Picket",
				"rail_sku": "RAIL-8", "rail_name": "8ft 2x4 Treated Rail",
			},
		},
		{
			sku: "WV-GN-6", name: "6ft Good-Neighbor Cap & Trim, Steel Posts",
			family: "wood_vertical", style: "good_neighbor", postMaterial: "steel", heightFeet: 6,
			fields: map[string]any{
				"picket_width_in": 5.5, "rails_per_section": 3,
				"has_cap": true, "has_trim": true, "accessory_board_length_ft": 8,
				"post_sku": "POST-S-9", "post_name": "9ft Postmaster Steel Post",
				"picket_sku": "PKT-6", "picket_name": "6ft 1x6 Cedar Picket",
				"rail_sku": "RAIL-8", "rail_name": "8ft 2x4 Treated Rail",
				"cap_sku": "CAP-8", "cap_name": "8ft 2x6 Cedar Cap Board",
				"trim_sku": "TRIM-8", "trim_name": "8ft 1x4 Cedar Trim Board",
			},
		},
		{
			sku: "WV-BOB-6", name: "6ft Board-on-Board with Rot Board, Wood Posts",
			family: "wood_vertical", style: "board_on_board", postMaterial: "wood", heightFeet: 6,
			fields: map[string]any{
				"picket_width_in": 5.5, "overlap_gap_in": 2.5, "rails_per_section": 3,
				"has_rot_board": true, "accessory_board_length_ft": 8,
				"post_sku": "POST-W-8", "post_name": "8ft 4x4 Treated Pine Post",
				"picket_sku": "PKT-6", "picket_name": "6ft 1x6 Cedar Picket",
				"rail_sku": "RAIL-8", "rail_name": "8ft 2x4 Treated Rail",
				"rot_board_sku": "ROT-8", "rot_board_name": "8ft 2x6 Treated Rot Board",
			},
		},
		{
			sku: "WH-STD-6", name: "6ft Horizontal Cedar, Steel Posts",
			family: "wood_horizontal", style: "standard", postMaterial: "steel", heightFeet: 6,
			fields: map[string]any{
				"board_width_in": 5.5, "board_length_ft": 12,
				"post_sku": "POST-S-9", "post_name": "9ft Postmaster Steel Post",
				"board_sku": "BRD-12", "board_name": "12ft 1x6 Cedar Board",
			},
		},
		{
			sku: "IR-AM-6", name: "6ft Ameristar Montage",
			family: "iron", style: "ameristar", postMaterial: "steel", heightFeet: 6,
			fields: map[string]any{
				"panel_width_ft": 8, "rails_per_panel": 3, "welded_panels": true,
				"post_sku": "POST-I-8", "post_name": "2.5in Ornamental Iron Post",
				"panel_sku": "PNL-AM-8", "panel_name": "8ft Ameristar Montage Panel",
				"bracket_sku": "BRKT", "bracket_name": "Universal Panel Bracket",
			},
		},
		{
			sku: "IR-RW-6", name: "6ft Site-Welded Iron Rail",
			family: "iron", style: "iron_rail", postMaterial: "steel", heightFeet: 6,
			fields: map[string]any{
				"panel_width_ft": 8, "rails_per_panel": 2,
				"post_sku": "POST-I-8", "post_name": "2.5in Ornamental Iron Post",
				"panel_sku": "PNL-RW-8", "panel_name": "8ft Welded Rail Panel",
			},
		},
	}
	for _, p := range products {
		if err := createProduct(p); err != nil {
			return fmt.Errorf("seed: save product %q: %w", p.sku, err)
		}
	}

	// ── rate sheets ──────────────────────────────────────────────────
	rateSheets := []rateSheetDef{
		{
			name: "Austin Residential Default", scope: "bu", target: "austin-res",
			defaultMethod: "margin", defaultPercent: 25,
		},
		{
			name: "DR Horton National", scope: "client", target: "dr-horton",
			defaultMethod: "markup", defaultPercent: 30,
			items: []rateSheetItemDef{
				{sku: "PNL-AM-8", marginPercent: 20},
			},
		},
		{
			name: "Sunfield HOA Program", scope: "community", target: "sunfield",
			items: []rateSheetItemDef{
				{sku: "PKT-6", fixedPrice: 4.25},
				{sku: "POST-S-9", markupPercent: 15},
			},
		},
	}
	for _, rs := range rateSheets {
		if err := createRateSheet(rs); err != nil {
			return fmt.Errorf("seed: save rate sheet %q: %w", rs.name, err)
		}
	}

	// ── demo project with line items ─────────────────────────────────
	project := core.NewRecord(projectsCol)
	project.Set("name", "Sunfield Phase 3 – Lot 118")
	project.Set("community", "sunfield")
	project.Set("client", "dr-horton")
	project.Set("business_unit", "austin-res")
	project.Set("concrete_type", "three_part")
	if err := app.Save(project); err != nil {
		return fmt.Errorf("seed: save project: %w", err)
	}

	productIDs := make(map[string]string, len(products))
	for _, p := range products {
		rec, err := app.FindFirstRecordByData(productsCol, "sku", p.sku)
		if err != nil {
			return fmt.Errorf("seed: reload product %q: %w", p.sku, err)
		}
		productIDs[p.sku] = rec.Id
	}

	lineItems := []lineItemDef{
		{sortOrder: 1, family: "wood_vertical", productSKU: "WV-STD-6",
			totalFootage: 145, bufferFeet: 5, numLines: 2, numGates: 1},
		{sortOrder: 2, family: "iron", productSKU: "IR-AM-6",
			totalFootage: 60, numLines: 1},
	}
	for _, li := range lineItems {
		r := core.NewRecord(lineItemsCol)
		r.Set("project", project.Id)
		r.Set("sort_order", li.sortOrder)
		r.Set("family", li.family)
		r.Set("product", productIDs[li.productSKU])
		r.Set("total_footage", li.totalFootage)
		r.Set("buffer_feet", li.bufferFeet)
		r.Set("num_lines", li.numLines)
		r.Set("num_gates", li.numGates)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save line item %d: %w", li.sortOrder, err)
		}
	}

	log.Println("seed: done")
	return nil
}
