package services

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// Material is one purchasable item from the materials table.
type Material struct {
	SKU      string
	Name     string
	UOM      string
	BaseCost float64
	Category string
}

// LaborRate is one priced labor code from the labor_rates table.
type LaborRate struct {
	Code        string
	Description string
	Basis       LaborBasis
	Rate        float64
}

// Catalog is the read-only reference data one recomputation runs against.
// It is loaded once per request so every line item prices against the same
// snapshot.
type Catalog struct {
	Products   map[string]*Product
	Materials  map[string]Material
	LaborRates map[string]LaborRate
	Sheets     SheetSet
}

// Material looks up a material definition by SKU.
func (c *Catalog) Material(sku string) (Material, bool) {
	m, ok := c.Materials[sku]
	return m, ok
}

// LaborRate looks up a labor rate by code.
func (c *Catalog) LaborRate(code string) (LaborRate, bool) {
	lr, ok := c.LaborRates[code]
	return lr, ok
}

// Product looks up a product by SKU.
func (c *Catalog) Product(sku string) (*Product, bool) {
	p, ok := c.Products[sku]
	return p, ok
}

// UnitPrice resolves a material's sell price through the rate-sheet
// hierarchy. Unknown SKUs resolve to zero cost passthrough.
func (c *Catalog) UnitPrice(sku string) ResolvedPrice {
	var cost float64
	if m, ok := c.Materials[sku]; ok {
		cost = m.BaseCost
	}
	return ResolvePrice(sku, cost, c.Sheets)
}

// LoadCatalog reads the full reference dataset: products, materials and
// labor rates, plus the rate sheets visible from the project's community,
// client and business unit.
func LoadCatalog(app *pocketbase.PocketBase, community, client, businessUnit string) (*Catalog, error) {
	cat := &Catalog{
		Products:   make(map[string]*Product),
		Materials:  make(map[string]Material),
		LaborRates: make(map[string]LaborRate),
	}

	materialRecords, err := app.FindAllRecords("materials")
	if err != nil {
		return nil, fmt.Errorf("catalog: load materials: %w", err)
	}
	for _, r := range materialRecords {
		m := Material{
			SKU:      r.GetString("sku"),
			Name:     r.GetString("name"),
			UOM:      r.GetString("uom"),
			BaseCost: r.GetFloat("base_cost"),
			Category: r.GetString("category"),
		}
		cat.Materials[m.SKU] = m
	}

	rateRecords, err := app.FindAllRecords("labor_rates")
	if err != nil {
		return nil, fmt.Errorf("catalog: load labor rates: %w", err)
	}
	for _, r := range rateRecords {
		lr := LaborRate{
			Code:        r.GetString("code"),
			Description: r.GetString("description"),
			Basis:       LaborBasis(r.GetString("basis")),
			Rate:        r.GetFloat("rate"),
		}
		cat.LaborRates[lr.Code] = lr
	}

	productRecords, err := app.FindAllRecords("products")
	if err != nil {
		return nil, fmt.Errorf("catalog: load products: %w", err)
	}
	for _, r := range productRecords {
		p := ProductFromRecord(r)
		if p == nil {
			log.Printf("catalog: product %s has unknown family %q, skipping", r.GetString("sku"), r.GetString("family"))
			continue
		}
		cat.Products[p.SKU] = p
	}

	sheets, err := loadSheetSet(app, community, client, businessUnit)
	if err != nil {
		return nil, err
	}
	cat.Sheets = sheets

	return cat, nil
}

// ProductFromRecord builds a Product from a flat products record. The
// family field decides which spec variant the geometry fields populate.
// Returns nil for an unknown family.
func ProductFromRecord(r *core.Record) *Product {
	p := &Product{
		SKU:          r.GetString("sku"),
		Name:         r.GetString("name"),
		PostMaterial: PostMaterial(r.GetString("post_material")),
		HeightFeet:   r.GetFloat("height_feet"),
	}

	switch FenceFamily(r.GetString("family")) {
	case FamilyWoodVertical:
		p.Spec = WoodVerticalSpec{
			Style:                  StyleTag(r.GetString("style")),
			PostSpacing:            r.GetFloat("post_spacing"),
			PicketWidthIn:          r.GetFloat("picket_width_in"),
			OverlapGapIn:           r.GetFloat("overlap_gap_in"),
			RailsPerSection:        r.GetInt("rails_per_section"),
			ExtraRails:             r.GetInt("extra_rails"),
			HasCap:                 r.GetBool("has_cap"),
			HasTrim:                r.GetBool("has_trim"),
			HasRotBoard:            r.GetBool("has_rot_board"),
			AccessoryBoardLengthFt: r.GetFloat("accessory_board_length_ft"),
			PostSKU:                r.GetString("post_sku"),
			PicketSKU:              r.GetString("picket_sku"),
			RailSKU:                r.GetString("rail_sku"),
			CapSKU:                 r.GetString("cap_sku"),
			TrimSKU:                r.GetString("trim_sku"),
			RotBoardSKU:            r.GetString("rot_board_sku"),
			PostName:               r.GetString("post_name"),
			PicketName:             r.GetString("picket_name"),
			RailName:               r.GetString("rail_name"),
			CapName:                r.GetString("cap_name"),
			TrimName:               r.GetString("trim_name"),
			RotName:                r.GetString("rot_board_name"),
		}
	case FamilyWoodHorizontal:
		p.Spec = WoodHorizontalSpec{
			Style:         StyleTag(r.GetString("style")),
			PostSpacing:   r.GetFloat("post_spacing"),
			BoardWidthIn:  r.GetFloat("board_width_in"),
			BoardLengthFt: r.GetFloat("board_length_ft"),
			DoubleSided:   r.GetBool("double_sided"),
			PostSKU:       r.GetString("post_sku"),
			BoardSKU:      r.GetString("board_sku"),
			PostName:      r.GetString("post_name"),
			BoardName:     r.GetString("board_name"),
		}
	case FamilyIron:
		p.Spec = IronSpec{
			Style:         StyleTag(r.GetString("style")),
			PanelWidthFt:  r.GetFloat("panel_width_ft"),
			RailsPerPanel: r.GetInt("rails_per_panel"),
			WeldedPanels:  r.GetBool("welded_panels"),
			PostSKU:       r.GetString("post_sku"),
			PanelSKU:      r.GetString("panel_sku"),
			BracketSKU:    r.GetString("bracket_sku"),
			PostName:      r.GetString("post_name"),
			PanelName:     r.GetString("panel_name"),
			BracketName:   r.GetString("bracket_name"),
		}
	default:
		return nil
	}

	return p
}

// loadSheetSet picks the rate sheets that apply to a project. Each scope
// slot fills from the first active sheet whose target matches; an empty
// target string on the project simply leaves the slot nil.
func loadSheetSet(app *pocketbase.PocketBase, community, client, businessUnit string) (SheetSet, error) {
	var set SheetSet

	load := func(scope, target string) (*RateSheet, error) {
		if target == "" {
			return nil, nil
		}
		records, err := app.FindRecordsByFilter(
			"rate_sheets",
			"scope = {:scope} && target = {:target} && active = true",
			"-created", 1, 0,
			map[string]any{"scope": scope, "target": target},
		)
		if err != nil || len(records) == 0 {
			return nil, nil
		}
		return sheetFromRecord(app, records[0])
	}

	var err error
	if set.Community, err = load(ScopeCommunity, community); err != nil {
		return set, err
	}
	if set.Client, err = load(ScopeClient, client); err != nil {
		return set, err
	}
	if set.BusinessUnit, err = load(ScopeBU, businessUnit); err != nil {
		return set, err
	}
	return set, nil
}

func sheetFromRecord(app *pocketbase.PocketBase, r *core.Record) (*RateSheet, error) {
	sheet := &RateSheet{
		Name:           r.GetString("name"),
		Scope:          r.GetString("scope"),
		DefaultMethod:  PricingMethod(r.GetString("default_method")),
		DefaultPercent: r.GetFloat("default_percent"),
		Items:          make(map[string]RateSheetItem),
	}

	items, err := app.FindRecordsByFilter(
		"rate_sheet_items",
		"sheet = {:sheetId}",
		"sku", 0, 0,
		map[string]any{"sheetId": r.Id},
	)
	if err != nil {
		return nil, fmt.Errorf("catalog: load items for sheet %s: %w", sheet.Name, err)
	}
	for _, item := range items {
		ri := RateSheetItem{
			SKU:           item.GetString("sku"),
			FixedPrice:    item.GetFloat("fixed_price"),
			MarkupPercent: item.GetFloat("markup_percent"),
			MarginPercent: item.GetFloat("margin_percent"),
		}
		sheet.Items[ri.SKU] = ri
	}

	return sheet, nil
}
