// Package services contains the fence estimation engine: geometry
// calculators, quantity aggregation, concrete sizing, labor code selection
// and rate-sheet price resolution.
package services

import "math"

// FenceFamily identifies which geometry calculator applies to a line item.
type FenceFamily string

const (
	FamilyWoodVertical   FenceFamily = "wood_vertical"
	FamilyWoodHorizontal FenceFamily = "wood_horizontal"
	FamilyIron           FenceFamily = "iron"
)

// StyleTag identifies the construction style within a family.
type StyleTag string

const (
	StyleStandard     StyleTag = "standard"
	StyleGoodNeighbor StyleTag = "good_neighbor"
	StyleBoardOnBoard StyleTag = "board_on_board"
	StyleAmeristar    StyleTag = "ameristar"
	StyleIronRail     StyleTag = "iron_rail"
)

// PostMaterial drives labor code selection (wood vs steel coded variants).
type PostMaterial string

const (
	PostWood  PostMaterial = "wood"
	PostSteel PostMaterial = "steel"
)

// Calculation constants. The waste factor and spacing values are calibrated
// against field install data and change only together.
const (
	defaultPostSpacing  = 8.0
	goodNeighborSpacing = 7.71
	wasteFactor         = 1.025
	goodNeighborFactor  = 1.10
	sectionLengthFt     = 8.0

	picketScrewsPerRailCrossing = 2
	framingScrewsPerRail        = 4
	framingScrewsPerAccessory   = 2

	// Fastener SKUs come in fixed box sizes. Box quantities are emitted as
	// fractions; the aggregator rounds the project-wide sum up once.
	PicketScrewBoxSize  = 300.0
	FramingScrewBoxSize = 28.0
)

// Fastener SKUs are shared across all wood products.
const (
	SKUPicketScrewBox  = "FAST-PK-300"
	SKUFramingScrewBox = "FAST-FR-28"
)

// Product is one catalog SKU. Spec holds the family-specific geometry fields;
// the type switch in CalculateGeometry is the complete dispatch table.
type Product struct {
	SKU          string
	Name         string
	PostMaterial PostMaterial
	HeightFeet   float64
	Spec         ProductSpec
}

// ProductSpec is the tagged variant carrying only the fields one family's
// formulas read. Implemented by WoodVerticalSpec, WoodHorizontalSpec and
// IronSpec; the interface is sealed to this package.
type ProductSpec interface {
	isProductSpec()
}

// WoodVerticalSpec describes a picket fence product.
type WoodVerticalSpec struct {
	Style                  StyleTag
	PostSpacing            float64 // feet, 0 means the 8 ft default
	PicketWidthIn          float64 // actual (not nominal) picket width
	OverlapGapIn           float64 // board-on-board only
	RailsPerSection        int
	ExtraRails             int // rails beyond the style's default count
	HasCap                 bool
	HasTrim                bool
	HasRotBoard            bool
	AccessoryBoardLengthFt float64

	PostSKU, PicketSKU, RailSKU    string
	CapSKU, TrimSKU, RotBoardSKU   string
	PostName, PicketName, RailName string
	CapName, TrimName, RotName     string
}

func (WoodVerticalSpec) isProductSpec() {}

// WoodHorizontalSpec describes a horizontal-board fence product.
type WoodHorizontalSpec struct {
	Style         StyleTag
	PostSpacing   float64
	BoardWidthIn  float64 // actual board width, sets boards-high
	BoardLengthFt float64
	DoubleSided   bool

	PostSKU, BoardSKU   string
	PostName, BoardName string
}

func (WoodHorizontalSpec) isProductSpec() {}

// IronSpec describes an ornamental iron fence product. Welded styles ship
// pre-welded panels that mount with brackets; site-welded styles need none.
type IronSpec struct {
	Style         StyleTag
	PanelWidthFt  float64
	RailsPerPanel int
	WeldedPanels  bool

	PostSKU, PanelSKU, BracketSKU    string
	PostName, PanelName, BracketName string
}

func (IronSpec) isProductSpec() {}

// LineItem is one fence run in an estimate.
type LineItem struct {
	ID           string
	Family       FenceFamily
	Product      *Product // nil when the user has not picked a product yet
	TotalFootage float64
	BufferFeet   float64
	NumLines     int
	NumGates     int
}

// NetLength is the footage that actually drives material quantities.
func (li LineItem) NetLength() float64 {
	return math.Max(0, li.TotalFootage-li.BufferFeet)
}

// RawMaterial is an unrounded material quantity contributed by one line item.
type RawMaterial struct {
	SKU  string
	Name string
	Qty  float64
}

// GeometryResult holds one line item's raw material output plus its post
// count, which feeds the project-wide concrete sizing.
type GeometryResult struct {
	Materials []RawMaterial
	Posts     float64
}

// CalculateGeometry maps a line item to its raw material quantities. Line
// items with no product or zero net length contribute nothing; that is a
// normal state while the user is still filling the form, not an error.
func CalculateGeometry(li LineItem) GeometryResult {
	if li.Product == nil || li.NetLength() <= 0 {
		return GeometryResult{}
	}

	net := li.NetLength()
	switch spec := li.Product.Spec.(type) {
	case WoodVerticalSpec:
		return woodVerticalGeometry(net, li.NumLines, spec)
	case WoodHorizontalSpec:
		return woodHorizontalGeometry(net, li.NumLines, li.Product.HeightFeet, spec)
	case IronSpec:
		return ironGeometry(net, li.NumLines, spec)
	default:
		return GeometryResult{}
	}
}

func woodVerticalGeometry(net float64, lines int, spec WoodVerticalSpec) GeometryResult {
	posts := postCount(net, verticalPostSpacing(spec), lines)
	pickets := picketCount(net, spec)
	sections := math.Ceil(net / sectionLengthFt)
	rails := sections * float64(spec.RailsPerSection)

	out := GeometryResult{Posts: posts}
	add := func(sku, name string, qty float64) {
		if sku != "" && qty > 0 {
			out.Materials = append(out.Materials, RawMaterial{SKU: sku, Name: name, Qty: qty})
		}
	}

	add(spec.PostSKU, spec.PostName, posts)
	add(spec.PicketSKU, spec.PicketName, pickets)
	add(spec.RailSKU, spec.RailName, rails)

	var accessoryBoards float64
	boardLen := spec.AccessoryBoardLengthFt
	if boardLen <= 0 {
		boardLen = sectionLengthFt
	}
	perAccessory := math.Ceil(net / boardLen)
	if spec.HasCap {
		add(spec.CapSKU, spec.CapName, perAccessory)
		accessoryBoards += perAccessory
	}
	if spec.HasTrim {
		add(spec.TrimSKU, spec.TrimName, perAccessory)
		accessoryBoards += perAccessory
	}
	if spec.HasRotBoard {
		add(spec.RotBoardSKU, spec.RotName, perAccessory)
		accessoryBoards += perAccessory
	}

	picketScrews := pickets * float64(spec.RailsPerSection) * picketScrewsPerRailCrossing
	framingScrews := rails*framingScrewsPerRail + accessoryBoards*framingScrewsPerAccessory
	add(SKUPicketScrewBox, "Picket Screws (box of 300)", picketScrews/PicketScrewBoxSize)
	add(SKUFramingScrewBox, "Framing Screws (box of 28)", framingScrews/FramingScrewBoxSize)

	return out
}

func woodHorizontalGeometry(net float64, lines int, heightFeet float64, spec WoodHorizontalSpec) GeometryResult {
	spacing := spec.PostSpacing
	if spacing <= 0 {
		spacing = defaultPostSpacing
	}
	posts := postCount(net, spacing, lines)

	boardsHigh := math.Ceil(heightFeet * 12 / spec.BoardWidthIn)
	boardsPerRow := math.Ceil(net / spec.BoardLengthFt)
	boards := boardsHigh * boardsPerRow
	if spec.DoubleSided {
		boards *= 2
	}

	// Each board fastens to posts at both ends.
	framingScrews := boards * framingScrewsPerAccessory

	out := GeometryResult{Posts: posts}
	out.Materials = append(out.Materials,
		RawMaterial{SKU: spec.PostSKU, Name: spec.PostName, Qty: posts},
		RawMaterial{SKU: spec.BoardSKU, Name: spec.BoardName, Qty: boards},
		RawMaterial{SKU: SKUFramingScrewBox, Name: "Framing Screws (box of 28)", Qty: framingScrews / FramingScrewBoxSize},
	)
	return out
}

func ironGeometry(net float64, lines int, spec IronSpec) GeometryResult {
	panels := math.Ceil(net / spec.PanelWidthFt)
	posts := panels + 1 + extraLinePosts(lines)

	out := GeometryResult{Posts: posts}
	out.Materials = append(out.Materials,
		RawMaterial{SKU: spec.PostSKU, Name: spec.PostName, Qty: posts},
		RawMaterial{SKU: spec.PanelSKU, Name: spec.PanelName, Qty: panels},
	)
	if spec.WeldedPanels {
		brackets := 2 * float64(spec.RailsPerPanel) * panels
		out.Materials = append(out.Materials,
			RawMaterial{SKU: spec.BracketSKU, Name: spec.BracketName, Qty: brackets})
	}
	return out
}

// postCount applies the shared post formula: one post per spacing interval
// plus a terminal post, plus extras when the footage splits into more than
// two separate runs.
func postCount(net, spacing float64, lines int) float64 {
	return math.Ceil(net/spacing) + 1 + extraLinePosts(lines)
}

func extraLinePosts(lines int) float64 {
	if lines <= 2 {
		return 0
	}
	return math.Ceil(float64(lines-2) / 2)
}

func verticalPostSpacing(spec WoodVerticalSpec) float64 {
	if spec.Style == StyleGoodNeighbor {
		return goodNeighborSpacing
	}
	if spec.PostSpacing > 0 {
		return spec.PostSpacing
	}
	return defaultPostSpacing
}

// picketCount covers the three vertical picket layouts. The base count
// carries a 2.5% waste factor; good-neighbor is picketed on both sides of
// alternating sections, board-on-board overlaps adjacent pickets.
func picketCount(net float64, spec WoodVerticalSpec) float64 {
	if spec.Style == StyleBoardOnBoard {
		effective := spec.PicketWidthIn*2 - spec.OverlapGapIn
		return math.Ceil(net * 12 * 2 / effective * wasteFactor)
	}

	base := math.Ceil(net * 12 / spec.PicketWidthIn * wasteFactor)
	if spec.Style == StyleGoodNeighbor {
		return math.Ceil(base * goodNeighborFactor)
	}
	return base
}
