package services

// LaborBasis says what a labor code's quantity is measured in.
type LaborBasis string

const (
	BasisPerFoot      LaborBasis = "per_foot"
	BasisPerGate      LaborBasis = "per_gate"
	BasisPerExtraRail LaborBasis = "per_extra_rail"
)

// LaborRequirement is one labor code a line item needs, before quantities
// are attached.
type LaborRequirement struct {
	Code  string
	Basis LaborBasis
}

// codePair holds the wood- and steel-coded variants of one labor operation.
// Which side applies is decided solely by the product's post material.
type codePair struct {
	wood  string
	steel string
}

func (p codePair) forMaterial(m PostMaterial) string {
	if m == PostSteel {
		return p.steel
	}
	return p.wood
}

// installKey is the discrete attribute tuple the install-code table is keyed
// by. Tall means the product is over the six-foot tier.
type installKey struct {
	Family FenceFamily
	Style  StyleTag
	Tall   bool
}

// installCodes is the complete install-labor table. Adding a new
// family/style combination is a data change here, not a code change.
var installCodes = map[installKey]codePair{
	{FamilyWoodVertical, StyleStandard, false}:     {"NU6-W", "NU6-S"},
	{FamilyWoodVertical, StyleStandard, true}:      {"NU8-W", "NU8-S"},
	{FamilyWoodVertical, StyleGoodNeighbor, false}: {"GN6-W", "GN6-S"},
	{FamilyWoodVertical, StyleGoodNeighbor, true}:  {"GN8-W", "GN8-S"},
	{FamilyWoodVertical, StyleBoardOnBoard, false}: {"BOB6-W", "BOB6-S"},
	{FamilyWoodVertical, StyleBoardOnBoard, true}:  {"BOB8-W", "BOB8-S"},

	{FamilyWoodHorizontal, StyleStandard, false}: {"HZ6-W", "HZ6-S"},
	{FamilyWoodHorizontal, StyleStandard, true}:  {"HZ8-W", "HZ8-S"},

	// Iron posts are always steel; both sides carry the same code.
	{FamilyIron, StyleAmeristar, false}: {"IRP", "IRP"},
	{FamilyIron, StyleAmeristar, true}:  {"IRP", "IRP"},
	{FamilyIron, StyleIronRail, false}:  {"IRW", "IRW"},
	{FamilyIron, StyleIronRail, true}:   {"IRW", "IRW"},
}

// Accessory install codes, also post-material coded.
var (
	capTrimCodes  = codePair{"CT-W", "CT-S"}
	rotBoardCodes = codePair{"RB-W", "RB-S"}
)

// Gate install codes are tiered by fence height, not post material.
const (
	gateCodeLow  = "GATE6"
	gateCodeHigh = "GATE8"

	extraRailCode = "XRAIL"

	tallTierFeet = 6.0
)

// SelectLaborCodes returns the ordered labor codes a product requires. The
// second return is false when the catalog defines no install code for the
// product's family/style cell, which callers surface as a warning rather
// than an error.
func SelectLaborCodes(family FenceFamily, p *Product, numGates int) ([]LaborRequirement, bool) {
	if p == nil {
		return nil, false
	}

	style, hasCap, hasTrim, hasRot, extraRails := styleAttributes(p)
	tall := p.HeightFeet > tallTierFeet

	pair, ok := installCodes[installKey{Family: family, Style: style, Tall: tall}]
	if !ok {
		return nil, false
	}

	reqs := []LaborRequirement{{Code: pair.forMaterial(p.PostMaterial), Basis: BasisPerFoot}}

	if hasCap || hasTrim {
		reqs = append(reqs, LaborRequirement{Code: capTrimCodes.forMaterial(p.PostMaterial), Basis: BasisPerFoot})
	}
	if hasRot {
		reqs = append(reqs, LaborRequirement{Code: rotBoardCodes.forMaterial(p.PostMaterial), Basis: BasisPerFoot})
	}
	if extraRails > 0 {
		reqs = append(reqs, LaborRequirement{Code: extraRailCode, Basis: BasisPerExtraRail})
	}
	if numGates > 0 {
		code := gateCodeLow
		if tall {
			code = gateCodeHigh
		}
		reqs = append(reqs, LaborRequirement{Code: code, Basis: BasisPerGate})
	}

	return reqs, true
}

// styleAttributes flattens the variant-specific fields the selector reads.
func styleAttributes(p *Product) (style StyleTag, hasCap, hasTrim, hasRot bool, extraRails int) {
	switch spec := p.Spec.(type) {
	case WoodVerticalSpec:
		return spec.Style, spec.HasCap, spec.HasTrim, spec.HasRotBoard, spec.ExtraRails
	case WoodHorizontalSpec:
		return spec.Style, false, false, false, 0
	case IronSpec:
		return spec.Style, false, false, false, 0
	default:
		return "", false, false, false, 0
	}
}
