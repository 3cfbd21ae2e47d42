package services

// PricingMethod is how a resolved price was produced.
type PricingMethod string

const (
	MethodFixed  PricingMethod = "fixed"
	MethodMarkup PricingMethod = "markup"
	MethodMargin PricingMethod = "margin"
	MethodCost   PricingMethod = "cost"
)

// Pricing scopes, in resolution order. ScopeCost marks the terminal
// cost-passthrough fallback.
const (
	ScopeCommunity = "community"
	ScopeClient    = "client"
	ScopeBU        = "bu"
	ScopeCost      = "cost"
)

// RateSheetItem is a per-SKU override inside a rate sheet. Zero fields mean
// "not set"; the first set field wins in fixed → markup → margin order.
type RateSheetItem struct {
	SKU           string
	FixedPrice    float64
	MarkupPercent float64
	MarginPercent float64
}

// RateSheet is one named pricing policy. DefaultMethod (markup or margin)
// applies sheet-wide to SKUs without an item override.
type RateSheet struct {
	Name           string
	Scope          string
	DefaultMethod  PricingMethod
	DefaultPercent float64
	Items          map[string]RateSheetItem
}

// SheetSet is the rate sheets visible from one resolution context. Any slot
// may be nil.
type SheetSet struct {
	Community    *RateSheet
	Client       *RateSheet
	BusinessUnit *RateSheet
}

// ResolvedPrice reports the price plus its provenance for auditability.
type ResolvedPrice struct {
	Price  float64
	Scope  string
	Method PricingMethod
	Sheet  string
}

// ResolvePrice walks the override hierarchy for a SKU: community sheet, then
// client sheet, then business-unit default sheet, then cost passthrough. A
// sheet handles the SKU when it has an item override or a sheet-wide default
// formula; otherwise resolution falls through to the next scope. The call
// always terminates with a price.
func ResolvePrice(sku string, cost float64, sheets SheetSet) ResolvedPrice {
	scopes := []struct {
		scope string
		sheet *RateSheet
	}{
		{ScopeCommunity, sheets.Community},
		{ScopeClient, sheets.Client},
		{ScopeBU, sheets.BusinessUnit},
	}

	for _, s := range scopes {
		if s.sheet == nil {
			continue
		}
		if price, method, ok := s.sheet.resolve(sku, cost); ok {
			return ResolvedPrice{Price: price, Scope: s.scope, Method: method, Sheet: s.sheet.Name}
		}
	}

	return ResolvedPrice{Price: cost, Scope: ScopeCost, Method: MethodCost}
}

// resolve applies the in-sheet method order: item fixed price, item markup,
// item margin target, then the sheet-wide default formula.
func (rs *RateSheet) resolve(sku string, cost float64) (float64, PricingMethod, bool) {
	if item, ok := rs.Items[sku]; ok {
		switch {
		case item.FixedPrice > 0:
			return item.FixedPrice, MethodFixed, true
		case item.MarkupPercent > 0:
			return markupPrice(cost, item.MarkupPercent), MethodMarkup, true
		case item.MarginPercent > 0:
			return marginPrice(cost, item.MarginPercent), MethodMargin, true
		}
	}

	switch rs.DefaultMethod {
	case MethodMarkup:
		return markupPrice(cost, rs.DefaultPercent), MethodMarkup, true
	case MethodMargin:
		return marginPrice(cost, rs.DefaultPercent), MethodMargin, true
	}

	return 0, "", false
}

func markupPrice(cost, percent float64) float64 {
	return cost * (1 + percent/100)
}

// marginPrice targets a gross margin: price = cost / (1 - margin%).
// Margins at or above 100% are nonsensical and fall back to cost.
func marginPrice(cost, percent float64) float64 {
	if percent >= 100 {
		return cost
	}
	return cost / (1 - percent/100)
}
