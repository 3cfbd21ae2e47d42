package services

import (
	"fmt"
	"math"
)

// CalcInput is everything one recomputation reads: the project's line
// items, its concrete strategy, the prior ledgers (for adjustment
// carry-forward) and the reference catalog.
type CalcInput struct {
	LineItems      []LineItem
	ConcreteType   ConcreteType
	PriorMaterials []MaterialRow
	PriorLabor     []LaborRow
	Catalog        *Catalog
}

// CalcResult is the recomputed ledgers plus any non-fatal warnings. A
// warning means some contribution was skipped or costed at zero; the
// estimate is still produced.
type CalcResult struct {
	Materials []MaterialRow
	Labor     []LaborRow
	Warnings  []string
}

// Calculate runs the full estimation pipeline: per-line-item geometry and
// labor selection, project-wide concrete sizing, then aggregation of both
// ledgers with adjustment carry-forward. It is pure with respect to its
// input and deterministic, so running it twice with the same input yields
// identical ledgers.
func Calculate(in CalcInput) CalcResult {
	var (
		rawMaterials []RawMaterial
		rawLabor     []RawLabor
		totalPosts   float64
		warnings     []string
	)

	for _, li := range in.LineItems {
		geo := CalculateGeometry(li)
		rawMaterials = append(rawMaterials, geo.Materials...)
		totalPosts += geo.Posts

		if li.Product == nil || li.NetLength() <= 0 {
			continue
		}

		reqs, ok := SelectLaborCodes(li.Family, li.Product, li.NumGates)
		if !ok {
			warnings = append(warnings, fmt.Sprintf(
				"line item %s: no install labor code for %s %s, labor skipped",
				li.ID, li.Family, li.Product.SKU))
			continue
		}
		rawLabor = append(rawLabor, laborQuantities(li, reqs)...)
	}

	rawMaterials = append(rawMaterials, SizeConcrete(totalPosts, in.ConcreteType)...)

	materials, mw := AggregateMaterials(rawMaterials, in.PriorMaterials, in.Catalog)
	labor, lw := AggregateLabor(rawLabor, in.PriorLabor, in.Catalog)
	warnings = append(warnings, mw...)
	warnings = append(warnings, lw...)

	return CalcResult{Materials: materials, Labor: labor, Warnings: warnings}
}

// laborQuantities attaches quantities to a line item's labor requirements
// according to each code's basis.
func laborQuantities(li LineItem, reqs []LaborRequirement) []RawLabor {
	net := li.NetLength()
	_, _, _, _, extraRails := styleAttributes(li.Product)
	sections := math.Ceil(net / sectionLengthFt)

	out := make([]RawLabor, 0, len(reqs))
	for _, r := range reqs {
		var qty float64
		switch r.Basis {
		case BasisPerFoot:
			qty = net
		case BasisPerGate:
			qty = float64(li.NumGates)
		case BasisPerExtraRail:
			qty = sections * float64(extraRails)
		}
		if qty > 0 {
			out = append(out, RawLabor{Code: r.Code, Qty: qty})
		}
	}
	return out
}
