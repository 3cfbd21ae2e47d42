package services

import (
	"fmt"
	"math"
	"sort"
)

// MaterialRow is one line of the material ledger. CalculatedQty is the raw
// sum across line items; RoundedQty is its ceiling, taken exactly once at
// aggregation time; Adjustment is a signed manual unit delta the user owns.
type MaterialRow struct {
	SKU           string  `json:"sku"`
	Name          string  `json:"name"`
	UnitCost      float64 `json:"unitCost"`
	CalculatedQty float64 `json:"calculatedQty"`
	RoundedQty    float64 `json:"roundedQty"`
	Adjustment    float64 `json:"adjustment"`
	TotalQty      float64 `json:"totalQty"`
	TotalCost     float64 `json:"totalCost"`
	IsManual      bool    `json:"isManual"`

	// Pricing provenance: which sheet priced this SKU and how.
	PriceScope  string `json:"priceScope,omitempty"`
	PriceMethod string `json:"priceMethod,omitempty"`
	PriceSheet  string `json:"priceSheet,omitempty"`
}

// recalc derives the total fields. Totals never go negative, no matter how
// large a negative adjustment is.
func (r MaterialRow) recalc() MaterialRow {
	total := r.RoundedQty + r.Adjustment
	if total < 0 {
		total = 0
	}
	r.TotalQty = total
	r.TotalCost = total * r.UnitCost
	return r
}

// LaborRow is one line of the labor ledger. Quantity stays continuous (no
// rounding); Adjustment is a signed dollar delta, not a unit delta.
type LaborRow struct {
	Code           string  `json:"code"`
	Description    string  `json:"description"`
	Rate           float64 `json:"rate"`
	Quantity       float64 `json:"quantity"`
	CalculatedCost float64 `json:"calculatedCost"`
	Adjustment     float64 `json:"adjustment"`
	TotalCost      float64 `json:"totalCost"`
	IsManual       bool    `json:"isManual"`
}

func (r LaborRow) recalc() LaborRow {
	r.CalculatedCost = r.Quantity * r.Rate
	total := r.CalculatedCost + r.Adjustment
	if total < 0 {
		total = 0
	}
	r.TotalCost = total
	return r
}

// RawLabor is an unpriced labor quantity contributed by one line item.
type RawLabor struct {
	Code string
	Qty  float64
}

// AggregateMaterials merges raw geometry output with the prior ledger:
// quantities group-sum by SKU, the ceiling is applied once to each sum,
// non-manual adjustments carry forward by SKU, orphaned adjustments are
// retained as adjustment-only rows, and manual rows pass through untouched.
// Output ordering is deterministic (sorted by SKU, then prior-ledger order)
// so recomputation with unchanged inputs is byte-identical.
func AggregateMaterials(raw []RawMaterial, prior []MaterialRow, cat *Catalog) ([]MaterialRow, []string) {
	sums := make(map[string]float64)
	names := make(map[string]string)
	for _, r := range raw {
		sums[r.SKU] += r.Qty
		if names[r.SKU] == "" {
			names[r.SKU] = r.Name
		}
	}

	priorAdjustments := make(map[string]float64)
	for _, p := range prior {
		if !p.IsManual {
			priorAdjustments[p.SKU] = p.Adjustment
		}
	}

	skus := make([]string, 0, len(sums))
	for sku := range sums {
		skus = append(skus, sku)
	}
	sort.Strings(skus)

	var rows []MaterialRow
	var warnings []string
	for _, sku := range skus {
		row := MaterialRow{
			SKU:           sku,
			Name:          names[sku],
			CalculatedQty: sums[sku],
			RoundedQty:    math.Ceil(sums[sku]),
			Adjustment:    priorAdjustments[sku],
		}
		if cat != nil {
			if mat, ok := cat.Material(sku); ok {
				resolved := cat.UnitPrice(sku)
				row.Name = mat.Name
				row.UnitCost = resolved.Price
				row.PriceScope = resolved.Scope
				row.PriceMethod = string(resolved.Method)
				row.PriceSheet = resolved.Sheet
			} else {
				warnings = append(warnings, fmt.Sprintf("material %s: no catalog record, costing at zero", sku))
			}
		}
		rows = append(rows, row.recalc())
	}

	// Non-manual rows whose SKU disappeared from the geometry output keep
	// their adjustment as an orphaned row until the user removes it.
	for _, p := range prior {
		if p.IsManual || p.Adjustment == 0 {
			continue
		}
		if _, stillPresent := sums[p.SKU]; stillPresent {
			continue
		}
		orphan := p
		orphan.CalculatedQty = 0
		orphan.RoundedQty = 0
		rows = append(rows, orphan.recalc())
	}

	for _, p := range prior {
		if p.IsManual {
			rows = append(rows, p)
		}
	}

	return rows, warnings
}

// AggregateLabor mirrors AggregateMaterials for labor codes. Quantities sum
// without rounding; rates come from the labor-rate table and a missing rate
// contributes zero cost with a warning instead of failing the estimate.
func AggregateLabor(raw []RawLabor, prior []LaborRow, cat *Catalog) ([]LaborRow, []string) {
	sums := make(map[string]float64)
	for _, r := range raw {
		sums[r.Code] += r.Qty
	}

	priorAdjustments := make(map[string]float64)
	for _, p := range prior {
		if !p.IsManual {
			priorAdjustments[p.Code] = p.Adjustment
		}
	}

	codes := make([]string, 0, len(sums))
	for code := range sums {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	var rows []LaborRow
	var warnings []string
	for _, code := range codes {
		var rate float64
		description := code
		if cat != nil {
			if lr, ok := cat.LaborRate(code); ok {
				rate = lr.Rate
				description = lr.Description
			} else {
				warnings = append(warnings, fmt.Sprintf("labor code %s: no rate on file, costing at zero", code))
			}
		}

		row := LaborRow{
			Code:        code,
			Description: description,
			Rate:        rate,
			Quantity:    sums[code],
			Adjustment:  priorAdjustments[code],
		}
		rows = append(rows, row.recalc())
	}

	for _, p := range prior {
		if p.IsManual || p.Adjustment == 0 {
			continue
		}
		if _, stillPresent := sums[p.Code]; stillPresent {
			continue
		}
		orphan := p
		orphan.Quantity = 0
		rows = append(rows, orphan.recalc())
	}

	for _, p := range prior {
		if p.IsManual {
			rows = append(rows, p)
		}
	}

	return rows, warnings
}

// ApplyMaterialAdjustment sets a row's manual unit delta and recomputes its
// totals. Returns false when no row matches the SKU.
func ApplyMaterialAdjustment(rows []MaterialRow, sku string, delta float64) ([]MaterialRow, bool) {
	for i, r := range rows {
		if r.SKU == sku {
			r.Adjustment = delta
			rows[i] = r.recalc()
			return rows, true
		}
	}
	return rows, false
}

// ApplyLaborAdjustment sets a labor row's dollar delta and recomputes it.
func ApplyLaborAdjustment(rows []LaborRow, code string, delta float64) ([]LaborRow, bool) {
	for i, r := range rows {
		if r.Code == code {
			r.Adjustment = delta
			rows[i] = r.recalc()
			return rows, true
		}
	}
	return rows, false
}

// AddManualMaterialRow appends a user-entered row that bypasses geometry
// aggregation entirely. The entered quantity is the row's base quantity.
func AddManualMaterialRow(rows []MaterialRow, sku, name string, unitCost, qty float64) []MaterialRow {
	row := MaterialRow{
		SKU:        sku,
		Name:       name,
		UnitCost:   unitCost,
		RoundedQty: qty,
		IsManual:   true,
	}
	return append(rows, row.recalc())
}

// AddManualLaborRow appends a user-entered labor row.
func AddManualLaborRow(rows []LaborRow, code, description string, rate, qty float64) []LaborRow {
	row := LaborRow{
		Code:        code,
		Description: description,
		Rate:        rate,
		Quantity:    qty,
		IsManual:    true,
	}
	return append(rows, row.recalc())
}

// RemoveMaterialRow removes a manual or orphaned row. Geometry-derived rows
// cannot be removed here; they would reappear on the next recomputation.
func RemoveMaterialRow(rows []MaterialRow, sku string) ([]MaterialRow, bool) {
	for i, r := range rows {
		if r.SKU == sku && (r.IsManual || r.CalculatedQty == 0) {
			return append(rows[:i], rows[i+1:]...), true
		}
	}
	return rows, false
}

// RemoveLaborRow removes a manual or orphaned labor row.
func RemoveLaborRow(rows []LaborRow, code string) ([]LaborRow, bool) {
	for i, r := range rows {
		if r.Code == code && (r.IsManual || r.Quantity == 0) {
			return append(rows[:i], rows[i+1:]...), true
		}
	}
	return rows, false
}
