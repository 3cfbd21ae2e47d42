package services

// Summary is the project-level rollup shown on the totals bar.
type Summary struct {
	MaterialTotal   float64 `json:"materialTotal"`
	LaborTotal      float64 `json:"laborTotal"`
	ProjectTotal    float64 `json:"projectTotal"`
	CostPerFoot     float64 `json:"costPerFoot"`
	AdjustmentTotal float64 `json:"adjustmentTotal"`
}

// Summarize rolls both ledgers up into project totals. netFootage is the
// sum of net lengths across line items; a zero footage leaves CostPerFoot
// at zero rather than dividing by it.
func Summarize(materials []MaterialRow, labor []LaborRow, netFootage float64) Summary {
	var s Summary

	for _, r := range materials {
		s.MaterialTotal += r.TotalCost
		// A material adjustment is a unit delta; its dollar effect is the
		// delta priced at the row's unit cost.
		s.AdjustmentTotal += r.Adjustment * r.UnitCost
	}
	for _, r := range labor {
		s.LaborTotal += r.TotalCost
		s.AdjustmentTotal += r.Adjustment
	}

	s.ProjectTotal = s.MaterialTotal + s.LaborTotal
	if netFootage > 0 {
		s.CostPerFoot = s.ProjectTotal / netFootage
	}
	return s
}

// NetFootage sums the net length of every line item.
func NetFootage(items []LineItem) float64 {
	var total float64
	for _, li := range items {
		total += li.NetLength()
	}
	return total
}
