package services

import "testing"

func TestSummarize(t *testing.T) {
	materials := []MaterialRow{
		{SKU: "PKT-6", UnitCost: 3, RoundedQty: 100, Adjustment: -2, TotalQty: 98, TotalCost: 294},
		{SKU: "POST-W-8", UnitCost: 11.50, RoundedQty: 14, TotalQty: 14, TotalCost: 161},
	}
	labor := []LaborRow{
		{Code: "NU6-W", Rate: 6.25, Quantity: 100, CalculatedCost: 625, Adjustment: -25, TotalCost: 600},
	}

	got := Summarize(materials, labor, 100)

	if !floatClose(got.MaterialTotal, 455) {
		t.Errorf("material total = %v, want 455", got.MaterialTotal)
	}
	if !floatClose(got.LaborTotal, 600) {
		t.Errorf("labor total = %v, want 600", got.LaborTotal)
	}
	if !floatClose(got.ProjectTotal, 1055) {
		t.Errorf("project total = %v, want 1055", got.ProjectTotal)
	}
	if !floatClose(got.CostPerFoot, 10.55) {
		t.Errorf("cost per foot = %v, want 10.55", got.CostPerFoot)
	}
	// Material adjustment -2 units at $3 plus labor adjustment -$25.
	if !floatClose(got.AdjustmentTotal, -31) {
		t.Errorf("adjustment total = %v, want -31", got.AdjustmentTotal)
	}
}

func TestSummarize_ZeroFootage(t *testing.T) {
	got := Summarize(nil, nil, 0)
	if got.CostPerFoot != 0 {
		t.Errorf("cost per foot = %v, want 0 for zero footage", got.CostPerFoot)
	}
}

func TestNetFootage(t *testing.T) {
	items := []LineItem{
		{TotalFootage: 100, BufferFeet: 10},
		{TotalFootage: 50},
		{TotalFootage: 5, BufferFeet: 8},
	}
	if got := NetFootage(items); got != 140 {
		t.Errorf("net footage = %v, want 140", got)
	}
}
