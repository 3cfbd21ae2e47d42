package services

import (
	"reflect"
	"testing"
)

func testCatalog() *Catalog {
	return &Catalog{
		Products: map[string]*Product{},
		Materials: map[string]Material{
			"PKT-6":    {SKU: "PKT-6", Name: "6ft Picket", UOM: "Each", BaseCost: 3.10},
			"POST-W-8": {SKU: "POST-W-8", Name: "8ft Wood Post", UOM: "Each", BaseCost: 11.50},
			"RAIL-8":   {SKU: "RAIL-8", Name: "8ft Rail", UOM: "Each", BaseCost: 4.80},
		},
		LaborRates: map[string]LaborRate{
			"NU6-W": {Code: "NU6-W", Description: "Install 6ft nail-up, wood posts", Basis: BasisPerFoot, Rate: 6.25},
			"GATE6": {Code: "GATE6", Description: "Hang gate, 6ft", Basis: BasisPerGate, Rate: 85},
		},
	}
}

func TestAggregateMaterials_SingleRounding(t *testing.T) {
	raw := []RawMaterial{
		{SKU: "PKT-6", Name: "6ft Picket", Qty: 13.4},
		{SKU: "PKT-6", Name: "6ft Picket", Qty: 13.4},
	}

	rows, _ := AggregateMaterials(raw, nil, testCatalog())

	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if !floatClose(rows[0].CalculatedQty, 26.8) {
		t.Errorf("calculated = %v, want 26.8", rows[0].CalculatedQty)
	}
	if rows[0].RoundedQty != 27 {
		t.Errorf("rounded = %v, want 27 (single rounding, not 28)", rows[0].RoundedQty)
	}
}

func TestAggregateMaterials_AdjustmentCarryForward(t *testing.T) {
	raw := []RawMaterial{{SKU: "PKT-6", Name: "6ft Picket", Qty: 10}}
	prior := []MaterialRow{
		{SKU: "PKT-6", Name: "6ft Picket", UnitCost: 3.10, CalculatedQty: 10, RoundedQty: 10, Adjustment: -2},
	}

	rows, _ := AggregateMaterials(raw, prior, testCatalog())

	if rows[0].Adjustment != -2 {
		t.Errorf("adjustment = %v, want -2 to survive recomputation", rows[0].Adjustment)
	}
	if rows[0].TotalQty != 8 {
		t.Errorf("total qty = %v, want 8", rows[0].TotalQty)
	}
	if !floatClose(rows[0].TotalCost, 8*3.10) {
		t.Errorf("total cost = %v, want %v", rows[0].TotalCost, 8*3.10)
	}
}

func TestAggregateMaterials_UnrelatedEditPreservesAdjustment(t *testing.T) {
	prior := []MaterialRow{
		{SKU: "PKT-6", CalculatedQty: 10, RoundedQty: 10, Adjustment: 5},
	}
	// A new line item added rails; pickets are unchanged.
	raw := []RawMaterial{
		{SKU: "PKT-6", Qty: 10},
		{SKU: "RAIL-8", Qty: 6},
	}

	rows, _ := AggregateMaterials(raw, prior, testCatalog())

	var picket *MaterialRow
	for i := range rows {
		if rows[i].SKU == "PKT-6" {
			picket = &rows[i]
		}
	}
	if picket == nil {
		t.Fatal("picket row missing")
	}
	if picket.Adjustment != 5 {
		t.Errorf("adjustment = %v, want 5", picket.Adjustment)
	}
}

func TestAggregateMaterials_OrphanedAdjustmentRetained(t *testing.T) {
	prior := []MaterialRow{
		{SKU: "PKT-6", Name: "6ft Picket", UnitCost: 3.10, CalculatedQty: 10, RoundedQty: 10, Adjustment: 3},
	}

	// The product changed; pickets no longer appear in geometry output.
	rows, _ := AggregateMaterials(nil, prior, testCatalog())

	if len(rows) != 1 {
		t.Fatalf("expected orphaned row retained, got %d rows", len(rows))
	}
	orphan := rows[0]
	if orphan.CalculatedQty != 0 || orphan.RoundedQty != 0 {
		t.Errorf("orphan base qty should be zero, got %+v", orphan)
	}
	if orphan.Adjustment != 3 || orphan.TotalQty != 3 {
		t.Errorf("orphan should keep its adjustment: %+v", orphan)
	}
}

func TestAggregateMaterials_ManualRowIsolation(t *testing.T) {
	manual := MaterialRow{
		SKU: "GRAVEL", Name: "Decorative Gravel", UnitCost: 45,
		RoundedQty: 2, TotalQty: 2, TotalCost: 90, IsManual: true,
	}
	raw := []RawMaterial{{SKU: "PKT-6", Qty: 50}}

	rows, _ := AggregateMaterials(raw, []MaterialRow{manual}, testCatalog())

	var got *MaterialRow
	for i := range rows {
		if rows[i].IsManual {
			got = &rows[i]
		}
	}
	if got == nil {
		t.Fatal("manual row dropped by recomputation")
	}
	if !reflect.DeepEqual(*got, manual) {
		t.Errorf("manual row altered by recomputation: %+v", *got)
	}
}

func TestAggregateMaterials_Idempotent(t *testing.T) {
	raw := []RawMaterial{
		{SKU: "PKT-6", Qty: 13.4},
		{SKU: "RAIL-8", Qty: 6.2},
		{SKU: "PKT-6", Qty: 13.4},
	}
	prior := []MaterialRow{{SKU: "POST-W-8", Adjustment: 1}}

	first, _ := AggregateMaterials(raw, prior, testCatalog())
	second, _ := AggregateMaterials(raw, prior, testCatalog())

	if !reflect.DeepEqual(first, second) {
		t.Errorf("aggregation not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestAggregateMaterials_NegativeTotalFloorsAtZero(t *testing.T) {
	raw := []RawMaterial{{SKU: "PKT-6", Qty: 3}}
	prior := []MaterialRow{{SKU: "PKT-6", Adjustment: -10}}

	rows, _ := AggregateMaterials(raw, prior, testCatalog())

	if rows[0].TotalQty != 0 || rows[0].TotalCost != 0 {
		t.Errorf("total should floor at zero, got %+v", rows[0])
	}
}

func TestAggregateMaterials_MissingCatalogRecordWarns(t *testing.T) {
	raw := []RawMaterial{{SKU: "MYSTERY", Name: "Unknown Thing", Qty: 4}}

	rows, warnings := AggregateMaterials(raw, nil, testCatalog())

	if len(warnings) != 1 {
		t.Fatalf("expected 1 warning, got %v", warnings)
	}
	if rows[0].UnitCost != 0 {
		t.Errorf("missing material should cost zero, got %v", rows[0].UnitCost)
	}
	if rows[0].Name != "Unknown Thing" {
		t.Errorf("missing material should keep the geometry name, got %q", rows[0].Name)
	}
}

func TestAggregateLabor_Basics(t *testing.T) {
	raw := []RawLabor{
		{Code: "NU6-W", Qty: 100},
		{Code: "NU6-W", Qty: 50},
		{Code: "GATE6", Qty: 2},
	}

	rows, warnings := AggregateLabor(raw, nil, testCatalog())

	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	// Sorted by code: GATE6 then NU6-W.
	if rows[0].Code != "GATE6" || rows[1].Code != "NU6-W" {
		t.Fatalf("unexpected order: %s, %s", rows[0].Code, rows[1].Code)
	}
	if rows[1].Quantity != 150 {
		t.Errorf("install qty = %v, want 150", rows[1].Quantity)
	}
	if !floatClose(rows[1].CalculatedCost, 150*6.25) {
		t.Errorf("install cost = %v, want %v", rows[1].CalculatedCost, 150*6.25)
	}
	if rows[1].Description != "Install 6ft nail-up, wood posts" {
		t.Errorf("description = %q", rows[1].Description)
	}
}

func TestAggregateLabor_MissingRateWarns(t *testing.T) {
	raw := []RawLabor{{Code: "XRAIL", Qty: 13}}

	rows, warnings := AggregateLabor(raw, nil, testCatalog())

	if len(warnings) != 1 {
		t.Fatalf("expected 1 warning, got %v", warnings)
	}
	if rows[0].Rate != 0 || rows[0].TotalCost != 0 {
		t.Errorf("missing rate should cost zero, got %+v", rows[0])
	}
}

func TestAggregateLabor_DollarAdjustment(t *testing.T) {
	raw := []RawLabor{{Code: "NU6-W", Qty: 100}}
	prior := []LaborRow{{Code: "NU6-W", Adjustment: -100}}

	rows, _ := AggregateLabor(raw, prior, testCatalog())

	// 100 ft * 6.25 = 625, minus 100 dollar adjustment.
	if !floatClose(rows[0].TotalCost, 525) {
		t.Errorf("total = %v, want 525", rows[0].TotalCost)
	}
}

func TestApplyMaterialAdjustment(t *testing.T) {
	rows := []MaterialRow{
		{SKU: "PKT-6", UnitCost: 3, RoundedQty: 10, TotalQty: 10, TotalCost: 30},
	}

	rows, ok := ApplyMaterialAdjustment(rows, "PKT-6", -2)
	if !ok {
		t.Fatal("expected row to match")
	}
	if rows[0].TotalQty != 8 || rows[0].TotalCost != 24 {
		t.Errorf("got %+v, want totalQty 8 totalCost 24", rows[0])
	}

	if _, ok := ApplyMaterialAdjustment(rows, "NOPE", 1); ok {
		t.Error("expected no match for unknown SKU")
	}
}

func TestManualRows_AddAndRemove(t *testing.T) {
	var rows []MaterialRow
	rows = AddManualMaterialRow(rows, "GRAVEL", "Decorative Gravel", 45, 2)

	if !rows[0].IsManual || rows[0].TotalCost != 90 {
		t.Fatalf("manual row wrong: %+v", rows[0])
	}

	rows, ok := RemoveMaterialRow(rows, "GRAVEL")
	if !ok || len(rows) != 0 {
		t.Errorf("manual row should be removable, got %v", rows)
	}
}

func TestRemoveMaterialRow_GeometryRowProtected(t *testing.T) {
	rows := []MaterialRow{{SKU: "PKT-6", CalculatedQty: 10, RoundedQty: 10}}

	if _, ok := RemoveMaterialRow(rows, "PKT-6"); ok {
		t.Error("geometry-derived rows must not be removable")
	}
}

func TestRemoveLaborRow_OrphanRemovable(t *testing.T) {
	rows := []LaborRow{{Code: "NU6-W", Quantity: 0, Adjustment: 50}}

	rows, ok := RemoveLaborRow(rows, "NU6-W")
	if !ok || len(rows) != 0 {
		t.Errorf("orphaned labor row should be removable, got %v", rows)
	}
}
