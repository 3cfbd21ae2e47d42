package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"fenceworks/testhelpers"
)

// seedEstimateFixtures creates the catalog records the standard test
// product references, so recalculation prices every geometry row.
func seedEstimateFixtures(t *testing.T, app *pocketbase.PocketBase) {
	t.Helper()

	testhelpers.CreateTestMaterial(t, app, "POST-W-8", "8ft 4x4 Treated Pine Post", 11.50)
	testhelpers.CreateTestMaterial(t, app, "PKT-6", "6ft 1x6 Cedar Picket", 3.10)
	testhelpers.CreateTestMaterial(t, app, "RAIL-8", "8ft 2x4 Treated Rail", 4.80)
	testhelpers.CreateTestMaterial(t, app, "FAST-PK-300", "Picket Nail Box (300)", 18.00)
	testhelpers.CreateTestMaterial(t, app, "FAST-FR-28", "Framing Screw Box (28)", 6.50)
	testhelpers.CreateTestMaterial(t, app, "CONC-SAND", "Sand/Gravel Bag", 5.00)
	testhelpers.CreateTestMaterial(t, app, "CONC-CEM", "Cement Bag", 9.10)
	testhelpers.CreateTestMaterial(t, app, "CONC-QUIK", "Quick-Mix Bag", 5.85)
	testhelpers.CreateTestLaborRate(t, app, "NU6-W", "per_foot", 6.25)
	testhelpers.CreateTestLaborRate(t, app, "GATE6", "per_gate", 85.00)
}

// jsonRequest builds a request event carrying a JSON body and any path
// values the handler reads.
func jsonRequest(app *pocketbase.PocketBase, method string, body any, pathValues map[string]string) (*core.RequestEvent, *httptest.ResponseRecorder) {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, "/", &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range pathValues {
		req.SetPathValue(k, v)
	}
	rec := httptest.NewRecorder()
	return newTestRequestEvent(app, req, rec), rec
}

// decodeBody unmarshals a recorder body into a generic map for assertions.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response body: %v\nbody: %s", err, rec.Body.String())
	}
	return out
}

// materialRowCount counts persisted material rows for a project.
func materialRowCount(t *testing.T, app *pocketbase.PocketBase, projectID string) int {
	t.Helper()
	rows, err := app.FindRecordsByFilter("material_rows", "project = {:p}", "", 0, 0,
		map[string]any{"p": projectID})
	if err != nil {
		t.Fatalf("failed to load material rows: %v", err)
	}
	return len(rows)
}

// findPersistedMaterialRow returns the persisted row for a SKU, or nil.
func findPersistedMaterialRow(t *testing.T, app *pocketbase.PocketBase, projectID, sku string) *core.Record {
	t.Helper()
	rows, err := app.FindRecordsByFilter("material_rows", "project = {:p} && sku = {:sku}", "", 1, 0,
		map[string]any{"p": projectID, "sku": sku})
	if err != nil || len(rows) == 0 {
		return nil
	}
	return rows[0]
}

func assertStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected status %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}
