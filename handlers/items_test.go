package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"fabricsense/testhelpers"
)

func decodeItemOptions(t *testing.T, body []byte) []itemOption {
	t.Helper()
	var result struct {
		Items []itemOption `json:"items"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	return result.Items
}

func TestHandleItemList_FilteredByField(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestItem(t, app, "FAB-001", "Velvet Maroon", "Main Fabric")
	testhelpers.CreateTestItem(t, app, "FAB-002", "Sheer White", "Sheer Fabric")
	testhelpers.CreateTestItem(t, app, "LIN-001", "Basic Lining", "Basic Linings")
	testhelpers.CreateTestItem(t, app, "TRK-001", "Aluminium Track", "Tracks")
	handler := HandleItemList(app)

	req := httptest.NewRequest(http.MethodGet, "/api/items?field=fabric_selected", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)
	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	items := decodeItemOptions(t, rec.Body.Bytes())
	if len(items) != 2 {
		t.Fatalf("expected 2 fabric items, got %d", len(items))
	}
	if items[0].ItemCode != "FAB-001" || items[1].ItemCode != "FAB-002" {
		t.Errorf("unexpected items: %+v", items)
	}
}

func TestHandleItemList_ExcludesDisabled(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestItem(t, app, "FAB-001", "Velvet Maroon", "Main Fabric")
	discontinued := testhelpers.CreateTestItem(t, app, "FAB-OLD", "Discontinued", "Main Fabric")
	discontinued.Set("disabled", true)
	if err := app.Save(discontinued); err != nil {
		t.Fatalf("failed to disable item: %v", err)
	}
	handler := HandleItemList(app)

	req := httptest.NewRequest(http.MethodGet, "/api/items?field=fabric_selected", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)
	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	items := decodeItemOptions(t, rec.Body.Bytes())
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].ItemCode != "FAB-001" {
		t.Errorf("expected FAB-001, got %q", items[0].ItemCode)
	}
}

func TestHandleItemList_NoFieldReturnsAll(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestItem(t, app, "FAB-001", "Velvet Maroon", "Main Fabric")
	testhelpers.CreateTestItem(t, app, "TRK-001", "Aluminium Track", "Tracks")
	testhelpers.CreateTestItem(t, app, "BLD-001", "Roller Cream", "Blinds")
	handler := HandleItemList(app)

	req := httptest.NewRequest(http.MethodGet, "/api/items", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)
	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	items := decodeItemOptions(t, rec.Body.Bytes())
	if len(items) != 3 {
		t.Errorf("expected all 3 items, got %d", len(items))
	}
}

func TestHandleItemList_UnknownField(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleItemList(app)

	req := httptest.NewRequest(http.MethodGet, "/api/items?field=bogus", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)
	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}
