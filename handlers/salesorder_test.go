package handlers

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"fabricsense/services"
	"fabricsense/testhelpers"
)

func TestHandleSalesOrderData_DraftRefused(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	sheet := testhelpers.CreateTestSheet(t, app, "Draft Order")
	handler := HandleSalesOrderData(app, newTestCalculator(app))

	req := httptest.NewRequest(http.MethodGet, "/api/sheets/"+sheet.Id+"/sales-order-data", nil)
	req.SetPathValue("id", sheet.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)
	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for draft sheet, got %d", rec.Code)
	}

	var result struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if result.Error != "Sheet must be approved before creating a sales order" {
		t.Errorf("unexpected error message %q", result.Error)
	}
}

func TestHandleSalesOrderData_ApprovedSheet(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.SetDefaultPriceList(t, app, "Standard Selling")
	testhelpers.CreateTestItemPrice(t, app, "SEL-PREMIUM", "Standard Selling", 55)

	sheet := testhelpers.CreateTestSheet(t, app, "Approved Order")
	sheet.Set("status", "Approved")
	if err := app.Save(sheet); err != nil {
		t.Fatalf("failed to approve sheet: %v", err)
	}

	line := testhelpers.CreateTestLine(t, app, sheet.Id, "Hall", "Window Curtains", 96, 100, 2)
	line.Set("fabric_selected", "FAB-001")
	line.Set("fabric_qty", 6.5)
	line.Set("fabric_rate", 500)
	line.Set("lead_rope", "ROPE-001")
	line.Set("lead_rope_qty", 3)
	line.Set("lead_rope_rate", 50)
	line.Set("stitching_pattern", "STITCH-PINCH")
	line.Set("stitching_charge", 300)
	if err := app.Save(line); err != nil {
		t.Fatalf("failed to fill line: %v", err)
	}

	blind := testhelpers.CreateTestLine(t, app, sheet.Id, "Office", "Blinds", 48, 60, 0)
	blind.Set("sort_order", 2)
	blind.Set("square_feet", 22)
	blind.Set("selection", "SEL-PREMIUM")
	if err := app.Save(blind); err != nil {
		t.Fatalf("failed to fill blind line: %v", err)
	}

	handler := HandleSalesOrderData(app, newTestCalculator(app))
	req := httptest.NewRequest(http.MethodGet, "/api/sheets/"+sheet.Id+"/sales-order-data", nil)
	req.SetPathValue("id", sheet.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)
	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var result struct {
		Customer string               `json:"customer"`
		Items    []services.OrderItem `json:"items"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if len(result.Items) != 4 {
		t.Fatalf("expected 4 order items, got %d: %+v", len(result.Items), result.Items)
	}

	byCode := make(map[string]services.OrderItem)
	for _, item := range result.Items {
		byCode[item.ItemCode] = item
	}

	fabric := byCode["FAB-001"]
	if math.Abs(fabric.Qty-6.5) > 0.001 || math.Abs(fabric.Rate-500) > 0.001 {
		t.Errorf("unexpected fabric item %+v", fabric)
	}

	// 300 across 2 panels back-derives to 150/panel
	stitching := byCode["STITCH-PINCH"]
	if math.Abs(stitching.Qty-2) > 0.001 || math.Abs(stitching.Rate-150) > 0.001 {
		t.Errorf("unexpected stitching item %+v", stitching)
	}

	// Blinds selection is priced per square foot
	selection := byCode["SEL-PREMIUM"]
	if math.Abs(selection.Qty-22) > 0.001 || math.Abs(selection.Rate-55) > 0.001 {
		t.Errorf("unexpected selection item %+v", selection)
	}
}

func TestHandleSalesOrderData_SheetNotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleSalesOrderData(app, newTestCalculator(app))

	req := httptest.NewRequest(http.MethodGet, "/api/sheets/nonexistent/sales-order-data", nil)
	req.SetPathValue("id", "nonexistent")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)
	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}
