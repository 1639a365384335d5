// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"fabricsense/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestSheet creates a measurement sheet record and returns it.
func CreateTestSheet(t *testing.T, app *pocketbase.PocketBase, title string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("measurement_sheets")
	if err != nil {
		t.Fatalf("failed to find measurement_sheets collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("title", title)
	record.Set("order_type", "Delivery")
	record.Set("measurement_method", "Customer Provided")
	record.Set("status", "Draft")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test sheet: %v", err)
	}

	return record
}

// CreateTestLine creates a measurement line on a sheet with the given product
// type and geometry, and returns it.
func CreateTestLine(t *testing.T, app *pocketbase.PocketBase, sheetID, area, productType string, width, height, panels float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("measurement_lines")
	if err != nil {
		t.Fatalf("failed to find measurement_lines collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("sheet", sheetID)
	record.Set("sort_order", 1)
	record.Set("area", area)
	record.Set("product_type", productType)
	record.Set("width", width)
	record.Set("height", height)
	record.Set("panels", panels)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test line: %v", err)
	}

	return record
}

// CreateTestItem creates a catalog item in the given group.
func CreateTestItem(t *testing.T, app *pocketbase.PocketBase, itemCode, itemName, itemGroup string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("items")
	if err != nil {
		t.Fatalf("failed to find items collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("item_code", itemCode)
	record.Set("item_name", itemName)
	record.Set("item_group", itemGroup)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test item: %v", err)
	}

	return record
}

// CreateTestItemPrice creates a selling price for an item on a price list.
func CreateTestItemPrice(t *testing.T, app *pocketbase.PocketBase, itemCode, priceList string, rate float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("item_prices")
	if err != nil {
		t.Fatalf("failed to find item_prices collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("item_code", itemCode)
	record.Set("price_list", priceList)
	record.Set("rate", rate)
	record.Set("selling", true)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test item price: %v", err)
	}

	return record
}

// CreateTestBin creates a warehouse bin with on-hand stock for an item.
func CreateTestBin(t *testing.T, app *pocketbase.PocketBase, itemCode, warehouse string, actualQty float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("bins")
	if err != nil {
		t.Fatalf("failed to find bins collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("item_code", itemCode)
	record.Set("warehouse", warehouse)
	record.Set("actual_qty", actualQty)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test bin: %v", err)
	}

	return record
}

// SetDefaultPriceList ensures the selling_settings singleton points at the
// given price list.
func SetDefaultPriceList(t *testing.T, app *pocketbase.PocketBase, priceList string) {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("selling_settings")
	if err != nil {
		t.Fatalf("failed to find selling_settings collection: %v", err)
	}

	existing, err := app.FindRecordsByFilter(col, "id != ''", "", 1, 0, nil)
	if err != nil {
		t.Fatalf("failed to query selling_settings: %v", err)
	}

	var record *core.Record
	if len(existing) > 0 {
		record = existing[0]
	} else {
		record = core.NewRecord(col)
	}
	record.Set("default_price_list", priceList)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save selling settings: %v", err)
	}
}

// CreateTestCustomerGroup creates a customer group with a default price list.
func CreateTestCustomerGroup(t *testing.T, app *pocketbase.PocketBase, name, defaultPriceList string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("customer_groups")
	if err != nil {
		t.Fatalf("failed to find customer_groups collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("default_price_list", defaultPriceList)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test customer group: %v", err)
	}

	return record
}

// CreateTestCustomer creates a customer, optionally linked to a group.
func CreateTestCustomer(t *testing.T, app *pocketbase.PocketBase, name, groupID string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("customers")
	if err != nil {
		t.Fatalf("failed to find customers collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	if groupID != "" {
		record.Set("customer_group", groupID)
	}

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test customer: %v", err)
	}

	return record
}

// CreateTestPattern creates a stitching pattern record.
func CreateTestPattern(t *testing.T, app *pocketbase.PocketBase, name string, isItem bool, item string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("patterns")
	if err != nil {
		t.Fatalf("failed to find patterns collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("is_item", isItem)
	if item != "" {
		record.Set("item", item)
	}

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test pattern: %v", err)
	}

	return record
}

// CreateTestProject creates a project record with the given name.
func CreateTestProject(t *testing.T, app *pocketbase.PocketBase, name string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("projects")
	if err != nil {
		t.Fatalf("failed to find projects collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("status", "active")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test project: %v", err)
	}

	return record
}
