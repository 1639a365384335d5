package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// ── Definition structs ───────────────────────────────────────────────────

type itemDef struct {
	code  string
	name  string
	group string
}

type priceDef struct {
	itemCode string
	rate     float64
}

type binDef struct {
	itemCode  string
	warehouse string
	actualQty float64
}

type patternDef struct {
	name   string
	isItem bool
	item   string
}

// Seed populates the lookup collections with a realistic furnishing catalog:
// item groups, items, selling prices, warehouse stock, stitching patterns and
// a demo customer. Safe to call on every startup because it returns early if
// any items already exist.
func Seed(app *pocketbase.PocketBase) error {
	// ── idempotency: skip if items already exist ─────────────────────
	itemsCol, err := app.FindCollectionByNameOrId("items")
	if err != nil {
		return fmt.Errorf("seed: could not find items collection: %w", err)
	}
	existing, err := app.FindAllRecords(itemsCol)
	if err != nil {
		return fmt.Errorf("seed: could not query items: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	log.Println("seed: items collection is empty – inserting seed data …")

	// ── lookup helper collections ────────────────────────────────────
	priceListsCol, err := app.FindCollectionByNameOrId("price_lists")
	if err != nil {
		return fmt.Errorf("seed: could not find price_lists collection: %w", err)
	}
	groupsCol, err := app.FindCollectionByNameOrId("item_groups")
	if err != nil {
		return fmt.Errorf("seed: could not find item_groups collection: %w", err)
	}
	pricesCol, err := app.FindCollectionByNameOrId("item_prices")
	if err != nil {
		return fmt.Errorf("seed: could not find item_prices collection: %w", err)
	}
	binsCol, err := app.FindCollectionByNameOrId("bins")
	if err != nil {
		return fmt.Errorf("seed: could not find bins collection: %w", err)
	}
	patternsCol, err := app.FindCollectionByNameOrId("patterns")
	if err != nil {
		return fmt.Errorf("seed: could not find patterns collection: %w", err)
	}
	settingsCol, err := app.FindCollectionByNameOrId("selling_settings")
	if err != nil {
		return fmt.Errorf("seed: could not find selling_settings collection: %w", err)
	}
	customerGroupsCol, err := app.FindCollectionByNameOrId("customer_groups")
	if err != nil {
		return fmt.Errorf("seed: could not find customer_groups collection: %w", err)
	}
	customersCol, err := app.FindCollectionByNameOrId("customers")
	if err != nil {
		return fmt.Errorf("seed: could not find customers collection: %w", err)
	}
	projectsCol, err := app.FindCollectionByNameOrId("projects")
	if err != nil {
		return fmt.Errorf("seed: could not find projects collection: %w", err)
	}

	// ── price lists ──────────────────────────────────────────────────
	for _, name := range []string{"Standard Selling", "Wholesale"} {
		r := core.NewRecord(priceListsCol)
		r.Set("name", name)
		r.Set("selling", true)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save price list %q: %w", name, err)
		}
	}

	// ── selling settings singleton ───────────────────────────────────
	settings := core.NewRecord(settingsCol)
	settings.Set("default_price_list", "Standard Selling")
	if err := app.Save(settings); err != nil {
		return fmt.Errorf("seed: save selling settings: %w", err)
	}

	// ── item groups ──────────────────────────────────────────────────
	groups := []string{
		"Main Fabric", "Sheer Fabric", "Basic Linings", "Heavy Linings",
		"Lead Rope Items", "Tracks", "Rods", "Blinds", "Stitching",
		"Fitting", "Labour",
	}
	for _, g := range groups {
		r := core.NewRecord(groupsCol)
		r.Set("name", g)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save item group %q: %w", g, err)
		}
	}

	// ── catalog items ────────────────────────────────────────────────
	items := []itemDef{
		{"FAB-VELVET-MAROON", "Velvet Maroon 54\"", "Main Fabric"},
		{"FAB-COTTON-BEIGE", "Cotton Beige 48\"", "Main Fabric"},
		{"FAB-SHEER-WHITE", "Sheer White 110\"", "Sheer Fabric"},
		{"LIN-COTTON-BASIC", "Cotton Lining Basic", "Basic Linings"},
		{"LIN-BLACKOUT", "Blackout Lining 3-Pass", "Heavy Linings"},
		{"ROPE-LEAD-STD", "Lead Rope Standard", "Lead Rope Items"},
		{"TRK-ALU-CH", "Aluminium Channel Track", "Tracks"},
		{"ROD-WOOD-35", "Wooden Rod 35mm", "Rods"},
		{"BLD-ZEBRA-GREY", "Zebra Blind Grey", "Blinds"},
		{"BLD-ROLLER-CREAM", "Roller Blind Cream", "Blinds"},
		{"STITCH-PINCH-PLEAT", "Pinch Pleat Stitching", "Stitching"},
		{"STITCH-EYELET", "Eyelet Stitching", "Stitching"},
		{"STITCH-ROMAN-FOLD", "Roman Fold Stitching", "Stitching"},
		{"FIT-STANDARD", "Standard Fitting", "Fitting"},
		{"FIT-HEIGHT-EXTRA", "Fitting with Scaffolding", "Labour"},
	}
	for _, d := range items {
		r := core.NewRecord(itemsCol)
		r.Set("item_code", d.code)
		r.Set("item_name", d.name)
		r.Set("item_group", d.group)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save item %q: %w", d.code, err)
		}
	}

	// ── selling prices ───────────────────────────────────────────────
	createPrices := func(priceList string, defs []priceDef) error {
		for _, d := range defs {
			r := core.NewRecord(pricesCol)
			r.Set("item_code", d.itemCode)
			r.Set("price_list", priceList)
			r.Set("rate", d.rate)
			r.Set("selling", true)
			if err := app.Save(r); err != nil {
				return fmt.Errorf("seed: save price %q on %q: %w", d.itemCode, priceList, err)
			}
		}
		return nil
	}

	if err := createPrices("Standard Selling", []priceDef{
		{"FAB-VELVET-MAROON", 850},
		{"FAB-COTTON-BEIGE", 450},
		{"FAB-SHEER-WHITE", 320},
		{"LIN-COTTON-BASIC", 180},
		{"LIN-BLACKOUT", 420},
		{"ROPE-LEAD-STD", 60},
		{"TRK-ALU-CH", 140},
		{"ROD-WOOD-35", 220},
		{"BLD-ZEBRA-GREY", 95},
		{"BLD-ROLLER-CREAM", 75},
		{"STITCH-PINCH-PLEAT", 250},
		{"STITCH-EYELET", 180},
		{"STITCH-ROMAN-FOLD", 45},
		{"FIT-STANDARD", 500},
		{"FIT-HEIGHT-EXTRA", 1200},
	}); err != nil {
		return err
	}

	if err := createPrices("Wholesale", []priceDef{
		{"FAB-VELVET-MAROON", 720},
		{"FAB-COTTON-BEIGE", 380},
		{"LIN-BLACKOUT", 360},
		{"BLD-ZEBRA-GREY", 80},
	}); err != nil {
		return err
	}

	// ── warehouse bins ───────────────────────────────────────────────
	bins := []binDef{
		{"FAB-VELVET-MAROON", "Showroom", 42},
		{"FAB-VELVET-MAROON", "Godown", 120},
		{"FAB-COTTON-BEIGE", "Showroom", 65},
		{"FAB-SHEER-WHITE", "Godown", 200},
		{"LIN-COTTON-BASIC", "Godown", 150},
		{"LIN-BLACKOUT", "Godown", 35},
		{"ROPE-LEAD-STD", "Showroom", 80},
		{"TRK-ALU-CH", "Godown", 60},
		{"ROD-WOOD-35", "Godown", 25},
		{"BLD-ZEBRA-GREY", "Showroom", 300},
		{"BLD-ROLLER-CREAM", "Showroom", 0},
	}
	for _, d := range bins {
		r := core.NewRecord(binsCol)
		r.Set("item_code", d.itemCode)
		r.Set("warehouse", d.warehouse)
		r.Set("actual_qty", d.actualQty)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save bin %q/%q: %w", d.itemCode, d.warehouse, err)
		}
	}

	// ── stitching patterns ───────────────────────────────────────────
	patterns := []patternDef{
		{"Pinch Pleat", true, "STITCH-PINCH-PLEAT"},
		{"Eyelet", true, "STITCH-EYELET"},
		{"Roman Fold", true, "STITCH-ROMAN-FOLD"},
		{"Plain", false, ""},
	}
	for _, d := range patterns {
		r := core.NewRecord(patternsCol)
		r.Set("name", d.name)
		r.Set("is_item", d.isItem)
		if d.item != "" {
			r.Set("item", d.item)
		}
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save pattern %q: %w", d.name, err)
		}
	}

	// ── demo customer group and customer ─────────────────────────────
	retailGroup := core.NewRecord(customerGroupsCol)
	retailGroup.Set("name", "Retail")
	retailGroup.Set("default_price_list", "Standard Selling")
	if err := app.Save(retailGroup); err != nil {
		return fmt.Errorf("seed: save customer group Retail: %w", err)
	}

	wholesaleGroup := core.NewRecord(customerGroupsCol)
	wholesaleGroup.Set("name", "Interior Contractors")
	wholesaleGroup.Set("default_price_list", "Wholesale")
	if err := app.Save(wholesaleGroup); err != nil {
		return fmt.Errorf("seed: save customer group Interior Contractors: %w", err)
	}

	cust := core.NewRecord(customersCol)
	cust.Set("name", "Sharma Residence")
	cust.Set("customer_group", retailGroup.Id)
	cust.Set("phone", "9876543210")
	cust.Set("city", "Pune")
	if err := app.Save(cust); err != nil {
		return fmt.Errorf("seed: save customer: %w", err)
	}

	contractor := core.NewRecord(customersCol)
	contractor.Set("name", "Decora Interiors LLP")
	contractor.Set("customer_group", wholesaleGroup.Id)
	contractor.Set("phone", "9822001100")
	contractor.Set("city", "Mumbai")
	if err := app.Save(contractor); err != nil {
		return fmt.Errorf("seed: save contractor customer: %w", err)
	}

	project := core.NewRecord(projectsCol)
	project.Set("name", "Sharma Residence — 3BHK Furnishing")
	project.Set("status", "active")
	if err := app.Save(project); err != nil {
		return fmt.Errorf("seed: save project: %w", err)
	}

	log.Println("seed: all seed data inserted successfully (15 items, 2 price lists, 11 bins, 4 patterns, 2 customers)")
	return nil
}
