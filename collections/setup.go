package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// Setup programmatically creates/ensures all collections: the pricing and
// stock lookup tables, the catalog, and the measurement sheet with its lines.
func Setup(app *pocketbase.PocketBase) {
	ensureCollection(app, "price_lists", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.BoolField{Name: "selling"})
	})

	ensureCollection(app, "customer_groups", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "default_price_list", Required: false})
	})

	customerGroups, err := app.FindCollectionByNameOrId("customer_groups")
	if err != nil {
		log.Fatalf("Failed to look up customer_groups collection: %v", err)
	}

	ensureCollection(app, "customers", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.RelationField{
			Name:         "customer_group",
			Required:     false,
			CollectionId: customerGroups.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.TextField{Name: "phone", Required: false})
		c.Fields.Add(&core.TextField{Name: "city", Required: false})
	})

	ensureCollection(app, "selling_settings", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "default_price_list", Required: false})
	})

	ensureCollection(app, "item_groups", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
	})

	ensureCollection(app, "items", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "item_code", Required: true})
		c.Fields.Add(&core.TextField{Name: "item_name", Required: false})
		c.Fields.Add(&core.TextField{Name: "item_group", Required: true})
		c.Fields.Add(&core.BoolField{Name: "disabled"})
	})

	ensureCollection(app, "item_prices", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "item_code", Required: true})
		c.Fields.Add(&core.TextField{Name: "price_list", Required: true})
		c.Fields.Add(&core.NumberField{Name: "rate", Required: false})
		c.Fields.Add(&core.BoolField{Name: "selling"})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "bins", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "item_code", Required: true})
		c.Fields.Add(&core.TextField{Name: "warehouse", Required: true})
		c.Fields.Add(&core.NumberField{Name: "actual_qty", Required: false})
	})

	ensureCollection(app, "patterns", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.BoolField{Name: "is_item"})
		c.Fields.Add(&core.TextField{Name: "item", Required: false})
	})

	ensureCollection(app, "projects", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "status", Required: false})
	})

	projects, err := app.FindCollectionByNameOrId("projects")
	if err != nil {
		log.Fatalf("Failed to look up projects collection: %v", err)
	}
	customers, err := app.FindCollectionByNameOrId("customers")
	if err != nil {
		log.Fatalf("Failed to look up customers collection: %v", err)
	}

	sheets := ensureCollection(app, "measurement_sheets", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "title", Required: false})
		c.Fields.Add(&core.RelationField{
			Name:         "customer",
			Required:     false,
			CollectionId: customers.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.SelectField{
			Name:      "order_type",
			Required:  false,
			Values:    []string{"Fitting", "Delivery"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.SelectField{
			Name:      "measurement_method",
			Required:  false,
			Values:    []string{"Customer Provided", "Contractor Assigned"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.RelationField{
			Name:         "project",
			Required:     false,
			CollectionId: projects.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.TextField{Name: "assigned_contractor", Required: false})
		c.Fields.Add(&core.TextField{Name: "expected_measurement_date", Required: false})
		c.Fields.Add(&core.BoolField{Name: "site_visit_required"})
		c.Fields.Add(&core.NumberField{Name: "visiting_charge", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  false,
			Values:    []string{"Draft", "Approved", "Rejected"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "rejection_reason", Required: false})
		c.Fields.Add(&core.NumberField{Name: "total_amount", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "measurement_lines", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "sheet",
			Required:      true,
			CollectionId:  sheets.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: false})
		c.Fields.Add(&core.TextField{Name: "area", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "product_type",
			Required:  false,
			Values:    []string{"Window Curtains", "Roman Blinds", "Blinds", "Tracks/Rods"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.NumberField{Name: "width", Required: false})
		c.Fields.Add(&core.NumberField{Name: "height", Required: false})
		c.Fields.Add(&core.NumberField{Name: "panels", Required: false})
		c.Fields.Add(&core.NumberField{Name: "adjust", Required: false})
		c.Fields.Add(&core.NumberField{Name: "square_feet", Required: false})
		c.Fields.Add(&core.TextField{Name: "fabric_selected", Required: false})
		c.Fields.Add(&core.NumberField{Name: "fabric_qty", Required: false})
		c.Fields.Add(&core.NumberField{Name: "fabric_rate", Required: false})
		c.Fields.Add(&core.NumberField{Name: "fabric_amount", Required: false})
		c.Fields.Add(&core.TextField{Name: "lining", Required: false})
		c.Fields.Add(&core.NumberField{Name: "lining_qty", Required: false})
		c.Fields.Add(&core.NumberField{Name: "lining_rate", Required: false})
		c.Fields.Add(&core.NumberField{Name: "lining_amount", Required: false})
		c.Fields.Add(&core.TextField{Name: "lead_rope", Required: false})
		c.Fields.Add(&core.NumberField{Name: "lead_rope_qty", Required: false})
		c.Fields.Add(&core.NumberField{Name: "lead_rope_rate", Required: false})
		c.Fields.Add(&core.NumberField{Name: "lead_rope_amount", Required: false})
		c.Fields.Add(&core.TextField{Name: "track_rod", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "track_rod_type",
			Required:  false,
			Values:    []string{"Single Glide", "Double Glide", "Triple Glide"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.NumberField{Name: "track_rod_qty", Required: false})
		c.Fields.Add(&core.NumberField{Name: "track_rod_rate", Required: false})
		c.Fields.Add(&core.NumberField{Name: "track_rod_amount", Required: false})
		c.Fields.Add(&core.TextField{Name: "pattern", Required: false})
		c.Fields.Add(&core.TextField{Name: "stitching_pattern", Required: false})
		c.Fields.Add(&core.NumberField{Name: "stitching_charge", Required: false})
		c.Fields.Add(&core.TextField{Name: "fitting_type", Required: false})
		c.Fields.Add(&core.NumberField{Name: "fitting_charge", Required: false})
		c.Fields.Add(&core.TextField{Name: "selection", Required: false})
		c.Fields.Add(&core.NumberField{Name: "amount", Required: false})
		c.Fields.Add(&core.BoolField{Name: "pending_auto_fill"})
	})
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
