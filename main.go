package main

import (
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"fabricsense/collections"
	"fabricsense/handlers"
	"fabricsense/pbstore"
	"fabricsense/services"
)

func main() {
	app := pocketbase.New()

	store := pbstore.NewStore(app)
	calc := services.NewCalculator(store, store, store)
	totals := services.NewScheduler(services.RecalcDebounce)

	// Create collections, seed data and backfill totals on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		if err := collections.MigrateSheetTotals(app); err != nil {
			log.Printf("Warning: sheet totals migration failed: %v", err)
		}
		return se.Next()
	})

	// Conditional-mandatory rules gate sheet persistence. A project may carry
	// at most one sheet, and approval additionally requires a customer and at
	// least one measurement line.
	validateSheet := func(e *core.RecordRequestEvent) error {
		if errs := services.ValidateSheet(pbstore.SheetInfoFromRecord(e.Record)); len(errs) != 0 {
			return apis.NewBadRequestError("Validation failed", map[string]any{
				"errors": services.FieldErrors(errs),
			})
		}

		if projectID := e.Record.GetString("project"); projectID != "" {
			existing, err := app.FindRecordsByFilter(
				"measurement_sheets",
				"project = {:project} && id != {:id}",
				"", 1, 0,
				map[string]any{"project": projectID, "id": e.Record.Id},
			)
			if err != nil {
				log.Printf("sheet_validate: project uniqueness check: %v", err)
			} else if len(existing) > 0 {
				return apis.NewBadRequestError(
					"A measurement sheet already exists for this project", nil)
			}
		}

		if e.Record.GetString("status") == services.StatusApproved {
			if e.Record.GetString("customer") == "" {
				return apis.NewBadRequestError(
					"Customer is required to approve a measurement sheet", nil)
			}
			lines, err := app.FindRecordsByFilter(
				"measurement_lines",
				"sheet = {:sheet}",
				"", 1, 0,
				map[string]any{"sheet": e.Record.Id},
			)
			if err != nil {
				log.Printf("sheet_validate: line count check: %v", err)
			} else if len(lines) == 0 {
				return apis.NewBadRequestError(
					"At least one measurement line is required to approve a sheet", nil)
			}
		}

		return e.Next()
	}
	app.OnRecordCreateRequest("measurement_sheets").BindFunc(validateSheet)
	app.OnRecordUpdateRequest("measurement_sheets").BindFunc(validateSheet)

	// A customer change invalidates every cached rate: the next recalculation
	// must resolve against the new customer's price list.
	app.OnRecordUpdateRequest("measurement_sheets").BindFunc(func(e *core.RecordRequestEvent) error {
		if e.Record.Original().GetString("customer") != e.Record.GetString("customer") {
			calc.ClearCaches()
		}
		return e.Next()
	})

	validateLine := func(e *core.RecordRequestEvent) error {
		if errs := services.ValidateLine(pbstore.LineFromRecord(e.Record)); len(errs) != 0 {
			return apis.NewBadRequestError("Validation failed", map[string]any{
				"errors": services.FieldErrors(errs),
			})
		}
		return e.Next()
	}
	app.OnRecordCreateRequest("measurement_lines").BindFunc(validateLine)
	app.OnRecordUpdateRequest("measurement_lines").BindFunc(validateLine)

	// Keep the parent total in step with its lines. Edits arrive in bursts, so
	// the recompute per sheet is debounced rather than run per save.
	scheduleTotal := func(sheetID string) {
		if sheetID == "" {
			return
		}
		totals.Schedule(sheetID, func() {
			sheet, err := app.FindRecordById("measurement_sheets", sheetID)
			if err != nil {
				log.Printf("totals: sheet %s: %v", sheetID, err)
				return
			}
			lines, _, err := pbstore.LoadSheetLines(app, sheetID)
			if err != nil {
				log.Printf("totals: lines of sheet %s: %v", sheetID, err)
				return
			}
			sheet.Set("total_amount", services.CalcSheetTotal(lines, sheet.GetFloat("visiting_charge")))
			if err := app.Save(sheet); err != nil {
				log.Printf("totals: save sheet %s: %v", sheetID, err)
			}
		})
	}
	lineSaved := func(e *core.RecordEvent) error {
		scheduleTotal(e.Record.GetString("sheet"))
		return e.Next()
	}
	app.OnRecordAfterCreateSuccess("measurement_lines").BindFunc(lineSaved)
	app.OnRecordAfterUpdateSuccess("measurement_lines").BindFunc(lineSaved)
	app.OnRecordAfterDeleteSuccess("measurement_lines").BindFunc(lineSaved)

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// ── Catalog and pricing ─────────────────────────────────
		se.Router.GET("/api/items", handlers.HandleItemList(app))
		se.Router.GET("/api/items/{itemCode}/rate", handlers.HandleItemRate(app, calc))
		se.Router.GET("/api/stock/{itemCode}", handlers.HandleStockCheck(app, calc))

		// ── Sheet calculation ───────────────────────────────────
		se.Router.POST("/api/sheets/{id}/recalculate", handlers.HandleSheetRecalculate(app, calc))
		se.Router.POST("/api/sheets/{id}/lines/{lineId}/field", handlers.HandleLineFieldChange(app, calc))
		se.Router.GET("/api/sheets/{id}/stock-check", handlers.HandleSheetStockCheck(app, calc))

		// ── Sheet export ────────────────────────────────────────
		se.Router.GET("/api/sheets/{id}/export/excel", handlers.HandleSheetExportExcel(app))
		se.Router.GET("/api/sheets/{id}/export/pdf", handlers.HandleSheetExportPDF(app))

		// ── Sales order extraction ──────────────────────────────
		se.Router.GET("/api/sheets/{id}/sales-order-data", handlers.HandleSalesOrderData(app, calc))

		return se.Next()
	})

	app.OnTerminate().BindFunc(func(te *core.TerminateEvent) error {
		totals.Stop()
		return te.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
