package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"fabricsense/pbstore"
	"fabricsense/services"
)

// HandleSheetRecalculate rederives every line of a sheet from scratch and
// persists the results. Caches are cleared first so the recalculation sees
// current prices and stock. Used on document reload and after the customer
// changes.
func HandleSheetRecalculate(app *pocketbase.PocketBase, calc *services.Calculator) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sheetID := e.Request.PathValue("id")
		if sheetID == "" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Missing sheet ID"})
		}

		sheet, err := app.FindRecordById("measurement_sheets", sheetID)
		if err != nil {
			log.Printf("recalculate: sheet not found %s: %v", sheetID, err)
			return e.JSON(http.StatusNotFound, map[string]string{"error": "Sheet not found"})
		}
		customer := sheet.GetString("customer")

		calc.ClearCaches()

		lines, records, err := pbstore.LoadSheetLines(app, sheetID)
		if err != nil {
			log.Printf("recalculate: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Something went wrong. Please try again."})
		}

		for i := range lines {
			calc.RecalculateLine(&lines[i], customer)
			pbstore.ApplyLineToRecord(&lines[i], records[i])
			if err := app.Save(records[i]); err != nil {
				log.Printf("recalculate: could not save line %s: %v", records[i].Id, err)
				return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Something went wrong. Please try again."})
			}
		}

		total := services.CalcSheetTotal(lines, sheet.GetFloat("visiting_charge"))
		sheet.Set("total_amount", total)
		if err := app.Save(sheet); err != nil {
			log.Printf("recalculate: could not save sheet total %s: %v", sheetID, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Something went wrong. Please try again."})
		}

		return e.JSON(http.StatusOK, map[string]any{
			"lines":        lines,
			"total_amount": total,
		})
	}
}
