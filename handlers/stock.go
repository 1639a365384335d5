package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/spf13/cast"

	"fabricsense/pbstore"
	"fabricsense/services"
)

// HandleStockCheck reports whether a required quantity of an item is on
// hand. The qty query param is optional; without it the check degrades to
// "any stock at all".
func HandleStockCheck(app *pocketbase.PocketBase, calc *services.Calculator) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		itemCode := e.Request.PathValue("itemCode")
		if itemCode == "" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Missing item code"})
		}

		qty := cast.ToFloat64(e.Request.URL.Query().Get("qty"))

		return e.JSON(http.StatusOK, calc.Stock.Check(itemCode, qty))
	}
}

// HandleSheetStockCheck aggregates required quantities across every line of
// a sheet and reports the items that fall short.
func HandleSheetStockCheck(app *pocketbase.PocketBase, calc *services.Calculator) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sheetID := e.Request.PathValue("id")
		if sheetID == "" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Missing sheet ID"})
		}

		if _, err := app.FindRecordById("measurement_sheets", sheetID); err != nil {
			log.Printf("stock_check: sheet not found %s: %v", sheetID, err)
			return e.JSON(http.StatusNotFound, map[string]string{"error": "Sheet not found"})
		}

		lines, _, err := pbstore.LoadSheetLines(app, sheetID)
		if err != nil {
			log.Printf("stock_check: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Something went wrong. Please try again."})
		}

		shortages := calc.Stock.CheckAll(lines)

		return e.JSON(http.StatusOK, map[string]any{
			"all_available": len(shortages) == 0,
			"shortages":     shortages,
		})
	}
}
