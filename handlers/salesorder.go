package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"fabricsense/pbstore"
	"fabricsense/services"
)

// HandleSalesOrderData flattens an approved sheet's lines into consolidated
// sales order items. Draft and rejected sheets are refused: only approved
// measurements may feed an order.
func HandleSalesOrderData(app *pocketbase.PocketBase, calc *services.Calculator) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sheetID := e.Request.PathValue("id")
		if sheetID == "" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Missing sheet ID"})
		}

		sheet, err := app.FindRecordById("measurement_sheets", sheetID)
		if err != nil {
			log.Printf("sales_order: sheet not found %s: %v", sheetID, err)
			return e.JSON(http.StatusNotFound, map[string]string{"error": "Sheet not found"})
		}

		if sheet.GetString("status") != services.StatusApproved {
			return e.JSON(http.StatusBadRequest, map[string]string{
				"error": "Sheet must be approved before creating a sales order",
			})
		}

		lines, _, err := pbstore.LoadSheetLines(app, sheetID)
		if err != nil {
			log.Printf("sales_order: %v", err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Something went wrong. Please try again."})
		}

		customer := sheet.GetString("customer")
		selectionRates := make(map[string]float64)
		for i := range lines {
			if sel := lines[i].Selection; sel != "" {
				if _, ok := selectionRates[sel]; !ok {
					selectionRates[sel] = calc.Rates.Resolve(sel, "", customer)
				}
			}
		}

		items := services.ExtractOrderItems(lines, selectionRates)

		return e.JSON(http.StatusOK, map[string]any{
			"customer": customer,
			"items":    items,
		})
	}
}
