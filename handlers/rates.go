package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"fabricsense/services"
)

// HandleItemRate resolves the effective selling rate for an item. Optional
// query params: price_list forces a specific list, customer derives the list
// from the customer's group. A missing price reports rate 0.
func HandleItemRate(app *pocketbase.PocketBase, calc *services.Calculator) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		itemCode := e.Request.PathValue("itemCode")
		if itemCode == "" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Missing item code"})
		}

		priceList := e.Request.URL.Query().Get("price_list")
		customer := e.Request.URL.Query().Get("customer")

		rate := calc.Rates.Resolve(itemCode, priceList, customer)

		return e.JSON(http.StatusOK, map[string]any{
			"item_code": itemCode,
			"rate":      rate,
		})
	}
}
