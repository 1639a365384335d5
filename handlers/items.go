package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"fabricsense/services"
)

// itemOption is one entry in a line item dropdown.
type itemOption struct {
	ItemCode  string `json:"item_code"`
	ItemName  string `json:"item_name"`
	ItemGroup string `json:"item_group"`
}

// HandleItemList lists catalog items for a line field's dropdown, restricted
// to the item groups that field accepts. Without a field param every enabled
// item is returned.
func HandleItemList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		field := e.Request.URL.Query().Get("field")

		groups := services.ItemGroupsForField(field)
		if field != "" && groups == nil {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Unknown item field"})
		}

		filter := "disabled = false"
		params := map[string]any{}
		if len(groups) > 0 {
			placeholders := make([]string, len(groups))
			for i, g := range groups {
				key := "group" + string(rune('A'+i))
				placeholders[i] = "item_group = {:" + key + "}"
				params[key] = g
			}
			filter += " && (" + strings.Join(placeholders, " || ") + ")"
		}

		records, err := app.FindRecordsByFilter("items", filter, "item_code", 0, 0, params)
		if err != nil {
			log.Printf("items: could not query items for field %q: %v", field, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Something went wrong. Please try again."})
		}

		options := make([]itemOption, 0, len(records))
		for _, rec := range records {
			options = append(options, itemOption{
				ItemCode:  rec.GetString("item_code"),
				ItemName:  rec.GetString("item_name"),
				ItemGroup: rec.GetString("item_group"),
			})
		}

		return e.JSON(http.StatusOK, map[string]any{"items": options})
	}
}
