// Package pbstore backs the calculation engine's lookup interfaces with
// PocketBase collections: item prices, customer price list chains, warehouse
// bins and stitching patterns.
package pbstore

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/pocketbase/pocketbase"
)

// Store implements services.PriceSource, services.StockSource and
// services.PatternSource on top of a PocketBase app.
type Store struct {
	app *pocketbase.PocketBase
}

func NewStore(app *pocketbase.PocketBase) *Store {
	return &Store{app: app}
}

// ItemRate returns the most recently updated selling rate for the item on the
// given price list. found is false when the list carries no price for it.
func (s *Store) ItemRate(itemCode, priceList string) (float64, bool, error) {
	records, err := s.app.FindRecordsByFilter(
		"item_prices",
		"item_code = {:item} && price_list = {:list} && selling = true",
		"-updated",
		1,
		0,
		map[string]any{"item": itemCode, "list": priceList},
	)
	if err != nil {
		return 0, false, fmt.Errorf("query item_prices for %s on %s: %w", itemCode, priceList, err)
	}
	if len(records) == 0 {
		return 0, false, nil
	}
	return records[0].GetFloat("rate"), true, nil
}

// CustomerPriceList walks customer -> customer group -> default price list.
// Any missing hop yields an empty list, not an error.
func (s *Store) CustomerPriceList(customer string) (string, error) {
	if customer == "" {
		return "", nil
	}

	rec, err := s.app.FindRecordById("customers", customer)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("find customer %s: %w", customer, err)
	}

	groupID := rec.GetString("customer_group")
	if groupID == "" {
		return "", nil
	}

	group, err := s.app.FindRecordById("customer_groups", groupID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("find customer group %s: %w", groupID, err)
	}

	return group.GetString("default_price_list"), nil
}

// DefaultPriceList returns the system-wide default selling list from the
// selling_settings singleton, or empty when none is configured.
func (s *Store) DefaultPriceList() (string, error) {
	records, err := s.app.FindRecordsByFilter("selling_settings", "id != ''", "", 1, 0)
	if err != nil {
		return "", fmt.Errorf("query selling_settings: %w", err)
	}
	if len(records) == 0 {
		return "", nil
	}
	return records[0].GetString("default_price_list"), nil
}

// OnHand sums actual_qty across every warehouse bin for the item.
func (s *Store) OnHand(itemCode string) (float64, error) {
	records, err := s.app.FindRecordsByFilter(
		"bins",
		"item_code = {:item}",
		"",
		0,
		0,
		map[string]any{"item": itemCode},
	)
	if err != nil {
		return 0, fmt.Errorf("query bins for %s: %w", itemCode, err)
	}

	var total float64
	for _, rec := range records {
		total += rec.GetFloat("actual_qty")
	}
	return total, nil
}

// PatternItem resolves a pattern name to its catalog item. ok is false when
// the pattern does not exist or does not map to an item.
func (s *Store) PatternItem(pattern string) (string, bool, error) {
	rec, err := s.app.FindFirstRecordByFilter(
		"patterns",
		"name = {:name}",
		map[string]any{"name": pattern},
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("find pattern %s: %w", pattern, err)
	}

	if !rec.GetBool("is_item") {
		return "", false, nil
	}
	item := rec.GetString("item")
	if item == "" {
		return "", false, nil
	}
	return item, true, nil
}
