package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
)

// MigrateSheetTotals recomputes total_amount for every sheet whose stored
// total is missing, summing line amounts plus the visiting charge. Sheets
// saved before totals were persisted carry a zero total even when their lines
// have amounts. Safe to call on every startup -- sheets with a non-zero total
// are left alone.
func MigrateSheetTotals(app *pocketbase.PocketBase) error {
	sheetsCol, err := app.FindCollectionByNameOrId("measurement_sheets")
	if err != nil {
		return fmt.Errorf("migrate: could not find measurement_sheets collection: %w", err)
	}

	sheets, err := app.FindRecordsByFilter(sheetsCol, "total_amount = 0", "", 0, 0, nil)
	if err != nil {
		return fmt.Errorf("migrate: could not query sheets without totals: %w", err)
	}
	if len(sheets) == 0 {
		return nil
	}

	migrated := 0
	for _, sheet := range sheets {
		lines, err := app.FindRecordsByFilter(
			"measurement_lines",
			"sheet = {:sheet}",
			"",
			0,
			0,
			map[string]any{"sheet": sheet.Id},
		)
		if err != nil {
			log.Printf("migrate: could not query lines for sheet %s: %v\n", sheet.Id, err)
			continue
		}

		total := sheet.GetFloat("visiting_charge")
		for _, line := range lines {
			total += line.GetFloat("amount")
		}
		if total == 0 {
			continue
		}

		sheet.Set("total_amount", total)
		if err := app.Save(sheet); err != nil {
			log.Printf("migrate: failed to update total for sheet %s: %v\n", sheet.Id, err)
			continue
		}
		migrated++
	}

	if migrated > 0 {
		log.Printf("migrate: recomputed totals for %d sheet(s)\n", migrated)
	}
	return nil
}
