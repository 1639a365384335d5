package pbstore

import (
	"fmt"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"fabricsense/services"
)

// LineFromRecord maps a measurement_lines record onto the engine's line type.
func LineFromRecord(rec *core.Record) services.MeasurementLine {
	return services.MeasurementLine{
		ID:          rec.Id,
		Area:        rec.GetString("area"),
		ProductType: services.ProductType(rec.GetString("product_type")),

		Width:  rec.GetFloat("width"),
		Height: rec.GetFloat("height"),
		Panels: rec.GetFloat("panels"),
		Adjust: rec.GetFloat("adjust"),

		SquareFeet: rec.GetFloat("square_feet"),

		FabricSelected: rec.GetString("fabric_selected"),
		FabricQty:      rec.GetFloat("fabric_qty"),
		FabricRate:     rec.GetFloat("fabric_rate"),
		FabricAmount:   rec.GetFloat("fabric_amount"),

		Lining:       rec.GetString("lining"),
		LiningQty:    rec.GetFloat("lining_qty"),
		LiningRate:   rec.GetFloat("lining_rate"),
		LiningAmount: rec.GetFloat("lining_amount"),

		LeadRope:       rec.GetString("lead_rope"),
		LeadRopeQty:    rec.GetFloat("lead_rope_qty"),
		LeadRopeRate:   rec.GetFloat("lead_rope_rate"),
		LeadRopeAmount: rec.GetFloat("lead_rope_amount"),

		TrackRod:       rec.GetString("track_rod"),
		TrackRodType:   services.TrackRodType(rec.GetString("track_rod_type")),
		TrackRodQty:    rec.GetFloat("track_rod_qty"),
		TrackRodRate:   rec.GetFloat("track_rod_rate"),
		TrackRodAmount: rec.GetFloat("track_rod_amount"),

		Pattern:          rec.GetString("pattern"),
		StitchingPattern: rec.GetString("stitching_pattern"),
		StitchingCharge:  rec.GetFloat("stitching_charge"),

		FittingType:   rec.GetString("fitting_type"),
		FittingCharge: rec.GetFloat("fitting_charge"),

		Selection: rec.GetString("selection"),

		Amount: rec.GetFloat("amount"),

		PendingAutoFill: rec.GetBool("pending_auto_fill"),
	}
}

// ApplyLineToRecord writes the engine's line fields back onto the record.
// The sheet relation is left untouched.
func ApplyLineToRecord(line *services.MeasurementLine, rec *core.Record) {
	rec.Set("area", line.Area)
	rec.Set("product_type", string(line.ProductType))

	rec.Set("width", line.Width)
	rec.Set("height", line.Height)
	rec.Set("panels", line.Panels)
	rec.Set("adjust", line.Adjust)

	rec.Set("square_feet", line.SquareFeet)

	rec.Set("fabric_selected", line.FabricSelected)
	rec.Set("fabric_qty", line.FabricQty)
	rec.Set("fabric_rate", line.FabricRate)
	rec.Set("fabric_amount", line.FabricAmount)

	rec.Set("lining", line.Lining)
	rec.Set("lining_qty", line.LiningQty)
	rec.Set("lining_rate", line.LiningRate)
	rec.Set("lining_amount", line.LiningAmount)

	rec.Set("lead_rope", line.LeadRope)
	rec.Set("lead_rope_qty", line.LeadRopeQty)
	rec.Set("lead_rope_rate", line.LeadRopeRate)
	rec.Set("lead_rope_amount", line.LeadRopeAmount)

	rec.Set("track_rod", line.TrackRod)
	rec.Set("track_rod_type", string(line.TrackRodType))
	rec.Set("track_rod_qty", line.TrackRodQty)
	rec.Set("track_rod_rate", line.TrackRodRate)
	rec.Set("track_rod_amount", line.TrackRodAmount)

	rec.Set("pattern", line.Pattern)
	rec.Set("stitching_pattern", line.StitchingPattern)
	rec.Set("stitching_charge", line.StitchingCharge)

	rec.Set("fitting_type", line.FittingType)
	rec.Set("fitting_charge", line.FittingCharge)

	rec.Set("selection", line.Selection)

	rec.Set("amount", line.Amount)

	rec.Set("pending_auto_fill", line.PendingAutoFill)
}

// LoadSheetLines fetches a sheet's measurement lines in entry order and maps
// them to engine lines. The raw records are returned alongside so callers can
// write recalculated values back.
func LoadSheetLines(app *pocketbase.PocketBase, sheetID string) ([]services.MeasurementLine, []*core.Record, error) {
	records, err := app.FindRecordsByFilter(
		"measurement_lines",
		"sheet = {:sheet}",
		"sort_order",
		0,
		0,
		map[string]any{"sheet": sheetID},
	)
	if err != nil {
		return nil, nil, fmt.Errorf("query measurement_lines for sheet %s: %w", sheetID, err)
	}

	lines := make([]services.MeasurementLine, len(records))
	for i, rec := range records {
		lines[i] = LineFromRecord(rec)
	}
	return lines, records, nil
}

// SheetInfoFromRecord maps a measurement_sheets record onto the validation
// engine's sheet type.
func SheetInfoFromRecord(rec *core.Record) services.SheetInfo {
	return services.SheetInfo{
		Customer:                rec.GetString("customer"),
		OrderType:               rec.GetString("order_type"),
		MeasurementMethod:       rec.GetString("measurement_method"),
		Project:                 rec.GetString("project"),
		AssignedContractor:      rec.GetString("assigned_contractor"),
		ExpectedMeasurementDate: rec.GetString("expected_measurement_date"),
		SiteVisitRequired:       rec.GetBool("site_visit_required"),
		VisitingCharge:          rec.GetFloat("visiting_charge"),
		Status:                  rec.GetString("status"),
		RejectionReason:         rec.GetString("rejection_reason"),
	}
}
