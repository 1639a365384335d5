package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/spf13/cast"

	"fabricsense/pbstore"
	"fabricsense/services"
)

// fieldChangeRequest is the body of a line field edit: which field changed
// and its new value. Numeric values may arrive as JSON numbers or strings.
type fieldChangeRequest struct {
	Field string `json:"field"`
	Value any    `json:"value"`
}

// HandleLineFieldChange applies a single field edit to a measurement line,
// runs the dependent recalculation and persists the result. The updated line
// is returned so the client can refresh every derived field at once. A
// rejected edit (invalid panels) returns 422 with the field cleared and
// saved.
func HandleLineFieldChange(app *pocketbase.PocketBase, calc *services.Calculator) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sheetID := e.Request.PathValue("id")
		lineID := e.Request.PathValue("lineId")
		if sheetID == "" || lineID == "" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Missing required IDs"})
		}

		var req fieldChangeRequest
		if err := json.NewDecoder(e.Request.Body).Decode(&req); err != nil {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		}
		if req.Field == "" {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": "Missing field name"})
		}

		rec, err := app.FindRecordById("measurement_lines", lineID)
		if err != nil {
			log.Printf("line_field: line not found %s: %v", lineID, err)
			return e.JSON(http.StatusNotFound, map[string]string{"error": "Line not found"})
		}
		if rec.GetString("sheet") != sheetID {
			return e.JSON(http.StatusNotFound, map[string]string{"error": "Line does not belong to sheet"})
		}

		sheet, err := app.FindRecordById("measurement_sheets", sheetID)
		if err != nil {
			log.Printf("line_field: sheet not found %s: %v", sheetID, err)
			return e.JSON(http.StatusNotFound, map[string]string{"error": "Sheet not found"})
		}
		customer := sheet.GetString("customer")

		line := pbstore.LineFromRecord(rec)
		if err := setLineField(&line, req.Field, req.Value); err != nil {
			return e.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}

		calcErr := calc.ApplyFieldChange(&line, req.Field, customer)

		pbstore.ApplyLineToRecord(&line, rec)
		if err := app.Save(rec); err != nil {
			log.Printf("line_field: could not save line %s: %v", lineID, err)
			return e.JSON(http.StatusInternalServerError, map[string]string{"error": "Something went wrong. Please try again."})
		}

		updateSheetTotal(app, sheet)

		var invalid services.ErrInvalidPanels
		if errors.As(calcErr, &invalid) {
			return e.JSON(http.StatusUnprocessableEntity, map[string]any{
				"error": invalid.Error(),
				"line":  line,
			})
		}

		return e.JSON(http.StatusOK, map[string]any{"line": line})
	}
}

// setLineField writes a raw request value into the named line field,
// coercing numbers that arrive as strings.
func setLineField(line *services.MeasurementLine, field string, value any) error {
	setFloat := func(dst *float64) error {
		f, err := cast.ToFloat64E(value)
		if err != nil {
			return fmt.Errorf("field %s expects a number", field)
		}
		*dst = f
		return nil
	}

	switch field {
	case "area":
		line.Area = cast.ToString(value)
	case "product_type":
		line.ProductType = services.ProductType(cast.ToString(value))
	case "width":
		return setFloat(&line.Width)
	case "height":
		return setFloat(&line.Height)
	case "panels":
		return setFloat(&line.Panels)
	case "adjust":
		return setFloat(&line.Adjust)
	case "fabric_selected":
		line.FabricSelected = cast.ToString(value)
	case "fabric_qty":
		return setFloat(&line.FabricQty)
	case "fabric_rate":
		return setFloat(&line.FabricRate)
	case "lining":
		line.Lining = cast.ToString(value)
	case "lining_qty":
		return setFloat(&line.LiningQty)
	case "lining_rate":
		return setFloat(&line.LiningRate)
	case "lead_rope":
		line.LeadRope = cast.ToString(value)
	case "lead_rope_qty":
		return setFloat(&line.LeadRopeQty)
	case "lead_rope_rate":
		return setFloat(&line.LeadRopeRate)
	case "track_rod":
		line.TrackRod = cast.ToString(value)
	case "track_rod_type":
		line.TrackRodType = services.TrackRodType(cast.ToString(value))
	case "track_rod_qty":
		return setFloat(&line.TrackRodQty)
	case "track_rod_rate":
		return setFloat(&line.TrackRodRate)
	case "pattern":
		line.Pattern = cast.ToString(value)
	case "stitching_pattern":
		line.StitchingPattern = cast.ToString(value)
	case "stitching_charge":
		return setFloat(&line.StitchingCharge)
	case "fitting_type":
		line.FittingType = cast.ToString(value)
	case "fitting_charge":
		return setFloat(&line.FittingCharge)
	case "selection":
		line.Selection = cast.ToString(value)
	default:
		return fmt.Errorf("unknown field %q", field)
	}
	return nil
}

// updateSheetTotal recomputes and persists the sheet's total from its lines.
// Failures are logged, not surfaced: the line edit already succeeded.
func updateSheetTotal(app *pocketbase.PocketBase, sheet *core.Record) {
	lines, _, err := pbstore.LoadSheetLines(app, sheet.Id)
	if err != nil {
		log.Printf("line_field: could not load lines for total of sheet %s: %v", sheet.Id, err)
		return
	}

	total := services.CalcSheetTotal(lines, sheet.GetFloat("visiting_charge"))
	sheet.Set("total_amount", total)
	if err := app.Save(sheet); err != nil {
		log.Printf("line_field: could not save total for sheet %s: %v", sheet.Id, err)
	}
}
