package services

import "fmt"

// leadRopePerPanel is the lead rope length charged per curtain panel.
// Opaque business constant carried over from the pricing rules; the unit is
// whatever the lead rope items are priced in.
const leadRopePerPanel = 1.5

// CalcSquareFeet derives the area of a line from its width and height in
// inches. Only Roman Blinds and Blinds are area-priced; every other product
// type yields 0. The result is rounded up to the nearest half.
func CalcSquareFeet(productType ProductType, width, height float64) float64 {
	switch productType {
	case ProductRomanBlinds:
		if width > 0 && height > 0 {
			return RoundUpHalf(width * height / 144)
		}
	case ProductBlinds:
		if width > 0 && height > 0 {
			return RoundUpHalf((height + 6) * width / 144)
		}
	}
	return 0
}

// CalcFabricQty derives the fabric quantity of a line. Lining quantity is
// always identical, so callers assign the result to both fields.
func CalcFabricQty(productType ProductType, height, panels, adjust, squareFeet float64) float64 {
	var qty float64
	switch {
	case productType.UsesFabric():
		qty = ((height+16)*panels)/38 + adjust
	case productType == ProductBlinds:
		if squareFeet > 0 {
			qty = squareFeet
		}
	}
	return RoundUpHalf(qty)
}

// CalcLeadRopeQty derives the lead rope quantity. Lead rope applies to
// Window Curtains only.
func CalcLeadRopeQty(productType ProductType, panels float64) float64 {
	if productType == ProductWindowCurtains && panels > 0 {
		return RoundUpHalf(panels * leadRopePerPanel)
	}
	return 0
}

// CalcTrackRodQty derives the track/rod quantity from the line width and
// glide type. It applies to Window Curtains and Tracks/Rods rows.
func CalcTrackRodQty(productType ProductType, width float64, trackRodType TrackRodType) float64 {
	if productType != ProductWindowCurtains && productType != ProductTracksRods {
		return 0
	}
	if width <= 0 {
		return 0
	}
	return RoundUpHalf((width / 12) * trackRodType.Multiplier())
}

// CalcStitchingCharge scales the stitching pattern rate by the line's
// dimensioning quantity: panels for Window Curtains, square feet for Roman
// Blinds, and unscaled for everything else.
func CalcStitchingCharge(productType ProductType, rate, panels, squareFeet float64) float64 {
	switch productType {
	case ProductWindowCurtains:
		return panels * rate
	case ProductRomanBlinds:
		return squareFeet * rate
	default:
		return rate
	}
}

// ErrInvalidPanels is returned when a panels edit violates the domain
// constraint. The caller clears the field and surfaces the message without
// running any dependent recalculation.
type ErrInvalidPanels struct {
	ProductType ProductType
	Panels      float64
}

func (e ErrInvalidPanels) Error() string {
	return fmt.Sprintf("panel must be greater than 0 for %s", e.ProductType)
}

// CheckPanels validates a panels value for the given product type. Panels
// must be strictly positive for Window Curtains and Roman Blinds.
func CheckPanels(productType ProductType, panels float64) error {
	if productType.UsesFabric() && panels <= 0 {
		return ErrInvalidPanels{ProductType: productType, Panels: panels}
	}
	return nil
}

// ResetForProductType clears the fields that belong to branches not
// applicable to the line's (new) product type. Fields shared across
// applicable branches are left untouched. Must run to completion before any
// dependent recalculation is scheduled.
func ResetForProductType(line *MeasurementLine) {
	if line == nil {
		return
	}

	if line.ProductType != ProductWindowCurtains {
		line.LeadRope = ""
		line.LeadRopeQty = 0
		line.LeadRopeRate = 0
		line.LeadRopeAmount = 0
		line.TrackRod = ""
		line.TrackRodQty = 0
		line.TrackRodRate = 0
		line.TrackRodAmount = 0
	}

	if line.ProductType != ProductBlinds {
		line.Selection = ""
	}

	if !line.ProductType.UsesFabric() {
		line.Pattern = ""
		// Panels stays zero rather than defaulting, so a later switch back
		// to a curtain type forces the user to re-enter a valid count.
		line.Panels = 0
		line.Adjust = 0
		line.FabricSelected = ""
		line.FabricQty = 0
		line.FabricRate = 0
		line.FabricAmount = 0
		line.Lining = ""
		line.LiningQty = 0
		line.LiningRate = 0
		line.LiningAmount = 0
		line.StitchingPattern = ""
		line.StitchingCharge = 0
	}

	if line.ProductType == ProductTracksRods {
		line.Height = 0
		line.FabricSelected = ""
		line.Lining = ""
	}
}

// RowAmounts is the monetary breakdown of a single line.
type RowAmounts struct {
	FabricAmount   float64
	LiningAmount   float64
	LeadRopeAmount float64
	TrackRodAmount float64
	Amount         float64
}

// CalcRowAmounts computes the line's monetary amounts from its stored
// quantities and rates. selectionRate is the resolved rate of the line's
// selection item (0 when no selection is set).
//
// Blinds are priced purely by area: square_feet times the selection rate plus
// the fitting charge. Fabric and lining fields are ignored for Blinds even if
// populated. Every other type sums its sub-amounts plus stitching and fitting
// charges, plus a flat selection surcharge when a selection item is set.
func CalcRowAmounts(line *MeasurementLine, selectionRate float64) RowAmounts {
	if line.ProductType == ProductBlinds {
		amount := line.FittingCharge
		if line.Selection != "" && line.SquareFeet > 0 {
			amount = line.SquareFeet*selectionRate + line.FittingCharge
		}
		return RowAmounts{Amount: amount}
	}

	fabricQty := RoundUpHalf(line.FabricQty)
	liningQty := RoundUpHalf(line.LiningQty)
	// Lead rope qty is rounded when stored; reuse it as-is to avoid
	// compounding precision adjustments.
	leadRopeQty := line.LeadRopeQty
	trackRodQty := RoundUpHalf(line.TrackRodQty)

	amounts := RowAmounts{
		FabricAmount:   fabricQty * line.FabricRate,
		LiningAmount:   liningQty * line.LiningRate,
		LeadRopeAmount: leadRopeQty * line.LeadRopeRate,
		TrackRodAmount: trackRodQty * line.TrackRodRate,
	}

	subtotal := amounts.FabricAmount + amounts.LiningAmount +
		amounts.LeadRopeAmount + amounts.TrackRodAmount +
		line.StitchingCharge + line.FittingCharge

	if line.Selection != "" {
		subtotal += selectionRate
	}

	amounts.Amount = subtotal
	return amounts
}

// CalcSheetTotal sums all line amounts plus the visiting charge. A sheet with
// no lines totals to the visiting charge alone.
func CalcSheetTotal(lines []MeasurementLine, visitingCharge float64) float64 {
	total := visitingCharge
	for i := range lines {
		total += lines[i].Amount
	}
	return total
}
