package services

import "log"

// PatternSource resolves a pattern record to its catalog item, when the
// pattern carries one.
type PatternSource interface {
	PatternItem(pattern string) (item string, ok bool, err error)
}

// Calculator owns the session-scoped state of the engine: the rate and stock
// caches plus the lookup sources. One calculator serves an editing session;
// ClearCaches is invoked whenever the customer or document context changes.
type Calculator struct {
	Rates *RateResolver
	Stock *StockChecker

	patterns PatternSource
}

func NewCalculator(prices PriceSource, stock StockSource, patterns PatternSource) *Calculator {
	return &Calculator{
		Rates:    NewRateResolver(prices),
		Stock:    NewStockChecker(stock),
		patterns: patterns,
	}
}

// ClearCaches drops both caches wholesale.
func (c *Calculator) ClearCaches() {
	c.Rates.Clear()
	c.Stock.Clear()
}

// RecalculateLine rederives every computed field of a line from scratch:
// quantities from geometry, rates for each selected item, charges and
// amounts. Used on document reload and after bulk edits.
func (c *Calculator) RecalculateLine(line *MeasurementLine, customer string) {
	line.SquareFeet = CalcSquareFeet(line.ProductType, line.Width, line.Height)

	qty := CalcFabricQty(line.ProductType, line.Height, line.Panels, line.Adjust, line.SquareFeet)
	line.FabricQty = qty
	line.LiningQty = qty
	line.LeadRopeQty = CalcLeadRopeQty(line.ProductType, line.Panels)
	line.TrackRodQty = CalcTrackRodQty(line.ProductType, line.Width, line.TrackRodType)

	line.FabricRate = c.rateFor(line.FabricSelected, customer)
	line.LiningRate = c.rateFor(line.Lining, customer)
	line.LeadRopeRate = c.rateFor(line.LeadRope, customer)
	line.TrackRodRate = c.rateFor(line.TrackRod, customer)

	if line.StitchingPattern != "" {
		rate := c.Rates.Resolve(line.StitchingPattern, "", customer)
		line.StitchingCharge = CalcStitchingCharge(line.ProductType, rate, line.Panels, line.SquareFeet)
	} else {
		line.StitchingCharge = 0
	}
	if line.FittingType != "" {
		line.FittingCharge = c.Rates.Resolve(line.FittingType, "", customer)
	} else {
		line.FittingCharge = 0
	}

	c.applyAmounts(line, customer)
}

// ApplyFieldChange runs the recalculation that a single field edit triggers,
// mirroring the form's per-field event handlers. Fields without dependents
// are left untouched. Returns ErrInvalidPanels (with the value cleared) when
// a panels edit violates the domain constraint; no dependent recalculation
// runs in that case.
func (c *Calculator) ApplyFieldChange(line *MeasurementLine, field, customer string) error {
	switch field {
	case "product_type":
		ResetForProductType(line)
		line.SquareFeet = CalcSquareFeet(line.ProductType, line.Width, line.Height)
		if line.StitchingPattern != "" {
			rate := c.Rates.Resolve(line.StitchingPattern, "", customer)
			line.StitchingCharge = CalcStitchingCharge(line.ProductType, rate, line.Panels, line.SquareFeet)
		}
		c.recalcQuantities(line)
		c.applyAmounts(line, customer)

	case "width":
		if line.ProductType == ProductWindowCurtains || line.ProductType == ProductTracksRods {
			line.TrackRodQty = CalcTrackRodQty(line.ProductType, line.Width, line.TrackRodType)
		} else {
			line.SquareFeet = CalcSquareFeet(line.ProductType, line.Width, line.Height)
			c.recalcQuantities(line)
			c.refreshAreaStitching(line, customer)
		}
		c.applyAmounts(line, customer)

	case "height":
		if line.ProductType == ProductWindowCurtains {
			c.recalcFabricQty(line)
		} else {
			line.SquareFeet = CalcSquareFeet(line.ProductType, line.Width, line.Height)
			c.recalcQuantities(line)
			c.refreshAreaStitching(line, customer)
		}
		c.applyAmounts(line, customer)

	case "panels":
		if err := CheckPanels(line.ProductType, line.Panels); err != nil {
			line.Panels = 0
			return err
		}
		if line.ProductType == ProductWindowCurtains && line.StitchingPattern != "" {
			rate := c.Rates.Resolve(line.StitchingPattern, "", customer)
			line.StitchingCharge = CalcStitchingCharge(line.ProductType, rate, line.Panels, line.SquareFeet)
		}
		c.recalcFabricQty(line)
		line.LeadRopeQty = CalcLeadRopeQty(line.ProductType, line.Panels)
		line.TrackRodQty = CalcTrackRodQty(line.ProductType, line.Width, line.TrackRodType)
		c.applyAmounts(line, customer)

	case "adjust":
		c.recalcFabricQty(line)
		c.applyAmounts(line, customer)

	case "fabric_selected":
		line.FabricRate = c.rateFor(line.FabricSelected, customer)
		c.applyAmounts(line, customer)

	case "lining":
		line.LiningRate = c.rateFor(line.Lining, customer)
		c.applyAmounts(line, customer)

	case "lead_rope":
		if line.LeadRope != "" {
			line.LeadRopeRate = c.Rates.Resolve(line.LeadRope, "", customer)
		} else {
			line.LeadRopeRate = 0
			line.LeadRopeQty = 0
			line.LeadRopeAmount = 0
		}
		c.applyAmounts(line, customer)

	case "track_rod":
		if line.TrackRod != "" {
			line.TrackRodRate = c.Rates.Resolve(line.TrackRod, "", customer)
		} else {
			line.TrackRodRate = 0
			line.TrackRodQty = 0
			line.TrackRodAmount = 0
			line.TrackRodType = ""
		}
		c.applyAmounts(line, customer)

	case "track_rod_type":
		line.TrackRodQty = CalcTrackRodQty(line.ProductType, line.Width, line.TrackRodType)
		c.applyAmounts(line, customer)

	case "pattern":
		line.StitchingPattern = ""
		line.PendingAutoFill = false
		if line.Pattern == "" {
			return nil
		}
		item, ok, err := c.patterns.PatternItem(line.Pattern)
		if err != nil {
			log.Printf("rowcalc: pattern lookup for %q: %v", line.Pattern, err)
			return nil
		}
		if ok {
			line.StitchingPattern = item
			line.PendingAutoFill = true
		}

	case "stitching_pattern":
		// One-shot suppression: the auto-fill already carries the charge it
		// wants, so the triggered recalculation is skipped exactly once.
		if line.PendingAutoFill {
			line.PendingAutoFill = false
			return nil
		}
		var rate float64
		if line.StitchingPattern != "" {
			rate = c.Rates.Resolve(line.StitchingPattern, "", customer)
		}
		line.StitchingCharge = CalcStitchingCharge(line.ProductType, rate, line.Panels, line.SquareFeet)
		c.applyAmounts(line, customer)

	case "fitting_type":
		if line.FittingType != "" {
			line.FittingCharge = c.Rates.Resolve(line.FittingType, "", customer)
		} else {
			line.FittingCharge = 0
		}
		c.applyAmounts(line, customer)

	case "fabric_qty", "fabric_rate", "lining_qty", "lining_rate",
		"lead_rope_qty", "lead_rope_rate", "track_rod_qty", "track_rod_rate",
		"stitching_charge", "fitting_charge", "selection":
		c.applyAmounts(line, customer)
	}

	return nil
}

func (c *Calculator) rateFor(itemCode, customer string) float64 {
	if itemCode == "" {
		return 0
	}
	return c.Rates.Resolve(itemCode, "", customer)
}

func (c *Calculator) recalcFabricQty(line *MeasurementLine) {
	qty := CalcFabricQty(line.ProductType, line.Height, line.Panels, line.Adjust, line.SquareFeet)
	line.FabricQty = qty
	line.LiningQty = qty
}

// recalcQuantities rederives all quantity fields that follow from the
// current geometry, in dependency order.
func (c *Calculator) recalcQuantities(line *MeasurementLine) {
	c.recalcFabricQty(line)
	switch line.ProductType {
	case ProductWindowCurtains:
		if line.Panels > 0 {
			line.LeadRopeQty = CalcLeadRopeQty(line.ProductType, line.Panels)
		}
		line.TrackRodQty = CalcTrackRodQty(line.ProductType, line.Width, line.TrackRodType)
	case ProductTracksRods:
		line.TrackRodQty = CalcTrackRodQty(line.ProductType, line.Width, line.TrackRodType)
	}
}

// refreshAreaStitching recomputes the stitching charge for Roman Blinds after
// an area change, since the charge scales with square feet.
func (c *Calculator) refreshAreaStitching(line *MeasurementLine, customer string) {
	if line.ProductType == ProductRomanBlinds && line.StitchingPattern != "" {
		rate := c.Rates.Resolve(line.StitchingPattern, "", customer)
		line.StitchingCharge = CalcStitchingCharge(line.ProductType, rate, line.Panels, line.SquareFeet)
	}
}

// applyAmounts resolves the selection surcharge rate and writes the monetary
// breakdown back to the line.
func (c *Calculator) applyAmounts(line *MeasurementLine, customer string) {
	var selectionRate float64
	if line.Selection != "" {
		selectionRate = c.Rates.Resolve(line.Selection, "", customer)
	}
	amounts := CalcRowAmounts(line, selectionRate)
	line.FabricAmount = amounts.FabricAmount
	line.LiningAmount = amounts.LiningAmount
	line.LeadRopeAmount = amounts.LeadRopeAmount
	line.TrackRodAmount = amounts.TrackRodAmount
	line.Amount = amounts.Amount
}
