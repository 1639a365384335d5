package services

import (
	"errors"
	"math"
	"testing"
)

// fakePatternSource maps pattern names to their auto-fill stitching items.
type fakePatternSource struct {
	items map[string]string
	fail  bool
}

func (f *fakePatternSource) PatternItem(pattern string) (string, bool, error) {
	if f.fail {
		return "", false, errors.New("backend unavailable")
	}
	item, ok := f.items[pattern]
	return item, ok, nil
}

func newTestCalculator() (*Calculator, *fakePriceSource) {
	prices := &fakePriceSource{
		rates: map[string]float64{
			"FAB-001|Standard Selling":    500,
			"LIN-001|Standard Selling":    200,
			"ROPE-001|Standard Selling":   50,
			"TRK-001|Standard Selling":    120,
			"STITCH-001|Standard Selling": 150,
			"FIT-001|Standard Selling":    250,
			"BLD-001|Standard Selling":    55,
		},
		defaultList: "Standard Selling",
	}
	stock := &fakeStockSource{onHand: map[string]float64{}}
	patterns := &fakePatternSource{items: map[string]string{"Pleated": "STITCH-001"}}
	return NewCalculator(prices, stock, patterns), prices
}

func TestCalculator_RecalculateLine(t *testing.T) {
	c, _ := newTestCalculator()

	line := &MeasurementLine{
		ProductType:      ProductWindowCurtains,
		Width:            48,
		Height:           100,
		Panels:           2,
		FabricSelected:   "FAB-001",
		Lining:           "LIN-001",
		LeadRope:         "ROPE-001",
		TrackRod:         "TRK-001",
		TrackRodType:     DoubleGlide,
		StitchingPattern: "STITCH-001",
		FittingType:      "FIT-001",
	}
	c.RecalculateLine(line, "")

	if math.Abs(line.FabricQty-6.5) > 0.001 {
		t.Errorf("FabricQty = %v, want 6.5", line.FabricQty)
	}
	if math.Abs(line.LiningQty-6.5) > 0.001 {
		t.Errorf("LiningQty = %v, want 6.5", line.LiningQty)
	}
	if math.Abs(line.LeadRopeQty-3) > 0.001 {
		t.Errorf("LeadRopeQty = %v, want 3", line.LeadRopeQty)
	}
	if math.Abs(line.TrackRodQty-8) > 0.001 {
		t.Errorf("TrackRodQty = %v, want 8", line.TrackRodQty)
	}
	if math.Abs(line.FabricRate-500) > 0.001 {
		t.Errorf("FabricRate = %v, want 500", line.FabricRate)
	}
	if math.Abs(line.StitchingCharge-300) > 0.001 {
		t.Errorf("StitchingCharge = %v, want 300 (2 panels x 150)", line.StitchingCharge)
	}
	if math.Abs(line.FittingCharge-250) > 0.001 {
		t.Errorf("FittingCharge = %v, want 250", line.FittingCharge)
	}

	want := 6.5*500 + 6.5*200 + 3*50 + 8*120 + 300 + 250
	if math.Abs(line.Amount-want) > 0.001 {
		t.Errorf("Amount = %v, want %v", line.Amount, want)
	}
}

func TestCalculator_ApplyFieldChange(t *testing.T) {
	t.Run("width on roman blinds rederives area and fabric", func(t *testing.T) {
		c, _ := newTestCalculator()
		line := &MeasurementLine{
			ProductType:    ProductRomanBlinds,
			Width:          48,
			Height:         60,
			Panels:         2,
			FabricSelected: "FAB-001",
			FabricRate:     500,
		}
		if err := c.ApplyFieldChange(line, "width", ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if math.Abs(line.SquareFeet-20) > 0.001 {
			t.Errorf("SquareFeet = %v, want 20", line.SquareFeet)
		}
		if line.FabricQty == 0 {
			t.Error("fabric qty should follow a geometry change")
		}
	})

	t.Run("width on curtains touches track only", func(t *testing.T) {
		c, _ := newTestCalculator()
		line := &MeasurementLine{
			ProductType:  ProductWindowCurtains,
			Width:        48,
			Height:       100,
			Panels:       2,
			TrackRodType: SingleGlide,
		}
		if err := c.ApplyFieldChange(line, "width", ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if math.Abs(line.TrackRodQty-4) > 0.001 {
			t.Errorf("TrackRodQty = %v, want 4", line.TrackRodQty)
		}
		if line.SquareFeet != 0 {
			t.Errorf("SquareFeet = %v, curtains are not area priced", line.SquareFeet)
		}
	})

	t.Run("invalid panels clears field and reports error", func(t *testing.T) {
		c, _ := newTestCalculator()
		line := &MeasurementLine{
			ProductType: ProductWindowCurtains,
			Height:      100,
			Panels:      -2,
			FabricQty:   6.5,
		}
		err := c.ApplyFieldChange(line, "panels", "")

		var invalid ErrInvalidPanels
		if !errors.As(err, &invalid) {
			t.Fatalf("expected ErrInvalidPanels, got %v", err)
		}
		if line.Panels != 0 {
			t.Errorf("Panels = %v, want 0 after rejection", line.Panels)
		}
		if line.FabricQty != 6.5 {
			t.Error("dependent fields must not recalculate on a rejected edit")
		}
	})

	t.Run("panels drives fabric, rope, track and stitching", func(t *testing.T) {
		c, _ := newTestCalculator()
		line := &MeasurementLine{
			ProductType:      ProductWindowCurtains,
			Width:            48,
			Height:           100,
			Panels:           3,
			StitchingPattern: "STITCH-001",
			TrackRodType:     SingleGlide,
		}
		if err := c.ApplyFieldChange(line, "panels", ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if math.Abs(line.LeadRopeQty-4.5) > 0.001 {
			t.Errorf("LeadRopeQty = %v, want 4.5", line.LeadRopeQty)
		}
		if math.Abs(line.StitchingCharge-450) > 0.001 {
			t.Errorf("StitchingCharge = %v, want 450 (3 panels x 150)", line.StitchingCharge)
		}
	})

	t.Run("product type change resets foreign branches", func(t *testing.T) {
		c, _ := newTestCalculator()
		line := &MeasurementLine{
			ProductType:    ProductBlinds,
			Width:          48,
			Height:         60,
			FabricSelected: "FAB-001",
			LeadRope:       "ROPE-001",
			LeadRopeQty:    3,
			Selection:      "BLD-001",
			FittingCharge:  100,
		}
		if err := c.ApplyFieldChange(line, "product_type", ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if line.FabricSelected != "" || line.LeadRope != "" {
			t.Error("foreign branch fields should be cleared")
		}
		if math.Abs(line.SquareFeet-22) > 0.001 {
			t.Errorf("SquareFeet = %v, want 22", line.SquareFeet)
		}
		// 22 sqft x 55 selection rate + 100 fitting.
		if math.Abs(line.Amount-1310) > 0.001 {
			t.Errorf("Amount = %v, want 1310", line.Amount)
		}
	})

	t.Run("item selection resolves its rate", func(t *testing.T) {
		c, _ := newTestCalculator()
		line := &MeasurementLine{
			ProductType:    ProductWindowCurtains,
			FabricSelected: "FAB-001",
			FabricQty:      2,
		}
		if err := c.ApplyFieldChange(line, "fabric_selected", ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if math.Abs(line.FabricRate-500) > 0.001 {
			t.Errorf("FabricRate = %v, want 500", line.FabricRate)
		}
		if math.Abs(line.FabricAmount-1000) > 0.001 {
			t.Errorf("FabricAmount = %v, want 1000", line.FabricAmount)
		}
	})

	t.Run("clearing track rod clears the whole group", func(t *testing.T) {
		c, _ := newTestCalculator()
		line := &MeasurementLine{
			ProductType:  ProductWindowCurtains,
			TrackRod:     "",
			TrackRodType: DoubleGlide,
			TrackRodQty:  8,
			TrackRodRate: 120,
		}
		if err := c.ApplyFieldChange(line, "track_rod", ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if line.TrackRodQty != 0 || line.TrackRodRate != 0 || line.TrackRodType != "" {
			t.Errorf("track rod group not cleared: %+v", line)
		}
	})

	t.Run("unknown field is a no-op", func(t *testing.T) {
		c, _ := newTestCalculator()
		line := &MeasurementLine{ProductType: ProductWindowCurtains, Amount: 42}
		if err := c.ApplyFieldChange(line, "no_such_field", ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if line.Amount != 42 {
			t.Errorf("Amount = %v, want untouched 42", line.Amount)
		}
	})
}

func TestCalculator_PatternAutoFill(t *testing.T) {
	t.Run("pattern fills stitching pattern and arms suppression", func(t *testing.T) {
		c, _ := newTestCalculator()
		line := &MeasurementLine{
			ProductType: ProductWindowCurtains,
			Panels:      2,
			Pattern:     "Pleated",
		}
		if err := c.ApplyFieldChange(line, "pattern", ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if line.StitchingPattern != "STITCH-001" {
			t.Errorf("StitchingPattern = %q, want STITCH-001", line.StitchingPattern)
		}
		if !line.PendingAutoFill {
			t.Error("PendingAutoFill should be armed after auto-fill")
		}

		// The triggered stitching_pattern event is suppressed exactly once.
		line.StitchingCharge = 999
		if err := c.ApplyFieldChange(line, "stitching_pattern", ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if line.StitchingCharge != 999 {
			t.Error("first stitching_pattern event after auto-fill should be suppressed")
		}
		if line.PendingAutoFill {
			t.Error("PendingAutoFill should clear after one suppression")
		}

		// A direct edit afterwards recalculates normally.
		if err := c.ApplyFieldChange(line, "stitching_pattern", ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if math.Abs(line.StitchingCharge-300) > 0.001 {
			t.Errorf("StitchingCharge = %v, want 300 after direct edit", line.StitchingCharge)
		}
	})

	t.Run("unknown pattern clears stitching pattern", func(t *testing.T) {
		c, _ := newTestCalculator()
		line := &MeasurementLine{
			ProductType:      ProductWindowCurtains,
			Pattern:          "No Such Pattern",
			StitchingPattern: "STITCH-001",
			PendingAutoFill:  true,
		}
		if err := c.ApplyFieldChange(line, "pattern", ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if line.StitchingPattern != "" || line.PendingAutoFill {
			t.Errorf("stale auto-fill state not cleared: %+v", line)
		}
	})

	t.Run("pattern lookup failure leaves line editable", func(t *testing.T) {
		prices := &fakePriceSource{defaultList: "Standard Selling"}
		c := NewCalculator(prices, &fakeStockSource{}, &fakePatternSource{fail: true})
		line := &MeasurementLine{ProductType: ProductWindowCurtains, Pattern: "Pleated"}

		if err := c.ApplyFieldChange(line, "pattern", ""); err != nil {
			t.Fatalf("lookup failure must not surface as an error: %v", err)
		}
		if line.StitchingPattern != "" {
			t.Errorf("StitchingPattern = %q, want empty on failure", line.StitchingPattern)
		}
	})
}

func TestCalculator_ClearCaches(t *testing.T) {
	c, prices := newTestCalculator()
	line := &MeasurementLine{ProductType: ProductWindowCurtains, FabricSelected: "FAB-001"}

	c.ApplyFieldChange(line, "fabric_selected", "")
	callsAfterFirst := prices.itemRateCalls
	c.ApplyFieldChange(line, "fabric_selected", "")
	if prices.itemRateCalls != callsAfterFirst {
		t.Error("second lookup should hit the cache")
	}

	c.ClearCaches()
	c.ApplyFieldChange(line, "fabric_selected", "")
	if prices.itemRateCalls == callsAfterFirst {
		t.Error("ClearCaches should force a fresh lookup")
	}
}
