package services

// serviceChargeQty is the quantity used for flat service charge items
// (stitching on non-curtain types, fitting) on a sales order.
const serviceChargeQty = 1

// OrderItem is one consolidated sales order line derived from a sheet's
// measurement details.
type OrderItem struct {
	ItemCode string  `json:"item_code"`
	Qty      float64 `json:"qty"`
	Rate     float64 `json:"rate"`
}

// ExtractOrderItems flattens measurement lines into sales order items.
// Material items (fabric, lining, lead rope, track/rod) carry their derived
// quantity and stored rate. Selection items use square feet as quantity for
// Blinds and 1 otherwise, priced from selectionRates. Stitching charges are
// back-derived to a per-panel or per-sqft rate so qty x rate reproduces the
// stored charge; fitting is a flat service charge. Items are consolidated by
// item code with quantities summed, preserving first-seen order.
func ExtractOrderItems(lines []MeasurementLine, selectionRates map[string]float64) []OrderItem {
	var items []OrderItem

	for i := range lines {
		line := &lines[i]

		items = appendMaterial(items, line.FabricSelected, line.FabricQty, line.FabricRate)
		items = appendMaterial(items, line.Lining, line.LiningQty, line.LiningRate)
		items = appendMaterial(items, line.LeadRope, line.LeadRopeQty, line.LeadRopeRate)
		items = appendMaterial(items, line.TrackRod, line.TrackRodQty, line.TrackRodRate)

		if line.Selection != "" {
			qty := float64(serviceChargeQty)
			if line.ProductType == ProductBlinds && line.SquareFeet > 0 {
				qty = line.SquareFeet
			}
			items = append(items, OrderItem{
				ItemCode: line.Selection,
				Qty:      qty,
				Rate:     selectionRates[line.Selection],
			})
		}

		if line.StitchingPattern != "" && line.StitchingCharge > 0 {
			items = append(items, stitchingItem(line))
		}

		if line.FittingType != "" && line.FittingCharge > 0 {
			items = append(items, OrderItem{
				ItemCode: line.FittingType,
				Qty:      serviceChargeQty,
				Rate:     line.FittingCharge,
			})
		}
	}

	return consolidate(items)
}

func appendMaterial(items []OrderItem, itemCode string, qty, rate float64) []OrderItem {
	if itemCode == "" || qty <= 0 {
		return items
	}
	return append(items, OrderItem{ItemCode: itemCode, Qty: qty, Rate: rate})
}

// stitchingItem converts a stored stitching charge back into a unit-priced
// order line. The charge already contains panels x rate (Window Curtains) or
// sqft x rate (Roman Blinds), so dividing restores the unit rate.
func stitchingItem(line *MeasurementLine) OrderItem {
	switch {
	case line.ProductType == ProductWindowCurtains && line.Panels > 0:
		return OrderItem{
			ItemCode: line.StitchingPattern,
			Qty:      line.Panels,
			Rate:     line.StitchingCharge / line.Panels,
		}
	case line.ProductType == ProductRomanBlinds && line.SquareFeet > 0:
		return OrderItem{
			ItemCode: line.StitchingPattern,
			Qty:      line.SquareFeet,
			Rate:     line.StitchingCharge / line.SquareFeet,
		}
	default:
		return OrderItem{
			ItemCode: line.StitchingPattern,
			Qty:      serviceChargeQty,
			Rate:     line.StitchingCharge,
		}
	}
}

// consolidate merges duplicate item codes, summing quantities. The rate of
// the first occurrence wins.
func consolidate(items []OrderItem) []OrderItem {
	if len(items) == 0 {
		return nil
	}
	index := make(map[string]int, len(items))
	var out []OrderItem
	for _, item := range items {
		if at, ok := index[item.ItemCode]; ok {
			out[at].Qty += item.Qty
			continue
		}
		index[item.ItemCode] = len(out)
		out = append(out, item)
	}
	return out
}
