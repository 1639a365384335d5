package services

import (
	"log"
	"sort"
	"sync"
)

// StockSource looks up aggregate on-hand stock. Implementations live in
// pbstore.
type StockSource interface {
	// OnHand returns the total on-hand quantity for the item summed across
	// all warehouse bins.
	OnHand(itemCode string) (float64, error)
}

// StockResult is the outcome of a single-item availability check.
type StockResult struct {
	ItemCode     string  `json:"item_code"`
	IsAvailable  bool    `json:"is_available"`
	AvailableQty float64 `json:"available_qty"`
	RequiredQty  float64 `json:"required_qty"`
}

// Shortage reports an item whose aggregate required quantity exceeds stock.
type Shortage struct {
	ItemCode     string  `json:"item_code"`
	RequiredQty  float64 `json:"required_qty"`
	AvailableQty float64 `json:"available_qty"`
	ShortageQty  float64 `json:"shortage_qty"`
}

// StockChecker compares required quantities against cached on-hand stock.
// Only the raw on-hand total is cached, never availability relative to a
// required quantity, since the requirement varies per call.
type StockChecker struct {
	src StockSource

	mu    sync.Mutex
	cache map[string]float64
}

func NewStockChecker(src StockSource) *StockChecker {
	return &StockChecker{
		src:   src,
		cache: make(map[string]float64),
	}
}

// Clear drops the cached on-hand totals. Invoked on customer change and
// document reload.
func (c *StockChecker) Clear() {
	c.mu.Lock()
	c.cache = make(map[string]float64)
	c.mu.Unlock()
}

// onHand returns the cached on-hand total for the item, querying and caching
// on miss. Lookup failures fail open: the item is reported available so a
// transient backend error never blocks data entry.
func (c *StockChecker) onHand(itemCode string) (qty float64, failOpen bool) {
	c.mu.Lock()
	cached, ok := c.cache[itemCode]
	c.mu.Unlock()
	if ok {
		return cached, false
	}

	total, err := c.src.OnHand(itemCode)
	if err != nil {
		log.Printf("stock: on-hand lookup for %q: %v", itemCode, err)
		return 0, true
	}

	c.mu.Lock()
	c.cache[itemCode] = total
	c.mu.Unlock()
	return total, false
}

// Check reports whether requiredQty of the item is on hand. When requiredQty
// is zero (not yet derived) the check degrades to "is there any stock at
// all".
func (c *StockChecker) Check(itemCode string, requiredQty float64) StockResult {
	result := StockResult{ItemCode: itemCode, RequiredQty: requiredQty}
	if itemCode == "" {
		result.IsAvailable = true
		return result
	}

	total, failOpen := c.onHand(itemCode)
	if failOpen {
		result.IsAvailable = true
		return result
	}

	result.AvailableQty = total
	if requiredQty > 0 {
		result.IsAvailable = total >= requiredQty
	} else {
		result.IsAvailable = total > 0
	}
	return result
}

// CheckAll aggregates the required quantity per item code across every line
// (fabric, lining, lead rope, track/rod; a selection item counts as one) and
// reports the items that fall short, ordered by item code.
func (c *StockChecker) CheckAll(lines []MeasurementLine) []Shortage {
	required := make(map[string]float64)
	add := func(itemCode string, qty float64) {
		if itemCode != "" && qty > 0 {
			required[itemCode] += qty
		}
	}

	for i := range lines {
		line := &lines[i]
		add(line.FabricSelected, line.FabricQty)
		add(line.Lining, line.LiningQty)
		add(line.LeadRope, line.LeadRopeQty)
		add(line.TrackRod, line.TrackRodQty)
		if line.Selection != "" {
			add(line.Selection, 1)
		}
	}

	var shortages []Shortage
	for itemCode, requiredQty := range required {
		total, failOpen := c.onHand(itemCode)
		if failOpen {
			continue
		}
		if total < requiredQty {
			shortages = append(shortages, Shortage{
				ItemCode:     itemCode,
				RequiredQty:  requiredQty,
				AvailableQty: total,
				ShortageQty:  requiredQty - total,
			})
		}
	}

	sort.Slice(shortages, func(i, j int) bool {
		return shortages[i].ItemCode < shortages[j].ItemCode
	})
	return shortages
}
