package services

import (
	"errors"
	"math"
	"testing"
)

// fakePriceSource is an in-memory PriceSource that counts lookups so tests
// can assert on cache behavior.
type fakePriceSource struct {
	rates         map[string]float64 // keyed "item|list"
	customerLists map[string]string
	defaultList   string

	itemRateCalls int
	failItemRate  bool
}

func (f *fakePriceSource) ItemRate(itemCode, priceList string) (float64, bool, error) {
	f.itemRateCalls++
	if f.failItemRate {
		return 0, false, errors.New("backend unavailable")
	}
	rate, ok := f.rates[itemCode+"|"+priceList]
	return rate, ok, nil
}

func (f *fakePriceSource) CustomerPriceList(customer string) (string, error) {
	return f.customerLists[customer], nil
}

func (f *fakePriceSource) DefaultPriceList() (string, error) {
	return f.defaultList, nil
}

func TestRateResolver_Resolve(t *testing.T) {
	t.Run("direct hit on requested list", func(t *testing.T) {
		src := &fakePriceSource{
			rates:       map[string]float64{"FAB-001|Retail": 500},
			defaultList: "Standard Selling",
		}
		r := NewRateResolver(src)

		got := r.Resolve("FAB-001", "Retail", "")
		if math.Abs(got-500) > 0.001 {
			t.Errorf("Resolve = %v, want 500", got)
		}
	})

	t.Run("customer group list derived when list empty", func(t *testing.T) {
		src := &fakePriceSource{
			rates:         map[string]float64{"FAB-001|Wholesale": 400},
			customerLists: map[string]string{"CUST-001": "Wholesale"},
			defaultList:   "Standard Selling",
		}
		r := NewRateResolver(src)

		got := r.Resolve("FAB-001", "", "CUST-001")
		if math.Abs(got-400) > 0.001 {
			t.Errorf("Resolve = %v, want 400", got)
		}
	})

	t.Run("falls back to default list", func(t *testing.T) {
		src := &fakePriceSource{
			rates:       map[string]float64{"FAB-001|Standard Selling": 550},
			defaultList: "Standard Selling",
		}
		r := NewRateResolver(src)

		got := r.Resolve("FAB-001", "Retail", "")
		if math.Abs(got-550) > 0.001 {
			t.Errorf("Resolve = %v, want 550", got)
		}
	})

	t.Run("missing price resolves to zero", func(t *testing.T) {
		src := &fakePriceSource{defaultList: "Standard Selling"}
		r := NewRateResolver(src)

		if got := r.Resolve("UNKNOWN", "Retail", ""); got != 0 {
			t.Errorf("Resolve = %v, want 0", got)
		}
	})

	t.Run("empty item code short-circuits", func(t *testing.T) {
		src := &fakePriceSource{defaultList: "Standard Selling"}
		r := NewRateResolver(src)

		if got := r.Resolve("", "Retail", ""); got != 0 {
			t.Errorf("Resolve = %v, want 0", got)
		}
		if src.itemRateCalls != 0 {
			t.Errorf("expected no backend calls, got %d", src.itemRateCalls)
		}
	})

	t.Run("lookup errors resolve to zero", func(t *testing.T) {
		src := &fakePriceSource{failItemRate: true, defaultList: "Standard Selling"}
		r := NewRateResolver(src)

		if got := r.Resolve("FAB-001", "Retail", ""); got != 0 {
			t.Errorf("Resolve = %v, want 0", got)
		}
	})
}

func TestRateResolver_Caching(t *testing.T) {
	t.Run("positive rates cached per item and list", func(t *testing.T) {
		src := &fakePriceSource{
			rates:       map[string]float64{"FAB-001|Retail": 500},
			defaultList: "Standard Selling",
		}
		r := NewRateResolver(src)

		r.Resolve("FAB-001", "Retail", "")
		r.Resolve("FAB-001", "Retail", "")
		r.Resolve("FAB-001", "Retail", "")

		if src.itemRateCalls != 1 {
			t.Errorf("backend calls = %d, want 1 (cache hit expected)", src.itemRateCalls)
		}
	})

	t.Run("zero rates never cached", func(t *testing.T) {
		src := &fakePriceSource{
			rates:       map[string]float64{"FAB-001|Retail": 0},
			defaultList: "Standard Selling",
		}
		r := NewRateResolver(src)

		r.Resolve("FAB-001", "Retail", "")
		callsAfterFirst := src.itemRateCalls
		r.Resolve("FAB-001", "Retail", "")

		if src.itemRateCalls == callsAfterFirst {
			t.Error("zero rate was cached; expected a retry on the next lookup")
		}
	})

	t.Run("different lists cached separately", func(t *testing.T) {
		src := &fakePriceSource{
			rates: map[string]float64{
				"FAB-001|Retail":    500,
				"FAB-001|Wholesale": 400,
			},
			defaultList: "Standard Selling",
		}
		r := NewRateResolver(src)

		retail := r.Resolve("FAB-001", "Retail", "")
		wholesale := r.Resolve("FAB-001", "Wholesale", "")

		if retail == wholesale {
			t.Errorf("retail %v and wholesale %v should differ", retail, wholesale)
		}
	})

	t.Run("clear forces a fresh lookup", func(t *testing.T) {
		src := &fakePriceSource{
			rates:       map[string]float64{"FAB-001|Retail": 500},
			defaultList: "Standard Selling",
		}
		r := NewRateResolver(src)

		r.Resolve("FAB-001", "Retail", "")
		r.Clear()
		r.Resolve("FAB-001", "Retail", "")

		if src.itemRateCalls != 2 {
			t.Errorf("backend calls = %d, want 2 after Clear", src.itemRateCalls)
		}
	})
}

func TestRateCacheKey(t *testing.T) {
	if got := rateCacheKey("FAB-001", "Retail"); got != "FAB-001::Retail" {
		t.Errorf("rateCacheKey = %q", got)
	}
	if got := rateCacheKey("FAB-001", ""); got != "FAB-001::default" {
		t.Errorf("rateCacheKey with empty list = %q", got)
	}
}
