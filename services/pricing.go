// Package services implements the measurement-to-price calculation engine:
// quantity derivation per product type, rate resolution with caching, stock
// availability checks, totals aggregation and pre-save validation.
package services

import (
	"log"
	"sync"
)

// PriceSource is the narrow lookup surface the rate resolver needs from the
// backing store. Implementations live in pbstore.
type PriceSource interface {
	// ItemRate returns the most recent selling rate for the item on the
	// given price list. found is false when the list has no record for it.
	ItemRate(itemCode, priceList string) (rate float64, found bool, err error)

	// CustomerPriceList resolves the customer -> customer group ->
	// default price list chain. Empty when any hop is missing.
	CustomerPriceList(customer string) (string, error)

	// DefaultPriceList returns the system-wide default selling price list.
	DefaultPriceList() (string, error)
}

// RateResolver resolves effective unit rates for items, memoizing positive
// results per (item, price list) key. Zero or unknown rates are never cached
// so a missing price is retried on the next lookup instead of sticking.
type RateResolver struct {
	src PriceSource

	mu    sync.Mutex
	cache map[string]float64
}

func NewRateResolver(src PriceSource) *RateResolver {
	return &RateResolver{
		src:   src,
		cache: make(map[string]float64),
	}
}

// Clear drops every cached rate. Invoked when the customer or document
// context changes.
func (r *RateResolver) Clear() {
	r.mu.Lock()
	r.cache = make(map[string]float64)
	r.mu.Unlock()
}

func rateCacheKey(itemCode, priceList string) string {
	if priceList == "" {
		return itemCode + "::default"
	}
	return itemCode + "::" + priceList
}

// Resolve returns the effective unit rate for an item. When priceList is
// empty and a customer is given, the customer's group price list is derived
// first. The requested list is queried before falling back to the system
// default selling list. A missing price resolves to 0 rather than an error:
// data entry must never block on pricing.
func (r *RateResolver) Resolve(itemCode, priceList, customer string) float64 {
	if itemCode == "" {
		return 0
	}

	if priceList == "" && customer != "" {
		derived, err := r.src.CustomerPriceList(customer)
		if err != nil {
			log.Printf("pricing: customer price list lookup for %q: %v", customer, err)
		} else {
			priceList = derived
		}
	}

	key := rateCacheKey(itemCode, priceList)

	r.mu.Lock()
	cached, ok := r.cache[key]
	r.mu.Unlock()
	if ok && cached > 0 {
		return cached
	}

	if priceList != "" {
		rate, found, err := r.src.ItemRate(itemCode, priceList)
		if err != nil {
			log.Printf("pricing: rate lookup for %q on %q: %v", itemCode, priceList, err)
			return 0
		}
		if found {
			r.store(key, rate)
			return rate
		}
	}

	defaultList, err := r.src.DefaultPriceList()
	if err != nil {
		log.Printf("pricing: default price list lookup: %v", err)
		return 0
	}
	if defaultList != "" && defaultList != priceList {
		rate, found, err := r.src.ItemRate(itemCode, defaultList)
		if err != nil {
			log.Printf("pricing: rate lookup for %q on default %q: %v", itemCode, defaultList, err)
			return 0
		}
		if found {
			r.store(key, rate)
			return rate
		}
	}

	return 0
}

// store caches positive rates only.
func (r *RateResolver) store(key string, rate float64) {
	if rate <= 0 {
		return
	}
	r.mu.Lock()
	r.cache[key] = rate
	r.mu.Unlock()
}
