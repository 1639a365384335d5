package services

// ProductType identifies which calculation branch applies to a measurement line.
type ProductType string

const (
	ProductWindowCurtains ProductType = "Window Curtains"
	ProductRomanBlinds    ProductType = "Roman Blinds"
	ProductBlinds         ProductType = "Blinds"
	ProductTracksRods     ProductType = "Tracks/Rods"
)

// UsesFabric reports whether the product type carries fabric/lining/stitching
// fields (Window Curtains and Roman Blinds).
func (p ProductType) UsesFabric() bool {
	return p == ProductWindowCurtains || p == ProductRomanBlinds
}

// TrackRodType is the glide type of a track/rod item. It scales the
// width-derived track quantity.
type TrackRodType string

const (
	SingleGlide TrackRodType = "Single Glide"
	DoubleGlide TrackRodType = "Double Glide"
	TripleGlide TrackRodType = "Triple Glide"
)

// Multiplier returns the glide factor. An unset type defaults to Double Glide
// for backward compatibility with rows saved before the field existed.
func (t TrackRodType) Multiplier() float64 {
	switch t {
	case SingleGlide:
		return 1
	case TripleGlide:
		return 3
	default:
		return 2
	}
}

// MeasurementLine is one row of a measurement sheet: a single window or
// opening's furnishing spec with its derived quantities and amounts.
type MeasurementLine struct {
	ID          string      `json:"id"`
	Area        string      `json:"area"`
	ProductType ProductType `json:"product_type"`

	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Panels float64 `json:"panels"`
	Adjust float64 `json:"adjust"`

	SquareFeet float64 `json:"square_feet"`

	FabricSelected string  `json:"fabric_selected"`
	FabricQty      float64 `json:"fabric_qty"`
	FabricRate     float64 `json:"fabric_rate"`
	FabricAmount   float64 `json:"fabric_amount"`

	Lining       string  `json:"lining"`
	LiningQty    float64 `json:"lining_qty"`
	LiningRate   float64 `json:"lining_rate"`
	LiningAmount float64 `json:"lining_amount"`

	LeadRope       string  `json:"lead_rope"`
	LeadRopeQty    float64 `json:"lead_rope_qty"`
	LeadRopeRate   float64 `json:"lead_rope_rate"`
	LeadRopeAmount float64 `json:"lead_rope_amount"`

	TrackRod       string       `json:"track_rod"`
	TrackRodType   TrackRodType `json:"track_rod_type"`
	TrackRodQty    float64      `json:"track_rod_qty"`
	TrackRodRate   float64      `json:"track_rod_rate"`
	TrackRodAmount float64      `json:"track_rod_amount"`

	Pattern          string  `json:"pattern"`
	StitchingPattern string  `json:"stitching_pattern"`
	StitchingCharge  float64 `json:"stitching_charge"`

	FittingType   string  `json:"fitting_type"`
	FittingCharge float64 `json:"fitting_charge"`

	Selection string `json:"selection"`

	Amount float64 `json:"amount"`

	// PendingAutoFill is armed when StitchingPattern was just auto-filled
	// from Pattern. The next stitching recalculation for this line is
	// skipped once and the flag cleared, so the auto-fill cannot feed back
	// into itself.
	PendingAutoFill bool `json:"pending_auto_fill"`
}
