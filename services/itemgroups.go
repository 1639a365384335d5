package services

// Catalog item groups. Line item fields only accept items from their
// matching groups.
var (
	FabricGroups    = []string{"Main Fabric", "Sheer Fabric"}
	LiningGroups    = []string{"Basic Linings", "Heavy Linings"}
	LeadRopeGroups  = []string{"Lead Rope Items"}
	TrackRodGroups  = []string{"Tracks", "Rods"}
	BlindsGroups    = []string{"Blinds"}
	StitchingGroups = []string{"Stitching"}
	FittingGroups   = []string{"Fitting", "Labour"}
)

// ItemGroupsForField returns the allowed item groups for a line item field,
// or nil when the field is unconstrained.
func ItemGroupsForField(field string) []string {
	switch field {
	case "fabric_selected":
		return FabricGroups
	case "lining":
		return LiningGroups
	case "lead_rope":
		return LeadRopeGroups
	case "track_rod":
		return TrackRodGroups
	case "selection":
		return BlindsGroups
	case "stitching_pattern":
		return StitchingGroups
	case "fitting_type":
		return FittingGroups
	default:
		return nil
	}
}

// IsServiceGroup reports whether an item group holds service items
// (stitching or fitting labour) that are excluded from material pricing
// rules.
func IsServiceGroup(group string) bool {
	for _, g := range append(StitchingGroups, FittingGroups...) {
		if group == g {
			return true
		}
	}
	return false
}
