package engine

// Thresholds splits stock quantities into three tiers. Low is the
// boundary below which stock is low; Medium is the inclusive upper
// boundary of the medium tier. Expected invariant: Low <= Medium
// (enforced at config load, not here - Classify stays total).
type Thresholds struct {
	Low    int
	Medium int
}

// ColorScheme holds the opaque color tokens for the three tiers.
// The engine never interprets them beyond identity.
type ColorScheme struct {
	Low    string
	Medium string
	High   string
}

// DefaultThresholds are the shipped stock boundaries.
var DefaultThresholds = Thresholds{Low: 3, Medium: 7}

// DefaultColors are the shipped tier colors.
var DefaultColors = ColorScheme{
	Low:    "#f56565",
	Medium: "#ed8936",
	High:   "#48bb78",
}

// Classify maps a stock quantity to its tier color:
//
//	qty < t.Low            -> c.Low
//	t.Low <= qty <= t.Medium -> c.Medium
//	qty > t.Medium         -> c.High
//
// The medium boundary is inclusive everywhere. Classify is pure and
// total; callers translate an unknown (nil) quantity to 0 before
// calling.
func Classify(qty int, t Thresholds, c ColorScheme) string {
	switch {
	case qty < t.Low:
		return c.Low
	case qty <= t.Medium:
		return c.Medium
	default:
		return c.High
	}
}
