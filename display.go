package stride

import "fmt"

// ResetDisplay is the text shown for a fresh or reset session. It does not
// use the two-decimal format of FormatDistance.
const ResetDisplay = "0 meters"

// FormatDistance renders meters with exactly two decimals and a " meters" suffix.
func FormatDistance(meters float64) string {
	return fmt.Sprintf("%.2f meters", meters)
}
