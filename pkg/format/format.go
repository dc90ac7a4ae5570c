// Package format turns raw route quantities into the short strings shown in the UI.
package format

import (
	"fmt"
	"math"
)

// Distance formats meters as "500 m" or "1.5 km"
func Distance(meters float64) string {
	if meters < 0 || math.IsNaN(meters) {
		meters = 0
	}
	if meters >= 1000 {
		return fmt.Sprintf("%.1f km", meters/1000)
	}
	return fmt.Sprintf("%d m", int64(math.Round(meters)))
}

// Duration formats seconds as "1 min" or "1h 30m". Seconds below a minute are dropped.
func Duration(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	hours := int64(math.Floor(seconds / 3600))
	minutes := int64(math.Floor(math.Mod(seconds, 3600) / 60))

	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%d min", minutes)
}

// Percent formats a 0..1 fraction as a whole percentage
func Percent(fraction float64) string {
	return fmt.Sprintf("%d%%", int(math.Round(fraction*100)))
}
