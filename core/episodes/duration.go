// ABOUTME: ISO-8601 duration parsing and display formatting
// ABOUTME: Pure functions so they are independently unit-testable

package episodes

import (
	"fmt"
	"regexp"
	"strconv"
)

var isoDurationPattern = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// ParseDurationSeconds parses an ISO-8601 duration ("PT1H2M3S") into whole
// seconds. Unparseable or empty input yields 0.
func ParseDurationSeconds(duration string) int {
	match := isoDurationPattern.FindStringSubmatch(duration)
	if match == nil {
		return 0
	}

	hours, _ := strconv.Atoi(match[1])
	minutes, _ := strconv.Atoi(match[2])
	seconds, _ := strconv.Atoi(match[3])

	return hours*3600 + minutes*60 + seconds
}

// FormatSeconds renders whole seconds as "H:MM:SS" or "M:SS".
// Zero renders as "0:00".
func FormatSeconds(totalSeconds int) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}

	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

// FormatDuration renders an ISO-8601 duration for display.
func FormatDuration(duration string) string {
	return FormatSeconds(ParseDurationSeconds(duration))
}
