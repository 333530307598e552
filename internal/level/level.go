// Package level maps the backend's string-valued High/Medium/Low ratings
// onto a closed set of levels with fixed display attributes.
package level

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/optilearn/schedulease/internal/ui/theme"
)

// Level is a workload, demand or stress rating reported by the backend.
type Level string

const (
	High   Level = "High"
	Medium Level = "Medium"
	Low    Level = "Low"
)

// All returns every level, highest first.
func All() []Level {
	return []Level{High, Medium, Low}
}

// Parse converts a backend value into a Level. Matching is case-insensitive
// and "Moderate" (used for course difficulty) is read as Medium.
func Parse(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high":
		return High, nil
	case "medium", "moderate":
		return Medium, nil
	case "low":
		return Low, nil
	}
	return "", fmt.Errorf("unknown level %q", s)
}

// Display holds everything a view needs to render a level.
type Display struct {
	Label string
	Bar   int // fill value (0-100) of the stress indicator bar
	Color color.Color
}

var displays = map[Level]Display{
	High:   {Label: "High", Bar: 80, Color: theme.Error},
	Medium: {Label: "Medium", Bar: 50, Color: theme.Warning},
	Low:    {Label: "Low", Bar: 20, Color: theme.Success},
}

// Display returns the display attributes for l. Every value returned by
// Parse has an entry.
func (l Level) Display() Display {
	return displays[l]
}

func (l Level) String() string {
	return string(l)
}

// RiskBand classifies a 0-1 burnout score.
func RiskBand(score float64) Level {
	switch {
	case score > 0.7:
		return High
	case score > 0.4:
		return Medium
	default:
		return Low
	}
}

// Percent renders a 0-1 score as a rounded whole percentage.
func Percent(score float64) int {
	return int(score*100 + 0.5)
}

// Trend is the direction reported for weekly study hours.
type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendStable     Trend = "stable"
)

// Symbol returns the glyph shown next to a metric.
func (t Trend) Symbol() string {
	switch t {
	case TrendIncreasing:
		return "↑"
	case TrendDecreasing:
		return "↓"
	default:
		return "●"
	}
}
