package api

import (
	"math"
	"sort"
)

// DegreeCredits is the number of credits the degree requires.
const DegreeCredits = 32

// PercentComplete is the share of DegreeCredits earned, rounded.
func (p Progress) PercentComplete() int {
	return int(math.Round(float64(p.TotalCredits) / DegreeCredits * 100))
}

// CreditsRemaining never goes below zero.
func (p Progress) CreditsRemaining() int {
	return max(DegreeCredits-p.TotalCredits, 0)
}

// CompletedEntry pairs a completed course id with its display name.
type CompletedEntry struct {
	ID   string
	Name string
}

// CompletedList returns the completed courses sorted by id. The backend
// echoes the id as the name when it has none.
func (p Progress) CompletedList() []CompletedEntry {
	out := make([]CompletedEntry, 0, len(p.CompletedCourses))
	for id, name := range p.CompletedCourses {
		if name == id || name == "" {
			name = "Course name not available"
		}
		out = append(out, CompletedEntry{ID: id, Name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
