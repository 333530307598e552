package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressCompletion(t *testing.T) {
	tests := []struct {
		credits   int
		percent   int
		remaining int
	}{
		{0, 0, 32},
		{8, 25, 24},
		{12, 38, 20},
		{32, 100, 0},
		{36, 113, 0},
	}
	for _, tt := range tests {
		p := Progress{TotalCredits: tt.credits}
		assert.Equal(t, tt.percent, p.PercentComplete(), "credits %d", tt.credits)
		assert.Equal(t, tt.remaining, p.CreditsRemaining(), "credits %d", tt.credits)
	}
}

func TestCompletedList(t *testing.T) {
	p := Progress{CompletedCourses: map[string]string{
		"CS5800": "Algorithms",
		"CS9999": "CS9999",
		"CS5010": "Programming Design Paradigm",
	}}
	assert.Equal(t, []CompletedEntry{
		{ID: "CS5010", Name: "Programming Design Paradigm"},
		{ID: "CS5800", Name: "Algorithms"},
		{ID: "CS9999", Name: "Course name not available"},
	}, p.CompletedList())
}
