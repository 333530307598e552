package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/optilearn/schedulease/internal/api"
)

func sample() []api.Course {
	return []api.Course{
		{SubjectID: "CS5010", SubjectName: "Programming Design Paradigm"},
		{SubjectID: "CS5800", SubjectName: "Algorithms"},
		{SubjectID: "CS6140", SubjectName: "Machine Learning"},
		{SubjectID: "DS5220", SubjectName: "Supervised Machine Learning"},
	}
}

func ids(cs []api.Course) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.SubjectID
	}
	return out
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name      string
		nameQuery string
		idQuery   string
		want      []string
	}{
		{"no queries", "", "", []string{"CS5010", "CS5800", "CS6140", "DS5220"}},
		{"name only", "machine", "", []string{"CS6140", "DS5220"}},
		{"name case-insensitive", "ALGO", "", []string{"CS5800"}},
		{"id only", "", "cs", []string{"CS5010", "CS5800", "CS6140"}},
		{"both", "learning", "ds", []string{"DS5220"}},
		{"both disjoint", "algorithms", "ds", []string{}},
		{"no match", "biology", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(sample(), tt.nameQuery, tt.idQuery)))
		})
	}
}

func TestRequirementPreview(t *testing.T) {
	shown, more := RequirementPreview([]string{"Python"})
	assert.Equal(t, []string{"Python"}, shown)
	assert.Empty(t, more)

	shown, more = RequirementPreview([]string{"Python", "Java"})
	assert.Len(t, shown, 2)
	assert.Empty(t, more)

	shown, more = RequirementPreview([]string{"Python", "Java", "C", "SQL"})
	assert.Equal(t, []string{"Python", "Java"}, shown)
	assert.Equal(t, "+2 more", more)
}

func TestFind(t *testing.T) {
	c, ok := Find(sample(), "CS5800")
	assert.True(t, ok)
	assert.Equal(t, "Algorithms", c.SubjectName)

	_, ok = Find(sample(), "XX0000")
	assert.False(t, ok)
}
