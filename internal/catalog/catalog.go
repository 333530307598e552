// Package catalog filters and summarises the course catalog.
package catalog

import (
	"fmt"
	"strings"

	"github.com/optilearn/schedulease/internal/api"
)

// Filter keeps the courses whose name contains nameQuery and whose id
// contains idQuery, case-insensitively. An empty query matches everything.
// Order is preserved.
func Filter(courses []api.Course, nameQuery, idQuery string) []api.Course {
	name := strings.ToLower(nameQuery)
	id := strings.ToLower(idQuery)

	out := make([]api.Course, 0, len(courses))
	for _, c := range courses {
		if name != "" && !strings.Contains(strings.ToLower(c.SubjectName), name) {
			continue
		}
		if id != "" && !strings.Contains(strings.ToLower(c.SubjectID), id) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// previewLimit is how many programming requirements a card shows.
const previewLimit = 2

// RequirementPreview returns the first requirements shown on a course
// card and a "+N more" suffix when some are hidden.
func RequirementPreview(reqs []string) (shown []string, more string) {
	if len(reqs) <= previewLimit {
		return reqs, ""
	}
	return reqs[:previewLimit], fmt.Sprintf("+%d more", len(reqs)-previewLimit)
}

// Find returns the course with the given id.
func Find(courses []api.Course, id string) (api.Course, bool) {
	for _, c := range courses {
		if c.SubjectID == id {
			return c, true
		}
	}
	return api.Course{}, false
}
