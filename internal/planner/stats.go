package planner

import (
	"github.com/optilearn/schedulease/internal/api"
	"github.com/optilearn/schedulease/internal/level"
)

// CreditsPerCourse is the credit value of one course.
const CreditsPerCourse = 4

// Stats are the plan totals shown under the accepted courses.
type Stats struct {
	Credits   int
	Semesters int
	// Workload averages High=3, Medium=2, Low=1 over the courses.
	Workload float64
}

// PlanStats summarises recs. Unknown workload levels count as Low.
func PlanStats(recs []api.Recommendation) Stats {
	st := Stats{
		Credits:   len(recs) * CreditsPerCourse,
		Semesters: (len(recs) + CoursesPerSemester - 1) / CoursesPerSemester,
	}
	if len(recs) == 0 {
		return st
	}
	total := 0
	for _, r := range recs {
		l, _ := level.Parse(r.WorkloadLevel)
		switch l {
		case level.High:
			total += 3
		case level.Medium:
			total += 2
		default:
			total++
		}
	}
	st.Workload = float64(total) / float64(len(recs))
	return st
}
