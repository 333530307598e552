package burnout

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optilearn/schedulease/internal/api"
	"github.com/optilearn/schedulease/internal/router"
	"github.com/optilearn/schedulease/internal/screen/screentest"
	"github.com/optilearn/schedulease/internal/session"
)

func TestAnalysisLoads(t *testing.T) {
	env := screentest.New(t)
	env.SignIn(t)
	s := New(env.Deps)
	sc, _ := screentest.Feed(t, s, s.Init())

	require.Empty(t, s.errMsg)
	require.NotNil(t, s.analysis)
	assert.Len(t, s.analysis.WorkloadDistribution, 2)

	out := screentest.Plain(sc, 120, 60)
	for _, want := range []string{
		"Overall Burnout Risk", "Weekly Study Hours", "Course Difficulty", "Assignment Load",
		"Stress Factors", "Prerequisite Match", "Workload Distribution", "h/week",
	} {
		assert.Contains(t, out, want)
	}
}

func TestRendersFixedAnalysis(t *testing.T) {
	s := New(nil)
	sc, _ := s.Update(analysisLoadedMsg{Analysis: &api.BurnoutAnalysis{
		OverallBurnoutRisk: api.LevelDescription{Level: "High", Description: "Too much at once"},
		WeeklyStudyHours:   api.StudyHours{Total: 34, Trend: "increasing"},
		CourseDifficulty:   api.LevelDescription{Level: "Moderate", Description: "Manageable"},
		StressFactors: api.StressFactors{
			AssignmentDeadlines: "Medium",
			CourseComplexity:    "Moderate",
			WeeklyWorkload:      "High",
			PrerequisiteMatch:   "Unknown",
		},
	}})

	out := screentest.Plain(sc, 120, 60)
	assert.Contains(t, out, "Too much at once")
	assert.Contains(t, out, "34  ↑")
	assert.Contains(t, out, "High  ●")
	assert.Contains(t, out, "Unknown")
	assert.NotContains(t, out, "Workload Distribution")
}

func TestLoadError(t *testing.T) {
	env := screentest.New(t)
	env.Deps.Session = &session.Session{NUID: "000000000"}
	s := New(env.Deps)
	sc, _ := screentest.Feed(t, s, s.Init())

	assert.Equal(t, "User not found", s.errMsg)
	assert.Contains(t, screentest.Plain(sc, 100, 30), "User not found")
}

func TestRefreshAndBack(t *testing.T) {
	env := screentest.New(t)
	env.SignIn(t)
	s := New(env.Deps)
	sc, _ := screentest.Feed(t, s, s.Init())

	sc, cmd := screentest.Key(sc, 'r')
	assert.False(t, s.loaded)
	sc, _ = screentest.Feed(t, sc, cmd)
	assert.True(t, s.loaded)
	assert.EqualValues(t, 2, env.Hits())

	_, cmd = screentest.Press(sc, tea.KeyEscape)
	assert.Equal(t, router.PopScreenMsg{}, screentest.Exec(t, cmd))
}

func TestEmpty(t *testing.T) {
	s := New(nil)
	sc, _ := s.Update(analysisLoadedMsg{})
	assert.Contains(t, screentest.Plain(sc, 100, 30), "No burnout analysis data available")
}
