package progress

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

func TestProgressLoads(t *testing.T) {
	env := screentest.New(t)
	env.SignIn(t)
	s := New(env.Deps)
	sc, _ := screentest.Feed(t, s, s.Init())

	require.Empty(t, s.errMsg)
	require.NotNil(t, s.progress)

	out := screentest.Plain(sc, 120, 80)
	for _, want := range []string{
		"8 / 32 credits",
		"25% Complete",
		"24 credits remaining",
		"88.5",
		"Programming Design Paradigm",
		"Python",
		"4/5",
		"Linear Algebra",
		"Learning Outcomes Achieved",
	} {
		assert.Contains(t, out, want)
	}
}

func TestUnknownCourseName(t *testing.T) {
	s := New(nil)
	sc, _ := s.Update(progressLoadedMsg{Progress: &api.Progress{
		TotalCredits:     4,
		TotalCourses:     1,
		CurrentGrade:     "N/A",
		CompletedCourses: map[string]string{"CS9999": "CS9999"},
	}})

	out := screentest.Plain(sc, 120, 60)
	assert.Contains(t, out, "Course name not available")
	assert.Contains(t, out, "No programming experience recorded")
	assert.Contains(t, out, "No outcomes recorded yet")
}

func TestScrollAndBack(t *testing.T) {
	env := screentest.New(t)
	env.SignIn(t)
	s := New(env.Deps)
	sc, _ := screentest.Feed(t, s, s.Init())

	full := screentest.Plain(sc, 120, 10)
	assert.Contains(t, full, "Credits")
	sc, _ = screentest.Press(sc, tea.KeyDown)
	sc, _ = screentest.Press(sc, tea.KeyDown)
	assert.Equal(t, 2, s.scroll)
	sc, _ = screentest.Press(sc, tea.KeyUp)
	assert.Equal(t, 1, s.scroll)

	_, cmd := screentest.Press(sc, tea.KeyEscape)
	assert.Equal(t, router.PopScreenMsg{}, screentest.Exec(t, cmd))
}

func TestLoadError(t *testing.T) {
	env := screentest.New(t)
	env.Deps.Session = &session.Session{NUID: "000000000"}
	s := New(env.Deps)
	sc, _ := screentest.Feed(t, s, s.Init())

	assert.Contains(t, screentest.Plain(sc, 100, 30), "User not found")
}
