package courses

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optilearn/schedulease/internal/router"
	"github.com/optilearn/schedulease/internal/screen"
	"github.com/optilearn/schedulease/internal/screen/screentest"
	"github.com/optilearn/schedulease/internal/session"
)

func loaded(t *testing.T) (*CoursesScreen, screen.Screen) {
	t.Helper()
	env := screentest.New(t)
	env.SignIn(t)
	s := New(env.Deps)
	sc, _ := screentest.Feed(t, s, s.Init())
	require.True(t, s.loaded)
	require.Empty(t, s.errMsg)
	return s, sc
}

func TestCatalogLoads(t *testing.T) {
	s, sc := loaded(t)

	assert.Len(t, s.Filtered(), 15)
	out := screentest.Plain(sc, 120, 40)
	assert.Contains(t, out, "CS5010")
	assert.Contains(t, out, "Programming Design Paradigm")
	assert.Contains(t, out, "Core")
	assert.Contains(t, out, "High Demand")
	assert.Contains(t, out, "15 of 15 courses")
}

func TestFilterByName(t *testing.T) {
	s, sc := loaded(t)

	screentest.Type(sc, "learning")
	require.Len(t, s.Filtered(), 1)
	assert.Equal(t, "CS6140", s.Filtered()[0].SubjectID)
}

func TestFilterByID(t *testing.T) {
	s, sc := loaded(t)

	sc, _ = screentest.Press(sc, tea.KeyTab)
	screentest.Type(sc, "cs58")
	require.Len(t, s.Filtered(), 1)
	assert.Equal(t, "Algorithms", s.Filtered()[0].SubjectName)
}

func TestFiltersCombine(t *testing.T) {
	s, sc := loaded(t)

	sc = screentest.Type(sc, "data")
	assert.Len(t, s.Filtered(), 2)

	sc, _ = screentest.Press(sc, tea.KeyTab)
	screentest.Type(sc, "62")
	require.Len(t, s.Filtered(), 1)
	assert.Equal(t, "CS6220", s.Filtered()[0].SubjectID)
}

func TestNoMatches(t *testing.T) {
	s, sc := loaded(t)

	sc = screentest.Type(sc, "zzz")
	assert.Empty(t, s.Filtered())
	assert.Contains(t, screentest.Plain(sc, 120, 40), "No courses match your search")
}

func TestDetail(t *testing.T) {
	s, sc := loaded(t)

	sc, _ = screentest.Press(sc, tea.KeyDown)
	sc, _ = screentest.Press(sc, tea.KeyDown)
	sc, _ = screentest.Press(sc, tea.KeyEnter)
	require.NotNil(t, s.detail)
	assert.Equal(t, "CS6650", s.detail.SubjectID)

	out := screentest.Plain(sc, 120, 60)
	assert.Contains(t, out, "Core Course")
	assert.Contains(t, out, "Course Outcomes")
	assert.Contains(t, out, "Prerequisites")
	assert.Contains(t, out, "Mathematics")
	assert.Contains(t, out, "CAP Theorem")

	sc, cmd := screentest.Press(sc, tea.KeyEscape)
	assert.Nil(t, cmd)
	assert.Nil(t, s.detail)

	_, cmd = screentest.Press(sc, tea.KeyEscape)
	assert.Equal(t, router.PopScreenMsg{}, screentest.Exec(t, cmd))
}

func TestMoreRequirements(t *testing.T) {
	_, sc := loaded(t)
	assert.Contains(t, screentest.Plain(sc, 120, 80), "JavaScript, SQL +1 more")
}

func TestLoadError(t *testing.T) {
	env := screentest.New(t)
	env.Deps.Session = &session.Session{NUID: "000000000", Name: "Nobody"}
	s := New(env.Deps)
	sc, _ := screentest.Feed(t, s, s.Init())

	assert.Equal(t, "User not found", s.errMsg)
	assert.Contains(t, screentest.Plain(sc, 100, 30), "User not found")
}

func TestRequiresSession(t *testing.T) {
	assert.True(t, New(&screen.Deps{}).RequiresSession())
}
