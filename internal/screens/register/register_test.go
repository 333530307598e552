package register

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optilearn/schedulease/internal/fakebackend"
	reg "github.com/optilearn/schedulease/internal/register"
	"github.com/optilearn/schedulease/internal/router"
	"github.com/optilearn/schedulease/internal/screen"
	"github.com/optilearn/schedulease/internal/screen/screentest"
)

func ctrl(s screen.Screen, r rune) (screen.Screen, tea.Cmd) {
	return s.Update(tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl})
}

func enter(s screen.Screen) (screen.Screen, tea.Cmd) {
	return screentest.Press(s, tea.KeyEnter)
}

// passBasics completes step 1 against the fixture backend.
func passBasics(t *testing.T, s *RegisterScreen, nuid, name string) screen.Screen {
	t.Helper()
	var sc screen.Screen = screentest.Type(s, nuid)
	sc, _ = enter(sc)
	sc = screentest.Type(sc, name)
	sc, cmd := enter(sc)
	require.True(t, s.loading)
	sc, _ = screentest.Feed(t, sc, cmd)
	return sc
}

func TestRegistrationFlow(t *testing.T) {
	env := screentest.New(t)
	s := New(env.Deps)
	s.Init()

	sc := passBasics(t, s, "009999999", "New Student")
	require.Equal(t, reg.StepProgramming, s.wizard.Step())

	sc, _ = screentest.Key(sc, '4')
	sc, _ = screentest.Press(sc, tea.KeyDown)
	sc, _ = screentest.Press(sc, tea.KeyRight)
	sc, _ = screentest.Press(sc, tea.KeyRight)
	assert.Equal(t, 4, s.wizard.LanguageRating("Assembly"))
	assert.Equal(t, 2, s.wizard.LanguageRating("C"))

	sc, _ = ctrl(sc, 'n')
	require.Equal(t, reg.StepMath, s.wizard.Step())
	sc, _ = screentest.Key(sc, '3')
	assert.Equal(t, 3, s.wizard.MathRating("Algorithms"))

	sc, _ = ctrl(sc, 'n')
	require.Equal(t, reg.StepCourses, s.wizard.Step())
	for _, v := range []string{"CS5010", "Programming Design Paradigm", "12", "93", "4"} {
		sc = screentest.Type(sc, v)
		sc, _ = enter(sc)
	}
	require.Len(t, s.wizard.Courses(), 1)
	assert.Equal(t, reg.CourseEntry{Code: "CS5010", Name: "Programming Design Paradigm", WeeklyWorkload: 12, FinalGrade: 93, Experience: 4},
		s.wizard.Courses()[0])
	assert.Empty(t, s.errMsg)

	sc, _ = ctrl(sc, 'n')
	require.Equal(t, reg.StepCore, s.wizard.Step())
	sc = screentest.Type(sc, "CS5800")
	sc, _ = enter(sc)
	assert.Equal(t, []string{"CS5800"}, s.wizard.Core())

	sc, _ = ctrl(sc, 'n')
	require.Equal(t, reg.StepInterests, s.wizard.Step())

	sc, cmd := ctrl(sc, 's')
	assert.Nil(t, cmd)
	assert.Equal(t, msgNoInterests, s.errMsg, "zero interests blocks submission")

	sc, _ = enter(sc)
	require.True(t, s.picking)
	sc, _ = screentest.Press(sc, tea.KeySpace)
	sc, _ = enter(sc)
	require.Len(t, s.wizard.Interests(), 1)
	assert.Equal(t, "artificial intelligence", s.wizard.Interests()[0].Category)

	sc, cmd = ctrl(sc, 's')
	require.True(t, s.loading)
	_, cmd = screentest.Feed(t, sc, cmd)
	assert.Equal(t, router.NavigateMsg{Route: router.RouteHome, Reset: true}, screentest.Exec(t, cmd))

	require.NotNil(t, env.Deps.Session)
	assert.Equal(t, "009999999", env.Deps.Session.NUID)
	assert.Equal(t, []string{"Artificial Intelligence"}, env.Deps.Session.Interests())

	_, err := env.Deps.Client.Login(context.Background(), "009999999", "New Student")
	assert.NoError(t, err, "the backend knows the new student")
}

func TestExistingNUID(t *testing.T) {
	env := screentest.New(t)
	s := New(env.Deps)
	s.Init()

	sc := passBasics(t, s, fakebackend.SeedNUID, fakebackend.SeedName)
	assert.Equal(t, reg.StepBasics, s.wizard.Step())
	assert.Equal(t, "User with this NUID already exists", s.errMsg)
	assert.Contains(t, screentest.Plain(sc, 100, 40), "User with this NUID already exists")
}

func TestBasicsValidatedLocally(t *testing.T) {
	env := screentest.New(t)
	s := New(env.Deps)
	s.Init()

	var sc screen.Screen = screentest.Type(s, "001")
	sc, _ = enter(sc)
	_, cmd := enter(sc)

	assert.Nil(t, cmd)
	assert.Equal(t, "Full name is required", s.errMsg)
	assert.Zero(t, env.Hits())
}

func TestCourseValidationError(t *testing.T) {
	env := screentest.New(t)
	s := New(env.Deps)
	s.Init()
	sc := passBasics(t, s, "009999999", "New Student")
	sc, _ = ctrl(sc, 'n')
	sc, _ = ctrl(sc, 'n')
	require.Equal(t, reg.StepCourses, s.wizard.Step())

	sc = screentest.Type(sc, "CS5010")
	for i := 0; i < 4; i++ {
		sc, _ = enter(sc)
	}
	sc, _ = enter(sc)
	assert.Equal(t, "Course name is required", s.errMsg)
	assert.Empty(t, s.wizard.Courses())
}

func TestBackKeepsData(t *testing.T) {
	env := screentest.New(t)
	s := New(env.Deps)
	s.Init()
	sc := passBasics(t, s, "009999999", "New Student")
	sc, _ = screentest.Key(sc, '5')
	sc, _ = ctrl(sc, 'n')
	sc, _ = ctrl(sc, 'p')
	sc, _ = ctrl(sc, 'p')

	assert.Equal(t, reg.StepBasics, s.wizard.Step())
	assert.Equal(t, 5, s.wizard.LanguageRating("Assembly"))
	assert.Equal(t, "009999999", s.wizard.Basics().NUID)
}

func TestRegisteredButSessionNotSaved(t *testing.T) {
	env := screentest.New(t)
	s := New(env.Deps)
	s.Init()

	sc := passBasics(t, s, "009999999", "New Student")
	for s.wizard.Step() != reg.StepInterests {
		sc, _ = ctrl(sc, 'n')
	}
	sc, _ = enter(sc)
	sc, _ = screentest.Press(sc, tea.KeySpace)
	sc, _ = enter(sc)
	require.Len(t, s.wizard.Interests(), 1)

	require.NoError(t, env.Store.Close())

	sc, cmd := ctrl(sc, 's')
	require.True(t, s.loading)
	sc, next := screentest.Feed(t, sc, cmd)
	assert.Nil(t, next)
	assert.Nil(t, env.Deps.Session)
	assert.True(t, s.registered)
	assert.Equal(t, msgSessionUnsaved, s.errMsg)
	assert.Contains(t, screentest.Plain(sc, 100, 40), "Registered, but the session")

	_, err := env.Deps.Client.Login(context.Background(), "009999999", "New Student")
	require.NoError(t, err, "the account exists on the backend")

	hits := env.Hits()
	sc, cmd = ctrl(sc, 's')
	assert.Nil(t, cmd, "the form cannot be submitted again")
	assert.Equal(t, hits, env.Hits())

	_, cmd = enter(sc)
	assert.Equal(t, router.NavigateMsg{Route: router.RouteLogin, Reset: true}, screentest.Exec(t, cmd))
}
