package planner

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	plan "github.com/optilearn/schedulease/internal/planner"
	"github.com/optilearn/schedulease/internal/router"
	"github.com/optilearn/schedulease/internal/screen"
	"github.com/optilearn/schedulease/internal/screen/screentest"
	"github.com/optilearn/schedulease/internal/session"
)

func signedIn(t *testing.T) (*screentest.Env, *PlannerScreen) {
	t.Helper()
	env := screentest.New(t)
	env.SignIn(t)
	s := New(env.Deps)
	require.Nil(t, s.Init(), "nothing is fetched until a view is chosen")
	return env, s
}

// startDegree opens the full-degree view and applies the first offer.
func startDegree(t *testing.T, s *PlannerScreen) screen.Screen {
	t.Helper()
	sc, cmd := screentest.Key(s, 'd')
	require.True(t, s.builder.Busy())
	sc, _ = screentest.Feed(t, sc, cmd)
	require.Empty(t, s.degreeErr)
	require.Len(t, s.builder.Offer(), plan.OfferSize)
	return sc
}

func TestNextSemester(t *testing.T) {
	_, s := signedIn(t)

	sc, cmd := screentest.Key(s, 'n')
	assert.True(t, s.semLoading)
	sc, _ = screentest.Feed(t, sc, cmd)
	require.NotNil(t, s.next)
	require.Len(t, s.next.Recommendations, 2)

	out := screentest.Plain(sc, 120, 200)
	for _, want := range []string{
		"Next Semester Courses", "8 Credits", "Burnout Risk", "Prerequisites needed:",
		"Progress Summary", "Average Burnout Risk", "Remaining Core", "Recommended course load",
		s.next.Recommendations[0].SubjectID,
	} {
		assert.Contains(t, out, want)
	}
}

func TestDegreePlanToSave(t *testing.T) {
	env, s := signedIn(t)
	sc := startDegree(t, s)

	out := screentest.Plain(sc, 120, 200)
	assert.Contains(t, out, "Semester 1 Recommendations")
	assert.Contains(t, out, "0 of 8 courses selected")

	var cmd tea.Cmd
	for round := 1; round < 4; round++ {
		offer := s.builder.Offer()
		sc, cmd = screentest.Key(sc, 'a')
		sc, _ = screentest.Feed(t, sc, cmd)
		require.Len(t, s.builder.Accepted(), round*2)
		assert.Equal(t, offer, s.builder.Accepted()[(round-1)*2:])
	}
	assert.Contains(t, screentest.Plain(sc, 120, 200), "Semester 4 Recommendations")

	// The last accept fills the plan without another request.
	hits := env.Hits()
	sc, cmd = screentest.Key(sc, 'a')
	assert.Nil(t, cmd)
	assert.Equal(t, hits, env.Hits())
	require.True(t, s.builder.Complete())

	out = screentest.Plain(sc, 120, 200)
	assert.Contains(t, out, "Course Selection Complete!")
	assert.Contains(t, out, "Your Complete Course Plan")
	assert.Contains(t, out, "Semester 4")
	assert.Contains(t, out, "Total Credits 32")
	assert.NotContains(t, out, "courses selected")

	sc, _ = screentest.Key(sc, 'a')
	assert.Len(t, s.builder.Accepted(), plan.Capacity, "accept is ignored once complete")

	sc, _ = screentest.Key(sc, 'e')
	require.True(t, s.naming)
	_, cmd = screentest.Press(sc, tea.KeyEnter)
	assert.Nil(t, cmd)
	assert.Equal(t, msgNameRequired, s.saveErr)

	sc = screentest.Type(sc, "Fall plan")
	sc, cmd = screentest.Press(sc, tea.KeyEnter)
	_, cmd = screentest.Feed(t, sc, cmd)
	assert.Equal(t, router.NavigateMsg{Route: router.RouteSchedules}, screentest.Exec(t, cmd))
	assert.False(t, s.naming)
	assert.Equal(t, "Fall plan", s.builder.SavedAs())

	saved, err := env.Deps.Client.Schedules(context.Background(), env.Deps.Session.NUID)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, "Fall plan", saved[0].Name)
	assert.Len(t, saved[0].Courses, plan.Capacity)
}

func TestRejectKeepsAccepted(t *testing.T) {
	_, s := signedIn(t)
	sc := startDegree(t, s)

	sc, cmd := screentest.Key(sc, 'a')
	sc, _ = screentest.Feed(t, sc, cmd)
	accepted := append([]string(nil), s.builder.AcceptedIDs()...)
	offered := s.builder.Offer()

	sc, cmd = screentest.Key(sc, 'r')
	screentest.Feed(t, sc, cmd)

	assert.Equal(t, accepted, s.builder.AcceptedIDs())
	for _, r := range s.builder.Offer() {
		for _, o := range offered {
			assert.NotEqual(t, o.SubjectID, r.SubjectID, "rejected courses are not offered again")
		}
	}
}

func TestExportOnlyWhenComplete(t *testing.T) {
	_, s := signedIn(t)
	sc := startDegree(t, s)

	screentest.Key(sc, 'e')
	assert.False(t, s.naming)
}

func TestCancelNaming(t *testing.T) {
	_, s := signedIn(t)
	sc := startDegree(t, s)
	for !s.builder.Complete() {
		var cmd tea.Cmd
		sc, cmd = screentest.Key(sc, 'a')
		if cmd != nil {
			sc, _ = screentest.Feed(t, sc, cmd)
		}
	}

	sc, _ = screentest.Key(sc, 'e')
	sc = screentest.Type(sc, "draft")
	_, cmd := screentest.Press(sc, tea.KeyEscape)
	assert.Nil(t, cmd)
	assert.False(t, s.naming)
	assert.Empty(t, s.scheduleIn.Value())
}

func TestErrors(t *testing.T) {
	env := screentest.New(t)
	env.Deps.Session = &session.Session{NUID: "000000000"}
	s := New(env.Deps)

	sc, cmd := screentest.Key(s, 'd')
	sc, _ = screentest.Feed(t, sc, cmd)
	assert.Equal(t, msgDegreeFailed, s.degreeErr)
	assert.Contains(t, screentest.Plain(sc, 120, 60), msgDegreeFailed)

	sc, cmd = screentest.Key(sc, 'n')
	assert.Empty(t, s.degreeErr)
	sc, _ = screentest.Feed(t, sc, cmd)
	assert.Contains(t, screentest.Plain(sc, 120, 60), msgSemesterFailed)
}

func TestBack(t *testing.T) {
	_, s := signedIn(t)
	_, cmd := screentest.Press(s, tea.KeyEscape)
	assert.Equal(t, router.PopScreenMsg{}, screentest.Exec(t, cmd))
}
