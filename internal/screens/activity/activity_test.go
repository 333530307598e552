package activity

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optilearn/schedulease/internal/router"
	"github.com/optilearn/schedulease/internal/screen"
	"github.com/optilearn/schedulease/internal/screen/screentest"
	"github.com/optilearn/schedulease/internal/store"
)

func seeded(t *testing.T) (*ActivityScreen, screen.Screen) {
	t.Helper()
	env := screentest.New(t)
	repo := env.Store.EventRepo()
	ctx := context.Background()
	for _, ev := range []store.APIRequestEventData{
		{RequestID: "req-1", Method: "POST", Path: "/auth/login", Status: 200, LatencyMs: 12, Success: true},
		{RequestID: "req-2", Method: "GET", Path: "/progress/001", Status: 404, LatencyMs: 3, ErrorMessage: "404 Not Found"},
		{RequestID: "req-3", Method: "GET", Path: "/course-catalog/001", Status: 200, LatencyMs: 40, Success: true},
	} {
		require.NoError(t, repo.AppendAPIRequest(ctx, ev))
	}

	s := New(repo)
	sc, _ := screentest.Feed(t, s, s.Init())
	require.True(t, s.loaded)
	return s, sc
}

func TestListsNewestFirst(t *testing.T) {
	s, sc := seeded(t)

	require.Len(t, s.Visible(), 3)
	assert.Equal(t, "/course-catalog/001", s.Visible()[0].Path)

	out := screentest.Plain(sc, 120, 40)
	assert.Contains(t, out, "/auth/login")
	assert.Contains(t, out, "404")
}

func TestFailuresOnly(t *testing.T) {
	s, sc := seeded(t)

	sc, _ = screentest.Key(sc, 'f')
	require.Len(t, s.Visible(), 1)
	assert.Equal(t, "req-2", s.Visible()[0].RequestID)

	sc, _ = screentest.Press(sc, tea.KeyEnter)
	out := screentest.Plain(sc, 120, 40)
	assert.Contains(t, out, "request req-2")
	assert.Contains(t, out, "404 Not Found")
}

func TestNavigate(t *testing.T) {
	s, sc := seeded(t)

	for i := 0; i < 5; i++ {
		sc, _ = screentest.Press(sc, tea.KeyDown)
	}
	assert.Equal(t, 2, s.selected)

	_, cmd := screentest.Press(sc, tea.KeyEscape)
	assert.Equal(t, router.PopScreenMsg{}, screentest.Exec(t, cmd))
}

func TestEmpty(t *testing.T) {
	env := screentest.New(t)
	s := New(env.Store.EventRepo())
	sc, _ := screentest.Feed(t, s, s.Init())
	assert.Contains(t, screentest.Plain(sc, 100, 30), "No requests recorded yet")
}
