package session

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optilearn/schedulease/internal/api"
	"github.com/optilearn/schedulease/internal/store"
)

func newManager(t *testing.T) (*Manager, store.KVRepo) {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return NewManager(s.KV()), s.KV()
}

func TestLifecycle(t *testing.T) {
	m, _ := newManager(t)
	ctx := context.Background()

	_, err := m.Current(ctx)
	require.ErrorIs(t, err, ErrNoSession)

	s := &Session{NUID: "001", Name: "Alex Kim", ProgrammingExperience: map[string]float64{"Go": 4}}
	require.NoError(t, m.Save(ctx, s))

	got, err := m.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "001", got.NUID)
	assert.Equal(t, "Alex Kim", got.Name)
	assert.Equal(t, 4.0, got.ProgrammingExperience["Go"])
	assert.NotNil(t, got.MathExperience)

	require.NoError(t, m.Logout(ctx))
	_, err = m.Current(ctx)
	require.ErrorIs(t, err, ErrNoSession)
}

func TestSaveRequiresNUID(t *testing.T) {
	m, _ := newManager(t)
	require.Error(t, m.Save(context.Background(), &Session{Name: "x"}))
	require.Error(t, m.Save(context.Background(), nil))
}

func TestStoredDocumentShape(t *testing.T) {
	m, kv := newManager(t)
	ctx := context.Background()

	profile := &api.UserProfile{
		ProgrammingExperience: map[string]float64{"Python": 5},
		MathExperience:        map[string]float64{"Calculus": 2},
		Raw: json.RawMessage(`{"NUID":"001","name":"Alex Kim","interests":["Web Development"],
			"programming_experience":{"Python":5},"math_experience":{"Calculus":2}}`),
	}
	require.NoError(t, m.Save(ctx, FromProfile("001", "Alex Kim", profile)))

	raw, err := kv.Get(ctx, Key)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, "001", doc["nuid"])
	assert.Equal(t, "Alex Kim", doc["fullName"])
	assert.Equal(t, "Alex Kim", doc["name"], "backend fields are kept")
	assert.Equal(t, []any{"Web Development"}, doc["interests"])
	assert.Equal(t, map[string]any{"Python": 5.0}, doc["programming_experience"])

	got, err := m.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Web Development"}, got.Interests())
}

func TestFromRegistration(t *testing.T) {
	s := FromRegistration(api.RegisterRequest{
		NUID:                  "002",
		Name:                  "Sam Lee",
		Interests:             []string{"Deep Learning", "Go"},
		ProgrammingExperience: map[string]int{"Go": 5},
		MathExperience:        map[string]int{"Logic": 1},
		CoreSubjects:          []string{"CS5800"},
	})

	assert.Equal(t, "002", s.NUID)
	assert.Equal(t, 5.0, s.ProgrammingExperience["Go"])
	assert.Equal(t, 1.0, s.MathExperience["Logic"])
	assert.Equal(t, []string{"Deep Learning", "Go"}, s.Interests())
	assert.Equal(t, []string{"CS5800"}, s.CoreSubjects())
}

func TestInitials(t *testing.T) {
	tests := []struct{ name, want string }{
		{"Alex Kim", "AK"},
		{"alex", "A"},
		{"Maria de la Cruz", "MD"},
		{"", ""},
	}
	for _, tt := range tests {
		s := &Session{Name: tt.name}
		assert.Equal(t, tt.want, s.Initials(), tt.name)
	}
}
