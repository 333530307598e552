package planner

import (
	"context"
	"errors"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optilearn/schedulease/internal/api"
	"github.com/optilearn/schedulease/internal/fakebackend"
)

// stubRecommender offers courses C1, C2, ... in order, skipping anything
// selected or blacklisted, and records every call.
type stubRecommender struct {
	calls []Request
	saved []Request
	fail  error
}

func (s *stubRecommender) RecommendFull(_ context.Context, _ string, selected, blacklisted []string) (*api.DegreeOffer, error) {
	s.calls = append(s.calls, Request{Selected: selected, Blacklisted: blacklisted})
	if s.fail != nil {
		return nil, s.fail
	}
	skip := map[string]bool{}
	for _, id := range selected {
		skip[id] = true
	}
	for _, id := range blacklisted {
		skip[id] = true
	}
	var recs []api.Recommendation
	for i := 1; len(recs) < 3 && i < 100; i++ {
		id := fmt.Sprintf("C%d", i)
		if !skip[id] {
			recs = append(recs, api.Recommendation{SubjectID: id})
		}
	}
	return &api.DegreeOffer{
		Recommendations: recs,
		Summary:         api.DegreeSummary{SelectedCourses: len(selected)},
	}, nil
}

func (s *stubRecommender) SaveSchedule(_ context.Context, _ string, name string, courses []string) error {
	if s.fail != nil {
		return s.fail
	}
	s.saved = append(s.saved, Request{Name: name, Selected: courses})
	return nil
}

// run performs req synchronously the way the UI does asynchronously.
func run(t *testing.T, b *Builder, rec Recommender, req Request) {
	t.Helper()
	offer, err := req.Do(context.Background(), "001", rec)
	require.NoError(t, b.Resolve(req, offer, err))
}

func start(t *testing.T, rec Recommender) *Builder {
	t.Helper()
	b := New()
	req, err := b.Start()
	require.NoError(t, err)
	run(t, b, rec, req)
	return b
}

func TestStartOffersTwo(t *testing.T) {
	rec := &stubRecommender{}
	b := start(t, rec)

	require.Len(t, rec.calls, 1)
	assert.Empty(t, rec.calls[0].Selected)
	assert.Empty(t, rec.calls[0].Blacklisted)
	assert.NotNil(t, rec.calls[0].Selected, "empty lists are sent, not null")

	assert.Equal(t, []string{"C1", "C2"}, ids(b.Offer()), "only the first two recommendations are offered")
	assert.Empty(t, b.Accepted())
}

func TestAcceptAppendsOffer(t *testing.T) {
	rec := &stubRecommender{}
	b := start(t, rec)

	req, fetch, err := b.Accept()
	require.NoError(t, err)
	require.True(t, fetch)
	assert.Equal(t, []string{"C1", "C2"}, req.Selected)
	assert.Empty(t, req.Blacklisted)
	assert.Empty(t, b.Accepted(), "accepted list changes only on success")

	run(t, b, rec, req)
	assert.Equal(t, []string{"C1", "C2"}, b.AcceptedIDs())
	assert.Equal(t, []string{"C3", "C4"}, ids(b.Offer()))
}

func TestRejectNeverAppends(t *testing.T) {
	rec := &stubRecommender{}
	b := start(t, rec)

	req, err := b.Reject()
	require.NoError(t, err)
	assert.Empty(t, req.Selected)
	assert.Equal(t, []string{"C1", "C2"}, req.Blacklisted)

	run(t, b, rec, req)
	assert.Empty(t, b.Accepted())
	assert.Equal(t, []string{"C3", "C4"}, ids(b.Offer()))

	req, _, err = b.Accept()
	require.NoError(t, err)
	run(t, b, rec, req)

	req, err = b.Reject()
	require.NoError(t, err)
	assert.Equal(t, []string{"C3", "C4"}, req.Selected)
	assert.Equal(t, []string{"C1", "C2"}, req.Blacklisted)
	run(t, b, rec, req)
	assert.Equal(t, []string{"C3", "C4"}, b.AcceptedIDs())
}

func TestCapacity(t *testing.T) {
	rec := &stubRecommender{}
	b := start(t, rec)

	for i := 0; i < 3; i++ {
		req, fetch, err := b.Accept()
		require.NoError(t, err)
		require.True(t, fetch)
		run(t, b, rec, req)
	}
	require.Len(t, b.Accepted(), 6)
	calls := len(rec.calls)

	// The fourth accept fills the plan without another fetch.
	_, fetch, err := b.Accept()
	require.NoError(t, err)
	assert.False(t, fetch)
	assert.Len(t, rec.calls, calls)
	assert.Len(t, b.Accepted(), Capacity)
	assert.True(t, b.Complete())
	assert.Empty(t, b.Offer())

	_, _, err = b.Accept()
	assert.ErrorIs(t, err, ErrComplete)
	_, err = b.Reject()
	assert.ErrorIs(t, err, ErrComplete)
	assert.Len(t, b.Accepted(), Capacity)

	req, err := b.Save("Full plan")
	require.NoError(t, err)
	run(t, b, rec, req)
	assert.Equal(t, "Full plan", b.SavedAs())
}

func TestAcceptRefusedOverCapacity(t *testing.T) {
	b := New()
	b.started = true
	for i := 0; i < 7; i++ {
		b.accepted = append(b.accepted, api.Recommendation{SubjectID: fmt.Sprintf("A%d", i)})
	}
	b.offer = []api.Recommendation{{SubjectID: "X"}, {SubjectID: "Y"}}

	_, _, err := b.Accept()
	assert.ErrorIs(t, err, ErrOverCapacity)
	assert.Len(t, b.Accepted(), 7)

	_, err = b.Reject()
	assert.NoError(t, err, "rejecting is still allowed")
}

func TestBusy(t *testing.T) {
	rec := &stubRecommender{}
	b := start(t, rec)

	req, _, err := b.Accept()
	require.NoError(t, err)
	assert.True(t, b.Busy())

	_, _, err = b.Accept()
	assert.ErrorIs(t, err, ErrBusy)
	_, err = b.Reject()
	assert.ErrorIs(t, err, ErrBusy)
	_, err = b.Save("x")
	assert.ErrorIs(t, err, ErrBusy)

	run(t, b, rec, req)
	assert.False(t, b.Busy())
}

func TestFailureLeavesPlanUnchanged(t *testing.T) {
	rec := &stubRecommender{}
	b := start(t, rec)

	rec.fail = errors.New("backend down")
	req, _, err := b.Accept()
	require.NoError(t, err)

	offer, doErr := req.Do(context.Background(), "001", rec)
	err = b.Resolve(req, offer, doErr)
	assert.EqualError(t, err, "backend down")
	assert.False(t, b.Busy())
	assert.Empty(t, b.Accepted())
	assert.Equal(t, []string{"C1", "C2"}, ids(b.Offer()))
}

func TestSaveValidation(t *testing.T) {
	rec := &stubRecommender{}
	b := start(t, rec)

	_, err := b.Save("first")
	assert.ErrorIs(t, err, ErrEmptyPlan)

	req, _, err := b.Accept()
	require.NoError(t, err)
	run(t, b, rec, req)

	_, err = b.Save("   ")
	assert.ErrorIs(t, err, ErrNameRequired)
	assert.False(t, b.Busy())

	req, err = b.Save("  Spring plan ")
	require.NoError(t, err)
	run(t, b, rec, req)
	require.Len(t, rec.saved, 1)
	assert.Equal(t, "Spring plan", rec.saved[0].Name)
	assert.Equal(t, []string{"C1", "C2"}, rec.saved[0].Selected)
}

func TestNotStarted(t *testing.T) {
	b := New()
	_, _, err := b.Accept()
	assert.ErrorIs(t, err, ErrNotStarted)
}

func TestSemesters(t *testing.T) {
	for i, want := range []int{1, 1, 2, 2, 3, 3, 4, 4} {
		assert.Equal(t, want, Semester(i), "index %d", i)
	}

	groups := Semesters([]string{"a", "b", "c", "d", "e"})
	assert.Equal(t, [][]string{{"a", "b"}, {"c", "d"}, {"e"}}, groups)
	assert.Empty(t, Semesters([]string{}))
}

func TestFullLoopAgainstBackend(t *testing.T) {
	srv := httptest.NewServer(fakebackend.New().Router())
	t.Cleanup(srv.Close)
	client := api.NewClient(api.WithBaseURL(srv.URL))
	ctx := context.Background()
	nuid := fakebackend.SeedNUID

	b := New()
	do := func(req Request) {
		offer, err := req.Do(ctx, nuid, client)
		require.NoError(t, b.Resolve(req, offer, err))
	}

	req, err := b.Start()
	require.NoError(t, err)
	do(req)

	req, err = b.Reject()
	require.NoError(t, err)
	do(req)

	for !b.Complete() {
		req, fetch, err := b.Accept()
		require.NoError(t, err)
		if fetch {
			do(req)
		}
	}
	assert.Len(t, b.Accepted(), Capacity)
	for _, r := range b.Accepted() {
		assert.NotEmpty(t, r.Reasons, r.SubjectID)
	}

	req, err = b.Save("Degree plan")
	require.NoError(t, err)
	do(req)

	schedules, err := client.Schedules(ctx, nuid)
	require.NoError(t, err)
	require.Len(t, schedules, 1)
	assert.Len(t, schedules[0].Courses, Capacity)
}

func TestPlanStats(t *testing.T) {
	assert.Equal(t, Stats{}, PlanStats(nil))

	recs := []api.Recommendation{
		{SubjectID: "A", WorkloadLevel: "High"},
		{SubjectID: "B", WorkloadLevel: "Medium"},
		{SubjectID: "C", WorkloadLevel: "low"},
	}
	st := PlanStats(recs)
	assert.Equal(t, 12, st.Credits)
	assert.Equal(t, 2, st.Semesters)
	assert.InDelta(t, 2.0, st.Workload, 1e-9)
}

// listReasonsServer answers /recommend-full with reasons as a JSON list on
// every round, the way the production backend does after the first offer.
func listReasonsServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req api.RecommendFullRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		skip := map[string]bool{}
		for _, id := range append(req.SelectedCourses, req.BlacklistedCourses...) {
			skip[id] = true
		}
		var recs []map[string]any
		for i := 1; len(recs) < 2 && i < 100; i++ {
			id := fmt.Sprintf("CS%d", 5000+i)
			if skip[id] {
				continue
			}
			recs = append(recs, map[string]any{
				"subject_id":     id,
				"subject_name":   "Course " + id,
				"burnout_risk":   0.5,
				"workload_level": "Medium",
				"utility_score":  0.7,
				"prerequisites":  0,
				"reasons":        []string{"Aligns with your academic progress", "Fits well with your current knowledge profile"},
			})
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"message": "Recommendations generated successfully",
			"data": map[string]any{
				"recommendations": recs,
				"summary":         map[string]any{"selected_courses": len(req.SelectedCourses)},
			},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestLoopWithListReasons(t *testing.T) {
	client := api.NewClient(api.WithBaseURL(listReasonsServer(t).URL))
	ctx := context.Background()

	b := New()
	do := func(req Request) {
		t.Helper()
		offer, err := req.Do(ctx, "001", client)
		require.NoError(t, b.Resolve(req, offer, err))
	}

	req, err := b.Start()
	require.NoError(t, err)
	do(req)

	req, fetch, err := b.Accept()
	require.NoError(t, err)
	require.True(t, fetch)
	do(req)
	assert.Equal(t, []string{"CS5001", "CS5002"}, b.AcceptedIDs())

	req, err = b.Reject()
	require.NoError(t, err)
	do(req)
	assert.Equal(t, []string{"CS5005", "CS5006"}, ids(b.Offer()))

	for !b.Complete() {
		req, fetch, err := b.Accept()
		require.NoError(t, err)
		if fetch {
			do(req)
		}
	}
	require.Len(t, b.Accepted(), Capacity)
	assert.Equal(t, "Aligns with your academic progress; Fits well with your current knowledge profile",
		b.Accepted()[Capacity-1].Reasons.String())
}
