// Package planner implements the iterative degree-plan builder: the
// backend offers courses two at a time and the student accepts or rejects
// each offer until the plan holds Capacity courses.
package planner

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/optilearn/schedulease/internal/api"
)

const (
	// Capacity is the number of courses in a complete plan.
	Capacity = 8
	// OfferSize is the number of courses offered per round.
	OfferSize = 2
	// CoursesPerSemester groups accepted courses into semesters.
	CoursesPerSemester = 2
)

var (
	ErrComplete     = errors.New("plan is complete")
	ErrBusy         = errors.New("a request is already in flight")
	ErrNoOffer      = errors.New("no courses on offer")
	ErrOverCapacity = errors.New("accepting this offer would exceed the plan capacity")
	ErrNameRequired = errors.New("schedule name is required")
	ErrEmptyPlan    = errors.New("plan has no courses")
	ErrNotStarted   = errors.New("plan has not been started")
)

// Recommender is the part of the backend the builder talks to.
type Recommender interface {
	RecommendFull(ctx context.Context, nuid string, selected, blacklisted []string) (*api.DegreeOffer, error)
	SaveSchedule(ctx context.Context, nuid, name string, courses []string) error
}

// Action is the kind of a Request.
type Action int

const (
	ActionStart Action = iota
	ActionAccept
	ActionReject
	ActionSave
)

func (a Action) String() string {
	switch a {
	case ActionStart:
		return "start"
	case ActionAccept:
		return "accept"
	case ActionReject:
		return "reject"
	case ActionSave:
		return "save"
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// Request is a backend call prepared by the Builder. It carries everything
// needed to run off the UI goroutine and is handed back to Resolve.
type Request struct {
	Action      Action
	Selected    []string
	Blacklisted []string
	Name        string

	// next is the accepted list that takes effect on success.
	next []api.Recommendation
}

// Do performs the request against rec.
func (r Request) Do(ctx context.Context, nuid string, rec Recommender) (*api.DegreeOffer, error) {
	if r.Action == ActionSave {
		return nil, rec.SaveSchedule(ctx, nuid, r.Name, r.Selected)
	}
	return rec.RecommendFull(ctx, nuid, r.Selected, r.Blacklisted)
}

// Builder holds the plan under construction. It is not safe for
// concurrent use; the UI owns it.
type Builder struct {
	accepted []api.Recommendation
	offer    []api.Recommendation
	summary  api.DegreeSummary
	started  bool
	busy     bool
	saved    string
}

func New() *Builder {
	return &Builder{}
}

// Accepted returns the accepted courses in order.
func (b *Builder) Accepted() []api.Recommendation { return b.accepted }

// Offer returns the courses currently on offer.
func (b *Builder) Offer() []api.Recommendation { return b.offer }

// Summary returns the backend summary of the latest offer.
func (b *Builder) Summary() api.DegreeSummary { return b.summary }

func (b *Builder) Busy() bool { return b.busy }

// Complete reports whether the plan reached Capacity.
func (b *Builder) Complete() bool { return len(b.accepted) >= Capacity }

// SavedAs returns the name of the last successful save, or "".
func (b *Builder) SavedAs() string { return b.saved }

// AcceptedIDs returns the subject ids of the accepted courses.
func (b *Builder) AcceptedIDs() []string { return ids(b.accepted) }

// Start prepares the first request of a fresh plan.
func (b *Builder) Start() (Request, error) {
	if b.busy {
		return Request{}, ErrBusy
	}
	b.accepted = nil
	b.offer = nil
	b.summary = api.DegreeSummary{}
	b.saved = ""
	b.started = true
	b.busy = true
	return Request{Action: ActionStart, Selected: []string{}, Blacklisted: []string{}}, nil
}

// Accept prepares a request that adds the current offer to the plan. When
// the plan reaches Capacity the offer is applied immediately and ok is
// false: nothing needs to be fetched.
func (b *Builder) Accept() (req Request, ok bool, err error) {
	if err := b.ready(); err != nil {
		return Request{}, false, err
	}
	if len(b.accepted)+len(b.offer) > Capacity {
		return Request{}, false, ErrOverCapacity
	}

	next := make([]api.Recommendation, 0, len(b.accepted)+len(b.offer))
	next = append(next, b.accepted...)
	next = append(next, b.offer...)

	if len(next) >= Capacity {
		b.accepted = next
		b.offer = nil
		return Request{}, false, nil
	}

	b.busy = true
	return Request{
		Action:      ActionAccept,
		Selected:    ids(next),
		Blacklisted: []string{},
		next:        next,
	}, true, nil
}

// Reject prepares a request that excludes the current offer. The accepted
// list never changes.
func (b *Builder) Reject() (Request, error) {
	if err := b.ready(); err != nil {
		return Request{}, err
	}
	b.busy = true
	return Request{
		Action:      ActionReject,
		Selected:    ids(b.accepted),
		Blacklisted: ids(b.offer),
		next:        b.accepted,
	}, nil
}

// Save prepares a request that stores the accepted courses under name.
func (b *Builder) Save(name string) (Request, error) {
	if b.busy {
		return Request{}, ErrBusy
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Request{}, ErrNameRequired
	}
	if len(b.accepted) == 0 {
		return Request{}, ErrEmptyPlan
	}
	b.busy = true
	return Request{Action: ActionSave, Name: name, Selected: ids(b.accepted)}, nil
}

func (b *Builder) ready() error {
	switch {
	case b.busy:
		return ErrBusy
	case !b.started:
		return ErrNotStarted
	case b.Complete():
		return ErrComplete
	case len(b.offer) == 0:
		return ErrNoOffer
	}
	return nil
}

// Resolve applies the outcome of req. On failure the plan is unchanged and
// err is returned.
func (b *Builder) Resolve(req Request, offer *api.DegreeOffer, err error) error {
	b.busy = false
	if err != nil {
		return err
	}

	switch req.Action {
	case ActionSave:
		b.saved = req.Name
		return nil
	case ActionStart:
		b.accepted = nil
	default:
		b.accepted = req.next
	}

	b.offer = nil
	if offer != nil {
		b.summary = offer.Summary
		if !b.Complete() {
			n := min(OfferSize, len(offer.Recommendations))
			b.offer = append([]api.Recommendation(nil), offer.Recommendations[:n]...)
		}
	}
	return nil
}

// Semester returns the 1-based semester of the course at index i.
func Semester(i int) int {
	return i/CoursesPerSemester + 1
}

// Semesters splits items into consecutive groups of CoursesPerSemester.
func Semesters[T any](items []T) [][]T {
	var out [][]T
	for i := 0; i < len(items); i += CoursesPerSemester {
		end := min(i+CoursesPerSemester, len(items))
		out = append(out, items[i:end])
	}
	return out
}

func ids(recs []api.Recommendation) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.SubjectID
	}
	return out
}
