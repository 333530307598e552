// Package planner is the schedule planning screen: next-semester
// suggestions and the iterative full-degree builder.
package planner

import (
	"context"
	"errors"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/optilearn/schedulease/internal/api"
	plan "github.com/optilearn/schedulease/internal/planner"
	"github.com/optilearn/schedulease/internal/router"
	"github.com/optilearn/schedulease/internal/screen"
	"github.com/optilearn/schedulease/internal/ui/components"
	"github.com/optilearn/schedulease/internal/ui/layout"
)

const (
	msgSemesterFailed = "Failed to fetch schedule data"
	msgDegreeFailed   = "Failed to fetch degree plan"
	msgNextFailed     = "Failed to fetch next semester recommendations"
	msgSaveFailed     = "Failed to save schedule to profile"
	msgNameRequired   = "Please enter a name for your schedule"
)

type view int

const (
	viewNone view = iota
	viewSemester
	viewDegree
)

type semesterLoadedMsg struct {
	Next *api.NextSemester
	Err  error
}

type planResultMsg struct {
	Req   plan.Request
	Offer *api.DegreeOffer
	Err   error
}

// PlannerScreen generates course recommendations.
type PlannerScreen struct {
	deps *screen.Deps

	view view

	next       *api.NextSemester
	semLoading bool
	semErr     string
	builder    *plan.Builder
	degreeErr  string
	naming     bool
	scheduleIn components.TextInput
	saveErr    string
}

var _ screen.Screen = (*PlannerScreen)(nil)
var _ screen.KeyHintProvider = (*PlannerScreen)(nil)
var _ screen.Protected = (*PlannerScreen)(nil)

// New creates a PlannerScreen.
func New(deps *screen.Deps) *PlannerScreen {
	return &PlannerScreen{
		deps:       deps,
		builder:    plan.New(),
		scheduleIn: components.NewTextInput("Schedule name", "Enter schedule name", false, 40),
	}
}

func (s *PlannerScreen) RequiresSession() bool { return true }

// Init issues no request; the student picks a view first.
func (s *PlannerScreen) Init() tea.Cmd {
	return nil
}

func (s *PlannerScreen) Title() string {
	return "Course Schedule Planning"
}

func (s *PlannerScreen) KeyHints() []layout.KeyHint {
	if s.naming {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Save Schedule"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "n", Description: "Next Semester"},
		{Key: "d", Description: "Full Degree"},
	}
	if s.view == viewDegree && len(s.builder.Offer()) > 0 {
		hints = append(hints,
			layout.KeyHint{Key: "a", Description: "Accept"},
			layout.KeyHint{Key: "r", Description: "Reject"})
	}
	if s.builder.Complete() {
		hints = append(hints, layout.KeyHint{Key: "e", Description: "Export to Profile"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

// Builder exposes the degree plan under construction.
func (s *PlannerScreen) Builder() *plan.Builder {
	return s.builder
}

func (s *PlannerScreen) loading() bool {
	return s.semLoading || s.builder.Busy()
}

func (s *PlannerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case semesterLoadedMsg:
		s.semLoading = false
		if msg.Err != nil {
			s.semErr = msgSemesterFailed
			return s, nil
		}
		s.next = msg.Next
		return s, nil

	case planResultMsg:
		return s, s.resolve(msg)

	case tea.KeyPressMsg:
		if s.naming {
			return s, s.updateNaming(msg)
		}
		switch msg.String() {
		case "esc", "q":
			return s, router.Back()
		case "n":
			return s, s.fetchNextSemester()
		case "d":
			return s, s.startDegree()
		case "a":
			return s, s.accept()
		case "r", "x":
			return s, s.reject()
		case "e":
			if s.builder.Complete() && !s.loading() {
				s.naming = true
				s.saveErr = ""
				return s, s.scheduleIn.Focus()
			}
		}
	}
	return s, nil
}

func (s *PlannerScreen) updateNaming(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		s.naming = false
		s.saveErr = ""
		s.scheduleIn.Reset()
		s.scheduleIn.Blur()
		return nil
	case "enter":
		return s.save()
	}
	var cmd tea.Cmd
	s.scheduleIn, cmd = s.scheduleIn.Update(msg)
	return cmd
}

func (s *PlannerScreen) fetchNextSemester() tea.Cmd {
	if s.loading() {
		return nil
	}
	s.view = viewSemester
	s.semLoading = true
	s.semErr = ""
	s.degreeErr = ""

	client, nuid, logger := s.deps.Client, s.deps.Session.NUID, s.deps.Log()
	return func() tea.Msg {
		next, err := client.Recommendations(context.Background(), nuid)
		if err != nil {
			logger.Warn("fetch next semester", zap.Error(err))
		}
		return semesterLoadedMsg{Next: next, Err: err}
	}
}

func (s *PlannerScreen) startDegree() tea.Cmd {
	if s.loading() {
		return nil
	}
	req, err := s.builder.Start()
	if err != nil {
		return nil
	}
	s.view = viewDegree
	s.semErr = ""
	s.degreeErr = ""
	return s.run(req)
}

func (s *PlannerScreen) accept() tea.Cmd {
	if s.view != viewDegree {
		return nil
	}
	req, ok, err := s.builder.Accept()
	if err != nil || !ok {
		if errors.Is(err, plan.ErrOverCapacity) {
			s.degreeErr = err.Error()
		}
		return nil
	}
	return s.run(req)
}

func (s *PlannerScreen) reject() tea.Cmd {
	if s.view != viewDegree {
		return nil
	}
	req, err := s.builder.Reject()
	if err != nil {
		return nil
	}
	return s.run(req)
}

func (s *PlannerScreen) save() tea.Cmd {
	req, err := s.builder.Save(s.scheduleIn.Value())
	switch {
	case errors.Is(err, plan.ErrNameRequired):
		s.saveErr = msgNameRequired
		return nil
	case err != nil:
		return nil
	}
	s.saveErr = ""
	return s.run(req)
}

// run performs req off the UI goroutine.
func (s *PlannerScreen) run(req plan.Request) tea.Cmd {
	client, nuid, logger := s.deps.Client, s.deps.Session.NUID, s.deps.Log()
	return func() tea.Msg {
		offer, err := req.Do(context.Background(), nuid, client)
		if err != nil {
			logger.Warn("plan request failed", zap.Stringer("action", req.Action), zap.Error(err))
		}
		return planResultMsg{Req: req, Offer: offer, Err: err}
	}
}

func (s *PlannerScreen) resolve(msg planResultMsg) tea.Cmd {
	err := s.builder.Resolve(msg.Req, msg.Offer, msg.Err)

	if msg.Req.Action == plan.ActionSave {
		if err != nil {
			s.saveErr = api.DisplayMessage(err, msgSaveFailed)
			return nil
		}
		s.deps.Log().Info("schedule saved", zap.String("name", msg.Req.Name))
		s.naming = false
		s.scheduleIn.Reset()
		s.scheduleIn.Blur()
		return router.Navigate(router.RouteSchedules)
	}

	if err != nil {
		if msg.Req.Action == plan.ActionStart {
			s.degreeErr = msgDegreeFailed
		} else {
			s.degreeErr = msgNextFailed
		}
		return nil
	}
	s.degreeErr = ""
	return nil
}
