package register

import (
	"context"
	"errors"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/optilearn/schedulease/internal/api"
	reg "github.com/optilearn/schedulease/internal/register"
	"github.com/optilearn/schedulease/internal/router"
	"github.com/optilearn/schedulease/internal/screen"
	"github.com/optilearn/schedulease/internal/session"
	"github.com/optilearn/schedulease/internal/ui/components"
	"github.com/optilearn/schedulease/internal/ui/layout"
)

const (
	msgUserExists      = "Registration failed, the user already exists"
	msgCheckFailed     = "An error occurred. Please try again."
	msgNoInterests     = "Please select at least one interest area before proceeding."
	msgRegisterFailed  = "Registration failed"
	msgRegisterNetwork = "Registration failed. Please try again."
	msgSessionUnsaved  = "Registered, but the session could not be saved locally. Please sign in."
)

// course form fields, in tab order
const (
	fieldCode = iota
	fieldName
	fieldWorkload
	fieldGrade
	fieldExperience
	fieldCount
)

type checkedMsg struct {
	Err error
}

type registeredMsg struct {
	Session *session.Session
}

type registerFailedMsg struct {
	Err error
}

// registeredUnsavedMsg reports an account the backend created whose
// session could not be stored.
type registeredUnsavedMsg struct{}

// RegisterScreen drives the six-step registration wizard.
type RegisterScreen struct {
	deps   *screen.Deps
	wizard *reg.Wizard

	// step 1
	nuid      components.TextInput
	name      components.TextInput
	basicsIdx int

	// steps 2 and 3
	languages components.MultiChoice
	math      components.MultiChoice

	// step 4
	courseFields [fieldCount]components.TextInput
	courseIdx    int

	// step 5
	core components.TextInput

	// step 6
	categories components.MultiChoice
	topics     components.MultiChoice
	picking    bool // browsing the topics of a chosen category

	loading bool
	errMsg  string

	// registered blocks resubmission once the backend has the account.
	registered bool
}

var _ screen.Screen = (*RegisterScreen)(nil)
var _ screen.KeyHintProvider = (*RegisterScreen)(nil)

// New creates a RegisterScreen at step 1.
func New(deps *screen.Deps) *RegisterScreen {
	s := &RegisterScreen{
		deps:       deps,
		wizard:     reg.New(),
		nuid:       components.NewTextInput("NUID", "NUID", false, 20),
		name:       components.NewTextInput("Full Name", "Full Name", false, 60),
		languages:  components.NewMultiChoice("", reg.Languages, 12),
		math:       components.NewMultiChoice("", reg.MathTopics, 12),
		core:       components.NewTextInput("Subject code", "CS5010", false, 12),
		categories: components.NewMultiChoice("Select a Category", reg.Categories(), 10),
	}
	s.courseFields = [fieldCount]components.TextInput{
		components.NewTextInput("Course code", "CS5010", false, 12),
		components.NewTextInput("Course name", "Programming Design Paradigm", false, 60),
		components.NewTextInput("Weekly workload (hours)", "10", true, 3),
		components.NewTextInput("Final grade (0-100)", "90", true, 3),
		components.NewTextInput("Experience (1-5)", "4", true, 1),
	}
	return s
}

func (s *RegisterScreen) Init() tea.Cmd {
	return s.nuid.Focus()
}

func (s *RegisterScreen) Title() string {
	return "Create account"
}

func (s *RegisterScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Esc", Description: "Cancel"}}
	if s.registered {
		return []layout.KeyHint{{Key: "Enter", Description: "Sign in"}, {Key: "Esc", Description: "Back"}}
	}
	switch s.wizard.Step() {
	case reg.StepBasics:
		return append([]layout.KeyHint{
			{Key: "Tab", Description: "Next field"},
			{Key: "Enter", Description: "Continue"},
		}, hints...)
	case reg.StepProgramming, reg.StepMath:
		hints = append([]layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "0-5 ←→", Description: "Rate"},
		}, hints...)
	case reg.StepCourses, reg.StepCore:
		hints = append([]layout.KeyHint{
			{Key: "Enter", Description: "Add"},
			{Key: "Ctrl+X", Description: "Remove last"},
		}, hints...)
	case reg.StepInterests:
		if s.picking {
			return []layout.KeyHint{
				{Key: "Space", Description: "Toggle"},
				{Key: "Enter", Description: "Add interest"},
				{Key: "Esc", Description: "Categories"},
			}
		}
		return append([]layout.KeyHint{
			{Key: "Enter", Description: "Choose"},
			{Key: "Ctrl+S", Description: "Submit"},
			{Key: "Ctrl+P", Description: "Back"},
		}, hints...)
	}
	return append(hints,
		layout.KeyHint{Key: "Ctrl+N", Description: "Next"},
		layout.KeyHint{Key: "Ctrl+P", Description: "Back"},
	)
}

// Wizard exposes the form state.
func (s *RegisterScreen) Wizard() *reg.Wizard {
	return s.wizard
}

func (s *RegisterScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case checkedMsg:
		s.loading = false
		if msg.Err != nil {
			s.errMsg = checkErrorText(msg.Err)
			return s, nil
		}
		if err := s.wizard.ConfirmBasics(); err != nil {
			s.errMsg = err.Error()
			return s, nil
		}
		s.errMsg = ""
		return s, s.enterStep()

	case registeredMsg:
		s.loading = false
		s.deps.Session = msg.Session
		return s, router.Reset(router.RouteHome)

	case registerFailedMsg:
		s.loading = false
		s.errMsg = registerErrorText(msg.Err)
		return s, nil

	case registeredUnsavedMsg:
		s.loading = false
		s.registered = true
		s.errMsg = msgSessionUnsaved
		return s, nil

	case tea.KeyPressMsg:
		if s.loading {
			return s, nil
		}
		if s.registered {
			switch msg.String() {
			case "enter":
				return s, router.Reset(router.RouteLogin)
			case "esc":
				return s, router.Back()
			}
			return s, nil
		}
		return s.handleKey(msg)
	}

	return s, s.forward(msg)
}

func (s *RegisterScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	step := s.wizard.Step()

	switch msg.String() {
	case "esc":
		if step == reg.StepInterests && s.picking {
			s.picking = false
			return s, nil
		}
		return s, router.Back()
	case "ctrl+n", "pgdown":
		return s, s.next()
	case "ctrl+p", "pgup":
		return s, s.back()
	}

	switch step {
	case reg.StepBasics:
		return s.updateBasics(msg)
	case reg.StepProgramming:
		s.languages = rateKeys(s.languages, msg, s.wizard.LanguageRating, s.wizard.RateLanguage)
		return s, nil
	case reg.StepMath:
		s.math = rateKeys(s.math, msg, s.wizard.MathRating, s.wizard.RateMath)
		return s, nil
	case reg.StepCourses:
		return s.updateCourses(msg)
	case reg.StepCore:
		return s.updateCore(msg)
	case reg.StepInterests:
		return s.updateInterests(msg)
	}
	return s, nil
}

// forward passes non-key messages (cursor blink) to the focused input.
func (s *RegisterScreen) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch s.wizard.Step() {
	case reg.StepBasics:
		if s.basicsIdx == 0 {
			s.nuid, cmd = s.nuid.Update(msg)
		} else {
			s.name, cmd = s.name.Update(msg)
		}
	case reg.StepCourses:
		s.courseFields[s.courseIdx], cmd = s.courseFields[s.courseIdx].Update(msg)
	case reg.StepCore:
		s.core, cmd = s.core.Update(msg)
	}
	return cmd
}

func (s *RegisterScreen) next() tea.Cmd {
	if s.wizard.Step() == reg.StepBasics {
		return s.check()
	}
	if err := s.wizard.Next(); err != nil {
		if errors.Is(err, reg.ErrLastStep) {
			return s.submit()
		}
		s.errMsg = err.Error()
		return nil
	}
	s.errMsg = ""
	return s.enterStep()
}

func (s *RegisterScreen) back() tea.Cmd {
	s.wizard.Back()
	s.errMsg = ""
	s.picking = false
	return s.enterStep()
}

// enterStep moves input focus to the current step.
func (s *RegisterScreen) enterStep() tea.Cmd {
	s.nuid.Blur()
	s.name.Blur()
	s.core.Blur()
	for i := range s.courseFields {
		s.courseFields[i].Blur()
	}
	switch s.wizard.Step() {
	case reg.StepBasics:
		if s.basicsIdx == 0 {
			return s.nuid.Focus()
		}
		return s.name.Focus()
	case reg.StepCourses:
		return s.courseFields[s.courseIdx].Focus()
	case reg.StepCore:
		return s.core.Focus()
	}
	return nil
}

func (s *RegisterScreen) updateBasics(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab", "up", "down":
		s.basicsIdx = 1 - s.basicsIdx
		return s, s.enterStep()
	case "enter":
		if s.basicsIdx == 0 {
			s.basicsIdx = 1
			return s, s.enterStep()
		}
		return s, s.check()
	}
	return s, s.forward(msg)
}

// check validates step 1 locally, then asks the server whether the NUID
// is free.
func (s *RegisterScreen) check() tea.Cmd {
	s.wizard.SetBasics(s.nuid.Value(), s.name.Value())
	if err := s.wizard.ValidateBasics(); err != nil {
		s.errMsg = err.Error()
		return nil
	}
	s.errMsg = ""
	s.loading = true

	b := s.wizard.Basics()
	client := s.deps.Client
	return func() tea.Msg {
		return checkedMsg{Err: client.CheckUser(context.Background(), b.NUID, b.Name)}
	}
}

func checkErrorText(err error) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return api.DisplayMessage(err, msgUserExists)
	}
	return msgCheckFailed
}

// rateKeys moves the cursor of list or rates the item under it.
func rateKeys(list components.MultiChoice, msg tea.KeyPressMsg, get func(string) int, set func(string, int) error) components.MultiChoice {
	item := list.Current()
	key := msg.String()
	switch {
	case len(key) == 1 && key[0] >= '0' && key[0] <= '0'+reg.MaxRating:
		_ = set(item, int(key[0]-'0'))
	case key == "right" || key == "l" || key == "+":
		_ = set(item, min(get(item)+1, reg.MaxRating))
	case key == "left" || key == "h" || key == "-":
		_ = set(item, max(get(item)-1, 0))
	default:
		list = list.Update(msg)
	}
	return list
}

func (s *RegisterScreen) updateCourses(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		s.courseIdx = (s.courseIdx + 1) % fieldCount
		return s, s.enterStep()
	case "shift+tab", "up":
		s.courseIdx = (s.courseIdx + fieldCount - 1) % fieldCount
		return s, s.enterStep()
	case "ctrl+x":
		if n := len(s.wizard.Courses()); n > 0 {
			_ = s.wizard.RemoveCourse(n - 1)
		}
		return s, nil
	case "enter":
		if s.courseIdx < fieldExperience {
			s.courseIdx++
			return s, s.enterStep()
		}
		return s, s.addCourse()
	}
	return s, s.forward(msg)
}

func (s *RegisterScreen) addCourse() tea.Cmd {
	f := s.courseFields
	workload, _ := f[fieldWorkload].NumericValue()
	grade, _ := f[fieldGrade].NumericValue()
	exp, _ := f[fieldExperience].NumericValue()

	err := s.wizard.AddCourse(reg.CourseEntry{
		Code:           f[fieldCode].Value(),
		Name:           f[fieldName].Value(),
		WeeklyWorkload: workload,
		FinalGrade:     grade,
		Experience:     exp,
	})
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	s.errMsg = ""
	for i := range s.courseFields {
		s.courseFields[i].Reset()
	}
	s.courseIdx = fieldCode
	return s.enterStep()
}

func (s *RegisterScreen) updateCore(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "ctrl+x":
		if n := len(s.wizard.Core()); n > 0 {
			_ = s.wizard.RemoveCore(n - 1)
		}
		return s, nil
	case "enter":
		if err := s.wizard.AddCore(s.core.Value()); err != nil {
			s.errMsg = err.Error()
			return s, nil
		}
		s.errMsg = ""
		s.core.Reset()
		return s, nil
	}
	return s, s.forward(msg)
}

func (s *RegisterScreen) updateInterests(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		return s, s.submit()
	}

	if !s.picking {
		switch msg.String() {
		case "enter", "right":
			cat := s.categories.Current()
			if err := s.wizard.SelectCategory(cat); err != nil {
				s.errMsg = err.Error()
				return s, nil
			}
			s.errMsg = ""
			s.topics = components.NewMultiChoice("Select Topics", reg.Topics(cat), 10)
			s.picking = true
		case "ctrl+x":
			if n := len(s.wizard.Interests()); n > 0 {
				_ = s.wizard.RemoveInterest(n - 1)
			}
		default:
			s.categories = s.categories.Update(msg)
		}
		return s, nil
	}

	switch msg.String() {
	case "space", "x":
		_ = s.wizard.ToggleTopic(s.topics.Current())
	case "enter":
		if err := s.wizard.AddInterest(); err != nil {
			s.errMsg = err.Error()
			return s, nil
		}
		s.errMsg = ""
		s.picking = false
	default:
		s.topics = s.topics.Update(msg)
	}
	return s, nil
}

// submit sends the registration and signs the student in on success.
func (s *RegisterScreen) submit() tea.Cmd {
	req, err := s.wizard.Payload()
	if err != nil {
		if errors.Is(err, reg.ErrNoInterests) {
			s.errMsg = msgNoInterests
		} else {
			s.errMsg = err.Error()
		}
		return nil
	}
	s.errMsg = ""
	s.loading = true

	client, sessions, logger := s.deps.Client, s.deps.Sessions, s.deps.Log()
	return func() tea.Msg {
		ctx := context.Background()
		if err := client.Register(ctx, req); err != nil {
			logger.Info("registration failed", zap.String("nuid", req.NUID), zap.Error(err))
			return registerFailedMsg{Err: err}
		}
		sess := session.FromRegistration(req)
		if err := sessions.Save(ctx, sess); err != nil {
			logger.Error("registered but could not save session", zap.String("nuid", req.NUID), zap.Error(err))
			return registeredUnsavedMsg{}
		}
		logger.Info("registered", zap.String("nuid", req.NUID), zap.Int("interests", len(req.Interests)))
		return registeredMsg{Session: sess}
	}
}

func registerErrorText(err error) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return api.DisplayMessage(err, msgRegisterFailed)
	}
	return msgRegisterNetwork
}
