// Package register holds the registration wizard: six steps of form state
// that end in a single /auth/register payload.
package register

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/optilearn/schedulease/internal/api"
)

// Step is a wizard page, numbered from 1.
type Step int

const (
	StepBasics Step = iota + 1
	StepProgramming
	StepMath
	StepCourses
	StepCore
	StepInterests
)

// Steps is the number of wizard pages.
const Steps = int(StepInterests)

func (s Step) Title() string {
	switch s {
	case StepBasics:
		return "Basic Information"
	case StepProgramming:
		return "Programming Experience"
	case StepMath:
		return "Math Experience"
	case StepCourses:
		return "Completed Courses"
	case StepCore:
		return "Core Requirements"
	case StepInterests:
		return "Interests"
	}
	return ""
}

// MaxRating is the top of the 1-5 proficiency scale. Zero means unrated.
const MaxRating = 5

var (
	ErrNeedsCheck         = errors.New("basic information must be checked with the server first")
	ErrLastStep           = errors.New("already on the last step")
	ErrNoInterests        = errors.New("select at least one interest area before submitting")
	ErrIncompleteInterest = errors.New("choose a category and at least one topic")
	ErrUnknownItem        = errors.New("unknown item")
	ErrRating             = fmt.Errorf("rating must be between 0 and %d", MaxRating)
	ErrIndex              = errors.New("no entry at that position")
)

// Basics is the step 1 form.
type Basics struct {
	NUID string `json:"nuid" label:"NUID" validate:"notblank"`
	Name string `json:"name" label:"Full name" validate:"notblank"`
}

// CourseEntry is one completed course in step 4.
type CourseEntry struct {
	Code           string `label:"Course code" validate:"notblank"`
	Name           string `label:"Course name" validate:"notblank"`
	WeeklyWorkload int    `label:"Weekly workload" validate:"min=0,max=168"`
	FinalGrade     int    `label:"Final grade" validate:"min=0,max=100"`
	Experience     int    `label:"Experience rating" validate:"min=1,max=5"`
}

type coreEntry struct {
	Code string `label:"Subject code" validate:"subject_code"`
}

// Interest is a category with the topics chosen from it.
type Interest struct {
	Category string
	Topics   []string
}

// Wizard is the registration form state. Moving between steps never
// discards entered data.
type Wizard struct {
	step        Step
	basics      Basics
	programming map[string]int
	math        map[string]int
	courses     []CourseEntry
	core        []string
	interests   []Interest

	category string
	selected []string
}

func New() *Wizard {
	return &Wizard{
		step:        StepBasics,
		programming: map[string]int{},
		math:        map[string]int{},
	}
}

func (w *Wizard) Step() Step { return w.step }

func (w *Wizard) Basics() Basics { return w.basics }

// SetBasics stores the step 1 fields, trimmed.
func (w *Wizard) SetBasics(nuid, name string) {
	w.basics = Basics{NUID: strings.TrimSpace(nuid), Name: strings.TrimSpace(name)}
}

// ValidateBasics checks the step 1 fields locally.
func (w *Wizard) ValidateBasics() error {
	return check(w.basics)
}

// ConfirmBasics advances past step 1 once the server accepted the NUID.
func (w *Wizard) ConfirmBasics() error {
	if w.step != StepBasics {
		return nil
	}
	if err := w.ValidateBasics(); err != nil {
		return err
	}
	w.step = StepProgramming
	return nil
}

// Next advances one step. Step 1 advances only through ConfirmBasics.
func (w *Wizard) Next() error {
	switch w.step {
	case StepBasics:
		return ErrNeedsCheck
	case StepInterests:
		return ErrLastStep
	}
	w.step++
	return nil
}

// Back returns to the previous step. It is a no-op on step 1.
func (w *Wizard) Back() {
	if w.step > StepBasics {
		w.step--
	}
}

func rate(m map[string]int, catalog []string, item string, rating int) error {
	if !slices.Contains(catalog, item) {
		return fmt.Errorf("%w: %s", ErrUnknownItem, item)
	}
	if rating < 0 || rating > MaxRating {
		return ErrRating
	}
	if rating == 0 {
		delete(m, item)
		return nil
	}
	m[item] = rating
	return nil
}

// RateLanguage sets the 1-5 rating of a language. Zero clears it.
func (w *Wizard) RateLanguage(lang string, rating int) error {
	return rate(w.programming, Languages, lang, rating)
}

// RateMath sets the 1-5 rating of a math topic. Zero clears it.
func (w *Wizard) RateMath(topic string, rating int) error {
	return rate(w.math, MathTopics, topic, rating)
}

func (w *Wizard) LanguageRating(lang string) int { return w.programming[lang] }

func (w *Wizard) MathRating(topic string) int { return w.math[topic] }

// AddCourse validates and appends a completed course.
func (w *Wizard) AddCourse(c CourseEntry) error {
	c.Code = strings.TrimSpace(c.Code)
	c.Name = strings.TrimSpace(c.Name)
	if err := check(c); err != nil {
		return err
	}
	w.courses = append(w.courses, c)
	return nil
}

func (w *Wizard) RemoveCourse(i int) error {
	if i < 0 || i >= len(w.courses) {
		return ErrIndex
	}
	w.courses = slices.Delete(w.courses, i, i+1)
	return nil
}

func (w *Wizard) Courses() []CourseEntry { return w.courses }

// AddCore validates and appends a core requirement subject code.
func (w *Wizard) AddCore(code string) error {
	entry := coreEntry{Code: strings.TrimSpace(code)}
	if err := check(entry); err != nil {
		return err
	}
	w.core = append(w.core, entry.Code)
	return nil
}

func (w *Wizard) RemoveCore(i int) error {
	if i < 0 || i >= len(w.core) {
		return ErrIndex
	}
	w.core = slices.Delete(w.core, i, i+1)
	return nil
}

func (w *Wizard) Core() []string { return w.core }

// SelectCategory starts a new interest draft. Any toggled topics are
// cleared.
func (w *Wizard) SelectCategory(category string) error {
	if Topics(category) == nil {
		return fmt.Errorf("%w: %s", ErrUnknownItem, category)
	}
	w.category = category
	w.selected = nil
	return nil
}

// ToggleTopic flips a topic of the drafted category.
func (w *Wizard) ToggleTopic(topic string) error {
	if w.category == "" || !slices.Contains(Topics(w.category), topic) {
		return fmt.Errorf("%w: %s", ErrUnknownItem, topic)
	}
	if i := slices.Index(w.selected, topic); i >= 0 {
		w.selected = slices.Delete(w.selected, i, i+1)
		return nil
	}
	w.selected = append(w.selected, topic)
	return nil
}

// Draft returns the category and topics of the interest being built.
func (w *Wizard) Draft() (string, []string) { return w.category, w.selected }

// TopicSelected reports whether topic is toggled on in the draft.
func (w *Wizard) TopicSelected(topic string) bool {
	return slices.Contains(w.selected, topic)
}

// AddInterest commits the draft as a (category, topics) pair.
func (w *Wizard) AddInterest() error {
	if w.category == "" || len(w.selected) == 0 {
		return ErrIncompleteInterest
	}
	w.interests = append(w.interests, Interest{
		Category: w.category,
		Topics:   slices.Clone(w.selected),
	})
	w.category = ""
	w.selected = nil
	return nil
}

func (w *Wizard) RemoveInterest(i int) error {
	if i < 0 || i >= len(w.interests) {
		return ErrIndex
	}
	w.interests = slices.Delete(w.interests, i, i+1)
	return nil
}

func (w *Wizard) Interests() []Interest { return w.interests }

// Payload builds the registration request. Topics are flattened in pair
// order; a topic chosen under two categories appears twice.
func (w *Wizard) Payload() (api.RegisterRequest, error) {
	if err := w.ValidateBasics(); err != nil {
		return api.RegisterRequest{}, err
	}
	if len(w.interests) == 0 {
		return api.RegisterRequest{}, ErrNoInterests
	}

	interests := []string{}
	for _, in := range w.interests {
		interests = append(interests, in.Topics...)
	}

	courses := make([]api.CompletedCourse, 0, len(w.courses))
	for _, c := range w.courses {
		courses = append(courses, api.CompletedCourse{
			SubjectCode:      c.Code,
			CourseName:       c.Name,
			WeeklyWorkload:   c.WeeklyWorkload,
			FinalGrade:       strconv.Itoa(c.FinalGrade),
			ExperienceRating: c.Experience,
		})
	}

	core := append([]string{}, w.core...)

	return api.RegisterRequest{
		NUID:                  w.basics.NUID,
		Name:                  w.basics.Name,
		Interests:             interests,
		ProgrammingExperience: copyRatings(w.programming),
		MathExperience:        copyRatings(w.math),
		CompletedCourses:      courses,
		CoreSubjects:          core,
	}, nil
}

func copyRatings(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
