package register

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func confirmed(t *testing.T) *Wizard {
	t.Helper()
	w := New()
	w.SetBasics(" 001234567 ", " Alex Kim ")
	require.NoError(t, w.ConfirmBasics())
	return w
}

func TestBasicsRequired(t *testing.T) {
	w := New()
	w.SetBasics("  ", "Alex")

	err := w.ConfirmBasics()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "NUID", verr.Field)
	assert.Equal(t, "NUID is required", verr.Message)
	assert.Equal(t, StepBasics, w.Step())

	w.SetBasics("001", "")
	require.ErrorAs(t, w.ConfirmBasics(), &verr)
	assert.Equal(t, "Full name is required", verr.Message)

	assert.ErrorIs(t, w.Next(), ErrNeedsCheck, "step 1 only advances after the server check")
}

func TestNavigationKeepsData(t *testing.T) {
	w := confirmed(t)
	assert.Equal(t, StepProgramming, w.Step())
	assert.Equal(t, Basics{NUID: "001234567", Name: "Alex Kim"}, w.Basics())

	require.NoError(t, w.RateLanguage("Go", 4))
	require.NoError(t, w.Next())
	require.NoError(t, w.RateMath("Logic", 2))
	require.NoError(t, w.Next())
	require.NoError(t, w.Next())
	require.NoError(t, w.AddCore("CS5800"))
	require.NoError(t, w.Next())
	assert.Equal(t, StepInterests, w.Step())
	assert.ErrorIs(t, w.Next(), ErrLastStep)

	for i := 0; i < 10; i++ {
		w.Back()
	}
	assert.Equal(t, StepBasics, w.Step())
	assert.Equal(t, 4, w.LanguageRating("Go"))
	assert.Equal(t, 2, w.MathRating("Logic"))
	assert.Equal(t, []string{"CS5800"}, w.Core())
}

func TestRatings(t *testing.T) {
	w := New()

	require.NoError(t, w.RateLanguage("Python", 5))
	assert.Equal(t, 5, w.LanguageRating("Python"))
	require.NoError(t, w.RateLanguage("Python", 0))
	assert.Equal(t, 0, w.LanguageRating("Python"))

	assert.ErrorIs(t, w.RateLanguage("Cobol", 3), ErrUnknownItem)
	assert.ErrorIs(t, w.RateLanguage("Go", 6), ErrRating)
	assert.ErrorIs(t, w.RateMath("Calculus", -1), ErrRating)
	assert.ErrorIs(t, w.RateMath("Topology", 1), ErrUnknownItem)
}

func TestCourses(t *testing.T) {
	w := New()
	good := CourseEntry{Code: " CS5010 ", Name: "PDP", WeeklyWorkload: 12, FinalGrade: 93, Experience: 4}
	require.NoError(t, w.AddCourse(good))
	assert.Equal(t, "CS5010", w.Courses()[0].Code)

	tests := []struct {
		name  string
		entry CourseEntry
		msg   string
	}{
		{"missing code", CourseEntry{Name: "x", Experience: 1}, "Course code is required"},
		{"missing name", CourseEntry{Code: "CS1", Experience: 1}, "Course name is required"},
		{"workload too high", CourseEntry{Code: "CS1", Name: "x", WeeklyWorkload: 169, Experience: 1}, "Weekly workload must be 168 or less"},
		{"negative grade", CourseEntry{Code: "CS1", Name: "x", FinalGrade: -1, Experience: 1}, "Final grade must be 0 or greater"},
		{"grade too high", CourseEntry{Code: "CS1", Name: "x", FinalGrade: 101, Experience: 1}, "Final grade must be 100 or less"},
		{"unrated", CourseEntry{Code: "CS1", Name: "x"}, "Experience rating must be 1 or greater"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var verr *ValidationError
			require.ErrorAs(t, w.AddCourse(tt.entry), &verr)
			assert.Equal(t, tt.msg, verr.Message)
		})
	}
	assert.Len(t, w.Courses(), 1)

	require.NoError(t, w.AddCourse(CourseEntry{Code: "CS5800", Name: "Algo", Experience: 3}))
	require.NoError(t, w.RemoveCourse(0))
	assert.Equal(t, "CS5800", w.Courses()[0].Code)
	assert.ErrorIs(t, w.RemoveCourse(5), ErrIndex)
}

func TestCoreCodes(t *testing.T) {
	w := New()
	for _, code := range []string{"CS5800", " ds5220 ", "INFO6105"} {
		require.NoError(t, w.AddCore(code), code)
	}
	assert.Equal(t, []string{"CS5800", "ds5220", "INFO6105"}, w.Core())

	for _, code := range []string{"", "C5800", "CS580", "CS58000", "5800CS", "CS 5800"} {
		var verr *ValidationError
		require.ErrorAs(t, w.AddCore(code), &verr, code)
		assert.Equal(t, "Subject code must look like CS5010", verr.Message)
	}

	require.NoError(t, w.RemoveCore(1))
	assert.Equal(t, []string{"CS5800", "INFO6105"}, w.Core())
}

func TestInterests(t *testing.T) {
	w := New()

	assert.ErrorIs(t, w.AddInterest(), ErrIncompleteInterest, "no category")
	require.NoError(t, w.SelectCategory("web"))
	assert.ErrorIs(t, w.AddInterest(), ErrIncompleteInterest, "no topics")

	require.NoError(t, w.ToggleTopic("React"))
	require.NoError(t, w.ToggleTopic("CSS"))
	require.NoError(t, w.ToggleTopic("CSS"))
	assert.True(t, w.TopicSelected("React"))
	assert.False(t, w.TopicSelected("CSS"))
	assert.ErrorIs(t, w.ToggleTopic("Kubernetes"), ErrUnknownItem, "topic from another category")

	require.NoError(t, w.AddInterest())
	cat, topics := w.Draft()
	assert.Empty(t, cat, "draft is reset")
	assert.Empty(t, topics)

	require.NoError(t, w.SelectCategory("javascript"))
	require.NoError(t, w.ToggleTopic("React"))
	require.NoError(t, w.ToggleTopic("Vue"))
	require.NoError(t, w.AddInterest())

	assert.Equal(t, []Interest{
		{Category: "web", Topics: []string{"React"}},
		{Category: "javascript", Topics: []string{"React", "Vue"}},
	}, w.Interests())

	assert.ErrorIs(t, w.SelectCategory("biology"), ErrUnknownItem)
}

func TestPayload(t *testing.T) {
	w := confirmed(t)

	_, err := w.Payload()
	assert.ErrorIs(t, err, ErrNoInterests)

	require.NoError(t, w.RateLanguage("Go", 4))
	require.NoError(t, w.RateLanguage("Rust", 2))
	require.NoError(t, w.RateLanguage("Rust", 0))
	require.NoError(t, w.RateMath("Probability", 3))
	require.NoError(t, w.AddCourse(CourseEntry{Code: "CS5010", Name: "PDP", WeeklyWorkload: 15, FinalGrade: 88, Experience: 5}))
	require.NoError(t, w.AddCore("CS5800"))
	require.NoError(t, w.SelectCategory("web"))
	require.NoError(t, w.ToggleTopic("React"))
	require.NoError(t, w.AddInterest())
	require.NoError(t, w.SelectCategory("javascript"))
	require.NoError(t, w.ToggleTopic("React"))
	require.NoError(t, w.AddInterest())

	req, err := w.Payload()
	require.NoError(t, err)

	data, err := json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"nuid": "001234567",
		"name": "Alex Kim",
		"interests": ["React", "React"],
		"programming_experience": {"Go": 4},
		"math_experience": {"Probability": 3},
		"completed_courses": [{
			"subject_code": "CS5010",
			"course_name": "PDP",
			"weekly_workload": 15,
			"final_grade": "88",
			"experience_rating": 5
		}],
		"core_subjects": ["CS5800"]
	}`, string(data))
}

func TestPayloadEmptyOptionalSections(t *testing.T) {
	w := confirmed(t)
	require.NoError(t, w.SelectCategory("go"))
	require.NoError(t, w.ToggleTopic("Go"))
	require.NoError(t, w.AddInterest())

	req, err := w.Payload()
	require.NoError(t, err)
	data, err := json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"nuid": "001234567",
		"name": "Alex Kim",
		"interests": ["Go"],
		"programming_experience": {},
		"math_experience": {},
		"completed_courses": [],
		"core_subjects": []
	}`, string(data))
}

func TestCatalogs(t *testing.T) {
	assert.Len(t, Languages, 15)
	assert.Len(t, MathTopics, 28)
	assert.Len(t, Groups, 2)
	assert.Len(t, Groups[0].Categories, 20)
	assert.Len(t, Groups[1].Categories, 12)
	for _, c := range Categories() {
		assert.NotEmpty(t, Topics(c), c)
	}
	assert.Equal(t, "Technical Domains", Title("technical-domains"))
	assert.Equal(t, "Human Computer Interaction", Title("human-computer interaction"))
}
