package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// UserProfile is the stored user document returned by /auth/login.
type UserProfile struct {
	NUID                  string             `json:"NUID,omitempty"`
	Name                  string             `json:"name,omitempty"`
	ProgrammingExperience map[string]float64 `json:"programming_experience,omitempty"`
	MathExperience        map[string]float64 `json:"math_experience,omitempty"`
	Interests             []string           `json:"interests,omitempty"`
	CoreSubjects          []string           `json:"core_subjects,omitempty"`

	// Raw is the full document as sent by the backend.
	Raw json.RawMessage `json:"-"`
}

// CompletedCourse is a course the student reports having finished.
type CompletedCourse struct {
	SubjectCode      string `json:"subject_code"`
	CourseName       string `json:"course_name"`
	WeeklyWorkload   int    `json:"weekly_workload"`
	FinalGrade       string `json:"final_grade"`
	ExperienceRating int    `json:"experience_rating"`
}

// RegisterRequest is the aggregate payload of the registration wizard.
type RegisterRequest struct {
	NUID                  string            `json:"nuid"`
	Name                  string            `json:"name"`
	Interests             []string          `json:"interests"`
	ProgrammingExperience map[string]int    `json:"programming_experience"`
	MathExperience        map[string]int    `json:"math_experience"`
	CompletedCourses      []CompletedCourse `json:"completed_courses"`
	CoreSubjects          []string          `json:"core_subjects"`
}

// Course is one entry of the course catalog.
type Course struct {
	SubjectID                  string   `json:"subject_id"`
	SubjectName                string   `json:"subject_name"`
	Description                string   `json:"description"`
	IsCore                     bool     `json:"is_core"`
	EnrollmentDemand           string   `json:"enrollment_demand"`
	AssignmentCount            int      `json:"assignment_count"`
	ExamCount                  int      `json:"exam_count"`
	CourseOutcomes             []string `json:"course_outcomes"`
	ProgrammingKnowledgeNeeded []string `json:"programming_knowledge_needed"`
	MathRequirements           []string `json:"math_requirements"`
	Prerequisite               []string `json:"prerequisite"`
}

// Recommendation is a course suggested by the recommender.
type Recommendation struct {
	SubjectID     string  `json:"subject_id"`
	SubjectName   string  `json:"subject_name"`
	BurnoutRisk   float64 `json:"burnout_risk"`
	WorkloadLevel string  `json:"workload_level"`
	Prerequisites int     `json:"prerequisites"`
	Reasons       Reasons `json:"reasons"`

	UtilityScore    float64 `json:"utility_score,omitempty"`
	AssignmentCount int     `json:"assignment_count,omitempty"`
	ExamCount       int     `json:"exam_count,omitempty"`
}

// Reasons explains a recommendation. The next-semester endpoint sends a
// single string and the full-degree endpoint sends a list; both decode
// here.
type Reasons []string

func (r *Reasons) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*r = nil
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*r = nil
		} else {
			*r = Reasons{s}
		}
		return nil
	case len(data) > 0 && data[0] == '[':
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*r = list
		return nil
	}
	return fmt.Errorf("reasons: want string or list of strings, got %s", data)
}

// String joins the reasons for display.
func (r Reasons) String() string {
	return strings.Join(r, "; ")
}

// SemesterSummary accompanies a next-semester recommendation.
type SemesterSummary struct {
	TotalCourses     int     `json:"total_courses"`
	AverageBurnout   float64 `json:"average_burnout"`
	CompletedCourses int     `json:"completed_courses"`
	RemainingCore    int     `json:"remaining_core"`
}

// NextSemester is the response of GET /recommendations/{nuid}.
type NextSemester struct {
	Recommendations []Recommendation `json:"recommendations"`
	Summary         SemesterSummary  `json:"summary"`
}

// DegreeSummary accompanies an iterative full-degree offer. The first
// offer of a plan carries the next-semester summary shape, so both sets
// of fields are optional.
type DegreeSummary struct {
	TotalRecommended int     `json:"total_recommended"`
	TotalCourses     int     `json:"total_courses"`
	AverageBurnout   float64 `json:"average_burnout"`
	AverageUtility   float64 `json:"average_utility"`
	CompletedCourses int     `json:"completed_courses"`
	SelectedCourses  int     `json:"selected_courses"`
	RemainingCore    int     `json:"remaining_core"`
	SemesterNumber   int     `json:"semester_number"`
}

// DegreeOffer is the response of POST /recommend-full/{nuid}.
type DegreeOffer struct {
	Recommendations []Recommendation `json:"recommendations"`
	Summary         DegreeSummary    `json:"summary"`
}

// RecommendFullRequest is the body of POST /recommend-full/{nuid}.
type RecommendFullRequest struct {
	SelectedCourses    []string `json:"selected_courses"`
	BlacklistedCourses []string `json:"blacklisted_courses"`
}

// SaveScheduleRequest is the body of POST /save-schedule/{nuid}.
type SaveScheduleRequest struct {
	Name    string   `json:"name"`
	Courses []string `json:"courses"`
}

// ScheduledCourse is a course inside a saved schedule.
type ScheduledCourse struct {
	SubjectID       string  `json:"subject_id"`
	SubjectName     string  `json:"subject_name"`
	BurnoutRisk     float64 `json:"burnout_risk"`
	UtilityScore    float64 `json:"utility_score"`
	WorkloadLevel   string  `json:"workload_level"`
	AssignmentCount int     `json:"assignment_count"`
	ExamCount       int     `json:"exam_count"`
}

// ScheduleMetrics are the backend's aggregates for a saved schedule.
type ScheduleMetrics struct {
	TotalCourses       int     `json:"total_courses"`
	AverageBurnout     float64 `json:"average_burnout"`
	AverageUtility     float64 `json:"average_utility"`
	WorkloadAssessment string  `json:"workload_assessment"`
}

// HistoryEntry records a previous version of a schedule.
type HistoryEntry struct {
	Timestamp     string          `json:"timestamp"`
	PreviousState json.RawMessage `json:"previous_state"`
}

// Schedule is a saved, named course selection.
type Schedule struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Courses   []ScheduledCourse `json:"courses"`
	CreatedAt string            `json:"created_at"`
	Metrics   ScheduleMetrics   `json:"metrics"`
	History   []HistoryEntry    `json:"history,omitempty"`
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999",
	"2006-01-02",
}

// Created parses CreatedAt. The backend emits naive ISO timestamps.
func (s Schedule) Created() (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s.CreatedAt); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// LevelDescription is a rated metric with explanatory text.
type LevelDescription struct {
	Level       string `json:"level"`
	Description string `json:"description"`
}

// StudyHours is the weekly study-hour estimate.
type StudyHours struct {
	Total int    `json:"total"`
	Trend string `json:"trend"`
}

// StressFactors are the four rated contributors to burnout.
type StressFactors struct {
	AssignmentDeadlines string `json:"assignment_deadlines"`
	CourseComplexity    string `json:"course_complexity"`
	WeeklyWorkload      string `json:"weekly_workload"`
	PrerequisiteMatch   string `json:"prerequisite_match"`
}

// WorkloadEntry is the estimated weekly load of one course.
type WorkloadEntry struct {
	CourseID     string `json:"course_id"`
	HoursPerWeek int    `json:"hours_per_week"`
	Status       string `json:"status"`
}

// BurnoutAnalysis is the response of GET /burnout-analysis/{nuid}.
type BurnoutAnalysis struct {
	OverallBurnoutRisk   LevelDescription `json:"overall_burnout_risk"`
	WeeklyStudyHours     StudyHours       `json:"weekly_study_hours"`
	CourseDifficulty     LevelDescription `json:"course_difficulty"`
	WorkloadDistribution []WorkloadEntry  `json:"workload_distribution,omitempty"`
	StressFactors        StressFactors    `json:"stress_factors"`
}

// Progress is the data of GET /progress/{nuid}.
type Progress struct {
	TotalCredits          int                `json:"total_credits"`
	TotalCourses          int                `json:"total_courses"`
	CurrentGrade          string             `json:"current_grade"`
	CompletedCourses      map[string]string  `json:"completed_courses"`
	ProgrammingExperience map[string]float64 `json:"programming_experience"`
	MathExperience        map[string]float64 `json:"math_experience"`
	CourseOutcomes        []string           `json:"course_outcomes"`
}

// RootInfo is the response of GET /.
type RootInfo struct {
	Message string `json:"message"`
	Version string `json:"version"`
}
