package fakebackend

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/optilearn/schedulease/internal/api"
	"github.com/optilearn/schedulease/internal/level"
)

const creditsPerCourse = 4

// Response helpers

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (s *Server) respondOK(w http.ResponseWriter, message string, data any) {
	s.respondJSON(w, http.StatusOK, envelope{Success: true, Message: message, Data: data})
}

// respondDetail mimics the framework error body {"detail": "..."}.
func (s *Server) respondDetail(w http.ResponseWriter, status int, detail string) {
	s.respondJSON(w, status, map[string]string{"detail": detail})
}

func decodeBody(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// lookupUser returns the user named by the {nuid} route param, or writes a
// 404 and returns nil. Callers must hold s.mu.
func (s *Server) lookupUser(w http.ResponseWriter, r *http.Request) *user {
	nuid := chi.URLParam(r, "nuid")
	u, ok := s.users[nuid]
	if !ok {
		s.respondDetail(w, http.StatusNotFound, "User not found")
		return nil
	}
	return u
}

// Handlers

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, api.RootInfo{
		Message: "SchedulEase API",
		Version: Version,
	})
}

type credentials struct {
	NUID string `json:"nuid"`
	Name string `json:"name"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := decodeBody(r, &req); err != nil {
		s.respondDetail(w, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[req.NUID]
	if !ok || !strings.EqualFold(strings.TrimSpace(u.Name), strings.TrimSpace(req.Name)) {
		s.respondDetail(w, http.StatusUnauthorized, "Invalid NUID or name")
		return
	}
	s.respondOK(w, "Login successful", map[string]any{
		"NUID":                   u.NUID,
		"name":                   u.Name,
		"programming_experience": u.ProgrammingExperience,
		"math_experience":        u.MathExperience,
		"interests":              u.Interests,
		"completed_courses":      u.CompletedCourses,
		"core_subjects":          u.CoreSubjects,
	})
}

func (s *Server) handleCheckUser(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := decodeBody(r, &req); err != nil {
		s.respondDetail(w, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[req.NUID]; ok {
		s.respondJSON(w, http.StatusOK, envelope{Success: false, Message: "User with this NUID already exists"})
		return
	}
	s.respondJSON(w, http.StatusOK, envelope{Success: true, Message: "NUID is available"})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req api.RegisterRequest
	if err := decodeBody(r, &req); err != nil {
		s.respondDetail(w, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.NUID) == "" || strings.TrimSpace(req.Name) == "" {
		s.respondDetail(w, http.StatusBadRequest, "NUID and name are required")
		return
	}
	if len(req.Interests) == 0 {
		s.respondDetail(w, http.StatusBadRequest, "At least one interest is required")
		return
	}
	for _, c := range req.CompletedCourses {
		if _, err := strconv.ParseFloat(c.FinalGrade, 64); err != nil {
			s.respondDetail(w, http.StatusBadRequest, fmt.Sprintf("Invalid final grade for %s", c.SubjectCode))
			return
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[req.NUID]; ok {
		s.respondJSON(w, http.StatusOK, envelope{Success: false, Message: "User with this NUID already exists"})
		return
	}
	s.users[req.NUID] = &user{
		NUID:                  req.NUID,
		Name:                  req.Name,
		ProgrammingExperience: req.ProgrammingExperience,
		MathExperience:        req.MathExperience,
		Interests:             req.Interests,
		CompletedCourses:      req.CompletedCourses,
		CoreSubjects:          req.CoreSubjects,
	}
	s.respondJSON(w, http.StatusOK, envelope{Success: true, Message: "User registered successfully"})
}

func (s *Server) handleCourseCatalog(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lookupUser(w, r) == nil {
		return
	}
	s.respondOK(w, "Course catalog retrieved", s.catalog)
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.lookupUser(w, r)
	if u == nil {
		return
	}

	completed := make(map[string]string, len(u.CompletedCourses))
	var outcomes []string
	var gradeSum float64
	graded := 0
	for _, cc := range u.CompletedCourses {
		name := cc.SubjectCode
		if c, ok := s.course(cc.SubjectCode); ok {
			name = c.SubjectName
			outcomes = append(outcomes, c.CourseOutcomes...)
		}
		completed[cc.SubjectCode] = name
		if g, err := strconv.ParseFloat(cc.FinalGrade, 64); err == nil {
			gradeSum += g
			graded++
		}
	}

	grade := "N/A"
	if graded > 0 {
		grade = fmt.Sprintf("%.1f", gradeSum/float64(graded))
	}

	s.respondOK(w, "Progress retrieved", api.Progress{
		TotalCredits:          creditsPerCourse * len(u.CompletedCourses),
		TotalCourses:          len(u.CompletedCourses),
		CurrentGrade:          grade,
		CompletedCourses:      completed,
		ProgrammingExperience: toFloatMap(u.ProgrammingExperience),
		MathExperience:        toFloatMap(u.MathExperience),
		CourseOutcomes:        orEmpty(outcomes),
	})
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.lookupUser(w, r)
	if u == nil {
		return
	}
	recs := s.recommend(u, nil, nil, 2)
	s.respondOK(w, "Recommendations generated", map[string]any{
		"recommendations": brief(recs),
		"summary":         s.semesterSummary(u, recs),
	})
}

func (s *Server) handleRecommendFull(w http.ResponseWriter, r *http.Request) {
	var req api.RecommendFullRequest
	if err := decodeBody(r, &req); err != nil {
		s.respondDetail(w, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.lookupUser(w, r)
	if u == nil {
		return
	}

	recs := s.recommend(u, req.SelectedCourses, req.BlacklistedCourses, 2)

	// A fresh plan gets the next-semester shape.
	if len(req.SelectedCourses) == 0 && len(req.BlacklistedCourses) == 0 {
		sum := s.semesterSummary(u, recs)
		s.respondOK(w, "Recommendations generated", map[string]any{
			"recommendations": brief(recs),
			"summary":         sum,
		})
		return
	}

	burnout, utility := averages(recs)
	s.respondOK(w, "Recommendations generated", api.DegreeOffer{
		Recommendations: recs,
		Summary: api.DegreeSummary{
			TotalRecommended: len(req.SelectedCourses) + len(recs),
			AverageBurnout:   burnout,
			AverageUtility:   utility,
			CompletedCourses: len(u.CompletedCourses),
			SelectedCourses:  len(req.SelectedCourses),
			RemainingCore:    s.remainingCore(u, req.SelectedCourses),
			SemesterNumber:   len(req.SelectedCourses)/2 + 1,
		},
	})
}

func (s *Server) handleSaveSchedule(w http.ResponseWriter, r *http.Request) {
	var req api.SaveScheduleRequest
	if err := decodeBody(r, &req); err != nil {
		s.respondDetail(w, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		s.respondDetail(w, http.StatusBadRequest, "Schedule name is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.lookupUser(w, r)
	if u == nil {
		return
	}

	courses := make([]api.ScheduledCourse, 0, len(req.Courses))
	for _, id := range req.Courses {
		c, ok := s.course(id)
		if !ok {
			s.respondDetail(w, http.StatusBadRequest, fmt.Sprintf("Unknown course %s", id))
			return
		}
		courses = append(courses, scheduled(s.score(u, c)))
	}

	created := s.now().Format("2006-01-02T15:04:05.000000")
	list := s.schedules[u.NUID]
	for _, existing := range list {
		if existing.Name != name {
			continue
		}
		prev, _ := json.Marshal(existing.Courses)
		existing.History = append(existing.History, api.HistoryEntry{
			Timestamp:     created,
			PreviousState: prev,
		})
		existing.Courses = courses
		existing.Metrics = metrics(courses)
		s.respondJSON(w, http.StatusOK, envelope{Success: true, Message: "Schedule updated successfully"})
		return
	}

	s.schedules[u.NUID] = append(list, &api.Schedule{
		ID:        uuid.NewString(),
		Name:      name,
		Courses:   courses,
		CreatedAt: created,
		Metrics:   metrics(courses),
		History:   []api.HistoryEntry{},
	})
	s.respondJSON(w, http.StatusOK, envelope{Success: true, Message: "Schedule saved successfully"})
}

func (s *Server) handleSchedules(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.lookupUser(w, r)
	if u == nil {
		return
	}
	out := make([]api.Schedule, 0, len(s.schedules[u.NUID]))
	for _, sch := range s.schedules[u.NUID] {
		out = append(out, *sch)
	}
	s.respondOK(w, "Schedules retrieved", out)
}

func (s *Server) handleDeleteSchedule(w http.ResponseWriter, r *http.Request) {
	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil {
		s.respondDetail(w, http.StatusBadRequest, "Invalid schedule name")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.lookupUser(w, r)
	if u == nil {
		return
	}
	list := s.schedules[u.NUID]
	idx := slices.IndexFunc(list, func(sch *api.Schedule) bool { return sch.Name == name })
	if idx < 0 {
		s.respondDetail(w, http.StatusNotFound, "Schedule not found")
		return
	}
	s.schedules[u.NUID] = slices.Delete(list, idx, idx+1)
	s.respondJSON(w, http.StatusOK, envelope{Success: true, Message: "Schedule deleted successfully"})
}

func (s *Server) handleBurnout(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.lookupUser(w, r)
	if u == nil {
		return
	}

	// Analyse the most recent schedule, or the next suggested semester.
	var recs []api.Recommendation
	if list := s.schedules[u.NUID]; len(list) > 0 {
		for _, sc := range list[len(list)-1].Courses {
			if c, ok := s.course(sc.SubjectID); ok {
				recs = append(recs, s.score(u, c))
			}
		}
	} else {
		recs = s.recommend(u, nil, nil, 2)
	}

	avg, _ := averages(recs)
	overall := level.RiskBand(avg)

	var total, assignments, exams, unmet int
	dist := make([]api.WorkloadEntry, 0, len(recs))
	for _, rec := range recs {
		hours := 3 + rec.AssignmentCount + 2*rec.ExamCount
		total += hours
		assignments += rec.AssignmentCount
		exams += rec.ExamCount
		unmet += rec.Prerequisites
		status := "normal"
		if hours > 15 {
			status = "heavy"
		}
		dist = append(dist, api.WorkloadEntry{CourseID: rec.SubjectID, HoursPerWeek: hours, Status: status})
	}

	trend := "stable"
	switch {
	case total > 30:
		trend = "increasing"
	case total < 15 && len(recs) > 0:
		trend = "decreasing"
	}

	difficulty := "Moderate"
	if exams > 2*len(recs) || overall == level.High {
		difficulty = "High"
	}

	s.respondJSON(w, http.StatusOK, api.BurnoutAnalysis{
		OverallBurnoutRisk: api.LevelDescription{
			Level:       overall.String(),
			Description: fmt.Sprintf("Average burnout risk across %d courses is %d%%", len(recs), level.Percent(avg)),
		},
		WeeklyStudyHours: api.StudyHours{Total: total, Trend: trend},
		CourseDifficulty: api.LevelDescription{
			Level:       difficulty,
			Description: fmt.Sprintf("%d exams and %d assignments this term", exams, assignments),
		},
		WorkloadDistribution: dist,
		StressFactors: api.StressFactors{
			AssignmentDeadlines: bandOf(assignments, 8, 14),
			CourseComplexity:    difficulty,
			WeeklyWorkload:      bandOf(total, 15, 30),
			PrerequisiteMatch:   bandOf(unmet, 0, 1),
		},
	})
}

// Scoring

func (s *Server) course(id string) (api.Course, bool) {
	for _, c := range s.catalog {
		if c.SubjectID == id {
			return c, true
		}
	}
	return api.Course{}, false
}

func completedSet(u *user) map[string]bool {
	done := make(map[string]bool, len(u.CompletedCourses))
	for _, cc := range u.CompletedCourses {
		done[cc.SubjectCode] = true
	}
	return done
}

// score rates one course for u. Risk grows with coursework and unmet
// prerequisites and shrinks with matching language experience.
func (s *Server) score(u *user, c api.Course) api.Recommendation {
	done := completedSet(u)

	unmet := 0
	for _, p := range c.Prerequisite {
		if !done[p] {
			unmet++
		}
	}
	known := 0
	for _, lang := range c.ProgrammingKnowledgeNeeded {
		if u.ProgrammingExperience[lang] >= 3 {
			known++
		}
	}

	risk := float64(c.AssignmentCount+2*c.ExamCount)/14 + 0.15*float64(unmet) - 0.1*float64(known)
	risk = round2(math.Max(0.05, math.Min(0.95, risk)))

	utility := 0.5 + 0.05*float64(len(c.CourseOutcomes))
	if c.IsCore {
		utility += 0.3
	}
	utility = round2(math.Min(1, utility))

	reasons := []string{}
	if c.IsCore {
		reasons = append(reasons, "Core requirement")
	}
	if known > 0 {
		reasons = append(reasons, "Matches your programming experience")
	}
	if unmet > 0 {
		reasons = append(reasons, fmt.Sprintf("%d prerequisite(s) not yet completed", unmet))
	}
	if len(reasons) == 0 {
		reasons = append(reasons, "Broadens your skill set")
	}

	return api.Recommendation{
		SubjectID:       c.SubjectID,
		SubjectName:     c.SubjectName,
		BurnoutRisk:     risk,
		WorkloadLevel:   level.RiskBand(risk).String(),
		Prerequisites:   unmet,
		Reasons:         reasons,
		UtilityScore:    utility,
		AssignmentCount: c.AssignmentCount,
		ExamCount:       c.ExamCount,
	}
}

// briefRecommendation is the next-semester wire shape, which carries only
// the leading reason as a plain string.
type briefRecommendation struct {
	api.Recommendation
	Reasons string `json:"reasons"`
}

func brief(recs []api.Recommendation) []briefRecommendation {
	out := make([]briefRecommendation, len(recs))
	for i, r := range recs {
		out[i] = briefRecommendation{Recommendation: r}
		if len(r.Reasons) > 0 {
			out[i].Reasons = r.Reasons[0]
		}
	}
	return out
}

// recommend returns up to n courses not completed, selected or
// blacklisted. Core courses come first, then lower risk.
func (s *Server) recommend(u *user, selected, blacklisted []string, n int) []api.Recommendation {
	skip := completedSet(u)
	for _, id := range selected {
		skip[id] = true
	}
	for _, id := range blacklisted {
		skip[id] = true
	}

	type candidate struct {
		rec  api.Recommendation
		core bool
	}
	var cands []candidate
	for _, c := range s.catalog {
		if skip[c.SubjectID] {
			continue
		}
		cands = append(cands, candidate{rec: s.score(u, c), core: c.IsCore})
	}
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].core != cands[j].core {
			return cands[i].core
		}
		return cands[i].rec.BurnoutRisk < cands[j].rec.BurnoutRisk
	})

	out := make([]api.Recommendation, 0, n)
	for i := 0; i < len(cands) && i < n; i++ {
		out = append(out, cands[i].rec)
	}
	return out
}

func (s *Server) semesterSummary(u *user, recs []api.Recommendation) api.SemesterSummary {
	burnout, _ := averages(recs)
	return api.SemesterSummary{
		TotalCourses:     len(recs),
		AverageBurnout:   burnout,
		CompletedCourses: len(u.CompletedCourses),
		RemainingCore:    s.remainingCore(u, nil),
	}
}

func (s *Server) remainingCore(u *user, selected []string) int {
	done := completedSet(u)
	for _, id := range selected {
		done[id] = true
	}
	n := 0
	for _, id := range u.CoreSubjects {
		if !done[id] {
			n++
		}
	}
	return n
}

func averages(recs []api.Recommendation) (burnout, utility float64) {
	if len(recs) == 0 {
		return 0, 0
	}
	for _, r := range recs {
		burnout += r.BurnoutRisk
		utility += r.UtilityScore
	}
	n := float64(len(recs))
	return round2(burnout / n), round2(utility / n)
}

func scheduled(r api.Recommendation) api.ScheduledCourse {
	return api.ScheduledCourse{
		SubjectID:       r.SubjectID,
		SubjectName:     r.SubjectName,
		BurnoutRisk:     r.BurnoutRisk,
		UtilityScore:    r.UtilityScore,
		WorkloadLevel:   r.WorkloadLevel,
		AssignmentCount: r.AssignmentCount,
		ExamCount:       r.ExamCount,
	}
}

func metrics(courses []api.ScheduledCourse) api.ScheduleMetrics {
	m := api.ScheduleMetrics{TotalCourses: len(courses), WorkloadAssessment: "N/A"}
	if len(courses) == 0 {
		return m
	}
	for _, c := range courses {
		m.AverageBurnout += c.BurnoutRisk
		m.AverageUtility += c.UtilityScore
	}
	n := float64(len(courses))
	m.AverageBurnout = round2(m.AverageBurnout / n)
	m.AverageUtility = round2(m.AverageUtility / n)
	switch level.RiskBand(m.AverageBurnout) {
	case level.High:
		m.WorkloadAssessment = "Heavy"
	case level.Medium:
		m.WorkloadAssessment = "Moderate"
	default:
		m.WorkloadAssessment = "Light"
	}
	return m
}

func bandOf(v, low, high int) string {
	switch {
	case v > high:
		return "High"
	case v > low:
		return "Medium"
	default:
		return "Low"
	}
}

func toFloatMap(m map[string]int) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = float64(v)
	}
	return out
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
