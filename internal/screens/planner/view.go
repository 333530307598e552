package planner

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/optilearn/schedulease/internal/api"
	"github.com/optilearn/schedulease/internal/level"
	plan "github.com/optilearn/schedulease/internal/planner"
	"github.com/optilearn/schedulease/internal/ui/components"
	"github.com/optilearn/schedulease/internal/ui/layout"
	"github.com/optilearn/schedulease/internal/ui/theme"
)

func (s *PlannerScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var parts []string

	head := theme.Subtitle.Render("Generate optimized course recommendations based on your profile")
	focused := -1
	switch s.view {
	case viewSemester:
		focused = 0
	case viewDegree:
		focused = 1
	}
	buttons := components.ButtonRow([]string{"[n] Generate Next Semester Courses", "[d] Plan Full Degree (2 Years)"}, focused)
	parts = append(parts, head+"\n\n"+buttons)

	if s.builder.Complete() {
		done := lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render("Course Selection Complete!") + "\n" +
			theme.Body.Render("You have successfully planned your courses for all four semesters.") + "\n" +
			theme.Hint.Render("Press e to Export to Profile")
		parts = append(parts, components.Card(done, cw))
	}

	if s.naming {
		parts = append(parts, s.viewNaming(cw))
	}

	if s.loading() {
		parts = append(parts, layout.RenderLoading("Loading...", cw))
	}

	switch s.view {
	case viewSemester:
		parts = append(parts, s.viewSemester(cw)...)
	case viewDegree:
		parts = append(parts, s.viewDegree(cw)...)
	}

	body := lipgloss.JoinVertical(lipgloss.Left, parts...)
	lines := strings.Split(body, "\n")
	if height > 0 && len(lines) > height {
		lines = lines[:height]
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(lines, "\n"))
}

func (s *PlannerScreen) viewNaming(cw int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Name Your Schedule"))
	b.WriteString("\n\n")
	b.WriteString(s.scheduleIn.View())
	b.WriteString("\n\n")
	b.WriteString(components.ButtonRow([]string{"Cancel", "Save Schedule"}, 1))
	if s.saveErr != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.ErrorText.Render(s.saveErr))
	}
	return components.HighlightCard(b.String(), min(cw, 60))
}

func (s *PlannerScreen) viewSemester(cw int) []string {
	if s.semErr != "" {
		return []string{theme.ErrorText.Render(s.semErr)}
	}
	if s.semLoading || s.next == nil || len(s.next.Recommendations) == 0 {
		return nil
	}

	recs := s.next.Recommendations
	title := theme.Title.Render("Next Semester Courses") + "  " +
		theme.Muted.Render(fmt.Sprintf("%d Credits", len(recs)*plan.CreditsPerCourse))
	out := []string{title}
	for _, r := range recs {
		out = append(out, recommendationCard(r, cw))
	}

	sum := s.next.Summary
	band := level.RiskBand(sum.AverageBurnout)
	core := theme.Success
	if sum.RemainingCore > 4 {
		core = theme.Warning
	}
	half := cw/2 - 1
	out = append(out, theme.Title.Render("Progress Summary"),
		lipgloss.JoinHorizontal(lipgloss.Top,
			analysisCard("Average Burnout Risk", fmt.Sprintf("%d%%", level.Percent(sum.AverageBurnout)),
				band.Display().Color, "For recommended courses", half),
			" ",
			analysisCard("Completed Courses", fmt.Sprint(sum.CompletedCourses), theme.Success, "Courses finished so far", half)),
		lipgloss.JoinHorizontal(lipgloss.Top,
			analysisCard("Remaining Core", fmt.Sprint(sum.RemainingCore), core, "Core courses left to take", half),
			" ",
			analysisCard("Next Semester", fmt.Sprintf("%d Credits", sum.TotalCourses*plan.CreditsPerCourse),
				theme.Success, "Recommended course load", half)))
	return out
}

func (s *PlannerScreen) viewDegree(cw int) []string {
	if s.degreeErr != "" {
		return []string{theme.ErrorText.Render(s.degreeErr)}
	}
	if s.builder.Busy() {
		return nil
	}

	var out []string
	accepted := s.builder.Accepted()
	if !s.builder.Complete() && len(s.builder.Offer()) > 0 {
		title := theme.Title.Render(fmt.Sprintf("Semester %d Recommendations", plan.Semester(len(accepted)))) + "  " +
			theme.Muted.Render(fmt.Sprintf("%d of %d courses selected", len(accepted), plan.Capacity))
		out = append(out, title)
		for _, r := range s.builder.Offer() {
			out = append(out, recommendationCard(r, cw))
		}
		out = append(out, components.ButtonRow([]string{"[r] Reject Recommendations", "[a] Accept Recommendations"}, 1))
	}

	if len(accepted) == 0 {
		return out
	}

	heading := "Selected Courses"
	if s.builder.Complete() {
		heading = "Your Complete Course Plan"
	}
	var sems strings.Builder
	for i, sem := range plan.Semesters(accepted) {
		if i > 0 {
			sems.WriteString("\n")
		}
		sems.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(fmt.Sprintf("Semester %d", i+1)))
		for _, r := range sem {
			risk := level.RiskBand(r.BurnoutRisk)
			sems.WriteString(fmt.Sprintf("\n  %-8s %-40s ", r.SubjectID, truncate(r.SubjectName, 40)))
			sems.WriteString(workloadStyle(r.WorkloadLevel).Render(r.WorkloadLevel))
			sems.WriteString("  ")
			sems.WriteString(lipgloss.NewStyle().Foreground(risk.Display().Color).Render(fmt.Sprintf("%d%% Risk", level.Percent(r.BurnoutRisk))))
		}
	}

	st := plan.PlanStats(accepted)
	stats := theme.Muted.Render(fmt.Sprintf("Total Credits %d   Semesters %d   Avg. Workload %.1f",
		st.Credits, st.Semesters, st.Workload))
	out = append(out, components.TitledCard(heading, sems.String()+"\n\n"+stats, cw))
	return out
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func workloadStyle(v string) lipgloss.Style {
	st := lipgloss.NewStyle().Bold(true).Foreground(theme.TextDim)
	if l, err := level.Parse(v); err == nil {
		st = st.Foreground(l.Display().Color)
	}
	return st
}

func recommendationCard(r api.Recommendation, cw int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(r.SubjectID))
	b.WriteString("  ")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(r.SubjectName))
	b.WriteString("  ")
	b.WriteString(workloadStyle(r.WorkloadLevel).Render(r.WorkloadLevel + " Workload"))
	b.WriteString("\n")

	risk := level.RiskBand(r.BurnoutRisk)
	bar := components.NewProgressBar("Burnout Risk", r.BurnoutRisk, false, cw-14)
	bar.Color = risk.Display().Color
	b.WriteString(bar.View())
	b.WriteString(fmt.Sprintf("  %d%%", level.Percent(r.BurnoutRisk)))
	b.WriteString("\n")

	prereq := lipgloss.NewStyle().Foreground(theme.Success).Render("All met")
	if r.Prerequisites > 0 {
		prereq = lipgloss.NewStyle().Foreground(theme.Error).Render(fmt.Sprintf("%d unmet", r.Prerequisites))
	}
	b.WriteString(theme.Muted.Render("Prerequisites needed: ") + prereq)
	if len(r.Reasons) > 0 {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Width(cw - 6).Foreground(theme.TextDim).Render(r.Reasons.String()))
	}
	return components.Card(b.String(), cw)
}

func analysisCard(title, value string, c color.Color, description string, width int) string {
	body := theme.Muted.Render(title) + "\n" +
		lipgloss.NewStyle().Foreground(c).Bold(true).Render(value) + "\n" +
		theme.Hint.Render(description)
	return components.Card(body, width)
}
