package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/optilearn/schedulease/internal/api"
	"github.com/optilearn/schedulease/internal/level"
)

var burnoutCmd = &cobra.Command{
	Use:   "burnout",
	Short: "Show the burnout analysis for the signed-in student",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		ctx := cmd.Context()
		sess, err := rt.requireSession(ctx)
		if err != nil {
			return err
		}
		a, err := rt.client.BurnoutAnalysis(ctx, sess.NUID)
		if err != nil {
			return fmt.Errorf("%s", api.DisplayMessage(err, "Failed to load burnout data"))
		}

		out := cmd.OutOrStdout()
		sep := strings.Repeat("─", 60)
		fmt.Fprintf(out, "Overall risk:      %s  %s\n", a.OverallBurnoutRisk.Level, a.OverallBurnoutRisk.Description)
		fmt.Fprintf(out, "Weekly study:      %d h  %s\n", a.WeeklyStudyHours.Total, level.Trend(a.WeeklyStudyHours.Trend).Symbol())
		fmt.Fprintf(out, "Course difficulty: %s  %s\n", a.CourseDifficulty.Level, a.CourseDifficulty.Description)

		fmt.Fprintln(out)
		fmt.Fprintln(out, "Stress Factors")
		fmt.Fprintln(out, sep)
		f := a.StressFactors
		for _, row := range [][2]string{
			{"Assignment Deadlines", f.AssignmentDeadlines},
			{"Course Complexity", f.CourseComplexity},
			{"Weekly Workload", f.WeeklyWorkload},
			{"Prerequisite Match", f.PrerequisiteMatch},
		} {
			fmt.Fprintf(out, "%-22s  %s\n", row[0], row[1])
		}

		if len(a.WorkloadDistribution) > 0 {
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Workload Distribution")
			fmt.Fprintln(out, sep)
			for _, w := range a.WorkloadDistribution {
				fmt.Fprintf(out, "%-8s  %3d h/week  %s\n", w.CourseID, w.HoursPerWeek, w.Status)
			}
		}
		return nil
	},
}

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show degree progress for the signed-in student",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		ctx := cmd.Context()
		sess, err := rt.requireSession(ctx)
		if err != nil {
			return err
		}
		p, err := rt.client.Progress(ctx, sess.NUID)
		if err != nil {
			return fmt.Errorf("%s", api.DisplayMessage(err, "Failed to load progress data"))
		}

		out := cmd.OutOrStdout()
		sep := strings.Repeat("─", 60)
		fmt.Fprintf(out, "Credits:  %d / %d (%d%% complete, %d remaining)\n",
			p.TotalCredits, api.DegreeCredits, p.PercentComplete(), p.CreditsRemaining())
		fmt.Fprintf(out, "Courses:  %d\n", p.TotalCourses)
		fmt.Fprintf(out, "Grade:    %s\n", p.CurrentGrade)

		fmt.Fprintln(out)
		fmt.Fprintln(out, "Completed Courses")
		fmt.Fprintln(out, sep)
		for _, c := range p.CompletedList() {
			fmt.Fprintf(out, "%-8s  %s\n", c.ID, c.Name)
		}

		if len(p.CourseOutcomes) > 0 {
			outcomes := append([]string(nil), p.CourseOutcomes...)
			sort.Strings(outcomes)
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Learning Outcomes Achieved")
			fmt.Fprintln(out, sep)
			for _, o := range outcomes {
				fmt.Fprintf(out, "✓ %s\n", o)
			}
		}
		return nil
	},
}
