package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/optilearn/schedulease/internal/api"
	"github.com/optilearn/schedulease/internal/level"
	"github.com/optilearn/schedulease/internal/planner"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend courses for next semester, or a full two-year plan",
	Long: "Without --full, prints the next-semester recommendations.\n" +
		"With --full, accepts every offer of the degree planner until the plan\n" +
		"holds 8 courses, and saves it when --save is given.",
	RunE: func(cmd *cobra.Command, args []string) error {
		full, _ := cmd.Flags().GetBool("full")
		saveAs, _ := cmd.Flags().GetString("save")
		if saveAs != "" && !full {
			return fmt.Errorf("--save requires --full")
		}

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
		out := cmd.OutOrStdout()

		if !full {
			next, err := rt.client.Recommendations(ctx, sess.NUID)
			if err != nil {
				return fmt.Errorf("%s", api.DisplayMessage(err, "Failed to fetch next semester recommendations"))
			}
			printRecommendations(out, next.Recommendations)
			s := next.Summary
			fmt.Fprintln(out, strings.Repeat("─", 72))
			fmt.Fprintf(out, "Courses %d   Avg. burnout %d%%   Completed %d   Core remaining %d\n",
				s.TotalCourses, level.Percent(s.AverageBurnout), s.CompletedCourses, s.RemainingCore)
			return nil
		}

		b := planner.New()
		req, err := b.Start()
		if err != nil {
			return err
		}
		offer, callErr := req.Do(ctx, sess.NUID, rt.client)
		if err := b.Resolve(req, offer, callErr); err != nil {
			return fmt.Errorf("%s", api.DisplayMessage(err, "Failed to fetch degree plan"))
		}
		for !b.Complete() && len(b.Offer()) > 0 {
			req, more, err := b.Accept()
			if errors.Is(err, planner.ErrOverCapacity) {
				break
			}
			if err != nil {
				return err
			}
			if !more {
				break
			}
			offer, callErr := req.Do(ctx, sess.NUID, rt.client)
			if err := b.Resolve(req, offer, callErr); err != nil {
				return fmt.Errorf("%s", api.DisplayMessage(err, "Failed to fetch next semester recommendations"))
			}
		}

		printPlan(out, b.Accepted())
		if saveAs == "" {
			return nil
		}

		req, err = b.Save(saveAs)
		if err != nil {
			return err
		}
		_, callErr = req.Do(ctx, sess.NUID, rt.client)
		if err := b.Resolve(req, nil, callErr); err != nil {
			return fmt.Errorf("%s", api.DisplayMessage(err, "Failed to save schedule to profile"))
		}
		rt.logger.Info("schedule saved", zap.String("name", b.SavedAs()), zap.Int("courses", len(b.Accepted())))
		fmt.Fprintf(out, "Saved schedule %q.\n", b.SavedAs())
		return nil
	},
}

func printRecommendations(out io.Writer, recs []api.Recommendation) {
	if len(recs) == 0 {
		fmt.Fprintln(out, "No recommendations available.")
		return
	}
	fmt.Fprintf(out, "%-8s  %-36s  %-7s  %-8s  %s\n", "ID", "Name", "Burnout", "Workload", "Prereqs")
	fmt.Fprintln(out, strings.Repeat("─", 72))
	for _, r := range recs {
		prereq := "All met"
		if r.Prerequisites > 0 {
			prereq = fmt.Sprintf("%d unmet", r.Prerequisites)
		}
		fmt.Fprintf(out, "%-8s  %s  %6d%%  %-8s  %s\n",
			r.SubjectID, cell(r.SubjectName, 36), level.Percent(r.BurnoutRisk), r.WorkloadLevel, prereq)
		if len(r.Reasons) > 0 {
			fmt.Fprintf(out, "%-8s  %s\n", "", r.Reasons.String())
		}
	}
}

func printPlan(out io.Writer, accepted []api.Recommendation) {
	for i, sem := range planner.Semesters(accepted) {
		fmt.Fprintf(out, "Semester %d\n", i+1)
		printRecommendations(out, sem)
		fmt.Fprintln(out)
	}
	st := planner.PlanStats(accepted)
	fmt.Fprintf(out, "Total Credits %d   Semesters %d   Avg. Workload %.1f\n", st.Credits, st.Semesters, st.Workload)
}

func init() {
	recommendCmd.Flags().Bool("full", false, "Build a complete two-year plan")
	recommendCmd.Flags().String("save", "", "Save the full plan under this name")
}
