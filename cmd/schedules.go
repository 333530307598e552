package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/optilearn/schedulease/internal/api"
	"github.com/optilearn/schedulease/internal/level"
)

var schedulesCmd = &cobra.Command{
	Use:   "schedules",
	Short: "Manage saved schedules",
}

var schedulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved schedules",
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
		list, err := rt.client.Schedules(ctx, sess.NUID)
		if err != nil {
			return fmt.Errorf("%s", api.DisplayMessage(err, "Failed to fetch your schedules"))
		}

		out := cmd.OutOrStdout()
		if len(list) == 0 {
			fmt.Fprintln(out, "No schedules yet.")
			return nil
		}

		fmt.Fprintf(out, "%-24s  %-16s  %7s  %7s  %7s  %s\n",
			"Name", "Created", "Courses", "Burnout", "Utility", "Workload")
		fmt.Fprintln(out, strings.Repeat("─", 84))
		for _, s := range list {
			created := s.CreatedAt
			if t, ok := s.Created(); ok {
				created = t.Format("2006-01-02 15:04")
			}
			fmt.Fprintf(out, "%s  %-16s  %7d  %6d%%  %6d%%  %s\n",
				cell(s.Name, 24), created, s.Metrics.TotalCourses,
				level.Percent(s.Metrics.AverageBurnout), level.Percent(s.Metrics.AverageUtility),
				s.Metrics.WorkloadAssessment)
		}
		return nil
	},
}

var schedulesDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a saved schedule by name",
	Args:  cobra.ExactArgs(1),
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
		if err := rt.client.DeleteSchedule(ctx, sess.NUID, args[0]); err != nil {
			return fmt.Errorf("%s", api.DisplayMessage(err, "Failed to delete schedule"))
		}
		rt.logger.Info("schedule deleted", zap.String("name", args[0]))
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted schedule %q.\n", args[0])
		return nil
	},
}

func init() {
	schedulesCmd.AddCommand(schedulesListCmd)
	schedulesCmd.AddCommand(schedulesDeleteCmd)
}
