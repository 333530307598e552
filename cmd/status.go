package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/optilearn/schedulease/internal/api"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check the backend and summarise the signed-in student",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		info, err := rt.client.Ping(ctx)
		if err != nil {
			return fmt.Errorf("backend %s unreachable: %s", rt.client.BaseURL(),
				api.DisplayMessage(err, "no response"))
		}
		fmt.Fprintf(out, "Backend:   %s (%s, version %s)\n", rt.client.BaseURL(), info.Message, info.Version)

		sess, err := rt.requireSession(ctx)
		if err != nil {
			fmt.Fprintln(out, "Session:   signed out")
			return nil
		}
		fmt.Fprintf(out, "Session:   %s (%s)\n", sess.Name, sess.NUID)

		var (
			progress  *api.Progress
			burnout   *api.BurnoutAnalysis
			schedules []api.Schedule
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			progress, err = rt.client.Progress(gctx, sess.NUID)
			return err
		})
		g.Go(func() error {
			var err error
			burnout, err = rt.client.BurnoutAnalysis(gctx, sess.NUID)
			return err
		})
		g.Go(func() error {
			var err error
			schedules, err = rt.client.Schedules(gctx, sess.NUID)
			return err
		})
		if err := g.Wait(); err != nil {
			return fmt.Errorf("%s", api.DisplayMessage(err, "Failed to load status"))
		}

		fmt.Fprintf(out, "Progress:  %d / %d credits (%d%%)\n",
			progress.TotalCredits, api.DegreeCredits, progress.PercentComplete())
		fmt.Fprintf(out, "Burnout:   %s risk, %d h/week\n",
			burnout.OverallBurnoutRisk.Level, burnout.WeeklyStudyHours.Total)
		fmt.Fprintf(out, "Schedules: %d saved\n", len(schedules))
		return nil
	},
}
