package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/optilearn/schedulease/internal/api"
	"github.com/optilearn/schedulease/internal/catalog"
)

var coursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "List the course catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		id, _ := cmd.Flags().GetString("id")

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
		courses, err := rt.client.CourseCatalog(ctx, sess.NUID)
		if err != nil {
			return fmt.Errorf("%s", api.DisplayMessage(err, "Failed to load course catalog"))
		}

		out := cmd.OutOrStdout()
		if len(courses) == 0 {
			fmt.Fprintln(out, "No course data available.")
			return nil
		}
		matched := catalog.Filter(courses, name, id)
		if len(matched) == 0 {
			fmt.Fprintln(out, "No courses match your search.")
			return nil
		}

		fmt.Fprintf(out, "%-8s  %-40s  %-6s  %-4s  %s\n", "ID", "Name", "Demand", "Core", "Load")
		fmt.Fprintln(out, strings.Repeat("─", 80))
		for _, c := range matched {
			core := ""
			if c.IsCore {
				core = "✓"
			}
			fmt.Fprintf(out, "%-8s  %s  %-6s  %-4s  %d assignments, %d exams\n",
				c.SubjectID, cell(c.SubjectName, 40), c.EnrollmentDemand, core, c.AssignmentCount, c.ExamCount)
		}
		fmt.Fprintln(out, strings.Repeat("─", 80))
		fmt.Fprintf(out, "%d of %d courses\n", len(matched), len(courses))
		return nil
	},
}

func init() {
	coursesCmd.Flags().String("name", "", "Filter by course name (case-insensitive substring)")
	coursesCmd.Flags().String("id", "", "Filter by course ID (case-insensitive substring)")
}
