package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/optilearn/schedulease/internal/store"
)

var requestsCmd = &cobra.Command{
	Use:   "requests",
	Short: "Inspect the local log of backend requests",
}

var requestsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent backend requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		failed, _ := cmd.Flags().GetBool("failed")

		rt, err := setup(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		records, err := rt.store.EventRepo().QueryAPIRequests(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query requests: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(records) == 0 {
			fmt.Fprintln(out, "No requests recorded.")
			return nil
		}

		// Header.
		fmt.Fprintf(out, "%-5s  %-19s  %-6s  %-36s  %-6s  %-7s  %s\n",
			"ID", "Timestamp", "Method", "Path", "Status", "Ms", "OK")
		fmt.Fprintln(out, strings.Repeat("─", 96))

		for _, r := range records {
			if failed && r.Success {
				continue
			}
			ok := "✓"
			if !r.Success {
				ok = "✗"
			}
			fmt.Fprintf(out, "%-5d  %-19s  %-6s  %s  %-6d  %-7d  %s\n",
				r.ID,
				r.Timestamp.Local().Format("2006-01-02 15:04:05"),
				r.Method,
				cell(r.Path, 36),
				r.Status,
				r.LatencyMs,
				ok,
			)
			if !r.Success && r.ErrorMessage != "" {
				fmt.Fprintf(out, "       %s\n", r.ErrorMessage)
			}
		}
		return nil
	},
}

func init() {
	requestsListCmd.Flags().Int("limit", 20, "Maximum number of requests to show")
	requestsListCmd.Flags().Bool("failed", false, "Only show failed requests")

	requestsCmd.AddCommand(requestsListCmd)
}
