package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "schedulease",
	Short: "Course planning for graduate students",
	Long: "SchedulEase: terminal client for course recommendations, burnout analysis\n" +
		"and degree planning. Run without a subcommand to start the interactive UI.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to a YAML config file (default $XDG_CONFIG_HOME/schedulease/config.yaml)")
	pf.String("api-url", "", "Backend base URL (overrides SCHEDULEASE_API_BASE_URL)")
	pf.String("db", "", "Path to SQLite database file (overrides SCHEDULEASE_DB_PATH)")
	pf.String("log-level", "", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(coursesCmd)
	rootCmd.AddCommand(burnoutCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(schedulesCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(requestsCmd)
	rootCmd.AddCommand(devServerCmd)
	rootCmd.AddCommand(versionCmd)
}
