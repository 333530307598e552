package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/optilearn/schedulease/internal/api"
	"github.com/optilearn/schedulease/internal/session"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Sign in, sign out and inspect the stored session",
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with your NUID and full name",
	RunE: func(cmd *cobra.Command, args []string) error {
		nuid, _ := cmd.Flags().GetString("nuid")
		name, _ := cmd.Flags().GetString("name")
		nuid, name = strings.TrimSpace(nuid), strings.TrimSpace(name)
		if nuid == "" || name == "" {
			return fmt.Errorf("both --nuid and --name are required")
		}

		rt, err := setup(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		ctx := cmd.Context()
		profile, err := rt.client.Login(ctx, nuid, name)
		if err != nil {
			return fmt.Errorf("%s", api.DisplayMessage(err, "Login failed"))
		}
		sess := session.FromProfile(nuid, name, profile)
		if err := rt.sessions.Save(ctx, sess); err != nil {
			return err
		}
		rt.logger.Info("signed in", zap.String("nuid", nuid))

		fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (%s)\n", sess.Name, sess.NUID)
		return nil
	},
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		if err := rt.sessions.Logout(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
		return nil
	},
}

var authWhoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in student",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		sess, err := rt.requireSession(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "NUID:        %s\n", sess.NUID)
		fmt.Fprintf(out, "Name:        %s\n", sess.Name)
		fmt.Fprintf(out, "Programming: %s\n", ratings(sess.ProgrammingExperience))
		fmt.Fprintf(out, "Mathematics: %s\n", ratings(sess.MathExperience))
		if in := sess.Interests(); len(in) > 0 {
			fmt.Fprintf(out, "Interests:   %s\n", strings.Join(in, ", "))
		}
		if core := sess.CoreSubjects(); len(core) > 0 {
			fmt.Fprintf(out, "Required:    %s\n", strings.Join(core, ", "))
		}
		return nil
	},
}

// ratings formats a skill map as "Java 3, Python 4".
func ratings(m map[string]float64) string {
	if len(m) == 0 {
		return "-"
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s %g", k, m[k])
	}
	return strings.Join(parts, ", ")
}

func init() {
	authLoginCmd.Flags().String("nuid", "", "Your NUID")
	authLoginCmd.Flags().String("name", "", "Your full name, as registered")

	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authWhoamiCmd)
}
