package cli

import (
	"fmt"
	"io"

	"github.com/ahmetcoskunkizilkaya/auranote/internal/wellbeing"
	"github.com/spf13/cobra"
)

func newWellbeingCmd() *cobra.Command {
	var (
		user   string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "wellbeing --user UUID",
		Short: "Check a user's recent entries for a negative streak",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := parseUser(user)
			if err != nil {
				return err
			}

			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.Close()

			advisory, err := e.service.Wellbeing(cmd.Context(), userID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if wantJSON(asJSON, out) {
				return writeJSON(out, advisory)
			}
			printAdvisory(out, advisory)
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "User ID")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON even on a terminal")
	return cmd
}

func printAdvisory(out io.Writer, a wellbeing.Advisory) {
	if !a.Alert {
		fmt.Fprintln(out, "No wellbeing alert.")
		return
	}
	fmt.Fprintln(out, a.Title)
	fmt.Fprintln(out, a.Message)
	for _, s := range a.Suggestions {
		fmt.Fprintf(out, "  - %s\n", s)
	}
	fmt.Fprintln(out, a.Note)
}
