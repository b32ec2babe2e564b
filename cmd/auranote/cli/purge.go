package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newPurgeCmd() *cobra.Command {
	var (
		user string
		yes  bool
	)

	cmd := &cobra.Command{
		Use:   "purge --user UUID",
		Short: "Delete every diary entry of a user",
		Long: `Delete every diary entry of a user. This cannot be undone.

Without --yes the command asks for confirmation, and refuses to run when
stdin is not a terminal.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := parseUser(user)
			if err != nil {
				return err
			}

			if !yes {
				in := cmd.InOrStdin()
				if !isTerminal(in) {
					return fmt.Errorf("refusing to purge without --yes when stdin is not a terminal")
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Delete all diary entries of %s? [y/N]: ", userID)
				answer, _ := bufio.NewReader(in).ReadString('\n')
				answer = strings.ToLower(strings.TrimSpace(answer))
				if answer != "y" && answer != "yes" {
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
					return nil
				}
			}

			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.Close()

			if err := e.service.DeleteAllEntries(cmd.Context(), userID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted all diary entries of %s\n", userID)
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "User ID")
	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation prompt")
	return cmd
}
