package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/ahmetcoskunkizilkaya/auranote/internal/apps/diary"
	"github.com/ahmetcoskunkizilkaya/auranote/internal/emotion"
	"github.com/spf13/cobra"
)

func newDashboardCmd() *cobra.Command {
	var (
		user   string
		at     string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "dashboard --user UUID",
		Short: "Print a user's emotion dashboard",
		Long: `Aggregate a user's diary entries into the dashboard statistics:
totals, the top emotion, the pie slices and the rolling daily series.

Examples:
  auranote dashboard --user 6f1c...
  auranote dashboard --user 6f1c... --at 2024-05-10T12:00:00Z --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := parseUser(user)
			if err != nil {
				return err
			}

			var ref time.Time
			if at != "" {
				ref, err = time.Parse(time.RFC3339, at)
				if err != nil {
					return fmt.Errorf("invalid --at (want RFC3339): %w", err)
				}
			}

			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.Close()

			stats, advisory, err := e.service.Dashboard(cmd.Context(), userID, ref)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if wantJSON(asJSON, out) {
				return writeJSON(out, diary.DashboardResponse{Stats: stats, Wellbeing: advisory})
			}
			printDashboard(out, stats)
			if advisory.Alert {
				fmt.Fprintln(out)
				printAdvisory(out, advisory)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "User ID")
	cmd.Flags().StringVar(&at, "at", "", "Reference instant (RFC3339), default now")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON even on a terminal")
	return cmd
}

func printDashboard(out io.Writer, stats emotion.Dashboard) {
	if !stats.HasData {
		fmt.Fprintln(out, "No entries yet.")
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Total entries\t%d\n", stats.TotalEntries)
	fmt.Fprintf(w, "Unique emotions\t%d\n", stats.UniqueEmotions)
	fmt.Fprintf(w, "Top emotion\t%s (%d)\n", stats.TopEmotion, stats.TopEmotionCount)
	w.Flush()

	fmt.Fprintln(out)
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "EMOTION\tCOUNT")
	for _, s := range stats.PieData {
		fmt.Fprintf(w, "%s\t%d\n", s.Label, s.Value)
	}
	w.Flush()

	fmt.Fprintln(out)
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	header := append([]string{"DAY"}, stats.ChartEmotions...)
	fmt.Fprintln(w, strings.ToUpper(strings.Join(header, "\t")))
	for _, day := range stats.LineData {
		row := []string{day.Date}
		for _, key := range stats.ChartEmotions {
			row = append(row, fmt.Sprint(day.Emotions[key]))
		}
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	w.Flush()
}
