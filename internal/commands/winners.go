package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/warwickallen/allen-app-challenge-2026/internal/profit"
	"github.com/warwickallen/allen-app-challenge-2026/internal/service"
)

const monthLayout = "2006-01"

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

func newWinnersCmd(open runtimeOpener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "winners",
		Short: "Inspect and calculate monthly winners",
	}
	cmd.AddCommand(newWinnersListCmd(open), newWinnersCalculateCmd(open))
	return cmd
}

func newWinnersListCmd(open runtimeOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored monthly winners",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := open()
			if err != nil {
				return err
			}
			defer rt.close()

			winners, err := rt.winners.ListWinners(cmd.Context())
			if err != nil {
				return err
			}
			printWinners(cmd.OutOrStdout(), winners)
			return nil
		},
	}
}

func newWinnersCalculateCmd(open runtimeOpener) *cobra.Command {
	var (
		month  string
		all    bool
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Decide and store monthly winners",
		Long: "Decides the winners of one month (--month YYYY-MM) or of every month whose " +
			"10th has passed (--all). With --dry-run the result is printed and nothing is stored.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var target *time.Time
			if month != "" {
				m, err := time.Parse(monthLayout, month)
				if err != nil {
					return fmt.Errorf("invalid --month %q, want YYYY-MM", month)
				}
				target = &m
			}

			rt, err := open()
			if err != nil {
				return err
			}
			defer rt.close()

			if dryRun {
				months := rt.winners.DecidedMonths()
				if target != nil {
					months = []time.Time{*target}
				}
				previews, err := rt.winners.Preview(cmd.Context(), months)
				if err != nil {
					return err
				}
				printPreviews(cmd.OutOrStdout(), previews)
				return nil
			}

			var winners []service.MonthlyWinner
			if target != nil {
				winners, err = rt.winners.CalculateMonth(cmd.Context(), *target, service.TriggerCLI)
			} else {
				winners, err = rt.winners.CalculateAll(cmd.Context(), service.TriggerCLI)
			}
			if err != nil {
				return err
			}
			printWinners(cmd.OutOrStdout(), winners)
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "month to calculate, YYYY-MM")
	cmd.Flags().BoolVar(&all, "all", false, "calculate every decided month")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the winners without storing them")
	cmd.MarkFlagsMutuallyExclusive("month", "all")
	cmd.MarkFlagsOneRequired("month", "all")
	return cmd
}

func printWinners(out io.Writer, winners []service.MonthlyWinner) {
	if len(winners) == 0 {
		fmt.Fprintln(out, "no winners")
		return
	}
	for _, w := range winners {
		fmt.Fprintf(out, "%s\t%s\t%s\t%s\n", w.Month.Format(monthLayout), w.WinnerType, w.WinnerName, w.Profit.StringFixed(2))
	}
}

func printPreviews(out io.Writer, previews []profit.Winners) {
	for _, p := range previews {
		fmt.Fprintf(out, "%s (cutoff %s)\n", p.Month.Format(monthLayout), p.Cutoff.Format(time.DateOnly))
		dumpConfig.Fdump(out, p.App, p.Participant)
	}
}
