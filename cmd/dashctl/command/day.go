package command

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jwalitptl/practice-dashboard/internal/mapper"
)

var asDate bool

var dayCmd = &cobra.Command{
	Use:   "day VALUE...",
	Short: "Normalize weekday names",
	Long:  "The day command prints the weekday code each value normalizes to, or the weekday of YYYY-MM-DD dates with --date",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printDays(cmd, args)
	},
}

func printDays(cmd *cobra.Command, values []string) error {
	out := cmd.OutOrStdout()
	unknown := 0
	for _, v := range values {
		if asDate {
			t, err := time.Parse("2006-01-02", v)
			if err != nil {
				return fmt.Errorf("invalid date %q: %w", v, err)
			}
			fmt.Fprintf(out, "%s\t%s\n", v, mapper.DayCodeForDate(t))
			continue
		}
		code, ok := mapper.NormalizeDayCode(v)
		if !ok {
			unknown++
			fmt.Fprintf(out, "%s\t?\n", v)
			continue
		}
		fmt.Fprintf(out, "%s\t%s\n", v, code)
	}
	if unknown > 0 {
		return fmt.Errorf("%d unrecognized day value(s)", unknown)
	}
	return nil
}

func init() {
	dayCmd.Flags().BoolVar(&asDate, "date", false, "treat values as YYYY-MM-DD dates")
	rootCmd.AddCommand(dayCmd)
}
