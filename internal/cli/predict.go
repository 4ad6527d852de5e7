package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/terraincognita07/phasecast/internal/services"
)

// RunPredictCommand parses predict flags and prints the phase schedule.
func RunPredictCommand(args []string, out io.Writer, now time.Time, location *time.Location) error {
	flags := flag.NewFlagSet("predict", flag.ContinueOnError)
	flags.SetOutput(out)
	startRaw := flags.String("start", "", "first day of the last period (YYYY-MM-DD)")
	cycleLength := flags.Int("cycle", 28, "cycle length in days")
	periodLength := flags.Int("period", 5, "period length in days")
	todayRaw := flags.String("today", "", "reference day (YYYY-MM-DD), defaults to today")
	if err := flags.Parse(args); err != nil {
		return err
	}

	if *startRaw == "" {
		return errors.New("--start is required")
	}
	start, err := services.ParseISODate(*startRaw, location)
	if err != nil {
		return fmt.Errorf("invalid --start: %w", err)
	}
	today := services.StartOfDay(now, location)
	if *todayRaw != "" {
		if today, err = services.ParseISODate(*todayRaw, location); err != nil {
			return fmt.Errorf("invalid --today: %w", err)
		}
	}

	result, err := services.PredictCycle(services.CycleData{
		LastPeriodStart: start,
		CycleLength:     *cycleLength,
		PeriodLength:    *periodLength,
	}, today)
	if err != nil {
		return err
	}

	writePrediction(out, result, today)
	return nil
}

func writePrediction(out io.Writer, result services.PredictionResult, today time.Time) {
	fmt.Fprintf(out, "Today:             %s\n", services.FormatDisplayDate(today))
	fmt.Fprintf(out, "Current phase:     %s\n", result.CurrentPhase.Name)
	fmt.Fprintf(out, "Next period:       %s (in %d days)\n", services.FormatDisplayDate(result.NextPeriodStart), result.DaysUntilNextPeriod)
	fmt.Fprintf(out, "Ovulation:         %s\n", services.FormatDisplayDate(result.OvulationDate))
	fmt.Fprintf(out, "Fertile window:    %s - %s\n\n",
		services.FormatDisplayDate(result.FertileWindowStart),
		services.FormatDisplayDate(result.FertileWindowEnd),
	)

	table := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(table, "PHASE\tSTART\tEND\t")
	for _, phase := range result.AllPhases {
		marker := ""
		if phase.Name == result.CurrentPhase.Name {
			marker = "*"
		}
		fmt.Fprintf(table, "%s\t%s\t%s\t%s\n",
			phase.Name,
			services.FormatDisplayDate(phase.StartDate),
			services.FormatDisplayDate(phase.EndDate),
			marker,
		)
	}
	_ = table.Flush()
}
