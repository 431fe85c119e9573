package main

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/spf13/cobra"

	"github.com/wealthpath/finsim/internal/config"
	"github.com/wealthpath/finsim/internal/sim"
)

// simpleCLILogger implements sim.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "finsim %s (commit %s, built %s)\n", version, commit, date)
			if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
				fmt.Fprintln(os.Stdout, bi.Main.Path)
			}
		},
	}
}

func projectCmd() *cobra.Command {
	var (
		inputFile string
		fromStr   string
		toStr     string
		events    int
		verbose   bool
	)
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project a household file and print the per-period table",
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, file, err := config.NewLoader().LoadFromFile(inputFile)
			if err != nil {
				return err
			}

			start := file.Start
			if fromStr != "" {
				if start, err = time.Parse("2006-01-02", fromStr); err != nil {
					return fmt.Errorf("invalid --from date: %w", err)
				}
			}
			if start.IsZero() {
				start = sc.Range.Start
			}
			end := sc.Range.End
			if toStr != "" {
				if end, err = time.Parse("2006-01-02", toStr); err != nil {
					return fmt.Errorf("invalid --to date: %w", err)
				}
			}

			engine := sim.NewEngine()
			if verbose {
				engine.Log = simpleCLILogger{}
			}
			result, err := engine.Run(sc, start, end)
			if err != nil {
				return err
			}

			fmt.Printf("Scenario %q: %d periods, %s through %s\n\n",
				sc.Name, len(result.Snapshots), start.Format("2006-01"), end.Format("2006-01"))
			fmt.Printf("%-8s %14s %14s %14s %12s\n", "Period", "Net Assets", "Income", "Expenses Paid", "Tax")
			for _, snap := range result.Snapshots {
				fmt.Printf("%-8s %14s %14s %14s %12s\n",
					snap.Date.Format("2006-01"),
					snap.NetAssets().StringFixed(2),
					snap.TotalIncome().StringFixed(2),
					snap.TotalExpenses().StringFixed(2),
					snap.TotalTax().StringFixed(2))
			}

			if events > 0 {
				fmt.Printf("\nTimeline (last %d events of %d):\n", events, len(result.Timeline))
				tail := result.Timeline
				if len(tail) > events {
					tail = tail[len(tail)-events:]
				}
				for _, e := range tail {
					fmt.Println("  " + e.String())
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&inputFile, "input", "i", "", "household YAML file (required)")
	cmd.Flags().StringVar(&fromStr, "from", "", "projection start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&toStr, "to", "", "projection end date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&events, "events", 0, "print the last N timeline events")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log engine diagnostics")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func main() {
	root := &cobra.Command{
		Use:   "finsim",
		Short: "Household financial projection engine",
		Long: `finsim projects a household's financial state forward in time:
people, assets, liabilities, incomes, expenses, taxes and transfer rules
produce a monthly series of snapshots and an ordered event timeline.`,
	}
	root.AddCommand(projectCmd())
	root.AddCommand(versionCmd())
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
