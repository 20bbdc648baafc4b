package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gyeh/attstats/internal/clean"
	"github.com/gyeh/attstats/internal/exitcode"
	"github.com/gyeh/attstats/internal/logging"
	"github.com/gyeh/attstats/internal/normalize"
	"github.com/gyeh/attstats/internal/report"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Dry-run load and clean (no writes)",
	RunE:  runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	sha, err := normalize.FileHash(cfg.InputPath)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash file")
		os.Exit(exitcode.LoadError)
	}

	stat, err := os.Stat(cfg.InputPath)
	if err != nil {
		log.Error().Err(err).Msg("failed to stat file")
		os.Exit(exitcode.LoadError)
	}

	res, err := clean.Run(log, cfg.InputPath, cfg.CleanOptions())
	if err != nil {
		exitPipeline(log, err)
	}

	fmt.Println("=== attstats plan ===")
	fmt.Printf("File:          %s\n", cfg.InputPath)
	fmt.Printf("SHA-256:       %s\n", sha)
	fmt.Printf("Size:          %d bytes\n", stat.Size())
	fmt.Printf("Loaded:        %d rows, %d columns\n", res.RowsLoaded, res.ColumnsLoaded)
	fmt.Printf("Retained:      %d rows, %d columns\n", res.Frame.Nrow(), res.Frame.Ncol())
	fmt.Printf("Dropped:       %d rows without CID, columns %s\n", res.RowsDropped, listOrNone(res.ColumnsDropped))
	fmt.Printf("Renamed:       %s\n", listOrNone(res.Renamed))
	fmt.Printf("Missing:       %s\n", listOrNone(res.MissingColumns))
	fmt.Println()
	fmt.Println("Dates coerced to missing:")
	for col, n := range res.DatesCoerced {
		fmt.Printf("  %-24s %d\n", col, n)
	}
	fmt.Println("Flags defaulted to 0:")
	for name, n := range res.FlagsDefaulted {
		fmt.Printf("  %-24s %d\n", name, n)
	}
	report.PrintTypes(os.Stdout, res.Frame)

	return nil
}

func listOrNone(names []string) string {
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ", ")
}
