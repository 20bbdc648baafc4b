package main

import (
	"github.com/spf13/cobra"

	"github.com/gyeh/attstats/internal/config"
)

var (
	cfg        = config.Default()
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "attstats",
	Short: "E-Saúde attendance cleaner and report generator",
	Long: "Reads the E-Saúde medical attendance CSV export, cleans and enriches it, " +
		"and writes descriptive statistics, charts and typed exports.",
	SilenceUsage:      true,
	PersistentPreRunE: resolveConfig,
	RunE:              runPipeline,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "YAML config file")
	pf.StringVar(&cfg.InputPath, "file", cfg.InputPath, "Path to the attendance CSV export")
	pf.StringVar(&cfg.DSN, "dsn", "", "Postgres connection string (or set ATTSTATS_DB_URL)")
	pf.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format: text or json")
	pf.StringVar(&cfg.Encoding, "encoding", cfg.Encoding, "Source file encoding")
}

// flagFields copies a flag-bound value from src to dst.
var flagFields = map[string]func(dst, src *config.Config){
	"file":             func(d, s *config.Config) { d.InputPath = s.InputPath },
	"dsn":              func(d, s *config.Config) { d.DSN = s.DSN },
	"log-format":       func(d, s *config.Config) { d.LogFormat = s.LogFormat },
	"encoding":         func(d, s *config.Config) { d.Encoding = s.Encoding },
	"out":              func(d, s *config.Config) { d.OutputDir = s.OutputDir },
	"parquet":          func(d, s *config.Config) { d.WriteParquet = s.WriteParquet },
	"sqlite":           func(d, s *config.Config) { d.WriteSQLite = s.WriteSQLite },
	"xlsx":             func(d, s *config.Config) { d.WriteXLSX = s.WriteXLSX },
	"top":              func(d, s *config.Config) { d.TopMunicipalities = s.TopMunicipalities },
	"activate-version": func(d, s *config.Config) { d.ActivateVersion = s.ActivateVersion },
	"force":            func(d, s *config.Config) { d.Force = s.Force },
	"keep-staging":     func(d, s *config.Config) { d.KeepStaging = s.KeepStaging },
}

// resolveConfig layers the YAML file and ATTSTATS_* variables under the
// flags that were set explicitly on the command line.
func resolveConfig(cmd *cobra.Command, args []string) error {
	flagged := cfg
	if configPath != "" {
		if err := cfg.LoadFromFile(configPath); err != nil {
			return err
		}
	}
	if err := cfg.LoadEnv(); err != nil {
		return err
	}
	for name, apply := range flagFields {
		if cmd.Flags().Changed(name) {
			apply(&cfg, &flagged)
		}
	}
	return nil
}
