package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/gyeh/attstats/internal/clean"
	"github.com/gyeh/attstats/internal/csvread"
	"github.com/gyeh/attstats/internal/model"
	"github.com/gyeh/attstats/internal/report"
)

// EnvPrefix is the prefix of every environment variable read by LoadEnv.
const EnvPrefix = "ATTSTATS"

// Config holds all runtime configuration for an attstats run. Values are
// layered: Default, then the YAML file, then ATTSTATS_* environment
// variables, then command-line flags.
type Config struct {
	InputPath string `yaml:"input_path" envconfig:"INPUT" validate:"required"`
	OutputDir string `yaml:"output_dir" envconfig:"OUTPUT_DIR" validate:"required"`
	Delimiter string `yaml:"delimiter" envconfig:"DELIMITER" validate:"len=1"`
	Encoding  string `yaml:"encoding" envconfig:"ENCODING" validate:"oneof=iso-8859-1 latin1 latin-1 windows-1252 cp1252 utf-8 utf8"`
	LogFormat string `yaml:"log_format" envconfig:"LOG_FORMAT" validate:"oneof=text json"`
	DSN       string `yaml:"dsn" envconfig:"DB_URL"`

	DropColumns       []string `yaml:"drop_columns" envconfig:"DROP_COLUMNS"`
	TopMunicipalities int      `yaml:"top_municipalities" envconfig:"TOP_MUNICIPALITIES" validate:"gte=1"`
	HistogramBins     int      `yaml:"histogram_bins" envconfig:"HISTOGRAM_BINS" validate:"gte=1,lte=500"`
	Decimals          int      `yaml:"decimals" envconfig:"DECIMALS" validate:"gte=0,lte=10"`

	WriteParquet bool `yaml:"write_parquet" envconfig:"WRITE_PARQUET"`
	WriteSQLite  bool `yaml:"write_sqlite" envconfig:"WRITE_SQLITE"`
	WriteXLSX    bool `yaml:"write_xlsx" envconfig:"WRITE_XLSX"`

	ActivateVersion bool `yaml:"activate_version" envconfig:"ACTIVATE_VERSION"`
	Force           bool `yaml:"-" ignored:"true"`
	KeepStaging     bool `yaml:"keep_staging" envconfig:"KEEP_STAGING"`
}

// Default returns the configuration of the standard E-Saúde report run: one
// summary CSV and the chart PNGs. Parquet, SQLite and the workbook are opt-in.
func Default() Config {
	return Config{
		InputPath:         "base_de_dados/2018-08-13_Sistema_E-Saude_Medicos_-_Base_de_Dados.csv",
		OutputDir:         "output",
		Delimiter:         ";",
		Encoding:          "iso-8859-1",
		LogFormat:         "text",
		DropColumns:       append([]string(nil), model.DefaultDropColumns...),
		TopMunicipalities: 10,
		HistogramBins:     30,
		Decimals:          2,
	}
}

// LoadFromFile reads a YAML config file and merges the keys it sets into c.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

// LoadEnv overrides c with the ATTSTATS_* variables that are set.
func (c *Config) LoadEnv() error {
	if err := envconfig.Process(EnvPrefix, c); err != nil {
		return fmt.Errorf("load config from env: %w", err)
	}
	return nil
}

var validate = validator.New()

// Validate checks field constraints and that the input file is accessible.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, len(verrs))
			for i, fe := range verrs {
				msgs[i] = fmt.Sprintf("%s: failed %q (value %v)", fe.Field(), fe.Tag(), fe.Value())
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := os.Stat(c.InputPath); err != nil {
		return fmt.Errorf("file not accessible: %w", err)
	}
	return nil
}

// ValidateWithDSN checks the config and that a database URL is set.
func (c *Config) ValidateWithDSN() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.DSN == "" {
		return fmt.Errorf("--dsn or %s_DB_URL is required", EnvPrefix)
	}
	return nil
}

// ReaderOptions returns the CSV reader settings.
func (c *Config) ReaderOptions() csvread.Options {
	opts := csvread.Options{Delimiter: ';', Encoding: c.Encoding}
	if r := []rune(c.Delimiter); len(r) == 1 {
		opts.Delimiter = r[0]
	}
	return opts
}

// CleanOptions returns the cleaning pipeline settings.
func (c *Config) CleanOptions() clean.Options {
	return clean.Options{Reader: c.ReaderOptions(), DropColumns: c.DropColumns}
}

// ReportOptions returns the reporting settings.
func (c *Config) ReportOptions() report.Options {
	return report.Options{
		OutputDir:         c.OutputDir,
		Decimals:          c.Decimals,
		HistogramBins:     c.HistogramBins,
		TopMunicipalities: c.TopMunicipalities,
		Workbook:          c.WriteXLSX,
	}
}
