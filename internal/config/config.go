package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "arcli/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Interest  InterestConfig  `yaml:"interest" envconfig:"INTEREST"`
	Reconcile ReconcileConfig `yaml:"reconcile" envconfig:"RECONCILE"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Paths     PathsConfig     `yaml:"paths" envconfig:"PATHS"`
}

// InterestConfig holds the scalar parameters of one transformation run. It
// is immutable for the duration of a Transform call.
type InterestConfig struct {
	// DueDaysThreshold is the overdue age cutoff in days. Rows at or below
	// the threshold are dropped.
	DueDaysThreshold int `yaml:"due_days_threshold" envconfig:"DUE_DAYS_THRESHOLD" validate:"min=1,max=365"`

	// PerDayInterestRate is the daily interest rate in percent.
	PerDayInterestRate float64 `yaml:"per_day_interest_rate" envconfig:"PER_DAY_INTEREST_RATE" validate:"min=0.01,max=1.0"`

	// InterestWorkingDays is the number of working days interest is charged
	// for under the fixed policy.
	InterestWorkingDays int `yaml:"interest_working_days" envconfig:"INTEREST_WORKING_DAYS" validate:"min=1,max=31"`

	// OpeningBalanceAge replaces the Age of Customer Opening Balance rows,
	// overriding whatever the export carried.
	OpeningBalanceAge int `yaml:"opening_balance_age" envconfig:"OPENING_BALANCE_AGE" validate:"min=150,max=500"`

	// WorkingDaysPolicy selects how the working-days column is derived:
	// "fixed" uses InterestWorkingDays for every row, "dynamic" uses
	// Age - DueDaysThreshold per row. The two policies yield different
	// interest amounts system-wide, so the choice is explicit configuration
	// rather than a code default.
	WorkingDaysPolicy string `yaml:"working_days_policy" envconfig:"WORKING_DAYS_POLICY" validate:"oneof=fixed dynamic"`
}

// ReconcileConfig holds reconciliation parameters.
type ReconcileConfig struct {
	// KeyColumns build the composite row key.
	KeyColumns []string `yaml:"key_columns" envconfig:"KEY_COLUMNS"`

	// CompareColumns are checked for value drift on matched keys.
	CompareColumns []string `yaml:"compare_columns" envconfig:"COMPARE_COLUMNS"`

	// Tolerance is the absolute numeric difference below which two values
	// count as equal.
	Tolerance float64 `yaml:"tolerance" envconfig:"TOLERANCE" validate:"gt=0"`

	// MaxMatchedKeys caps how many matched keys the value comparison
	// evaluates. Zero means unbounded; the comparison is
	// O(matched keys x compared columns).
	MaxMatchedKeys int `yaml:"max_matched_keys" envconfig:"MAX_MATCHED_KEYS" validate:"min=0"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL"`
	Format   string `yaml:"format" envconfig:"FORMAT"`
	Output   string `yaml:"output" envconfig:"OUTPUT"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	InputDir   string `yaml:"input_dir" envconfig:"INPUT_DIR"`
	OutputDir  string `yaml:"output_dir" envconfig:"OUTPUT_DIR"`
	ReportsDir string `yaml:"reports_dir" envconfig:"REPORTS_DIR"`
	LogsDir    string `yaml:"logs_dir" envconfig:"LOGS_DIR"`
}

// Load loads configuration from an optional YAML file and environment
// variables. Precedence: environment > file > defaults. The returned config
// is fully validated.
func Load(configFile string) (*Config, error) {
	var cfg Config

	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			fileCfg, err := loadFromFile(configFile)
			if err != nil {
				return nil, apperrors.NewConfigError(fmt.Sprintf("load config file %s", configFile), err)
			}
			cfg = *fileCfg
		}
	}

	cfg.applyDefaults()

	// Environment variables override file values and defaults.
	if err := envconfig.Process("AR", &cfg); err != nil {
		return nil, apperrors.NewConfigError("load config from env", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns the validated default configuration.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyDefaults fills in defaults for unset fields.
func (c *Config) applyDefaults() {
	if c.Interest.DueDaysThreshold == 0 {
		c.Interest.DueDaysThreshold = 150
	}
	if c.Interest.PerDayInterestRate == 0 {
		c.Interest.PerDayInterestRate = 0.06
	}
	if c.Interest.InterestWorkingDays == 0 {
		c.Interest.InterestWorkingDays = 31
	}
	if c.Interest.OpeningBalanceAge == 0 {
		c.Interest.OpeningBalanceAge = 300
	}
	if c.Interest.WorkingDaysPolicy == "" {
		c.Interest.WorkingDaysPolicy = PolicyFixed
	}

	if len(c.Reconcile.KeyColumns) == 0 {
		c.Reconcile.KeyColumns = append([]string(nil), DefaultKeyColumns...)
	}
	if len(c.Reconcile.CompareColumns) == 0 {
		c.Reconcile.CompareColumns = append([]string(nil), DefaultCompareColumns...)
	}
	if c.Reconcile.Tolerance == 0 {
		c.Reconcile.Tolerance = 0.01
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stdout"
	}
	if c.Logging.FilePath == "" {
		c.Logging.FilePath = "logs/arcli.log"
	}

	if c.Paths.InputDir == "" {
		c.Paths.InputDir = "data/input"
	}
	if c.Paths.OutputDir == "" {
		c.Paths.OutputDir = "data/output"
	}
	if c.Paths.ReportsDir == "" {
		c.Paths.ReportsDir = "data/reports"
	}
	if c.Paths.LogsDir == "" {
		c.Paths.LogsDir = "logs"
	}
}

// Validate checks every configured value against its documented range.
// Validation failures are fatal at configuration-acceptance time, before any
// row processing.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		var fields []string
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, ve := range verrs {
				fields = append(fields, fmt.Sprintf("%s=%v (%s)", ve.Namespace(), ve.Value(), ve.Tag()))
			}
		}
		return apperrors.NewValidationError(
			fmt.Sprintf("configuration out of range: %v", fields), err)
	}
	return nil
}
