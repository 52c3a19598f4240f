// internal/config/config.go
package config

import (
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Sources        SourcesConfig
	Output         OutputConfig
	Classification ClassificationConfig
	App            AppConfig
}

// SourcesConfig names the WMS export files. Depletion and item view are
// mandatory; activity reports are optional and missing ones are skipped.
type SourcesConfig struct {
	DepletionFile  string
	ItemMasterFile string
	ActivityFiles  []string
}

type OutputConfig struct {
	MigrationFile string
}

// ClassificationConfig carries every tunable threshold so boundary behavior
// stays testable instead of being baked into classifier code.
type ClassificationConfig struct {
	// Cumulative share of annual consumption value: <= AThreshold is A,
	// <= BThreshold is B, the rest is C.
	ABCAThreshold float64
	ABCBThreshold float64

	// Coefficient of variation: < XThreshold is X, < YThreshold is Y,
	// the rest (including +Inf) is Z.
	XYZXThreshold float64
	XYZYThreshold float64

	// Minimum distinct months of outbound history required before CV is
	// measured rather than estimated.
	MinMonthsForXYZ int

	// Suffix some source systems append to SKU codes, tolerated during
	// cross-source key resolution.
	SKUSuffix string
}

type AppConfig struct {
	LogLevel string
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		viper.SetDefault("DEPLETION_FILE", "ItemActivityInventoryDepletion.xlsx")
		viper.SetDefault("ITEM_MASTER_FILE", "ViewItem.xlsx")
		viper.SetDefault("ACTIVITY_FILES", "")
		viper.SetDefault("MIGRATION_FILE", "014_sku_classification_and_master_data.sql")
		viper.SetDefault("ABC_A_THRESHOLD", 0.80)
		viper.SetDefault("ABC_B_THRESHOLD", 0.96)
		viper.SetDefault("XYZ_X_THRESHOLD", 0.5)
		viper.SetDefault("XYZ_Y_THRESHOLD", 1.0)
		viper.SetDefault("MIN_MONTHS_FOR_XYZ", 6)
		viper.SetDefault("SKU_SUFFIX", "GT")
		viper.SetDefault("LOG_LEVEL", "info")

		// Read from environment variables
		viper.AutomaticEnv()

		instance = &Config{
			Sources: SourcesConfig{
				DepletionFile:  viper.GetString("DEPLETION_FILE"),
				ItemMasterFile: viper.GetString("ITEM_MASTER_FILE"),
				ActivityFiles:  splitFileList(viper.GetString("ACTIVITY_FILES")),
			},
			Output: OutputConfig{
				MigrationFile: viper.GetString("MIGRATION_FILE"),
			},
			Classification: ClassificationConfig{
				ABCAThreshold:   viper.GetFloat64("ABC_A_THRESHOLD"),
				ABCBThreshold:   viper.GetFloat64("ABC_B_THRESHOLD"),
				XYZXThreshold:   viper.GetFloat64("XYZ_X_THRESHOLD"),
				XYZYThreshold:   viper.GetFloat64("XYZ_Y_THRESHOLD"),
				MinMonthsForXYZ: viper.GetInt("MIN_MONTHS_FOR_XYZ"),
				SKUSuffix:       viper.GetString("SKU_SUFFIX"),
			},
			App: AppConfig{
				LogLevel: viper.GetString("LOG_LEVEL"),
			},
		}
	})

	return instance
}

// splitFileList parses a comma-separated file list. The separator is a
// comma, not whitespace, because WMS export names routinely contain spaces
// ("Item_Activity_Report (1).xlsx").
func splitFileList(raw string) []string {
	var files []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			files = append(files, p)
		}
	}
	return files
}

// DefaultClassification returns the standard thresholds without touching the
// environment. Classifier tests parametrize from here.
func DefaultClassification() ClassificationConfig {
	return ClassificationConfig{
		ABCAThreshold:   0.80,
		ABCBThreshold:   0.96,
		XYZXThreshold:   0.5,
		XYZYThreshold:   1.0,
		MinMonthsForXYZ: 6,
		SKUSuffix:       "GT",
	}
}
