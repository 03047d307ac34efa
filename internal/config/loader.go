package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/camposur/herdtrack/internal/db"
	"github.com/camposur/herdtrack/internal/domain"
)

// Config is the full application configuration surface.
type Config struct {
	DB         db.Config
	Thresholds domain.SelectionThresholds
	Report     ReportConfig
}

// ReportConfig holds options for the herd report writer.
type ReportConfig struct {
	OutputDir string
}

// Load reads config.yaml from the given path and applies HERD_-prefixed
// environment overrides on top of the defaults.
func Load(configPath string) (Config, error) {
	cfg := Config{
		DB:         db.DefaultConfig(),
		Thresholds: domain.DefaultSelectionThresholds(),
		Report:     ReportConfig{OutputDir: "./reports"},
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AutomaticEnv()
	v.SetEnvPrefix("HERD")

	v.BindEnv("database.host")
	v.BindEnv("database.port")
	v.BindEnv("database.user")
	v.BindEnv("database.password")
	v.BindEnv("database.dbname")
	v.BindEnv("database.sslmode")
	v.BindEnv("report.output_dir")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		// Missing config.yaml is fine; defaults plus env cover it.
	}

	if v.IsSet("database.host") {
		cfg.DB.Host = v.GetString("database.host")
	}
	if v.IsSet("database.port") {
		cfg.DB.Port = v.GetInt("database.port")
	}
	if v.IsSet("database.user") {
		cfg.DB.User = v.GetString("database.user")
	}
	if v.IsSet("database.password") {
		cfg.DB.Password = v.GetString("database.password")
	}
	if v.IsSet("database.dbname") {
		cfg.DB.DBName = v.GetString("database.dbname")
	}
	if v.IsSet("database.sslmode") {
		cfg.DB.SSLMode = v.GetString("database.sslmode")
	}

	if v.IsSet("report.output_dir") {
		cfg.Report.OutputDir = v.GetString("report.output_dir")
	}

	if v.IsSet("thresholds.open_days_green_max") {
		cfg.Thresholds.OpenDaysGreenMax = v.GetInt("thresholds.open_days_green_max")
	}
	if v.IsSet("thresholds.open_days_yellow_max") {
		cfg.Thresholds.OpenDaysYellowMax = v.GetInt("thresholds.open_days_yellow_max")
	}
	if v.IsSet("thresholds.open_days_critical") {
		cfg.Thresholds.OpenDaysCritical = v.GetInt("thresholds.open_days_critical")
	}
	if v.IsSet("thresholds.iep_green_max") {
		cfg.Thresholds.IEPGreenMax = v.GetInt("thresholds.iep_green_max")
	}
	if v.IsSet("thresholds.iep_yellow_max") {
		cfg.Thresholds.IEPYellowMax = v.GetInt("thresholds.iep_yellow_max")
	}
	if v.IsSet("thresholds.iep_critical") {
		cfg.Thresholds.IEPCritical = v.GetInt("thresholds.iep_critical")
	}

	return cfg, nil
}
