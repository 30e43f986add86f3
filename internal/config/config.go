package config

import (
	"os"
	"strconv"

	"gostoch/domain/stats"
	"gostoch/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Data     DataConfig
	Ops      OpsConfig
	Policy   stats.Policy
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// DatabaseConfig holds report persistence settings. An empty URL disables
// persistence.
type DatabaseConfig struct {
	URL     string
	SSLMode string
}

// DataConfig holds default input paths for the CLI
type DataConfig struct {
	InputFile string
	ModelFile string
}

// OpsConfig holds the operational endpoint settings (health, pprof)
type OpsConfig struct {
	Port    string
	Enabled bool
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "debug"),
		},
		Database: DatabaseConfig{
			URL:     getEnvOrDefault("DATABASE_URL", ""),
			SSLMode: getEnvOrDefault("SSL_MODE", "disable"),
		},
		Data: DataConfig{
			InputFile: getEnvOrDefault("INPUT_FILE", ""),
			ModelFile: getEnvOrDefault("MODEL_FILE", ""),
		},
		Ops: OpsConfig{
			Port:    getEnvOrDefault("OPS_PORT", "6060"),
			Enabled: getEnvBoolOrDefault("OPS_ENABLED", true),
		},
		Policy: loadPolicy(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

// loadPolicy starts from the default metric policy and applies any
// environment overrides.
func loadPolicy() stats.Policy {
	p := stats.DefaultPolicy()
	switch getEnvOrDefault("MODE_TIE_POLICY", "") {
	case string(stats.ModeTieAll):
		p.ModeTie = stats.ModeTieAll
	case string(stats.ModeTieNone):
		p.ModeTie = stats.ModeTieNone
	}
	switch getEnvOrDefault("PEARSON_ZERO_VARIANCE_POLICY", "") {
	case string(stats.PearsonUndefined):
		p.PearsonZeroVariance = stats.PearsonUndefined
	case string(stats.PearsonZero):
		p.PearsonZeroVariance = stats.PearsonZero
	}
	p.HomogeneityHellingerMax = getEnvFloatOrDefault("HOMOGENEITY_HELLINGER_MAX", p.HomogeneityHellingerMax)
	p.HomogeneityGJSMax = getEnvFloatOrDefault("HOMOGENEITY_GJS_MAX", p.HomogeneityGJSMax)
	p.ChainRuleDriftTolerance = getEnvFloatOrDefault("CHAIN_RULE_DRIFT_TOLERANCE", p.ChainRuleDriftTolerance)
	return p
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if config.Policy.HomogeneityHellingerMax < 0 || config.Policy.HomogeneityHellingerMax > 1 {
		return errors.ConfigInvalid("HOMOGENEITY_HELLINGER_MAX must be in [0,1]")
	}
	if config.Policy.HomogeneityGJSMax < 0 {
		return errors.ConfigInvalid("HOMOGENEITY_GJS_MAX must be non-negative")
	}
	if config.Policy.ChainRuleDriftTolerance <= 0 {
		return errors.ConfigInvalid("CHAIN_RULE_DRIFT_TOLERANCE must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
