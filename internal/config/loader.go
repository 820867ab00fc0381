package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/havenhq/haven/api/internal/model"
)

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "HAVEN_CONFIG"

// DefaultConfigPaths lists where config files are searched, in order.
// The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/haven/config.yaml",
}

// defaultConfig returns the built-in defaults. They are applied first,
// then overridden by the config file, then by environment variables.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           "8080",
			Env:            "development",
			ReadTimeout:    15 * time.Second,
			WriteTimeout:   15 * time.Second,
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		Database: DatabaseConfig{
			Host:      "localhost",
			Port:      "8000",
			Namespace: "haven",
			Database:  "main",
			User:      "root",
			Password:  "root",
		},
		Matching: MatchingConfig{
			PHQWeight:         model.DefaultMatchWeights.PHQWeight,
			GADWeight:         model.DefaultMatchWeights.GADWeight,
			InterestWeight:    model.DefaultMatchWeights.InterestWeight,
			LifeWeight:        model.DefaultMatchWeights.LifeWeight,
			MatchingThreshold: model.DefaultMatchWeights.MatchingThreshold,
			CutoffDistanceKm:  model.DefaultMatchWeights.CutoffDistanceKm,
			GroupMax:          model.DefaultGroupMax,
		},
		Events: EventMatchingConfig{
			Profiles: model.DefaultEventWeightProfiles,
		},
		Worker: WorkerConfig{
			QueueSize:    256,
			RetryMax:     3,
			RetryBackoff: 500 * time.Millisecond,
			RunTimeout:   30 * time.Second,
		},
	}
}

// Load builds a Config by layering defaults, an optional YAML file, and
// environment variables. Precedence (low -> high):
//  1. built-in defaults
//  2. file (YAML) from HAVEN_CONFIG or a default path
//  3. env (prefix HAVEN_)
func Load() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: config file (optional)
	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	// Layer 3: environment variables (highest priority)
	envProvider := env.Provider("HAVEN_", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Env vars come in as strings; split known slice fields on commas.
	if err := processSliceFields(k); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the path of the first config file found, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// envTransformFunc maps HAVEN_* environment variable names to koanf config
// paths. Unmapped keys are dropped so stray environment variables cannot
// pollute the config.
//
// Examples:
//   - HAVEN_SERVER_PORT -> server.port
//   - HAVEN_DB_HOST -> database.host
//   - HAVEN_MATCHING_THRESHOLD -> matching.matching_threshold
func envTransformFunc(key string) string {
	key = strings.TrimPrefix(strings.ToLower(key), "haven_")

	envMappings := map[string]string{
		// Server
		"server_port":          "server.port",
		"server_env":           "server.env",
		"server_read_timeout":  "server.read_timeout",
		"server_write_timeout": "server.write_timeout",
		"cors_allowed_origins": "server.allowed_origins",

		// Database
		"db_host":      "database.host",
		"db_port":      "database.port",
		"db_namespace": "database.namespace",
		"db_database":  "database.database",
		"db_user":      "database.user",
		"db_password":  "database.password",

		// Group matching
		"matching_phq_weight":      "matching.phq_weight",
		"matching_gad_weight":      "matching.gad_weight",
		"matching_interest_weight": "matching.interest_weight",
		"matching_life_weight":     "matching.life_weight",
		"matching_threshold":       "matching.matching_threshold",
		"matching_cutoff_km":       "matching.cutoff_distance_km",
		"group_max":                "matching.group_max",

		// Affinity worker
		"worker_queue_size":    "worker.queue_size",
		"worker_retry_max":     "worker.retry_max",
		"worker_retry_backoff": "worker.retry_backoff",
		"worker_run_timeout":   "worker.run_timeout",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}
	return ""
}

// sliceConfigPaths defines which config paths are parsed as comma-separated
// slices when they arrive as env var strings.
var sliceConfigPaths = []string{
	"server.allowed_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		// Already a slice (from YAML or defaults)
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		if strVal, ok := val.(string); ok && strVal != "" {
			parts := strings.Split(strVal, ",")
			trimmed := make([]string, 0, len(parts))
			for _, p := range parts {
				if p = strings.TrimSpace(p); p != "" {
					trimmed = append(trimmed, p)
				}
			}
			if len(trimmed) > 0 {
				if err := k.Set(path, trimmed); err != nil {
					return fmt.Errorf("failed to set %s: %w", path, err)
				}
			}
		}
	}
	return nil
}
