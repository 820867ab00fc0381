package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/havenhq/haven/api/internal/model"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig             `koanf:"server"`
	Database DatabaseConfig           `koanf:"database"`
	Matching MatchingConfig           `koanf:"matching"`
	Events   EventMatchingConfig      `koanf:"events"`
	Worker   WorkerConfig             `koanf:"worker"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port           string        `koanf:"port"`
	Env            string        `koanf:"env"`
	ReadTimeout    time.Duration `koanf:"read_timeout"`
	WriteTimeout   time.Duration `koanf:"write_timeout"`
	AllowedOrigins []string      `koanf:"allowed_origins"`
}

// DatabaseConfig holds SurrealDB connection settings
type DatabaseConfig struct {
	Host      string `koanf:"host"`
	Port      string `koanf:"port"`
	Namespace string `koanf:"namespace"`
	Database  string `koanf:"database"`
	User      string `koanf:"user"`
	Password  string `koanf:"password"`
}

// MatchingConfig holds the group planner's scoring weights and limits.
type MatchingConfig struct {
	PHQWeight         float64 `koanf:"phq_weight"`
	GADWeight         float64 `koanf:"gad_weight"`
	InterestWeight    float64 `koanf:"interest_weight"`
	LifeWeight        float64 `koanf:"life_weight"`
	MatchingThreshold float64 `koanf:"matching_threshold"`
	CutoffDistanceKm  float64 `koanf:"cutoff_distance_km"`
	GroupMax          int     `koanf:"group_max"`
}

// Weights returns the planner weights in the form the matching services take.
func (m MatchingConfig) Weights() model.MatchWeights {
	return model.MatchWeights{
		PHQWeight:         m.PHQWeight,
		GADWeight:         m.GADWeight,
		InterestWeight:    m.InterestWeight,
		LifeWeight:        m.LifeWeight,
		MatchingThreshold: m.MatchingThreshold,
		CutoffDistanceKm:  m.CutoffDistanceKm,
	}
}

// EventMatchingConfig holds the per-event-type weight profiles. Types not
// listed here fall back to the built-in default profile.
type EventMatchingConfig struct {
	Profiles map[string]model.EventTypeWeights `koanf:"profiles"`
}

// WorkerConfig holds settings for the background affinity worker.
type WorkerConfig struct {
	QueueSize    int           `koanf:"queue_size"`
	RetryMax     int           `koanf:"retry_max"`
	RetryBackoff time.Duration `koanf:"retry_backoff"`
	RunTimeout   time.Duration `koanf:"run_timeout"`
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Validate checks that all required configuration values are present and valid.
// It returns an error describing all validation failures, or nil if valid.
func (c *Config) Validate() error {
	var errs []error

	// Server validation
	if c.Server.Port == "" {
		errs = append(errs, errors.New("server.port is required"))
	}
	if c.Server.Env != "development" && c.Server.Env != "production" && c.Server.Env != "test" {
		errs = append(errs, fmt.Errorf("server.env must be 'development', 'production', or 'test', got '%s'", c.Server.Env))
	}
	if len(c.Server.AllowedOrigins) == 0 {
		errs = append(errs, errors.New("server.allowed_origins must have at least one origin"))
	}

	// Database validation
	if c.Database.Host == "" {
		errs = append(errs, errors.New("database.host is required"))
	}
	if c.Database.Port == "" {
		errs = append(errs, errors.New("database.port is required"))
	}
	if c.Database.Namespace == "" {
		errs = append(errs, errors.New("database.namespace is required"))
	}
	if c.Database.Database == "" {
		errs = append(errs, errors.New("database.database is required"))
	}

	// Matching validation
	for name, w := range map[string]float64{
		"matching.phq_weight":      c.Matching.PHQWeight,
		"matching.gad_weight":      c.Matching.GADWeight,
		"matching.interest_weight": c.Matching.InterestWeight,
		"matching.life_weight":     c.Matching.LifeWeight,
	} {
		if w < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative, got %v", name, w))
		}
	}
	if c.Matching.MatchingThreshold < 0 || c.Matching.MatchingThreshold > 1 {
		errs = append(errs, fmt.Errorf("matching.matching_threshold must be in [0,1], got %v", c.Matching.MatchingThreshold))
	}
	if c.Matching.CutoffDistanceKm <= 0 {
		errs = append(errs, fmt.Errorf("matching.cutoff_distance_km must be positive, got %v", c.Matching.CutoffDistanceKm))
	}
	if c.Matching.GroupMax < 2 {
		errs = append(errs, fmt.Errorf("matching.group_max must be at least 2, got %d", c.Matching.GroupMax))
	}

	// Event profile validation
	for eventType, p := range c.Events.Profiles {
		if p.Interest < 0 || p.Transition < 0 || p.Clinical < 0 {
			errs = append(errs, fmt.Errorf("events.profiles.%s weights must not be negative", eventType))
		}
	}

	// Worker validation
	if c.Worker.QueueSize <= 0 {
		errs = append(errs, fmt.Errorf("worker.queue_size must be positive, got %d", c.Worker.QueueSize))
	}
	if c.Worker.RetryMax < 0 {
		errs = append(errs, fmt.Errorf("worker.retry_max must not be negative, got %d", c.Worker.RetryMax))
	}
	if c.Worker.RunTimeout <= 0 {
		errs = append(errs, fmt.Errorf("worker.run_timeout must be positive, got %v", c.Worker.RunTimeout))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
