package config

import (
	"strings"
	"testing"
	"time"

	"github.com/havenhq/haven/api/internal/model"
)

func TestConfig_Validate_ValidConfig(t *testing.T) {
	if err := validBaseConfig().Validate(); err != nil {
		t.Errorf("expected valid config, got error: %v", err)
	}
}

func TestConfig_Validate_InvalidServerEnv(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Server.Env = "invalid"

	err := cfg.Validate()
	if err == nil {
		t.Error("expected error for invalid server.env")
	}
	if !strings.Contains(err.Error(), "server.env") {
		t.Errorf("expected error to mention server.env, got: %v", err)
	}
}

func TestConfig_Validate_MissingPort(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Server.Port = ""

	err := cfg.Validate()
	if err == nil {
		t.Error("expected error for missing server.port")
	}
	if !strings.Contains(err.Error(), "server.port") {
		t.Errorf("expected error to mention server.port, got: %v", err)
	}
}

func TestConfig_Validate_MissingDatabaseHost(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Database.Host = ""

	err := cfg.Validate()
	if err == nil {
		t.Error("expected error for missing database.host")
	}
	if !strings.Contains(err.Error(), "database.host") {
		t.Errorf("expected error to mention database.host, got: %v", err)
	}
}

func TestConfig_Validate_NegativeWeight(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Matching.InterestWeight = -0.1

	err := cfg.Validate()
	if err == nil {
		t.Error("expected error for negative weight")
	}
	if !strings.Contains(err.Error(), "matching.interest_weight") {
		t.Errorf("expected error to mention matching.interest_weight, got: %v", err)
	}
}

func TestConfig_Validate_ThresholdOutOfRange(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Matching.MatchingThreshold = 1.5

	err := cfg.Validate()
	if err == nil {
		t.Error("expected error for threshold above 1")
	}
	if !strings.Contains(err.Error(), "matching.matching_threshold") {
		t.Errorf("expected error to mention matching.matching_threshold, got: %v", err)
	}
}

func TestConfig_Validate_GroupMaxTooSmall(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Matching.GroupMax = 1

	err := cfg.Validate()
	if err == nil {
		t.Error("expected error for group_max below 2")
	}
	if !strings.Contains(err.Error(), "matching.group_max") {
		t.Errorf("expected error to mention matching.group_max, got: %v", err)
	}
}

func TestConfig_Validate_NegativeProfileWeight(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Events.Profiles = map[string]model.EventTypeWeights{
		"Social": {Interest: -1, Transition: 0.5, Clinical: 0.5},
	}

	err := cfg.Validate()
	if err == nil {
		t.Error("expected error for negative profile weight")
	}
	if !strings.Contains(err.Error(), "events.profiles.Social") {
		t.Errorf("expected error to mention events.profiles.Social, got: %v", err)
	}
}

func TestConfig_Validate_WorkerQueueSize(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Worker.QueueSize = 0

	err := cfg.Validate()
	if err == nil {
		t.Error("expected error for zero worker.queue_size")
	}
	if !strings.Contains(err.Error(), "worker.queue_size") {
		t.Errorf("expected error to mention worker.queue_size, got: %v", err)
	}
}

func TestConfig_Validate_MultipleErrors(t *testing.T) {
	cfg := &Config{}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected multiple validation errors")
	}

	errStr := err.Error()
	expectedFields := []string{"server.port", "server.env", "database.host", "matching.cutoff_distance_km", "worker.queue_size"}
	for _, field := range expectedFields {
		if !strings.Contains(errStr, field) {
			t.Errorf("expected error to mention %s, got: %v", field, err)
		}
	}
}

func TestConfig_IsDevelopment(t *testing.T) {
	cfg := &Config{Server: ServerConfig{Env: "development"}}
	if !cfg.IsDevelopment() {
		t.Error("expected IsDevelopment() to return true")
	}

	cfg.Server.Env = "production"
	if cfg.IsDevelopment() {
		t.Error("expected IsDevelopment() to return false in production")
	}
}

func TestConfig_IsProduction(t *testing.T) {
	cfg := &Config{Server: ServerConfig{Env: "production"}}
	if !cfg.IsProduction() {
		t.Error("expected IsProduction() to return true")
	}
}

func TestMatchingConfig_Weights(t *testing.T) {
	m := MatchingConfig{
		PHQWeight:         0.3,
		GADWeight:         0.2,
		InterestWeight:    0.2,
		LifeWeight:        0.3,
		MatchingThreshold: 0.4,
		CutoffDistanceKm:  50,
		GroupMax:          10,
	}

	w := m.Weights()

	if w.PHQWeight != 0.3 || w.GADWeight != 0.2 || w.InterestWeight != 0.2 || w.LifeWeight != 0.3 {
		t.Errorf("weights not carried over: %+v", w)
	}
	if w.MatchingThreshold != 0.4 || w.CutoffDistanceKm != 50 {
		t.Errorf("threshold/cutoff not carried over: %+v", w)
	}
}

func TestDefaultConfig_IsValid(t *testing.T) {
	if err := defaultConfig().Validate(); err != nil {
		t.Errorf("built-in defaults should validate, got: %v", err)
	}
}

func TestEnvTransformFunc_MappedKeys(t *testing.T) {
	cases := map[string]string{
		"HAVEN_SERVER_PORT":        "server.port",
		"HAVEN_DB_HOST":            "database.host",
		"HAVEN_MATCHING_THRESHOLD": "matching.matching_threshold",
		"HAVEN_MATCHING_CUTOFF_KM": "matching.cutoff_distance_km",
		"HAVEN_GROUP_MAX":          "matching.group_max",
		"HAVEN_WORKER_QUEUE_SIZE":  "worker.queue_size",
	}

	for in, want := range cases {
		if got := envTransformFunc(in); got != want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestEnvTransformFunc_DropsUnknownKeys(t *testing.T) {
	if got := envTransformFunc("HAVEN_SOMETHING_ELSE"); got != "" {
		t.Errorf("unknown key should map to empty, got %q", got)
	}
}

// validBaseConfig returns a minimal valid configuration for testing
func validBaseConfig() *Config {
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
			PHQWeight:         0.3,
			GADWeight:         0.2,
			InterestWeight:    0.2,
			LifeWeight:        0.3,
			MatchingThreshold: 0.4,
			CutoffDistanceKm:  50,
			GroupMax:          10,
		},
		Events: EventMatchingConfig{
			Profiles: model.DefaultEventWeightProfiles,
		},
		Worker: WorkerConfig{
			QueueSize:    64,
			RetryMax:     3,
			RetryBackoff: 100 * time.Millisecond,
			RunTimeout:   5 * time.Second,
		},
	}
}
