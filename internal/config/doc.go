// Package config loads and validates application configuration for the
// Haven API.
//
// Configuration is layered with koanf. Precedence, lowest to highest:
//
//  1. Built-in defaults
//  2. YAML config file (HAVEN_CONFIG, config.yaml, or /etc/haven/config.yaml)
//  3. HAVEN_-prefixed environment variables
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Load validates the result; a Config returned without error is safe to use.
//
// # Environment Variables
//
// Environment variables use an explicit mapping to nested keys, e.g.
// HAVEN_SERVER_PORT -> server.port and HAVEN_DB_HOST -> database.host.
// Unmapped HAVEN_* variables are ignored. Per-event-type weight profiles
// can only be set through the YAML file.
package config
