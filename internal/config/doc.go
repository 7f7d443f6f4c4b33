// Package config carries the tunable thresholds for a validation run, with
// production defaults and optional YAML overrides.
package config
