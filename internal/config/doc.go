// Package config provides centralized configuration management for nucdash.
// It handles loading configuration from multiple sources, validation, and
// resolution of the directories the dashboard reads from and writes to.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. YAML configuration file (config.yaml or configs/config.yaml)
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern NUCDASH_<SECTION>_<FIELD>:
//
//	NUCDASH_SERVER_PORT=8501
//	NUCDASH_DATA_SOURCE_FILE=data/combined_data.csv
//	NUCDASH_DATA_INVALID_HALF_LIFE=fail
//	NUCDASH_LOGGING_LEVEL=debug
//	NUCDASH_CHARTS_FORMAT=svg
//
// # Validation
//
// Every field carries validator struct tags. Load fails when any of them is violated,
// for example a port outside 1-65535, a half-life policy other than fail or drop,
// or a local neutron band whose minimum exceeds its maximum.
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	paths, err := config.NewPaths(cfg.Paths)
package config
