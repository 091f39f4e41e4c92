// Package config loads the settings shared by the dataset loaders and the
// housingdata command.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. YAML configuration file
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern HOUSING_<SECTION>_<FIELD>:
//
//	HOUSING_PATHS_DATA_DIR=/srv/housing/data
//	HOUSING_PATHS_OUTPUT_DIR=/srv/housing/out
//	HOUSING_LOGGING_LEVEL=debug
//	HOUSING_METRICS_ENABLED=true
//
// Values are validated with go-playground/validator struct tags after all
// sources are merged.
package config
