// Package cli provides the reflectgen command tree.
//
// Flags are bound to viper keys, so every setting can also come from
// reflectgen.yaml in the working directory or from REFLECTGEN_* environment
// variables (REFLECTGEN_GEN_PARALLEL, REFLECTGEN_LOG_LEVEL, ...). Logs go to a
// rotating file, never to the terminal.
package cli
