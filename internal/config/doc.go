// Package config defines configuration structures for the sdsschart CLI.
//
// Configuration can be provided via:
//   - Command-line flags
//   - Environment variables (SDSSCHART_ prefix)
//   - YAML configuration file
//
// Precedence is flags over environment over file over built-in defaults;
// each layer is merged with Merge, which ignores zero values.
package config
