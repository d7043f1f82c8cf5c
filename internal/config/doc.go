// Package config loads optional scan defaults from a portsweep
// settings file.
//
// A file named portsweep.jsonc, portsweep.json, portsweep.yaml, or
// portsweep.yml in the working directory supplies defaults for the
// port range, worker count, probe timeout, and verbosity. JSON files
// may contain comments (JSONC); github.com/tidwall/jsonc strips them
// before parsing with the standard encoding/json library. Command-line
// flags always take precedence over file values.
package config
