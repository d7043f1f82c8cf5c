package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/mmr-tortoise/portsweep/internal/model"
)

// fileNames lists the recognized settings file names, in precedence
// order. The first one found in the search directory wins.
var fileNames = []string{
	"portsweep.jsonc",
	"portsweep.json",
	"portsweep.yaml",
	"portsweep.yml",
}

// Defaults holds the fully resolved scan defaults: built-in values
// overlaid with whatever the settings file specified.
type Defaults struct {
	StartPort   int
	EndPort     int
	Concurrency int

	// Timeout is zero unless the settings file sets one; zero lets
	// the scan engine apply its own per-probe default.
	Timeout time.Duration

	Verbose bool
}

// fileSettings is the raw on-disk schema. Every field is optional;
// pointer types distinguish "absent" from a zero value.
type fileSettings struct {
	StartPort   *int    `json:"startPort" yaml:"startPort"`
	EndPort     *int    `json:"endPort" yaml:"endPort"`
	Concurrency *int    `json:"concurrency" yaml:"concurrency"`
	Timeout     *string `json:"timeout" yaml:"timeout"`
	Verbose     *bool   `json:"verbose" yaml:"verbose"`
}

// builtin returns the hard-coded defaults used when no settings file
// is present: the full port space at the conventional worker count.
func builtin() Defaults {
	return Defaults{
		StartPort:   model.DefaultStartPort,
		EndPort:     model.DefaultEndPort,
		Concurrency: model.DefaultConcurrency,
	}
}

// Load resolves scan defaults from dir. A missing settings file is not
// an error; the built-in defaults are returned. A file that exists but
// cannot be read or parsed yields a CLIError with ExitConfigError.
func Load(dir string) (Defaults, error) {
	defaults := builtin()

	path, found := findSettingsFile(dir)
	if !found {
		return defaults, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Defaults{}, model.WrapCLIError(model.ExitConfigError,
			fmt.Sprintf("failed to read settings file %s", path), err)
	}

	var settings fileSettings
	if isYAML(path) {
		err = yaml.Unmarshal(data, &settings)
	} else {
		// JSON settings files may carry comments and trailing commas;
		// jsonc.ToJSON rewrites them into strict JSON first.
		err = json.Unmarshal(jsonc.ToJSON(data), &settings)
	}
	if err != nil {
		return Defaults{}, model.WrapCLIError(model.ExitConfigError,
			fmt.Sprintf("failed to parse settings file %s", path), err)
	}

	if err := apply(&defaults, settings); err != nil {
		return Defaults{}, model.WrapCLIError(model.ExitConfigError,
			fmt.Sprintf("invalid settings file %s", path), err)
	}
	return defaults, nil
}

// findSettingsFile returns the first recognized settings file in dir.
func findSettingsFile(dir string) (string, bool) {
	for _, name := range fileNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

// isYAML reports whether the file extension selects the YAML parser.
func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// apply overlays the file settings onto the built-in defaults. Only
// fields present in the file are touched.
func apply(defaults *Defaults, settings fileSettings) error {
	if settings.StartPort != nil {
		defaults.StartPort = *settings.StartPort
	}
	if settings.EndPort != nil {
		defaults.EndPort = *settings.EndPort
	}
	if settings.Concurrency != nil {
		defaults.Concurrency = *settings.Concurrency
	}
	if settings.Timeout != nil {
		timeout, err := time.ParseDuration(*settings.Timeout)
		if err != nil {
			return fmt.Errorf("timeout: %w", err)
		}
		if timeout <= 0 {
			return fmt.Errorf("timeout must be positive, got %s", timeout)
		}
		defaults.Timeout = timeout
	}
	if settings.Verbose != nil {
		defaults.Verbose = *settings.Verbose
	}
	return nil
}
