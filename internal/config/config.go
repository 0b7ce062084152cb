package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/gi8lino/bugcsv/internal/jira"

	"gopkg.in/yaml.v3"
)

// Config holds the optional file-based settings: the project-schema
// dependent custom field ids and template overrides. Everything has a
// working default, so running without a config file is fine.
type Config struct {
	FieldIDs  jira.FieldIDs `yaml:"fieldIDs"`
	BoardType string        `yaml:"boardType"`
	Templates Templates     `yaml:"templates"`
}

// Templates holds overrides for the built-in render templates.
type Templates struct {
	Description string `yaml:"description"`
	Preview     string `yaml:"preview"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		FieldIDs:  jira.DefaultFieldIDs(),
		BoardType: "scrum",
	}
}

// Load reads the config file at path and merges it over the defaults.
// An empty path returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}

	// partial field id overrides fall back to the defaults
	defaults := jira.DefaultFieldIDs()
	if cfg.FieldIDs.Parent == "" {
		cfg.FieldIDs.Parent = defaults.Parent
	}
	if cfg.FieldIDs.Epic == "" {
		cfg.FieldIDs.Epic = defaults.Epic
	}
	if cfg.FieldIDs.Sprint == "" {
		cfg.FieldIDs.Sprint = defaults.Sprint
	}
	if cfg.BoardType == "" {
		cfg.BoardType = "scrum"
	}

	return cfg, Validate(cfg)
}

// Validate checks the consistency of a loaded config.
func Validate(cfg Config) error {
	var errs []string

	if cfg.BoardType != "scrum" && cfg.BoardType != "kanban" {
		errs = append(errs, fmt.Sprintf("boardType must be %q or %q, got %q", "scrum", "kanban", cfg.BoardType))
	}
	for name, id := range map[string]string{
		"fieldIDs.parent": cfg.FieldIDs.Parent,
		"fieldIDs.epic":   cfg.FieldIDs.Epic,
		"fieldIDs.sprint": cfg.FieldIDs.Sprint,
	} {
		if !strings.HasPrefix(id, "customfield_") {
			errs = append(errs, fmt.Sprintf("%s must start with %q, got %q", name, "customfield_", id))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
