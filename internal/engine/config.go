package engine

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultFixedStep is the tick length used when a Config omits fixed_step.
const DefaultFixedStep = time.Second / 60

// Config is the engine's ambient configuration, mirroring WorldConfig
// trimmed to the fields the core loop actually consumes.
type Config struct {
	// FixedStep is the wall-clock length of one engine tick.
	FixedStep time.Duration `yaml:"-"`
	// FixedStepText is the YAML-facing duration string (e.g. "16ms");
	// time.Duration has no YAML unmarshaler of its own, so Config parses
	// it itself in LoadConfig.
	FixedStepText string `yaml:"fixed_step"`
	// MaxEntities is parsed from the config file; no engine component
	// reads it, so it does not bound or preallocate anything.
	MaxEntities int `yaml:"max_entities"`
	// ResourcesRoot is the directory resource and entity file lookups
	// resolve under.
	ResourcesRoot string `yaml:"resources_root"`
	// FixedStepMode selects the accumulator-driven fixed-step loop when
	// true; when false the loop runs one tick per displayed frame with
	// wall-clock delta time passed straight through.
	FixedStepMode bool `yaml:"fixed_step_mode"`
}

// LoadConfig reads and parses a YAML config file at path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := &Config{FixedStepMode: true}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if cfg.FixedStepText == "" {
		cfg.FixedStep = DefaultFixedStep
		return cfg, nil
	}
	d, err := time.ParseDuration(cfg.FixedStepText)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: fixed_step: %w", path, err)
	}
	cfg.FixedStep = d
	return cfg, nil
}
