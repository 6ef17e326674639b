// Package config loads bsutil's YAML configuration.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/rninformatics/battlesnake-utils/analysis"
	"github.com/rninformatics/battlesnake-utils/discovery"
	"github.com/rninformatics/battlesnake-utils/engine"
)

//go:embed defaults.yaml
var defaultYAML []byte

// Config is the full configuration file.
type Config struct {
	Walk      analysis.Limits  `yaml:"walk"`
	Analysis  AnalysisConfig   `yaml:"analysis"`
	Log       LogConfig        `yaml:"log"`
	Engine    engine.Config    `yaml:"engine"`
	Discovery discovery.Config `yaml:"discovery"`
	Server    ServerConfig     `yaml:"server"`
	Record    RecordConfig     `yaml:"record"`
}

type AnalysisConfig struct {
	// AlwaysWalk runs the perimeter walk for every legal move.
	AlwaysWalk bool `yaml:"always_walk"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type ServerConfig struct {
	Addr   string `yaml:"addr"`
	Author string `yaml:"author"`
	Color  string `yaml:"color"`
}

type RecordConfig struct {
	OutDir string `yaml:"out_dir"`
}

// Default returns the embedded defaults.
func Default() Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return fallback()
	}
	return cfg
}

func fallback() Config {
	return Config{
		Walk:      analysis.DefaultLimits,
		Log:       LogConfig{Level: "info", Format: "text"},
		Engine:    engine.DefaultConfig(),
		Discovery: discovery.DefaultConfig(),
		Server:    ServerConfig{Addr: ":8080", Author: "bsutil", Color: "#00ff00"},
		Record:    RecordConfig{OutDir: filepath.Join("data", "analysis")},
	}
}

// Load reads the configuration. Files are applied over the defaults, so a
// file only needs the keys it changes.
// Search order: customPath -> ~/.bsutil/config.yaml -> ./configs/bsutil.yaml -> embedded default
func Load(customPath string) (Config, error) {
	cfg := Default()

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	for _, path := range []string{userConfigPath(), filepath.Join("configs", "bsutil.yaml")} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		next := cfg
		if err := yaml.Unmarshal(data, &next); err == nil {
			return next, next.Validate()
		}
	}
	return cfg, nil
}

// userConfigPath returns the path to the user config file, or empty if home is unavailable.
func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".bsutil", "config.yaml")
}

// Validate rejects limits that would stop a walk before it starts.
func (c Config) Validate() error {
	if c.Walk.MaxLoops < 1 || c.Walk.MaxTurns < 4 || c.Walk.VisitFactor < 1 {
		return fmt.Errorf("invalid walk limits %+v", c.Walk)
	}
	if c.Engine.ConnectTimeout < 0 || c.Engine.ReadTimeout < 0 {
		return fmt.Errorf("negative engine timeout")
	}
	return nil
}
