package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/wesleyorama2/perfhud/internal/hud/provider"
	"github.com/wesleyorama2/perfhud/pkg/jsonschema"
)

const (
	// DefaultFPS is the frame rate used when run.fps is unset
	DefaultFPS = 60.0

	// DefaultName is the console title used when name is unset
	DefaultName = "perfhud"
)

// Schema is the JSON Schema that configuration documents must satisfy.
//
//go:embed schema.json
var Schema string

// LoadConfig loads a HUD configuration from a file.
//
// The file format is determined by extension:
//   - .yaml, .yml -> YAML
//   - .json -> JSON
//
// The document is checked against Schema before it is decoded.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := ValidateSchema(data, path); err != nil {
		return nil, err
	}
	return ParseConfig(data, path)
}

// ParseConfig parses configuration data.
//
// The format is determined by the file extension in path, or defaults to YAML
// if the path is empty or has an unknown extension.
func ParseConfig(data []byte, path string) (*Config, error) {
	var config Config

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json":
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	case ".yaml", ".yml", "":
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	default:
		// Try YAML by default
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config (unknown format %s): %w", ext, err)
		}
	}

	return &config, nil
}

// ValidateSchema checks raw configuration data against Schema. YAML
// documents are decoded generically and validated the same way as JSON.
func ValidateSchema(data []byte, path string) error {
	var doc interface{}

	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("failed to parse JSON config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse YAML config: %w", err)
	}

	// An empty YAML document decodes to nil; validate it as an empty object
	if doc == nil {
		doc = map[string]interface{}{}
	}

	valid, errs := jsonschema.ValidateDocument(doc, Schema)
	if !valid {
		return fmt.Errorf("config does not match schema: %w", errs)
	}
	return nil
}

// ApplyDefaults fills unset top-level settings with their defaults.
// Graph and bar fields are defaulted while decoding.
func ApplyDefaults(config *Config) {
	if config.Name == "" {
		config.Name = DefaultName
	}
	if config.Run.FPS <= 0 {
		config.Run.FPS = DefaultFPS
	}
	if config.Providers.RefreshInterval <= 0 {
		config.Providers.RefreshInterval = Duration(provider.DefaultRefreshInterval)
	}
	if config.Providers.PercentileWindow <= 0 {
		config.Providers.PercentileWindow = provider.DefaultPercentileWindow
	}
}

// FrameInterval returns the target time between frames.
func (r RunConfig) FrameInterval() time.Duration {
	fps := r.FPS
	if fps <= 0 {
		fps = DefaultFPS
	}
	return time.Duration(float64(time.Second) / fps)
}

//go:embed default.yaml
var defaultYAML []byte

// Default returns the built-in configuration used when no file is given:
// frame time curves plus FPS, CPU and memory bars.
func Default() *Config {
	config, err := ParseConfig(defaultYAML, "default.yaml")
	if err != nil {
		panic(fmt.Sprintf("invalid built-in config: %v", err))
	}
	ApplyDefaults(config)
	return config
}
