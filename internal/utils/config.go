package utils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Output formats for the driver trace
const (
	FormatText    = "text"
	FormatMsgpack = "msgpack"
)

// Config struct holds application configuration
type Config struct {
	LogFile      string `yaml:"log_file"`
	Debug        bool   `yaml:"debug"`
	OutputFormat string `yaml:"output_format"`
	OutputFile   string `yaml:"output_file"`
	TraceEvents  bool   `yaml:"trace_events"`
}

var (
	configInstance *Config   // Singleton configInstance
	configOnce     sync.Once // Ensures thread-safe initialization
)

// DefaultConfigPath returns ~/.dlist/dlist.yaml
func DefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "dlist.yaml"
	}
	return filepath.Join(homeDir, ".dlist", "dlist.yaml")
}

// LoadConfig initializes the singleton configInstance
func LoadConfig(filename string) (*Config, error) {
	var err error
	configOnce.Do(func() {
		configInstance, err = loadConfigFromFile(filename)
	})
	if err != nil {
		return nil, err
	}
	return GetConfig()
}

// loadConfigFromFile reads and parses the config file
func loadConfigFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return getDefaultConfig(), nil
		}
		return nil, err
	}

	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}

	applyDefaults(config)
	return config, nil
}

// GetConfig returns the singleton config configInstance
func GetConfig() (*Config, error) {
	if configInstance == nil {
		return nil, errors.New("config not initialized. Call LoadConfig() first")
	}
	return configInstance, nil
}

// getDefaultConfig returns default config values
func getDefaultConfig() *Config {
	return &Config{
		OutputFormat: FormatText,
	}
}

// applyDefaults ensures missing values get defaults
func applyDefaults(config *Config) {
	if config.OutputFormat != FormatText && config.OutputFormat != FormatMsgpack {
		config.OutputFormat = FormatText
	}
}
