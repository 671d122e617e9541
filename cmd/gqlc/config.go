package main

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the .gqlrc.yaml configuration file: default
// inference policy and metadata-validation toggle for `parse --validate`,
// and an optional Neo4j connection to back a live MetadataProvider.
// Grounded on config.go's LoadConfig/FindConfig walk-up-to-root shape.
// `parse --validate` reads only InferencePolicy; MetadataValidation and
// Connection are loaded but not used by any gqlc command.
type Config struct {
	InferencePolicy     string           `yaml:"inferencePolicy,omitempty"`
	MetadataValidation  bool             `yaml:"metadataValidation,omitempty"`
	Connection          ConnectionConfig `yaml:"connection,omitempty"`
}

// ConnectionConfig holds connection settings for a live neo4jcatalog
// MetadataProvider.
type ConnectionConfig struct {
	URI      string `yaml:"uri,omitempty"`
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
	Database string `yaml:"database,omitempty"`
}

// DefaultConfigNames are the filenames FindConfig searches for.
var DefaultConfigNames = []string{".gqlrc.yaml", ".gqlrc.yml", "gqlrc.yaml", "gqlrc.yml"}

// LoadConfig finds and loads the nearest .gqlrc.yaml walking up from dir.
// A missing config file is not an error: the zero Config (lenient
// defaults, no metadata validation) is returned instead.
func LoadConfig(dir string) (*Config, error) {
	path, err := FindConfig(dir)
	if err != nil {
		return &Config{}, nil //nolint:nilerr // absent config means "use defaults"
	}

	return LoadConfigFile(path)
}

// FindConfig searches for a config file starting from dir and walking up
// to the filesystem root.
func FindConfig(dir string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	for d := absDir; ; {
		for _, name := range DefaultConfigNames {
			path := filepath.Join(d, name)

			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}

		parent := filepath.Dir(d)
		if parent == d {
			return "", os.ErrNotExist
		}

		d = parent
	}
}

// LoadConfigFile loads a config from a specific path.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}

	var cfg Config

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
