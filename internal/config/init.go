package config

import (
	"os"

	"github.com/goccy/go-yaml"

	"github.com/filmdesk/filmdesk/pkg/errors"
)

// starterConfig is the shape of the generated starter config file.
type starterConfig struct {
	DataDir            string `yaml:"data_dir"`
	RecommenderPath    string `yaml:"recommender_path"`
	RecommenderTimeout string `yaml:"recommender_timeout"`
	LogLevel           string `yaml:"log_level"`
	LogFormat          string `yaml:"log_format"`
}

// WriteStarter writes a starter config file with default values to the
// given path. Refuses to overwrite an existing file.
func WriteStarter(path string) error {
	if _, err := os.Stat(path); err == nil {
		return errors.NewValidationError("config", path, "config file already exists")
	}

	starter := starterConfig{
		DataDir:            DefaultDataDir,
		RecommenderPath:    DefaultRecommenderPath,
		RecommenderTimeout: DefaultRecommenderTimeout.String(),
		LogLevel:           "info",
		LogFormat:          "auto",
	}

	data, err := yaml.Marshal(starter)
	if err != nil {
		return errors.NewPersistenceError("encode", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.NewPersistenceError("write", path, err)
	}
	return nil
}
