package utils

import (
	"fmt"
	"os"
	"path/filepath"

	db "github.com/bcre/dbmanager/database"

	"gopkg.in/yaml.v3"
)

const ConfigFileName = "dbmanager.yaml"

// FindConfigFile tries to find the dbmanager config file in the current
// directory or any parent directory, falling back to the global config.
func FindConfigFile() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %v", err)
	}
	for {
		configPath := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached root directory
		}
		dir = parent
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %v", err)
	}

	globalConfig := filepath.Join(homeDir, ".dbmanager", "config.yaml")
	if _, err := os.Stat(globalConfig); err == nil {
		return globalConfig, nil
	}

	return "", fmt.Errorf("no config file found in project or ~/.dbmanager/config.yaml")
}

// ReadConfig parses a dbmanager config file into a database config.
func ReadConfig(configPath string) (db.Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return db.Config{}, fmt.Errorf("reading config file: %v", err)
	}

	var config struct {
		Database db.Config `yaml:"database"`
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return db.Config{}, fmt.Errorf("parsing config file: %v", err)
	}

	return config.Database, nil
}

// WriteConfig writes the config file next to the caller's working directory.
func WriteConfig(path string, cfg db.Config) error {
	config := struct {
		Database db.Config `yaml:"database"`
	}{Database: cfg}

	yamlData, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("creating yaml: %v", err)
	}

	if err := os.WriteFile(path, yamlData, 0600); err != nil {
		return fmt.Errorf("writing config file: %v", err)
	}
	return nil
}
