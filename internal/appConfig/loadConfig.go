package appConfig

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const ConfigFileName = "spacemirror.yaml"

// LoadOptions reads the YAML options file. An explicit path must exist; without one the working
// directory and then the home directory are searched, and no file means default options.
func LoadOptions(configFilePath string) (Options, error) {
	if configFilePath == "" {
		found, ok := findConfigFile(ConfigFileName)
		if !ok {
			return Options{}, nil
		}
		configFilePath = found
	}

	data, err := os.ReadFile(configFilePath)
	if err != nil {
		return Options{}, fmt.Errorf("could not read config file: %w", err)
	}

	var options Options
	if err := yaml.UnmarshalStrict(data, &options); err != nil {
		return Options{}, fmt.Errorf("could not unmarshal config file %s: %w", configFilePath, err)
	}
	return options, nil
}

func findConfigFile(configFileName string) (string, bool) {
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, true
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", false
	}
	configFilePath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(configFilePath); err != nil {
		return "", false
	}
	return configFilePath, true
}

// LoadEnvFile adds variables from a dotenv file without overriding the environment.
// The default ".env" is optional; an explicit path must exist.
func LoadEnvFile(path string) error {
	if path == "" {
		err := godotenv.Load()
		if err != nil && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("could not load env file %s: %w", path, err)
	}
	return nil
}
