package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// appDirName is the folder created under the user's config directory
const appDirName = "ffconvert"

// Config holds persistent application settings
type Config struct {
	FFmpegPath   string `json:"ffmpeg_path"`
	LastInputDir string `json:"last_input_dir"`
	LastFormat   string `json:"last_format"`
}

// DefaultConfig returns a new config with default values
func DefaultConfig() *Config {
	return &Config{
		LastFormat: "mp4",
	}
}

// Path returns the path to the config file
func Path() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(configDir, appDirName, "config.json"), nil
}

// Load loads the config from disk, returning defaults if not found
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom loads the config stored at path. A missing or corrupt file yields
// the defaults; other read errors are returned.
func LoadFrom(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	cfg := DefaultConfig()
	if err := json.NewDecoder(file).Decode(cfg); err != nil {
		return DefaultConfig(), nil
	}

	return cfg, nil
}

// Save saves the config to disk
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the config to path, creating its directory if needed
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create config: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
