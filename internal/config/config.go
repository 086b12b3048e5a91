package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the fields tidepool needs to reach a relay instance.
type Config struct {
	APIURL    string
	APIKey    string
	OutputDir string
	Defaults  Defaults
}

// Defaults are request options applied whenever the corresponding flag is
// not set on the command line.
type Defaults struct {
	AudioFormat   string `toml:"audio_format"`
	DownloadMode  string `toml:"download_mode"`
	FilenameStyle string `toml:"filename_style"`
	VideoQuality  string `toml:"video_quality"`
}

const (
	defaultConfigPath = "~/.config/tidepool/config.toml"
	defaultOutputDir  = "."
)

// Environment variables override file values. A .env file in the working
// directory is loaded first, so short-lived keys never have to live in the
// config file.
const (
	envAPIURL    = "TIDEPOOL_API_URL"
	envAPIKey    = "TIDEPOOL_API_KEY"
	envOutputDir = "TIDEPOOL_OUTPUT_DIR"
)

// Load locates and parses the tidepool config, falling back to defaults when
// missing, then applies environment overrides.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg, err := loadFile(path)
	if err != nil {
		return Config{}, err
	}

	if v := strings.TrimSpace(os.Getenv(envAPIURL)); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(os.Getenv(envAPIKey)); v != "" {
		cfg.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv(envOutputDir)); v != "" {
		cfg.OutputDir = v
	}
	cfg.OutputDir = mustExpand(cfg.OutputDir)

	return cfg, nil
}

func loadFile(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{OutputDir: defaultOutputDir}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIURL    string   `toml:"api_url"`
		APIKey    string   `toml:"api_key"`
		OutputDir string   `toml:"output_dir"`
		Defaults  Defaults `toml:"defaults"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.APIURL = strings.TrimSpace(raw.APIURL)
	cfg.APIKey = strings.TrimSpace(raw.APIKey)
	cfg.Defaults = raw.Defaults

	cfg.OutputDir = strings.TrimSpace(raw.OutputDir)
	if cfg.OutputDir == "" {
		cfg.OutputDir = defaultOutputDir
	}

	return cfg, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
