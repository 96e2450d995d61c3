package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Translation contains provider selection and run pacing settings.
type Translation struct {
	Provider               string `toml:"provider"`
	Mode                   string `toml:"mode"`
	RequestInterval        int    `toml:"request_interval"`
	RetryMaxAttempts       int    `toml:"retry_max_attempts"`
	RetryBackoffSeconds    int    `toml:"retry_backoff_seconds"`
	RetryBackoffMaxSeconds int    `toml:"retry_backoff_max_seconds"`
	TokenWarnThreshold     int    `toml:"token_warn_threshold"`
}

// Gemini contains configuration for the Gemini provider.
type Gemini struct {
	APIKey      string  `toml:"api_key"`
	Model       string  `toml:"model"`
	Endpoint    string  `toml:"endpoint"`
	Temperature float64 `toml:"temperature"`
}

// OpenAI contains configuration for the OpenAI provider.
type OpenAI struct {
	APIKey      string  `toml:"api_key"`
	Model       string  `toml:"model"`
	BaseURL     string  `toml:"base_url"`
	Temperature float64 `toml:"temperature"`
}

// Output contains configuration for translated file placement.
type Output struct {
	Directory string `toml:"directory"`
	Encoding  string `toml:"encoding"`
}

// Logging contains configuration for log output.
type Logging struct {
	Level            string   `toml:"level"`
	Format           string   `toml:"format"`
	OutputPaths      []string `toml:"output_paths"`
	ErrorOutputPaths []string `toml:"error_output_paths"`
	Development      bool     `toml:"development"`
}

// Config encapsulates all configuration values for subtrans.
//
// Configuration sections by subsystem:
//   - Translation: provider selection, mode, pacing, retry, and token budget
//   - Gemini: Gemini API credentials and model
//   - OpenAI: OpenAI API credentials and model
//   - Output: translated file placement
//   - Logging: log format, level, and destinations
type Config struct {
	Translation Translation `toml:"translation"`
	Gemini      Gemini      `toml:"gemini"`
	OpenAI      OpenAI      `toml:"openai"`
	Output      Output      `toml:"output"`
	Logging     Logging     `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/subtrans/config.toml")
}

// Load locates, parses, and validates a configuration file. A missing file is
// not an error: the returned config holds repository defaults and exists
// reports false. The returned config has all path fields expanded.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("subtrans.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// ProviderConfig contains the resolved settings for the selected provider.
type ProviderConfig struct {
	Name        string
	APIKey      string
	Model       string
	Endpoint    string
	Temperature float64
}

// SelectedProvider resolves the active provider's settings, applying flag
// overrides for the API key and model when supplied.
func (c *Config) SelectedProvider(nameOverride, keyOverride, modelOverride string) (ProviderConfig, error) {
	name := strings.ToLower(strings.TrimSpace(nameOverride))
	if name == "" {
		name = c.Translation.Provider
	}
	var out ProviderConfig
	switch name {
	case "gemini":
		out = ProviderConfig{
			Name:        "gemini",
			APIKey:      c.Gemini.APIKey,
			Model:       c.Gemini.Model,
			Endpoint:    c.Gemini.Endpoint,
			Temperature: c.Gemini.Temperature,
		}
	case "openai":
		out = ProviderConfig{
			Name:        "openai",
			APIKey:      c.OpenAI.APIKey,
			Model:       c.OpenAI.Model,
			Endpoint:    c.OpenAI.BaseURL,
			Temperature: c.OpenAI.Temperature,
		}
	default:
		return ProviderConfig{}, fmt.Errorf("unknown provider %q (supported: gemini, openai)", name)
	}
	if key := strings.TrimSpace(keyOverride); key != "" {
		out.APIKey = key
	}
	if model := strings.TrimSpace(modelOverride); model != "" {
		out.Model = model
	}
	return out, nil
}
