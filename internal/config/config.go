package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the file configuration.
const (
	EnvCorpus   = "GITA_CORPUS"
	EnvAddr     = "GITA_ADDR"
	EnvLogLevel = "GITA_LOG_LEVEL"
)

// CorpusConfig lists the corpus files to load. Entries may be globs; an
// empty list selects the built-in corpus.
type CorpusConfig struct {
	Paths []string `yaml:"paths" toml:"paths"`
}

// SearchConfig tunes both search strategies.
type SearchConfig struct {
	LiteralLimit  int    `yaml:"literal_limit" toml:"literal_limit"`
	RankedLimit   int    `yaml:"ranked_limit" toml:"ranked_limit"`
	ExcerptLength int    `yaml:"excerpt_length" toml:"excerpt_length"`
	KeywordsFile  string `yaml:"keywords_file,omitempty" toml:"keywords_file,omitempty"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `yaml:"addr" toml:"addr"`
	Mode string `yaml:"mode" toml:"mode"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
	File   string `yaml:"file,omitempty" toml:"file,omitempty"`
}

// TUIConfig configures the terminal reader.
type TUIConfig struct {
	DebounceMS int `yaml:"debounce_ms" toml:"debounce_ms"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Corpus CorpusConfig `yaml:"corpus" toml:"corpus"`
	Search SearchConfig `yaml:"search" toml:"search"`
	Server ServerConfig `yaml:"server" toml:"server"`
	Log    LogConfig    `yaml:"log" toml:"log"`
	TUI    TUIConfig    `yaml:"tui" toml:"tui"`
}

// Load reads a config from path, parsing TOML for .toml files and YAML
// otherwise. A missing file yields the defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	var cfg AppConfig
	if isTOML(path) {
		err = toml.Unmarshal(data, &cfg)
	} else {
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/gita/config.yaml.
// If neither exists, it writes defaults to ~/.config/gita/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	var (
		data []byte
		err  error
	)
	if isTOML(path) {
		data, err = toml.Marshal(cfg)
	} else {
		data, err = yaml.Marshal(cfg)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadEnv reads .env files into the process environment. Missing files are
// ignored; with no arguments it reads ./.env.
func LoadEnv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		_ = godotenv.Load(f)
	}
}

// ApplyEnv overlays the GITA_* environment variables onto cfg.
// GITA_CORPUS is a comma-separated list of paths or globs.
func (cfg *AppConfig) ApplyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvCorpus)); v != "" {
		var paths []string
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				paths = append(paths, p)
			}
		}
		cfg.Corpus.Paths = paths
	}
	if v := strings.TrimSpace(os.Getenv(EnvAddr)); v != "" {
		cfg.Server.Addr = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Log.Level = v
	}
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "gita", "config.yaml"), nil
}

// Default returns a fresh copy of the built-in configuration.
func Default() *AppConfig { return defaultConfig() }

func defaultConfig() *AppConfig {
	cfg := &AppConfig{}
	applyConfigDefaults(cfg)
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Search.LiteralLimit <= 0 {
		cfg.Search.LiteralLimit = 10
	}
	if cfg.Search.RankedLimit <= 0 {
		cfg.Search.RankedLimit = 5
	}
	if cfg.Search.ExcerptLength <= 0 {
		cfg.Search.ExcerptLength = 50
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = "release"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.TUI.DebounceMS <= 0 {
		cfg.TUI.DebounceMS = 150
	}
}
