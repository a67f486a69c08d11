package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var (
	exeDirCache string
)

// getExecutableDir returns the directory where the executable is located
func getExecutableDir() string {
	if exeDirCache != "" {
		return exeDirCache
	}
	execPath, err := os.Executable()
	if err != nil {
		exeDirCache = "."
		return exeDirCache
	}
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		exeDirCache = "."
		return exeDirCache
	}
	exeDirCache = filepath.Dir(execPath)
	return exeDirCache
}

type Config struct {
	Library Library       `yaml:"library"`
	Compose ComposeConfig `yaml:"compose"`
	Search  SearchConfig  `yaml:"search"`
	History HistoryConfig `yaml:"history,omitempty"`
	Watch   WatchConfig   `yaml:"watch,omitempty"`
	Logging LoggingConfig `yaml:"logging"`
}

// Library locates the wildcard library on disk.
type Library struct {
	// Root is the folder holding Category/SubCategory/*.txt files.
	Root string `yaml:"root"`
}

type ComposeConfig struct {
	// Separator joins prompt segments. Typically ", " or "\n".
	Separator string `yaml:"separator"`
	// ContentMode is "line" (one random line per entry file) or "whole".
	ContentMode string `yaml:"content_mode"`
}

type SearchConfig struct {
	NameWeight    float64 `yaml:"name_weight"`
	PathWeight    float64 `yaml:"path_weight"`
	ContentWeight float64 `yaml:"content_weight"`
	MaxResults    int     `yaml:"max_results"`
}

type HistoryConfig struct {
	Path          string `yaml:"path,omitempty"`
	RetentionDays int    `yaml:"retention_days,omitempty"`
}

type WatchConfig struct {
	DebounceMs int    `yaml:"debounce_ms,omitempty"`
	RescanCron string `yaml:"rescan_cron,omitempty"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

func DefaultConfig() *Config {
	return &Config{
		Library: Library{
			Root: filepath.Join(getExecutableDir(), "Library"),
		},
		Compose: ComposeConfig{
			Separator:   ", ",
			ContentMode: "line",
		},
		Search: SearchConfig{
			NameWeight:    3.0,
			PathWeight:    1.0,
			ContentWeight: 1.0,
			MaxResults:    25,
		},
		History: HistoryConfig{
			Path:          filepath.Join(getExecutableDir(), ".loom", "history.db"),
			RetentionDays: 90,
		},
		Watch: WatchConfig{
			DebounceMs: 500,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
	}
}

func ConfigDir() string {
	exeDir := getExecutableDir()
	return filepath.Join(exeDir, ".loom")
}

func ConfigPath() string {
	exeDir := getExecutableDir()
	return filepath.Join(exeDir, ".loom.yaml")
}

func Load() (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnv()
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv lets LOOM_LIBRARY override the configured library root.
func (c *Config) applyEnv() {
	if root := os.Getenv("LOOM_LIBRARY"); root != "" {
		c.Library.Root = root
	}
}

func (c *Config) Save() error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(ConfigPath(), data, 0600)
}
