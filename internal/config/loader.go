package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".phishscan"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File is the structure of the .phishscan YAML file. Omitted keys keep
// their default values.
type File struct {
	Server  ServerSection  `yaml:"server"`
	Lookup  LookupSection  `yaml:"lookup"`
	Scoring Scoring        `yaml:"scoring"`
	Batch   BatchSection   `yaml:"batch"`
	Logging LoggingSection `yaml:"logging"`
}

// ServerSection configures the HTTP API.
type ServerSection struct {
	ListenAddr      string        `yaml:"listenAddr"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
}

// LookupSection configures the WHOIS and page fetch collaborators.
type LookupSection struct {
	WhoisTimeout       time.Duration `yaml:"whoisTimeout"`
	WhoisRatePerSecond float64       `yaml:"whoisRatePerSecond"`
	FetchTimeout       time.Duration `yaml:"fetchTimeout"`
	UserAgent          string        `yaml:"userAgent"`
	MaxBodySize        int64         `yaml:"maxBodySize"`
}

// BatchSection configures multi-URL runs.
type BatchSection struct {
	Size int `yaml:"size"`
}

// LoggingSection configures log output.
type LoggingSection struct {
	Verbose bool `yaml:"verbose"`
	JSON    bool `yaml:"json"`
}

// defaultFile mirrors NewConfig so that unmarshalling only overrides the
// keys present in the document.
func defaultFile() File {
	cfg := NewConfig()
	return File{
		Server: ServerSection{
			ListenAddr:      cfg.ListenAddr,
			ShutdownTimeout: cfg.ShutdownTimeout,
		},
		Lookup: LookupSection{
			WhoisTimeout:       cfg.WhoisTimeout,
			WhoisRatePerSecond: cfg.WhoisRatePerSecond,
			FetchTimeout:       cfg.FetchTimeout,
			UserAgent:          cfg.UserAgent,
			MaxBodySize:        cfg.MaxBodySize,
		},
		Scoring: cfg.Scoring,
		Batch:   BatchSection{Size: cfg.BatchSize},
	}
}

// LoadConfigFile loads a YAML configuration file.
// If the file does not exist, it returns ErrConfigNotFound.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	cf := defaultFile()
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cf, nil
}

// Apply copies the file's settings onto c.
func (f *File) Apply(c *Config) {
	c.ListenAddr = f.Server.ListenAddr
	c.ShutdownTimeout = f.Server.ShutdownTimeout
	c.WhoisTimeout = f.Lookup.WhoisTimeout
	c.WhoisRatePerSecond = f.Lookup.WhoisRatePerSecond
	c.FetchTimeout = f.Lookup.FetchTimeout
	c.UserAgent = f.Lookup.UserAgent
	c.MaxBodySize = f.Lookup.MaxBodySize
	c.BatchSize = f.Batch.Size
	c.Scoring = f.Scoring
	c.Verbose = c.Verbose || f.Logging.Verbose
	c.LogJSON = c.LogJSON || f.Logging.JSON
}

// FindConfigFile searches for the configuration file in the following order:
//  1. If configPath is specified, use it directly
//  2. .phishscan in the current directory
//  3. .phishscan in the user's home directory
//  4. config.yaml in the XDG config directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	var candidates []string
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, DefaultConfigFile))
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, DefaultConfigFile))
	}
	candidates = append(candidates, filepath.Join(XDGConfigDir(), "config.yaml"))

	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return ""
}

// Load builds a Config from defaults, the config file and the environment.
// An explicit configPath that does not exist is an error; a missing
// searched-for file is not.
func Load(configPath string, env Environment) (*Config, error) {
	cfg := NewConfig()
	cfg.ConfigFilePath = configPath

	path := FindConfigFile(configPath)
	if configPath != "" && path == "" {
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
	}
	if path != "" {
		f, err := LoadConfigFile(path)
		if err != nil {
			return nil, err
		}
		f.Apply(cfg)
		cfg.ConfigFilePath = path
	}

	if err := ApplyEnv(cfg, env); err != nil {
		return nil, err
	}
	return cfg, nil
}
