package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvListenAddr   = "PHISHSCAN_LISTEN_ADDR"
	EnvPort         = "PORT"
	EnvWhoisTimeout = "PHISHSCAN_WHOIS_TIMEOUT"
	EnvFetchTimeout = "PHISHSCAN_FETCH_TIMEOUT"
	EnvUserAgent    = "PHISHSCAN_USER_AGENT"
	EnvWhoisRate    = "PHISHSCAN_WHOIS_RATE"
	EnvLogJSON      = "PHISHSCAN_LOG_JSON"
)

// Environment looks up a variable. os.LookupEnv satisfies it.
type Environment func(key string) (string, bool)

// OSEnvironment reads the process environment.
func OSEnvironment() Environment {
	return os.LookupEnv
}

// MapEnvironment serves variables from m, mainly for tests.
func MapEnvironment(m map[string]string) Environment {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

// LoadDotEnv loads KEY=VALUE pairs from the given files into the process
// environment without overriding variables that are already set. Missing
// files are ignored; with no arguments ".env" is tried.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// ApplyEnv overrides c with the PHISHSCAN_* variables and PORT. When both
// PHISHSCAN_LISTEN_ADDR and PORT are set, PHISHSCAN_LISTEN_ADDR wins.
func ApplyEnv(c *Config, env Environment) error {
	if env == nil {
		return nil
	}

	if port, ok := env(EnvPort); ok && port != "" {
		if _, err := strconv.Atoi(port); err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidEnv, EnvPort, port)
		}
		c.ListenAddr = ":" + port
	}
	if addr, ok := env(EnvListenAddr); ok && addr != "" {
		c.ListenAddr = addr
	}

	if err := envDuration(env, EnvWhoisTimeout, &c.WhoisTimeout); err != nil {
		return err
	}
	if err := envDuration(env, EnvFetchTimeout, &c.FetchTimeout); err != nil {
		return err
	}

	if ua, ok := env(EnvUserAgent); ok && ua != "" {
		c.UserAgent = ua
	}

	if v, ok := env(EnvWhoisRate); ok && v != "" {
		rate, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidEnv, EnvWhoisRate, v)
		}
		c.WhoisRatePerSecond = rate
	}

	if v, ok := env(EnvLogJSON); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidEnv, EnvLogJSON, v)
		}
		c.LogJSON = b
	}
	return nil
}

// envDuration parses key as a time.Duration ("5s") or a whole number of seconds.
func envDuration(env Environment, key string, dst *time.Duration) error {
	v, ok := env(key)
	if !ok || v == "" {
		return nil
	}
	if d, err := time.ParseDuration(v); err == nil {
		*dst = d
		return nil
	}
	if secs, err := strconv.Atoi(v); err == nil {
		*dst = time.Duration(secs) * time.Second
		return nil
	}
	return fmt.Errorf("%w: %s=%q", ErrInvalidEnv, key, v)
}
