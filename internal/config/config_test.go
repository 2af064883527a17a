package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestNewConfig verifies that NewConfig returns a Config with all expected default values.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	t.Run("default ListenAddr is loopback port 5000", func(t *testing.T) {
		t.Parallel()
		if cfg.ListenAddr != "127.0.0.1:5000" {
			t.Errorf("expected ListenAddr to be '127.0.0.1:5000', got '%s'", cfg.ListenAddr)
		}
	})

	t.Run("default timeouts are 5 seconds", func(t *testing.T) {
		t.Parallel()
		if cfg.WhoisTimeout != 5*time.Second {
			t.Errorf("expected WhoisTimeout to be 5s, got %v", cfg.WhoisTimeout)
		}
		if cfg.FetchTimeout != 5*time.Second {
			t.Errorf("expected FetchTimeout to be 5s, got %v", cfg.FetchTimeout)
		}
	})

	t.Run("default BatchSize is 10", func(t *testing.T) {
		t.Parallel()
		if cfg.BatchSize != 10 {
			t.Errorf("expected BatchSize to be 10, got %d", cfg.BatchSize)
		}
	})

	t.Run("default whois rate is unthrottled", func(t *testing.T) {
		t.Parallel()
		if cfg.WhoisRatePerSecond != 0 {
			t.Errorf("expected WhoisRatePerSecond to be 0, got %v", cfg.WhoisRatePerSecond)
		}
	})

	t.Run("default config validates", func(t *testing.T) {
		t.Parallel()
		if err := cfg.Validate(); err != nil {
			t.Errorf("expected default config to be valid, got %v", err)
		}
	})
}

// TestDefaultScoring pins the built-in weight table.
func TestDefaultScoring(t *testing.T) {
	t.Parallel()

	s := DefaultScoring()

	checks := []struct {
		name     string
		got      int
		expected int
	}{
		{"long url length", s.LongURLLength, 75},
		{"medium url length", s.MediumURLLength, 50},
		{"long url points", s.LongURLPoints, 20},
		{"medium url points", s.MediumURLPoints, 10},
		{"ip address points", s.IPAddressPoints, 30},
		{"suspicious tld points", s.SuspiciousTLDPoints, 25},
		{"keyword points", s.KeywordPoints, 5},
		{"new domain days", s.NewDomainDays, 180},
		{"new domain points", s.NewDomainPoints, 30},
		{"young domain days", s.YoungDomainDays, 365},
		{"young domain points", s.YoungDomainPoints, 15},
		{"age lookup failed penalty", s.AgeLookupFailedPenalty, 10},
		{"content fetch failed penalty", s.ContentFetchFailedPenalty, 10},
		{"cross domain form points", s.CrossDomainFormPoints, 35},
		{"suspicious threshold", s.Thresholds.SuspiciousAbove, 40},
		{"malicious threshold", s.Thresholds.MaliciousAbove, 70},
	}
	for _, c := range checks {
		if c.got != c.expected {
			t.Errorf("%s: got %d, expected %d", c.name, c.got, c.expected)
		}
	}

	if len(s.SuspiciousTLDs) != 7 {
		t.Errorf("expected 7 suspicious TLDs, got %v", s.SuspiciousTLDs)
	}
	if len(s.Keywords) != 8 {
		t.Errorf("expected 8 keywords, got %v", s.Keywords)
	}
}

// TestConfigValidate tests the Validate method with various configurations.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		modify   func(*Config)
		expected error
	}{
		{"valid config returns nil", func(*Config) {}, nil},
		{"zero whois timeout", func(c *Config) { c.WhoisTimeout = 0 }, ErrInvalidTimeout},
		{"negative fetch timeout", func(c *Config) { c.FetchTimeout = -time.Second }, ErrInvalidTimeout},
		{"zero batch size", func(c *Config) { c.BatchSize = 0 }, ErrInvalidBatchSize},
		{"negative whois rate", func(c *Config) { c.WhoisRatePerSecond = -1 }, ErrInvalidRate},
		{"negative body size", func(c *Config) { c.MaxBodySize = -1 }, ErrInvalidMaxBodySize},
		{"json and markdown together", func(c *Config) { c.JSONReport, c.MarkdownReport = true, true }, ErrConflictingReportFormats},
		{"empty listen address", func(c *Config) { c.ListenAddr = "" }, ErrInvalidListenAddr},
		{"inverted thresholds", func(c *Config) {
			c.Scoring.Thresholds.SuspiciousAbove = 80
		}, ErrInvalidScoring},
		{"negative weight", func(c *Config) { c.Scoring.CrossDomainFormPoints = -35 }, ErrInvalidScoring},
		{"inverted length bounds", func(c *Config) { c.Scoring.MediumURLLength = 90 }, ErrInvalidScoring},
		{"inverted age bounds", func(c *Config) { c.Scoring.NewDomainDays = 400 }, ErrInvalidScoring},
		{"blank keyword", func(c *Config) { c.Scoring.Keywords = []string{"login", " "} }, ErrInvalidScoring},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := NewConfig()
			tc.modify(cfg)
			err := cfg.Validate()
			if tc.expected == nil {
				if err != nil {
					t.Errorf("expected nil, got %v", err)
				}
				return
			}
			if !errors.Is(err, tc.expected) {
				t.Errorf("expected %v, got %v", tc.expected, err)
			}
		})
	}
}

// TestValidateTargets tests target validation.
func TestValidateTargets(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()
	if err := cfg.ValidateTargets(); !errors.Is(err, ErrNoTarget) {
		t.Errorf("expected ErrNoTarget, got %v", err)
	}
	cfg.Targets = []string{"example.com"}
	if err := cfg.ValidateTargets(); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}

// TestLoadConfigFile tests YAML loading.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("returns ErrConfigNotFound for non-existent file", func(t *testing.T) {
		t.Parallel()

		cfg, err := LoadConfigFile("/nonexistent/path/.phishscan")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("expected ErrConfigNotFound, got: %v", err)
		}
		if cfg != nil {
			t.Error("expected nil config when file not found")
		}
	})

	t.Run("partial file keeps defaults", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), ".phishscan")
		content := `server:
  listenAddr: "0.0.0.0:8080"
lookup:
  whoisTimeout: 3s
  whoisRatePerSecond: 2.5
scoring:
  keywords:
    - login
    - wallet
  thresholds:
    suspiciousAbove: 30
    maliciousAbove: 60
logging:
  json: true
`
		if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		f, err := LoadConfigFile(configPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		cfg := NewConfig()
		f.Apply(cfg)

		if cfg.ListenAddr != "0.0.0.0:8080" {
			t.Errorf("expected listen addr override, got %q", cfg.ListenAddr)
		}
		if cfg.WhoisTimeout != 3*time.Second {
			t.Errorf("expected whois timeout 3s, got %v", cfg.WhoisTimeout)
		}
		if cfg.FetchTimeout != DefaultFetchTimeout {
			t.Errorf("expected default fetch timeout, got %v", cfg.FetchTimeout)
		}
		if cfg.WhoisRatePerSecond != 2.5 {
			t.Errorf("expected rate 2.5, got %v", cfg.WhoisRatePerSecond)
		}
		if len(cfg.Scoring.Keywords) != 2 || cfg.Scoring.Keywords[1] != "wallet" {
			t.Errorf("expected keyword override, got %v", cfg.Scoring.Keywords)
		}
		if cfg.Scoring.IPAddressPoints != 30 {
			t.Errorf("expected default ip points, got %d", cfg.Scoring.IPAddressPoints)
		}
		if cfg.Scoring.Thresholds.MaliciousAbove != 60 {
			t.Errorf("expected malicious threshold 60, got %d", cfg.Scoring.Thresholds.MaliciousAbove)
		}
		if !cfg.LogJSON {
			t.Error("expected json logging to be enabled")
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("expected loaded config to validate, got %v", err)
		}
	})

	t.Run("returns error for invalid YAML", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), ".phishscan")
		if err := os.WriteFile(configPath, []byte(`invalid: yaml: content: [}`), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if _, err := LoadConfigFile(configPath); err == nil {
			t.Error("expected error for invalid YAML")
		}
	})
}

// TestFindConfigFile tests the FindConfigFile function.
func TestFindConfigFile(t *testing.T) {
	t.Run("returns explicit path if exists", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(configPath, []byte("server: {}"), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if result := FindConfigFile(configPath); result != configPath {
			t.Errorf("expected %q, got %q", configPath, result)
		}
	})

	t.Run("returns empty for non-existent explicit path", func(t *testing.T) {
		if result := FindConfigFile("/nonexistent/path/config.yaml"); result != "" {
			t.Errorf("expected empty string, got %q", result)
		}
	})
}

// TestLoad tests the combined defaults, file and environment loading.
func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("explicit missing file is an error", func(t *testing.T) {
		t.Parallel()

		_, err := Load("/nonexistent/.phishscan", MapEnvironment(nil))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("environment overrides file", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), ".phishscan")
		content := "server:\n  listenAddr: \"0.0.0.0:8080\"\nlookup:\n  fetchTimeout: 9s\n"
		if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		cfg, err := Load(configPath, MapEnvironment(map[string]string{
			EnvListenAddr:   "127.0.0.1:9999",
			EnvFetchTimeout: "2s",
		}))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.ListenAddr != "127.0.0.1:9999" {
			t.Errorf("expected env listen addr, got %q", cfg.ListenAddr)
		}
		if cfg.FetchTimeout != 2*time.Second {
			t.Errorf("expected env fetch timeout, got %v", cfg.FetchTimeout)
		}
		if cfg.ConfigFilePath != configPath {
			t.Errorf("expected config path to be recorded, got %q", cfg.ConfigFilePath)
		}
	})
}

// TestApplyEnv tests environment variable parsing.
func TestApplyEnv(t *testing.T) {
	t.Parallel()

	t.Run("port sets listen address", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()
		if err := ApplyEnv(cfg, MapEnvironment(map[string]string{EnvPort: "8081"})); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.ListenAddr != ":8081" {
			t.Errorf("got %q, expected :8081", cfg.ListenAddr)
		}
	})

	t.Run("listen addr wins over port", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()
		err := ApplyEnv(cfg, MapEnvironment(map[string]string{EnvPort: "8081", EnvListenAddr: "10.0.0.1:80"}))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.ListenAddr != "10.0.0.1:80" {
			t.Errorf("got %q, expected 10.0.0.1:80", cfg.ListenAddr)
		}
	})

	t.Run("timeout accepts bare seconds", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()
		if err := ApplyEnv(cfg, MapEnvironment(map[string]string{EnvWhoisTimeout: "7"})); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.WhoisTimeout != 7*time.Second {
			t.Errorf("got %v, expected 7s", cfg.WhoisTimeout)
		}
	})

	t.Run("rate user agent and json logging", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()
		err := ApplyEnv(cfg, MapEnvironment(map[string]string{
			EnvWhoisRate: "0.5",
			EnvUserAgent: "phishscan-test",
			EnvLogJSON:   "true",
		}))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.WhoisRatePerSecond != 0.5 || cfg.UserAgent != "phishscan-test" || !cfg.LogJSON {
			t.Errorf("got %+v", cfg)
		}
	})

	t.Run("invalid values are rejected", func(t *testing.T) {
		t.Parallel()
		for _, env := range []map[string]string{
			{EnvPort: "http"},
			{EnvWhoisTimeout: "soon"},
			{EnvWhoisRate: "fast"},
			{EnvLogJSON: "maybe"},
		} {
			if err := ApplyEnv(NewConfig(), MapEnvironment(env)); !errors.Is(err, ErrInvalidEnv) {
				t.Errorf("expected ErrInvalidEnv for %v, got %v", env, err)
			}
		}
	})
}

// TestLoadDotEnv tests .env loading.
func TestLoadDotEnv(t *testing.T) {
	t.Run("missing file is ignored", func(t *testing.T) {
		if err := LoadDotEnv(filepath.Join(t.TempDir(), ".env")); err != nil {
			t.Errorf("expected nil, got %v", err)
		}
	})

	t.Run("variables are loaded without overriding", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		content := "PHISHSCAN_TEST_DOTENV_NEW=from-file\nPHISHSCAN_TEST_DOTENV_SET=from-file\n"
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write .env: %v", err)
		}
		t.Setenv("PHISHSCAN_TEST_DOTENV_SET", "from-env")
		t.Cleanup(func() { _ = os.Unsetenv("PHISHSCAN_TEST_DOTENV_NEW") })

		if err := LoadDotEnv(path); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := os.Getenv("PHISHSCAN_TEST_DOTENV_NEW"); got != "from-file" {
			t.Errorf("got %q, expected from-file", got)
		}
		if got := os.Getenv("PHISHSCAN_TEST_DOTENV_SET"); got != "from-env" {
			t.Errorf("got %q, expected from-env", got)
		}
	})
}

// TestXDGConfigDir tests the XDG config directory helper.
func TestXDGConfigDir(t *testing.T) {
	t.Parallel()

	if dir := XDGConfigDir(); dir == "" || filepath.Base(dir) != AppName {
		t.Errorf("unexpected XDG config dir %q", dir)
	}
}
