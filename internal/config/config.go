package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "phishscan"

	// DefaultListenAddr keeps the API on loopback unless told otherwise.
	DefaultListenAddr = "127.0.0.1:5000"

	// DefaultWhoisTimeout bounds one registration lookup.
	DefaultWhoisTimeout = 5 * time.Second

	// DefaultFetchTimeout bounds one page fetch.
	DefaultFetchTimeout = 5 * time.Second

	// DefaultWhoisRatePerSecond of 0 leaves WHOIS queries unthrottled.
	DefaultWhoisRatePerSecond = 0

	// DefaultBatchSize is the number of URLs analyzed concurrently by the CLI.
	DefaultBatchSize = 10

	// DefaultUserAgent is sent with page fetches. Phishing kits often hide
	// their forms from anything that does not look like a browser.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

	// DefaultMaxBodySize limits how much of a page is read (2MB).
	DefaultMaxBodySize = 2 * 1024 * 1024

	// DefaultShutdownTimeout is how long the server waits for in-flight requests.
	DefaultShutdownTimeout = 15 * time.Second
)

// Config holds every runtime option. It is built once at startup from
// defaults, the config file, the environment and CLI flags (in that order of
// precedence) and then passed down explicitly.
type Config struct {
	// ListenAddr is the host:port the HTTP API binds to.
	ListenAddr string

	// WhoisTimeout is the per-lookup deadline for registration queries.
	WhoisTimeout time.Duration

	// FetchTimeout is the per-fetch deadline for page downloads.
	FetchTimeout time.Duration

	// WhoisRatePerSecond throttles WHOIS queries. Zero disables throttling.
	WhoisRatePerSecond float64

	// UserAgent is the User-Agent header sent with page fetches.
	UserAgent string

	// MaxBodySize is the maximum number of page bytes read.
	MaxBodySize int64

	// BatchSize is the number of concurrent analyses for multi-URL runs.
	BatchSize int

	// ShutdownTimeout bounds graceful server shutdown.
	ShutdownTimeout time.Duration

	// Verbose enables debug logging.
	Verbose bool

	// LogJSON switches log output to JSON lines.
	LogJSON bool

	// ConfigFilePath is an explicit config file. When empty the file is
	// searched for, see FindConfigFile.
	ConfigFilePath string

	// Scoring holds detector weights and verdict thresholds.
	Scoring Scoring

	// JSONReport selects JSON output. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport selects Markdown output. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile writes the report to a file instead of stdout.
	ReportFile string

	// Targets are the URLs given on the command line.
	Targets []string
}

// NewConfig creates a Config with default values.
func NewConfig() *Config {
	return &Config{
		ListenAddr:         DefaultListenAddr,
		WhoisTimeout:       DefaultWhoisTimeout,
		FetchTimeout:       DefaultFetchTimeout,
		WhoisRatePerSecond: DefaultWhoisRatePerSecond,
		UserAgent:          DefaultUserAgent,
		MaxBodySize:        DefaultMaxBodySize,
		BatchSize:          DefaultBatchSize,
		ShutdownTimeout:    DefaultShutdownTimeout,
		Scoring:            DefaultScoring(),
	}
}

// XDGConfigDir returns the XDG config directory for phishscan.
// On Linux: ~/.config/phishscan
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks option ranges and combinations. Targets are checked
// separately by ValidateTargets because the server runs without them.
func (c *Config) Validate() error {
	if c.WhoisTimeout <= 0 || c.FetchTimeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}
	if c.WhoisRatePerSecond < 0 {
		return ErrInvalidRate
	}
	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	if c.ListenAddr == "" {
		return ErrInvalidListenAddr
	}
	return c.Scoring.Validate()
}

// ValidateTargets checks that at least one URL was supplied.
func (c *Config) ValidateTargets() error {
	if len(c.Targets) == 0 {
		return ErrNoTarget
	}
	return nil
}
