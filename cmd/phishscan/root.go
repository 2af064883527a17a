package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/nao1215/phishscan/internal/config"
	"github.com/nao1215/phishscan/internal/fetch"
	"github.com/nao1215/phishscan/internal/log"
	"github.com/nao1215/phishscan/internal/pipeline"
	"github.com/nao1215/phishscan/internal/whois"
)

// NewRootCmd creates the root command for phishscan.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "phishscan",
		Short: "Heuristic phishing URL scoring",
		Long: `phishscan assigns a safety score from 0 (dangerous) to 100 (safe) to a URL
and explains which signals contributed to it.

Signals: URL length, embedded IP addresses, suspicious TLDs, phishing
keywords, domain registration age (WHOIS) and forms that submit to another
domain. Lookup failures are scored as a small fixed penalty instead of
aborting the analysis.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .phishscan in current or home directory)")

	// Add subcommands
	cmd.AddCommand(NewAnalyzeCmd())
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// getConfigFlag retrieves the config flag from the command or its parent.
func getConfigFlag(cmd *cobra.Command) string {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		path, err = cmd.Root().PersistentFlags().GetString("config")
		if err != nil {
			return ""
		}
	}
	return path
}

// loadConfig builds the configuration from defaults, the config file, the
// environment (after loading envFile) and the verbose flag, in that order.
func loadConfig(cmd *cobra.Command, envFile string) (*config.Config, error) {
	if err := config.LoadDotEnv(envFile); err != nil {
		return nil, err
	}

	cfg, err := config.Load(getConfigFlag(cmd), config.OSEnvironment())
	if err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	if getVerboseFlag(cmd) {
		cfg.Verbose = true
	}
	return cfg, nil
}

// setupLogger creates the secure structured logger for cfg.
func setupLogger(cfg *config.Config) *slog.Logger {
	return log.New(os.Stderr, cfg.Verbose, cfg.LogJSON)
}

// newAnalyzer wires the WHOIS and page-fetch clients into an analyzer.
func newAnalyzer(cfg *config.Config, logger *slog.Logger) *pipeline.Analyzer {
	registry := whois.NewClient(
		whois.WithTimeout(cfg.WhoisTimeout),
		whois.WithRateLimit(cfg.WhoisRatePerSecond, 1),
		whois.WithLogger(logger),
	)
	fetcher := fetch.NewClient(
		fetch.WithTimeout(cfg.FetchTimeout),
		fetch.WithUserAgent(cfg.UserAgent),
		fetch.WithMaxBodySize(cfg.MaxBodySize),
		fetch.WithLogger(logger),
	)
	return pipeline.NewDefault(cfg, registry, fetcher, pipeline.WithLogger(logger))
}
