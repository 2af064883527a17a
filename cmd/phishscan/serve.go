package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/phishscan/internal/config"
	"github.com/nao1215/phishscan/internal/server"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP analysis API",
		Long: `Serve exposes the analyzer over HTTP.

  POST /analyze   {"url": "..."} -> {"url", "score", "status", "details"}
  GET  /healthz   {"status": "ok"}

Cross-origin requests are allowed from any origin. The server shuts down
gracefully on SIGINT or SIGTERM.

Examples:
  # Listen on the default address
  phishscan serve

  # Listen on all interfaces, port 8080, with JSON logs
  phishscan serve -l :8080 --log-json`,
		Args: cobra.NoArgs,
		RunE: runServeCmd,
	}

	cmd.Flags().StringP("listen", "l", config.DefaultListenAddr,
		"Address to listen on")
	cmd.Flags().Bool("log-json", false,
		"Write logs as JSON")
	cmd.Flags().String("env-file", ".env",
		"Load environment variables from file if it exists")

	return cmd
}

// runServeCmd executes the serve command.
func runServeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildServeConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting server",
		"addr", cfg.ListenAddr,
		"config", cfg.ConfigFilePath,
		"whoisTimeout", cfg.WhoisTimeout,
		"fetchTimeout", cfg.FetchTimeout,
	)

	srv := server.New(newAnalyzer(cfg, logger), logger)
	return srv.Run(ctx, cfg.ListenAddr, cfg.ShutdownTimeout)
}

// buildServeConfig loads the configuration and applies the flags that were
// set explicitly.
func buildServeConfig(cmd *cobra.Command) (*config.Config, error) {
	envFile, err := cmd.Flags().GetString("env-file")
	if err != nil {
		return nil, err
	}

	cfg, err := loadConfig(cmd, envFile)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("listen") {
		if cfg.ListenAddr, err = cmd.Flags().GetString("listen"); err != nil {
			return nil, err
		}
	}
	logJSON, err := cmd.Flags().GetBool("log-json")
	if err != nil {
		return nil, err
	}
	cfg.LogJSON = cfg.LogJSON || logJSON

	return cfg, nil
}
