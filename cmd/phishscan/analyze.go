package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/phishscan/internal/config"
	"github.com/nao1215/phishscan/internal/model"
	"github.com/nao1215/phishscan/internal/pipeline"
	"github.com/nao1215/phishscan/internal/report"
)

// errAnalysisFailed is returned when at least one URL of a run could not be
// analyzed. The report has already been written at that point.
var errAnalysisFailed = errors.New("analysis failed")

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [url...]",
		Short: "Score one or more URLs",
		Long: `Analyze scores each URL and prints a verdict with the signals behind it.

URLs without a scheme are analyzed as http://. Multiple URLs are analyzed
concurrently and reported in the order given.

Examples:
  # Analyze a single URL
  phishscan analyze paypal-secure-login.xyz

  # Analyze several URLs, four at a time
  phishscan analyze -b 4 example.com 192.168.1.1/login

  # Read URLs from a file, one per line ('#' starts a comment)
  phishscan analyze -l urls.txt

  # Write a Markdown report
  phishscan analyze -m -o report.md example.com`,
		Args: cobra.ArbitraryArgs,
		RunE: runAnalyzeCmd,
	}

	cmd.Flags().StringP("list", "l", "",
		"Read URLs from file, one per line")
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of concurrent analyses")
	cmd.Flags().Duration("whois-timeout", config.DefaultWhoisTimeout,
		"Timeout for each WHOIS lookup")
	cmd.Flags().Duration("fetch-timeout", config.DefaultFetchTimeout,
		"Timeout for fetching each page")
	cmd.Flags().String("env-file", ".env",
		"Load environment variables from file if it exists")

	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	return cmd
}

// runAnalyzeCmd executes the analyze command.
func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildAnalyzeConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	if err := cfg.ValidateTargets(); err != nil {
		return fmt.Errorf("%w (specify URLs as arguments or with --list)", err)
	}

	logger := setupLogger(cfg)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runAnalyze(ctx, cfg, newAnalyzer(cfg, logger), cmd.OutOrStdout(), logger)
}

// buildAnalyzeConfig loads the configuration and applies the flags that
// were set explicitly.
func buildAnalyzeConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	envFile, err := cmd.Flags().GetString("env-file")
	if err != nil {
		return nil, err
	}

	cfg, err := loadConfig(cmd, envFile)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("batch") {
		if cfg.BatchSize, err = flags.GetInt("batch"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("whois-timeout") {
		if cfg.WhoisTimeout, err = flags.GetDuration("whois-timeout"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("fetch-timeout") {
		if cfg.FetchTimeout, err = flags.GetDuration("fetch-timeout"); err != nil {
			return nil, err
		}
	}

	if cfg.JSONReport, err = flags.GetBool("json"); err != nil {
		return nil, err
	}
	if cfg.MarkdownReport, err = flags.GetBool("markdown"); err != nil {
		return nil, err
	}
	if cfg.ReportFile, err = flags.GetString("output"); err != nil {
		return nil, err
	}

	cfg.Targets = append(cfg.Targets, args...)

	listPath, err := flags.GetString("list")
	if err != nil {
		return nil, err
	}
	if listPath != "" {
		urls, err := readURLList(listPath)
		if err != nil {
			return nil, err
		}
		cfg.Targets = append(cfg.Targets, urls...)
	}

	return cfg, nil
}

// readURLList reads one URL per line, skipping blank lines and comments.
func readURLList(path string) ([]string, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided list path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to open URL list: %w", err)
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read URL list: %w", err)
	}
	return urls, nil
}

// runAnalyze analyzes cfg.Targets and writes the report to stdout or
// cfg.ReportFile.
func runAnalyze(ctx context.Context, cfg *config.Config, analyzer pipeline.URLAnalyzer, stdout io.Writer, logger *slog.Logger) error {
	logger.Info("starting analysis",
		"targets", len(cfg.Targets),
		"batchSize", cfg.BatchSize,
	)

	output, closeOutput, err := openOutput(cfg.ReportFile, stdout)
	if err != nil {
		return err
	}
	defer closeOutput()

	writer := newReportWriter(cfg, output)

	if len(cfg.Targets) == 1 {
		result, err := analyzer.Analyze(ctx, cfg.Targets[0])
		if err != nil {
			return describeError(cfg.Targets[0], err)
		}
		if _, err := writer.Write(result); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		return nil
	}

	bp := pipeline.NewBatchProcessor(analyzer,
		pipeline.WithConcurrency(cfg.BatchSize),
		pipeline.WithBatchLogger(logger),
	)
	items := bp.ProcessBatch(ctx, cfg.Targets)

	if _, err := writer.WriteBatch(items); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	failed := 0
	for _, item := range items {
		if item.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d URLs", errAnalysisFailed, failed, len(items))
	}
	return nil
}

// describeError turns an analysis error into a CLI message.
func describeError(target string, err error) error {
	if model.IsInvalidInput(err) {
		return fmt.Errorf("invalid URL %q: %w", target, err)
	}
	return fmt.Errorf("%w: %s: %w", errAnalysisFailed, target, err)
}

// openOutput returns the report destination. When path is empty the report
// goes to stdout.
func openOutput(path string, stdout io.Writer) (io.Writer, func(), error) {
	if path == "" {
		return stdout, func() {}, nil
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create report directory: %w", err)
		}
	}

	f, err := os.Create(path) //nolint:gosec // User-provided report path is intentional
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create report file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

// newReportWriter selects the writer for the configured format.
func newReportWriter(cfg *config.Config, output io.Writer) report.Writer {
	switch {
	case cfg.JSONReport:
		return report.NewJSONWriter(output, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(output)
	default:
		return report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}
}
