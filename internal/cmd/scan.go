package cmd

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/reissuelens/reissuelens/internal/config"
	"github.com/reissuelens/reissuelens/internal/core/discogs"
	"github.com/reissuelens/reissuelens/internal/core/engine"
	apperrors "github.com/reissuelens/reissuelens/internal/errors"
	"github.com/reissuelens/reissuelens/internal/observability"
	"github.com/reissuelens/reissuelens/internal/output"
	"github.com/reissuelens/reissuelens/internal/wantlist"
)

var scanCmd = &cobra.Command{
	Use:   "scan <wantlist.csv>",
	Short: "Scan a wantlist for reissues",
	Long: `Read release ids from a wantlist CSV and report which releases have a
pressing or edition published on or after the year threshold. Lookups are
sequential and paced against the catalog service's request-rate contract.`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().Int("year", 0, "Year threshold (inclusive); overrides config")
	scanCmd.Flags().String("output", "table", "Output format: table, json, markdown")
	scanCmd.Flags().Bool("matched-only", false, "Only show releases with a qualifying reissue")
	scanCmd.Flags().String("profile", "", "Scan profile YAML file")
	scanCmd.Flags().String("token", "", "Catalog service token (overrides config and DISCOGS_TOKEN)")
	scanCmd.Flags().String("report-dir", "", "Directory for the CSV report; overrides config")
	scanCmd.Flags().Bool("no-report", false, "Skip writing the CSV report")
	scanCmd.Flags().Int("progress-every", 0, "Progress log interval in items; overrides config")
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return apperrors.WrapConfigInvalid(err, "failed to load configuration")
	}

	if err := applyScanOverrides(cmd, cfg); err != nil {
		return err
	}

	formatValue, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	format, err := output.ParseFormat(formatValue)
	if err != nil {
		return err
	}

	matchedOnly, err := cmd.Flags().GetBool("matched-only")
	if err != nil {
		return err
	}
	noReport, err := cmd.Flags().GetBool("no-report")
	if err != nil {
		return err
	}

	reader := &wantlist.Reader{
		Placeholder: cfg.Scan.Placeholder,
		Logger:      observability.CLILogger,
	}
	targets, err := reader.ReadFile(args[0])
	if err != nil {
		return apperrors.WrapInvalidInput(err, "failed to read wantlist")
	}
	if len(targets) == 0 {
		return apperrors.NewInvalidInputError("wantlist contains no usable release ids")
	}

	token := strings.TrimSpace(cfg.Discogs.Token)
	if token == "" {
		observability.CLILogger.Warn("No catalog token configured; using the reduced anonymous request budget",
			zap.Int("budget_per_window", cfg.RateLimit.AnonymousPerWindow),
		)
	}
	budget := cfg.RateLimit.Budget(token)

	window := &engine.Window{
		Duration:      cfg.RateLimit.Window,
		LowWater:      cfg.RateLimit.LowWater,
		Buffer:        cfg.RateLimit.WaitBuffer,
		FallbackDelay: cfg.RateLimit.FallbackDelay,
	}
	client := &discogs.Client{
		Client:    &http.Client{Timeout: cfg.Discogs.Timeout},
		BaseURL:   cfg.Discogs.BaseURL,
		Token:     token,
		UserAgent: cfg.Discogs.UserAgent,
	}
	lookup := &engine.Lookup{
		Source:         client,
		Window:         window,
		MaxRequests:    budget,
		MaxRetries:     cfg.Retry.MaxRetries,
		BaseDelay:      cfg.Retry.BaseDelay,
		ThresholdYear:  cfg.Scan.YearThreshold,
		ReleaseURLBase: cfg.Scan.ReleaseURLBase,
		ToolVersion:    versionInfo.Version,
		Logger:         observability.CLILogger,
	}
	driver := &engine.Driver{
		Checker:       lookup,
		Window:        window,
		MaxRequests:   budget,
		ProgressEvery: cfg.Scan.ProgressEvery,
		Logger:        observability.CLILogger,
	}

	observability.CLILogger.Info("Starting wantlist scan",
		zap.Int("targets", len(targets)),
		zap.Int("year_threshold", cfg.Scan.YearThreshold),
		zap.Int("budget_per_window", budget),
	)

	summary := driver.Run(cmd.Context(), targets)

	formatter := output.NewFormatter(format)
	rendered, err := formatter.FormatRun(summary, matchedOnly)
	if err != nil {
		return err
	}
	if strings.TrimSpace(rendered) != "" {
		fmt.Println(rendered)
	}

	if !noReport {
		report := &output.Report{Dir: cfg.Report.Dir, Prefix: cfg.Report.Prefix}
		path, err := report.Write(summary.Matched)
		if err != nil {
			return apperrors.WrapReportError(err, "failed to write report")
		}
		if path == "" {
			observability.CLILogger.Info("No reissues matched; report not written")
		} else {
			observability.CLILogger.Info("Report written",
				zap.String("path", path),
				zap.Int("rows", summary.MatchedVersionCount()),
			)
		}
	}

	if format != output.FormatJSON {
		logThroughput(len(summary.Results), summary.StartedAt)
	}
	return nil
}

// applyScanOverrides layers flag values over the loaded config.
func applyScanOverrides(cmd *cobra.Command, cfg *config.Config) error {
	profilePath, err := cmd.Flags().GetString("profile")
	if err != nil {
		return err
	}
	if strings.TrimSpace(profilePath) != "" {
		profile, err := config.LoadProfile(profilePath)
		if err != nil {
			return apperrors.WrapConfigInvalid(err, "failed to load scan profile")
		}
		profile.Apply(cfg)
	}

	year, err := cmd.Flags().GetInt("year")
	if err != nil {
		return err
	}
	if year > 0 {
		cfg.Scan.YearThreshold = year
	}

	token, err := cmd.Flags().GetString("token")
	if err != nil {
		return err
	}
	if strings.TrimSpace(token) != "" {
		cfg.Discogs.Token = strings.TrimSpace(token)
	}

	reportDir, err := cmd.Flags().GetString("report-dir")
	if err != nil {
		return err
	}
	if strings.TrimSpace(reportDir) != "" {
		cfg.Report.Dir = reportDir
	}

	progressEvery, err := cmd.Flags().GetInt("progress-every")
	if err != nil {
		return err
	}
	if progressEvery > 0 {
		cfg.Scan.ProgressEvery = progressEvery
	}

	return nil
}

func logThroughput(count int, startedAt time.Time) {
	if count <= 0 {
		return
	}
	elapsed := time.Since(startedAt)
	if elapsed <= 0 {
		return
	}
	rate := float64(count) / elapsed.Seconds()
	observability.CLILogger.Info(
		"Scan throughput",
		zap.Int("lookups", count),
		zap.Duration("elapsed", elapsed),
		zap.Float64("rate_per_sec", rate),
	)
}
