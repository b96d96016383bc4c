package cmd

import (
	"os"

	gfconfig "github.com/fulmenhq/gofulmen/config"
	"github.com/fulmenhq/gofulmen/foundry"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/reissuelens/reissuelens/internal/observability"
)

const (
	binaryName = "reissuelens"
	envPrefix  = "REISSUELENS"
)

var (
	cfgFile string
	verbose bool

	// Version info set by main package
	versionInfo struct {
		Version   string
		Commit    string
		BuildDate string
	}
)

// SetVersionInfo is called by main package to set version information
func SetVersionInfo(version, commit, buildDate string) {
	versionInfo.Version = version
	versionInfo.Commit = commit
	versionInfo.BuildDate = buildDate
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   binaryName,
	Short: "Triage a record wantlist against reissues",
	Long: `reissuelens scans a wantlist of release ids against a music catalog
service and reports which releases have a pressing or edition published on
or after a year threshold.

Use the subcommands to perform specific operations.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Construct the telemetry system disabled so CLI counters don't emit
	// anywhere without an exporter.
	_ = observability.InitTelemetry(false)

	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/reissuelens/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (sets log level to debug)")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Initialize CLI logger early so we can use it in config loading
	observability.InitCLILogger(binaryName, verbose)

	if cfgFile != "" {
		// Use config file from flag
		viper.SetConfigFile(cfgFile)
	} else {
		appConfigDir := gfconfig.GetAppConfigDir(binaryName)
		if appConfigDir == "" {
			if verbose {
				observability.CLILogger.Warn("Could not resolve XDG config directory, falling back to home directory")
			}
			home, err := os.UserHomeDir()
			if err != nil {
				ExitWithCode(observability.CLILogger, foundry.ExitFileNotFound, "Could not find home directory", err)
			}
			viper.AddConfigPath(home)
			viper.SetConfigName("." + binaryName)
		} else {
			viper.AddConfigPath(appConfigDir)
			viper.SetConfigName("config")
		}

		// Also search in current directory
		viper.AddConfigPath("./config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		if verbose {
			observability.CLILogger.Debug("Using config file", zap.String("path", viper.ConfigFileUsed()))
		}
	} else {
		// It's OK if config file doesn't exist, we have defaults
		if verbose {
			if _, ok := err.(viper.ConfigFileNotFoundError); ok {
				observability.CLILogger.Debug("No config file found, using defaults and environment variables")
			} else {
				observability.CLILogger.Warn("Error reading config file", zap.Error(err))
			}
		}
	}

	setDefaults()
}

// setDefaults sets default configuration values
func setDefaults() {
	// Catalog service defaults
	viper.SetDefault("discogs.base_url", "https://api.discogs.com")
	viper.SetDefault("discogs.token", "")
	viper.SetDefault("discogs.user_agent", "reissuelens/1.0 +https://github.com/reissuelens/reissuelens")
	viper.SetDefault("discogs.timeout", "10s")

	// Sliding-window pacing defaults (the service grants 60/min with a
	// token, 25/min without)
	viper.SetDefault("rate_limit.authenticated_per_window", 60)
	viper.SetDefault("rate_limit.anonymous_per_window", 25)
	viper.SetDefault("rate_limit.window", "60s")
	viper.SetDefault("rate_limit.low_water", 2)
	viper.SetDefault("rate_limit.wait_buffer", "1s")
	viper.SetDefault("rate_limit.fallback_delay", "5s")

	// Backoff defaults
	viper.SetDefault("retry.max_retries", 3)
	viper.SetDefault("retry.base_delay", "2s")

	// Triage defaults
	viper.SetDefault("scan.year_threshold", 2015)
	viper.SetDefault("scan.progress_every", 10)
	viper.SetDefault("scan.placeholder", "Unknown")
	viper.SetDefault("scan.release_url_base", "https://www.discogs.com/release")

	// Report artifact defaults
	viper.SetDefault("report.dir", ".")
	viper.SetDefault("report.prefix", "reissues")

	// Logging defaults
	viper.SetDefault("logging.level", "info")
}
