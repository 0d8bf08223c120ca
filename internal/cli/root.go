package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/rohmanhakim/atcoder-cli/internal/build"
	"github.com/rohmanhakim/atcoder-cli/internal/config"
	"github.com/rohmanhakim/atcoder-cli/pkg/failure"
	"github.com/spf13/cobra"
)

var (
	cfgFile          string
	atcoderURL       string
	problemsURL      string
	languages        []string
	maxMemoryEntries int
	noMemoryCache    bool
	cacheDirectory   string
	levelDBDirectory string
	userAgent        string
	timeout          time.Duration
	sessionFile      string
	outputFormat     string
	verbose          bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "atcoder",
	Short: "A command line client for AtCoder.",
	Long: `atcoder logs in to AtCoder, lists contests and tasks, prints task
statements and reads submission results by scraping the contest site.

The login session is kept in a cookie file between runs. Fetched pages can
be cached in memory, in a directory or in a LevelDB database.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return validateFormat(outputFormat)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(ExitCode(err))
	}
}

// ExitCode is 2 for errors that may go away on a rerun, 1 otherwise.
func ExitCode(err error) int {
	if failure.SeverityOf(err) == failure.SeverityRecoverable {
		return 2
	}
	return 1
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config-file", "", "config file path, JSON or YAML (e.g., ~/.config/atcoder-cli/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&atcoderURL, "atcoder-url", "", "root URL of the contest site")
	rootCmd.PersistentFlags().StringVar(&problemsURL, "problems-url", "", "root URL of the contest index mirror")
	rootCmd.PersistentFlags().StringArrayVar(&languages, "language", []string{}, "statement language in order of preference, en or ja (can be repeated)")
	rootCmd.PersistentFlags().IntVar(&maxMemoryEntries, "max-memory-entries", -1, "bound of the in-memory page cache (0 for unbounded, -1 keeps the configured value)")
	rootCmd.PersistentFlags().BoolVar(&noMemoryCache, "no-memory-cache", false, "disable the in-memory page cache")
	rootCmd.PersistentFlags().StringVar(&cacheDirectory, "cache-dir", "", "directory of the filesystem page cache")
	rootCmd.PersistentFlags().StringVar(&levelDBDirectory, "leveldb-dir", "", "directory of the LevelDB page cache")
	rootCmd.PersistentFlags().StringVar(&userAgent, "user-agent", "", "user agent string for HTTP requests")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "timeout for HTTP requests")
	rootCmd.PersistentFlags().StringVar(&sessionFile, "session-file", "", "file holding the login session")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "o", formatText, "output format: text, json or table")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every request and cache event to stderr")

	rootCmd.AddCommand(
		loginCmd,
		statusCmd,
		contestsCmd,
		contestCmd,
		taskCmd,
		submissionsCmd,
		submissionCmd,
		cacheCmd,
		versionCmd,
	)
}

// InitConfigWithError builds the config from the config file, if any, and
// applies every flag given on the command line over it.
func InitConfigWithError() (config.Config, error) {
	configBuilder := config.WithDefault()
	if cfgFile != "" {
		cfg, err := config.WithConfigFile(cfgFile)
		if err != nil {
			return config.Config{}, fmt.Errorf("error initializing config from file: %w", err)
		}
		configBuilder = &cfg
	} else {
		configBuilder = configBuilder.WithUserAgent(build.UserAgent())
	}

	if atcoderURL != "" {
		configBuilder = configBuilder.WithAtCoderURL(atcoderURL)
	}

	if problemsURL != "" {
		configBuilder = configBuilder.WithProblemsURL(problemsURL)
	}

	if len(languages) > 0 {
		configBuilder = configBuilder.WithLanguages(languages)
	}

	if maxMemoryEntries >= 0 {
		configBuilder = configBuilder.WithMaxMemoryEntries(maxMemoryEntries)
	}

	if noMemoryCache {
		configBuilder = configBuilder.WithoutMemoryCache()
	}

	if cacheDirectory != "" {
		configBuilder = configBuilder.WithCacheDirectory(cacheDirectory)
	}

	if levelDBDirectory != "" {
		configBuilder = configBuilder.WithLevelDBDirectory(levelDBDirectory)
	}

	if userAgent != "" {
		configBuilder = configBuilder.WithUserAgent(userAgent)
	}

	if timeout > 0 {
		configBuilder = configBuilder.WithTimeout(timeout)
	}

	if sessionFile != "" {
		configBuilder = configBuilder.WithSessionFile(sessionFile)
	}

	return configBuilder.Build()
}

// sessionPath is the configured session file, or session.json under the
// user config directory.
func sessionPath(cfg config.Config) (string, error) {
	if cfg.SessionFile() != "" {
		return cfg.SessionFile(), nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot locate the session file, set --session-file: %w", err)
	}
	return filepath.Join(dir, "atcoder-cli", "session.json"), nil
}

func ResetFlags() {
	cfgFile = ""
	atcoderURL = ""
	problemsURL = ""
	languages = []string{}
	maxMemoryEntries = -1
	noMemoryCache = false
	cacheDirectory = ""
	levelDBDirectory = ""
	userAgent = ""
	timeout = 0
	sessionFile = ""
	outputFormat = formatText
	verbose = false

	username = ""
	password = ""
	mine = false
	filterTask = ""
	filterLanguage = ""
	filterStatus = ""
	filterUser = ""
	page = 0
	sourceOnly = false
	rawClientOverride = nil
}

// Test helper functions to set flag values from tests
func SetConfigFileForTest(path string) {
	cfgFile = path
}

func SetAtCoderURLForTest(rawURL string) {
	atcoderURL = rawURL
}

func SetProblemsURLForTest(rawURL string) {
	problemsURL = rawURL
}

func SetLanguagesForTest(langs []string) {
	languages = langs
}

func SetMaxMemoryEntriesForTest(entries int) {
	maxMemoryEntries = entries
}

func SetNoMemoryCacheForTest(disabled bool) {
	noMemoryCache = disabled
}

func SetCacheDirectoryForTest(dir string) {
	cacheDirectory = dir
}

func SetLevelDBDirectoryForTest(dir string) {
	levelDBDirectory = dir
}

func SetUserAgentForTest(agent string) {
	userAgent = agent
}

func SetTimeoutForTest(t time.Duration) {
	timeout = t
}

func SetSessionFileForTest(path string) {
	sessionFile = path
}
