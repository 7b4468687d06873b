package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yourusername/ytfetch-go/internal/app"
	"github.com/yourusername/ytfetch-go/internal/domain"
	"github.com/yourusername/ytfetch-go/internal/infrastructure"
	"github.com/yourusername/ytfetch-go/pkg/logger"
)

// Exit codes: 0 all requested videos downloaded, 1 at least one failed,
// 2 invalid input or configuration.
const (
	exitOK      = 0
	exitPartial = 1
	exitUsage   = 2
)

var (
	configPath  string
	outputDir   string
	workers     int
	cookiesFile string
	maxRetries  int
	noHistory   bool
	formatFlag  string
	qualityFlag string

	rootCmd = &cobra.Command{
		Use:   "ytfetch <url-or-list-file> [format] [quality]",
		Short: "YouTube downloader with retries, cookie auth and batch support",
		Long: `ytfetch downloads YouTube videos via yt-dlp with automatic retries,
browser cookie authentication and batch processing.

The first argument is a video URL or a path to a list file (plain URLs
or a YAML batch file). Optional format (mp4, webm, mp3, m4a) and quality
(best, 1080p, 720p, 480p) follow as positional arguments.`,
		Args: cobra.RangeArgs(1, 3),
		Run:  runDownload,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path")
	rootCmd.PersistentFlags().StringVarP(&outputDir, "output", "o", "", "Output directory (overrides config)")
	rootCmd.PersistentFlags().IntVarP(&workers, "workers", "w", 0, "Concurrent downloads (overrides config)")
	rootCmd.PersistentFlags().StringVar(&cookiesFile, "cookies", "", "Explicit cookies.txt file (overrides config)")
	rootCmd.PersistentFlags().IntVar(&maxRetries, "max-retries", 0, "Max attempts per video (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&noHistory, "no-history", false, "Skip recording downloads in the history database")
	rootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "", "Output format: mp4, webm, mkv, mp3, m4a")
	rootCmd.PersistentFlags().StringVarP(&qualityFlag, "quality", "q", "", "Video quality: best, 2160p..144p")

	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(summarizeCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitUsage)
	}
}

// loadConfigAndLogger is the shared bootstrap for every subcommand
func loadConfigAndLogger() (*domain.Config, *zap.Logger) {
	config, err := app.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitUsage)
	}
	log, err := logger.New(logger.Config{
		Level:      config.Logging.Level,
		Format:     config.Logging.Format,
		OutputPath: config.Logging.OutputPath,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logger: %v\n", err)
		os.Exit(exitUsage)
	}
	return config, log
}

// applyDownloadFlags folds command-line overrides into the loaded config
func applyDownloadFlags(config *domain.Config) {
	if outputDir != "" {
		config.Download.OutputDir = app.ExpandPath(outputDir)
	}
	if workers > 0 {
		config.Download.Workers = workers
	}
	if cookiesFile != "" {
		config.Auth.CookiesFile = app.ExpandPath(cookiesFile)
	}
	if maxRetries > 0 {
		config.Download.MaxRetries = maxRetries
	}
}

// buildOrchestrator wires the download pipeline from configuration
func buildOrchestrator(config *domain.Config, log *zap.Logger) (*app.BatchOrchestrator, domain.DownloadRepository) {
	binary, err := infrastructure.FindYTDLP(config.Download.YTDLPBinary)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitUsage)
	}

	var sources []domain.CookieSource
	if config.Auth.CookiesFile != "" {
		sources = append(sources, infrastructure.NewFileCookieSource(config.Auth.CookiesFile))
	}
	for _, browser := range config.Auth.Browsers {
		sources = append(sources, infrastructure.NewBrowserCookieSource(browser, binary, config.Auth.CookieCacheFile, log))
	}
	provider := app.NewAuthProvider(sources, config.Auth.CookieCacheDuration, log)
	provider.PreloadCache(config.Auth.CookieCacheFile)

	extractor := infrastructure.NewYTDLPExtractor(binary, config.Download.StagingDir, log)
	controller := app.NewRetryController(extractor, provider, config.Download.MaxRetries, config.Download.BaseDelay, log)

	var repo domain.DownloadRepository
	if !noHistory {
		sqlRepo, err := infrastructure.NewSQLiteDownloadRepository(config.History.DatabasePath)
		if err != nil {
			log.Warn("History disabled", zap.Error(err))
		} else {
			repo = sqlRepo
		}
	}

	return app.NewBatchOrchestrator(controller, repo, config.Download.OutputDir, config.Download.Workers, log), repo
}

// downloadFormat resolves the effective format: flag, then config default
func downloadFormat(config *domain.Config) domain.Format {
	if formatFlag != "" {
		return domain.Format(formatFlag)
	}
	return config.Download.DefaultFormat
}

// downloadQuality resolves the effective quality: flag, then config default
func downloadQuality(config *domain.Config) domain.Quality {
	if qualityFlag != "" {
		return domain.Quality(qualityFlag)
	}
	return config.Download.DefaultQuality
}

// buildRequests turns the positional arguments into download requests. The
// first argument is a URL unless it names an existing file, in which case
// it is read as a request list. Positional format and quality win over the
// flag and config values.
func buildRequests(args []string, config *domain.Config) ([]domain.DownloadRequest, error) {
	format := downloadFormat(config)
	if len(args) > 1 {
		format = domain.Format(args[1])
	}
	quality := downloadQuality(config)
	if len(args) > 2 {
		quality = domain.Quality(args[2])
	}

	target := args[0]
	if info, err := os.Stat(target); err == nil && !info.IsDir() {
		return app.LoadRequestList(target, format, quality)
	}
	req, err := domain.NewDownloadRequest(target, format, quality)
	if err != nil {
		return nil, err
	}
	return []domain.DownloadRequest{req}, nil
}

func runDownload(cmd *cobra.Command, args []string) {
	config, log := loadConfigAndLogger()
	defer log.Sync()
	applyDownloadFlags(config)

	requests, err := buildRequests(args, config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitUsage)
	}

	orch, _ := buildOrchestrator(config, log)
	notifier := infrastructure.NewDesktopNotifier(config.Notification, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := orch.Run(ctx, requests)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitUsage)
	}
	notifier.NotifyBatchDone(report)

	printReport(report)
	if report.AllSucceeded() {
		os.Exit(exitOK)
	}
	os.Exit(exitPartial)
}

// printReport writes the per-video outcome lines and the summary to stdout
func printReport(report *domain.BatchReport) {
	for _, result := range report.Results {
		if result.Succeeded() {
			fmt.Printf("ok    %s -> %s (%d attempt(s))\n",
				result.Request.URL, result.Path, result.AttemptsUsed)
		} else {
			fmt.Printf("fail  %s: %s (%d attempt(s))\n",
				result.Request.URL, result.Reason, result.AttemptsUsed)
		}
	}
	fmt.Printf("\n%d/%d downloaded, %d failed\n",
		report.Succeeded, report.Total, report.Failed)
}
