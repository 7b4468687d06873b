package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yourusername/ytfetch-go/internal/app"
	"github.com/yourusername/ytfetch-go/internal/domain"
	"github.com/yourusername/ytfetch-go/internal/infrastructure"
)

var (
	summaryDepth string
	summaryModel string
	noCache      bool

	summarizeCmd = &cobra.Command{
		Use:   "summarize <url>",
		Short: "Summarize a video's transcript with an LLM",
		Args:  cobra.ExactArgs(1),
		Run:   runSummarize,
	}
)

func init() {
	summarizeCmd.Flags().StringVarP(&summaryDepth, "depth", "d", "", "Summary depth: basic, detailed, technical")
	summarizeCmd.Flags().StringVarP(&summaryModel, "model", "m", "", "Model name (overrides config)")
	summarizeCmd.Flags().BoolVar(&noCache, "no-cache", false, "Skip the transcript/summary cache")
}

func runSummarize(cmd *cobra.Command, args []string) {
	config, log := loadConfigAndLogger()
	defer log.Sync()

	url := args[0]
	if err := domain.ValidateURL(url); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitUsage)
	}
	if config.Summary.APIKey == "" {
		fmt.Fprintln(os.Stderr, "Error: no summary API key configured (set summary.api_key or YTFETCH_SUMMARY_API_KEY)")
		os.Exit(exitUsage)
	}

	var cache app.SummaryCache
	if !noCache {
		fileCache, err := infrastructure.NewFileSummaryCache(config.Summary.CacheDir)
		if err != nil {
			log.Warn("Summary cache disabled", zap.Error(err))
		} else {
			cache = fileCache
		}
	}

	fetcher := infrastructure.NewYouTubeTranscriptFetcher(config.Summary.Timeout, log)
	llm := infrastructure.NewOpenAIClient(config.Summary.BaseURL, config.Summary.APIKey, config.Summary.Timeout, log)
	summarizer := app.NewSummarizer(fetcher, llm, cache, &config.Summary, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, err := summarizer.Summarize(ctx, url, domain.SummaryDepth(summaryDepth), summaryModel)
	if err != nil {
		var optErr *domain.InvalidOptionError
		if errors.As(err, &optErr) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(exitUsage)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitPartial)
	}
	fmt.Println(summary)
}
