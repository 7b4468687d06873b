package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yourusername/ytfetch-go/api"
	"github.com/yourusername/ytfetch-go/internal/app"
	"github.com/yourusername/ytfetch-go/internal/infrastructure"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	config, log := loadConfigAndLogger()
	defer log.Sync()
	applyDownloadFlags(config)

	orch, repo := buildOrchestrator(config, log)
	batches := app.NewBatchService(orch, log)

	var summarizer *app.Summarizer
	if config.Summary.APIKey != "" {
		var cache app.SummaryCache
		if fileCache, err := infrastructure.NewFileSummaryCache(config.Summary.CacheDir); err != nil {
			log.Warn("Summary cache disabled", zap.Error(err))
		} else {
			cache = fileCache
		}
		fetcher := infrastructure.NewYouTubeTranscriptFetcher(config.Summary.Timeout, log)
		llm := infrastructure.NewOpenAIClient(config.Summary.BaseURL, config.Summary.APIKey, config.Summary.Timeout, log)
		summarizer = app.NewSummarizer(fetcher, llm, cache, &config.Summary, log)
	} else {
		log.Info("Summary endpoint disabled, no API key configured")
	}

	router := api.SetupRouter(batches, summarizer, repo, config, log)
	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port),
		Handler: router,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
		os.Exit(exitPartial)
	}
}
