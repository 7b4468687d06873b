package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yourusername/ytfetch-go/internal/app"
	"github.com/yourusername/ytfetch-go/internal/infrastructure"
)

var batchCmd = &cobra.Command{
	Use:   "batch <file.yaml>",
	Short: "Download a YAML batch file with per-item overrides",
	Long: `Downloads every video in a YAML batch file:

  defaults:
    format: mp4
    quality: 1080p
  videos:
    - url: https://youtu.be/abc
    - url: https://youtu.be/def
      format: mp3

File-level defaults apply where an entry leaves format or quality unset.`,
	Args: cobra.ExactArgs(1),
	Run:  runBatch,
}

func runBatch(cmd *cobra.Command, args []string) {
	config, log := loadConfigAndLogger()
	defer log.Sync()
	applyDownloadFlags(config)

	requests, err := app.LoadRequestList(args[0], downloadFormat(config), downloadQuality(config))
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
