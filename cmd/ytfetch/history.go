package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yourusername/ytfetch-go/internal/infrastructure"
)

var (
	historyLimit int
	historyStats bool

	historyCmd = &cobra.Command{
		Use:   "history",
		Short: "Show download history",
		Run:   runHistory,
	}
)

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of records to show")
	historyCmd.Flags().BoolVar(&historyStats, "stats", false, "Show aggregate statistics instead of records")
}

func runHistory(cmd *cobra.Command, args []string) {
	config, log := loadConfigAndLogger()
	defer log.Sync()

	repo, err := infrastructure.NewSQLiteDownloadRepository(config.History.DatabasePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitUsage)
	}

	if historyStats {
		stats, err := repo.GetStats()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(exitPartial)
		}
		fmt.Printf("Total:      %d\n", stats.Total)
		fmt.Printf("Downloaded: %d\n", stats.Downloaded)
		fmt.Printf("Failed:     %d\n", stats.Failed)
		return
	}

	records, err := repo.FindRecent(historyLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitPartial)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tSTATUS\tFORMAT\tATTEMPTS\tURL")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			r.CreatedAt.Format("2006-01-02 15:04"),
			r.Status,
			r.Format,
			r.AttemptsUsed,
			truncate(r.URL, 60))
	}
	w.Flush()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
