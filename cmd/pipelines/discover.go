package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/amishk599/pipelines/internal/discover"
	"github.com/amishk599/pipelines/internal/model"
	"github.com/amishk599/pipelines/internal/notifier"
	"github.com/amishk599/pipelines/internal/ratelimit"
	"github.com/amishk599/pipelines/internal/tui"
)

var plain bool

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Browse a random batch of other pipelines",
	Long:  "Loads one batch of random pipelines from the backend and shows them. Failures are logged and leave the feed empty.",
	RunE:  runDiscover,
}

func init() {
	discoverCmd.Flags().BoolVar(&plain, "plain", false, "print the feed as text instead of opening the TUI")
	rootCmd.AddCommand(discoverCmd)
}

func runDiscover(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	limiter := ratelimit.NewHostRateLimiter(cfg.RateLimit.MinDelay)

	if plain {
		logger := setupLogger(debug)
		fetcher, _ := createFetcher(cfg, newHTTPClient(cfg), limiter, logger)
		feed := discover.NewFeed(fetcher, notifier.NewLogNotifier(logger), cfg.Discover.BatchSize)
		logger.Debug("loading feed", "size", feed.Size())
		_ = feed.Load(ctx)
		printFeed(cmd.OutOrStdout(), feed.Profiles())
		// The failure was logged by the notifier; scripts still see it.
		if feed.Err() != nil {
			os.Exit(1)
		}
		return nil
	}

	logger, flush := setupTUILogger(debug)
	defer flush()

	fetcher, endpoints := createFetcher(cfg, newHTTPClient(cfg), limiter, logger)
	feed := discover.NewFeed(fetcher, notifier.NewLogNotifier(logger), cfg.Discover.BatchSize)
	logger.Debug("loading feed", "size", feed.Size())
	if err := tui.RunLoader(ctx, "Loading pipelines", feed.Load); errors.Is(err, tui.ErrCancelled) {
		return nil
	}
	return tui.RunDiscover(feed.Profiles(), endpoints.Homepage)
}

func printFeed(w io.Writer, profiles []model.Profile) {
	if len(profiles) == 0 {
		fmt.Fprintln(w, "No pipelines.")
		return
	}
	for i, p := range profiles {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, p.DisplayName())
		if len(p.Pipeline) == 0 {
			fmt.Fprintln(w, "  (empty pipeline)")
		}
		for _, e := range p.Pipeline {
			fmt.Fprintf(w, "  %-30s %-30s %s\n", e.Company, e.Title, e.Date)
		}
	}
}
