package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/amishk599/pipelines/internal/ratelimit"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check config and reachability, then exit",
	Long:  "Loads the config, resolves the backend for the configured mode and issues one request to each remote collaborator.",
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("config loaded",
		"mode", cfg.Mode,
		"directory_url", cfg.DirectoryURL,
		"search_delay", cfg.Search.Delay.String(),
		"batch_size", cfg.Discover.BatchSize,
		"min_delay", cfg.RateLimit.MinDelay.String(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	httpClient := newHTTPClient(cfg)
	limiter := ratelimit.NewHostRateLimiter(cfg.RateLimit.MinDelay)
	failed := false

	searcher := createSearcher(cfg, httpClient, limiter)
	schools, err := searcher.SearchSchools(ctx, "university")
	if err != nil {
		logger.Error("directory check failed", "url", cfg.DirectoryURL, "error", err)
		failed = true
	} else {
		logger.Info("directory reachable", "url", cfg.DirectoryURL, "results", len(schools))
	}

	fetcher, endpoints := createFetcher(cfg, httpClient, limiter, logger)
	profiles, err := fetcher.RandomProfiles(ctx, 1)
	if err != nil {
		logger.Error("backend check failed", "host", endpoints.Host, "error", err)
		failed = true
	} else {
		logger.Info("backend reachable", "host", endpoints.Host, "homepage", endpoints.Homepage, "profiles", len(profiles))
	}

	if failed {
		os.Exit(1)
	}
	logger.Info("check complete")
	return nil
}
