package main

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"sync"

	"github.com/spf13/cobra"

	"github.com/amishk599/pipelines/internal/adapter"
	"github.com/amishk599/pipelines/internal/config"
	"github.com/amishk599/pipelines/internal/model"
	"github.com/amishk599/pipelines/internal/ratelimit"
)

var (
	cfgPath string
	envPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "pipelines",
	Short: "Build and browse career pipelines",
	Long:  "Pipelines lets you lay out your work experience as an ordered pipeline and browse the pipelines of others.",
	// With no subcommand, show the main menu.
	RunE:         runMenu,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: PIPELINES_CONFIG env var or ./pipelines.yaml if present)")
	rootCmd.PersistentFlags().StringVar(&envPath, "env-file", ".env", "optional .env file loaded before the config")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadConfig resolves the config path and parses it.
// Priority: explicit path arg > PIPELINES_CONFIG env var > "./pipelines.yaml" > built-in defaults.
func loadConfig(path string) (*config.Config, error) {
	if err := config.LoadEnv(envPath); err != nil {
		return nil, err
	}
	if path == "" {
		if env := os.Getenv("PIPELINES_CONFIG"); env != "" {
			path = env
		} else if _, err := os.Stat("pipelines.yaml"); err == nil {
			path = "pipelines.yaml"
		}
	}
	return config.Load(path)
}

// setupLogger logs to stderr so that stdout stays clean for command output.
func setupLogger(dbg bool) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel(dbg)}))
}

func logLevel(dbg bool) slog.Level {
	if dbg {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// lockedBuffer is a bytes.Buffer safe for concurrent writers.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) WriteTo(w io.Writer) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.WriteTo(w)
}

// setupTUILogger holds log output while a TUI owns the screen; any output
// before or during the alt screen corrupts the display. flush writes the held
// records to stderr once the TUI has exited.
func setupTUILogger(dbg bool) (logger *slog.Logger, flush func()) {
	held := &lockedBuffer{}
	logger = slog.New(slog.NewTextHandler(held, &slog.HandlerOptions{Level: logLevel(dbg)}))
	return logger, func() { _, _ = held.WriteTo(os.Stderr) }
}

func newHTTPClient(cfg *config.Config) *http.Client {
	return &http.Client{Timeout: cfg.HTTP.Timeout}
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Host
}

// createSearcher builds the school directory client, throttled per host.
func createSearcher(cfg *config.Config, httpClient *http.Client, limiter *ratelimit.HostRateLimiter) model.SchoolSearcher {
	directory := adapter.NewDirectoryAdapter(cfg.DirectoryURL, httpClient)
	return ratelimit.NewRateLimitedSearcher(directory, limiter, hostOf(cfg.DirectoryURL))
}

// createFetcher builds the backend client for the configured mode. An unknown
// mode is logged by Resolve; the fetcher then fails on use.
func createFetcher(cfg *config.Config, httpClient *http.Client, limiter *ratelimit.HostRateLimiter, logger *slog.Logger) (model.ProfileFetcher, config.Endpoints) {
	endpoints := config.Resolve(cfg.Mode, logger)
	backend := adapter.NewPipelineAdapter(endpoints.Host, httpClient)
	return ratelimit.NewRateLimitedFetcher(backend, limiter, hostOf(endpoints.Host)), endpoints
}
