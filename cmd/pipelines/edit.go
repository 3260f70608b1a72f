package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/amishk599/pipelines/internal/companies"
	"github.com/amishk599/pipelines/internal/model"
	"github.com/amishk599/pipelines/internal/notifier"
	"github.com/amishk599/pipelines/internal/ratelimit"
	"github.com/amishk599/pipelines/internal/tui"
)

var fromPath string

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit a pipeline interactively (TUI)",
	Long: "Opens the pipeline editor. On submit the pipeline is printed to stdout as JSON; " +
		"pass that output back with --from to continue editing it.",
	RunE: runEdit,
}

func init() {
	editCmd.Flags().StringVar(&fromPath, "from", "", "JSON file with a pipeline to start from")
	rootCmd.AddCommand(editCmd)
}

// pipelineDoc is the JSON document read by --from and printed on submit.
type pipelineDoc struct {
	Pipeline []model.Experience `json:"pipeline"`
	School   string             `json:"school,omitempty"`
}

func readPipeline(path string) (pipelineDoc, error) {
	var doc pipelineDoc
	if path == "" {
		return doc, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return doc, fmt.Errorf("read pipeline: %w", err)
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("parse pipeline %s: %w", path, err)
	}
	return doc, nil
}

func runEdit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	doc, err := readPipeline(fromPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	dir, err := companies.Load()
	if err != nil {
		return err
	}

	logger, flush := setupTUILogger(debug)
	defer flush()

	limiter := ratelimit.NewHostRateLimiter(cfg.RateLimit.MinDelay)
	searcher := createSearcher(cfg, newHTTPClient(cfg), limiter)

	result, err := tui.RunEditor(tui.EditorOptions{
		Pipeline:       doc.Pipeline,
		School:         doc.School,
		Companies:      dir.All(),
		Searcher:       searcher,
		Reporter:       notifier.NewLogNotifier(logger),
		SearchDelay:    cfg.Search.Delay,
		RequestTimeout: cfg.Search.RequestTimeout,
	})
	if err != nil {
		return fmt.Errorf("editor: %w", err)
	}
	if !result.Submitted {
		logger.Info("edit cancelled, nothing printed")
		return nil
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(pipelineDoc{Pipeline: result.Pipeline, School: result.School})
}
