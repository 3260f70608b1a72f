package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amishk599/pipelines/internal/model"
	"github.com/amishk599/pipelines/internal/ratelimit"
	"github.com/amishk599/pipelines/internal/search"
)

var schoolsCmd = &cobra.Command{
	Use:   "schools <query>",
	Short: "Search the university directory",
	Long:  "Runs one school search against the directory and prints the distinct matches.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSchools,
}

func init() {
	rootCmd.AddCommand(schoolsCmd)
}

func runSchools(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	query := strings.Join(args, " ")
	limiter := ratelimit.NewHostRateLimiter(cfg.RateLimit.MinDelay)
	searcher := createSearcher(cfg, newHTTPClient(cfg), limiter)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Search.RequestTimeout)
	defer cancel()

	schools, err := searcher.SearchSchools(ctx, query)
	if err != nil {
		logger.Error("school search failed", "query", query, "error", err)
		os.Exit(1)
	}
	schools = search.DedupeByName(schools, func(s model.School) string { return s.Name })

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%-50s %-25s %s\n", "School", "Country", "Web page")
	fmt.Fprintln(w, strings.Repeat("─", 100))
	for _, s := range schools {
		page := ""
		if len(s.WebPages) > 0 {
			page = s.WebPages[0]
		}
		fmt.Fprintf(w, "%-50s %-25s %s\n", s.Name, s.Country, page)
	}
	fmt.Fprintln(w, strings.Repeat("─", 100))
	fmt.Fprintf(w, "%d schools\n", len(schools))
	return nil
}
