package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amishk599/pipelines/internal/companies"
	"github.com/amishk599/pipelines/internal/filter"
)

var companiesCmd = &cobra.Command{
	Use:   "companies [prefix]",
	Short: "List the bundled companies",
	Long:  "Prints the bundled company directory, or only the companies whose name starts with prefix (case-insensitive).",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCompanies,
}

func init() {
	rootCmd.AddCommand(companiesCmd)
}

func runCompanies(cmd *cobra.Command, args []string) error {
	dir, err := companies.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load companies: %v\n", err)
		os.Exit(1)
	}

	list := dir.All()
	if len(args) == 1 {
		list = filter.Companies(args[0], list)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%-25s %s\n", "Company", "ID")
	fmt.Fprintln(w, strings.Repeat("─", 47))
	for _, c := range list {
		fmt.Fprintf(w, "%-25s %d\n", c.Name, c.ID)
	}

	fmt.Fprintf(w, "\nTotal: %d of %d companies\n", len(list), dir.Len())
	return nil
}
