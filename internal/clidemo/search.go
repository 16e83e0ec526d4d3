package clidemo

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/go-mizu/blueprints/lyra"
)

var (
	searchTerm       string
	searchProperties string
	searchLimit      int
	searchOffset     int
	searchExact      bool
	searchTolerance  int
	searchLanguage   string
)

// NewSearch creates the search command.
func NewSearch() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Load the seed documents and run one search",
		Long: `Search loads the schema and seed documents from --file, builds an
Engine, inserts every document, and runs a single search.`,
		RunE: runSearch,
	}
	cmd.Flags().StringVar(&searchTerm, "term", "", "free-text search term")
	cmd.Flags().StringVar(&searchProperties, "properties", "*", "comma-separated text fields to search, or *")
	cmd.Flags().IntVar(&searchLimit, "limit", 10, "maximum number of hits")
	cmd.Flags().IntVar(&searchOffset, "offset", 0, "number of matches to skip")
	cmd.Flags().BoolVar(&searchExact, "exact", false, "require whole-token matches")
	cmd.Flags().IntVar(&searchTolerance, "tolerance", 0, "bounded edit-distance tolerance")
	cmd.Flags().StringVar(&searchLanguage, "language", "", "tokenizer language override")
	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	if err := requireFile(); err != nil {
		return err
	}
	ui := NewUI()
	ui.Header("Searching " + file)

	engine, inserted, err := buildEngine(file)
	if err != nil {
		ui.Error(err.Error())
		return err
	}
	defer engine.Close()
	ui.Info("documents loaded", fmt.Sprintf("%d", inserted))

	params := lyra.SearchParams{
		Term:      searchTerm,
		Limit:     searchLimit,
		Offset:    searchOffset,
		Exact:     searchExact,
		Tolerance: searchTolerance,
	}
	if p := strings.TrimSpace(searchProperties); p != "" && p != "*" {
		params.Properties = strings.Split(p, ",")
	}

	var langOverride []lyra.Language
	if searchLanguage != "" {
		langOverride = []lyra.Language{lyra.Language(searchLanguage)}
	}

	result, err := engine.Search(params, langOverride...)
	if err != nil {
		ui.Error(err.Error())
		return err
	}

	ui.Blank()
	ui.Divider()
	ui.Info("count", fmt.Sprintf("%d", result.Count))
	ui.Info("returned", fmt.Sprintf("%d", len(result.Hits)))
	ui.Info("elapsed", result.Elapsed)
	ui.Divider()
	ui.Blank()

	for i, hit := range result.Hits {
		ui.Hit(i+1, hit.ID, hit.Document)
	}
	return nil
}
