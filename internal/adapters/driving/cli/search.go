package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ganzhi/internal/core/domain"
)

var (
	searchLimit int
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the knowledge corpus",
	Long: `Ranks the knowledge documents against a query.

Each document scores one point per distinct query term it contains. Ties are
broken by corpus order. Separate terms with spaces, e.g. 'ganzhi search 五行 运势'.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", domain.DefaultSearchLimit, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	if knowledgeService == nil {
		return errors.New("knowledge service not configured")
	}

	results, err := knowledgeService.Search(cmd.Context(), query, searchLimit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return printJSON(cmd, results)
	}

	return outputSearchTable(cmd, results)
}

func outputSearchTable(cmd *cobra.Command, results []domain.ScoredResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	st := newStyles(cmd.OutOrStdout())
	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		doc := results[i].Document
		// Format: [N] Source (score)
		cmd.Printf("  [%d] %s %s\n", i+1, st.Label(doc.Source), st.Muted(fmt.Sprintf("(%d)", results[i].Score)))
		if doc.Category != "" {
			cmd.Printf("      Category: %s\n", doc.Category)
		}
		cmd.Printf("      %s\n", snippet(doc.Content, 60))
		cmd.Println()
	}

	return nil
}

// snippet returns the first n runes of s, marking truncation.
func snippet(s string, n int) string {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) <= n {
		return string(runes)
	}
	return string(runes[:n]) + "…"
}
