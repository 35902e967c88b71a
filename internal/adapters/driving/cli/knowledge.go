package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	knowledgeBirth birthFlags
	knowledgeJSON  bool
)

var knowledgeCmd = &cobra.Command{
	Use:   "knowledge " + birthArgs,
	Short: "Show the reference knowledge for a birth moment",
	Long: `Computes the four pillars of a birth moment and prints the most relevant
documents of the knowledge corpus, ranked by how many query terms they share.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runKnowledge,
}

func init() {
	knowledgeBirth.register(knowledgeCmd)
	knowledgeCmd.Flags().BoolVar(&knowledgeJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(knowledgeCmd)
}

func runKnowledge(cmd *cobra.Command, args []string) error {
	if pillarService == nil || knowledgeService == nil {
		return errors.New("knowledge service not configured")
	}

	birth, err := knowledgeBirth.record(cmd, args)
	if err != nil {
		return err
	}

	result, err := pillarService.Compute(cmd.Context(), birth)
	if err != nil {
		return fmt.Errorf("computing pillars: %w", err)
	}

	knowledge, err := knowledgeService.Compose(cmd.Context(), *result)
	if err != nil {
		return fmt.Errorf("composing knowledge: %w", err)
	}

	if knowledgeJSON {
		return printJSON(cmd, struct {
			Pillars   pillarsView `json:"pillars"`
			Knowledge string      `json:"knowledge"`
		}{newPillarsView(result), knowledge})
	}

	st := newStyles(cmd.OutOrStdout())
	printPillars(cmd, st, result)
	cmd.Println()
	cmd.Println(st.Title("Knowledge"))
	if knowledge == "" {
		cmd.Println(st.Muted("No matching documents."))
		return nil
	}
	cmd.Println(knowledge)
	return nil
}
