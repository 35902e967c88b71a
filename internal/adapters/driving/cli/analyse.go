package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	analyseBirth birthFlags
	analyseJSON  bool
)

var analyseCmd = &cobra.Command{
	Use:     "analyse " + birthArgs,
	Aliases: []string{"analyze"},
	Short:   "Prepare an analysis prompt for a birth moment",
	Long: `Computes the four pillars, gathers the relevant knowledge and renders the
analysis prompt. The prompt is printed so it can be handed to a model of your
choice; nothing is sent anywhere.

The template lives in ~/.ganzhi/prompts/analysis.tmpl and can be edited.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runAnalyse,
}

func init() {
	analyseBirth.register(analyseCmd)
	analyseCmd.Flags().BoolVar(&analyseJSON, "json", false, "output the whole reading as JSON")
	rootCmd.AddCommand(analyseCmd)
}

func runAnalyse(cmd *cobra.Command, args []string) error {
	if readingService == nil {
		return errors.New("reading service not configured")
	}

	birth, err := analyseBirth.record(cmd, args)
	if err != nil {
		return err
	}

	reading, err := readingService.Analyse(cmd.Context(), birth)
	if err != nil {
		return fmt.Errorf("preparing reading: %w", err)
	}

	if analyseJSON {
		return printJSON(cmd, struct {
			ID        string      `json:"id"`
			Pillars   pillarsView `json:"pillars"`
			Knowledge string      `json:"knowledge"`
			Prompt    string      `json:"prompt"`
			CreatedAt string      `json:"created_at"`
		}{
			ID:        reading.ID,
			Pillars:   newPillarsView(&reading.Pillars),
			Knowledge: reading.Knowledge,
			Prompt:    reading.Prompt,
			CreatedAt: reading.CreatedAt.Format(time.RFC3339),
		})
	}

	cmd.Println(reading.Prompt)
	return nil
}
