package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	pillarsBirth birthFlags
	pillarsJSON  bool
)

var pillarsCmd = &cobra.Command{
	Use:   "pillars " + birthArgs,
	Short: "Compute the four pillars of a birth moment",
	Long: `Computes the year, month, day and hour pillars (四柱八字) of a birth moment.

The time is civil Beijing time. It is corrected to local solar time by four
minutes per degree of longitude east or west of 116.4074°E before the hour
pillar is chosen; the date is never shifted.

Examples:
  ganzhi pillars 2000-01-01 12:00
  ganzhi pillars 1990-05-17 08:30 --lon 87.6
  ganzhi pillars 1999-11-25 12:00 --lunar`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runPillars,
}

func init() {
	pillarsBirth.register(pillarsCmd)
	pillarsCmd.Flags().BoolVar(&pillarsJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(pillarsCmd)
}

func runPillars(cmd *cobra.Command, args []string) error {
	if pillarService == nil {
		return errors.New("pillar service not configured")
	}

	birth, err := pillarsBirth.record(cmd, args)
	if err != nil {
		return err
	}

	result, err := pillarService.Compute(cmd.Context(), birth)
	if err != nil {
		return fmt.Errorf("computing pillars: %w", err)
	}

	if pillarsJSON {
		return printJSON(cmd, newPillarsView(result))
	}

	printPillars(cmd, newStyles(cmd.OutOrStdout()), result)
	return nil
}

// printJSON writes v as indented JSON.
func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
