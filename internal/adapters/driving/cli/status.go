package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var statusJSON bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the knowledge index status",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if knowledgeService == nil {
		return errors.New("knowledge service not configured")
	}

	status := knowledgeService.Status(cmd.Context())
	if statusJSON {
		return printJSON(cmd, status)
	}

	st := newStyles(cmd.OutOrStdout())
	if !status.Loaded {
		cmd.Println(st.Warning("Knowledge index: not loaded"))
		return nil
	}

	cmd.Println(st.Success("Knowledge index: loaded"))
	cmd.Printf("  Source: %s\n", status.Source)
	cmd.Printf("  Documents: %d\n", status.Documents)
	cmd.Printf("  Tokens: %d\n", status.Tokens)
	return nil
}
