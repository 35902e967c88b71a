package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ganzhi/internal/core/domain"
)

var corpusListJSON bool

var errReadOnlyCorpus = errors.New("corpus is read-only; run 'ganzhi settings set corpus.sqlite true' to edit documents")

var corpusCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Inspect and extend the knowledge corpus",
	Long: `Commands for the documents the knowledge index is built from.

The corpus is the built-in document set, a TOML/YAML file named by
corpus.path, or a sqlite database when corpus.sqlite is set.`,
}

var corpusListCmd = &cobra.Command{
	Use:   "list",
	Short: "List indexed documents in corpus order",
	Args:  cobra.NoArgs,
	RunE:  runCorpusList,
}

var corpusImportCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import documents from a corpus, Markdown or text file",
	Long: `Appends the documents of a file to the sqlite corpus and rebuilds the
knowledge index.

TOML and YAML files hold a list of documents:

  [[documents]]
  source = "五行理论"
  category = "基础知识"
  content = "五行包括金、木、水、火、土五种基本元素..."

Markdown notes (.md) become one document per "## " section, filed under the
note's "# " title. Text files (.txt) become one document per paragraph.`,
	Args: cobra.ExactArgs(1),
	RunE: runCorpusImport,
}

var corpusDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a document from the sqlite corpus",
	Long: `Removes the document with the given index ID, as shown by 'ganzhi corpus list',
and rebuilds the knowledge index. Documents after it move up by one ID.`,
	Args: cobra.ExactArgs(1),
	RunE: runCorpusDelete,
}

func init() {
	corpusListCmd.Flags().BoolVar(&corpusListJSON, "json", false, "output as JSON")
	corpusCmd.AddCommand(corpusListCmd)
	corpusCmd.AddCommand(corpusImportCmd)
	corpusCmd.AddCommand(corpusDeleteCmd)
	rootCmd.AddCommand(corpusCmd)
}

func runCorpusList(cmd *cobra.Command, _ []string) error {
	if knowledgeService == nil {
		return errors.New("knowledge service not configured")
	}

	docs, err := knowledgeService.Documents(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if corpusListJSON {
		return printJSON(cmd, docs)
	}

	if len(docs) == 0 {
		cmd.Println("The corpus is empty.")
		return nil
	}

	st := newStyles(cmd.OutOrStdout())
	cmd.Printf("Documents (%d):\n", len(docs))
	cmd.Println()
	for i := range docs {
		cmd.Printf("  %3d  %s  %s\n", docs[i].ID, st.Label(docs[i].Source), st.Muted(docs[i].Category))
		cmd.Printf("       %s\n", snippet(docs[i].Content, 40))
	}
	return nil
}

func runCorpusImport(cmd *cobra.Command, args []string) error {
	if corpusService == nil {
		return errReadOnlyCorpus
	}
	if decodeCorpus == nil {
		return errors.New("corpus decoder not configured")
	}

	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	docs, err := decodeCorpus(filepath.Base(path), data)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	n, err := corpusService.Import(cmd.Context(), docs)
	if err != nil {
		return fmt.Errorf("importing %s: %w", path, err)
	}

	st := newStyles(cmd.OutOrStdout())
	cmd.Println(st.Success(fmt.Sprintf("Imported %d documents from %s", n, path)))
	return nil
}

func runCorpusDelete(cmd *cobra.Command, args []string) error {
	if corpusService == nil {
		return errReadOnlyCorpus
	}

	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("%w: document id %q", domain.ErrInvalidInput, args[0])
	}

	removed, err := corpusService.Delete(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	st := newStyles(cmd.OutOrStdout())
	cmd.Println(st.Success(fmt.Sprintf("Deleted document %d (%s)", id, removed.Source)))
	return nil
}
