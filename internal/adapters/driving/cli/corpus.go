package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var corpusCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Manage the searchable corpus",
}

var corpusInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show corpus status",
	RunE:  runCorpusInfo,
}

var corpusRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Re-fetch and reload the corpus artifacts",
	RunE:  runCorpusRefresh,
}

func init() {
	corpusCmd.AddCommand(corpusInfoCmd)
	corpusCmd.AddCommand(corpusRefreshCmd)
	rootCmd.AddCommand(corpusCmd)
}

func runCorpusInfo(cmd *cobra.Command, _ []string) error {
	if corpusStore == nil {
		return errors.New("corpus store not configured")
	}

	if _, err := corpusStore.Load(cmd.Context()); err != nil {
		return fmt.Errorf("loading corpus: %w", err)
	}

	cmd.Printf("Corpus loaded: %d entries\n", corpusStore.Len())
	return nil
}

func runCorpusRefresh(cmd *cobra.Command, _ []string) error {
	if corpusStore == nil {
		return errors.New("corpus store not configured")
	}

	corpusStore.Invalidate()
	if _, err := corpusStore.Load(cmd.Context()); err != nil {
		return fmt.Errorf("reloading corpus: %w", err)
	}

	cmd.Printf("Corpus refreshed: %d entries\n", corpusStore.Len())
	return nil
}
