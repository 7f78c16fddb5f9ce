package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vidseek/vidseek/internal/core/domain"
)

var (
	searchLimit int
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the video Q&A corpus",
	Long: `Embeds the query and ranks it against every corpus entry by
cosine similarity, returning the closest answers with links to the
exact moment in the source video. Nearby answers from the same video
are collapsed into one result.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", domain.DefaultTopK, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if searchService == nil {
		return errors.New("search service not configured")
	}

	opts := domain.SearchOptions{
		TopK: searchLimit,
	}

	results, err := searchService.Search(cmd.Context(), query, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}

	return outputSearchTable(cmd, results)
}

// searchResult is the JSON shape of one search hit.
type searchResult struct {
	Question  string  `json:"question"`
	Answer    string  `json:"answer"`
	URL       string  `json:"url"`
	Timestamp string  `json:"timestamp,omitempty"`
	Title     string  `json:"title,omitempty"`
	Segment   string  `json:"segment,omitempty"`
	Score     float64 `json:"score"`
}

func outputSearchJSON(cmd *cobra.Command, results []domain.ScoredResult) error {
	out := make([]searchResult, 0, len(results))
	for _, r := range results {
		out = append(out, searchResult{
			Question:  r.Item.Question,
			Answer:    r.Item.Answer,
			URL:       r.Item.SourceURL,
			Timestamp: r.Item.TimestampLabel,
			Title:     r.Item.DisplayTitle(),
			Segment:   r.Item.SegmentTitle,
			Score:     r.Score,
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.ScoredResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i, r := range results {
		cmd.Printf("  [%d] %s (%.2f)\n", i+1, r.Item.Question, r.Score)
		cmd.Printf("      %s\n", r.Item.Answer)

		if title := r.Item.DisplayTitle(); title != domain.NoTitle {
			if r.Item.SegmentTitle != "" {
				cmd.Printf("      From: %s - %s\n", title, r.Item.SegmentTitle)
			} else {
				cmd.Printf("      From: %s\n", title)
			}
		}

		if r.Item.IsShortForm {
			cmd.Printf("      Watch: %s\n", r.Item.SourceURL)
		} else {
			cmd.Printf("      Watch: %s (at %s)\n", r.Item.SourceURL, r.Item.TimestampLabel)
		}
		cmd.Println()
	}

	return nil
}
