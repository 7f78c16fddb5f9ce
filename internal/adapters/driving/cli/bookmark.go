package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vidseek/vidseek/internal/core/domain"
)

var (
	bookmarkUser     string
	bookmarkQuestion string
	bookmarkAnswer   string
	bookmarkURL      string
	bookmarkOutput   string
)

var bookmarkCmd = &cobra.Command{
	Use:   "bookmark",
	Short: "Manage saved results",
}

var bookmarkAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Save a result as a bookmark",
	RunE:  runBookmarkAdd,
}

var bookmarkListCmd = &cobra.Command{
	Use:   "list",
	Short: "List a user's bookmarks",
	RunE:  runBookmarkList,
}

var bookmarkDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a bookmark",
	Args:  cobra.ExactArgs(1),
	RunE:  runBookmarkDelete,
}

var bookmarkExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a user's bookmarks as CSV",
	RunE:  runBookmarkExport,
}

func init() {
	for _, c := range []*cobra.Command{bookmarkAddCmd, bookmarkListCmd, bookmarkExportCmd} {
		c.Flags().StringVarP(&bookmarkUser, "user", "u", "", "user ID")
		_ = c.MarkFlagRequired("user")
	}
	bookmarkAddCmd.Flags().StringVar(&bookmarkQuestion, "question", "", "bookmarked question")
	bookmarkAddCmd.Flags().StringVar(&bookmarkAnswer, "answer", "", "bookmarked answer")
	bookmarkAddCmd.Flags().StringVar(&bookmarkURL, "url", "", "result video URL")
	bookmarkExportCmd.Flags().StringVarP(&bookmarkOutput, "output", "o", "", "write CSV to file instead of stdout")

	bookmarkCmd.AddCommand(bookmarkAddCmd)
	bookmarkCmd.AddCommand(bookmarkListCmd)
	bookmarkCmd.AddCommand(bookmarkDeleteCmd)
	bookmarkCmd.AddCommand(bookmarkExportCmd)
	rootCmd.AddCommand(bookmarkCmd)
}

func runBookmarkAdd(cmd *cobra.Command, _ []string) error {
	if bookmarkService == nil {
		return errors.New("bookmark service not configured")
	}

	result := domain.ScoredResult{
		Item: domain.CorpusItem{
			Question:  bookmarkQuestion,
			Answer:    bookmarkAnswer,
			SourceURL: bookmarkURL,
		},
	}

	bookmark, err := bookmarkService.Add(cmd.Context(), bookmarkUser, result)
	if err != nil {
		return fmt.Errorf("saving bookmark: %w", err)
	}

	cmd.Printf("Saved bookmark %s\n", bookmark.ID)
	return nil
}

func runBookmarkList(cmd *cobra.Command, _ []string) error {
	if bookmarkService == nil {
		return errors.New("bookmark service not configured")
	}

	bookmarks, err := bookmarkService.List(cmd.Context(), bookmarkUser)
	if err != nil {
		return fmt.Errorf("listing bookmarks: %w", err)
	}

	if len(bookmarks) == 0 {
		cmd.Println("No bookmarks.")
		return nil
	}

	for _, b := range bookmarks {
		cmd.Printf("  %s  %s\n", b.ID, b.Question)
		cmd.Printf("      %s\n", b.URL)
	}
	return nil
}

func runBookmarkDelete(cmd *cobra.Command, args []string) error {
	if bookmarkService == nil {
		return errors.New("bookmark service not configured")
	}

	if err := bookmarkService.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("deleting bookmark: %w", err)
	}

	cmd.Println("Bookmark deleted.")
	return nil
}

func runBookmarkExport(cmd *cobra.Command, _ []string) error {
	if bookmarkService == nil {
		return errors.New("bookmark service not configured")
	}

	data, err := bookmarkService.ExportCSV(cmd.Context(), bookmarkUser)
	if err != nil {
		return fmt.Errorf("exporting bookmarks: %w", err)
	}

	if bookmarkOutput == "" {
		cmd.Print(string(data))
		return nil
	}

	if err := os.WriteFile(bookmarkOutput, data, 0600); err != nil {
		return fmt.Errorf("writing %s: %w", bookmarkOutput, err)
	}
	cmd.Printf("Exported to %s\n", bookmarkOutput)
	return nil
}
