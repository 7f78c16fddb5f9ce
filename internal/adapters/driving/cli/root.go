// Package cli implements the vidseek command-line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/vidseek/vidseek/internal/core/ports/driven"
	"github.com/vidseek/vidseek/internal/core/ports/driving"
	"github.com/vidseek/vidseek/internal/logger"
)

// version is set via SetVersion at startup.
var version = "dev"

var verbose bool

// Services wired in by the composition root.
var (
	searchService   driving.SearchService
	accountService  driving.AccountService
	bookmarkService driving.BookmarkService
	corpusStore     driven.CorpusStore
	activityLog     driven.ActivityLog
)

var rootCmd = &cobra.Command{
	Use:   "vidseek",
	Short: "Semantic search over video Q&A content",
	Long: `vidseek answers natural-language questions from a corpus of
video transcript Q&A pairs, linking each answer to the exact
timestamp in the source video.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose diagnostic output")
}

// Services bundles everything the commands need.
type Services struct {
	Search    driving.SearchService
	Accounts  driving.AccountService
	Bookmarks driving.BookmarkService
	Corpus    driven.CorpusStore
	Activity  driven.ActivityLog
}

// SetServices injects the core services into the command tree.
// Must be called before Execute.
func SetServices(s Services) {
	searchService = s.Search
	accountService = s.Accounts
	bookmarkService = s.Bookmarks
	corpusStore = s.Corpus
	activityLog = s.Activity
}

// SetVersion sets the version string reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
