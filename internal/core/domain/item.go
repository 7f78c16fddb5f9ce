package domain

import "strings"

// NoTitle is the sentinel used for items whose title metadata is absent.
const NoTitle = ""

// CorpusItem represents one indexable question/answer unit of content.
// Items are loaded once per process from a prebuilt corpus artifact and
// are immutable afterwards.
type CorpusItem struct {
	// Question is the question text. Required.
	Question string

	// Answer is the answer text. Required.
	Answer string

	// SourceURL is the locator of the originating video.
	SourceURL string

	// VideoID is the stable identifier derived from SourceURL at load time.
	// Empty when no identifier could be extracted; such items are excluded
	// from search results.
	VideoID string

	// TimestampLabel is the human-readable offset within the video,
	// in "H:MM:SS", "MM:SS" or bare-seconds form. Defaults to "0:00".
	TimestampLabel string

	// Title is the video title for display.
	Title string

	// SegmentTitle is the optional section/segment title for display.
	SegmentTitle string

	// IsShortForm marks items that represent an entire short clip rather
	// than a timestamped segment of a longer video. Short-form items are
	// deduplicated per video rather than per time window.
	IsShortForm bool

	// Embedding is the precomputed vector for this item. Every item in a
	// loaded corpus carries an embedding of the same dimension.
	Embedding []float32
}

// OffsetSeconds returns the item's timestamp label parsed to seconds.
func (i CorpusItem) OffsetSeconds() int {
	return ParseTimestamp(i.TimestampLabel)
}

// DisplayTitle returns the title normalised for display, mapping the
// "untitled"/"" placeholders to the NoTitle sentinel.
func (i CorpusItem) DisplayTitle() string {
	return NormaliseTitle(i.Title)
}

// NormaliseTitle trims a title and collapses the "untitled" placeholder
// (case-insensitive) to the NoTitle sentinel.
func NormaliseTitle(title string) string {
	title = strings.TrimSpace(title)
	if strings.EqualFold(title, "untitled") {
		return NoTitle
	}
	return title
}

// ScoredResult pairs a CorpusItem with a similarity score for one query.
// It is transient: an ordering key, never persisted.
type ScoredResult struct {
	// Item is the matched corpus item.
	Item CorpusItem

	// Score is the cosine similarity in [-1, 1]; higher is more relevant.
	Score float64
}

// DefaultTopK is the result count used when SearchOptions.TopK is unset.
const DefaultTopK = 5

// SearchOptions configures a search query.
type SearchOptions struct {
	// TopK is the maximum number of results. Defaults to DefaultTopK.
	TopK int
}

// Limit returns the effective result count for the options.
func (o SearchOptions) Limit() int {
	if o.TopK <= 0 {
		return DefaultTopK
	}
	return o.TopK
}
