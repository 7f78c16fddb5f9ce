// Package corpus defines the on-disk record shape shared by the corpus
// store backends and the similarity math used to rank against it.
package corpus

import (
	"context"
	"math"

	"github.com/vidseek/vidseek/internal/core/domain"
	"github.com/vidseek/vidseek/internal/core/ports/driven"
	"github.com/vidseek/vidseek/internal/logger"
)

// Record is one entry of a corpus artifact. The flat JSON cache carries
// the embedding inline; the index backend's metadata list omits it and
// relies on ordinal alignment with the binary index instead.
type Record struct {
	Question     string    `json:"question"`
	Answer       string    `json:"answer"`
	SectionTitle string    `json:"section_title,omitempty"`
	VideoTitle   string    `json:"video_title,omitempty"`
	Timestamp    string    `json:"timestamp,omitempty"`
	VideoURL     string    `json:"video_url,omitempty"`
	IsShort      *bool     `json:"is_short,omitempty"`
	Embedding    []float64 `json:"embedding,omitempty"`
}

// ToItem converts a record to a domain item, deriving the video ID and
// filling defaults. The classifier is optional; when present it is
// consulted only for items whose short-form flag is absent and whose URL
// pattern is inconclusive. Classifier failures degrade to "not short"
// rather than failing the load.
func (r Record) ToItem(ctx context.Context, classifier driven.ContentClassifier) domain.CorpusItem {
	item := domain.CorpusItem{
		Question:       r.Question,
		Answer:         r.Answer,
		SourceURL:      r.VideoURL,
		VideoID:        domain.ExtractVideoID(r.VideoURL),
		TimestampLabel: r.Timestamp,
		Title:          r.VideoTitle,
		SegmentTitle:   r.SectionTitle,
	}
	if item.TimestampLabel == "" {
		item.TimestampLabel = "0:00"
	}

	if len(r.Embedding) > 0 {
		item.Embedding = make([]float32, len(r.Embedding))
		for i, v := range r.Embedding {
			item.Embedding[i] = float32(v)
		}
	}

	switch {
	case r.IsShort != nil:
		item.IsShortForm = *r.IsShort
	case domain.IsShortFormURL(r.VideoURL):
		item.IsShortForm = true
	case classifier != nil && item.VideoID != "":
		short, err := classifier.IsShortForm(ctx, item.VideoID)
		if err != nil {
			logger.Warn("Short-form classification failed for %s: %v", item.VideoID, err)
			break
		}
		item.IsShortForm = short
	}

	return item
}

// Cosine computes the cosine similarity of two vectors: the dot product
// over the product of magnitudes, in [-1, 1]. Mismatched or empty
// vectors score 0.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	denominator := math.Sqrt(normA) * math.Sqrt(normB)
	if denominator == 0 {
		return 0
	}
	return dot / denominator
}
