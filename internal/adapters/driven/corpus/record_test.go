package corpus

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubClassifier struct {
	short bool
	err   error
	calls int
}

func (c *stubClassifier) IsShortForm(_ context.Context, _ string) (bool, error) {
	c.calls++
	return c.short, c.err
}

func (c *stubClassifier) Close() error { return nil }

func boolPtr(b bool) *bool { return &b }

func TestRecordToItem(t *testing.T) {
	r := Record{
		Question:     "What is grace?",
		Answer:       "Unmerited favour.",
		SectionTitle: "Grace",
		VideoTitle:   "Sermon",
		Timestamp:    "1:30",
		VideoURL:     "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		Embedding:    []float64{0.5, 0.25},
	}

	item := r.ToItem(context.Background(), nil)
	assert.Equal(t, "dQw4w9WgXcQ", item.VideoID)
	assert.Equal(t, "1:30", item.TimestampLabel)
	assert.Equal(t, []float32{0.5, 0.25}, item.Embedding)
	assert.False(t, item.IsShortForm)
}

func TestRecordToItemDefaultsTimestamp(t *testing.T) {
	item := Record{VideoURL: "https://youtu.be/dQw4w9WgXcQ"}.ToItem(context.Background(), nil)
	assert.Equal(t, "0:00", item.TimestampLabel)
}

func TestRecordToItemShortFormDetection(t *testing.T) {
	ctx := context.Background()

	// Explicit flag wins, no classifier consulted.
	c := &stubClassifier{short: false}
	item := Record{
		VideoURL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		IsShort:  boolPtr(true),
	}.ToItem(ctx, c)
	assert.True(t, item.IsShortForm)
	assert.Zero(t, c.calls)

	// URL pattern next.
	item = Record{VideoURL: "https://www.youtube.com/shorts/aB3dE5fG7h9"}.ToItem(ctx, c)
	assert.True(t, item.IsShortForm)
	assert.Zero(t, c.calls)

	// Classifier consulted only when both are inconclusive.
	c = &stubClassifier{short: true}
	item = Record{VideoURL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ"}.ToItem(ctx, c)
	assert.True(t, item.IsShortForm)
	assert.Equal(t, 1, c.calls)

	// Classifier failure degrades to "not short".
	c = &stubClassifier{err: errors.New("network")}
	item = Record{VideoURL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ"}.ToItem(ctx, c)
	assert.False(t, item.IsShortForm)
}

func TestRecordToItemUnresolvableSource(t *testing.T) {
	item := Record{VideoURL: "#"}.ToItem(context.Background(), nil)
	assert.Empty(t, item.VideoID)
}

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{name: "identical", a: []float32{1, 2, 3}, b: []float32{1, 2, 3}, want: 1},
		{name: "orthogonal", a: []float32{1, 0}, b: []float32{0, 1}, want: 0},
		{name: "opposite", a: []float32{1, 0}, b: []float32{-1, 0}, want: -1},
		{name: "dimension mismatch", a: []float32{1}, b: []float32{1, 0}, want: 0},
		{name: "zero vector", a: []float32{0, 0}, b: []float32{1, 0}, want: 0},
		{name: "empty", a: nil, b: nil, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Cosine(tt.a, tt.b), 1e-9)
		})
	}
}

func TestCosineScaleInvariant(t *testing.T) {
	a := []float32{0.3, 0.7, 0.1}
	scaled := []float32{0.6, 1.4, 0.2}
	assert.InDelta(t, 1.0, Cosine(a, scaled), 1e-6)
}
