package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "watch url",
			url:  "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			want: "dQw4w9WgXcQ",
		},
		{
			name: "shortened url",
			url:  "https://youtu.be/dQw4w9WgXcQ",
			want: "dQw4w9WgXcQ",
		},
		{
			name: "watch url with timestamp param",
			url:  "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=90s",
			want: "dQw4w9WgXcQ",
		},
		{
			name: "shorts url",
			url:  "https://www.youtube.com/shorts/aB3dE5fG7h9",
			want: "aB3dE5fG7h9",
		},
		{
			name: "embed url",
			url:  "https://www.youtube.com/embed/dQw4w9WgXcQ",
			want: "dQw4w9WgXcQ",
		},
		{
			name: "mobile host",
			url:  "https://m.youtube.com/watch?v=dQw4w9WgXcQ",
			want: "dQw4w9WgXcQ",
		},
		{
			name: "no scheme-less id",
			url:  "https://www.youtube.com/watch",
			want: "",
		},
		{
			name: "unrelated host",
			url:  "https://vimeo.com/12345678",
			want: "",
		},
		{
			name: "malformed id",
			url:  "https://youtu.be/short",
			want: "",
		},
		{
			name: "invalid characters in id",
			url:  "https://www.youtube.com/watch?v=dQw4w9WgXc!",
			want: "",
		},
		{name: "empty", url: "", want: ""},
		{name: "placeholder", url: "#", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractVideoID(tt.url))
		})
	}
}

func TestExtractVideoIDSameVideoAcrossForms(t *testing.T) {
	// A watch URL and a shortened URL for the same video must agree.
	watch := ExtractVideoID("https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	short := ExtractVideoID("https://youtu.be/dQw4w9WgXcQ")
	assert.Equal(t, watch, short)
	assert.NotEmpty(t, watch)
}

func TestIsShortFormURL(t *testing.T) {
	assert.True(t, IsShortFormURL("https://www.youtube.com/shorts/aB3dE5fG7h9"))
	assert.False(t, IsShortFormURL("https://www.youtube.com/watch?v=dQw4w9WgXcQ"))
	assert.False(t, IsShortFormURL(""))
}

func TestNormaliseTitle(t *testing.T) {
	assert.Equal(t, NoTitle, NormaliseTitle("untitled"))
	assert.Equal(t, NoTitle, NormaliseTitle("  Untitled "))
	assert.Equal(t, NoTitle, NormaliseTitle(""))
	assert.Equal(t, "Sermon on the Mount", NormaliseTitle(" Sermon on the Mount "))
}

func TestSearchOptionsLimit(t *testing.T) {
	assert.Equal(t, DefaultTopK, SearchOptions{}.Limit())
	assert.Equal(t, DefaultTopK, SearchOptions{TopK: -1}.Limit())
	assert.Equal(t, 20, SearchOptions{TopK: 20}.Limit())
}
