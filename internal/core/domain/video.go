package domain

import (
	"net/url"
	"strings"
)

// videoIDLength is the canonical YouTube video identifier length.
const videoIDLength = 11

// ExtractVideoID derives a stable video identifier from a source URL.
// Standard watch URLs, shortened youtu.be links, /shorts/, /embed/ and
// /live/ paths all resolve to the same identifier. Returns "" when no
// identifier can be extracted; callers must treat such items as
// unidentifiable and exclude them from results.
func ExtractVideoID(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return ""
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")

	switch host {
	case "youtu.be":
		return validVideoID(firstPathSegment(u.Path))

	case "youtube.com", "m.youtube.com", "music.youtube.com", "youtube-nocookie.com":
		if id := u.Query().Get("v"); id != "" {
			return validVideoID(id)
		}
		// Path-style forms: /shorts/ID, /embed/ID, /live/ID.
		segments := strings.Split(strings.Trim(u.Path, "/"), "/")
		if len(segments) >= 2 {
			switch segments[0] {
			case "shorts", "embed", "live", "v":
				return validVideoID(segments[1])
			}
		}
		return ""
	}

	return ""
}

// IsShortFormURL reports whether a URL uses the /shorts/ path form,
// which marks the content as a short clip without any network lookup.
func IsShortFormURL(rawURL string) bool {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return false
	}
	return strings.HasPrefix(strings.Trim(u.Path, "/"), "shorts/")
}

func firstPathSegment(path string) string {
	path = strings.Trim(path, "/")
	if i := strings.IndexByte(path, '/'); i >= 0 {
		return path[:i]
	}
	return path
}

// validVideoID filters out obviously malformed identifiers. YouTube IDs
// are 11 characters of [A-Za-z0-9_-].
func validVideoID(id string) string {
	if len(id) != videoIDLength {
		return ""
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '-' || c == '_':
		default:
			return ""
		}
	}
	return id
}
