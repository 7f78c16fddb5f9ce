package services

import "github.com/vidseek/vidseek/internal/core/domain"

// suppressionWindowSeconds is the inclusive time window within which two
// regular results from the same video are considered near-duplicates.
const suppressionWindowSeconds = 60

// SelectTopK walks candidates in their given (descending score) order
// and accepts up to k results under the suppression policy:
//
//   - candidates without a resolvable video ID are dropped outright;
//   - short-form items: at most one accepted result per video, the
//     timestamp is ignored;
//   - regular items: suppressed when the same video already contributed
//     an accepted result within suppressionWindowSeconds (inclusive) of
//     the candidate's offset. Different videos never interact.
//
// Selection terminates as soon as k results are accepted; remaining
// candidates are not evaluated.
func SelectTopK(candidates []domain.ScoredResult, k int) []domain.ScoredResult {
	if k <= 0 {
		return []domain.ScoredResult{}
	}

	shortsSeen := make(map[string]bool)
	offsetsSeen := make(map[string][]int)

	results := make([]domain.ScoredResult, 0, k)
	for _, c := range candidates {
		id := c.Item.VideoID
		if id == "" {
			continue
		}

		if c.Item.IsShortForm {
			if shortsSeen[id] {
				continue
			}
			shortsSeen[id] = true
		} else {
			offset := c.Item.OffsetSeconds()
			if nearAccepted(offsetsSeen[id], offset) {
				continue
			}
			offsetsSeen[id] = append(offsetsSeen[id], offset)
		}

		results = append(results, c)
		if len(results) == k {
			break
		}
	}

	return results
}

// nearAccepted reports whether offset falls within the suppression
// window of any already-accepted offset for the same video.
func nearAccepted(accepted []int, offset int) bool {
	for _, a := range accepted {
		d := offset - a
		if d < 0 {
			d = -d
		}
		if d <= suppressionWindowSeconds {
			return true
		}
	}
	return false
}
