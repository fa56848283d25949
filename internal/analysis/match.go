package analysis

import "strings"

// MaxMissingKeywords caps the number of missing keywords reported.
const MaxMissingKeywords = 15

// KeywordMatch is the outcome of comparing résumé keywords with job keywords.
type KeywordMatch struct {
	Matched    []string
	Missing    []string
	Percentage int
}

// MatchKeywords compares two keyword sets using bidirectional substring containment.
// A résumé keyword matches when it contains, or is contained in, any job keyword.
// A job keyword is missing when no résumé keyword relates to it that way.
// Percentage is |matched| / |job| as a rounded percentage, 0 for an empty job set.
func MatchKeywords(resume, job KeywordSet) KeywordMatch {
	matched := make([]string, 0, len(resume))
	for _, keyword := range resume {
		if relatesToAny(keyword, job) {
			matched = append(matched, keyword)
		}
	}

	missing := make([]string, 0, min(len(job), MaxMissingKeywords))
	for _, keyword := range job {
		if len(missing) == MaxMissingKeywords {
			break
		}
		if !relatesToAny(keyword, resume) {
			missing = append(missing, keyword)
		}
	}

	return KeywordMatch{
		Matched:    matched,
		Missing:    missing,
		Percentage: percentOf(len(matched), len(job)),
	}
}

// relatesToAny reports whether keyword contains or is contained in any candidate.
func relatesToAny(keyword string, candidates KeywordSet) bool {
	for _, candidate := range candidates {
		if strings.Contains(candidate, keyword) || strings.Contains(keyword, candidate) {
			return true
		}
	}
	return false
}

// percentOf returns round(100 * part / whole) with halves rounded up, clamped to
// [0, 100]. A non-positive whole yields 0.
func percentOf(part, whole int) int {
	if whole <= 0 || part <= 0 {
		return 0
	}
	return clampScore((200*part + whole) / (2 * whole))
}

// clampScore bounds a score to [0, 100].
func clampScore(score int) int {
	return max(0, min(100, score))
}
