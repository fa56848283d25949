package analysis

import (
	"regexp"
	"strings"
)

// baseReadabilityScore applies when the words-per-sentence ratio falls in no band.
const baseReadabilityScore = 65

var sentenceBreaks = regexp.MustCompile(`[.!?]+`)

// readabilityBands are checked in order; the first inclusive range that holds the
// words-per-sentence ratio wins.
var readabilityBands = []struct {
	min, max float64
	score    int
}{
	{15, 20, 95},
	{10, 25, 85},
	{8, 30, 75},
}

// ReadabilityStats holds the counts behind a readability score.
type ReadabilityStats struct {
	Words            int
	Sentences        int
	WordsPerSentence float64
}

// MeasureReadability counts words and sentences in text.
// Sentences are the segments between runs of '.', '!' or '?', so text ending in
// terminal punctuation gains an empty trailing segment, and empty text counts as
// one sentence.
func MeasureReadability(text string) ReadabilityStats {
	words := len(strings.Fields(text))
	sentences := len(sentenceBreaks.Split(text, -1))
	return ReadabilityStats{
		Words:            words,
		Sentences:        sentences,
		WordsPerSentence: float64(words) / float64(sentences),
	}
}

// ScoreReadability maps the average words per sentence to a score.
func ScoreReadability(text string) int {
	ratio := MeasureReadability(text).WordsPerSentence
	for _, band := range readabilityBands {
		if ratio >= band.min && ratio <= band.max {
			return band.score
		}
	}
	return baseReadabilityScore
}
