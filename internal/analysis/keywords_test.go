package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractKeywords(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected KeywordSet
	}{
		{"Empty input", "", KeywordSet{}},
		{"Whitespace only", "  \n\t ", KeywordSet{}},
		{"Drops stop words and short tokens", "The quick brown fox and the lazy dog", KeywordSet{"quick", "brown", "fox", "lazy", "dog"}},
		{"Punctuation splits tokens", "Go, Python; C++ & node.js!", KeywordSet{"python", "node"}},
		{"Deduplicates case-insensitively", "Python python PYTHON java", KeywordSet{"python", "java"}},
		{"No stemming", "manage managed managing", KeywordSet{"manage", "managed", "managing"}},
		{"Unicode letters kept", "Café résumé", KeywordSet{"café", "résumé"}},
		{"Digits kept", "2020 ab1 x9", KeywordSet{"2020", "ab1"}},
		{"Underscore is punctuation", "snake_case_name", KeywordSet{"snake", "case", "name"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractKeywords(tt.input))
		})
	}
}

func TestExtractKeywords_FirstSeenOrder(t *testing.T) {
	keywords := ExtractKeywords("docker kubernetes docker terraform kubernetes")
	assert.Equal(t, KeywordSet{"docker", "kubernetes", "terraform"}, keywords)
}

func TestExtractKeywords_AllStopWordsRemoved(t *testing.T) {
	for word := range stopWords {
		assert.Empty(t, ExtractKeywords(word), "stop word %q should be dropped", word)
	}
}
