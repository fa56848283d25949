package analysis

import "strings"

// Thresholds below which a recommendation is emitted.
const (
	keywordMatchThreshold = 70
	skillsMatchThreshold  = 80
	formatScoreThreshold  = 85

	missingKeywordsInTip = 5
)

// Weights of each sub-score in the overall score, in tenths (sum 10).
const (
	keywordWeightTenths     = 4
	skillsWeightTenths      = 3
	formatWeightTenths      = 2
	readabilityWeightTenths = 1
)

const (
	tipKeywords       = "Include more job-specific keywords from the job description"
	tipSkills         = "Highlight technical skills that match the job requirements"
	tipFormatting     = "Improve resume formatting with clear sections and bullet points"
	tipMissingPrefix  = "Consider incorporating these missing keywords: "
	tipActionVerbs    = "Use action verbs to describe your accomplishments"
	tipQuantification = "Quantify your achievements with specific numbers and metrics"
)

var (
	staticStrengths = []string{
		"Professional experience section",
		"Education background included",
		"Clear contact information",
	}
	staticImprovementAreas = []string{
		"Keyword optimization",
		"Skills alignment",
		"Achievement quantification",
	}
)

// SubScores are the four component scores that feed the overall score.
type SubScores struct {
	KeywordMatch int
	SkillsMatch  int
	Format       int
	Readability  int
}

// Recommend builds the ordered list of recommendations for a set of scores.
// The two closing tips are always present.
func Recommend(scores SubScores, missing []string) []string {
	recommendations := make([]string, 0, 6)

	if scores.KeywordMatch < keywordMatchThreshold {
		recommendations = append(recommendations, tipKeywords)
	}
	if scores.SkillsMatch < skillsMatchThreshold {
		recommendations = append(recommendations, tipSkills)
	}
	if scores.Format < formatScoreThreshold {
		recommendations = append(recommendations, tipFormatting)
	}
	if len(missing) > 0 {
		top := missing[:min(len(missing), missingKeywordsInTip)]
		recommendations = append(recommendations, tipMissingPrefix+strings.Join(top, ", "))
	}

	return append(recommendations, tipActionVerbs, tipQuantification)
}

// OverallScore is the weighted average 0.4·keyword + 0.3·skills + 0.2·format +
// 0.1·readability, rounded half up. It is computed in integer tenths so that
// values such as 79.5 round exactly.
func OverallScore(scores SubScores) int {
	tenths := keywordWeightTenths*scores.KeywordMatch +
		skillsWeightTenths*scores.SkillsMatch +
		formatWeightTenths*scores.Format +
		readabilityWeightTenths*scores.Readability
	return clampScore((tenths + 5) / 10)
}
