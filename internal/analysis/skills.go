package analysis

import "strings"

// DefaultSkillsScore is returned when the job text names no catalog skill.
const DefaultSkillsScore = 85

// skillCatalog lists the technical skills recognised by MatchSkills, matched as
// case-insensitive substrings.
var skillCatalog = [...]string{
	"javascript", "python", "java", "react", "angular", "vue", "node", "sql",
	"aws", "azure", "docker", "kubernetes", "git", "agile", "scrum", "api",
	"machine learning", "data science", "analytics", "project management",
}

// SkillCatalog returns a copy of the recognised skill phrases in catalog order.
func SkillCatalog() []string {
	out := make([]string, len(skillCatalog))
	copy(out, skillCatalog[:])
	return out
}

// DetectSkills returns the catalog phrases that appear in text, in catalog order.
// Matching is plain substring matching, so "javascript" also yields "java".
func DetectSkills(text string) []string {
	lower := strings.ToLower(text)
	found := make([]string, 0, len(skillCatalog))
	for _, skill := range skillCatalog {
		if strings.Contains(lower, skill) {
			found = append(found, skill)
		}
	}
	return found
}

// SkillComparison holds catalog skills found in each text and their overlap.
type SkillComparison struct {
	Resume  []string
	Job     []string
	Matched []string
	Missing []string
	Score   int
}

// CompareSkills detects catalog skills in both texts and scores the overlap.
// Score is the rounded percentage of job skills also present in the résumé, or
// DefaultSkillsScore when the job text names none.
func CompareSkills(resumeText, jobText string) SkillComparison {
	comparison := SkillComparison{
		Resume:  DetectSkills(resumeText),
		Job:     DetectSkills(jobText),
		Matched: []string{},
		Missing: []string{},
	}

	if len(comparison.Job) == 0 {
		comparison.Score = DefaultSkillsScore
		return comparison
	}

	have := make(map[string]bool, len(comparison.Resume))
	for _, skill := range comparison.Resume {
		have[skill] = true
	}
	for _, skill := range comparison.Job {
		if have[skill] {
			comparison.Matched = append(comparison.Matched, skill)
		} else {
			comparison.Missing = append(comparison.Missing, skill)
		}
	}

	comparison.Score = percentOf(len(comparison.Matched), len(comparison.Job))
	return comparison
}

// MatchSkills returns the skills-match score for a résumé against a job description.
func MatchSkills(resumeText, jobText string) int {
	return CompareSkills(resumeText, jobText).Score
}
