package analysis

import (
	"regexp"
	"strings"
)

// Format deductions, applied independently to a starting score of 100.
const (
	bulletPenalty  = 10
	sectionPenalty = 15
	datePenalty    = 10
	emailPenalty   = 10
	phonePenalty   = 5

	minSectionHeaders = 2
)

var (
	bulletMarkers  = []string{"•", "●", "▪", "◦", "‣", "*", "-"}
	sectionHeaders = []string{"experience", "education", "skills", "summary"}

	datePattern  = regexp.MustCompile(`\d{4}|\d{1,2}/\d{4}`)
	emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)
	phonePattern = regexp.MustCompile(`\d{3}[-.]?\d{3}[-.]?\d{4}`)
)

// FormatReport records the outcome of each structural check on a résumé.
type FormatReport struct {
	HasBullets bool
	Sections   []string // Section headers found, in check order
	HasDates   bool
	HasEmail   bool
	HasPhone   bool
	Score      int
}

// CheckFormat runs every structural check on the résumé text and scores it.
func CheckFormat(resumeText string) FormatReport {
	lower := strings.ToLower(resumeText)

	report := FormatReport{
		HasBullets: containsAny(resumeText, bulletMarkers),
		Sections:   make([]string, 0, len(sectionHeaders)),
		HasDates:   datePattern.MatchString(resumeText),
		HasEmail:   emailPattern.MatchString(resumeText),
		HasPhone:   phonePattern.MatchString(resumeText),
	}
	for _, header := range sectionHeaders {
		if strings.Contains(lower, header) {
			report.Sections = append(report.Sections, header)
		}
	}

	score := 100
	if !report.HasBullets {
		score -= bulletPenalty
	}
	if len(report.Sections) < minSectionHeaders {
		score -= sectionPenalty
	}
	if !report.HasDates {
		score -= datePenalty
	}
	if !report.HasEmail {
		score -= emailPenalty
	}
	if !report.HasPhone {
		score -= phonePenalty
	}
	report.Score = clampScore(score)

	return report
}

// ScoreFormat returns the format score for a résumé.
func ScoreFormat(resumeText string) int {
	return CheckFormat(resumeText).Score
}

func containsAny(text string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(text, needle) {
			return true
		}
	}
	return false
}
