package triage

import (
	"strings"
	"unicode/utf8"

	"github.com/linesmerrill/safedesk-api/models"
)

// Analysis is the classifier verdict for a free-text description
type Analysis struct {
	CaseType models.CaseType `json:"caseType"`
	Severity models.Severity `json:"severity"`
	Keywords []string        `json:"keywords"`
	// Signals counts the severity phrases found per level
	Signals map[models.Severity]int `json:"signals"`
}

// Analyze classifies a description by case type and severity using substring matching over
// the trigger tables. It never fails; unmatched text resolves to other/low.
func Analyze(description string) Analysis {
	text := strings.ToLower(description)

	caseType := models.CaseOther
	best := 0
	for _, t := range caseTriggers {
		if n := countMatches(text, t.phrases); n > best {
			best = n
			caseType = t.caseType
		}
	}

	signals := map[models.Severity]int{
		models.SeverityHigh:   countMatches(text, highSeverityPhrases),
		models.SeverityMedium: countMatches(text, mediumSeverityPhrases),
		models.SeverityLow:    countMatches(text, lowSeverityPhrases),
	}

	return Analysis{
		CaseType: caseType,
		Severity: resolveSeverity(signals, utf8.RuneCountInString(description)),
		Keywords: extractKeywords(text),
		Signals:  signals,
	}
}

// CaseAnalysis converts the verdict into the record stored on a session or complaint
func (a Analysis) CaseAnalysis(description string) *models.CaseAnalysis {
	return &models.CaseAnalysis{
		CaseType:    a.CaseType,
		Severity:    a.Severity,
		Keywords:    a.Keywords,
		Description: description,
	}
}

func resolveSeverity(signals map[models.Severity]int, length int) models.Severity {
	switch {
	case signals[models.SeverityHigh] > 0:
		return models.SeverityHigh
	case signals[models.SeverityMedium] > 0, length > lengthThreshold:
		return models.SeverityMedium
	default:
		return models.SeverityLow
	}
}

func extractKeywords(text string) []string {
	keywords := []string{}
	seen := make(map[string]bool)
	for _, t := range caseTriggers {
		for _, phrase := range t.phrases {
			if seen[phrase] || !strings.Contains(text, phrase) {
				continue
			}
			seen[phrase] = true
			keywords = append(keywords, phrase)
			if len(keywords) == maxKeywords {
				return keywords
			}
		}
	}
	return keywords
}

func countMatches(text string, phrases []string) int {
	n := 0
	for _, phrase := range phrases {
		if strings.Contains(text, phrase) {
			n++
		}
	}
	return n
}
