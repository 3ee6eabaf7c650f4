package triage

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/linesmerrill/safedesk-api/models"
)

// Recommendation is the severity-selected advice and how strongly it points to a lawyer
type Recommendation struct {
	Message        string `json:"message"`
	RequiresLawyer bool   `json:"requiresLawyer"`
	Urgent         bool   `json:"urgent"`
}

// Response is the structured reply to a case-opening message
type Response struct {
	Greeting        string          `json:"greeting"`
	CaseExplanation string          `json:"caseExplanation"`
	Recommendation  Recommendation  `json:"recommendation"`
	Severity        models.Severity `json:"severity"`
}

// Generate builds the reply for an analysis, addressed to displayName
func Generate(analysis Analysis, displayName string) Response {
	if displayName == "" {
		displayName = defaultDisplayName
	}

	explanation, ok := explanations[analysis.CaseType]
	if !ok {
		explanation = explanations[models.CaseOther]
	}
	recommendation, ok := recommendations[analysis.Severity]
	if !ok {
		recommendation = recommendations[models.SeverityLow]
	}

	return Response{
		Greeting:        fmt.Sprintf(greetingTemplate, displayName),
		CaseExplanation: explanation,
		Recommendation:  recommendation,
		Severity:        analysis.Severity,
	}
}

// Compose joins the reply into a single message. The lawyer block is only added when the
// recommendation asks for a lawyer and one was found.
func (r Response) Compose(lawyer *models.Lawyer) string {
	parts := []string{r.Greeting, r.CaseExplanation, r.Recommendation.Message}
	if r.Recommendation.RequiresLawyer && lawyer != nil {
		parts = append(parts, FormatRecommendation(*lawyer))
	}
	return strings.Join(parts, "\n\n")
}

// FormatRecommendation renders a directory entry as a chat message block
func FormatRecommendation(lawyer models.Lawyer) string {
	fee := "Free initial consultation"
	if lawyer.ConsultationFee != 0 {
		fee = "$" + formatNumber(lawyer.ConsultationFee)
	}

	var about string
	if lawyer.Bio != "" {
		about = fmt.Sprintf("\n**About:** %s\n", lawyer.Bio)
	}

	return fmt.Sprintf(lawyerTemplate,
		lawyer.Name,
		strings.ReplaceAll(strings.Join(lawyer.Specializations, ", "), "-", " "),
		lawyer.Experience,
		formatNumber(lawyer.SuccessRate),
		formatNumber(lawyer.Rating),
		lawyer.CasesHandled,
		fee,
		about,
		lawyer.Email,
		lawyer.Phone,
		firstName(lawyer.Name),
	)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func firstName(name string) string {
	first, _, _ := strings.Cut(name, " ")
	return first
}
