package triage

import (
	"context"
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/linesmerrill/safedesk-api/models"
)

// MaxRecommendations is the number of candidates FindBest returns at most
const MaxRecommendations = 3

// DirectoryFilter selects professionals from the directory. Only active entries are returned.
type DirectoryFilter struct {
	Specialization string
	// Availability, when set, requires an exact availability value
	Availability string
	// ExcludeUnavailable drops entries whose availability is unavailable
	ExcludeUnavailable bool
}

// Directory is the read side of the professional directory
type Directory interface {
	FindProfessionals(ctx context.Context, filter DirectoryFilter) ([]models.Lawyer, error)
	// Professional returns nil, nil when no entry has the id
	Professional(ctx context.Context, id primitive.ObjectID) (*models.Lawyer, error)
}

// Matcher ranks directory professionals for a case
type Matcher struct {
	directory Directory
}

// NewMatcher returns a Matcher reading from directory
func NewMatcher(directory Directory) *Matcher {
	return &Matcher{directory: directory}
}

// FindBest returns up to MaxRecommendations professionals for the case, best first. An empty
// result is not an error.
func (m *Matcher) FindBest(ctx context.Context, caseType models.CaseType, severity models.Severity) ([]models.Lawyer, error) {
	candidates, err := m.directory.FindProfessionals(ctx, DirectoryFilter{
		Specialization:     SpecializationFor(caseType),
		ExcludeUnavailable: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query directory: %w", err)
	}

	ranked := make([]models.Lawyer, len(candidates))
	copy(ranked, candidates)
	rank(ranked, severity)

	if len(ranked) > MaxRecommendations {
		ranked = ranked[:MaxRecommendations]
	}
	return ranked, nil
}

// rank orders by seniority for high severity cases, by client satisfaction otherwise
func rank(lawyers []models.Lawyer, severity models.Severity) {
	key := func(l models.Lawyer) [3]float64 {
		if severity == models.SeverityHigh {
			return [3]float64{float64(l.Experience), l.SuccessRate, l.Rating}
		}
		return [3]float64{l.Rating, l.SuccessRate, float64(l.Experience)}
	}
	sort.SliceStable(lawyers, func(i, j int) bool {
		a, b := key(lawyers[i]), key(lawyers[j])
		for k := range a {
			if a[k] != b[k] {
				return a[k] > b[k]
			}
		}
		return false
	})
}
