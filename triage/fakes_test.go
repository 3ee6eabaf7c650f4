package triage

import (
	"context"
	"errors"
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/linesmerrill/safedesk-api/models"
)

type memoryStore struct {
	sessions   map[primitive.ObjectID]models.ChatSession
	replaceErr error
	replaced   int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{sessions: make(map[primitive.ObjectID]models.ChatSession)}
}

func clone(s models.ChatSession) *models.ChatSession {
	c := s
	c.Messages = append([]models.Message(nil), s.Messages...)
	if s.CaseAnalysis != nil {
		analysis := *s.CaseAnalysis
		c.CaseAnalysis = &analysis
	}
	c.RecommendedLawyer = nil
	return &c
}

func (m *memoryStore) ActiveFor(_ context.Context, userID primitive.ObjectID) (*models.ChatSession, error) {
	for _, s := range m.sessions {
		if s.UserID == userID && s.IsActive {
			return clone(s), nil
		}
	}
	return nil, nil
}

func (m *memoryStore) ByID(_ context.Context, id, userID primitive.ObjectID) (*models.ChatSession, error) {
	s, ok := m.sessions[id]
	if !ok || s.UserID != userID {
		return nil, nil
	}
	return clone(s), nil
}

func (m *memoryStore) Insert(_ context.Context, session *models.ChatSession) error {
	session.ID = primitive.NewObjectID()
	m.sessions[session.ID] = *clone(*session)
	return nil
}

func (m *memoryStore) Replace(_ context.Context, session *models.ChatSession) error {
	if m.replaceErr != nil {
		return m.replaceErr
	}
	if _, ok := m.sessions[session.ID]; !ok {
		return errors.New("no session to replace")
	}
	m.replaced++
	m.sessions[session.ID] = *clone(*session)
	return nil
}

func (m *memoryStore) Recent(_ context.Context, userID primitive.ObjectID, limit int64) ([]models.ChatSession, error) {
	var out []models.ChatSession
	for _, s := range m.sessions {
		if s.UserID == userID {
			out = append(out, *clone(s))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

type memoryDirectory struct {
	lawyers []models.Lawyer
	err     error
	filters []DirectoryFilter
}

func (d *memoryDirectory) FindProfessionals(_ context.Context, filter DirectoryFilter) ([]models.Lawyer, error) {
	d.filters = append(d.filters, filter)
	if d.err != nil {
		return nil, d.err
	}
	var out []models.Lawyer
	for _, l := range d.lawyers {
		if !l.IsActive || !contains(l.Specializations, filter.Specialization) {
			continue
		}
		if filter.ExcludeUnavailable && l.Availability == models.AvailabilityUnavailable {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (d *memoryDirectory) Professional(_ context.Context, id primitive.ObjectID) (*models.Lawyer, error) {
	if d.err != nil {
		return nil, d.err
	}
	for _, l := range d.lawyers {
		if l.ID == id {
			found := l
			return &found, nil
		}
	}
	return nil, nil
}

func contains(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}

type recordingObserver struct {
	opened    []models.CaseType
	followUps []Intent
}

func (o *recordingObserver) CaseOpened(caseType models.CaseType, _ models.Severity) {
	o.opened = append(o.opened, caseType)
}

func (o *recordingObserver) FollowUp(intent Intent) {
	o.followUps = append(o.followUps, intent)
}

func lawyer(name string, specialization string, experience int, rating, successRate float64) models.Lawyer {
	return models.Lawyer{
		ID:              primitive.NewObjectID(),
		Name:            name,
		Email:           "counsel@example.com",
		Phone:           "555-0100",
		Specializations: []string{specialization},
		Experience:      experience,
		Rating:          rating,
		SuccessRate:     successRate,
		CasesHandled:    100,
		Availability:    models.AvailabilityAvailable,
		IsActive:        true,
	}
}
