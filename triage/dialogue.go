package triage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/linesmerrill/safedesk-api/models"
)

// HistoryLimit is the number of sessions History returns
const HistoryLimit = 10

var (
	// ErrSessionNotFound is returned when a session is missing, owned by someone else or no
	// longer active
	ErrSessionNotFound = errors.New("chat session not found")
	// ErrEmptyMessage is returned for blank message text
	ErrEmptyMessage = errors.New("message is required")
)

// SessionStore persists chat sessions. Lookups return nil, nil when nothing matches.
type SessionStore interface {
	ActiveFor(ctx context.Context, userID primitive.ObjectID) (*models.ChatSession, error)
	ByID(ctx context.Context, id, userID primitive.ObjectID) (*models.ChatSession, error)
	// Insert stores a new session and sets its ID
	Insert(ctx context.Context, session *models.ChatSession) error
	// Replace overwrites the whole stored session; the last write wins
	Replace(ctx context.Context, session *models.ChatSession) error
	Recent(ctx context.Context, userID primitive.ObjectID, limit int64) ([]models.ChatSession, error)
}

// Observer is told about dialogue events
type Observer interface {
	CaseOpened(caseType models.CaseType, severity models.Severity)
	FollowUp(intent Intent)
}

// Requester is the identity a chat session belongs to
type Requester struct {
	ID          primitive.ObjectID
	DisplayName string
	Email       string
}

// Name returns the display name, falling back to the local part of the email
func (r Requester) Name() string {
	if r.DisplayName != "" {
		return r.DisplayName
	}
	local, _, _ := strings.Cut(r.Email, "@")
	return local
}

// Option configures an Assistant
type Option func(*Assistant)

// WithObserver reports dialogue events to o
func WithObserver(o Observer) Option {
	return func(a *Assistant) { a.observer = o }
}

// WithClock replaces time.Now for message and session timestamps
func WithClock(now func() time.Time) Option {
	return func(a *Assistant) { a.now = now }
}

// Assistant drives chat sessions: the first user message opens a case, later ones are
// answered by intent.
type Assistant struct {
	sessions  SessionStore
	directory Directory
	matcher   *Matcher
	observer  Observer
	now       func() time.Time
}

// NewAssistant returns an Assistant backed by the given stores
func NewAssistant(sessions SessionStore, directory Directory, opts ...Option) *Assistant {
	a := &Assistant{
		sessions:  sessions,
		directory: directory,
		matcher:   NewMatcher(directory),
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Start returns the requester's active session, creating one seeded with a greeting if there
// is none
func (a *Assistant) Start(ctx context.Context, req Requester) (*models.ChatSession, error) {
	session, err := a.sessions.ActiveFor(ctx, req.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to find active session: %w", err)
	}
	if session != nil {
		a.populate(ctx, session)
		return session, nil
	}

	now := a.now()
	session = &models.ChatSession{
		UserID: req.ID,
		Messages: []models.Message{{
			Role:      models.RoleAssistant,
			Content:   SessionGreeting,
			Timestamp: now,
		}},
		Status:    models.ChatStatusActive,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err = a.sessions.Insert(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

// Active returns the requester's active session, or nil
func (a *Assistant) Active(ctx context.Context, req Requester) (*models.ChatSession, error) {
	session, err := a.sessions.ActiveFor(ctx, req.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to find active session: %w", err)
	}
	if session != nil {
		a.populate(ctx, session)
	}
	return session, nil
}

// History returns the requester's most recent sessions, newest first
func (a *Assistant) History(ctx context.Context, req Requester) ([]models.ChatSession, error) {
	sessions, err := a.sessions.Recent(ctx, req.ID, HistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	for i := range sessions {
		a.populate(ctx, &sessions[i])
	}
	return sessions, nil
}

// Send records a user message and the assistant's reply. Nothing is persisted unless the
// whole exchange is.
func (a *Assistant) Send(ctx context.Context, req Requester, sessionID primitive.ObjectID, text string) (*models.ChatSession, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyMessage
	}

	session, err := a.sessions.ByID(ctx, sessionID, req.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	if session == nil || !session.IsActive {
		return nil, ErrSessionNotFound
	}

	now := a.now()
	session.Messages = append(session.Messages, models.Message{
		Role:      models.RoleUser,
		Content:   text,
		Timestamp: now,
	})

	var reply string
	var notify func()
	if !session.Analyzed() {
		reply, err = a.openCase(ctx, session, req, text)
		analysis := session.CaseAnalysis
		notify = func() {
			if analysis != nil {
				a.observer.CaseOpened(analysis.CaseType, analysis.Severity)
			}
		}
	} else {
		var intent Intent
		intent, reply, err = a.followUp(ctx, session, text)
		notify = func() { a.observer.FollowUp(intent) }
	}
	if err != nil {
		return nil, err
	}

	session.Messages = append(session.Messages, models.Message{
		Role:      models.RoleAssistant,
		Content:   reply,
		Timestamp: now,
	})
	session.UpdatedAt = now

	if err = a.sessions.Replace(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	if a.observer != nil {
		notify()
	}

	a.populate(ctx, session)
	return session, nil
}

// End closes a session owned by the requester, active or not
func (a *Assistant) End(ctx context.Context, req Requester, sessionID primitive.ObjectID) (*models.ChatSession, error) {
	session, err := a.sessions.ByID(ctx, sessionID, req.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	session.IsActive = false
	session.Status = models.ChatStatusClosed
	session.UpdatedAt = a.now()
	if err = a.sessions.Replace(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	a.populate(ctx, session)
	return session, nil
}

// openCase classifies the first user message, attaches the analysis and the top-ranked
// professional to the session and returns the composed reply
func (a *Assistant) openCase(ctx context.Context, session *models.ChatSession, req Requester, text string) (string, error) {
	analysis := Analyze(text)
	response := Generate(analysis, req.Name())

	matches, err := a.matcher.FindBest(ctx, analysis.CaseType, analysis.Severity)
	if err != nil {
		return "", err
	}

	var best *models.Lawyer
	if len(matches) > 0 {
		best = &matches[0]
		session.RecommendedLawyerID = &best.ID
		session.RecommendedLawyer = best
	}

	session.CaseAnalysis = analysis.CaseAnalysis(text)
	session.CaseAnalysis.RecommendedAction = response.Recommendation.Message

	return response.Compose(best), nil
}

func (a *Assistant) followUp(ctx context.Context, session *models.ChatSession, text string) (Intent, string, error) {
	intent := DetectIntent(text)
	switch intent {
	case IntentConfirm:
		name := defaultTeamName
		if session.RecommendedLawyerID != nil {
			lawyer, err := a.directory.Professional(ctx, *session.RecommendedLawyerID)
			if err != nil {
				return intent, "", fmt.Errorf("failed to find recommended lawyer: %w", err)
			}
			if lawyer != nil && lawyer.Name != "" {
				name = lawyer.Name
			}
		}
		session.Status = models.ChatStatusLawyerAssigned
		return intent, fmt.Sprintf(confirmTemplate, name), nil
	case IntentDecline:
		return intent, declineTemplate, nil
	case IntentEvidence:
		return intent, evidenceTemplate, nil
	case IntentCost:
		note := consultationNote
		if sev := session.CaseAnalysis.Severity; sev == models.SeverityHigh || sev == models.SeverityMedium {
			note = contingencyNote
		}
		return intent, fmt.Sprintf(costTemplate, note), nil
	default:
		return intent, clarifyTemplate, nil
	}
}

// populate fills RecommendedLawyer for callers. Failures are logged and leave it empty.
func (a *Assistant) populate(ctx context.Context, session *models.ChatSession) {
	if session.RecommendedLawyerID == nil || session.RecommendedLawyer != nil {
		return
	}
	lawyer, err := a.directory.Professional(ctx, *session.RecommendedLawyerID)
	if err != nil {
		zap.S().Warnw("failed to populate recommended lawyer",
			"sessionID", session.ID.Hex(),
			"lawyerID", session.RecommendedLawyerID.Hex(),
			"error", err)
		return
	}
	session.RecommendedLawyer = lawyer
}
