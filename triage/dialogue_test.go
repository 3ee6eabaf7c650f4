package triage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/linesmerrill/safedesk-api/models"
)

const openingMessage = "I was fired after I reported my manager for inappropriate sexual comments, and now I'm afraid of retaliation"

func newTestAssistant(store *memoryStore, dir *memoryDirectory, opts ...Option) *Assistant {
	clock := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	opts = append([]Option{WithClock(func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	})}, opts...)
	return NewAssistant(store, dir, opts...)
}

func testRequester() Requester {
	return Requester{ID: primitive.NewObjectID(), Email: "sam.lee@example.com"}
}

func TestRequester_Name(t *testing.T) {
	assert.Equal(t, "sam.lee", Requester{Email: "sam.lee@example.com"}.Name())
	assert.Equal(t, "Sam", Requester{DisplayName: "Sam", Email: "sam.lee@example.com"}.Name())
}

func TestAssistant_Start(t *testing.T) {
	store := newMemoryStore()
	a := newTestAssistant(store, &memoryDirectory{})
	req := testRequester()

	session, err := a.Start(context.Background(), req)

	assert.NoError(t, err)
	assert.False(t, session.ID.IsZero())
	assert.Equal(t, req.ID, session.UserID)
	assert.Equal(t, models.ChatStatusActive, session.Status)
	assert.True(t, session.IsActive)
	assert.False(t, session.Analyzed())
	if assert.Len(t, session.Messages, 1) {
		assert.Equal(t, models.RoleAssistant, session.Messages[0].Role)
		assert.Equal(t, SessionGreeting, session.Messages[0].Content)
	}

	again, err := a.Start(context.Background(), req)
	assert.NoError(t, err)
	assert.Equal(t, session.ID, again.ID)
	assert.Len(t, store.sessions, 1)
}

func TestAssistant_Active(t *testing.T) {
	a := newTestAssistant(newMemoryStore(), &memoryDirectory{})
	req := testRequester()

	none, err := a.Active(context.Background(), req)
	assert.NoError(t, err)
	assert.Nil(t, none)

	started, _ := a.Start(context.Background(), req)
	active, err := a.Active(context.Background(), req)
	assert.NoError(t, err)
	assert.Equal(t, started.ID, active.ID)
}

func TestAssistant_SendValidation(t *testing.T) {
	store := newMemoryStore()
	a := newTestAssistant(store, &memoryDirectory{})
	req := testRequester()
	session, _ := a.Start(context.Background(), req)

	_, err := a.Send(context.Background(), req, session.ID, "   ")
	assert.ErrorIs(t, err, ErrEmptyMessage)

	_, err = a.Send(context.Background(), req, primitive.NewObjectID(), "hello")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = a.Send(context.Background(), testRequester(), session.ID, "hello")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	assert.Equal(t, 0, store.replaced)
	assert.Len(t, store.sessions[session.ID].Messages, 1)
}

func TestAssistant_SendOpensCase(t *testing.T) {
	counsel := lawyer("Jane Doe", "sexual-harassment", 12, 4.8, 92)
	store := newMemoryStore()
	observer := &recordingObserver{}
	a := newTestAssistant(store, &memoryDirectory{lawyers: []models.Lawyer{counsel}}, WithObserver(observer))
	req := testRequester()
	session, _ := a.Start(context.Background(), req)

	got, err := a.Send(context.Background(), req, session.ID, openingMessage)

	assert.NoError(t, err)
	if assert.NotNil(t, got.CaseAnalysis) {
		assert.Equal(t, models.CaseSexualHarassment, got.CaseAnalysis.CaseType)
		assert.Equal(t, models.SeverityLow, got.CaseAnalysis.Severity)
		assert.Equal(t, openingMessage, got.CaseAnalysis.Description)
		assert.Equal(t, recommendations[models.SeverityLow].Message, got.CaseAnalysis.RecommendedAction)
	}
	if assert.NotNil(t, got.RecommendedLawyerID) {
		assert.Equal(t, counsel.ID, *got.RecommendedLawyerID)
	}
	assert.Equal(t, "Jane Doe", got.RecommendedLawyer.Name)
	assert.Len(t, got.Messages, 3)

	reply := got.Messages[2]
	assert.Equal(t, models.RoleAssistant, reply.Role)
	assert.Contains(t, reply.Content, "Thank you for sharing this with me, sam.lee.")
	assert.NotContains(t, reply.Content, "Recommended Lawyer")

	stored := store.sessions[session.ID]
	assert.Equal(t, got.CaseAnalysis, stored.CaseAnalysis)
	assert.Nil(t, stored.RecommendedLawyer)
	assert.Equal(t, []models.CaseType{models.CaseSexualHarassment}, observer.opened)
}

func TestAssistant_SendOpensUrgentCaseWithLawyerBlock(t *testing.T) {
	counsel := lawyer("Jane Doe", "employment-law", 12, 4.8, 92)
	a := newTestAssistant(newMemoryStore(), &memoryDirectory{lawyers: []models.Lawyer{counsel}})
	req := testRequester()
	session, _ := a.Start(context.Background(), req)

	got, err := a.Send(context.Background(), req, session.ID, "He threatened me with a weapon")

	assert.NoError(t, err)
	assert.Equal(t, models.SeverityHigh, got.CaseAnalysis.Severity)
	assert.Contains(t, got.Messages[2].Content, "**⚠️ This is a serious matter that requires immediate legal attention.**")
	assert.Contains(t, got.Messages[2].Content, "**👨‍⚖️ Recommended Lawyer: Jane Doe**")
}

func TestAssistant_SendWithoutMatchesOmitsLawyerBlock(t *testing.T) {
	a := newTestAssistant(newMemoryStore(), &memoryDirectory{})
	req := testRequester()
	session, _ := a.Start(context.Background(), req)

	got, err := a.Send(context.Background(), req, session.ID, "The bullying is ongoing")

	assert.NoError(t, err)
	assert.Equal(t, models.SeverityMedium, got.CaseAnalysis.Severity)
	assert.Nil(t, got.RecommendedLawyerID)
	assert.Contains(t, got.Messages[2].Content, recommendations[models.SeverityMedium].Message)
	assert.NotContains(t, got.Messages[2].Content, "Recommended Lawyer")
}

func TestAssistant_SendFollowUps(t *testing.T) {
	counsel := lawyer("Jane Doe", "employment-law", 12, 4.8, 92)
	store := newMemoryStore()
	observer := &recordingObserver{}
	a := newTestAssistant(store, &memoryDirectory{lawyers: []models.Lawyer{counsel}}, WithObserver(observer))
	req := testRequester()
	session, _ := a.Start(context.Background(), req)

	opened, err := a.Send(context.Background(), req, session.ID, "He threatened me with a weapon")
	assert.NoError(t, err)
	analysis := *opened.CaseAnalysis

	cost, err := a.Send(context.Background(), req, session.ID, "what about the cost")
	assert.NoError(t, err)
	assert.Contains(t, cost.Messages[4].Content, contingencyNote)
	assert.Equal(t, analysis, *cost.CaseAnalysis)
	assert.Equal(t, models.ChatStatusActive, cost.Status)

	confirmed, err := a.Send(context.Background(), req, session.ID, "yes, schedule me")
	assert.NoError(t, err)
	assert.Equal(t, models.ChatStatusLawyerAssigned, confirmed.Status)
	assert.Contains(t, confirmed.Messages[6].Content, "Great! I'm connecting you with Jane Doe.")
	assert.Equal(t, analysis, *confirmed.CaseAnalysis)
	assert.Len(t, confirmed.Messages, 7)

	assert.Equal(t, []Intent{IntentCost, IntentConfirm}, observer.followUps)
	assert.Len(t, observer.opened, 1)
}

func TestAssistant_SendFollowUpReplies(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		intent Intent
		reply  string
	}{
		{name: "decline", text: "not now", intent: IntentDecline, reply: declineTemplate},
		{name: "evidence", text: "how do I gather proof", intent: IntentEvidence, reply: evidenceTemplate},
		{name: "clarify", text: "hmm", intent: IntentClarify, reply: clarifyTemplate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemoryStore()
			observer := &recordingObserver{}
			counsel := lawyer("Jane Doe", "employment-law", 12, 4.8, 92)
			a := newTestAssistant(store, &memoryDirectory{lawyers: []models.Lawyer{counsel}}, WithObserver(observer))
			req := testRequester()
			session, _ := a.Start(context.Background(), req)

			opened, err := a.Send(context.Background(), req, session.ID, "He threatened me with a weapon")
			assert.NoError(t, err)
			analysis := *opened.CaseAnalysis
			lawyerID := opened.RecommendedLawyerID

			got, err := a.Send(context.Background(), req, session.ID, tt.text)
			assert.NoError(t, err)
			assert.Len(t, got.Messages, 5)
			assert.Equal(t, models.RoleUser, got.Messages[3].Role)
			assert.Equal(t, tt.text, got.Messages[3].Content)
			assert.Equal(t, models.RoleAssistant, got.Messages[4].Role)
			assert.Equal(t, tt.reply, got.Messages[4].Content)
			assert.Equal(t, models.ChatStatusActive, got.Status)
			assert.True(t, got.IsActive)
			assert.Equal(t, analysis, *got.CaseAnalysis)
			assert.Equal(t, lawyerID, got.RecommendedLawyerID)
			assert.Equal(t, []Intent{tt.intent}, observer.followUps)

			stored, err := store.ByID(context.Background(), session.ID, req.ID)
			assert.NoError(t, err)
			assert.Equal(t, models.ChatStatusActive, stored.Status)
			assert.Equal(t, analysis, *stored.CaseAnalysis)
		})
	}
}

func TestAssistant_SendFollowUpWithoutRecommendation(t *testing.T) {
	a := newTestAssistant(newMemoryStore(), &memoryDirectory{})
	req := testRequester()
	session, _ := a.Start(context.Background(), req)
	_, _ = a.Send(context.Background(), req, session.ID, "It happened once")

	cost, err := a.Send(context.Background(), req, session.ID, "is there a fee")
	assert.NoError(t, err)
	assert.Contains(t, cost.Messages[4].Content, consultationNote)

	confirmed, err := a.Send(context.Background(), req, session.ID, "I want a lawyer")
	assert.NoError(t, err)
	assert.Contains(t, confirmed.Messages[6].Content, "Great! I'm connecting you with our legal team.")
}

func TestAssistant_SendReplaceFailure(t *testing.T) {
	store := newMemoryStore()
	a := newTestAssistant(store, &memoryDirectory{})
	req := testRequester()
	session, _ := a.Start(context.Background(), req)
	store.replaceErr = errors.New("mocked-error")

	got, err := a.Send(context.Background(), req, session.ID, "The bullying is ongoing")

	assert.Nil(t, got)
	assert.EqualError(t, err, "failed to save session: mocked-error")
	assert.Nil(t, store.sessions[session.ID].CaseAnalysis)
	assert.Len(t, store.sessions[session.ID].Messages, 1)
}

func TestAssistant_SendDirectoryFailure(t *testing.T) {
	store := newMemoryStore()
	a := newTestAssistant(store, &memoryDirectory{err: errors.New("mocked-error")})
	req := testRequester()
	session, _ := a.Start(context.Background(), req)

	got, err := a.Send(context.Background(), req, session.ID, "The bullying is ongoing")

	assert.Nil(t, got)
	assert.EqualError(t, err, "failed to query directory: mocked-error")
	assert.Equal(t, 0, store.replaced)
}

func TestAssistant_End(t *testing.T) {
	store := newMemoryStore()
	a := newTestAssistant(store, &memoryDirectory{})
	req := testRequester()
	session, _ := a.Start(context.Background(), req)

	_, err := a.End(context.Background(), testRequester(), session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	ended, err := a.End(context.Background(), req, session.ID)
	assert.NoError(t, err)
	assert.False(t, ended.IsActive)
	assert.Equal(t, models.ChatStatusClosed, ended.Status)

	_, err = a.Send(context.Background(), req, session.ID, "hello again")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	active, err := a.Active(context.Background(), req)
	assert.NoError(t, err)
	assert.Nil(t, active)
}

func TestAssistant_History(t *testing.T) {
	counsel := lawyer("Jane Doe", "employment-law", 12, 4.8, 92)
	store := newMemoryStore()
	a := newTestAssistant(store, &memoryDirectory{lawyers: []models.Lawyer{counsel}})
	req := testRequester()

	var ids []primitive.ObjectID
	for i := 0; i < HistoryLimit+2; i++ {
		session, err := a.Start(context.Background(), req)
		assert.NoError(t, err)
		_, err = a.Send(context.Background(), req, session.ID, "He threatened me")
		assert.NoError(t, err)
		_, err = a.End(context.Background(), req, session.ID)
		assert.NoError(t, err)
		ids = append(ids, session.ID)
	}

	history, err := a.History(context.Background(), req)

	assert.NoError(t, err)
	assert.Len(t, history, HistoryLimit)
	assert.Equal(t, ids[len(ids)-1], history[0].ID)
	assert.Equal(t, "Jane Doe", history[0].RecommendedLawyer.Name)
}
