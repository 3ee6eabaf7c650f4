package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CaseType is the legal-issue category assigned to a chat session or complaint
type CaseType string

// Case types, in the order the classifier declares them
const (
	CaseWorkplaceHarassment CaseType = "workplace-harassment"
	CaseSexualHarassment    CaseType = "sexual-harassment"
	CaseDiscrimination      CaseType = "discrimination"
	CaseRetaliation         CaseType = "retaliation"
	CaseWrongfulTermination CaseType = "wrongful-termination"
	CaseWageDispute         CaseType = "wage-dispute"
	CaseOther               CaseType = "other"
)

// Severity is the three level urgency tag of a case
type Severity string

// Severity levels
const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Message roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Chat session statuses
const (
	ChatStatusActive         = "active"
	ChatStatusResolved       = "resolved"
	ChatStatusLawyerAssigned = "lawyer-assigned"
	ChatStatusClosed         = "closed"
)

// ChatSession holds the structure for the chat_sessions collection in mongo
type ChatSession struct {
	ID                  primitive.ObjectID  `json:"_id" bson:"_id,omitempty"`
	UserID              primitive.ObjectID  `json:"userId" bson:"userId"`
	Messages            []Message           `json:"messages" bson:"messages"`
	CaseAnalysis        *CaseAnalysis       `json:"caseAnalysis,omitempty" bson:"caseAnalysis,omitempty"`
	RecommendedLawyerID *primitive.ObjectID `json:"recommendedLawyerId,omitempty" bson:"recommendedLawyer,omitempty"`
	Status              string              `json:"status" bson:"status"`
	IsActive            bool                `json:"isActive" bson:"isActive"`
	CreatedAt           time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt           time.Time           `json:"updatedAt" bson:"updatedAt"`

	// RecommendedLawyer is the populated directory entry for RecommendedLawyerID. It is
	// filled on read and never written back.
	RecommendedLawyer *Lawyer `json:"recommendedLawyer,omitempty" bson:"-"`
}

// Message is a single chat exchange entry
type Message struct {
	Role      string    `json:"role" bson:"role"`
	Content   string    `json:"content" bson:"content"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}

// CaseAnalysis is the classifier result attached to a session on its first user message
type CaseAnalysis struct {
	CaseType          CaseType `json:"caseType" bson:"caseType"`
	Severity          Severity `json:"severity" bson:"severity"`
	Keywords          []string `json:"keywords" bson:"keywords"`
	Description       string   `json:"description" bson:"description"`
	RecommendedAction string   `json:"recommendedAction,omitempty" bson:"recommendedAction,omitempty"`
}

// Analyzed reports whether the session has left the no-analysis stage
func (s *ChatSession) Analyzed() bool {
	return s.CaseAnalysis != nil
}
