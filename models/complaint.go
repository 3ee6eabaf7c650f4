package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Complaint statuses
const (
	ComplaintStatusPending     = "pending"
	ComplaintStatusUnderReview = "under_review"
	ComplaintStatusVerified    = "verified"
	ComplaintStatusRejected    = "rejected"
	ComplaintStatusResolved    = "resolved"
)

// Complaint priorities
const (
	PriorityLow      = "low"
	PriorityMedium   = "medium"
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

// Verification statuses
const (
	VerificationPending  = "pending"
	VerificationVerified = "verified"
)

// Forum reaction kinds
const (
	ReactionSupport = "support"
	ReactionConcern = "concern"
	ReactionSimilar = "similar"
)

// WitnessVerificationThreshold is the witness count at which a complaint counts as verified
const WitnessVerificationThreshold = 5

// Complaint holds the structure for the complaints collection in mongo
type Complaint struct {
	ID          primitive.ObjectID  `json:"_id" bson:"_id,omitempty"`
	AnonymousID string              `json:"anonymousId" bson:"anonymousId"`
	UserID      *primitive.ObjectID `json:"userId,omitempty" bson:"userId"`
	IsAnonymous bool                `json:"isAnonymous" bson:"isAnonymous"`

	Title        string    `json:"title" bson:"title"`
	IncidentType string    `json:"incidentType" bson:"incidentType"`
	Category     string    `json:"category" bson:"category"`
	Description  string    `json:"description" bson:"description"`
	IncidentDate time.Time `json:"incidentDate" bson:"incidentDate"`
	Location     string    `json:"location" bson:"location"`

	EvidenceFiles  []string `json:"evidenceFiles" bson:"evidenceFiles"`
	EvidenceUrls   []string `json:"evidenceUrls" bson:"evidenceUrls"`
	WitnessFormURL *string  `json:"witnessFormUrl" bson:"witnessFormUrl"`
	WitnessCount   int      `json:"witnessCount" bson:"witnessCount"`

	Status             string `json:"status" bson:"status"`
	Priority           string `json:"priority" bson:"priority"`
	VerificationStatus string `json:"verificationStatus" bson:"verificationStatus"`

	AccusedPerson     *string  `json:"accusedPerson" bson:"accusedPerson"`
	AccusedDepartment *string  `json:"accusedDepartment" bson:"accusedDepartment"`
	WitnessNames      []string `json:"witnessNames" bson:"witnessNames"`

	RelevantLaws  []string      `json:"relevantLaws" bson:"relevantLaws"`
	LegalGuidance *string       `json:"legalGuidance" bson:"legalGuidance"`
	Triage        *CaseAnalysis `json:"triage,omitempty" bson:"triage,omitempty"`

	IsPublic         bool           `json:"isPublic" bson:"isPublic"`
	ApprovedForForum bool           `json:"approvedForForum" bson:"approvedForForum"`
	ForumReactions   ForumReactions `json:"forumReactions" bson:"forumReactions"`
	ForumComments    []ForumComment `json:"forumComments" bson:"forumComments"`

	CreatedAt      time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt" bson:"updatedAt"`
	LastReviewedAt *time.Time `json:"lastReviewedAt" bson:"lastReviewedAt"`
	ResolvedAt     *time.Time `json:"resolvedAt" bson:"resolvedAt"`

	AdminNotes []AdminNote         `json:"adminNotes,omitempty" bson:"adminNotes"`
	AssignedTo *primitive.ObjectID `json:"assignedTo,omitempty" bson:"assignedTo"`

	ViewCount   int `json:"viewCount" bson:"viewCount"`
	ReportCount int `json:"reportCount" bson:"reportCount"`

	ContactMethod    *string `json:"contactMethod,omitempty" bson:"contactMethod"`
	EncryptedContact *string `json:"encryptedContact,omitempty" bson:"encryptedContact"`
}

// ForumReactions counts the reactions left on a forum post
type ForumReactions struct {
	Support int `json:"support" bson:"support"`
	Concern int `json:"concern" bson:"concern"`
	Similar int `json:"similar" bson:"similar"`
}

// ForumComment is a comment left on an approved forum post
type ForumComment struct {
	CommentID   primitive.ObjectID `json:"commentId" bson:"commentId"`
	Comment     string             `json:"comment" bson:"comment"`
	CommentorID *string            `json:"commentorId" bson:"commentorId"`
	IsAnonymous bool               `json:"isAnonymous" bson:"isAnonymous"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	Likes       int                `json:"likes" bson:"likes"`
}

// AdminNote is an internal note attached to a complaint by an administrator
type AdminNote struct {
	Note    string    `json:"note" bson:"note"`
	AddedAt time.Time `json:"addedAt" bson:"addedAt"`
	AddedBy string    `json:"addedBy" bson:"addedBy"`
}

// ComplaintFilter narrows an administrator complaint listing
type ComplaintFilter struct {
	Status           string
	IncidentType     string
	Priority         string
	IsPublic         *bool
	ApprovedForForum *bool
	StartDate        *time.Time
	EndDate          *time.Time
}

// Query builds the mongo filter. Unset fields do not constrain the result.
func (f ComplaintFilter) Query() bson.M {
	query := bson.M{}
	if f.Status != "" {
		query["status"] = f.Status
	}
	if f.IncidentType != "" {
		query["incidentType"] = f.IncidentType
	}
	if f.Priority != "" {
		query["priority"] = f.Priority
	}
	if f.IsPublic != nil {
		query["isPublic"] = *f.IsPublic
	}
	if f.ApprovedForForum != nil {
		query["approvedForForum"] = *f.ApprovedForForum
	}
	if f.StartDate != nil || f.EndDate != nil {
		created := bson.M{}
		if f.StartDate != nil {
			created["$gte"] = *f.StartDate
		}
		if f.EndDate != nil {
			created["$lte"] = *f.EndDate
		}
		query["createdAt"] = created
	}
	return query
}

// ComplaintStatistics is the aggregate view returned to administrators
type ComplaintStatistics struct {
	StatusCounts       []BucketCount `json:"statusCounts" bson:"statusCounts"`
	TypeCounts         []BucketCount `json:"typeCounts" bson:"typeCounts"`
	PriorityCounts     []BucketCount `json:"priorityCounts" bson:"priorityCounts"`
	TotalComplaints    []Total       `json:"totalComplaints" bson:"totalComplaints"`
	PendingComplaints  []Total       `json:"pendingComplaints" bson:"pendingComplaints"`
	ResolvedComplaints []Total       `json:"resolvedComplaints" bson:"resolvedComplaints"`
	ForumPosts         []Total       `json:"forumPosts" bson:"forumPosts"`
}

// BucketCount is a single $group bucket
type BucketCount struct {
	ID    string `json:"_id" bson:"_id"`
	Count int    `json:"count" bson:"count"`
}

// Total is a single $count result
type Total struct {
	Total int `json:"total" bson:"total"`
}

// Pagination describes a page of a listing
type Pagination struct {
	Total      int64 `json:"total"`
	Page       int64 `json:"page"`
	Limit      int64 `json:"limit"`
	TotalPages int64 `json:"totalPages"`
}
