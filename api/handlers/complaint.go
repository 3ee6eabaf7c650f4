package handlers

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/linesmerrill/safedesk-api/api"
	"github.com/linesmerrill/safedesk-api/config"
	"github.com/linesmerrill/safedesk-api/databases"
	"github.com/linesmerrill/safedesk-api/models"
	"github.com/linesmerrill/safedesk-api/triage"
)

const (
	anonymousIDAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	anonymousIDLength   = 8
	anonymousIDAttempts = 5
)

var complaintSortFields = map[string]bool{
	"createdAt": true,
	"updatedAt": true,
	"priority":  true,
	"status":    true,
	"viewCount": true,
}

var validStatuses = map[string]bool{
	models.ComplaintStatusPending:     true,
	models.ComplaintStatusUnderReview: true,
	models.ComplaintStatusVerified:    true,
	models.ComplaintStatusRejected:    true,
	models.ComplaintStatusResolved:    true,
}

var validPriorities = map[string]bool{
	models.PriorityLow:      true,
	models.PriorityMedium:   true,
	models.PriorityHigh:     true,
	models.PriorityCritical: true,
}

var validReactions = map[string]bool{
	models.ReactionSupport: true,
	models.ReactionConcern: true,
	models.ReactionSimilar: true,
}

// ComplaintObserver is told about stored complaints
type ComplaintObserver interface {
	ComplaintFiled(caseType models.CaseType, priority string)
}

// Complaint exported for testing purposes
type Complaint struct {
	DB       databases.ComplaintDatabase
	Observer ComplaintObserver
}

// CreateComplaintRequest is the body of a new complaint
type CreateComplaintRequest struct {
	UserID            string   `json:"userId"`
	IsAnonymous       *bool    `json:"isAnonymous"`
	Title             string   `json:"title"`
	IncidentType      string   `json:"incidentType"`
	Category          string   `json:"category"`
	Description       string   `json:"description"`
	IncidentDate      string   `json:"incidentDate"`
	Location          string   `json:"location"`
	EvidenceFiles     []string `json:"evidenceFiles"`
	EvidenceUrls      []string `json:"evidenceUrls"`
	WitnessFormURL    *string  `json:"witnessFormUrl"`
	WitnessCount      int      `json:"witnessCount"`
	Priority          string   `json:"priority"`
	AccusedPerson     *string  `json:"accusedPerson"`
	AccusedDepartment *string  `json:"accusedDepartment"`
	WitnessNames      []string `json:"witnessNames"`
	RelevantLaws      []string `json:"relevantLaws"`
	LegalGuidance     *string  `json:"legalGuidance"`
	IsPublic          bool     `json:"isPublic"`
	ContactMethod     *string  `json:"contactMethod"`
	EncryptedContact  *string  `json:"encryptedContact"`
}

// ComplaintCreatedResponse is returned after a complaint is stored
type ComplaintCreatedResponse struct {
	AnonymousID  string               `json:"anonymousId"`
	ComplaintID  interface{}          `json:"complaintId"`
	Priority     string               `json:"priority"`
	Triage       *models.CaseAnalysis `json:"triage"`
	Instructions string               `json:"instructions"`
}

// VerifyResponse confirms an anonymous id exists
type VerifyResponse struct {
	Valid        bool      `json:"valid"`
	AnonymousID  string    `json:"anonymousId"`
	Status       string    `json:"status"`
	IncidentType string    `json:"incidentType"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ComplaintListResponse is a page of complaints
type ComplaintListResponse struct {
	Complaints []models.Complaint `json:"complaints"`
	Pagination models.Pagination  `json:"pagination"`
}

// MessageResponse is a plain acknowledgement
type MessageResponse struct {
	Message string `json:"message"`
}

// WitnessResponse reports whether the witness count verified the complaint
type WitnessResponse struct {
	Message  string `json:"message"`
	Verified bool   `json:"verified"`
}

// CreateComplaintHandler stores a new anonymous complaint
func (c Complaint) CreateComplaintHandler(w http.ResponseWriter, r *http.Request) {
	var body CreateComplaintRequest
	if err := decodeBody(r, &body); err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}
	if strings.TrimSpace(body.Title) == "" || strings.TrimSpace(body.Description) == "" || strings.TrimSpace(body.IncidentType) == "" {
		config.ErrorStatus("title, description, and incident type are required", http.StatusBadRequest, w, errors.New("missing required field"))
		return
	}
	if body.IncidentDate == "" {
		config.ErrorStatus("incident date is required", http.StatusBadRequest, w, errors.New("missing incidentDate"))
		return
	}
	incidentDate, err := parseDate(body.IncidentDate)
	if err != nil {
		config.ErrorStatus("invalid incident date", http.StatusBadRequest, w, err)
		return
	}
	if body.Priority != "" && !validPriorities[body.Priority] {
		config.ErrorStatus("invalid priority", http.StatusBadRequest, w, fmt.Errorf("unknown priority %q", body.Priority))
		return
	}

	var userID *primitive.ObjectID
	if body.UserID != "" {
		id, err := primitive.ObjectIDFromHex(body.UserID)
		if err != nil {
			config.ErrorStatus("invalid user id", http.StatusBadRequest, w, err)
			return
		}
		userID = &id
	}

	analysis := triage.Analyze(body.Description)
	caseAnalysis := analysis.CaseAnalysis(body.Description)
	caseAnalysis.RecommendedAction = triage.Generate(analysis, "").Recommendation.Message

	priority := body.Priority
	if priority == "" {
		priority = priorityFor(analysis.Severity)
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	anonymousID, err := c.uniqueAnonymousID(r)
	if err != nil {
		config.ErrorStatus("failed to generate anonymous id", http.StatusInternalServerError, w, err)
		return
	}

	now := time.Now().UTC()
	complaint := models.Complaint{
		AnonymousID:        anonymousID,
		UserID:             userID,
		IsAnonymous:        body.IsAnonymous == nil || *body.IsAnonymous,
		Title:              body.Title,
		IncidentType:       body.IncidentType,
		Category:           body.Category,
		Description:        body.Description,
		IncidentDate:       incidentDate,
		Location:           body.Location,
		EvidenceFiles:      nonNil(body.EvidenceFiles),
		EvidenceUrls:       nonNil(body.EvidenceUrls),
		WitnessFormURL:     body.WitnessFormURL,
		WitnessCount:       body.WitnessCount,
		Status:             models.ComplaintStatusPending,
		Priority:           priority,
		VerificationStatus: models.VerificationPending,
		AccusedPerson:      body.AccusedPerson,
		AccusedDepartment:  body.AccusedDepartment,
		WitnessNames:       nonNil(body.WitnessNames),
		RelevantLaws:       nonNil(body.RelevantLaws),
		LegalGuidance:      body.LegalGuidance,
		Triage:             caseAnalysis,
		IsPublic:           body.IsPublic,
		ForumComments:      []models.ForumComment{},
		AdminNotes:         []models.AdminNote{},
		CreatedAt:          now,
		UpdatedAt:          now,
		ContactMethod:      body.ContactMethod,
		EncryptedContact:   body.EncryptedContact,
	}

	res, err := c.DB.InsertOne(ctx, complaint)
	if err != nil {
		config.ErrorStatus("failed to submit complaint", http.StatusInternalServerError, w, err)
		return
	}
	if c.Observer != nil {
		c.Observer.ComplaintFiled(caseAnalysis.CaseType, complaint.Priority)
	}

	zap.S().Infow("complaint submitted",
		"anonymousId", anonymousID,
		"incidentType", complaint.IncidentType,
		"caseType", caseAnalysis.CaseType,
		"priority", priority,
	)
	writeJSON(w, http.StatusCreated, ComplaintCreatedResponse{
		AnonymousID:  anonymousID,
		ComplaintID:  res.Decode(),
		Priority:     priority,
		Triage:       caseAnalysis,
		Instructions: "Save your Anonymous ID to track your complaint status",
	})
}

// uniqueAnonymousID draws anonymous ids until one is unused
func (c Complaint) uniqueAnonymousID(r *http.Request) (string, error) {
	for i := 0; i < anonymousIDAttempts; i++ {
		id, err := generateAnonymousID(time.Now().UTC().Year())
		if err != nil {
			return "", err
		}

		ctx, cancel := api.WithQueryTimeout(r.Context())
		_, err = c.DB.FindOne(ctx, bson.M{"anonymousId": id})
		cancel()
		if errors.Is(err, mongo.ErrNoDocuments) {
			return id, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", fmt.Errorf("no unused anonymous id after %d attempts", anonymousIDAttempts)
}

// generateAnonymousID returns ANON-<year>-<8 characters>. The alphabet has 32 symbols so a
// random byte maps onto it without bias.
func generateAnonymousID(year int) (string, error) {
	buf := make([]byte, anonymousIDLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = anonymousIDAlphabet[int(b)%len(anonymousIDAlphabet)]
	}
	return fmt.Sprintf("ANON-%d-%s", year, buf), nil
}

// priorityFor maps a classifier severity onto a complaint priority
func priorityFor(severity models.Severity) string {
	switch severity {
	case models.SeverityHigh:
		return models.PriorityHigh
	case models.SeverityLow:
		return models.PriorityLow
	default:
		return models.PriorityMedium
	}
}

// VerifyComplaintHandler checks that an anonymous id exists
func (c Complaint) VerifyComplaintHandler(w http.ResponseWriter, r *http.Request) {
	var body struct {
		AnonymousID string `json:"anonymousId"`
	}
	if err := decodeBody(r, &body); err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}
	if body.AnonymousID == "" {
		config.ErrorStatus("anonymous id is required", http.StatusBadRequest, w, errors.New("missing anonymousId"))
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	complaint, ok := c.findComplaint(ctx, w, body.AnonymousID, "invalid anonymous id")
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, VerifyResponse{
		Valid:        true,
		AnonymousID:  complaint.AnonymousID,
		Status:       complaint.Status,
		IncidentType: complaint.IncidentType,
		CreatedAt:    complaint.CreatedAt,
	})
}

// ComplaintByAnonymousIDHandler returns a complaint without its internal or identifying fields
func (c Complaint) ComplaintByAnonymousIDHandler(w http.ResponseWriter, r *http.Request) {
	anonymousID := mux.Vars(r)["anonymous_id"]

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	complaint, ok := c.findComplaint(ctx, w, anonymousID, "complaint not found")
	if !ok {
		return
	}

	if _, err := c.DB.UpdateOne(ctx, bson.M{"anonymousId": anonymousID}, bson.M{"$inc": bson.M{"viewCount": 1}}); err != nil {
		zap.S().Warnw("failed to increment view count", "anonymousId", anonymousID, "error", err)
	}

	redact(complaint)
	writeJSON(w, http.StatusOK, complaint)
}

// redact removes the admin fields, and the reporter's identity when the complaint is anonymous
func redact(complaint *models.Complaint) {
	complaint.AdminNotes = nil
	complaint.AssignedTo = nil
	if complaint.IsAnonymous {
		complaint.UserID = nil
		complaint.ContactMethod = nil
		complaint.EncryptedContact = nil
	}
}

// ForumPostsHandler lists complaints approved for the public forum
func (c Complaint) ForumPostsHandler(w http.ResponseWriter, r *http.Request) {
	page, limit, sortBy, sortOrder := pageParams(r, complaintSortFields)
	filter := bson.M{"approvedForForum": true, "isPublic": true}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	opts := databases.PaginatedFindOptions(limit, page, sortBy, sortOrder).
		SetProjection(bson.M{"userId": 0, "contactMethod": 0, "encryptedContact": 0, "adminNotes": 0})
	c.writePage(ctx, w, filter, opts, page, limit, "failed to get forum posts")
}

// ComplaintsHandler lists complaints for administrators
func (c Complaint) ComplaintsHandler(w http.ResponseWriter, r *http.Request) {
	filter, err := complaintFilter(r)
	if err != nil {
		config.ErrorStatus("invalid filter", http.StatusBadRequest, w, err)
		return
	}
	page, limit, sortBy, sortOrder := pageParams(r, complaintSortFields)

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	c.writePage(ctx, w, filter.Query(), databases.PaginatedFindOptions(limit, page, sortBy, sortOrder), page, limit, "failed to get complaints")
}

// StatisticsHandler returns aggregate complaint counts
func (c Complaint) StatisticsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	stats, err := c.DB.Statistics(ctx)
	if err != nil {
		config.ErrorStatus("failed to get statistics", http.StatusInternalServerError, w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// UpdateStatusHandler changes a complaint's status and optionally records an admin note
func (c Complaint) UpdateStatusHandler(w http.ResponseWriter, r *http.Request) {
	anonymousID := mux.Vars(r)["anonymous_id"]
	var body struct {
		Status     string `json:"status"`
		AdminNotes string `json:"adminNotes"`
	}
	if err := decodeBody(r, &body); err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}
	if !validStatuses[body.Status] {
		config.ErrorStatus("invalid status value", http.StatusBadRequest, w, fmt.Errorf("unknown status %q", body.Status))
		return
	}

	now := time.Now().UTC()
	set := bson.M{"status": body.Status, "updatedAt": now, "lastReviewedAt": now}
	if body.Status == models.ComplaintStatusResolved {
		set["resolvedAt"] = now
	}
	update := bson.M{"$set": set}
	if strings.TrimSpace(body.AdminNotes) != "" {
		addedBy := "admin"
		if user, ok := api.UserFromContext(r.Context()); ok {
			addedBy = user.Details.Email
		}
		update["$push"] = bson.M{"adminNotes": models.AdminNote{Note: body.AdminNotes, AddedAt: now, AddedBy: addedBy}}
	}

	c.updateComplaint(w, r, bson.M{"anonymousId": anonymousID}, update, "complaint not found", http.StatusOK,
		MessageResponse{Message: "complaint status updated successfully"})
}

// ApproveForumHandler publishes or withdraws a complaint on the public forum
func (c Complaint) ApproveForumHandler(w http.ResponseWriter, r *http.Request) {
	anonymousID := mux.Vars(r)["anonymous_id"]
	var body struct {
		Approved *bool `json:"approved"`
	}
	if err := decodeBody(r, &body); err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}
	approved := body.Approved == nil || *body.Approved

	message := "complaint removed from public forum"
	if approved {
		message = "complaint approved for public forum"
	}
	update := bson.M{"$set": bson.M{"approvedForForum": approved, "isPublic": approved, "updatedAt": time.Now().UTC()}}
	c.updateComplaint(w, r, bson.M{"anonymousId": anonymousID}, update, "complaint not found", http.StatusOK,
		MessageResponse{Message: message})
}

// AddEvidenceHandler appends evidence files and links to a complaint
func (c Complaint) AddEvidenceHandler(w http.ResponseWriter, r *http.Request) {
	anonymousID := mux.Vars(r)["anonymous_id"]
	var body struct {
		Files []string `json:"files"`
		URLs  []string `json:"urls"`
	}
	if err := decodeBody(r, &body); err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}
	if len(body.Files) == 0 && len(body.URLs) == 0 {
		config.ErrorStatus("at least one evidence file or url is required", http.StatusBadRequest, w, errors.New("no evidence supplied"))
		return
	}

	update := bson.M{
		"$push": bson.M{
			"evidenceFiles": bson.M{"$each": nonNil(body.Files)},
			"evidenceUrls":  bson.M{"$each": nonNil(body.URLs)},
		},
		"$set": bson.M{"updatedAt": time.Now().UTC()},
	}
	c.updateComplaint(w, r, bson.M{"anonymousId": anonymousID}, update, "complaint not found", http.StatusOK,
		MessageResponse{Message: "evidence added successfully"})
}

// WitnessHandler records the witness form and count. Enough witnesses verify the complaint.
func (c Complaint) WitnessHandler(w http.ResponseWriter, r *http.Request) {
	anonymousID := mux.Vars(r)["anonymous_id"]
	var body struct {
		WitnessFormURL string `json:"witnessFormUrl"`
		WitnessCount   *int   `json:"witnessCount"`
	}
	if err := decodeBody(r, &body); err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}
	if body.WitnessFormURL == "" || body.WitnessCount == nil {
		config.ErrorStatus("witness form url and count are required", http.StatusBadRequest, w, errors.New("missing witness fields"))
		return
	}
	if *body.WitnessCount < 0 {
		config.ErrorStatus("witness count cannot be negative", http.StatusBadRequest, w, fmt.Errorf("witnessCount %d", *body.WitnessCount))
		return
	}

	verified := *body.WitnessCount >= models.WitnessVerificationThreshold
	verification := models.VerificationPending
	message := fmt.Sprintf("witness information updated. Need at least %d witnesses for verification", models.WitnessVerificationThreshold)
	if verified {
		verification = models.VerificationVerified
		message = "complaint verified with sufficient witnesses"
	}

	update := bson.M{"$set": bson.M{
		"witnessFormUrl":     body.WitnessFormURL,
		"witnessCount":       *body.WitnessCount,
		"verificationStatus": verification,
		"updatedAt":          time.Now().UTC(),
	}}
	c.updateComplaint(w, r, bson.M{"anonymousId": anonymousID}, update, "complaint not found", http.StatusOK,
		WitnessResponse{Message: message, Verified: verified})
}

// ReactionHandler counts a reaction on an approved forum post
func (c Complaint) ReactionHandler(w http.ResponseWriter, r *http.Request) {
	anonymousID := mux.Vars(r)["anonymous_id"]
	var body struct {
		ReactionType string `json:"reactionType"`
	}
	if err := decodeBody(r, &body); err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}
	if !validReactions[body.ReactionType] {
		config.ErrorStatus("invalid reaction type. Must be: support, concern, or similar", http.StatusBadRequest, w,
			fmt.Errorf("unknown reaction %q", body.ReactionType))
		return
	}

	update := bson.M{
		"$inc": bson.M{"forumReactions." + body.ReactionType: 1},
		"$set": bson.M{"updatedAt": time.Now().UTC()},
	}
	c.updateComplaint(w, r, bson.M{"anonymousId": anonymousID, "approvedForForum": true}, update,
		"forum post not found or not approved for public viewing", http.StatusOK,
		MessageResponse{Message: "reaction added successfully"})
}

// CommentHandler adds a comment to an approved forum post
func (c Complaint) CommentHandler(w http.ResponseWriter, r *http.Request) {
	anonymousID := mux.Vars(r)["anonymous_id"]
	var body struct {
		Comment     string  `json:"comment"`
		CommentorID *string `json:"commentorId"`
	}
	if err := decodeBody(r, &body); err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}
	if strings.TrimSpace(body.Comment) == "" {
		config.ErrorStatus("comment text is required", http.StatusBadRequest, w, errors.New("empty comment"))
		return
	}
	if body.CommentorID != nil && *body.CommentorID == "" {
		body.CommentorID = nil
	}

	comment := models.ForumComment{
		CommentID:   primitive.NewObjectID(),
		Comment:     body.Comment,
		CommentorID: body.CommentorID,
		IsAnonymous: body.CommentorID == nil,
		CreatedAt:   time.Now().UTC(),
	}
	update := bson.M{
		"$push": bson.M{"forumComments": comment},
		"$set":  bson.M{"updatedAt": comment.CreatedAt},
	}
	c.updateComplaint(w, r, bson.M{"anonymousId": anonymousID, "approvedForForum": true}, update,
		"forum post not found or not approved for public viewing", http.StatusCreated,
		MessageResponse{Message: "comment added successfully"})
}

// updateComplaint applies update to the complaint matching filter and writes resp on success
func (c Complaint) updateComplaint(w http.ResponseWriter, r *http.Request, filter, update bson.M, notFound string, status int, resp interface{}) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	res, err := c.DB.UpdateOne(ctx, filter, update)
	if err != nil {
		config.ErrorStatus("failed to update complaint", http.StatusInternalServerError, w, err)
		return
	}
	if res.MatchedCount == 0 {
		config.ErrorStatus(notFound, http.StatusNotFound, w, mongo.ErrNoDocuments)
		return
	}
	writeJSON(w, status, resp)
}

func (c Complaint) findComplaint(ctx context.Context, w http.ResponseWriter, anonymousID, notFound string) (*models.Complaint, bool) {
	complaint, err := c.DB.FindOne(ctx, bson.M{"anonymousId": anonymousID})
	if errors.Is(err, mongo.ErrNoDocuments) {
		config.ErrorStatus(notFound, http.StatusNotFound, w, err)
		return nil, false
	}
	if err != nil {
		config.ErrorStatus("failed to get complaint", http.StatusInternalServerError, w, err)
		return nil, false
	}
	return complaint, true
}

func (c Complaint) writePage(ctx context.Context, w http.ResponseWriter, filter bson.M, opts *options.FindOptions, page, limit int64, failure string) {
	complaints, err := c.DB.Find(ctx, filter, opts)
	if err != nil {
		config.ErrorStatus(failure, http.StatusInternalServerError, w, err)
		return
	}
	total, err := c.DB.CountDocuments(ctx, filter)
	if err != nil {
		config.ErrorStatus(failure, http.StatusInternalServerError, w, err)
		return
	}
	if complaints == nil {
		complaints = []models.Complaint{}
	}

	writeJSON(w, http.StatusOK, ComplaintListResponse{
		Complaints: complaints,
		Pagination: models.Pagination{
			Total:      total,
			Page:       page,
			Limit:      limit,
			TotalPages: (total + limit - 1) / limit,
		},
	})
}

// complaintFilter reads the administrator listing filter from the query string
func complaintFilter(r *http.Request) (models.ComplaintFilter, error) {
	q := r.URL.Query()
	filter := models.ComplaintFilter{
		Status:       q.Get("status"),
		IncidentType: q.Get("incidentType"),
		Priority:     q.Get("priority"),
	}

	var err error
	if filter.IsPublic, err = parseOptionalBool(q.Get("isPublic")); err != nil {
		return filter, fmt.Errorf("isPublic: %w", err)
	}
	if filter.ApprovedForForum, err = parseOptionalBool(q.Get("approvedForForum")); err != nil {
		return filter, fmt.Errorf("approvedForForum: %w", err)
	}
	if v := q.Get("startDate"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return filter, fmt.Errorf("startDate: %w", err)
		}
		filter.StartDate = &t
	}
	if v := q.Get("endDate"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return filter, fmt.Errorf("endDate: %w", err)
		}
		filter.EndDate = &t
	}
	return filter, nil
}

func parseOptionalBool(v string) (*bool, error) {
	switch v {
	case "":
		return nil, nil
	case "true":
		b := true
		return &b, nil
	case "false":
		b := false
		return &b, nil
	}
	return nil, fmt.Errorf("expected true or false, got %q", v)
}

// parseDate accepts RFC 3339 timestamps and plain dates
func parseDate(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t.UTC(), nil
	}
	return time.Parse("2006-01-02", v)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
