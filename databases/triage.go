package databases

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/linesmerrill/safedesk-api/models"
	"github.com/linesmerrill/safedesk-api/triage"
)

// SessionStore adapts the chat session collection to triage.SessionStore
type SessionStore struct {
	db ChatSessionDatabase
}

// NewSessionStore returns a SessionStore backed by db
func NewSessionStore(db ChatSessionDatabase) *SessionStore {
	return &SessionStore{db: db}
}

// ActiveFor returns the user's active session, or nil
func (s *SessionStore) ActiveFor(ctx context.Context, userID primitive.ObjectID) (*models.ChatSession, error) {
	return optionalSession(s.db.FindOne(ctx, bson.M{"userId": userID, "isActive": true}))
}

// ByID returns the session with id when userID owns it, or nil
func (s *SessionStore) ByID(ctx context.Context, id, userID primitive.ObjectID) (*models.ChatSession, error) {
	return optionalSession(s.db.FindOne(ctx, bson.M{"_id": id, "userId": userID}))
}

// Insert stores a new session and sets its ID
func (s *SessionStore) Insert(ctx context.Context, session *models.ChatSession) error {
	res, err := s.db.InsertOne(ctx, session)
	if err != nil {
		return err
	}
	id, ok := res.Decode().(primitive.ObjectID)
	if !ok {
		return fmt.Errorf("unexpected inserted id %v", res.Decode())
	}
	session.ID = id
	return nil
}

// Replace overwrites the stored session with the same ID
func (s *SessionStore) Replace(ctx context.Context, session *models.ChatSession) error {
	res, err := s.db.ReplaceOne(ctx, bson.M{"_id": session.ID}, session)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("chat session %s no longer exists", session.ID.Hex())
	}
	return nil
}

// Recent returns up to limit of the user's sessions, newest first
func (s *SessionStore) Recent(ctx context.Context, userID primitive.ObjectID, limit int64) ([]models.ChatSession, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(limit)
	sessions, err := s.db.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	if sessions == nil {
		sessions = []models.ChatSession{}
	}
	return sessions, nil
}

func optionalSession(session *models.ChatSession, err error) (*models.ChatSession, error) {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}

// Directory adapts the lawyer collection to triage.Directory
type Directory struct {
	db LawyerDatabase
}

// NewDirectory returns a Directory backed by db
func NewDirectory(db LawyerDatabase) *Directory {
	return &Directory{db: db}
}

// FindProfessionals returns the active lawyers matching filter, highest rated first
func (d *Directory) FindProfessionals(ctx context.Context, filter triage.DirectoryFilter) ([]models.Lawyer, error) {
	query := bson.M{"isActive": true}
	if filter.Specialization != "" {
		query["specializations"] = filter.Specialization
	}
	switch {
	case filter.Availability != "":
		query["availability"] = filter.Availability
	case filter.ExcludeUnavailable:
		query["availability"] = bson.M{"$ne": models.AvailabilityUnavailable}
	}

	opts := options.Find().SetSort(bson.D{{Key: "rating", Value: -1}, {Key: "experience", Value: -1}})
	lawyers, err := d.db.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	if lawyers == nil {
		lawyers = []models.Lawyer{}
	}
	return lawyers, nil
}

// Professional returns the lawyer with id, or nil
func (d *Directory) Professional(ctx context.Context, id primitive.ObjectID) (*models.Lawyer, error) {
	lawyer, err := d.db.FindOne(ctx, bson.M{"_id": id})
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return lawyer, nil
}

var (
	_ triage.SessionStore = (*SessionStore)(nil)
	_ triage.Directory    = (*Directory)(nil)
)
