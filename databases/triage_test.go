package databases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/linesmerrill/safedesk-api/databases"
	"github.com/linesmerrill/safedesk-api/databases/mocks"
	"github.com/linesmerrill/safedesk-api/models"
	"github.com/linesmerrill/safedesk-api/triage"
)

func TestSessionStore_ActiveFor(t *testing.T) {
	userID := primitive.NewObjectID()
	sessionDB := &mocks.ChatSessionDatabase{}
	sessionDB.On("FindOne", context.Background(), bson.M{"userId": userID, "isActive": true}).
		Return(nil, mongo.ErrNoDocuments).Once()
	sessionDB.On("FindOne", context.Background(), bson.M{"userId": userID, "isActive": true}).
		Return(&models.ChatSession{UserID: userID, IsActive: true}, nil).Once()

	store := databases.NewSessionStore(sessionDB)

	session, err := store.ActiveFor(context.Background(), userID)
	assert.NoError(t, err)
	assert.Nil(t, session)

	session, err = store.ActiveFor(context.Background(), userID)
	assert.NoError(t, err)
	assert.True(t, session.IsActive)
}

func TestSessionStore_ByIDError(t *testing.T) {
	id, userID := primitive.NewObjectID(), primitive.NewObjectID()
	sessionDB := &mocks.ChatSessionDatabase{}
	sessionDB.On("FindOne", context.Background(), bson.M{"_id": id, "userId": userID}).
		Return(nil, errors.New("mocked-error"))

	session, err := databases.NewSessionStore(sessionDB).ByID(context.Background(), id, userID)

	assert.Nil(t, session)
	assert.EqualError(t, err, "mocked-error")
}

func TestSessionStore_Insert(t *testing.T) {
	id := primitive.NewObjectID()
	session := &models.ChatSession{UserID: primitive.NewObjectID()}
	insertResult := &mocks.InsertOneResultHelper{}
	insertResult.On("Decode").Return(id)
	sessionDB := &mocks.ChatSessionDatabase{}
	sessionDB.On("InsertOne", context.Background(), session).Return(insertResult, nil)

	err := databases.NewSessionStore(sessionDB).Insert(context.Background(), session)

	assert.NoError(t, err)
	assert.Equal(t, id, session.ID)
}

func TestSessionStore_Replace(t *testing.T) {
	session := &models.ChatSession{ID: primitive.NewObjectID()}
	sessionDB := &mocks.ChatSessionDatabase{}
	sessionDB.On("ReplaceOne", context.Background(), bson.M{"_id": session.ID}, session).
		Return(&mongo.UpdateResult{MatchedCount: 0}, nil).Once()
	sessionDB.On("ReplaceOne", context.Background(), bson.M{"_id": session.ID}, session).
		Return(&mongo.UpdateResult{MatchedCount: 1}, nil).Once()

	store := databases.NewSessionStore(sessionDB)

	assert.EqualError(t, store.Replace(context.Background(), session), "chat session "+session.ID.Hex()+" no longer exists")
	assert.NoError(t, store.Replace(context.Background(), session))
}

func TestSessionStore_Recent(t *testing.T) {
	userID := primitive.NewObjectID()
	sessionDB := &mocks.ChatSessionDatabase{}
	sessionDB.On("Find", context.Background(), bson.M{"userId": userID}, mock.Anything).
		Return(nil, nil).
		Run(func(args mock.Arguments) {
			opts := args.Get(2).(*options.FindOptions)
			assert.Equal(t, int64(10), *opts.Limit)
			assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}}, opts.Sort)
		})

	sessions, err := databases.NewSessionStore(sessionDB).Recent(context.Background(), userID, 10)

	assert.NoError(t, err)
	assert.NotNil(t, sessions)
	assert.Empty(t, sessions)
}

func TestDirectory_FindProfessionals(t *testing.T) {
	tests := []struct {
		name   string
		filter triage.DirectoryFilter
		query  bson.M
	}{
		{
			name:   "matcher filter",
			filter: triage.DirectoryFilter{Specialization: "labor-law", ExcludeUnavailable: true},
			query: bson.M{
				"isActive":        true,
				"specializations": "labor-law",
				"availability":    bson.M{"$ne": models.AvailabilityUnavailable},
			},
		},
		{
			name:   "exact availability",
			filter: triage.DirectoryFilter{Availability: models.AvailabilityBusy, ExcludeUnavailable: true},
			query:  bson.M{"isActive": true, "availability": models.AvailabilityBusy},
		},
		{
			name:  "everyone active",
			query: bson.M{"isActive": true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lawyerDB := &mocks.LawyerDatabase{}
			lawyerDB.On("Find", context.Background(), tt.query, mock.Anything).
				Return([]models.Lawyer{{Name: "Jane Doe"}}, nil)

			lawyers, err := databases.NewDirectory(lawyerDB).FindProfessionals(context.Background(), tt.filter)

			assert.NoError(t, err)
			assert.Equal(t, []models.Lawyer{{Name: "Jane Doe"}}, lawyers)
			lawyerDB.AssertExpectations(t)
		})
	}
}

func TestDirectory_Professional(t *testing.T) {
	missing, found := primitive.NewObjectID(), primitive.NewObjectID()
	lawyerDB := &mocks.LawyerDatabase{}
	lawyerDB.On("FindOne", context.Background(), bson.M{"_id": missing}).Return(nil, mongo.ErrNoDocuments)
	lawyerDB.On("FindOne", context.Background(), bson.M{"_id": found}).Return(&models.Lawyer{ID: found}, nil)

	directory := databases.NewDirectory(lawyerDB)

	lawyer, err := directory.Professional(context.Background(), missing)
	assert.NoError(t, err)
	assert.Nil(t, lawyer)

	lawyer, err = directory.Professional(context.Background(), found)
	assert.NoError(t, err)
	assert.Equal(t, found, lawyer.ID)
}
