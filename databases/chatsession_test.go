package databases_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/linesmerrill/safedesk-api/config"
	"github.com/linesmerrill/safedesk-api/databases"
	"github.com/linesmerrill/safedesk-api/databases/mocks"
	"github.com/linesmerrill/safedesk-api/models"
)

func TestNewChatSessionDatabase(t *testing.T) {
	_ = os.Setenv("DB_URI", "mongodb://127.0.0.1:27017")
	_ = os.Setenv("DB_NAME", "test")
	conf := config.New()

	dbClient, err := databases.NewClient(conf)
	assert.NoError(t, err)

	db := databases.NewDatabase(conf, dbClient)

	sessionDB := databases.NewChatSessionDatabase(db)

	assert.NotEmpty(t, sessionDB)
}

func TestChatSessionDatabase_FindOne(t *testing.T) {
	id := primitive.NewObjectID()

	// define variables for interfaces
	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper
	var srHelperErr databases.SingleResultHelper
	var srHelperCorrect databases.SingleResultHelper

	// set interfaces implementation to mocked structures
	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}
	srHelperErr = &mocks.SingleResultHelper{}
	srHelperCorrect = &mocks.SingleResultHelper{}

	srHelperErr.(*mocks.SingleResultHelper).
		On("Decode", mock.Anything).
		Return(errors.New("mocked-error"))

	srHelperCorrect.(*mocks.SingleResultHelper).
		On("Decode", mock.Anything).
		Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.ChatSession)
		(*arg).ID = id
	})

	collectionHelper.(*mocks.CollectionHelper).
		On("FindOne", context.Background(), bson.M{"error": true}).
		Return(srHelperErr)

	collectionHelper.(*mocks.CollectionHelper).
		On("FindOne", context.Background(), bson.M{"error": false}).
		Return(srHelperCorrect)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "chat_sessions").Return(collectionHelper)

	sessionDB := databases.NewChatSessionDatabase(dbHelper)

	session, err := sessionDB.FindOne(context.Background(), bson.M{"error": true})

	assert.Empty(t, session)
	assert.EqualError(t, err, "mocked-error")

	session, err = sessionDB.FindOne(context.Background(), bson.M{"error": false})

	assert.Equal(t, &models.ChatSession{ID: id}, session)
	assert.NoError(t, err)
}

func TestChatSessionDatabase_Find(t *testing.T) {
	id := primitive.NewObjectID()

	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper
	var cursorHelper databases.CursorHelper

	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}
	cursorHelper = &mocks.CursorHelper{}

	cursorHelper.(*mocks.CursorHelper).
		On("All", context.Background(), mock.Anything).
		Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(1).(*[]models.ChatSession)
		*arg = []models.ChatSession{{ID: id}}
	})
	cursorHelper.(*mocks.CursorHelper).
		On("Close", context.Background()).
		Return(nil)

	collectionHelper.(*mocks.CollectionHelper).
		On("Find", context.Background(), bson.M{"error": true}).
		Return(nil, errors.New("mocked-error"))

	collectionHelper.(*mocks.CollectionHelper).
		On("Find", context.Background(), bson.M{"error": false}).
		Return(cursorHelper, nil)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "chat_sessions").Return(collectionHelper)

	sessionDB := databases.NewChatSessionDatabase(dbHelper)

	sessions, err := sessionDB.Find(context.Background(), bson.M{"error": true})

	assert.Empty(t, sessions)
	assert.EqualError(t, err, "mocked-error")

	sessions, err = sessionDB.Find(context.Background(), bson.M{"error": false})

	assert.Equal(t, []models.ChatSession{{ID: id}}, sessions)
	assert.NoError(t, err)
	cursorHelper.(*mocks.CursorHelper).AssertCalled(t, "Close", context.Background())
}

func TestChatSessionDatabase_ReplaceOne(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}
	session := &models.ChatSession{ID: primitive.NewObjectID()}

	collectionHelper.
		On("ReplaceOne", context.Background(), bson.M{"_id": session.ID}, session).
		Return(&mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil)

	dbHelper.On("Collection", "chat_sessions").Return(collectionHelper)

	res, err := databases.NewChatSessionDatabase(dbHelper).ReplaceOne(context.Background(), bson.M{"_id": session.ID}, session)

	assert.NoError(t, err)
	assert.Equal(t, int64(1), res.MatchedCount)
}
