package databases

// go generate: mockery --name ChatSessionDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/linesmerrill/safedesk-api/models"
)

const chatSessionName = "chat_sessions"

// ChatSessionDatabase contains the methods to use with the chat session database
type ChatSessionDatabase interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.ChatSession, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.ChatSession, error)
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	ReplaceOne(ctx context.Context, filter interface{}, replacement interface{}, opts ...*options.ReplaceOptions) (*mongo.UpdateResult, error)
}

type chatSessionDatabase struct {
	db DatabaseHelper
}

// NewChatSessionDatabase initializes a new instance of chat session database with the provided db connection
func NewChatSessionDatabase(db DatabaseHelper) ChatSessionDatabase {
	return &chatSessionDatabase{
		db: db,
	}
}

func (c *chatSessionDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.ChatSession, error) {
	session := &models.ChatSession{}
	err := c.db.Collection(chatSessionName).FindOne(ctx, filter, opts...).Decode(&session)
	if err != nil {
		return nil, err
	}
	return session, nil
}

func (c *chatSessionDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.ChatSession, error) {
	var sessions []models.ChatSession
	curr, err := c.db.Collection(chatSessionName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer curr.Close(ctx)
	err = curr.All(ctx, &sessions)
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (c *chatSessionDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	return c.db.Collection(chatSessionName).InsertOne(ctx, document, opts...)
}

func (c *chatSessionDatabase) ReplaceOne(ctx context.Context, filter interface{}, replacement interface{}, opts ...*options.ReplaceOptions) (*mongo.UpdateResult, error) {
	return c.db.Collection(chatSessionName).ReplaceOne(ctx, filter, replacement, opts...)
}
