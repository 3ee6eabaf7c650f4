package databases

// go generate: mockery --name LawyerDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/linesmerrill/safedesk-api/models"
)

const lawyerName = "lawyers"

// LawyerDatabase contains the methods to use with the lawyer database
type LawyerDatabase interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Lawyer, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Lawyer, error)
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error)
}

type lawyerDatabase struct {
	db DatabaseHelper
}

// NewLawyerDatabase initializes a new instance of lawyer database with the provided db connection
func NewLawyerDatabase(db DatabaseHelper) LawyerDatabase {
	return &lawyerDatabase{
		db: db,
	}
}

func (l *lawyerDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Lawyer, error) {
	lawyer := &models.Lawyer{}
	err := l.db.Collection(lawyerName).FindOne(ctx, filter, opts...).Decode(&lawyer)
	if err != nil {
		return nil, err
	}
	return lawyer, nil
}

func (l *lawyerDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Lawyer, error) {
	var lawyers []models.Lawyer
	curr, err := l.db.Collection(lawyerName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer curr.Close(ctx)
	err = curr.All(ctx, &lawyers)
	if err != nil {
		return nil, err
	}
	return lawyers, nil
}

func (l *lawyerDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	return l.db.Collection(lawyerName).InsertOne(ctx, document, opts...)
}

func (l *lawyerDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	return l.db.Collection(lawyerName).CountDocuments(ctx, filter, opts...)
}
