package databases

// go generate: mockery --name ComplaintDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/linesmerrill/safedesk-api/models"
)

const complaintName = "complaints"

// ComplaintDatabase contains the methods to use with the complaint database
type ComplaintDatabase interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Complaint, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Complaint, error)
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
	CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error)
	Statistics(ctx context.Context) (*models.ComplaintStatistics, error)
}

type complaintDatabase struct {
	db DatabaseHelper
}

// NewComplaintDatabase initializes a new instance of complaint database with the provided db connection
func NewComplaintDatabase(db DatabaseHelper) ComplaintDatabase {
	return &complaintDatabase{
		db: db,
	}
}

func (c *complaintDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Complaint, error) {
	complaint := &models.Complaint{}
	err := c.db.Collection(complaintName).FindOne(ctx, filter, opts...).Decode(&complaint)
	if err != nil {
		return nil, err
	}
	return complaint, nil
}

func (c *complaintDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Complaint, error) {
	var complaints []models.Complaint
	curr, err := c.db.Collection(complaintName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer curr.Close(ctx)
	err = curr.All(ctx, &complaints)
	if err != nil {
		return nil, err
	}
	return complaints, nil
}

func (c *complaintDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	return c.db.Collection(complaintName).InsertOne(ctx, document, opts...)
}

func (c *complaintDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	return c.db.Collection(complaintName).UpdateOne(ctx, filter, update, opts...)
}

func (c *complaintDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	return c.db.Collection(complaintName).CountDocuments(ctx, filter, opts...)
}

// Statistics runs a single $facet aggregation over the whole collection
func (c *complaintDatabase) Statistics(ctx context.Context) (*models.ComplaintStatistics, error) {
	countOf := func(match bson.M) bson.A {
		return bson.A{bson.M{"$match": match}, bson.M{"$count": "total"}}
	}
	pipeline := mongo.Pipeline{
		{{Key: "$facet", Value: bson.M{
			"statusCounts":       bson.A{bson.M{"$group": bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
			"typeCounts":         bson.A{bson.M{"$group": bson.M{"_id": "$incidentType", "count": bson.M{"$sum": 1}}}},
			"priorityCounts":     bson.A{bson.M{"$group": bson.M{"_id": "$priority", "count": bson.M{"$sum": 1}}}},
			"totalComplaints":    bson.A{bson.M{"$count": "total"}},
			"pendingComplaints":  countOf(bson.M{"status": models.ComplaintStatusPending}),
			"resolvedComplaints": countOf(bson.M{"status": models.ComplaintStatusResolved}),
			"forumPosts":         countOf(bson.M{"approvedForForum": true}),
		}}},
	}

	curr, err := c.db.Collection(complaintName).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer curr.Close(ctx)

	var stats []models.ComplaintStatistics
	if err = curr.All(ctx, &stats); err != nil {
		return nil, err
	}
	if len(stats) == 0 {
		return &models.ComplaintStatistics{}, nil
	}
	return &stats[0], nil
}
