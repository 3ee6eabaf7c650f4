package databases

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DefaultPageLimit is used when a listing does not ask for a page size
const DefaultPageLimit = 10

type mongoPaginate struct {
	limit int64
	page  int64
}

func newMongoPaginate(limit, page int64) *mongoPaginate {
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if page <= 0 {
		page = 1
	}
	return &mongoPaginate{
		limit: limit,
		page:  page,
	}
}

func (mp *mongoPaginate) getPaginatedOpts() *options.FindOptions {
	l := mp.limit
	skip := mp.page*mp.limit - mp.limit
	fOpt := options.FindOptions{Limit: &l, Skip: &skip}

	return &fOpt
}

// PaginatedFindOptions returns find options for the given one-based page, sorted by sortBy in
// sortOrder direction (-1 or 1)
func PaginatedFindOptions(limit, page int64, sortBy string, sortOrder int) *options.FindOptions {
	if sortBy == "" {
		sortBy = "createdAt"
	}
	if sortOrder != 1 {
		sortOrder = -1
	}
	return newMongoPaginate(limit, page).getPaginatedOpts().SetSort(bson.D{{Key: sortBy, Value: sortOrder}})
}
