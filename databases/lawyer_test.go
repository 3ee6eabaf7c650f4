package databases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/linesmerrill/safedesk-api/databases"
	"github.com/linesmerrill/safedesk-api/databases/mocks"
	"github.com/linesmerrill/safedesk-api/models"
)

func TestLawyerDatabase_FindOne(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}
	srHelperErr := &mocks.SingleResultHelper{}
	srHelperCorrect := &mocks.SingleResultHelper{}

	srHelperErr.On("Decode", mock.Anything).Return(errors.New("mocked-error"))
	srHelperCorrect.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.Lawyer)
		(*arg).Name = "Jane Doe"
	})

	collectionHelper.On("FindOne", context.Background(), bson.M{"error": true}).Return(srHelperErr)
	collectionHelper.On("FindOne", context.Background(), bson.M{"error": false}).Return(srHelperCorrect)
	dbHelper.On("Collection", "lawyers").Return(collectionHelper)

	lawyerDB := databases.NewLawyerDatabase(dbHelper)

	lawyer, err := lawyerDB.FindOne(context.Background(), bson.M{"error": true})
	assert.Empty(t, lawyer)
	assert.EqualError(t, err, "mocked-error")

	lawyer, err = lawyerDB.FindOne(context.Background(), bson.M{"error": false})
	assert.Equal(t, &models.Lawyer{Name: "Jane Doe"}, lawyer)
	assert.NoError(t, err)
}

func TestLawyerDatabase_Find(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}
	cursorErr := &mocks.CursorHelper{}

	cursorErr.On("All", context.Background(), mock.Anything).Return(errors.New("mocked-error"))
	cursorErr.On("Close", context.Background()).Return(nil)

	collectionHelper.On("Find", context.Background(), bson.M{"isActive": true}).Return(cursorErr, nil)
	dbHelper.On("Collection", "lawyers").Return(collectionHelper)

	lawyers, err := databases.NewLawyerDatabase(dbHelper).Find(context.Background(), bson.M{"isActive": true})

	assert.Nil(t, lawyers)
	assert.EqualError(t, err, "mocked-error")
}

func TestLawyerDatabase_CountDocuments(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}

	collectionHelper.On("CountDocuments", context.Background(), bson.M{}).Return(int64(4), nil)
	dbHelper.On("Collection", "lawyers").Return(collectionHelper)

	count, err := databases.NewLawyerDatabase(dbHelper).CountDocuments(context.Background(), bson.M{})

	assert.NoError(t, err)
	assert.Equal(t, int64(4), count)
}
