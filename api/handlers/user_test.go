package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/linesmerrill/safedesk-api/api"
	"github.com/linesmerrill/safedesk-api/api/handlers"
	mocksdb "github.com/linesmerrill/safedesk-api/databases/mocks"
	"github.com/linesmerrill/safedesk-api/models"
)

func newUserHandler(db *mocksdb.UserDatabase) handlers.User {
	return handlers.User{DB: db, Tokens: api.NewTokenIssuer("test-secret", time.Hour)}
}

func TestUser_RegisterHandlerValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "bad email", body: `{"email":"not-an-email","password":"longenough"}`},
		{name: "short password", body: `{"email":"sam@example.com","password":"short"}`},
		{name: "bad json", body: `{"email":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/v1/auth/register", strings.NewReader(tt.body))

			rr := httptest.NewRecorder()
			http.HandlerFunc(newUserHandler(&mocksdb.UserDatabase{}).RegisterHandler).ServeHTTP(rr, req)

			if status := rr.Code; status != http.StatusBadRequest {
				t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusBadRequest)
			}
		})
	}
}

func TestUser_RegisterHandlerDuplicate(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/v1/auth/register", strings.NewReader(`{"email":"Sam@Example.com","password":"longenough"}`))

	db := &mocksdb.UserDatabase{}
	db.On("FindOne", mock.Anything, bson.M{"user.email": "sam@example.com"}).Return(&models.User{}, nil)

	rr := httptest.NewRecorder()
	http.HandlerFunc(newUserHandler(db).RegisterHandler).ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusConflict {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusConflict)
	}
	db.AssertNotCalled(t, "InsertOne", mock.Anything, mock.Anything)
}

func TestUser_RegisterHandlerLookupFails(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/v1/auth/register", strings.NewReader(`{"email":"sam@example.com","password":"longenough"}`))

	db := &mocksdb.UserDatabase{}
	db.On("FindOne", mock.Anything, mock.Anything).Return(nil, errors.New("mocked-error"))

	rr := httptest.NewRecorder()
	http.HandlerFunc(newUserHandler(db).RegisterHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestUser_RegisterHandler(t *testing.T) {
	body := `{"email":"sam@example.com","password":"longenough","displayName":" Sam ","role":"admin"}`
	req := httptest.NewRequest("POST", "/api/v1/auth/register", strings.NewReader(body))

	id := primitive.NewObjectID()
	insertResult := &mocksdb.InsertOneResultHelper{}
	insertResult.On("Decode").Return(id)

	var stored models.UserDetails
	db := &mocksdb.UserDatabase{}
	db.On("FindOne", mock.Anything, mock.Anything).Return(nil, mongo.ErrNoDocuments)
	db.On("InsertOne", mock.Anything, mock.Anything).
		Return(insertResult, nil).
		Run(func(args mock.Arguments) { stored = args.Get(1).(models.UserDetails) })

	h := newUserHandler(db)
	rr := httptest.NewRecorder()
	http.HandlerFunc(h.RegisterHandler).ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusCreated {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusCreated)
	}

	assert.Equal(t, models.UserRoleEmployee, stored.Role)
	assert.Equal(t, "Sam", stored.DisplayName)
	assert.True(t, stored.IsActive)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("longenough")))

	var got handlers.RegisterResponse
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, id.Hex(), got.ID)
	claims, err := h.Tokens.Verify(got.Token)
	if assert.NoError(t, err) {
		assert.Equal(t, id.Hex(), claims.Subject)
	}
}

func TestUser_ProfileHandlerUnauthorized(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/v1/auth/profile", nil)

	rr := httptest.NewRecorder()
	http.HandlerFunc(newUserHandler(&mocksdb.UserDatabase{}).ProfileHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestUser_UpdateProfileHandler(t *testing.T) {
	req := authed(httptest.NewRequest("PUT", "/api/v1/auth/profile", strings.NewReader(`{"displayName":"Samantha"}`)))

	var update bson.M
	db := &mocksdb.UserDatabase{}
	db.On("UpdateOne", mock.Anything, bson.M{"_id": employee.ID}, mock.Anything).
		Return(&mongo.UpdateResult{MatchedCount: 1}, nil).
		Run(func(args mock.Arguments) { update = args.Get(2).(bson.M) })

	rr := httptest.NewRecorder()
	http.HandlerFunc(newUserHandler(db).UpdateProfileHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	set := update["$set"].(bson.M)
	assert.Equal(t, "Samantha", set["user.displayName"])
	assert.NotContains(t, set, "user.photoURL")

	var got models.User
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "Samantha", got.Details.DisplayName)
	assert.Equal(t, "Sam", employee.Details.DisplayName)
}

func TestUser_UpdateProfileHandlerNothingToUpdate(t *testing.T) {
	req := authed(httptest.NewRequest("PUT", "/api/v1/auth/profile", strings.NewReader(`{}`)))

	rr := httptest.NewRecorder()
	http.HandlerFunc(newUserHandler(&mocksdb.UserDatabase{}).UpdateProfileHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUser_UpdateProfileHandlerStoreFails(t *testing.T) {
	req := authed(httptest.NewRequest("PUT", "/api/v1/auth/profile", strings.NewReader(`{"photoURL":"https://img.example/p.png"}`)))

	db := &mocksdb.UserDatabase{}
	db.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("mocked-error"))

	rr := httptest.NewRecorder()
	http.HandlerFunc(newUserHandler(db).UpdateProfileHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
