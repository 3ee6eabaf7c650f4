package handlers

import (
	"errors"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/linesmerrill/safedesk-api/api"
	"github.com/linesmerrill/safedesk-api/config"
	"github.com/linesmerrill/safedesk-api/databases"
	"github.com/linesmerrill/safedesk-api/models"
)

const (
	minPasswordLength = 8
	bcryptCost        = 12
)

// User exported for testing purposes
type User struct {
	DB     databases.UserDatabase
	Tokens *api.TokenIssuer
}

// RegisterRequest is the body of a new account
type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoURL"`
}

// RegisterResponse returns the new account and its first access token
type RegisterResponse struct {
	api.TokenResponse
	User models.User `json:"user"`
}

// ProfileRequest is the body of a profile update
type ProfileRequest struct {
	DisplayName *string `json:"displayName"`
	PhotoURL    *string `json:"photoURL"`
}

// RegisterHandler creates an employee account
func (u User) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var body RegisterRequest
	if err := decodeBody(r, &body); err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}
	email := strings.ToLower(strings.TrimSpace(body.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		config.ErrorStatus("a valid email is required", http.StatusBadRequest, w, err)
		return
	}
	if len(body.Password) < minPasswordLength {
		config.ErrorStatus("password must be at least 8 characters", http.StatusBadRequest, w, errors.New("password too short"))
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	_, err := u.DB.FindOne(ctx, bson.M{"user.email": email})
	if err == nil {
		config.ErrorStatus("user with this email already exists", http.StatusConflict, w, errors.New("duplicate email"))
		return
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		config.ErrorStatus("failed to check email", http.StatusInternalServerError, w, err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcryptCost)
	if err != nil {
		config.ErrorStatus("failed to hash password", http.StatusInternalServerError, w, err)
		return
	}

	now := time.Now().UTC()
	details := models.UserDetails{
		Email:       email,
		Password:    string(hash),
		DisplayName: strings.TrimSpace(body.DisplayName),
		PhotoURL:    body.PhotoURL,
		Role:        models.UserRoleEmployee,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	res, err := u.DB.InsertOne(ctx, details)
	if err != nil {
		config.ErrorStatus("failed to create user", http.StatusInternalServerError, w, err)
		return
	}
	id, ok := res.Decode().(primitive.ObjectID)
	if !ok {
		config.ErrorStatus("failed to create user", http.StatusInternalServerError, w, errors.New("unexpected inserted id"))
		return
	}

	user := models.User{ID: id, Details: details}
	token, expires, err := u.Tokens.Issue(user)
	if err != nil {
		config.ErrorStatus("failed to issue token", http.StatusInternalServerError, w, err)
		return
	}

	zap.S().Infow("user registered", "userId", id.Hex())
	writeJSON(w, http.StatusCreated, RegisterResponse{
		TokenResponse: api.TokenResponse{Token: token, ID: id.Hex(), ExpiresAt: expires},
		User:          user,
	})
}

// ProfileHandler returns the authenticated user
func (u User) ProfileHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := api.UserFromContext(r.Context())
	if !ok {
		config.ErrorStatus("unauthorized", http.StatusUnauthorized, w, errMissingUser)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// UpdateProfileHandler changes the authenticated user's display name and photo
func (u User) UpdateProfileHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := api.UserFromContext(r.Context())
	if !ok {
		config.ErrorStatus("unauthorized", http.StatusUnauthorized, w, errMissingUser)
		return
	}

	var body ProfileRequest
	if err := decodeBody(r, &body); err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}
	if body.DisplayName == nil && body.PhotoURL == nil {
		config.ErrorStatus("nothing to update", http.StatusBadRequest, w, errors.New("displayName or photoURL required"))
		return
	}

	updated := *user
	now := time.Now().UTC()
	set := bson.M{"user.updatedAt": now}
	if body.DisplayName != nil {
		updated.Details.DisplayName = strings.TrimSpace(*body.DisplayName)
		set["user.displayName"] = updated.Details.DisplayName
	}
	if body.PhotoURL != nil {
		updated.Details.PhotoURL = *body.PhotoURL
		set["user.photoURL"] = updated.Details.PhotoURL
	}
	updated.Details.UpdatedAt = now

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	res, err := u.DB.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{"$set": set})
	if err != nil {
		config.ErrorStatus("failed to update profile", http.StatusInternalServerError, w, err)
		return
	}
	if res.MatchedCount == 0 {
		config.ErrorStatus("user not found", http.StatusNotFound, w, mongo.ErrNoDocuments)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}
