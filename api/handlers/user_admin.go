package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/linesmerrill/safedesk-api/api"
	"github.com/linesmerrill/safedesk-api/config"
	"github.com/linesmerrill/safedesk-api/databases"
	"github.com/linesmerrill/safedesk-api/models"
)

// sort keys accepted by the user listing; each maps to the nested user.<key> field
var userSortFields = map[string]bool{
	"createdAt": true,
	"updatedAt": true,
	"lastLogin": true,
	"email":     true,
}

var validRoles = map[string]bool{
	models.UserRoleEmployee: true,
	models.UserRoleAdmin:    true,
}

var errSelfLockout = errors.New("admins cannot demote or deactivate themselves")

// UserListResponse is a page of users
type UserListResponse struct {
	Users      []models.User     `json:"users"`
	Pagination models.Pagination `json:"pagination"`
}

// AdminUserRequest is the body of an administrator's account update. Nil fields are left as
// they are.
type AdminUserRequest struct {
	DisplayName *string `json:"displayName"`
	Email       *string `json:"email"`
	PhotoURL    *string `json:"photoURL"`
	Role        *string `json:"role"`
	IsActive    *bool   `json:"isActive"`
}

// UsersHandler lists accounts, optionally filtered by role and isActive
func (u User) UsersHandler(w http.ResponseWriter, r *http.Request) {
	filter := bson.M{}
	if role := r.URL.Query().Get("role"); role != "" {
		if !validRoles[role] {
			config.ErrorStatus("invalid role", http.StatusBadRequest, w, fmt.Errorf("unknown role %q", role))
			return
		}
		filter["user.role"] = role
	}
	isActive, err := parseOptionalBool(r.URL.Query().Get("isActive"))
	if err != nil {
		config.ErrorStatus("invalid filter", http.StatusBadRequest, w, fmt.Errorf("isActive: %w", err))
		return
	}
	if isActive != nil {
		filter["user.isActive"] = *isActive
	}

	page, limit, sortBy, sortOrder := pageParams(r, userSortFields)

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	users, err := u.DB.Find(ctx, filter, databases.PaginatedFindOptions(limit, page, "user."+sortBy, sortOrder))
	if err != nil {
		config.ErrorStatus("failed to get users", http.StatusInternalServerError, w, err)
		return
	}
	total, err := u.DB.CountDocuments(ctx, filter)
	if err != nil {
		config.ErrorStatus("failed to get users", http.StatusInternalServerError, w, err)
		return
	}
	if users == nil {
		users = []models.User{}
	}

	writeJSON(w, http.StatusOK, UserListResponse{
		Users: users,
		Pagination: models.Pagination{
			Total:      total,
			Page:       page,
			Limit:      limit,
			TotalPages: (total + limit - 1) / limit,
		},
	})
}

// UserByIDHandler returns a single account
func (u User) UserByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := userIDVar(w, r)
	if !ok {
		return
	}

	user, ok := u.findUser(w, r, id)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// UpdateUserHandler changes another account's details, role or active flag
func (u User) UpdateUserHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := userIDVar(w, r)
	if !ok {
		return
	}
	var body AdminUserRequest
	if err := decodeBody(r, &body); err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}

	now := time.Now().UTC()
	set := bson.M{"user.updatedAt": now}
	if body.DisplayName != nil {
		set["user.displayName"] = strings.TrimSpace(*body.DisplayName)
	}
	if body.PhotoURL != nil {
		set["user.photoURL"] = *body.PhotoURL
	}
	if body.Role != nil {
		if !validRoles[*body.Role] {
			config.ErrorStatus("invalid role", http.StatusBadRequest, w, fmt.Errorf("unknown role %q", *body.Role))
			return
		}
		set["user.role"] = *body.Role
	}
	if body.IsActive != nil {
		set["user.isActive"] = *body.IsActive
	}
	if len(set) == 1 && body.Email == nil {
		config.ErrorStatus("nothing to update", http.StatusBadRequest, w, errors.New("no updatable fields supplied"))
		return
	}
	demoted := body.Role != nil && *body.Role != models.UserRoleAdmin
	deactivated := body.IsActive != nil && !*body.IsActive
	if (demoted || deactivated) && isSelf(r, id) {
		config.ErrorStatus("cannot remove your own admin access", http.StatusBadRequest, w, errSelfLockout)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if body.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*body.Email))
		if _, err := mail.ParseAddress(email); err != nil {
			config.ErrorStatus("a valid email is required", http.StatusBadRequest, w, err)
			return
		}
		_, err := u.DB.FindOne(ctx, bson.M{"user.email": email, "_id": bson.M{"$ne": id}})
		if err == nil {
			config.ErrorStatus("user with this email already exists", http.StatusConflict, w, errors.New("duplicate email"))
			return
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			config.ErrorStatus("failed to check email", http.StatusInternalServerError, w, err)
			return
		}
		set["user.email"] = email
	}

	res, err := u.DB.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		config.ErrorStatus("failed to update user", http.StatusInternalServerError, w, err)
		return
	}
	if res.MatchedCount == 0 {
		config.ErrorStatus("user not found", http.StatusNotFound, w, mongo.ErrNoDocuments)
		return
	}

	user, ok := u.findUser(w, r, id)
	if !ok {
		return
	}
	zap.S().Infow("user updated by admin", "userId", id.Hex(), "fields", len(set)-1)
	writeJSON(w, http.StatusOK, user)
}

// DeactivateUserHandler disables an account. The document is kept so complaints and chat
// sessions that reference it stay intact.
func (u User) DeactivateUserHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := userIDVar(w, r)
	if !ok {
		return
	}
	if isSelf(r, id) {
		config.ErrorStatus("cannot remove your own admin access", http.StatusBadRequest, w, errSelfLockout)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	update := bson.M{"$set": bson.M{"user.isActive": false, "user.updatedAt": time.Now().UTC()}}
	res, err := u.DB.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		config.ErrorStatus("failed to deactivate user", http.StatusInternalServerError, w, err)
		return
	}
	if res.MatchedCount == 0 {
		config.ErrorStatus("user not found", http.StatusNotFound, w, mongo.ErrNoDocuments)
		return
	}
	zap.S().Infow("user deactivated", "userId", id.Hex())
	writeJSON(w, http.StatusOK, MessageResponse{Message: "user deactivated successfully"})
}

func (u User) findUser(w http.ResponseWriter, r *http.Request, id primitive.ObjectID) (*models.User, bool) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	user, err := u.DB.FindOne(ctx, bson.M{"_id": id})
	if errors.Is(err, mongo.ErrNoDocuments) {
		config.ErrorStatus("user not found", http.StatusNotFound, w, err)
		return nil, false
	}
	if err != nil {
		config.ErrorStatus("failed to get user", http.StatusInternalServerError, w, err)
		return nil, false
	}
	return user, true
}

func userIDVar(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["user_id"])
	if err != nil {
		config.ErrorStatus("invalid user id", http.StatusBadRequest, w, err)
		return primitive.NilObjectID, false
	}
	return id, true
}

// isSelf reports whether id is the authenticated caller
func isSelf(r *http.Request, id primitive.ObjectID) bool {
	caller, ok := api.UserFromContext(r.Context())
	return ok && caller.ID == id
}
