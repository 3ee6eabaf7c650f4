package api

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shaj13/go-guardian/auth"
	"github.com/shaj13/go-guardian/auth/strategies/basic"
	"github.com/shaj13/go-guardian/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/linesmerrill/safedesk-api/config"
	"github.com/linesmerrill/safedesk-api/databases"
	"github.com/linesmerrill/safedesk-api/models"
)

// basicCacheTTL bounds how long a verified email/password pair is trusted without a db lookup
const basicCacheTTL = 5 * time.Minute

// MiddlewareDB is a struct that holds the database
type MiddlewareDB struct {
	DB     databases.UserDatabase
	Tokens *TokenIssuer

	authenticator auth.Authenticator
}

// TokenResponse is returned when an access token is issued
type TokenResponse struct {
	Token     string    `json:"token"`
	ID        string    `json:"_id"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// SetupGoGuardian sets up the go-guardian basic strategy used to exchange credentials for a token
func (m *MiddlewareDB) SetupGoGuardian() {
	m.authenticator = auth.New()
	cache := store.NewFIFO(context.Background(), basicCacheTTL)
	basicStrategy := basic.New(m.ValidateUser, cache)

	m.authenticator.EnableStrategy(basic.StrategyKey, basicStrategy)
}

// ValidateUser validates a user
func (m *MiddlewareDB) ValidateUser(ctx context.Context, r *http.Request, email, password string) (auth.Info, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	usernameHash := sha256.Sum256([]byte(email))

	// fetch email & pass from db
	user, err := m.DB.FindOne(ctx, bson.M{"user.email": email})
	if err != nil {
		return nil, fmt.Errorf("no matching email found")
	}

	expectedUsernameHash := sha256.Sum256([]byte(user.Details.Email))
	usernameMatch := subtle.ConstantTimeCompare(usernameHash[:], expectedUsernameHash[:]) == 1

	err = bcrypt.CompareHashAndPassword([]byte(user.Details.Password), []byte(password))
	if err != nil {
		return nil, fmt.Errorf("failed to compare password")
	}

	if !usernameMatch {
		return nil, fmt.Errorf("invalid credentials")
	}
	if !user.Details.IsActive {
		return nil, fmt.Errorf("account is deactivated")
	}
	return auth.NewDefaultUser(email, user.ID.Hex(), []string{user.Details.Role}, nil), nil
}

// CreateToken exchanges HTTP basic credentials for an access token
func (m *MiddlewareDB) CreateToken(w http.ResponseWriter, r *http.Request) {
	info, err := m.authenticator.Authenticate(r)
	if err != nil {
		config.ErrorStatus("unauthorized", http.StatusUnauthorized, w, err)
		return
	}

	ctx, cancel := WithQueryTimeout(r.Context())
	defer cancel()

	user, err := m.DB.FindOne(ctx, bson.M{"user.email": info.UserName()})
	if err != nil {
		config.ErrorStatus("failed to get user by email", http.StatusUnauthorized, w, err)
		return
	}

	token, expires, err := m.Tokens.Issue(*user)
	if err != nil {
		config.ErrorStatus("failed to issue token", http.StatusInternalServerError, w, err)
		return
	}

	now := time.Now().UTC()
	if _, err = m.DB.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{"$set": bson.M{"user.lastLogin": now}}); err != nil {
		zap.S().Warnw("failed to record last login", "userID", user.ID.Hex(), "error", err)
	}

	b, err := json.Marshal(TokenResponse{Token: token, ID: user.ID.Hex(), ExpiresAt: expires})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}

// Middleware requires a valid bearer access token belonging to an active user and stores
// that user on the request context
func (m *MiddlewareDB) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		raw, ok := bearerToken(r)
		if !ok {
			config.ErrorStatus("unauthorized", http.StatusUnauthorized, w, errors.New("missing bearer token"))
			return
		}
		claims, err := m.Tokens.Verify(raw)
		if err != nil {
			config.ErrorStatus("unauthorized", http.StatusUnauthorized, w, err)
			return
		}
		userID, err := primitive.ObjectIDFromHex(claims.Subject)
		if err != nil {
			config.ErrorStatus("unauthorized", http.StatusUnauthorized, w, err)
			return
		}

		ctx, cancel := WithQueryTimeout(r.Context())
		user, err := m.DB.FindOne(ctx, bson.M{"_id": userID})
		cancel()
		if err != nil {
			config.ErrorStatus("unauthorized", http.StatusUnauthorized, w, err)
			return
		}
		if !user.Details.IsActive {
			config.ErrorStatus("unauthorized", http.StatusUnauthorized, w, errors.New("account is deactivated"))
			return
		}

		zap.S().Debugf("User %s Authenticated", user.Details.Email)
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

// RequireAdmin rejects requests whose authenticated user is not an administrator. It must run
// after Middleware.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok || user.Details.Role != models.UserRoleAdmin {
			config.ErrorStatus("forbidden", http.StatusForbidden, w, errors.New("admin role required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		return "", false
	}
	return strings.TrimSpace(token), true
}
