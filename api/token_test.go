package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/linesmerrill/safedesk-api/models"
)

func testUser(role string) models.User {
	return models.User{
		ID: primitive.NewObjectID(),
		Details: models.UserDetails{
			Email:       "sam@example.com",
			DisplayName: "Sam",
			Role:        role,
			IsActive:    true,
		},
	}
}

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	user := testUser(models.UserRoleAdmin)

	token, expires, err := issuer.Issue(user)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, time.Minute)

	claims, err := issuer.Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims.Subject)
	assert.Equal(t, "sam@example.com", claims.Email)
	assert.Equal(t, models.UserRoleAdmin, claims.Role)
}

func TestTokenIssuer_MissingSecret(t *testing.T) {
	_, _, err := NewTokenIssuer("", time.Hour).Issue(testUser(models.UserRoleEmployee))
	assert.EqualError(t, err, "token secret is not configured")
}

func TestTokenIssuer_Expired(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Minute)
	issued := time.Now().Add(-time.Hour)
	issuer.now = func() time.Time { return issued }

	token, _, err := issuer.Issue(testUser(models.UserRoleEmployee))
	assert.NoError(t, err)

	issuer.now = time.Now
	_, err = issuer.Verify(token)
	assert.Error(t, err)
}

func TestTokenIssuer_WrongSecret(t *testing.T) {
	token, _, err := NewTokenIssuer("secret", time.Hour).Issue(testUser(models.UserRoleEmployee))
	assert.NoError(t, err)

	_, err = NewTokenIssuer("other", time.Hour).Verify(token)
	assert.Error(t, err)
}
