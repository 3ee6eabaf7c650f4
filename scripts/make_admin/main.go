package main

import (
	"context"
	"flag"
	"os"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"

	"github.com/linesmerrill/safedesk-api/config"
	"github.com/linesmerrill/safedesk-api/databases"
	"github.com/linesmerrill/safedesk-api/logging"
	"github.com/linesmerrill/safedesk-api/models"
)

// Grants the admin role to an existing account, optionally resetting its password.
// Usage: go run ./scripts/make_admin -email hr@example.com [-password newpassword]
func main() {
	email := flag.String("email", "", "email of the account to promote")
	password := flag.String("password", "", "optional new password")
	flag.Parse()

	log := logging.New("make_admin")
	if *email == "" {
		log.Error("-email is required")
		os.Exit(1)
	}

	conf := config.New()
	client, err := databases.NewClient(conf)
	if err != nil {
		log.Errorw("failed to create client", "error", err)
		os.Exit(1)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err = client.Connect(ctx); err != nil {
		log.Errorw("failed to connect", "error", err)
		os.Exit(1)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	userDB := databases.NewUserDatabase(databases.NewDatabase(conf, client))
	user, err := userDB.FindOne(ctx, bson.M{"user.email": strings.ToLower(*email)})
	if err != nil {
		log.Errorw("failed to find user", "email", *email, "error", err)
		os.Exit(1)
	}

	set := bson.M{"user.role": models.UserRoleAdmin, "user.isActive": true, "user.updatedAt": time.Now().UTC()}
	if *password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
		if err != nil {
			log.Errorw("failed to hash password", "error", err)
			os.Exit(1)
		}
		set["user.password"] = string(hash)
	}
	if _, err = userDB.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{"$set": set}); err != nil {
		log.Errorw("failed to update user", "error", err)
		os.Exit(1)
	}
	log.Infow("user promoted to admin", "email", user.Details.Email, "passwordReset", *password != "")
}
