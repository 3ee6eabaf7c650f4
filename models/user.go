package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// User roles
const (
	UserRoleEmployee = "employee"
	UserRoleAdmin    = "admin"
)

// User holds the structure for the user collection in mongo
type User struct {
	ID      primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Details UserDetails        `json:"user" bson:"user"`
}

// UserDetails holds the structure for the inner user structure as defined in the user collection in mongo
type UserDetails struct {
	Email       string      `json:"email" bson:"email"`
	Password    string      `json:"-" bson:"password"`
	DisplayName string      `json:"displayName" bson:"displayName"`
	PhotoURL    string      `json:"photoURL" bson:"photoURL"`
	Role        string      `json:"role" bson:"role"`
	IsActive    bool        `json:"isActive" bson:"isActive"`
	LastLogin   interface{} `json:"lastLogin" bson:"lastLogin"`
	CreatedAt   interface{} `json:"createdAt" bson:"createdAt"`
	UpdatedAt   interface{} `json:"updatedAt" bson:"updatedAt"`
}
