package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Lawyer availability values
const (
	AvailabilityAvailable   = "available"
	AvailabilityBusy        = "busy"
	AvailabilityUnavailable = "unavailable"
)

// Lawyer holds the structure for the lawyers collection in mongo
type Lawyer struct {
	ID              primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name            string             `json:"name" bson:"name"`
	Email           string             `json:"email" bson:"email"`
	Phone           string             `json:"phone" bson:"phone"`
	Specializations []string           `json:"specializations" bson:"specializations"`
	Experience      int                `json:"experience" bson:"experience"`
	Rating          float64            `json:"rating" bson:"rating"`
	CasesHandled    int                `json:"casesHandled" bson:"casesHandled"`
	SuccessRate     float64            `json:"successRate" bson:"successRate"`
	Availability    string             `json:"availability" bson:"availability"`
	Bio             string             `json:"bio,omitempty" bson:"bio,omitempty"`
	Education       []Education        `json:"education,omitempty" bson:"education,omitempty"`
	Languages       []string           `json:"languages,omitempty" bson:"languages,omitempty"`
	ConsultationFee float64            `json:"consultationFee" bson:"consultationFee"`
	Location        Location           `json:"location" bson:"location"`
	ProfileImage    string             `json:"profileImage" bson:"profileImage"`
	IsActive        bool               `json:"isActive" bson:"isActive"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// Education is a single degree held by a lawyer
type Education struct {
	Degree      string `json:"degree" bson:"degree"`
	Institution string `json:"institution" bson:"institution"`
	Year        int    `json:"year" bson:"year"`
}

// Location is where a lawyer practices
type Location struct {
	City    string `json:"city" bson:"city"`
	State   string `json:"state" bson:"state"`
	Country string `json:"country" bson:"country"`
}
