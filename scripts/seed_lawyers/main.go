package main

import (
	"context"
	"flag"
	"os"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/linesmerrill/safedesk-api/config"
	"github.com/linesmerrill/safedesk-api/databases"
	"github.com/linesmerrill/safedesk-api/logging"
	"github.com/linesmerrill/safedesk-api/models"
)

// Seeds the lawyers collection with sample professionals for local development.
// Usage: go run ./scripts/seed_lawyers [-force]
func main() {
	force := flag.Bool("force", false, "insert even when the collection already has lawyers")
	flag.Parse()

	log := logging.New("seed_lawyers")
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

	lawyerDB := databases.NewLawyerDatabase(databases.NewDatabase(conf, client))

	existing, err := lawyerDB.CountDocuments(ctx, bson.M{})
	if err != nil {
		log.Errorw("failed to count lawyers", "error", err)
		os.Exit(1)
	}
	if existing > 0 && !*force {
		log.Infow("lawyers already seeded, use -force to insert anyway", "count", existing)
		return
	}

	now := time.Now().UTC()
	for _, l := range sampleLawyers() {
		l.IsActive = true
		l.CreatedAt = now
		l.UpdatedAt = now
		if _, err := lawyerDB.InsertOne(ctx, l); err != nil {
			log.Errorw("failed to insert lawyer", "name", l.Name, "error", err)
			os.Exit(1)
		}
		log.Infow("seeded lawyer", "name", l.Name, "specializations", strings.Join(l.Specializations, ", "))
	}
}

func sampleLawyers() []models.Lawyer {
	return []models.Lawyer{
		{
			Name:            "Sarah Mitchell",
			Email:           "sarah.mitchell@legalaid.com",
			Phone:           "+1 (555) 123-4567",
			Specializations: []string{"workplace-harassment", "sexual-harassment", "discrimination"},
			Experience:      15,
			Rating:          4.9,
			CasesHandled:    250,
			SuccessRate:     92,
			Availability:    models.AvailabilityAvailable,
			Bio:             "Dedicated employment law attorney with over 15 years of experience advocating for victims of workplace harassment.",
			Education: []models.Education{
				{Degree: "JD", Institution: "Harvard Law School", Year: 2008},
				{Degree: "BA in Political Science", Institution: "Yale University", Year: 2005},
			},
			Languages: []string{"English", "Spanish"},
			Location:  models.Location{City: "New York", State: "NY", Country: "USA"},
		},
		{
			Name:            "James Chen",
			Email:           "james.chen@employmentlaw.com",
			Phone:           "+1 (555) 234-5678",
			Specializations: []string{"employment-law", "discrimination", "wrongful-termination"},
			Experience:      12,
			Rating:          4.8,
			CasesHandled:    180,
			SuccessRate:     89,
			Availability:    models.AvailabilityAvailable,
			Bio:             "Employment attorney specializing in discrimination and wrongful termination cases.",
			Education: []models.Education{
				{Degree: "JD", Institution: "Stanford Law School", Year: 2011},
			},
			Languages: []string{"English", "Mandarin"},
			Location:  models.Location{City: "San Francisco", State: "CA", Country: "USA"},
		},
		{
			Name:            "Maria Rodriguez",
			Email:           "maria.rodriguez@civilrights.org",
			Phone:           "+1 (555) 345-6789",
			Specializations: []string{"sexual-harassment", "civil-rights", "discrimination"},
			Experience:      18,
			Rating:          4.9,
			CasesHandled:    320,
			SuccessRate:     94,
			Availability:    models.AvailabilityAvailable,
			Bio:             "Civil rights attorney with a long record in sexual harassment cases.",
			Education: []models.Education{
				{Degree: "JD", Institution: "Columbia Law School", Year: 2005},
			},
			Languages: []string{"English", "Spanish", "Portuguese"},
			Location:  models.Location{City: "Miami", State: "FL", Country: "USA"},
		},
		{
			Name:            "David Thompson",
			Email:           "david.thompson@laborlaw.com",
			Phone:           "+1 (555) 456-7890",
			Specializations: []string{"labor-law", "employment-law", "wage-dispute"},
			Experience:      10,
			Rating:          4.7,
			CasesHandled:    150,
			SuccessRate:     87,
			Availability:    models.AvailabilityAvailable,
			Bio:             "Labor law specialist focusing on wage disputes and workers' compensation.",
			Education: []models.Education{
				{Degree: "JD", Institution: "Northwestern Law", Year: 2013},
			},
			Languages: []string{"English"},
			Location:  models.Location{City: "Chicago", State: "IL", Country: "USA"},
		},
		{
			Name:            "Emily Patel",
			Email:           "emily.patel@workplacelaw.com",
			Phone:           "+1 (555) 567-8901",
			Specializations: []string{"workplace-harassment", "employment-law", "retaliation"},
			Experience:      14,
			Rating:          4.8,
			CasesHandled:    200,
			SuccessRate:     90,
			Availability:    models.AvailabilityBusy,
			Bio:             "Attorney specializing in workplace harassment and retaliation cases.",
			Education: []models.Education{
				{Degree: "JD", Institution: "UCLA Law", Year: 2009},
			},
			Languages: []string{"English", "Hindi", "Gujarati"},
			Location:  models.Location{City: "Los Angeles", State: "CA", Country: "USA"},
		},
		{
			Name:            "Michael O'Brien",
			Email:           "michael.obrien@employmentrights.com",
			Phone:           "+1 (555) 678-9012",
			Specializations: []string{"discrimination", "civil-rights", "employment-law"},
			Experience:      20,
			Rating:          4.9,
			CasesHandled:    400,
			SuccessRate:     93,
			Availability:    models.AvailabilityAvailable,
			ConsultationFee: 150,
			Bio:             "Senior partner with two decades of experience in employment discrimination cases.",
			Education: []models.Education{
				{Degree: "JD", Institution: "University of Michigan Law", Year: 2003},
			},
			Languages: []string{"English", "French"},
			Location:  models.Location{City: "Boston", State: "MA", Country: "USA"},
		},
	}
}
