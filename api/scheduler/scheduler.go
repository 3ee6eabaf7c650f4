package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/linesmerrill/safedesk-api/config"
	"github.com/linesmerrill/safedesk-api/databases"
	"github.com/linesmerrill/safedesk-api/models"
	templates "github.com/linesmerrill/safedesk-api/templates/html"
)

const (
	senderName = "SafeDesk"
	jobTimeout = 2 * time.Minute
)

// Mailer delivers a single e-mail
type Mailer interface {
	Send(toEmail, toName, subject, htmlContent, plainText string) error
}

// SendgridMailer sends mail through the SendGrid v3 API
type SendgridMailer struct {
	client *sendgrid.Client
	from   *mail.Email
}

// NewSendgridMailer returns a Mailer sending as sender with the given API key
func NewSendgridMailer(apiKey, sender string) *SendgridMailer {
	return &SendgridMailer{
		client: sendgrid.NewSendClient(apiKey),
		from:   mail.NewEmail(senderName, sender),
	}
}

// Send implements Mailer
func (s *SendgridMailer) Send(toEmail, toName, subject, htmlContent, plainText string) error {
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(s.from, subject, to, plainText, htmlContent)
	response, err := s.client.Send(message)
	if err != nil {
		return err
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned status %d: %s", response.StatusCode, response.Body)
	}
	return nil
}

// Scheduler runs the daily complaint digest
type Scheduler struct {
	cron       *cron.Cron
	Complaints databases.ComplaintDatabase
	Mailer     Mailer
	Recipient  string
	Schedule   string
	BaseURL    string

	now func() time.Time
}

// Enabled reports whether the digest has everything it needs to send
func Enabled(conf *config.Config) bool {
	return conf.SendgridAPIKey != "" && conf.DigestRecipient != ""
}

// NewScheduler creates a new scheduler instance
func NewScheduler(conf *config.Config, complaints databases.ComplaintDatabase, mailer Mailer) *Scheduler {
	return &Scheduler{
		cron:       cron.New(cron.WithLocation(time.UTC)),
		Complaints: complaints,
		Mailer:     mailer,
		Recipient:  conf.DigestRecipient,
		Schedule:   conf.DigestSchedule,
		BaseURL:    conf.BaseURL,
		now:        time.Now,
	}
}

// Start registers the digest job and starts the cron
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.Schedule, s.sendDigest); err != nil {
		zap.S().Errorw("failed to register digest job", "schedule", s.Schedule, "error", err)
		return err
	}

	s.cron.Start()
	zap.S().Infow("Complaint digest scheduler started", "schedule", s.Schedule)
	return nil
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("Complaint digest scheduler stopped")
}

func (s *Scheduler) sendDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if err := s.SendDigest(ctx); err != nil {
		zap.S().Errorw("failed to send complaint digest", "error", err)
	}
}

// SendDigest counts the review queue and mails the digest
func (s *Scheduler) SendDigest(ctx context.Context) error {
	data, err := s.collect(ctx)
	if err != nil {
		return err
	}

	subject := templates.DigestSubject(data.Date)
	err = s.Mailer.Send(s.Recipient, "", subject, templates.RenderDigestEmail(data), templates.RenderDigestText(data))
	if err != nil {
		return fmt.Errorf("failed to send digest: %w", err)
	}

	zap.S().Infow("Sent complaint digest",
		"recipient", s.Recipient,
		"pending", data.Pending,
		"urgentPending", data.UrgentPending,
	)
	return nil
}

func (s *Scheduler) collect(ctx context.Context) (templates.DigestEmailData, error) {
	now := s.now().UTC()
	data := templates.DigestEmailData{Date: now}
	if s.BaseURL != "" {
		data.DashboardURL = s.BaseURL + "/admin/complaints"
	}

	var err error
	data.Pending, err = s.Complaints.CountDocuments(ctx, bson.M{"status": models.ComplaintStatusPending})
	if err != nil {
		return data, fmt.Errorf("failed to count pending complaints: %w", err)
	}

	data.UrgentPending, err = s.Complaints.CountDocuments(ctx, bson.M{
		"status":   models.ComplaintStatusPending,
		"priority": bson.M{"$in": []string{models.PriorityHigh, models.PriorityCritical}},
	})
	if err != nil {
		return data, fmt.Errorf("failed to count urgent complaints: %w", err)
	}

	data.FiledLastDay, err = s.Complaints.CountDocuments(ctx, bson.M{
		"createdAt": bson.M{"$gte": now.Add(-24 * time.Hour)},
	})
	if err != nil {
		return data, fmt.Errorf("failed to count recent complaints: %w", err)
	}
	return data, nil
}
