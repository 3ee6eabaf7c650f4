package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/linesmerrill/safedesk-api/api"
	"github.com/linesmerrill/safedesk-api/api/scheduler"
	"github.com/linesmerrill/safedesk-api/config"
	"github.com/linesmerrill/safedesk-api/databases"
	"github.com/linesmerrill/safedesk-api/models"
	"github.com/linesmerrill/safedesk-api/triage"
)

// App stores the router and db connection, so it can be reused
type App struct {
	Router  *mux.Router
	Config  config.Config
	Metrics *api.Metrics

	dbHelper  databases.DatabaseHelper
	client    databases.ClientHelper
	scheduler *scheduler.Scheduler
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	if a.Metrics == nil {
		a.Metrics = api.NewMetrics()
	}

	userDB := databases.NewUserDatabase(a.dbHelper)
	complaintDB := databases.NewComplaintDatabase(a.dbHelper)
	directory := databases.NewDirectory(databases.NewLawyerDatabase(a.dbHelper))
	sessions := databases.NewSessionStore(databases.NewChatSessionDatabase(a.dbHelper))
	tokens := api.NewTokenIssuer(a.Config.JWTSecret, a.Config.JWTTTL)

	// setup go-guardian for middleware
	m := &api.MiddlewareDB{DB: userDB, Tokens: tokens}
	m.SetupGoGuardian()

	u := User{DB: userDB, Tokens: tokens}
	chat := Chat{
		Assistant: triage.NewAssistant(sessions, directory, triage.WithObserver(a.Metrics)),
		Directory: directory,
	}
	c := Complaint{DB: complaintDB, Observer: a.Metrics}
	ev := Evidence{
		DB:        complaintDB,
		CloudName: a.Config.CloudinaryCloudName,
		APIKey:    a.Config.CloudinaryAPIKey,
		APISecret: a.Config.CloudinaryAPISecret,
		Folder:    a.Config.CloudinaryFolder,
	}

	r := mux.NewRouter()
	r.Use(api.MetricsMiddleware(a.Metrics))
	if a.Config.RequestTimeout > 0 {
		r.Use(api.TimeoutMiddleware(a.Config.RequestTimeout))
	}

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)
	r.Handle("/metrics", a.Metrics.Handler())

	apiCreate := r.PathPrefix("/api/v1").Subrouter()

	admin := func(h http.HandlerFunc) http.Handler {
		return m.Middleware(api.RequireAdmin(h))
	}

	apiCreate.Handle("/auth/register", http.HandlerFunc(u.RegisterHandler)).Methods("POST")
	apiCreate.Handle("/auth/token", http.HandlerFunc(m.CreateToken)).Methods("POST")
	apiCreate.Handle("/auth/profile", m.Middleware(http.HandlerFunc(u.ProfileHandler))).Methods("GET")
	apiCreate.Handle("/auth/profile", m.Middleware(http.HandlerFunc(u.UpdateProfileHandler))).Methods("PUT")

	apiCreate.Handle("/users", admin(u.UsersHandler)).Methods("GET")
	apiCreate.Handle("/users/{user_id}", admin(u.UserByIDHandler)).Methods("GET")
	apiCreate.Handle("/users/{user_id}", admin(u.UpdateUserHandler)).Methods("PUT")
	apiCreate.Handle("/users/{user_id}", admin(u.DeactivateUserHandler)).Methods("DELETE")

	apiCreate.Handle("/chat/session/start", m.Middleware(http.HandlerFunc(chat.StartSessionHandler))).Methods("GET")
	apiCreate.Handle("/chat/session/active", m.Middleware(http.HandlerFunc(chat.ActiveSessionHandler))).Methods("GET")
	apiCreate.Handle("/chat/message", m.Middleware(http.HandlerFunc(chat.SendMessageHandler))).Methods("POST")
	apiCreate.Handle("/chat/history", m.Middleware(http.HandlerFunc(chat.HistoryHandler))).Methods("GET")
	apiCreate.Handle("/chat/session/{session_id}/end", m.Middleware(http.HandlerFunc(chat.EndSessionHandler))).Methods("PUT")
	apiCreate.Handle("/chat/lawyers", m.Middleware(http.HandlerFunc(chat.LawyersHandler))).Methods("GET")

	// static complaint routes are registered before /complaints/{anonymous_id}
	apiCreate.Handle("/complaints", http.HandlerFunc(c.CreateComplaintHandler)).Methods("POST")
	apiCreate.Handle("/complaints", admin(c.ComplaintsHandler)).Methods("GET")
	apiCreate.Handle("/complaints/verify", http.HandlerFunc(c.VerifyComplaintHandler)).Methods("POST")
	apiCreate.Handle("/complaints/statistics", admin(c.StatisticsHandler)).Methods("GET")
	apiCreate.Handle("/complaints/forum/posts", http.HandlerFunc(c.ForumPostsHandler)).Methods("GET")
	apiCreate.Handle("/complaints/{anonymous_id}", http.HandlerFunc(c.ComplaintByAnonymousIDHandler)).Methods("GET")
	apiCreate.Handle("/complaints/{anonymous_id}/status", admin(c.UpdateStatusHandler)).Methods("PATCH")
	apiCreate.Handle("/complaints/{anonymous_id}/approve-forum", admin(c.ApproveForumHandler)).Methods("PATCH")
	apiCreate.Handle("/complaints/{anonymous_id}/evidence", http.HandlerFunc(c.AddEvidenceHandler)).Methods("POST")
	apiCreate.Handle("/complaints/{anonymous_id}/evidence/signature", http.HandlerFunc(ev.SignatureHandler)).Methods("POST")
	apiCreate.Handle("/complaints/{anonymous_id}/witnesses", http.HandlerFunc(c.WitnessHandler)).Methods("POST")
	apiCreate.Handle("/complaints/{anonymous_id}/react", http.HandlerFunc(c.ReactionHandler)).Methods("POST")
	apiCreate.Handle("/complaints/{anonymous_id}/comments", http.HandlerFunc(c.CommentHandler)).Methods("POST")

	// swagger docs hosted at "/"
	r.PathPrefix("/").Handler(http.StripPrefix("/", http.FileServer(http.Dir("./docs/"))))
	return r
}

// Initialize is invoked by main to connect with the database and create a router
func (a *App) Initialize() error {
	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new client")
		return err
	}

	ctx, cancel := api.WithQueryTimeout(context.Background())
	defer cancel()

	a.client = client
	a.dbHelper = databases.NewDatabase(&a.Config, client)
	err = client.Connect(ctx)
	if err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	zap.S().Info("safedesk-api has connected to the database")

	// initialize api router
	a.initializeRoutes()

	if scheduler.Enabled(&a.Config) {
		mailer := scheduler.NewSendgridMailer(a.Config.SendgridAPIKey, a.Config.DigestSender)
		a.scheduler = scheduler.NewScheduler(&a.Config, databases.NewComplaintDatabase(a.dbHelper), mailer)
		if err = a.scheduler.Start(); err != nil {
			return err
		}
	} else {
		zap.S().Info("complaint digest disabled, SENDGRID_API_KEY or DIGEST_RECIPIENT not set")
	}
	return nil
}

// Close stops background jobs and disconnects from the database
func (a *App) Close(ctx context.Context) error {
	if a.scheduler != nil {
		a.scheduler.Stop()
	}
	if a.client != nil {
		return a.client.Disconnect(ctx)
	}
	return nil
}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{
		Alive: true,
	})
	_, _ = io.WriteString(w, string(b))
}
