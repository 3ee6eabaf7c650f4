package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/linesmerrill/safedesk-api/api"
	"github.com/linesmerrill/safedesk-api/config"
	"github.com/linesmerrill/safedesk-api/models"
	"github.com/linesmerrill/safedesk-api/triage"
)

// Chat exported for testing purposes
type Chat struct {
	Assistant *triage.Assistant
	Directory triage.Directory
}

// MessageRequest is the body of a chat message
type MessageRequest struct {
	SessionID string `json:"sessionId"`
	Message   string `json:"message"`
}

// LawyersResponse lists directory entries
type LawyersResponse struct {
	Count   int             `json:"count"`
	Lawyers []models.Lawyer `json:"lawyers"`
}

// StartSessionHandler returns the caller's active chat session, creating one if needed
func (c Chat) StartSessionHandler(w http.ResponseWriter, r *http.Request) {
	req, ok := requester(r)
	if !ok {
		config.ErrorStatus("unauthorized", http.StatusUnauthorized, w, errMissingUser)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	session, err := c.Assistant.Start(ctx, req)
	if err != nil {
		config.ErrorStatus("failed to start chat session", http.StatusInternalServerError, w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// ActiveSessionHandler returns the caller's active chat session
func (c Chat) ActiveSessionHandler(w http.ResponseWriter, r *http.Request) {
	req, ok := requester(r)
	if !ok {
		config.ErrorStatus("unauthorized", http.StatusUnauthorized, w, errMissingUser)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	session, err := c.Assistant.Active(ctx, req)
	if err != nil {
		config.ErrorStatus("failed to get active session", http.StatusInternalServerError, w, err)
		return
	}
	if session == nil {
		config.ErrorStatus("no active chat session", http.StatusNotFound, w, triage.ErrSessionNotFound)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// SendMessageHandler records a message in a session and returns the updated session
func (c Chat) SendMessageHandler(w http.ResponseWriter, r *http.Request) {
	req, ok := requester(r)
	if !ok {
		config.ErrorStatus("unauthorized", http.StatusUnauthorized, w, errMissingUser)
		return
	}

	var body MessageRequest
	if err := decodeBody(r, &body); err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}
	sessionID, err := primitive.ObjectIDFromHex(body.SessionID)
	if err != nil {
		config.ErrorStatus("invalid session id", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	session, err := c.Assistant.Send(ctx, req, sessionID, body.Message)
	switch {
	case errors.Is(err, triage.ErrEmptyMessage):
		config.ErrorStatus("message is required", http.StatusBadRequest, w, err)
		return
	case errors.Is(err, triage.ErrSessionNotFound):
		config.ErrorStatus("chat session not found", http.StatusNotFound, w, err)
		return
	case err != nil:
		config.ErrorStatus("failed to process message", http.StatusInternalServerError, w, err)
		return
	}

	zap.S().Debugw("chat message handled", "sessionId", session.ID.Hex(), "requestId", api.RequestID(r.Context()))
	writeJSON(w, http.StatusOK, session)
}

// HistoryHandler returns the caller's most recent sessions
func (c Chat) HistoryHandler(w http.ResponseWriter, r *http.Request) {
	req, ok := requester(r)
	if !ok {
		config.ErrorStatus("unauthorized", http.StatusUnauthorized, w, errMissingUser)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	sessions, err := c.Assistant.History(ctx, req)
	if err != nil {
		config.ErrorStatus("failed to get chat history", http.StatusInternalServerError, w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

// EndSessionHandler closes a chat session
func (c Chat) EndSessionHandler(w http.ResponseWriter, r *http.Request) {
	req, ok := requester(r)
	if !ok {
		config.ErrorStatus("unauthorized", http.StatusUnauthorized, w, errMissingUser)
		return
	}

	sessionID, err := primitive.ObjectIDFromHex(mux.Vars(r)["session_id"])
	if err != nil {
		config.ErrorStatus("invalid session id", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	session, err := c.Assistant.End(ctx, req, sessionID)
	if errors.Is(err, triage.ErrSessionNotFound) {
		config.ErrorStatus("chat session not found", http.StatusNotFound, w, err)
		return
	}
	if err != nil {
		config.ErrorStatus("failed to end chat session", http.StatusInternalServerError, w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// LawyersHandler lists active directory entries, optionally by specialization and availability
func (c Chat) LawyersHandler(w http.ResponseWriter, r *http.Request) {
	filter := triage.DirectoryFilter{
		Specialization: r.URL.Query().Get("specialization"),
		Availability:   r.URL.Query().Get("availability"),
	}
	switch filter.Availability {
	case "", models.AvailabilityAvailable, models.AvailabilityBusy, models.AvailabilityUnavailable:
	default:
		config.ErrorStatus("invalid availability", http.StatusBadRequest, w, errors.New("availability must be available, busy or unavailable"))
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	lawyers, err := c.Directory.FindProfessionals(ctx, filter)
	if err != nil {
		config.ErrorStatus("failed to get lawyers", http.StatusInternalServerError, w, err)
		return
	}
	writeJSON(w, http.StatusOK, LawyersResponse{Count: len(lawyers), Lawyers: lawyers})
}
