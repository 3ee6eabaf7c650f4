package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/linesmerrill/safedesk-api/api"
	"github.com/linesmerrill/safedesk-api/config"
	"github.com/linesmerrill/safedesk-api/triage"
)

// maxBodyBytes caps request bodies read by decodeBody
const maxBodyBytes = 1 << 20

var errMissingUser = errors.New("no authenticated user on request")

// writeJSON marshals v and writes it with status
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(b)
}

// decodeBody decodes a JSON request body into v. An empty body leaves v untouched.
func decodeBody(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// requester builds the chat requester from the user stored by the auth middleware
func requester(r *http.Request) (triage.Requester, bool) {
	user, ok := api.UserFromContext(r.Context())
	if !ok {
		return triage.Requester{}, false
	}
	return triage.Requester{
		ID:          user.ID,
		DisplayName: user.Details.DisplayName,
		Email:       user.Details.Email,
	}, true
}

// pageParams reads page, limit, sortBy and sortOrder from the query string. sortBy is limited
// to allowedSort; anything else falls back to createdAt.
func pageParams(r *http.Request, allowedSort map[string]bool) (page, limit int64, sortBy string, sortOrder int) {
	q := r.URL.Query()
	page, _ = strconv.ParseInt(q.Get("page"), 10, 64)
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.ParseInt(q.Get("limit"), 10, 64)
	if limit < 1 || limit > maxPageLimit {
		limit = defaultPageLimit
	}
	sortBy = q.Get("sortBy")
	if !allowedSort[sortBy] {
		sortBy = "createdAt"
	}
	sortOrder = -1
	if q.Get("sortOrder") == "1" {
		sortOrder = 1
	}
	return page, limit, sortBy, sortOrder
}

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)
