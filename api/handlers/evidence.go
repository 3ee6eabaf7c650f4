package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	cldapi "github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/gorilla/mux"

	"github.com/linesmerrill/safedesk-api/api"
	"github.com/linesmerrill/safedesk-api/config"
	"github.com/linesmerrill/safedesk-api/databases"
)

// Evidence signs direct-to-Cloudinary evidence uploads for a complaint
type Evidence struct {
	DB        databases.ComplaintDatabase
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

// UploadSignature carries the signed parameters a client posts to Cloudinary with the file
type UploadSignature struct {
	CloudName string `json:"cloudName"`
	APIKey    string `json:"apiKey"`
	Timestamp string `json:"timestamp"`
	Folder    string `json:"folder"`
	Signature string `json:"signature"`
	UploadURL string `json:"uploadUrl"`
}

// SignatureHandler returns signed upload parameters scoped to the complaint's folder
func (e Evidence) SignatureHandler(w http.ResponseWriter, r *http.Request) {
	if e.APISecret == "" || e.APIKey == "" || e.CloudName == "" {
		config.ErrorStatus("evidence uploads are not configured", http.StatusServiceUnavailable, w, errors.New("cloudinary credentials missing"))
		return
	}
	anonymousID := mux.Vars(r)["anonymous_id"]

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	c := Complaint{DB: e.DB}
	if _, ok := c.findComplaint(ctx, w, anonymousID, "complaint not found"); !ok {
		return
	}

	sig, err := e.sign(anonymousID, time.Now())
	if err != nil {
		config.ErrorStatus("failed to sign upload", http.StatusInternalServerError, w, err)
		return
	}
	writeJSON(w, http.StatusOK, sig)
}

func (e Evidence) sign(anonymousID string, now time.Time) (UploadSignature, error) {
	timestamp := strconv.FormatInt(now.Unix(), 10)
	folder := anonymousID
	if e.Folder != "" {
		folder = e.Folder + "/" + anonymousID
	}

	params := url.Values{}
	params.Set("timestamp", timestamp)
	params.Set("folder", folder)
	signature, err := cldapi.SignParameters(params, e.APISecret)
	if err != nil {
		return UploadSignature{}, err
	}

	return UploadSignature{
		CloudName: e.CloudName,
		APIKey:    e.APIKey,
		Timestamp: timestamp,
		Folder:    folder,
		Signature: signature,
		UploadURL: fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/auto/upload", e.CloudName),
	}, nil
}
