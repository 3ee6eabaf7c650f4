// Package docs SafeDesk API.
//
// Documentation of the SafeDesk workplace incident API.
//
//     Schemes: https
//     BasePath: /
//     Version: 1.0.0
//     Host: https://safedesk-api.herokuapp.com
//
//     Consumes:
//     - application/json
//
//     Produces:
//     - application/json
//
//     Security:
//     - bearer
//
//    SecurityDefinitions:
//    basic:
//      type: basic
//    bearer:
//      type: apiKey
//      name: Authorization
//      in: header
//
// swagger:meta
package docs

import (
	"github.com/linesmerrill/safedesk-api/api"
	"github.com/linesmerrill/safedesk-api/api/handlers"
	"github.com/linesmerrill/safedesk-api/models"
)

// swagger:route GET /health health healthEndpointID
// Lists the healthchex of the web service api.
// responses:
//   200: healthResponse

// Shows the current health of the api. true means it is alive, false means it is not.
// swagger:response healthResponse
type healthResponseWrapper struct {
	// in:body
	Body models.HealthCheckResponse
}

// swagger:route POST /api/v1/auth/token auth createToken
// Exchanges HTTP basic credentials for a bearer token.
// security:
//   basic:
// responses:
//   200: tokenResponse
//   401: errorResponse

// A signed access token and its expiry
// swagger:response tokenResponse
type tokenResponseWrapper struct {
	// in:body
	Body api.TokenResponse
}

// swagger:route POST /api/v1/auth/register auth register
// Creates an employee account.
// responses:
//   201: registerResponse
//   400: errorResponse
//   409: errorResponse

// swagger:parameters register
type registerParamsWrapper struct {
	// in:body
	Body handlers.RegisterRequest
}

// The new account and its first access token
// swagger:response registerResponse
type registerResponseWrapper struct {
	// in:body
	Body handlers.RegisterResponse
}

// swagger:route GET /api/v1/chat/session/start chat startSession
// Returns the caller's active chat session, creating one when none exists.
// responses:
//   200: chatSessionResponse
//   401: errorResponse

// swagger:route POST /api/v1/chat/message chat sendMessage
// Sends a message in the caller's chat session and returns the updated session.
// responses:
//   200: chatSessionResponse
//   400: errorResponse
//   404: errorResponse

// swagger:parameters sendMessage
type sendMessageParamsWrapper struct {
	// in:body
	Body handlers.MessageRequest
}

// A chat session with its transcript, case analysis and recommended lawyer
// swagger:response chatSessionResponse
type chatSessionResponseWrapper struct {
	// in:body
	Body models.ChatSession
}

// swagger:route GET /api/v1/chat/lawyers chat listLawyers
// Lists active lawyers, optionally filtered by specialization and availability.
// responses:
//   200: lawyersResponse

// swagger:response lawyersResponse
type lawyersResponseWrapper struct {
	// in:body
	Body handlers.LawyersResponse
}

// swagger:route POST /api/v1/complaints complaints createComplaint
// Files an anonymous complaint. The description is triaged and the priority derived from its severity when not supplied.
// responses:
//   201: complaintCreatedResponse
//   400: errorResponse

// swagger:parameters createComplaint
type createComplaintParamsWrapper struct {
	// in:body
	Body handlers.CreateComplaintRequest
}

// The anonymous id to track the complaint with
// swagger:response complaintCreatedResponse
type complaintCreatedResponseWrapper struct {
	// in:body
	Body handlers.ComplaintCreatedResponse
}

// swagger:route GET /api/v1/complaints/{anonymous_id} complaints complaintByAnonymousID
// Gets a single complaint by its anonymous id.
// responses:
//   200: complaintResponse
//   404: errorResponse

// swagger:parameters complaintByAnonymousID
type complaintByAnonymousIDParamsWrapper struct {
	// in:path
	AnonymousID string `json:"anonymous_id"`
}

// swagger:response complaintResponse
type complaintResponseWrapper struct {
	// in:body
	Body models.Complaint
}

// swagger:route GET /api/v1/complaints/forum/posts complaints forumPosts
// Lists complaints approved for the public forum.
// responses:
//   200: complaintListResponse

// swagger:response complaintListResponse
type complaintListResponseWrapper struct {
	// in:body
	Body handlers.ComplaintListResponse
}

// swagger:response errorResponse
type errorResponseWrapper struct {
	// in:body
	Body models.ErrorMessageResponse
}
