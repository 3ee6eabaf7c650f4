package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/linesmerrill/safedesk-api/api"
	"github.com/linesmerrill/safedesk-api/config"
	"github.com/linesmerrill/safedesk-api/databases/mocks"
	"github.com/linesmerrill/safedesk-api/models"
)

var a App

func executeRequest(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	a.Router.ServeHTTP(rr, req)
	return rr
}

func checkResponseCode(t *testing.T, expected, actual int) {
	if expected != actual {
		t.Errorf("Expected response code %d. Got %d\n", expected, actual)
	}
}

// withUserDB points the app at a users collection that always returns user
func withUserDB(user models.User) {
	db := &mocks.DatabaseHelper{}
	conn := &mocks.CollectionHelper{}
	sr := &mocks.SingleResultHelper{}

	sr.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.User)
		**arg = user
	})
	conn.On("FindOne", mock.Anything, mock.Anything).Return(sr)
	db.On("Collection", "users").Return(conn)

	a = App{Config: config.Config{JWTSecret: "secret", JWTTTL: time.Hour}, dbHelper: db}
}

func bearer(t *testing.T, user models.User) string {
	token, _, err := api.NewTokenIssuer("secret", time.Hour).Issue(user)
	if err != nil {
		t.Fatal(err)
	}
	return "Bearer " + token
}

func TestUnknownRoute(t *testing.T) {
	a = App{}
	a.Router = a.New()
	req, _ := http.NewRequest("GET", "/asdf", nil)
	response := executeRequest(req)

	checkResponseCode(t, http.StatusNotFound, response.Code)
}

func TestHealthCheckRoute(t *testing.T) {
	a = App{}
	a.Router = a.New()
	req, _ := http.NewRequest("GET", "/health", nil)
	response := executeRequest(req)

	checkResponseCode(t, http.StatusOK, response.Code)

	if !strings.Contains(response.Body.String(), "alive") {
		t.Errorf("Expected 'alive' in the reponse. Got '%s'", response.Body.String())
	}
}

func TestMetricsRoute(t *testing.T) {
	a = App{}
	a.Router = a.New()
	executeRequest(httptest.NewRequest("GET", "/api/v1/chat/history", nil))

	response := executeRequest(httptest.NewRequest("GET", "/metrics", nil))

	checkResponseCode(t, http.StatusOK, response.Code)
	if !strings.Contains(response.Body.String(), `safedesk_http_requests_total{method="GET",path="/api/v1/chat/history",status_code="401"} 1`) {
		t.Errorf("Expected request counter in the response. Got '%s'", response.Body.String())
	}
}

func TestApp_ChatUnauthorized(t *testing.T) {
	a = App{}
	a.Router = a.New()
	req, _ := http.NewRequest("GET", "/api/v1/chat/session/start", nil)
	response := executeRequest(req)

	checkResponseCode(t, http.StatusUnauthorized, response.Code)
}

func TestApp_ChatInvalidToken(t *testing.T) {
	a = App{Config: config.Config{JWTSecret: "secret", JWTTTL: time.Hour}}
	a.Router = a.New()
	req, _ := http.NewRequest("GET", "/api/v1/chat/session/start", nil)
	req.Header.Add("Authorization", "Bearer asdfasdf")
	response := executeRequest(req)

	checkResponseCode(t, http.StatusUnauthorized, response.Code)
}

func TestApp_AdminRouteForbiddenForEmployee(t *testing.T) {
	employee := models.User{ID: primitive.NewObjectID(), Details: models.UserDetails{Email: "sam@example.com", Role: models.UserRoleEmployee, IsActive: true}}
	withUserDB(employee)
	a.Router = a.New()

	req, _ := http.NewRequest("GET", "/api/v1/complaints/statistics", nil)
	req.Header.Add("Authorization", bearer(t, employee))
	response := executeRequest(req)

	checkResponseCode(t, http.StatusForbidden, response.Code)
}

func TestApp_UserManagementForbiddenForEmployee(t *testing.T) {
	employee := models.User{ID: primitive.NewObjectID(), Details: models.UserDetails{Email: "sam@example.com", Role: models.UserRoleEmployee, IsActive: true}}
	withUserDB(employee)
	a.Router = a.New()

	for _, method := range []string{"GET", "PUT", "DELETE"} {
		req, _ := http.NewRequest(method, "/api/v1/users/"+employee.ID.Hex(), nil)
		req.Header.Add("Authorization", bearer(t, employee))
		response := executeRequest(req)

		checkResponseCode(t, http.StatusForbidden, response.Code)
	}
}

func TestApp_ProfileWithToken(t *testing.T) {
	employee := models.User{ID: primitive.NewObjectID(), Details: models.UserDetails{Email: "sam@example.com", Role: models.UserRoleEmployee, IsActive: true}}
	withUserDB(employee)
	a.Router = a.New()

	req, _ := http.NewRequest("GET", "/api/v1/auth/profile", nil)
	req.Header.Add("Authorization", bearer(t, employee))
	response := executeRequest(req)

	checkResponseCode(t, http.StatusOK, response.Code)
	if !strings.Contains(response.Body.String(), "sam@example.com") {
		t.Errorf("Expected the email in the response. Got '%s'", response.Body.String())
	}
}
