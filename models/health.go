package models

// HealthCheckResponse is the body returned by the health endpoint
type HealthCheckResponse struct {
	Alive bool `json:"alive"`
}
