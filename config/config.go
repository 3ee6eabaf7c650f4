package config

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/linesmerrill/safedesk-api/models"
)

// Config holds the project config values
type Config struct {
	URL          string
	DatabaseName string
	BaseURL      string
	Port         string
	Env          string

	JWTSecret      string
	JWTTTL         time.Duration
	RequestTimeout time.Duration

	SendgridAPIKey  string
	DigestSender    string
	DigestRecipient string
	DigestSchedule  string

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	CloudinaryFolder    string
}

// New sets up all config related services
func New() *Config {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	conf := &Config{
		URL:          v.GetString("DB_URI"),
		DatabaseName: v.GetString("DB_NAME"),
		BaseURL:      v.GetString("BASE_URL"),
		Port:         v.GetString("PORT"),
		Env:          v.GetString("ENV"),

		JWTSecret:      v.GetString("JWT_SECRET"),
		JWTTTL:         v.GetDuration("JWT_TTL"),
		RequestTimeout: v.GetDuration("REQUEST_TIMEOUT"),

		SendgridAPIKey:  v.GetString("SENDGRID_API_KEY"),
		DigestSender:    v.GetString("DIGEST_SENDER"),
		DigestRecipient: v.GetString("DIGEST_RECIPIENT"),
		DigestSchedule:  v.GetString("DIGEST_SCHEDULE"),

		CloudinaryCloudName: v.GetString("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    v.GetString("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: v.GetString("CLOUDINARY_API_SECRET"),
		CloudinaryFolder:    v.GetString("CLOUDINARY_FOLDER"),
	}

	//setup zap logger and replace default logger
	logger, err := setLogger(conf.Env)
	if err != nil {
		logger = zap.NewExample()
	}
	_ = zap.ReplaceGlobals(logger)

	return conf
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("DB_NAME", "safedesk")
	v.SetDefault("BASE_URL", "http://localhost:8081")
	v.SetDefault("PORT", "8081")
	v.SetDefault("ENV", "local")
	v.SetDefault("JWT_TTL", 7*24*time.Hour)
	v.SetDefault("REQUEST_TIMEOUT", 10*time.Second)
	v.SetDefault("DIGEST_SENDER", "no-reply@safedesk.app")
	v.SetDefault("DIGEST_SCHEDULE", "0 7 * * *")
	v.SetDefault("CLOUDINARY_FOLDER", "complaint-evidence")
}

// ErrorStatus is a useful function that will log, write http headers and body for a
// give message, status code and err
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	errText := ""
	if err != nil {
		errText = err.Error()
	}
	zap.S().Errorw(message, "status", httpStatusCode, "error", errText)

	b, _ := json.Marshal(models.ErrorMessageResponse{Response: models.MessageError{Message: message, Error: errText}})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatusCode)
	_, _ = w.Write(b)
}
