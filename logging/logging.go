package logging

import "go.uber.org/zap"

// New creates a named zap logger for command line tools that run outside the API process
func New(name string) *zap.SugaredLogger {
	logger, err := zap.NewDevelopment()
	if err != nil {
		logger = zap.NewExample()
	}
	return logger.Named(name).Sugar()
}
