package infra

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the application logger. Development environments get the
// human-readable console encoder, everything else JSON.
func NewLogger(env string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if env == "development" {
		cfg = zap.NewDevelopmentConfig()
	}

	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := cfg.Build(
		zap.Fields(
			zap.String("service", "betanalytix"),
			zap.String("env", env),
		),
	)
	if err != nil {
		return nil, err
	}
	return logger, nil
}
