package eniresolver

import (
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ResolverConfig describes environment configuration for the resolver function
type ResolverConfig struct {
	ExpectedType      string        `env:"ENIRESOLVER_EXPECTED_TYPE" envDefault:"net"`
	DescriptionPrefix string        `env:"ENIRESOLVER_DESCRIPTION_PREFIX" envDefault:"ELB "`
	LogLevel          zapcore.Level `env:"ENIRESOLVER_LOG_LEVEL" envDefault:"info"`
	CallbackTimeout   time.Duration `env:"ENIRESOLVER_CALLBACK_TIMEOUT" envDefault:"30s"`
	Region            string        `env:"AWS_REGION"`
}

// LoadResolverConfig reads configuration from the environment and validates it
func LoadResolverConfig() (*ResolverConfig, error) {
	var config ResolverConfig

	err := env.Parse(&config)

	if err != nil {
		return nil, errors.Wrap(err, "couldn't parse environment config")
	}

	err = initialiseResolverConfig(&config)

	if err != nil {
		return nil, err
	}

	return &config, nil
}

func initialiseResolverConfig(config *ResolverConfig) error {
	if config.ExpectedType == "" {
		return errors.New("ENIRESOLVER_EXPECTED_TYPE must not be empty")
	}

	if config.CallbackTimeout <= 0 {
		return errors.Errorf("invalid callback timeout %v; must be positive", config.CallbackTimeout)
	}

	return nil
}

// NewLogger builds a JSON production logger at the configured level, suitable
// for CloudWatch Logs
func NewLogger(config *ResolverConfig) (*zap.Logger, error) {
	zapConfig := zap.NewProductionConfig()
	zapConfig.Level = zap.NewAtomicLevelAt(config.LogLevel)

	logger, err := zapConfig.Build()

	if err != nil {
		return nil, errors.Wrap(err, "couldn't build logger")
	}

	return logger, nil
}
