package main

import (
	"go.uber.org/zap"

	"github.com/tyr-firmware/tyr/internal/arduino"
	"github.com/tyr-firmware/tyr/internal/config"
	"github.com/tyr-firmware/tyr/internal/logging"
	"github.com/tyr-firmware/tyr/internal/runner"
)

// env is the state shared by one command invocation: the configuration is
// loaded once and passed down explicitly.
type env struct {
	store  *config.Store
	config *config.Config
	logger *zap.Logger
}

// openStore returns the store selected by --config, or the default one.
func openStore(logger *zap.Logger) (*config.Store, error) {
	if configPath != "" {
		return config.NewStore(configPath, logger), nil
	}
	return config.OpenDefault(logger)
}

// loadEnv opens the configuration store and loads the configuration,
// creating it with defaults on first use.
func loadEnv() (*env, error) {
	logger := logging.GetLogger()

	store, err := openStore(logger)
	if err != nil {
		return nil, err
	}
	logger.Debug("using config file", zap.String("path", store.Path()))

	cfg, err := store.Load()
	if err != nil {
		return nil, err
	}

	return &env{
		store:  store,
		config: cfg,
		logger: logger,
	}, nil
}

// toolchain returns the Arduino toolchain for the loaded configuration.
func (e *env) toolchain() *arduino.Toolchain {
	r := runner.New(shellMode, e.logger)
	return arduino.NewToolchain(e.config.Arduino.CLIPath, r, e.logger)
}
