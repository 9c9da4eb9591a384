package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"

	"github.com/tyr-firmware/tyr/internal/logging"
)

const (
	dirName    = ".tyr"
	configFile = "config.toml"
)

// DefaultPath returns <home>/.tyr/config.toml, creating the .tyr directory
// if it does not exist yet.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}

	dir := filepath.Join(home, dirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", &IOError{Op: "create directory", Path: dir, Err: err}
	}

	return filepath.Join(dir, configFile), nil
}

// Store reads and writes one configuration file.
type Store struct {
	path   string
	logger *zap.Logger
}

// NewStore returns a Store backed by the file at path.
func NewStore(path string, logger *zap.Logger) *Store {
	logger = logging.OrNop(logger)
	return &Store{
		path:   path,
		logger: logger,
	}
}

// OpenDefault returns a Store on DefaultPath.
func OpenDefault(logger *zap.Logger) (*Store, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return NewStore(path, logger), nil
}

// Path returns the file backing the store.
func (s *Store) Path() string {
	return s.path
}

// Load reads the configuration. When the file does not exist the defaults
// are written to the store path and returned.
func (s *Store) Load() (*Config, error) {
	s.logger.Debug("loading config", zap.String("path", s.path))

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg := Default(s.home())
		s.logger.Info("config file does not exist, creating it", zap.String("path", s.path))
		if err := s.Save(cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	if err != nil {
		return nil, &IOError{Op: "read", Path: s.path, Err: err}
	}

	var cfg Config
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, &ParseError{Path: s.path, Err: err}
	}
	if !md.IsDefined("family") {
		return nil, &ParseError{Path: s.path, Err: errors.New(`missing required key "family"`)}
	}

	for _, key := range md.Undecoded() {
		s.logger.Debug("ignoring unknown config key",
			zap.String("path", s.path),
			zap.String("key", key.String()),
		)
	}

	if cfg.Arduino.CLIPath == "" {
		cfg.Arduino.CLIPath = DefaultCLIPath
	}

	return &cfg, nil
}

// Save serializes cfg and replaces the store file with it.
func (s *Store) Save(cfg *Config) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return &IOError{Op: "create directory", Path: dir, Err: err}
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return &IOError{Op: "encode", Path: s.path, Err: err}
	}

	s.logger.Debug("writing config", zap.String("path", s.path))

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, buf.Bytes(), 0644); err != nil {
		return &IOError{Op: "write", Path: tmpPath, Err: err}
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return &IOError{Op: "write", Path: s.path, Err: err}
	}

	return nil
}

// Set loads the current configuration, applies u and saves the result.
func (s *Store) Set(u Update) (*Config, error) {
	cfg, err := s.Load()
	if err != nil {
		return nil, err
	}

	for _, field := range u.Apply(cfg) {
		s.logger.Info("setting config value", zap.String("key", field))
	}

	if err := s.Save(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// BoardType reloads the configuration and returns arduino.board_type.
func (s *Store) BoardType() (string, error) {
	cfg, err := s.Load()
	if err != nil {
		return "", err
	}
	return cfg.Arduino.BoardType, nil
}

// SketchPath reloads the configuration and returns arduino.sketch_path.
func (s *Store) SketchPath() (string, error) {
	cfg, err := s.Load()
	if err != nil {
		return "", err
	}
	return cfg.Arduino.SketchPath, nil
}

// DevicesPath reloads the configuration and returns arduino.devices_path.
func (s *Store) DevicesPath() (string, error) {
	cfg, err := s.Load()
	if err != nil {
		return "", err
	}
	return cfg.Arduino.DevicesPath, nil
}

// home anchors default paths. It falls back to the directory above the
// config directory when the user home cannot be resolved.
func (s *Store) home() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return filepath.Dir(filepath.Dir(s.path))
}
