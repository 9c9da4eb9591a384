// Package manufacture builds per-device firmware images.
package manufacture

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/tyr-firmware/tyr/internal/arduino"
	"github.com/tyr-firmware/tyr/internal/config"
	"github.com/tyr-firmware/tyr/internal/descriptor"
	"github.com/tyr-firmware/tyr/internal/inventory"
	"github.com/tyr-firmware/tyr/internal/logging"
	"github.com/tyr-firmware/tyr/internal/lorawan"
	"github.com/tyr-firmware/tyr/internal/runner"
)

// UnsupportedFamilyError reports a command that needs a family other than
// the active one.
type UnsupportedFamilyError struct {
	Family config.Family
}

func (e *UnsupportedFamilyError) Error() string {
	return fmt.Sprintf("device family %q is not supported for this command", e.Family)
}

// PathError reports a configured path that does not exist.
type PathError struct {
	// Key is the configuration key, e.g. devices_path
	Key  string
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%s %s is not usable: %v", e.Key, e.Path, e.Err)
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// ImageResult describes a finished compilation.
type ImageResult struct {
	DeviceID  string
	OutputDir string
	// Flags is the assembled --build-property value
	Flags  string
	Result *runner.Result
}

// Service runs manufacture operations against one configuration snapshot.
type Service struct {
	cfg       *config.Config
	toolchain *arduino.Toolchain
	logger    *zap.Logger
}

// NewService returns a Service.
func NewService(cfg *config.Config, toolchain *arduino.Toolchain, logger *zap.Logger) *Service {
	logger = logging.OrNop(logger)
	return &Service{
		cfg:       cfg,
		toolchain: toolchain,
		logger:    logger,
	}
}

// CreateImage compiles the sketch for deviceID with the flags derived from
// its descriptor. When creds is non-nil its entries are appended after the
// descriptor's network entries. Credentials are validated before any
// subprocess is started.
func (s *Service) CreateImage(ctx context.Context, deviceID string, creds *lorawan.Credentials) (*ImageResult, error) {
	if s.cfg.Family != config.FamilyArduino {
		return nil, &UnsupportedFamilyError{Family: s.cfg.Family}
	}

	if creds != nil {
		if err := creds.Validate(); err != nil {
			return nil, err
		}
	}

	devicesPath := s.cfg.Arduino.DevicesPath
	if _, err := os.Stat(devicesPath); err != nil {
		return nil, &PathError{Key: "devices_path", Path: devicesPath, Err: err}
	}
	sketchPath := s.cfg.Arduino.SketchPath
	if _, err := os.Stat(sketchPath); err != nil {
		return nil, &PathError{Key: "sketch_path", Path: sketchPath, Err: err}
	}

	outputDir := inventory.DeviceDir(devicesPath, deviceID)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create device directory %s: %w", outputDir, err)
	}

	d, err := descriptor.Load(deviceID, inventory.DescriptorPath(devicesPath, deviceID))
	if err != nil {
		return nil, err
	}
	if creds != nil {
		d.NetworkConfig = append(d.NetworkConfig, creds.Entries()...)
	}
	flags := descriptor.Assemble(d)

	s.logger.Debug("assembled build flags",
		zap.String("device_id", deviceID),
		zap.String("flags", flags),
	)

	if _, err := s.toolchain.CheckInstall(ctx); err != nil {
		return nil, err
	}

	result, err := s.toolchain.Compile(ctx, arduino.CompileOptions{
		BoardType:     s.cfg.Arduino.BoardType,
		BuildProperty: flags,
		OutputDir:     outputDir,
		SketchPath:    sketchPath,
	})
	if err != nil {
		return nil, err
	}

	return &ImageResult{
		DeviceID:  deviceID,
		OutputDir: outputDir,
		Flags:     flags,
		Result:    result,
	}, nil
}

// ListDevices returns the toolchain's board list output verbatim.
func (s *Service) ListDevices(ctx context.Context) (*runner.Result, error) {
	if s.cfg.Family != config.FamilyArduino {
		return nil, &UnsupportedFamilyError{Family: s.cfg.Family}
	}
	return s.toolchain.ListBoards(ctx)
}
