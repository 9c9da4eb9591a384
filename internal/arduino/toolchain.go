package arduino

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/tyr-firmware/tyr/internal/config"
	"github.com/tyr-firmware/tyr/internal/logging"
	"github.com/tyr-firmware/tyr/internal/runner"
)

// Commander runs toolchain command lines. *runner.Runner implements it.
type Commander interface {
	Run(ctx context.Context, argv []string, failureMessage string) (*runner.Result, error)
	RunJSON(ctx context.Context, argv []string, failureMessage string, v any) (*runner.Result, error)
}

// VersionInfo is the JSON document printed by `arduino-cli version --format json`.
type VersionInfo struct {
	Application   string `json:"Application"`
	VersionString string `json:"VersionString"`
	Commit        string `json:"Commit"`
	Status        string `json:"Status"`
	Date          string `json:"Date"`
}

// CompileOptions are the inputs of a single sketch compilation.
type CompileOptions struct {
	// BoardType is the fully qualified board name passed to -b
	BoardType string
	// BuildProperty is passed verbatim as one --build-property argument
	BuildProperty string
	// OutputDir receives the built images
	OutputDir string
	// SketchPath is the sketch directory to compile
	SketchPath string
}

// Toolchain invokes arduino-cli.
type Toolchain struct {
	cliPath string
	cmd     Commander
	logger  *zap.Logger
}

// NewToolchain returns a Toolchain that runs cliPath through cmd.
func NewToolchain(cliPath string, cmd Commander, logger *zap.Logger) *Toolchain {
	if cliPath == "" {
		cliPath = config.DefaultCLIPath
	}
	logger = logging.OrNop(logger)
	return &Toolchain{
		cliPath: cliPath,
		cmd:     cmd,
		logger:  logger,
	}
}

// CLIPath returns the binary the toolchain invokes.
func (t *Toolchain) CLIPath() string {
	return t.cliPath
}

// CheckInstall verifies the toolchain binary runs and reports its version.
func (t *Toolchain) CheckInstall(ctx context.Context) (*VersionInfo, error) {
	var info VersionInfo
	argv := []string{t.cliPath, "version", "--format", "json"}

	_, err := t.cmd.RunJSON(ctx, argv, t.cliPath+" not found, please download and install it from "+InstallURL, &info)
	if err != nil {
		var cmdErr *runner.CommandError
		if errors.As(err, &cmdErr) {
			return nil, &PrerequisiteError{
				Prerequisite: t.cliPath,
				Details:      fmt.Sprintf("Install arduino-cli from %s or point cli_path at it with set-config --arduino-cli-path", InstallURL),
				Err:          err,
			}
		}
		return nil, fmt.Errorf("unexpected %s version output: %w", t.cliPath, err)
	}

	t.logger.Debug("toolchain found",
		zap.String("cli_path", t.cliPath),
		zap.String("version", info.VersionString),
		zap.String("commit", info.Commit),
	)

	return &info, nil
}

// ListBoards runs `board list` and returns its output.
func (t *Toolchain) ListBoards(ctx context.Context) (*runner.Result, error) {
	return t.cmd.Run(ctx, []string{t.cliPath, "board", "list"},
		"No devices found, please connect a device and try again")
}

// CompileArgs returns the argv for compiling opts.
func (t *Toolchain) CompileArgs(opts CompileOptions) []string {
	return []string{
		t.cliPath,
		"compile",
		"-e",
		"-b", opts.BoardType,
		"--build-property", opts.BuildProperty,
		"--output-dir", opts.OutputDir,
		opts.SketchPath,
	}
}

// Compile builds the sketch described by opts.
func (t *Toolchain) Compile(ctx context.Context, opts CompileOptions) (*runner.Result, error) {
	t.logger.Info("compiling sketch",
		zap.String("board", opts.BoardType),
		zap.String("sketch", opts.SketchPath),
		zap.String("output_dir", opts.OutputDir),
	)
	t.logger.Debug("build property", zap.String("value", opts.BuildProperty))

	return t.cmd.Run(ctx, t.CompileArgs(opts), "Failed to compile image")
}
