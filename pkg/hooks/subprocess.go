package hooks

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/distmeta/pkg/buildinfo"
	"github.com/matzehuels/distmeta/pkg/errors"
)

// DefaultPython is the interpreter used when Subprocess.Python is empty.
const DefaultPython = "python3"

const (
	// maxStderr bounds the diagnostic output kept in a HookError.
	maxStderr = 8 << 10

	// waitDelay bounds how long output pipes are drained after the
	// interpreter is killed, in case the backend left children behind.
	waitDelay = 2 * time.Second
)

//go:embed prepare_metadata.py
var shimSource string

// Subprocess runs hooks through a Python interpreter that has the
// pyproject_hooks package (or its predecessor pep517) installed. The
// backend and its build requirements must be importable by that
// interpreter; Subprocess never installs anything.
type Subprocess struct {
	Python string      // Interpreter path or name (default: python3)
	Env    []string    // Extra environment, appended to os.Environ()
	Logger *log.Logger // Optional; logs invocations at debug level

	// AllowWheelFallback lets pyproject_hooks build a full wheel when the
	// backend lacks the prepare-metadata hook. Off by default.
	AllowWheelFallback bool
}

// NewSubprocess returns a Subprocess using the given interpreter.
func NewSubprocess(python string) *Subprocess {
	return &Subprocess{Python: python}
}

type shimRequest struct {
	SourceDir     string   `json:"source_dir"`
	BuildBackend  string   `json:"build_backend"`
	BackendPath   []string `json:"backend_path,omitempty"`
	MetadataDir   string   `json:"metadata_dir"`
	AllowFallback bool     `json:"allow_fallback"`
}

type shimResponse struct {
	DistInfo string `json:"dist_info"`
}

// PrepareMetadata implements Caller.
//
// The interpreter is killed when ctx is cancelled. A non-zero exit yields an
// *errors.HookError carrying the tail of the interpreter's stderr; a
// missing interpreter or an unusable result yields an error coded
// HOOK_FAILED. No retry is attempted.
func (s *Subprocess) PrepareMetadata(ctx context.Context, req Request) (string, error) {
	python := s.Python
	if python == "" {
		python = DefaultPython
	}

	payload, err := json.Marshal(shimRequest{
		SourceDir:     req.SourceDir,
		BuildBackend:  req.BuildBackend,
		BackendPath:   req.BackendPath,
		MetadataDir:   req.MetadataDir,
		AllowFallback: s.AllowWheelFallback,
	})
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "encode hook request")
	}

	logger := s.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	logger.Debug("Invoking build backend", "hook", PrepareMetadataHook, "backend", req.BuildBackend, "python", python, "dir", req.SourceDir)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, python, "-c", shimSource)
	cmd.Dir = req.SourceDir
	cmd.Stdin = bytes.NewReader(payload)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay
	cmd.Env = append(os.Environ(), "DISTMETA_USER_AGENT="+buildinfo.UserAgent())
	cmd.Env = append(cmd.Env, s.Env...)

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", &errors.HookError{
				Hook:     PrepareMetadataHook,
				ExitCode: exitErr.ExitCode(),
				Stderr:   tail(stderr.String(), maxStderr),
			}
		}
		return "", errors.Wrap(errors.ErrCodeHookFailed, err, "run python interpreter %q", python)
	}

	var resp shimResponse
	if err := json.Unmarshal(bytes.TrimSpace(stdout.Bytes()), &resp); err != nil {
		return "", errors.Wrap(errors.ErrCodeHookFailed, err, "unreadable result from backend %s", req.BuildBackend)
	}
	if resp.DistInfo == "" {
		return "", errors.New(errors.ErrCodeHookFailed, "backend %s produced no metadata directory", req.BuildBackend)
	}

	logger.Debug("Build backend finished", "backend", req.BuildBackend, "dist_info", resp.DistInfo)
	return resp.DistInfo, nil
}

// tail returns at most n trailing bytes of s, trimmed.
func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n:]
}
