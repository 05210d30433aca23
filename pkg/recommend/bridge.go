// Package recommend bridges filmdesk to the external recommendation
// engine. The engine is a separate process reached through a file-based
// request/response protocol: the bridge drops a request artifact naming
// the target user, invokes the engine synchronously, then reads the
// response artifact it produced.
package recommend

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"

	"github.com/filmdesk/filmdesk/pkg/errors"
	"github.com/filmdesk/filmdesk/pkg/logging"
	"github.com/filmdesk/filmdesk/pkg/persist"
)

// DefaultTimeout bounds a single engine invocation. Expiry is reported
// as an external process error.
const DefaultTimeout = 30 * time.Second

// Request is the request artifact written for the engine.
type Request struct {
	Target string `json:"target"`
}

// Recommendation is a single entry of the engine's response. Only the
// title is rendered; extra fields the engine emits are ignored.
type Recommendation struct {
	Title string `json:"title"`
}

// Response is the response artifact produced by the engine.
type Response struct {
	Target          string           `json:"target"`
	Recommendations []Recommendation `json:"recommendations"`
}

// Runner invokes the external recommendation process and returns its
// captured standard error. Implementations must block until the process
// exits or ctx expires.
type Runner interface {
	Run(ctx context.Context) (stderr string, err error)
}

// execRunner runs the real engine binary.
type execRunner struct {
	path string
}

// Run executes the engine binary, capturing stderr and exit status.
func (r *execRunner) Run(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, r.path)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stderr.String(), err
}

// Bridge drives one request/response exchange with the engine.
type Bridge struct {
	requestPath  string
	responsePath string
	runner       Runner
	command      string
	timeout      time.Duration
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithRunner replaces the process runner, letting tests bypass the real
// executable.
func WithRunner(runner Runner) Option {
	return func(b *Bridge) {
		b.runner = runner
	}
}

// WithTimeout overrides the invocation timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(b *Bridge) {
		if timeout > 0 {
			b.timeout = timeout
		}
	}
}

// NewBridge creates a bridge around the engine binary at binPath,
// exchanging artifacts at requestPath and responsePath.
func NewBridge(binPath, requestPath, responsePath string, opts ...Option) *Bridge {
	bridge := &Bridge{
		requestPath:  requestPath,
		responsePath: responsePath,
		runner:       &execRunner{path: binPath},
		command:      binPath,
		timeout:      DefaultTimeout,
	}
	for _, opt := range opts {
		opt(bridge)
	}
	return bridge
}

// SubmitRequest writes the request artifact for the target user.
func (b *Bridge) SubmitRequest(target string) error {
	data, err := json.Marshal(Request{Target: target})
	if err != nil {
		return errors.NewPersistenceError("encode", b.requestPath, err)
	}
	if err := os.MkdirAll(filepath.Dir(b.requestPath), persist.DirPermissions); err != nil {
		return errors.NewPersistenceError("create", filepath.Dir(b.requestPath), err)
	}
	if err := os.WriteFile(b.requestPath, data, persist.FilePermissions); err != nil {
		return errors.NewPersistenceError("write", b.requestPath, err)
	}
	return nil
}

// AwaitResponse reads and parses the response artifact. A missing or
// unparsable artifact is a protocol violation.
func (b *Bridge) AwaitResponse() (*Response, error) {
	data, err := os.ReadFile(b.responsePath)
	if err != nil {
		return nil, errors.NewProtocolError(b.responsePath, "response artifact missing", err)
	}

	var response Response
	if err := json.Unmarshal(data, &response); err != nil {
		return nil, errors.NewProtocolError(b.responsePath, "response artifact is not valid JSON", err)
	}
	return &response, nil
}

// Recommend runs a full exchange for the target user and returns the
// recommended entries. An empty list is a valid "no results" outcome,
// distinct from any error: callers should render it differently from a
// failure.
func (b *Bridge) Recommend(ctx context.Context, target string) ([]Recommendation, error) {
	if err := b.SubmitRequest(target); err != nil {
		return nil, err
	}

	runCtx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	logging.Ctx(ctx).Debug().
		Str("target", target).
		Str("command", b.command).
		Msg("Invoking recommendation engine")

	stderr, err := b.runner.Run(runCtx)
	if err != nil {
		if runCtx.Err() == context.DeadlineExceeded {
			return nil, errors.NewProcessError("recommendation", b.command, stderr, errors.ErrTimeout)
		}
		procErr := errors.NewProcessError("recommendation", b.command, stderr, err)
		if exitErr, ok := err.(*exec.ExitError); ok {
			procErr.ExitCode = exitErr.ExitCode()
		}
		return nil, procErr
	}

	response, err := b.AwaitResponse()
	if err != nil {
		return nil, err
	}
	if response.Recommendations == nil {
		return []Recommendation{}, nil
	}
	return response.Recommendations, nil
}
