// Package runner executes the active tab's saved file with an external
// interpreter and routes the captured output to the shared output buffer.
//
// A run only ever executes what is on disk: a tab without a saved path is
// rejected with ErrNoSavedPath before any process is started, and unsaved
// edits in a saved tab are not seen by the interpreter.
//
// Output is captured fully in memory; there is no size cap, so a program
// that writes without bound exhausts memory before its timeout fires.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/encoding/unicode"

	"github.com/dshills/pyide/internal/document"
	"github.com/dshills/pyide/internal/integration/process"
	"github.com/dshills/pyide/internal/tabs"
)

// DefaultTimeout bounds a run when none is configured.
const DefaultTimeout = 30 * time.Second

// State is the pipeline's position in a run.
type State int

const (
	// StateIdle means no run has been attempted yet, or the last one
	// could not start.
	StateIdle State = iota
	// StateRunning means a process is executing.
	StateRunning
	// StateCompleted means the last run finished and its output is shown.
	StateCompleted
	// StateSaveRequired means the last attempt was rejected because the
	// tab had no saved path.
	StateSaveRequired
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateSaveRequired:
		return "save-required"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// Interpreter is the command used to execute a file. The file path is
// appended after Args.
type Interpreter struct {
	Command string
	Args    []string
}

// DefaultInterpreter runs files with python3.
var DefaultInterpreter = Interpreter{Command: "python3"}

// String returns the command line without the file argument.
func (i Interpreter) String() string {
	return strings.Join(append([]string{i.Command}, i.Args...), " ")
}

// Result describes a finished run.
type Result struct {
	Path     string
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
	// Display is the text written to the output buffer.
	Display string
}

// Pipeline runs saved files and publishes their output.
type Pipeline struct {
	tabs       *tabs.Controller
	supervisor *process.Supervisor
	logger     *slog.Logger

	interp  Interpreter
	timeout time.Duration

	// state and last may be read while a run is in progress.
	mu    sync.Mutex
	state State
	last  *Result
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithInterpreter sets the interpreter command.
func WithInterpreter(i Interpreter) Option {
	return func(p *Pipeline) {
		if i.Command != "" {
			p.interp = i
		}
	}
}

// WithTimeout sets the hard deadline for a run. Zero or negative disables it.
func WithTimeout(d time.Duration) Option {
	return func(p *Pipeline) {
		p.timeout = d
	}
}

// WithLogger sets the logger used for run events.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// New creates a pipeline for the tabs of c, starting processes through sup.
func New(c *tabs.Controller, sup *process.Supervisor, opts ...Option) *Pipeline {
	p := &Pipeline{
		tabs:       c,
		supervisor: sup,
		logger:     slog.New(slog.DiscardHandler),
		interp:     DefaultInterpreter,
		timeout:    DefaultTimeout,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// State returns the pipeline state.
func (p *Pipeline) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Last returns the most recent completed result, or nil.
func (p *Pipeline) Last() *Result {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}

func (p *Pipeline) setState(s State) {
	p.mu.Lock()
	p.state = s
	p.mu.Unlock()
}

// Interpreter returns the configured interpreter.
func (p *Pipeline) Interpreter() Interpreter { return p.interp }

// Timeout returns the configured run deadline.
func (p *Pipeline) Timeout() time.Duration { return p.timeout }

// Reconfigure applies options to an existing pipeline, e.g. after a
// configuration reload.
func (p *Pipeline) Reconfigure(opts ...Option) {
	for _, opt := range opts {
		opt(p)
	}
}

// Run executes the active tab's saved file.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	tab, err := p.tabs.Active()
	if err != nil {
		return nil, err
	}
	return p.RunTab(ctx, tab)
}

// RunTab executes the saved file of tab. It blocks until the process
// exits, ctx is done, or the timeout elapses.
func (p *Pipeline) RunTab(ctx context.Context, tab *document.Tab) (*Result, error) {
	path := p.tabs.Path(tab)
	if path == "" {
		p.setState(StateSaveRequired)
		return nil, ErrNoSavedPath
	}
	return p.RunFile(ctx, path)
}

// RunFile executes path and writes the selected output to the output
// buffer.
//
// Errors: *ProcessLaunchError when the interpreter cannot start (the output
// buffer is left alone); *ProcessExitError for a nonzero exit; an error
// wrapping context.DeadlineExceeded or context.Canceled when the run was
// cut short. In the last two cases the output buffer still shows what the
// program wrote, followed by a bracketed trailer line.
func (p *Pipeline) RunFile(ctx context.Context, path string) (*Result, error) {
	if path == "" {
		p.setState(StateSaveRequired)
		return nil, ErrNoSavedPath
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	// The program runs in its own directory, so relative paths must be
	// resolved first.
	target := path
	if abs, err := filepath.Abs(path); err == nil {
		target = abs
	}
	args := append(append([]string(nil), p.interp.Args...), target)
	cmd := exec.Command(p.interp.Command, args...)
	cmd.Dir = filepath.Dir(target)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	p.setState(StateRunning)
	p.logger.Info("run started", "path", path, "interpreter", p.interp.String(), "timeout", p.timeout)

	proc, err := p.supervisor.Run(ctx, "run "+filepath.Base(path), cmd)
	if proc == nil {
		p.setState(StateIdle)
		var launchErr *process.LaunchError
		if errors.As(err, &launchErr) {
			err = &ProcessLaunchError{Interpreter: p.interp.Command, Err: launchErr.Err}
		}
		p.logger.Error("run failed to start", "path", path, "err", err)
		return nil, err
	}

	res := &Result{
		Path:     path,
		Stdout:   decode(stdout.Bytes()),
		Stderr:   decode(stderr.Bytes()),
		ExitCode: proc.ExitCode(),
		Duration: proc.Runtime(),
	}
	res.Display = Select(res.Stdout, res.Stderr)

	var runErr error
	switch {
	case err != nil:
		res.Display = withTrailer(res.Display, terminationReason(err, p.timeout))
		runErr = fmt.Errorf("run %s: %w", path, err)
	case res.ExitCode != 0:
		if res.Stderr == "" {
			res.Display = withTrailer(res.Display, exitReason(res.ExitCode))
		}
		runErr = &ProcessExitError{Path: path, Code: res.ExitCode}
	}

	p.tabs.Output().Set(res.Display)
	p.mu.Lock()
	p.state = StateCompleted
	p.last = res
	p.mu.Unlock()

	p.logger.Info("run finished",
		"path", path,
		"exit_code", res.ExitCode,
		"duration", res.Duration,
		"stdout_bytes", stdout.Len(),
		"stderr_bytes", stderr.Len(),
	)
	return res, runErr
}

// Select picks the text to display: stderr when the program wrote anything
// to it, stdout otherwise.
func Select(stdout, stderr string) string {
	if stderr != "" {
		return stderr
	}
	return stdout
}

func withTrailer(text, trailer string) string {
	if text != "" && !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	return text + "[" + trailer + "]\n"
}

func exitReason(code int) string {
	if code < 0 {
		return "killed by signal"
	}
	return fmt.Sprintf("exit status %d", code)
}

func terminationReason(err error, timeout time.Duration) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Sprintf("terminated: timed out after %s", timeout)
	}
	return "terminated: run cancelled"
}

// decode converts process output to text. Invalid UTF-8 sequences become
// U+FFFD instead of failing the run.
func decode(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	out, err := unicode.UTF8.NewDecoder().Bytes(b)
	if err != nil {
		return strings.ToValidUTF8(string(b), "�")
	}
	return string(out)
}
