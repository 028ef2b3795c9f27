package process

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"
	"syscall"
	"time"
)

// State is where a process is in its life.
type State int

const (
	StateCreated State = iota
	StateRunning
	StateExited // exited on its own, with any status
	StateKilled // ended by a signal
)

var stateNames = [...]string{"created", "running", "exited", "killed"}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("unknown(%d)", s)
}

// Exit describes how a process ended.
type Exit struct {
	// Code is the exit status, or -1 when the process was killed by a
	// signal or the status could not be read.
	Code int
	// Signaled is true when a signal ended the process.
	Signaled bool
	// Err is the error returned by Wait; nil for a zero status. It is
	// exec.ErrWaitDelay when the process exited but a descendant kept its
	// output open past the supervisor's wait delay.
	Err error
	// At is when the process was reaped.
	At time.Time
}

// Process is one supervised interpreter run. It is safe for concurrent use.
type Process struct {
	ID      string
	Name    string
	Cmd     *exec.Cmd
	Started time.Time

	done chan struct{}

	mu    sync.Mutex
	state State
	exit  Exit
}

// NewProcess wraps cmd, which must not be started yet. Start it through a
// Supervisor.
func NewProcess(id, name string, cmd *exec.Cmd) *Process {
	return &Process{
		ID:   id,
		Name: name,
		Cmd:  cmd,
		done: make(chan struct{}),
		exit: Exit{Code: -1},
	}
}

// State returns the current state.
func (p *Process) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// IsRunning reports whether the process has started and not been reaped.
func (p *Process) IsRunning() bool {
	return p.State() == StateRunning
}

// Exit returns how the process ended. ok is false until it has.
func (p *Process) Exit() (exit Exit, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.exit, p.state == StateExited || p.state == StateKilled
}

// ExitCode returns the exit status, or -1 before exit and after a signal.
func (p *Process) ExitCode() int {
	exit, _ := p.Exit()
	return exit.Code
}

// Done is closed once the process has been reaped.
func (p *Process) Done() <-chan struct{} {
	return p.done
}

// PID returns the operating system process id, or -1 before start.
func (p *Process) PID() int {
	if p.Cmd.Process == nil {
		return -1
	}
	return p.Cmd.Process.Pid
}

// Signal delivers sig. When the process leads its own process group the
// whole group is signalled, so programs it started go with it. A process
// that exited in the meantime is not an error.
func (p *Process) Signal(sig os.Signal) error {
	if !p.IsRunning() {
		return fmt.Errorf("signal %s: %w", p.Name, ErrProcessNotStarted)
	}
	if s, ok := sig.(syscall.Signal); ok && p.leadsGroup() {
		err := syscall.Kill(-p.Cmd.Process.Pid, s)
		if errors.Is(err, syscall.ESRCH) {
			return nil
		}
		return err
	}
	err := p.Cmd.Process.Signal(sig)
	if errors.Is(err, os.ErrProcessDone) {
		return nil
	}
	return err
}

func (p *Process) leadsGroup() bool {
	attr := p.Cmd.SysProcAttr
	return attr != nil && attr.Setpgid && attr.Pgid == 0
}

// Kill sends SIGKILL.
func (p *Process) Kill() error {
	return p.Signal(syscall.SIGKILL)
}

// Terminate sends SIGTERM.
func (p *Process) Terminate() error {
	return p.Signal(syscall.SIGTERM)
}

// Runtime returns how long the process has run, frozen once it is reaped.
func (p *Process) Runtime() time.Duration {
	if p.Started.IsZero() {
		return 0
	}
	if exit, ok := p.Exit(); ok {
		return exit.At.Sub(p.Started)
	}
	return time.Since(p.Started)
}

func (p *Process) start() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != StateCreated {
		return ErrProcessAlreadyStarted
	}
	if err := p.Cmd.Start(); err != nil {
		return &LaunchError{Name: p.Cmd.Path, Err: err}
	}
	p.Started = time.Now()
	p.state = StateRunning
	go p.wait()
	return nil
}

// wait reaps the process and records its exit.
func (p *Process) wait() {
	err := p.Cmd.Wait()
	exit := Exit{Code: -1, Err: err, At: time.Now()}
	state := StateExited

	// ProcessState is set whenever the process was reaped, even when Wait
	// also reports an error about its output.
	if ps := p.Cmd.ProcessState; ps != nil {
		exit.Code = ps.ExitCode()
		if ws, ok := ps.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
			exit.Signaled = true
			state = StateKilled
		}
	}

	// A descendant outlived the process and held its output open. The
	// group still exists, so the id cannot have been reused.
	if errors.Is(err, exec.ErrWaitDelay) && p.leadsGroup() {
		_ = syscall.Kill(-p.Cmd.Process.Pid, syscall.SIGKILL)
	}

	p.mu.Lock()
	p.exit = exit
	p.state = state
	p.mu.Unlock()
	close(p.done)
}

// LaunchError reports an interpreter that could not be started, typically
// because it is missing or not executable.
type LaunchError struct {
	Name string
	Err  error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("start %s: %v", e.Name, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

var (
	ErrProcessNotStarted     = errors.New("process not running")
	ErrProcessAlreadyStarted = errors.New("process already started")
)
