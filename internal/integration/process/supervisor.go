package process

import (
	"context"
	"errors"
	"os/exec"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/google/uuid"
)

// Supervisor starts interpreter processes and keeps track of the live ones
// so they can be stopped on shutdown. It is safe for concurrent use.
type Supervisor struct {
	mu   sync.Mutex
	live map[string]*Process
	// reaped is signalled whenever a process leaves live.
	reaped *sync.Cond

	closed  atomic.Bool
	spawned atomic.Int64

	waitDelay time.Duration
	onExit    func(*Process)
}

// SupervisorOption configures a Supervisor.
type SupervisorOption func(*Supervisor)

// WithWaitDelay sets how long a process's output pipes may stay open after
// the process itself is gone, e.g. while a grandchild still holds them.
func WithWaitDelay(d time.Duration) SupervisorOption {
	return func(s *Supervisor) {
		s.waitDelay = d
	}
}

// WithExitHook sets a function called once for every process after it has
// been reaped. It runs on the supervisor's goroutine; panics are recovered.
func WithExitHook(fn func(*Process)) SupervisorOption {
	return func(s *Supervisor) {
		s.onExit = fn
	}
}

// NewSupervisor creates a supervisor.
func NewSupervisor(opts ...SupervisorOption) *Supervisor {
	s := &Supervisor{
		live:      make(map[string]*Process),
		waitDelay: time.Second,
	}
	s.reaped = sync.NewCond(&s.mu)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start starts cmd under a fresh id, as the leader of a new process group
// so that signals reach everything it spawns. A nil Stdin reads from the
// null device. It fails with ErrSupervisorShutdown after Shutdown and with
// a *LaunchError when the command cannot be started.
func (s *Supervisor) Start(name string, cmd *exec.Cmd) (*Process, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed.Load() {
		return nil, ErrSupervisorShutdown
	}
	if cmd.WaitDelay == 0 {
		cmd.WaitDelay = s.waitDelay
	}
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.Setpgid = true
	cmd.SysProcAttr.Pgid = 0

	proc := NewProcess(uuid.NewString(), name, cmd)
	if err := proc.start(); err != nil {
		return nil, err
	}
	s.spawned.Add(1)
	s.live[proc.ID] = proc

	go s.reap(proc)
	return proc, nil
}

// Run starts cmd and blocks until it exits or ctx is done. When ctx ends
// first the process group is killed, Run waits for the process to be
// reaped, and ctx.Err() is returned. The exit status itself is not an
// error; inspect the returned Process.
func (s *Supervisor) Run(ctx context.Context, name string, cmd *exec.Cmd) (*Process, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	proc, err := s.Start(name, cmd)
	if err != nil {
		return nil, err
	}

	select {
	case <-proc.Done():
		return proc, nil
	case <-ctx.Done():
		_ = proc.Kill()
		<-proc.Done()
		return proc, ctx.Err()
	}
}

func (s *Supervisor) reap(proc *Process) {
	<-proc.Done()

	if s.onExit != nil {
		func() {
			defer func() { _ = recover() }()
			s.onExit(proc)
		}()
	}

	s.mu.Lock()
	delete(s.live, proc.ID)
	s.reaped.Broadcast()
	s.mu.Unlock()
}

// Count returns the number of processes not yet reaped.
func (s *Supervisor) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.live)
}

// Spawned returns the number of processes started since creation.
func (s *Supervisor) Spawned() int64 {
	return s.spawned.Load()
}

func (s *Supervisor) snapshot() []*Process {
	s.mu.Lock()
	defer s.mu.Unlock()
	procs := make([]*Process, 0, len(s.live))
	for _, p := range s.live {
		procs = append(procs, p)
	}
	return procs
}

// Shutdown stops accepting new processes, sends SIGTERM to the live ones
// and waits up to timeout before sending SIGKILL. It returns once every
// process has been reaped. Calling it again does nothing.
func (s *Supervisor) Shutdown(timeout time.Duration) {
	if s.closed.Swap(true) {
		return
	}

	procs := s.snapshot()
	for _, p := range procs {
		_ = p.Terminate()
	}

	grace := time.NewTimer(timeout)
	defer grace.Stop()
	for _, p := range procs {
		select {
		case <-p.Done():
		case <-grace.C:
			for _, q := range procs {
				_ = q.Kill()
			}
			<-p.Done()
		}
	}

	s.mu.Lock()
	for len(s.live) > 0 {
		s.reaped.Wait()
	}
	s.mu.Unlock()
}

// IsShuttingDown reports whether Shutdown has been called.
func (s *Supervisor) IsShuttingDown() bool {
	return s.closed.Load()
}

// ErrSupervisorShutdown is returned by Start after Shutdown.
var ErrSupervisorShutdown = errors.New("supervisor is shutting down")
