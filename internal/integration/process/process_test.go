package process

import (
	"errors"
	"os/exec"
	"syscall"
	"testing"
	"time"
)

func startProcess(t *testing.T, name string, args ...string) *Process {
	t.Helper()
	proc := NewProcess("test-id", name, exec.Command(name, args...))
	if err := proc.start(); err != nil {
		t.Fatalf("start %s: %v", name, err)
	}
	t.Cleanup(func() {
		_ = proc.Kill()
		<-proc.Done()
	})
	return proc
}

func waitDone(t *testing.T, proc *Process) {
	t.Helper()
	select {
	case <-proc.Done():
	case <-time.After(5 * time.Second):
		t.Fatalf("%s did not exit", proc.Name)
	}
}

func TestNewProcess(t *testing.T) {
	proc := NewProcess("test-id", "echo", exec.Command("echo", "hello"))

	if proc.State() != StateCreated {
		t.Errorf("state = %v, want created", proc.State())
	}
	if proc.ExitCode() != -1 || proc.PID() != -1 || proc.Runtime() != 0 {
		t.Errorf("unstarted process: code %d pid %d runtime %v", proc.ExitCode(), proc.PID(), proc.Runtime())
	}
	if _, ok := proc.Exit(); ok {
		t.Error("Exit() reported an exit before start")
	}
	if err := proc.Signal(syscall.SIGTERM); !errors.Is(err, ErrProcessNotStarted) {
		t.Errorf("Signal() before start = %v, want ErrProcessNotStarted", err)
	}
}

func TestProcess_Exit(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantErr  bool
	}{
		{"success", []string{"-c", "exit 0"}, 0, false},
		{"failure", []string{"-c", "exit 1"}, 1, true},
		{"exit 42", []string{"-c", "exit 42"}, 42, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			proc := startProcess(t, "sh", tt.args...)
			if proc.PID() <= 0 {
				t.Errorf("PID() = %d after start", proc.PID())
			}
			waitDone(t, proc)

			exit, ok := proc.Exit()
			if !ok {
				t.Fatal("Exit() not ok after Done")
			}
			if exit.Code != tt.wantCode || proc.ExitCode() != tt.wantCode {
				t.Errorf("code = %d, want %d", exit.Code, tt.wantCode)
			}
			if (exit.Err != nil) != tt.wantErr {
				t.Errorf("Err = %v, want error %v", exit.Err, tt.wantErr)
			}
			if exit.Signaled || proc.State() != StateExited {
				t.Errorf("state = %v signaled = %v, want a plain exit", proc.State(), exit.Signaled)
			}
		})
	}
}

func TestProcess_StartTwice(t *testing.T) {
	proc := startProcess(t, "true")
	if err := proc.start(); !errors.Is(err, ErrProcessAlreadyStarted) {
		t.Errorf("second start = %v, want ErrProcessAlreadyStarted", err)
	}
}

func TestProcess_StartMissingExecutable(t *testing.T) {
	proc := NewProcess("test-id", "missing", exec.Command("definitely-not-an-interpreter-xyz"))

	err := proc.start()
	var launchErr *LaunchError
	if !errors.As(err, &launchErr) {
		t.Fatalf("start() = %v, want *LaunchError", err)
	}
	if !errors.Is(err, exec.ErrNotFound) {
		t.Errorf("start() = %v, want wrapped exec.ErrNotFound", err)
	}
	if proc.State() != StateCreated {
		t.Errorf("failed start left state %v", proc.State())
	}
}

func TestProcess_Signals(t *testing.T) {
	tests := []struct {
		name string
		stop func(*Process) error
	}{
		{"terminate", (*Process).Terminate},
		{"kill", (*Process).Kill},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			proc := startProcess(t, "sleep", "10")
			if err := tt.stop(proc); err != nil {
				t.Fatalf("%s: %v", tt.name, err)
			}
			waitDone(t, proc)

			exit, _ := proc.Exit()
			if proc.State() != StateKilled || !exit.Signaled || exit.Code != -1 {
				t.Errorf("state = %v exit = %+v, want killed by a signal", proc.State(), exit)
			}
			if err := proc.Kill(); !errors.Is(err, ErrProcessNotStarted) {
				t.Errorf("Kill() after exit = %v", err)
			}
		})
	}
}

func TestProcess_Runtime(t *testing.T) {
	proc := startProcess(t, "sleep", "0.1")
	waitDone(t, proc)

	total := proc.Runtime()
	if total < 100*time.Millisecond {
		t.Errorf("runtime = %v, want at least 100ms", total)
	}
	time.Sleep(20 * time.Millisecond)
	if proc.Runtime() != total {
		t.Error("runtime must be frozen after exit")
	}
}

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateCreated, "created"},
		{StateRunning, "running"},
		{StateExited, "exited"},
		{StateKilled, "killed"},
		{State(99), "unknown(99)"},
		{State(-1), "unknown(-1)"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}
