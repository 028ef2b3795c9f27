// Package process provides child process management for the run pipeline.
//
// The process package implements a supervisor pattern: every interpreter
// run goes through a Supervisor, which tracks live processes, enforces
// cancellation, and kills stragglers on shutdown.
//
// # Supervisor
//
//	supervisor := process.NewSupervisor()
//	defer supervisor.Shutdown(5 * time.Second)
//
//	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
//	defer cancel()
//
//	var stdout, stderr bytes.Buffer
//	cmd := exec.Command("python3", "script.py")
//	cmd.Stdout, cmd.Stderr = &stdout, &stderr
//	proc, err := supervisor.Run(ctx, "run", cmd)
//
// Run blocks until the process exits or the context ends, in which case the
// process is killed before Run returns.
//
// # Process
//
// Each Process wraps an exec.Cmd with:
//
//   - Unique ID (uuid) for identification
//   - Start time and runtime tracking
//   - Exit code and killed-by-signal state
//   - Done channel for completion notification
//
// Start failures are reported as *LaunchError so callers can tell a missing
// interpreter apart from a program that ran and failed.
//
// # Thread Safety
//
// Both Supervisor and Process are safe for concurrent use.
package process
