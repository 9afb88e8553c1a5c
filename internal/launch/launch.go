// Package launch invokes a resolved target through an ordered chain of
// platform-specific methods. Each method is bounded by a timeout; a failed
// or timed-out method hands over to the next. The chain is a sequence of
// different strategies, never a retry of the same one.
package launch

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"summon-cli/internal/target"
)

// Runner executes external commands. Tests substitute it to force method
// failures without spawning processes.
type Runner interface {
	// Run starts the command and waits for it to exit within the timeout.
	Run(ctx context.Context, timeout time.Duration, name string, args ...string) error
	// Start launches the command detached and does not wait.
	Start(ctx context.Context, name string, args ...string) error
}

// method is one launch strategy in a fallback chain.
type method struct {
	name string
	run  func(ctx context.Context) error
}

// Attempt records one tried method and its outcome.
type Attempt struct {
	Method string
	Err    error
}

// Result reports a successful launch and what was tried on the way there.
type Result struct {
	Method   string
	Attempts []Attempt
}

// AllFailedError is returned when every method in the chain failed. It is a
// reportable outcome, never a panic.
type AllFailedError struct {
	Target   string
	Attempts []Attempt
}

func (e *AllFailedError) Error() string {
	names := make([]string, len(e.Attempts))
	for i, a := range e.Attempts {
		names[i] = a.Method
	}
	return fmt.Sprintf("all launch methods failed for %q (tried: %s)", e.Target, strings.Join(names, ", "))
}

// Launcher builds and runs the fallback chain for the current platform.
type Launcher struct {
	goos    string
	timeout time.Duration
	runner  Runner
	logger  *log.Logger
}

// Options configures a Launcher. Zero values select the running platform, a
// 10 second per-attempt timeout, and the real subprocess runner.
type Options struct {
	GOOS    string
	Timeout time.Duration
	Runner  Runner
	Logger  *log.Logger
}

func New(opts Options) *Launcher {
	l := &Launcher{
		goos:    opts.GOOS,
		timeout: opts.Timeout,
		runner:  opts.Runner,
		logger:  opts.Logger,
	}
	if l.goos == "" {
		l.goos = runtime.GOOS
	}
	if l.timeout <= 0 {
		l.timeout = 10 * time.Second
	}
	if l.runner == nil {
		l.runner = execRunner{}
	}
	if l.logger == nil {
		l.logger = log.Default()
	}
	return l
}

// Launch tries each method for t in order until one succeeds. On success
// the result names the winning method and every earlier attempt; on
// exhaustion the error carries the full attempt list.
func (l *Launcher) Launch(ctx context.Context, t target.Target) (*Result, error) {
	methods := l.methods(t)
	if len(methods) == 0 {
		return nil, &AllFailedError{Target: t.Name}
	}

	var attempts []Attempt
	for _, m := range methods {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		err := m.run(ctx)
		attempts = append(attempts, Attempt{Method: m.name, Err: err})
		if err == nil {
			return &Result{Method: m.name, Attempts: attempts}, nil
		}
		l.logger.Warn("launch method failed", "target", t.Name, "method", m.name, "err", err)
	}
	return nil, &AllFailedError{Target: t.Name, Attempts: attempts}
}

func (l *Launcher) methods(t target.Target) []method {
	switch l.goos {
	case "darwin":
		return l.darwinMethods(t)
	case "linux":
		return l.linuxMethods(t)
	case "windows":
		return l.windowsMethods(t)
	default:
		return nil
	}
}
