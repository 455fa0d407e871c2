// Package alert provides the phase-completion cues.
package alert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
	"sync"
	"time"
)

// Alert plays a completion cue. It matches timer.Alert.
type Alert interface {
	Play() error
}

// Noop plays nothing.
type Noop struct{}

func (Noop) Play() error { return nil }

// Bell rings the terminal bell by writing BEL to W.
type Bell struct {
	mu sync.Mutex
	W  io.Writer
}

func NewBell(w io.Writer) *Bell {
	return &Bell{W: w}
}

func (b *Bell) Play() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.W == nil {
		return nil
	}
	if _, err := io.WriteString(b.W, "\a"); err != nil {
		return fmt.Errorf("ringing bell: %w", err)
	}
	return nil
}

// DefaultCommandTimeout bounds how long a sound command may run.
const DefaultCommandTimeout = 30 * time.Second

// Command runs a shell command such as "aplay -q done.wav" in the
// background. Play only reports failures to start; a non-zero exit is
// logged.
type Command struct {
	Line    string
	Timeout time.Duration
	Logger  *slog.Logger

	// wg tracks running commands so tests can wait for them.
	wg sync.WaitGroup
}

func NewCommand(line string, logger *slog.Logger) *Command {
	return &Command{Line: line, Timeout: DefaultCommandTimeout, Logger: logger}
}

func (c *Command) Play() error {
	line := strings.TrimSpace(c.Line)
	if line == "" {
		return nil
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultCommandTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	cmd := exec.CommandContext(ctx, "sh", "-c", line)
	if err := cmd.Start(); err != nil {
		cancel()
		return fmt.Errorf("starting alert command: %w", err)
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer cancel()
		if err := cmd.Wait(); err != nil && c.Logger != nil {
			c.Logger.Warn("alert command failed", "command", line, "error", err.Error())
		}
	}()
	return nil
}

// Wait blocks until every started command has exited.
func (c *Command) Wait() {
	c.wg.Wait()
}

// Multi plays every alert in order and joins their errors.
type Multi []Alert

func (m Multi) Play() error {
	var errs []error
	for _, a := range m {
		if a == nil {
			continue
		}
		if err := a.Play(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Options selects which cues New combines.
type Options struct {
	Bell    bool
	Command string
}

// New builds the configured alert. With nothing enabled it returns Noop.
func New(opts Options, terminal io.Writer, logger *slog.Logger) Alert {
	var m Multi
	if opts.Bell && terminal != nil {
		m = append(m, NewBell(terminal))
	}
	if strings.TrimSpace(opts.Command) != "" {
		m = append(m, NewCommand(opts.Command, logger))
	}
	switch len(m) {
	case 0:
		return Noop{}
	case 1:
		return m[0]
	default:
		return m
	}
}
