package gstinspect

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"strings"
	"time"

	"gstcatalog/internal/services"
)

const component = "gstinspect"

// DefaultBinary is the tool name looked up on PATH when none is configured.
const DefaultBinary = "gst-inspect-1.0"

// ErrEmptyOutput reports a successful run that printed nothing.
var ErrEmptyOutput = errors.New("gst-inspect produced no output")

// Executor abstracts command execution for testability. env holds extra
// KEY=VALUE pairs layered over the process environment.
type Executor interface {
	Run(ctx context.Context, binary string, args []string, env []string) ([]byte, error)
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// WithLocale forces LC_ALL for every run so flag words come out in a known language.
func WithLocale(locale string) Option {
	return func(c *Client) {
		c.locale = strings.TrimSpace(locale)
	}
}

// WithTimeout bounds each run. Zero or negative disables the limit.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// Client wraps gst-inspect CLI interactions.
type Client struct {
	binary  string
	locale  string
	timeout time.Duration
	exec    Executor
}

// New constructs a gst-inspect client. An empty binary selects DefaultBinary.
func New(binary string, opts ...Option) *Client {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = DefaultBinary
	}
	client := &Client{
		binary: binary,
		exec:   commandExecutor{},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Binary returns the executable the client runs.
func (c *Client) Binary() string {
	return c.binary
}

// Dump prints the report of every installed element.
func (c *Client) Dump(ctx context.Context) (string, error) {
	return c.run(ctx, "dump", "--print-all")
}

// Inspect prints the report of a single element.
func (c *Client) Inspect(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", services.Wrap(services.ErrConfiguration, component, "inspect", "element name required", nil)
	}
	return c.run(ctx, "inspect "+name, name)
}

// Version returns the first line of the tool's --version output.
func (c *Client) Version(ctx context.Context) (string, error) {
	out, err := c.run(ctx, "version", "--version")
	if err != nil {
		return "", err
	}
	line, _, _ := strings.Cut(strings.TrimSpace(out), "\n")
	return strings.TrimSpace(line), nil
}

func (c *Client) run(ctx context.Context, operation string, args ...string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	runCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var env []string
	if c.locale != "" {
		env = append(env, "LC_ALL="+c.locale)
	}

	out, err := c.exec.Run(runCtx, c.binary, args, env)
	if err != nil {
		switch {
		case errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist):
			return "", services.Wrap(services.ErrNotFound, component, operation, fmt.Sprintf("binary %q not found", c.binary), err)
		case errors.Is(runCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil:
			return "", services.Wrap(services.ErrTimeout, component, operation, fmt.Sprintf("exceeded %s", c.timeout), err)
		case ctx.Err() != nil:
			return "", ctx.Err()
		}
		return "", services.Wrap(services.ErrExternalTool, component, operation, "", err)
	}
	if len(bytes.TrimSpace(out)) == 0 {
		return "", services.Wrap(services.ErrExternalTool, component, operation, "", ErrEmptyOutput)
	}
	return string(out), nil
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string, env []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if detail := strings.TrimSpace(stderr.String()); detail != "" {
			return out, fmt.Errorf("%w: %s", err, firstLine(detail))
		}
		return out, err
	}
	return out, nil
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return strings.TrimSpace(line)
}
