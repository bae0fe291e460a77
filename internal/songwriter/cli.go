package songwriter

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os/exec"
	"time"
)

// DefaultTool is the CLI executable used when none is configured.
const DefaultTool = "gemini"

// CLIGenerator shells out to an AI CLI tool, passing the whole prompt as
// the single argument and reading the song from stdout.
type CLIGenerator struct {
	tool    string
	timeout time.Duration
	logger  *slog.Logger
}

// CLIOption configures a CLIGenerator.
type CLIOption func(*CLIGenerator)

// WithCLITimeout bounds a single generation. Zero keeps generation time
// unbounded, which is the default.
func WithCLITimeout(d time.Duration) CLIOption {
	return func(g *CLIGenerator) { g.timeout = d }
}

// WithCLILogger configures structured logging.
func WithCLILogger(l *slog.Logger) CLIOption {
	return func(g *CLIGenerator) { g.logger = l }
}

// NewCLIGenerator creates a generator that runs tool, or DefaultTool when
// tool is empty.
func NewCLIGenerator(tool string, opts ...CLIOption) *CLIGenerator {
	g := &CLIGenerator{tool: tool}
	if g.tool == "" {
		g.tool = DefaultTool
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return g
}

// Generate runs the tool and returns its stdout unmodified. A missing
// executable yields a *ToolNotFoundError; a failed run yields a
// *ToolExitError carrying the captured stderr.
func (g *CLIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, g.tool, prompt)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	g.logger.Debug("invoking generator tool", "tool", g.tool, "prompt_chars", len(prompt))
	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			return "", &ToolNotFoundError{Tool: g.tool}
		}
		return "", &ToolExitError{Tool: g.tool, Stderr: stderr.String(), Err: err}
	}
	return stdout.String(), nil
}
