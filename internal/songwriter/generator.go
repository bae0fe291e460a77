package songwriter

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Generator produces text from a prompt. Implementations wrap a local CLI
// tool or a remote completion API; the pipeline depends only on this port.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ToolNotFoundError reports that the configured CLI tool is not installed.
// Callers should prefer the predicate functions (IsToolNotFound) to inspect
// errors rather than asserting on the types directly.
type ToolNotFoundError struct {
	Tool string
}

func (e *ToolNotFoundError) Error() string {
	return fmt.Sprintf("'%s' CLI tool not found in PATH", e.Tool)
}

// IsToolNotFound reports whether err is a *ToolNotFoundError.
func IsToolNotFound(err error) bool {
	var nf *ToolNotFoundError
	return errors.As(err, &nf)
}

// ToolExitError reports a CLI tool run that failed, carrying whatever the
// tool wrote to stderr.
type ToolExitError struct {
	Tool   string
	Stderr string
	Err    error
}

func (e *ToolExitError) Error() string {
	msg := fmt.Sprintf("calling %s: %v", e.Tool, e.Err)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += "\nstderr: " + s
	}
	return msg
}

func (e *ToolExitError) Unwrap() error { return e.Err }
