package encode

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// ExternalToolError reports a failed or timed out external tool run.
type ExternalToolError struct {
	Tool     string
	Args     []string
	ExitCode int // -1 when the tool did not exit normally
	Stderr   string
	Err      error
}

func (e *ExternalToolError) Error() string {
	msg := fmt.Sprintf("running %s %s", e.Tool, strings.Join(e.Args, " "))
	if e.ExitCode >= 0 {
		msg += fmt.Sprintf(": exit status %d", e.ExitCode)
	} else {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

func (e *ExternalToolError) Unwrap() error {
	return e.Err
}

// Run executes an external tool and waits for it. A non-zero exit status,
// a failure to start, or exceeding timeout is an *ExternalToolError. A zero
// timeout means no limit beyond ctx.
func Run(ctx context.Context, timeout time.Duration, tool string, args ...string) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, tool, args...)
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}

	terr := &ExternalToolError{Tool: tool, Args: args, ExitCode: -1, Stderr: stderr.String(), Err: err}
	if ctxErr := ctx.Err(); ctxErr != nil {
		terr.Err = ctxErr
		return terr
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		terr.ExitCode = exitErr.ExitCode()
	}
	return terr
}
