package gateways

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"

	"github.com/ochairo/playport/internal/domain/interfaces"
)

// outputTailBytes is how much installer output is kept for error messages
const outputTailBytes = 4096

// ExecCommandRunner runs external programs with os/exec
type ExecCommandRunner struct {
	output io.Writer
	logger interfaces.Logger
}

// NewExecCommandRunner creates a command runner. When output is non-nil the
// program's stdout and stderr are streamed to it as well.
func NewExecCommandRunner(output io.Writer, logger interfaces.Logger) *ExecCommandRunner {
	return &ExecCommandRunner{
		output: output,
		logger: interfaces.OrNoOp(logger),
	}
}

// Run executes name with args in dir and waits for it. A non-zero exit status is
// an error carrying the tail of the program's output.
func (r *ExecCommandRunner) Run(ctx context.Context, dir, name string, args ...string) error {
	//nolint:gosec // G204: Command and arguments come from the provider catalog
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	tail := &tailBuffer{limit: outputTailBytes}
	var sink io.Writer = tail
	if r.output != nil {
		sink = io.MultiWriter(tail, r.output)
	}
	cmd.Stdout = sink
	cmd.Stderr = sink

	r.logger.Debug("running command",
		interfaces.F("dir", dir),
		interfaces.F("command", name+" "+strings.Join(args, " ")))

	err := cmd.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	//nolint:gocritic // ifElseChain: checking different error types, not suitable for switch
	if errors.As(err, &exitErr) {
		return fmt.Errorf("%s exited with status %d: %s", name, exitErr.ExitCode(), tail.String())
	} else if ctx.Err() != nil {
		return fmt.Errorf("%s interrupted: %w", name, ctx.Err())
	} else {
		return fmt.Errorf("failed to start %s: %w", name, err)
	}
}

// tailBuffer keeps the last limit bytes written to it
type tailBuffer struct {
	mu    sync.Mutex
	limit int
	buf   []byte
}

func (b *tailBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.buf = append(b.buf, p...)
	if over := len(b.buf) - b.limit; over > 0 {
		b.buf = b.buf[over:]
	}
	return len(p), nil
}

func (b *tailBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return strings.TrimSpace(string(b.buf))
}
