package harness

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"
)

// writerCount is fixed by the invocation convention: the load test
// always runs a single writer thread.
const writerCount = 1

// Runner invokes the load test binary, one measurement at a time.
type Runner struct {
	BinaryPath string
	Logger     *slog.Logger
}

// NewRunner creates a Runner for the binary at binaryPath.
func NewRunner(binaryPath string, logger *slog.Logger) *Runner {
	return &Runner{
		BinaryPath: binaryPath,
		Logger:     logger.With(slog.String("tool", filepath.Base(binaryPath))),
	}
}

// ToolError reports a non-zero exit from the load test binary. It
// carries the exit code and whatever the process wrote so a failed
// measurement can be diagnosed without re-running.
type ToolError struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

func (e *ToolError) Error() string {
	return fmt.Sprintf(
		"load test exited with code %d\nstderr: %s", e.ExitCode, e.Stderr,
	)
}

// Run executes one measurement for the given variant and reader count,
// blocking until the process exits, and returns the raw report text.
// A measurement that fails cannot be partially trusted, so there is no
// retry; the error surfaces to the caller.
func (r *Runner) Run(
	ctx context.Context, variant Variant, readers int,
) (string, error) {
	cmd := exec.CommandContext(
		ctx, r.BinaryPath,
		strconv.Itoa(variant.Code()),
		strconv.Itoa(readers),
		strconv.Itoa(writerCount),
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	r.Logger.Info("running benchmark",
		slog.String("variant", variant.String()),
		slog.Int("readers", readers),
	)

	start := time.Now()

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", &ToolError{
				ExitCode: exitErr.ExitCode(),
				Stdout:   stdout.String(),
				Stderr:   stderr.String(),
			}
		}

		return "", fmt.Errorf("start %s: %w", r.BinaryPath, err)
	}

	r.Logger.Info("benchmark finished",
		slog.String("variant", variant.String()),
		slog.Int("readers", readers),
		slog.Duration("elapsed", time.Since(start)),
	)

	return stdout.String(), nil
}
