package harness

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFakeTool(t *testing.T, script string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ExecutableName)
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write fake tool: %v", err)
	}

	return path
}

func TestRunnerCapturesStdout(t *testing.T) {
	path := writeFakeTool(t, "#!/bin/sh\necho \"args: $1 $2 $3\"\n")
	runner := NewRunner(path, testLogger())

	out, err := runner.Run(context.Background(), VariantMutex, 4)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// Variant code 2, 4 readers, fixed single writer.
	if !strings.Contains(out, "args: 2 4 1") {
		t.Errorf("output = %q, want args 2 4 1", out)
	}
}

func TestRunnerAtomicVariantCode(t *testing.T) {
	path := writeFakeTool(t, "#!/bin/sh\necho \"args: $1 $2 $3\"\n")
	runner := NewRunner(path, testLogger())

	out, err := runner.Run(context.Background(), VariantAtomic, 16)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if !strings.Contains(out, "args: 1 16 1") {
		t.Errorf("output = %q, want args 1 16 1", out)
	}
}

func TestRunnerNonZeroExit(t *testing.T) {
	path := writeFakeTool(t,
		"#!/bin/sh\necho partial\necho \"assertion failed\" >&2\nexit 3\n")
	runner := NewRunner(path, testLogger())

	_, err := runner.Run(context.Background(), VariantMutex, 1)
	if err == nil {
		t.Fatal("expected error for non-zero exit")
	}

	var toolErr *ToolError
	if !errors.As(err, &toolErr) {
		t.Fatalf("error type = %T, want *ToolError", err)
	}
	if toolErr.ExitCode != 3 {
		t.Errorf("exit code = %d, want 3", toolErr.ExitCode)
	}
	if !strings.Contains(toolErr.Stderr, "assertion failed") {
		t.Errorf("stderr = %q, want captured stderr", toolErr.Stderr)
	}
	if !strings.Contains(toolErr.Stdout, "partial") {
		t.Errorf("stdout = %q, want captured stdout", toolErr.Stdout)
	}
}

func TestRunnerMissingBinary(t *testing.T) {
	runner := NewRunner(
		filepath.Join(t.TempDir(), "does-not-exist"), testLogger(),
	)

	_, err := runner.Run(context.Background(), VariantMutex, 1)
	if err == nil {
		t.Fatal("expected error for missing binary")
	}

	var toolErr *ToolError
	if errors.As(err, &toolErr) {
		t.Errorf("start failure misclassified as ToolError: %v", err)
	}
}

func TestVariantCodes(t *testing.T) {
	if got := VariantMutex.Code(); got != 2 {
		t.Errorf("mutex code = %d, want 2", got)
	}
	if got := VariantAtomic.Code(); got != 1 {
		t.Errorf("atomic code = %d, want 1", got)
	}
}
