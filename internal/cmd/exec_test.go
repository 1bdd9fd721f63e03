package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/raphi011/gitc/internal/log"
)

func logCtx() context.Context {
	l := log.New(&bytes.Buffer{}, false, false)
	return log.WithLogger(context.Background(), l)
}

func TestRunContext_Success(t *testing.T) {
	t.Parallel()
	if err := RunContext(logCtx(), "", "true"); err != nil {
		t.Errorf("RunContext(true) = %v, want nil", err)
	}
}

func TestRunContext_Failure(t *testing.T) {
	t.Parallel()
	if err := RunContext(logCtx(), "", "sh", "-c", "exit 1"); err == nil {
		t.Error("RunContext(exit 1) = nil, want error")
	}
}

func TestRunContext_StderrMessage(t *testing.T) {
	t.Parallel()
	err := RunContext(logCtx(), "", "sh", "-c", "echo 'bad thing' >&2; exit 1")
	if err == nil {
		t.Fatal("RunContext = nil, want error")
	}
	if err.Error() != "bad thing" {
		t.Errorf("RunContext error = %q, want %q", err.Error(), "bad thing")
	}
}

func TestRunContext_NotFound(t *testing.T) {
	t.Parallel()
	err := RunContext(logCtx(), "", "definitely-not-a-real-binary-xyz")
	if err == nil {
		t.Fatal("RunContext = nil, want error")
	}
	if !strings.Contains(err.Error(), "not found in PATH") {
		t.Errorf("RunContext error = %q, want not-found message", err.Error())
	}
}

func TestRunContext_ContextCancelled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(logCtx())
	cancel()
	err := RunContext(ctx, "", "sleep", "10")
	if err != context.Canceled {
		t.Errorf("RunContext error = %v, want context.Canceled", err)
	}
}

func TestRunContext_Timeout(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(logCtx(), 50*time.Millisecond)
	defer cancel()
	err := RunContext(ctx, "", "sleep", "10")
	if err != context.DeadlineExceeded {
		t.Errorf("RunContext error = %v, want context.DeadlineExceeded", err)
	}
}

func TestRunContext_Dir(t *testing.T) {
	t.Parallel()
	if err := RunContext(logCtx(), t.TempDir(), "pwd"); err != nil {
		t.Errorf("RunContext with dir = %v, want nil", err)
	}
}

func TestOutputContext_Success(t *testing.T) {
	t.Parallel()
	out, err := OutputContext(logCtx(), "", "echo", "hello")
	if err != nil {
		t.Fatalf("OutputContext(echo hello) = %v, want nil", err)
	}
	if got := string(out); got != "hello\n" {
		t.Errorf("OutputContext output = %q, want %q", got, "hello\n")
	}
}

func TestOutputContext_StderrMessage(t *testing.T) {
	t.Parallel()
	_, err := OutputContext(logCtx(), "", "sh", "-c", "echo 'error msg' >&2; exit 1")
	if err == nil {
		t.Fatal("OutputContext = nil, want error")
	}
	if err.Error() != "error msg" {
		t.Errorf("OutputContext error = %q, want %q", err.Error(), "error msg")
	}
}

func TestOutputContext_VerboseEchoesCommand(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	ctx := log.WithLogger(context.Background(), log.New(&buf, true, false))
	if _, err := OutputContext(ctx, "", "echo", "hi"); err != nil {
		t.Fatalf("OutputContext = %v, want nil", err)
	}
	if !strings.Contains(buf.String(), "$ echo hi") {
		t.Errorf("verbose log = %q, want command echo", buf.String())
	}
}
