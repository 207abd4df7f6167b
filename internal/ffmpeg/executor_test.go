package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// fakeFFmpeg writes an executable shell script standing in for ffmpeg.
func fakeFFmpeg(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fake needs a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "ffmpeg")
	script := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExecute_Success(t *testing.T) {
	bin := fakeFFmpeg(t, `echo "working" >&2; exit 0`)
	res := Execute(context.Background(), bin, nil, nil)
	if !res.OK() {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if strings.TrimSpace(res.Stderr) != "working" {
		t.Errorf("Stderr = %q", res.Stderr)
	}
}

func TestExecute_FailureCapturesStderr(t *testing.T) {
	bin := fakeFFmpeg(t, `echo "Input #0, whatever" >&2; echo "Unknown encoder 'nope'" >&2; exit 1`)
	var live bytes.Buffer
	res := Execute(context.Background(), bin, nil, &live)
	if res.OK() {
		t.Fatal("expected failure")
	}
	var execErr *ExecError
	if !errors.As(res.Err, &execErr) {
		t.Fatalf("Err is %T, want *ExecError", res.Err)
	}
	var exitErr *exec.ExitError
	if !errors.As(res.Err, &exitErr) {
		t.Errorf("Err should unwrap to *exec.ExitError: %v", res.Err)
	}
	if !strings.HasSuffix(res.Err.Error(), ": Unknown encoder 'nope'") {
		t.Errorf("Err = %q, want last stderr line appended", res.Err.Error())
	}
	if !strings.Contains(live.String(), "Unknown encoder") {
		t.Errorf("tee did not receive stderr: %q", live.String())
	}
}

func TestExecute_MissingBinary(t *testing.T) {
	res := Execute(context.Background(), filepath.Join(t.TempDir(), "nope"), nil, nil)
	if res.OK() {
		t.Fatal("expected failure for a missing binary")
	}
}

func TestEngine_PassesBuiltArgs(t *testing.T) {
	dir := t.TempDir()
	argsFile := filepath.Join(dir, "args.txt")
	bin := fakeFFmpeg(t, `for a in "$@"; do echo "$a"; done > '`+argsFile+`'`)

	e := &Engine{Binary: bin}
	req := baseRequest()
	req.Overwrite = true
	if res := e.Transcode(context.Background(), req); !res.OK() {
		t.Fatalf("Transcode: %v", res.Err)
	}

	b, err := os.ReadFile(argsFile)
	if err != nil {
		t.Fatal(err)
	}
	got := strings.Split(strings.TrimSpace(string(b)), "\n")
	want := Build(req, false)
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("engine args = %v, want %v", got, want)
	}
}

func TestTail(t *testing.T) {
	stderr := "a\n\nb\r\nc\n"
	if got := Tail(stderr, 2); strings.Join(got, ",") != "b,c" {
		t.Errorf("Tail(2) = %v", got)
	}
	if got := Tail(stderr, 10); len(got) != 3 {
		t.Errorf("Tail(10) = %v", got)
	}
	if got := Tail("  \n", 3); got != nil {
		t.Errorf("Tail(blank) = %v", got)
	}
}
