package ffmpeg

import (
	"bytes"
	"context"
	"io"
	"os/exec"
)

// Result holds the outcome of a single ffmpeg invocation.
type Result struct {
	Stderr string
	Err    error
}

// OK reports whether the invocation succeeded.
func (r Result) OK() bool { return r.Err == nil }

// Execute runs binary with args and waits for it. Stderr is always captured;
// when tee is non-nil it is also copied there in real time. Stdout is
// discarded. A non-nil Err is always an *ExecError.
func Execute(ctx context.Context, binary string, args []string, tee io.Writer) Result {
	cmd := exec.CommandContext(ctx, binary, args...)

	var stderrBuf bytes.Buffer
	if tee != nil {
		cmd.Stderr = io.MultiWriter(&stderrBuf, tee)
	} else {
		cmd.Stderr = &stderrBuf
	}

	err := cmd.Run()
	res := Result{Stderr: stderrBuf.String()}
	if err != nil {
		res.Err = &ExecError{Err: err, Stderr: res.Stderr}
	}
	return res
}
