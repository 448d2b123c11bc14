package apply

import (
	"bytes"
	"io"
	"os/exec"
	"strings"
)

// execResult captures stdout and stderr emitted by a command run.
type execResult struct {
	Stdout string
	Stderr string
}

// runCaptured runs cmd, teeing output into any writers already set on it while collecting
// both streams for the result.
func runCaptured(cmd *exec.Cmd) (execResult, error) {
	var stdoutBuf, stderrBuf bytes.Buffer

	if cmd.Stdout != nil {
		cmd.Stdout = io.MultiWriter(cmd.Stdout, &stdoutBuf)
	} else {
		cmd.Stdout = &stdoutBuf
	}
	if cmd.Stderr != nil {
		cmd.Stderr = io.MultiWriter(cmd.Stderr, &stderrBuf)
	} else {
		cmd.Stderr = &stderrBuf
	}

	err := cmd.Run()
	return execResult{
		Stdout: strings.TrimSpace(stdoutBuf.String()),
		Stderr: strings.TrimSpace(stderrBuf.String()),
	}, err
}

// primaryOutput returns stderr if present, otherwise stdout.
func primaryOutput(res execResult) string {
	if res.Stderr != "" {
		return res.Stderr
	}
	return res.Stdout
}

func combinedOutput(res execResult) string {
	switch {
	case res.Stdout == "":
		return res.Stderr
	case res.Stderr == "":
		return res.Stdout
	default:
		return res.Stdout + "\n" + res.Stderr
	}
}
