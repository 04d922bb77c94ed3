// Package procscan runs a child process, relays one of its output streams to
// the parent's console in real time, and scans a bounded tail of that stream
// for structured result lines once the child exits cleanly.
//
// Build tools emit long-running progress that humans want to watch live, but
// the machine-readable result (a produced wheel path) is a single status line
// near the end of the stream. Relaying chunks as they arrive preserves the
// live view; the capped tail buffer keeps memory flat on verbose builds while
// retaining enough trailing context for extraction.
package procscan

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"regexp"

	"rocm-tools/go/pkg/buildlog"
)

// Stream selects which child output stream is captured and scanned. The
// other stream inherits the parent's, so there is never a second pipe for
// the child to block on while the parent reads the first.
type Stream int

const (
	Stdout Stream = iota
	Stderr
)

const (
	// TailCapacity is the number of trailing characters retained for
	// pattern extraction.
	TailCapacity = 20000

	// chunkSize bounds each pipe read so relayed output appears promptly.
	chunkSize = 512
)

// ExitError reports a child process that exited nonzero. No pattern
// extraction is attempted in that case.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("child process exited with nonzero result: rc=%d", e.Code)
}

// NoMatchError reports a clean child exit whose output contained no line
// matching the expected pattern. Captured holds the retained tail for
// diagnosis.
type NoMatchError struct {
	Captured string
}

func (e *NoMatchError) Error() string {
	return "no expected output found in child process output"
}

// Spec describes one child-process run.
type Spec struct {
	Argv    []string
	Env     []string // nil inherits the parent environment
	Dir     string
	Capture Stream
	Pattern *regexp.Regexp

	// Relay overrides the parent stream the captured output is mirrored
	// to. Nil selects os.Stdout or os.Stderr to match Capture.
	Relay io.Writer
}

// Run executes spec.Argv to completion, mirroring the captured stream live,
// and returns the Pattern submatches found in the retained tail, in order of
// appearance. The first capture group of each match is returned, or the whole
// match when the pattern has no groups.
func Run(ctx context.Context, log buildlog.Logger, spec Spec) ([]string, error) {
	if len(spec.Argv) == 0 {
		return nil, errors.New("procscan: empty argv")
	}

	cmd := exec.CommandContext(ctx, spec.Argv[0], spec.Argv[1:]...)
	cmd.Dir = spec.Dir
	cmd.Env = spec.Env
	cmd.Stdin = os.Stdin

	var pipe io.ReadCloser
	var relay io.Writer
	var err error
	switch spec.Capture {
	case Stderr:
		pipe, err = cmd.StderrPipe()
		cmd.Stdout = os.Stdout
		relay = os.Stderr
	default:
		pipe, err = cmd.StdoutPipe()
		cmd.Stderr = os.Stderr
		relay = os.Stdout
	}
	if err != nil {
		return nil, err
	}
	if spec.Relay != nil {
		relay = spec.Relay
	}

	log.Info("process", "start", "progress", "Running child process", "argv", fmt.Sprintf("%q", spec.Argv), "cwd", spec.Dir)

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting %s: %w", spec.Argv[0], err)
	}

	tail := NewTailBuffer(TailCapacity)
	chunk := make([]byte, chunkSize)
	for {
		n, rerr := pipe.Read(chunk)
		if n > 0 {
			relay.Write(chunk[:n])
			tail.Write(chunk[:n])
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			cmd.Wait()
			return nil, fmt.Errorf("reading child output: %w", rerr)
		}
	}

	if err := cmd.Wait(); err != nil {
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			return nil, &ExitError{Code: ee.ExitCode()}
		}
		return nil, err
	}

	text := tail.String()
	matches := spec.Pattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		log.Error("process", "scan", "notfound", "No expected output found in child process output", "captured", text)
		return nil, &NoMatchError{Captured: text}
	}

	results := make([]string, 0, len(matches))
	for _, m := range matches {
		if len(m) > 1 {
			results = append(results, m[1])
		} else {
			results = append(results, m[0])
		}
	}
	return results, nil
}
