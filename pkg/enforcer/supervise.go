// Copyright 2026 The secharness Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package enforcer

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"os/exec"
	"time"

	"github.com/secharness/secharness/pkg/enforcerdef"
)

// DefaultTimeout bounds a child's lifetime unless the session overrides it.
const DefaultTimeout = time.Second

// SupervisionError reports a failure of the harness itself — spawning,
// waiting on or setting up the child — as opposed to an expectation
// mismatch. It is fatal to the single test that hit it, never to the
// process, and the child (if any) has been reaped by the time it is
// returned.
type SupervisionError struct {
	Op  string
	Err error
}

// Error implements error.
func (e *SupervisionError) Error() string {
	return "supervision: " + e.Op + ": " + e.Err.Error()
}

// Unwrap supports errors.Is/As.
func (e *SupervisionError) Unwrap() error {
	return e.Err
}

// supervise spawns one runner child for req, waits for it under the
// session's timeout and returns its termination outcome. Exactly one of the
// return values is meaningful. On every path, including timeout and wait
// failure, the child has been reaped before supervise returns; nothing is
// left in the process table.
func (s *Session) supervise(req enforcerdef.Request) (ChildOutcome, error) {
	reqData, err := json.Marshal(&req)
	if err != nil {
		return ChildOutcome{}, &SupervisionError{Op: "encode request", Err: err}
	}

	path := s.RunnerPath
	if path == "" {
		path, err = os.Executable()
		if err != nil {
			return ChildOutcome{}, &SupervisionError{Op: "locate runner", Err: err}
		}
	}

	var stderr bytes.Buffer
	cmd := exec.Command(path)
	cmd.Env = append(os.Environ(), enforcerdef.ChildEnv+"=1")
	cmd.Stdin = bytes.NewReader(reqData)
	cmd.Stderr = &stderr
	if err := cmd.Start(); err != nil {
		return ChildOutcome{}, &SupervisionError{Op: "spawn", Err: err}
	}
	log.Debugf("spawned child %d for body %q", cmd.Process.Pid, req.Body)

	// The waiter goroutine is the sole reaper. Every return path below
	// this point receives from done exactly once, so the child can neither
	// be reaped twice nor leaked — including when it died before we get
	// here: Wait observes that termination all the same.
	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case waitErr := <-done:
		if stderr.Len() > 0 {
			log.Debugf("child %d stderr: %s", cmd.Process.Pid, stderr.String())
		}
		var exitErr *exec.ExitError
		if waitErr != nil && !errors.As(waitErr, &exitErr) {
			// Wait itself failed; the process has still been released.
			return ChildOutcome{}, &SupervisionError{Op: "wait", Err: waitErr}
		}
		o := outcomeFromState(cmd.ProcessState)
		log.Debugf("child %d: %v", cmd.Process.Pid, o)
		return o, nil
	case <-timer.C:
		// Forcible, unconditional termination; the waiter still performs
		// the reap.
		_ = cmd.Process.Kill()
		<-done
		log.Debugf("child %d timed out after %v", cmd.Process.Pid, timeout)
		return ChildOutcome{Cause: CauseTimeout, Pid: cmd.Process.Pid}, nil
	}
}
