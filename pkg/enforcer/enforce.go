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
	"encoding/json"
	"errors"
	"fmt"

	"github.com/secharness/secharness/pkg/enforcerdef"
)

// Enforce runs the named test body inside a child sandboxed with the
// session's current filter program and checks the child's termination
// against shouldKill.
//
// If the most recent Compile failed there is no program to enforce, so no
// child is spawned and Enforce returns nil: enforcement tests for a policy
// that did not compile are skipped, not failed. Compilation failures are
// reported by Compile itself.
func (s *Session) Enforce(body string, arg any, shouldKill bool) error {
	if !s.ready {
		log.Debugf("no compiled policy; skipping enforcement of body %q", body)
		return nil
	}
	var raw json.RawMessage
	if arg != nil {
		data, err := json.Marshal(arg)
		if err != nil {
			return &SupervisionError{Op: "encode body argument", Err: err}
		}
		raw = data
	}
	o, err := s.supervise(enforcerdef.Request{Program: s.prog, Body: body, Arg: raw})
	if err != nil {
		return err
	}
	return Classify(o, shouldKill)
}

// ScriptError is an enforcement failure whose child ran the syscall batch
// executor and reported the step at which the script diverged.
type ScriptError struct {
	// Step is the 1-based index of the first mismatched invocation.
	Step int
	// Invocation is the mismatched invocation.
	Invocation enforcerdef.Invocation

	err *EnforceError
}

// Error implements error.
func (e *ScriptError) Error() string {
	return fmt.Sprintf("%s; script diverged at step %d: %v", e.err.Reason, e.Step, e.Invocation)
}

// Unwrap exposes the underlying EnforceError.
func (e *ScriptError) Unwrap() error {
	return e.err
}

// EnforceScript runs the syscall batch executor over script inside a
// sandboxed child. When the script diverges, the returned error identifies
// the offending step.
func (s *Session) EnforceScript(script enforcerdef.Script, shouldKill bool) error {
	if len(script) > enforcerdef.MaxScriptLen {
		return &SupervisionError{
			Op:  "script",
			Err: fmt.Errorf("%d steps exceed the maximum of %d", len(script), enforcerdef.MaxScriptLen),
		}
	}
	err := s.Enforce(enforcerdef.BodyScript, script, shouldKill)
	var ee *EnforceError
	if errors.As(err, &ee) && ee.Outcome.Cause == CauseExited &&
		ee.Outcome.Status >= 1 && ee.Outcome.Status <= len(script) {
		step := ee.Outcome.Status
		return &ScriptError{Step: step, Invocation: script[step-1], err: ee}
	}
	return err
}
