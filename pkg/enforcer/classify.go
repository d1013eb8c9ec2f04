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
	"fmt"

	"golang.org/x/sys/unix"
)

// KillSignal is the signal the kernel delivers when a seccomp filter kills
// a process for an illegal syscall.
const KillSignal = unix.SIGSYS

// EnforceError is an expectation mismatch from a single enforcement run.
type EnforceError struct {
	// Outcome is the child termination that failed the expectation.
	Outcome ChildOutcome
	// Reason is the single diagnostic line for the failure.
	Reason string
}

// Error implements error.
func (e *EnforceError) Error() string {
	return e.Reason
}

func failf(o ChildOutcome, format string, args ...any) *EnforceError {
	return &EnforceError{Outcome: o, Reason: fmt.Sprintf(format, args...)}
}

// Classify compares a child outcome against the caller's expectation and
// returns nil on a pass, or an *EnforceError carrying the diagnostic on a
// failure.
//
// The checks deliberately overlap and run in a fixed order, because several
// classifications derive from the same (cause, status-or-signal) pair and
// the order decides which diagnostic a test author sees first. In
// particular, a non-zero exit is reported before a wrong-signal complaint
// even when shouldKill is set. Every branch is pinned by tests; do not
// reorder.
func Classify(o ChildOutcome, shouldKill bool) error {
	if o.Cause == CauseTimeout {
		return failf(o, "timed out")
	}
	if o.Cause == CauseExited && o.Status != 0 {
		if shouldKill {
			return failf(o, "should be killed by seccomp; non-zero (%d) exit code instead", o.Status)
		}
		return failf(o, "non-zero (%d) exit code", o.Status)
	}
	if shouldKill && !(o.Cause == CauseKilled && o.Signal == KillSignal) {
		return failf(o, "should be killed by seccomp")
	}
	switch o.Cause {
	case CauseKilled:
		if o.Signal == KillSignal {
			if !shouldKill {
				return failf(o, "should not be killed by seccomp")
			}
		} else {
			return failf(o, "killed by signal %d", int(o.Signal))
		}
	case CauseExited:
		// Exit code 0: non-zero exits were rejected above.
	default:
		return failf(o, "not exited normally")
	}
	return nil
}
