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
	"os"
	"syscall"

	"golang.org/x/sys/unix"
)

// Cause describes how a supervised child terminated.
type Cause int

const (
	// CauseExited means the child exited normally; Status holds the code.
	CauseExited Cause = iota
	// CauseKilled means a signal terminated the child; Signal holds it.
	CauseKilled
	// CauseTimeout means the child outlived the supervision timeout and
	// was forcibly terminated.
	CauseTimeout
	// CauseOther means the wait status was neither a normal exit nor a
	// signal kill.
	CauseOther
)

// String implements fmt.Stringer.
func (c Cause) String() string {
	switch c {
	case CauseExited:
		return "exited"
	case CauseKilled:
		return "killed"
	case CauseTimeout:
		return "timeout"
	default:
		return "other"
	}
}

// ChildOutcome is the termination of one supervised child, produced exactly
// once per child by the supervisor and consumed by Classify.
type ChildOutcome struct {
	// Cause tags which of the remaining fields are meaningful.
	Cause Cause
	// Status is the exit code when Cause is CauseExited.
	Status int
	// Signal is the terminating signal when Cause is CauseKilled.
	Signal unix.Signal
	// Pid is the child's process ID, for diagnostics.
	Pid int
}

// String implements fmt.Stringer.
func (o ChildOutcome) String() string {
	switch o.Cause {
	case CauseExited:
		return fmt.Sprintf("exited with code %d", o.Status)
	case CauseKilled:
		return fmt.Sprintf("killed by signal %d", int(o.Signal))
	case CauseTimeout:
		return "timed out"
	default:
		return "terminated abnormally"
	}
}

// outcomeFromState translates the authoritative wait status into the
// outcome taxonomy.
func outcomeFromState(st *os.ProcessState) ChildOutcome {
	o := ChildOutcome{Pid: st.Pid()}
	ws, ok := st.Sys().(syscall.WaitStatus)
	if !ok {
		o.Cause = CauseOther
		return o
	}
	switch {
	case ws.Exited():
		o.Cause = CauseExited
		o.Status = ws.ExitStatus()
	case ws.Signaled():
		o.Cause = CauseKilled
		o.Signal = unix.Signal(ws.Signal())
	default:
		o.Cause = CauseOther
	}
	return o
}
