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

package runner

import (
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"github.com/secharness/secharness/pkg/enforcerdef"
)

// BodyFunc is a test body run inside the sandboxed child, after the filter
// is installed. Its result becomes the child's exit status, so it must stay
// within 0..254.
type BodyFunc func(arg json.RawMessage) int

var bodies = map[string]BodyFunc{}

// Register makes a test body available to enforcement children under the
// given name. Supervisor and child are the same binary, so a registration
// reachable from main (or TestMain) before Init covers both sides. Register
// panics on duplicate names.
func Register(name string, fn BodyFunc) {
	if _, ok := bodies[name]; ok {
		panic(fmt.Sprintf("runner: body %q registered twice", name))
	}
	bodies[name] = fn
}

func init() {
	Register(enforcerdef.BodyScript, scriptBody)
	Register(enforcerdef.BodyRaise, raiseBody)
	Register(enforcerdef.BodyHang, hangBody)
	Register(enforcerdef.BodyExit, exitBody)
}

// raiseBody delivers the signal given as argument to the whole process.
// Useful for exercising the killed-by-unrelated-signal outcome.
func raiseBody(arg json.RawMessage) int {
	var sig int
	if err := json.Unmarshal(arg, &sig); err != nil {
		fmt.Fprintf(os.Stderr, "runner: raise: %v\n", err)
		return enforcerdef.StatusSetupFailed
	}
	if err := unix.Kill(unix.Getpid(), unix.Signal(sig)); err != nil {
		fmt.Fprintf(os.Stderr, "runner: raise: %v\n", err)
		return enforcerdef.StatusSetupFailed
	}
	// Default-ignored signals land here.
	return 0
}

// hangBody blocks until the supervisor's timeout kills the process.
func hangBody(json.RawMessage) int {
	for {
		unix.Pause()
	}
}

// exitBody returns the integer given as argument.
func exitBody(arg json.RawMessage) int {
	var status int
	if err := json.Unmarshal(arg, &status); err != nil {
		fmt.Fprintf(os.Stderr, "runner: exit: %v\n", err)
		return enforcerdef.StatusSetupFailed
	}
	return status
}
