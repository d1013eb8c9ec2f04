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

// Package runner implements the sandboxed child side of the enforcement
// harness. The supervisor re-executes the current binary with ChildEnv set;
// any binary that acts as a supervisor must therefore call Init from main
// (or TestMain) before doing anything else, so the re-executed copy can
// take over as the child.
//
// Child control flow is a short linear sequence with a single irrecoverable
// failure transition: read request, lock thread, drop privileges, install
// the filter, run the body. Any setup failure exits with
// enforcerdef.StatusSetupFailed, outside every body exit path.
package runner

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/debug"

	"github.com/secharness/secharness/pkg/enforcerdef"
)

// Init checks whether this process was spawned as an enforcement child and,
// if so, never returns: it runs the requested body under the requested
// filter and exits with the body's result.
func Init() {
	if os.Getenv(enforcerdef.ChildEnv) == "" {
		return
	}
	os.Exit(child(os.Stdin))
}

func child(r io.Reader) int {
	// The request must be fully consumed before the filter is live: the
	// policy under test has no reason to allow read(2).
	data, err := io.ReadAll(r)
	if err != nil {
		fmt.Fprintf(os.Stderr, "runner: read request: %v\n", err)
		return enforcerdef.StatusSetupFailed
	}
	var req enforcerdef.Request
	if err := json.Unmarshal(data, &req); err != nil {
		fmt.Fprintf(os.Stderr, "runner: decode request: %v\n", err)
		return enforcerdef.StatusSetupFailed
	}
	body, ok := bodies[req.Body]
	if !ok {
		fmt.Fprintf(os.Stderr, "runner: unknown body %q\n", req.Body)
		return enforcerdef.StatusSetupFailed
	}

	// The filter must cover the thread the body runs on; no_new_privs is
	// per-thread until TSYNC propagates it.
	runtime.LockOSThread()

	// Keep the runtime quiet once the filter is live: a background GC
	// makes syscalls of its own.
	debug.SetGCPercent(-1)

	if errno := install(req.Program); errno != 0 {
		fmt.Fprintf(os.Stderr, "runner: install filter: %v\n", errno)
		return enforcerdef.StatusSetupFailed
	}
	return body(req.Arg)
}
