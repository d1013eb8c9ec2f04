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

// Package enforcerdef contains the wire types shared between the
// enforcement supervisor and the sandboxed runner child. All structs in
// this package need to be JSON-serializable.
package enforcerdef

import (
	"encoding/json"

	"github.com/secharness/secharness/pkg/program"
)

// ChildEnv is the environment variable marking a process as a re-executed
// enforcement child. The runner package takes over when it is set.
const ChildEnv = "SECHARNESS_CHILD"

// Request is the payload the supervisor writes to the runner child's stdin.
// The child reads it in full before the filter becomes active; after that
// point its only output channel is its termination status.
type Request struct {
	// Program is the filter program to install before running the body.
	Program program.Program `json:"program"`
	// Body names the registered test body to run once the filter is live.
	Body string `json:"body"`
	// Arg is the body's argument, encoded by the supervisor.
	Arg json.RawMessage `json:"arg,omitempty"`
}

// Test bodies every runner understands.
const (
	// BodyScript runs a Script; the argument is the Script itself.
	BodyScript = "script"
	// BodyRaise sends the process the signal given as argument.
	BodyRaise = "raise"
	// BodyHang blocks forever; only the supervision timeout ends it.
	BodyHang = "hang"
	// BodyExit returns the integer given as argument.
	BodyExit = "exit"
)

// StatusSetupFailed is the child's exit status when request decoding,
// privilege drop or filter install fails. It is deliberately outside the
// exit-status range a script body can produce, so a sandboxing failure can
// never be mistaken for a script result.
const StatusSetupFailed = 255

// MaxScriptLen bounds script length so that the 1-based mismatch index
// always fits the child's 8-bit exit status without colliding with
// StatusSetupFailed.
const MaxScriptLen = 254
