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

// Package enforcer verifies that a compiled sandboxing policy actually
// enforces the intended decisions when attached to a real process.
//
// A Session owns the policy currently under test. Compile feeds source text
// to the session's Compiler and stores the resulting filter program; Enforce
// spawns an isolated child, installs the program in it with correct
// privilege-drop ordering, runs a test body inside it, supervises the child
// under a bounded timeout, reaps it exactly once, and classifies its
// termination against the caller's expectation.
package enforcer

import (
	"io"

	"github.com/sirupsen/logrus"
)

var log = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// SetLogOutput directs the package's debug logging to w. By default the
// package logs nothing.
func SetLogOutput(w io.Writer) {
	log.SetOutput(w)
	log.SetLevel(logrus.DebugLevel)
}
