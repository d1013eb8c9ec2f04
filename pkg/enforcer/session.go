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
	"time"

	"github.com/secharness/secharness/pkg/program"
)

// Compiler turns policy source text into an installable filter program.
// The policy compiler proper is an external collaborator; the session only
// consumes it through this interface.
type Compiler interface {
	Compile(source string) (program.Program, error)
}

// CompileError carries the compiler's diagnostic for a policy that failed
// to compile.
type CompileError struct {
	Msg string
}

// Error implements error.
func (e *CompileError) Error() string {
	return "compilation failure:\n\t" + e.Msg
}

// Session is the test session for one policy under test. It holds the most
// recently compiled filter program and whether that compilation succeeded;
// the program is wholesale-replaced on every Compile and read-only
// everywhere else, so a session needs no locking as long as calls are
// sequential.
type Session struct {
	// Compiler translates policy source text. Required.
	Compiler Compiler

	// Timeout bounds each supervised child's lifetime. Zero means
	// DefaultTimeout.
	Timeout time.Duration

	// RunnerPath is the binary re-executed as the sandboxed child. Empty
	// means the current executable. Whatever binary this names must call
	// runner.Init before anything else.
	RunnerPath string

	prog  program.Program
	ready bool
}

// NewSession returns a session compiling policies with c.
func NewSession(c Compiler) *Session {
	return &Session{Compiler: c}
}

// Compile replaces the session's filter program with a fresh compilation of
// source. On failure the previous program is discarded as well, so a stale
// program can never be installed, and subsequent Enforce calls trivially
// pass until a Compile succeeds.
func (s *Session) Compile(source string) error {
	s.prog = program.Program{}
	s.ready = false
	p, err := s.Compiler.Compile(source)
	if err != nil {
		log.Debugf("compile failed: %v", err)
		return &CompileError{Msg: err.Error()}
	}
	log.Debugf("compiled policy to %d instructions", p.Len())
	s.prog = p
	s.ready = true
	return nil
}

// Ready reports whether the most recent Compile succeeded.
func (s *Session) Ready() bool {
	return s.ready
}

// Program returns the current filter program. It is only meaningful while
// Ready reports true.
func (s *Session) Program() program.Program {
	return s.prog
}
