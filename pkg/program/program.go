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

// Package program defines the compiled, attachable form of a sandboxing
// policy: a classic BPF filter program that the kernel evaluates once per
// system call. Programs are produced by a policy compiler, held by a test
// session, and consumed read-only when installed into a child process.
package program

import (
	"fmt"
	"strings"

	"golang.org/x/net/bpf"
)

// Program is a compiled seccomp-bpf filter program.
//
// The zero value is the empty program, which is not installable. Programs
// are JSON-serializable so they can cross the supervisor/runner process
// boundary.
type Program struct {
	// Filter is the raw instruction sequence, in kernel sock_filter order.
	Filter []bpf.RawInstruction `json:"filter"`
}

// New wraps a raw instruction sequence in a Program.
func New(filter []bpf.RawInstruction) Program {
	return Program{Filter: filter}
}

// Len returns the instruction count.
func (p Program) Len() int {
	return len(p.Filter)
}

// Empty reports whether the program holds no instructions.
func (p Program) Empty() bool {
	return len(p.Filter) == 0
}

// String returns a human-readable disassembly, one instruction per line.
// Instructions that cannot be decoded are printed in raw form.
func (p Program) String() string {
	insns, _ := bpf.Disassemble(p.Filter)
	var sb strings.Builder
	for i, insn := range insns {
		fmt.Fprintf(&sb, "%3d: %v\n", i, insn)
	}
	return sb.String()
}
