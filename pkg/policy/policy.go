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

// Package policy implements the reference policy compiler for the
// enforcement harness: a YAML description of syscall groups, compiled to a
// seccomp-bpf filter program.
//
// A policy document looks like:
//
//	default: allow
//	syscalls:
//	  - action: kill_process
//	    names: [acct, ptrace]
//	  - action: errno
//	    names: [socket]
//
// Actions: allow, errno, trap, log, trace, kill_thread, kill_process (alias
// kill). Groups are matched in order; the default action applies to
// everything unmatched.
package policy

import (
	"errors"
	"fmt"

	seccomp "github.com/elastic/go-seccomp-bpf"
	"golang.org/x/net/bpf"
	"gopkg.in/yaml.v3"

	"github.com/secharness/secharness/pkg/program"
)

type document struct {
	Default  string  `yaml:"default"`
	Syscalls []group `yaml:"syscalls"`
}

type group struct {
	Action string   `yaml:"action"`
	Names  []string `yaml:"names"`
}

var actions = map[string]seccomp.Action{
	"allow":        seccomp.ActionAllow,
	"errno":        seccomp.ActionErrno,
	"trap":         seccomp.ActionTrap,
	"log":          seccomp.ActionLog,
	"trace":        seccomp.ActionTrace,
	"kill_thread":  seccomp.ActionKillThread,
	"kill_process": seccomp.ActionKillProcess,
	"kill":         seccomp.ActionKillProcess,
}

// Compiler compiles YAML policy documents to filter programs. The zero
// value is ready to use; it implements enforcer.Compiler.
type Compiler struct{}

// Compile parses and assembles one policy document.
func (Compiler) Compile(source string) (program.Program, error) {
	var doc document
	if err := yaml.Unmarshal([]byte(source), &doc); err != nil {
		return program.Program{}, fmt.Errorf("parse policy: %w", err)
	}
	if doc.Default == "" {
		return program.Program{}, errors.New("policy: missing default action")
	}
	def, ok := actions[doc.Default]
	if !ok {
		return program.Program{}, fmt.Errorf("policy: unknown default action %q", doc.Default)
	}
	p := seccomp.Policy{DefaultAction: def}
	for i, g := range doc.Syscalls {
		act, ok := actions[g.Action]
		if !ok {
			return program.Program{}, fmt.Errorf("policy: group %d: unknown action %q", i, g.Action)
		}
		if len(g.Names) == 0 {
			return program.Program{}, fmt.Errorf("policy: group %d: no syscall names", i)
		}
		p.Syscalls = append(p.Syscalls, seccomp.SyscallGroup{Action: act, Names: g.Names})
	}
	insns, err := p.Assemble()
	if err != nil {
		return program.Program{}, fmt.Errorf("assemble policy: %w", err)
	}
	raw, err := bpf.Assemble(insns)
	if err != nil {
		return program.Program{}, fmt.Errorf("encode policy: %w", err)
	}
	return program.New(raw), nil
}
