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

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"

	"github.com/secharness/secharness/pkg/enforcer"
	"github.com/secharness/secharness/pkg/enforcerdef"
	"github.com/secharness/secharness/pkg/policy"
)

// checkCmd implements subcommands.Command for the "check" command.
type checkCmd struct {
	policyPath string
	kill       bool
	timeout    time.Duration
}

// Name implements subcommands.Command.
func (*checkCmd) Name() string {
	return "check"
}

// Synopsis implements subcommands.Command.
func (*checkCmd) Synopsis() string {
	return "run a syscall script under a compiled policy and check the outcome"
}

// Usage implements subcommands.Command.
func (*checkCmd) Usage() string {
	return `check -policy <file> [-kill] [-timeout <d>] <syscall>[:ret[:errno]]...

Each argument names one syscall to issue (with zero arguments), optionally
with the expected return value and errno. Example:

    secharness check -policy p.yaml -kill acct
    secharness check -policy p.yaml close:-1:9
`
}

// SetFlags implements subcommands.Command.
func (c *checkCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.policyPath, "policy", "", "policy YAML file")
	f.BoolVar(&c.kill, "kill", false, "expect the child to be killed by the sandbox")
	f.DurationVar(&c.timeout, "timeout", enforcer.DefaultTimeout, "supervision timeout")
}

// Execute implements subcommands.Command.
func (c *checkCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if c.policyPath == "" {
		logrus.Error("check: -policy is required")
		return subcommands.ExitUsageError
	}
	script, err := parseScript(f.Args())
	if err != nil {
		logrus.Errorf("check: %v", err)
		return subcommands.ExitUsageError
	}
	source, err := os.ReadFile(c.policyPath)
	if err != nil {
		logrus.Errorf("check: %v", err)
		return subcommands.ExitFailure
	}

	sess := enforcer.NewSession(policy.Compiler{})
	sess.Timeout = c.timeout
	if err := sess.Compile(string(source)); err != nil {
		logrus.Errorf("check: %v", err)
		return subcommands.ExitFailure
	}
	if err := sess.EnforceScript(script, c.kill); err != nil {
		fmt.Printf("FAIL: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Println("PASS")
	return subcommands.ExitSuccess
}

// parseScript builds a script from NAME[:RET[:ERRNO]] arguments.
func parseScript(args []string) (enforcerdef.Script, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("no syscalls given")
	}
	var script enforcerdef.Script
	for _, a := range args {
		parts := strings.Split(a, ":")
		if len(parts) > 3 {
			return nil, fmt.Errorf("malformed script step %q", a)
		}
		nr, err := policy.LookupSyscall(parts[0])
		if err != nil {
			return nil, err
		}
		inv := enforcerdef.Sys(nr)
		if len(parts) > 1 {
			rv, err := strconv.ParseInt(parts[1], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("step %q: bad return value: %w", a, err)
			}
			inv = inv.Returns(rv)
		}
		if len(parts) > 2 {
			errno, err := strconv.Atoi(parts[2])
			if err != nil {
				return nil, fmt.Errorf("step %q: bad errno: %w", a, err)
			}
			inv.Errno = errno
		}
		script = append(script, inv)
	}
	return script, nil
}
