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

	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"

	"github.com/secharness/secharness/pkg/policy"
)

// compileCmd implements subcommands.Command for the "compile" command.
type compileCmd struct {
	policyPath string
}

// Name implements subcommands.Command.
func (*compileCmd) Name() string {
	return "compile"
}

// Synopsis implements subcommands.Command.
func (*compileCmd) Synopsis() string {
	return "compile a policy and print the filter program"
}

// Usage implements subcommands.Command.
func (*compileCmd) Usage() string {
	return "compile -policy <file>\n"
}

// SetFlags implements subcommands.Command.
func (c *compileCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.policyPath, "policy", "", "policy YAML file")
}

// Execute implements subcommands.Command.
func (c *compileCmd) Execute(context.Context, *flag.FlagSet, ...any) subcommands.ExitStatus {
	if c.policyPath == "" {
		logrus.Error("compile: -policy is required")
		return subcommands.ExitUsageError
	}
	source, err := os.ReadFile(c.policyPath)
	if err != nil {
		logrus.Errorf("compile: %v", err)
		return subcommands.ExitFailure
	}
	prog, err := policy.Compiler{}.Compile(string(source))
	if err != nil {
		logrus.Errorf("compile: %v", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("; %d instructions\n%s", prog.Len(), prog)
	return subcommands.ExitSuccess
}
