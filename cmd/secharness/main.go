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

// secharness is a debugging front end for the enforcement harness: it
// compiles seccomp policies and runs syscall scripts against them in a
// sandboxed child.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"

	"github.com/secharness/secharness/pkg/enforcer"
	"github.com/secharness/secharness/pkg/runner"
)

func main() {
	// When this process is a re-executed enforcement child, Init takes
	// over and never returns.
	runner.Init()

	debug := flag.Bool("debug", false, "log supervision detail to stderr")

	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(new(compileCmd), "")
	subcommands.Register(new(checkCmd), "")

	flag.Parse()
	logrus.SetOutput(os.Stderr)
	if *debug {
		logrus.SetLevel(logrus.DebugLevel)
		enforcer.SetLogOutput(os.Stderr)
	}

	os.Exit(int(subcommands.Execute(context.Background())))
}
