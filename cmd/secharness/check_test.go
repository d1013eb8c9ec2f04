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
	"testing"

	"golang.org/x/sys/unix"
)

func TestParseScript(t *testing.T) {
	script, err := parseScript([]string{"close:-1:9", "getpid"})
	if err != nil {
		t.Fatalf("parseScript() got error: %v", err)
	}
	if len(script) != 2 {
		t.Fatalf("parseScript() returned %d steps, want 2", len(script))
	}
	if script[0].Sysno != unix.SYS_CLOSE || script[0].Ret != -1 || script[0].Errno != 9 {
		t.Errorf("step 1 = %+v, want close expecting (-1, 9)", script[0])
	}
	if script[1].Sysno != unix.SYS_GETPID || script[1].Ret != 0 || script[1].Errno != 0 {
		t.Errorf("step 2 = %+v, want getpid expecting success", script[1])
	}
}

func TestParseScriptErrors(t *testing.T) {
	for _, test := range []struct {
		desc string
		args []string
	}{
		{desc: "no syscalls", args: nil},
		{desc: "unknown syscall", args: []string{"frobnicate"}},
		{desc: "too many fields", args: []string{"close:0:0:0"}},
		{desc: "bad return value", args: []string{"close:x"}},
		{desc: "bad errno", args: []string{"close:0:x"}},
	} {
		t.Run(test.desc, func(t *testing.T) {
			if _, err := parseScript(test.args); err == nil {
				t.Error("parseScript() passed, want error")
			}
		})
	}
}
