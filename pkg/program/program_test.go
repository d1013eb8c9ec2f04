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

package program

import (
	"encoding/binary"
	"testing"

	"golang.org/x/net/bpf"
	"golang.org/x/sys/unix"
)

// singleSyscallProgram assembles a filter that allows exactly one syscall
// number and traps everything else.
func singleSyscallProgram(t *testing.T, nr uint32) Program {
	t.Helper()
	raw, err := bpf.Assemble([]bpf.Instruction{
		bpf.LoadAbsolute{Off: 0, Size: 4}, // seccomp_data.nr
		bpf.JumpIf{Cond: bpf.JumpEqual, Val: nr, SkipFalse: 1},
		bpf.RetConstant{Val: unix.SECCOMP_RET_ALLOW},
		bpf.RetConstant{Val: unix.SECCOMP_RET_TRAP},
	})
	if err != nil {
		t.Fatalf("Assemble() got error: %v", err)
	}
	return New(raw)
}

func TestEvaluate(t *testing.T) {
	prog := singleSyscallProgram(t, 1)
	for _, test := range []struct {
		desc string
		data Data
		want uint32
	}{
		{
			desc: "allowed syscall",
			data: Data{Nr: 1, Arch: NativeAuditArch},
			want: unix.SECCOMP_RET_ALLOW,
		},
		{
			desc: "disallowed syscall",
			data: Data{Nr: 2, Arch: NativeAuditArch},
			want: unix.SECCOMP_RET_TRAP,
		},
		{
			desc: "disallowed syscall with arguments",
			data: Data{Nr: 100, Arch: NativeAuditArch, Args: [6]uint64{0xf, 0xe}},
			want: unix.SECCOMP_RET_TRAP,
		},
	} {
		t.Run(test.desc, func(t *testing.T) {
			got, err := Evaluate(prog, test.data)
			if err != nil {
				t.Fatalf("Evaluate() got error: %v", err)
			}
			if got != test.want {
				t.Errorf("Evaluate() = %#x, want %#x", got, test.want)
			}
		})
	}
}

func TestEvaluateEmptyProgram(t *testing.T) {
	if _, err := Evaluate(Program{}, Data{}); err == nil {
		t.Error("Evaluate(empty) passed, want error")
	}
}

func TestDataBytes(t *testing.T) {
	d := Data{Nr: 42, Arch: NativeAuditArch, Args: [6]uint64{1, 2, 3, 4, 5, 0xf00000006}}
	buf := d.Bytes()
	if got, want := len(buf), 64; got != want {
		t.Fatalf("len(Bytes()) = %d, want %d", got, want)
	}
	// Read cells the way the evaluator's absolute loads do.
	if got := binary.BigEndian.Uint32(buf[0:]); got != 42 {
		t.Errorf("nr = %d, want 42", got)
	}
	if got := binary.BigEndian.Uint32(buf[16+5*8:]); got != 6 {
		t.Errorf("args[5] low cell = %d, want 6", got)
	}
	if got := binary.BigEndian.Uint32(buf[20+5*8:]); got != 0xf {
		t.Errorf("args[5] high cell = %d, want 15", got)
	}
}

func TestSockFilters(t *testing.T) {
	prog := New([]bpf.RawInstruction{{Op: 0x15, Jt: 1, Jf: 2, K: 0xf}})
	filters := prog.SockFilters()
	if len(filters) != 1 {
		t.Fatalf("len(SockFilters()) = %d, want 1", len(filters))
	}
	want := unix.SockFilter{Code: 0x15, Jt: 1, Jf: 2, K: 0xf}
	if filters[0] != want {
		t.Errorf("SockFilters()[0] = %+v, want %+v", filters[0], want)
	}
}

func TestString(t *testing.T) {
	prog := singleSyscallProgram(t, 1)
	if s := prog.String(); s == "" {
		t.Error("String() is empty")
	}
}
