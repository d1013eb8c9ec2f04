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

package enforcerdef

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Invocation is a single syscall to issue inside the sandboxed child,
// together with the result it is expected to produce.
type Invocation struct {
	// Sysno is the syscall number.
	Sysno uintptr `json:"sysno"`
	// Args is the syscall arguments.
	Args [6]uintptr `json:"args"`
	// Ret is the expected raw return value; -1 for failing syscalls.
	Ret int64 `json:"ret"`
	// Errno is the expected errno, 0 for success.
	Errno int `json:"errno"`
}

// Script is an ordered list of invocations. A runner evaluates it strictly
// in order and stops at the first mismatch.
type Script []Invocation

// Sys returns an Invocation calling sysno with args, expected to succeed
// with return value 0.
func Sys(sysno uintptr, args ...uintptr) Invocation {
	if len(args) > 6 {
		panic(fmt.Sprintf("cannot pass more than 6 syscall arguments, got: %v", args))
	}
	var sixArgs [6]uintptr
	copy(sixArgs[:], args)
	return Invocation{Sysno: sysno, Args: sixArgs}
}

// Returns sets the expected return value.
func (i Invocation) Returns(rv int64) Invocation {
	i.Ret = rv
	return i
}

// Fails sets the expectation to a -1 return with the given errno.
func (i Invocation) Fails(errno unix.Errno) Invocation {
	i.Ret = -1
	i.Errno = int(errno)
	return i
}

// Call issues the system call and reports the raw return value and errno.
//
// RawSyscall6 is used so that the only syscall between two script steps is
// the scripted one; the runtime's scheduler hooks would otherwise sit
// between the filter and the observation.
func (i *Invocation) Call() (int64, unix.Errno) {
	r1, _, errno := unix.RawSyscall6(i.Sysno, i.Args[0], i.Args[1], i.Args[2], i.Args[3], i.Args[4], i.Args[5])
	return int64(r1), errno
}

// String returns a compact description for diagnostics.
func (i Invocation) String() string {
	return fmt.Sprintf("syscall %d(%d, %d, %d, %d, %d, %d) => (%d, errno %d)",
		i.Sysno, i.Args[0], i.Args[1], i.Args[2], i.Args[3], i.Args[4], i.Args[5], i.Ret, i.Errno)
}
