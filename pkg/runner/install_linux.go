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

package runner

import (
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/secharness/secharness/pkg/program"
)

// install applies prog to the calling process. The ordering is load-bearing:
// PR_SET_NO_NEW_PRIVS must succeed before seccomp(2) will accept a filter
// from an unprivileged process, and the filter must be active before any
// test body syscall is made.
//
// PR_SET_NO_NEW_PRIVS is specific to the calling thread; the caller must be
// locked to its OS thread. SECCOMP_FILTER_FLAG_TSYNC propagates the filter
// (and no_new_privs) to every other thread in the group, which a Go process
// always has.
func install(prog program.Program) unix.Errno {
	if prog.Empty() {
		return unix.EINVAL
	}
	filter := prog.SockFilters()
	if _, _, errno := unix.RawSyscall6(unix.SYS_PRCTL, unix.PR_SET_NO_NEW_PRIVS, 1, 0, 0, 0, 0); errno != 0 {
		return errno
	}
	fprog := unix.SockFprog{
		Len:    uint16(len(filter)),
		Filter: &filter[0],
	}
	tid, _, errno := unix.RawSyscall(unix.SYS_SECCOMP, unix.SECCOMP_SET_MODE_FILTER,
		unix.SECCOMP_FILTER_FLAG_TSYNC, uintptr(unsafe.Pointer(&fprog)))
	if errno != 0 {
		return errno
	}
	if tid != 0 {
		// A nonzero return with TSYNC names the thread that already holds a
		// conflicting filter. seccomp(2) has no errno for this case.
		return unix.ENOTUNIQ
	}
	return 0
}
