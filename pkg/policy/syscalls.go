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

package policy

import (
	"fmt"

	"github.com/elastic/go-seccomp-bpf/arch"
)

// LookupSyscall resolves a syscall name to its number on the native
// architecture.
func LookupSyscall(name string) (uintptr, error) {
	info, err := arch.GetInfo("")
	if err != nil {
		return 0, fmt.Errorf("detect architecture: %w", err)
	}
	nr, ok := info.SyscallNames[name]
	if !ok {
		return 0, fmt.Errorf("unknown syscall %q on %s", name, info.Name)
	}
	return uintptr(nr), nil
}
