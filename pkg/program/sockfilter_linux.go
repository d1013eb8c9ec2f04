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

import "golang.org/x/sys/unix"

// SockFilters returns the program as kernel sock_filter instructions, the
// form seccomp(2) expects.
func (p Program) SockFilters() []unix.SockFilter {
	filters := make([]unix.SockFilter, 0, len(p.Filter))
	for _, insn := range p.Filter {
		filters = append(filters, unix.SockFilter{
			Code: insn.Op,
			Jt:   insn.Jt,
			Jf:   insn.Jf,
			K:    insn.K,
		})
	}
	return filters
}
