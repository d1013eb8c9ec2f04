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
	"fmt"

	"golang.org/x/net/bpf"
)

// Evaluate runs the program in-process against a single seccomp_data
// payload and returns the program's SECCOMP_RET_* result. No filter is
// installed and no syscall is made; this is the cheap oracle for tests and
// tooling that do not need a live child.
func Evaluate(p Program, d Data) (uint32, error) {
	if p.Empty() {
		return 0, fmt.Errorf("cannot evaluate empty program")
	}
	insns, allDecoded := bpf.Disassemble(p.Filter)
	if !allDecoded {
		return 0, fmt.Errorf("program contains undecodable instructions")
	}
	vm, err := bpf.NewVM(insns)
	if err != nil {
		return 0, fmt.Errorf("invalid program: %w", err)
	}
	ret, err := vm.Run(d.Bytes())
	if err != nil {
		return 0, fmt.Errorf("program execution: %w", err)
	}
	return uint32(ret), nil
}
