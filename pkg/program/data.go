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

import "encoding/binary"

// dataSize is the size of the kernel's struct seccomp_data.
const dataSize = 64

// Data mirrors struct seccomp_data, the input every seccomp-bpf program is
// evaluated against.
type Data struct {
	// Nr is the syscall number.
	Nr int32

	// Arch is the AUDIT_ARCH_* value for the calling process.
	Arch uint32

	// InstructionPointer is the CPU instruction pointer at syscall entry.
	InstructionPointer uint64

	// Args are the six syscall arguments.
	Args [6]uint64
}

// Bytes encodes d for in-process evaluation. Filter programs address
// seccomp_data as 32-bit cells; the cell offsets follow the little-endian
// kernel ABI, and each cell is written in the byte order the evaluator's
// absolute loads use, so Evaluate observes the same values the kernel
// hands a live filter.
func (d *Data) Bytes() []byte {
	buf := make([]byte, dataSize)
	put := func(off int, v uint32) { binary.BigEndian.PutUint32(buf[off:], v) }
	put(0, uint32(d.Nr))
	put(4, d.Arch)
	put(8, uint32(d.InstructionPointer))
	put(12, uint32(d.InstructionPointer>>32))
	for i, arg := range d.Args {
		put(16+8*i, uint32(arg))
		put(20+8*i, uint32(arg>>32))
	}
	return buf
}
