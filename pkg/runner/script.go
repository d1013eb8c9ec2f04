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
	"encoding/json"
	"fmt"
	"os"

	"github.com/secharness/secharness/pkg/enforcerdef"
)

// scriptBody is the syscall batch executor body.
func scriptBody(arg json.RawMessage) int {
	var script enforcerdef.Script
	if err := json.Unmarshal(arg, &script); err != nil {
		fmt.Fprintf(os.Stderr, "runner: decode script: %v\n", err)
		return enforcerdef.StatusSetupFailed
	}
	if len(script) > enforcerdef.MaxScriptLen {
		fmt.Fprintf(os.Stderr, "runner: script has %d steps, max %d\n", len(script), enforcerdef.MaxScriptLen)
		return enforcerdef.StatusSetupFailed
	}
	return ExecScript(script)
}

// ExecScript executes a syscall script strictly in order and reports the
// 1-based index of the first invocation whose observed (return value, errno)
// pair diverges from the expectation, or 0 when every invocation matched.
func ExecScript(script enforcerdef.Script) int {
	for i := range script {
		inv := &script[i]
		rv, errno := inv.Call()
		if rv != inv.Ret || int(errno) != inv.Errno {
			return i + 1
		}
	}
	return 0
}
