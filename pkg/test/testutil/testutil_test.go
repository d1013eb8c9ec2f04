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

package testutil

import (
	"errors"
	"os"
	"testing"
	"time"
)

func TestPollRetries(t *testing.T) {
	attempts := 0
	err := Poll(func() error {
		attempts++
		if attempts < 3 {
			return errors.New("not yet")
		}
		return nil
	}, time.Second)
	if err != nil {
		t.Fatalf("Poll() got error: %v", err)
	}
	if attempts != 3 {
		t.Errorf("Poll() made %d attempts, want 3", attempts)
	}
}

func TestPollTimeout(t *testing.T) {
	err := Poll(func() error { return errors.New("never") }, 50*time.Millisecond)
	if err == nil {
		t.Error("Poll() passed, want timeout error")
	}
}

func TestProcessGone(t *testing.T) {
	if err := ProcessGone(os.Getpid()); err == nil {
		t.Error("ProcessGone(self) = nil, want error")
	}
}
