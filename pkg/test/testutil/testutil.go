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

// Package testutil contains shared helpers for harness tests.
package testutil

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff"
	"golang.org/x/sys/unix"
)

// Poll is a shorthand function to wait for cb to return nil, retrying with
// a constant backoff until the timeout expires.
func Poll(cb func() error, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	b := backoff.WithContext(backoff.NewConstantBackOff(10*time.Millisecond), ctx)
	return backoff.Retry(cb, b)
}

// ProcessGone returns nil once pid no longer names a live process. A reaped
// child's pid stops being signalable, so this doubles as a no-leak check
// for supervised children.
func ProcessGone(pid int) error {
	err := unix.Kill(pid, 0)
	switch err {
	case nil:
		return fmt.Errorf("process %d still exists", pid)
	case unix.ESRCH:
		return nil
	default:
		return fmt.Errorf("signal process %d: %w", pid, err)
	}
}
