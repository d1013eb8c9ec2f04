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

// Live enforcement tests. The test binary doubles as the sandboxed child:
// TestMain hands control to runner.Init, which takes over in re-executed
// copies and is a no-op in the supervising one.
package enforcer_test

import (
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"golang.org/x/sys/unix"

	"github.com/secharness/secharness/pkg/enforcer"
	"github.com/secharness/secharness/pkg/enforcerdef"
	"github.com/secharness/secharness/pkg/policy"
	"github.com/secharness/secharness/pkg/runner"
	"github.com/secharness/secharness/pkg/test/testutil"
)

func TestMain(m *testing.M) {
	runner.Init()
	os.Exit(m.Run())
}

// badFD is overwhelmingly unlikely to name an open file.
const badFD = uintptr(0x7fffffff)

// The deny policy rejects acct(2), which the Go runtime never calls, so a
// test body is the only thing that can trip it.
const (
	permissivePolicy = "default: allow\n"
	denyAcctPolicy   = `default: allow
syscalls:
  - action: kill_process
    names: [acct]
`
)

func compile(t *testing.T, src string) *enforcer.Session {
	t.Helper()
	sess := enforcer.NewSession(policy.Compiler{})
	if err := sess.Compile(src); err != nil {
		t.Fatalf("Compile() got error: %v", err)
	}
	return sess
}

func closeBadFD() enforcerdef.Invocation {
	return enforcerdef.Sys(unix.SYS_CLOSE, badFD).Fails(unix.EBADF)
}

func acctCall() enforcerdef.Invocation {
	// The expectation is irrelevant under a kill policy: the call never
	// returns.
	return enforcerdef.Sys(unix.SYS_ACCT, 0)
}

func TestAllowedScriptRunsToCompletion(t *testing.T) {
	sess := compile(t, permissivePolicy)
	script := enforcerdef.Script{closeBadFD(), closeBadFD()}
	if err := sess.EnforceScript(script, false); err != nil {
		t.Errorf("EnforceScript() = %v, want pass", err)
	}
}

func TestDeniedSyscallKills(t *testing.T) {
	sess := compile(t, denyAcctPolicy)
	script := enforcerdef.Script{acctCall()}
	if err := sess.EnforceScript(script, true); err != nil {
		t.Errorf("EnforceScript(shouldKill) = %v, want pass", err)
	}
}

func TestUnexpectedKillFails(t *testing.T) {
	sess := compile(t, denyAcctPolicy)
	script := enforcerdef.Script{acctCall()}
	err := sess.EnforceScript(script, false)
	var ee *enforcer.EnforceError
	if !errors.As(err, &ee) {
		t.Fatalf("EnforceScript() error is %T (%v), want *EnforceError", err, err)
	}
	if got, want := ee.Reason, "should not be killed by seccomp"; got != want {
		t.Errorf("Reason = %q, want %q", got, want)
	}
	if ee.Outcome.Cause != enforcer.CauseKilled || ee.Outcome.Signal != unix.SIGSYS {
		t.Errorf("Outcome = %v, want killed by SIGSYS", ee.Outcome)
	}
}

func TestCompileFailureSkipsEnforcement(t *testing.T) {
	sess := enforcer.NewSession(policy.Compiler{})
	if err := sess.Compile("default: frobnicate\n"); err == nil {
		t.Fatal("Compile() passed for a bogus policy")
	}
	script := enforcerdef.Script{acctCall()}
	if err := sess.EnforceScript(script, true); err != nil {
		t.Errorf("EnforceScript() after failed compile = %v, want trivial pass", err)
	}
	if err := sess.Enforce(enforcerdef.BodyExit, 7, false); err != nil {
		t.Errorf("Enforce() after failed compile = %v, want trivial pass", err)
	}
}

// TestRecompileReplacesEnforcement checks that no state bleeds between
// compilations in either direction.
func TestRecompileReplacesEnforcement(t *testing.T) {
	sess := compile(t, permissivePolicy)
	if err := sess.EnforceScript(enforcerdef.Script{closeBadFD()}, false); err != nil {
		t.Fatalf("permissive: EnforceScript() = %v, want pass", err)
	}

	if err := sess.Compile(denyAcctPolicy); err != nil {
		t.Fatalf("Compile() got error: %v", err)
	}
	if err := sess.EnforceScript(enforcerdef.Script{acctCall()}, true); err != nil {
		t.Fatalf("deny: EnforceScript(shouldKill) = %v, want pass", err)
	}

	// Compiling the same source again behaves identically.
	if err := sess.Compile(denyAcctPolicy); err != nil {
		t.Fatalf("Compile() got error: %v", err)
	}
	if err := sess.EnforceScript(enforcerdef.Script{acctCall()}, true); err != nil {
		t.Errorf("deny (recompiled): EnforceScript(shouldKill) = %v, want pass", err)
	}
}

func TestTimeoutKillsAndReaps(t *testing.T) {
	sess := compile(t, permissivePolicy)
	sess.Timeout = 200 * time.Millisecond

	start := time.Now()
	err := sess.Enforce(enforcerdef.BodyHang, nil, false)
	var ee *enforcer.EnforceError
	if !errors.As(err, &ee) {
		t.Fatalf("Enforce(hang) error is %T (%v), want *EnforceError", err, err)
	}
	if got, want := ee.Reason, "timed out"; got != want {
		t.Errorf("Reason = %q, want %q", got, want)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("Enforce(hang) took %v, supervision is unbounded", elapsed)
	}
	// The child must be gone by the time Enforce returns.
	if ee.Outcome.Pid == 0 {
		t.Fatal("timeout outcome carries no pid")
	}
	if err := testutil.Poll(func() error { return testutil.ProcessGone(ee.Outcome.Pid) }, time.Second); err != nil {
		t.Errorf("child leaked: %v", err)
	}
}

func TestUnrelatedSignalAlwaysFails(t *testing.T) {
	sess := compile(t, permissivePolicy)
	for _, test := range []struct {
		desc       string
		shouldKill bool
		want       string
	}{
		{desc: "not expecting kill", shouldKill: false, want: "killed by signal 6"},
		{desc: "expecting kill", shouldKill: true, want: "should be killed by seccomp"},
	} {
		t.Run(test.desc, func(t *testing.T) {
			err := sess.Enforce(enforcerdef.BodyRaise, int(unix.SIGABRT), test.shouldKill)
			if err == nil {
				t.Fatal("Enforce(raise SIGABRT) passed, want failure")
			}
			if got := err.Error(); got != test.want {
				t.Errorf("Enforce(raise SIGABRT) = %q, want %q", got, test.want)
			}
		})
	}
}

func TestNonZeroExit(t *testing.T) {
	sess := compile(t, permissivePolicy)
	for _, test := range []struct {
		desc       string
		shouldKill bool
		want       string
	}{
		{desc: "not expecting kill", shouldKill: false, want: "non-zero (7) exit code"},
		{desc: "expecting kill", shouldKill: true, want: "should be killed by seccomp; non-zero (7) exit code instead"},
	} {
		t.Run(test.desc, func(t *testing.T) {
			err := sess.Enforce(enforcerdef.BodyExit, 7, test.shouldKill)
			if err == nil {
				t.Fatal("Enforce(exit 7) passed, want failure")
			}
			if got := err.Error(); got != test.want {
				t.Errorf("Enforce(exit 7) = %q, want %q", got, test.want)
			}
		})
	}
}

// TestScriptMismatchPosition runs a five-step script whose third step
// carries a wrong expectation. Steps one and two have a real, observable
// side effect: the first close(0) succeeds and thereby makes the second
// close(0) fail with EBADF, which is exactly what the script expects. A
// mismatch at step 3 therefore proves steps 1-2 executed in order.
func TestScriptMismatchPosition(t *testing.T) {
	sess := compile(t, permissivePolicy)
	script := enforcerdef.Script{
		enforcerdef.Sys(unix.SYS_CLOSE, 0).Returns(0),
		enforcerdef.Sys(unix.SYS_CLOSE, 0).Fails(unix.EBADF),
		closeBadFD().Returns(0), // actually fails with EBADF
		closeBadFD(),
		closeBadFD(),
	}
	err := sess.EnforceScript(script, false)
	var se *enforcer.ScriptError
	if !errors.As(err, &se) {
		t.Fatalf("EnforceScript() error is %T (%v), want *ScriptError", err, err)
	}
	if got, want := se.Step, 3; got != want {
		t.Errorf("Step = %d, want %d", got, want)
	}
	if !strings.Contains(se.Error(), "diverged at step 3") {
		t.Errorf("error %q does not name the diverging step", se.Error())
	}
}

func TestUnknownBodyIsSetupFailure(t *testing.T) {
	sess := compile(t, permissivePolicy)
	err := sess.Enforce("no-such-body", nil, false)
	var ee *enforcer.EnforceError
	if !errors.As(err, &ee) {
		t.Fatalf("Enforce(unknown body) error is %T (%v), want *EnforceError", err, err)
	}
	if got, want := ee.Outcome.Status, enforcerdef.StatusSetupFailed; got != want {
		t.Errorf("child exit status = %d, want %d", got, want)
	}
}
