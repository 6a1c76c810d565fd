package fault

import (
	"bytes"
	"strings"
	"testing"
)

func TestAbortRaisesViolation(t *testing.T) {
	v := Catch(func() { Abort("merge", "out-of-bounds index %d", 7) })
	if v == nil {
		t.Fatal("Catch() = nil, want violation")
	}
	if v.Op != "merge" {
		t.Errorf("Op = %q, want %q", v.Op, "merge")
	}
	want := "fatal: in merge: out-of-bounds index 7"
	if v.Error() != want {
		t.Errorf("Error() = %q, want %q", v.Error(), want)
	}
}

func TestCatchNormalReturn(t *testing.T) {
	ran := false
	if v := Catch(func() { ran = true }); v != nil {
		t.Errorf("Catch() = %v, want nil", v)
	}
	if !ran {
		t.Error("Catch should run fn")
	}
}

func TestCatchRepanicsForeignValues(t *testing.T) {
	defer func() {
		if r := recover(); r != "boom" {
			t.Errorf("recover() = %v, want boom", r)
		}
	}()
	Catch(func() { panic("boom") })
	t.Error("Catch should not swallow foreign panics")
}

func TestRecoverExitsWithCode(t *testing.T) {
	var code int
	orig := exit
	exit = func(c int) { code = c }
	defer func() { exit = orig }()

	var buf bytes.Buffer
	func() {
		defer Recover(&buf)
		Abort("alloc", "cannot allocate %d bytes", 64)
	}()

	if code != ExitCode {
		t.Errorf("exit code = %d, want %d", code, ExitCode)
	}
	if !strings.Contains(buf.String(), "cannot allocate 64 bytes") {
		t.Errorf("diagnostic = %q, want allocation message", buf.String())
	}
}

func TestRecoverWithoutPanic(t *testing.T) {
	called := false
	orig := exit
	exit = func(int) { called = true }
	defer func() { exit = orig }()

	var buf bytes.Buffer
	func() {
		defer Recover(&buf)
	}()

	if called {
		t.Error("Recover should not exit when nothing panicked")
	}
	if buf.Len() != 0 {
		t.Errorf("Recover wrote %q, want nothing", buf.String())
	}
}

func TestRecoverReportsFirstViolation(t *testing.T) {
	var code int
	orig := exit
	exit = func(c int) { code = c }
	defer func() { exit = orig }()

	var buf bytes.Buffer
	func() {
		defer Recover(&buf)
		defer Abort("free", "block released twice")
		Abort("varray", "index 9 out of bounds [0, 4)")
	}()

	if code != ExitCode {
		t.Errorf("exit code = %d, want %d", code, ExitCode)
	}
	want := "fatal: in varray: index 9 out of bounds [0, 4)\n"
	if buf.String() != want {
		t.Errorf("diagnostic = %q, want %q", buf.String(), want)
	}
}

func TestCatchClearsViolation(t *testing.T) {
	orig := exit
	exit = func(int) {}
	defer func() { exit = orig }()

	Catch(func() { Abort("mem", "stale") })

	var buf bytes.Buffer
	func() {
		defer Recover(&buf)
		Abort("mem", "fresh")
	}()
	if !strings.Contains(buf.String(), "fresh") {
		t.Errorf("diagnostic = %q, want the violation raised after Catch", buf.String())
	}
}
