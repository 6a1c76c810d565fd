// Package fault signals process-fatal invariant violations.
//
// Two error tiers exist in mergeviz. Input problems are ordinary error values
// (see pkg/errors) that the CLI turns into a message and an exit code. Broken
// invariants are different: an index that must be valid is not, or the
// allocator cannot back a block. Those are logic defects, not conditions a
// caller can handle, so they are raised with [Abort] and terminate the process.
//
// Abort panics with a *[Violation]. The entry point defers [Recover], which
// prints the diagnostic, runs the registered atexit handlers and exits with
// [ExitCode]. Any other panic value is re-raised untouched.
//
// The panic unwinds the stack, so deferred calls such as Array.Free still run
// on the way to Recover. If one of them aborts again, the later panic replaces
// the first; Recover reports the first violation raised, not the last one.
//
// Tests use [Catch] to assert that a code path aborts:
//
//	v := fault.Catch(func() { arr.MustAt(99) })
//	if v == nil {
//	    t.Fatal("expected a violation")
//	}
package fault

import (
	"fmt"
	"io"
	"sync/atomic"

	"github.com/tebeka/atexit"
)

// ExitCode is the process exit status after a violation (128 + SIGABRT).
const ExitCode = 134

// Violation describes a broken internal invariant.
type Violation struct {
	Op     string // component or operation that detected the violation
	Reason string // human-readable description
}

// Error implements the error interface.
func (v *Violation) Error() string {
	return fmt.Sprintf("fatal: in %s: %s", v.Op, v.Reason)
}

// first holds the earliest violation not yet reported or caught.
var first atomic.Pointer[Violation]

// Abort raises a violation. It never returns.
func Abort(op, format string, args ...any) {
	v := &Violation{Op: op, Reason: fmt.Sprintf(format, args...)}
	first.CompareAndSwap(nil, v)
	panic(v)
}

// exit is swapped in tests.
var exit = atexit.Exit

// Recover must be deferred directly by the entry point. It converts a
// Violation panic into a diagnostic on w and exits with ExitCode.
func Recover(w io.Writer) {
	r := recover()
	if r == nil {
		return
	}
	v, ok := r.(*Violation)
	if !ok {
		panic(r)
	}
	if f := first.Swap(nil); f != nil {
		v = f
	}
	fmt.Fprintln(w, v.Error())
	exit(ExitCode)
}

// Catch runs fn and returns the violation it raised, or nil if fn returned
// normally. Panics that are not violations propagate.
func Catch(fn func()) (v *Violation) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		var ok bool
		if v, ok = r.(*Violation); !ok {
			panic(r)
		}
		first.Store(nil)
	}()
	fn()
	return nil
}
