package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	mverrors "github.com/matzehuels/mergeviz/pkg/errors"
	"github.com/matzehuels/mergeviz/pkg/fault"
)

// Process exit codes.
const (
	ExitOK          = 0
	ExitUsage       = -1
	ExitFailure     = 1
	ExitInterrupted = 130 // Standard shell convention for SIGINT
	ExitFatal       = fault.ExitCode
)

// ExitCode maps a command error to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, context.Canceled):
		return ExitInterrupted
	case mverrors.Is(err, mverrors.ErrCodeUsage):
		return ExitUsage
	default:
		return ExitFailure
	}
}

// Report prints err for the user. Input problems go to out as plain text,
// everything else to errOut. Interrupts are silent.
func Report(out, errOut io.Writer, err error) {
	switch {
	case err == nil, errors.Is(err, context.Canceled):
	case mverrors.IsInput(err):
		fmt.Fprintln(out, mverrors.UserMessage(err))
	default:
		printError(errOut, "%v", err)
	}
}
