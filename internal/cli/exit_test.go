package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	mverrors "github.com/matzehuels/mergeviz/pkg/errors"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, ExitOK},
		{"interrupt", context.Canceled, ExitInterrupted},
		{"wrapped interrupt", fmt.Errorf("sort: %w", context.Canceled), ExitInterrupted},
		{"usage", mverrors.New(mverrors.ErrCodeUsage, usageLine), ExitUsage},
		{"invalid count", mverrors.ValidateCount(1), ExitFailure},
		{"invalid delay", mverrors.ValidateDelay(0), ExitFailure},
		{"other", errors.New("broken pipe"), ExitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestReport(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantOut    string
		wantErrOut string
	}{
		{"nil", nil, "", ""},
		{"interrupt", context.Canceled, "", ""},
		{"input", mverrors.ValidateCount(40000), "Element count must be within [2, 32767] (got 40000)\n", ""},
		{"internal", errors.New("broken pipe"), "", "broken pipe"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out, errOut bytes.Buffer
			Report(&out, &errOut, tt.err)
			if out.String() != tt.wantOut {
				t.Errorf("out = %q, want %q", out.String(), tt.wantOut)
			}
			if !strings.Contains(errOut.String(), tt.wantErrOut) || (tt.wantErrOut == "" && errOut.Len() > 0) {
				t.Errorf("errOut = %q, want %q", errOut.String(), tt.wantErrOut)
			}
		})
	}
}
