package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	mverrors "github.com/matzehuels/mergeviz/pkg/errors"
	"github.com/matzehuels/mergeviz/pkg/viz"
)

// execute runs the root command with args, capturing frames and logs.
func execute(t *testing.T, c *CLI, args ...string) (out, logs string, err error) {
	t.Helper()
	var outBuf, logBuf bytes.Buffer
	c.Logger.SetOutput(&logBuf)
	c.Out = &outBuf

	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(&outBuf)
	root.SetErr(&logBuf)
	err = root.ExecuteContext(context.Background())
	return outBuf.String(), logBuf.String(), err
}

func TestRootCommandInputErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code mverrors.Code
		exit int
	}{
		{"no args", nil, mverrors.ErrCodeUsage, ExitUsage},
		{"one arg", []string{"5"}, mverrors.ErrCodeUsage, ExitUsage},
		{"three args", []string{"1", "2", "3"}, mverrors.ErrCodeUsage, ExitUsage},
		{"unknown flag", []string{"10", "0.1", "--bogus"}, mverrors.ErrCodeUsage, ExitUsage},
		{"count too small", []string{"1", "0.5"}, mverrors.ErrCodeInvalidCount, ExitFailure},
		{"count too large", []string{"32768", "0.5"}, mverrors.ErrCodeInvalidCount, ExitFailure},
		{"count not a number", []string{"x", "1"}, mverrors.ErrCodeInvalidCount, ExitFailure},
		{"zero delay", []string{"10", "0"}, mverrors.ErrCodeInvalidDelay, ExitFailure},
		{"negative delay", []string{"5", "-0.5"}, mverrors.ErrCodeInvalidDelay, ExitFailure},
		{"negative count", []string{"-5", "0.1"}, mverrors.ErrCodeInvalidCount, ExitFailure},
		{"negative count and delay", []string{"-5", "-0.5"}, mverrors.ErrCodeInvalidCount, ExitFailure},
		{"bad count before negative delay", []string{"1", "-2"}, mverrors.ErrCodeInvalidCount, ExitFailure},
		{"negative delay after flag", []string{"--seed", "3", "5", "-1"}, mverrors.ErrCodeInvalidDelay, ExitFailure},
		{"negative third arg", []string{"5", "0.1", "-3"}, mverrors.ErrCodeUsage, ExitUsage},
		{"delay at upper bound", []string{"10", "2147483647"}, mverrors.ErrCodeInvalidDelay, ExitFailure},
		{"unknown allocator", []string{"10", "0.1", "--allocator", "slab"}, mverrors.ErrCodeInvalidAllocator, ExitFailure},
		{"negative wait", []string{"10", "0.1", "--wait", "-1"}, mverrors.ErrCodeInvalidConfig, ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, New(&bytes.Buffer{}, LogInfo), tt.args...)
			if !mverrors.Is(err, tt.code) {
				t.Fatalf("error = %v, want code %s", err, tt.code)
			}
			if got := ExitCode(err); got != tt.exit {
				t.Errorf("ExitCode = %d, want %d", got, tt.exit)
			}
			if out != "" {
				t.Errorf("no frames expected on input error, got %q", out)
			}
		})
	}
}

func TestRootCommandUsageMessage(t *testing.T) {
	_, _, err := execute(t, New(&bytes.Buffer{}, LogInfo))
	if got := mverrors.UserMessage(err); got != usageLine {
		t.Errorf("usage = %q, want %q", got, usageLine)
	}
}

func TestRootCommandCountMessage(t *testing.T) {
	_, _, err := execute(t, New(&bytes.Buffer{}, LogInfo), "1", "0.5")
	want := "Element count must be within [2, 32767] (got 1)"
	if got := mverrors.UserMessage(err); got != want {
		t.Errorf("message = %q, want %q", got, want)
	}
}

func TestRootCommandNegativeDelayMessage(t *testing.T) {
	_, _, err := execute(t, New(&bytes.Buffer{}, LogInfo), "5", "-0.5")
	want := "Swap delay must be within (0, 2147483647) (got -0.500000)"
	if got := mverrors.UserMessage(err); got != want {
		t.Errorf("message = %q, want %q", got, want)
	}
}

func TestRootCommandPlays(t *testing.T) {
	out, logs, err := execute(t, New(&bytes.Buffer{}, LogInfo),
		"3", "0.000001", "--wait", "0", "--seed", "1", "--no-color")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	wantTail := "\x1b[2J\x1b[0;0H" + viz.CaptionDone + "\n ,|\n|||\n"
	if !strings.HasSuffix(out, wantTail) {
		t.Errorf("output should end with the done frame, got tail %q", out[max(0, len(out)-40):])
	}
	if !strings.HasPrefix(out, "\x1b[2J\x1b[0;0H"+viz.CaptionRandomizing+"\n") {
		t.Errorf("output should start with a randomize frame")
	}
	if !strings.Contains(out, viz.CaptionWaiting+"\n") {
		t.Error("output is missing the waiting frame")
	}
	if !strings.Contains(logs, "Sorted 3 values") {
		t.Errorf("logs should report completion, got %q", logs)
	}
	if !strings.Contains(logs, "seed=1") {
		t.Errorf("logs should carry the seed, got %q", logs)
	}
}

func TestRootCommandVerbose(t *testing.T) {
	_, logs, err := execute(t, New(&bytes.Buffer{}, LogInfo),
		"2", "0.000001", "--wait", "0", "-v")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	for _, want := range []string{"phase done", "allocated", "released"} {
		if !strings.Contains(logs, want) {
			t.Errorf("verbose logs missing %q", want)
		}
	}
}

func TestStepCommand(t *testing.T) {
	c := New(&bytes.Buffer{}, LogInfo)
	var viewed FrameViewerModel
	c.viewer = func(m tea.Model) error {
		viewed = m.(FrameViewerModel)
		return nil
	}

	if _, _, err := execute(t, c, "step", "6", "--seed", "3"); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(viewed.Frames) < 2*6+2 {
		t.Fatalf("recorded %d frames, want at least %d", len(viewed.Frames), 2*6+2)
	}
	last := viewed.Frames[len(viewed.Frames)-1]
	if last.Caption != viz.CaptionDone {
		t.Errorf("last caption = %q", last.Caption)
	}
	if viewed.Glyphs != viz.DefaultGlyphs {
		t.Errorf("glyphs = %+v", viewed.Glyphs)
	}
}

func TestStepCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code mverrors.Code
	}{
		{"no count", []string{"step"}, mverrors.ErrCodeUsage},
		{"too many values", []string{"step", "257"}, mverrors.ErrCodeInvalidCount},
		{"too few values", []string{"step", "1"}, mverrors.ErrCodeInvalidCount},
		{"negative count", []string{"step", "-4"}, mverrors.ErrCodeInvalidCount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(&bytes.Buffer{}, LogInfo)
			c.viewer = func(tea.Model) error { return nil }
			_, _, err := execute(t, c, tt.args...)
			if !mverrors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestStepViewerNeedsTerminal(t *testing.T) {
	_, _, err := execute(t, New(&bytes.Buffer{}, LogInfo), "step", "4")
	if !mverrors.Is(err, mverrors.ErrCodeUnsupported) {
		t.Errorf("error = %v, want UNSUPPORTED", err)
	}
}

func TestCompletionCommand(t *testing.T) {
	out, _, err := execute(t, New(&bytes.Buffer{}, LogInfo), "completion", "bash")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, appName) {
		t.Error("bash completion should mention the program name")
	}
}
