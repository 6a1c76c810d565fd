package cli

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/matzehuels/mergeviz/pkg/viz"
)

// terminalSize reports the size of w when it is a terminal.
func terminalSize(w io.Writer) (width, height int, ok bool) {
	f, isFile := w.(*os.File)
	if !isFile || !term.IsTerminal(int(f.Fd())) {
		return 0, 0, false
	}
	width, height, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0, 0, false
	}
	return width, height, true
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	_, _, ok := terminalSize(w)
	return ok
}

// frameSize returns the columns and lines one frame of count values needs:
// the caption, the histogram rows and the marker line.
func frameSize(count int) (width, height int) {
	return count, viz.Rows(count) + 2
}

// sizeWarnings describes how a frame of count values overflows a
// width x height terminal. It returns nil when the frame fits.
func sizeWarnings(width, height, count int) []string {
	fw, fh := frameSize(count)
	var warnings []string
	if fw > width {
		warnings = append(warnings, fmt.Sprintf("frame is %d columns wide, terminal has %d", fw, width))
	}
	if fh > height {
		warnings = append(warnings, fmt.Sprintf("frame is %d lines tall, terminal has %d", fh, height))
	}
	return warnings
}
