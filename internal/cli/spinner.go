package cli

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"
)

// spinner shows a progress indicator while a long operation runs.
type spinner struct {
	w       io.Writer
	message string
	cancel  context.CancelFunc
	stopped chan struct{}
	frames  []string
	once    sync.Once
}

// newSpinner starts a spinner on w. When animate is false it writes
// nothing and stop returns immediately.
func newSpinner(ctx context.Context, w io.Writer, message string, animate bool) *spinner {
	ctx, cancel := context.WithCancel(ctx)
	s := &spinner{
		w:       w,
		message: message,
		cancel:  cancel,
		stopped: make(chan struct{}),
		frames:  []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
	}
	if !animate {
		close(s.stopped)
		return s
	}
	go s.run(ctx)
	return s
}

func (s *spinner) run(ctx context.Context) {
	defer close(s.stopped)
	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for i := 0; ; i++ {
		select {
		case <-ctx.Done():
			fmt.Fprint(s.w, "\r\033[K")
			return
		case <-ticker.C:
			frame := s.frames[i%len(s.frames)]
			fmt.Fprintf(s.w, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.message))
		}
	}
}

// stop halts the animation and clears the line. It is safe to call more
// than once.
func (s *spinner) stop() {
	s.once.Do(s.cancel)
	<-s.stopped
}
