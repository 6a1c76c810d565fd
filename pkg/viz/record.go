package viz

import "errors"

// ErrFrameLimit is returned by Recorder.Draw once the limit is reached.
var ErrFrameLimit = errors.New("frame limit reached")

// Bars is a copied set of column values.
type Bars []Value

// Len implements Columns.
func (b Bars) Len() int { return len(b) }

// MustAt implements Columns.
func (b Bars) MustAt(i int) Value { return b[i] }

// Snapshot is one recorded frame.
type Snapshot struct {
	Caption   string
	Values    Bars
	Highlight int
}

// Recorder is a Sink that keeps every frame in memory.
type Recorder struct {
	limit  int
	frames []Snapshot
}

// NewRecorder creates a Recorder holding at most limit frames. A limit of
// zero or less means no limit.
func NewRecorder(limit int) *Recorder {
	return &Recorder{limit: limit}
}

// Draw implements Sink.
func (r *Recorder) Draw(cols Columns, caption string, highlight int) error {
	if r.limit > 0 && len(r.frames) >= r.limit {
		return ErrFrameLimit
	}
	values := make(Bars, cols.Len())
	for i := range values {
		values[i] = cols.MustAt(i)
	}
	r.frames = append(r.frames, Snapshot{Caption: caption, Values: values, Highlight: highlight})
	return nil
}

// Frames returns the recorded frames in drawing order.
func (r *Recorder) Frames() []Snapshot { return r.frames }

// Len returns the number of recorded frames.
func (r *Recorder) Len() int { return len(r.frames) }
