package viz

import (
	"bufio"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// clearScreen clears the terminal and homes the cursor.
const clearScreen = "\x1b[2J\x1b[0;0H"

// Value is the element type shown in the histogram.
type Value = uint16

// NoHighlight marks a frame without a highlighted column.
const NoHighlight = -1

// Columns is the read-only view of the values a frame shows.
type Columns interface {
	Len() int
	MustAt(i int) Value
}

// Sink receives frames in order. An error stops the sequence.
type Sink interface {
	Draw(cols Columns, caption string, highlight int) error
}

// Glyphs are the characters used to draw a frame.
type Glyphs struct {
	Full   rune
	Half   rune
	Blank  rune
	Marker rune
}

// DefaultGlyphs draws bars with '|' and ',' and marks the highlight with '^'.
var DefaultGlyphs = Glyphs{Full: '|', Half: ',', Blank: ' ', Marker: '^'}

// RenderOption configures a Renderer.
type RenderOption func(*Renderer)

// WithGlyphs replaces the default glyph set.
func WithGlyphs(g Glyphs) RenderOption { return func(r *Renderer) { r.glyphs = g } }

// WithStyles styles the caption and the highlight marker.
func WithStyles(caption, marker lipgloss.Style) RenderOption {
	return func(r *Renderer) {
		r.styled = true
		r.captionStyle = caption
		r.markerStyle = marker
	}
}

// Renderer writes frames as ANSI text. Each frame is buffered and flushed
// once, so the terminal never shows a partial frame.
type Renderer struct {
	w            *bufio.Writer
	glyphs       Glyphs
	styled       bool
	captionStyle lipgloss.Style
	markerStyle  lipgloss.Style
}

// NewRenderer creates a Renderer writing to w.
func NewRenderer(w io.Writer, opts ...RenderOption) *Renderer {
	r := &Renderer{w: bufio.NewWriter(w), glyphs: DefaultGlyphs}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Draw implements Sink.
func (r *Renderer) Draw(cols Columns, caption string, highlight int) error {
	r.w.WriteString(clearScreen)
	if r.styled {
		caption = r.captionStyle.Render(caption)
	}
	r.w.WriteString(caption)
	r.w.WriteByte('\n')

	writeHistogram(r.w, cols, r.glyphs)

	if highlight >= 0 {
		r.w.WriteString(strings.Repeat(" ", highlight))
		marker := string(r.glyphs.Marker)
		if r.styled {
			marker = r.markerStyle.Render(marker)
		}
		r.w.WriteString(marker)
		r.w.WriteByte('\n')
	}
	return r.w.Flush()
}

// Histogram returns the bar rows of cols without caption or marker.
func Histogram(cols Columns, g Glyphs) string {
	var sb strings.Builder
	writeHistogram(&sb, cols, g)
	return sb.String()
}

// Rows returns the number of histogram rows for n columns.
func Rows(n int) int { return n/2 + 1 }

type runeWriter interface {
	WriteRune(r rune) (int, error)
	WriteByte(c byte) error
}

func writeHistogram(w runeWriter, cols Columns, g Glyphs) {
	n := cols.Len()
	for y := n / 2; y >= 0; y-- {
		for x := 0; x < n; x++ {
			v := int(cols.MustAt(x))
			switch {
			case v >= 2*y+1:
				w.WriteRune(g.Full)
			case v >= 2*y:
				w.WriteRune(g.Half)
			default:
				w.WriteRune(g.Blank)
			}
		}
		w.WriteByte('\n')
	}
}
