package viz

import (
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestRendererDraw(t *testing.T) {
	tests := []struct {
		name      string
		values    Bars
		caption   string
		highlight int
		opts      []RenderOption
		want      string
	}{
		{
			name:      "highlight",
			values:    Bars{1, 2, 3},
			caption:   CaptionSorting,
			highlight: 1,
			want:      "Sorting...\n ,|\n|||\n ^\n",
		},
		{
			name:      "no highlight",
			values:    Bars{2, 1},
			caption:   CaptionDone,
			highlight: NoHighlight,
			want:      "Done\n, \n||\n",
		},
		{
			name:      "custom glyphs",
			values:    Bars{1, 2, 3},
			caption:   CaptionWaiting,
			highlight: 0,
			opts:      []RenderOption{WithGlyphs(Glyphs{Full: '#', Half: '.', Blank: '_', Marker: '*'})},
			want:      "Waiting...\n_.#\n###\n*\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sb strings.Builder
			r := NewRenderer(&sb, tt.opts...)
			if err := r.Draw(tt.values, tt.caption, tt.highlight); err != nil {
				t.Fatalf("Draw: %v", err)
			}
			want := clearScreen + tt.want
			if sb.String() != want {
				t.Errorf("Draw output = %q, want %q", sb.String(), want)
			}
		})
	}
}

func TestRendererFramesAppend(t *testing.T) {
	var sb strings.Builder
	r := NewRenderer(&sb)
	for i := 0; i < 3; i++ {
		if err := r.Draw(Bars{1, 2}, CaptionSorting, i%2); err != nil {
			t.Fatal(err)
		}
	}
	if got := strings.Count(sb.String(), clearScreen); got != 3 {
		t.Errorf("clear sequences = %d, want 3", got)
	}
}

func TestRendererStyled(t *testing.T) {
	var sb strings.Builder
	style := lipgloss.NewStyle().Bold(true)
	r := NewRenderer(&sb, WithStyles(style, style))
	if err := r.Draw(Bars{1, 2, 3, 4}, CaptionSorting, 3); err != nil {
		t.Fatal(err)
	}
	out := sb.String()
	if !strings.HasPrefix(out, clearScreen) {
		t.Errorf("output does not start with clear sequence: %q", out)
	}
	if !strings.Contains(out, CaptionSorting) {
		t.Errorf("output missing caption: %q", out)
	}
	if !strings.Contains(out, "   ") || !strings.Contains(out, "^") {
		t.Errorf("output missing marker: %q", out)
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestRendererWriteError(t *testing.T) {
	r := NewRenderer(failWriter{})
	if err := r.Draw(Bars{1, 2}, CaptionDone, NoHighlight); err == nil {
		t.Fatal("expected write error")
	}
}

func TestHistogram(t *testing.T) {
	got := Histogram(Bars{4, 3, 2, 1}, DefaultGlyphs)
	want := ",   \n||, \n||||\n"
	if got != want {
		t.Errorf("Histogram = %q, want %q", got, want)
	}
	if rows := strings.Count(got, "\n"); rows != Rows(4) {
		t.Errorf("rows = %d, want %d", rows, Rows(4))
	}
}

func TestRows(t *testing.T) {
	tests := []struct{ n, want int }{
		{2, 2},
		{3, 2},
		{4, 3},
		{32767, 16384},
	}
	for _, tt := range tests {
		if got := Rows(tt.n); got != tt.want {
			t.Errorf("Rows(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}
