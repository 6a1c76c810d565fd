package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/mergeviz/pkg/viz"
)

// Viewer styles
var (
	viewerLabelStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	viewerDimStyle   = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// Key Bindings
// =============================================================================

type viewerKeyMap struct {
	Prev    key.Binding
	Next    key.Binding
	Back    key.Binding
	Forward key.Binding
	First   key.Binding
	Last    key.Binding
	Quit    key.Binding
}

func defaultViewerKeys() viewerKeyMap {
	return viewerKeyMap{
		Prev:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev")),
		Next:    key.NewBinding(key.WithKeys("right", "l", " "), key.WithHelp("→/l", "next")),
		Back:    key.NewBinding(key.WithKeys("pgup", "b"), key.WithHelp("pgup", "back")),
		Forward: key.NewBinding(key.WithKeys("pgdown", "f"), key.WithHelp("pgdn", "forward")),
		First:   key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "first")),
		Last:    key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "last")),
		Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k viewerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Back, k.Forward, k.First, k.Last, k.Quit}
}

func (k viewerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Prev, k.Next}, {k.Back, k.Forward}, {k.First, k.Last, k.Quit}}
}

// =============================================================================
// FrameViewerModel - Step through recorded frames
// =============================================================================

// FrameViewerModel is the bubbletea model for browsing recorded frames.
type FrameViewerModel struct {
	Frames []viz.Snapshot
	Glyphs viz.Glyphs
	Index  int
	Jump   int

	keys viewerKeyMap
	help help.Model
}

// NewFrameViewerModel creates a viewer positioned on the first frame.
func NewFrameViewerModel(frames []viz.Snapshot, glyphs viz.Glyphs) FrameViewerModel {
	return FrameViewerModel{
		Frames: frames,
		Glyphs: glyphs,
		Jump:   max(1, len(frames)/20),
		keys:   defaultViewerKeys(),
		help:   help.New(),
	}
}

func (m FrameViewerModel) Init() tea.Cmd {
	return nil
}

func (m FrameViewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Prev):
			m.seek(m.Index - 1)
		case key.Matches(msg, m.keys.Next):
			m.seek(m.Index + 1)
		case key.Matches(msg, m.keys.Back):
			m.seek(m.Index - m.Jump)
		case key.Matches(msg, m.keys.Forward):
			m.seek(m.Index + m.Jump)
		case key.Matches(msg, m.keys.First):
			m.seek(0)
		case key.Matches(msg, m.keys.Last):
			m.seek(len(m.Frames) - 1)
		}
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m *FrameViewerModel) seek(i int) {
	m.Index = max(0, min(i, len(m.Frames)-1))
}

func (m FrameViewerModel) View() string {
	if len(m.Frames) == 0 {
		return viewerDimStyle.Render("no frames recorded") + "\n"
	}
	f := m.Frames[m.Index]

	var b strings.Builder
	b.WriteString(StyleTitle.Render(f.Caption))
	b.WriteString("\n")
	b.WriteString(viz.Histogram(f.Values, m.Glyphs))
	if f.Highlight >= 0 {
		b.WriteString(strings.Repeat(" ", f.Highlight))
		b.WriteString(StyleMarker.Render(string(m.Glyphs.Marker)))
	}
	b.WriteString("\n\n")

	highlight, value := "-", "-"
	if f.Highlight >= 0 && f.Highlight < len(f.Values) {
		highlight = strconv.Itoa(f.Highlight)
		value = strconv.Itoa(int(f.Values[f.Highlight]))
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(viewerDimStyle).
		Headers("Frame", "Phase", "Index", "Value").
		Row(fmt.Sprintf("%d/%d", m.Index+1, len(m.Frames)), f.Caption, highlight, value).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return viewerLabelStyle
			}
			return StyleValue
		})
	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}
