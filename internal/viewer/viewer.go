// Package viewer is a terminal pager over a generated report.
package viewer

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lddscreen/internal/report"
)

// chromeHeight is the rows taken by the bordered header and footer.
const chromeHeight = 6

// Model is the root Bubble Tea model of the viewer.
type Model struct {
	reportID string
	pages    []page
	page     int
	offset   int

	keys keyMap
	help help.Model

	width  int
	height int
}

// New creates a viewer for doc. narrative may be empty.
func New(doc *report.Document, narrative string) Model {
	return Model{
		reportID: doc.Metadata.ReportID,
		pages:    buildPages(doc, narrative),
		keys:     defaultKeys(),
		help:     help.New(),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.offset = min(m.offset, m.maxOffset())
		return m, nil

	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			if m.page < len(m.pages)-1 {
				m.page++
				m.offset = 0
			}
		case key.Matches(msg, m.keys.Prev):
			if m.page > 0 {
				m.page--
				m.offset = 0
			}
		case key.Matches(msg, m.keys.Down):
			m.offset = min(m.offset+1, m.maxOffset())
		case key.Matches(msg, m.keys.Up):
			m.offset = max(m.offset-1, 0)
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}
	return m, nil
}

func (m Model) bodyHeight() int {
	return max(m.height-chromeHeight, 1)
}

func (m Model) maxOffset() int {
	if len(m.pages) == 0 {
		return 0
	}
	n := len(m.pages[m.page].lines)
	return max(n-m.bodyHeight(), 0)
}

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	if isTooSmall(m.width, m.height) {
		v.SetContent(renderMinSizeMessage(m.width, m.height))
		return v
	}

	current := m.pages[m.page]
	header := renderHeader(m.reportID, current.title, m.page+1, len(m.pages), m.width)
	footer := renderFooter(m.help.View(m.keys), m.width)

	lines := strings.Split(current.render(), "\n")
	end := min(m.offset+m.bodyHeight(), len(lines))
	content := strings.Join(lines[m.offset:end], "\n")

	v.SetContent(renderFrame(header, content, footer, m.width, m.height))
	return v
}

// Run opens the viewer full screen until the user quits.
func Run(doc *report.Document, narrative string) error {
	if _, err := tea.NewProgram(New(doc, narrative)).Run(); err != nil {
		return fmt.Errorf("run viewer: %w", err)
	}
	return nil
}
