package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/wippyai/uasset"
	"github.com/wippyai/uasset/asset"
	"github.com/wippyai/uasset/property"
	"github.com/wippyai/uasset/render"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	classStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// maxDumpLines caps the hex view of one export.
const maxDumpLines = 64

type interactiveModel struct {
	err      error
	file     *uasset.File
	filename string
	filter   textinput.Model
	visible  []int
	selected int
	top      int
	height   int
	hex      bool
	state    modelState
}

type modelState int

const (
	stateBrowse modelState = iota
	stateFilter
	stateDetail
)

func newInteractiveModel(filename string) *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "class or object name"
	ti.Prompt = "/ "
	ti.Width = 40
	return &interactiveModel{
		filename: filename,
		filter:   ti,
		height:   20,
		state:    stateBrowse,
	}
}

type loadedMsg struct {
	err  error
	file *uasset.File
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.loadPackage
}

func (m *interactiveModel) loadPackage() tea.Msg {
	f, err := uasset.Load(m.filename)
	return loadedMsg{file: f, err: err}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-8, 5)

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.file = msg.file
		m.applyFilter()

	case tea.KeyMsg:
		if m.state == stateFilter {
			return m.updateFilter(msg)
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "up", "k":
			if m.state == stateBrowse && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateBrowse && m.selected < len(m.visible)-1 {
				m.selected++
			}

		case "/":
			if m.state == stateBrowse {
				m.state = stateFilter
				m.filter.Focus()
				return m, textinput.Blink
			}

		case "x":
			if m.state == stateDetail {
				m.hex = !m.hex
			}

		case "enter":
			switch m.state {
			case stateBrowse:
				if len(m.visible) > 0 {
					m.state = stateDetail
					m.hex = false
				}
			case stateDetail:
				m.state = stateBrowse
			}

		case "esc":
			if m.state == stateDetail {
				m.state = stateBrowse
			}
		}
	}
	m.scroll()
	return m, nil
}

func (m *interactiveModel) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "enter", "esc":
		m.state = stateBrowse
		m.filter.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter()
	return m, cmd
}

// applyFilter keeps the exports whose class or object name contains the
// filter text, case-insensitively.
func (m *interactiveModel) applyFilter() {
	if m.file == nil {
		return
	}
	q := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	m.visible = m.visible[:0]
	for i, e := range m.file.Package.Exports {
		if q == "" ||
			strings.Contains(strings.ToLower(e.Metadata.ObjectType), q) ||
			strings.Contains(strings.ToLower(e.Metadata.ObjectName), q) {
			m.visible = append(m.visible, i)
		}
	}
	m.selected = min(m.selected, max(len(m.visible)-1, 0))
	m.top = 0
}

func (m *interactiveModel) scroll() {
	if m.selected < m.top {
		m.top = m.selected
	}
	if m.selected >= m.top+m.height {
		m.top = m.selected - m.height + 1
	}
}

func (m *interactiveModel) current() *asset.ExportEntry {
	if len(m.visible) == 0 {
		return nil
	}
	return &m.file.Package.Exports[m.visible[m.selected]]
}

func (m *interactiveModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}
	if m.file == nil {
		return "Loading package..."
	}

	var b strings.Builder
	pkg := m.file.Package

	b.WriteString(titleStyle.Render("UAsset Browser"))
	b.WriteString(" ")
	b.WriteString(filepath.Base(m.filename))
	b.WriteString(helpStyle.Render(fmt.Sprintf("  ue4 %d  ue5 %d  %d names  %d imports  %d exports",
		pkg.Header.UE4Version, pkg.Header.UE5Version, pkg.Names.Len(), len(pkg.Imports), len(pkg.Exports))))
	b.WriteString("\n\n")

	switch m.state {
	case stateBrowse, stateFilter:
		m.viewList(&b)
	case stateDetail:
		m.viewDetail(&b)
	}
	return b.String()
}

func (m *interactiveModel) viewList(b *strings.Builder) {
	if m.state == stateFilter || m.filter.Value() != "" {
		b.WriteString(m.filter.View())
		b.WriteString("\n\n")
	}
	if len(m.visible) == 0 {
		b.WriteString("No matching exports.\n")
	}
	end := min(m.top+m.height, len(m.visible))
	for row := m.top; row < end; row++ {
		line := m.formatExport(&m.file.Package.Exports[m.visible[row]])
		if row == m.selected {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if m.state == stateFilter {
		b.WriteString(helpStyle.Render("type to filter • enter/esc done"))
	} else {
		b.WriteString(helpStyle.Render("↑/↓ select • enter open • / filter • q quit"))
	}
}

func (m *interactiveModel) viewDetail(b *strings.Builder) {
	e := m.current()
	fmt.Fprintf(b, "%s %s  serial %#x+%d\n", classStyle.Render(e.Metadata.ObjectType),
		nameStyle.Render(e.Metadata.ObjectName), e.SerialOffset, e.SerialSize)
	fmt.Fprintf(b, "stream %s", e.Stream.State)
	if e.Stream.Err != nil {
		b.WriteString(" ")
		b.WriteString(errorStyle.Render(e.Stream.Err.Error()))
	}
	b.WriteString("\n\n")

	if m.hex {
		var dump bytes.Buffer
		if err := render.HexDump(&dump, m.file.Data, e.SerialOffset, e.SerialSize); err != nil {
			b.WriteString(errorStyle.Render(err.Error()))
		} else {
			lines := strings.SplitAfter(dump.String(), "\n")
			if len(lines) > maxDumpLines {
				lines = append(lines[:maxDumpLines], fmt.Sprintf("... %d more lines\n", len(lines)-maxDumpLines))
			}
			b.WriteString(strings.Join(lines, ""))
		}
	} else {
		writeValues(b, e.Properties)
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("x toggle hex • esc back • q quit"))
}

func writeValues(b *strings.Builder, vals []property.Value) {
	if len(vals) == 0 {
		b.WriteString("No properties.\n")
		return
	}
	for _, v := range vals {
		fmt.Fprintf(b, "  %s %s %s\n", nameStyle.Render(v.Name), helpStyle.Render(v.Kind.String()), v.Text())
	}
}

func (m *interactiveModel) formatExport(e *asset.ExportEntry) string {
	status := fmt.Sprintf("%d props", len(e.Properties))
	if !e.Stream.Complete() {
		status = errorStyle.Render(fmt.Sprintf("%s, %s", status, e.Stream.State))
	}
	return fmt.Sprintf("%-4d %s %s %s", e.Index, classStyle.Render(e.Metadata.ObjectType),
		nameStyle.Render(e.Metadata.ObjectName), helpStyle.Render(status))
}

func runInteractive(filename string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !render.Terminal(os.Stdout) {
		return fmt.Errorf("interactive mode needs a terminal")
	}
	p := tea.NewProgram(newInteractiveModel(filename), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
