package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/spf-project/spf/internal/loader"
)

// browserModel holds the state for the plugin browser
type browserModel struct {
	app          string
	reports      []PluginReport
	selectedRow  int
	windowHeight int
}

func newBrowserModel(app string, result loader.Result) browserModel {
	return browserModel{
		app:     app,
		reports: NewReports(result),
	}
}

// Init implements tea.Model
func (m browserModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.windowHeight = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit

		case "up", "k":
			if m.selectedRow > 0 {
				m.selectedRow--
			}

		case "down", "j":
			if m.selectedRow < len(m.reports)-1 {
				m.selectedRow++
			}

		case "home", "g":
			m.selectedRow = 0

		case "end", "G":
			m.selectedRow = max(len(m.reports)-1, 0)
		}
	}

	return m, nil
}

// View implements tea.Model
func (m browserModel) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderList(),
		m.renderDetails(),
		m.renderFooter(),
	)
}

func (m browserModel) renderHeader() string {
	title := headerStyle.Render("spf plugins")
	info := fmt.Sprintf("App: %s | Registered: %d", m.app, len(m.reports))
	return lipgloss.JoinHorizontal(lipgloss.Left, title, "  ", info)
}

func (m browserModel) renderList() string {
	if len(m.reports) == 0 {
		return mutedStyle.Render("\n  No plugins registered.\n")
	}

	start := 0
	if maxRows := m.windowHeight - 10; maxRows > 0 && len(m.reports) > maxRows {
		start = min(max(m.selectedRow-maxRows+1, 0), len(m.reports)-maxRows)
	}

	selected := lipgloss.NewStyle().Background(lipgloss.Color("240"))
	rows := make([]string, 0, len(m.reports))
	for i := start; i < len(m.reports); i++ {
		row := fmt.Sprintf("%3d │ %s", m.reports[i].Order, m.reports[i].Name)
		if i == m.selectedRow {
			row = selected.Render("> " + row)
		} else {
			row = "  " + row
		}
		rows = append(rows, row)
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m browserModel) renderDetails() string {
	if len(m.reports) == 0 {
		return ""
	}
	report := m.reports[m.selectedRow]

	var b strings.Builder
	fmt.Fprintf(&b, "\n%s\n", headerStyle.Render(report.Name))
	if len(report.Positional) == 0 && len(report.Named) == 0 {
		b.WriteString(mutedStyle.Render("  (no options)"))
		return b.String()
	}
	for i, v := range report.Positional {
		fmt.Fprintf(&b, "  [%d] %v\n", i, v)
	}
	for _, k := range sortedKeys(report.Named) {
		fmt.Fprintf(&b, "  %s = %v\n", k, report.Named[k])
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m browserModel) renderFooter() string {
	return mutedStyle.Render("\nControls: [↑↓] Navigate | [q] Quit")
}
