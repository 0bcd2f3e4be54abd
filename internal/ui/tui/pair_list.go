package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/alexandrbasis/claude-agents-sync/internal/pair"
)

// PairInfo is one discovered pair plus the display state the browser
// shows for it.
type PairInfo struct {
	Pair     pair.SyncPair
	Name     string // pair identity relative to the root
	InSync   bool
	Modified time.Time // newer of the two files
	Size     int64     // primary file size
}

// PairAction represents the action to perform on a selected pair.
type PairAction int

const (
	// PairActionNone means no action was taken (user quit).
	PairActionNone PairAction = iota
	// PairActionSync means the user asked to reconcile the selected pair.
	PairActionSync
)

// PairListResult contains the result of the pair browser interaction.
type PairListResult struct {
	Action PairAction
	Pair   pair.SyncPair
}

// pairListKeyMap defines the key bindings for the pair browser.
type pairListKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Sync     key.Binding
	Filter   key.Binding
	ClearFlt key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultPairListKeyMap() pairListKeyMap {
	return pairListKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Sync: key.NewBinding(
			key.WithKeys("enter", "s"),
			key.WithHelp("enter/s", "sync"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		ClearFlt: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear filter"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Styles for the pair browser.
var pairListStyles = struct {
	Title       lipgloss.Style
	Help        lipgloss.Style
	Filter      lipgloss.Style
	FilterInput lipgloss.Style
	Status      lipgloss.Style
}{
	Title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")).Padding(0, 1),
	Help:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	Filter:      lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	FilterInput: lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
	Status:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1),
}

const (
	pairListNameWidth     = 35
	pairListStatusWidth   = 14
	pairListModifiedWidth = 18
	pairListSizeWidth     = 10
	pairListColumnPadding = 2
	pairListColumnCount   = 4
)

type pairListColumnWidths struct {
	name     int
	status   int
	modified int
	size     int
}

// PairListModel is the BubbleTea model for the interactive pair browser.
type PairListModel struct {
	table        table.Model
	pairs        []PairInfo
	filtered     []PairInfo
	keys         pairListKeyMap
	result       PairListResult
	filter       string
	filtering    bool
	showHelp     bool
	width        int
	height       int
	columnWidths pairListColumnWidths
	quitting     bool
}

// NewPairListModel creates the browser model over the discovered pairs.
func NewPairListModel(pairs []PairInfo) PairListModel {
	columns, columnWidths := pairListColumns(0, pairs)

	sort.Slice(pairs, func(i, j int) bool {
		return strings.ToLower(pairs[i].Name) < strings.ToLower(pairs[j].Name)
	})

	m := PairListModel{
		pairs:        pairs,
		filtered:     pairs,
		keys:         defaultPairListKeyMap(),
		columnWidths: columnWidths,
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(m.pairsToRows(pairs)),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	m.table = t
	return m
}

func (m PairListModel) pairsToRows(pairs []PairInfo) []table.Row {
	rows := make([]table.Row, len(pairs))
	for i, p := range pairs {
		status := "out of sync"
		if p.InSync {
			status = "in sync"
		}
		modified := ""
		if !p.Modified.IsZero() {
			modified = humanize.Time(p.Modified)
		}
		rows[i] = table.Row{
			truncatePairListValue(p.Name, m.columnWidths.name),
			truncatePairListValue(status, m.columnWidths.status),
			truncatePairListValue(modified, m.columnWidths.modified),
			truncatePairListValue(humanize.Bytes(uint64(p.Size)), m.columnWidths.size),
		}
	}
	return rows
}

func pairListColumns(totalWidth int, pairs []PairInfo) ([]table.Column, pairListColumnWidths) {
	widths := pairListColumnWidths{
		name:     pairListNameWidth,
		status:   pairListStatusWidth,
		modified: pairListModifiedWidth,
		size:     pairListSizeWidth,
	}

	if totalWidth > 0 {
		baseTotal := widths.name + widths.status + widths.modified + widths.size +
			(pairListColumnPadding * pairListColumnCount)
		extra := totalWidth - baseTotal
		if extra > 0 {
			maxNameWidth := widths.name
			for _, p := range pairs {
				if w := runewidth.StringWidth(p.Name); w > maxNameWidth {
					maxNameWidth = w
				}
			}
			nameExtra := min(maxNameWidth-widths.name, extra)
			if nameExtra > 0 {
				widths.name += nameExtra
			}
		}
	}

	columns := []table.Column{
		{Title: "Pair", Width: widths.name},
		{Title: "Status", Width: widths.status},
		{Title: "Modified", Width: widths.modified},
		{Title: "Size", Width: widths.size},
	}

	return columns, widths
}

func (m *PairListModel) updateColumns(totalWidth int) {
	columns, widths := pairListColumns(totalWidth, m.pairs)
	m.columnWidths = widths
	m.table.SetColumns(columns)
}

func truncatePairListValue(value string, width int) string {
	if width <= 0 {
		return ""
	}
	if len(value) <= width {
		return value
	}
	if width <= 3 {
		return value[:width]
	}
	return value[:width-3] + "..."
}

// Init implements tea.Model.
func (m PairListModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m PairListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(max(msg.Height-8, 5))
		m.updateColumns(msg.Width)
		m.table.SetRows(m.pairsToRows(m.filtered))

	case tea.KeyMsg:
		if m.filtering {
			switch msg.String() {
			case "enter":
				m.filtering = false
				return m, nil
			case "esc":
				m.filter = ""
				m.filtering = false
				m.applyFilter()
				return m, nil
			case "backspace":
				if len(m.filter) > 0 {
					m.filter = m.filter[:len(m.filter)-1]
					m.applyFilter()
				}
				return m, nil
			default:
				if len(msg.String()) == 1 {
					m.filter += msg.String()
					m.applyFilter()
				}
				return m, nil
			}
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			return m, nil

		case key.Matches(msg, m.keys.Filter):
			m.filtering = true
			return m, nil

		case key.Matches(msg, m.keys.ClearFlt):
			m.filter = ""
			m.applyFilter()
			return m, nil

		case key.Matches(msg, m.keys.Sync):
			if len(m.filtered) > 0 {
				m.result = PairListResult{
					Action: PairActionSync,
					Pair:   m.getSelectedPair().Pair,
				}
				m.quitting = true
				return m, tea.Quit
			}
			return m, nil
		}
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *PairListModel) applyFilter() {
	if m.filter == "" {
		m.filtered = m.pairs
	} else {
		var filtered []PairInfo
		lowerFilter := strings.ToLower(m.filter)
		for _, p := range m.pairs {
			if strings.Contains(strings.ToLower(p.Name), lowerFilter) ||
				strings.Contains(strings.ToLower(p.Pair.Dir), lowerFilter) {
				filtered = append(filtered, p)
			}
		}
		m.filtered = filtered
	}
	m.table.SetRows(m.pairsToRows(m.filtered))
}

func (m PairListModel) getSelectedPair() PairInfo {
	cursor := m.table.Cursor()
	if cursor >= 0 && cursor < len(m.filtered) {
		return m.filtered[cursor]
	}
	return PairInfo{}
}

// View implements tea.Model.
func (m PairListModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(pairListStyles.Title.Render("Instruction File Pairs"))
	b.WriteString("\n\n")

	if m.filter != "" || m.filtering {
		filterStr := pairListStyles.Filter.Render("Filter: ")
		filterVal := pairListStyles.FilterInput.Render(m.filter)
		if m.filtering {
			filterVal += "█"
		}
		b.WriteString(filterStr + filterVal + "\n\n")
	}

	b.WriteString(m.table.View())
	b.WriteString("\n")

	status := fmt.Sprintf("%d pair(s)", len(m.filtered))
	if m.filter != "" {
		status = fmt.Sprintf("%d of %d pair(s) (filtered)", len(m.filtered), len(m.pairs))
	}
	b.WriteString(pairListStyles.Status.Render(status))
	b.WriteString("\n")

	if m.showHelp {
		b.WriteString("\n")
		b.WriteString(m.renderFullHelp())
	} else {
		b.WriteString(m.renderShortHelp())
	}

	return b.String()
}

func (m PairListModel) renderShortHelp() string {
	keys := []string{
		"↑/↓ navigate",
		"enter sync",
		"/ filter",
		"? help",
		"q quit",
	}
	return pairListStyles.Help.Render(strings.Join(keys, " • "))
}

func (m PairListModel) renderFullHelp() string {
	help := `Navigation:
  ↑/k      Move up
  ↓/j      Move down

Actions:
  Enter/s  Reconcile the selected pair

Filter:
  /        Start filtering (by pair name or directory)
  Esc      Clear filter
  Enter    Finish filtering

General:
  ?        Toggle full help
  q        Quit`
	return pairListStyles.Help.Render(help)
}

// Result returns the result of the user interaction.
func (m PairListModel) Result() PairListResult {
	return m.result
}

// RunPairList runs the interactive pair browser and returns the result.
func RunPairList(pairs []PairInfo) (PairListResult, error) {
	if len(pairs) == 0 {
		return PairListResult{}, nil
	}

	model := NewPairListModel(pairs)
	finalModel, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return PairListResult{}, err
	}

	if m, ok := finalModel.(PairListModel); ok {
		return m.Result(), nil
	}

	return PairListResult{}, nil
}
