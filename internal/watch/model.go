package watch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ampcode/amptown/internal/roster"
	"github.com/ampcode/amptown/internal/supervisor"
	"github.com/ampcode/amptown/internal/tmux"
)

// Tabs of the dashboard.
const (
	tabAgents = iota
	tabOpenPRs
	tabMergedPRs
	tabCount
)

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	liveStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	tabStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	activeTab     = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	runningDot    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	stoppedDot    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	agentName     = lipgloss.NewStyle().Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	panelStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	numberStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	mergedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
	openStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// refreshMsg carries a completed refresh of the world.
type refreshMsg struct {
	agents     []supervisor.AgentSession
	activities map[string]Activity
	open       []PullRequest
	merged     []PullRequest
}

type refreshTickMsg time.Time

// Model is the bubbletea model for the watch dashboard.
type Model struct {
	sup          *supervisor.Supervisor
	prs          PRLister
	townOverride string
	refreshEvery time.Duration
	mergedLimit  int

	spinner spinner.Model
	tab     int
	cursor  int
	width   int
	height  int

	agents     []supervisor.AgentSession
	activities map[string]Activity
	open       []PullRequest
	merged     []PullRequest
}

// NewModel creates the dashboard model.
func NewModel(sup *supervisor.Supervisor, prs PRLister, townOverride string, refreshEvery time.Duration, mergedLimit int) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = liveStyle
	return Model{
		sup:          sup,
		prs:          prs,
		townOverride: townOverride,
		refreshEvery: refreshEvery,
		mergedLimit:  mergedLimit,
		spinner:      sp,
		activities:   map[string]Activity{},
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.refresh(), m.scheduleRefresh())
}

// refresh re-derives the whole view from tmux, the agent logs, and gh.
// PR listing failures are swallowed: the roster view must work without gh.
func (m Model) refresh() tea.Cmd {
	sup, prs := m.sup, m.prs
	town, limit := m.townOverride, m.mergedLimit
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		msg := refreshMsg{activities: map[string]Activity{}}
		agents, err := sup.Status(ctx, town)
		if err == nil {
			msg.agents = agents
			for _, a := range agents {
				msg.activities[a.Identity.Name] = ReadActivity(a.LogPath)
			}
		}
		if prs != nil {
			if open, err := prs.ListOpen(ctx); err == nil {
				msg.open = open
			}
			if merged, err := prs.ListMerged(ctx, limit); err == nil {
				msg.merged = merged
			}
		}
		return msg
	}
}

func (m Model) scheduleRefresh() tea.Cmd {
	return tea.Tick(m.refreshEvery, func(t time.Time) tea.Msg {
		return refreshTickMsg(t)
	})
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "tab":
			m.tab = (m.tab + 1) % tabCount
			m.cursor = 0
		case "shift+tab":
			m.tab = (m.tab + tabCount - 1) % tabCount
			m.cursor = 0
		case "down", "j":
			if n := m.itemCount(); n > 0 {
				m.cursor = (m.cursor + 1) % n
			}
		case "up", "k":
			if n := m.itemCount(); n > 0 {
				m.cursor = (m.cursor + n - 1) % n
			}
		case "r":
			return m, m.refresh()
		}
		return m, nil

	case refreshTickMsg:
		return m, tea.Batch(m.refresh(), m.scheduleRefresh())

	case refreshMsg:
		if msg.agents != nil {
			m.agents = msg.agents
			m.activities = msg.activities
		}
		m.open = msg.open
		m.merged = msg.merged
		if n := m.itemCount(); m.cursor >= n && n > 0 {
			m.cursor = n - 1
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) itemCount() int {
	switch m.tab {
	case tabOpenPRs:
		return len(m.open)
	case tabMergedPRs:
		return len(m.merged)
	default:
		return len(m.agents)
	}
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.headerView())
	b.WriteString("\n\n")

	switch m.tab {
	case tabAgents:
		b.WriteString(m.agentsView())
	case tabOpenPRs:
		b.WriteString(m.prView(m.open, "Open Pull Requests"))
	case tabMergedPRs:
		b.WriteString(m.prView(m.merged, "Merged Pull Requests"))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("q: quit │ tab: view │ ↑↓: navigate │ r: refresh"))
	return b.String()
}

func (m Model) headerView() string {
	running := 0
	for _, a := range m.agents {
		if a.Status == tmux.StatusRunning {
			running++
		}
	}

	tabs := []string{
		fmt.Sprintf("Agents (%d/%d)", running, len(m.agents)),
		fmt.Sprintf("Open PRs (%d)", len(m.open)),
		fmt.Sprintf("Merged PRs (%d)", len(m.merged)),
	}
	parts := make([]string, len(tabs))
	for i, t := range tabs {
		if i == m.tab {
			parts[i] = activeTab.Render("● " + t)
		} else {
			parts[i] = tabStyle.Render("○ " + t)
		}
	}

	return fmt.Sprintf("%s %s %s │ %s",
		m.spinner.View(),
		titleStyle.Render("AMPTOWN"),
		liveStyle.Render("LIVE"),
		strings.Join(parts, "  "))
}

// agentsView renders the roster split into reviewer and implementer panels,
// mirroring the role partition the agents coordinate by.
func (m Model) agentsView() string {
	reviewers := m.rolePanel(roster.Reviewer, " Reviewers ")
	implementers := m.rolePanel(roster.Implementer, " Implementers ")
	return lipgloss.JoinHorizontal(lipgloss.Top, reviewers, " ", implementers)
}

func (m Model) rolePanel(role roster.Role, title string) string {
	var lines []string
	lines = append(lines, titleStyle.Render(title))
	for _, a := range m.agents {
		if a.Identity.Role != role {
			continue
		}
		dot := stoppedDot.Render("○")
		if a.Status == tmux.StatusRunning {
			dot = runningDot.Render("●")
		}
		act := m.activities[a.Identity.Name]
		line := fmt.Sprintf("%s %s %s", dot,
			agentName.Render(a.Identity.Name),
			dimStyle.Render(fmt.Sprintf("(iter: %d)", act.Iterations)))
		lines = append(lines, line)
		if act.LastLine != "" {
			lines = append(lines, "  "+dimStyle.Render(act.LastLine))
		}
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) prView(prs []PullRequest, title string) string {
	if len(prs) == 0 {
		return panelStyle.Render(dimStyle.Render("No " + strings.ToLower(title) + "."))
	}

	var lines []string
	lines = append(lines, titleStyle.Render(" "+title+" "))
	for i, pr := range prs {
		state := openStyle
		if pr.State == "MERGED" {
			state = mergedStyle
		}
		line := fmt.Sprintf("%s %s %s %s",
			numberStyle.Render(fmt.Sprintf("#%-4d", pr.Number)),
			state.Render(fmt.Sprintf("%-7s", pr.State)),
			pr.Title,
			dimStyle.Render("@"+pr.Author.Login))
		if i == m.cursor {
			line = selectedStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}

// Run starts the dashboard and blocks until it exits.
func Run(m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
