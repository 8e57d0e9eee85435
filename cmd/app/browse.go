package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/seinn09/digforweb/internal/domain"
	"github.com/seinn09/digforweb/internal/navigation"
)

// browseData is one full snapshot fetched from the server. The TUI is
// read-only, so it refreshes the whole set at once and re-resolves the
// navigation state against what still exists.
type browseData struct {
	stats    domain.Stats
	victims  []domain.Victim
	cases    []domain.Case
	evidence []domain.Evidence
	actions  []domain.ForensicAction
}

type browseDataMsg struct {
	data browseData
	err  error
}

var (
	browseTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("57")).Padding(0, 1)
	browseTabStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1)
	browseActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Padding(0, 1)
	browseCursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	browseErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	browseHelpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

var browsePages = []navigation.Page{
	navigation.PageDashboard,
	navigation.PageVictims,
	navigation.PageCases,
	navigation.PageEvidence,
	navigation.PageActions,
}

type browseModel struct {
	ctx    context.Context
	cfg    cliConfig
	nav    navigation.State
	data   browseData
	cursor int
	err    error
	width  int
	height int
}

func runBrowse(ctx context.Context, cfg cliConfig) error {
	model := browseModel{ctx: ctx, cfg: cfg, nav: navigation.NewState()}
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}

func (m browseModel) fetch() tea.Cmd {
	ctx, cfg := m.ctx, m.cfg
	return func() tea.Msg {
		var data browseData
		if err := doStatsGet(ctx, cfg, &data.stats); err != nil {
			return browseDataMsg{err: err}
		}
		if err := doVictimsList(ctx, cfg, &data.victims); err != nil {
			return browseDataMsg{err: err}
		}
		if err := doCasesList(ctx, cfg, &data.cases); err != nil {
			return browseDataMsg{err: err}
		}
		if err := doEvidenceList(ctx, cfg, &data.evidence); err != nil {
			return browseDataMsg{err: err}
		}
		if err := doActionsList(ctx, cfg, &data.actions); err != nil {
			return browseDataMsg{err: err}
		}
		return browseDataMsg{data: data}
	}
}

func (m browseModel) Init() tea.Cmd {
	return m.fetch()
}

func (m browseModel) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		m.width = message.Width
		m.height = message.Height

	case browseDataMsg:
		if message.err != nil {
			m.err = message.err
			return m, nil
		}
		m.err = nil
		m.data = message.data
		m.nav = m.nav.Resolve(m.pageIDs())
		m.clampCursor()

	case tea.KeyMsg:
		switch message.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			return m, m.fetch()
		case "esc", "backspace":
			m.nav = m.nav.Back()
		case "enter":
			if ids := m.pageIDs(); m.nav.SubView == navigation.SubViewList && m.cursor < len(ids) {
				m.nav = m.nav.OpenDetail(ids[m.cursor])
			}
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.pageIDs())-1 {
				m.cursor++
			}
		case "tab":
			m.nav = m.nav.GoTo(m.nextPage(1))
			m.cursor = 0
		case "shift+tab":
			m.nav = m.nav.GoTo(m.nextPage(-1))
			m.cursor = 0
		case "1", "2", "3", "4", "5":
			idx, _ := strconv.Atoi(message.String())
			m.nav = m.nav.GoTo(browsePages[idx-1])
			m.cursor = 0
		}
	}
	return m, nil
}

func (m browseModel) nextPage(step int) navigation.Page {
	for i, page := range browsePages {
		if page == m.nav.Page {
			return browsePages[(i+len(browsePages)+step)%len(browsePages)]
		}
	}
	return navigation.PageDashboard
}

// pageIDs lists the record ids visible on the active page, in display
// order. The dashboard has no records.
func (m browseModel) pageIDs() []uint {
	var ids []uint
	switch m.nav.Page {
	case navigation.PageVictims:
		for _, v := range m.data.victims {
			ids = append(ids, v.ID)
		}
	case navigation.PageCases:
		for _, c := range m.data.cases {
			ids = append(ids, c.ID)
		}
	case navigation.PageEvidence:
		for _, e := range m.data.evidence {
			ids = append(ids, e.ID)
		}
	case navigation.PageActions:
		for _, a := range m.data.actions {
			ids = append(ids, a.ID)
		}
	}
	return ids
}

func (m *browseModel) clampCursor() {
	if n := len(m.pageIDs()); m.cursor >= n {
		m.cursor = 0
		if n > 0 {
			m.cursor = n - 1
		}
	}
}

func (m browseModel) View() string {
	var b strings.Builder
	b.WriteString(browseTitleStyle.Render("digforweb"))
	b.WriteString(" ")
	for i, page := range browsePages {
		label := fmt.Sprintf("%d:%s", i+1, page)
		if page == m.nav.Page {
			b.WriteString(browseActiveStyle.Render(label))
		} else {
			b.WriteString(browseTabStyle.Render(label))
		}
	}
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(browseErrorStyle.Render("error: " + m.err.Error()))
		b.WriteString("\n")
	}

	switch {
	case m.nav.Page == navigation.PageDashboard:
		b.WriteString(m.viewDashboard())
	case m.nav.SubView == navigation.SubViewDetail:
		b.WriteString(m.viewDetail())
	default:
		b.WriteString(m.viewList())
	}

	b.WriteString("\n")
	b.WriteString(browseHelpStyle.Render("1-5/tab pages · j/k move · enter detail · esc back · r refresh · q quit"))
	return b.String()
}

func (m browseModel) viewDashboard() string {
	return fmt.Sprintf(
		"victims   %d\ncases     %d\nevidence  %d\nactions   %d\n",
		m.data.stats.Victims, m.data.stats.Cases, m.data.stats.Evidence, m.data.stats.Actions,
	)
}

func (m browseModel) viewList() string {
	var b strings.Builder
	write := func(i int, line string) {
		if i == m.cursor {
			b.WriteString(browseCursorStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	switch m.nav.Page {
	case navigation.PageVictims:
		for i, v := range m.data.victims {
			write(i, fmt.Sprintf("#%d %s (%s)", v.ID, v.Name, v.Location))
		}
	case navigation.PageCases:
		for i, c := range m.data.cases {
			write(i, fmt.Sprintf("#%d %s [%s] victim #%d", c.ID, c.CaseType, c.Status, c.VictimID))
		}
	case navigation.PageEvidence:
		for i, e := range m.data.evidence {
			write(i, fmt.Sprintf("#%d %s @ %s case #%d", e.ID, e.EvidenceType, e.StorageLocation, e.CaseID))
		}
	case navigation.PageActions:
		for i, a := range m.data.actions {
			write(i, fmt.Sprintf("#%d %s [%s] case #%d", a.ID, a.Stage, a.Status, a.CaseID))
		}
	}
	if b.Len() == 0 {
		return "no records\n"
	}
	return b.String()
}

func (m browseModel) viewDetail() string {
	id := m.nav.SelectedID
	switch m.nav.Page {
	case navigation.PageVictims:
		for _, v := range m.data.victims {
			if v.ID == id {
				return fmt.Sprintf("victim #%d\n\nname      %s\ncontact   %s\nlocation  %s\nreported  %s\n\n%s\n",
					v.ID, v.Name, v.Contact, v.Location, v.ReportDate, v.ReportDescription)
			}
		}
	case navigation.PageCases:
		for _, c := range m.data.cases {
			if c.ID == id {
				return fmt.Sprintf("case #%d\n\nvictim    #%d\ntype      %s\nincident  %s\nstatus    %s\n\n%s\n",
					c.ID, c.VictimID, c.CaseType, c.IncidentDate, c.Status, c.Summary)
			}
		}
	case navigation.PageEvidence:
		for _, e := range m.data.evidence {
			if e.ID == id {
				return fmt.Sprintf("evidence #%d\n\ncase      #%d\ntype      %s\nstorage   %s\nhash      %s\ncollected %s\n",
					e.ID, e.CaseID, e.EvidenceType, e.StorageLocation, e.HashValue, e.CollectionTime)
			}
		}
	case navigation.PageActions:
		for _, a := range m.data.actions {
			if a.ID == id {
				return fmt.Sprintf("action #%d\n\ncase      #%d\nstage     %s\npic       %s\nexecuted  %s\nstatus    %s\n\n%s\n",
					a.ID, a.CaseID, a.Stage, a.PersonInCharge, a.ExecutionTime, a.Status, a.Description)
			}
		}
	}
	return "record no longer exists\n"
}
