// Package statsui provides the Bubble Tea history browser.
package statsui

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/verte-zerg/aprendemos/internal/model"
	"github.com/verte-zerg/aprendemos/internal/stats"
	"github.com/verte-zerg/aprendemos/internal/store"
)

const (
	tabDictee = iota
	tabRules
	tabMultiplica
)

const (
	plotHeight = 10
	topFacts   = 10
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

// ExitMsg is emitted instead of quitting when the browser is embedded in
// another program.
type ExitMsg struct{}

// Model implements the Bubble Tea history browser.
type Model struct {
	store    *store.Store
	cfg      model.StatsConfig
	embedded bool

	report stats.Report
	errMsg string

	tabs      []string
	activeTab int
	viewports []viewport.Model
	ruleTable table.Model

	width  int
	height int

	filterMode   bool
	filterInputs []textinput.Model
	filterIndex  int
	filterError  string
}

// NewModel constructs a history browser that quits the program on exit.
func NewModel(st *store.Store, cfg model.StatsConfig) *Model {
	m := &Model{
		store: st,
		cfg:   cfg,
		tabs:  []string{"Dictée", "Reglas", "Multiplica"},
	}
	m.initInputs()
	m.ruleTable = buildRuleTable(nil, 0, 1)
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
	m.refreshReport()
	return m
}

// NewEmbedded constructs a history browser that emits ExitMsg on exit.
func NewEmbedded(st *store.Store, cfg model.StatsConfig, width, height int) *Model {
	m := NewModel(st, cfg)
	m.embedded = true
	m.width = width
	m.height = height
	m.updateLayout()
	m.renderTabContents()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) exit() tea.Cmd {
	if m.embedded {
		return func() tea.Msg { return ExitMsg{} }
	}
	return tea.Quit
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderTabContents()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.filterMode {
			return m.updateFilter(msg)
		}
		if msg.String() == "q" || msg.Type == tea.KeyEsc {
			return m, m.exit()
		}
		if m.activeTab == tabRules {
			m.ruleTable.Focus()
		} else {
			m.ruleTable.Blur()
		}
		switch msg.String() {
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l", "tab":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "=":
			m.cfg.CurveWindow = nextCurveWindow(m.cfg.CurveWindow)
			m.refreshReport()
			return m, nil
		case "-":
			m.cfg.CurveWindow = prevCurveWindow(m.cfg.CurveWindow)
			m.refreshReport()
			return m, nil
		case "/":
			return m.startFilter()
		case "g", "home":
			if m.activeTab == tabRules {
				m.ruleTable.GotoTop()
			} else {
				m.viewports[m.activeTab].GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.activeTab == tabRules {
				m.ruleTable.GotoBottom()
			} else {
				m.viewports[m.activeTab].GotoBottom()
			}
			return m, nil
		default:
			var cmd tea.Cmd
			if m.activeTab == tabRules {
				m.ruleTable, cmd = m.ruleTable.Update(msg)
				return m, cmd
			}
			m.viewports[m.activeTab], cmd = m.viewports[m.activeTab].Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(bodyHeight), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) initInputs() {
	m.filterInputs = []textinput.Model{
		newFilterInput("Lesson: "),
		newFilterInput("Since (YYYY-MM-DD): "),
		newFilterInput("Last: "),
		newFilterInput("Curve window: "),
	}
	m.setInputsFromConfig()
}

func newFilterInput(prompt string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func (m *Model) setInputsFromConfig() {
	m.filterInputs[0].SetValue(strings.TrimSpace(m.cfg.LessonID))
	m.filterInputs[1].SetValue("")
	if m.cfg.Since != nil {
		m.filterInputs[1].SetValue(m.cfg.Since.Format("2006-01-02"))
	}
	m.filterInputs[2].SetValue("")
	if m.cfg.Last > 0 {
		m.filterInputs[2].SetValue(strconv.Itoa(m.cfg.Last))
	}
	m.filterInputs[3].SetValue(strconv.Itoa(m.cfg.CurveWindow))
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := max(1, lipgloss.Height(activeNavStyle.Render("X")))
	headerHeight = tabsHeight + 1
	footerHeight = 1
	if !m.filterMode && m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = max(1, m.height-headerHeight-footerHeight)
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = bodyHeight
	}
	m.ruleTable.SetWidth(m.width)
	m.ruleTable.SetHeight(max(1, bodyHeight-1))
	for i := range m.filterInputs {
		promptWidth := lipgloss.Width(m.filterInputs[i].Prompt)
		m.filterInputs[i].Width = max(10, m.width-promptWidth-2)
	}
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	m.activeTab = (m.activeTab + delta + count) % count
	if m.activeTab == tabRules {
		m.ruleTable.Focus()
	} else {
		m.ruleTable.Blur()
	}
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	return padLines(m.renderTabs(), m.width) + "\n" + padLines(m.renderFilterSummary(), m.width)
}

func (m *Model) renderFilterSummary() string {
	lesson := m.cfg.LessonID
	if lesson == "" {
		lesson = "any"
	}
	since := "any"
	if m.cfg.Since != nil {
		since = m.cfg.Since.Format("2006-01-02")
	}
	last := "all"
	if m.cfg.Last > 0 {
		last = strconv.Itoa(m.cfg.Last)
	}
	summary := fmt.Sprintf("Filter: lesson=%s  since=%s  last=%s  window=%d", lesson, since, last, m.cfg.CurveWindow)
	return headerStyle.Render(truncateLine(summary, m.width))
}

func (m *Model) renderFooter() string {
	if m.filterMode {
		return headerStyle.Render("tab/shift+tab: next field  enter: apply  esc: cancel")
	}
	help := headerStyle.Render("Nav: left/right  Scroll: up/down/pgup/pgdn  Window: -/=  Filter: /  Back: q/esc")
	if m.errMsg != "" {
		return help + "\n" + errorStyle.Render(m.errMsg)
	}
	return help
}

func (m *Model) renderBody(height int) string {
	if m.filterMode {
		lines := []string{"Filter (enter to apply, esc to cancel)"}
		for _, input := range m.filterInputs {
			lines = append(lines, input.View())
		}
		if m.filterError != "" {
			lines = append(lines, errorStyle.Render(m.filterError))
		}
		return fitLines(strings.Join(lines, "\n"), m.width, height)
	}
	if m.activeTab == tabRules {
		if len(m.report.RulesAll) == 0 {
			return fitLines("No word stats found.", m.width, height)
		}
		return fitLines(tableMutedStyle.Render(m.ruleTable.View()), m.width, height)
	}
	return fitLines(m.viewports[m.activeTab].View(), m.width, height)
}

func (m *Model) refreshReport() {
	report, err := stats.BuildReport(context.Background(), m.store, m.cfg)
	if err != nil {
		m.errMsg = err.Error()
		for i := range m.viewports {
			m.viewports[i].SetContent("Failed to load history.")
		}
		return
	}
	m.errMsg = ""
	m.report = report
	m.ruleTable.SetRows(ruleRows(report.RulesAll))
	m.updateLayout()
	m.renderTabContents()
}

func (m *Model) renderTabContents() {
	if m.errMsg != "" {
		return
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.viewports[tabDictee].SetContent(renderDictee(m.report, m.cfg.CurveWindow, width))
	m.viewports[tabMultiplica].SetContent(renderMultiplica(m.report, width))
}

func renderDictee(report stats.Report, window, width int) string {
	sessions := report.Sessions
	if len(sessions) == 0 {
		return "No dictée sessions found."
	}
	words := lo.SumBy(sessions, func(s model.SessionAggregate) int { return s.Total })
	correct := lo.SumBy(sessions, func(s model.SessionAggregate) int { return s.Correct })
	points := lo.SumBy(sessions, func(s model.SessionAggregate) int { return s.TotalPoints })
	best := lo.MaxBy(sessions, func(a, b model.SessionAggregate) bool { return a.TotalPoints > b.TotalPoints })
	cards := []string{
		metricCard("Sessions", fmt.Sprintf("%d", len(sessions))),
		metricCard("Words", fmt.Sprintf("%d", words)),
		metricCard("Accuracy", fmt.Sprintf("%.1f%%", stats.Accuracy(correct, words))),
		metricCard("Avg points", fmt.Sprintf("%.1f", float64(points)/float64(len(sessions)))),
		metricCard("Best points", fmt.Sprintf("%d", best.TotalPoints)),
	}
	out := layoutCards(cards, width)
	if weak := stats.WeakRules(report.RulesWindow, 3); len(weak) > 0 {
		out += "\n" + headerStyle.Render("Focus next on: "+strings.Join(weak, ", "))
	}
	if len(sessions) > 1 {
		var buf bytes.Buffer
		if err := stats.RenderCurvesWithSize(&buf, sessions, window, width, plotHeight, true); err != nil {
			return fmt.Sprintf("Failed to render curves: %v", err)
		}
		out += "\n\n" + buf.String()
	}
	return strings.TrimRight(out, "\n")
}

func renderMultiplica(report stats.Report, width int) string {
	runs := report.Runs
	if len(runs) == 0 {
		return "No multiplica runs found."
	}
	finished := lo.Filter(runs, func(r model.RunAggregate, _ int) bool { return !r.Cancelled })
	answered := lo.SumBy(runs, func(r model.RunAggregate) int { return r.Answered })
	correct := lo.SumBy(runs, func(r model.RunAggregate) int { return r.Score })
	best := 0
	for _, r := range finished {
		best = max(best, r.Score)
	}
	cards := []string{
		metricCard("Runs", fmt.Sprintf("%d", len(runs))),
		metricCard("Answers", fmt.Sprintf("%d", answered)),
		metricCard("Accuracy", fmt.Sprintf("%.1f%%", stats.Accuracy(correct, answered))),
		metricCard("Best score", fmt.Sprintf("%d", best)),
	}
	out := layoutCards(cards, width)
	var buf bytes.Buffer
	if err := stats.RenderFactTable(&buf, report.Facts, topFacts); err != nil {
		return fmt.Sprintf("Failed to render facts: %v", err)
	}
	return strings.TrimRight(out+"\n\n"+buf.String(), "\n")
}

func layoutCards(cards []string, width int) string {
	if width < 80 {
		return strings.Join(cards, "\n")
	}
	split := (len(cards) + 1) / 2
	row1 := lipgloss.JoinHorizontal(lipgloss.Top, cards[:split]...)
	row2 := lipgloss.JoinHorizontal(lipgloss.Top, cards[split:]...)
	return lipgloss.JoinVertical(lipgloss.Left, row1, row2)
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func ruleColumns() []table.Column {
	return []table.Column{
		{Title: "Rule", Width: 18},
		{Title: "Spelled", Width: 9},
		{Title: "Meaning", Width: 9},
		{Title: "Wrong", Width: 6},
		{Title: "Near", Width: 5},
		{Title: "Words", Width: 6},
	}
}

func ruleRows(aggs []model.RuleAggregate) []table.Row {
	rows := make([]table.Row, 0, len(aggs))
	for _, agg := range aggs {
		rows = append(rows, table.Row{
			agg.Rule,
			fmt.Sprintf("%.1f%%", stats.Accuracy(agg.Completed, agg.Words)),
			fmt.Sprintf("%.1f%%", stats.Accuracy(agg.Meaning, agg.Words)),
			fmt.Sprintf("%d", agg.WrongCount),
			fmt.Sprintf("%d", agg.HalfCount),
			fmt.Sprintf("%d", agg.Words),
		})
	}
	return rows
}

func buildRuleTable(aggs []model.RuleAggregate, width, height int) table.Model {
	t := table.New(
		table.WithColumns(ruleColumns()),
		table.WithRows(ruleRows(aggs)),
		table.WithHeight(max(1, height-1)),
	)
	t.SetWidth(width)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.Padding(0, 1).PaddingLeft(0)
	styles.Selected = styles.Cell.Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	t.SetStyles(styles)
	return t
}

func (m *Model) startFilter() (tea.Model, tea.Cmd) {
	m.filterMode = true
	m.filterError = ""
	m.setInputsFromConfig()
	return m, m.setFilterIndex(0)
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filterMode = false
		m.filterError = ""
		return m, nil
	case tea.KeyEnter:
		cfg, err := parseFilter(m.filterInputs)
		if err != nil {
			m.filterError = err.Error()
			return m, nil
		}
		m.cfg = cfg
		m.filterMode = false
		m.filterError = ""
		m.refreshReport()
		return m, nil
	case tea.KeyTab:
		return m, m.setFilterIndex(m.filterIndex + 1)
	case tea.KeyShiftTab:
		return m, m.setFilterIndex(m.filterIndex - 1)
	}
	var cmd tea.Cmd
	m.filterInputs[m.filterIndex], cmd = m.filterInputs[m.filterIndex].Update(msg)
	return m, cmd
}

func (m *Model) setFilterIndex(idx int) tea.Cmd {
	count := len(m.filterInputs)
	m.filterIndex = (idx + count) % count
	var cmd tea.Cmd
	for i := range m.filterInputs {
		if i == m.filterIndex {
			cmd = m.filterInputs[i].Focus()
		} else {
			m.filterInputs[i].Blur()
		}
	}
	return cmd
}

func parseFilter(inputs []textinput.Model) (model.StatsConfig, error) {
	var cfg model.StatsConfig
	cfg.LessonID = strings.TrimSpace(inputs[0].Value())

	if sinceInput := strings.TrimSpace(inputs[1].Value()); sinceInput != "" {
		parsed, err := time.ParseInLocation("2006-01-02", sinceInput, time.Local)
		if err != nil {
			return cfg, fmt.Errorf("invalid since date (expected YYYY-MM-DD)")
		}
		cfg.Since = &parsed
	}
	if lastInput := strings.TrimSpace(inputs[2].Value()); lastInput != "" {
		parsed, err := strconv.Atoi(lastInput)
		if err != nil || parsed < 0 {
			return cfg, fmt.Errorf("invalid last value (use 0 or positive integer)")
		}
		cfg.Last = parsed
	}
	cfg.CurveWindow = 1
	if windowInput := strings.TrimSpace(inputs[3].Value()); windowInput != "" {
		parsed, err := strconv.Atoi(windowInput)
		if err != nil || parsed < 1 {
			return cfg, fmt.Errorf("invalid curve window (use integer >= 1)")
		}
		cfg.CurveWindow = parsed
	}
	return cfg, nil
}

func nextCurveWindow(n int) int {
	if n < 5 {
		return 5
	}
	return (n/5 + 1) * 5
}

func prevCurveWindow(n int) int {
	if n <= 5 {
		return 1
	}
	if n%5 == 0 {
		return n - 5
	}
	return (n / 5) * 5
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	if w := lipgloss.Width(line); w < width {
		return line + strings.Repeat(" ", width-w)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	runes := []rune(s)
	if width <= 0 || len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
