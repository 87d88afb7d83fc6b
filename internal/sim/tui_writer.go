package sim

import (
	"fmt"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/shopspring/decimal"

	"sentinel-sim/internal/config"
	"sentinel-sim/internal/inventory"
	"sentinel-sim/internal/sentinel"
)

// teaProgram abstracts bubbletea.Program for testing.
type teaProgram interface {
	Send(tea.Msg)
}

// logMsg carries a log line for the viewport.
type logMsg struct{ line string }

// runMsg carries a finished run and its formatted log lines.
type runMsg struct {
	rec   RunRecord
	lines []string
}

// resetMsg carries the session state after a reset.
type resetMsg struct{ snap Snapshot }

// adminMsg reports admin UI status.
type adminMsg struct{ active bool }

type setRunnerMsg struct{ fn func() }
type setResetterMsg struct{ fn func() Snapshot }

const gridColumns = 4

// TUIWriter renders runs using a bubbletea TUI.
type TUIWriter struct {
	program    teaProgram
	done       chan struct{}
	sendSignal atomic.Bool
}

// NewTUIWriter starts a bubbletea program showing base until the first run arrives.
func NewTUIWriter(cfg *config.SentinelConfig, base inventory.Table) *TUIWriter {
	w := &TUIWriter{done: make(chan struct{})}
	w.sendSignal.Store(true)
	p := tea.NewProgram(newTUIModel(cfg, base), tea.WithAltScreen())
	w.program = p
	go func() {
		_, _ = p.Run()
		close(w.done)
		if w.sendSignal.Load() {
			if proc, err := os.FindProcess(os.Getpid()); err == nil {
				_ = proc.Signal(os.Interrupt)
			}
		}
	}()
	return w
}

// WriteRun implements RunWriter.
func (w *TUIWriter) WriteRun(rec RunRecord) error {
	w.program.Send(runMsg{rec: rec, lines: runLines(rec)})
	return nil
}

// WriteRuns sends multiple runs to the TUI.
func (w *TUIWriter) WriteRuns(recs []RunRecord) error {
	for _, r := range recs {
		if err := w.WriteRun(r); err != nil {
			return err
		}
	}
	return nil
}

// SetAdminStatus updates the admin UI indicator.
func (w *TUIWriter) SetAdminStatus(active bool) {
	w.program.Send(adminMsg{active: active})
}

// SetRunner installs the callback bound to the run key.
func (w *TUIWriter) SetRunner(fn func()) {
	w.program.Send(setRunnerMsg{fn: fn})
}

// SetResetter installs the callback bound to the reset key.
func (w *TUIWriter) SetResetter(fn func() Snapshot) {
	w.program.Send(setResetterMsg{fn: fn})
}

// Reset replaces the displayed state with the session's reset state.
func (w *TUIWriter) Reset(snap Snapshot) {
	w.program.Send(resetMsg{snap: snap})
}

// Done is closed once the TUI program exits.
func (w *TUIWriter) Done() <-chan struct{} {
	return w.done
}

// Close shuts down the TUI program and waits for cleanup.
func (w *TUIWriter) Close() error {
	w.sendSignal.Store(false)
	if w.program != nil {
		w.program.Send(tea.Quit())
	}
	if w.done != nil {
		<-w.done
	}
	return nil
}

func runLines(rec RunRecord) []string {
	header := fmt.Sprintf("%s[%s]%s %sRUN %d%s", colorGray, rec.Timestamp.Format(time.RFC3339), colorReset, colorBlue, rec.Run, colorReset)
	if rec.Scenario != "" {
		header += fmt.Sprintf(" %s%s/%s%s", colorMagenta, rec.Scenario, rec.Phase, colorReset)
	}
	lines := []string{header}
	for _, ev := range rec.Events {
		lines = append(lines, fmt.Sprintf("  %sEVENT%s %s: %s", colorYellow, colorReset, ev.Category.Label(), ev.Detail))
	}
	for _, p := range rec.Plans {
		lines = append(lines, fmt.Sprintf("  %sPLAN%s  %s", colorCyan, colorReset, p))
	}
	for _, c := range rec.Components {
		if c.Status == inventory.StatusNominal {
			continue
		}
		lines = append(lines, fmt.Sprintf("  %s%s%s %s: %s", statusStyle(c.Status), c.Status, colorReset, c.Name, c.Alert))
	}
	if rec.Impact.HasRisk() {
		lines = append(lines, fmt.Sprintf("  %sloss avoided=%s cost=%s net=%s%s",
			colorGreen, FormatMoney(rec.Impact.PotentialLoss), FormatMoney(rec.Impact.MitigationCost), FormatMoney(rec.Impact.NetValue), colorReset))
	} else {
		lines = append(lines, fmt.Sprintf("  %sNo critical financial risks were identified.%s", colorGreen, colorReset))
	}
	return lines
}

type tuiModel struct {
	cfg          *config.SentinelConfig
	table        table.Model
	components   inventory.Table
	vp           viewport.Model
	logs         []string
	admin        bool
	wrap         bool
	autoscroll   bool
	help         bool
	header       string
	headerHeight int
	height       int
	run          func()
	reset        func() Snapshot
	history      []HistoryEntry
	impact       *sentinel.Impact
}

func newTUIModel(cfg *config.SentinelConfig, base inventory.Table) tuiModel {
	cols := []table.Column{
		{Title: "Component", Width: 24},
		{Title: "Lane", Width: 14},
		{Title: "Lead", Width: 5},
		{Title: "DoS", Width: 6},
		{Title: "Status", Width: 9},
	}
	t := table.New(table.WithColumns(cols), table.WithHeight(len(base)+1))
	m := tuiModel{
		cfg:        cfg,
		table:      t,
		vp:         viewport.New(0, 0),
		autoscroll: true,
	}
	m.setComponents(base)
	return m
}

func (m *tuiModel) setComponents(t inventory.Table) {
	m.components = t.Clone()
	rows := make([]table.Row, 0, len(t))
	for _, c := range t {
		rows = append(rows, table.Row{
			c.Name,
			c.ShippingLane,
			fmt.Sprintf("%d", c.LeadTimeDays),
			fmt.Sprintf("%.1f", c.DaysOfSupply),
			string(c.Status),
		})
	}
	m.table.SetRows(rows)
	m.table.SetHeight(len(rows) + 1)
}

func (m tuiModel) Init() tea.Cmd { return nil }

func runCmd(fn func()) tea.Cmd {
	return func() tea.Msg {
		fn()
		return nil
	}
}

func resetCmd(fn func() Snapshot) tea.Cmd {
	return func() tea.Msg {
		return resetMsg{snap: fn()}
	}
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.table.SetWidth(msg.Width)
		m.vp.Width = msg.Width
		m.height = msg.Height
		m.relayout()
		m.refreshViewport()
	case tea.KeyMsg:
		if m.help {
			switch msg.String() {
			case "?", "h", "esc":
				m.help = false
				m.updateViewportHeight()
			}
			return m, nil
		}
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r", "enter":
			if m.run != nil {
				return m, runCmd(m.run)
			}
			return m, nil
		case "x":
			if m.reset != nil {
				return m, resetCmd(m.reset)
			}
			return m, nil
		case "w":
			m.wrap = !m.wrap
			m.refreshViewport()
			m.relayout()
			return m, nil
		case "s":
			m.autoscroll = !m.autoscroll
			if m.autoscroll {
				m.vp.GotoBottom()
			}
			return m, nil
		case "h", "?":
			m.help = !m.help
			m.updateViewportHeight()
			return m, nil
		}
		if !m.autoscroll {
			switch msg.String() {
			case "j", "down":
				m.vp.LineDown(1)
			case "k", "up":
				m.vp.LineUp(1)
			case "pgdown", "ctrl+n":
				m.vp.LineDown(10)
			case "pgup", "ctrl+p":
				m.vp.LineUp(10)
			default:
				var cmd tea.Cmd
				m.vp, cmd = m.vp.Update(msg)
				return m, cmd
			}
		}
	case logMsg:
		m.logs = append(m.logs, msg.line)
		m.refreshViewport()
	case runMsg:
		m.setComponents(msg.rec.Components)
		imp := msg.rec.Impact
		m.impact = &imp
		m.history = append(m.history, HistoryEntry{Run: msg.rec.Run, NetValue: msg.rec.HistoryValue})
		m.logs = append(m.logs, msg.lines...)
		m.relayout()
		m.refreshViewport()
	case resetMsg:
		m.setComponents(msg.snap.Table)
		m.history = append([]HistoryEntry(nil), msg.snap.History...)
		m.impact = msg.snap.Impact
		m.logs = nil
		m.relayout()
		m.refreshViewport()
	case adminMsg:
		m.admin = msg.active
	case setRunnerMsg:
		m.run = msg.fn
	case setResetterMsg:
		m.reset = msg.fn
	}
	return m, nil
}

func (m *tuiModel) relayout() {
	m.header = m.renderHeader()
	m.headerHeight = lipgloss.Height(m.header)
	m.updateViewportHeight()
}

func (m *tuiModel) updateViewportHeight() {
	bottomHeight := lipgloss.Height(m.renderBottom())
	h := m.height - m.headerHeight - bottomHeight - 2
	if h < 0 {
		h = 0
	}
	m.vp.Height = h
	if m.autoscroll {
		m.vp.GotoBottom()
	}
}

func (m *tuiModel) refreshViewport() {
	var lines []string
	for _, l := range m.logs {
		if m.wrap && m.vp.Width > 0 {
			lines = append(lines, wordwrap.String(l, m.vp.Width))
		} else {
			lines = append(lines, l)
		}
	}
	m.vp.SetContent(strings.Join(lines, "\n"))
	if m.autoscroll {
		m.vp.GotoBottom()
	}
}

func (m tuiModel) View() string {
	if m.help {
		return m.renderHelp()
	}
	divider := strings.Repeat("─", m.vp.Width)
	return strings.Join([]string{
		m.header,
		divider,
		m.vp.View(),
		divider,
		m.renderBottom(),
	}, "\n")
}

func (m tuiModel) renderHeader() string {
	return lipgloss.JoinVertical(lipgloss.Left, m.table.View(), renderStatusGrid(m.components))
}

var (
	gridCritical = lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("1"))
	gridWarning  = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("3"))
	gridNominal  = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("2"))
)

func renderStatusGrid(t inventory.Table) string {
	var rows []string
	var cells []string
	for i, c := range t {
		style := gridNominal
		switch c.Status {
		case inventory.StatusCritical:
			style = gridCritical
		case inventory.StatusWarning:
			style = gridWarning
		}
		cells = append(cells, style.Render(c.Name), " ")
		if (i+1)%gridColumns == 0 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
			cells = nil
		}
	}
	if len(cells) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m tuiModel) totalNetValue() decimal.Decimal {
	return totalNet(m.history)
}

func indicator(on bool) string {
	c := lipgloss.Color("9")
	if on {
		c = lipgloss.Color("10")
	}
	return lipgloss.NewStyle().Foreground(c).Render("●")
}

func (m tuiModel) renderBottom() string {
	net := "-"
	if m.impact != nil {
		net = FormatMoney(m.impact.NetValue)
	}
	state := fmt.Sprintf("%sRUNS%s %s%d%s %snet=%s%s %stotal=%s%s",
		colorBlue, colorReset,
		colorYellow, len(m.history), colorReset,
		colorGreen, net, colorReset,
		colorCyan, FormatMoney(m.totalNetValue()), colorReset)
	return fmt.Sprintf("%s | Admin UI %s | Wrap %s | Scroll %s | r run  x reset  h help",
		state, indicator(m.admin), indicator(m.wrap), indicator(m.autoscroll))
}

func (m tuiModel) renderHelp() string {
	lines := []string{
		"Key Bindings:",
		" r/enter  run a disruption simulation",
		" x        reset inventory and history",
		" w        toggle wrap for the event log",
		" s        toggle auto-scroll",
		" h/?      toggle this help view",
		" q        quit",
		"",
		"When auto-scroll is disabled:",
		" j/k or up/down    scroll one line",
		" pgdown/pgup       scroll a page",
	}
	if m.cfg != nil {
		lines = append(lines, "",
			fmt.Sprintf("Critical threshold: %.0f days", m.cfg.CriticalThresholdDays),
			fmt.Sprintf("Air freight premium: %s", FormatMoney(m.cfg.Premium())))
	}
	return strings.Join(lines, "\n")
}
