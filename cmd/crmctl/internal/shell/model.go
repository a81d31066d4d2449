// Package shell is the interactive CRM console. It renders, in order of
// precedence, the loading state while the stored session is restored, the
// login form when nobody is signed in, and the gated application otherwise.
package shell

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Rahul675/indyanet-crm/cmd/crmctl/internal/nav"
	"github.com/Rahul675/indyanet-crm/cmd/crmctl/internal/rolegate"
	"github.com/Rahul675/indyanet-crm/pkg/sdk"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// DefaultNotifyInterval is how often notifications are polled.
const DefaultNotifyInterval = 20 * time.Second

// Options wires the console to its collaborators.
type Options struct {
	Session        Session
	Records        Records
	Gate           *rolegate.Gate
	Nav            []rolegate.NavItem
	NotifyInterval time.Duration
	Logger         *zap.Logger
}

type pageState struct {
	view    string
	records []sdk.Record
	loading bool
	err     string
}

// Model is the bubbletea model of the console.
type Model struct {
	ctx      context.Context
	session  Session
	records  Records
	gate     *rolegate.Gate
	items    []rolegate.NavItem
	interval time.Duration
	logger   *zap.Logger
	styles   Styles

	snapshot sdk.Session
	spinner  spinner.Model
	login    loginForm

	nav       *nav.Controller
	cursor    int
	bodyFocus bool
	table     table.Model
	page      pageState

	detailSearch  string
	pendingSearch bool
	searching     bool
	search        textinput.Model

	loggingOut bool
	signingOut bool
	reason     textinput.Model
	reasonErr  string

	confirmDelete string
	status        string

	notifications []sdk.Record
	notifyGen     int

	width  int
	height int
}

// New builds the console. The session starts restoring; Init kicks off the
// restore.
func New(ctx context.Context, opts Options) Model {
	if opts.Gate == nil {
		opts.Gate = rolegate.MustNewGate()
	}
	if opts.Nav == nil {
		opts.Nav = rolegate.DefaultNav()
	}
	if opts.NotifyInterval <= 0 {
		opts.NotifyInterval = DefaultNotifyInterval
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	search := textinput.New()
	search.Placeholder = "circuit, customer, IP..."
	search.Prompt = "Search: "

	reason := textinput.New()
	reason.Placeholder = "why are you logging out?"
	reason.Prompt = "> "
	reason.CharLimit = 500

	tbl := table.New(table.WithFocused(true), table.WithHeight(12))

	return Model{
		ctx:      ctx,
		session:  opts.Session,
		records:  opts.Records,
		gate:     opts.Gate,
		items:    opts.Nav,
		interval: opts.NotifyInterval,
		logger:   opts.Logger,
		styles:   DefaultStyles(),
		snapshot: sdk.Session{Restoring: true},
		spinner:  sp,
		login:    newLoginForm(),
		search:   search,
		reason:   reason,
		table:    tbl,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.restoreCmd())
}

func (m Model) role() string {
	if m.snapshot.User == nil {
		return ""
	}
	return m.snapshot.User.Role
}

func (m Model) visible() []rolegate.NavItem {
	return rolegate.VisibleItems(m.items, m.role())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if h := msg.Height - 8; h > 3 {
			m.table.SetHeight(h)
		}
		return m, nil

	case spinner.TickMsg:
		if !m.snapshot.Restoring {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case restoredMsg:
		m.snapshot = msg.session
		m.snapshot.Restoring = false
		if !m.snapshot.Authenticated() {
			m.snapshot = sdk.Session{}
			return m, nil
		}
		return m, m.enterApp()
	}

	// Nothing but the spinner runs until restore has resolved.
	if m.snapshot.Restoring {
		return m, nil
	}

	switch msg := msg.(type) {
	case loginResultMsg:
		m.login.inFlight = false
		if msg.err != nil {
			m.login.err = sdk.UserMessage(msg.err)
			m.logger.Debug("login failed", zap.Error(msg.err))
			return m, nil
		}
		m.snapshot = m.session.Snapshot()
		m.login.password.SetValue("")
		m.login.err = ""
		return m, m.enterApp()

	case loggedOutMsg:
		m.snapshot = sdk.Session{}
		m.nav = nil
		m.login = newLoginForm()
		m.page = pageState{}
		m.notifications = nil
		m.notifyGen++
		m.loggingOut, m.signingOut = false, false
		m.searching, m.pendingSearch = false, false
		m.status = ""
		return m, nil

	case recordsMsg:
		return m, m.handleRecords(msg)

	case deletedMsg:
		if msg.err != nil {
			m.status = sdk.UserMessage(msg.err)
			return m, nil
		}
		m.status = fmt.Sprintf("Deleted %s", msg.id)
		if m.nav != nil && msg.view == m.nav.ActiveViewKey() && !m.nav.Current().IsDetail() {
			return m, m.loadActive()
		}
		return m, nil

	case notificationsMsg:
		if msg.err != nil {
			m.logger.Debug("notifications fetch failed", zap.Error(msg.err))
			return m, nil
		}
		m.notifications = msg.records
		return m, nil

	case notifyTickMsg:
		if msg.gen != m.notifyGen || !m.snapshot.Authenticated() {
			return m, nil
		}
		return m, tea.Batch(m.notificationsCmd(), m.notifyTick())

	case tea.KeyMsg:
		if m.snapshot.User == nil {
			return m, m.updateLogin(msg)
		}
		return m, m.updateApp(msg)
	}

	return m, nil
}

// enterApp resets navigation for a fresh session and starts page and
// notification loading.
func (m *Model) enterApp() tea.Cmd {
	m.nav = nav.New()
	m.cursor = 0
	m.bodyFocus = false
	m.page = pageState{}
	m.notifications = nil
	m.detailSearch, m.pendingSearch = "", false
	m.notifyGen++
	return tea.Batch(m.loadActive(), m.notificationsCmd(), m.notifyTick())
}

func (m *Model) updateLogin(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "tab", "shift+tab", "up", "down":
		return m.login.setFocus(m.login.focus + 1)
	case "enter":
		if m.login.inFlight {
			return nil
		}
		if m.login.focus == 0 && strings.TrimSpace(m.login.password.Value()) == "" {
			return m.login.setFocus(1)
		}
		if !m.login.submittable() {
			m.login.err = "Enter your email and password"
			return nil
		}
		m.login.inFlight = true
		m.login.err = ""
		return m.loginCmd(m.login.email.Value(), m.login.password.Value())
	}
	var cmd tea.Cmd
	m.login, cmd = m.login.update(msg)
	return cmd
}

func (m *Model) updateApp(msg tea.KeyMsg) tea.Cmd {
	if m.loggingOut {
		return m.updateLogoutDialog(msg)
	}
	if m.searching {
		return m.updateSearch(msg)
	}

	key := msg.String()
	if key != "x" {
		m.confirmDelete = ""
	}
	switch key {
	case "ctrl+l":
		return m.beginLogout()
	case "/":
		m.searching = true
		m.search.SetValue("")
		return m.search.Focus()
	case "p":
		m.abandonSearch()
		m.nav.SetActiveView(rolegate.ViewProfile)
		if !m.nav.Current().IsDetail() {
			return m.loadActive()
		}
		return nil
	case "tab":
		m.bodyFocus = !m.bodyFocus
		return nil
	case "esc":
		if m.nav.Current().IsDetail() {
			m.nav.Back()
			m.detailSearch = ""
			m.syncCursor()
			if m.page.view != m.nav.ActiveViewKey() {
				return m.loadActive()
			}
		}
		return nil
	case "r":
		if !m.nav.Current().IsDetail() {
			return m.loadActive()
		}
		return nil
	}

	if m.nav.Current().IsDetail() {
		return nil
	}

	if !m.bodyFocus {
		items := m.visible()
		switch key {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(items)-1 {
				m.cursor++
			}
		case "enter", "right", "l":
			if m.cursor < len(items) {
				return m.openTab(items[m.cursor].Key)
			}
		}
		return nil
	}

	switch key {
	case "enter":
		m.selectRow()
		return nil
	case "x":
		return m.deleteRow()
	case "left", "h":
		m.bodyFocus = false
		return nil
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return cmd
}

// openTab switches the active list.
func (m *Model) openTab(key string) tea.Cmd {
	if key != rolegate.ViewLoadshare {
		m.abandonSearch()
	}
	m.nav.SetActiveView(key)
	m.syncCursor()
	m.bodyFocus = true
	return m.loadActive()
}

// syncCursor points the sidebar cursor at the active tab.
func (m *Model) syncCursor() {
	for i, item := range m.visible() {
		if item.Key == m.nav.ActiveViewKey() {
			m.cursor = i
			return
		}
	}
}

// loadActive fetches the active tab's collection, if it has one.
func (m *Model) loadActive() tea.Cmd {
	key := m.nav.ActiveViewKey()
	item, ok := rolegate.Find(m.visible(), key)
	if !ok || item.Resource == "" || m.records == nil {
		m.page = pageState{view: key}
		return nil
	}
	m.page = pageState{view: key, loading: true}
	return m.fetchCmd(key, item.Resource)
}

func (m *Model) handleRecords(msg recordsMsg) tea.Cmd {
	if m.nav == nil || msg.view != m.page.view || msg.view != m.nav.ActiveViewKey() {
		m.logger.Debug("discarding stale page result", zap.String("view", msg.view))
		return nil
	}
	m.page.loading = false
	if msg.err != nil {
		m.page.err = sdk.UserMessage(msg.err)
		m.page.records = nil
		m.pendingSearch = false
		return nil
	}
	m.page.err = ""
	m.page.records = msg.records
	m.setTable(msg.records)
	if m.pendingSearch && msg.view == rolegate.ViewLoadshare {
		m.applySearch()
	}
	return nil
}

func (m *Model) setTable(records []sdk.Record) {
	cols := sdk.Columns(records, 6)
	columns := make([]table.Column, 0, len(cols))
	for _, c := range cols {
		width := len(c)
		for _, r := range records {
			if n := len(sdk.FormatValue(r[c])); n > width {
				width = n
			}
		}
		if width > 28 {
			width = 28
		}
		columns = append(columns, table.Column{Title: c, Width: width})
	}
	rows := make([]table.Row, 0, len(records))
	for _, r := range records {
		row := make(table.Row, len(cols))
		for i, c := range cols {
			row[i] = sdk.FormatValue(r[c])
		}
		rows = append(rows, row)
	}
	m.table.SetRows(nil)
	m.table.SetColumns(columns)
	m.table.SetRows(rows)
	m.table.SetCursor(0)
}

func (m *Model) currentRow() (sdk.Record, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.page.records) {
		return nil, false
	}
	return m.page.records[i], true
}

// selectRow opens the detail view for the row under the cursor on the
// pages that have one.
func (m *Model) selectRow() {
	rec, ok := m.currentRow()
	if !ok {
		return
	}
	switch m.page.view {
	case rolegate.ViewCustomers:
		m.nav.SelectCustomer(rec)
	case rolegate.ViewLoadshare:
		m.nav.SelectCluster(rec)
	case rolegate.ViewOperators:
		m.nav.SelectOperator(rec)
	default:
		return
	}
	m.enterDetail()
}

// enterDetail runs once per detail entry. The cluster page consumes the
// pending global search here, so later renders never see it again.
func (m *Model) enterDetail() {
	m.detailSearch = ""
	if m.nav.Current().Kind == nav.ViewingClusterDetail {
		if s, ok := m.nav.TakeGlobalSearch(); ok {
			m.detailSearch = s
		}
	}
}

func (m *Model) updateSearch(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.search.Blur()
		return nil
	case "enter":
		m.searching = false
		m.search.Blur()
		value := strings.TrimSpace(m.search.Value())
		if value == "" {
			return nil
		}
		return m.submitSearch(value)
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return cmd
}

// submitSearch hands value to the cluster list, which opens the first match.
func (m *Model) submitSearch(value string) tea.Cmd {
	m.nav.SetGlobalSearch(value)
	if m.nav.Current().IsDetail() {
		m.nav.Back()
		m.detailSearch = ""
	}
	m.nav.SetActiveView(rolegate.ViewLoadshare)
	m.syncCursor()
	m.pendingSearch = true
	if m.page.view == rolegate.ViewLoadshare && !m.page.loading && m.page.err == "" && m.page.records != nil {
		m.applySearch()
		return nil
	}
	return m.loadActive()
}

func (m *Model) applySearch() {
	m.pendingSearch = false
	needle := m.nav.State().PendingGlobalSearch
	for _, rec := range m.page.records {
		if rec.Contains(needle) {
			m.nav.SelectCluster(rec)
			m.enterDetail()
			m.status = ""
			return
		}
	}
	m.nav.TakeGlobalSearch()
	m.status = fmt.Sprintf("No cluster matches %q", needle)
}

// abandonSearch drops a global search whose cluster list was left before
// it loaded.
func (m *Model) abandonSearch() {
	if !m.pendingSearch {
		return
	}
	m.pendingSearch = false
	m.nav.TakeGlobalSearch()
}

func (m *Model) deleteRow() tea.Cmd {
	item, ok := rolegate.Find(m.visible(), m.page.view)
	if !ok || item.Resource == "" {
		return nil
	}
	if !m.gate.CanPerform(rolegate.ActionDeleteRecord, m.role()) {
		m.status = "Your role cannot delete records"
		return nil
	}
	rec, ok := m.currentRow()
	if !ok || rec.ID() == "" {
		return nil
	}
	if m.confirmDelete != rec.ID() {
		m.confirmDelete = rec.ID()
		m.status = fmt.Sprintf("Press x again to delete %s", rec.Title())
		return nil
	}
	m.confirmDelete = ""
	m.status = "Deleting..."
	return m.deleteCmd(m.page.view, item.Resource, rec.ID())
}

// beginLogout opens the reason dialog for operators; everyone else signs
// out at once.
func (m *Model) beginLogout() tea.Cmd {
	if m.signingOut {
		return nil
	}
	if m.role() == sdk.RoleOperator {
		m.loggingOut = true
		m.reasonErr = ""
		m.reason.SetValue("")
		return m.reason.Focus()
	}
	return m.finishLogout("")
}

func (m *Model) finishLogout(reason string) tea.Cmd {
	m.loggingOut = false
	m.signingOut = true
	m.reason.Blur()
	m.status = "Signing out..."
	return m.logoutCmd(reason)
}

func (m *Model) updateLogoutDialog(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.loggingOut = false
		m.reason.Blur()
		return nil
	case "enter":
		reason := strings.TrimSpace(m.reason.Value())
		if err := sdk.ValidateLogoutReason(m.role(), reason); err != nil {
			m.reasonErr = fmt.Sprintf("Please enter at least %d characters before logging out.", sdk.MinLogoutReasonLen)
			return nil
		}
		return m.finishLogout(reason)
	}
	var cmd tea.Cmd
	m.reason, cmd = m.reason.Update(msg)
	return cmd
}
