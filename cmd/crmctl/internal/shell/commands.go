package shell

import (
	"context"
	"time"

	"github.com/Rahul675/indyanet-crm/pkg/sdk"
	tea "github.com/charmbracelet/bubbletea"
)

// Session is the part of sdk.SessionClient the console drives.
type Session interface {
	Restore(ctx context.Context) sdk.Session
	Login(ctx context.Context, email, password string) (*sdk.LoginResult, error)
	Logout(ctx context.Context, reason string)
	Snapshot() sdk.Session
}

// Records is the part of sdk.ResourceClient the pages use.
type Records interface {
	List(ctx context.Context, resource string) ([]sdk.Record, error)
	Delete(ctx context.Context, resource, id string) error
}

var (
	_ Session = (*sdk.SessionClient)(nil)
	_ Records = (*sdk.ResourceClient)(nil)
)

const maxNotifications = 10

type restoredMsg struct{ session sdk.Session }

type loginResultMsg struct {
	result *sdk.LoginResult
	err    error
}

type loggedOutMsg struct{}

// recordsMsg carries a page fetch. view is the tab it was fetched for; the
// result is dropped when that tab is no longer active.
type recordsMsg struct {
	view    string
	records []sdk.Record
	err     error
}

type deletedMsg struct {
	view string
	id   string
	err  error
}

type notificationsMsg struct {
	records []sdk.Record
	err     error
}

// notifyTickMsg is tagged with the login generation that scheduled it, so a
// ticker from an earlier session stops after logout.
type notifyTickMsg struct{ gen int }

func (m Model) restoreCmd() tea.Cmd {
	return func() tea.Msg {
		return restoredMsg{session: m.session.Restore(m.ctx)}
	}
}

func (m Model) loginCmd(email, password string) tea.Cmd {
	return func() tea.Msg {
		result, err := m.session.Login(m.ctx, email, password)
		return loginResultMsg{result: result, err: err}
	}
}

func (m Model) logoutCmd(reason string) tea.Cmd {
	return func() tea.Msg {
		m.session.Logout(m.ctx, reason)
		return loggedOutMsg{}
	}
}

func (m Model) fetchCmd(view, resource string) tea.Cmd {
	return func() tea.Msg {
		records, err := m.records.List(m.ctx, resource)
		return recordsMsg{view: view, records: records, err: err}
	}
}

func (m Model) deleteCmd(view, resource, id string) tea.Cmd {
	return func() tea.Msg {
		return deletedMsg{view: view, id: id, err: m.records.Delete(m.ctx, resource, id)}
	}
}

func (m Model) notificationsCmd() tea.Cmd {
	return func() tea.Msg {
		records, err := m.records.List(m.ctx, sdk.ResourceNotifications)
		if len(records) > maxNotifications {
			records = records[:maxNotifications]
		}
		return notificationsMsg{records: records, err: err}
	}
}

func (m Model) notifyTick() tea.Cmd {
	gen := m.notifyGen
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return notifyTickMsg{gen: gen}
	})
}
