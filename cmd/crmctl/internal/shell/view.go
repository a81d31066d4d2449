package shell

import (
	"fmt"
	"strings"

	"github.com/Rahul675/indyanet-crm/cmd/crmctl/internal/nav"
	"github.com/Rahul675/indyanet-crm/cmd/crmctl/internal/rolegate"
	"github.com/Rahul675/indyanet-crm/pkg/sdk"
	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.snapshot.Restoring {
		return fmt.Sprintf("\n  %s Loading session...\n", m.spinner.View())
	}
	if m.snapshot.User == nil {
		form := m.login.view(m.styles)
		if m.width > 0 && m.height > 0 {
			return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, form)
		}
		return form
	}

	body := m.bodyView()
	if m.loggingOut {
		body = m.logoutDialogView()
	}
	main := lipgloss.JoinHorizontal(lipgloss.Top, m.sidebarView(), m.styles.Body.Render(body))
	return lipgloss.JoinVertical(lipgloss.Left, m.topbarView(), main, m.footerView())
}

func (m Model) topbarView() string {
	user := m.snapshot.User
	left := m.styles.Title.Render("Indyanet CRM")
	welcome := fmt.Sprintf("Welcome, %s (%s)", user.DisplayName(), user.Role)
	bell := fmt.Sprintf("Notifications: %d", len(m.notifications))
	line := strings.Join([]string{left, welcome, bell}, "   ")
	if m.searching {
		line += "   " + m.search.View()
	}
	return m.styles.Topbar.Render(line)
}

func (m Model) sidebarView() string {
	var b strings.Builder
	active := ""
	if m.nav != nil {
		active = m.nav.ActiveViewKey()
	}
	for i, item := range m.visible() {
		label := item.Label
		style := m.styles.NavItem
		if item.Key == active {
			style = m.styles.NavActive
			label = "› " + label
		} else {
			label = "  " + label
		}
		if !m.bodyFocus && i == m.cursor {
			style = style.Inherit(m.styles.NavCursor)
		}
		b.WriteString(style.Render(label))
		b.WriteString("\n")
	}
	return m.styles.Sidebar.Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) footerView() string {
	help := "↑/↓ move • enter open • tab focus • / search • p profile • r refresh • ctrl+l logout • ctrl+c quit"
	if m.nav != nil && m.nav.Current().IsDetail() {
		help = "esc back • / search • ctrl+l logout"
	} else if m.gate.CanPerform(rolegate.ActionDeleteRecord, m.role()) {
		help = strings.Replace(help, "r refresh", "r refresh • x delete", 1)
	}
	footer := m.styles.Muted.Render(help)
	if m.status != "" {
		footer = m.status + "\n" + footer
	}
	return footer
}

func (m Model) bodyView() string {
	if m.nav == nil {
		return ""
	}
	v := m.nav.Current()
	if v.IsDetail() {
		return m.detailView(v)
	}
	switch v.Key {
	case rolegate.ViewDashboard:
		return m.dashboardView()
	case rolegate.ViewProfile:
		return m.profileView()
	}

	title := m.styles.Title.Render(v.Key)
	item, ok := rolegate.Find(m.visible(), v.Key)
	switch {
	case !ok:
		return title + "\n\n" + m.styles.Muted.Render("This page is not available for your role.")
	case item.Resource == "":
		return title + "\n\n" + m.styles.Muted.Render("Nothing to list on this page in the console.")
	case m.page.loading:
		return title + "\n\n" + m.styles.Muted.Render("Loading "+strings.ToLower(v.Key)+"...")
	case m.page.err != "":
		return title + "\n\n" + m.styles.Error.Render(m.page.err)
	case len(m.page.records) == 0:
		return title + "\n\n" + m.styles.Muted.Render("No records.")
	}
	return title + "\n\n" + m.table.View()
}

func (m Model) dashboardView() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Dashboard"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Welcome back, %s.\n\n", m.snapshot.User.DisplayName()))
	b.WriteString(m.styles.Key.Render("Notifications"))
	b.WriteString("\n")
	if len(m.notifications) == 0 {
		b.WriteString(m.styles.Muted.Render("No notifications."))
		return b.String()
	}
	for _, n := range m.notifications {
		text := n.String("message")
		if text == "" {
			text = n.Title()
		}
		b.WriteString("• " + text + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) profileView() string {
	u := m.snapshot.User
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Profile"))
	b.WriteString("\n\n")
	for _, f := range []sdk.Field{
		{Key: "Name", Value: u.Name},
		{Key: "Email", Value: u.Email},
		{Key: "Role", Value: u.Role},
		{Key: "User ID", Value: u.ID},
	} {
		b.WriteString(m.styles.Key.Render(f.Key) + sdk.FormatValue(f.Value) + "\n")
	}
	actions := m.gate.Actions(u.Role)
	if len(actions) == 0 {
		actions = []string{"none"}
	}
	b.WriteString(m.styles.Key.Render("Allowed actions") + strings.Join(actions, ", "))
	return b.String()
}

var detailTitles = map[nav.Kind]string{
	nav.ViewingCustomerDetail: "Customer",
	nav.ViewingClusterDetail:  "Cluster",
	nav.ViewingOperatorDetail: "Operator",
}

func (m Model) detailView(v nav.View) string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render(fmt.Sprintf("%s: %s", detailTitles[v.Kind], v.Entity.Title())))
	b.WriteString("\n")
	if m.detailSearch != "" {
		b.WriteString(m.styles.Muted.Render("Search: " + m.detailSearch))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	needle := strings.ToLower(m.detailSearch)
	for _, f := range sdk.SortFields(v.Entity) {
		value := sdk.FormatValue(f.Value)
		if needle != "" && strings.Contains(strings.ToLower(value), needle) {
			value = m.styles.Match.Render(value)
		}
		b.WriteString(m.styles.Key.Render(f.Key) + value + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) logoutDialogView() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Log out"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Operators must give a reason (at least %d characters).\n\n", sdk.MinLogoutReasonLen))
	b.WriteString(m.reason.View())
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render(fmt.Sprintf("%d/%d", len([]rune(strings.TrimSpace(m.reason.Value()))), sdk.MinLogoutReasonLen)))
	if m.reasonErr != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render(m.reasonErr))
	}
	b.WriteString("\n\n")
	b.WriteString(m.styles.Muted.Render("enter confirm • esc cancel"))
	return m.styles.Dialog.Render(b.String())
}
