package shell

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// loginForm is the email/password form. While inFlight is set, submissions
// are ignored.
type loginForm struct {
	email    textinput.Model
	password textinput.Model
	focus    int
	inFlight bool
	err      string
}

func newLoginForm() loginForm {
	email := textinput.New()
	email.Placeholder = "you@company.com"
	email.Prompt = "Email    "
	email.CharLimit = 254
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.Prompt = "Password "
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.CharLimit = 128

	return loginForm{email: email, password: password}
}

func (f *loginForm) setFocus(i int) tea.Cmd {
	f.focus = i % 2
	if f.focus == 0 {
		f.password.Blur()
		return f.email.Focus()
	}
	f.email.Blur()
	return f.password.Focus()
}

// submittable reports whether both fields have content and no request is out.
func (f loginForm) submittable() bool {
	return !f.inFlight &&
		strings.TrimSpace(f.email.Value()) != "" &&
		strings.TrimSpace(f.password.Value()) != ""
}

func (f loginForm) update(msg tea.Msg) (loginForm, tea.Cmd) {
	var cmd tea.Cmd
	if f.focus == 0 {
		f.email, cmd = f.email.Update(msg)
	} else {
		f.password, cmd = f.password.Update(msg)
	}
	return f, cmd
}

func (f loginForm) view(s Styles) string {
	var b strings.Builder
	b.WriteString(s.Title.Render("Indyanet CRM"))
	b.WriteString("\n")
	b.WriteString(s.Muted.Render("Sign in to continue"))
	b.WriteString("\n\n")
	b.WriteString(f.email.View())
	b.WriteString("\n")
	b.WriteString(f.password.View())
	b.WriteString("\n\n")

	button := "[ Sign in ]"
	switch {
	case f.inFlight:
		button = s.Muted.Render("[ Signing in... ]")
	case !f.submittable():
		button = s.Muted.Render(button)
	default:
		button = s.Title.Render(button)
	}
	b.WriteString(button)

	if f.err != "" {
		b.WriteString("\n\n")
		b.WriteString(s.Error.Render(f.err))
	}
	b.WriteString("\n\n")
	b.WriteString(s.Muted.Render("tab switch field • enter sign in • ctrl+c quit"))
	return s.LoginPanel.Render(b.String())
}
