package tui

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-ferrari-store/internal/service"
	"github.com/MKhiriev/go-ferrari-store/internal/validators"
	"github.com/MKhiriev/go-ferrari-store/models"
)

const (
	regName = iota
	regEmail
	regPassword
	regRepeat
)

// RegisterModel is the Bubble Tea model for the registration screen. It renders four
// text inputs (display name, email, password and its confirmation) and dispatches an
// async registration command on form submission. The server signs the new account in,
// so success produces the same [LoginResult] as the login form.
type RegisterModel struct {
	ctx  context.Context
	auth service.ClientAuthService

	form       form
	next       string
	submitting bool
	errMsg     string
}

// NewRegisterModel creates a [RegisterModel]. The name field receives focus
// immediately; the password fields use masked echo.
func NewRegisterModel(ctx context.Context, auth service.ClientAuthService) *RegisterModel {
	return &RegisterModel{
		ctx:  ctx,
		auth: auth,
		form: newForm(
			newField("name", validators.MaxNameLength, false),
			newField("email", 254, false),
			newField("password", validators.MaxPasswordBytes, true),
			newField("repeat password", validators.MaxPasswordBytes, true),
		),
		next: pageCatalog,
	}
}

func (m *RegisterModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *RegisterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case signInMsg:
		m.next = msg.next
		if m.next == "" {
			m.next = pageCatalog
		}
		return m, nil

	case LoginResult:
		m.submitting = false
		if msg.Err != nil {
			m.errMsg = humanizeError(msg.Err)
			return m, nil
		}
		m.form.reset()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.esc):
			m.submitting = false
			m.errMsg = ""
			return m, navigate(pageLogin, signInMsg{next: m.next})
		case key.Matches(msg, keys.tab):
			m.form.next()
			return m, nil
		case key.Matches(msg, keys.backtab):
			m.form.prev()
			return m, nil
		case key.Matches(msg, keys.enter):
			if m.submitting {
				return m, nil
			}

			user, errMsg := m.readUser()
			if errMsg != "" {
				m.errMsg = errMsg
				return m, nil
			}

			m.errMsg = ""
			m.submitting = true
			return m, m.cmdRegister(user)
		}
	}

	return m, m.form.update(msg)
}

func (m *RegisterModel) View() string {
	labels := []string{"Name", "Email", "Password", "Repeat"}

	var b strings.Builder
	b.WriteString("Field     │ Value\n")
	b.WriteString("──────────┼────────────────────────────────────────────\n")
	for i, label := range labels {
		b.WriteString(label)
		b.WriteString(strings.Repeat(" ", 10-len(label)))
		b.WriteString("│ [")
		b.WriteString(m.form.inputs[i].View())
		b.WriteString("]\n")
	}

	if m.submitting {
		b.WriteString("\n[Creating account...]\n")
	} else {
		b.WriteString("\n[Create account]\n")
	}
	b.WriteString(statusLines("", m.errMsg))

	return renderPage("CREATE ACCOUNT", strings.TrimRight(b.String(), "\n"),
		helpLine(keys.tab, keys.enter, keys.esc))
}

// readUser checks the form locally so obvious mistakes do not cost a round trip.
func (m *RegisterModel) readUser() (models.User, string) {
	name := strings.TrimSpace(m.form.value(regName))
	email := strings.TrimSpace(m.form.value(regEmail))
	pass := m.form.value(regPassword)

	switch {
	case name == "" || email == "" || pass == "":
		return models.User{}, "Name, email and password are required"
	case !validEmail(email):
		return models.User{}, "Enter a valid email address"
	case utf8.RuneCountInString(pass) < validators.MinPasswordLength:
		return models.User{}, fmt.Sprintf("Password must have at least %d characters", validators.MinPasswordLength)
	case pass != m.form.value(regRepeat):
		return models.User{}, "Passwords do not match"
	}

	return models.User{Name: name, Email: email, Password: pass}, ""
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

func (m *RegisterModel) cmdRegister(user models.User) tea.Cmd {
	ctx, auth, next := m.ctx, m.auth, m.next

	return func() tea.Msg {
		created, err := auth.Register(ctx, user)
		return LoginResult{User: created, Registered: true, Next: next, Err: err}
	}
}
