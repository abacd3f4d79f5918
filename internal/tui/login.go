// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-ferrari-store/internal/service"
	"github.com/MKhiriev/go-ferrari-store/internal/validators"
	"github.com/MKhiriev/go-ferrari-store/models"
)

// LoginModel is the Bubble Tea model for the login screen. It renders two text inputs
// (email and password) and dispatches an async login command on form submission.
// On success a [LoginResult] message is produced and handled by [RootModel], which
// records the session and opens the page the user came from.
type LoginModel struct {
	ctx  context.Context
	auth service.ClientAuthService

	form       form
	next       string
	reason     string
	submitting bool
	errMsg     string
}

// NewLoginModel creates a [LoginModel]. The email field receives focus immediately;
// the password field uses masked echo.
func NewLoginModel(ctx context.Context, auth service.ClientAuthService) *LoginModel {
	return &LoginModel{
		ctx:  ctx,
		auth: auth,
		form: newForm(
			newField("email", 254, false),
			newField("password", validators.MaxPasswordBytes, true),
		),
		next: pageCatalog,
	}
}

// Init implements [tea.Model]. Starts the cursor-blink animation for the active input.
func (m *LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements [tea.Model]. Handled messages:
//   - [signInMsg]   sets the reason line and the page to return to.
//   - [LoginResult] clears submitting state; on error, populates errMsg.
//   - esc           navigates back to the catalog.
//   - ctrl+r        opens the registration form.
//   - tab/shift+tab moves focus between inputs.
//   - enter         validates inputs and dispatches the async login command.
//
// All other key events are forwarded to the focused input widget.
func (m *LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case signInMsg:
		m.reason = msg.reason
		m.next = msg.next
		if m.next == "" {
			m.next = pageCatalog
		}
		m.errMsg = ""
		return m, nil

	case LoginResult:
		m.submitting = false
		if msg.Err != nil {
			m.errMsg = humanizeError(msg.Err)
			return m, nil
		}
		m.form.reset()
		m.reason = ""
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.esc):
			m.submitting = false
			m.errMsg = ""
			return m, navigate(pageCatalog, nil)
		case key.Matches(msg, keys.signup):
			m.errMsg = ""
			return m, navigate(pageRegister, signInMsg{reason: m.reason, next: m.next})
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

			email := strings.TrimSpace(m.form.value(0))
			pass := m.form.value(1)
			if email == "" || pass == "" {
				m.errMsg = "Email and password are required"
				return m, nil
			}

			m.errMsg = ""
			m.submitting = true
			return m, m.cmdLogin(email, pass)
		}
	}

	return m, m.form.update(msg)
}

// View implements [tea.Model]. Renders the login form as a two-column table with
// email and password inputs, a submission indicator, and an optional error message.
func (m *LoginModel) View() string {
	var b strings.Builder
	if m.reason != "" {
		b.WriteString(noticeStyle.Render(m.reason))
		b.WriteString("\n\n")
	}
	b.WriteString("Field     │ Value\n")
	b.WriteString("──────────┼────────────────────────────────────────────\n")
	b.WriteString("Email     │ [")
	b.WriteString(m.form.inputs[0].View())
	b.WriteString("]\n")
	b.WriteString("Password  │ [")
	b.WriteString(m.form.inputs[1].View())
	b.WriteString("]\n")

	if m.submitting {
		b.WriteString("\n[Signing in...]\n")
	} else {
		b.WriteString("\n[Sign in]\n")
	}
	b.WriteString(statusLines("", m.errMsg))

	return renderPage("SIGN IN", strings.TrimRight(b.String(), "\n"),
		helpLine(keys.tab, keys.enter, keys.signup, keys.esc))
}

func (m *LoginModel) cmdLogin(email, pass string) tea.Cmd {
	ctx, auth, next := m.ctx, m.auth, m.next

	return func() tea.Msg {
		user, err := auth.Login(ctx, models.User{Email: email, Password: pass})
		return LoginResult{User: user, Next: next, Err: err}
	}
}
