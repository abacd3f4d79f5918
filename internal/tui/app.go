package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-ferrari-store/internal/service"
	"github.com/MKhiriev/go-ferrari-store/models"
)

// RootModel is a TUI router:
// 1) keeps the active page
// 2) handles global Ctrl+C quit and the build info overlay
// 3) handles NavigateTo messages and the sign in/out lifecycle
// 4) delegates all other messages to the active page
type RootModel struct {
	ctx  context.Context
	auth service.ClientAuthService
	sess *session

	pages   map[string]tea.Model
	current string

	buildInfo     models.AppBuildInfo
	showBuildInfo bool
	quitByUser    bool
}

// NewRootModel registers all pages and opens startPage.
func NewRootModel(ctx context.Context, auth service.ClientAuthService, sess *session, pages map[string]tea.Model, startPage string, buildInfo models.AppBuildInfo) RootModel {
	return RootModel{
		ctx:       ctx,
		auth:      auth,
		sess:      sess,
		pages:     pages,
		current:   startPage,
		buildInfo: buildInfo,
	}
}

func (r RootModel) Init() tea.Cmd {
	page, ok := r.pages[r.current]
	if !ok {
		return nil
	}
	return page.Init()
}

func (r RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			r.quitByUser = true
			return r, tea.Quit
		case "v":
			if r.browsingCatalog() {
				r.showBuildInfo = !r.showBuildInfo
				return r, nil
			}
		case "esc":
			if r.showBuildInfo {
				r.showBuildInfo = false
				return r, nil
			}
		}
		if r.showBuildInfo {
			return r, nil
		}

	case tea.WindowSizeMsg:
		// every page keeps its layout, not only the visible one
		var cmds []tea.Cmd
		for name, page := range r.pages {
			updated, cmd := page.Update(msg)
			r.pages[name] = updated
			cmds = append(cmds, cmd)
		}
		return r, tea.Batch(cmds...)

	case NavigateTo:
		return r.navigate(msg.Page, msg.Payload)

	case LoginResult:
		if msg.Err == nil {
			// let the form clear itself before it is left
			if page, ok := r.pages[r.current]; ok {
				r.pages[r.current], _ = page.Update(msg)
			}
			r.sess.set(msg.User.UserID, msg.User.Email, msg.User.Name)
			next := msg.Next
			if next == "" {
				next = pageCatalog
			}
			greeting := fmt.Sprintf("Welcome back, %s", r.sess.label())
			if msg.Registered {
				greeting = fmt.Sprintf("Account created, welcome %s", r.sess.label())
			}
			return r.navigate(next, noticeMsg{text: greeting})
		}

	case loggedOutMsg:
		if msg.err == nil {
			r.sess.clear()
		}

	case sessionExpiredMsg:
		r.sess.clear()
		ctx, auth, next := r.ctx, r.auth, msg.next
		return r, func() tea.Msg {
			// the token is already rejected, a failed local cleanup changes nothing
			_ = auth.Logout(ctx)
			return NavigateTo{Page: pageLogin, Payload: signInMsg{reason: "Your session expired, sign in again", next: next}}
		}
	}

	page, ok := r.pages[r.current]
	if !ok {
		return r, nil
	}
	updated, cmd := page.Update(msg)
	r.pages[r.current] = updated
	return r, cmd
}

func (r RootModel) View() string {
	if r.showBuildInfo {
		return renderBuildInfoWindow(r.buildInfo)
	}
	page, ok := r.pages[r.current]
	if !ok {
		return renderPage("FERRARI STORE", "", "")
	}
	return page.View()
}

func (r RootModel) navigate(name string, payload tea.Msg) (tea.Model, tea.Cmd) {
	next, ok := r.pages[name]
	if !ok {
		return r, nil
	}

	r.showBuildInfo = false
	r.current = name

	cmd := next.Init()
	if payload != nil {
		cmd = tea.Sequence(cmd, func() tea.Msg { return payload })
	}
	return r, cmd
}

// browsingCatalog reports whether the catalog is shown and its search box is
// not capturing keys.
func (r RootModel) browsingCatalog() bool {
	catalog, ok := r.pages[r.current].(*CatalogModel)
	return ok && !catalog.filtering()
}
