package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"

	"github.com/dmehra/learnly/internal/premium"
	"github.com/dmehra/learnly/internal/screens/lesson"
	"github.com/dmehra/learnly/internal/session"
	"github.com/dmehra/learnly/internal/store"
)

// Options carry the dependencies of the lesson TUI.
type Options struct {
	Controller *session.Controller
	Slug       string
}

// appModel wraps the lesson screen with global key handling.
type appModel struct {
	screen lesson.Model
	ctrl   *session.Controller
}

func (m appModel) Init() tea.Cmd {
	return m.screen.Init()
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "ctrl+c" {
		m.ctrl.Close(context.Background())
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.screen, cmd = m.screen.Update(msg)
	return m, cmd
}

func (m appModel) View() tea.View {
	return m.screen.View()
}

// Run opens one lesson in the TUI and blocks until the user quits.
func Run(opts Options) error {
	model := appModel{
		screen: lesson.New(opts.Controller, opts.Slug),
		ctrl:   opts.Controller,
	}
	p := tea.NewProgram(model)
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	opts.Controller.Close(context.Background())
	return nil
}

// BuildController assembles a session controller from its collaborators.
func BuildController(deps session.Deps) *session.Controller {
	return session.New(deps, session.DefaultConfig())
}

// BuildDeps wires the standard dependency set: the HTTP client serves
// content, progress, notes and bookmarks; the gateway serves premium
// features; the store records events.
func BuildDeps(client contentDeps, gateway premium.Gateway, events store.EventRecorder) session.Deps {
	return session.Deps{
		Content:   client,
		Progress:  client,
		Notes:     client,
		Bookmarks: client,
		Gateway:   gateway,
		Events:    events,
	}
}

// contentDeps is the full client surface the controller consumes.
type contentDeps interface {
	session.ContentStore
	session.ProgressStore
	session.NotesStore
	session.BookmarkStore
}
