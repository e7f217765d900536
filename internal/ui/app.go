package ui

import (
	"context"

	"usersearch/internal/search"

	tea "github.com/charmbracelet/bubbletea"
)

// AppModel is the root model. It owns the keybind system and the search
// view, and routes app-level messages to the view.
type AppModel struct {
	Search     *SearchView
	KeyHandler *KeyHandler
	// Ctx bounds every lookup started from the UI. Defaults to context.Background.
	Ctx context.Context
}

// Ensure AppModel can be used as tea.Model via adapter.
var _ tea.Model = (*appModelAdapter)(nil)

// appModelAdapter wraps AppModel to implement tea.Model.
type appModelAdapter struct {
	*AppModel
}

// Init implements tea.Model.
func (a *appModelAdapter) Init() tea.Cmd {
	return a.Search.Init()
}

// Update implements tea.Model.
func (a *appModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SearchRequestedMsg:
		return a, a.Search.RequestSearch(a.ctx())
	case ClearQueryMsg:
		a.Search.ClearQuery()
		return a, nil
	case tea.KeyMsg:
		if a.KeyHandler != nil {
			if consumed, keyCmd := a.KeyHandler.Handle(msg); consumed {
				return a, keyCmd
			}
		}
	}

	v, cmd := a.Search.Update(msg)
	if sv, ok := v.(*SearchView); ok {
		a.Search = sv
	}
	return a, cmd
}

// View implements tea.Model.
func (a *appModelAdapter) View() string {
	return a.Search.View()
}

func (a *AppModel) ctx() context.Context {
	if a.Ctx == nil {
		return context.Background()
	}
	return a.Ctx
}

// NewAppModel creates the root application model around c with the
// default key bindings.
func NewAppModel(c *search.Controller) *AppModel {
	reg := NewKeybindRegistry()
	reg.BindWithDesc("enter", func() tea.Msg { return SearchRequestedMsg{} }, "search")
	reg.BindWithDesc("esc", func() tea.Msg { return ClearQueryMsg{} }, "clear")
	reg.BindWithDesc("ctrl+c", tea.Quit, "quit")
	return &AppModel{
		Search:     NewSearchView(c, reg.KeyMap()),
		KeyHandler: NewKeyHandler(reg),
	}
}

// AsTeaModel returns a tea.Model adapter for use with tea.NewProgram.
func (m *AppModel) AsTeaModel() tea.Model {
	return &appModelAdapter{AppModel: m}
}
