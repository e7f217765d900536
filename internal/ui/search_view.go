package ui

import (
	"context"
	"strings"

	"usersearch/internal/search"
	"usersearch/internal/ui/textutil"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// User-visible text.
const (
	TitleText       = "Search a user"
	PlaceholderText = "Enter username"
	ButtonText      = "Search"
	SearchingText   = "Searching..."
	FailureText     = "Something went wrong"
)

// ResultsHeading is shown above a non-empty result list.
func ResultsHeading(query string) string { return "Search results for " + query }

// NoResultsHeading is shown when a search succeeded with nothing found.
func NoResultsHeading(query string) string { return "No search results for " + query }

// SearchView renders a search.Controller and feeds it user input.
type SearchView struct {
	Controller *search.Controller
	input      textinput.Model
	spinner    spinner.Model
	help       help.Model
	keys       help.KeyMap
	// width is the terminal width, 0 until the first WindowSizeMsg.
	width int
}

// Ensure SearchView implements View.
var _ View = (*SearchView)(nil)

// NewSearchView creates a focused search view over c. keys may be nil.
func NewSearchView(c *search.Controller, keys help.KeyMap) *SearchView {
	ti := textinput.New()
	ti.Placeholder = PlaceholderText
	ti.Width = 40
	ti.Prompt = "> "
	ti.SetValue(c.Query())
	ti.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = Styles.Status

	return &SearchView{
		Controller: c,
		input:      ti,
		spinner:    s,
		help:       newHelpModel(),
		keys:       keys,
	}
}

// Init implements View.
func (v *SearchView) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements View.
func (v *SearchView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case search.ResultMsg:
		v.Controller.Resolve(msg)
		return v, nil
	case spinner.TickMsg:
		// Let the spinner chain die once the search is no longer outstanding.
		if v.Controller.Phase() != search.PhaseSearching {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd
	case tea.WindowSizeMsg:
		v.help.Width = msg.Width
		v.width = msg.Width
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	if text := v.input.Value(); text != v.Controller.Query() {
		v.Controller.SetQuery(text)
	}
	return v, cmd
}

// RequestSearch triggers a search for the current query. Returns nil when
// the query is empty.
func (v *SearchView) RequestSearch(ctx context.Context) tea.Cmd {
	cmd := v.Controller.TriggerSearch(ctx)
	if cmd == nil {
		return nil
	}
	return tea.Batch(cmd, v.spinner.Tick)
}

// ClearQuery empties the input and resets the controller.
func (v *SearchView) ClearQuery() {
	v.input.SetValue("")
	v.Controller.SetQuery("")
}

// View implements View.
func (v *SearchView) View() string {
	snap := v.Controller.Snapshot()

	var b strings.Builder
	b.WriteString(Styles.Title.Render(TitleText) + "\n\n")
	b.WriteString(v.input.View() + "\n")
	b.WriteString(renderButton(snap.CanSearch()) + "\n")

	if status := v.renderStatus(snap); status != "" {
		b.WriteString("\n" + status)
	}

	content := Styles.Box.Render(b.String())
	if v.keys != nil {
		content = lipgloss.JoinVertical(lipgloss.Left, content, v.help.View(v.keys))
	}
	return content
}

func renderButton(enabled bool) string {
	label := "[ " + ButtonText + " ]"
	if !enabled {
		return Styles.ButtonDisabled.Render(label)
	}
	return Styles.Button.Render(label)
}

func (v *SearchView) renderStatus(snap search.Snapshot) string {
	switch snap.Phase {
	case search.PhaseSearching:
		return v.spinner.View() + " " + Styles.Status.Render(SearchingText)
	case search.PhaseSuccess:
		if len(snap.Results) == 0 {
			return Styles.Empty.Render(v.fit(NoResultsHeading(snap.SubmittedQuery)))
		}
		lines := []string{Styles.Section.Render(v.fit(ResultsHeading(snap.SubmittedQuery)))}
		for _, r := range snap.Results {
			lines = append(lines, Styles.Item.Render(v.fit(r.DisplayName)))
		}
		return strings.Join(lines, "\n")
	case search.PhaseError:
		return Styles.Error.Render(FailureText)
	}
	return ""
}

// fit truncates s to the space inside the box. Before the terminal size is
// known nothing is cut.
func (v *SearchView) fit(s string) string {
	if v.width == 0 {
		return s
	}
	return textutil.Truncate(s, v.width-boxChrome)
}

// PlainStatus renders the phase-dependent part of the view without styling,
// one line per element. Idle yields no lines.
func PlainStatus(snap search.Snapshot) []string {
	switch snap.Phase {
	case search.PhaseSearching:
		return []string{SearchingText}
	case search.PhaseSuccess:
		if len(snap.Results) == 0 {
			return []string{NoResultsHeading(snap.SubmittedQuery)}
		}
		lines := []string{ResultsHeading(snap.SubmittedQuery)}
		for _, r := range snap.Results {
			lines = append(lines, r.DisplayName)
		}
		return lines
	case search.PhaseError:
		return []string{FailureText}
	}
	return nil
}
