package ui

import (
	"context"
	"testing"

	"usersearch/internal/lookup"
	"usersearch/internal/search"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// collect runs cmd, expanding batches, and returns every message produced.
// Only use it on commands that do not sleep (lookups, spinner.Tick).
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// resultOf returns the single search.ResultMsg among msgs.
func resultOf(t *testing.T, msgs []tea.Msg) search.ResultMsg {
	t.Helper()
	var found []search.ResultMsg
	for _, m := range msgs {
		if r, ok := m.(search.ResultMsg); ok {
			found = append(found, r)
		}
	}
	require.Len(t, found, 1, "expected exactly one ResultMsg in %v", msgs)
	return found[0]
}

func newTestSearchView() *SearchView {
	return NewSearchView(search.NewController(lookup.NewMock(0)), nil)
}

func typeInto(v *SearchView, s string) {
	for _, m := range typeText(s) {
		v.Update(m)
	}
}

func TestSearchView_InitialRender(t *testing.T) {
	v := newTestSearchView()

	out := v.View()
	assert.Contains(t, out, TitleText)
	assert.Contains(t, out, "username")
	assert.Contains(t, out, "[ Search ]")
	assert.NotContains(t, out, SearchingText)
	assert.NotContains(t, out, FailureText)
	assert.NotNil(t, v.Init())
}

func TestSearchView_TypingUpdatesQuery(t *testing.T) {
	v := newTestSearchView()

	typeInto(v, "Testuser")
	assert.Equal(t, "Testuser", v.Controller.Query())
	assert.Contains(t, v.View(), "Testuser")

	v.Update(keyMsg("backspace"))
	assert.Equal(t, "Testuse", v.Controller.Query())
}

func TestSearchView_RequestSearchWithEmptyQueryDoesNothing(t *testing.T) {
	v := newTestSearchView()

	assert.Nil(t, v.RequestSearch(context.Background()))
	assert.Equal(t, search.PhaseIdle, v.Controller.Phase())
}

func TestSearchView_SearchShowsResults(t *testing.T) {
	v := newTestSearchView()
	typeInto(v, "Testuser")

	cmd := v.RequestSearch(context.Background())
	require.NotNil(t, cmd)
	assert.Contains(t, v.View(), SearchingText)

	v.Update(resultOf(t, collect(cmd)))
	out := v.View()
	assert.NotContains(t, out, SearchingText)
	assert.Contains(t, out, "Search results for Testuser")
	assert.Contains(t, out, "Testuser Chaplinsson")
	assert.Contains(t, out, "Testuser Håkansson")
	assert.Contains(t, out, "Testuser Testingsson")
}

func TestSearchView_UnknownShowsNoResults(t *testing.T) {
	v := newTestSearchView()
	typeInto(v, "unknown")

	v.Update(resultOf(t, collect(v.RequestSearch(context.Background()))))
	out := v.View()
	assert.Contains(t, out, "No search results for unknown")
	assert.NotContains(t, out, "Search results for")
}

func TestSearchView_ErrorShowsFailure(t *testing.T) {
	v := newTestSearchView()
	typeInto(v, "error")

	v.Update(resultOf(t, collect(v.RequestSearch(context.Background()))))
	assert.Equal(t, search.PhaseError, v.Controller.Phase())
	assert.Contains(t, v.View(), FailureText)
}

func TestSearchView_HeadingUsesSubmittedQuery(t *testing.T) {
	v := newTestSearchView()
	typeInto(v, "Testuser")
	cmd := v.RequestSearch(context.Background())

	typeInto(v, "2")
	v.Update(resultOf(t, collect(cmd)))
	assert.Contains(t, v.View(), "Search results for Testuser")
	assert.NotContains(t, v.View(), "Search results for Testuser2")
}

func TestSearchView_ErasingQueryWhileSearchingResetsToIdle(t *testing.T) {
	v := newTestSearchView()
	typeInto(v, "ab")
	cmd := v.RequestSearch(context.Background())

	v.Update(keyMsg("backspace"))
	v.Update(keyMsg("backspace"))
	assert.Equal(t, search.PhaseIdle, v.Controller.Phase())
	assert.NotContains(t, v.View(), SearchingText)

	// The abandoned lookup still completes but changes nothing.
	v.Update(resultOf(t, collect(cmd)))
	assert.Equal(t, search.PhaseIdle, v.Controller.Phase())
	assert.NotContains(t, v.View(), "Search results for")
}

func TestSearchView_ClearQuery(t *testing.T) {
	v := newTestSearchView()
	typeInto(v, "Testuser")
	v.Update(resultOf(t, collect(v.RequestSearch(context.Background()))))
	require.Equal(t, search.PhaseSuccess, v.Controller.Phase())

	v.ClearQuery()
	assert.Equal(t, "", v.Controller.Query())
	assert.Equal(t, search.PhaseIdle, v.Controller.Phase())
	assert.NotContains(t, v.View(), "Testuser Chaplinsson")
}

func TestSearchView_SpinnerTickIgnoredWhenIdle(t *testing.T) {
	v := newTestSearchView()

	_, cmd := v.Update(spinner.TickMsg{})
	assert.Nil(t, cmd)
}

func TestSearchView_SpinnerTicksWhileSearching(t *testing.T) {
	v := newTestSearchView()
	typeInto(v, "Testuser")
	msgs := collect(v.RequestSearch(context.Background()))

	var tick tea.Msg
	for _, m := range msgs {
		if _, ok := m.(spinner.TickMsg); ok {
			tick = m
		}
	}
	require.NotNil(t, tick, "search should start the spinner")
	_, cmd := v.Update(tick)
	assert.NotNil(t, cmd, "spinner should schedule the next frame while searching")
}

func TestSearchView_WindowSizeSetsHelpWidth(t *testing.T) {
	v := newTestSearchView()
	v.Update(tea.WindowSizeMsg{Width: 72, Height: 20})
	assert.Equal(t, 72, v.help.Width)
}

func TestSearchView_NarrowTerminalTruncatesResults(t *testing.T) {
	v := newTestSearchView()
	v.Update(tea.WindowSizeMsg{Width: 24, Height: 20})
	typeInto(v, "Testuser")

	v.Update(resultOf(t, collect(v.RequestSearch(context.Background()))))
	out := v.View()
	assert.Contains(t, out, "Testuser Chap…")
	assert.NotContains(t, out, "Testuser Chaplinsson")
	assert.Contains(t, out, "Search result…")
}

func TestPlainStatus(t *testing.T) {
	records := []lookup.Record{{DisplayName: "a b", ID: "1"}, {DisplayName: "a c", ID: "2"}}

	assert.Nil(t, PlainStatus(search.Snapshot{Phase: search.PhaseIdle}))
	assert.Equal(t, []string{SearchingText}, PlainStatus(search.Snapshot{Phase: search.PhaseSearching}))
	assert.Equal(t,
		[]string{"Search results for a", "a b", "a c"},
		PlainStatus(search.Snapshot{Phase: search.PhaseSuccess, SubmittedQuery: "a", Results: records}))
	assert.Equal(t,
		[]string{"No search results for a"},
		PlainStatus(search.Snapshot{Phase: search.PhaseSuccess, SubmittedQuery: "a"}))
	assert.Equal(t, []string{FailureText}, PlainStatus(search.Snapshot{Phase: search.PhaseError}))
}
