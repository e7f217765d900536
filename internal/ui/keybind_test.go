package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeybindRegistry_BindLookup(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.Bind("ctrl+c", tea.Quit)
	reg.Bind("tab", nil)

	assert.NotNil(t, reg.Lookup("ctrl+c"))
	assert.Nil(t, reg.Lookup("tab"), "nil binding should behave as unbound")
	assert.Nil(t, reg.Lookup("unknown"))
}

func TestKeyHandler_ConsumesBoundKeys(t *testing.T) {
	reg := NewKeybindRegistry()
	var executed bool
	reg.Bind("enter", func() tea.Msg {
		executed = true
		return nil
	})
	h := NewKeyHandler(reg)

	consumed, cmd := h.Handle(keyMsg("enter"))
	require.True(t, consumed)
	require.NotNil(t, cmd)
	cmd()
	assert.True(t, executed)
}

func TestKeyHandler_PassesThroughUnboundKeys(t *testing.T) {
	h := NewKeyHandler(NewKeybindRegistry())

	consumed, cmd := h.Handle(keyMsg("q"))
	assert.False(t, consumed)
	assert.Nil(t, cmd)
}

func TestKeyHandler_NilSafe(t *testing.T) {
	var h *KeyHandler
	consumed, cmd := h.Handle(keyMsg("enter"))
	assert.False(t, consumed)
	assert.Nil(t, cmd)
}

func TestKeyMap_ShortHelpFollowsRegistrationOrder(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.BindWithDesc("enter", tea.Quit, "search")
	reg.BindWithDesc("esc", tea.Quit, "clear")
	reg.Bind("ctrl+z", tea.Quit) // no description: hidden from help
	reg.BindWithDesc("ctrl+c", tea.Quit, "quit")
	reg.BindWithDesc("enter", tea.Quit, "search again")

	bindings := reg.KeyMap().ShortHelp()
	require.Len(t, bindings, 3)
	assert.Equal(t, "enter", bindings[0].Help().Key)
	assert.Equal(t, "search again", bindings[0].Help().Desc)
	assert.Equal(t, "esc", bindings[1].Help().Key)
	assert.Equal(t, "ctrl+c", bindings[2].Help().Key)

	full := reg.KeyMap().FullHelp()
	require.Len(t, full, 1)
	assert.Len(t, full[0], 3)
}

func TestKeyMap_EmptyRegistry(t *testing.T) {
	km := NewKeybindRegistry().KeyMap()
	assert.Empty(t, km.ShortHelp())
	assert.Nil(t, km.FullHelp())
}

// keyMsg builds the tea.KeyMsg Bubble Tea would deliver for s.
func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+u":
		return tea.KeyMsg{Type: tea.KeyCtrlU}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

// typeText returns one key message per rune of s.
func typeText(s string) []tea.Msg {
	msgs := make([]tea.Msg, 0, len(s))
	for _, r := range s {
		msgs = append(msgs, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return msgs
}
