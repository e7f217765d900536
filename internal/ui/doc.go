// Package ui renders the user search screen with Bubble Tea.
//
// Core pieces:
//   - View: a screen with its own model, update and view (Elm-style)
//   - SearchView: text input, Search button and the phase-dependent status
//   - AppModel: root model that owns key bindings and routes app messages
//   - KeybindRegistry / KeyHandler: single-key bindings shown in the help bar
//
// All search state lives in search.Controller; the view only reads
// snapshots and forwards input.
package ui
