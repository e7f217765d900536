package ui

// SearchRequestedMsg is sent when the user asks for a search (Enter).
// It is ignored while the query is empty, matching the disabled button.
type SearchRequestedMsg struct{}

// ClearQueryMsg empties the input (Esc), which resets the search to idle.
type ClearQueryMsg struct{}
