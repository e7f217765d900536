package search

// Phase is the lifecycle stage of the most recent search attempt.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSearching
	PhaseSuccess
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseSearching:
		return "Searching"
	case PhaseSuccess:
		return "Success"
	case PhaseError:
		return "Error"
	default:
		return "Unknown"
	}
}
