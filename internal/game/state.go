// Package game composes the arena systems into a playable session and runs the
// terminal game loop.
package game

// State represents the current game state.
type State int

const (
	// StateReady is before the first round starts.
	StateReady State = iota
	// StatePlaying is the normal in-round state.
	StatePlaying
	// StateRespawning is while the player waits out the respawn countdown.
	StateRespawning
	// StateRoundOver is after the round has ended and results are available.
	StateRoundOver
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StatePlaying:
		return "playing"
	case StateRespawning:
		return "respawning"
	case StateRoundOver:
		return "round_over"
	default:
		return "unknown"
	}
}
