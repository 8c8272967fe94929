package engine

// Status is the phase of the game.
type Status int

const (
	StatusIdle     Status = iota // reset, no heading chosen yet
	StatusPlaying                // moving
	StatusWon                    // score reached MaxScore or the board filled up
	StatusCollided               // hit a wall or itself with AutoReset off
)

func (s Status) String() string {
	switch s {
	case StatusPlaying:
		return "playing"
	case StatusWon:
		return "won"
	case StatusCollided:
		return "collided"
	default:
		return "idle"
	}
}

// Event is what a single Advance call did.
type Event int

const (
	EventIdle          Event = iota // no heading yet, nothing moved
	EventFrozen                     // game is won or collided, nothing changed
	EventMoved                      // head advanced, tail retracted
	EventGrew                       // head advanced, tail kept (owed growth)
	EventAte                        // food eaten, new food placed
	EventWon                        // food eaten and score reached MaxScore
	EventBoardFilled                // food eaten and no empty cell is left
	EventWallCollision              // head left the grid
	EventSelfCollision              // head ran into the body
)

// Collision reports whether e ended the round by hitting something.
func (e Event) Collision() bool {
	return e == EventWallCollision || e == EventSelfCollision
}

func (e Event) String() string {
	switch e {
	case EventFrozen:
		return "frozen"
	case EventMoved:
		return "moved"
	case EventGrew:
		return "grew"
	case EventAte:
		return "ate"
	case EventWon:
		return "won"
	case EventBoardFilled:
		return "board-filled"
	case EventWallCollision:
		return "wall-collision"
	case EventSelfCollision:
		return "self-collision"
	default:
		return "idle"
	}
}
