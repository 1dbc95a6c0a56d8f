// Package state holds the score-keeping side of a run.
package state

// maxMessages is how many lines the message pane keeps
const maxMessages = 5

// Game represents the state of one run
type Game struct {
	Started bool
	Over    bool

	// Distance is in metres, advanced once per tick
	Distance float64

	Score       int
	DoorsPassed int
	Recycled    int

	// SpeedMultiplier scales the base speed; it ramps up with every door
	SpeedMultiplier float64

	Jumping bool

	Messages []string
}

// NewGame creates a new game instance
func NewGame() *Game {
	return &Game{
		SpeedMultiplier: 1,
		Messages:        make([]string, 0),
	}
}

// UpdateDistance advances the distance for a tick of dt seconds at baseSpeed
func (g *Game) UpdateDistance(dt, baseSpeed float64) {
	if !g.Started || g.Over {
		return
	}
	g.Distance += dt * baseSpeed * g.SpeedMultiplier / 2
}

// AddMessage adds a message to the game's message log
func (g *Game) AddMessage(msg string) {
	g.Messages = append(g.Messages, msg)

	// Keep only the last maxMessages
	if len(g.Messages) > maxMessages {
		g.Messages = g.Messages[len(g.Messages)-maxMessages:]
	}
}

// ClearMessages clears all messages
func (g *Game) ClearMessages() {
	g.Messages = make([]string, 0)
}

// End marks the run as finished
func (g *Game) End() {
	g.Over = true
	g.Jumping = false
}

// Reset returns the game to its pre-start state
func (g *Game) Reset() {
	*g = *NewGame()
}
