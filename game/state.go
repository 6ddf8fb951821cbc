package game

// Phase is the lifecycle stage of a session.
type Phase int

const (
	Playing Phase = iota // The ball is steered by directional commands.
	Won                  // Terminal: the ball reached the goal.
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case Playing:
		return "playing"
	case Won:
		return "won"
	}
	return "unknown"
}

// State is the win state machine. It moves from Playing to Won once, on the
// first collision between the ball and the goal, and notifies its
// collaborators exactly once.
//
// State is not safe for concurrent use; callers deliver one event at a time.
type State struct {
	phase     Phase
	presenter Presenter
	world     PhysicsWorld
}

// NewState returns a State in the Playing phase.
func NewState(p Presenter, w PhysicsWorld) *State {
	return &State{phase: Playing, presenter: p, world: w}
}

// Phase returns the current phase.
func (s *State) Phase() Phase {
	return s.phase
}

// Won reports whether the session has been won.
func (s *State) Won() bool {
	return s.phase == Won
}

// HandleCollision consumes a collision notification between two labelled
// bodies. It returns true only for the event that caused the win.
func (s *State) HandleCollision(labelA, labelB string) bool {
	if s.phase == Won || !isBallGoalPair(labelA, labelB) {
		return false
	}

	s.phase = Won
	if s.presenter != nil {
		s.presenter.ShowWinner()
	}
	if s.world != nil {
		s.world.EnableGravity()
		s.world.ReleaseWalls()
	}
	return true
}

func isBallGoalPair(a, b string) bool {
	return (a == BallLabel && b == GoalLabel) || (a == GoalLabel && b == BallLabel)
}
