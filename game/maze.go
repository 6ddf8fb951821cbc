package game

// Maze defines the topology a session lays out as world geometry.
// *maze.Maze implements it.
type Maze interface {
	Rows() int
	Cols() int
	IsVerticalOpen(row, col int) bool
	IsHorizontalOpen(row, col int) bool
}

// Presenter reveals the win indicator to the player.
type Presenter interface {
	ShowWinner()
}

// PhysicsWorld is the simulation that owns bodies and moves the ball.
type PhysicsWorld interface {
	// SetBallVelocity replaces the ball body's velocity.
	SetBallVelocity(v Vector)
	// EnableGravity turns on downward gravity for dynamic bodies.
	EnableGravity()
	// ReleaseWalls converts every wall-labelled body from static to dynamic.
	ReleaseWalls()
}
