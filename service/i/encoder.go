package i

import "github.com/beka-birhanu/tilt-maze/maze"

// MazeEncoder serializes maze topology for clients.
type MazeEncoder interface {
	// ContentType is the media type of the encoded form.
	ContentType() string
	MarshalMaze(m *maze.Maze) ([]byte, error)
	UnmarshalMaze(b []byte) (*maze.Maze, error)
}

// LayoutRenderer draws a session's world as an image.
type LayoutRenderer interface {
	// ContentType is the media type of the rendered image.
	ContentType() string
	Render(v *SessionView) ([]byte, error)
}
