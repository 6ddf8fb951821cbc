package maze

// Direction names one of the four grid-adjacent moves from a cell.
type Direction string

const (
	Up    Direction = "up"
	Right Direction = "right"
	Down  Direction = "down"
	Left  Direction = "left"
)

// Directions lists the four moves in the order neighbors are enumerated
// before shuffling.
var Directions = []Direction{Up, Right, Down, Left}

// CellPosition represents the position of a cell in the maze grid.
type CellPosition struct {
	Row int `json:"row"` // Row index of the cell
	Col int `json:"col"` // Column index of the cell
}

// Step returns the position one cell away in the given direction.
func (p CellPosition) Step(d Direction) CellPosition {
	switch d {
	case Up:
		return CellPosition{Row: p.Row - 1, Col: p.Col}
	case Right:
		return CellPosition{Row: p.Row, Col: p.Col + 1}
	case Down:
		return CellPosition{Row: p.Row + 1, Col: p.Col}
	case Left:
		return CellPosition{Row: p.Row, Col: p.Col - 1}
	}
	return p
}

// Move represents a movement from one cell to an adjacent one.
type Move struct {
	From      CellPosition // Starting cell
	To        CellPosition // Destination cell
	Direction Direction    // Direction of the move
}
