// Package encoder serializes maze topology for the wire.
package encoder

import (
	"errors"
	"fmt"

	"github.com/beka-birhanu/tilt-maze/maze"
	"github.com/beka-birhanu/tilt-maze/service/i"
	"google.golang.org/protobuf/encoding/protowire"
)

var _ i.MazeEncoder = &Protowire{}

var ErrMalformedMaze = errors.New("malformed maze message")

// MaxSide bounds the rows and columns accepted when decoding.
const MaxSide = 64

// Field numbers of the maze message:
//
//	message Maze {
//	  uint32 rows        = 1;
//	  uint32 cols        = 2;
//	  uint32 start_row   = 3;
//	  uint32 start_col   = 4;
//	  bytes  verticals   = 5; // row-major bitset, rows x (cols-1)
//	  bytes  horizontals = 6; // row-major bitset, (rows-1) x cols
//	}
const (
	rowsField        protowire.Number = 1
	colsField        protowire.Number = 2
	startRowField    protowire.Number = 3
	startColField    protowire.Number = 4
	verticalsField   protowire.Number = 5
	horizontalsField protowire.Number = 6
)

// Protowire encodes mazes as protobuf wire-format messages.
type Protowire struct{}

// ContentType implements i.MazeEncoder.
func (p *Protowire) ContentType() string {
	return "application/x-protobuf"
}

// MarshalMaze implements i.MazeEncoder.
func (p *Protowire) MarshalMaze(m *maze.Maze) ([]byte, error) {
	if m == nil {
		return nil, ErrMalformedMaze
	}

	var b []byte
	b = appendVarintField(b, rowsField, uint64(m.Rows()))
	b = appendVarintField(b, colsField, uint64(m.Cols()))
	b = appendVarintField(b, startRowField, uint64(m.Start().Row))
	b = appendVarintField(b, startColField, uint64(m.Start().Col))
	b = protowire.AppendTag(b, verticalsField, protowire.BytesType)
	b = protowire.AppendBytes(b, packBits(m.Verticals()))
	b = protowire.AppendTag(b, horizontalsField, protowire.BytesType)
	b = protowire.AppendBytes(b, packBits(m.Horizontals()))
	return b, nil
}

// UnmarshalMaze implements i.MazeEncoder.
func (p *Protowire) UnmarshalMaze(b []byte) (*maze.Maze, error) {
	var (
		rows, cols, startRow, startCol uint64
		verticals, horizontals         []byte
	)

	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, fmt.Errorf("%w: %v", ErrMalformedMaze, protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case typ == protowire.VarintType && num >= rowsField && num <= startColField:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, fmt.Errorf("%w: %v", ErrMalformedMaze, protowire.ParseError(n))
			}
			b = b[n:]
			switch num {
			case rowsField:
				rows = v
			case colsField:
				cols = v
			case startRowField:
				startRow = v
			case startColField:
				startCol = v
			}
		case typ == protowire.BytesType && (num == verticalsField || num == horizontalsField):
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, fmt.Errorf("%w: %v", ErrMalformedMaze, protowire.ParseError(n))
			}
			b = b[n:]
			if num == verticalsField {
				verticals = v
			} else {
				horizontals = v
			}
		default:
			// Skip unknown fields.
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, fmt.Errorf("%w: %v", ErrMalformedMaze, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}

	if rows == 0 || cols == 0 {
		return nil, fmt.Errorf("%w: missing dimensions", ErrMalformedMaze)
	}
	if rows > MaxSide || cols > MaxSide {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d cells per side", ErrMalformedMaze, rows, cols, MaxSide)
	}
	if startRow >= rows || startCol >= cols {
		return nil, fmt.Errorf("%w: start (%d,%d) outside %dx%d", ErrMalformedMaze, startRow, startCol, rows, cols)
	}

	r, c := int(rows), int(cols)
	if len(verticals) > bitsetLen(r*(c-1)) || len(horizontals) > bitsetLen((r-1)*c) {
		return nil, fmt.Errorf("%w: passage bitset longer than %dx%d grid", ErrMalformedMaze, r, c)
	}
	return maze.FromPassages(r, c,
		maze.CellPosition{Row: int(startRow), Col: int(startCol)},
		unpackBits(verticals, r, c-1),
		unpackBits(horizontals, r-1, c),
	)
}

func appendVarintField(b []byte, num protowire.Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

// packBits flattens a boolean matrix row-major into a bitset, LSB first.
func packBits(m [][]bool) []byte {
	total := 0
	for _, row := range m {
		total += len(row)
	}

	out := make([]byte, bitsetLen(total))
	bit := 0
	for _, row := range m {
		for _, set := range row {
			if set {
				out[bit/8] |= 1 << (bit % 8)
			}
			bit++
		}
	}
	return out
}

func bitsetLen(bits int) int {
	return (bits + 7) / 8
}

// unpackBits is the inverse of packBits; missing bytes read as zero.
func unpackBits(b []byte, rows, cols int) [][]bool {
	m := make([][]bool, rows)
	bit := 0
	for r := range m {
		m[r] = make([]bool, cols)
		for c := range m[r] {
			if bit/8 < len(b) {
				m[r][c] = b[bit/8]&(1<<(bit%8)) != 0
			}
			bit++
		}
	}
	return m
}
