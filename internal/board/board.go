package board

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/gridgame/internal/apperror"
)

// Boards outside [MinSize, MaxSize] are rejected. The advisor's deep lookahead
// grows with the sixth power of the size.
const (
	MinSize = 3
	MaxSize = 9
)

// Mark is the content of a single cell.
type Mark string

const (
	Empty Mark = ""
	X     Mark = "X"
	O     Mark = "O"
)

// IsPlayer reports whether the mark belongs to one of the two players.
func (that Mark) IsPlayer() bool {
	return that == X || that == O
}

// Opponent returns the other player's mark. Empty stays Empty.
func (that Mark) Opponent() Mark {
	switch that {
	case X:
		return O
	case O:
		return X
	default:
		return Empty
	}
}

// Cell is a grid position.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Board is a square grid of marks stored row-major.
type Board struct {
	size  int
	cells []Mark
}

// New - creates an empty board of the given size.
func New(size int) (*Board, error) {
	if err := validateSize(size); err != nil {
		return nil, err
	}

	return &Board{
		size:  size,
		cells: make([]Mark, size*size),
	}, nil
}

func (that *Board) Size() int {
	return that.size
}

// InBounds reports whether (row, col) lies on the board.
func (that *Board) InBounds(row, col int) bool {
	return row >= 0 && row < that.size && col >= 0 && col < that.size
}

// CellAt - returns the mark at (row, col).
func (that *Board) CellAt(row, col int) (Mark, error) {
	if !that.InBounds(row, col) {
		return Empty, fmt.Errorf("%w: (%d, %d)", apperror.ErrOutOfBounds, row, col)
	}

	return that.cells[that.index(row, col)], nil
}

// Place - puts a mark on an empty cell.
func (that *Board) Place(row, col int, mark Mark) error {
	if !mark.IsPlayer() {
		return fmt.Errorf("%w: %q", apperror.ErrInvalidMark, mark)
	}

	if !that.InBounds(row, col) {
		return fmt.Errorf("%w: (%d, %d)", apperror.ErrOutOfBounds, row, col)
	}

	idx := that.index(row, col)
	if that.cells[idx] != Empty {
		return fmt.Errorf("%w: (%d, %d)", apperror.ErrCellOccupied, row, col)
	}

	that.cells[idx] = mark

	return nil
}

// Clear - empties a cell. Only lookahead probes should call it.
func (that *Board) Clear(row, col int) error {
	if !that.InBounds(row, col) {
		return fmt.Errorf("%w: (%d, %d)", apperror.ErrOutOfBounds, row, col)
	}

	that.cells[that.index(row, col)] = Empty

	return nil
}

func (that *Board) IsFull() bool {
	for _, mark := range that.cells {
		if mark == Empty {
			return false
		}
	}

	return true
}

// EmptyCells - returns the empty cells in row-major order.
func (that *Board) EmptyCells() []Cell {
	cells := make([]Cell, 0, len(that.cells))
	for idx, mark := range that.cells {
		if mark == Empty {
			cells = append(cells, Cell{Row: idx / that.size, Col: idx % that.size})
		}
	}

	return cells
}

func (that *Board) Clone() *Board {
	cells := make([]Mark, len(that.cells))
	copy(cells, that.cells)

	return &Board{size: that.size, cells: cells}
}

// Rows - returns a copy of the grid, one slice per row.
func (that *Board) Rows() [][]Mark {
	rows := make([][]Mark, that.size)
	for row := range rows {
		rows[row] = make([]Mark, that.size)
		copy(rows[row], that.cells[row*that.size:(row+1)*that.size])
	}

	return rows
}

func (that *Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(that.Rows())
}

func (that *Board) UnmarshalJSON(data []byte) error {
	var rows [][]Mark
	if err := json.Unmarshal(data, &rows); err != nil {
		return fmt.Errorf("failed to unmarshal board: %w", err)
	}

	size := len(rows)
	if err := validateSize(size); err != nil {
		return err
	}

	cells := make([]Mark, 0, size*size)
	for _, row := range rows {
		if len(row) != size {
			return fmt.Errorf("%w: board is not square", apperror.ErrInvalidSize)
		}

		for _, mark := range row {
			if mark != Empty && !mark.IsPlayer() {
				return fmt.Errorf("%w: %q", apperror.ErrInvalidMark, mark)
			}
		}

		cells = append(cells, row...)
	}

	that.size = size
	that.cells = cells

	return nil
}

func (that *Board) index(row, col int) int {
	return row*that.size + col
}

func validateSize(size int) error {
	if size < MinSize || size > MaxSize {
		return fmt.Errorf("%w: got %d, want %d..%d", apperror.ErrInvalidSize, size, MinSize, MaxSize)
	}

	return nil
}
