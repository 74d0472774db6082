package board

import (
	"encoding/json"
	"testing"

	"github.com/rocketscienceinc/gridgame/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("Accepts the largest size", func(t *testing.T) {
		b, err := New(MaxSize)

		require.NoError(t, err)
		assert.Len(t, b.EmptyCells(), MaxSize*MaxSize)
	})

	t.Run("Creates an empty board", func(t *testing.T) {
		// When: a 5x5 board is created
		b, err := New(5)

		// Then: every cell is empty
		require.NoError(t, err)
		assert.Equal(t, 5, b.Size())
		assert.Len(t, b.EmptyCells(), 25)
		assert.False(t, b.IsFull())
	})

	t.Run("Rejects unsupported sizes", func(t *testing.T) {
		for _, size := range []int{-1, 0, 1, 2, MaxSize + 1, 100000} {
			// When: a too small or too large board is requested
			b, err := New(size)

			// Then: ErrInvalidSize is returned
			require.ErrorIs(t, err, apperror.ErrInvalidSize)
			assert.Nil(t, b)
		}
	})
}

func TestBoard_Place(t *testing.T) {
	t.Run("Places a mark on an empty cell", func(t *testing.T) {
		// Given: an empty board
		b, err := New(3)
		require.NoError(t, err)

		// When: X is placed at (1, 2)
		err = b.Place(1, 2, X)

		// Then: the cell holds X
		require.NoError(t, err)
		mark, err := b.CellAt(1, 2)
		require.NoError(t, err)
		assert.Equal(t, X, mark)
	})

	t.Run("Error on occupied cell", func(t *testing.T) {
		// Given: a board with X at (0, 0)
		b, err := New(3)
		require.NoError(t, err)
		require.NoError(t, b.Place(0, 0, X))

		// When: O tries to take the same cell
		err = b.Place(0, 0, O)

		// Then: ErrCellOccupied is returned and X is still there
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		mark, _ := b.CellAt(0, 0)
		assert.Equal(t, X, mark)
	})

	t.Run("Error on out of bounds cell", func(t *testing.T) {
		b, err := New(3)
		require.NoError(t, err)

		for _, cell := range []Cell{{-1, 0}, {0, -1}, {3, 0}, {0, 3}} {
			err = b.Place(cell.Row, cell.Col, X)
			require.ErrorIs(t, err, apperror.ErrOutOfBounds)
		}
	})

	t.Run("Error on empty mark", func(t *testing.T) {
		b, err := New(3)
		require.NoError(t, err)

		err = b.Place(0, 0, Empty)
		require.ErrorIs(t, err, apperror.ErrInvalidMark)
	})
}

func TestBoard_PlaceClearRoundTrip(t *testing.T) {
	// Given: a partially filled board and its snapshot
	b, err := New(5)
	require.NoError(t, err)
	require.NoError(t, b.Place(0, 0, X))
	require.NoError(t, b.Place(2, 3, O))
	before := b.Clone()

	// When: a mark is placed and then cleared
	require.NoError(t, b.Place(4, 4, X))
	require.NoError(t, b.Clear(4, 4))

	// Then: the board is identical to the snapshot
	assert.Equal(t, before, b)
}

func TestBoard_IsFull(t *testing.T) {
	// Given: a board with a single empty cell
	b, err := New(3)
	require.NoError(t, err)
	for _, cell := range b.EmptyCells()[:8] {
		require.NoError(t, b.Place(cell.Row, cell.Col, X))
	}
	assert.False(t, b.IsFull())
	assert.Equal(t, []Cell{{Row: 2, Col: 2}}, b.EmptyCells())

	// When: the last cell is filled
	require.NoError(t, b.Place(2, 2, O))

	// Then: the board is full
	assert.True(t, b.IsFull())
	assert.Empty(t, b.EmptyCells())
}

func TestBoard_Clone(t *testing.T) {
	// Given: a board and its clone
	b, err := New(3)
	require.NoError(t, err)
	clone := b.Clone()

	// When: the clone is modified
	require.NoError(t, clone.Place(1, 1, O))

	// Then: the original is untouched
	mark, _ := b.CellAt(1, 1)
	assert.Equal(t, Empty, mark)
}

func TestBoard_JSON(t *testing.T) {
	t.Run("Encodes rows", func(t *testing.T) {
		b, err := New(3)
		require.NoError(t, err)
		require.NoError(t, b.Place(0, 1, X))

		data, err := json.Marshal(b)

		require.NoError(t, err)
		assert.JSONEq(t, `[["","X",""],["","",""],["","",""]]`, string(data))
	})

	t.Run("Rejects non-square boards", func(t *testing.T) {
		var b Board
		err := json.Unmarshal([]byte(`[["","",""],["",""],["","",""]]`), &b)
		require.ErrorIs(t, err, apperror.ErrInvalidSize)
	})

	t.Run("Rejects unknown marks", func(t *testing.T) {
		var b Board
		err := json.Unmarshal([]byte(`[["Z","",""],["","",""],["","",""]]`), &b)
		require.ErrorIs(t, err, apperror.ErrInvalidMark)
	})
}

func TestMark_Opponent(t *testing.T) {
	assert.Equal(t, O, X.Opponent())
	assert.Equal(t, X, O.Opponent())
	assert.Equal(t, Empty, Empty.Opponent())
}
