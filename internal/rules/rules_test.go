package rules

import (
	"testing"

	"github.com/rocketscienceinc/gridgame/internal/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parseBoard builds a board from rows such as "X.O" where '.' is an empty cell.
func parseBoard(t *testing.T, rows ...string) *board.Board {
	t.Helper()

	b, err := board.New(len(rows))
	require.NoError(t, err)

	for row, line := range rows {
		require.Len(t, line, len(rows))
		for col, ch := range line {
			if ch == '.' {
				continue
			}
			require.NoError(t, b.Place(row, col, board.Mark(string(ch))))
		}
	}

	return b
}

func TestWinLength(t *testing.T) {
	assert.Equal(t, 3, WinLength(3))
	assert.Equal(t, 4, WinLength(4))
	assert.Equal(t, 4, WinLength(5))
	assert.Equal(t, 4, WinLength(9))
}

func TestCheckWin(t *testing.T) {
	tests := []struct {
		name  string
		rows  []string
		mark  board.Mark
		isWin bool
	}{
		{
			name:  "empty 3x3",
			rows:  []string{"...", "...", "..."},
			mark:  board.X,
			isWin: false,
		},
		{
			name:  "empty 5x5 for O",
			rows:  []string{".....", ".....", ".....", ".....", "....."},
			mark:  board.O,
			isWin: false,
		},
		{
			name:  "row on 3x3",
			rows:  []string{"...", "XXX", "O.O"},
			mark:  board.X,
			isWin: true,
		},
		{
			name:  "column on 3x3",
			rows:  []string{"XO.", "XO.", ".O."},
			mark:  board.O,
			isWin: true,
		},
		{
			name:  "main diagonal on 3x3",
			rows:  []string{"XO.", ".XO", "..X"},
			mark:  board.X,
			isWin: true,
		},
		{
			name:  "anti diagonal on 3x3",
			rows:  []string{"X.O", ".O.", "OX."},
			mark:  board.O,
			isWin: true,
		},
		{
			name:  "other symbol does not win",
			rows:  []string{"XXX", "OO.", "..."},
			mark:  board.O,
			isWin: false,
		},
		{
			name:  "three in a row is not enough on 5x5",
			rows:  []string{"XXX..", ".....", ".....", ".....", "....."},
			mark:  board.X,
			isWin: false,
		},
		{
			name:  "four in a row at the end of a 5x5 row",
			rows:  []string{".....", ".XXXX", ".....", ".....", "....."},
			mark:  board.X,
			isWin: true,
		},
		{
			name:  "run is broken by the opponent",
			rows:  []string{"XXOXX", ".....", ".....", ".....", "....."},
			mark:  board.X,
			isWin: false,
		},
		{
			name:  "column of four in the last column",
			rows:  []string{"....O", "....O", "....O", "....O", "....."},
			mark:  board.O,
			isWin: true,
		},
		{
			name:  "off-centre main diagonal on 5x5",
			rows:  []string{".X...", "..X..", "...X.", "....X", "....."},
			mark:  board.X,
			isWin: true,
		},
		{
			name:  "lower main diagonal on 5x5",
			rows:  []string{".....", "O....", ".O...", "..O..", "...O."},
			mark:  board.O,
			isWin: true,
		},
		{
			name:  "off-centre anti diagonal on 5x5",
			rows:  []string{"...X.", "..X..", ".X...", "X....", "....."},
			mark:  board.X,
			isWin: true,
		},
		{
			name:  "lower anti diagonal on 5x5",
			rows:  []string{".....", "....O", "...O.", "..O..", ".O..."},
			mark:  board.O,
			isWin: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given: a board
			b := parseBoard(t, tt.rows...)

			// When: checking for a win
			isWin := CheckWin(b, tt.mark)

			// Then: the result matches
			assert.Equal(t, tt.isWin, isWin)
		})
	}
}

func TestCheckWin_EmptyMark(t *testing.T) {
	// Given: an empty board, where every cell is Empty
	b := parseBoard(t, "...", "...", "...")

	// Then: Empty never wins
	assert.False(t, CheckWin(b, board.Empty))
}

func TestCheckPotentialRun(t *testing.T) {
	t.Run("Finds a run shorter than the win length", func(t *testing.T) {
		b := parseBoard(t, ".....", ".....", "..XXX", ".....", ".....")

		assert.True(t, CheckPotentialRun(b, board.X, 3))
		assert.False(t, CheckPotentialRun(b, board.X, 4))
		assert.False(t, CheckPotentialRun(b, board.O, 1))
	})

	t.Run("Scans every diagonal", func(t *testing.T) {
		b := parseBoard(t, ".....", ".....", "....O", "...O.", "..O..")

		assert.True(t, CheckPotentialRun(b, board.O, 3))
	})

	t.Run("Does not mutate the board", func(t *testing.T) {
		b := parseBoard(t, "X..", ".O.", "...")
		before := b.Clone()

		CheckPotentialRun(b, board.X, 2)
		CheckWin(b, board.O)

		assert.Equal(t, before, b)
	})
}

func TestIsFull(t *testing.T) {
	assert.True(t, IsFull(parseBoard(t, "XOX", "XOO", "OXX")))
	assert.False(t, IsFull(parseBoard(t, "XOX", "XO.", "OXX")))
}
