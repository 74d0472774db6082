package rules

import "github.com/rocketscienceinc/gridgame/internal/board"

const (
	classicWinLength  = 3
	extendedWinLength = 4
)

// directions walked by the line scan: row, column, main diagonal, anti-diagonal.
var directions = [4][2]int{
	{0, 1},
	{1, 0},
	{1, 1},
	{-1, 1},
}

// WinLength - consecutive marks needed to win on a board of the given size.
func WinLength(size int) int {
	if size >= extendedWinLength {
		return extendedWinLength
	}

	return classicWinLength
}

// CheckWin - reports whether mark has a winning run on the board.
func CheckWin(b *board.Board, mark board.Mark) bool {
	return CheckPotentialRun(b, mark, WinLength(b.Size()))
}

// CheckPotentialRun - reports whether mark has at least length consecutive cells
// along any row, column or diagonal.
func CheckPotentialRun(b *board.Board, mark board.Mark, length int) bool {
	if !mark.IsPlayer() || length < 1 {
		return false
	}

	size := b.Size()
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			for _, dir := range directions {
				// only start at the first cell of each line
				if b.InBounds(row-dir[0], col-dir[1]) {
					continue
				}

				if hasRun(b, row, col, dir, mark, length) {
					return true
				}
			}
		}
	}

	return false
}

func IsFull(b *board.Board) bool {
	return b.IsFull()
}

// hasRun walks one line from (row, col) and stops as soon as the run reaches length.
func hasRun(b *board.Board, row, col int, dir [2]int, mark board.Mark, length int) bool {
	count := 0
	for b.InBounds(row, col) {
		cell, _ := b.CellAt(row, col)
		if cell == mark {
			count++
			if count == length {
				return true
			}
		} else {
			count = 0
		}

		row += dir[0]
		col += dir[1]
	}

	return false
}
