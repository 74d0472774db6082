package advisor

import (
	"fmt"
	"math/rand/v2"

	"github.com/rocketscienceinc/gridgame/internal/apperror"
	"github.com/rocketscienceinc/gridgame/internal/board"
	"github.com/rocketscienceinc/gridgame/internal/rules"
)

// Tier names the check that produced a move.
type Tier string

const (
	TierForcedRandom Tier = "forced-random"
	TierWin          Tier = "win"
	TierBlock        Tier = "block"
	TierDeepBlock    Tier = "deep-block"
	TierBuild        Tier = "build"
	TierRandom       Tier = "random"
)

// Rand is the random source used for random tiers.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int {
	return rand.IntN(n) //nolint: gosec // it's ok
}

// Decision is the selected cell and the tier that selected it.
type Decision struct {
	Cell board.Cell
	Tier Tier
}

// MoveAdvisor picks moves with a fixed order of tactical checks.
// It holds no game state; a single advisor may serve many sessions
// as long as its Rand is safe for that.
type MoveAdvisor struct {
	rnd Rand
}

// New - creates an advisor. A nil rnd uses the global math/rand/v2 source.
func New(rnd Rand) *MoveAdvisor {
	if rnd == nil {
		rnd = globalRand{}
	}

	return &MoveAdvisor{rnd: rnd}
}

// SelectMove - returns the cell self should play.
func (that *MoveAdvisor) SelectMove(b *board.Board, self, opponent board.Mark, failRoll bool) (board.Cell, error) {
	decision, err := that.Decide(b, self, opponent, failRoll)
	if err != nil {
		return board.Cell{}, err
	}

	return decision.Cell, nil
}

// Decide - runs the tiers in order and reports which one fired.
// The board is probed in place and always restored before returning.
func (that *MoveAdvisor) Decide(b *board.Board, self, opponent board.Mark, failRoll bool) (Decision, error) {
	if !self.IsPlayer() || !opponent.IsPlayer() || self == opponent {
		return Decision{}, fmt.Errorf("%w: self %q, opponent %q", apperror.ErrInvalidMark, self, opponent)
	}

	empty := b.EmptyCells()
	if len(empty) == 0 {
		return Decision{}, apperror.ErrNoEmptyCells
	}

	if failRoll {
		return Decision{Cell: that.pick(empty), Tier: TierForcedRandom}, nil
	}

	if cell, ok := findWinning(b, empty, self); ok {
		return Decision{Cell: cell, Tier: TierWin}, nil
	}

	if cell, ok := findWinning(b, empty, opponent); ok {
		return Decision{Cell: cell, Tier: TierBlock}, nil
	}

	winLength := rules.WinLength(b.Size())

	if winLength != 3 {
		if cell, ok := findDoubleThreat(b, empty, opponent); ok {
			return Decision{Cell: cell, Tier: TierDeepBlock}, nil
		}
	}

	for _, cell := range empty {
		if probe(b, cell, self, func() bool { return rules.CheckPotentialRun(b, self, winLength-1) }) {
			return Decision{Cell: cell, Tier: TierBuild}, nil
		}
	}

	return Decision{Cell: that.pick(empty), Tier: TierRandom}, nil
}

func (that *MoveAdvisor) pick(cells []board.Cell) board.Cell {
	return cells[that.rnd.IntN(len(cells))]
}

// findWinning returns the first cell where mark would complete a winning run.
func findWinning(b *board.Board, empty []board.Cell, mark board.Mark) (board.Cell, bool) {
	for _, cell := range empty {
		if probe(b, cell, mark, func() bool { return rules.CheckWin(b, mark) }) {
			return cell, true
		}
	}

	return board.Cell{}, false
}

// findDoubleThreat looks for two empty cells that together give mark a win
// and returns the second cell of the first such pair in row-major order.
func findDoubleThreat(b *board.Board, empty []board.Cell, mark board.Mark) (board.Cell, bool) {
	var found board.Cell

	for _, first := range empty {
		hit := probe(b, first, mark, func() bool {
			for _, second := range empty {
				if second == first {
					continue
				}

				if probe(b, second, mark, func() bool { return rules.CheckWin(b, mark) }) {
					found = second
					return true
				}
			}

			return false
		})

		if hit {
			return found, true
		}
	}

	return board.Cell{}, false
}

// probe places mark on an empty cell, evaluates check and clears the cell again,
// whatever check returns.
func probe(b *board.Board, cell board.Cell, mark board.Mark, check func() bool) bool {
	if err := b.Place(cell.Row, cell.Col, mark); err != nil {
		return false
	}

	defer func() {
		_ = b.Clear(cell.Row, cell.Col)
	}()

	return check()
}
