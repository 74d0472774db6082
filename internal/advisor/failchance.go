package advisor

import (
	"fmt"

	"github.com/rocketscienceinc/gridgame/internal/apperror"
	"github.com/rocketscienceinc/gridgame/internal/board"
)

// Config is the fixed part of a computer player.
type Config struct {
	FailBaseChance float64
	Self           board.Mark
	Opponent       board.Mark
}

func (that Config) Validate() error {
	if that.FailBaseChance < 0 || that.FailBaseChance > 1 {
		return fmt.Errorf("%w: got %v", apperror.ErrInvalidFailChance, that.FailBaseChance)
	}

	if !that.Self.IsPlayer() || that.Opponent != that.Self.Opponent() {
		return fmt.Errorf("%w: self %q, opponent %q", apperror.ErrInvalidMark, that.Self, that.Opponent)
	}

	return nil
}

// FailChance is the per-session pity timer. Every roll that does not trigger
// raises Current by Base; a triggering roll drops it back to Base.
type FailChance struct {
	Base    float64 `json:"base"`
	Current float64 `json:"current"`
}

func NewFailChance(base float64) (FailChance, error) {
	if base < 0 || base > 1 {
		return FailChance{}, fmt.Errorf("%w: got %v", apperror.ErrInvalidFailChance, base)
	}

	return FailChance{Base: base, Current: base}, nil
}

// Roll - takes a uniform value in [0, 1) and reports whether the advisor should
// play a random move this turn.
func (that *FailChance) Roll(value float64) bool {
	if value < that.Current {
		that.Current = that.Base
		return true
	}

	that.Current += that.Base

	return false
}

func (that *FailChance) Reset() {
	that.Current = that.Base
}
