package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/gridgame/internal/advisor"
	"github.com/rocketscienceinc/gridgame/internal/board"
	"github.com/rocketscienceinc/gridgame/internal/service"
	"github.com/rocketscienceinc/gridgame/internal/tictactoe"
)

var errInvalidInput = errors.New("expected two numbers")

// Console plays one session over a line based text interface.
type Console struct {
	logger *slog.Logger
	in     *bufio.Scanner
	out    io.Writer

	session *tictactoe.Session

	// bot and failChance are nil when two humans share the keyboard.
	bot        service.BotService
	botMark    board.Mark
	failChance *advisor.FailChance
}

func New(logger *slog.Logger, in io.Reader, out io.Writer, session *tictactoe.Session) *Console {
	return &Console{
		logger:  logger.With("component", "console"),
		in:      bufio.NewScanner(in),
		out:     out,
		session: session,
	}
}

// WithBot - lets the computer play mark.
func (that *Console) WithBot(bot service.BotService, mark board.Mark, failChance *advisor.FailChance) *Console {
	that.bot = bot
	that.botMark = mark
	that.failChance = failChance

	return that
}

// Run - plays until the user declines a rematch, the input ends or ctx is done.
func (that *Console) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		Render(that.out, that.session.Board())

		if that.session.IsFinished() {
			that.println(that.resultMessage())

			again, err := that.askAgain()
			if err != nil || !again {
				return err
			}

			that.session.Reset()
			// A rematch starts the pity timer over as well, so each game opens at the base chance.
			if that.failChance != nil {
				that.failChance.Reset()
			}

			continue
		}

		if err := that.playTurn(); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}

			return err
		}
	}
}

func (that *Console) playTurn() error {
	if that.isBotTurn() {
		decision, err := that.bot.MakeTurn(that.session, that.failChance)
		if err != nil {
			return fmt.Errorf("computer turn failed: %w", err)
		}

		that.println(fmt.Sprintf("AI played at (%d, %d)", decision.Cell.Row+1, decision.Cell.Col+1))

		return nil
	}

	for {
		row, col, ok, err := that.readMove()
		if err != nil {
			return err
		}

		if !ok {
			that.println("Invalid input. Try again.")
			continue
		}

		if err = that.session.ApplyMove(row, col); err != nil {
			that.logger.Debug("move rejected", "row", row, "col", col, "error", err)
			that.println("Invalid move. Try again.")

			continue
		}

		return nil
	}
}

// readMove prompts once and converts the answer to 0-based coordinates.
// ok is false when the line could not be parsed.
func (that *Console) readMove() (int, int, bool, error) {
	size := that.session.Size()
	prompt := fmt.Sprintf("Enter row and column (1-%d): ", size)
	if that.bot == nil {
		prompt = fmt.Sprintf("Player %s, enter row and column (1-%d): ", that.session.CurrentTurn(), size)
	}

	line, err := that.readLine(prompt)
	if err != nil {
		return 0, 0, false, err
	}

	row, col, err := parseMove(line)
	if err != nil {
		return 0, 0, false, nil
	}

	return row - 1, col - 1, true, nil
}

func (that *Console) askAgain() (bool, error) {
	for {
		line, err := that.readLine("Play again? (y/n): ")
		if errors.Is(err, io.EOF) {
			return false, nil
		}

		if err != nil {
			return false, err
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
	}
}

func (that *Console) readLine(prompt string) (string, error) {
	fmt.Fprint(that.out, prompt)

	if !that.in.Scan() {
		if err := that.in.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}

		return "", io.EOF
	}

	return that.in.Text(), nil
}

func (that *Console) isBotTurn() bool {
	return that.bot != nil && that.session.CurrentTurn() == that.botMark
}

func (that *Console) resultMessage() string {
	state := that.session.State()
	if state.Status == tictactoe.StatusTie {
		return "It's a tie!"
	}

	if that.bot == nil {
		return fmt.Sprintf("Player %s wins!", state.Winner)
	}

	if state.Winner == that.botMark {
		return "AI wins!"
	}

	return "You win!"
}

func (that *Console) println(line string) {
	fmt.Fprintln(that.out, line)
}

func parseMove(line string) (int, int, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return 0, 0, errInvalidInput
	}

	row, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, fmt.Errorf("bad row: %w", err)
	}

	col, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, fmt.Errorf("bad column: %w", err)
	}

	return row, col, nil
}
