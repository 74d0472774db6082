package application

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/rocketscienceinc/gridgame/internal/apperror"
	"github.com/rocketscienceinc/gridgame/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunConsole_TwoPlayers(t *testing.T) {
	// Given: a 5x5 hotseat game where X fills the first column
	conf := &config.Config{Mode: config.ModeConsole, Game: config.Game{Size: 5, Opponent: config.OpponentHuman}}
	input := strings.Join([]string{"1 1", "1 2", "2 1", "2 2", "3 1", "3 2", "4 1", "n"}, "\n")
	var out bytes.Buffer

	// When: the console runs to the end of the input
	err := RunConsole(context.Background(), discardLogger(), conf, strings.NewReader(input), &out)

	// Then: four in a row is enough on a 5x5 board
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Player X wins!")
}

func TestRunConsole_AgainstComputer(t *testing.T) {
	// Given: a computer opponent and a player who leaves right away
	conf := &config.Config{Mode: config.ModeConsole, Game: config.Game{Size: 3, Opponent: config.OpponentComputer, FailChance: 0}}
	var out bytes.Buffer

	// When: the human opens in the centre and the input ends
	err := RunConsole(context.Background(), discardLogger(), conf, strings.NewReader("2 2\n"), &out)

	// Then: the computer has answered
	require.NoError(t, err)
	assert.Contains(t, out.String(), "AI played at")
}

func TestRunConsole_InvalidSize(t *testing.T) {
	conf := &config.Config{Game: config.Game{Size: 2, Opponent: config.OpponentHuman}}

	err := RunConsole(context.Background(), discardLogger(), conf, strings.NewReader(""), io.Discard)

	require.Error(t, err)
}

func TestRunConsole_InvalidFailChance(t *testing.T) {
	conf := &config.Config{Game: config.Game{Size: 3, Opponent: config.OpponentComputer, FailChance: 1.5}}

	err := RunConsole(context.Background(), discardLogger(), conf, strings.NewReader(""), io.Discard)

	require.ErrorIs(t, err, apperror.ErrInvalidFailChance)
}
