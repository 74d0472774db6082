package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/gridgame/internal/advisor"
	"github.com/rocketscienceinc/gridgame/internal/config"
	"github.com/rocketscienceinc/gridgame/internal/console"
	"github.com/rocketscienceinc/gridgame/internal/entity"
	"github.com/rocketscienceinc/gridgame/internal/repository"
	"github.com/rocketscienceinc/gridgame/internal/repository/storage"
	"github.com/rocketscienceinc/gridgame/internal/service"
	"github.com/rocketscienceinc/gridgame/internal/tictactoe"
	"github.com/rocketscienceinc/gridgame/internal/usecase"
	"github.com/rocketscienceinc/gridgame/transport/rest"
	"github.com/rocketscienceinc/gridgame/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application in the configured mode.
// The console keeps the default interrupt handling, so Ctrl+C ends a blocked prompt.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	if conf.Mode != config.ModeServer {
		return RunConsole(context.Background(), logger, conf, os.Stdin, os.Stdout)
	}

	ctx, cancel := signalContext(logger)
	defer cancel()

	return RunServer(ctx, logger, conf)
}

// RunConsole - plays games in the terminal until the user stops.
func RunConsole(ctx context.Context, logger *slog.Logger, conf *config.Config, in io.Reader, out io.Writer) error {
	session, err := tictactoe.NewSession(conf.Game.Size, entity.HumanMark)
	if err != nil {
		return fmt.Errorf("could not create session: %w", err)
	}

	cli := console.New(logger, in, out, session)

	if conf.Game.VsComputer() {
		botConfig := newBotConfig(conf)

		bot, err := service.NewBotService(logger, advisor.New(nil), botConfig, nil)
		if err != nil {
			return fmt.Errorf("could not create bot: %w", err)
		}

		failChance, err := advisor.NewFailChance(botConfig.FailBaseChance)
		if err != nil {
			return fmt.Errorf("could not create fail chance: %w", err)
		}

		cli.WithBot(bot, botConfig.Self, &failChance)
	}

	if err = cli.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("console stopped: %w", err)
	}

	return nil
}

// RunServer - hosts games over HTTP and WebSocket, keeping them in redis.
func RunServer(ctx context.Context, logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	botConfig := newBotConfig(conf)

	bot, err := service.NewBotService(logger, advisor.New(nil), botConfig, nil)
	if err != nil {
		return fmt.Errorf("could not create bot: %w", err)
	}

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.New(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	gameRepo := repository.NewGameRepository(redisStorage, conf.SessionTTL)
	gameUseCase := usecase.NewGameManager(logger, gameRepo, bot, botConfig)

	defaultType := entity.LocalType
	if conf.Game.VsComputer() {
		defaultType = entity.WithBotType
	}

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		router := rest.NewRouter(logger, gameUseCase, rest.Defaults{Size: conf.Game.Size, Type: defaultType})
		if httpErr := rest.Start(ctx, conf.HTTPPort, router); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsServer := websocket.New(logger, gameUseCase, websocket.Defaults{Size: conf.Game.Size, Type: defaultType})
		if wsErr := rest.Start(ctx, conf.SocketPort, wsServer.Router()); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

// newBotConfig - the computer always answers the human, who plays X and opens.
func newBotConfig(conf *config.Config) advisor.Config {
	return advisor.Config{
		FailBaseChance: conf.Game.FailChance,
		Self:           entity.BotMark,
		Opponent:       entity.HumanMark,
	}
}

func signalContext(logger *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigs:
			logger.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigs)
	}()

	return ctx, cancel
}
