package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/rocketscienceinc/gridgame/internal/board"
)

const (
	ModeConsole = "console"
	ModeServer  = "server"

	OpponentComputer = "computer"
	OpponentHuman    = "human"
)

// DefaultFailChance is seeded before reading, since env-default would also
// replace an explicit zero from the file.
const DefaultFailChance = 0.05

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	LogLevel   string        `yaml:"log-level"   env:"LOG_LEVEL"   env-default:"info"`
	Mode       string        `yaml:"mode"        env:"MODE"        env-default:"console"`
	HTTPPort   string        `yaml:"http-port"   env:"HTTP_PORT"   env-default:"9090"`
	SocketPort string        `yaml:"socket-port" env:"SOCKET_PORT" env-default:"9091"`
	SessionTTL time.Duration `yaml:"session-ttl" env:"SESSION_TTL" env-default:"1h"`
	Game       Game          `yaml:"game"`
	Redis      Redis         `yaml:"redis"`
}

type Game struct {
	Size       int     `yaml:"size"        env:"GAME_SIZE"        env-default:"3"`
	Opponent   string  `yaml:"opponent"    env:"GAME_OPPONENT"    env-default:"computer"`
	FailChance float64 `yaml:"fail-chance" env:"GAME_FAIL_CHANCE"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// MustLoad - loads config.yml at path, or only the environment when the file is missing.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config: %w", err))
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{Game: Game{FailChance: DefaultFailChance}}

	if _, err := os.Stat(path); err == nil {
		if err = cleanenv.ReadConfig(path, config); err != nil {
			return nil, fmt.Errorf("unable to read config file: %w", err)
		}
	} else {
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("unable to read environment: %w", err)
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (that *Config) Validate() error {
	if that.Mode != ModeConsole && that.Mode != ModeServer {
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, that.Mode)
	}

	if that.Game.Size < board.MinSize || that.Game.Size > board.MaxSize {
		return fmt.Errorf("%w: game size %d is outside %d..%d", ErrInvalidConfig, that.Game.Size, board.MinSize, board.MaxSize)
	}

	if that.Game.Opponent != OpponentComputer && that.Game.Opponent != OpponentHuman {
		return fmt.Errorf("%w: unknown opponent %q", ErrInvalidConfig, that.Game.Opponent)
	}

	if that.Game.FailChance < 0 || that.Game.FailChance > 1 {
		return fmt.Errorf("%w: fail chance %v is outside [0, 1]", ErrInvalidConfig, that.Game.FailChance)
	}

	if that.SessionTTL < 0 {
		return fmt.Errorf("%w: negative session ttl", ErrInvalidConfig)
	}

	return nil
}

func (that *Game) VsComputer() bool {
	return that.Opponent == OpponentComputer
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
