package bootstrap

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"yutnori/internal/engine"
	ownErrors "yutnori/internal/errors"
)

type Config struct {
	ServerHost      string `mapstructure:"SERVER_HOST"`
	ServerPort      string `mapstructure:"SERVER_PORT"`
	IsLocalCors     bool   `mapstructure:"LOCAL_CORS"`
	LogLevel        string `mapstructure:"LOG_LEVEL"`
	BoardKind       string `mapstructure:"BOARD_KIND"`
	PlayerCount     int    `mapstructure:"PLAYER_COUNT"`
	PiecesPerPlayer int    `mapstructure:"PIECES_PER_PLAYER"`
	DiceSeed        int64  `mapstructure:"DICE_SEED"`
	MetricsEnabled  bool   `mapstructure:"METRICS_ENABLED"`
}

var defaults = map[string]any{
	"SERVER_HOST":       "",
	"SERVER_PORT":       "8080",
	"LOCAL_CORS":        false,
	"LOG_LEVEL":         "info",
	"BOARD_KIND":        string(engine.Square),
	"PLAYER_COUNT":      2,
	"PIECES_PER_PLAYER": 4,
	"DICE_SEED":         0,
	"METRICS_ENABLED":   true,
}

// Setup reads the configuration. Values come from the defaults, then the file
// at cfgPath when it exists, then the environment. An empty cfgPath skips the
// file.
func Setup(cfgPath string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
		if strings.HasSuffix(cfgPath, ".env") {
			v.SetConfigType("env")
		}
		err := v.ReadInConfig()
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	var cfg Config

	err := v.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if _, err := engine.ParseKind(c.BoardKind); err != nil {
		return fmt.Errorf("%w: BOARD_KIND: %v", ownErrors.ErrInvalidConfig, err)
	}
	if c.PlayerCount < 2 || c.PlayerCount > 4 {
		return fmt.Errorf("%w: PLAYER_COUNT must be 2 to 4, got %d", ownErrors.ErrInvalidConfig, c.PlayerCount)
	}
	if c.PiecesPerPlayer < 1 || c.PiecesPerPlayer > 5 {
		return fmt.Errorf("%w: PIECES_PER_PLAYER must be 1 to 5, got %d", ownErrors.ErrInvalidConfig, c.PiecesPerPlayer)
	}
	if _, err := c.Level(); err != nil {
		return fmt.Errorf("%w: LOG_LEVEL: %v", ownErrors.ErrInvalidConfig, err)
	}
	if c.ServerPort == "" {
		return fmt.Errorf("%w: SERVER_PORT is empty", ownErrors.ErrInvalidConfig)
	}
	return nil
}

// Addr is the listen address.
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// Kind is the default board kind. It is valid once Validate passed.
func (c *Config) Kind() engine.Kind {
	k, _ := engine.ParseKind(c.BoardKind)
	return k
}

func (c *Config) Level() (zapcore.Level, error) {
	var lvl zapcore.Level
	err := lvl.UnmarshalText([]byte(c.LogLevel))
	return lvl, err
}
