package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	ModeTUI    = "tui"
	ModeServer = "server"
)

type Config struct {
	LogLevel string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	LogFile  string `yaml:"log-file" env:"LOG_FILE" env-default:""`
	Mode     string `yaml:"mode" env:"MODE" env-default:"tui"`
	HTTPPort string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	Game     Game   `yaml:"game"`
}

const (
	OrderAscending  = "ascending"
	OrderDescending = "descending"
)

type Game struct {
	MoveOrder string `yaml:"move-order" env:"GAME_MOVE_ORDER" env-default:"ascending"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

// MustLoadEnv - load configuration from environment variables only.
func MustLoadEnv() *Config {
	config := &Config{}

	if err := cleanenv.ReadEnv(config); err != nil {
		panic(fmt.Errorf("unable to load config from env: %w", err))
	}

	return config
}

// Ascending reports the initial move list order; anything but "descending" means ascending.
func (that *Game) Ascending() bool {
	return that.MoveOrder != OrderDescending
}

func (that *Config) IsServer() bool {
	return that.Mode == ModeServer
}
