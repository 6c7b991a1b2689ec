package config

import (
	"errors"
	"fmt"
	"net"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	ModePlay  = "play"
	ModeArena = "arena"

	StorageNone   = "none"
	StorageRedis  = "redis"
	StorageSQLite = "sqlite"
)

var (
	ErrUnknownMode    = errors.New("unknown mode")
	ErrUnknownStorage = errors.New("unknown storage type")
)

type Config struct {
	LogLevel  string  `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	Mode      string  `yaml:"mode" env:"MODE" env-default:"play"`
	HumanMark string  `yaml:"human-mark" env:"HUMAN_MARK" env-default:"x"`
	Color     bool    `yaml:"color" env:"COLOR"`
	Engine    Engine  `yaml:"engine"`
	Arena     Arena   `yaml:"arena"`
	Storage   Storage `yaml:"storage"`
}

type Engine struct {
	// Seed of the tie-break source; zero seeds from the clock.
	Seed    int64 `yaml:"seed" env:"ENGINE_SEED" env-default:"0"`
	Workers int   `yaml:"workers" env:"ENGINE_WORKERS" env-default:"1"`
}

type Arena struct {
	Games   int `yaml:"games" env:"ARENA_GAMES" env-default:"100"`
	Workers int `yaml:"workers" env:"ARENA_WORKERS" env-default:"4"`
}

type Storage struct {
	Type       string `yaml:"type" env:"STORAGE_TYPE" env-default:"none"`
	SQLitePath string `yaml:"sqlite-path" env:"STORAGE_SQLITE_PATH" env-default:"results.db"`
	Redis      Redis  `yaml:"redis"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// MustLoad - load all configurations in config.yml file, or from the environment when there is no file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if _, err := os.Stat(path); err == nil {
		if err = cleanenv.ReadConfig(path, config); err != nil {
			return nil, fmt.Errorf("unable to load config file: %w", err)
		}
	} else {
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("unable to load config from env: %w", err)
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (that *Config) Validate() error {
	switch that.Mode {
	case ModePlay, ModeArena:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMode, that.Mode)
	}

	switch that.Storage.Type {
	case StorageNone, StorageRedis, StorageSQLite:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStorage, that.Storage.Type)
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return net.JoinHostPort(that.Host, that.Port)
}
