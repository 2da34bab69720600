package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	ModeAI     = "ai"
	ModeRemote = "remote"
)

type Config struct {
	LogLevel  string    `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	Mode      string    `yaml:"mode" env:"MODE" env-default:"ai"`
	Seed      int64     `yaml:"seed" env:"SEED" env-default:"0"`
	MaxTurns  int       `yaml:"max-turns" env:"MAX_TURNS" env-default:"500"`
	Board     Board     `yaml:"board"`
	Redis     Redis     `yaml:"redis"`
	Remote    Remote    `yaml:"remote"`
	Telemetry Telemetry `yaml:"telemetry"`
}

type Board struct {
	Width  int   `yaml:"width" env:"BOARD_WIDTH" env-default:"10"`
	Height int   `yaml:"height" env:"BOARD_HEIGHT" env-default:"10"`
	Fleet  []int `yaml:"fleet" env:"BOARD_FLEET" env-default:"4,3,3,2,2,2,1,1,1,1"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

type Remote struct {
	MatchID     string        `yaml:"match-id" env:"REMOTE_MATCH_ID"`
	MoveTimeout time.Duration `yaml:"move-timeout" env:"REMOTE_MOVE_TIMEOUT" env-default:"2m"`
}

type Telemetry struct {
	Enabled bool `yaml:"enabled" env:"TELEMETRY_ENABLED" env-default:"false"`
}

// Load reads the yaml file at path and applies environment overrides.
func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
