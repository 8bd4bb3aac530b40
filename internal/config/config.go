package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel    string      `yaml:"log-level" env:"LASTSTEP_LOG_LEVEL" env-default:"info"`
	LogFile     string      `yaml:"log-file" env:"LASTSTEP_LOG_FILE" env-default:"laststep.log"`
	Player      string      `yaml:"player" env:"LASTSTEP_PLAYER" env-default:"player"`
	FrameRate   int         `yaml:"frame-rate" env:"LASTSTEP_FRAME_RATE" env-default:"10"`
	Seed        int64       `yaml:"seed" env:"LASTSTEP_SEED" env-default:"0"`
	Redis       Redis       `yaml:"redis"`
	Leaderboard Leaderboard `yaml:"leaderboard"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// Leaderboard - where finished rounds are recorded. Disabled keeps them in memory.
type Leaderboard struct {
	Enabled bool `yaml:"enabled" env:"LASTSTEP_LEADERBOARD" env-default:"false"`
	Size    int  `yaml:"size" env:"LASTSTEP_LEADERBOARD_SIZE" env-default:"5"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	if that.Host == "" || that.Port == "" {
		return ""
	}

	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
