package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	ModeLocal      = "local"
	ModeMinimax    = "minimax"
	ModeNaiveBayes = "naive-bayes"
	ModeRandom     = "random"
	ModeSelfPlay   = "self-play"
)

var (
	ErrInvalidLogLevel   = errors.New("invalid log level")
	ErrInvalidMode       = errors.New("invalid mode")
	ErrInvalidDifficulty = errors.New("invalid difficulty")
	ErrInvalidFraction   = errors.New("training fraction must be in (0, 1]")
)

type Config struct {
	LogLevel   string  `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	Mode       string  `yaml:"mode" env:"MODE" env-default:"minimax"`
	Difficulty string  `yaml:"difficulty" env:"DIFFICULTY" env-default:"hard"`
	Dataset    Dataset `yaml:"dataset"`
	Redis      Redis   `yaml:"redis"`
}

// Dataset configures the classifier training. Seed 0 shuffles with a time based seed.
type Dataset struct {
	Path             string  `yaml:"path" env:"DATASET_PATH" env-default:"resources/tictactoe.txt"`
	TrainingFraction float64 `yaml:"training-fraction" env:"DATASET_TRAINING_FRACTION" env-default:"0.8"`
	Seed             int64   `yaml:"seed" env:"DATASET_SEED" env-default:"0"`
}

type Redis struct {
	Enabled bool          `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false"`
	Host    string        `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port    string        `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	TTL     time.Duration `yaml:"ttl" env:"REDIS_TTL" env-default:"24h"`
}

// Load reads path, applies environment overrides and validates the result.
func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
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

func (that *Config) Validate() error {
	switch that.LogLevel {
	case "debug", "info":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, that.LogLevel)
	}

	switch that.Mode {
	case ModeLocal, ModeMinimax, ModeNaiveBayes, ModeRandom, ModeSelfPlay:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidMode, that.Mode)
	}

	switch that.Difficulty {
	case "easy", "medium", "hard":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidDifficulty, that.Difficulty)
	}

	if that.Dataset.TrainingFraction <= 0 || that.Dataset.TrainingFraction > 1 {
		return fmt.Errorf("%w: %v", ErrInvalidFraction, that.Dataset.TrainingFraction)
	}

	return nil
}

// NeedsDataset reports whether the configured mode plays with the classifier.
func (that *Config) NeedsDataset() bool {
	return that.Mode == ModeNaiveBayes
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
