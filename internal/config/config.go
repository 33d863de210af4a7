package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	cerr "github.com/saeidalz13/sea-battle/internal/error"
)

const (
	StageProd = "prod"
	StageDev  = "dev"

	defaultPort = 8000
)

type Config struct {
	Stage       string
	Port        int
	DatabaseUrl string
	Seed        uint64
	LogLevel    log.Level
}

// LoadConfig reads the environment. Outside prod a .env file is loaded
// first when one exists.
func LoadConfig(envFiles ...string) (Config, error) {
	if os.Getenv("STAGE") != StageProd {
		if len(envFiles) == 0 {
			envFiles = []string{".env"}
		}
		if err := godotenv.Load(envFiles...); err != nil && !os.IsNotExist(err) {
			return Config{}, err
		}
	}

	cfg := Config{
		Stage:       os.Getenv("STAGE"),
		Port:        defaultPort,
		DatabaseUrl: os.Getenv("DATABASE_URL"),
		LogLevel:    log.InfoLevel,
	}

	if cfg.Stage == "" {
		cfg.Stage = StageDev
	}
	if cfg.Stage != StageDev && cfg.Stage != StageProd {
		return Config{}, cerr.ErrInvalidStage(cfg.Stage)
	}

	if portEnv := os.Getenv("PORT"); portEnv != "" {
		port, err := strconv.Atoi(portEnv)
		if err != nil {
			return Config{}, err
		}
		cfg.Port = port
	}

	if seedEnv := os.Getenv("SEED"); seedEnv != "" {
		seed, err := strconv.ParseUint(seedEnv, 10, 64)
		if err != nil {
			return Config{}, err
		}
		cfg.Seed = seed
	}

	if levelEnv := os.Getenv("LOG_LEVEL"); levelEnv != "" {
		level, err := log.ParseLevel(strings.ToLower(levelEnv))
		if err != nil {
			return Config{}, err
		}
		cfg.LogLevel = level
	}

	return cfg, nil
}
