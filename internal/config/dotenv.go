package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads environment variables from a .env file if present.
// Existing environment variables are not overwritten.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

type Config struct {
	AnnounceSeconds int
	DiscussSeconds  int
	VoteSeconds     int
	NightSeconds    int
	ChatterPercent  int
	DecisionRPS     float64
	DecisionBurst   int
	PublicBaseURL   string
}

func Default() Config {
	return Config{
		AnnounceSeconds: 5,
		DiscussSeconds:  30,
		VoteSeconds:     15,
		NightSeconds:    10,
		ChatterPercent:  20,
		DecisionRPS:     1,
		DecisionBurst:   3,
		PublicBaseURL:   "http://localhost:8080",
	}
}

func Load() Config {
	cfg := Default()
	if raw := os.Getenv("ANNOUNCE_SECONDS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.AnnounceSeconds = value
		}
	}
	if raw := os.Getenv("DISCUSS_SECONDS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.DiscussSeconds = value
		}
	}
	if raw := os.Getenv("VOTE_SECONDS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.VoteSeconds = value
		}
	}
	if raw := os.Getenv("NIGHT_SECONDS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.NightSeconds = value
		}
	}
	if raw := os.Getenv("CHATTER_PERCENT"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value >= 0 && value <= 100 {
			cfg.ChatterPercent = value
		}
	}
	if raw := os.Getenv("DECISION_RPS"); raw != "" {
		if value, err := strconv.ParseFloat(raw, 64); err == nil && value > 0 {
			cfg.DecisionRPS = value
		}
	}
	if raw := os.Getenv("DECISION_BURST"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.DecisionBurst = value
		}
	}
	if raw := os.Getenv("PUBLIC_BASE_URL"); raw != "" {
		cfg.PublicBaseURL = raw
	}
	return cfg
}
