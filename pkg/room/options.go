package room

import (
	"time"

	"walletpoker-server/internal/config"
	"walletpoker-server/internal/rng"
	"walletpoker-server/pkg/poker/potmanager"
)

// Options configures every tournament started by a PitBoss
// StoreTimeout bounds each store call; zero means no deadline.
type Options struct {
	MinPlayers    int
	MaxPlayers    int
	NextHandDelay time.Duration
	RemainderRule potmanager.RemainderRule
	RakePercent   int
	StoreTimeout  time.Duration
	Generator     rng.Generator
}

// OptionsFromConfig builds Options from the tournament configuration
func OptionsFromConfig(cfg config.Tournament) (Options, error) {
	rule, err := potmanager.ParseRemainderRule(cfg.RemainderRule)
	if err != nil {
		return Options{}, err
	}

	return Options{
		MinPlayers:    cfg.MinPlayers,
		MaxPlayers:    cfg.MaxPlayers,
		NextHandDelay: cfg.NextHandDelayDuration(),
		RemainderRule: rule,
		RakePercent:   cfg.RakePercent,
		StoreTimeout:  cfg.StoreTimeoutDuration(),
		Generator:     rng.Crypto{},
	}, nil
}

// Blinds are the forced bets of a tournament
type Blinds struct {
	Small int `json:"smallBlind"`
	Big   int `json:"bigBlind"`
}
