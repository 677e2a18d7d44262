package config

import (
	"errors"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
	"walletpoker-server/internal/util"
)

// Config provides configuration for the tournament server
type Config struct {
	loaded         bool
	PGDSN          string `yaml:"pgDsn" envconfig:"pg_dsn"`
	SQLitePath     string `yaml:"sqlitePath" envconfig:"sqlite_path"`
	MigrationsPath string `yaml:"migrationsPath" envconfig:"migrations_path"`
	Log            struct {
		Level             string `yaml:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	}
	Auth struct {
		// Secret is the HMAC secret shared with the wallet authentication service
		Secret string `yaml:"secret"`
	}
	Tournament Tournament
}

// Tournament configures how tournaments are run
type Tournament struct {
	MinPlayers int `yaml:"minPlayers" envconfig:"min_players"`
	MaxPlayers int `yaml:"maxPlayers" envconfig:"max_players"`
	// NextHandDelay is the pause between hands in milliseconds
	NextHandDelay int `yaml:"nextHandDelay" envconfig:"next_hand_delay"`
	// RemainderRule decides who receives odd chips from a split pot: "first-seat" or "left-of-dealer"
	RemainderRule string `yaml:"remainderRule" envconfig:"remainder_rule"`
	// RakePercent is taken from the prize pool before the winner is paid
	RakePercent int `yaml:"rakePercent" envconfig:"rake_percent"`
	// StoreTimeout bounds each store call in milliseconds
	StoreTimeout int `yaml:"storeTimeout" envconfig:"store_timeout"`
}

// NextHandDelayDuration returns NextHandDelay as a time.Duration
func (t Tournament) NextHandDelayDuration() time.Duration {
	return time.Duration(t.NextHandDelay) * time.Millisecond
}

// StoreTimeoutDuration returns StoreTimeout as a time.Duration
func (t Tournament) StoreTimeoutDuration() time.Duration {
	return time.Duration(t.StoreTimeout) * time.Millisecond
}

var config Config

// DefaultConfig returns the configuration used when nothing overrides it
func DefaultConfig() Config {
	c := Config{
		PGDSN:          "",
		MigrationsPath: "./sql",
	}

	c.Log.Level = "info"
	c.Tournament = Tournament{
		MinPlayers:    2,
		MaxPlayers:    10,
		NextHandDelay: 5000,
		RemainderRule: "first-seat",
		StoreTimeout:  10000,
	}

	return c
}

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
// Variables in the .env file are added to the environment first, without replacing any that are
// already set. A missing file is not an error; defaults and the environment are used instead.
func Load() error {
	cfg := DefaultConfig()

	envFile := util.Getenv("WPS_ENV_FILE", ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	configFile := util.Getenv("WPS_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	if file != nil {
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
			return err
		}
	}

	if err := envconfig.Process("wps", &cfg); err != nil {
		return err
	}

	if err := cfg.validate(); err != nil {
		return err
	}

	config = cfg
	config.loaded = true
	return nil
}

func (c Config) validate() error {
	t := c.Tournament
	if t.MinPlayers < 2 {
		return errors.New("tournament.minPlayers must be at least 2")
	}

	if t.MaxPlayers < t.MinPlayers {
		return errors.New("tournament.maxPlayers must be >= tournament.minPlayers")
	}

	if t.NextHandDelay < 0 {
		return errors.New("tournament.nextHandDelay cannot be negative")
	}

	if t.StoreTimeout <= 0 {
		return errors.New("tournament.storeTimeout must be greater than zero")
	}

	if t.RakePercent < 0 || t.RakePercent > 100 {
		return errors.New("tournament.rakePercent must be between 0 and 100")
	}

	switch t.RemainderRule {
	case "first-seat", "left-of-dealer":
	default:
		return errors.New("tournament.remainderRule must be first-seat or left-of-dealer")
	}

	return nil
}
