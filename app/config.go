package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	dbm "github.com/cosmos/cosmos-db"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

const (
	EnvPrefix      = "NAMEREG"
	ConfigFileName = "app.toml"
	GenesisFile    = "genesis.json"
)

type APIConfig struct {
	Address string
}

type RateLimitConfig struct {
	PerBlock  int
	PerWindow int
	WindowSec int64
	GlobalMax int
}

type InvariantsConfig struct {
	CheckEveryBlock bool
}

// Config is the node configuration read from app.toml, the environment
// and command flags, in increasing precedence.
type Config struct {
	Home          string
	DBBackend     string
	LogLevel      string
	BlockInterval time.Duration
	API           APIConfig
	RateLimit     RateLimitConfig
	Invariants    InvariantsConfig
}

func DefaultConfig(home string) Config {
	return Config{
		Home:          home,
		DBBackend:     string(dbm.GoLevelDBBackend),
		LogLevel:      "info",
		BlockInterval: 2 * time.Second,
		API:           APIConfig{Address: "127.0.0.1:1317"},
		RateLimit: RateLimitConfig{
			PerBlock:  5,
			PerWindow: 20,
			WindowSec: 10,
			GlobalMax: 300,
		},
		Invariants: InvariantsConfig{CheckEveryBlock: false},
	}
}

func (c Config) ConfigDir() string { return filepath.Join(c.Home, "config") }

func (c Config) DataDir() string { return filepath.Join(c.Home, "data") }

func (c Config) KeysDir() string { return filepath.Join(c.Home, "keys") }

func (c Config) GenesisPath() string { return filepath.Join(c.ConfigDir(), GenesisFile) }

func (c Config) Validate() error {
	switch c.DBBackend {
	case string(dbm.GoLevelDBBackend), string(dbm.MemDBBackend):
	default:
		return fmt.Errorf("unsupported db_backend %q", c.DBBackend)
	}
	if c.BlockInterval <= 0 {
		return fmt.Errorf("block_interval must be positive")
	}
	if strings.TrimSpace(c.API.Address) == "" {
		return fmt.Errorf("api.address required")
	}
	return nil
}

// SetDefaults seeds v with DefaultConfig.
func SetDefaults(v *viper.Viper, home string) {
	def := DefaultConfig(home)
	v.SetDefault("db_backend", def.DBBackend)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("block_interval", def.BlockInterval)
	v.SetDefault("api.address", def.API.Address)
	v.SetDefault("rate_limit.per_block", def.RateLimit.PerBlock)
	v.SetDefault("rate_limit.per_window", def.RateLimit.PerWindow)
	v.SetDefault("rate_limit.window_sec", def.RateLimit.WindowSec)
	v.SetDefault("rate_limit.global_max", def.RateLimit.GlobalMax)
	v.SetDefault("invariants.check_every_block", def.Invariants.CheckEveryBlock)
}

// LoadConfig reads <home>/config/app.toml when present and overlays the
// NAMEREG_* environment.
func LoadConfig(v *viper.Viper, home string) (Config, error) {
	SetDefaults(v, home)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path := filepath.Join(home, "config", ConfigFileName)
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return Config{}, err
	}

	cfg := Config{
		Home:          home,
		DBBackend:     cast.ToString(v.Get("db_backend")),
		LogLevel:      cast.ToString(v.Get("log_level")),
		BlockInterval: cast.ToDuration(v.Get("block_interval")),
		API:           APIConfig{Address: cast.ToString(v.Get("api.address"))},
		RateLimit: RateLimitConfig{
			PerBlock:  cast.ToInt(v.Get("rate_limit.per_block")),
			PerWindow: cast.ToInt(v.Get("rate_limit.per_window")),
			WindowSec: cast.ToInt64(v.Get("rate_limit.window_sec")),
			GlobalMax: cast.ToInt(v.Get("rate_limit.global_max")),
		},
		Invariants: InvariantsConfig{
			CheckEveryBlock: cast.ToBool(v.Get("invariants.check_every_block")),
		},
	}
	return cfg, cfg.Validate()
}

// WriteConfig renders cfg to <home>/config/app.toml.
func WriteConfig(cfg Config) error {
	v := viper.New()
	v.Set("db_backend", cfg.DBBackend)
	v.Set("log_level", cfg.LogLevel)
	v.Set("block_interval", cfg.BlockInterval.String())
	v.Set("api.address", cfg.API.Address)
	v.Set("rate_limit.per_block", cfg.RateLimit.PerBlock)
	v.Set("rate_limit.per_window", cfg.RateLimit.PerWindow)
	v.Set("rate_limit.window_sec", cfg.RateLimit.WindowSec)
	v.Set("rate_limit.global_max", cfg.RateLimit.GlobalMax)
	v.Set("invariants.check_every_block", cfg.Invariants.CheckEveryBlock)

	if err := os.MkdirAll(cfg.ConfigDir(), 0o755); err != nil {
		return err
	}
	return v.WriteConfigAs(filepath.Join(cfg.ConfigDir(), ConfigFileName))
}
