// Package config loads ghostleg settings from a TOML file.
//
// A config file only needs the keys it wants to change; everything else
// keeps its [Default] value:
//
//	rows = 12
//	tick_rate = "100ms"
//
//	[store]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//
// Command-line flags override whatever the file sets.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	gerrors "github.com/matzehuels/ghostleg/pkg/errors"
	"github.com/matzehuels/ghostleg/pkg/round"
)

// Store backends.
const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
	BackendMemory = "memory"
	BackendNone   = "none"
)

// Config holds every setting of a ghostleg installation.
type Config struct {
	Rows      int           // rows per ladder
	MaxRungs  int           // exclusive upper bound on rungs per gap
	MaxLanes  int           // largest accepted number of players
	Seed      uint64        // fixed seed; 0 draws a fresh one per round
	TickRate  time.Duration // animation frame interval
	TickSpeed int           // cells drawn per frame

	Store  Store
	Server Server
}

// Store selects and configures the round store.
type Store struct {
	Backend       string
	Dir           string // file backend; empty means the user data dir
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	MongoURI      string
	MongoDatabase string
}

// Server configures the HTTP API.
type Server struct {
	Addr string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Rows:      10,
		MaxRungs:  6,
		MaxLanes:  12,
		TickRate:  250 * time.Millisecond,
		TickSpeed: 1,
		Store: Store{
			Backend:       BackendFile,
			RedisAddr:     "localhost:6379",
			MongoURI:      "mongodb://localhost:27017",
			MongoDatabase: "ghostleg",
		},
		Server: Server{Addr: ":8080"},
	}
}

// =============================================================================
// File format
// =============================================================================

type fileConfig struct {
	Rows      int        `toml:"rows"`
	MaxRungs  int        `toml:"max_rungs"`
	MaxLanes  int        `toml:"max_lanes"`
	Seed      uint64     `toml:"seed"`
	TickRate  string     `toml:"tick_rate"`
	TickSpeed int        `toml:"tick_speed"`
	Store     fileStore  `toml:"store"`
	Server    fileServer `toml:"server"`
}

type fileStore struct {
	Backend       string `toml:"backend"`
	Dir           string `toml:"dir"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

type fileServer struct {
	Addr string `toml:"addr"`
}

// Load reads path on top of [Default] and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, gerrors.Wrap(gerrors.ErrCodeInvalidConfig, err, "load config %s", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, gerrors.New(gerrors.ErrCodeInvalidConfig, "unknown key %q in %s", undecoded[0].String(), path)
	}

	if meta.IsDefined("rows") {
		cfg.Rows = raw.Rows
	}
	if meta.IsDefined("max_rungs") {
		cfg.MaxRungs = raw.MaxRungs
	}
	if meta.IsDefined("max_lanes") {
		cfg.MaxLanes = raw.MaxLanes
	}
	if meta.IsDefined("seed") {
		cfg.Seed = raw.Seed
	}
	if meta.IsDefined("tick_rate") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.TickRate))
		if err != nil {
			return Config{}, gerrors.Wrap(gerrors.ErrCodeInvalidConfig, err, "parse tick_rate")
		}
		cfg.TickRate = d
	}
	if meta.IsDefined("tick_speed") {
		cfg.TickSpeed = raw.TickSpeed
	}

	if meta.IsDefined("store", "backend") {
		cfg.Store.Backend = strings.ToLower(strings.TrimSpace(raw.Store.Backend))
	}
	if meta.IsDefined("store", "dir") {
		cfg.Store.Dir = strings.TrimSpace(raw.Store.Dir)
	}
	if meta.IsDefined("store", "redis_addr") {
		cfg.Store.RedisAddr = strings.TrimSpace(raw.Store.RedisAddr)
	}
	if meta.IsDefined("store", "redis_password") {
		cfg.Store.RedisPassword = raw.Store.RedisPassword
	}
	if meta.IsDefined("store", "redis_db") {
		cfg.Store.RedisDB = raw.Store.RedisDB
	}
	if meta.IsDefined("store", "mongo_uri") {
		cfg.Store.MongoURI = strings.TrimSpace(raw.Store.MongoURI)
	}
	if meta.IsDefined("store", "mongo_database") {
		cfg.Store.MongoDatabase = strings.TrimSpace(raw.Store.MongoDatabase)
	}
	if meta.IsDefined("server", "addr") {
		cfg.Server.Addr = strings.TrimSpace(raw.Server.Addr)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadDefault loads the file at [DefaultPath]. A missing file yields
// [Default] without error.
func LoadDefault() (Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return Default(), nil
	}
	cfg, err := Load(path)
	if err != nil && errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Validate reports the first setting that cannot produce a valid round.
func (c Config) Validate() error {
	switch {
	case c.Rows < 1 || c.Rows > round.RowsLimit:
		return gerrors.New(gerrors.ErrCodeInvalidConfig, "rows must be in [1, %d], got %d", round.RowsLimit, c.Rows)
	case c.MaxRungs < 3 || c.MaxRungs > round.MaxRungsLimit:
		return gerrors.New(gerrors.ErrCodeInvalidConfig, "max_rungs must be in [3, %d], got %d", round.MaxRungsLimit, c.MaxRungs)
	case c.MaxLanes < round.MinLanes || c.MaxLanes > round.LanesLimit:
		return gerrors.New(gerrors.ErrCodeInvalidConfig, "max_lanes must be in [%d, %d], got %d", round.MinLanes, round.LanesLimit, c.MaxLanes)
	case c.TickRate <= 0:
		return gerrors.New(gerrors.ErrCodeInvalidConfig, "tick_rate must be positive, got %s", c.TickRate)
	case c.TickSpeed < 1:
		return gerrors.New(gerrors.ErrCodeInvalidConfig, "tick_speed must be at least 1, got %d", c.TickSpeed)
	}

	switch c.Store.Backend {
	case BackendFile, BackendMemory, BackendNone:
	case BackendRedis:
		if c.Store.RedisAddr == "" {
			return gerrors.New(gerrors.ErrCodeInvalidConfig, "store.redis_addr is required for the redis backend")
		}
	case BackendMongo:
		if c.Store.MongoURI == "" || c.Store.MongoDatabase == "" {
			return gerrors.New(gerrors.ErrCodeInvalidConfig, "store.mongo_uri and store.mongo_database are required for the mongo backend")
		}
	default:
		return gerrors.New(gerrors.ErrCodeInvalidConfig,
			"unknown store backend %q (want file, redis, mongo, memory or none)", c.Store.Backend)
	}
	return nil
}

// Encode writes c as TOML in the format [Load] reads.
func (c Config) Encode(w io.Writer) error {
	raw := fileConfig{
		Rows:      c.Rows,
		MaxRungs:  c.MaxRungs,
		MaxLanes:  c.MaxLanes,
		Seed:      c.Seed,
		TickRate:  c.TickRate.String(),
		TickSpeed: c.TickSpeed,
		Store: fileStore{
			Backend:       c.Store.Backend,
			Dir:           c.Store.Dir,
			RedisAddr:     c.Store.RedisAddr,
			RedisPassword: c.Store.RedisPassword,
			RedisDB:       c.Store.RedisDB,
			MongoURI:      c.Store.MongoURI,
			MongoDatabase: c.Store.MongoDatabase,
		},
		Server: fileServer{Addr: c.Server.Addr},
	}
	if err := toml.NewEncoder(w).Encode(raw); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}

// DefaultPath returns $XDG_CONFIG_HOME/ghostleg/config.toml, falling back to
// ~/.config/ghostleg/config.toml.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "ghostleg", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate home directory: %w", err)
	}
	return filepath.Join(home, ".config", "ghostleg", "config.toml"), nil
}
