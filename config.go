package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"gridsnake-server/engine"
)

// Host defaults, overridable from the environment
const (
	// Server
	DefaultServerAddr    = ":8080"
	DefaultStaticDir     = "../client"
	DefaultWebSocketPath = "/ws"
	DefaultGinMode       = "release"

	// Admission
	DefaultMaxSessions   = 100
	DefaultIPCooldownSec = 30
	LimiterSweepInterval = 60 * time.Second

	// Leaderboard
	LeaderboardSize = 10

	// Websocket buffers
	WSReadBufferSize  = 1024
	WSWriteBufferSize = 4096
)

// Config holds everything the host needs to start.
type Config struct {
	ServerAddr    string        // listen address for the HTTP server
	StaticDir     string        // directory served for unmatched routes
	WebSocketPath string        // path of the websocket upgrade endpoint
	GinMode       string        // debug, release or test
	MaxSessions   int           // concurrent websocket sessions allowed
	IPCooldown    time.Duration // minimum gap between connects from one IP
	Game          engine.Config // per-session board settings
}

// LoadConfig reads a .env file when present and then the process environment.
// Unset variables fall back to the defaults above and engine.DefaultConfig.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil {
		appLog.Printf("%s[INFO]%s .env file not found or could not be loaded: %v", LogInfoColor, LogColorReset, err)
	}
	return configFromEnv()
}

func configFromEnv() (Config, error) {
	game := engine.DefaultConfig()
	r := &envReader{}

	cfg := Config{
		ServerAddr:    getEnvWithDefault("SERVER_ADDR", DefaultServerAddr),
		StaticDir:     getEnvWithDefault("STATIC_DIR", DefaultStaticDir),
		WebSocketPath: getEnvWithDefault("WS_PATH", DefaultWebSocketPath),
		GinMode:       getEnvWithDefault("GIN_MODE", DefaultGinMode),
		MaxSessions:   r.getInt("MAX_SESSIONS", DefaultMaxSessions),
		IPCooldown:    time.Duration(r.getInt("IP_COOLDOWN_SEC", DefaultIPCooldownSec)) * time.Second,
		Game: engine.Config{
			Width:      r.getInt("GRID_WIDTH", game.Width),
			Height:     r.getInt("GRID_HEIGHT", game.Height),
			TileSize:   r.getInt("TILE_SIZE", game.TileSize),
			MaxScore:   r.getInt("MAX_SCORE", game.MaxScore),
			GrowthRate: r.getInt("GROWTH_RATE", game.GrowthRate),
			TickDelay:  time.Duration(r.getInt("TICK_DELAY_MS", int(game.TickDelay/time.Millisecond))) * time.Millisecond,
			AutoReset:  r.getBool("AUTO_RESET", game.AutoReset),
			QueueLimit: r.getInt("QUEUE_LIMIT", game.QueueLimit),
			Seed:       r.getUint64("SEED", game.Seed),
		},
	}
	if r.err != nil {
		return Config{}, r.err
	}
	if cfg.MaxSessions < 1 {
		return Config{}, fmt.Errorf("MAX_SESSIONS must be positive, got %d", cfg.MaxSessions)
	}
	if cfg.IPCooldown < 0 {
		return Config{}, fmt.Errorf("IP_COOLDOWN_SEC must not be negative, got %s", cfg.IPCooldown)
	}
	if err := cfg.Game.Validate(); err != nil {
		return Config{}, fmt.Errorf("game config: %w", err)
	}
	return cfg, nil
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// envReader parses typed variables and keeps the first failure.
type envReader struct {
	err error
}

func (r *envReader) lookup(key string) (string, bool) {
	if r.err != nil {
		return "", false
	}
	return os.LookupEnv(key)
}

func (r *envReader) getInt(key string, def int) int {
	s, ok := r.lookup(key)
	if !ok {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		r.err = fmt.Errorf("environment variable %s must be an integer: %w", key, err)
		return def
	}
	return v
}

func (r *envReader) getUint64(key string, def uint64) uint64 {
	s, ok := r.lookup(key)
	if !ok {
		return def
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		r.err = fmt.Errorf("environment variable %s must be an unsigned integer: %w", key, err)
		return def
	}
	return v
}

func (r *envReader) getBool(key string, def bool) bool {
	s, ok := r.lookup(key)
	if !ok {
		return def
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		r.err = fmt.Errorf("environment variable %s must be a boolean: %w", key, err)
		return def
	}
	return v
}
