package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

const (
	DefaultEnvFile  = ".env"
	DefaultDBPort   = 5432
	DefaultHTTPPort = 3000
)

// Config is built once at startup and handed to the components that need it.
type Config struct {
	Database Database `koanf:"db"`
	Server   Server   `koanf:"server"`
	Log      Log      `koanf:"log"`
}

type Database struct {
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	Host     string `koanf:"host"`
	Port     int    `koanf:"-"`
	Name     string `koanf:"name"`
	SSLMode  string `koanf:"sslmode"`
}

type Server struct {
	Port int `koanf:"port"`
}

type Log struct {
	Level string `koanf:"level"`
}

// envKeys maps recognized environment variables onto config keys.
var envKeys = map[string]string{
	"DB_USER":     "db.user",
	"DB_PASSWORD": "db.password",
	"DB_HOST":     "db.host",
	"DB_PORT":     "db.port",
	"DB_NAME":     "db.name",
	"DB_SSLMODE":  "db.sslmode",
	"PORT":        "server.port",
	"LOG_LEVEL":   "log.level",
}

// flagKeys maps CLI flag names onto config keys.
var flagKeys = map[string]string{
	"port":      "server.port",
	"log-level": "log.level",
}

// Load reads envFile into the process environment, then layers defaults,
// environment variables and explicitly set flags. A missing envFile is only
// an error when mustExist is set.
func Load(envFile string, mustExist bool, flags *pflag.FlagSet) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if mustExist || !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
			}
		}
	}

	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]any{
		"db.host":     "localhost",
		"db.sslmode":  "disable",
		"server.port": DefaultHTTPPort,
		"log.level":   "info",
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if err := k.Load(env.Provider("", ".", func(s string) string {
		return envKeys[s]
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			key, ok := flagKeys[f.Name]
			if !ok || !f.Changed {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.Database.Port = ParsePort(k.String("db.port"))

	if cfg.Server.Port <= 0 {
		cfg.Server.Port = DefaultHTTPPort
	}

	return &cfg, nil
}

// ParsePort reads the leading integer of raw ("54x" is 54) and returns
// DefaultDBPort when there is none or it is not a usable port.
func ParsePort(raw string) int {
	s := strings.TrimSpace(raw)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	port, err := strconv.Atoi(s[:end])
	if err != nil || port <= 0 || port > 65535 {
		return DefaultDBPort
	}
	return port
}

// DSN renders the connection URL parsed by pgxpool.
func (d Database) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:   "/" + d.Name,
	}
	if d.User != "" {
		if d.Password != "" {
			u.User = url.UserPassword(d.User, d.Password)
		} else {
			u.User = url.User(d.User)
		}
	}
	if d.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {d.SSLMode}}.Encode()
	}
	return u.String()
}

func (s Server) Addr() string {
	return ":" + strconv.Itoa(s.Port)
}

// SlogLevel falls back to info for unknown level names.
func (l Log) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}
