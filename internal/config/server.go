package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Server настройки gymsync-server
type Server struct {
	Addr            string
	DBDriver        string
	DBDSN           string
	JWTSecret       string
	JWTTTL          time.Duration
	CORSOrigins     []string
	RateLimit       int
	RateWindow      time.Duration
	ShutdownTimeout time.Duration
	Log             Log
}

// SetServerDefaults registers server defaults
func SetServerDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "gymsync.db")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.ttl", 24*time.Hour)
	v.SetDefault("cors.origins", []string{})
	v.SetDefault("ratelimit.requests", 120)
	v.SetDefault("ratelimit.window", time.Minute)
}

// LoadServer reads and validates server settings
func LoadServer(v *viper.Viper) (Server, error) {
	cfg := Server{
		Addr:            v.GetString("server.addr"),
		ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
		DBDriver:        v.GetString("db.driver"),
		DBDSN:           v.GetString("db.dsn"),
		JWTSecret:       v.GetString("jwt.secret"),
		JWTTTL:          v.GetDuration("jwt.ttl"),
		CORSOrigins:     v.GetStringSlice("cors.origins"),
		RateLimit:       v.GetInt("ratelimit.requests"),
		RateWindow:      v.GetDuration("ratelimit.window"),
		Log:             loadLog(v),
	}

	if err := cfg.Validate(); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

// Validate проверяет настройки сервера
func (c Server) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("server.addr %w", errEmpty)
	}
	switch c.DBDriver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported db.driver %q", c.DBDriver)
	}
	if c.DBDSN == "" {
		return fmt.Errorf("db.dsn %w", errEmpty)
	}
	if c.RateLimit <= 0 {
		return fmt.Errorf("ratelimit.requests must be positive")
	}
	if err := positive("ratelimit.window", c.RateWindow); err != nil {
		return err
	}
	if err := positive("jwt.ttl", c.JWTTTL); err != nil {
		return err
	}
	return positive("server.shutdown_timeout", c.ShutdownTimeout)
}
