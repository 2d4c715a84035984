package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Client настройки CLI-клиента
type Client struct {
	DataDir                string
	ServerURL              string
	Account                string
	Token                  string
	BatchSize              int
	RequestTimeout         time.Duration
	MaxConsecutiveFailures int
	ResumeAfter            time.Duration
	ProbeInterval          time.Duration
	ProbeTimeout           time.Duration
	Debounce               time.Duration
	Log                    Log
}

// SetClientDefaults registers client defaults
func SetClientDefaults(v *viper.Viper, dataDir string) {
	v.SetDefault("data_dir", dataDir)
	v.SetDefault("server_url", "http://localhost:8080")
	v.SetDefault("account", "")
	v.SetDefault("token", "")
	v.SetDefault("sync.batch_size", 100)
	v.SetDefault("sync.request_timeout", 30*time.Second)
	v.SetDefault("sync.max_failures", 3)
	v.SetDefault("sync.resume_after", time.Duration(0))
	v.SetDefault("probe.interval", 30*time.Second)
	v.SetDefault("probe.timeout", 5*time.Second)
	v.SetDefault("probe.debounce", 500*time.Millisecond)
	v.SetDefault("log.level", "warn")
}

// LoadClient reads and validates client settings
func LoadClient(v *viper.Viper) (Client, error) {
	cfg := Client{
		DataDir:                v.GetString("data_dir"),
		ServerURL:              v.GetString("server_url"),
		Account:                v.GetString("account"),
		Token:                  v.GetString("token"),
		BatchSize:              v.GetInt("sync.batch_size"),
		RequestTimeout:         v.GetDuration("sync.request_timeout"),
		MaxConsecutiveFailures: v.GetInt("sync.max_failures"),
		ResumeAfter:            v.GetDuration("sync.resume_after"),
		ProbeInterval:          v.GetDuration("probe.interval"),
		ProbeTimeout:           v.GetDuration("probe.timeout"),
		Debounce:               v.GetDuration("probe.debounce"),
		Log:                    loadLog(v),
	}

	if err := cfg.Validate(); err != nil {
		return Client{}, err
	}
	return cfg, nil
}

// Validate проверяет настройки клиента.
// Account не проверяется: локальные команды работают без него.
func (c Client) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir %w", errEmpty)
	}
	if c.ServerURL == "" {
		return fmt.Errorf("server_url %w", errEmpty)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("sync.batch_size must be positive")
	}
	if c.MaxConsecutiveFailures <= 0 {
		return fmt.Errorf("sync.max_failures must be positive")
	}
	if c.ResumeAfter < 0 {
		return fmt.Errorf("sync.resume_after must not be negative")
	}
	if err := positive("sync.request_timeout", c.RequestTimeout); err != nil {
		return err
	}
	if err := positive("probe.interval", c.ProbeInterval); err != nil {
		return err
	}
	return positive("probe.timeout", c.ProbeTimeout)
}
