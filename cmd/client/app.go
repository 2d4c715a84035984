package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/iudanet/gymsync/internal/client/api"
	"github.com/iudanet/gymsync/internal/client/cli"
	"github.com/iudanet/gymsync/internal/client/connectivity"
	"github.com/iudanet/gymsync/internal/client/data"
	"github.com/iudanet/gymsync/internal/client/iocli"
	"github.com/iudanet/gymsync/internal/client/queue"
	"github.com/iudanet/gymsync/internal/client/storage/boltdb"
	clientsync "github.com/iudanet/gymsync/internal/client/sync"
	"github.com/iudanet/gymsync/internal/config"
	"github.com/iudanet/gymsync/internal/logger"
)

// dbFileName имя файла bbolt внутри data_dir
const dbFileName = "gymsync.db"

// app собранные зависимости одной команды
type app struct {
	cfg     config.Client
	log     *logger.Logger
	store   *boltdb.Storage
	queue   queue.Service
	monitor *connectivity.Monitor
	orch    *clientsync.Orchestrator // nil без аккаунта
	cli     *cli.Cli
}

// flagKeys связывает persistent-флаги с ключами viper
var flagKeys = map[string]string{
	"data-dir":  "data_dir",
	"server":    "server_url",
	"account":   "account",
	"token":     "token",
	"log-level": "log.level",
}

func loadConfig(cmd *cobra.Command, configFile string) (config.Client, error) {
	v, err := config.New(configFile)
	if err != nil {
		return config.Client{}, err
	}
	config.SetClientDefaults(v, defaultDataDir())

	if err := bindFlags(v, cmd); err != nil {
		return config.Client{}, err
	}
	return config.LoadClient(v)
}

func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	for flag, key := range flagKeys {
		f := cmd.Flags().Lookup(flag)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", flag, err)
		}
	}
	return nil
}

func defaultDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".gymsync"
	}
	return filepath.Join(dir, "gymsync")
}

func newApp(ctx context.Context, cfg config.Client) (*app, error) {
	log, err := logger.New(logger.Options{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		_ = log.Close()
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}

	// Файл открывается только на время транзакции: watch и команды
	// редактирования работают с одной БД одновременно
	store, err := boltdb.NewShared(ctx, filepath.Join(cfg.DataDir, dbFileName))
	if err != nil {
		_ = log.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	a := &app{cfg: cfg, log: log, store: store}

	q := queue.New(store, log.Logger)
	a.queue = q
	dataService := data.NewService(store, q, cfg.Account, log.Logger)

	// Исход запросов к серверу служит сигналом доступности для монитора
	opts := []api.Option{api.WithReachability(func(online bool) { a.monitor.Report(online) })}
	if cfg.Token != "" {
		opts = append(opts, api.WithToken(cfg.Token))
	}
	apiClient := api.NewClient(cfg.ServerURL, opts...)

	monCfg := connectivity.DefaultConfig()
	monCfg.ProbeInterval = cfg.ProbeInterval
	monCfg.ProbeTimeout = cfg.ProbeTimeout
	monCfg.Debounce = cfg.Debounce
	a.monitor = connectivity.New(monCfg, apiClient, log.Logger)

	// Без аккаунта доступны только локальные команды
	var (
		syncer cli.Syncer
		remote cli.Remote
	)
	if cfg.Account != "" {
		a.orch, err = clientsync.New(ctx, clientsync.Config{
			ServerURL:              cfg.ServerURL,
			AccountID:              cfg.Account,
			BatchSize:              cfg.BatchSize,
			RequestTimeout:         cfg.RequestTimeout,
			MaxConsecutiveFailures: cfg.MaxConsecutiveFailures,
			ResumeAfter:            cfg.ResumeAfter,
		}, apiClient, store, q, store, a.monitor, log.Logger)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		syncer = a.orch
		remote = apiClient
	}

	a.cli = cli.New(iocli.NewStdio(), dataService, q, syncer, remote, cfg.Account)
	return a, nil
}

// Close releases the database and the log file
func (a *app) Close() error {
	a.monitor.Close()
	return errors.Join(a.store.Close(), a.log.Close())
}
