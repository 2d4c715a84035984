package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/iudanet/gymsync/internal/config"
	"github.com/iudanet/gymsync/internal/logger"
	"github.com/iudanet/gymsync/internal/server"
	"github.com/iudanet/gymsync/internal/server/handlers"
	"github.com/iudanet/gymsync/internal/server/reconcile"
	"github.com/iudanet/gymsync/internal/server/storage/sqldb"
	"github.com/iudanet/gymsync/internal/validation"
)

// flagKeys связывает флаги с ключами viper
var flagKeys = map[string]string{
	"addr":       "server.addr",
	"db-driver":  "db.driver",
	"db-dsn":     "db.dsn",
	"jwt-secret": "jwt.secret",
	"log-level":  "log.level",
	"log-format": "log.format",
}

func newRootCmd() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:          "gymsync-server",
		Short:        "Reconciliation server for gymsync clients",
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file (yaml, toml or json), reloaded on change")
	pf.String("db-driver", "", "database driver: sqlite or postgres")
	pf.String("db-dsn", "", "database DSN")
	pf.String("jwt-secret", "", "HMAC secret; enables bearer token auth when set")
	pf.String("log-level", "", "log level: debug, info, warn, error")
	pf.String("log-format", "", "log format: text or json")

	load := func(cmd *cobra.Command) (*viper.Viper, config.Server, error) {
		v, err := config.New(configFile)
		if err != nil {
			return nil, config.Server{}, err
		}
		config.SetServerDefaults(v)
		for flag, key := range flagKeys {
			if f := cmd.Flags().Lookup(flag); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, config.Server{}, fmt.Errorf("failed to bind flag %s: %w", flag, err)
				}
			}
		}
		cfg, err := config.LoadServer(v)
		return v, cfg, err
	}

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP sync service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, cfg, err := load(cmd)
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), v, cfg)
		},
	}
	serve.Flags().String("addr", "", "listen address")

	var (
		user string
		ttl  time.Duration
	)
	token := &cobra.Command{
		Use:   "token",
		Short: "Mint an access token for an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cfg, err := load(cmd)
			if err != nil {
				return err
			}
			if ttl > 0 {
				cfg.JWTTTL = ttl
			}
			return runToken(cmd, cfg, user)
		},
	}
	token.Flags().StringVar(&user, "user", "", "account handle or id the token is issued for")
	token.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (default jwt.ttl)")
	_ = token.MarkFlagRequired("user")

	root.AddCommand(serve, token, &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			printVersion()
		},
	})

	return root
}

func runServe(ctx context.Context, v *viper.Viper, cfg config.Server) (err error) {
	log, err := logger.New(logger.Options{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { err = errors.Join(err, log.Close()) }()

	config.Watch(v, log.Logger, log.SetLevel)

	store, err := sqldb.New(ctx, cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		log.Error("Failed to open database", "driver", cfg.DBDriver, "error", err)
		return err
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			log.Error("Failed to close database", "error", cerr)
		}
	}()

	log.Info("Starting gymsync server",
		"version", Version,
		"commit", GitCommit,
		"db_driver", cfg.DBDriver)

	reconciler := reconcile.New(store, log.Logger)
	srv := server.New(server.Options{
		Addr:        cfg.Addr,
		CORSOrigins: cfg.CORSOrigins,
		JWT: handlers.JWTConfig{
			Secret:         []byte(cfg.JWTSecret),
			AccessTokenTTL: cfg.JWTTTL,
		},
		RateLimit:       cfg.RateLimit,
		RateWindow:      cfg.RateWindow,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, reconciler, store, Version, log.Logger)

	if err := srv.Run(ctx); err != nil {
		log.Error("Server stopped with error", "error", err)
		return err
	}
	log.Info("Server stopped")
	return nil
}

func runToken(cmd *cobra.Command, cfg config.Server, user string) error {
	if cfg.JWTSecret == "" {
		return errors.New("jwt.secret is not set, tokens would not be checked")
	}
	if _, err := validation.ParseAccountRef(user); err != nil {
		return fmt.Errorf("invalid --user: %w", err)
	}

	token, expiresAt, err := handlers.GenerateAccessToken(handlers.JWTConfig{
		Secret:         []byte(cfg.JWTSecret),
		AccessTokenTTL: cfg.JWTTTL,
	}, user)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), token)
	fmt.Fprintf(cmd.ErrOrStderr(), "expires at %s\n", time.Unix(expiresAt, 0).UTC().Format(time.RFC3339))
	return nil
}
