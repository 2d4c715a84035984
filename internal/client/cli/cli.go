// Package cli реализует команды gymsync поверх клиентских сервисов.
// Весь вывод идет через iocli.IO, чтобы команды можно было тестировать.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/iudanet/gymsync/internal/client/data"
	"github.com/iudanet/gymsync/internal/client/iocli"
	"github.com/iudanet/gymsync/internal/client/queue"
	clientsync "github.com/iudanet/gymsync/internal/client/sync"
	"github.com/iudanet/gymsync/internal/models"
	"github.com/iudanet/gymsync/pkg/api"
)

// ErrNoAccount команда требует настроенный аккаунт
var ErrNoAccount = errors.New("account is not configured, set --account or GYMSYNC_ACCOUNT")

//go:generate moq -out syncer_mock.go . Syncer

// Syncer ручной запуск синхронизации и ее состояние
type Syncer interface {
	Sync(ctx context.Context) (bool, error)
	Status(ctx context.Context) (clientsync.Status, error)
}

//go:generate moq -out remote_mock.go . Remote

// Remote read-only запросы к серверу
type Remote interface {
	Pull(ctx context.Context, userID string) (*api.PullResponse, error)
	Status(ctx context.Context, userID string) (*api.StatusResponse, error)
}

type Cli struct {
	io      iocli.IO
	data    data.Service
	queue   queue.Service
	syncer  Syncer
	remote  Remote
	account string
}

// New creates a command set. syncer and remote may be nil for local-only commands.
func New(io iocli.IO, dataService data.Service, q queue.Service, syncer Syncer, remote Remote, account string) *Cli {
	return &Cli{
		io:      io,
		data:    dataService,
		queue:   q,
		syncer:  syncer,
		remote:  remote,
		account: account,
	}
}

// confirm asks a yes/no question
func (c *Cli) confirm(question string) (bool, error) {
	answer, err := c.io.ReadInput(question + " (yes/no): ")
	if err != nil {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}
	return answer == "yes" || answer == "y", nil
}

// printPending выводит размер очереди после изменения
func (c *Cli) printPending(ctx context.Context) {
	count, err := c.queue.PendingCount(ctx)
	if err != nil {
		c.io.Printf("Warning: failed to count pending changes: %v\n", err)
		return
	}
	c.io.Printf("Pending sync: %d change(s)\n", count)
}

func parseKind(kind string) (models.EntityType, error) {
	switch kind {
	case "templates":
		kind = string(models.EntityTypeTemplate)
	case "instances", "workout", "workouts":
		kind = string(models.EntityTypeInstance)
	case "logs":
		kind = string(models.EntityTypeLog)
	}
	t, err := models.ParseEntityType(kind)
	if err != nil {
		return "", fmt.Errorf("unknown data type %q. Use: template, instance or log", kind)
	}
	return t, nil
}
