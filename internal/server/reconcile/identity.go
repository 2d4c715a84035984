package reconcile

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/iudanet/gymsync/internal/models"
	"github.com/iudanet/gymsync/internal/retry"
	"github.com/iudanet/gymsync/internal/server/storage"
)

// ResolveAccount returns the canonical account id for ref.
// A canonical ref is returned unchanged. A handle is looked up and, when
// create is true, an account is created for it; a concurrent create of the
// same handle is resolved by looking the handle up again.
// With create=false an unknown handle yields storage.ErrAccountNotFound.
func (s *Service) ResolveAccount(ctx context.Context, ref models.AccountRef, create bool) (string, error) {
	if ref.IsCanonical() {
		return ref.Value, nil
	}

	// Параллельные запросы с одним handle внутри процесса схлопываются
	key := ref.Value + "|" + strconv.FormatBool(create)
	// Общий вызов не зависит от отмены контекста того, кто пришел первым
	ch := s.group.DoChan(key, func() (any, error) {
		return s.resolveHandle(context.WithoutCancel(ctx), ref.Value, create)
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		return "", res.Err
	}

	if res.Shared {
		s.logger.Debug("Account resolution shared", "handle", ref.Value)
	}

	return res.Val.(string), nil
}

func (s *Service) resolveHandle(ctx context.Context, handle string, create bool) (string, error) {
	var id string

	err := retry.Do(ctx, s.retryPolicy, func(ctx context.Context) error {
		account, err := s.store.GetAccountByHandle(ctx, handle)
		if err == nil {
			id = account.ID
			return nil
		}
		if !errors.Is(err, storage.ErrAccountNotFound) {
			return err
		}
		if !create {
			return retry.Permanent(err)
		}

		account = &models.Account{
			ID:        uuid.NewString(),
			Handle:    handle,
			CreatedAt: s.now().UTC(),
		}
		err = s.store.CreateAccount(ctx, account)
		if err == nil {
			s.logger.Info("Account created", "account_id", account.ID, "handle", handle)
			id = account.ID
			return nil
		}
		if !errors.Is(err, storage.ErrAccountAlreadyExists) {
			return err
		}

		// Гонка создания: аккаунт уже создан другим запросом
		existing, err := s.store.GetAccountByHandle(ctx, handle)
		if err != nil {
			return err
		}
		id = existing.ID
		return nil
	})

	switch {
	case err == nil:
		return id, nil
	case errors.Is(err, retry.ErrExhausted):
		s.logger.Error("Account resolution exhausted", "handle", handle, "error", err)
		return "", fmt.Errorf("%w: %w", ErrIdentityResolutionExhausted, err)
	default:
		return "", err
	}
}
