// Package memory holds in-memory repository implementations. They back the
// service test suites and mirror the semantics of the Postgres
// implementations, including ordering and error kinds.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mealbridge/mealbridge-api/internal/model"
	"github.com/mealbridge/mealbridge-api/internal/repository"
	apperrors "github.com/mealbridge/mealbridge-api/pkg/errors"
)

type accountRepository struct {
	mu       sync.RWMutex
	accounts map[uuid.UUID]*model.Account
	order    []uuid.UUID
}

func NewAccountRepository() repository.AccountRepository {
	return &accountRepository{accounts: make(map[uuid.UUID]*model.Account)}
}

func (r *accountRepository) Create(_ context.Context, account *model.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now()
	}

	cp := *account
	r.accounts[account.ID] = &cp
	r.order = append(r.order, account.ID)
	return nil
}

func (r *accountRepository) Get(_ context.Context, id uuid.UUID) (*model.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[id]
	if !ok {
		return nil, apperrors.NewNotFound("account", nil)
	}
	cp := *account
	return &cp, nil
}

func (r *accountRepository) GetByEmail(_ context.Context, email string) (*model.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		if strings.EqualFold(r.accounts[id].Email, email) {
			cp := *r.accounts[id]
			return &cp, nil
		}
	}
	return nil, apperrors.NewNotFound("account", nil)
}

func (r *accountRepository) List(_ context.Context) ([]*model.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*model.Account, 0, len(r.order))
	for _, id := range r.order {
		cp := *r.accounts[id]
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *accountRepository) ListByRole(ctx context.Context, role model.Role) ([]*model.Account, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*model.Account, 0, len(all))
	for _, a := range all {
		if a.Role == role {
			out = append(out, a)
		}
	}
	return out, nil
}
