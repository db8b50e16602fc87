package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/google/uuid"

	"github.com/mealbridge/mealbridge-api/internal/model"
	"github.com/mealbridge/mealbridge-api/internal/repository"
)

const listKey = "donations:list"

// DonationRepository is a read-through cache over another donation
// repository. Every write flushes the cache, so reads never observe stale
// state. The cache is an internal optimization; callers see only the
// repository contract.
type DonationRepository struct {
	inner repository.DonationRepository
	cache *gocache.Cache
}

func NewDonationRepository(inner repository.DonationRepository, ttl time.Duration) *DonationRepository {
	return &DonationRepository{
		inner: inner,
		cache: gocache.New(ttl, 2*ttl),
	}
}

func (r *DonationRepository) Create(ctx context.Context, donation *model.Donation) error {
	if err := r.inner.Create(ctx, donation); err != nil {
		return err
	}
	r.cache.Flush()
	return nil
}

func (r *DonationRepository) Get(ctx context.Context, id uuid.UUID) (*model.Donation, error) {
	if cached, ok := r.cache.Get(id.String()); ok {
		return cached.(*model.Donation), nil
	}

	donation, err := r.inner.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	r.cache.SetDefault(id.String(), donation)
	return donation, nil
}

func (r *DonationRepository) Transition(ctx context.Context, id uuid.UUID, status model.DonationStatus) (*model.Donation, error) {
	donation, err := r.inner.Transition(ctx, id, status)
	if err != nil {
		return nil, err
	}
	r.cache.Flush()
	return donation, nil
}

func (r *DonationRepository) List(ctx context.Context) ([]*model.Donation, error) {
	if cached, ok := r.cache.Get(listKey); ok {
		return cached.([]*model.Donation), nil
	}

	donations, err := r.inner.List(ctx)
	if err != nil {
		return nil, err
	}
	r.cache.SetDefault(listKey, donations)
	return donations, nil
}
