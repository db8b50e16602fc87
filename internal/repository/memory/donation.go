package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mealbridge/mealbridge-api/internal/model"
	"github.com/mealbridge/mealbridge-api/internal/repository"
	apperrors "github.com/mealbridge/mealbridge-api/pkg/errors"
)

type donationRepository struct {
	mu        sync.Mutex
	donations map[uuid.UUID]*model.Donation
	order     []uuid.UUID
}

func NewDonationRepository() repository.DonationRepository {
	return &donationRepository{donations: make(map[uuid.UUID]*model.Donation)}
}

func (r *donationRepository) Create(_ context.Context, donation *model.Donation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if donation.ID == uuid.Nil {
		donation.ID = uuid.New()
	}
	if donation.CreatedAt.IsZero() {
		donation.CreatedAt = time.Now()
	}
	if donation.Status == "" {
		donation.Status = model.DonationStatusPending
	}

	cp := *donation
	r.donations[donation.ID] = &cp
	r.order = append(r.order, donation.ID)
	return nil
}

func (r *donationRepository) Get(_ context.Context, id uuid.UUID) (*model.Donation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	donation, ok := r.donations[id]
	if !ok {
		return nil, apperrors.NewNotFound("donation", nil)
	}
	cp := *donation
	return &cp, nil
}

func (r *donationRepository) Transition(_ context.Context, id uuid.UUID, status model.DonationStatus) (*model.Donation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	donation, ok := r.donations[id]
	if !ok {
		return nil, apperrors.NewNotFound("donation", nil)
	}
	if !donation.Status.CanAdvanceTo(status) {
		return nil, apperrors.NewInvalidInput(
			fmt.Sprintf("cannot transition donation from %s to %s", donation.Status, status),
			model.ErrStatusRegression,
		)
	}

	donation.Status = status
	cp := *donation
	return &cp, nil
}

func (r *donationRepository) List(_ context.Context) ([]*model.Donation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*model.Donation, 0, len(r.order))
	// Reverse insertion order so equal timestamps still list newest first.
	for i := len(r.order) - 1; i >= 0; i-- {
		cp := *r.donations[r.order[i]]
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
