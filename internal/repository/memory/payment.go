package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mealbridge/mealbridge-api/internal/model"
	"github.com/mealbridge/mealbridge-api/internal/repository"
)

type paymentRepository struct {
	mu      sync.Mutex
	records []*model.PaymentRecord
}

func NewPaymentRepository() repository.PaymentRepository {
	return &paymentRepository{}
}

func (r *paymentRepository) Create(_ context.Context, record *model.PaymentRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	cp := *record
	r.records = append(r.records, &cp)
	return nil
}

func (r *paymentRepository) List(_ context.Context) ([]*model.PaymentRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*model.PaymentRecord, 0, len(r.records))
	for i := len(r.records) - 1; i >= 0; i-- {
		cp := *r.records[i]
		out = append(out, &cp)
	}
	return out, nil
}
