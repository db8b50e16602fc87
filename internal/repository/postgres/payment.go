package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/mealbridge/mealbridge-api/internal/model"
	"github.com/mealbridge/mealbridge-api/internal/repository"
)

type paymentRepository struct {
	BaseRepository
}

func NewPaymentRepository(db *sqlx.DB) repository.PaymentRepository {
	return &paymentRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *paymentRepository) Create(ctx context.Context, record *model.PaymentRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO payments (id, account_id, amount, currency, provider_ref, status, created_at)
		VALUES (:id, :account_id, :amount, :currency, :provider_ref, :status, :created_at)
	`
	_, err := r.db.NamedExecContext(ctx, query, record)
	return err
}

func (r *paymentRepository) List(ctx context.Context) ([]*model.PaymentRecord, error) {
	records := []*model.PaymentRecord{}
	err := r.db.SelectContext(ctx, &records,
		`SELECT * FROM payments ORDER BY created_at DESC`)
	return records, err
}
