package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/mealbridge/mealbridge-api/internal/model"
	"github.com/mealbridge/mealbridge-api/internal/repository"
	apperrors "github.com/mealbridge/mealbridge-api/pkg/errors"
)

type donationRepository struct {
	BaseRepository
}

func NewDonationRepository(db *sqlx.DB) repository.DonationRepository {
	return &donationRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *donationRepository) Create(ctx context.Context, donation *model.Donation) error {
	if donation.ID == uuid.Nil {
		donation.ID = uuid.New()
	}
	if donation.CreatedAt.IsZero() {
		donation.CreatedAt = time.Now()
	}
	if donation.Status == "" {
		donation.Status = model.DonationStatusPending
	}

	query := `
		INSERT INTO donations (
			id, donor_id, category, quantity, expiry_date,
			donor_lat, donor_lng, receiver_lat, receiver_lng,
			status, created_at
		) VALUES (
			:id, :donor_id, :category, :quantity, :expiry_date,
			:donor_lat, :donor_lng, :receiver_lat, :receiver_lng,
			:status, :created_at
		)
	`
	_, err := r.db.NamedExecContext(ctx, query, donation)
	return err
}

func (r *donationRepository) Get(ctx context.Context, id uuid.UUID) (*model.Donation, error) {
	var donation model.Donation
	err := r.db.GetContext(ctx, &donation, `SELECT * FROM donations WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFound("donation", err)
	}
	if err != nil {
		return nil, err
	}
	return &donation, nil
}

// Transition updates the donation status inside a transaction with a row
// lock, so concurrent transitions on the same donation serialize instead of
// losing updates. Backward moves are rejected.
func (r *donationRepository) Transition(ctx context.Context, id uuid.UUID, status model.DonationStatus) (*model.Donation, error) {
	var donation model.Donation
	err := r.WithTx(ctx, func(tx *sqlx.Tx) error {
		var current model.DonationStatus
		err := tx.GetContext(ctx, &current,
			`SELECT status FROM donations WHERE id = $1 FOR UPDATE`, id)
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NewNotFound("donation", err)
		}
		if err != nil {
			return err
		}

		if !current.CanAdvanceTo(status) {
			return apperrors.NewInvalidInput(
				fmt.Sprintf("cannot transition donation from %s to %s", current, status),
				model.ErrStatusRegression,
			)
		}

		return tx.GetContext(ctx, &donation,
			`UPDATE donations SET status = $1 WHERE id = $2 RETURNING *`, status, id)
	})
	if err != nil {
		return nil, err
	}
	return &donation, nil
}

func (r *donationRepository) List(ctx context.Context) ([]*model.Donation, error) {
	donations := []*model.Donation{}
	err := r.db.SelectContext(ctx, &donations,
		`SELECT * FROM donations ORDER BY created_at DESC`)
	return donations, err
}
