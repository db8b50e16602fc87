package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/mealbridge/mealbridge-api/internal/model"
	"github.com/mealbridge/mealbridge-api/internal/repository"
	apperrors "github.com/mealbridge/mealbridge-api/pkg/errors"
)

type notificationRepository struct {
	BaseRepository
}

func NewNotificationRepository(db *sqlx.DB) repository.NotificationRepository {
	return &notificationRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *notificationRepository) Create(ctx context.Context, notification *model.Notification) error {
	if notification.ID == uuid.Nil {
		notification.ID = uuid.New()
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO notifications (
			id, donation_id, target_role, target_account_id,
			message, read, created_at
		) VALUES (
			:id, :donation_id, :target_role, :target_account_id,
			:message, :read, :created_at
		)
	`
	_, err := r.db.NamedExecContext(ctx, query, notification)
	return err
}

func (r *notificationRepository) Get(ctx context.Context, id uuid.UUID) (*model.Notification, error) {
	var notification model.Notification
	err := r.db.GetContext(ctx, &notification,
		`SELECT * FROM notifications WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFound("notification", err)
	}
	if err != nil {
		return nil, err
	}
	return &notification, nil
}

// ListForTarget returns role-wide broadcasts plus narrowcasts aimed at the
// given account. A nil accountID sees every notification for the role.
func (r *notificationRepository) ListForTarget(ctx context.Context, role model.Role, accountID *uuid.UUID) ([]*model.Notification, error) {
	notifications := []*model.Notification{}
	var err error
	if accountID == nil {
		err = r.db.SelectContext(ctx, &notifications, `
			SELECT * FROM notifications
			WHERE target_role = $1
			ORDER BY created_at DESC`, role)
	} else {
		err = r.db.SelectContext(ctx, &notifications, `
			SELECT * FROM notifications
			WHERE target_role = $1
			  AND (target_account_id IS NULL OR target_account_id = $2)
			ORDER BY created_at DESC`, role, *accountID)
	}
	return notifications, err
}

func (r *notificationRepository) MarkRead(ctx context.Context, id uuid.UUID) (*model.Notification, error) {
	var notification model.Notification
	err := r.db.GetContext(ctx, &notification,
		`UPDATE notifications SET read = TRUE WHERE id = $1 RETURNING *`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFound("notification", err)
	}
	if err != nil {
		return nil, err
	}
	return &notification, nil
}
