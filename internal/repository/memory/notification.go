package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mealbridge/mealbridge-api/internal/model"
	"github.com/mealbridge/mealbridge-api/internal/repository"
	apperrors "github.com/mealbridge/mealbridge-api/pkg/errors"
)

type notificationRepository struct {
	mu            sync.Mutex
	notifications map[uuid.UUID]*model.Notification
	order         []uuid.UUID
}

func NewNotificationRepository() repository.NotificationRepository {
	return &notificationRepository{notifications: make(map[uuid.UUID]*model.Notification)}
}

func (r *notificationRepository) Create(_ context.Context, notification *model.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if notification.ID == uuid.Nil {
		notification.ID = uuid.New()
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}

	cp := *notification
	r.notifications[notification.ID] = &cp
	r.order = append(r.order, notification.ID)
	return nil
}

func (r *notificationRepository) Get(_ context.Context, id uuid.UUID) (*model.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	notification, ok := r.notifications[id]
	if !ok {
		return nil, apperrors.NewNotFound("notification", nil)
	}
	cp := *notification
	return &cp, nil
}

func (r *notificationRepository) ListForTarget(_ context.Context, role model.Role, accountID *uuid.UUID) ([]*model.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []*model.Notification{}
	for i := len(r.order) - 1; i >= 0; i-- {
		n := r.notifications[r.order[i]]
		if n.VisibleTo(role, accountID) {
			cp := *n
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *notificationRepository) MarkRead(_ context.Context, id uuid.UUID) (*model.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	notification, ok := r.notifications[id]
	if !ok {
		return nil, apperrors.NewNotFound("notification", nil)
	}

	notification.Read = true
	cp := *notification
	return &cp, nil
}
