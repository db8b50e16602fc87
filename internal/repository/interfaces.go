package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/mealbridge/mealbridge-api/internal/model"
)

// All repository interfaces in one file
type (
	// AccountRepository handles account persistence. Email lookups are
	// case-insensitive.
	AccountRepository interface {
		Create(ctx context.Context, account *model.Account) error
		Get(ctx context.Context, id uuid.UUID) (*model.Account, error)
		GetByEmail(ctx context.Context, email string) (*model.Account, error)
		List(ctx context.Context) ([]*model.Account, error)
		ListByRole(ctx context.Context, role model.Role) ([]*model.Account, error)
	}

	// DonationRepository handles donation persistence. Transition enforces
	// the forward-only lifecycle atomically; implementations must serialize
	// concurrent transitions on the same donation.
	DonationRepository interface {
		Create(ctx context.Context, donation *model.Donation) error
		Get(ctx context.Context, id uuid.UUID) (*model.Donation, error)
		Transition(ctx context.Context, id uuid.UUID, status model.DonationStatus) (*model.Donation, error)
		List(ctx context.Context) ([]*model.Donation, error)
	}

	// NotificationRepository handles notification persistence
	NotificationRepository interface {
		Create(ctx context.Context, notification *model.Notification) error
		Get(ctx context.Context, id uuid.UUID) (*model.Notification, error)
		ListForTarget(ctx context.Context, role model.Role, accountID *uuid.UUID) ([]*model.Notification, error)
		MarkRead(ctx context.Context, id uuid.UUID) (*model.Notification, error)
	}

	// PaymentRepository handles payment record persistence
	PaymentRepository interface {
		Create(ctx context.Context, record *model.PaymentRecord) error
		List(ctx context.Context) ([]*model.PaymentRecord, error)
	}
)
