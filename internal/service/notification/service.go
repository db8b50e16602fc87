package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mealbridge/mealbridge-api/internal/email"
	"github.com/mealbridge/mealbridge-api/internal/model"
	"github.com/mealbridge/mealbridge-api/internal/repository"
	apperrors "github.com/mealbridge/mealbridge-api/pkg/errors"
	"github.com/mealbridge/mealbridge-api/pkg/logger"
	"github.com/mealbridge/mealbridge-api/pkg/messaging"
	"github.com/mealbridge/mealbridge-api/pkg/metrics"
)

// Service routes donation notifications to roles and accounts
type Service struct {
	notificationRepo repository.NotificationRepository
	donationRepo     repository.DonationRepository
	accountRepo      repository.AccountRepository
	emailSvc         email.Service
	broker           messaging.Broker
	metrics          *metrics.Metrics
	logger           *logger.Logger
}

func NewService(notificationRepo repository.NotificationRepository,
	donationRepo repository.DonationRepository, accountRepo repository.AccountRepository,
	emailSvc email.Service, broker messaging.Broker, m *metrics.Metrics,
	logger *logger.Logger) *Service {
	return &Service{
		notificationRepo: notificationRepo,
		donationRepo:     donationRepo,
		accountRepo:      accountRepo,
		emailSvc:         emailSvc,
		broker:           broker,
		metrics:          m,
		logger:           logger,
	}
}

// RequestPickup broadcasts a pickup request for the donation to every
// organization account. The message embeds quantity, category and the
// donor's coordinates when known.
func (s *Service) RequestPickup(ctx context.Context, donationID uuid.UUID) (*model.Notification, error) {
	donation, err := s.donationRepo.Get(ctx, donationID)
	if err != nil {
		return nil, err
	}

	notification := &model.Notification{
		Base:       model.Base{ID: uuid.New()},
		DonationID: donation.ID,
		TargetRole: model.RoleOrganization,
		Message:    pickupMessage(donation),
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return nil, apperrors.NewInternal(fmt.Errorf("failed to create notification: %w", err))
	}

	s.metrics.NotificationsCreated.WithLabelValues(string(notification.TargetRole)).Inc()

	msg := messaging.Message{Type: "notification.created", Payload: notification}
	if err := s.broker.Publish(ctx, messaging.ChannelNotifications, msg); err != nil {
		s.logger.Warn("failed to publish notification event", "notification_id", notification.ID.String())
	}

	s.fanOutEmail(ctx, notification)

	return notification, nil
}

// ListFor applies the broadcast-or-narrowcast filter: role-wide
// notifications are visible to every account holding the role, narrowcasts
// only to their target.
func (s *Service) ListFor(ctx context.Context, role model.Role, accountID *uuid.UUID) ([]*model.Notification, error) {
	return s.notificationRepo.ListForTarget(ctx, role, accountID)
}

// MarkRead flips the read flag. Idempotent: re-marking an already-read
// notification succeeds. Accounts may only mark notifications targeted at
// them.
func (s *Service) MarkRead(ctx context.Context, id, accountID uuid.UUID, role model.Role) (*model.Notification, error) {
	notification, err := s.notificationRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !notification.VisibleTo(role, &accountID) {
		return nil, apperrors.NewForbidden("notification is not addressed to this account", nil)
	}
	return s.notificationRepo.MarkRead(ctx, id)
}

func pickupMessage(d *model.Donation) string {
	location := "location unavailable"
	if d.DonorLat != nil && d.DonorLng != nil {
		location = fmt.Sprintf("%.4f, %.4f", *d.DonorLat, *d.DonorLng)
	}
	return fmt.Sprintf("Pickup requested: %d x %s. Donor location: %s", d.Quantity, d.Category, location)
}

// fanOutEmail mails every account holding the target role. Best-effort;
// a delivery failure never fails the pickup request.
func (s *Service) fanOutEmail(ctx context.Context, n *model.Notification) {
	accounts, err := s.accountRepo.ListByRole(ctx, n.TargetRole)
	if err != nil {
		s.logger.Warn("failed to list accounts for email fan-out", "role", string(n.TargetRole))
		return
	}
	for _, account := range accounts {
		if n.TargetAccountID != nil && *n.TargetAccountID != account.ID {
			continue
		}
		if err := s.emailSvc.Send(account.Email, "Pickup requested", n.Message); err != nil {
			s.logger.Warn("failed to send notification email", "account_id", account.ID.String())
		}
	}
}
