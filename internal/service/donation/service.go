package donation

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mealbridge/mealbridge-api/internal/model"
	"github.com/mealbridge/mealbridge-api/internal/repository"
	apperrors "github.com/mealbridge/mealbridge-api/pkg/errors"
	"github.com/mealbridge/mealbridge-api/pkg/logger"
	"github.com/mealbridge/mealbridge-api/pkg/messaging"
	"github.com/mealbridge/mealbridge-api/pkg/metrics"
)

// Service is the donation ledger: it records submissions and enforces the
// forward-only status lifecycle.
type Service struct {
	donationRepo repository.DonationRepository
	broker       messaging.Broker
	metrics      *metrics.Metrics
	logger       *logger.Logger
}

func NewService(donationRepo repository.DonationRepository, broker messaging.Broker,
	m *metrics.Metrics, logger *logger.Logger) *Service {
	return &Service{
		donationRepo: donationRepo,
		broker:       broker,
		metrics:      m,
		logger:       logger,
	}
}

func (s *Service) Submit(ctx context.Context, donorID uuid.UUID, req *model.CreateDonationRequest) (*model.Donation, error) {
	if req.Quantity <= 0 {
		return nil, apperrors.NewInvalidInput("quantity must be a positive integer", nil)
	}
	if req.Category == "" || req.ExpiryDate == "" {
		return nil, apperrors.NewInvalidInput("category and expiry date are required", nil)
	}

	donation := &model.Donation{
		Base:        model.Base{ID: uuid.New()},
		DonorID:     donorID,
		Category:    req.Category,
		Quantity:    req.Quantity,
		ExpiryDate:  req.ExpiryDate,
		DonorLat:    req.DonorLat,
		DonorLng:    req.DonorLng,
		ReceiverLat: req.ReceiverLat,
		ReceiverLng: req.ReceiverLng,
		Status:      model.DonationStatusPending,
	}

	if err := s.donationRepo.Create(ctx, donation); err != nil {
		return nil, apperrors.NewInternal(fmt.Errorf("failed to create donation: %w", err))
	}

	s.metrics.DonationsSubmitted.Inc()
	s.publish(ctx, "donation.submitted", donation)

	return donation, nil
}

// Transition moves a donation forward through its lifecycle. Unknown
// statuses are rejected here; the repository rejects backward moves and
// serializes concurrent writers.
func (s *Service) Transition(ctx context.Context, id uuid.UUID, status model.DonationStatus) (*model.Donation, error) {
	if !status.Valid() {
		return nil, apperrors.NewInvalidInput(fmt.Sprintf("invalid status %q", status), nil)
	}

	donation, err := s.donationRepo.Transition(ctx, id, status)
	if err != nil {
		return nil, err
	}

	s.metrics.DonationTransitions.WithLabelValues(string(status)).Inc()
	s.publish(ctx, "donation.status_changed", donation)

	return donation, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Donation, error) {
	return s.donationRepo.Get(ctx, id)
}

// List returns every donation, newest first
func (s *Service) List(ctx context.Context) ([]*model.Donation, error) {
	return s.donationRepo.List(ctx)
}

// publish emits a ledger event best-effort; a broker failure never fails
// the originating request.
func (s *Service) publish(ctx context.Context, eventType string, donation *model.Donation) {
	msg := messaging.Message{Type: eventType, Payload: donation}
	if err := s.broker.Publish(ctx, messaging.ChannelDonations, msg); err != nil {
		s.logger.Warn("failed to publish donation event", "type", eventType, "donation_id", donation.ID.String())
	}
}
