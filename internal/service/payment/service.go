package payment

import (
	"context"
	"strings"
	"time"

	"github.com/mealbridge/mealbridge-api/internal/model"
	"github.com/mealbridge/mealbridge-api/internal/payment"
	"github.com/mealbridge/mealbridge-api/internal/repository"
	"github.com/mealbridge/mealbridge-api/pkg/circuitbreaker"
	apperrors "github.com/mealbridge/mealbridge-api/pkg/errors"
	"github.com/mealbridge/mealbridge-api/pkg/logger"
	"github.com/mealbridge/mealbridge-api/pkg/metrics"
)

const defaultCurrency = "usd"

// Service creates monetary-donation payment intents. A record is written
// only after the provider confirms intent creation, so a failed upstream
// call never dirties the ledger.
type Service struct {
	paymentRepo repository.PaymentRepository
	provider    payment.Provider
	cb          *circuitbreaker.CircuitBreaker
	metrics     *metrics.Metrics
	logger      *logger.Logger
}

func NewService(paymentRepo repository.PaymentRepository, provider payment.Provider,
	m *metrics.Metrics, logger *logger.Logger) *Service {
	return &Service{
		paymentRepo: paymentRepo,
		provider:    provider,
		cb: circuitbreaker.New(circuitbreaker.Settings{
			Name:        "payment-provider",
			MaxFailures: 5,
			Timeout:     30 * time.Second,
		}),
		metrics: m,
		logger:  logger,
	}
}

func (s *Service) CreateIntent(ctx context.Context, req *model.CreateIntentRequest) (*model.IntentResponse, error) {
	if req.Amount <= 0 {
		return nil, apperrors.NewInvalidInput("amount must be positive", nil)
	}
	currency := strings.ToLower(req.Currency)
	if currency == "" {
		currency = defaultCurrency
	}

	var intent *payment.Intent
	err := s.cb.Execute(func() error {
		var err error
		intent, err = s.provider.CreateIntent(ctx, req.Amount, currency)
		return err
	})
	if err != nil {
		s.metrics.PaymentIntents.WithLabelValues("failed").Inc()
		return nil, apperrors.NewUpstream("payment provider call failed", err)
	}

	record := &model.PaymentRecord{
		AccountID:   req.AccountID,
		Amount:      req.Amount,
		Currency:    currency,
		ProviderRef: intent.ID,
		Status:      intent.Status,
	}
	if err := s.paymentRepo.Create(ctx, record); err != nil {
		// The intent exists upstream; surface the storage failure rather
		// than pretend the record was kept.
		return nil, apperrors.NewInternal(err)
	}

	s.metrics.PaymentIntents.WithLabelValues("created").Inc()
	s.logger.Info("payment intent created", "provider_ref", intent.ID, "amount", req.Amount)

	return &model.IntentResponse{
		ClientSecret: intent.ClientSecret,
		ProviderRef:  intent.ID,
		Status:       intent.Status,
	}, nil
}
