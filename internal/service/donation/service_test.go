package donation

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealbridge/mealbridge-api/internal/model"
	"github.com/mealbridge/mealbridge-api/internal/repository/memory"
	apperrors "github.com/mealbridge/mealbridge-api/pkg/errors"
	"github.com/mealbridge/mealbridge-api/pkg/logger"
	"github.com/mealbridge/mealbridge-api/pkg/messaging"
	"github.com/mealbridge/mealbridge-api/pkg/metrics"
)

var testMetrics = metrics.NewMetrics("donation_test")

func newTestService() *Service {
	log := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Output: io.Discard})
	return NewService(memory.NewDonationRepository(), messaging.NoopBroker{}, testMetrics, log)
}

func validRequest() *model.CreateDonationRequest {
	return &model.CreateDonationRequest{
		Category:   "cooked meals",
		Quantity:   1,
		ExpiryDate: "2026-09-15",
	}
}

func TestSubmitStartsPending(t *testing.T) {
	svc := newTestService()

	d, err := svc.Submit(context.Background(), uuid.New(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, model.DonationStatusPending, d.Status)
	assert.Equal(t, 1, d.Quantity)
	assert.NotEqual(t, uuid.Nil, d.ID)
}

func TestSubmitRejectsBadInput(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	donor := uuid.New()

	for name, mutate := range map[string]func(*model.CreateDonationRequest){
		"zero quantity":     func(r *model.CreateDonationRequest) { r.Quantity = 0 },
		"negative quantity": func(r *model.CreateDonationRequest) { r.Quantity = -3 },
		"empty category":    func(r *model.CreateDonationRequest) { r.Category = "" },
		"empty expiry":      func(r *model.CreateDonationRequest) { r.ExpiryDate = "" },
	} {
		t.Run(name, func(t *testing.T) {
			req := validRequest()
			mutate(req)
			_, err := svc.Submit(ctx, donor, req)
			assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput), "got %v", err)
		})
	}
}

func TestTransitionForwardOnly(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	d, err := svc.Submit(ctx, uuid.New(), validRequest())
	require.NoError(t, err)

	d, err = svc.Transition(ctx, d.ID, model.DonationStatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, model.DonationStatusAccepted, d.Status)

	d, err = svc.Transition(ctx, d.ID, model.DonationStatusDistributed)
	require.NoError(t, err)
	assert.Equal(t, model.DonationStatusDistributed, d.Status)

	_, err = svc.Transition(ctx, d.ID, model.DonationStatusPending)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput), "got %v", err)
}

func TestTransitionIsIdempotentOnSameStatus(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	d, err := svc.Submit(ctx, uuid.New(), validRequest())
	require.NoError(t, err)

	_, err = svc.Transition(ctx, d.ID, model.DonationStatusAccepted)
	require.NoError(t, err)
	d, err = svc.Transition(ctx, d.ID, model.DonationStatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, model.DonationStatusAccepted, d.Status)
}

func TestTransitionRejectsUnknownStatus(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	d, err := svc.Submit(ctx, uuid.New(), validRequest())
	require.NoError(t, err)

	_, err = svc.Transition(ctx, d.ID, model.DonationStatus("misplaced"))
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput), "got %v", err)
}

func TestTransitionUnknownDonation(t *testing.T) {
	svc := newTestService()

	_, err := svc.Transition(context.Background(), uuid.New(), model.DonationStatusAccepted)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound), "got %v", err)
}

func TestListNewestFirst(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	donor := uuid.New()

	first, err := svc.Submit(ctx, donor, validRequest())
	require.NoError(t, err)
	time.Sleep(time.Millisecond)
	second, err := svc.Submit(ctx, donor, validRequest())
	require.NoError(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
}
