package notification

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealbridge/mealbridge-api/internal/email"
	"github.com/mealbridge/mealbridge-api/internal/model"
	"github.com/mealbridge/mealbridge-api/internal/repository"
	"github.com/mealbridge/mealbridge-api/internal/repository/memory"
	apperrors "github.com/mealbridge/mealbridge-api/pkg/errors"
	"github.com/mealbridge/mealbridge-api/pkg/logger"
	"github.com/mealbridge/mealbridge-api/pkg/messaging"
	"github.com/mealbridge/mealbridge-api/pkg/metrics"
)

var testMetrics = metrics.NewMetrics("notification_test")

type fixture struct {
	svc          *Service
	donationRepo repository.DonationRepository
	accountRepo  repository.AccountRepository
}

func newFixture() *fixture {
	log := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Output: io.Discard})
	donationRepo := memory.NewDonationRepository()
	accountRepo := memory.NewAccountRepository()
	svc := NewService(memory.NewNotificationRepository(), donationRepo, accountRepo,
		email.NoopService{}, messaging.NoopBroker{}, testMetrics, log)
	return &fixture{svc: svc, donationRepo: donationRepo, accountRepo: accountRepo}
}

func (f *fixture) addDonation(t *testing.T, lat, lng *float64) *model.Donation {
	t.Helper()
	d := &model.Donation{
		DonorID:    uuid.New(),
		Category:   "cooked meals",
		Quantity:   25,
		ExpiryDate: "2026-09-15",
		DonorLat:   lat,
		DonorLng:   lng,
	}
	require.NoError(t, f.donationRepo.Create(context.Background(), d))
	return d
}

func ptr(v float64) *float64 { return &v }

func TestRequestPickupEmbedsCoordinates(t *testing.T) {
	f := newFixture()
	d := f.addDonation(t, ptr(12.97), ptr(77.59))

	n, err := f.svc.RequestPickup(context.Background(), d.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleOrganization, n.TargetRole)
	assert.Nil(t, n.TargetAccountID)
	assert.False(t, n.Read)
	assert.Contains(t, n.Message, "12.9700")
	assert.Contains(t, n.Message, "77.5900")
	assert.Contains(t, n.Message, "25 x cooked meals")
}

func TestRequestPickupWithoutLocation(t *testing.T) {
	f := newFixture()
	d := f.addDonation(t, nil, nil)

	n, err := f.svc.RequestPickup(context.Background(), d.ID)
	require.NoError(t, err)
	assert.Contains(t, n.Message, "location unavailable")
}

func TestRequestPickupUnknownDonation(t *testing.T) {
	f := newFixture()

	_, err := f.svc.RequestPickup(context.Background(), uuid.New())
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound), "got %v", err)
}

func TestBroadcastVisibleToEveryOrganizationAccount(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	d := f.addDonation(t, ptr(12.97), ptr(77.59))

	n, err := f.svc.RequestPickup(ctx, d.ID)
	require.NoError(t, err)

	// Two different organization accounts both see the broadcast, and so
	// does a caller with no account narrowing.
	for _, accountID := range []*uuid.UUID{nil, ptrUUID(uuid.New()), ptrUUID(uuid.New())} {
		list, err := f.svc.ListFor(ctx, model.RoleOrganization, accountID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, n.ID, list[0].ID)
	}

	// Donors do not see organization broadcasts.
	list, err := f.svc.ListFor(ctx, model.RoleDonor, nil)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestNarrowcastOnlyVisibleToTarget(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	d := f.addDonation(t, nil, nil)
	target := uuid.New()

	repo := memory.NewNotificationRepository()
	log := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Output: io.Discard})
	svc := NewService(repo, f.donationRepo, f.accountRepo,
		email.NoopService{}, messaging.NoopBroker{}, testMetrics, log)

	require.NoError(t, repo.Create(ctx, &model.Notification{
		DonationID:      d.ID,
		TargetRole:      model.RoleDonor,
		TargetAccountID: &target,
		Message:         "your donation was accepted",
	}))

	list, err := svc.ListFor(ctx, model.RoleDonor, &target)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	other := uuid.New()
	list, err = svc.ListFor(ctx, model.RoleDonor, &other)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestMarkReadIsIdempotent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	d := f.addDonation(t, nil, nil)

	n, err := f.svc.RequestPickup(ctx, d.ID)
	require.NoError(t, err)

	orgAccount := uuid.New()
	first, err := f.svc.MarkRead(ctx, n.ID, orgAccount, model.RoleOrganization)
	require.NoError(t, err)
	assert.True(t, first.Read)

	second, err := f.svc.MarkRead(ctx, n.ID, orgAccount, model.RoleOrganization)
	require.NoError(t, err)
	assert.True(t, second.Read)
}

func TestMarkReadForbiddenForWrongRole(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	d := f.addDonation(t, nil, nil)

	n, err := f.svc.RequestPickup(ctx, d.ID)
	require.NoError(t, err)

	_, err = f.svc.MarkRead(ctx, n.ID, uuid.New(), model.RoleDonor)
	assert.True(t, apperrors.Is(err, apperrors.ErrForbidden), "got %v", err)
}

func TestMarkReadUnknownNotification(t *testing.T) {
	f := newFixture()

	_, err := f.svc.MarkRead(context.Background(), uuid.New(), uuid.New(), model.RoleOrganization)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound), "got %v", err)
}

func ptrUUID(id uuid.UUID) *uuid.UUID { return &id }
