package auth

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealbridge/mealbridge-api/internal/model"
	"github.com/mealbridge/mealbridge-api/internal/repository/memory"
	"github.com/mealbridge/mealbridge-api/pkg/auth"
	apperrors "github.com/mealbridge/mealbridge-api/pkg/errors"
	"github.com/mealbridge/mealbridge-api/pkg/logger"
	"github.com/mealbridge/mealbridge-api/pkg/security"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	codec, err := auth.NewCodec("test-secret", 0)
	require.NoError(t, err)
	log := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Output: io.Discard})
	return NewService(memory.NewAccountRepository(), security.NewBcryptHasher(4), codec, log)
}

func registerReq(email string, role model.Role) *model.RegisterRequest {
	return &model.RegisterRequest{
		Name:     "Asha",
		Email:    email,
		Password: "correct-horse",
		Role:     role,
	}
}

func TestRegisterAndLookup(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, registerReq("asha@example.org", model.RoleDonor))
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, model.RoleDonor, resp.Account.Role)

	found, err := svc.GetAccount(ctx, resp.Account.ID)
	require.NoError(t, err)
	assert.Equal(t, "asha@example.org", found.Email)

	claims, err := svc.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.Account.ID, claims.AccountID)
	assert.Equal(t, model.RoleDonor, claims.Role)
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerReq("asha@example.org", model.RoleDonor))
	require.NoError(t, err)

	_, err = svc.Register(ctx, registerReq("ASHA@Example.ORG", model.RoleOrganization))
	assert.True(t, apperrors.Is(err, apperrors.ErrConflict), "got %v", err)
}

func TestRegisterInvalidRole(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Register(context.Background(), registerReq("x@example.org", model.Role("wizard")))
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput), "got %v", err)
}

func TestRegisterMissingFields(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Register(context.Background(), &model.RegisterRequest{
		Email: "x@example.org", Password: "correct-horse", Role: model.RoleDonor,
	})
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput), "got %v", err)
}

func TestRegisterNeverStoresPlaintext(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, registerReq("asha@example.org", model.RoleDonor))
	require.NoError(t, err)

	stored, err := svc.GetAccount(ctx, resp.Account.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "correct-horse", stored.PasswordHash)
	assert.NotContains(t, stored.PasswordHash, "correct-horse")
}

func TestLogin(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerReq("asha@example.org", model.RoleOrganization))
	require.NoError(t, err)

	resp, err := svc.Login(ctx, "asha@example.org", "correct-horse")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	_, err = svc.Login(ctx, "asha@example.org", "wrong-password")
	assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized), "got %v", err)

	_, err = svc.Login(ctx, "nobody@example.org", "correct-horse")
	assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized), "got %v", err)
}
