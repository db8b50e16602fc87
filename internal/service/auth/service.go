package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mealbridge/mealbridge-api/internal/model"
	"github.com/mealbridge/mealbridge-api/internal/repository"
	"github.com/mealbridge/mealbridge-api/pkg/auth"
	apperrors "github.com/mealbridge/mealbridge-api/pkg/errors"
	"github.com/mealbridge/mealbridge-api/pkg/logger"
	"github.com/mealbridge/mealbridge-api/pkg/security"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// Service owns account registration and login. Secrets are bcrypt-hashed
// before they touch the repository and are never logged.
type Service struct {
	accountRepo repository.AccountRepository
	hasher      security.PasswordHasher
	codec       auth.TokenCodec
	logger      *logger.Logger
}

func NewService(accountRepo repository.AccountRepository, hasher security.PasswordHasher,
	codec auth.TokenCodec, logger *logger.Logger) *Service {
	return &Service{
		accountRepo: accountRepo,
		hasher:      hasher,
		codec:       codec,
		logger:      logger,
	}
}

func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.TokenResponse, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, apperrors.NewInvalidInput("missing required fields", nil)
	}
	if !req.Role.Valid() {
		return nil, apperrors.NewInvalidInput(fmt.Sprintf("invalid role %q", req.Role), nil)
	}

	if existing, _ := s.accountRepo.GetByEmail(ctx, req.Email); existing != nil {
		return nil, apperrors.NewConflict("email already in use", nil)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		if errors.Is(err, security.ErrPasswordLength) {
			return nil, apperrors.NewInvalidInput("password too short", err)
		}
		return nil, apperrors.NewInternal(err)
	}

	account := &model.Account{
		Base:         model.Base{ID: uuid.New()},
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, apperrors.NewInternal(fmt.Errorf("failed to create account: %w", err))
	}

	token, err := s.codec.Issue(account.ID, account.Role)
	if err != nil {
		return nil, apperrors.NewInternal(fmt.Errorf("failed to issue token: %w", err))
	}

	s.logger.Info("account registered", "account_id", account.ID.String(), "role", string(account.Role))

	return &model.TokenResponse{Token: token, Account: account}, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*model.TokenResponse, error) {
	account, err := s.accountRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.NewUnauthorized(ErrInvalidCredentials)
	}

	if err := s.hasher.Compare(account.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized(ErrInvalidCredentials)
	}

	token, err := s.codec.Issue(account.ID, account.Role)
	if err != nil {
		return nil, apperrors.NewInternal(fmt.Errorf("failed to issue token: %w", err))
	}

	return &model.TokenResponse{Token: token, Account: account}, nil
}

// Verify decodes a bearer token. Stateless: no repository lookup.
func (s *Service) Verify(token string) (*auth.Claims, error) {
	claims, err := s.codec.Verify(token)
	if err != nil {
		return nil, apperrors.NewUnauthorized(err)
	}
	return claims, nil
}

// GetAccount resolves the account behind a verified claim
func (s *Service) GetAccount(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	return s.accountRepo.Get(ctx, id)
}
