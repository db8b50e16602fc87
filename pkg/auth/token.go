package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/mealbridge/mealbridge-api/internal/model"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrEmptySecret  = errors.New("signing secret must not be empty")
)

// Claims is the decoded capability token payload: who the bearer is, which
// role they hold and when the token was issued.
type Claims struct {
	jwt.RegisteredClaims
	AccountID      uuid.UUID  `json:"account_id"`
	Role           model.Role `json:"role"`
	IssuedAtMillis int64      `json:"iat_ms"`
}

// TokenCodec issues and verifies bearer capability tokens
type TokenCodec interface {
	Issue(accountID uuid.UUID, role model.Role) (string, error)
	Verify(token string) (*Claims, error)
}

// codec signs claims with HMAC-SHA256 over a server-held secret. Verify is
// a pure function of (token, secret): no store lookup, safe to run on any
// number of stateless replicas.
type codec struct {
	secret []byte
	expiry time.Duration
}

// NewCodec creates a token codec. An expiry of zero issues non-expiring
// tokens.
func NewCodec(secret string, expiry time.Duration) (TokenCodec, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &codec{secret: []byte(secret), expiry: expiry}, nil
}

func (c *codec) Issue(accountID uuid.UUID, role model.Role) (string, error) {
	if !role.Valid() {
		return "", fmt.Errorf("cannot issue token for role %q", role)
	}

	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  accountID.String(),
			IssuedAt: jwt.NewNumericDate(now),
		},
		AccountID:      accountID,
		Role:           role,
		IssuedAtMillis: now.UnixMilli(),
	}
	if c.expiry > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(c.expiry))
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

func (c *codec) Verify(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid || !claims.Role.Valid() || claims.AccountID == uuid.Nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
