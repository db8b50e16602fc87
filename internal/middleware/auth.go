package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mealbridge/mealbridge-api/internal/service/rbac"
	"github.com/mealbridge/mealbridge-api/pkg/auth"
	apperrors "github.com/mealbridge/mealbridge-api/pkg/errors"
	"github.com/mealbridge/mealbridge-api/pkg/httputil"
)

const claimsKey = "auth_claims"

// AuthMiddleware verifies bearer tokens and enforces the role policy
type AuthMiddleware struct {
	codec   auth.TokenCodec
	rbacSvc *rbac.Service
}

func NewAuthMiddleware(codec auth.TokenCodec, rbacSvc *rbac.Service) *AuthMiddleware {
	return &AuthMiddleware{codec: codec, rbacSvc: rbacSvc}
}

// Authenticate verifies the bearer token and stores the claims in the
// request context. Requests without a valid token are rejected with 401.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := m.claimsFromHeader(c)
		if err != nil {
			httputil.RespondWithError(c, apperrors.NewUnauthorized(err))
			c.Abort()
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// Require gates the request on the role policy for op. Must run after
// Authenticate for guarded operations.
func (m *AuthMiddleware) Require(op rbac.Operation) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := m.rbacSvc.Authorize(ClaimsFrom(c), op); err != nil {
			httputil.RespondWithError(c, err)
			c.Abort()
			return
		}
		c.Next()
	}
}

// ClaimsFrom returns the verified claims set by Authenticate, or nil
func ClaimsFrom(c *gin.Context) *auth.Claims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*auth.Claims)
	return claims
}

func (m *AuthMiddleware) claimsFromHeader(c *gin.Context) (*auth.Claims, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return nil, errors.New("missing authorization header")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, errors.New("invalid authorization format")
	}
	return m.codec.Verify(parts[1])
}
