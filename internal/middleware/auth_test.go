package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealbridge/mealbridge-api/internal/model"
	"github.com/mealbridge/mealbridge-api/internal/service/rbac"
	"github.com/mealbridge/mealbridge-api/pkg/auth"
)

func newTestRouter(t *testing.T) (*gin.Engine, auth.TokenCodec) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	codec, err := auth.NewCodec("test-secret", 0)
	require.NoError(t, err)

	m := NewAuthMiddleware(codec, rbac.NewService())

	r := gin.New()
	r.POST("/guarded", m.Authenticate(), m.Require(rbac.OpTransitionDonation), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"account": ClaimsFrom(c).AccountID})
	})
	return r, codec
}

func request(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/guarded", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestMissingTokenIsUnauthorized(t *testing.T) {
	r, _ := newTestRouter(t)
	assert.Equal(t, http.StatusUnauthorized, request(r, "").Code)
}

func TestGarbageTokenIsUnauthorized(t *testing.T) {
	r, _ := newTestRouter(t)
	assert.Equal(t, http.StatusUnauthorized, request(r, "not-a-token").Code)
}

func TestMalformedHeaderIsUnauthorized(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/guarded", nil)
	req.Header.Set("Authorization", "Token abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestInsufficientRoleIsForbidden(t *testing.T) {
	r, codec := newTestRouter(t)

	token, err := codec.Issue(uuid.New(), model.RoleDonor)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, request(r, token).Code)
}

func TestAllowedRolePasses(t *testing.T) {
	r, codec := newTestRouter(t)

	for _, role := range []model.Role{model.RoleOrganization, model.RoleAdmin} {
		token, err := codec.Issue(uuid.New(), role)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, request(r, token).Code, "role %s", role)
	}
}
