package rbac

import (
	"fmt"

	"github.com/mealbridge/mealbridge-api/internal/model"
	"github.com/mealbridge/mealbridge-api/pkg/auth"
	apperrors "github.com/mealbridge/mealbridge-api/pkg/errors"
)

// Operation names a guarded mutation or read
type Operation string

const (
	OpSubmitDonation       Operation = "donation:submit"
	OpListDonations        Operation = "donation:list"
	OpTransitionDonation   Operation = "donation:transition"
	OpRequestPickup        Operation = "notification:request_pickup"
	OpListNotifications    Operation = "notification:list"
	OpMarkNotificationRead Operation = "notification:mark_read"
	OpViewSummary          Operation = "account:summary"
)

// policy is the declarative operation -> allowed roles table. An empty
// slice means any authenticated role; absence from the table means public.
var policy = map[Operation][]model.Role{
	OpSubmitDonation:       {},
	OpTransitionDonation:   {model.RoleOrganization, model.RoleAdmin},
	OpRequestPickup:        {model.RoleAdmin},
	OpListNotifications:    {},
	OpMarkNotificationRead: {},
	OpViewSummary:          {},
}

// Service decides which roles may perform which operations
type Service struct{}

func NewService() *Service {
	return &Service{}
}

// Authorize returns nil when the claims permit the operation. A missing or
// invalid claim yields Unauthorized; a valid claim with an insufficient
// role yields Forbidden. The two map to distinct HTTP statuses.
func (s *Service) Authorize(claims *auth.Claims, op Operation) error {
	allowed, guarded := policy[op]
	if !guarded {
		return nil
	}

	if claims == nil || !claims.Role.Valid() {
		return apperrors.NewUnauthorized(fmt.Errorf("operation %s requires authentication", op))
	}

	if len(allowed) == 0 {
		return nil
	}
	for _, role := range allowed {
		if claims.Role == role {
			return nil
		}
	}
	return apperrors.NewForbidden(
		fmt.Sprintf("role %s may not perform %s", claims.Role, op), nil)
}
