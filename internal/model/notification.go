package model

import (
	"github.com/google/uuid"
)

// Notification is a message about a donation, targeted at every account
// holding TargetAccountID's role (broadcast) or at one specific account
// within that role (narrowcast, TargetAccountID set).
type Notification struct {
	Base
	DonationID      uuid.UUID  `json:"donation_id" db:"donation_id"`
	TargetRole      Role       `json:"target_role" db:"target_role"`
	TargetAccountID *uuid.UUID `json:"target_account_id,omitempty" db:"target_account_id"`
	Message         string     `json:"message" db:"message"`
	Read            bool       `json:"read" db:"read"`
}

// VisibleTo reports whether an account with the given role may see the
// notification. A nil accountID matches any account within the role, which
// mirrors the list filter: role-wide broadcasts are visible to everyone
// holding the role.
func (n *Notification) VisibleTo(role Role, accountID *uuid.UUID) bool {
	if n.TargetRole != role {
		return false
	}
	if n.TargetAccountID == nil || accountID == nil {
		return true
	}
	return *n.TargetAccountID == *accountID
}
