package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNotificationVisibility(t *testing.T) {
	target := uuid.New()
	other := uuid.New()

	broadcast := &Notification{TargetRole: RoleOrganization}
	narrowcast := &Notification{TargetRole: RoleDonor, TargetAccountID: &target}

	// Broadcasts reach every account holding the role.
	assert.True(t, broadcast.VisibleTo(RoleOrganization, &other))
	assert.True(t, broadcast.VisibleTo(RoleOrganization, nil))
	assert.False(t, broadcast.VisibleTo(RoleDonor, &other))

	// Narrowcasts reach only their target.
	assert.True(t, narrowcast.VisibleTo(RoleDonor, &target))
	assert.False(t, narrowcast.VisibleTo(RoleDonor, &other))
	assert.False(t, narrowcast.VisibleTo(RoleOrganization, &target))

	// A caller without account narrowing sees role-wide content.
	assert.True(t, narrowcast.VisibleTo(RoleDonor, nil))
}
