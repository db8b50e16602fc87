package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDonationStatusValid(t *testing.T) {
	assert.True(t, DonationStatusPending.Valid())
	assert.True(t, DonationStatusAccepted.Valid())
	assert.True(t, DonationStatusDistributed.Valid())
	assert.False(t, DonationStatus("").Valid())
	assert.False(t, DonationStatus("shipped").Valid())
}

func TestDonationStatusOrdering(t *testing.T) {
	assert.True(t, DonationStatusPending.CanAdvanceTo(DonationStatusAccepted))
	assert.True(t, DonationStatusPending.CanAdvanceTo(DonationStatusDistributed))
	assert.True(t, DonationStatusAccepted.CanAdvanceTo(DonationStatusDistributed))

	// Same status is a no-op, not a regression.
	assert.True(t, DonationStatusAccepted.CanAdvanceTo(DonationStatusAccepted))

	assert.False(t, DonationStatusAccepted.CanAdvanceTo(DonationStatusPending))
	assert.False(t, DonationStatusDistributed.CanAdvanceTo(DonationStatusAccepted))
	assert.False(t, DonationStatusDistributed.CanAdvanceTo(DonationStatusPending))
	assert.False(t, DonationStatusPending.CanAdvanceTo(DonationStatus("shipped")))
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleDonor.Valid())
	assert.True(t, RoleOrganization.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("ngo").Valid())
	assert.False(t, Role("").Valid())
}
