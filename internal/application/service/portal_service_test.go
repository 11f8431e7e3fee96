package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aiqso/odoo-bridge/internal/domain/entity"
)

func TestPortalInviteExistingPartner(t *testing.T) {
	partners := newFakePartnerRepo(&entity.Partner{ID: 50, Name: "John Doe", Email: "john@acme.com"})
	portal := &fakePortalRepo{}
	svc := NewPortalService(partners, portal)

	result, err := svc.Invite(context.Background(), "john@acme.com", "John Doe", "")
	require.NoError(t, err)
	assert.Equal(t, int64(50), result.PartnerID)
	assert.False(t, result.Created)
	require.Len(t, portal.invited, 1)
	assert.Equal(t, []int64{50}, portal.invited[0])
}

func TestPortalInviteCreatesPartner(t *testing.T) {
	partners := newFakePartnerRepo()
	portal := &fakePortalRepo{}
	svc := NewPortalService(partners, portal)

	result, err := svc.Invite(context.Background(), "new@acme.com", "New Customer", "Acme Corp")
	require.NoError(t, err)
	assert.True(t, result.Created)

	created := partners.partners[result.PartnerID]
	require.NotNil(t, created)
	assert.Equal(t, "New Customer", created.Name)
	assert.Equal(t, "Acme Corp", created.CompanyName)
	assert.Equal(t, 1, created.CustomerRank)
	require.Len(t, portal.invited, 1)
}
