package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aiqso/odoo-bridge/internal/domain/entity"
)

func TestSyncUpdatesMatchedLead(t *testing.T) {
	permits := &fakePermitRepo{leads: []entity.EnrichedLead{{
		PermitNumber: "PB2024-100",
		ContactName:  "Jane Smith",
		ContactEmail: "jane@builder.com",
		ContactPhone: "2145551234",
		CompanyName:  "Smith Builders",
		ContactRole:  "project manager",
	}}}
	leads := newFakeLeadRepo(&entity.Lead{ID: 601, Name: "[PB2024-100] Smith Builders"})
	partners := newFakePartnerRepo(
		&entity.Partner{ID: 30, Name: "Jane Smith", Email: "jane@builder.com"},
		&entity.Partner{ID: 31, Name: "Smith Builders", IsCompany: true},
	)
	svc := NewLeadSyncService(permits, leads, partners)

	stats, err := svc.Sync(context.Background(), SyncOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Updated)
	assert.Equal(t, 1, stats.ContactsUpdated)

	upd := leads.updates[601]
	require.NotNil(t, upd)
	assert.Equal(t, "jane@builder.com", upd.Email)
	assert.Equal(t, "(214) 555-1234", upd.Phone)
	assert.Equal(t, "Smith Builders", upd.PartnerName)
	assert.Contains(t, upd.Description, "--- Enriched "+time.Now().Format("2006-01-02"))
	assert.Contains(t, upd.Description, "Role: project manager")

	assert.Equal(t, "(214) 555-1234", partners.phoneSet[30])
	assert.Equal(t, int64(31), partners.parentSet[30])
}

func TestSyncSkipsWhenEmailAlreadyCurrent(t *testing.T) {
	permits := &fakePermitRepo{leads: []entity.EnrichedLead{{
		PermitNumber: "PB2024-200",
		ContactEmail: "known@x.com",
	}}}
	leads := newFakeLeadRepo(&entity.Lead{ID: 602, Name: "[PB2024-200] Foo", Email: "known@x.com"})
	svc := NewLeadSyncService(permits, leads, newFakePartnerRepo())

	stats, err := svc.Sync(context.Background(), SyncOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Skipped)
	assert.Zero(t, stats.Updated)
	assert.Empty(t, leads.updates)
}

func TestSyncCountsUnmatchedWithoutCreateNew(t *testing.T) {
	permits := &fakePermitRepo{leads: []entity.EnrichedLead{{
		PermitNumber: "PB2024-300",
		ContactEmail: "new@x.com",
	}}}
	leads := newFakeLeadRepo()
	svc := NewLeadSyncService(permits, leads, newFakePartnerRepo())

	stats, err := svc.Sync(context.Background(), SyncOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.NotFound)
	assert.Zero(t, stats.Created)
	assert.Empty(t, leads.created)
}

func TestSyncCreateNewRequiresEmail(t *testing.T) {
	permits := &fakePermitRepo{leads: []entity.EnrichedLead{
		{PermitNumber: "PB2024-400", ContactPhone: "2145550000"},
		{PermitNumber: "PB2024-401", ContactEmail: "ok@x.com", CompanyName: "Acme", ContactName: "Bob", CityName: "Dallas", ProjectValuation: 50000},
	}}
	leads := newFakeLeadRepo()
	svc := NewLeadSyncService(permits, leads, newFakePartnerRepo())

	stats, err := svc.Sync(context.Background(), SyncOptions{CreateNew: true})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Created)
	assert.Equal(t, 1, stats.Skipped)

	require.Len(t, leads.created, 1)
	created := leads.created[0]
	assert.Equal(t, "[PB2024-401] Acme - Bob", created.Name)
	assert.Equal(t, "Acme", created.PartnerName)
	assert.Equal(t, float64(50000), created.ExpectedRevenue)
	assert.Contains(t, created.Description, "**Source:** PostgreSQL Enrichment Sync")
	assert.Contains(t, created.Description, "**City:** Dallas")
}

func TestSyncDryRunWritesNothing(t *testing.T) {
	permits := &fakePermitRepo{leads: []entity.EnrichedLead{
		{PermitNumber: "PB2024-500", ContactEmail: "dry@x.com"},
		{PermitNumber: "PB2024-501", ContactEmail: "dry2@x.com"},
	}}
	leads := newFakeLeadRepo(&entity.Lead{ID: 603, Name: "[PB2024-500] Existing"})
	svc := NewLeadSyncService(permits, leads, newFakePartnerRepo())

	stats, err := svc.Sync(context.Background(), SyncOptions{DryRun: true, CreateNew: true})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Updated)
	assert.Equal(t, 1, stats.Created)
	assert.Empty(t, leads.updates)
	assert.Empty(t, leads.created)
}

func TestSyncEnrichmentNoteOncePerDay(t *testing.T) {
	permits := &fakePermitRepo{leads: []entity.EnrichedLead{{
		PermitNumber: "PB2024-600",
		ContactName:  "Carl",
		ContactEmail: "carl@x.com",
	}}}
	leads := newFakeLeadRepo(&entity.Lead{ID: 604, Name: "[PB2024-600] Old"})
	leads.descriptions[604] = "history\n\n--- Enriched " + time.Now().Format("2006-01-02") + " 08:00 ---\nContact: Carl\n"
	svc := NewLeadSyncService(permits, leads, newFakePartnerRepo())

	_, err := svc.Sync(context.Background(), SyncOptions{})
	require.NoError(t, err)

	upd := leads.updates[604]
	require.NotNil(t, upd)
	assert.Empty(t, upd.Description, "note already added today must not repeat")
	assert.Equal(t, "carl@x.com", upd.Email)
}

func TestFormatPhone(t *testing.T) {
	assert.Equal(t, "(214) 555-1234", formatPhone("2145551234"))
	assert.Equal(t, "214-555-1234", formatPhone("214-555-1234"))
	assert.Equal(t, "+12145551234", formatPhone("+12145551234"))
	assert.Equal(t, "", formatPhone(""))
}
