package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentPostToleratesNoneMarshalFault(t *testing.T) {
	client := newStubClient(t,
		stubFault(1, "cannot marshal None unless allow_none is enabled"),
	)
	repo := NewPaymentRepository(client)

	err := repo.Post(context.Background(), 42)
	assert.NoError(t, err, "action_post returning None must count as success")
}

func TestPaymentPostPropagatesGenuineFault(t *testing.T) {
	client := newStubClient(t,
		stubFault(2, "UserError: You can't post a payment without a journal."),
	)
	repo := NewPaymentRepository(client)

	err := repo.Post(context.Background(), 42)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UserError")
}

func TestReconcileToleratesNoneMarshalFault(t *testing.T) {
	client := newStubClient(t,
		stubFault(1, "cannot marshal None unless allow_none is enabled"),
	)
	repo := NewInvoiceRepository(client)

	err := repo.Reconcile(context.Background(), []int64{81, 82})
	assert.NoError(t, err, "reconcile returning None must count as success")
}
