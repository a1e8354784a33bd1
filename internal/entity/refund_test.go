package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/shopsphere/fulfillment/internal/entity"
)

func TestParseRefundStatus(t *testing.T) {
	for _, s := range []string{"PENDING", "APPROVED", "REJECTED"} {
		got, err := domain.ParseRefundStatus(s)
		require.NoError(t, err, s)
		assert.Equal(t, domain.RefundStatus(s), got)
	}

	_, err := domain.ParseRefundStatus("pending")
	assert.ErrorIs(t, err, domain.ErrUnknownRefundStatus)
}

func TestRefundStatusActive(t *testing.T) {
	assert.True(t, domain.RefundPending.Active())
	assert.True(t, domain.RefundApproved.Active())
	assert.False(t, domain.RefundRejected.Active())
}
