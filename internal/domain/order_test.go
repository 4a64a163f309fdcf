package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_Next_FollowsSequence(t *testing.T) {
	cases := []struct {
		current OrderStatus
		next    OrderStatus
	}{
		{OrderStatusPending, OrderStatusConfirmed},
		{OrderStatusConfirmed, OrderStatusProcessing},
		{OrderStatusProcessing, OrderStatusShipped},
		{OrderStatusShipped, OrderStatusDelivered},
		{OrderStatusDelivered, OrderStatusCancelled},
		{OrderStatusCancelled, OrderStatusReturned},
	}

	for _, tc := range cases {
		next, ok := tc.current.Next()
		assert.True(t, ok, "expected a next status after %s", tc.current)
		assert.Equal(t, tc.next, next)
	}
}

func TestOrderStatus_Next_TerminalAndUnknown(t *testing.T) {
	next, ok := OrderStatusReturned.Next()
	assert.False(t, ok, "Returned is terminal, no next status should be offered")
	assert.Equal(t, OrderStatus(""), next)

	next, ok = OrderStatus("Refunded").Next()
	assert.False(t, ok, "unknown status must not offer a transition")
	assert.Equal(t, OrderStatus(""), next)
}

func TestOrderStatus_Valid(t *testing.T) {
	for _, s := range StatusSequence {
		assert.True(t, s.Valid())
	}
	assert.False(t, OrderStatus("Draft").Valid())
	assert.False(t, OrderStatus("").Valid())
}
