package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	t.Run("Allowed forward edges", func(t *testing.T) {
		assert.True(t, CanTransition(StatusCreated, StatusPaid))
		assert.True(t, CanTransition(StatusCreated, StatusCancelled))
		assert.True(t, CanTransition(StatusCreated, StatusFailed))
		assert.True(t, CanTransition(StatusCreated, StatusExpired))
		assert.True(t, CanTransition(StatusPaid, StatusCancelled))
		assert.True(t, CanTransition(StatusPaid, StatusOutForDelivery))
		assert.True(t, CanTransition(StatusOutForDelivery, StatusDelivered))
	})

	t.Run("No edge re-enters created", func(t *testing.T) {
		all := []string{
			StatusCreated, StatusPaid, StatusFailed, StatusCancelled,
			StatusExpired, StatusOutForDelivery, StatusDelivered,
		}
		for _, from := range all {
			assert.False(t, CanTransition(from, StatusCreated), "edge %s -> created must not exist", from)
		}
	})

	t.Run("Terminal states have no outgoing edges", func(t *testing.T) {
		terminals := []string{StatusCancelled, StatusDelivered, StatusFailed, StatusExpired}
		targets := []string{
			StatusCreated, StatusPaid, StatusFailed, StatusCancelled,
			StatusExpired, StatusOutForDelivery, StatusDelivered,
		}
		for _, from := range terminals {
			assert.True(t, IsTerminal(from))
			for _, to := range targets {
				assert.False(t, CanTransition(from, to), "edge %s -> %s must not exist", from, to)
			}
		}
	})

	t.Run("Skipping fulfillment steps is rejected", func(t *testing.T) {
		assert.False(t, CanTransition(StatusCreated, StatusDelivered))
		assert.False(t, CanTransition(StatusCreated, StatusOutForDelivery))
		assert.False(t, CanTransition(StatusPaid, StatusDelivered))
		assert.False(t, CanTransition(StatusOutForDelivery, StatusCancelled))
	})
}

func TestToPaise(t *testing.T) {
	t.Run("Whole rupees", func(t *testing.T) {
		assert.Equal(t, int64(20000), ToPaise(decimal.NewFromInt(200)))
	})

	t.Run("Rupees with paise", func(t *testing.T) {
		v, _ := decimal.NewFromString("99.99")
		assert.Equal(t, int64(9999), ToPaise(v))
	})

	t.Run("Sub-paise precision is truncated", func(t *testing.T) {
		v, _ := decimal.NewFromString("10.999")
		assert.Equal(t, int64(1099), ToPaise(v))
	})

	t.Run("Zero", func(t *testing.T) {
		assert.Equal(t, int64(0), ToPaise(decimal.Zero))
	})
}
