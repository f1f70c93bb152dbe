package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePaymentLink(t *testing.T) {
	t.Run("Full response", func(t *testing.T) {
		body := map[string]interface{}{
			"id":        "plink_1",
			"short_url": "https://rzp.io/l/abc",
			"status":    "paid",
			"payments": []interface{}{
				map[string]interface{}{"payment_id": "pay_1", "status": "captured"},
				map[string]interface{}{"payment_id": "pay_2", "status": "captured"},
			},
		}

		link, err := parsePaymentLink(body)

		assert.NoError(t, err)
		assert.Equal(t, "plink_1", link.ID)
		assert.Equal(t, "https://rzp.io/l/abc", link.ShortURL)
		assert.Equal(t, "paid", link.Status)
		assert.Equal(t, []string{"pay_1", "pay_2"}, link.PaymentIDs)
	})

	t.Run("Payments keyed by id instead of payment_id", func(t *testing.T) {
		body := map[string]interface{}{
			"id":     "plink_2",
			"status": "paid",
			"payments": []interface{}{
				map[string]interface{}{"id": "pay_9"},
			},
		}

		link, err := parsePaymentLink(body)

		assert.NoError(t, err)
		assert.Equal(t, []string{"pay_9"}, link.PaymentIDs)
	})

	t.Run("No payments yet", func(t *testing.T) {
		body := map[string]interface{}{
			"id":     "plink_3",
			"status": "created",
		}

		link, err := parsePaymentLink(body)

		assert.NoError(t, err)
		assert.Empty(t, link.PaymentIDs)
	})

	t.Run("Missing id is an error", func(t *testing.T) {
		link, err := parsePaymentLink(map[string]interface{}{"status": "paid"})

		assert.Error(t, err)
		assert.Nil(t, link)
	})
}
