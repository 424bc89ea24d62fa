package order_test

import (
	"testing"

	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Validate(t *testing.T) {
	t.Run("should accept every known status", func(t *testing.T) {
		for _, status := range order.Statuses() {
			t.Run(status.String(), func(t *testing.T) {
				require.NoError(t, status.Validate())
			})
		}
	})

	t.Run("should reject unknown values", func(t *testing.T) {
		for _, raw := range []string{"", "Pending", "served", "PAID"} {
			err := order.Status(raw).Validate()

			require.Error(t, err, "status %q", raw)
			assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})
}

func TestParseStatus(t *testing.T) {
	s, err := order.ParseStatus("finalizado")
	require.NoError(t, err)
	assert.Equal(t, order.Finalizado, s)

	_, err = order.ParseStatus("served")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestStatus_Partitions(t *testing.T) {
	testCases := []struct {
		status   order.Status
		terminal bool
		sale     bool
	}{
		{order.Pending, false, false},
		{order.Ready, false, false},
		{order.Paid, true, true},
		{order.Finalizado, true, true},
		{order.Cancelled, true, false},
	}

	for _, tc := range testCases {
		t.Run(tc.status.String(), func(t *testing.T) {
			assert.Equal(t, tc.terminal, tc.status.IsTerminal())
			assert.Equal(t, !tc.terminal, tc.status.IsActive())
			assert.Equal(t, tc.sale, tc.status.IsSale())
		})
	}
}

func TestStatus_Amend(t *testing.T) {
	t.Run("should return pending from active statuses", func(t *testing.T) {
		for _, s := range []order.Status{order.Pending, order.Ready} {
			next, err := s.Amend()

			require.NoError(t, err)
			assert.Equal(t, order.Pending, next)
		}
	})

	t.Run("should refuse terminal statuses", func(t *testing.T) {
		for _, s := range []order.Status{order.Paid, order.Finalizado, order.Cancelled} {
			_, err := s.Amend()

			require.Error(t, err)
			assert.Contains(t, err.Error(), "cannot be amended")
		}
	})
}

func TestStatus_Cancel(t *testing.T) {
	next, err := order.Ready.Cancel()
	require.NoError(t, err)
	assert.Equal(t, order.Cancelled, next)

	_, err = order.Cancelled.Cancel()
	assert.Error(t, err)

	_, err = order.Paid.Cancel()
	assert.Error(t, err)
}

func TestStatus_ChangeTo(t *testing.T) {
	t.Run("should allow any move between non-cancelled statuses", func(t *testing.T) {
		for _, from := range []order.Status{order.Pending, order.Ready, order.Paid, order.Finalizado} {
			for _, to := range order.Statuses() {
				next, err := from.ChangeTo(to)

				require.NoError(t, err, "%s -> %s", from, to)
				assert.Equal(t, to, next)
			}
		}
	})

	t.Run("should keep cancelled orders cancelled", func(t *testing.T) {
		_, err := order.Cancelled.ChangeTo(order.Pending)
		require.Error(t, err)

		next, err := order.Cancelled.ChangeTo(order.Cancelled)
		require.NoError(t, err)
		assert.Equal(t, order.Cancelled, next)
	})

	t.Run("should reject unknown target", func(t *testing.T) {
		_, err := order.Pending.ChangeTo("served")

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
