package kernel_test

import (
	"encoding/json"
	"testing"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateOf(t *testing.T) {
	saoPaulo := time.FixedZone("BRT", -3*60*60)

	t.Run("should use the calendar day of the given location", func(t *testing.T) {
		// 01:30 UTC on the 6th is still the 5th in Sao Paulo.
		instant := time.Date(2024, 1, 6, 1, 30, 0, 0, time.UTC)

		assert.Equal(t, "2024-01-05", kernel.DateOf(instant, saoPaulo).String())
		assert.Equal(t, "2024-01-06", kernel.DateOf(instant, time.UTC).String())
	})

	t.Run("should default to UTC for nil location", func(t *testing.T) {
		instant := time.Date(2024, 1, 6, 1, 30, 0, 0, time.UTC)

		assert.Equal(t, "2024-01-06", kernel.DateOf(instant, nil).String())
	})
}

func TestParseDate(t *testing.T) {
	t.Run("should parse YYYY-MM-DD", func(t *testing.T) {
		d, err := kernel.ParseDate("2024-01-05")

		require.NoError(t, err)
		assert.Equal(t, "2024-01-05", d.String())
		assert.NoError(t, d.Validate())
	})

	t.Run("should reject other layouts", func(t *testing.T) {
		for _, input := range []string{"", "05/01/2024", "2024-1-5", "2024-01-05T00:00:00Z"} {
			_, err := kernel.ParseDate(input)

			require.Error(t, err, "input %q", input)
			assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})
}

func TestDate_Arithmetic(t *testing.T) {
	today, _ := kernel.ParseDate("2024-03-01")

	t.Run("should cross month boundaries", func(t *testing.T) {
		assert.Equal(t, "2024-02-29", today.AddDays(-1).String())
		assert.Equal(t, "2024-02-23", today.AddDays(-7).String())
		assert.Equal(t, "2024-03-02", today.AddDays(1).String())
	})

	t.Run("should compare strictly", func(t *testing.T) {
		cutoff := today.AddDays(-7)

		assert.True(t, today.AddDays(-8).Before(cutoff))
		assert.False(t, cutoff.Before(cutoff))
		assert.False(t, today.AddDays(-6).Before(cutoff))
		assert.True(t, cutoff.IsEqual(today.AddDays(-7)))
	})
}

func TestDate_StartIn(t *testing.T) {
	saoPaulo := time.FixedZone("BRT", -3*60*60)
	d, _ := kernel.ParseDate("2024-01-05")

	start := d.StartIn(saoPaulo)

	assert.Equal(t, time.Date(2024, 1, 5, 3, 0, 0, 0, time.UTC), start.UTC())
}

func TestDate_ZeroValue(t *testing.T) {
	var d kernel.Date

	assert.True(t, d.IsZero())
	assert.Empty(t, d.String())
	assert.ErrorIs(t, d.Validate(), kernel.ErrDateIsNotConstructed)
}

func TestDate_JSON(t *testing.T) {
	d, err := kernel.ParseDate("2024-01-05")
	require.NoError(t, err)

	raw, err := json.Marshal(map[string]kernel.Date{"date": d})
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2024-01-05"}`, string(raw))

	var decoded struct {
		Date kernel.Date `json:"date"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.True(t, d.IsEqual(decoded.Date))

	require.ErrorIs(t, json.Unmarshal([]byte(`{"date":"05/01/2024"}`), &decoded), errs.ErrValueIsInvalid)
}
