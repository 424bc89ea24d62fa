package catalog_test

import (
	"encoding/json"
	"testing"

	"restaurant/internal/core/domain/model/catalog"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCategory(t *testing.T) {
	t.Run("should store the normalised name", func(t *testing.T) {
		c, err := catalog.NewCategory(kernel.NewUUID(), "t1", "  Lanches ")

		require.NoError(t, err)
		require.NoError(t, c.Validate())
		assert.Equal(t, "lanches", c.Name())
		assert.Equal(t, "t1", c.TenantID())
	})

	t.Run("should require a name", func(t *testing.T) {
		_, err := catalog.NewCategory(kernel.NewUUID(), "t1", "   ")

		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestNewProduct(t *testing.T) {
	t.Run("should build an available product", func(t *testing.T) {
		p, err := catalog.NewProduct(kernel.NewUUID(), "t1", " X Burger ", decimal.RequireFromString("15.90"), "lanches", true)

		require.NoError(t, err)
		assert.Equal(t, "X Burger", p.Name())
		assert.Equal(t, "15.9", p.Price().String())
		assert.True(t, p.Available())
	})

	t.Run("should reject negative price and missing tenant", func(t *testing.T) {
		_, err := catalog.NewProduct(kernel.NewUUID(), "", "X", decimal.NewFromInt(-1), "", false)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "price")
		assert.Contains(t, err.Error(), "tenant_id")
	})
}

func TestFlag_UnmarshalJSON(t *testing.T) {
	testCases := map[string]bool{
		`{"available": true}`:    true,
		`{"available": "true"}`:  true,
		`{"available": false}`:   false,
		`{"available": "false"}`: false,
		`{"available": "yes"}`:   false,
		`{"available": 1}`:       false,
		`{"available": null}`:    false,
	}

	for payload, want := range testCases {
		var body struct {
			Available catalog.Flag `json:"available"`
		}

		require.NoError(t, json.Unmarshal([]byte(payload), &body), payload)
		assert.Equal(t, want, bool(body.Available), payload)
	}
}
