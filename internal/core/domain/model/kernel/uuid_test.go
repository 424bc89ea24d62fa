package kernel_test

import (
	"encoding/json"
	"testing"

	"restaurant/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const orderID = "550e8400-e29b-41d4-a716-446655440000"

func TestNewUUID(t *testing.T) {
	a := kernel.NewUUID()
	b := kernel.NewUUID()

	require.NoError(t, a.Validate())
	assert.Regexp(t, `^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[0-9a-f]{4}-[0-9a-f]{12}$`, a.String())
	assert.False(t, a.IsEqual(b))
}

func TestUUIDFromString(t *testing.T) {
	accepted := map[string]string{
		"canonical": orderID,
		"braced":    "{" + orderID + "}",
		"urn":       "urn:uuid:" + orderID,
		"compact":   "550e8400e29b41d4a716446655440000",
	}
	for name, input := range accepted {
		t.Run(name, func(t *testing.T) {
			id, err := kernel.UUIDFromString(input)

			require.NoError(t, err)
			assert.Equal(t, orderID, id.String())
		})
	}

	for _, input := range []string{"", "mesa-12", "550e8400-e29b-41d4-a716", orderID + "-extra", "550e8400-e29b-41d4-a716-44665544000g"} {
		_, err := kernel.UUIDFromString(input)
		assert.ErrorContains(t, err, "invalid UUID format", "input %q", input)
	}
}

func TestUUIDFromBytes(t *testing.T) {
	id, err := kernel.UUIDFromBytes([]byte{
		0x55, 0x0e, 0x84, 0x00, 0xe2, 0x9b, 0x41, 0xd4,
		0xa7, 0x16, 0x44, 0x66, 0x55, 0x44, 0x00, 0x00,
	})
	require.NoError(t, err)
	assert.Equal(t, orderID, id.String())

	_, err = kernel.UUIDFromBytes([]byte{0x55, 0x0e})
	assert.ErrorContains(t, err, "invalid UUID format")

	_, err = kernel.UUIDFromBytes(make([]byte, 16))
	assert.Equal(t, kernel.ErrUUIDIsNotConstructed, err)
}

func TestUUID_Validate(t *testing.T) {
	var zero kernel.UUID
	assert.Equal(t, kernel.ErrUUIDIsNotConstructed, zero.Validate())

	nilID, err := kernel.UUIDFromString("00000000-0000-0000-0000-000000000000")
	require.NoError(t, err)
	assert.Equal(t, kernel.ErrUUIDIsNotConstructed, nilID.Validate())
	assert.True(t, zero.IsEqual(nilID))
	assert.True(t, nilID.IsZero())
	assert.False(t, kernel.NewUUID().IsZero())
}

func TestUUID_Bytes(t *testing.T) {
	id, _ := kernel.UUIDFromString(orderID)

	raw := id.Bytes()
	raw[0] = 0xff

	assert.Equal(t, orderID, id.String(), "Bytes returns a copy")
}

func TestUUID_JSON(t *testing.T) {
	type payload struct {
		OrderID kernel.UUID `json:"order_id"`
	}

	t.Run("should marshal as canonical string", func(t *testing.T) {
		id, _ := kernel.UUIDFromString("{" + orderID + "}")

		data, err := json.Marshal(payload{OrderID: id})

		require.NoError(t, err)
		assert.JSONEq(t, `{"order_id":"`+orderID+`"}`, string(data))
	})

	t.Run("should unmarshal from JSON string", func(t *testing.T) {
		var p payload

		require.NoError(t, json.Unmarshal([]byte(`{"order_id":"`+orderID+`"}`), &p))
		assert.Equal(t, orderID, p.OrderID.String())
	})

	t.Run("should reject malformed JSON string", func(t *testing.T) {
		var p payload

		err := json.Unmarshal([]byte(`{"order_id":"mesa-12"}`), &p)

		assert.ErrorContains(t, err, "invalid UUID format")
	})
}
