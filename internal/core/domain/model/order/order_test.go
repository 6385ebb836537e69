package order_test

import (
	"testing"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var createdAt = time.Date(2026, 3, 1, 6, 30, 0, 0, time.UTC)

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()

	location, err := kernel.NewLocation(28.7141, 77.1125)
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "Asha Rao", "12 Ring Road", location, createdAt)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	validID := kernel.NewUUID()
	warehouseID := kernel.NewUUID()
	validLocation, _ := kernel.NewLocation(28.7141, 77.1125)

	t.Run("should create pending order", func(t *testing.T) {
		o, err := order.NewOrder(validID, warehouseID, "Asha Rao", "12 Ring Road", validLocation, createdAt)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(validID))
		assert.True(t, o.WarehouseID().IsEqual(warehouseID))
		assert.Equal(t, "Asha Rao", o.CustomerName())
		assert.Equal(t, "12 Ring Road", o.Address())
		assert.Equal(t, validLocation, o.Location())
		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, createdAt, o.CreatedAt())
		assert.Nil(t, o.Agent())
	})

	t.Run("should normalize created at to UTC", func(t *testing.T) {
		local := createdAt.In(time.FixedZone("IST", 5*3600+1800))

		o, err := order.NewOrder(validID, warehouseID, "Asha Rao", "12 Ring Road", validLocation, local)

		require.NoError(t, err)
		assert.Equal(t, time.UTC, o.CreatedAt().Location())
	})

	t.Run("should fail with blank customer name", func(t *testing.T) {
		o, err := order.NewOrder(validID, warehouseID, "  ", "12 Ring Road", validLocation, createdAt)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "customer name")
	})

	t.Run("should join every validation error", func(t *testing.T) {
		o, err := order.NewOrder(kernel.UUID{}, kernel.UUID{}, "", "", kernel.Location{}, time.Time{})

		require.Error(t, err)
		assert.Nil(t, o)
		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		assert.ErrorIs(t, err, kernel.ErrLocationIsNotConstructed)
		assert.ErrorIs(t, err, order.ErrCustomerNameIsRequired)
		assert.ErrorIs(t, err, order.ErrAddressIsRequired)
		assert.ErrorIs(t, err, order.ErrCreatedAtIsRequired)
	})
}

func TestRestoreOrder(t *testing.T) {
	location, _ := kernel.NewLocation(1, 1)
	agentID := kernel.NewUUID()

	t.Run("should restore assigned order with agent", func(t *testing.T) {
		o, err := order.RestoreOrder(kernel.NewUUID(), kernel.NewUUID(), "A", "B", location, order.Assigned, &agentID, createdAt)

		require.NoError(t, err)
		assert.Equal(t, order.Assigned, o.Status())
		require.NotNil(t, o.Agent())
		assert.True(t, o.Agent().IsEqual(agentID))
	})

	t.Run("should restore deferred order", func(t *testing.T) {
		o, err := order.RestoreOrder(kernel.NewUUID(), kernel.NewUUID(), "A", "B", location, order.Deferred, nil, createdAt)

		require.NoError(t, err)
		assert.Equal(t, order.Deferred, o.Status())
	})

	t.Run("should reject assigned order without agent", func(t *testing.T) {
		_, err := order.RestoreOrder(kernel.NewUUID(), kernel.NewUUID(), "A", "B", location, order.Assigned, nil, createdAt)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject pending order with agent", func(t *testing.T) {
		_, err := order.RestoreOrder(kernel.NewUUID(), kernel.NewUUID(), "A", "B", location, order.Pending, &agentID, createdAt)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject unknown status", func(t *testing.T) {
		_, err := order.RestoreOrder(kernel.NewUUID(), kernel.NewUUID(), "A", "B", location, order.Unknown, nil, createdAt)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("should fail validation for nil order", func(t *testing.T) {
		var o *order.Order

		assert.Equal(t, order.ErrOrderIsNotConstructed, o.Validate())
	})

	t.Run("should fail validation for zero value order", func(t *testing.T) {
		var o order.Order

		assert.Equal(t, order.ErrOrderIsNotConstructed, o.Validate())
	})
}

func TestOrder_Assign(t *testing.T) {
	t.Run("should assign pending order", func(t *testing.T) {
		o := newTestOrder(t)
		agentID := kernel.NewUUID()

		require.NoError(t, o.Assign(agentID))

		assert.Equal(t, order.Assigned, o.Status())
		assert.True(t, o.Agent().IsEqual(agentID))
	})

	t.Run("should assign deferred order", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Defer())

		require.NoError(t, o.Assign(kernel.NewUUID()))

		assert.Equal(t, order.Assigned, o.Status())
	})

	t.Run("should not reassign assigned order", func(t *testing.T) {
		o := newTestOrder(t)
		first := kernel.NewUUID()
		require.NoError(t, o.Assign(first))

		err := o.Assign(kernel.NewUUID())

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.True(t, o.Agent().IsEqual(first))
	})

	t.Run("should reject zero agent id", func(t *testing.T) {
		o := newTestOrder(t)

		err := o.Assign(kernel.UUID{})

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		assert.Equal(t, order.Pending, o.Status())
	})
}

func TestOrder_Defer(t *testing.T) {
	o := newTestOrder(t)

	require.NoError(t, o.Defer())
	assert.Equal(t, order.Deferred, o.Status())

	require.NoError(t, o.Defer(), "deferring twice keeps the order deferred")
	assert.Equal(t, order.Deferred, o.Status())

	require.NoError(t, o.Assign(kernel.NewUUID()))
	require.Error(t, o.Defer())
	assert.Equal(t, order.Assigned, o.Status())
}

func TestOrder_Before(t *testing.T) {
	location, _ := kernel.NewLocation(1, 1)
	low, _ := kernel.UUIDFromString("00000000-0000-0000-0000-000000000001")
	high, _ := kernel.UUIDFromString("00000000-0000-0000-0000-000000000002")

	older, _ := order.NewOrder(high, kernel.NewUUID(), "A", "B", location, createdAt)
	newer, _ := order.NewOrder(low, kernel.NewUUID(), "A", "B", location, createdAt.Add(time.Minute))
	sameTime, _ := order.NewOrder(low, kernel.NewUUID(), "A", "B", location, createdAt)

	assert.True(t, older.Before(newer))
	assert.False(t, newer.Before(older))
	assert.True(t, sameTime.Before(older), "lower id wins on equal timestamps")
	assert.False(t, older.Before(sameTime))
}
