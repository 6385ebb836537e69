package warehouse_test

import (
	"testing"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/warehouse"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWarehouse(t *testing.T) {
	id := kernel.NewUUID()
	location, _ := kernel.NewLocation(28.7041, 77.1025)

	t.Run("should create operational warehouse", func(t *testing.T) {
		w, err := warehouse.NewWarehouse(id, "Delhi North", location)

		require.NoError(t, err)
		require.NoError(t, w.Validate())
		assert.True(t, w.ID().IsEqual(id))
		assert.Equal(t, "Delhi North", w.Name())
		assert.Equal(t, location, w.Location())
		assert.Equal(t, warehouse.Operational, w.Status())
		assert.True(t, w.IsOperational())
	})

	t.Run("should fail with blank name and zero location", func(t *testing.T) {
		w, err := warehouse.NewWarehouse(id, " ", kernel.Location{})

		require.Error(t, err)
		assert.Nil(t, w)
		assert.ErrorIs(t, err, warehouse.ErrNameIsRequired)
		assert.ErrorIs(t, err, kernel.ErrLocationIsNotConstructed)
	})
}

func TestRestoreWarehouse(t *testing.T) {
	location, _ := kernel.NewLocation(1, 1)

	w, err := warehouse.RestoreWarehouse(kernel.NewUUID(), "W", location, warehouse.Inactive)
	require.NoError(t, err)
	assert.False(t, w.IsOperational())

	_, err = warehouse.RestoreWarehouse(kernel.NewUUID(), "W", location, warehouse.Status(7))
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestWarehouse_Deactivate(t *testing.T) {
	location, _ := kernel.NewLocation(1, 1)
	w, _ := warehouse.NewWarehouse(kernel.NewUUID(), "W", location)

	require.NoError(t, w.Deactivate())
	assert.Equal(t, warehouse.Inactive, w.Status())

	err := w.Deactivate()
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Contains(t, err.Error(), "Inactive is not a valid status to deactivate")
}

func TestWarehouse_Validate(t *testing.T) {
	var nilWarehouse *warehouse.Warehouse
	assert.Equal(t, warehouse.ErrWarehouseIsNotConstructed, nilWarehouse.Validate())

	var zero warehouse.Warehouse
	assert.Equal(t, warehouse.ErrWarehouseIsNotConstructed, zero.Validate())
}

func TestStatusFromString(t *testing.T) {
	for _, s := range []warehouse.Status{warehouse.Operational, warehouse.Inactive} {
		parsed, err := warehouse.StatusFromString(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err := warehouse.StatusFromString("Unknown")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
