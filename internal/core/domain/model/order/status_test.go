package order_test

import (
	"testing"

	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Constants(t *testing.T) {
	assert.Equal(t, 0, int(order.Unknown))
	assert.Equal(t, 1, int(order.Pending))
	assert.Equal(t, 2, int(order.Assigned))
	assert.Equal(t, 3, int(order.Deferred))
}

func TestStatus_Validate(t *testing.T) {
	for _, status := range []order.Status{order.Pending, order.Assigned, order.Deferred} {
		t.Run(status.String(), func(t *testing.T) {
			require.NoError(t, status.Validate())
		})
	}

	require.ErrorIs(t, order.Unknown.Validate(), errs.ErrValueIsInvalid)
	require.ErrorIs(t, order.Status(42).Validate(), errs.ErrValueIsInvalid)
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "Pending", order.Pending.String())
	assert.Equal(t, "Assigned", order.Assigned.String())
	assert.Equal(t, "Deferred", order.Deferred.String())
	assert.Equal(t, "Unknown", order.Status(42).String())
}

func TestStatusFromString(t *testing.T) {
	status, err := order.StatusFromString("Deferred")
	require.NoError(t, err)
	assert.Equal(t, order.Deferred, status)

	_, err = order.StatusFromString("Unknown")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = order.StatusFromString("Completed")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestStatus_Transitions(t *testing.T) {
	tests := []struct {
		from       order.Status
		assignTo   order.Status
		assignOK   bool
		deferTo    order.Status
		deferOK    bool
		isEligible bool
	}{
		{from: order.Pending, assignTo: order.Assigned, assignOK: true, deferTo: order.Deferred, deferOK: true, isEligible: true},
		{from: order.Deferred, assignTo: order.Assigned, assignOK: true, deferTo: order.Deferred, deferOK: true, isEligible: true},
		{from: order.Assigned},
		{from: order.Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.from.String(), func(t *testing.T) {
			assert.Equal(t, tt.isEligible, tt.from.IsEligible())

			next, err := tt.from.Assign()
			if tt.assignOK {
				require.NoError(t, err)
				assert.Equal(t, tt.assignTo, next)
			} else {
				require.ErrorIs(t, err, errs.ErrValueIsInvalid)
				assert.Contains(t, err.Error(), "to assign")
			}

			next, err = tt.from.Defer()
			if tt.deferOK {
				require.NoError(t, err)
				assert.Equal(t, tt.deferTo, next)
			} else {
				require.ErrorIs(t, err, errs.ErrValueIsInvalid)
				assert.Contains(t, err.Error(), "to defer")
			}
		})
	}
}

func TestStatus_ValidateCanHaveAgent(t *testing.T) {
	require.NoError(t, order.Assigned.ValidateCanHaveAgent(true))
	require.NoError(t, order.Pending.ValidateCanHaveAgent(false))
	require.NoError(t, order.Deferred.ValidateCanHaveAgent(false))
	require.Error(t, order.Assigned.ValidateCanHaveAgent(false))
	require.Error(t, order.Pending.ValidateCanHaveAgent(true))
}
