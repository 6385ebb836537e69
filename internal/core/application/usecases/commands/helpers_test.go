package commands_test

import (
	"testing"
	"time"

	"logistics/internal/core/domain/model/agent"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/warehouse"
	"logistics/internal/core/ports/mocks"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 1, 6, 30, 0, 0, time.UTC)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// factoryFunc adapts a constructor to any of the narrow UoW factory interfaces.
type factoryFunc[T any] func() T

func (f factoryFunc[T]) Create() T { return f() }

func location(t *testing.T, lat, lon float64) kernel.Location {
	t.Helper()
	loc, err := kernel.NewLocation(lat, lon)
	require.NoError(t, err)
	return loc
}

func operationalWarehouse(t *testing.T) *warehouse.Warehouse {
	t.Helper()
	w, err := warehouse.NewWarehouse(kernel.NewUUID(), "Central", location(t, 19.07, 72.87))
	require.NoError(t, err)
	return w
}

func inactiveWarehouse(t *testing.T) *warehouse.Warehouse {
	t.Helper()
	w := operationalWarehouse(t)
	require.NoError(t, w.Deactivate())
	return w
}

func offlineAgent(t *testing.T, w *warehouse.Warehouse) *agent.Agent {
	t.Helper()
	a, err := agent.NewAgent(kernel.NewUUID(), "Asha", "+911234567890", w.ID(), w.Location())
	require.NoError(t, err)
	return a
}

// committingUoW expects Begin, Commit and the deferred Rollback.
func committingUoW() *mocks.UnitOfWork {
	uow := &mocks.UnitOfWork{
		Warehouses: &mocks.WarehouseRepository{},
		Agents:     &mocks.AgentRepository{},
		Orders:     &mocks.OrderRepository{},
	}
	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.On("Commit", mock.Anything).Return(nil).Once()
	uow.On("Rollback", mock.Anything).Return(nil).Once()
	return uow
}

// abortingUoW expects Begin and the deferred Rollback only.
func abortingUoW() *mocks.UnitOfWork {
	uow := &mocks.UnitOfWork{
		Warehouses: &mocks.WarehouseRepository{},
		Agents:     &mocks.AgentRepository{},
		Orders:     &mocks.OrderRepository{},
	}
	uow.On("Begin", mock.Anything).Return(nil).Once()
	uow.On("Rollback", mock.Anything).Return(nil).Once()
	return uow
}
