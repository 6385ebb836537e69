package warehouse

import (
	"errors"
	"strings"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var (
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrWarehouseIsNotConstructed is returned when using an improperly initialized Warehouse.
	ErrWarehouseIsNotConstructed = errors.New("Warehouse must be created via NewWarehouse constructor")
)

// Warehouse is the unit of allocation: orders are only ever matched with agents of the
// same warehouse, and only Operational warehouses take part in a run.
type Warehouse struct {
	id       kernel.UUID
	name     string
	location kernel.Location
	status   Status
	guard    guard.ConstructorGuard
}

// NewWarehouse creates an Operational warehouse.
func NewWarehouse(id kernel.UUID, name string, location kernel.Location) (*Warehouse, error) {
	w := &Warehouse{
		status: Operational,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		w.setID(id),
		w.setName(name),
		w.setLocation(location),
	); err != nil {
		return nil, err
	}

	return w, nil
}

// RestoreWarehouse reconstructs a Warehouse from persistent storage.
func RestoreWarehouse(id kernel.UUID, name string, location kernel.Location, status Status) (*Warehouse, error) {
	w := &Warehouse{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		w.setID(id),
		w.setName(name),
		w.setLocation(location),
		w.setStatus(status),
	); err != nil {
		return nil, err
	}

	return w, nil
}

func (w *Warehouse) Validate() error {
	if w == nil {
		return ErrWarehouseIsNotConstructed
	}
	return w.guard.Validate(ErrWarehouseIsNotConstructed)
}

func (w *Warehouse) IsEqual(other *Warehouse) bool {
	return other != nil && w.id.IsEqual(other.id)
}

func (w *Warehouse) ID() kernel.UUID {
	return w.id
}

func (w *Warehouse) Name() string {
	return w.name
}

func (w *Warehouse) Location() kernel.Location {
	return w.location
}

func (w *Warehouse) Status() Status {
	return w.status
}

func (w *Warehouse) IsOperational() bool {
	return w.status == Operational
}

// Deactivate takes the warehouse out of future allocation runs.
func (w *Warehouse) Deactivate() error {
	newStatus, err := w.status.Deactivate()
	if err != nil {
		return err
	}

	w.status = newStatus
	return nil
}

func (w *Warehouse) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	w.id = id
	return nil
}

func (w *Warehouse) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameIsRequired
	}
	w.name = name
	return nil
}

func (w *Warehouse) setLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	w.location = location
	return nil
}

func (w *Warehouse) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	w.status = status
	return nil
}
