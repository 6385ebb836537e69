package order

import (
	"errors"
	"strings"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
	// ErrCustomerNameIsRequired is returned for a blank customer name.
	ErrCustomerNameIsRequired = errs.NewValueIsRequiredError("customer name")
	// ErrAddressIsRequired is returned for a blank delivery address.
	ErrAddressIsRequired = errs.NewValueIsRequiredError("address")
	// ErrCreatedAtIsRequired is returned when the creation timestamp is zero.
	ErrCreatedAtIsRequired = errs.NewValueIsRequiredError("created at")
)

// Order is a delivery request belonging to a warehouse. It is the aggregate root the
// allocation engine moves from Pending (or Deferred) to Assigned or Deferred.
//
// Order follows these invariants:
//   - id, warehouse id and delivery location are valid
//   - customer name and address are not blank
//   - agentID is set if and only if the status is Assigned
//   - createdAt is set; orders are matched in (createdAt, id) order
type Order struct {
	id           kernel.UUID
	warehouseID  kernel.UUID
	customerName string
	address      string
	location     kernel.Location
	status       Status
	agentID      *kernel.UUID
	createdAt    time.Time
	guard        guard.ConstructorGuard
}

// NewOrder creates a Pending order.
//
// Example:
//
//	location, _ := kernel.NewLocation(28.7141, 77.1125)
//	o, err := order.NewOrder(kernel.NewUUID(), warehouseID, "Asha", "12 Ring Road", location, time.Now())
func NewOrder(
	id kernel.UUID,
	warehouseID kernel.UUID,
	customerName string,
	address string,
	location kernel.Location,
	createdAt time.Time,
) (*Order, error) {
	order := &Order{
		status: Pending,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		order.setID(id),
		order.setWarehouseID(warehouseID),
		order.setCustomerName(customerName),
		order.setAddress(address),
		order.setLocation(location),
		order.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder reconstructs an Order from persistent storage, including its status and
// assigned agent. The status/agent consistency rule is checked.
func RestoreOrder(
	id kernel.UUID,
	warehouseID kernel.UUID,
	customerName string,
	address string,
	location kernel.Location,
	status Status,
	agentID *kernel.UUID,
	createdAt time.Time,
) (*Order, error) {
	order := &Order{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		order.setID(id),
		order.setWarehouseID(warehouseID),
		order.setCustomerName(customerName),
		order.setAddress(address),
		order.setLocation(location),
		order.setCreatedAt(createdAt),
		order.setStatus(status, agentID),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// Validate returns ErrOrderIsNotConstructed for nil or zero-value orders.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by id.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) WarehouseID() kernel.UUID {
	return o.warehouseID
}

func (o *Order) CustomerName() string {
	return o.customerName
}

func (o *Order) Address() string {
	return o.address
}

// Location returns the delivery location.
func (o *Order) Location() kernel.Location {
	return o.location
}

func (o *Order) Status() Status {
	return o.status
}

// Agent returns the assigned agent's id, nil unless the order is Assigned.
func (o *Order) Agent() *kernel.UUID {
	if o.agentID == nil {
		return nil
	}
	id := *o.agentID
	return &id
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Assign marks the order as Assigned to agentID.
func (o *Order) Assign(agentID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.Assign()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.agentID = &agentID
	return nil
}

// Defer marks the order as Deferred so the next run retries it.
func (o *Order) Defer() error {
	newStatus, err := o.status.Defer()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Before reports whether o is matched before other: older first, then lower id.
func (o *Order) Before(other *Order) bool {
	if !o.createdAt.Equal(other.createdAt) {
		return o.createdAt.Before(other.createdAt)
	}
	return o.id.Compare(other.id) < 0
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setWarehouseID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.warehouseID = id
	return nil
}

func (o *Order) setCustomerName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrCustomerNameIsRequired
	}
	o.customerName = name
	return nil
}

func (o *Order) setAddress(address string) error {
	if strings.TrimSpace(address) == "" {
		return ErrAddressIsRequired
	}
	o.address = address
	return nil
}

func (o *Order) setLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	o.location = location
	return nil
}

func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return ErrCreatedAtIsRequired
	}
	o.createdAt = createdAt.UTC()
	return nil
}

func (o *Order) setStatus(status Status, agentID *kernel.UUID) error {
	if err := status.Validate(); err != nil {
		return err
	}

	if err := status.ValidateCanHaveAgent(agentID != nil); err != nil {
		return err
	}

	if agentID != nil {
		if err := agentID.Validate(); err != nil {
			return err
		}
		id := *agentID
		o.agentID = &id
	}

	o.status = status
	return nil
}
