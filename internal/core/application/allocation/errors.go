package allocation

import (
	"fmt"

	"logistics/internal/core/domain/model/kernel"
)

// DataFetchError reports that the snapshot of one warehouse could not be read.
// The warehouse contributes nothing to the run and its orders stay as they are.
type DataFetchError struct {
	WarehouseID kernel.UUID
	Resource    string
	Err         error
}

func NewDataFetchError(warehouseID kernel.UUID, resource string, err error) *DataFetchError {
	return &DataFetchError{WarehouseID: warehouseID, Resource: resource, Err: err}
}

func (e *DataFetchError) Error() string {
	if e.WarehouseID.Validate() != nil {
		return fmt.Sprintf("fetch %s: %v", e.Resource, e.Err)
	}
	return fmt.Sprintf("fetch %s of warehouse %s: %v", e.Resource, e.WarehouseID, e.Err)
}

func (e *DataFetchError) Unwrap() error {
	return e.Err
}

// AssignmentPersistError reports that a matched pair could not be written.
// The transaction was rolled back; the order is deferred and the agent sits out the run.
type AssignmentPersistError struct {
	OrderID kernel.UUID
	AgentID kernel.UUID
	Err     error
}

func NewAssignmentPersistError(orderID, agentID kernel.UUID, err error) *AssignmentPersistError {
	return &AssignmentPersistError{OrderID: orderID, AgentID: agentID, Err: err}
}

func (e *AssignmentPersistError) Error() string {
	return fmt.Sprintf("persist assignment of order %s to agent %s: %v", e.OrderID, e.AgentID, e.Err)
}

func (e *AssignmentPersistError) Unwrap() error {
	return e.Err
}
