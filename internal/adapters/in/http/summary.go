package http

import (
	"logistics/internal/core/application/allocation"
	"logistics/internal/generated/servers"

	"github.com/google/uuid"
)

func toAllocationSummary(s allocation.Summary) servers.AllocationSummary {
	response := servers.AllocationSummary{
		RunId:                 s.RunID,
		Trigger:               servers.AllocationSummaryTrigger(s.Trigger),
		Message:               s.Message,
		StartedAt:             s.StartedAt,
		FinishedAt:            s.FinishedAt,
		AssignmentsCreated:    s.AssignmentsCreated,
		TotalCost:             s.TotalCost,
		DeferredOrders:        s.DeferredOrders,
		AgentUtilization:      s.AgentUtilization,
		CheckedInAgents:       &s.CheckedInAgents,
		FetchFailures:         &s.FetchFailures,
		PersistFailures:       &s.PersistFailures,
		UnprocessedWarehouses: &s.UnprocessedWarehouses,
		TimedOut:              s.TimedOut,
		Interrupted:           s.Interrupted,
		Warehouses:            make([]servers.WarehouseAllocation, len(s.Warehouses)),
	}
	if len(s.Errors) > 0 {
		response.Errors = &s.Errors
	}

	for i, w := range s.Warehouses {
		// ids come from kernel.UUID.String and always parse
		warehouseID, _ := uuid.Parse(w.WarehouseID)
		wa := servers.WarehouseAllocation{
			WarehouseId:        warehouseID,
			WarehouseName:      w.WarehouseName,
			Outcome:            servers.WarehouseAllocationOutcome(w.Outcome),
			CheckedInAgents:    w.CheckedInAgents,
			EligibleOrders:     w.EligibleOrders,
			AssignmentsCreated: w.AssignmentsCreated,
			TotalCost:          w.TotalCost,
			DeferredOrders:     w.DeferredOrders,
			PersistFailures:    w.PersistFailures,
		}
		if w.Error != "" {
			wa.Error = &w.Error
		}
		response.Warehouses[i] = wa
	}

	return response
}
