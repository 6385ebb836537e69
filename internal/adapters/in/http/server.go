package http

import (
	"context"
	"net/http"

	"logistics/internal/core/application/allocation"
	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/generated/servers"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

var _ servers.ServerInterface = (*Server)(nil)

// CommandHandler is satisfied by every handler in the commands package.
type CommandHandler[C any] interface {
	Handle(ctx context.Context, cmd C) error
}

// QueryHandler is satisfied by the read-side handlers in the queries package.
type QueryHandler[Q, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}

// Allocations triggers runs and remembers the last summary.
type Allocations interface {
	Trigger(ctx context.Context) (allocation.Summary, error)
	LastSummary() (allocation.Summary, bool)
}

// Handlers groups the use cases exposed over HTTP.
type Handlers struct {
	// Command handlers
	CreateWarehouse     CommandHandler[commands.CreateWarehouseCommand]
	DeactivateWarehouse CommandHandler[commands.DeactivateWarehouseCommand]
	CreateAgent         CommandHandler[commands.CreateAgentCommand]
	CheckInAgent        CommandHandler[commands.CheckInAgentCommand]
	ChangeAgentStatus   CommandHandler[commands.ChangeAgentStatusCommand]
	CreateOrder         CommandHandler[commands.CreateOrderCommand]

	// Query handlers
	GetWarehouses      QueryHandler[queries.GetWarehousesQuery, []queries.GetWarehousesQueryResponse]
	GetCheckedInAgents QueryHandler[queries.GetCheckedInAgentsQuery, []queries.GetCheckedInAgentsQueryResponse]
	GetAssignments     QueryHandler[queries.GetAssignmentsQuery, []queries.GetAssignmentsQueryResponse]
}

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers    Handlers
	allocations Allocations
}

func NewServer(handlers Handlers, allocations Allocations) *Server {
	return &Server{
		handlers:    handlers,
		allocations: allocations,
	}
}

// CreateWarehouse handles POST /api/v1/warehouses.
func (s *Server) CreateWarehouse(ctx echo.Context) error {
	var body servers.NewWarehouse
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	location, err := kernel.NewLocation(body.Location.Latitude, body.Location.Longitude)
	if err != nil {
		return badRequest(ctx, "Invalid warehouse location: "+err.Error())
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewCreateWarehouseCommand(id, body.Name, location)
	if err != nil {
		return badRequest(ctx, "Invalid warehouse data: "+err.Error())
	}

	if err = s.handlers.CreateWarehouse.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err, "Failed to create warehouse")
	}

	return ctx.JSON(http.StatusCreated, servers.Created{Id: id.Bytes()})
}

// DeactivateWarehouse handles DELETE /api/v1/warehouses/{warehouseId}.
func (s *Server) DeactivateWarehouse(ctx echo.Context, warehouseID servers.WarehouseId) error {
	id, err := toKernelUUID(warehouseID)
	if err != nil {
		return badRequest(ctx, "Invalid warehouse id: "+err.Error())
	}

	cmd, err := commands.NewDeactivateWarehouseCommand(id)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.handlers.DeactivateWarehouse.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err, "Failed to deactivate warehouse")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetWarehouses handles GET /api/v1/warehouses.
func (s *Server) GetWarehouses(ctx echo.Context) error {
	warehouses, err := s.handlers.GetWarehouses.Handle(ctx.Request().Context(), queries.NewGetWarehousesQuery())
	if err != nil {
		return respondError(ctx, err, "Failed to retrieve warehouses")
	}

	response := make([]servers.Warehouse, len(warehouses))
	for i, w := range warehouses {
		response[i] = servers.Warehouse{
			Id:              w.ID.Bytes(),
			Name:            w.Name,
			Location:        fromKernelLocation(w.Location),
			Status:          servers.WarehouseStatus(w.Status),
			CheckedInAgents: w.CheckedInAgents,
			EligibleOrders:  w.EligibleOrders,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateAgent handles POST /api/v1/agents.
func (s *Server) CreateAgent(ctx echo.Context) error {
	var body servers.NewAgent
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	warehouseID, err := toKernelUUID(body.WarehouseId)
	if err != nil {
		return badRequest(ctx, "Invalid warehouse id: "+err.Error())
	}

	location, err := kernel.NewLocation(body.Location.Latitude, body.Location.Longitude)
	if err != nil {
		return badRequest(ctx, "Invalid agent location: "+err.Error())
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewCreateAgentCommand(id, body.Name, body.Phone, warehouseID, location)
	if err != nil {
		return badRequest(ctx, "Invalid agent data: "+err.Error())
	}

	if err = s.handlers.CreateAgent.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err, "Failed to create agent")
	}

	return ctx.JSON(http.StatusCreated, servers.Created{Id: id.Bytes()})
}

// CheckInAgent handles POST /api/v1/agents/{agentId}/check-in. The body is optional;
// when it carries a location the agent is moved there first.
func (s *Server) CheckInAgent(ctx echo.Context, agentID servers.AgentId) error {
	id, err := toKernelUUID(agentID)
	if err != nil {
		return badRequest(ctx, "Invalid agent id: "+err.Error())
	}

	var body servers.CheckIn
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	var location *kernel.Location
	if body.Location != nil {
		loc, locErr := kernel.NewLocation(body.Location.Latitude, body.Location.Longitude)
		if locErr != nil {
			return badRequest(ctx, "Invalid agent location: "+locErr.Error())
		}
		location = &loc
	}

	cmd, err := commands.NewCheckInAgentCommand(id, location)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.handlers.CheckInAgent.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err, "Failed to check in agent")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReleaseAgent handles POST /api/v1/agents/{agentId}/release.
func (s *Server) ReleaseAgent(ctx echo.Context, agentID servers.AgentId) error {
	return s.changeAgentStatus(ctx, agentID, commands.Release)
}

// CheckOutAgent handles POST /api/v1/agents/{agentId}/check-out.
func (s *Server) CheckOutAgent(ctx echo.Context, agentID servers.AgentId) error {
	return s.changeAgentStatus(ctx, agentID, commands.CheckOut)
}

func (s *Server) changeAgentStatus(ctx echo.Context, agentID servers.AgentId, change commands.AgentStatusChange) error {
	id, err := toKernelUUID(agentID)
	if err != nil {
		return badRequest(ctx, "Invalid agent id: "+err.Error())
	}

	cmd, err := commands.NewChangeAgentStatusCommand(id, change)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.handlers.ChangeAgentStatus.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err, "Failed to "+change.String()+" agent")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetCheckedInAgents handles GET /api/v1/agents/checked-in.
func (s *Server) GetCheckedInAgents(ctx echo.Context, params servers.GetCheckedInAgentsParams) error {
	warehouseID, err := optionalKernelUUID(params.WarehouseId)
	if err != nil {
		return badRequest(ctx, "Invalid warehouse id: "+err.Error())
	}

	query, err := queries.NewGetCheckedInAgentsQuery(warehouseID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	agents, err := s.handlers.GetCheckedInAgents.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err, "Failed to retrieve agents")
	}

	response := make([]servers.Agent, len(agents))
	for i, a := range agents {
		response[i] = servers.Agent{
			Id:          a.ID.Bytes(),
			Name:        a.Name,
			Phone:       a.Phone,
			WarehouseId: a.WarehouseID.Bytes(),
			Location:    fromKernelLocation(a.Location),
			CheckedInAt: a.CheckedInAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body servers.NewOrder
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	warehouseID, err := toKernelUUID(body.WarehouseId)
	if err != nil {
		return badRequest(ctx, "Invalid warehouse id: "+err.Error())
	}

	location, err := kernel.NewLocation(body.Location.Latitude, body.Location.Longitude)
	if err != nil {
		return badRequest(ctx, "Invalid delivery location: "+err.Error())
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(id, warehouseID, body.CustomerName, body.Address, location)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if err = s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err, "Failed to create order")
	}

	return ctx.JSON(http.StatusCreated, servers.Created{Id: id.Bytes()})
}

// GetAssignments handles GET /api/v1/assignments.
func (s *Server) GetAssignments(ctx echo.Context, params servers.GetAssignmentsParams) error {
	warehouseID, err := optionalKernelUUID(params.WarehouseId)
	if err != nil {
		return badRequest(ctx, "Invalid warehouse id: "+err.Error())
	}

	limit := 0
	if params.Limit != nil {
		limit = *params.Limit
	}

	query, err := queries.NewGetAssignmentsQuery(warehouseID, limit)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	assignments, err := s.handlers.GetAssignments.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err, "Failed to retrieve assignments")
	}

	response := servers.AssignmentList{
		Assignments:      make([]servers.Assignment, len(assignments)),
		TotalAssignments: len(assignments),
	}
	for i, a := range assignments {
		response.Assignments[i] = servers.Assignment{
			AssignmentId:        a.AssignmentID.Bytes(),
			OrderId:             a.OrderID.Bytes(),
			AgentId:             a.AgentID.Bytes(),
			WarehouseId:         a.WarehouseID.Bytes(),
			AgentName:           a.AgentName,
			CustomerName:        a.CustomerName,
			WarehouseName:       a.WarehouseName,
			TravelDistanceKm:    a.DistanceKm,
			DeliveryTimeMinutes: a.EstimatedMinutes,
			CreatedAt:           a.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// TriggerAllocation handles POST /api/v1/allocations. The run executes synchronously
// and the response carries its summary.
func (s *Server) TriggerAllocation(ctx echo.Context) error {
	summary, err := s.allocations.Trigger(ctx.Request().Context())
	if err != nil {
		return respondError(ctx, err, "Failed to run order allocation")
	}

	return ctx.JSON(http.StatusOK, toAllocationSummary(summary))
}

// GetLastAllocation handles GET /api/v1/allocations/last.
func (s *Server) GetLastAllocation(ctx echo.Context) error {
	summary, ok := s.allocations.LastSummary()
	if !ok {
		return ctx.JSON(http.StatusNotFound, servers.Error{
			Code:    http.StatusNotFound,
			Message: "No allocation run has finished yet",
		})
	}

	return ctx.JSON(http.StatusOK, toAllocationSummary(summary))
}

func toKernelUUID(id openapi_types.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}

func optionalKernelUUID(id *openapi_types.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	converted, err := toKernelUUID(*id)
	if err != nil {
		return nil, err
	}
	return &converted, nil
}

func fromKernelLocation(l kernel.Location) servers.Location {
	return servers.Location{
		Latitude:  l.Latitude(),
		Longitude: l.Longitude(),
	}
}
