package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	httpin "logistics/internal/adapters/in/http"
	"logistics/internal/adapters/out/kafka"
	"logistics/internal/adapters/out/postgres"
	"logistics/internal/adapters/out/s3"
	"logistics/internal/core/application/allocation"
	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/jobs"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	clock      jobs.SystemClock
	logger     *slog.Logger

	closers []func() error
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) *CompositionRoot {
	return &CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
	}
}

// Close releases the outbound adapters created by the root.
func (c *CompositionRoot) Close() error {
	var errs []error
	for _, closeFn := range c.closers {
		errs = append(errs, closeFn())
	}
	return errors.Join(errs...)
}

func (c *CompositionRoot) warehouseUoWFactory() commands.WarehouseUoWFactory {
	return FuncWarehouseUoWFactory(func() commands.WarehouseUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) agentUoWFactory() commands.AgentUoWFactory {
	return FuncAgentUoWFactory(func() commands.AgentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateWarehouseCommandHandler() commands.CreateWarehouseCommandHandler {
	return commands.NewCreateWarehouseCommandHandler(c.warehouseUoWFactory())
}

func (c *CompositionRoot) CreateDeactivateWarehouseCommandHandler() commands.DeactivateWarehouseCommandHandler {
	return commands.NewDeactivateWarehouseCommandHandler(c.warehouseUoWFactory())
}

func (c *CompositionRoot) CreateCreateAgentCommandHandler() commands.CreateAgentCommandHandler {
	return commands.NewCreateAgentCommandHandler(c.agentUoWFactory())
}

func (c *CompositionRoot) CreateCheckInAgentCommandHandler() commands.CheckInAgentCommandHandler {
	return commands.NewCheckInAgentCommandHandler(c.agentUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateChangeAgentStatusCommandHandler() commands.ChangeAgentStatusCommandHandler {
	return commands.NewChangeAgentStatusCommandHandler(c.agentUoWFactory())
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateGetWarehousesQueryHandler() queries.GetWarehousesQueryHandler {
	return queries.NewGetWarehousesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCheckedInAgentsQueryHandler() queries.GetCheckedInAgentsQueryHandler {
	return queries.NewGetCheckedInAgentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAssignmentsQueryHandler() queries.GetAssignmentsQueryHandler {
	return queries.NewGetAssignmentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHealthCheckQueryHandler() queries.HealthCheckQueryHandler {
	return queries.NewHealthCheckQueryHandler(c.gormDB)
}

// CreateAllocationEngine reads snapshots through repositories outside any transaction and
// writes every match in a unit of work of its own.
func (c *CompositionRoot) CreateAllocationEngine() *allocation.Engine {
	reader := c.uowFactory.Create()

	aggregator := allocation.NewWarehouseAggregator(
		reader.WarehouseRepository(),
		reader.AgentRepository(),
		reader.OrderRepository(),
	)

	var f allocation.AssignmentUoWFactory = FuncAssignmentUoWFactory(func() allocation.AssignmentUoW {
		return c.uowFactory.Create()
	})
	writer := allocation.NewAssignmentWriter(f, reader.OrderRepository())

	return allocation.NewEngine(aggregator, writer, c.clock, allocation.EngineConfig{
		MaxRunDuration:       c.configs.AllocationMaxRunDuration,
		WarehouseConcurrency: c.configs.AllocationWarehouseConcurrency,
	}, c.logger)
}

// CreateSummarySinks builds the optional Kafka and S3 sinks. A sink whose settings are
// empty is left out.
func (c *CompositionRoot) CreateSummarySinks(ctx context.Context) ([]jobs.SummarySink, error) {
	var sinks []jobs.SummarySink

	if brokers := c.configs.KafkaBrokers(); len(brokers) > 0 && c.configs.KafkaAllocationSummaryTopic != "" {
		publisher, err := kafka.NewSummaryPublisher(kafka.Config{
			Brokers: brokers,
			Topic:   c.configs.KafkaAllocationSummaryTopic,
		})
		if err != nil {
			return nil, fmt.Errorf("kafka summary publisher: %w", err)
		}
		c.closers = append(c.closers, publisher.Close)
		sinks = append(sinks, publisher)
		c.logger.InfoContext(ctx, "Allocation summaries will be published to Kafka",
			"topic", c.configs.KafkaAllocationSummaryTopic)
	}

	if c.configs.S3ReportBucket != "" {
		archiver, err := s3.NewReportArchiver(ctx, c.configs.S3ReportBucket, c.configs.S3ReportPrefix)
		if err != nil {
			return nil, fmt.Errorf("s3 report archiver: %w", err)
		}
		sinks = append(sinks, archiver)
		c.logger.InfoContext(ctx, "Allocation summaries will be archived to S3",
			"bucket", c.configs.S3ReportBucket)
	}

	return sinks, nil
}

func (c *CompositionRoot) CreateAllocationScheduler(ctx context.Context) (*jobs.AllocationScheduler, error) {
	sinks, err := c.CreateSummarySinks(ctx)
	if err != nil {
		return nil, err
	}

	return jobs.NewAllocationScheduler(
		c.CreateAllocationEngine(),
		c.clock,
		jobs.ScheduleConfig{
			Hour:     c.configs.AllocationHour,
			Minute:   c.configs.AllocationMinute,
			Timezone: c.configs.AllocationTimezone,
		},
		sinks,
		c.logger,
	)
}

func (c *CompositionRoot) CreateWebServer(ctx context.Context, allocations httpin.Allocations) (*echo.Echo, error) {
	server := httpin.NewServer(httpin.Handlers{
		CreateWarehouse:     c.CreateCreateWarehouseCommandHandler(),
		DeactivateWarehouse: c.CreateDeactivateWarehouseCommandHandler(),
		CreateAgent:         c.CreateCreateAgentCommandHandler(),
		CheckInAgent:        c.CreateCheckInAgentCommandHandler(),
		ChangeAgentStatus:   c.CreateChangeAgentStatusCommandHandler(),
		CreateOrder:         c.CreateCreateOrderCommandHandler(),
		GetWarehouses:       c.CreateGetWarehousesQueryHandler(),
		GetCheckedInAgents:  c.CreateGetCheckedInAgentsQueryHandler(),
		GetAssignments:      c.CreateGetAssignmentsQueryHandler(),
	}, allocations)

	return httpin.NewRouter(ctx, server, c.CreateHealthCheckQueryHandler(), httpin.RouterConfig{
		JWTSecret: []byte(c.configs.JWTSecret),
		Logger:    c.logger,
	})
}

type FuncWarehouseUoWFactory func() commands.WarehouseUoW

func (f FuncWarehouseUoWFactory) Create() commands.WarehouseUoW {
	return f()
}

type FuncAgentUoWFactory func() commands.AgentUoW

func (f FuncAgentUoWFactory) Create() commands.AgentUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncAssignmentUoWFactory func() allocation.AssignmentUoW

func (f FuncAssignmentUoWFactory) Create() allocation.AssignmentUoW {
	return f()
}
