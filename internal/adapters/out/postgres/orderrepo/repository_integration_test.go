package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"logistics/internal/adapters/out/postgres/orderrepo"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// OrderRepositoryIntegrationTestSuite runs OrderRepository against a PostgreSQL container.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	warehouse  kernel.UUID
	now        time.Time
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)

	suite.repository = orderrepo.NewGormOrderRepository(suite.db)
	suite.warehouse = kernel.NewUUID()
	suite.now = time.Date(2025, 3, 1, 7, 0, 0, 0, time.UTC)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_RoundTrip() {
	ctx := context.Background()
	o := suite.addOrder(suite.warehouse, time.Hour)

	restored, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)

	suite.True(restored.IsEqual(o))
	suite.True(restored.WarehouseID().IsEqual(suite.warehouse))
	suite.Equal("Alice", restored.CustomerName())
	suite.Equal(order.Pending, restored.Status())
	suite.Nil(restored.Agent())
	suite.True(restored.CreatedAt().Equal(o.CreatedAt()))
	suite.InDelta(o.Location().Latitude(), restored.Location().Latitude(), 1e-9)
	suite.InDelta(o.Location().Longitude(), restored.Location().Longitude(), 1e-9)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestClaimForAssignment_PersistsAgent() {
	ctx := context.Background()
	o := suite.addOrder(suite.warehouse, time.Hour)
	agentID := kernel.NewUUID()
	suite.Require().NoError(o.Assign(agentID))

	suite.Require().NoError(suite.repository.ClaimForAssignment(ctx, o))

	restored, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Assigned, restored.Status())
	suite.Require().NotNil(restored.Agent())
	suite.True(restored.Agent().IsEqual(agentID))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestClaimForAssignment_SecondClaimLoses() {
	ctx := context.Background()
	first := suite.addOrder(suite.warehouse, time.Hour)
	firstAgent := kernel.NewUUID()
	suite.Require().NoError(first.Assign(firstAgent))
	suite.Require().NoError(suite.repository.ClaimForAssignment(ctx, first))

	stale, err := order.RestoreOrder(first.ID(), first.WarehouseID(), first.CustomerName(), first.Address(),
		first.Location(), order.Pending, nil, first.CreatedAt())
	suite.Require().NoError(err)
	suite.Require().NoError(stale.Assign(kernel.NewUUID()))

	err = suite.repository.ClaimForAssignment(ctx, stale)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	restored, err := suite.repository.Get(ctx, first.ID())
	suite.Require().NoError(err)
	suite.True(restored.Agent().IsEqual(firstAgent))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestClaimForAssignment_MissingRow() {
	o, err := order.NewOrder(kernel.NewUUID(), suite.warehouse, "Bob", "1 Main St", suite.location(), suite.now)
	suite.Require().NoError(err)
	suite.Require().NoError(o.Assign(kernel.NewUUID()))

	err = suite.repository.ClaimForAssignment(context.Background(), o)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetEligibleByWarehouse_OrderingAndFilter() {
	ctx := context.Background()
	newest := suite.addOrder(suite.warehouse, time.Minute)
	oldest := suite.addOrder(suite.warehouse, 3*time.Hour)
	deferred := suite.addOrder(suite.warehouse, 2*time.Hour)
	_, err := suite.repository.DeferAll(ctx, []kernel.UUID{deferred.ID()})
	suite.Require().NoError(err)

	assigned := suite.addOrder(suite.warehouse, 4*time.Hour)
	suite.Require().NoError(assigned.Assign(kernel.NewUUID()))
	suite.Require().NoError(suite.repository.ClaimForAssignment(ctx, assigned))

	suite.addOrder(kernel.NewUUID(), 5*time.Hour)

	orders, err := suite.repository.GetEligibleByWarehouse(ctx, suite.warehouse)
	suite.Require().NoError(err)

	suite.Require().Len(orders, 3)
	suite.True(orders[0].IsEqual(oldest))
	suite.True(orders[1].IsEqual(deferred))
	suite.Equal(order.Deferred, orders[1].Status())
	suite.True(orders[2].IsEqual(newest))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestDeferAll_SkipsAssignedOrders() {
	ctx := context.Background()
	pending := suite.addOrder(suite.warehouse, time.Hour)
	alreadyDeferred := suite.addOrder(suite.warehouse, time.Hour)
	_, err := suite.repository.DeferAll(ctx, []kernel.UUID{alreadyDeferred.ID()})
	suite.Require().NoError(err)
	assigned := suite.addOrder(suite.warehouse, time.Hour)
	suite.Require().NoError(assigned.Assign(kernel.NewUUID()))
	suite.Require().NoError(suite.repository.ClaimForAssignment(ctx, assigned))

	n, err := suite.repository.DeferAll(ctx, []kernel.UUID{pending.ID(), alreadyDeferred.ID(), assigned.ID()})
	suite.Require().NoError(err)
	suite.Equal(int64(2), n)

	restored, err := suite.repository.Get(ctx, pending.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Deferred, restored.Status())

	restored, err = suite.repository.Get(ctx, assigned.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Assigned, restored.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestDeferAll_Empty() {
	n, err := suite.repository.DeferAll(context.Background(), nil)

	suite.Require().NoError(err)
	suite.Zero(n)
}

func (suite *OrderRepositoryIntegrationTestSuite) addOrder(warehouseID kernel.UUID, age time.Duration) *order.Order {
	o, err := order.NewOrder(kernel.NewUUID(), warehouseID, "Alice", "221B Baker St", suite.location(), suite.now.Add(-age))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(context.Background(), o))
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) location() kernel.Location {
	loc, err := kernel.NewLocation(28.6139, 77.2090)
	suite.Require().NoError(err)
	return loc
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
