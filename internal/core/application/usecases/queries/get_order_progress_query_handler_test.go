package queries_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetOrderProgressQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetOrderProgressQueryHandler
	orderRepo *orderrepo.GormOrderRepository
}

func (suite *GetOrderProgressQueryHandlerTestSuite) SetupSuite() {
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

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.ItemDTO{}, &orderrepo.HistoryEntryDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetOrderProgressQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, &mockAggregateTracker{})
}

func (suite *GetOrderProgressQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetOrderProgressQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, order_items, order_history").Error
	suite.Require().NoError(err)
}

func (suite *GetOrderProgressQueryHandlerTestSuite) TestHandle_PendingDeliveryOrder() {
	ctx := context.Background()

	testOrder := suite.newOrder(order.MethodDelivery)
	suite.Require().NoError(suite.orderRepo.Add(ctx, testOrder))

	query, err := queries.NewGetOrderProgressQuery(testOrder.ID())
	suite.Require().NoError(err)

	progress, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Equal(testOrder.ID(), progress.OrderID)
	suite.Equal(order.MethodDelivery, progress.Method)
	suite.Equal(order.StatusPending, progress.Status)
	suite.Equal(0, progress.StepIndex)
	suite.Equal(order.Flow(order.MethodDelivery), progress.Steps)
	suite.False(progress.Replacement)
}

func (suite *GetOrderProgressQueryHandlerTestSuite) TestHandle_PickupFlowIsShorter() {
	ctx := context.Background()

	testOrder := suite.newOrder(order.MethodPickup)
	suite.Require().NoError(testOrder.Advance(order.StatusConfirmed, nil, time.Now()))
	suite.Require().NoError(suite.orderRepo.Add(ctx, testOrder))

	query, err := queries.NewGetOrderProgressQuery(testOrder.ID())
	suite.Require().NoError(err)

	progress, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Equal(order.MethodPickup, progress.Method)
	suite.Equal(1, progress.StepIndex)
	suite.Len(progress.Steps, 5)
}

func (suite *GetOrderProgressQueryHandlerTestSuite) TestHandle_ReplacementFlowOrder() {
	ctx := context.Background()
	now := time.Now()

	testOrder := suite.newOrder(order.MethodDelivery)
	suite.deliver(testOrder, now)

	item := testOrder.Items()[0]
	suite.Require().NoError(testOrder.RequestReplacement([]order.ReplacementRequest{
		{ItemID: item.ID(), Reason: "item arrived crushed"},
	}, now))
	_, err := testOrder.ReviewReplacement([]order.ReviewDecision{
		{ItemID: item.ID(), Decision: order.DecisionApprove, Fault: order.FaultSeller},
	}, now)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orderRepo.Add(ctx, testOrder))

	query, err := queries.NewGetOrderProgressQuery(testOrder.ID())
	suite.Require().NoError(err)

	progress, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Equal(order.StatusReplacementConfirmed, progress.Status)
	suite.True(progress.Replacement)
	suite.Equal(order.ReplacementFlow(order.MethodDelivery), progress.Steps)
	suite.Equal(0, progress.StepIndex)
}

func (suite *GetOrderProgressQueryHandlerTestSuite) TestHandle_CancelledOrderHasNoStep() {
	ctx := context.Background()

	testOrder := suite.newOrder(order.MethodDelivery)
	suite.Require().NoError(testOrder.Cancel("buyer changed their mind", "", time.Now()))
	suite.Require().NoError(suite.orderRepo.Add(ctx, testOrder))

	query, err := queries.NewGetOrderProgressQuery(testOrder.ID())
	suite.Require().NoError(err)

	progress, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Equal(order.StatusCancelled, progress.Status)
	suite.Equal(-1, progress.StepIndex)
	suite.False(progress.Replacement)
}

func (suite *GetOrderProgressQueryHandlerTestSuite) TestHandle_UnknownOrder() {
	ctx := context.Background()

	query, err := queries.NewGetOrderProgressQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(ctx, query)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *GetOrderProgressQueryHandlerTestSuite) newOrder(method order.Method) *order.Order {
	price, err := kernel.MoneyFromFloat(500)
	suite.Require().NoError(err)

	item, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), 1, price)
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), method,
		[]*order.Item{item}, price, time.Now(),
	)
	suite.Require().NoError(err)
	return testOrder
}

func (suite *GetOrderProgressQueryHandlerTestSuite) deliver(o *order.Order, at time.Time) {
	riderID := kernel.NewUUID()
	suite.Require().NoError(o.Advance(order.StatusConfirmed, nil, at))
	suite.Require().NoError(o.Advance(order.StatusPacking, nil, at))
	suite.Require().NoError(o.Advance(order.StatusReadyToDeliver, &riderID, at))
	suite.Require().NoError(o.Advance(order.StatusInTransit, nil, at))
	suite.Require().NoError(o.Advance(order.StatusDelivered, nil, at))
}

func TestGetOrderProgressQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetOrderProgressQueryHandlerTestSuite))
}
