package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/payoutrepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/payout"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// noopTracker satisfies the repository's tracker dependency for tests that
// exercise the repository outside a unit of work.
type noopTracker struct{}

func (noopTracker) TrackAggregate(_ kernel.UUID, _ any) {}

// OrderRepositoryIntegrationTestSuite tests the GORM order repository against
// a real PostgreSQL database.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	repo      *orderrepo.GormOrderRepository
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{}, &orderrepo.ItemDTO{}, &orderrepo.HistoryEntryDTO{},
		&payoutrepo.RecordDTO{}, &payoutrepo.LineDTO{},
	)
	suite.Require().NoError(err)

	suite.repo = orderrepo.NewGormOrderRepository(db, noopTracker{})
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec(
		"TRUNCATE TABLE orders, order_items, order_history, payouts, payout_lines",
	).Error
	suite.Require().NoError(err)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()

	testOrder := suite.newPendingOrder(kernel.NewUUID(), 2, 250)

	err := suite.repo.Add(ctx, testOrder)
	suite.Require().NoError(err)

	retrieved, err := suite.repo.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.Equal(testOrder.ID(), retrieved.ID())
	suite.Equal(testOrder.Seller(), retrieved.Seller())
	suite.Equal(order.MethodDelivery, retrieved.Method())
	suite.Equal(order.StatusPending, retrieved.Status())
	suite.True(testOrder.TotalPrice().IsEqual(retrieved.TotalPrice()))
	suite.Nil(retrieved.Rider())
	suite.Require().Len(retrieved.Items(), 1)
	suite.Equal(2, retrieved.Items()[0].Quantity())
	suite.Require().Len(retrieved.History(), 1)
	suite.Equal(order.StatusPending, retrieved.History()[0].Status())
	suite.Equal(1, retrieved.Version())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NotFound() {
	ctx := context.Background()

	_, err := suite.repo.Get(ctx, kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsStatusRiderAndHistory() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	testOrder := suite.newPendingOrder(kernel.NewUUID(), 1, 500)
	err := suite.repo.Add(ctx, testOrder)
	suite.Require().NoError(err)

	riderID := kernel.NewUUID()
	suite.Require().NoError(testOrder.Advance(order.StatusConfirmed, nil, now))
	suite.Require().NoError(testOrder.Advance(order.StatusPacking, nil, now.Add(time.Minute)))
	suite.Require().NoError(testOrder.Advance(order.StatusReadyToDeliver, &riderID, now.Add(2*time.Minute)))

	err = suite.repo.Update(ctx, testOrder)
	suite.Require().NoError(err)

	retrieved, err := suite.repo.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.Equal(order.StatusReadyToDeliver, retrieved.Status())
	suite.Require().NotNil(retrieved.Rider())
	suite.Equal(riderID, *retrieved.Rider())
	suite.Equal(2, retrieved.Version())

	history := retrieved.History()
	suite.Require().Len(history, 4)
	suite.Equal(order.StatusPending, history[0].Status())
	suite.Equal(order.StatusReadyToDeliver, history[3].Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StaleVersionConflicts() {
	ctx := context.Background()
	now := time.Now()

	testOrder := suite.newPendingOrder(kernel.NewUUID(), 1, 500)
	err := suite.repo.Add(ctx, testOrder)
	suite.Require().NoError(err)

	// Two readers load the same version and race to write.
	first, err := suite.repo.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	second, err := suite.repo.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(first.Advance(order.StatusConfirmed, nil, now))
	err = suite.repo.Update(ctx, first)
	suite.Require().NoError(err)

	suite.Require().NoError(second.Advance(order.StatusConfirmed, nil, now))
	err = suite.repo.Update(ctx, second)
	suite.Require().ErrorIs(err, errs.ErrVersionIsInvalid)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_CancellationWithRefundRoundTrip() {
	ctx := context.Background()
	now := time.Now()

	testOrder := suite.newPendingOrder(kernel.NewUUID(), 1, 500)
	err := suite.repo.Add(ctx, testOrder)
	suite.Require().NoError(err)

	suite.Require().NoError(testOrder.Cancel("buyer changed their mind", "proof.jpg", now))

	amount, err := kernel.MoneyFromFloat(500)
	suite.Require().NoError(err)
	suite.Require().NoError(testOrder.MarkRefundEligible(
		amount, "bank transfer", "Juan Dela Cruz", "0001-2345", "",
	))

	err = suite.repo.Update(ctx, testOrder)
	suite.Require().NoError(err)

	retrieved, err := suite.repo.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.Equal(order.StatusCancelled, retrieved.Status())
	suite.Require().NotNil(retrieved.Cancellation())
	suite.Equal("buyer changed their mind", retrieved.Cancellation().Reason())
	suite.Equal("proof.jpg", retrieved.Cancellation().ProofImageRef())

	refund := retrieved.Cancellation().Refund()
	suite.Require().NotNil(refund)
	suite.True(amount.IsEqual(refund.Amount()))
	suite.Equal("bank transfer", refund.PayoutMethod())
	suite.Equal(order.RefundPending, refund.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_ReplacementRoundTrip() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	testOrder := suite.newPendingOrder(kernel.NewUUID(), 1, 500)
	suite.deliver(testOrder, now)
	err := suite.repo.Add(ctx, testOrder)
	suite.Require().NoError(err)

	item := testOrder.Items()[0]
	suite.Require().NoError(testOrder.RequestReplacement([]order.ReplacementRequest{
		{
			ItemID:      item.ID(),
			Reason:      "item arrived crushed",
			Description: "box was soaked through",
			ImageRefs:   []string{"damage1.jpg", "damage2.jpg"},
		},
	}, now))

	err = suite.repo.Update(ctx, testOrder)
	suite.Require().NoError(err)

	retrieved, err := suite.repo.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.Equal(order.StatusReplacementRequested, retrieved.Status())
	replacement := retrieved.Items()[0].Replacement()
	suite.Require().NotNil(replacement)
	suite.Equal(order.ReplacementPending, replacement.Status())
	suite.Equal("item arrived crushed", replacement.Reason())
	suite.Equal([]string{"damage1.jpg", "damage2.jpg"}, replacement.ImageRefs())
	suite.Equal(now, replacement.RequestedAt().UTC())

	// Approve with fault and verify the verdict round-trips too.
	_, err = retrieved.ReviewReplacement([]order.ReviewDecision{
		{
			ItemID:       item.ID(),
			Decision:     order.DecisionApprove,
			Fault:        order.FaultRider,
			FaultDetails: "dropped during transit",
		},
	}, now.Add(time.Hour))
	suite.Require().NoError(err)

	err = suite.repo.Update(ctx, retrieved)
	suite.Require().NoError(err)

	reviewed, err := suite.repo.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.Equal(order.StatusReplacementConfirmed, reviewed.Status())
	verdict := reviewed.Items()[0].Replacement()
	suite.Require().NotNil(verdict)
	suite.Equal(order.ReplacementApproved, verdict.Status())
	suite.Equal(order.FaultRider, verdict.Fault())
	suite.Equal("dropped during transit", verdict.FaultDetails())
	suite.True(reviewed.Items()[0].IsReviewed())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllSettleable_ReturnsCompletedUnsettledOrders() {
	ctx := context.Background()
	sellerID := kernel.NewUUID()

	periodFrom := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	periodTo := periodFrom.AddDate(0, 0, 7)
	period := payout.Period{From: periodFrom, To: periodTo}

	inPeriod := suite.newPendingOrder(sellerID, 1, 500)
	suite.complete(inPeriod, periodFrom.Add(24*time.Hour))
	suite.Require().NoError(suite.repo.Add(ctx, inPeriod))

	beforePeriod := suite.newPendingOrder(sellerID, 1, 200)
	suite.complete(beforePeriod, periodFrom.Add(-time.Hour))
	suite.Require().NoError(suite.repo.Add(ctx, beforePeriod))

	stillPending := suite.newPendingOrder(sellerID, 1, 300)
	suite.Require().NoError(suite.repo.Add(ctx, stillPending))

	otherSeller := suite.newPendingOrder(kernel.NewUUID(), 1, 400)
	suite.complete(otherSeller, periodFrom.Add(24*time.Hour))
	suite.Require().NoError(suite.repo.Add(ctx, otherSeller))

	lines, err := suite.repo.GetAllSettleable(ctx, sellerID, payout.PayeeSeller, period)
	suite.Require().NoError(err)

	suite.Require().Len(lines, 1)
	suite.Equal(inPeriod.ID(), lines[0].OrderID)
	suite.True(inPeriod.TotalPrice().IsEqual(lines[0].Gross))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllSettleable_ExcludesAlreadySettledOrders() {
	ctx := context.Background()
	sellerID := kernel.NewUUID()

	periodFrom := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	period := payout.Period{From: periodFrom, To: periodFrom.AddDate(0, 0, 7)}

	settled := suite.newPendingOrder(sellerID, 1, 500)
	suite.complete(settled, periodFrom.Add(24*time.Hour))
	suite.Require().NoError(suite.repo.Add(ctx, settled))

	unsettled := suite.newPendingOrder(sellerID, 1, 200)
	suite.complete(unsettled, periodFrom.Add(48*time.Hour))
	suite.Require().NoError(suite.repo.Add(ctx, unsettled))

	gross, err := kernel.MoneyFromFloat(500)
	suite.Require().NoError(err)
	record, err := payout.NewRecord(
		kernel.NewUUID(), sellerID, payout.PayeeSeller, period,
		[]payout.Line{{OrderID: settled.ID(), Gross: gross}},
	)
	suite.Require().NoError(err)

	payoutRepo := payoutrepo.NewGormPayoutRepository(suite.db, noopTracker{})
	suite.Require().NoError(payoutRepo.Add(ctx, record))

	lines, err := suite.repo.GetAllSettleable(ctx, sellerID, payout.PayeeSeller, period)
	suite.Require().NoError(err)

	suite.Require().Len(lines, 1)
	suite.Equal(unsettled.ID(), lines[0].OrderID)

	// The same order is still settleable for the rider kind: a seller payout
	// must not hide it from rider settlement.
	rider := settled.Rider()
	suite.Require().NotNil(rider)
	riderLines, err := suite.repo.GetAllSettleable(ctx, *rider, payout.PayeeRider, period)
	suite.Require().NoError(err)
	suite.Require().Len(riderLines, 1)
	suite.Equal(settled.ID(), riderLines[0].OrderID)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetSettleablePayees() {
	ctx := context.Background()

	periodFrom := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	period := payout.Period{From: periodFrom, To: periodFrom.AddDate(0, 0, 7)}

	sellerA := kernel.NewUUID()
	sellerB := kernel.NewUUID()

	orderA1 := suite.newPendingOrder(sellerA, 1, 500)
	suite.complete(orderA1, periodFrom.Add(24*time.Hour))
	suite.Require().NoError(suite.repo.Add(ctx, orderA1))

	orderA2 := suite.newPendingOrder(sellerA, 1, 200)
	suite.complete(orderA2, periodFrom.Add(48*time.Hour))
	suite.Require().NoError(suite.repo.Add(ctx, orderA2))

	orderB := suite.newPendingOrder(sellerB, 1, 300)
	suite.complete(orderB, periodFrom.Add(24*time.Hour))
	suite.Require().NoError(suite.repo.Add(ctx, orderB))

	payees, err := suite.repo.GetSettleablePayees(ctx, payout.PayeeSeller, period)
	suite.Require().NoError(err)

	suite.Require().Len(payees, 2)
	suite.ElementsMatch([]kernel.UUID{sellerA, sellerB}, payees)
}

// newPendingOrder creates a pending delivery order for sellerID with a single
// line of the given quantity and unit price.
func (suite *OrderRepositoryIntegrationTestSuite) newPendingOrder(
	sellerID kernel.UUID,
	quantity int,
	unitPrice float64,
) *order.Order {
	price, err := kernel.MoneyFromFloat(unitPrice)
	suite.Require().NoError(err)

	item, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), quantity, price)
	suite.Require().NoError(err)

	total := price.Mul(quantity)
	testOrder, err := order.NewOrder(
		kernel.NewUUID(), sellerID, order.MethodDelivery,
		[]*order.Item{item}, total, time.Now(),
	)
	suite.Require().NoError(err)
	return testOrder
}

// deliver walks an order through the delivery flow up to delivered.
func (suite *OrderRepositoryIntegrationTestSuite) deliver(o *order.Order, at time.Time) {
	riderID := kernel.NewUUID()
	suite.Require().NoError(o.Advance(order.StatusConfirmed, nil, at))
	suite.Require().NoError(o.Advance(order.StatusPacking, nil, at))
	suite.Require().NoError(o.Advance(order.StatusReadyToDeliver, &riderID, at))
	suite.Require().NoError(o.Advance(order.StatusInTransit, nil, at))
	suite.Require().NoError(o.Advance(order.StatusDelivered, nil, at))
}

// complete delivers the order and then completes it at the given time.
func (suite *OrderRepositoryIntegrationTestSuite) complete(o *order.Order, at time.Time) {
	suite.deliver(o, at.Add(-time.Hour))
	suite.Require().NoError(o.Advance(order.StatusCompleted, nil, at))
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
