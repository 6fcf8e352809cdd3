package refundledgerrepo_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/refundledgerrepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/ledger"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// RefundLedgerIntegrationTestSuite tests the GORM refund ledger repository
// against a real PostgreSQL database.
type RefundLedgerIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	repo      *refundledgerrepo.GormRefundLedger
}

func (suite *RefundLedgerIntegrationTestSuite) SetupSuite() {
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

	err = db.AutoMigrate(&refundledgerrepo.EntryDTO{})
	suite.Require().NoError(err)

	suite.repo = refundledgerrepo.NewGormRefundLedger(db)
}

func (suite *RefundLedgerIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE refund_ledger").Error
	suite.Require().NoError(err)
}

func (suite *RefundLedgerIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *RefundLedgerIntegrationTestSuite) TestAppendAndGetByOrder_RoundTrip() {
	ctx := context.Background()
	orderID := kernel.NewUUID()
	createdAt := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)

	entry := suite.newEntry(orderID, 500, order.FaultRider, 500, createdAt)

	err := suite.repo.Append(ctx, entry)
	suite.Require().NoError(err)

	entries, err := suite.repo.GetByOrder(ctx, orderID)
	suite.Require().NoError(err)

	suite.Require().Len(entries, 1)
	suite.Equal(entry.ID(), entries[0].ID())
	suite.Equal(orderID, entries[0].OrderID())
	suite.Equal(order.FaultRider, entries[0].FaultParty())
	suite.Equal("500.00", entries[0].Amount().String())
	suite.Equal("500.00", entries[0].RiderLiability().String())
	suite.True(createdAt.Equal(entries[0].CreatedAt().UTC()))
}

func (suite *RefundLedgerIntegrationTestSuite) TestGetByOrder_OldestFirst() {
	ctx := context.Background()
	orderID := kernel.NewUUID()
	base := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)

	second := suite.newEntry(orderID, 200, order.FaultSeller, 0, base.Add(time.Hour))
	first := suite.newEntry(orderID, 500, order.FaultRider, 500, base)

	suite.Require().NoError(suite.repo.Append(ctx, second))
	suite.Require().NoError(suite.repo.Append(ctx, first))

	entries, err := suite.repo.GetByOrder(ctx, orderID)
	suite.Require().NoError(err)

	suite.Require().Len(entries, 2)
	suite.Equal(first.ID(), entries[0].ID())
	suite.Equal(second.ID(), entries[1].ID())
}

func (suite *RefundLedgerIntegrationTestSuite) TestGetByOrder_FiltersByOrder() {
	ctx := context.Background()
	orderID := kernel.NewUUID()
	now := time.Now()

	mine := suite.newEntry(orderID, 500, order.FaultRider, 500, now)
	other := suite.newEntry(kernel.NewUUID(), 200, order.FaultSeller, 0, now)

	suite.Require().NoError(suite.repo.Append(ctx, mine))
	suite.Require().NoError(suite.repo.Append(ctx, other))

	entries, err := suite.repo.GetByOrder(ctx, orderID)
	suite.Require().NoError(err)

	suite.Require().Len(entries, 1)
	suite.Equal(mine.ID(), entries[0].ID())
}

func (suite *RefundLedgerIntegrationTestSuite) newEntry(
	orderID kernel.UUID,
	amount float64,
	fault order.FaultParty,
	riderLiability float64,
	createdAt time.Time,
) *ledger.Entry {
	refund, err := kernel.MoneyFromFloat(amount)
	suite.Require().NoError(err)

	liability, err := kernel.MoneyFromFloat(riderLiability)
	suite.Require().NoError(err)

	entry, err := ledger.NewEntry(
		kernel.NewUUID(), orderID, kernel.NewUUID(), kernel.NewUUID(),
		refund, fault, liability, createdAt,
	)
	suite.Require().NoError(err)
	return entry
}

func TestRefundLedgerIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(RefundLedgerIntegrationTestSuite))
}
