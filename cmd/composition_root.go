package cmd

import (
	"log/slog"
	"os"

	"fulfillment/internal/adapters/out/clock"
	"fulfillment/internal/adapters/out/filestore"
	"fulfillment/internal/adapters/out/notify"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/riderrepo"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	logger     *slog.Logger
	clock      ports.Clock
	notifier   ports.NotificationDispatcher
	riders     ports.RiderDirectory
	files      ports.FileStore
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB) (CompositionRoot, error) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	files, err := filestore.NewLocalStore(configs.FileStoreDir)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
		clock:      clock.NewSystemClock(),
		notifier:   notify.NewSlogDispatcher(logger),
		riders:     riderrepo.NewGormRiderDirectory(gormDB),
		files:      files,
	}, nil
}

func (c *CompositionRoot) Logger() *slog.Logger {
	return c.logger
}

func (c *CompositionRoot) FileStore() ports.FileStore {
	return c.files
}

func (c *CompositionRoot) CreateAdvanceOrderStatusCommandHandler() commands.AdvanceOrderStatusCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAdvanceOrderStatusCommandHandler(f, c.riders, c.clock, c.notifier)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelOrderCommandHandler(f, c.clock, c.notifier)
}

func (c *CompositionRoot) CreateRequestReplacementCommandHandler() commands.RequestReplacementCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRequestReplacementCommandHandler(f, c.clock, c.notifier)
}

func (c *CompositionRoot) CreateReviewReplacementCommandHandler() commands.ReviewReplacementCommandHandler {
	var f commands.ReviewUoWFactory = FuncReviewUoWFactory(func() commands.ReviewUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReviewReplacementCommandHandler(
		f,
		services.NewFaultCalculator(services.DefaultLiabilityPolicy()),
		c.clock,
		c.notifier,
	)
}

func (c *CompositionRoot) CreateUpdateRefundStatusCommandHandler() commands.UpdateRefundStatusCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateRefundStatusCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateRejectRefundCommandHandler() commands.RejectRefundCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRejectRefundCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateSettlePayoutCommandHandler() commands.SettlePayoutCommandHandler {
	var f commands.SettlementUoWFactory = FuncSettlementUoWFactory(func() commands.SettlementUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSettlePayoutCommandHandler(f)
}

func (c *CompositionRoot) CreateMarkPayoutPaidCommandHandler() commands.MarkPayoutPaidCommandHandler {
	var f commands.PayoutUoWFactory = FuncPayoutUoWFactory(func() commands.PayoutUoW {
		return c.uowFactory.Create()
	})
	return commands.NewMarkPayoutPaidCommandHandler(f, c.clock)
}

func (c *CompositionRoot) CreateDeletePayoutCommandHandler() commands.DeletePayoutCommandHandler {
	var f commands.PayoutUoWFactory = FuncPayoutUoWFactory(func() commands.PayoutUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeletePayoutCommandHandler(f)
}

func (c *CompositionRoot) CreateGetOrderProgressQueryHandler() queries.GetOrderProgressQueryHandler {
	return queries.NewGetOrderProgressQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetStatusHistoryQueryHandler() queries.GetStatusHistoryQueryHandler {
	return queries.NewGetStatusHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPayoutsQueryHandler() queries.GetPayoutsQueryHandler {
	return queries.NewGetPayoutsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetRefundLedgerQueryHandler() queries.GetRefundLedgerQueryHandler {
	return queries.NewGetRefundLedgerQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateSettlePayoutCommandHandler(),
		&c.uowFactory,
		c.clock,
		c.logger,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncPayoutUoWFactory func() commands.PayoutUoW

func (f FuncPayoutUoWFactory) Create() commands.PayoutUoW {
	return f()
}

type FuncReviewUoWFactory func() commands.ReviewUoW

func (f FuncReviewUoWFactory) Create() commands.ReviewUoW {
	return f()
}

type FuncSettlementUoWFactory func() commands.SettlementUoW

func (f FuncSettlementUoWFactory) Create() commands.SettlementUoW {
	return f()
}
