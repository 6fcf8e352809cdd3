package commands_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func makeCancelledOrderWithRefund(t *testing.T) *order.Order {
	t.Helper()
	aggregate := makePendingOrder(t)
	require.NoError(t, aggregate.Cancel("out of stock", "", time.Now()))
	require.NoError(t, aggregate.MarkRefundEligible(
		mustMoney(t, 500), "bank transfer", "Juan Dela Cruz", "0001-2345", "",
	))
	return aggregate
}

func expectOrderMutation(ctx context.Context, repo *MockOrderRepository, uow *MockOrderUoW, aggregate *order.Order) {
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		repo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
}

func TestUpdateRefundStatusCommandHandler_Handle_PendingToProcessing(t *testing.T) {
	ctx := t.Context()
	aggregate := makeCancelledOrderWithRefund(t)
	cmd, err := commands.NewUpdateRefundStatusCommand(aggregate.ID(), order.RefundProcessing, "")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	expectOrderMutation(ctx, repo, uow, aggregate)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateRefundStatusCommandHandler(factory, nil)
	updated, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, order.RefundProcessing, updated.Cancellation().Refund().Status())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestUpdateRefundStatusCommandHandler_Handle_CompletionRequiresReceipt(t *testing.T) {
	ctx := t.Context()
	aggregate := makeCancelledOrderWithRefund(t)
	require.NoError(t, aggregate.AdvanceRefund(order.RefundProcessing, ""))

	cmd, err := commands.NewUpdateRefundStatusCommand(aggregate.ID(), order.RefundCompleted, "")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateRefundStatusCommandHandler(factory, nil)
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, order.ErrMissingReceipt)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestUpdateRefundStatusCommandHandler_Handle_CompleteWithReceipt(t *testing.T) {
	ctx := t.Context()
	aggregate := makeCancelledOrderWithRefund(t)
	require.NoError(t, aggregate.AdvanceRefund(order.RefundProcessing, ""))

	cmd, err := commands.NewUpdateRefundStatusCommand(aggregate.ID(), order.RefundCompleted, "receipt.jpg")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	expectOrderMutation(ctx, repo, uow, aggregate)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateRefundStatusCommandHandler(factory, nil)
	updated, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	refund := updated.Cancellation().Refund()
	require.Equal(t, order.RefundCompleted, refund.Status())
	require.Equal(t, "receipt.jpg", refund.ReceiptRef())
}

func TestUpdateRefundStatusCommandHandler_Handle_SkippingStepFails(t *testing.T) {
	ctx := t.Context()
	aggregate := makeCancelledOrderWithRefund(t)
	cmd, err := commands.NewUpdateRefundStatusCommand(aggregate.ID(), order.RefundCompleted, "receipt.jpg")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateRefundStatusCommandHandler(factory, nil)
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, order.ErrInvalidTransition)
}
