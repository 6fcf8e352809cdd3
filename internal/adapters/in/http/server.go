package http

import (
	"errors"
	"net/http"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/payout"
	"fulfillment/internal/generated/servers"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	advanceOrderStatusHandler commands.AdvanceOrderStatusCommandHandler
	cancelOrderHandler        commands.CancelOrderCommandHandler
	requestReplacementHandler commands.RequestReplacementCommandHandler
	reviewReplacementHandler  commands.ReviewReplacementCommandHandler
	updateRefundStatusHandler commands.UpdateRefundStatusCommandHandler
	rejectRefundHandler       commands.RejectRefundCommandHandler
	settlePayoutHandler       commands.SettlePayoutCommandHandler
	markPayoutPaidHandler     commands.MarkPayoutPaidCommandHandler
	deletePayoutHandler       commands.DeletePayoutCommandHandler

	// Query handlers
	getOrderProgressHandler queries.GetOrderProgressQueryHandler
	getStatusHistoryHandler queries.GetStatusHistoryQueryHandler
	getPayoutsHandler       queries.GetPayoutsQueryHandler
	getRefundLedgerHandler  queries.GetRefundLedgerQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	advanceOrderStatusHandler commands.AdvanceOrderStatusCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	requestReplacementHandler commands.RequestReplacementCommandHandler,
	reviewReplacementHandler commands.ReviewReplacementCommandHandler,
	updateRefundStatusHandler commands.UpdateRefundStatusCommandHandler,
	rejectRefundHandler commands.RejectRefundCommandHandler,
	settlePayoutHandler commands.SettlePayoutCommandHandler,
	markPayoutPaidHandler commands.MarkPayoutPaidCommandHandler,
	deletePayoutHandler commands.DeletePayoutCommandHandler,
	getOrderProgressHandler queries.GetOrderProgressQueryHandler,
	getStatusHistoryHandler queries.GetStatusHistoryQueryHandler,
	getPayoutsHandler queries.GetPayoutsQueryHandler,
	getRefundLedgerHandler queries.GetRefundLedgerQueryHandler,
) *Server {
	return &Server{
		advanceOrderStatusHandler: advanceOrderStatusHandler,
		cancelOrderHandler:        cancelOrderHandler,
		requestReplacementHandler: requestReplacementHandler,
		reviewReplacementHandler:  reviewReplacementHandler,
		updateRefundStatusHandler: updateRefundStatusHandler,
		rejectRefundHandler:       rejectRefundHandler,
		settlePayoutHandler:       settlePayoutHandler,
		markPayoutPaidHandler:     markPayoutPaidHandler,
		deletePayoutHandler:       deletePayoutHandler,
		getOrderProgressHandler:   getOrderProgressHandler,
		getStatusHistoryHandler:   getStatusHistoryHandler,
		getPayoutsHandler:         getPayoutsHandler,
		getRefundLedgerHandler:    getRefundLedgerHandler,
	}
}

// UpdateOrderStatus handles POST /api/v1/orders/{orderId}/status.
func (s *Server) UpdateOrderStatus(ctx echo.Context, orderId openapi_types.UUID) error {
	var body servers.UpdateOrderStatusJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderID, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	target, err := order.StatusFromString(body.Status)
	if err != nil {
		return badRequest(ctx, "Invalid status: "+err.Error())
	}

	var riderID *kernel.UUID
	if body.RiderId != nil {
		id, riderErr := kernel.UUIDFromBytes(body.RiderId[:])
		if riderErr != nil {
			return badRequest(ctx, "Invalid rider id: "+riderErr.Error())
		}
		riderID = &id
	}

	cmd, err := commands.NewAdvanceOrderStatusCommand(orderID, target, riderID)
	if err != nil {
		return badRequest(ctx, "Invalid status change data: "+err.Error())
	}

	if _, err := s.advanceOrderStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/{orderId}/cancel.
func (s *Server) CancelOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	var body servers.CancelOrderJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderID, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	var refund *commands.RefundDetails
	if body.Refund != nil {
		amount, moneyErr := kernel.MoneyFromString(body.Refund.Amount)
		if moneyErr != nil {
			return badRequest(ctx, "Invalid refund amount: "+moneyErr.Error())
		}

		refund = &commands.RefundDetails{
			Amount:        amount,
			Method:        body.Refund.Method,
			AccountName:   body.Refund.AccountName,
			AccountNumber: body.Refund.AccountNumber,
			QRRef:         valueOrEmpty(body.Refund.QrRef),
		}
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, body.Reason, valueOrEmpty(body.ProofImageRef), refund)
	if err != nil {
		return badRequest(ctx, "Invalid cancellation data: "+err.Error())
	}

	if _, err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RequestOrderReplacement handles POST /api/v1/orders/{orderId}/replacement/request.
func (s *Server) RequestOrderReplacement(ctx echo.Context, orderId openapi_types.UUID) error {
	var body servers.RequestOrderReplacementJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderID, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	requests := make([]order.ReplacementRequest, 0, len(body.Items))
	for _, item := range body.Items {
		itemID, itemErr := kernel.UUIDFromBytes(item.ItemId[:])
		if itemErr != nil {
			return badRequest(ctx, "Invalid item id: "+itemErr.Error())
		}

		var imageRefs []string
		if item.ImageRefs != nil {
			imageRefs = *item.ImageRefs
		}

		requests = append(requests, order.ReplacementRequest{
			ItemID:      itemID,
			Reason:      item.Reason,
			Description: valueOrEmpty(item.Description),
			ImageRefs:   imageRefs,
		})
	}

	cmd, err := commands.NewRequestReplacementCommand(orderID, requests)
	if err != nil {
		return badRequest(ctx, "Invalid replacement request data: "+err.Error())
	}

	if _, err := s.requestReplacementHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReviewOrderReplacement handles POST /api/v1/orders/{orderId}/replacement/review.
func (s *Server) ReviewOrderReplacement(ctx echo.Context, orderId openapi_types.UUID) error {
	var body servers.ReviewOrderReplacementJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderID, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	decisions := make([]order.ReviewDecision, 0, len(body.Items))
	for _, item := range body.Items {
		itemID, itemErr := kernel.UUIDFromBytes(item.ItemId[:])
		if itemErr != nil {
			return badRequest(ctx, "Invalid item id: "+itemErr.Error())
		}

		decision, parseErr := order.DecisionFromString(item.Decision)
		if parseErr != nil {
			return badRequest(ctx, "Invalid decision: "+parseErr.Error())
		}

		fault := order.FaultUnknown
		if item.Fault != nil {
			fault, parseErr = order.FaultPartyFromString(*item.Fault)
			if parseErr != nil {
				return badRequest(ctx, "Invalid fault party: "+parseErr.Error())
			}
		}

		decisions = append(decisions, order.ReviewDecision{
			ItemID:       itemID,
			Decision:     decision,
			Fault:        fault,
			FaultDetails: valueOrEmpty(item.FaultDetails),
			Notes:        valueOrEmpty(item.Notes),
		})
	}

	cmd, err := commands.NewReviewReplacementCommand(orderID, decisions)
	if err != nil {
		return badRequest(ctx, "Invalid review data: "+err.Error())
	}

	if _, err := s.reviewReplacementHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateOrderRefundStatus handles POST /api/v1/orders/{orderId}/refund/status.
func (s *Server) UpdateOrderRefundStatus(ctx echo.Context, orderId openapi_types.UUID) error {
	var body servers.UpdateOrderRefundStatusJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderID, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	target, err := order.RefundStatusFromString(body.Status)
	if err != nil {
		return badRequest(ctx, "Invalid refund status: "+err.Error())
	}

	cmd, err := commands.NewUpdateRefundStatusCommand(orderID, target, valueOrEmpty(body.ReceiptRef))
	if err != nil {
		return badRequest(ctx, "Invalid refund change data: "+err.Error())
	}

	if _, err := s.updateRefundStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RejectOrderRefund handles POST /api/v1/orders/{orderId}/refund/reject.
func (s *Server) RejectOrderRefund(ctx echo.Context, orderId openapi_types.UUID) error {
	var body servers.RejectOrderRefundJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderID, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	cmd, err := commands.NewRejectRefundCommand(orderID, body.Reason)
	if err != nil {
		return badRequest(ctx, "Invalid rejection data: "+err.Error())
	}

	if _, err := s.rejectRefundHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetOrderProgress handles GET /api/v1/orders/{orderId}/progress.
func (s *Server) GetOrderProgress(ctx echo.Context, orderId openapi_types.UUID) error {
	orderID, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	query, err := queries.NewGetOrderProgressQuery(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	progress, err := s.getOrderProgressHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	steps := make([]string, len(progress.Steps))
	for i, step := range progress.Steps {
		steps[i] = step.String()
	}

	return ctx.JSON(http.StatusOK, servers.OrderProgress{
		OrderId:     progress.OrderID.Bytes(),
		Method:      progress.Method.String(),
		Status:      progress.Status.String(),
		StepIndex:   progress.StepIndex,
		Steps:       steps,
		Replacement: progress.Replacement,
	})
}

// GetOrderHistory handles GET /api/v1/orders/{orderId}/history.
func (s *Server) GetOrderHistory(ctx echo.Context, orderId openapi_types.UUID) error {
	orderID, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	query, err := queries.NewGetStatusHistoryQuery(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	entries, err := s.getStatusHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	response := make([]servers.HistoryEntry, len(entries))
	for i, entry := range entries {
		response[i] = servers.HistoryEntry{
			Status:      entry.Status.String(),
			OccurredAt:  entry.OccurredAt,
			Description: entry.Description,
			Location:    entry.Location,
			ImageRef:    entry.ImageRef,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrderRefundLedger handles GET /api/v1/orders/{orderId}/ledger.
func (s *Server) GetOrderRefundLedger(ctx echo.Context, orderId openapi_types.UUID) error {
	orderID, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	query, err := queries.NewGetRefundLedgerQuery(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	entries, err := s.getRefundLedgerHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	response := make([]servers.RefundLedgerEntry, len(entries))
	for i, entry := range entries {
		response[i] = servers.RefundLedgerEntry{
			Id:             entry.ID.Bytes(),
			ItemId:         entry.ItemID.Bytes(),
			ProdId:         entry.ProdID.Bytes(),
			Amount:         entry.Amount.String(),
			FaultParty:     entry.FaultParty.String(),
			RiderLiability: entry.RiderLiability.String(),
			CreatedAt:      entry.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// SettlePayouts handles POST /api/v1/payouts/settle.
func (s *Server) SettlePayouts(ctx echo.Context) error {
	var body servers.SettlePayoutsJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	payeeID, err := kernel.UUIDFromBytes(body.PayeeId[:])
	if err != nil {
		return badRequest(ctx, "Invalid payee id: "+err.Error())
	}

	kind, err := payout.PayeeKindFromString(body.PayeeKind)
	if err != nil {
		return badRequest(ctx, "Invalid payee kind: "+err.Error())
	}

	cmd, err := commands.NewSettlePayoutCommand(payeeID, kind, payout.Period{
		From: body.PeriodFrom,
		To:   body.PeriodTo,
	})
	if err != nil {
		return badRequest(ctx, "Invalid settlement data: "+err.Error())
	}

	record, err := s.settlePayoutHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, payoutResponse(
		record.ID(),
		record.PayeeID(),
		record.PayeeKind(),
		record.Period().From,
		record.Period().To,
		record.TotalAmount(),
		record.TaxAmount(),
		record.NetAmount(),
		record.Status(),
		record.ReceiptRef(),
		record.PaidAt(),
		len(record.Lines()),
	))
}

// MarkPayoutPaid handles POST /api/v1/payouts/{payoutId}/paid.
func (s *Server) MarkPayoutPaid(ctx echo.Context, payoutId openapi_types.UUID) error {
	var body servers.MarkPayoutPaidJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	payoutID, err := kernel.UUIDFromBytes(payoutId[:])
	if err != nil {
		return badRequest(ctx, "Invalid payout id: "+err.Error())
	}

	cmd, err := commands.NewMarkPayoutPaidCommand(payoutID, body.ReceiptRef)
	if err != nil {
		return badRequest(ctx, "Invalid disbursement data: "+err.Error())
	}

	if _, err := s.markPayoutPaidHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DeletePayout handles DELETE /api/v1/payouts/{payoutId}.
func (s *Server) DeletePayout(ctx echo.Context, payoutId openapi_types.UUID) error {
	payoutID, err := kernel.UUIDFromBytes(payoutId[:])
	if err != nil {
		return badRequest(ctx, "Invalid payout id: "+err.Error())
	}

	cmd, err := commands.NewDeletePayoutCommand(payoutID)
	if err != nil {
		return badRequest(ctx, "Invalid payout id: "+err.Error())
	}

	if err := s.deletePayoutHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetPayeePayouts handles GET /api/v1/payees/{payeeId}/payouts.
func (s *Server) GetPayeePayouts(ctx echo.Context, payeeId openapi_types.UUID) error {
	payeeID, err := kernel.UUIDFromBytes(payeeId[:])
	if err != nil {
		return badRequest(ctx, "Invalid payee id: "+err.Error())
	}

	query, err := queries.NewGetPayoutsQuery(payeeID)
	if err != nil {
		return badRequest(ctx, "Invalid payee id: "+err.Error())
	}

	records, err := s.getPayoutsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	response := make([]servers.Payout, len(records))
	for i, record := range records {
		response[i] = payoutResponse(
			record.ID,
			record.PayeeID,
			record.PayeeKind,
			record.PeriodFrom,
			record.PeriodTo,
			record.TotalAmount,
			record.TaxAmount,
			record.NetAmount,
			record.Status,
			record.ReceiptRef,
			record.PaidAt,
			record.LineCount,
		)
	}

	return ctx.JSON(http.StatusOK, response)
}

func payoutResponse(
	id, payeeID kernel.UUID,
	kind payout.PayeeKind,
	periodFrom, periodTo time.Time,
	totalAmount, taxAmount, netAmount kernel.Money,
	status payout.Status,
	receiptRef string,
	paidAt *time.Time,
	lineCount int,
) servers.Payout {
	return servers.Payout{
		Id:          id.Bytes(),
		PayeeId:     payeeID.Bytes(),
		PayeeKind:   kind.String(),
		PeriodFrom:  periodFrom,
		PeriodTo:    periodTo,
		TotalAmount: totalAmount.String(),
		TaxAmount:   taxAmount.String(),
		NetAmount:   netAmount.String(),
		Status:      status.String(),
		ReceiptRef:  receiptRef,
		PaidAt:      paidAt,
		LineCount:   lineCount,
	}
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, servers.Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// domainError translates failures crossing the command and query boundary
// into HTTP statuses. Missing objects map to 404, state machine refusals and
// stale versions to 409, domain validation failures to 422.
func domainError(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrMissingRider),
		errors.Is(err, order.ErrWindowExpired),
		errors.Is(err, order.ErrAlreadyRequested),
		errors.Is(err, order.ErrReviewIncomplete),
		errors.Is(err, payout.ErrRecordImmutable),
		errors.Is(err, errs.ErrVersionIsInvalid):
		code = http.StatusConflict
	case errors.Is(err, order.ErrMissingReason),
		errors.Is(err, order.ErrMissingReceipt),
		errors.Is(err, order.ErrReviewValidation),
		errors.Is(err, payout.ErrMissingReceipt),
		errors.Is(err, commands.ErrNothingToSettle),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		code = http.StatusUnprocessableEntity
	}

	return ctx.JSON(code, servers.Error{
		Code:    int32(code),
		Message: err.Error(),
	})
}

func valueOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
