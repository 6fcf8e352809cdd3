package queries

import (
	"context"
	"database/sql"
	"errors"

	"gorm.io/gorm"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// GetOrderProgressQueryHandler reads an order's method and status and derives
// the stepper data from the domain flow tables.
type GetOrderProgressQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderProgressQueryHandler creates a handler for order progress queries.
func NewGetOrderProgressQueryHandler(db *gorm.DB) GetOrderProgressQueryHandler {
	return GetOrderProgressQueryHandler{db: db}
}

// Handle executes the query. Returns errs.ErrObjectNotFound when the order
// does not exist.
func (h GetOrderProgressQueryHandler) Handle(
	ctx context.Context,
	query GetOrderProgressQuery,
) (GetOrderProgressQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderProgressQueryResponse{}, err
	}

	var methodStr, statusStr string
	row := h.db.WithContext(ctx).Raw(`
		SELECT method, status
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	if err := row.Scan(&methodStr, &statusStr); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetOrderProgressQueryResponse{},
				errs.NewObjectNotFoundError("order", query.OrderID().String())
		}
		return GetOrderProgressQueryResponse{}, err
	}

	method, err := order.MethodFromString(methodStr)
	if err != nil {
		return GetOrderProgressQueryResponse{}, err
	}

	status, err := order.StatusFromString(statusStr)
	if err != nil {
		return GetOrderProgressQueryResponse{}, err
	}

	response := GetOrderProgressQueryResponse{
		OrderID: query.OrderID(),
		Method:  method,
		Status:  status,
	}

	if status.InReplacementFlow(method) {
		response.Replacement = true
		response.Steps = order.ReplacementFlow(method)
		response.StepIndex = order.ReplacementStepIndex(status, method)
		return response, nil
	}

	response.Steps = order.Flow(method)
	response.StepIndex = order.StepIndex(status, method)
	return response, nil
}
