package queries_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockAggregateTracker satisfies the repositories' tracker dependency when
// seeding test data outside a unit of work.
type mockAggregateTracker struct{}

func (*mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {}

func TestNewGetOrderProgressQuery_Valid(t *testing.T) {
	query, err := queries.NewGetOrderProgressQuery(kernel.NewUUID())
	require.NoError(t, err)
	require.NoError(t, query.Validate())
}

func TestNewGetOrderProgressQuery_EmptyID(t *testing.T) {
	_, err := queries.NewGetOrderProgressQuery(kernel.UUID{})
	require.Error(t, err)
}

func TestGetOrderProgressQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetOrderProgressQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetOrderProgressQueryIsNotConstructed)
}

func TestNewGetStatusHistoryQuery_Valid(t *testing.T) {
	query, err := queries.NewGetStatusHistoryQuery(kernel.NewUUID())
	require.NoError(t, err)
	require.NoError(t, query.Validate())
}

func TestGetStatusHistoryQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetStatusHistoryQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetStatusHistoryQueryIsNotConstructed)
}

func TestNewGetPayoutsQuery_Valid(t *testing.T) {
	query, err := queries.NewGetPayoutsQuery(kernel.NewUUID())
	require.NoError(t, err)
	require.NoError(t, query.Validate())
}

func TestGetPayoutsQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetPayoutsQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetPayoutsQueryIsNotConstructed)
}

func TestNewGetRefundLedgerQuery_Valid(t *testing.T) {
	query, err := queries.NewGetRefundLedgerQuery(kernel.NewUUID())
	require.NoError(t, err)
	require.NoError(t, query.Validate())
}

func TestGetRefundLedgerQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetRefundLedgerQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetRefundLedgerQueryIsNotConstructed)
}
