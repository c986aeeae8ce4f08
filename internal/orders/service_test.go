package orders

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rashedalhajeri/quickstore-builder/internal/domain"
	"github.com/rashedalhajeri/quickstore-builder/internal/gateway"
	"github.com/rashedalhajeri/quickstore-builder/internal/gateway/gatewaytest"
)

func TestBuildOrderSpecDefaults(t *testing.T) {
	spec := BuildOrderSpec("s1", FetchOptions{})

	assert.Equal(t, "orders", spec.Table)
	require.Len(t, spec.Filters, 1)
	assert.Equal(t, "store_id", spec.Filters[0].Column)
	assert.Equal(t, []gateway.Order{{Column: "created_at", Desc: true}}, spec.Order)
	require.NotNil(t, spec.Range)
	assert.Equal(t, 0, spec.Range.Offset)
	assert.Equal(t, 10, spec.Range.Limit)
}

func TestBuildOrderSpecStatusFilter(t *testing.T) {
	spec := BuildOrderSpec("s1", FetchOptions{Status: domain.OrderStatusShipped})
	require.Len(t, spec.Filters, 2)
	assert.Equal(t, "status", spec.Filters[1].Column)
	assert.Equal(t, domain.OrderStatusShipped, spec.Filters[1].Value)

	spec = BuildOrderSpec("s1", FetchOptions{Status: StatusAll})
	assert.Len(t, spec.Filters, 1)
}

func TestBuildOrderSpecSearch(t *testing.T) {
	spec := BuildOrderSpec("s1", FetchOptions{Search: "  ali  "})
	require.Len(t, spec.Filters, 2)
	f := spec.Filters[1]
	assert.Equal(t, gateway.OpOrILike, f.Op)
	assert.Equal(t, "ali", f.Value)
	assert.Equal(t, []string{"order_number", "customer_name", "customer_email"}, f.Columns)

	spec = BuildOrderSpec("s1", FetchOptions{Search: "   "})
	assert.Len(t, spec.Filters, 1)
}

func TestBuildOrderSpecDateBounds(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	spec := BuildOrderSpec("s1", FetchOptions{CreatedFrom: from, CreatedTo: to})
	require.Len(t, spec.Filters, 3)
	assert.Equal(t, gateway.OpGte, spec.Filters[1].Op)
	assert.Equal(t, gateway.OpLte, spec.Filters[2].Op)
}

func TestBuildOrderSpecSortWhitelist(t *testing.T) {
	spec := BuildOrderSpec("s1", FetchOptions{OrderBy: "total", Ascending: true})
	assert.Equal(t, []gateway.Order{{Column: "total"}}, spec.Order)

	spec = BuildOrderSpec("s1", FetchOptions{OrderBy: "password; drop table"})
	assert.Equal(t, "created_at", spec.Order[0].Column)
}

func TestBuildOrderSpecPaging(t *testing.T) {
	spec := BuildOrderSpec("s1", FetchOptions{Page: 3, PageSize: 25})
	assert.Equal(t, 75, spec.Range.Offset)
	assert.Equal(t, 25, spec.Range.Limit)

	spec = BuildOrderSpec("s1", FetchOptions{Page: -2})
	assert.Equal(t, 0, spec.Range.Offset)
}

func TestUpdateStatusRejectsUnknownLabel(t *testing.T) {
	gw := &gatewaytest.Client{}
	svc := NewService(gw)

	_, err := svc.UpdateStatus(context.Background(), "s1", "o1", "teleported")
	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.Empty(t, gw.CallsTo("update"))
}

// The status update is scoped to the owning store; an order belonging to
// another store matches nothing and surfaces as not found.
func TestUpdateStatusScopedToStore(t *testing.T) {
	gw := &gatewaytest.Client{
		QueryOneFn: func(spec gateway.Spec, dest interface{}) error { return nil },
	}
	svc := NewService(gw)

	_, err := svc.UpdateStatus(context.Background(), "s1", "o1", domain.OrderStatusShipped)
	require.NoError(t, err)

	updates := gw.CallsTo("update")
	require.Len(t, updates, 1)
	var scoped bool
	for _, f := range updates[0].Filters {
		if f.Op == gateway.OpEq && f.Column == "store_id" && f.Value == "s1" {
			scoped = true
		}
	}
	assert.True(t, scoped)
}

func TestUpdateStatusForeignOrderNotFound(t *testing.T) {
	gw := &gatewaytest.Client{
		UpdateFn: func(table string, patch map[string]interface{}, filters []gateway.Filter) (int64, error) {
			return 0, nil
		},
	}
	svc := NewService(gw)

	_, err := svc.UpdateStatus(context.Background(), "s1", "other-stores-order", domain.OrderStatusShipped)
	assert.ErrorIs(t, err, gateway.ErrNotFound)
}

func TestCreateFillsDefaults(t *testing.T) {
	gw := &gatewaytest.Client{}
	svc := NewService(gw)

	order := domain.Order{CustomerName: "Ali", Total: 12.5}
	require.NoError(t, svc.Create(context.Background(), "s1", &order))

	assert.NotEmpty(t, order.ID)
	assert.NotEmpty(t, order.OrderNumber)
	assert.Equal(t, "s1", order.StoreID)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	require.Len(t, gw.CallsTo("insert"), 1)
}

func TestAddItemsRejectsEmpty(t *testing.T) {
	svc := NewService(&gatewaytest.Client{})
	err := svc.AddItems(context.Background(), "o1", nil)
	assert.ErrorIs(t, err, ErrEmptyOrder)
}

func TestAddItemsStampsRows(t *testing.T) {
	gw := &gatewaytest.Client{}
	svc := NewService(gw)

	items := []domain.OrderItem{{ProductID: "p1", Quantity: 2}, {ProductID: "p2", Quantity: 1}}
	require.NoError(t, svc.AddItems(context.Background(), "o1", items))

	for _, it := range items {
		assert.NotEmpty(t, it.ID)
		assert.Equal(t, "o1", it.OrderID)
	}
}

func TestFoldStats(t *testing.T) {
	rows := []domain.Order{
		{Status: domain.OrderStatusPending},
		{Status: domain.OrderStatusPending},
		{Status: domain.OrderStatusDelivered},
		{Status: domain.OrderStatusCancelled},
		{Status: "limbo"},
	}
	st := FoldStats(rows)

	assert.Equal(t, 5, st.Total)
	assert.Equal(t, 2, st.Pending)
	assert.Equal(t, 1, st.Delivered)
	assert.Equal(t, 1, st.Cancelled)
	assert.Equal(t, 0, st.Shipped)
}

func TestDeleteRemovesItemsFirst(t *testing.T) {
	gw := &gatewaytest.Client{
		QueryMaybeOneFn: func(spec gateway.Spec, dest interface{}) (bool, error) { return true, nil },
	}
	svc := NewService(gw)

	require.NoError(t, svc.Delete(context.Background(), "s1", "o1"))
	deletes := gw.CallsTo("delete")
	require.Len(t, deletes, 2)
	assert.Equal(t, "order_items", deletes[0].Table)
	assert.Equal(t, "orders", deletes[1].Table)
}

// Deleting an order the store does not own must fail before any rows are
// touched.
func TestDeleteForeignOrderNotFound(t *testing.T) {
	gw := &gatewaytest.Client{}
	svc := NewService(gw)

	err := svc.Delete(context.Background(), "s1", "other-stores-order")
	assert.ErrorIs(t, err, gateway.ErrNotFound)
	assert.Empty(t, gw.CallsTo("delete"))
}
