package products

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rashedalhajeri/quickstore-builder/internal/domain"
	"github.com/rashedalhajeri/quickstore-builder/internal/gateway"
	"github.com/rashedalhajeri/quickstore-builder/internal/gateway/gatewaytest"
)

// scopedTo reports whether a write's filters carry the store_id
// equality guard.
func scopedTo(filters []gateway.Filter, storeID string) bool {
	for _, f := range filters {
		if f.Op == gateway.OpEq && f.Column == "store_id" && f.Value == storeID {
			return true
		}
	}
	return false
}

func validProduct() *domain.Product {
	return &domain.Product{
		Name:   "Mug",
		Price:  3.5,
		Images: []string{"mug.jpg"},
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(validProduct()))

	p := validProduct()
	p.Name = ""
	assert.ErrorIs(t, Validate(p), ErrInvalidProduct)

	p = validProduct()
	p.Price = 0
	assert.ErrorIs(t, Validate(p), ErrInvalidProduct)

	p = validProduct()
	p.Images = nil
	assert.ErrorIs(t, Validate(p), ErrInvalidProduct)

	p = validProduct()
	p.HasColors = true
	assert.ErrorIs(t, Validate(p), ErrInvalidProduct)
	p.AvailableColors = []string{"red"}
	assert.NoError(t, Validate(p))

	p = validProduct()
	p.HasSizes = true
	assert.ErrorIs(t, Validate(p), ErrInvalidProduct)
	p.AvailableSizes = []string{"M"}
	assert.NoError(t, Validate(p))
}

func TestCreateActivatesAndStamps(t *testing.T) {
	gw := &gatewaytest.Client{}
	svc := NewService(gw)

	p := validProduct()
	require.NoError(t, svc.Create(context.Background(), p))
	assert.NotEmpty(t, p.ID)
	assert.True(t, p.IsActive)
	assert.False(t, p.CreatedAt.IsZero())
	require.Len(t, gw.CallsTo("insert"), 1)
}

func TestCreateRejectsInvalid(t *testing.T) {
	gw := &gatewaytest.Client{}
	svc := NewService(gw)

	err := svc.Create(context.Background(), &domain.Product{Name: "x"})
	assert.ErrorIs(t, err, ErrInvalidProduct)
	assert.Empty(t, gw.Calls)
}

func TestHardDeleteBlockedByOrderReference(t *testing.T) {
	gw := &gatewaytest.Client{
		QueryFn: func(spec gateway.Spec, dest interface{}) error {
			*dest.(*[]domain.OrderItem) = []domain.OrderItem{{ID: "oi1"}}
			return nil
		},
	}
	svc := NewService(gw)

	err := svc.HardDelete(context.Background(), "s1", "p1")
	assert.ErrorIs(t, err, ErrLinkedToOrders)
	assert.Empty(t, gw.CallsTo("delete"))
}

func TestHardDeleteUnreferenced(t *testing.T) {
	gw := &gatewaytest.Client{}
	svc := NewService(gw)

	require.NoError(t, svc.HardDelete(context.Background(), "s1", "p1"))
	require.Len(t, gw.CallsTo("delete"), 1)
	assert.Equal(t, "products", gw.CallsTo("delete")[0].Table)
	assert.True(t, scopedTo(gw.CallsTo("delete")[0].Filters, "s1"))
}

func TestBulkArchiveUsesSingleINUpdate(t *testing.T) {
	gw := &gatewaytest.Client{}
	svc := NewService(gw)

	require.NoError(t, svc.BulkArchive(context.Background(), "s1", []string{"a", "b"}, true))
	updates := gw.CallsTo("update")
	require.Len(t, updates, 1)
	assert.Equal(t, gateway.OpIn, updates[0].Filters[0].Op)
	assert.Equal(t, true, updates[0].Patch["is_archived"])
	assert.True(t, scopedTo(updates[0].Filters, "s1"))

	// empty selection is a no-op
	gw.Calls = nil
	require.NoError(t, svc.BulkArchive(context.Background(), "s1", nil, true))
	assert.Empty(t, gw.Calls)
}

// Every write path must carry the owning store as an equality filter, so
// one merchant's mutation can never reach another store's rows.
func TestWritesCarryStoreScope(t *testing.T) {
	gw := &gatewaytest.Client{
		// Update re-reads the row afterwards.
		QueryOneFn: func(spec gateway.Spec, dest interface{}) error { return nil },
	}
	svc := NewService(gw)

	_, err := svc.Archive(context.Background(), "s1", "p1", true)
	require.NoError(t, err)
	_, err = svc.Activate(context.Background(), "s1", "p1", false)
	require.NoError(t, err)
	require.NoError(t, svc.BulkActivate(context.Background(), "s1", []string{"a"}, true))
	require.NoError(t, svc.Delete(context.Background(), "s1", "p1"))

	for _, call := range gw.Calls {
		if call.Method != "update" && call.Method != "delete" {
			continue
		}
		assert.True(t, scopedTo(call.Filters, "s1"),
			"%s on %s missing store scope", call.Method, call.Table)
	}
}

func TestUpdateForeignProductNotFound(t *testing.T) {
	gw := &gatewaytest.Client{
		UpdateFn: func(table string, patch map[string]interface{}, filters []gateway.Filter) (int64, error) {
			return 0, nil
		},
	}
	svc := NewService(gw)

	_, err := svc.Update(context.Background(), "s1", "other-stores-product",
		map[string]interface{}{"name": "hijack"})
	assert.ErrorIs(t, err, gateway.ErrNotFound)
	assert.Empty(t, gw.CallsTo("query_one"), "no re-read after a scoped miss")
}
