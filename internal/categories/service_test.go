package categories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rashedalhajeri/quickstore-builder/internal/gateway"
	"github.com/rashedalhajeri/quickstore-builder/internal/gateway/gatewaytest"
)

func TestAddTrimsName(t *testing.T) {
	gw := &gatewaytest.Client{}
	svc := NewService(gw)

	cat, err := svc.Add(context.Background(), "s1", "  Apparel  ", 1)
	require.NoError(t, err)
	assert.Equal(t, "Apparel", cat.Name)
	assert.Equal(t, "s1", cat.StoreID)
	assert.NotEmpty(t, cat.ID)

	_, err = svc.Add(context.Background(), "s1", "   ", 2)
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestRenameMissingRow(t *testing.T) {
	gw := &gatewaytest.Client{
		UpdateFn: func(string, map[string]interface{}, []gateway.Filter) (int64, error) {
			return 0, nil
		},
	}
	svc := NewService(gw)
	err := svc.Rename(context.Background(), "s1", "ghost", "New")
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestDeleteClearsProductReferences(t *testing.T) {
	gw := &gatewaytest.Client{}
	svc := NewService(gw)

	require.NoError(t, svc.Delete(context.Background(), "s1", "c1"))

	deletes := gw.CallsTo("delete")
	require.Len(t, deletes, 1)
	assert.Equal(t, "categories", deletes[0].Table)

	updates := gw.CallsTo("update")
	require.Len(t, updates, 1)
	assert.Equal(t, "products", updates[0].Table)
	val, present := updates[0].Patch["category_id"]
	assert.True(t, present)
	assert.Nil(t, val)
	assert.Equal(t, "category_id", updates[0].Filters[0].Column)
}

func TestDeleteMissingRowSkipsProductUpdate(t *testing.T) {
	gw := &gatewaytest.Client{
		DeleteFn: func(string, []gateway.Filter) (int64, error) { return 0, nil },
	}
	svc := NewService(gw)

	err := svc.Delete(context.Background(), "s1", "ghost")
	assert.ErrorIs(t, err, ErrCategoryNotFound)
	assert.Empty(t, gw.CallsTo("update"))
}
