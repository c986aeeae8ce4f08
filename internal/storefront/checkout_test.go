package storefront

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rashedalhajeri/quickstore-builder/internal/domain"
	"github.com/rashedalhajeri/quickstore-builder/internal/gateway"
	"github.com/rashedalhajeri/quickstore-builder/internal/gateway/gatewaytest"
	"github.com/rashedalhajeri/quickstore-builder/internal/orders"
	"github.com/rashedalhajeri/quickstore-builder/internal/products"
	"github.com/rashedalhajeri/quickstore-builder/internal/stores"
)

func truePtr() *bool          { v := true; return &v }
func intp(n int) *int         { return &n }
func f64p(f float64) *float64 { return &f }

// checkoutFixture scripts a one-store catalog behind the fake gateway.
type checkoutFixture struct {
	gw       *gatewaytest.Client
	checkout *Checkout
	store    *domain.Store
}

func newCheckoutFixture(catalog map[string]products.RawProductRow, areas []domain.DeliveryArea, settings *domain.StoreShippingSettings) *checkoutFixture {
	gw := &gatewaytest.Client{}

	gw.QueryOneFn = func(spec gateway.Spec, dest interface{}) error {
		if spec.Table != "products" {
			return gateway.ErrNotFound
		}
		id, _ := spec.Filters[0].Value.(string)
		row, ok := catalog[id]
		if !ok {
			return gateway.ErrNotFound
		}
		*dest.(*products.RawProductRow) = row
		return nil
	}
	gw.QueryFn = func(spec gateway.Spec, dest interface{}) error {
		if spec.Table == "store_delivery_areas" {
			*dest.(*[]domain.DeliveryArea) = areas
		}
		return nil
	}
	gw.QueryMaybeOneFn = func(spec gateway.Spec, dest interface{}) (bool, error) {
		if spec.Table == "store_shipping_settings" && settings != nil {
			*dest.(*domain.StoreShippingSettings) = *settings
			return true, nil
		}
		return false, nil
	}

	storesSvc := stores.NewService(gw)
	productsSvc := products.NewService(gw)
	ordersSvc := orders.NewService(gw)
	return &checkoutFixture{
		gw:       gw,
		checkout: NewCheckout(productsSvc, ordersSvc, storesSvc),
		store:    &domain.Store{ID: "s1", DomainName: "myshop"},
	}
}

func activeProduct(id, storeID string, price float64) products.RawProductRow {
	return products.RawProductRow{
		ID:       id,
		StoreID:  storeID,
		Name:     id,
		Price:    price,
		IsActive: truePtr(),
	}
}

func TestPlaceCapturesPricesAndFee(t *testing.T) {
	mug := activeProduct("mug", "s1", 3)
	shirt := activeProduct("shirt", "s1", 12)
	shirt.DiscountPrice = f64p(9.5)

	fx := newCheckoutFixture(
		map[string]products.RawProductRow{"mug": mug, "shirt": shirt},
		[]domain.DeliveryArea{{Name: "Hawally", Price: 2, Enabled: true}},
		nil,
	)

	order, err := fx.checkout.Place(context.Background(), fx.store, CheckoutInput{
		CustomerName:  "Ali",
		CustomerPhone: "99999999",
		DeliveryArea:  "hawally",
		Items: []CartLine{
			{ProductID: "mug", Quantity: 2},
			{ProductID: "shirt", Quantity: 1},
		},
	})
	require.NoError(t, err)

	// 2*3 + 9.5 (discounted) + 2 delivery
	assert.Equal(t, 17.5, order.Total)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.NotEmpty(t, order.OrderNumber)
	require.Len(t, order.Items, 2)
	assert.Equal(t, 3.0, order.Items[0].UnitPrice)
	assert.Equal(t, 9.5, order.Items[1].UnitPrice)

	inserts := fx.gw.CallsTo("insert")
	require.Len(t, inserts, 2)
	assert.Equal(t, "orders", inserts[0].Table)
	assert.Equal(t, "order_items", inserts[1].Table)
}

func TestPlaceDecrementsTrackedStock(t *testing.T) {
	tracked := activeProduct("cap", "s1", 5)
	tracked.TrackInventory = truePtr()
	tracked.StockQuantity = intp(4)

	fx := newCheckoutFixture(
		map[string]products.RawProductRow{"cap": tracked},
		nil, nil,
	)

	_, err := fx.checkout.Place(context.Background(), fx.store, CheckoutInput{
		CustomerName:  "Ali",
		CustomerPhone: "99999999",
		Items:         []CartLine{{ProductID: "cap", Quantity: 3}},
	})
	require.NoError(t, err)

	updates := fx.gw.CallsTo("update")
	require.Len(t, updates, 1)
	assert.Equal(t, "products", updates[0].Table)
	assert.Equal(t, 1, updates[0].Patch["stock_quantity"])
}

func TestPlaceInsufficientStock(t *testing.T) {
	tracked := activeProduct("cap", "s1", 5)
	tracked.TrackInventory = truePtr()
	tracked.StockQuantity = intp(1)

	fx := newCheckoutFixture(map[string]products.RawProductRow{"cap": tracked}, nil, nil)

	_, err := fx.checkout.Place(context.Background(), fx.store, CheckoutInput{
		CustomerName:  "Ali",
		CustomerPhone: "99999999",
		Items:         []CartLine{{ProductID: "cap", Quantity: 2}},
	})
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Empty(t, fx.gw.CallsTo("insert"))
}

func TestPlaceRejectsForeignOrInactiveProducts(t *testing.T) {
	foreign := activeProduct("mug", "other-store", 3)
	archived := activeProduct("old", "s1", 3)
	archived.IsArchived = truePtr()

	fx := newCheckoutFixture(
		map[string]products.RawProductRow{"mug": foreign, "old": archived},
		nil, nil,
	)
	ctx := context.Background()
	base := CheckoutInput{CustomerName: "Ali", CustomerPhone: "99999999"}

	in := base
	in.Items = []CartLine{{ProductID: "mug", Quantity: 1}}
	_, err := fx.checkout.Place(ctx, fx.store, in)
	assert.ErrorIs(t, err, ErrUnknownProduct)

	in = base
	in.Items = []CartLine{{ProductID: "old", Quantity: 1}}
	_, err = fx.checkout.Place(ctx, fx.store, in)
	assert.ErrorIs(t, err, ErrUnknownProduct)

	in = base
	in.Items = []CartLine{{ProductID: "ghost", Quantity: 1}}
	_, err = fx.checkout.Place(ctx, fx.store, in)
	assert.ErrorIs(t, err, ErrUnknownProduct)
}

func TestPlaceUnknownArea(t *testing.T) {
	mug := activeProduct("mug", "s1", 3)
	fx := newCheckoutFixture(
		map[string]products.RawProductRow{"mug": mug},
		[]domain.DeliveryArea{{Name: "Hawally", Price: 2, Enabled: true}},
		nil,
	)

	_, err := fx.checkout.Place(context.Background(), fx.store, CheckoutInput{
		CustomerName:  "Ali",
		CustomerPhone: "99999999",
		DeliveryArea:  "Atlantis",
		Items:         []CartLine{{ProductID: "mug", Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrUnknownArea)
}

func TestPlaceDisabledAreaNotServed(t *testing.T) {
	mug := activeProduct("mug", "s1", 3)
	fx := newCheckoutFixture(
		map[string]products.RawProductRow{"mug": mug},
		[]domain.DeliveryArea{{Name: "Jahra", Price: 4, Enabled: false}},
		nil,
	)

	_, err := fx.checkout.Place(context.Background(), fx.store, CheckoutInput{
		CustomerName:  "Ali",
		CustomerPhone: "99999999",
		DeliveryArea:  "Jahra",
		Items:         []CartLine{{ProductID: "mug", Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrUnknownArea)
}

func TestPlaceFreeShippingWaivesFee(t *testing.T) {
	mug := activeProduct("mug", "s1", 10)
	fx := newCheckoutFixture(
		map[string]products.RawProductRow{"mug": mug},
		[]domain.DeliveryArea{{Name: "Capital", Price: 2, Enabled: true}},
		&domain.StoreShippingSettings{
			ShippingMethod: stores.ShippingStoreDelivery,
			FreeShipping:   true, FreeShippingMinOrder: 15,
		},
	)

	order, err := fx.checkout.Place(context.Background(), fx.store, CheckoutInput{
		CustomerName:  "Ali",
		CustomerPhone: "99999999",
		DeliveryArea:  "Capital",
		Items:         []CartLine{{ProductID: "mug", Quantity: 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, 20.0, order.Total)
}

func TestPlaceEmptyCart(t *testing.T) {
	fx := newCheckoutFixture(nil, nil, nil)
	_, err := fx.checkout.Place(context.Background(), fx.store, CheckoutInput{
		CustomerName: "Ali", CustomerPhone: "99999999",
	})
	assert.ErrorIs(t, err, ErrEmptyCart)
}
