package storefront

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/rashedalhajeri/quickstore-builder/internal/domain"
	"github.com/rashedalhajeri/quickstore-builder/internal/orders"
	"github.com/rashedalhajeri/quickstore-builder/internal/products"
	"github.com/rashedalhajeri/quickstore-builder/internal/stores"
)

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrUnknownProduct    = errors.New("product not available in this store")
	ErrInsufficientStock = errors.New("not enough stock")
	ErrUnknownArea       = errors.New("delivery area not served")
)

// CartLine is one checkout line as submitted by the storefront.
type CartLine struct {
	ProductID     string `json:"product_id" validate:"required"`
	Quantity      int    `json:"quantity" validate:"required,min=1"`
	SelectedColor string `json:"selected_color"`
	SelectedSize  string `json:"selected_size"`
	CustomerText  string `json:"customer_text"`
	CustomerImage string `json:"customer_image"`
}

// CheckoutInput is the public checkout payload.
type CheckoutInput struct {
	CustomerName    string     `json:"customer_name" validate:"required"`
	CustomerEmail   string     `json:"customer_email" validate:"omitempty,email"`
	CustomerPhone   string     `json:"customer_phone" validate:"required"`
	ShippingAddress string     `json:"shipping_address"`
	DeliveryArea    string     `json:"delivery_area"`
	PaymentMethod   string     `json:"payment_method"`
	Items           []CartLine `json:"items" validate:"required,min=1,dive"`
}

// Checkout turns a cart into an order. Prices are captured from the
// catalog at this moment, never trusted from the client. Stock is
// decremented per line for inventory-tracked products after the order
// row is created.
type Checkout struct {
	products *products.Service
	orders   *orders.Service
	stores   *stores.Service
}

func NewCheckout(p *products.Service, o *orders.Service, s *stores.Service) *Checkout {
	return &Checkout{products: p, orders: o, stores: s}
}

// effectivePrice is the discount price when one is set.
func effectivePrice(p *domain.Product) float64 {
	if p.DiscountPrice != nil {
		return *p.DiscountPrice
	}
	return p.Price
}

// deliveryFee resolves the shipping charge for the chosen area. Stores
// without configured areas serve the platform defaults. Free-shipping
// settings waive the fee above the configured minimum.
func (ck *Checkout) deliveryFee(ctx context.Context, storeID, area string, subtotal float64) (float64, error) {
	if area == "" {
		return 0, nil
	}
	areas, err := ck.stores.GetDeliveryAreas(ctx, storeID)
	if err != nil {
		return 0, err
	}
	if len(areas) == 0 {
		areas = stores.DefaultDeliveryAreas(storeID)
	}
	var fee float64
	found := false
	for _, a := range areas {
		if a.Enabled && strings.EqualFold(a.Name, area) {
			fee = a.Price
			found = true
			break
		}
	}
	if !found {
		return 0, ErrUnknownArea
	}

	settings, err := ck.stores.GetShippingSettings(ctx, storeID)
	if err != nil {
		return 0, err
	}
	if settings != nil && settings.FreeShipping && subtotal >= settings.FreeShippingMinOrder {
		return 0, nil
	}
	return fee, nil
}

// Place creates the order and its items for a store, then decrements
// stock for inventory-tracked lines. The stock writes happen after the
// order insert and are not rolled back if one of them fails.
func (ck *Checkout) Place(ctx context.Context, store *domain.Store, in CheckoutInput) (*domain.Order, error) {
	if len(in.Items) == 0 {
		return nil, ErrEmptyCart
	}

	var (
		items    []domain.OrderItem
		subtotal float64
		tracked  []stockAdjust
	)
	for _, line := range in.Items {
		if line.Quantity <= 0 {
			return nil, ErrEmptyCart
		}
		p, err := ck.products.GetByID(ctx, line.ProductID)
		if err != nil {
			return nil, ErrUnknownProduct
		}
		if p.StoreID != store.ID || !p.IsActive || p.IsArchived {
			return nil, ErrUnknownProduct
		}
		if p.TrackInventory {
			if p.StockQuantity < line.Quantity {
				return nil, errors.Wrap(ErrInsufficientStock, p.Name)
			}
			tracked = append(tracked, stockAdjust{id: p.ID, remaining: p.StockQuantity - line.Quantity})
		}
		price := effectivePrice(p)
		subtotal += price * float64(line.Quantity)
		items = append(items, domain.OrderItem{
			ProductID:     p.ID,
			Quantity:      line.Quantity,
			UnitPrice:     price,
			SelectedColor: line.SelectedColor,
			SelectedSize:  line.SelectedSize,
			CustomerText:  line.CustomerText,
			CustomerImage: line.CustomerImage,
		})
	}

	fee, err := ck.deliveryFee(ctx, store.ID, in.DeliveryArea, subtotal)
	if err != nil {
		return nil, err
	}

	order := domain.Order{
		CustomerName:    strings.TrimSpace(in.CustomerName),
		CustomerEmail:   strings.TrimSpace(in.CustomerEmail),
		CustomerPhone:   strings.TrimSpace(in.CustomerPhone),
		ShippingAddress: in.ShippingAddress,
		DeliveryArea:    in.DeliveryArea,
		PaymentMethod:   in.PaymentMethod,
		Total:           subtotal + fee,
	}
	if err := ck.orders.Create(ctx, store.ID, &order); err != nil {
		return nil, err
	}
	if err := ck.orders.AddItems(ctx, order.ID, items); err != nil {
		return nil, err
	}
	order.Items = items

	for _, adj := range tracked {
		if _, err := ck.products.Update(ctx, store.ID, adj.id, map[string]interface{}{
			"stock_quantity": adj.remaining,
		}); err != nil {
			zap.S().Errorf("stock decrement for %s failed: %s", adj.id, err.Error())
		}
	}
	return &order, nil
}

type stockAdjust struct {
	id        string
	remaining int
}
