package storefront

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	echosession "github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// cartSessionName is the cookie session holding shopper carts. Carts
// are keyed per store inside the one session so browsing two storefronts
// keeps two independent carts.
const cartSessionName = "quickstore_cart"

func cartKey(storeID string) string {
	return "cart_" + storeID
}

// loadCart reads the store's cart from the cookie session as a
// productID→quantity map. A missing or corrupt entry yields an empty
// cart.
func loadCart(c echo.Context, storeID string) map[string]int {
	cart := map[string]int{}
	sess, err := echosession.Get(cartSessionName, c)
	if err != nil {
		return cart
	}
	raw, _ := sess.Values[cartKey(storeID)].(string)
	if raw == "" {
		return cart
	}
	if err := jsoniter.UnmarshalFromString(raw, &cart); err != nil {
		return map[string]int{}
	}
	return cart
}

// saveCart writes the store's cart back into the cookie session. An
// empty cart removes the entry.
func saveCart(c echo.Context, storeID string, cart map[string]int) error {
	sess, err := echosession.Get(cartSessionName, c)
	if err != nil {
		return err
	}
	if len(cart) == 0 {
		delete(sess.Values, cartKey(storeID))
	} else {
		raw, err := jsoniter.MarshalToString(cart)
		if err != nil {
			return err
		}
		sess.Values[cartKey(storeID)] = raw
	}
	return sess.Save(c.Request(), c.Response())
}

// cartLineView is one cart row resolved against the live catalog.
type cartLineView struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	LineTotal float64 `json:"line_total"`
	Image     string  `json:"image,omitempty"`
}

type cartAddPayload struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// getCart resolves the session cart against the store's catalog.
// Products that vanished or were deactivated since they were added are
// dropped silently, matching what the shopper would see on the shelf.
func getCart(c echo.Context) error {
	store, err := resolveStore(c)
	if err != nil {
		return fail(c, http.StatusNotFound, "STORE_NOT_FOUND", "Store not found")
	}
	ctx := c.Request().Context()

	cart := loadCart(c, store.ID)
	lines := make([]cartLineView, 0, len(cart))
	var subtotal float64
	stale := false
	for id, qty := range cart {
		p, err := mods.Products.GetByID(ctx, id)
		if err != nil || p.StoreID != store.ID || !p.IsActive || p.IsArchived {
			delete(cart, id)
			stale = true
			continue
		}
		price := p.Price
		if p.DiscountPrice != nil {
			price = *p.DiscountPrice
		}
		line := cartLineView{
			ProductID: p.ID,
			Name:      p.Name,
			UnitPrice: price,
			Quantity:  qty,
			LineTotal: price * float64(qty),
		}
		if len(p.Images) > 0 {
			line.Image = p.Images[0]
		}
		lines = append(lines, line)
		subtotal += line.LineTotal
	}
	if stale {
		if err := saveCart(c, store.ID, cart); err != nil {
			zap.S().Warnf("cart prune save failed: %s", err.Error())
		}
	}
	return ok(c, map[string]interface{}{
		"items":    lines,
		"subtotal": subtotal,
	})
}

// addToCart sets the quantity of one product in the session cart.
// Quantity 0 removes the line.
func addToCart(c echo.Context) error {
	store, err := resolveStore(c)
	if err != nil {
		return fail(c, http.StatusNotFound, "STORE_NOT_FOUND", "Store not found")
	}
	var payload cartAddPayload
	if err := c.Bind(&payload); err != nil || payload.ProductID == "" || payload.Quantity < 0 {
		return fail(c, http.StatusBadRequest, "BAD_REQUEST", "Malformed cart item")
	}

	cart := loadCart(c, store.ID)
	if payload.Quantity == 0 {
		delete(cart, payload.ProductID)
	} else {
		p, err := mods.Products.GetByID(c.Request().Context(), payload.ProductID)
		if err != nil || p.StoreID != store.ID || !p.IsActive || p.IsArchived {
			return fail(c, http.StatusNotFound, "UNKNOWN_PRODUCT", "Product is not available in this store")
		}
		if p.TrackInventory && payload.Quantity > p.StockQuantity {
			return fail(c, http.StatusConflict, "INSUFFICIENT_STOCK", "Not enough stock for the requested quantity")
		}
		cart[payload.ProductID] = payload.Quantity
	}
	if err := saveCart(c, store.ID, cart); err != nil {
		return fail(c, http.StatusInternalServerError, "SESSION_ERROR", "Could not save the cart")
	}
	return ok(c, map[string]interface{}{"items": len(cart)})
}

// clearCart empties the store's cart.
func clearCart(c echo.Context) error {
	store, err := resolveStore(c)
	if err != nil {
		return fail(c, http.StatusNotFound, "STORE_NOT_FOUND", "Store not found")
	}
	if err := saveCart(c, store.ID, nil); err != nil {
		return fail(c, http.StatusInternalServerError, "SESSION_ERROR", "Could not clear the cart")
	}
	return ok(c, map[string]interface{}{"items": 0})
}
