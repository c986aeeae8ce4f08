package storefront

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/rashedalhajeri/quickstore-builder/internal/categories"
	"github.com/rashedalhajeri/quickstore-builder/internal/domain"
	"github.com/rashedalhajeri/quickstore-builder/internal/orders"
	"github.com/rashedalhajeri/quickstore-builder/internal/products"
	"github.com/rashedalhajeri/quickstore-builder/internal/sections"
	"github.com/rashedalhajeri/quickstore-builder/internal/stores"
	"github.com/rashedalhajeri/quickstore-builder/internal/webserver"
)

// Modules are the services the public storefront dispatches to.
type Modules struct {
	Products   *products.Service
	Orders     *orders.Service
	Sections   *sections.Service
	Categories *categories.Service
	Stores     *stores.Service
	Checkout   *Checkout
}

var mods *Modules

// Init wires the public routes onto the webserver. Every route resolves
// the tenant from the :domain path segment, never from a session.
func Init(m *Modules) {
	mods = m
	webserver.PubGET("/store/:domain", getStorefront)
	webserver.PubGET("/store/:domain/sections", getStoreSections)
	webserver.PubGET("/store/:domain/products", listStoreProducts)
	webserver.PubGET("/store/:domain/products/:id", getStoreProduct)
	webserver.PubGET("/store/:domain/categories", listStoreCategories)
	webserver.PubGET("/store/:domain/shipping", getStoreShipping)
	webserver.PubGET("/store/:domain/cart", getCart)
	webserver.PubPOST("/store/:domain/cart", addToCart)
	webserver.PubDELETE("/store/:domain/cart", clearCart)
	webserver.PubPOST("/store/:domain/checkout", placeOrder)
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, map[string]interface{}{"data": data})
}

func fail(c echo.Context, status int, code, message string) error {
	return c.JSON(status, map[string]interface{}{
		"error": map[string]string{"code": code, "message": message},
	})
}

func resolveStore(c echo.Context) (*domain.Store, error) {
	return mods.Stores.GetByDomain(c.Request().Context(), c.Param("domain"))
}

// getStorefront returns the store header data the storefront shell
// renders: branding, theme settings and active feature cards.
func getStorefront(c echo.Context) error {
	store, err := resolveStore(c)
	if err != nil {
		return fail(c, http.StatusNotFound, "STORE_NOT_FOUND", "Store not found")
	}
	ctx := c.Request().Context()

	theme, err := mods.Stores.GetThemeSettings(ctx, store.ID)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load theme")
	}
	features, err := mods.Stores.FetchFeatures(ctx, store.ID)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load features")
	}
	active := make([]domain.StoreFeature, 0, len(features))
	for _, f := range features {
		if f.IsActive {
			active = append(active, f)
		}
	}
	return ok(c, map[string]interface{}{
		"store":    store,
		"theme":    theme,
		"features": active,
	})
}

// sectionView is one home-page section with its resolved products.
type sectionView struct {
	Section  domain.Section   `json:"section"`
	Products []domain.Product `json:"products"`
}

// getStoreSections renders the home page content: every active section
// with the products its type selects, capped by the limit query param.
func getStoreSections(c echo.Context) error {
	store, err := resolveStore(c)
	if err != nil {
		return fail(c, http.StatusNotFound, "STORE_NOT_FOUND", "Store not found")
	}
	ctx := c.Request().Context()

	limit := 0
	if n, err := strconv.Atoi(c.QueryParam("limit")); err == nil && n > 0 {
		limit = n
	}

	secs, err := mods.Sections.List(ctx, store.ID)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load sections")
	}
	views := make([]sectionView, 0, len(secs))
	for _, sec := range secs {
		if !sec.IsActive {
			continue
		}
		opts := products.FetchOptions{
			SectionType: sec.SectionType,
			StoreID:     store.ID,
			Limit:       limit,
		}
		switch sec.SectionType {
		case domain.SectionCategory:
			if sec.CategoryID != nil {
				opts.CategoryID = *sec.CategoryID
			}
		case domain.SectionCustom:
			opts.SectionID = sec.ID
		}
		rows, err := mods.Products.FetchWithFilters(ctx, opts)
		if err != nil {
			return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load section products")
		}
		views = append(views, sectionView{Section: sec, Products: rows})
	}
	return ok(c, views)
}

// listStoreProducts lists the store's catalog page, optionally scoped to
// a category.
func listStoreProducts(c echo.Context) error {
	store, err := resolveStore(c)
	if err != nil {
		return fail(c, http.StatusNotFound, "STORE_NOT_FOUND", "Store not found")
	}
	limit := 0
	if n, err := strconv.Atoi(c.QueryParam("limit")); err == nil && n > 0 {
		limit = n
	}
	rows, err := mods.Products.FetchWithFilters(c.Request().Context(), products.FetchOptions{
		StoreID:    store.ID,
		CategoryID: c.QueryParam("category_id"),
		Limit:      limit,
	})
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load products")
	}
	return ok(c, rows)
}

func getStoreProduct(c echo.Context) error {
	store, err := resolveStore(c)
	if err != nil {
		return fail(c, http.StatusNotFound, "STORE_NOT_FOUND", "Store not found")
	}
	p, err := mods.Products.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil || p.StoreID != store.ID || !p.IsActive || p.IsArchived {
		return fail(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found")
	}
	return ok(c, p)
}

func listStoreCategories(c echo.Context) error {
	store, err := resolveStore(c)
	if err != nil {
		return fail(c, http.StatusNotFound, "STORE_NOT_FOUND", "Store not found")
	}
	rows, err := mods.Categories.List(c.Request().Context(), store.ID)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load categories")
	}
	return ok(c, rows)
}

// getStoreShipping exposes the delivery options the checkout form needs.
func getStoreShipping(c echo.Context) error {
	store, err := resolveStore(c)
	if err != nil {
		return fail(c, http.StatusNotFound, "STORE_NOT_FOUND", "Store not found")
	}
	ctx := c.Request().Context()

	settings, err := mods.Stores.GetShippingSettings(ctx, store.ID)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load shipping settings")
	}
	areas, err := mods.Stores.GetDeliveryAreas(ctx, store.ID)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load delivery areas")
	}
	if len(areas) == 0 {
		areas = stores.DefaultDeliveryAreas(store.ID)
	}
	enabled := make([]domain.DeliveryArea, 0, len(areas))
	for _, a := range areas {
		if a.Enabled {
			enabled = append(enabled, a)
		}
	}
	return ok(c, map[string]interface{}{
		"settings": settings,
		"areas":    enabled,
	})
}

func placeOrder(c echo.Context) error {
	store, err := resolveStore(c)
	if err != nil {
		return fail(c, http.StatusNotFound, "STORE_NOT_FOUND", "Store not found")
	}
	var in CheckoutInput
	if err := c.Bind(&in); err != nil {
		return fail(c, http.StatusBadRequest, "BAD_REQUEST", "Malformed checkout payload")
	}
	if err := c.Validate(&in); err != nil {
		return fail(c, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
	}

	order, err := mods.Checkout.Place(c.Request().Context(), store, in)
	switch {
	case err == nil:
	case errors.Is(err, ErrEmptyCart):
		return fail(c, http.StatusBadRequest, "EMPTY_CART", "No items to order")
	case errors.Is(err, ErrUnknownProduct):
		return fail(c, http.StatusBadRequest, "UNKNOWN_PRODUCT", "An item is not available in this store")
	case errors.Is(err, ErrInsufficientStock):
		return fail(c, http.StatusConflict, "INSUFFICIENT_STOCK", err.Error())
	case errors.Is(err, ErrUnknownArea):
		return fail(c, http.StatusBadRequest, "UNKNOWN_AREA", "Delivery area is not served")
	default:
		return fail(c, http.StatusInternalServerError, "CHECKOUT_FAILED", "Could not place the order")
	}
	// The session cart is spent once the order exists.
	if err := saveCart(c, store.ID, nil); err != nil {
		zap.S().Warnf("cart clear after checkout failed: %s", err.Error())
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{"data": order})
}
