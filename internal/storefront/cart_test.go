package storefront

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/sessions"
	jsoniter "github.com/json-iterator/go"
	echosession "github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rashedalhajeri/quickstore-builder/internal/domain"
	"github.com/rashedalhajeri/quickstore-builder/internal/gateway"
	"github.com/rashedalhajeri/quickstore-builder/internal/gateway/gatewaytest"
	"github.com/rashedalhajeri/quickstore-builder/internal/products"
	"github.com/rashedalhajeri/quickstore-builder/internal/stores"
)

// cartFixture scripts the store lookup and catalog behind the fake
// gateway and runs handlers through the cookie-session middleware, the
// same wrap the server installs.
type cartFixture struct {
	e       *echo.Echo
	gw      *gatewaytest.Client
	cookies []*http.Cookie
}

func newCartFixture(t *testing.T, catalog map[string]products.RawProductRow) *cartFixture {
	t.Helper()
	gw := &gatewaytest.Client{}
	gw.QueryOneFn = func(spec gateway.Spec, dest interface{}) error {
		switch spec.Table {
		case "stores":
			if spec.Filters[0].Value == "myshop" {
				*dest.(*domain.Store) = domain.Store{ID: "s1", DomainName: "myshop"}
				return nil
			}
			return gateway.ErrNotFound
		case "products":
			id, _ := spec.Filters[0].Value.(string)
			row, ok := catalog[id]
			if !ok {
				return gateway.ErrNotFound
			}
			*dest.(*products.RawProductRow) = row
			return nil
		}
		return gateway.ErrNotFound
	}

	mods = &Modules{
		Products: products.NewService(gw),
		Stores:   stores.NewService(gw),
	}
	return &cartFixture{e: echo.New(), gw: gw}
}

// do runs one handler with the session middleware applied, carrying the
// session cookie across calls like a browser would.
func (fx *cartFixture) do(t *testing.T, method, body string, h echo.HandlerFunc) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for _, ck := range fx.cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	c := fx.e.NewContext(req, rec)
	c.SetParamNames("domain")
	c.SetParamValues("myshop")

	wrapped := echosession.Middleware(sessions.NewCookieStore([]byte("test-secret")))(h)
	require.NoError(t, wrapped(c))

	if set := rec.Result().Cookies(); len(set) > 0 {
		fx.cookies = set
	}
	var payload map[string]interface{}
	require.NoError(t, jsoniter.Unmarshal(rec.Body.Bytes(), &payload))
	return rec, payload
}

func cartProduct(id string, price float64, stock int, track bool) products.RawProductRow {
	active := true
	return products.RawProductRow{
		ID:             id,
		StoreID:        "s1",
		Name:           id,
		Price:          price,
		StockQuantity:  &stock,
		TrackInventory: &track,
		IsActive:       &active,
	}
}

func TestCartAddAndView(t *testing.T) {
	fx := newCartFixture(t, map[string]products.RawProductRow{
		"mug": cartProduct("mug", 3, 10, true),
	})

	rec, _ := fx.do(t, http.MethodPost, `{"product_id":"mug","quantity":2}`, addToCart)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, fx.cookies, "cart must persist in the cookie session")

	_, payload := fx.do(t, http.MethodGet, "", getCart)
	data := payload["data"].(map[string]interface{})
	items := data["items"].([]interface{})
	require.Len(t, items, 1)
	line := items[0].(map[string]interface{})
	assert.Equal(t, "mug", line["product_id"])
	assert.Equal(t, 2.0, line["quantity"])
	assert.Equal(t, 6.0, data["subtotal"])
}

func TestCartAddRejectsForeignProduct(t *testing.T) {
	fx := newCartFixture(t, map[string]products.RawProductRow{
		"lamp": cartProduct("lamp", 8, 5, false),
	})
	foreign := fx.gw.QueryOneFn
	fx.gw.QueryOneFn = func(spec gateway.Spec, dest interface{}) error {
		if err := foreign(spec, dest); err != nil {
			return err
		}
		if spec.Table == "products" {
			dest.(*products.RawProductRow).StoreID = "someone-else"
		}
		return nil
	}

	rec, payload := fx.do(t, http.MethodPost, `{"product_id":"lamp","quantity":1}`, addToCart)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	errObj := payload["error"].(map[string]interface{})
	assert.Equal(t, "UNKNOWN_PRODUCT", errObj["code"])
}

func TestCartAddRejectsOverStock(t *testing.T) {
	fx := newCartFixture(t, map[string]products.RawProductRow{
		"mug": cartProduct("mug", 3, 2, true),
	})

	rec, payload := fx.do(t, http.MethodPost, `{"product_id":"mug","quantity":5}`, addToCart)
	assert.Equal(t, http.StatusConflict, rec.Code)
	errObj := payload["error"].(map[string]interface{})
	assert.Equal(t, "INSUFFICIENT_STOCK", errObj["code"])
}

func TestCartZeroQuantityRemovesLine(t *testing.T) {
	fx := newCartFixture(t, map[string]products.RawProductRow{
		"mug": cartProduct("mug", 3, 10, false),
	})

	fx.do(t, http.MethodPost, `{"product_id":"mug","quantity":1}`, addToCart)
	fx.do(t, http.MethodPost, `{"product_id":"mug","quantity":0}`, addToCart)

	_, payload := fx.do(t, http.MethodGet, "", getCart)
	data := payload["data"].(map[string]interface{})
	assert.Empty(t, data["items"])
	assert.Equal(t, 0.0, data["subtotal"])
}

func TestCartClear(t *testing.T) {
	fx := newCartFixture(t, map[string]products.RawProductRow{
		"mug": cartProduct("mug", 3, 10, false),
	})

	fx.do(t, http.MethodPost, `{"product_id":"mug","quantity":3}`, addToCart)
	rec, _ := fx.do(t, http.MethodDelete, "", clearCart)
	assert.Equal(t, http.StatusOK, rec.Code)

	_, payload := fx.do(t, http.MethodGet, "", getCart)
	data := payload["data"].(map[string]interface{})
	assert.Empty(t, data["items"])
}

func TestCartPrunesVanishedProducts(t *testing.T) {
	catalog := map[string]products.RawProductRow{
		"mug": cartProduct("mug", 3, 10, false),
	}
	fx := newCartFixture(t, catalog)

	fx.do(t, http.MethodPost, `{"product_id":"mug","quantity":1}`, addToCart)
	delete(catalog, "mug")

	_, payload := fx.do(t, http.MethodGet, "", getCart)
	data := payload["data"].(map[string]interface{})
	assert.Empty(t, data["items"])
}
