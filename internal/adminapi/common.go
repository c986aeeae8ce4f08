package adminapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/rashedalhajeri/quickstore-builder/internal/categories"
	"github.com/rashedalhajeri/quickstore-builder/internal/domain"
	"github.com/rashedalhajeri/quickstore-builder/internal/orders"
	"github.com/rashedalhajeri/quickstore-builder/internal/products"
	"github.com/rashedalhajeri/quickstore-builder/internal/sections"
	"github.com/rashedalhajeri/quickstore-builder/internal/session"
	"github.com/rashedalhajeri/quickstore-builder/internal/stores"
	"github.com/rashedalhajeri/quickstore-builder/internal/webserver"
)

// Modules are the services the admin API dispatches to.
type Modules struct {
	Products   *products.Service
	Orders     *orders.Service
	Sections   *sections.Service
	Categories *categories.Service
	Stores     *stores.Service
	Sessions   *session.Manager
}

var mods *Modules

// Init wires the admin routes onto the webserver.
func Init(m *Modules) {
	mods = m
	registerAuthRoutes()
	registerStoreRoutes()
	registerProductRoutes()
	registerOrderRoutes()
	registerSectionRoutes()
	registerCategoryRoutes()
	registerShippingRoutes()
	registerExportRoutes()
}

type apiError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Detail  interface{} `json:"detail,omitempty"`
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, map[string]interface{}{"data": data})
}

func fail(c echo.Context, status int, code, message string, detail interface{}) error {
	return c.JSON(status, map[string]interface{}{
		"error": apiError{Code: code, Message: message, Detail: detail},
	})
}

func paged(c echo.Context, rows interface{}, total int64, page, pageSize int) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"data":      rows,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// parsePagination reads 1-based page/pageSize query params with the
// dashboard defaults.
func parsePagination(c echo.Context) (page, pageSize int) {
	page = 1
	pageSize = 20
	if p, err := strconv.Atoi(c.QueryParam("page")); err == nil && p > 0 {
		page = p
	}
	if ps, err := strconv.Atoi(c.QueryParam("pageSize")); err == nil && ps > 0 && ps <= 500 {
		pageSize = ps
	}
	return page, pageSize
}

// currentStore resolves the signed-in merchant's store, the scoping
// value of every dashboard query.
func currentStore(c echo.Context) (*domain.Store, error) {
	sess := webserver.CurrentSession(c)
	if sess == nil {
		return nil, stores.ErrStoreNotFound
	}
	return mods.Stores.GetByUserID(c.Request().Context(), sess.UserID)
}
