package adminapi

import (
	"net/http"

	"github.com/araddon/dateparse"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/rashedalhajeri/quickstore-builder/internal/gateway"
	"github.com/rashedalhajeri/quickstore-builder/internal/orders"
	"github.com/rashedalhajeri/quickstore-builder/internal/webserver"
)

func registerOrderRoutes() {
	webserver.ApiGET("/orders", listOrders)
	webserver.ApiGET("/orders/stats", orderStats)
	webserver.ApiGET("/orders/:id", getOrder)
	webserver.ApiPUT("/orders/:id/status", updateOrderStatus)
	webserver.ApiDELETE("/orders/:id", deleteOrder)
}

func listOrders(c echo.Context) error {
	store, err := currentStore(c)
	if err != nil {
		return fail(c, http.StatusNotFound, "STORE_NOT_FOUND", "No store for this account", nil)
	}
	page, pageSize := parsePagination(c)

	opts := orders.FetchOptions{
		Status:    c.QueryParam("status"),
		Search:    c.QueryParam("q"),
		Page:      page - 1,
		PageSize:  pageSize,
		OrderBy:   c.QueryParam("sort"),
		Ascending: c.QueryParam("order") == "asc",
	}
	// optional created_at bounds, any common date format
	if v := c.QueryParam("from"); v != "" {
		if t, err := dateparse.ParseAny(v); err == nil {
			opts.CreatedFrom = t
		}
	}
	if v := c.QueryParam("to"); v != "" {
		if t, err := dateparse.ParseAny(v); err == nil {
			opts.CreatedTo = t
		}
	}

	rows, total, err := mods.Orders.Fetch(c.Request().Context(), store.ID, opts)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query orders", err.Error())
	}
	return paged(c, rows, total, page, pageSize)
}

func orderStats(c echo.Context) error {
	store, err := currentStore(c)
	if err != nil {
		return fail(c, http.StatusNotFound, "STORE_NOT_FOUND", "No store for this account", nil)
	}
	stats, err := mods.Orders.FetchStats(c.Request().Context(), store.ID)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query order stats", err.Error())
	}
	return ok(c, stats)
}

func getOrder(c echo.Context) error {
	store, err := currentStore(c)
	if err != nil {
		return fail(c, http.StatusNotFound, "STORE_NOT_FOUND", "No store for this account", nil)
	}
	order, err := mods.Orders.Details(c.Request().Context(), c.Param("id"))
	if errors.Is(err, gateway.ErrNotFound) {
		return fail(c, http.StatusNotFound, "ORDER_NOT_FOUND", "Order not found", nil)
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query order", err.Error())
	}
	if order.StoreID != store.ID {
		return fail(c, http.StatusNotFound, "ORDER_NOT_FOUND", "Order not found", nil)
	}
	return ok(c, order)
}

type statusPayload struct {
	Status string `json:"status"`
}

func updateOrderStatus(c echo.Context) error {
	store, err := currentStore(c)
	if err != nil {
		return fail(c, http.StatusNotFound, "STORE_NOT_FOUND", "No store for this account", nil)
	}
	var payload statusPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse status", nil)
	}
	order, err := mods.Orders.UpdateStatus(c.Request().Context(), store.ID, c.Param("id"), payload.Status)
	if errors.Is(err, orders.ErrInvalidStatus) {
		return fail(c, http.StatusBadRequest, "INVALID_STATUS", "Unknown order status", nil)
	}
	if errors.Is(err, gateway.ErrNotFound) {
		return fail(c, http.StatusNotFound, "ORDER_NOT_FOUND", "Order not found", nil)
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update order", err.Error())
	}
	return ok(c, order)
}

func deleteOrder(c echo.Context) error {
	store, err := currentStore(c)
	if err != nil {
		return fail(c, http.StatusNotFound, "STORE_NOT_FOUND", "No store for this account", nil)
	}
	err = mods.Orders.Delete(c.Request().Context(), store.ID, c.Param("id"))
	if errors.Is(err, gateway.ErrNotFound) {
		return fail(c, http.StatusNotFound, "ORDER_NOT_FOUND", "Order not found", nil)
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete order", err.Error())
	}
	return ok(c, map[string]interface{}{"id": c.Param("id")})
}
