package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/rashedalhajeri/quickstore-builder/internal/domain"
	"github.com/rashedalhajeri/quickstore-builder/internal/stores"
	"github.com/rashedalhajeri/quickstore-builder/internal/webserver"
)

func registerShippingRoutes() {
	webserver.ApiGET("/shipping/settings", getShippingSettings)
	webserver.ApiPUT("/shipping/settings", saveShippingSettings)
	webserver.ApiGET("/shipping/areas", getDeliveryAreas)
	webserver.ApiPUT("/shipping/areas", saveDeliveryAreas)
}

func getShippingSettings(c echo.Context) error {
	store, err := currentStore(c)
	if err != nil {
		return fail(c, http.StatusNotFound, "STORE_NOT_FOUND", "No store for this account", nil)
	}
	settings, err := mods.Stores.GetShippingSettings(c.Request().Context(), store.ID)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query shipping settings", err.Error())
	}
	return ok(c, settings)
}

func saveShippingSettings(c echo.Context) error {
	store, err := currentStore(c)
	if err != nil {
		return fail(c, http.StatusNotFound, "STORE_NOT_FOUND", "No store for this account", nil)
	}
	var payload domain.StoreShippingSettings
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse shipping settings", nil)
	}
	err = mods.Stores.SaveShippingSettings(c.Request().Context(), store.ID, payload)
	if errors.Is(err, stores.ErrBadShippingMethod) {
		return fail(c, http.StatusBadRequest, "INVALID_METHOD", "Unknown shipping method", nil)
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to save shipping settings", err.Error())
	}
	return ok(c, map[string]interface{}{"id": store.ID})
}

func getDeliveryAreas(c echo.Context) error {
	store, err := currentStore(c)
	if err != nil {
		return fail(c, http.StatusNotFound, "STORE_NOT_FOUND", "No store for this account", nil)
	}
	areas, err := mods.Stores.GetDeliveryAreas(c.Request().Context(), store.ID)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query delivery areas", err.Error())
	}
	if len(areas) == 0 {
		areas = stores.DefaultDeliveryAreas(store.ID)
	}
	return ok(c, areas)
}

type areasPayload struct {
	Areas []domain.DeliveryArea `json:"areas"`
}

func saveDeliveryAreas(c echo.Context) error {
	store, err := currentStore(c)
	if err != nil {
		return fail(c, http.StatusNotFound, "STORE_NOT_FOUND", "No store for this account", nil)
	}
	var payload areasPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse delivery areas", nil)
	}
	err = mods.Stores.SaveDeliveryAreas(c.Request().Context(), store.ID, payload.Areas)
	if errors.Is(err, stores.ErrDuplicateArea) || errors.Is(err, stores.ErrEmptyAreaName) {
		return fail(c, http.StatusBadRequest, "INVALID_AREAS", err.Error(), nil)
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to save delivery areas", err.Error())
	}
	return ok(c, map[string]interface{}{"saved": len(payload.Areas)})
}
