package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/rashedalhajeri/quickstore-builder/internal/domain"
	"github.com/rashedalhajeri/quickstore-builder/internal/stores"
	"github.com/rashedalhajeri/quickstore-builder/internal/webserver"
)

func registerStoreRoutes() {
	// Domain availability is queried during signup, before any store exists.
	webserver.PubGET("/stores/domain-availability", checkDomainAvailability)
	webserver.ApiPOST("/stores", createStore)
	webserver.ApiGET("/stores/current", getCurrentStore)
	webserver.ApiPUT("/stores/current", updateStoreBranding)
	webserver.ApiGET("/stores/current/features", listStoreFeatures)
	webserver.ApiPUT("/stores/current/features", saveStoreFeatures)
	webserver.ApiGET("/stores/current/theme", getThemeSettings)
	webserver.ApiPUT("/stores/current/theme", saveThemeSettings)
}

func checkDomainAvailability(c echo.Context) error {
	name := c.QueryParam("domain")
	avail, err := mods.Stores.CheckDomain(c.Request().Context(), name)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to check domain", err.Error())
	}
	switch avail {
	case stores.Available:
		return ok(c, map[string]interface{}{"available": true})
	case stores.Unavailable:
		return ok(c, map[string]interface{}{"available": false})
	default:
		return ok(c, map[string]interface{}{"available": nil})
	}
}

func createStore(c echo.Context) error {
	sess := webserver.CurrentSession(c)
	if sess == nil {
		return fail(c, http.StatusUnauthorized, "NO_SESSION", "Not signed in", nil)
	}
	var payload stores.StoreInput
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse store", nil)
	}
	store, err := mods.Stores.Create(c.Request().Context(), sess.UserID, payload)
	switch {
	case errors.Is(err, stores.ErrDomainTaken):
		return fail(c, http.StatusConflict, "DOMAIN_TAKEN", "Domain name is already taken", nil)
	case errors.Is(err, stores.ErrInvalidDomain):
		return fail(c, http.StatusBadRequest, "INVALID_DOMAIN", err.Error(), nil)
	case errors.Is(err, stores.ErrMissingName):
		return fail(c, http.StatusBadRequest, "MISSING_NAME", "Store name is required", nil)
	case errors.Is(err, stores.ErrUnsupportedGeo):
		return fail(c, http.StatusBadRequest, "UNSUPPORTED_GEO", err.Error(), nil)
	case err != nil:
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create store", err.Error())
	}
	return ok(c, store)
}

func getCurrentStore(c echo.Context) error {
	store, err := currentStore(c)
	if errors.Is(err, stores.ErrStoreNotFound) {
		return fail(c, http.StatusNotFound, "STORE_NOT_FOUND", "No store for this account", nil)
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query store", err.Error())
	}
	return ok(c, store)
}

type brandingPayload struct {
	StoreName string `json:"store_name"`
	LogoURL   string `json:"logo_url"`
	BannerURL string `json:"banner_url"`
}

func updateStoreBranding(c echo.Context) error {
	store, err := currentStore(c)
	if err != nil {
		return fail(c, http.StatusNotFound, "STORE_NOT_FOUND", "No store for this account", nil)
	}
	var payload brandingPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse store", nil)
	}
	patch := map[string]interface{}{}
	if payload.StoreName != "" {
		patch["store_name"] = payload.StoreName
	}
	if payload.LogoURL != "" {
		patch["logo_url"] = payload.LogoURL
	}
	if payload.BannerURL != "" {
		patch["banner_url"] = payload.BannerURL
	}
	if err := mods.Stores.UpdateBranding(c.Request().Context(), store.ID, patch); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update store", err.Error())
	}
	return ok(c, map[string]interface{}{"id": store.ID})
}

func listStoreFeatures(c echo.Context) error {
	store, err := currentStore(c)
	if err != nil {
		return fail(c, http.StatusNotFound, "STORE_NOT_FOUND", "No store for this account", nil)
	}
	features, err := mods.Stores.FetchFeatures(c.Request().Context(), store.ID)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query features", err.Error())
	}
	return ok(c, features)
}

type featuresPayload struct {
	ShowSection bool                  `json:"show_features_section"`
	Features    []domain.StoreFeature `json:"features"`
}

func saveStoreFeatures(c echo.Context) error {
	store, err := currentStore(c)
	if err != nil {
		return fail(c, http.StatusNotFound, "STORE_NOT_FOUND", "No store for this account", nil)
	}
	var payload featuresPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse features", nil)
	}
	err = mods.Stores.SaveFeatures(c.Request().Context(), store.ID, payload.Features, payload.ShowSection)
	if errors.Is(err, stores.ErrTooManyFeatures) {
		return fail(c, http.StatusBadRequest, "TOO_MANY_FEATURES", err.Error(), nil)
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to save features", err.Error())
	}
	return ok(c, map[string]interface{}{"saved": len(payload.Features)})
}

func getThemeSettings(c echo.Context) error {
	store, err := currentStore(c)
	if err != nil {
		return fail(c, http.StatusNotFound, "STORE_NOT_FOUND", "No store for this account", nil)
	}
	settings, err := mods.Stores.GetThemeSettings(c.Request().Context(), store.ID)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query theme settings", err.Error())
	}
	return ok(c, settings)
}

func saveThemeSettings(c echo.Context) error {
	store, err := currentStore(c)
	if err != nil {
		return fail(c, http.StatusNotFound, "STORE_NOT_FOUND", "No store for this account", nil)
	}
	values := map[string]interface{}{}
	if err := c.Bind(&values); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse settings", nil)
	}
	if err := mods.Stores.SaveThemeSettings(c.Request().Context(), store.ID, values); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to save theme settings", err.Error())
	}
	return ok(c, map[string]interface{}{"id": store.ID})
}
