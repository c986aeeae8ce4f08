package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/rashedalhajeri/quickstore-builder/internal/categories"
	"github.com/rashedalhajeri/quickstore-builder/internal/webserver"
)

func registerCategoryRoutes() {
	webserver.ApiGET("/categories", listCategories)
	webserver.ApiPOST("/categories", addCategory)
	webserver.ApiPUT("/categories/:id", renameCategory)
	webserver.ApiDELETE("/categories/:id", deleteCategory)
}

func listCategories(c echo.Context) error {
	store, err := currentStore(c)
	if err != nil {
		return fail(c, http.StatusNotFound, "STORE_NOT_FOUND", "No store for this account", nil)
	}
	rows, err := mods.Categories.List(c.Request().Context(), store.ID)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query categories", err.Error())
	}
	return ok(c, rows)
}

type categoryPayload struct {
	Name      string `json:"name"`
	SortOrder int    `json:"sort_order"`
}

func addCategory(c echo.Context) error {
	store, err := currentStore(c)
	if err != nil {
		return fail(c, http.StatusNotFound, "STORE_NOT_FOUND", "No store for this account", nil)
	}
	var payload categoryPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse category", nil)
	}
	cat, err := mods.Categories.Add(c.Request().Context(), store.ID, payload.Name, payload.SortOrder)
	if errors.Is(err, categories.ErrEmptyName) {
		return fail(c, http.StatusBadRequest, "MISSING_NAME", "Category name is required", nil)
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create category", err.Error())
	}
	return ok(c, cat)
}

func renameCategory(c echo.Context) error {
	store, err := currentStore(c)
	if err != nil {
		return fail(c, http.StatusNotFound, "STORE_NOT_FOUND", "No store for this account", nil)
	}
	var payload categoryPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse category", nil)
	}
	err = mods.Categories.Rename(c.Request().Context(), store.ID, c.Param("id"), payload.Name)
	if errors.Is(err, categories.ErrCategoryNotFound) {
		return fail(c, http.StatusNotFound, "CATEGORY_NOT_FOUND", "Category not found", nil)
	}
	if errors.Is(err, categories.ErrEmptyName) {
		return fail(c, http.StatusBadRequest, "MISSING_NAME", "Category name is required", nil)
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update category", err.Error())
	}
	return ok(c, map[string]interface{}{"id": c.Param("id")})
}

func deleteCategory(c echo.Context) error {
	store, err := currentStore(c)
	if err != nil {
		return fail(c, http.StatusNotFound, "STORE_NOT_FOUND", "No store for this account", nil)
	}
	err = mods.Categories.Delete(c.Request().Context(), store.ID, c.Param("id"))
	if errors.Is(err, categories.ErrCategoryNotFound) {
		return fail(c, http.StatusNotFound, "CATEGORY_NOT_FOUND", "Category not found", nil)
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete category", err.Error())
	}
	return ok(c, map[string]interface{}{"id": c.Param("id")})
}
