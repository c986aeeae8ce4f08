package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/rashedalhajeri/quickstore-builder/internal/domain"
	"github.com/rashedalhajeri/quickstore-builder/internal/sections"
	"github.com/rashedalhajeri/quickstore-builder/internal/webserver"
)

func registerSectionRoutes() {
	webserver.ApiGET("/sections", listSections)
	webserver.ApiPOST("/sections", addSection)
	webserver.ApiPUT("/sections/:id", updateSection)
	webserver.ApiDELETE("/sections/:id", deleteSection)
	webserver.ApiPOST("/sections/reorder", reorderSections)
}

func listSections(c echo.Context) error {
	store, err := currentStore(c)
	if err != nil {
		return fail(c, http.StatusNotFound, "STORE_NOT_FOUND", "No store for this account", nil)
	}
	rows, err := mods.Sections.List(c.Request().Context(), store.ID)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query sections", err.Error())
	}
	return ok(c, rows)
}

type sectionPayload struct {
	Name        string  `json:"name"`
	SectionType string  `json:"section_type"`
	CategoryID  *string `json:"category_id"`
	SortOrder   int     `json:"sort_order"`
	IsActive    bool    `json:"is_active"`
}

func addSection(c echo.Context) error {
	store, err := currentStore(c)
	if err != nil {
		return fail(c, http.StatusNotFound, "STORE_NOT_FOUND", "No store for this account", nil)
	}
	var payload sectionPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse section", nil)
	}
	sec, err := mods.Sections.Add(c.Request().Context(), store.ID,
		payload.Name, payload.SectionType, payload.SortOrder, payload.IsActive)
	if errors.Is(err, sections.ErrEmptyName) || errors.Is(err, sections.ErrUnknownType) {
		return fail(c, http.StatusBadRequest, "INVALID_SECTION", err.Error(), nil)
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create section", err.Error())
	}
	return ok(c, sec)
}

func updateSection(c echo.Context) error {
	store, err := currentStore(c)
	if err != nil {
		return fail(c, http.StatusNotFound, "STORE_NOT_FOUND", "No store for this account", nil)
	}
	var payload sectionPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse section", nil)
	}
	sec := domain.Section{
		ID:          c.Param("id"),
		Name:        payload.Name,
		SectionType: payload.SectionType,
		CategoryID:  payload.CategoryID,
		IsActive:    payload.IsActive,
	}
	err = mods.Sections.Update(c.Request().Context(), store.ID, sec)
	if errors.Is(err, sections.ErrSectionNotFound) {
		return fail(c, http.StatusNotFound, "SECTION_NOT_FOUND", "Section not found", nil)
	}
	if errors.Is(err, sections.ErrUnknownType) {
		return fail(c, http.StatusBadRequest, "INVALID_SECTION", err.Error(), nil)
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update section", err.Error())
	}
	return ok(c, map[string]interface{}{"id": sec.ID})
}

func deleteSection(c echo.Context) error {
	store, err := currentStore(c)
	if err != nil {
		return fail(c, http.StatusNotFound, "STORE_NOT_FOUND", "No store for this account", nil)
	}
	err = mods.Sections.Delete(c.Request().Context(), store.ID, c.Param("id"))
	if errors.Is(err, sections.ErrSectionNotFound) {
		return fail(c, http.StatusNotFound, "SECTION_NOT_FOUND", "Section not found", nil)
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete section", err.Error())
	}
	return ok(c, map[string]interface{}{"id": c.Param("id")})
}

type reorderPayload struct {
	IDs []string `json:"ids"`
}

func reorderSections(c echo.Context) error {
	store, err := currentStore(c)
	if err != nil {
		return fail(c, http.StatusNotFound, "STORE_NOT_FOUND", "No store for this account", nil)
	}
	var payload reorderPayload
	if err := c.Bind(&payload); err != nil || len(payload.IDs) == 0 {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "No section ids supplied", nil)
	}
	if err := mods.Sections.Reorder(c.Request().Context(), store.ID, payload.IDs); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to reorder sections", err.Error())
	}
	return ok(c, map[string]interface{}{"reordered": len(payload.IDs)})
}
