package adminapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/rashedalhajeri/quickstore-builder/internal/domain"
	"github.com/rashedalhajeri/quickstore-builder/internal/gateway"
	"github.com/rashedalhajeri/quickstore-builder/internal/products"
	"github.com/rashedalhajeri/quickstore-builder/internal/webserver"
)

func registerProductRoutes() {
	webserver.ApiGET("/products", listProducts)
	webserver.ApiGET("/products/:id", getProduct)
	webserver.ApiPOST("/products", createProduct)
	webserver.ApiPUT("/products/:id", updateProduct)
	webserver.ApiDELETE("/products/:id", deleteProduct)
	webserver.ApiPOST("/products/:id/archive", archiveProduct)
	webserver.ApiPOST("/products/:id/activate", activateProduct)
	webserver.ApiPOST("/products/bulk/activate", bulkActivateProducts)
	webserver.ApiPOST("/products/bulk/archive", bulkArchiveProducts)
	webserver.ApiPOST("/products/bulk/delete", bulkDeleteProducts)
	webserver.ApiPOST("/products/bulk/category", bulkChangeCategory)
}

// listProducts serves the dashboard list: section-type filtering with
// optional category/section scope, archived tab support, and a limit.
// The fetched set is windowed client-side; ?view=compact switches to the
// narrow page size unless an explicit pageSize is given.
func listProducts(c echo.Context) error {
	store, err := currentStore(c)
	if err != nil {
		return fail(c, http.StatusNotFound, "STORE_NOT_FOUND", "No store for this account", nil)
	}

	opts := products.FetchOptions{
		SectionType: c.QueryParam("section_type"),
		StoreID:     store.ID,
		CategoryID:  c.QueryParam("category_id"),
		SectionID:   c.QueryParam("section_id"),
	}
	if limit, err := strconv.Atoi(c.QueryParam("limit")); err == nil {
		opts.Limit = limit
	}
	if c.QueryParam("include_archived") == "true" {
		opts.IncludeArchived = true
	}

	rows, err := mods.Products.FetchWithFilters(c.Request().Context(), opts)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}

	page, pageSize := parsePagination(c)
	if c.QueryParam("pageSize") == "" {
		pageSize = products.PageSizeFor(c.QueryParam("view") == "compact")
	}
	window := products.Paginate(rows, page, pageSize)
	return paged(c, window, int64(len(rows)), page, pageSize)
}

func getProduct(c echo.Context) error {
	store, err := currentStore(c)
	if err != nil {
		return fail(c, http.StatusNotFound, "STORE_NOT_FOUND", "No store for this account", nil)
	}
	p, err := mods.Products.GetByID(c.Request().Context(), c.Param("id"))
	if errors.Is(err, gateway.ErrNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query product", err.Error())
	}
	if p.StoreID != store.ID {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}
	return ok(c, p)
}

type productPayload struct {
	Name                 string   `json:"name"`
	Description          string   `json:"description"`
	Price                float64  `json:"price"`
	DiscountPrice        *float64 `json:"discount_price"`
	StockQuantity        int      `json:"stock_quantity"`
	TrackInventory       bool     `json:"track_inventory"`
	HasColors            bool     `json:"has_colors"`
	HasSizes             bool     `json:"has_sizes"`
	AvailableColors      []string `json:"available_colors"`
	AvailableSizes       []string `json:"available_sizes"`
	Images               []string `json:"images"`
	RequireCustomerName  bool     `json:"require_customer_name"`
	RequireCustomerImage bool     `json:"require_customer_image"`
	CategoryID           *string  `json:"category_id"`
	SectionID            *string  `json:"section_id"`
	IsFeatured           bool     `json:"is_featured"`
}

func createProduct(c echo.Context) error {
	store, err := currentStore(c)
	if err != nil {
		return fail(c, http.StatusNotFound, "STORE_NOT_FOUND", "No store for this account", nil)
	}
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}

	p := domain.Product{
		StoreID:              store.ID,
		Name:                 payload.Name,
		Description:          payload.Description,
		Price:                payload.Price,
		DiscountPrice:        payload.DiscountPrice,
		StockQuantity:        payload.StockQuantity,
		TrackInventory:       payload.TrackInventory,
		HasColors:            payload.HasColors,
		HasSizes:             payload.HasSizes,
		AvailableColors:      payload.AvailableColors,
		AvailableSizes:       payload.AvailableSizes,
		Images:               payload.Images,
		RequireCustomerName:  payload.RequireCustomerName,
		RequireCustomerImage: payload.RequireCustomerImage,
		CategoryID:           normalizeScope(payload.CategoryID),
		SectionID:            normalizeScope(payload.SectionID),
		IsFeatured:           payload.IsFeatured,
	}
	if err := mods.Products.Create(c.Request().Context(), &p); err != nil {
		if errors.Is(err, products.ErrInvalidProduct) {
			return fail(c, http.StatusBadRequest, "INVALID_PRODUCT", err.Error(), nil)
		}
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create product", err.Error())
	}
	return ok(c, p)
}

// normalizeScope maps the selector sentinel "none" to a cleared id.
func normalizeScope(id *string) *string {
	if id == nil || *id == products.ScopeNone || *id == "" {
		return nil
	}
	return id
}

func updateProduct(c echo.Context) error {
	store, err := currentStore(c)
	if err != nil {
		return fail(c, http.StatusNotFound, "STORE_NOT_FOUND", "No store for this account", nil)
	}
	existing, err := mods.Products.GetByID(c.Request().Context(), c.Param("id"))
	if errors.Is(err, gateway.ErrNotFound) || (err == nil && existing.StoreID != store.ID) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query product", err.Error())
	}

	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	draft := domain.Product{
		Name:            payload.Name,
		Price:           payload.Price,
		Images:          payload.Images,
		HasColors:       payload.HasColors,
		HasSizes:        payload.HasSizes,
		AvailableColors: payload.AvailableColors,
		AvailableSizes:  payload.AvailableSizes,
	}
	if err := products.Validate(&draft); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_PRODUCT", err.Error(), nil)
	}

	patch := map[string]interface{}{
		"name":                   payload.Name,
		"description":            payload.Description,
		"price":                  payload.Price,
		"discount_price":         payload.DiscountPrice,
		"stock_quantity":         payload.StockQuantity,
		"track_inventory":        payload.TrackInventory,
		"has_colors":             payload.HasColors,
		"has_sizes":              payload.HasSizes,
		"available_colors":       payload.AvailableColors,
		"available_sizes":        payload.AvailableSizes,
		"images":                 payload.Images,
		"require_customer_name":  payload.RequireCustomerName,
		"require_customer_image": payload.RequireCustomerImage,
		"category_id":            normalizeScope(payload.CategoryID),
		"section_id":             normalizeScope(payload.SectionID),
		"is_featured":            payload.IsFeatured,
	}
	updated, err := mods.Products.Update(c.Request().Context(), store.ID, existing.ID, patch)
	if errors.Is(err, gateway.ErrNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update product", err.Error())
	}
	return ok(c, updated)
}

// deleteProduct is the guarded hard delete: referenced products are
// rejected so the dashboard can offer archiving instead.
func deleteProduct(c echo.Context) error {
	store, err := currentStore(c)
	if err != nil {
		return fail(c, http.StatusNotFound, "STORE_NOT_FOUND", "No store for this account", nil)
	}
	existing, err := mods.Products.GetByID(c.Request().Context(), c.Param("id"))
	if errors.Is(err, gateway.ErrNotFound) || (err == nil && existing.StoreID != store.ID) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query product", err.Error())
	}

	err = mods.Products.HardDelete(c.Request().Context(), store.ID, existing.ID)
	if errors.Is(err, products.ErrLinkedToOrders) {
		return fail(c, http.StatusConflict, "LINKED_TO_ORDERS", "Product is linked to orders and cannot be deleted", nil)
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete product", err.Error())
	}
	return ok(c, map[string]interface{}{"id": existing.ID})
}

type flagPayload struct {
	Value bool `json:"value"`
}

func archiveProduct(c echo.Context) error {
	store, err := currentStore(c)
	if err != nil {
		return fail(c, http.StatusNotFound, "STORE_NOT_FOUND", "No store for this account", nil)
	}
	var payload flagPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse request", nil)
	}
	p, err := mods.Products.Archive(c.Request().Context(), store.ID, c.Param("id"), payload.Value)
	if errors.Is(err, gateway.ErrNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to archive product", err.Error())
	}
	return ok(c, p)
}

func activateProduct(c echo.Context) error {
	store, err := currentStore(c)
	if err != nil {
		return fail(c, http.StatusNotFound, "STORE_NOT_FOUND", "No store for this account", nil)
	}
	var payload flagPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse request", nil)
	}
	p, err := mods.Products.Activate(c.Request().Context(), store.ID, c.Param("id"), payload.Value)
	if errors.Is(err, gateway.ErrNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update product", err.Error())
	}
	return ok(c, p)
}

type bulkPayload struct {
	IDs   []string `json:"ids"`
	Value bool     `json:"value"`
}

// bulkActivateProducts runs the per-id fan-out path used by the products
// list; a single failed id fails the whole report while applied updates
// stay applied.
func bulkActivateProducts(c echo.Context) error {
	store, err := currentStore(c)
	if err != nil {
		return fail(c, http.StatusNotFound, "STORE_NOT_FOUND", "No store for this account", nil)
	}
	var payload bulkPayload
	if err := c.Bind(&payload); err != nil || len(payload.IDs) == 0 {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "No product ids supplied", nil)
	}
	result := mods.Products.SetActiveEach(c.Request().Context(), store.ID, payload.IDs, payload.Value)
	if !result.OK() {
		return fail(c, http.StatusInternalServerError, "BULK_PARTIAL_FAILURE", "Some products could not be updated",
			map[string]interface{}{"failed_ids": result.FailedIDs})
	}
	return ok(c, map[string]interface{}{"updated": len(result.SucceededIDs)})
}

// bulkArchiveProducts uses the gateway's single IN-filtered update.
func bulkArchiveProducts(c echo.Context) error {
	store, err := currentStore(c)
	if err != nil {
		return fail(c, http.StatusNotFound, "STORE_NOT_FOUND", "No store for this account", nil)
	}
	var payload bulkPayload
	if err := c.Bind(&payload); err != nil || len(payload.IDs) == 0 {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "No product ids supplied", nil)
	}
	if err := mods.Products.BulkArchive(c.Request().Context(), store.ID, payload.IDs, payload.Value); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to archive products", err.Error())
	}
	return ok(c, map[string]interface{}{"updated": len(payload.IDs)})
}

func bulkDeleteProducts(c echo.Context) error {
	store, err := currentStore(c)
	if err != nil {
		return fail(c, http.StatusNotFound, "STORE_NOT_FOUND", "No store for this account", nil)
	}
	var payload bulkPayload
	if err := c.Bind(&payload); err != nil || len(payload.IDs) == 0 {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "No product ids supplied", nil)
	}
	result := mods.Products.BulkDelete(c.Request().Context(), store.ID, payload.IDs)
	if !result.Success {
		code := "BULK_DELETE_FAILED"
		msg := "Failed to delete products"
		if errors.Is(result.Err, products.ErrAllLinkedToOrders) {
			code = "ALL_LINKED_TO_ORDERS"
			msg = "All selected products are linked to orders and cannot be deleted"
		}
		return fail(c, http.StatusConflict, code, msg, map[string]interface{}{
			"deleted_count":  result.DeletedCount,
			"archived_count": result.ArchivedCount,
		})
	}
	return ok(c, map[string]interface{}{
		"deleted_count":  result.DeletedCount,
		"archived_count": result.ArchivedCount,
	})
}

type bulkCategoryPayload struct {
	IDs        []string `json:"ids"`
	CategoryID *string  `json:"category_id"`
}

func bulkChangeCategory(c echo.Context) error {
	store, err := currentStore(c)
	if err != nil {
		return fail(c, http.StatusNotFound, "STORE_NOT_FOUND", "No store for this account", nil)
	}
	var payload bulkCategoryPayload
	if err := c.Bind(&payload); err != nil || len(payload.IDs) == 0 {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "No product ids supplied", nil)
	}
	result := mods.Products.ChangeCategoryEach(c.Request().Context(), store.ID, payload.IDs, normalizeScope(payload.CategoryID))
	if !result.OK() {
		return fail(c, http.StatusInternalServerError, "BULK_PARTIAL_FAILURE", "Some products could not be updated",
			map[string]interface{}{"failed_ids": result.FailedIDs})
	}
	return ok(c, map[string]interface{}{"updated": len(result.SucceededIDs)})
}
