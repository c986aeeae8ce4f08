package products

import (
	"github.com/rashedalhajeri/quickstore-builder/internal/domain"
)

// MapRawProduct normalizes a raw persisted row into the domain Product
// used everywhere above the gateway. Missing nullable fields get their
// documented defaults: sales_count 0, is_featured/is_archived false.
// The input row is never mutated.
func MapRawProduct(row RawProductRow) domain.Product {
	p := domain.Product{
		ID:              row.ID,
		StoreID:         row.StoreID,
		Name:            row.Name,
		Price:           row.Price,
		DiscountPrice:   row.DiscountPrice,
		AvailableColors: row.AvailableColors,
		AvailableSizes:  row.AvailableSizes,
		Images:          row.Images,
		CategoryID:      row.CategoryID,
		SectionID:       row.SectionID,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
	if row.Description != nil {
		p.Description = *row.Description
	}
	if row.StockQuantity != nil {
		p.StockQuantity = *row.StockQuantity
	}
	if row.TrackInventory != nil {
		p.TrackInventory = *row.TrackInventory
	}
	if row.HasColors != nil {
		p.HasColors = *row.HasColors
	}
	if row.HasSizes != nil {
		p.HasSizes = *row.HasSizes
	}
	if row.RequireCustomerName != nil {
		p.RequireCustomerName = *row.RequireCustomerName
	}
	if row.RequireCustomerImage != nil {
		p.RequireCustomerImage = *row.RequireCustomerImage
	}
	if row.IsActive != nil {
		p.IsActive = *row.IsActive
	}
	if row.IsArchived != nil {
		p.IsArchived = *row.IsArchived
	}
	if row.IsFeatured != nil {
		p.IsFeatured = *row.IsFeatured
	}
	if row.SalesCount != nil {
		p.SalesCount = *row.SalesCount
	}
	if row.CategoryName != nil {
		p.CategoryName = *row.CategoryName
	}
	return p
}

// MapRawProducts maps a batch of raw rows in order.
func MapRawProducts(rows []RawProductRow) []domain.Product {
	out := make([]domain.Product, 0, len(rows))
	for i := range rows {
		out = append(out, MapRawProduct(rows[i]))
	}
	return out
}
