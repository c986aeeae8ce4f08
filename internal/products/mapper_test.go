package products

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func boolPtr(b bool) *bool      { return &b }
func intPtr(n int) *int         { return &n }
func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }

func TestMapRawProductDefaults(t *testing.T) {
	row := RawProductRow{
		ID:      "p1",
		StoreID: "s1",
		Name:    "Mug",
		Price:   3.5,
	}
	p := MapRawProduct(row)

	assert.Equal(t, "p1", p.ID)
	assert.Equal(t, 3.5, p.Price)
	assert.Nil(t, p.DiscountPrice)
	assert.Equal(t, 0, p.SalesCount)
	assert.Equal(t, 0, p.StockQuantity)
	assert.False(t, p.IsFeatured)
	assert.False(t, p.IsArchived)
	assert.False(t, p.IsActive)
	assert.False(t, p.TrackInventory)
	assert.Empty(t, p.CategoryName)
}

func TestMapRawProductPassthrough(t *testing.T) {
	created := time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)
	row := RawProductRow{
		ID:              "p2",
		StoreID:         "s1",
		Name:            "Shirt",
		Price:           12,
		DiscountPrice:   f64Ptr(9.5),
		Description:     strPtr("cotton"),
		StockQuantity:   intPtr(7),
		TrackInventory:  boolPtr(true),
		HasColors:       boolPtr(true),
		AvailableColors: []string{"red", "blue"},
		Images:          []string{"a.jpg"},
		IsActive:        boolPtr(true),
		IsFeatured:      boolPtr(true),
		SalesCount:      intPtr(41),
		CategoryName:    strPtr("Apparel"),
		CreatedAt:       created,
	}
	p := MapRawProduct(row)

	assert.Equal(t, 9.5, *p.DiscountPrice)
	assert.Equal(t, "cotton", p.Description)
	assert.Equal(t, 7, p.StockQuantity)
	assert.True(t, p.TrackInventory)
	assert.True(t, p.HasColors)
	assert.Equal(t, []string{"red", "blue"}, p.AvailableColors)
	assert.Equal(t, 41, p.SalesCount)
	assert.Equal(t, "Apparel", p.CategoryName)
	assert.Equal(t, created, p.CreatedAt)
}

func TestMapRawProductsKeepsOrder(t *testing.T) {
	rows := []RawProductRow{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	out := MapRawProducts(rows)
	assert.Len(t, out, 3)
	assert.Equal(t, "a", out[0].ID)
	assert.Equal(t, "c", out[2].ID)
}
