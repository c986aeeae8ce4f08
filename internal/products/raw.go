package products

import "time"

// RawProductRow is the persisted shape of a products row as the gateway
// returns it: snake_case columns, nullable fields as pointers, plus the
// one-level flattened category name when the query joined categories.
// It is the only valid input of the mapper.
type RawProductRow struct {
	ID                   string     `gorm:"column:id"`
	StoreID              string     `gorm:"column:store_id"`
	Name                 string     `gorm:"column:name"`
	Description          *string    `gorm:"column:description"`
	Price                float64    `gorm:"column:price"`
	DiscountPrice        *float64   `gorm:"column:discount_price"`
	StockQuantity        *int       `gorm:"column:stock_quantity"`
	TrackInventory       *bool      `gorm:"column:track_inventory"`
	HasColors            *bool      `gorm:"column:has_colors"`
	HasSizes             *bool      `gorm:"column:has_sizes"`
	AvailableColors      []string   `gorm:"column:available_colors;serializer:json"`
	AvailableSizes       []string   `gorm:"column:available_sizes;serializer:json"`
	Images               []string   `gorm:"column:images;serializer:json"`
	RequireCustomerName  *bool      `gorm:"column:require_customer_name"`
	RequireCustomerImage *bool      `gorm:"column:require_customer_image"`
	CategoryID           *string    `gorm:"column:category_id"`
	SectionID            *string    `gorm:"column:section_id"`
	IsActive             *bool      `gorm:"column:is_active"`
	IsArchived           *bool      `gorm:"column:is_archived"`
	IsFeatured           *bool      `gorm:"column:is_featured"`
	SalesCount           *int       `gorm:"column:sales_count"`
	CategoryName         *string    `gorm:"column:category_name"`
	CreatedAt            time.Time  `gorm:"column:created_at"`
	UpdatedAt            time.Time  `gorm:"column:updated_at"`
}
