package domain

import "time"

// Product is a storefront item owned by a single store.
// AvailableColors/AvailableSizes carry values only when the matching
// has_colors/has_sizes flag is set; stock_quantity is meaningful only
// when track_inventory is set.
type Product struct {
	ID                   string    `gorm:"primaryKey;size:36" json:"id" form:"id"`
	StoreID              string    `gorm:"index;size:36" json:"store_id" form:"store_id"`
	Name                 string    `gorm:"index" json:"name" form:"name"`
	Description          string    `json:"description" form:"description"`
	Price                float64   `json:"price" form:"price"`
	DiscountPrice        *float64  `json:"discount_price" form:"discount_price"`
	StockQuantity        int       `json:"stock_quantity" form:"stock_quantity"`
	TrackInventory       bool      `json:"track_inventory" form:"track_inventory"`
	HasColors            bool      `json:"has_colors" form:"has_colors"`
	HasSizes             bool      `json:"has_sizes" form:"has_sizes"`
	AvailableColors      []string  `gorm:"serializer:json" json:"available_colors" form:"available_colors"`
	AvailableSizes       []string  `gorm:"serializer:json" json:"available_sizes" form:"available_sizes"`
	Images               []string  `gorm:"serializer:json" json:"images" form:"images"`
	RequireCustomerName  bool      `json:"require_customer_name" form:"require_customer_name"`
	RequireCustomerImage bool      `json:"require_customer_image" form:"require_customer_image"`
	CategoryID           *string   `gorm:"index;size:36" json:"category_id" form:"category_id"`
	SectionID            *string   `gorm:"index;size:36" json:"section_id" form:"section_id"`
	IsActive             bool      `gorm:"index" json:"is_active" form:"is_active"`
	IsArchived           bool      `gorm:"index" json:"is_archived" form:"is_archived"`
	IsFeatured           bool      `json:"is_featured" form:"is_featured"`
	SalesCount           int       `json:"sales_count" form:"sales_count"`
	CategoryName         string    `gorm:"-" json:"category_name,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// TableName Specify table name
func (Product) TableName() string {
	return "products"
}

type Category struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id" form:"id"`
	StoreID   string    `gorm:"index;size:36" json:"store_id" form:"store_id"`
	Name      string    `gorm:"index" json:"name" form:"name"`
	SortOrder int       `json:"sort_order" form:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName Specify table name
func (Category) TableName() string {
	return "categories"
}
