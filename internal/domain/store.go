package domain

import (
	"time"
)

// Store is the tenant root entity, it owns products, orders,
// sections and categories by store_id foreign key.
type Store struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id" form:"id"`
	UserID     string    `gorm:"index;size:36" json:"user_id" form:"user_id"`
	StoreName  string    `gorm:"index" json:"store_name" form:"store_name"`
	DomainName string    `gorm:"uniqueIndex;size:64" json:"domain_name" form:"domain_name"`
	Country    string    `gorm:"size:64" json:"country" form:"country"`
	Currency   string    `gorm:"size:8" json:"currency" form:"currency"`
	LogoURL    string    `gorm:"size:1024" json:"logo_url" form:"logo_url"`
	BannerURL  string    `gorm:"size:1024" json:"banner_url" form:"banner_url"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName Specify table name
func (Store) TableName() string {
	return "stores"
}

// StoreFeature is a merchant-editable storefront selling point (max 4 per store).
type StoreFeature struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id" form:"id"`
	StoreID     string    `gorm:"index;size:36" json:"store_id" form:"store_id"`
	Icon        string    `gorm:"size:32" json:"icon" form:"icon"`
	Title       string    `json:"title" form:"title"`
	Description string    `json:"description" form:"description"`
	IsActive    bool      `json:"is_active" form:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName Specify table name
func (StoreFeature) TableName() string {
	return "store_features"
}

type StoreThemeSettings struct {
	ID                  string    `gorm:"primaryKey;size:36" json:"id" form:"id"`
	StoreID             string    `gorm:"uniqueIndex;size:36" json:"store_id" form:"store_id"`
	ThemeID             string    `gorm:"size:32" json:"theme_id" form:"theme_id"`
	PrimaryColor        string    `gorm:"size:16" json:"primary_color" form:"primary_color"`
	SecondaryColor      string    `gorm:"size:16" json:"secondary_color" form:"secondary_color"`
	AccentColor         string    `gorm:"size:16" json:"accent_color" form:"accent_color"`
	FontFamily          string    `gorm:"size:64" json:"font_family" form:"font_family"`
	LayoutType          string    `gorm:"size:32" json:"layout_type" form:"layout_type"`
	ProductsPerRow      int       `json:"products_per_row" form:"products_per_row"`
	ShowFeaturesSection bool      `json:"show_features_section" form:"show_features_section"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// TableName Specify table name
func (StoreThemeSettings) TableName() string {
	return "store_theme_settings"
}

type StoreShippingSettings struct {
	ID                   string    `gorm:"primaryKey;size:36" json:"id" form:"id"`
	StoreID              string    `gorm:"uniqueIndex;size:36" json:"store_id" form:"store_id"`
	ShippingMethod       string    `gorm:"size:32" json:"shipping_method" form:"shipping_method"`
	FreeShipping         bool      `json:"free_shipping" form:"free_shipping"`
	FreeShippingMinOrder float64   `json:"free_shipping_min_order" form:"free_shipping_min_order"`
	StandardDeliveryTime string    `gorm:"size:16" json:"standard_delivery_time" form:"standard_delivery_time"`
	DeliveryTimeUnit     string    `gorm:"size:16" json:"delivery_time_unit" form:"delivery_time_unit"`
	BronzeDeliverySpeed  string    `gorm:"size:16" json:"bronze_delivery_speed" form:"bronze_delivery_speed"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// TableName Specify table name
func (StoreShippingSettings) TableName() string {
	return "store_shipping_settings"
}

type DeliveryArea struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id" form:"id"`
	StoreID   string    `gorm:"index;size:36" json:"store_id" form:"store_id"`
	Name      string    `json:"name" form:"name"`
	Price     float64   `json:"price" form:"price"`
	Enabled   bool      `json:"enabled" form:"enabled"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName Specify table name
func (DeliveryArea) TableName() string {
	return "store_delivery_areas"
}
