package domain

import "time"

// Section type values decide how the storefront selects the products
// a section displays.
const (
	SectionBestSelling = "best_selling"
	SectionNewArrivals = "new_arrivals"
	SectionFeatured    = "featured"
	SectionOnSale      = "on_sale"
	SectionCategory    = "category"
	SectionCustom      = "custom"
)

// SectionTypes lists the recognized section types in display order.
var SectionTypes = []string{
	SectionBestSelling,
	SectionNewArrivals,
	SectionFeatured,
	SectionOnSale,
	SectionCategory,
	SectionCustom,
}

func ValidSectionType(s string) bool {
	for _, v := range SectionTypes {
		if v == s {
			return true
		}
	}
	return false
}

// Section is a selection/presentation configuration, it owns no products
// directly; membership is resolved at query time from section_type and
// the optional category scope.
type Section struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id" form:"id"`
	StoreID     string    `gorm:"index;size:36" json:"store_id" form:"store_id"`
	Name        string    `json:"name" form:"name"`
	SectionType string    `gorm:"size:32" json:"section_type" form:"section_type"`
	CategoryID  *string   `gorm:"size:36" json:"category_id" form:"category_id"`
	SortOrder   int       `json:"sort_order" form:"sort_order"`
	IsActive    bool      `json:"is_active" form:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName Specify table name
func (Section) TableName() string {
	return "sections"
}
