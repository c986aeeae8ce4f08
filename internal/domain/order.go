package domain

import "time"

// Order status labels. A status is a correctable label, not a
// validated state machine.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// OrderStatuses lists all valid status labels.
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

func ValidOrderStatus(s string) bool {
	for _, v := range OrderStatuses {
		if v == s {
			return true
		}
	}
	return false
}

type Order struct {
	ID              string      `gorm:"primaryKey;size:36" json:"id" form:"id"`
	StoreID         string      `gorm:"index;size:36" json:"store_id" form:"store_id"`
	OrderNumber     string      `gorm:"uniqueIndex;size:32" json:"order_number" form:"order_number"`
	CustomerName    string      `gorm:"index" json:"customer_name" form:"customer_name"`
	CustomerEmail   string      `gorm:"index" json:"customer_email" form:"customer_email"`
	CustomerPhone   string      `gorm:"size:32" json:"customer_phone" form:"customer_phone"`
	ShippingAddress string      `json:"shipping_address" form:"shipping_address"`
	DeliveryArea    string      `json:"delivery_area" form:"delivery_area"`
	PaymentMethod   string      `gorm:"size:32" json:"payment_method" form:"payment_method"`
	Status          string      `gorm:"index;size:16" json:"status" form:"status"`
	Total           float64     `json:"total" form:"total"`
	Items           []OrderItem `gorm:"-" json:"items,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// TableName Specify table name
func (Order) TableName() string {
	return "orders"
}

// OrderItem is an immutable line captured at checkout time. UnitPrice is
// the product price at the moment of ordering, never re-read from products.
type OrderItem struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id" form:"id"`
	OrderID       string    `gorm:"index;size:36" json:"order_id" form:"order_id"`
	ProductID     string    `gorm:"index;size:36" json:"product_id" form:"product_id"`
	Quantity      int       `json:"quantity" form:"quantity"`
	UnitPrice     float64   `json:"unit_price" form:"unit_price"`
	SelectedColor string    `gorm:"size:64" json:"selected_color" form:"selected_color"`
	SelectedSize  string    `gorm:"size:64" json:"selected_size" form:"selected_size"`
	CustomerText  string    `json:"customer_text" form:"customer_text"`
	CustomerImage string    `gorm:"size:1024" json:"customer_image" form:"customer_image"`
	ProductName   string    `gorm:"-" json:"product_name,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// TableName Specify table name
func (OrderItem) TableName() string {
	return "order_items"
}
