package domain

import (
	"time"

	"gorm.io/datatypes"
)

const (
	OrderStatusProcessing     = "Processing"
	OrderStatusShipped        = "Shipped"
	OrderStatusOutForDelivery = "Out for Delivery"
	OrderStatusDelivered      = "Delivered"
)

type Order struct {
	ID              uint64         `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          uint64         `gorm:"column:user_id;not null;index" json:"user_id"`
	Status          string         `gorm:"column:status;type:text;not null" json:"status"`
	Total           float64        `gorm:"column:total;type:numeric;not null" json:"total"`
	ShippingAddress string         `gorm:"column:shipping_address;type:text" json:"shipping_address"`
	PaymentMethod   string         `gorm:"column:payment_method;type:text" json:"payment_method"`
	Tracking        datatypes.JSON `gorm:"column:tracking" json:"tracking"`
	CreatedAt       time.Time      `gorm:"column:created_at" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"column:updated_at" json:"updated_at"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem snapshots price at order time; bag lines carry no price, so
// the total is always computed from catalog prices at placement.
type OrderItem struct {
	ID        uint64  `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   uint64  `gorm:"column:order_id;not null;index" json:"order_id"`
	ProductID uint64  `gorm:"column:product_id;not null" json:"product_id"`
	Size      string  `gorm:"column:size;type:text" json:"size"`
	Price     float64 `gorm:"column:price;type:numeric;not null" json:"price"`
	Quantity  int     `gorm:"column:quantity;not null" json:"quantity"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

// Tracking is stored on the order as a JSON document.
type Tracking struct {
	Number            string          `json:"number"`
	Carrier           string          `json:"carrier"`
	EstimatedDelivery string          `json:"estimated_delivery"`
	CurrentLocation   string          `json:"current_location"`
	Status            string          `json:"status"`
	Timeline          []TrackingEvent `json:"timeline"`
}

type TrackingEvent struct {
	Status    string `json:"status"`
	Location  string `json:"location"`
	Timestamp string `json:"timestamp"`
}
