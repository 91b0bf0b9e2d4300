package domain

import "time"

// WishlistItem has at-most-one-entry semantics per (user_id, product_id),
// enforced by a unique index:
//
// CREATE UNIQUE INDEX wishlist_items_user_product
//     ON wishlist_items (user_id, product_id);

type WishlistItem struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint64    `gorm:"column:user_id;not null;uniqueIndex:wishlist_items_user_product" json:"user_id"`
	ProductID uint64    `gorm:"column:product_id;not null;uniqueIndex:wishlist_items_user_product" json:"product_id"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (WishlistItem) TableName() string {
	return "wishlist_items"
}
