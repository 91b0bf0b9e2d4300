package domain

import "time"

// BagItem is a single bag line. The unique index on
// (user_id, product_id, size) is the only serialization point for
// concurrent add-to-bag calls; the bag service relies on it and
// reconciles duplicate-key rejections by re-reading and incrementing.
//
// CREATE UNIQUE INDEX bag_items_user_product_size
//     ON bag_items (user_id, product_id, size);

type BagItem struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint64    `gorm:"column:user_id;not null;uniqueIndex:bag_items_user_product_size" json:"user_id"`
	ProductID uint64    `gorm:"column:product_id;not null;uniqueIndex:bag_items_user_product_size" json:"product_id"`
	Size      string    `gorm:"column:size;type:text;uniqueIndex:bag_items_user_product_size" json:"size"`
	Quantity  int       `gorm:"column:quantity;not null;default:1" json:"quantity"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (BagItem) TableName() string {
	return "bag_items"
}
