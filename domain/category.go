package domain

import (
	"time"

	"gorm.io/datatypes"
)

// CREATE TABLE public.categories (
//     id             BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     name           TEXT NOT NULL,
//     subcategories  JSONB,
//     created_at     TIMESTAMPTZ DEFAULT NOW()
// );
//
// CREATE TABLE public.category_products (
//     category_id  BIGINT NOT NULL REFERENCES categories(id),
//     product_id   BIGINT NOT NULL REFERENCES products(id),
//     position     INT NOT NULL DEFAULT 0,
//     PRIMARY KEY (category_id, product_id)
// );

type Category struct {
	ID            uint64         `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string         `gorm:"column:name;type:text;not null" json:"name"`
	Subcategories datatypes.JSON `gorm:"column:subcategories" json:"subcategories"`
	CreatedAt     time.Time      `gorm:"column:created_at" json:"created_at"`
}

func (Category) TableName() string {
	return "categories"
}

// CategoryProduct links a product into a category's ordered member list.
// A product's category membership is resolved by reverse lookup on this
// table (which category contains the product).
type CategoryProduct struct {
	CategoryID uint64 `gorm:"primaryKey;column:category_id" json:"category_id"`
	ProductID  uint64 `gorm:"primaryKey;column:product_id" json:"product_id"`
	Position   int    `gorm:"column:position;default:0" json:"position"`
}

func (CategoryProduct) TableName() string {
	return "category_products"
}
