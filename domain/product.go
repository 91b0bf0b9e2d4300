package domain

import (
	"time"

	"gorm.io/datatypes"
)

// CREATE TABLE public.products (
//     id          BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     name        TEXT NOT NULL,
//     brand       TEXT,
//     price       NUMERIC NOT NULL,
//     discount    TEXT,
//     images      JSONB,
//     created_at  TIMESTAMPTZ DEFAULT NOW()
// );

type Product struct {
	ID        uint64         `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string         `gorm:"column:name;type:text;not null" json:"name"`
	Brand     string         `gorm:"column:brand;type:text" json:"brand"`
	Price     float64        `gorm:"column:price;type:numeric;not null" json:"price"`
	Discount  string         `gorm:"column:discount;type:text" json:"discount"`
	Images    datatypes.JSON `gorm:"column:images" json:"images"`
	CreatedAt time.Time      `gorm:"column:created_at" json:"created_at"`
}

func (Product) TableName() string {
	return "products"
}
