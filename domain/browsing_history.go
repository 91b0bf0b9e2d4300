package domain

import "time"

// BrowsingHistory records product-detail views for personalization.
// Entries are deduplicated within a one-hour window at write time and
// capped to the 100 most recent per user; they are never mutated.
type BrowsingHistory struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       uint64    `gorm:"column:user_id;not null;index:idx_browsing_user_viewed" json:"user_id"`
	ProductID    uint64    `gorm:"column:product_id;not null" json:"product_id"`
	ViewedAt     time.Time `gorm:"column:viewed_at;index:idx_browsing_user_viewed,sort:desc" json:"viewed_at"`
	ViewDuration int       `gorm:"column:view_duration;default:0" json:"view_duration"`
}

func (BrowsingHistory) TableName() string {
	return "browsing_history"
}
