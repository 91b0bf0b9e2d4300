package postgres

import (
	"context"
	"fmt"
	"myFashionHub/domain"
	"time"

	"gorm.io/gorm"
)

type BrowsingHistoryRepository struct {
	DB *gorm.DB
}

func NewBrowsingHistoryRepository(db *gorm.DB) *BrowsingHistoryRepository {
	return &BrowsingHistoryRepository{
		DB: db,
	}
}

func (r *BrowsingHistoryRepository) Create(ctx context.Context, view *domain.BrowsingHistory) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(view).Error; err != nil {
		return fmt.Errorf("failed to create browsing history entry: %w", err)
	}

	return nil
}

// ExistsSince reports whether a view for (user, product) exists with a
// timestamp at or after the cutoff. Used for the dedup window.
func (r *BrowsingHistoryRepository) ExistsSince(ctx context.Context, userID, productID uint64, since time.Time) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("context error: %w", err)
	}

	var count int64
	err := r.DB.WithContext(ctx).
		Model(&domain.BrowsingHistory{}).
		Where("user_id = ? AND product_id = ? AND viewed_at >= ?", userID, productID, since).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check browsing history: %w", err)
	}

	return count > 0, nil
}

// FindRecent returns the user's views since the cutoff, newest first,
// capped at limit.
func (r *BrowsingHistoryRepository) FindRecent(ctx context.Context, userID uint64, since time.Time, limit int) ([]domain.BrowsingHistory, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var views []domain.BrowsingHistory
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND viewed_at >= ?", userID, since).
		Order("viewed_at DESC").
		Limit(limit).
		Find(&views).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find recent views: %w", err)
	}

	return views, nil
}

func (r *BrowsingHistoryRepository) CountByUser(ctx context.Context, userID uint64) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}

	var count int64
	err := r.DB.WithContext(ctx).
		Model(&domain.BrowsingHistory{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count browsing history: %w", err)
	}

	return count, nil
}

// DeleteOldest removes the n oldest views for the user, by viewed_at
// ascending. Retention keeps exactly the 100 most recent entries.
func (r *BrowsingHistoryRepository) DeleteOldest(ctx context.Context, userID uint64, n int) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}
	if n <= 0 {
		return nil
	}

	sub := r.DB.
		Model(&domain.BrowsingHistory{}).
		Select("id").
		Where("user_id = ?", userID).
		Order("viewed_at ASC").
		Limit(n)

	err := r.DB.WithContext(ctx).
		Where("id IN (?)", sub).
		Delete(&domain.BrowsingHistory{}).Error
	if err != nil {
		return fmt.Errorf("failed to prune browsing history: %w", err)
	}

	return nil
}
