package postgres

import (
	"context"
	"errors"
	"fmt"
	"myFashionHub/domain"

	"gorm.io/gorm"
)

type WishlistRepository struct {
	DB *gorm.DB
}

func NewWishlistRepository(db *gorm.DB) *WishlistRepository {
	return &WishlistRepository{
		DB: db,
	}
}

func (r *WishlistRepository) Create(ctx context.Context, item *domain.WishlistItem) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	err := r.DB.WithContext(ctx).Create(item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicateEntry
		}
		return fmt.Errorf("failed to create wishlist item: %w", err)
	}

	return nil
}

// FindByKey returns the entry for (user, product) if one exists.
func (r *WishlistRepository) FindByKey(ctx context.Context, userID, productID uint64) (domain.WishlistItem, error) {
	if err := ctx.Err(); err != nil {
		return domain.WishlistItem{}, fmt.Errorf("context error: %w", err)
	}

	var item domain.WishlistItem
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.WishlistItem{}, domain.ErrNotFound
		}
		return domain.WishlistItem{}, fmt.Errorf("failed to find wishlist item: %w", err)
	}

	return item, nil
}

// FindAllByKey returns every row for (user, product), oldest first.
// More than one row means a historical race slipped a duplicate in.
func (r *WishlistRepository) FindAllByKey(ctx context.Context, userID, productID uint64) ([]domain.WishlistItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var items []domain.WishlistItem
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Order("id").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find wishlist items: %w", err)
	}

	return items, nil
}

func (r *WishlistRepository) FindByUser(ctx context.Context, userID uint64) ([]domain.WishlistItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var items []domain.WishlistItem
	err := r.DB.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("id").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find wishlist items: %w", err)
	}

	return items, nil
}

// ProductIDsByUser returns the set of wishlisted product ids, used by
// the recommendation engine's personalization signal.
func (r *WishlistRepository) ProductIDsByUser(ctx context.Context, userID uint64) ([]uint64, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var ids []uint64
	err := r.DB.WithContext(ctx).
		Model(&domain.WishlistItem{}).
		Where("user_id = ?", userID).
		Pluck("product_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load wishlist product ids: %w", err)
	}

	return ids, nil
}

func (r *WishlistRepository) Delete(ctx context.Context, id uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Delete(&domain.WishlistItem{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete wishlist item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *WishlistRepository) DeleteByIDs(ctx context.Context, ids []uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}
	if len(ids) == 0 {
		return nil
	}

	if err := r.DB.WithContext(ctx).Delete(&domain.WishlistItem{}, ids).Error; err != nil {
		return fmt.Errorf("failed to delete wishlist items: %w", err)
	}

	return nil
}
