package postgres

import (
	"context"
	"errors"
	"fmt"
	"myFashionHub/domain"
	"time"

	"gorm.io/gorm"
)

type BagRepository struct {
	DB *gorm.DB
}

func NewBagRepository(db *gorm.DB) *BagRepository {
	return &BagRepository{
		DB: db,
	}
}

func (r *BagRepository) Create(ctx context.Context, item *domain.BagItem) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	err := r.DB.WithContext(ctx).Create(item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicateEntry
		}
		return fmt.Errorf("failed to create bag item: %w", err)
	}

	return nil
}

func (r *BagRepository) FindByID(ctx context.Context, id uint64) (domain.BagItem, error) {
	if err := ctx.Err(); err != nil {
		return domain.BagItem{}, fmt.Errorf("context error: %w", err)
	}

	var item domain.BagItem
	err := r.DB.WithContext(ctx).Preload("Product").First(&item, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.BagItem{}, domain.ErrNotFound
		}
		return domain.BagItem{}, fmt.Errorf("failed to find bag item: %w", err)
	}

	return item, nil
}

// FindByKey looks up the single entry for (user, product, size).
func (r *BagRepository) FindByKey(ctx context.Context, userID, productID uint64, size string) (domain.BagItem, error) {
	if err := ctx.Err(); err != nil {
		return domain.BagItem{}, fmt.Errorf("context error: %w", err)
	}

	var item domain.BagItem
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND product_id = ? AND size = ?", userID, productID, size).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.BagItem{}, domain.ErrNotFound
		}
		return domain.BagItem{}, fmt.Errorf("failed to find bag item: %w", err)
	}

	return item, nil
}

func (r *BagRepository) FindByUser(ctx context.Context, userID uint64) ([]domain.BagItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var items []domain.BagItem
	err := r.DB.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("id").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find bag items: %w", err)
	}

	return items, nil
}

func (r *BagRepository) UpdateQuantity(ctx context.Context, id uint64, quantity int) (domain.BagItem, error) {
	if err := ctx.Err(); err != nil {
		return domain.BagItem{}, fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).
		Model(&domain.BagItem{}).
		Where("id = ?", id).
		Update("quantity", quantity)
	if result.Error != nil {
		return domain.BagItem{}, fmt.Errorf("failed to update bag item quantity: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.BagItem{}, domain.ErrNotFound
	}

	return r.FindByID(ctx, id)
}

func (r *BagRepository) Delete(ctx context.Context, id uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Delete(&domain.BagItem{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete bag item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (r *BagRepository) DeleteByIDs(ctx context.Context, ids []uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}
	if len(ids) == 0 {
		return nil
	}

	if err := r.DB.WithContext(ctx).Delete(&domain.BagItem{}, ids).Error; err != nil {
		return fmt.Errorf("failed to delete bag items: %w", err)
	}

	return nil
}

// FindStale returns bag items whose last modification is older than the
// cutoff, for the cart-abandonment scan.
func (r *BagRepository) FindStale(ctx context.Context, olderThan time.Time) ([]domain.BagItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var items []domain.BagItem
	err := r.DB.WithContext(ctx).
		Preload("Product").
		Where("updated_at < ?", olderThan).
		Order("user_id").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find stale bag items: %w", err)
	}

	return items, nil
}
