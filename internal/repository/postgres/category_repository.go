package postgres

import (
	"context"
	"errors"
	"fmt"
	"myFashionHub/domain"

	"gorm.io/gorm"
)

type CategoryRepository struct {
	DB *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{
		DB: db,
	}
}

func (r *CategoryRepository) FindAll(ctx context.Context) ([]domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var categories []domain.Category
	err := r.DB.WithContext(ctx).Order("id").Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find categories: %w", err)
	}

	return categories, nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, id uint64) (domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return domain.Category{}, fmt.Errorf("context error: %w", err)
	}

	var category domain.Category
	err := r.DB.WithContext(ctx).First(&category, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Category{}, domain.ErrNotFound
		}
		return domain.Category{}, fmt.Errorf("failed to find category: %w", err)
	}

	return category, nil
}

// MemberProductIDs returns the ordered member list of the given category.
func (r *CategoryRepository) MemberProductIDs(ctx context.Context, categoryID uint64) ([]uint64, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var ids []uint64
	err := r.DB.WithContext(ctx).
		Model(&domain.CategoryProduct{}).
		Where("category_id = ?", categoryID).
		Order("position").
		Pluck("product_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load category members: %w", err)
	}

	return ids, nil
}

// MembersOfCategoryContaining resolves a product's category by reverse
// lookup and returns that category's full member list. A product outside
// every category yields an empty slice, not an error.
func (r *CategoryRepository) MembersOfCategoryContaining(ctx context.Context, productID uint64) ([]uint64, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var link domain.CategoryProduct
	err := r.DB.WithContext(ctx).
		Where("product_id = ?", productID).
		First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to resolve category membership: %w", err)
	}

	return r.MemberProductIDs(ctx, link.CategoryID)
}
