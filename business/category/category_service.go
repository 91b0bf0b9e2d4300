package category

import (
	"context"
	"fmt"
	"myFashionHub/domain"
)

type CategoryRepository interface {
	FindAll(ctx context.Context) ([]domain.Category, error)
	FindByID(ctx context.Context, id uint64) (domain.Category, error)
	MemberProductIDs(ctx context.Context, categoryID uint64) ([]uint64, error)
}

type ProductRepository interface {
	FindByIDs(ctx context.Context, ids []uint64) (map[uint64]domain.Product, error)
}

type CategoryService struct {
	categoryRepo CategoryRepository
	productRepo  ProductRepository
}

func NewCategoryService(categoryRepo CategoryRepository, productRepo ProductRepository) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
	}
}

func (s *CategoryService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	return s.categoryRepo.FindAll(ctx)
}

func (s *CategoryService) GetCategory(ctx context.Context, id uint64) (domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return domain.Category{}, fmt.Errorf("context error: %w", err)
	}

	return s.categoryRepo.FindByID(ctx, id)
}

// GetCategoryProducts resolves a category's member list to full
// products, preserving the curated ordering.
func (s *CategoryService) GetCategoryProducts(ctx context.Context, id uint64) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if _, err := s.categoryRepo.FindByID(ctx, id); err != nil {
		return nil, err
	}

	ids, err := s.categoryRepo.MemberProductIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []domain.Product{}, nil
	}

	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := products[id]; ok {
			out = append(out, p)
		}
	}

	return out, nil
}
