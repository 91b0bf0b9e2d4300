package bag

import (
	"context"
	"errors"
	"fmt"
	"myFashionHub/domain"
	"myFashionHub/pkg/logger"
	"time"
)

// Merge outcomes reported to the caller.
const (
	OutcomeAdded   = "added"
	OutcomeUpdated = "updated"
	OutcomeRemoved = "removed"
)

type BagRepository interface {
	Create(ctx context.Context, item *domain.BagItem) error
	FindByID(ctx context.Context, id uint64) (domain.BagItem, error)
	FindByKey(ctx context.Context, userID, productID uint64, size string) (domain.BagItem, error)
	FindByUser(ctx context.Context, userID uint64) ([]domain.BagItem, error)
	UpdateQuantity(ctx context.Context, id uint64, quantity int) (domain.BagItem, error)
	Delete(ctx context.Context, id uint64) error
	DeleteByIDs(ctx context.Context, ids []uint64) error
	FindStale(ctx context.Context, olderThan time.Time) ([]domain.BagItem, error)
}

type ProductRepository interface {
	FindByID(ctx context.Context, id uint64) (domain.Product, error)
}

type BagService struct {
	bagRepo     BagRepository
	productRepo ProductRepository
}

func NewBagService(bagRepo BagRepository, productRepo ProductRepository) *BagService {
	return &BagService{
		bagRepo:     bagRepo,
		productRepo: productRepo,
	}
}

// AddToBag merges a product into the user's bag. Adding a
// (product, size) already present increments its quantity instead of
// creating a second line. Two concurrent adds for the same key both
// succeed: the unique index rejects the loser's insert and it retries
// as an increment, so the quantities converge.
func (s *BagService) AddToBag(
	ctx context.Context,
	userID, productID uint64,
	size string,
	quantity int,
) (domain.BagItem, string, error) {

	if err := ctx.Err(); err != nil {
		return domain.BagItem{}, "", fmt.Errorf("context error: %w", err)
	}
	if quantity < 1 {
		quantity = 1
	}

	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return domain.BagItem{}, "", err
	}

	existing, err := s.bagRepo.FindByKey(ctx, userID, productID, size)
	if err == nil {
		return s.increment(ctx, existing, quantity)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return domain.BagItem{}, "", err
	}

	item := domain.BagItem{
		UserID:    userID,
		ProductID: productID,
		Size:      size,
		Quantity:  quantity,
	}
	err = s.bagRepo.Create(ctx, &item)
	if err == nil {
		return item, OutcomeAdded, nil
	}
	if !errors.Is(err, domain.ErrDuplicateEntry) {
		return domain.BagItem{}, "", err
	}

	// Lost the insert race: the row exists now, so fold our quantity
	// into it.
	existing, err = s.bagRepo.FindByKey(ctx, userID, productID, size)
	if err != nil {
		return domain.BagItem{}, "", fmt.Errorf("reread after duplicate insert: %w", err)
	}

	return s.increment(ctx, existing, quantity)
}

func (s *BagService) increment(ctx context.Context, existing domain.BagItem, quantity int) (domain.BagItem, string, error) {
	updated, err := s.bagRepo.UpdateQuantity(ctx, existing.ID, existing.Quantity+quantity)
	if err != nil {
		return domain.BagItem{}, "", err
	}

	return updated, OutcomeUpdated, nil
}

// UpdateQuantity sets a bag line's quantity. Anything below one removes
// the line.
func (s *BagService) UpdateQuantity(ctx context.Context, userID, itemID uint64, quantity int) (domain.BagItem, string, error) {
	if err := ctx.Err(); err != nil {
		return domain.BagItem{}, "", fmt.Errorf("context error: %w", err)
	}

	item, err := s.bagRepo.FindByID(ctx, itemID)
	if err != nil {
		return domain.BagItem{}, "", err
	}
	if item.UserID != userID {
		return domain.BagItem{}, "", domain.ErrNotFound
	}

	if quantity < 1 {
		if err := s.bagRepo.Delete(ctx, itemID); err != nil {
			return domain.BagItem{}, "", err
		}
		return domain.BagItem{}, OutcomeRemoved, nil
	}

	updated, err := s.bagRepo.UpdateQuantity(ctx, itemID, quantity)
	if err != nil {
		return domain.BagItem{}, "", err
	}

	return updated, OutcomeUpdated, nil
}

func (s *BagService) RemoveItem(ctx context.Context, userID, itemID uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	item, err := s.bagRepo.FindByID(ctx, itemID)
	if err != nil {
		return err
	}
	if item.UserID != userID {
		return domain.ErrNotFound
	}

	return s.bagRepo.Delete(ctx, itemID)
}

// GetBag lists the user's bag, collapsing any duplicate
// (product, size) lines left behind by historical races into a single
// line carrying the summed quantity.
func (s *BagService) GetBag(ctx context.Context, userID uint64) ([]domain.BagItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	items, err := s.bagRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.collapseDuplicates(ctx, items)
}

func (s *BagService) collapseDuplicates(ctx context.Context, items []domain.BagItem) ([]domain.BagItem, error) {
	type lineKey struct {
		productID uint64
		size      string
	}

	seen := make(map[lineKey]int, len(items))
	merged := make(map[int]struct{})
	var surplus []uint64
	out := make([]domain.BagItem, 0, len(items))

	for _, item := range items {
		key := lineKey{productID: item.ProductID, size: item.Size}
		if idx, ok := seen[key]; ok {
			out[idx].Quantity += item.Quantity
			merged[idx] = struct{}{}
			surplus = append(surplus, item.ID)
			continue
		}
		seen[key] = len(out)
		out = append(out, item)
	}

	if len(surplus) == 0 {
		return out, nil
	}

	logger.Warn("collapsing duplicate bag lines", "count", len(surplus))

	for idx := range merged {
		if _, err := s.bagRepo.UpdateQuantity(ctx, out[idx].ID, out[idx].Quantity); err != nil {
			return nil, fmt.Errorf("merge duplicate bag line: %w", err)
		}
	}
	if err := s.bagRepo.DeleteByIDs(ctx, surplus); err != nil {
		return nil, fmt.Errorf("drop duplicate bag lines: %w", err)
	}

	return out, nil
}
