package wishlist

import (
	"context"
	"errors"
	"fmt"
	"myFashionHub/domain"
	"myFashionHub/pkg/logger"
)

const (
	OutcomeAdded          = "added"
	OutcomeRemoved        = "removed"
	OutcomeAlreadyPresent = "already-present"
)

type WishlistRepository interface {
	Create(ctx context.Context, item *domain.WishlistItem) error
	FindByKey(ctx context.Context, userID, productID uint64) (domain.WishlistItem, error)
	FindAllByKey(ctx context.Context, userID, productID uint64) ([]domain.WishlistItem, error)
	FindByUser(ctx context.Context, userID uint64) ([]domain.WishlistItem, error)
	Delete(ctx context.Context, id uint64) error
	DeleteByIDs(ctx context.Context, ids []uint64) error
}

type ProductRepository interface {
	FindByID(ctx context.Context, id uint64) (domain.Product, error)
}

type WishlistService struct {
	wishlistRepo WishlistRepository
	productRepo  ProductRepository
}

func NewWishlistService(wishlistRepo WishlistRepository, productRepo ProductRepository) *WishlistService {
	return &WishlistService{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
	}
}

// Toggle flips a product's wishlist membership: absent inserts it,
// present removes it. The unique index on (user, product) settles
// concurrent toggles; a loser's duplicate insert is reconciled by
// keeping the oldest row and dropping the rest, and reported as
// already-present so clients can tell it apart from a fresh add. The
// returned id is the surviving row (zero for a removal).
func (s *WishlistService) Toggle(ctx context.Context, userID, productID uint64) (string, uint64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, fmt.Errorf("context error: %w", err)
	}

	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return "", 0, err
	}

	existing, err := s.wishlistRepo.FindByKey(ctx, userID, productID)
	if err == nil {
		if err := s.wishlistRepo.Delete(ctx, existing.ID); err != nil {
			return "", 0, err
		}
		return OutcomeRemoved, 0, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return "", 0, err
	}

	item := domain.WishlistItem{
		UserID:    userID,
		ProductID: productID,
	}
	err = s.wishlistRepo.Create(ctx, &item)
	if err == nil {
		return OutcomeAdded, item.ID, nil
	}
	if !errors.Is(err, domain.ErrDuplicateEntry) {
		return "", 0, err
	}

	// A concurrent toggle inserted first. The product is on the
	// wishlist, but not through this call.
	survivor, err := s.reconcile(ctx, userID, productID)
	if err != nil {
		return "", 0, err
	}

	return OutcomeAlreadyPresent, survivor.ID, nil
}

// reconcile keeps the oldest row for the key, removes any others, and
// returns the survivor.
func (s *WishlistService) reconcile(ctx context.Context, userID, productID uint64) (domain.WishlistItem, error) {
	rows, err := s.wishlistRepo.FindAllByKey(ctx, userID, productID)
	if err != nil {
		return domain.WishlistItem{}, fmt.Errorf("reread after duplicate insert: %w", err)
	}
	if len(rows) == 0 {
		return domain.WishlistItem{}, nil
	}
	if len(rows) == 1 {
		return rows[0], nil
	}

	surplus := make([]uint64, 0, len(rows)-1)
	for _, row := range rows[1:] {
		surplus = append(surplus, row.ID)
	}

	logger.Warn("reconciling duplicate wishlist rows", "user_id", userID, "product_id", productID, "count", len(surplus))

	if err := s.wishlistRepo.DeleteByIDs(ctx, surplus); err != nil {
		return domain.WishlistItem{}, err
	}

	return rows[0], nil
}

// GetWishlist lists the user's wishlist, collapsing duplicate product
// rows down to the oldest one.
func (s *WishlistService) GetWishlist(ctx context.Context, userID uint64) ([]domain.WishlistItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	items, err := s.wishlistRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	seen := make(map[uint64]struct{}, len(items))
	var surplus []uint64
	out := make([]domain.WishlistItem, 0, len(items))

	for _, item := range items {
		if _, ok := seen[item.ProductID]; ok {
			surplus = append(surplus, item.ID)
			continue
		}
		seen[item.ProductID] = struct{}{}
		out = append(out, item)
	}

	if len(surplus) > 0 {
		if err := s.wishlistRepo.DeleteByIDs(ctx, surplus); err != nil {
			return nil, fmt.Errorf("drop duplicate wishlist rows: %w", err)
		}
	}

	return out, nil
}

// Check reports whether a product is on the user's wishlist, and the
// id of the wishlist row when it is.
func (s *WishlistService) Check(ctx context.Context, userID, productID uint64) (bool, uint64, error) {
	if err := ctx.Err(); err != nil {
		return false, 0, fmt.Errorf("context error: %w", err)
	}

	item, err := s.wishlistRepo.FindByKey(ctx, userID, productID)
	if err == nil {
		return true, item.ID, nil
	}
	if errors.Is(err, domain.ErrNotFound) {
		return false, 0, nil
	}

	return false, 0, err
}

func (s *WishlistService) RemoveItem(ctx context.Context, userID, productID uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	existing, err := s.wishlistRepo.FindByKey(ctx, userID, productID)
	if err != nil {
		return err
	}

	return s.wishlistRepo.Delete(ctx, existing.ID)
}
