package notification

import (
	"context"
	"fmt"
	"myFashionHub/domain"
	"myFashionHub/pkg/logger"
	"time"
)

// Bags untouched for this long count as abandoned.
const abandonmentCutoff = 24 * time.Hour

type StaleBagRepository interface {
	FindStale(ctx context.Context, olderThan time.Time) ([]domain.BagItem, error)
}

type UserBagRepository interface {
	FindByUser(ctx context.Context, userID uint64) ([]domain.BagItem, error)
}

// AbandonmentSummary is the result of one cart-reminder sweep.
type AbandonmentSummary struct {
	UsersScanned  int `json:"users_scanned"`
	UsersNotified int `json:"users_notified"`
	UsersFailed   int `json:"users_failed"`
}

// CheckAbandonment scans for bags idle past the cutoff and sends each
// owner a cart reminder. A failure for one user is logged and counted;
// the sweep continues with the rest.
func (s *NotificationService) CheckAbandonment(ctx context.Context, bagRepo StaleBagRepository) (AbandonmentSummary, error) {
	if err := ctx.Err(); err != nil {
		return AbandonmentSummary{}, fmt.Errorf("context error: %w", err)
	}

	stale, err := bagRepo.FindStale(ctx, s.now().Add(-abandonmentCutoff))
	if err != nil {
		return AbandonmentSummary{}, fmt.Errorf("scan stale bags: %w", err)
	}

	type cart struct {
		itemCount int
		total     float64
	}

	carts := make(map[uint64]*cart)
	for _, item := range stale {
		c, ok := carts[item.UserID]
		if !ok {
			c = &cart{}
			carts[item.UserID] = c
		}
		c.itemCount += item.Quantity
		if item.Product != nil {
			c.total += item.Product.Price * float64(item.Quantity)
		}
	}

	summary := AbandonmentSummary{UsersScanned: len(carts)}
	for userID, c := range carts {
		dispatch, err := s.dispatchCartReminder(ctx, userID, c.itemCount, c.total)
		if err != nil {
			summary.UsersFailed++
			logger.Error("cart reminder failed", "user_id", userID, "error", err)
			continue
		}
		if dispatch.Delivered > 0 {
			summary.UsersNotified++
		}
	}

	return summary, nil
}

// DispatchCartReminder nudges one user about their current bag,
// regardless of how long it has sat. An empty bag is a normal outcome.
func (s *NotificationService) DispatchCartReminder(ctx context.Context, userID uint64, bagRepo UserBagRepository) (DispatchSummary, error) {
	if err := ctx.Err(); err != nil {
		return DispatchSummary{}, fmt.Errorf("context error: %w", err)
	}

	items, err := bagRepo.FindByUser(ctx, userID)
	if err != nil {
		return DispatchSummary{}, fmt.Errorf("read bag: %w", err)
	}
	if len(items) == 0 {
		return DispatchSummary{}, nil
	}

	var itemCount int
	var total float64
	for _, item := range items {
		itemCount += item.Quantity
		if item.Product != nil {
			total += item.Product.Price * float64(item.Quantity)
		}
	}

	return s.dispatchCartReminder(ctx, userID, itemCount, total)
}

func (s *NotificationService) dispatchCartReminder(ctx context.Context, userID uint64, itemCount int, total float64) (DispatchSummary, error) {
	body := fmt.Sprintf("You have %d item(s) worth ₹%.0f in your cart", itemCount, total)

	return s.Dispatch(ctx, userID, domain.NotificationTypeCart, "Don't forget your bag!", body, map[string]any{
		"type":       domain.NotificationTypeCart,
		"item_count": itemCount,
		"total":      total,
	})
}
