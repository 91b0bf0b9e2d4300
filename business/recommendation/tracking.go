package recommendation

import (
	"context"
	"fmt"
	"myFashionHub/domain"
	"time"
)

const (
	// A repeat view of the same product within this window is not
	// recorded again.
	viewDedupWindow = time.Hour

	// Per-user history cap. Oldest entries are evicted past this.
	historyRetention = 100
)

// TrackView records a product view for scoring signals. Repeat views
// inside the dedup window are dropped, and the per-user history is
// trimmed to the retention cap afterwards.
func (s *RecommendationService) TrackView(ctx context.Context, userID, productID uint64, viewDuration int) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	now := s.now()

	seen, err := s.historyRepo.ExistsSince(ctx, userID, productID, now.Add(-viewDedupWindow))
	if err != nil {
		return fmt.Errorf("check recent view: %w", err)
	}
	if seen {
		return nil
	}

	view := domain.BrowsingHistory{
		UserID:       userID,
		ProductID:    productID,
		ViewedAt:     now,
		ViewDuration: viewDuration,
	}
	if err := s.historyRepo.Create(ctx, &view); err != nil {
		return fmt.Errorf("record view: %w", err)
	}

	count, err := s.historyRepo.CountByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("count views: %w", err)
	}
	if count > historyRetention {
		if err := s.historyRepo.DeleteOldest(ctx, userID, int(count-historyRetention)); err != nil {
			return fmt.Errorf("trim view history: %w", err)
		}
	}

	return nil
}
