package recommendation

import (
	"context"
	"myFashionHub/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trackingService(history *fakeHistoryRepo, now time.Time) *RecommendationService {
	svc := NewRecommendationService(
		&fakeProductRepo{products: map[uint64]domain.Product{}},
		&fakeCategoryRepo{},
		&fakeWishlistRepo{productIDs: map[uint64][]uint64{}},
		history,
		nil,
	)
	svc.now = func() time.Time { return now }
	return svc
}

func TestTrackViewRecordsFirstView(t *testing.T) {
	history := &fakeHistoryRepo{}
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := trackingService(history, now)

	require.NoError(t, svc.TrackView(context.Background(), 7, 42, 30))
	require.Len(t, history.views, 1)
	assert.Equal(t, uint64(42), history.views[0].ProductID)
	assert.Equal(t, now, history.views[0].ViewedAt)
}

func TestTrackViewDedupWindow(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	// A view 10 minutes ago suppresses the repeat.
	history := &fakeHistoryRepo{views: []domain.BrowsingHistory{
		{UserID: 7, ProductID: 42, ViewedAt: now.Add(-10 * time.Minute)},
	}}
	svc := trackingService(history, now)
	require.NoError(t, svc.TrackView(context.Background(), 7, 42, 30))
	assert.Len(t, history.views, 1)

	// A view 2 hours ago is outside the window and records again.
	history = &fakeHistoryRepo{views: []domain.BrowsingHistory{
		{UserID: 7, ProductID: 42, ViewedAt: now.Add(-2 * time.Hour)},
	}}
	svc = trackingService(history, now)
	require.NoError(t, svc.TrackView(context.Background(), 7, 42, 30))
	assert.Len(t, history.views, 2)
}

func TestTrackViewDedupIsPerProduct(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	history := &fakeHistoryRepo{views: []domain.BrowsingHistory{
		{UserID: 7, ProductID: 42, ViewedAt: now.Add(-10 * time.Minute)},
	}}
	svc := trackingService(history, now)

	require.NoError(t, svc.TrackView(context.Background(), 7, 43, 30))
	assert.Len(t, history.views, 2)
}

func TestTrackViewRetentionCap(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	history := &fakeHistoryRepo{}
	for i := 0; i < 149; i++ {
		history.views = append(history.views, domain.BrowsingHistory{
			UserID:    7,
			ProductID: uint64(1000 + i),
			ViewedAt:  now.Add(-time.Duration(149-i) * time.Hour * 2),
		})
	}
	svc := trackingService(history, now)

	require.NoError(t, svc.TrackView(context.Background(), 7, 1, 30))

	count, err := history.CountByUser(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(historyRetention), count)
	assert.Equal(t, 50, history.deleted)

	// The newest entry survived the trim.
	exists, err := history.ExistsSince(context.Background(), 7, 1, now.Add(-time.Minute))
	require.NoError(t, err)
	assert.True(t, exists)
}
