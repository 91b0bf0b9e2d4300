package recommendation

import (
	"context"
	"errors"
	"fmt"
	"myFashionHub/domain"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProductRepo struct {
	products map[uint64]domain.Product
}

func (f *fakeProductRepo) FindByID(_ context.Context, id uint64) (domain.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return domain.Product{}, domain.ErrNotFound
	}
	return p, nil
}

func (f *fakeProductRepo) FindAllExcept(_ context.Context, id uint64) ([]domain.Product, error) {
	ids := make([]uint64, 0, len(f.products))
	for pid := range f.products {
		if pid != id {
			ids = append(ids, pid)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]domain.Product, 0, len(ids))
	for _, pid := range ids {
		out = append(out, f.products[pid])
	}
	return out, nil
}

func (f *fakeProductRepo) FindByIDs(_ context.Context, ids []uint64) (map[uint64]domain.Product, error) {
	out := make(map[uint64]domain.Product, len(ids))
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

type fakeCategoryRepo struct {
	members map[uint64][]uint64 // categoryID -> member product ids
}

func (f *fakeCategoryRepo) MembersOfCategoryContaining(_ context.Context, productID uint64) ([]uint64, error) {
	for _, members := range f.members {
		for _, id := range members {
			if id == productID {
				return members, nil
			}
		}
	}
	return nil, nil
}

type fakeWishlistRepo struct {
	productIDs map[uint64][]uint64 // userID -> product ids
}

func (f *fakeWishlistRepo) ProductIDsByUser(_ context.Context, userID uint64) ([]uint64, error) {
	return f.productIDs[userID], nil
}

type fakeHistoryRepo struct {
	views []domain.BrowsingHistory

	createErr error
	deleted   int
}

func (f *fakeHistoryRepo) Create(_ context.Context, view *domain.BrowsingHistory) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.views = append(f.views, *view)
	return nil
}

func (f *fakeHistoryRepo) ExistsSince(_ context.Context, userID, productID uint64, since time.Time) (bool, error) {
	for _, v := range f.views {
		if v.UserID == userID && v.ProductID == productID && !v.ViewedAt.Before(since) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeHistoryRepo) FindRecent(_ context.Context, userID uint64, since time.Time, limit int) ([]domain.BrowsingHistory, error) {
	out := make([]domain.BrowsingHistory, 0)
	for _, v := range f.views {
		if v.UserID == userID && !v.ViewedAt.Before(since) {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ViewedAt.After(out[j].ViewedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeHistoryRepo) CountByUser(_ context.Context, userID uint64) (int64, error) {
	var n int64
	for _, v := range f.views {
		if v.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (f *fakeHistoryRepo) DeleteOldest(_ context.Context, userID uint64, n int) error {
	sort.Slice(f.views, func(i, j int) bool { return f.views[i].ViewedAt.Before(f.views[j].ViewedAt) })
	kept := f.views[:0]
	for _, v := range f.views {
		if v.UserID == userID && n > 0 {
			n--
			f.deleted++
			continue
		}
		kept = append(kept, v)
	}
	f.views = kept
	return nil
}

func newTestService(products map[uint64]domain.Product, categoryMembers map[uint64][]uint64) (*RecommendationService, *fakeHistoryRepo) {
	history := &fakeHistoryRepo{}
	svc := NewRecommendationService(
		&fakeProductRepo{products: products},
		&fakeCategoryRepo{members: categoryMembers},
		&fakeWishlistRepo{productIDs: map[uint64][]uint64{}},
		history,
		nil,
	)
	return svc, history
}

func TestRecommendScoresCatalogSignals(t *testing.T) {
	// Reference P: category C, brand B, price 1000, no discount.
	// X matches category, brand, price band, and has a deep discount.
	// Y matches nothing.
	products := map[uint64]domain.Product{
		1: {ID: 1, Name: "P", Brand: "B", Price: 1000},
		2: {ID: 2, Name: "X", Brand: "B", Price: 1050, Discount: "40% OFF"},
		3: {ID: 3, Name: "Y", Brand: "Other", Price: 2000},
	}
	svc, _ := newTestService(products, map[uint64][]uint64{10: {1, 2}})

	got, err := svc.Recommend(context.Background(), 1, 0, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, uint64(2), got[0].ID)

	reference := products[1]
	categorySet := map[uint64]struct{}{1: {}, 2: {}}
	assert.Equal(t, 80, scoreCandidate(reference, products[2], categorySet, nil))
	assert.Equal(t, 0, scoreCandidate(reference, products[3], categorySet, nil))
}

func TestRecommendMissingReference(t *testing.T) {
	svc, _ := newTestService(map[uint64]domain.Product{}, nil)

	_, err := svc.Recommend(context.Background(), 99, 0, 5)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecommendTruncatesAndDefaultsLimit(t *testing.T) {
	products := map[uint64]domain.Product{1: {ID: 1, Brand: "B", Price: 100}}
	for i := uint64(2); i <= 30; i++ {
		products[i] = domain.Product{ID: i, Brand: "B", Price: 100}
	}
	svc, _ := newTestService(products, nil)

	got, err := svc.Recommend(context.Background(), 1, 0, 0)
	require.NoError(t, err)
	assert.Len(t, got, defaultLimit)

	got, err = svc.Recommend(context.Background(), 1, 0, 5)
	require.NoError(t, err)
	assert.Len(t, got, 5)

	// Limit beyond the pool returns the whole pool.
	got, err = svc.Recommend(context.Background(), 1, 0, 100)
	require.NoError(t, err)
	assert.Len(t, got, 29)
}

func TestRecommendStableTieBreak(t *testing.T) {
	// All candidates score identically, so catalog order must survive.
	products := map[uint64]domain.Product{
		1: {ID: 1, Brand: "B", Price: 100},
		2: {ID: 2, Brand: "B", Price: 100},
		3: {ID: 3, Brand: "B", Price: 100},
		4: {ID: 4, Brand: "B", Price: 100},
	}
	svc, _ := newTestService(products, nil)

	got, err := svc.Recommend(context.Background(), 1, 0, 10)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []uint64{2, 3, 4}, []uint64{got[0].ID, got[1].ID, got[2].ID})
}

func TestRecommendWishlistBoost(t *testing.T) {
	products := map[uint64]domain.Product{
		1: {ID: 1, Brand: "B", Price: 1000},
		2: {ID: 2, Brand: "Z", Price: 5000},
		3: {ID: 3, Brand: "Z", Price: 5000},
	}
	history := &fakeHistoryRepo{}
	svc := NewRecommendationService(
		&fakeProductRepo{products: products},
		&fakeCategoryRepo{},
		&fakeWishlistRepo{productIDs: map[uint64][]uint64{7: {3}}},
		history,
		nil,
	)

	// Anonymous: tie, catalog order.
	got, err := svc.Recommend(context.Background(), 1, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), got[0].ID)

	// Wishlisted product 3 outranks its otherwise identical twin.
	got, err = svc.Recommend(context.Background(), 1, 7, 2)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), got[0].ID)
}

func TestRecommendBrowsingBonusesApplyUniformly(t *testing.T) {
	// The browsing signals depend only on the reference, so every
	// candidate gains the same bonus and the ranking is unchanged.
	products := map[uint64]domain.Product{
		1: {ID: 1, Brand: "B", Price: 1000},
		2: {ID: 2, Brand: "B", Price: 1000},
		3: {ID: 3, Brand: "Z", Price: 9000},
	}
	history := &fakeHistoryRepo{views: []domain.BrowsingHistory{
		{UserID: 7, ProductID: 2, ViewedAt: time.Now().Add(-time.Hour)},
	}}
	svc := NewRecommendationService(
		&fakeProductRepo{products: products},
		&fakeCategoryRepo{members: map[uint64][]uint64{10: {1, 2}}},
		&fakeWishlistRepo{productIDs: map[uint64][]uint64{}},
		history,
		nil,
	)

	got, err := svc.Recommend(context.Background(), 1, 7, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, uint64(2), got[0].ID)
	assert.Equal(t, uint64(3), got[1].ID)
}

func TestRecommendPersonalizationFailureFallsBack(t *testing.T) {
	products := map[uint64]domain.Product{
		1: {ID: 1, Brand: "B", Price: 1000},
		2: {ID: 2, Brand: "B", Price: 1000},
	}
	svc := NewRecommendationService(
		&fakeProductRepo{products: products},
		&fakeCategoryRepo{},
		&failingWishlistRepo{},
		&fakeHistoryRepo{},
		nil,
	)

	got, err := svc.Recommend(context.Background(), 1, 7, 5)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

type failingWishlistRepo struct{}

func (failingWishlistRepo) ProductIDsByUser(context.Context, uint64) ([]uint64, error) {
	return nil, errors.New("boom")
}

type fakeCache struct {
	entries map[string][]domain.Product
	sets    int
}

func (f *fakeCache) Get(_ context.Context, productID, userID uint64, limit int) ([]domain.Product, error) {
	if products, ok := f.entries[cacheTestKey(productID, userID, limit)]; ok {
		return products, nil
	}
	return nil, errors.New("cache miss")
}

func (f *fakeCache) Set(_ context.Context, productID, userID uint64, limit int, products []domain.Product) error {
	f.entries[cacheTestKey(productID, userID, limit)] = products
	f.sets++
	return nil
}

func cacheTestKey(productID, userID uint64, limit int) string {
	return fmt.Sprintf("%d/%d/%d", productID, userID, limit)
}

func TestRecommendUsesCache(t *testing.T) {
	products := map[uint64]domain.Product{
		1: {ID: 1, Brand: "B", Price: 1000},
		2: {ID: 2, Brand: "B", Price: 1000},
	}
	cache := &fakeCache{entries: map[string][]domain.Product{}}
	svc := NewRecommendationService(
		&fakeProductRepo{products: products},
		&fakeCategoryRepo{},
		&fakeWishlistRepo{productIDs: map[uint64][]uint64{}},
		&fakeHistoryRepo{},
		cache,
	)

	first, err := svc.Recommend(context.Background(), 1, 0, 5)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)

	second, err := svc.Recommend(context.Background(), 1, 0, 5)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, cache.sets, "cache hit must not recompute")
}

func TestDiscountPercent(t *testing.T) {
	assert.Equal(t, 40, discountPercent("Flat 40% OFF"))
	assert.Equal(t, 30, discountPercent("30-60% off"))
	assert.Equal(t, 0, discountPercent("Great deal"))
	assert.Equal(t, 0, discountPercent(""))
}

func TestPriceWithinRange(t *testing.T) {
	assert.True(t, priceWithinRange(1000, 700))
	assert.True(t, priceWithinRange(1000, 1300))
	assert.False(t, priceWithinRange(1000, 699))
	assert.False(t, priceWithinRange(1000, 1301))
	assert.False(t, priceWithinRange(0, 0))
}

func TestScoreCandidateBrandEquality(t *testing.T) {
	categorySet := map[uint64]struct{}{}

	// Exact string equality only, including two unbranded products.
	branded := scoreCandidate(
		domain.Product{ID: 1, Brand: "B", Price: 1000},
		domain.Product{ID: 2, Brand: "B", Price: 5000},
		categorySet, nil,
	)
	assert.Equal(t, scoreBrandMatch, branded)

	unbranded := scoreCandidate(
		domain.Product{ID: 1, Price: 1000},
		domain.Product{ID: 2, Price: 5000},
		categorySet, nil,
	)
	assert.Equal(t, scoreBrandMatch, unbranded)

	caseMismatch := scoreCandidate(
		domain.Product{ID: 1, Brand: "B", Price: 1000},
		domain.Product{ID: 2, Brand: "b", Price: 5000},
		categorySet, nil,
	)
	assert.Zero(t, caseMismatch)
}
