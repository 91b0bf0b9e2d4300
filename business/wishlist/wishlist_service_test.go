package wishlist

import (
	"context"
	"myFashionHub/domain"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWishlistRepo struct {
	items  map[uint64]domain.WishlistItem
	nextID uint64

	rejectNextCreate bool
}

func newFakeWishlistRepo() *fakeWishlistRepo {
	return &fakeWishlistRepo{items: map[uint64]domain.WishlistItem{}, nextID: 1}
}

func (f *fakeWishlistRepo) Create(_ context.Context, item *domain.WishlistItem) error {
	if f.rejectNextCreate {
		f.rejectNextCreate = false
		winner := *item
		winner.ID = f.nextID
		winner.CreatedAt = time.Now()
		f.nextID++
		f.items[winner.ID] = winner
		return domain.ErrDuplicateEntry
	}
	for _, existing := range f.items {
		if existing.UserID == item.UserID && existing.ProductID == item.ProductID {
			return domain.ErrDuplicateEntry
		}
	}
	item.ID = f.nextID
	f.nextID++
	f.items[item.ID] = *item
	return nil
}

func (f *fakeWishlistRepo) FindByKey(_ context.Context, userID, productID uint64) (domain.WishlistItem, error) {
	rows, _ := f.FindAllByKey(context.Background(), userID, productID)
	if len(rows) == 0 {
		return domain.WishlistItem{}, domain.ErrNotFound
	}
	return rows[0], nil
}

func (f *fakeWishlistRepo) FindAllByKey(_ context.Context, userID, productID uint64) ([]domain.WishlistItem, error) {
	out := make([]domain.WishlistItem, 0)
	for _, item := range f.items {
		if item.UserID == userID && item.ProductID == productID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeWishlistRepo) FindByUser(_ context.Context, userID uint64) ([]domain.WishlistItem, error) {
	out := make([]domain.WishlistItem, 0)
	for _, item := range f.items {
		if item.UserID == userID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeWishlistRepo) Delete(_ context.Context, id uint64) error {
	if _, ok := f.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeWishlistRepo) DeleteByIDs(_ context.Context, ids []uint64) error {
	for _, id := range ids {
		delete(f.items, id)
	}
	return nil
}

type stubProductRepo struct{}

func (stubProductRepo) FindByID(_ context.Context, id uint64) (domain.Product, error) {
	if id >= 900 {
		return domain.Product{}, domain.ErrNotFound
	}
	return domain.Product{ID: id}, nil
}

func TestToggleIsItsOwnInverse(t *testing.T) {
	repo := newFakeWishlistRepo()
	svc := NewWishlistService(repo, stubProductRepo{})

	outcome, addedID, err := svc.Toggle(context.Background(), 7, 42)
	require.NoError(t, err)
	assert.Equal(t, OutcomeAdded, outcome)
	assert.NotZero(t, addedID)

	wishlisted, itemID, err := svc.Check(context.Background(), 7, 42)
	require.NoError(t, err)
	assert.True(t, wishlisted)
	assert.Equal(t, addedID, itemID)

	outcome, _, err = svc.Toggle(context.Background(), 7, 42)
	require.NoError(t, err)
	assert.Equal(t, OutcomeRemoved, outcome)

	wishlisted, itemID, err = svc.Check(context.Background(), 7, 42)
	require.NoError(t, err)
	assert.False(t, wishlisted)
	assert.Zero(t, itemID)
}

func TestToggleUnknownProduct(t *testing.T) {
	svc := NewWishlistService(newFakeWishlistRepo(), stubProductRepo{})

	_, _, err := svc.Toggle(context.Background(), 7, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestToggleLostInsertRaceReconciles(t *testing.T) {
	repo := newFakeWishlistRepo()
	repo.rejectNextCreate = true
	svc := NewWishlistService(repo, stubProductRepo{})

	// The loser reports the winner's row as already present, so a
	// race-loss is distinguishable from a fresh add; exactly one row
	// remains either way.
	outcome, itemID, err := svc.Toggle(context.Background(), 7, 42)
	require.NoError(t, err)
	assert.Equal(t, OutcomeAlreadyPresent, outcome)

	rows, err := repo.FindAllByKey(context.Background(), 7, 42)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, rows[0].ID, itemID, "surviving row's id returned")
}

func TestGetWishlistCollapsesDuplicates(t *testing.T) {
	repo := newFakeWishlistRepo()
	svc := NewWishlistService(repo, stubProductRepo{})

	// Seed duplicates directly, as if left by a historical race.
	repo.items[1] = domain.WishlistItem{ID: 1, UserID: 7, ProductID: 42}
	repo.items[2] = domain.WishlistItem{ID: 2, UserID: 7, ProductID: 42}
	repo.items[3] = domain.WishlistItem{ID: 3, UserID: 7, ProductID: 43}
	repo.nextID = 4

	items, err := svc.GetWishlist(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, uint64(1), items[0].ID, "oldest row kept")

	_, err = repo.FindByKey(context.Background(), 7, 42)
	require.NoError(t, err)
	rows, err := repo.FindAllByKey(context.Background(), 7, 42)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestRemoveItem(t *testing.T) {
	repo := newFakeWishlistRepo()
	svc := NewWishlistService(repo, stubProductRepo{})

	_, _, err := svc.Toggle(context.Background(), 7, 42)
	require.NoError(t, err)

	require.NoError(t, svc.RemoveItem(context.Background(), 7, 42))
	assert.ErrorIs(t, svc.RemoveItem(context.Background(), 7, 42), domain.ErrNotFound)
}
