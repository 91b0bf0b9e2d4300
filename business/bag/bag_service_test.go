package bag

import (
	"context"
	"myFashionHub/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBagRepo struct {
	items  map[uint64]domain.BagItem
	nextID uint64

	// rejectNextCreate simulates losing the insert race: the row
	// appears (inserted by the "winner") and our insert is rejected.
	rejectNextCreate bool
}

func newFakeBagRepo() *fakeBagRepo {
	return &fakeBagRepo{items: map[uint64]domain.BagItem{}, nextID: 1}
}

func (f *fakeBagRepo) key(userID, productID uint64, size string) (domain.BagItem, bool) {
	for _, item := range f.items {
		if item.UserID == userID && item.ProductID == productID && item.Size == size {
			return item, true
		}
	}
	return domain.BagItem{}, false
}

func (f *fakeBagRepo) Create(_ context.Context, item *domain.BagItem) error {
	if f.rejectNextCreate {
		f.rejectNextCreate = false
		winner := *item
		winner.ID = f.nextID
		f.nextID++
		f.items[winner.ID] = winner
		return domain.ErrDuplicateEntry
	}
	if _, ok := f.key(item.UserID, item.ProductID, item.Size); ok {
		return domain.ErrDuplicateEntry
	}
	item.ID = f.nextID
	f.nextID++
	f.items[item.ID] = *item
	return nil
}

func (f *fakeBagRepo) FindByID(_ context.Context, id uint64) (domain.BagItem, error) {
	item, ok := f.items[id]
	if !ok {
		return domain.BagItem{}, domain.ErrNotFound
	}
	return item, nil
}

func (f *fakeBagRepo) FindByKey(_ context.Context, userID, productID uint64, size string) (domain.BagItem, error) {
	if item, ok := f.key(userID, productID, size); ok {
		return item, nil
	}
	return domain.BagItem{}, domain.ErrNotFound
}

func (f *fakeBagRepo) FindByUser(_ context.Context, userID uint64) ([]domain.BagItem, error) {
	out := make([]domain.BagItem, 0)
	for id := uint64(1); id < f.nextID; id++ {
		if item, ok := f.items[id]; ok && item.UserID == userID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeBagRepo) UpdateQuantity(_ context.Context, id uint64, quantity int) (domain.BagItem, error) {
	item, ok := f.items[id]
	if !ok {
		return domain.BagItem{}, domain.ErrNotFound
	}
	item.Quantity = quantity
	f.items[id] = item
	return item, nil
}

func (f *fakeBagRepo) Delete(_ context.Context, id uint64) error {
	if _, ok := f.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeBagRepo) DeleteByIDs(_ context.Context, ids []uint64) error {
	for _, id := range ids {
		delete(f.items, id)
	}
	return nil
}

func (f *fakeBagRepo) FindStale(_ context.Context, olderThan time.Time) ([]domain.BagItem, error) {
	return nil, nil
}

type stubProductRepo struct {
	known map[uint64]bool
}

func (s *stubProductRepo) FindByID(_ context.Context, id uint64) (domain.Product, error) {
	if !s.known[id] {
		return domain.Product{}, domain.ErrNotFound
	}
	return domain.Product{ID: id}, nil
}

func newTestBagService(repo *fakeBagRepo) *BagService {
	return NewBagService(repo, &stubProductRepo{known: map[uint64]bool{42: true, 43: true}})
}

func TestAddToBagCreatesThenIncrements(t *testing.T) {
	repo := newFakeBagRepo()
	svc := newTestBagService(repo)

	item, outcome, err := svc.AddToBag(context.Background(), 7, 42, "M", 1)
	require.NoError(t, err)
	assert.Equal(t, OutcomeAdded, outcome)
	assert.Equal(t, 1, item.Quantity)

	// Same key again merges into the existing line.
	item, outcome, err = svc.AddToBag(context.Background(), 7, 42, "M", 1)
	require.NoError(t, err)
	assert.Equal(t, OutcomeUpdated, outcome)
	assert.Equal(t, 2, item.Quantity)

	items, err := repo.FindByUser(context.Background(), 7)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestAddToBagDifferentSizeIsNewLine(t *testing.T) {
	repo := newFakeBagRepo()
	svc := newTestBagService(repo)

	_, _, err := svc.AddToBag(context.Background(), 7, 42, "M", 1)
	require.NoError(t, err)
	_, outcome, err := svc.AddToBag(context.Background(), 7, 42, "L", 1)
	require.NoError(t, err)
	assert.Equal(t, OutcomeAdded, outcome)

	items, err := repo.FindByUser(context.Background(), 7)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestAddToBagUnknownProduct(t *testing.T) {
	svc := newTestBagService(newFakeBagRepo())

	_, _, err := svc.AddToBag(context.Background(), 7, 999, "M", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAddToBagLostInsertRaceConverges(t *testing.T) {
	repo := newFakeBagRepo()
	repo.rejectNextCreate = true
	svc := newTestBagService(repo)

	// The concurrent winner inserted quantity 1; our rejected insert
	// must fold its quantity on top instead of failing.
	item, outcome, err := svc.AddToBag(context.Background(), 7, 42, "M", 1)
	require.NoError(t, err)
	assert.Equal(t, OutcomeUpdated, outcome)
	assert.Equal(t, 2, item.Quantity)

	items, err := repo.FindByUser(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestAddToBagDefaultsQuantity(t *testing.T) {
	repo := newFakeBagRepo()
	svc := newTestBagService(repo)

	item, _, err := svc.AddToBag(context.Background(), 7, 42, "M", 0)
	require.NoError(t, err)
	assert.Equal(t, 1, item.Quantity)
}

func TestUpdateQuantityBelowOneRemoves(t *testing.T) {
	repo := newFakeBagRepo()
	svc := newTestBagService(repo)

	item, _, err := svc.AddToBag(context.Background(), 7, 42, "M", 2)
	require.NoError(t, err)

	_, outcome, err := svc.UpdateQuantity(context.Background(), 7, item.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, OutcomeRemoved, outcome)

	items, err := repo.FindByUser(context.Background(), 7)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestUpdateQuantityOwnershipCheck(t *testing.T) {
	repo := newFakeBagRepo()
	svc := newTestBagService(repo)

	item, _, err := svc.AddToBag(context.Background(), 7, 42, "M", 1)
	require.NoError(t, err)

	_, _, err = svc.UpdateQuantity(context.Background(), 8, item.ID, 3)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetBagCollapsesDuplicateLines(t *testing.T) {
	repo := newFakeBagRepo()
	svc := newTestBagService(repo)

	// Seed two rows sharing a key, bypassing the service.
	repo.items[1] = domain.BagItem{ID: 1, UserID: 7, ProductID: 42, Size: "M", Quantity: 2}
	repo.items[2] = domain.BagItem{ID: 2, UserID: 7, ProductID: 42, Size: "M", Quantity: 3}
	repo.items[3] = domain.BagItem{ID: 3, UserID: 7, ProductID: 43, Size: "S", Quantity: 1}
	repo.nextID = 4

	items, err := svc.GetBag(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, uint64(1), items[0].ID, "oldest row survives")
	assert.Equal(t, 5, items[0].Quantity, "quantities summed")

	// The surplus row is gone from storage too.
	_, err = repo.FindByID(context.Background(), 2)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	stored, err := repo.FindByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 5, stored.Quantity)
}
