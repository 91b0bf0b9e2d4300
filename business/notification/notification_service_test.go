package notification

import (
	"context"
	"errors"
	"myFashionHub/domain"
	"myFashionHub/internal/repository/push"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTokenRepo struct {
	tokens map[string]domain.DeviceToken
	nextID uint64
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: map[string]domain.DeviceToken{}, nextID: 1}
}

func (f *fakeTokenRepo) FindByToken(_ context.Context, token string) (domain.DeviceToken, error) {
	dt, ok := f.tokens[token]
	if !ok {
		return domain.DeviceToken{}, domain.ErrNotFound
	}
	return dt, nil
}

func (f *fakeTokenRepo) FindActiveByUser(_ context.Context, userID uint64) ([]domain.DeviceToken, error) {
	out := make([]domain.DeviceToken, 0)
	for _, dt := range f.tokens {
		if dt.UserID == userID && dt.IsActive {
			out = append(out, dt)
		}
	}
	return out, nil
}

func (f *fakeTokenRepo) Create(_ context.Context, dt *domain.DeviceToken) error {
	if _, ok := f.tokens[dt.Token]; ok {
		return domain.ErrDuplicateEntry
	}
	dt.ID = f.nextID
	f.nextID++
	f.tokens[dt.Token] = *dt
	return nil
}

func (f *fakeTokenRepo) Save(_ context.Context, dt *domain.DeviceToken) error {
	f.tokens[dt.Token] = *dt
	return nil
}

func (f *fakeTokenRepo) UpdatePreferences(_ context.Context, userID uint64, offers, orderUpdates, cartReminders bool) error {
	for token, dt := range f.tokens {
		if dt.UserID == userID {
			dt.Offers = offers
			dt.OrderUpdates = orderUpdates
			dt.CartReminders = cartReminders
			f.tokens[token] = dt
		}
	}
	return nil
}

type fakePusher struct {
	sent     []push.SendResult
	lastBody string
	failFor  map[string]bool
}

func (f *fakePusher) SendToMany(_ context.Context, tokens []string, title, body string, data map[string]any, channelID string) []push.SendResult {
	f.lastBody = body
	results := make([]push.SendResult, 0, len(tokens))
	for _, token := range tokens {
		var err error
		if f.failFor[token] {
			err = errors.New("device not registered")
		}
		res := push.SendResult{Token: token, Err: err}
		f.sent = append(f.sent, res)
		results = append(results, res)
	}
	return results
}

func seedToken(repo *fakeTokenRepo, userID uint64, token string, offers, orderUpdates, cartReminders bool) {
	repo.tokens[token] = domain.DeviceToken{
		ID: repo.nextID, UserID: userID, Token: token, Platform: domain.PlatformAndroid,
		IsActive: true, Offers: offers, OrderUpdates: orderUpdates, CartReminders: cartReminders,
	}
	repo.nextID++
}

func TestRegisterUpsertsByToken(t *testing.T) {
	repo := newFakeTokenRepo()
	svc := NewNotificationService(repo, &fakePusher{})

	dt, err := svc.Register(context.Background(), 7, "tok-1", domain.PlatformIOS, "dev-1", "iPhone")
	require.NoError(t, err)
	assert.True(t, dt.IsActive)
	assert.True(t, dt.Offers)

	// Re-register from another account takes the token over but keeps
	// its preference flags.
	require.NoError(t, svc.UpdatePreferences(context.Background(), 7, false, true, true))
	dt, err = svc.Register(context.Background(), 8, "tok-1", domain.PlatformIOS, "dev-1", "iPhone")
	require.NoError(t, err)
	assert.Equal(t, uint64(8), dt.UserID)
	assert.False(t, dt.Offers)
	assert.Len(t, repo.tokens, 1)
}

func TestUnregisterDeactivates(t *testing.T) {
	repo := newFakeTokenRepo()
	svc := NewNotificationService(repo, &fakePusher{})

	_, err := svc.Register(context.Background(), 7, "tok-1", domain.PlatformWeb, "", "")
	require.NoError(t, err)

	require.NoError(t, svc.Unregister(context.Background(), 7, "tok-1"))

	tokens, err := svc.GetUserTokens(context.Background(), 7)
	require.NoError(t, err)
	assert.Empty(t, tokens)
}

func TestUnregisterWrongUser(t *testing.T) {
	repo := newFakeTokenRepo()
	svc := NewNotificationService(repo, &fakePusher{})

	_, err := svc.Register(context.Background(), 7, "tok-1", domain.PlatformWeb, "", "")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Unregister(context.Background(), 8, "tok-1"), domain.ErrNotFound)
}

func TestDispatchFiltersByPreference(t *testing.T) {
	repo := newFakeTokenRepo()
	pusher := &fakePusher{}
	svc := NewNotificationService(repo, pusher)

	seedToken(repo, 7, "wants-orders", false, true, false)
	seedToken(repo, 7, "wants-nothing", false, false, false)

	summary, err := svc.DispatchOrderUpdate(context.Background(), 7, 55, domain.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Eligible)
	assert.Equal(t, 1, summary.Delivered)
	require.Len(t, pusher.sent, 1)
	assert.Equal(t, "wants-orders", pusher.sent[0].Token)
}

func TestDispatchOrderUpdateBody(t *testing.T) {
	repo := newFakeTokenRepo()
	pusher := &fakePusher{}
	svc := NewNotificationService(repo, pusher)

	seedToken(repo, 7, "tok-1", true, true, true)

	_, err := svc.DispatchOrderUpdate(context.Background(), 7, 55, domain.OrderStatusOutForDelivery)
	require.NoError(t, err)
	assert.Equal(t, "Your order #55 is now Out for Delivery", pusher.lastBody)
}

func TestDispatchNoEligibleDevices(t *testing.T) {
	repo := newFakeTokenRepo()
	pusher := &fakePusher{}
	svc := NewNotificationService(repo, pusher)

	seedToken(repo, 7, "opted-out", false, false, false)

	summary, err := svc.DispatchOffer(context.Background(), 7, "Sale", "Flat 50% off")
	require.NoError(t, err)
	assert.Equal(t, DispatchSummary{}, summary)
	assert.Empty(t, pusher.sent)
}

func TestDispatchPartialFailure(t *testing.T) {
	repo := newFakeTokenRepo()
	pusher := &fakePusher{failFor: map[string]bool{"bad-token": true}}
	svc := NewNotificationService(repo, pusher)

	seedToken(repo, 7, "good-token", true, true, true)
	seedToken(repo, 7, "bad-token", true, true, true)

	summary, err := svc.DispatchOffer(context.Background(), 7, "Sale", "Flat 50% off")
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Eligible)
	assert.Equal(t, 1, summary.Delivered)
	assert.Equal(t, 1, summary.Failed)
}

type fakeStaleBagRepo struct {
	items []domain.BagItem
	err   error
}

func (f *fakeStaleBagRepo) FindStale(_ context.Context, olderThan time.Time) ([]domain.BagItem, error) {
	return f.items, f.err
}

func TestCheckAbandonmentGroupsByUser(t *testing.T) {
	repo := newFakeTokenRepo()
	pusher := &fakePusher{}
	svc := NewNotificationService(repo, pusher)

	seedToken(repo, 7, "tok-7", true, true, true)
	seedToken(repo, 8, "tok-8", true, true, true)

	shirt := &domain.Product{ID: 1, Price: 500}
	jeans := &domain.Product{ID: 2, Price: 1500}
	bags := &fakeStaleBagRepo{items: []domain.BagItem{
		{UserID: 7, ProductID: 1, Quantity: 2, Product: shirt},
		{UserID: 7, ProductID: 2, Quantity: 1, Product: jeans},
		{UserID: 8, ProductID: 1, Quantity: 1, Product: shirt},
	}}

	summary, err := svc.CheckAbandonment(context.Background(), bags)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.UsersScanned)
	assert.Equal(t, 2, summary.UsersNotified)
	assert.Equal(t, 0, summary.UsersFailed)

	// One push per user, not per item.
	assert.Len(t, pusher.sent, 2)
}

func TestCheckAbandonmentBodyText(t *testing.T) {
	repo := newFakeTokenRepo()
	pusher := &fakePusher{}
	svc := NewNotificationService(repo, pusher)

	seedToken(repo, 7, "tok-7", true, true, true)

	bags := &fakeStaleBagRepo{items: []domain.BagItem{
		{UserID: 7, ProductID: 1, Quantity: 2, Product: &domain.Product{ID: 1, Price: 500}},
		{UserID: 7, ProductID: 2, Quantity: 1, Product: &domain.Product{ID: 2, Price: 1500}},
	}}

	_, err := svc.CheckAbandonment(context.Background(), bags)
	require.NoError(t, err)
	assert.Equal(t, "You have 3 item(s) worth ₹2500 in your cart", pusher.lastBody)
}

func TestCheckAbandonmentSkipsOptedOut(t *testing.T) {
	repo := newFakeTokenRepo()
	pusher := &fakePusher{}
	svc := NewNotificationService(repo, pusher)

	seedToken(repo, 7, "tok-7", true, true, false)

	bags := &fakeStaleBagRepo{items: []domain.BagItem{
		{UserID: 7, ProductID: 1, Quantity: 1, Product: &domain.Product{ID: 1, Price: 500}},
	}}

	summary, err := svc.CheckAbandonment(context.Background(), bags)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.UsersScanned)
	assert.Equal(t, 0, summary.UsersNotified)
	assert.Empty(t, pusher.sent)
}

type fakeUserBagRepo struct {
	items []domain.BagItem
}

func (f *fakeUserBagRepo) FindByUser(_ context.Context, userID uint64) ([]domain.BagItem, error) {
	out := make([]domain.BagItem, 0)
	for _, item := range f.items {
		if item.UserID == userID {
			out = append(out, item)
		}
	}
	return out, nil
}

func TestDispatchCartReminderEmptyBag(t *testing.T) {
	repo := newFakeTokenRepo()
	pusher := &fakePusher{}
	svc := NewNotificationService(repo, pusher)

	seedToken(repo, 7, "tok-7", true, true, true)

	summary, err := svc.DispatchCartReminder(context.Background(), 7, &fakeUserBagRepo{})
	require.NoError(t, err)
	assert.Equal(t, DispatchSummary{}, summary)
	assert.Empty(t, pusher.sent)
}

func TestDispatchCartReminderBodyText(t *testing.T) {
	repo := newFakeTokenRepo()
	pusher := &fakePusher{}
	svc := NewNotificationService(repo, pusher)

	seedToken(repo, 7, "tok-7", true, true, true)

	bags := &fakeUserBagRepo{items: []domain.BagItem{
		{UserID: 7, ProductID: 1, Quantity: 2, Product: &domain.Product{ID: 1, Price: 500}},
		{UserID: 7, ProductID: 2, Quantity: 1, Product: &domain.Product{ID: 2, Price: 1500}},
		{UserID: 8, ProductID: 1, Quantity: 5, Product: &domain.Product{ID: 1, Price: 500}},
	}}

	summary, err := svc.DispatchCartReminder(context.Background(), 7, bags)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Delivered)
	assert.Equal(t, "You have 3 item(s) worth ₹2500 in your cart", pusher.lastBody)
}
