package notification

import (
	"context"
	"errors"
	"fmt"
	"myFashionHub/domain"
	"myFashionHub/internal/repository/push"
	"myFashionHub/pkg/logger"
	"myFashionHub/pkg/metrics"
	"time"
)

type DeviceTokenRepository interface {
	FindByToken(ctx context.Context, token string) (domain.DeviceToken, error)
	FindActiveByUser(ctx context.Context, userID uint64) ([]domain.DeviceToken, error)
	Create(ctx context.Context, dt *domain.DeviceToken) error
	Save(ctx context.Context, dt *domain.DeviceToken) error
	UpdatePreferences(ctx context.Context, userID uint64, offers, orderUpdates, cartReminders bool) error
}

type Pusher interface {
	SendToMany(ctx context.Context, tokens []string, title, body string, data map[string]any, channelID string) []push.SendResult
}

type NotificationService struct {
	tokenRepo DeviceTokenRepository
	pusher    Pusher
	now       func() time.Time
}

func NewNotificationService(tokenRepo DeviceTokenRepository, pusher Pusher) *NotificationService {
	return &NotificationService{
		tokenRepo: tokenRepo,
		pusher:    pusher,
		now:       time.Now,
	}
}

// ---- Token registry ----

// Register upserts a device token. Re-registering an existing token
// reassigns it to the caller and reactivates it; preferences on the
// existing row are kept.
func (s *NotificationService) Register(ctx context.Context, userID uint64, token, platform, deviceID, deviceName string) (domain.DeviceToken, error) {
	if err := ctx.Err(); err != nil {
		return domain.DeviceToken{}, fmt.Errorf("context error: %w", err)
	}

	existing, err := s.tokenRepo.FindByToken(ctx, token)
	if err == nil {
		existing.UserID = userID
		existing.Platform = platform
		existing.DeviceID = deviceID
		existing.DeviceName = deviceName
		existing.IsActive = true
		existing.LastUsed = s.now()
		if err := s.tokenRepo.Save(ctx, &existing); err != nil {
			return domain.DeviceToken{}, err
		}
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return domain.DeviceToken{}, err
	}

	dt := domain.DeviceToken{
		UserID:        userID,
		Token:         token,
		Platform:      platform,
		DeviceID:      deviceID,
		DeviceName:    deviceName,
		IsActive:      true,
		LastUsed:      s.now(),
		Offers:        true,
		OrderUpdates:  true,
		CartReminders: true,
	}
	if err := s.tokenRepo.Create(ctx, &dt); err != nil {
		return domain.DeviceToken{}, err
	}

	return dt, nil
}

// Unregister deactivates a token so dispatch skips it. The row stays,
// keeping its preferences for a later re-register.
func (s *NotificationService) Unregister(ctx context.Context, userID uint64, token string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	dt, err := s.tokenRepo.FindByToken(ctx, token)
	if err != nil {
		return err
	}
	if dt.UserID != userID {
		return domain.ErrNotFound
	}

	dt.IsActive = false
	return s.tokenRepo.Save(ctx, &dt)
}

func (s *NotificationService) UpdatePreferences(ctx context.Context, userID uint64, offers, orderUpdates, cartReminders bool) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	return s.tokenRepo.UpdatePreferences(ctx, userID, offers, orderUpdates, cartReminders)
}

func (s *NotificationService) GetUserTokens(ctx context.Context, userID uint64) ([]domain.DeviceToken, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	return s.tokenRepo.FindActiveByUser(ctx, userID)
}

// ---- Dispatch ----

// DispatchSummary reports a fan-out's outcome. Delivered counts tokens
// accepted by the push provider, not devices that displayed anything.
type DispatchSummary struct {
	Eligible  int `json:"eligible"`
	Delivered int `json:"delivered"`
	Failed    int `json:"failed"`
}

// EligibleTokens returns the user's active tokens that opted in to the
// given notification category.
func (s *NotificationService) EligibleTokens(ctx context.Context, userID uint64, notificationType string) ([]domain.DeviceToken, error) {
	tokens, err := s.tokenRepo.FindActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	eligible := make([]domain.DeviceToken, 0, len(tokens))
	for _, t := range tokens {
		if t.AllowsType(notificationType) {
			eligible = append(eligible, t)
		}
	}

	return eligible, nil
}

// Dispatch fans a notification out to the user's eligible devices. A
// user with no eligible device yields an empty summary, not an error.
// Individual delivery failures are counted and logged but never abort
// the fan-out.
func (s *NotificationService) Dispatch(
	ctx context.Context,
	userID uint64,
	notificationType, title, body string,
	data map[string]any,
) (DispatchSummary, error) {

	if err := ctx.Err(); err != nil {
		return DispatchSummary{}, fmt.Errorf("context error: %w", err)
	}

	eligible, err := s.EligibleTokens(ctx, userID, notificationType)
	if err != nil {
		return DispatchSummary{}, err
	}
	if len(eligible) == 0 {
		return DispatchSummary{}, nil
	}

	tokens := make([]string, 0, len(eligible))
	for _, t := range eligible {
		tokens = append(tokens, t.Token)
	}

	results := s.pusher.SendToMany(ctx, tokens, title, body, data, notificationType)

	summary := DispatchSummary{Eligible: len(eligible)}
	for _, res := range results {
		if res.Err != nil {
			summary.Failed++
			logger.Warn("push delivery failed", "user_id", userID, "type", notificationType, "error", res.Err)
			metrics.NotificationDispatchTotal.WithLabelValues(notificationType, "failed").Inc()
			continue
		}
		summary.Delivered++
		metrics.NotificationDispatchTotal.WithLabelValues(notificationType, "delivered").Inc()
	}

	return summary, nil
}

// DispatchOrderUpdate notifies the user about an order status change.
func (s *NotificationService) DispatchOrderUpdate(ctx context.Context, userID, orderID uint64, status string) (DispatchSummary, error) {
	body := fmt.Sprintf("Your order #%d is now %s", orderID, status)

	return s.Dispatch(ctx, userID, domain.NotificationTypeOrder, "Order Status Update", body, map[string]any{
		"type":     domain.NotificationTypeOrder,
		"order_id": orderID,
		"status":   status,
	})
}

// DispatchOffer broadcasts a promotional message to one user.
func (s *NotificationService) DispatchOffer(ctx context.Context, userID uint64, title, body string) (DispatchSummary, error) {
	return s.Dispatch(ctx, userID, domain.NotificationTypeOffer, title, body, nil)
}
