package postgres

import (
	"context"
	"errors"
	"fmt"
	"myFashionHub/domain"

	"gorm.io/gorm"
)

type DeviceTokenRepository struct {
	DB *gorm.DB
}

func NewDeviceTokenRepository(db *gorm.DB) *DeviceTokenRepository {
	return &DeviceTokenRepository{
		DB: db,
	}
}

func (r *DeviceTokenRepository) FindByToken(ctx context.Context, token string) (domain.DeviceToken, error) {
	if err := ctx.Err(); err != nil {
		return domain.DeviceToken{}, fmt.Errorf("context error: %w", err)
	}

	var dt domain.DeviceToken
	err := r.DB.WithContext(ctx).Where("token = ?", token).First(&dt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.DeviceToken{}, domain.ErrNotFound
		}
		return domain.DeviceToken{}, fmt.Errorf("failed to find device token: %w", err)
	}

	return dt, nil
}

func (r *DeviceTokenRepository) FindActiveByUser(ctx context.Context, userID uint64) ([]domain.DeviceToken, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var tokens []domain.DeviceToken
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("id").
		Find(&tokens).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find device tokens: %w", err)
	}

	return tokens, nil
}

func (r *DeviceTokenRepository) Create(ctx context.Context, dt *domain.DeviceToken) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	err := r.DB.WithContext(ctx).Create(dt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicateEntry
		}
		return fmt.Errorf("failed to create device token: %w", err)
	}

	return nil
}

func (r *DeviceTokenRepository) Save(ctx context.Context, dt *domain.DeviceToken) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Save(dt).Error; err != nil {
		return fmt.Errorf("failed to save device token: %w", err)
	}

	return nil
}

// UpdatePreferences applies the given flags to every active token of
// the user.
func (r *DeviceTokenRepository) UpdatePreferences(ctx context.Context, userID uint64, offers, orderUpdates, cartReminders bool) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	err := r.DB.WithContext(ctx).
		Model(&domain.DeviceToken{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Updates(map[string]interface{}{
			"offers":         offers,
			"order_updates":  orderUpdates,
			"cart_reminders": cartReminders,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update preferences: %w", err)
	}

	return nil
}
