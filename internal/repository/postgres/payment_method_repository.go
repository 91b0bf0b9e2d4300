package postgres

import (
	"context"
	"errors"
	"fmt"
	"myFashionHub/domain"

	"gorm.io/gorm"
)

type PaymentMethodRepository struct {
	DB *gorm.DB
}

func NewPaymentMethodRepository(db *gorm.DB) *PaymentMethodRepository {
	return &PaymentMethodRepository{
		DB: db,
	}
}

func (r *PaymentMethodRepository) Create(ctx context.Context, pm *domain.PaymentMethod) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(pm).Error; err != nil {
		return fmt.Errorf("failed to create payment method: %w", err)
	}

	return nil
}

func (r *PaymentMethodRepository) FindByID(ctx context.Context, id uint64) (domain.PaymentMethod, error) {
	if err := ctx.Err(); err != nil {
		return domain.PaymentMethod{}, fmt.Errorf("context error: %w", err)
	}

	var pm domain.PaymentMethod
	err := r.DB.WithContext(ctx).First(&pm, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.PaymentMethod{}, domain.ErrNotFound
		}
		return domain.PaymentMethod{}, fmt.Errorf("failed to find payment method: %w", err)
	}

	return pm, nil
}

func (r *PaymentMethodRepository) FindActiveByUser(ctx context.Context, userID uint64) ([]domain.PaymentMethod, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var methods []domain.PaymentMethod
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("is_default DESC, id").
		Find(&methods).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find payment methods: %w", err)
	}

	return methods, nil
}

func (r *PaymentMethodRepository) Save(ctx context.Context, pm *domain.PaymentMethod) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Save(pm).Error; err != nil {
		return fmt.Errorf("failed to save payment method: %w", err)
	}

	return nil
}

// SetDefault marks the given method as default and clears the flag on
// the user's other methods, atomically.
func (r *PaymentMethodRepository) SetDefault(ctx context.Context, userID, id uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.PaymentMethod{}).
			Where("user_id = ? AND is_default = ?", userID, true).
			Update("is_default", false).Error; err != nil {
			return err
		}

		result := tx.Model(&domain.PaymentMethod{}).
			Where("id = ? AND user_id = ?", id, userID).
			Update("is_default", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to set default payment method: %w", err)
	}

	return nil
}

// Deactivate soft-deletes a payment method.
func (r *PaymentMethodRepository) Deactivate(ctx context.Context, id uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).
		Model(&domain.PaymentMethod{}).
		Where("id = ?", id).
		Update("is_active", false)
	if result.Error != nil {
		return fmt.Errorf("failed to deactivate payment method: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}
