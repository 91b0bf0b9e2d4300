package payments

import (
	"context"
	"fmt"
	"myFashionHub/domain"
)

type PaymentMethodRepository interface {
	Create(ctx context.Context, pm *domain.PaymentMethod) error
	FindByID(ctx context.Context, id uint64) (domain.PaymentMethod, error)
	FindActiveByUser(ctx context.Context, userID uint64) ([]domain.PaymentMethod, error)
	Save(ctx context.Context, pm *domain.PaymentMethod) error
	SetDefault(ctx context.Context, userID, id uint64) error
	Deactivate(ctx context.Context, id uint64) error
}

type PaymentsService struct {
	pmRepo PaymentMethodRepository
}

func NewPaymentsService(pmRepo PaymentMethodRepository) *PaymentsService {
	return &PaymentsService{
		pmRepo: pmRepo,
	}
}

// AddPaymentMethod validates and stores a payment method. The user's
// first method becomes the default automatically.
func (s *PaymentsService) AddPaymentMethod(ctx context.Context, userID uint64, pm domain.PaymentMethod) (domain.PaymentMethod, error) {
	if err := ctx.Err(); err != nil {
		return domain.PaymentMethod{}, fmt.Errorf("context error: %w", err)
	}

	pm.UserID = userID
	pm.IsActive = true

	validated, err := domain.NewPaymentMethod(pm)
	if err != nil {
		return domain.PaymentMethod{}, err
	}

	existing, err := s.pmRepo.FindActiveByUser(ctx, userID)
	if err != nil {
		return domain.PaymentMethod{}, err
	}

	wantDefault := validated.IsDefault || len(existing) == 0
	validated.IsDefault = len(existing) == 0

	if err := s.pmRepo.Create(ctx, &validated); err != nil {
		return domain.PaymentMethod{}, err
	}

	if wantDefault && !validated.IsDefault {
		if err := s.pmRepo.SetDefault(ctx, userID, validated.ID); err != nil {
			return domain.PaymentMethod{}, err
		}
		validated.IsDefault = true
	}

	return validated, nil
}

func (s *PaymentsService) ListPaymentMethods(ctx context.Context, userID uint64) ([]domain.PaymentMethod, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	return s.pmRepo.FindActiveByUser(ctx, userID)
}

func (s *PaymentsService) SetDefault(ctx context.Context, userID, id uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	return s.pmRepo.SetDefault(ctx, userID, id)
}

// RemovePaymentMethod deactivates a method. If it was the default, the
// oldest remaining method is promoted.
func (s *PaymentsService) RemovePaymentMethod(ctx context.Context, userID, id uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	pm, err := s.pmRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if pm.UserID != userID {
		return domain.ErrNotFound
	}

	if err := s.pmRepo.Deactivate(ctx, id); err != nil {
		return err
	}

	if !pm.IsDefault {
		return nil
	}

	remaining, err := s.pmRepo.FindActiveByUser(ctx, userID)
	if err != nil {
		return err
	}
	if len(remaining) == 0 {
		return nil
	}

	return s.pmRepo.SetDefault(ctx, userID, remaining[0].ID)
}
