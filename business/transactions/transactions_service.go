package transactions

import (
	"context"
	"fmt"
	"myFashionHub/domain"
)

const (
	defaultPageSize = 20
	maxPageSize     = 50
)

type TransactionRepository interface {
	Create(ctx context.Context, trx *domain.Transaction) error
	FindByID(ctx context.Context, id uint64) (domain.Transaction, error)
	FindByUser(ctx context.Context, userID uint64, filter domain.TransactionFilter) ([]domain.Transaction, int64, error)
	Update(ctx context.Context, trx *domain.Transaction) error
}

type TransactionsService struct {
	trxRepo TransactionRepository
}

func NewTransactionsService(trxRepo TransactionRepository) *TransactionsService {
	return &TransactionsService{
		trxRepo: trxRepo,
	}
}

// TransactionPage is one page of a user's transaction history.
type TransactionPage struct {
	Transactions []domain.Transaction `json:"transactions"`
	Total        int64                `json:"total"`
	Page         int                  `json:"page"`
	Limit        int                  `json:"limit"`
}

// ListTransactions returns one filtered, sorted page of the user's
// transactions. Filter values outside the known sets are dropped rather
// than rejected.
func (s *TransactionsService) ListTransactions(ctx context.Context, userID uint64, filter domain.TransactionFilter) (TransactionPage, error) {
	if err := ctx.Err(); err != nil {
		return TransactionPage{}, fmt.Errorf("context error: %w", err)
	}

	filter = normalizeFilter(filter)

	trxs, total, err := s.trxRepo.FindByUser(ctx, userID, filter)
	if err != nil {
		return TransactionPage{}, err
	}

	return TransactionPage{
		Transactions: trxs,
		Total:        total,
		Page:         filter.Page,
		Limit:        filter.Limit,
	}, nil
}

func (s *TransactionsService) GetTransaction(ctx context.Context, userID, id uint64) (domain.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return domain.Transaction{}, fmt.Errorf("context error: %w", err)
	}

	trx, err := s.trxRepo.FindByID(ctx, id)
	if err != nil {
		return domain.Transaction{}, err
	}
	if trx.UserID != userID {
		return domain.Transaction{}, domain.ErrNotFound
	}

	return trx, nil
}

// CreateTransaction records a standalone transaction (e.g. a refund).
// The reference is generated here; completed transactions also get a
// receipt number.
func (s *TransactionsService) CreateTransaction(ctx context.Context, trx domain.Transaction) (domain.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return domain.Transaction{}, fmt.Errorf("context error: %w", err)
	}

	if !validTransactionType(trx.Type) {
		return domain.Transaction{}, fmt.Errorf("unknown transaction type %q", trx.Type)
	}
	if trx.Amount <= 0 {
		return domain.Transaction{}, fmt.Errorf("transaction amount must be positive")
	}

	trx.TransactionID = domain.NewTransactionRef()
	if trx.Status == "" {
		trx.Status = domain.TransactionStatusPending
	}
	if trx.Status == domain.TransactionStatusCompleted {
		trx.ReceiptNumber = domain.NewReceiptNumber()
	}

	if err := s.trxRepo.Create(ctx, &trx); err != nil {
		return domain.Transaction{}, err
	}

	return trx, nil
}

// UpdateStatus moves a transaction to a new status. Completing a
// transaction that has no receipt yet issues one.
func (s *TransactionsService) UpdateStatus(ctx context.Context, userID, id uint64, status string) (domain.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return domain.Transaction{}, fmt.Errorf("context error: %w", err)
	}

	if !validTransactionStatus(status) {
		return domain.Transaction{}, fmt.Errorf("unknown transaction status %q", status)
	}

	trx, err := s.GetTransaction(ctx, userID, id)
	if err != nil {
		return domain.Transaction{}, err
	}

	trx.Status = status
	if status == domain.TransactionStatusCompleted && trx.ReceiptNumber == "" {
		trx.ReceiptNumber = domain.NewReceiptNumber()
	}

	if err := s.trxRepo.Update(ctx, &trx); err != nil {
		return domain.Transaction{}, err
	}

	return trx, nil
}

func normalizeFilter(filter domain.TransactionFilter) domain.TransactionFilter {
	if !validTransactionType(filter.Type) {
		filter.Type = ""
	}
	if !validTransactionStatus(filter.Status) {
		filter.Status = ""
	}
	if filter.SortBy != "date" && filter.SortBy != "amount" {
		filter.SortBy = "date"
	}
	if filter.SortOrder != "asc" && filter.SortOrder != "desc" {
		filter.SortOrder = "desc"
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = defaultPageSize
	}
	if filter.Limit > maxPageSize {
		filter.Limit = maxPageSize
	}

	return filter
}

func validTransactionType(t string) bool {
	switch t {
	case domain.TransactionTypeOnline, domain.TransactionTypeCOD, domain.TransactionTypeRefund:
		return true
	}
	return false
}

func validTransactionStatus(status string) bool {
	switch status {
	case domain.TransactionStatusCompleted,
		domain.TransactionStatusPending,
		domain.TransactionStatusFailed,
		domain.TransactionStatusRefunded:
		return true
	}
	return false
}
