package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	TransactionTypeOnline = "Online"
	TransactionTypeCOD    = "COD"
	TransactionTypeRefund = "Refund"

	TransactionStatusCompleted = "Completed"
	TransactionStatusPending   = "Pending"
	TransactionStatusFailed    = "Failed"
	TransactionStatusRefunded  = "Refunded"
)

type Transaction struct {
	ID            uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        uint64    `gorm:"column:user_id;not null;index" json:"user_id"`
	OrderID       *uint64   `gorm:"column:order_id" json:"order_id,omitempty"`
	TransactionID string    `gorm:"column:transaction_id;type:text;not null;uniqueIndex" json:"transaction_id"`
	Type          string    `gorm:"column:type;type:text;not null" json:"type"`
	Amount        float64   `gorm:"column:amount;type:numeric;not null" json:"amount"`
	Status        string    `gorm:"column:status;type:text;not null;default:Pending" json:"status"`
	PaymentMethod string    `gorm:"column:payment_method;type:text;not null" json:"payment_method"`
	Description   string    `gorm:"column:description;type:text" json:"description"`
	ReceiptNumber string    `gorm:"column:receipt_number;type:text" json:"receipt_number,omitempty"`
	CreatedAt     time.Time `gorm:"column:created_at;index" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at" json:"updated_at"`

	Order *Order `gorm:"foreignKey:OrderID" json:"order,omitempty"`
}

func (Transaction) TableName() string {
	return "transactions"
}

// NewTransactionRef generates the external payment reference shown to
// users and support staff.
func NewTransactionRef() string {
	return "TXN-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
}

// NewReceiptNumber generates a receipt number for a settled payment.
func NewReceiptNumber() string {
	return "RCP-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

// TransactionFilter narrows the per-user transaction listing.
type TransactionFilter struct {
	Type      string
	Status    string
	StartDate *time.Time
	EndDate   *time.Time
	SortBy    string // "date" or "amount"
	SortOrder string // "asc" or "desc"
	Page      int
	Limit     int
}
