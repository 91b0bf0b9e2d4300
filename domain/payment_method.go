package domain

import (
	"errors"
	"fmt"
	"time"
)

const (
	PaymentTypeCard       = "card"
	PaymentTypeUPI        = "upi"
	PaymentTypeNetBanking = "netbanking"
	PaymentTypeWallet     = "wallet"
)

// PaymentMethod is a tagged variant: Type selects exactly one populated
// details payload. NewPaymentMethod enforces this at construction, so a
// row can never carry, say, both card and UPI details.
type PaymentMethod struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint64 `gorm:"column:user_id;not null;index:idx_payment_methods_user_active" json:"user_id"`
	Type      string `gorm:"column:type;type:text;not null" json:"type"`
	IsDefault bool   `gorm:"column:is_default;default:false" json:"is_default"`
	IsActive  bool   `gorm:"column:is_active;default:true;index:idx_payment_methods_user_active" json:"is_active"`
	Nickname  string `gorm:"column:nickname;type:varchar(50)" json:"nickname"`

	Card       *CardDetails       `gorm:"column:card_details;serializer:json" json:"card_details,omitempty"`
	UPI        *UPIDetails        `gorm:"column:upi_details;serializer:json" json:"upi_details,omitempty"`
	NetBanking *NetBankingDetails `gorm:"column:netbanking_details;serializer:json" json:"netbanking_details,omitempty"`
	Wallet     *WalletDetails     `gorm:"column:wallet_details;serializer:json" json:"wallet_details,omitempty"`

	LastUsed  *time.Time `gorm:"column:last_used" json:"last_used,omitempty"`
	CreatedAt time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

func (PaymentMethod) TableName() string {
	return "payment_methods"
}

type CardDetails struct {
	Last4          string `json:"last4"`
	Brand          string `json:"brand"`
	ExpiryMonth    string `json:"expiry_month"`
	ExpiryYear     string `json:"expiry_year"`
	CardholderName string `json:"cardholder_name"`
}

type UPIDetails struct {
	UPIID string `json:"upi_id"`
	Name  string `json:"name"`
}

type NetBankingDetails struct {
	BankName          string `json:"bank_name"`
	AccountHolderName string `json:"account_holder_name"`
	IFSCCode          string `json:"ifsc_code"`
}

type WalletDetails struct {
	Provider    string `json:"provider"`
	PhoneNumber string `json:"phone_number"`
	Name        string `json:"name"`
}

var validCardBrands = map[string]bool{
	"visa": true, "mastercard": true, "amex": true, "discover": true, "rupay": true,
}

var validWalletProviders = map[string]bool{
	"paytm": true, "phonepe": true, "gpay": true, "amazonpay": true,
}

// NewPaymentMethod validates that the payload matching Type is populated
// and all other payloads are nil.
func NewPaymentMethod(pm PaymentMethod) (PaymentMethod, error) {
	populated := 0
	for _, p := range []bool{pm.Card != nil, pm.UPI != nil, pm.NetBanking != nil, pm.Wallet != nil} {
		if p {
			populated++
		}
	}
	if populated != 1 {
		return PaymentMethod{}, fmt.Errorf("payment method must carry exactly one details payload, got %d", populated)
	}

	switch pm.Type {
	case PaymentTypeCard:
		if pm.Card == nil {
			return PaymentMethod{}, errors.New("card payment method requires card details")
		}
		if pm.Card.Last4 == "" || pm.Card.ExpiryMonth == "" || pm.Card.ExpiryYear == "" || pm.Card.CardholderName == "" {
			return PaymentMethod{}, errors.New("incomplete card details")
		}
		if !validCardBrands[pm.Card.Brand] {
			return PaymentMethod{}, fmt.Errorf("unsupported card brand %q", pm.Card.Brand)
		}
	case PaymentTypeUPI:
		if pm.UPI == nil {
			return PaymentMethod{}, errors.New("upi payment method requires upi details")
		}
		if pm.UPI.UPIID == "" || pm.UPI.Name == "" {
			return PaymentMethod{}, errors.New("incomplete upi details")
		}
	case PaymentTypeNetBanking:
		if pm.NetBanking == nil {
			return PaymentMethod{}, errors.New("netbanking payment method requires netbanking details")
		}
		if pm.NetBanking.BankName == "" || pm.NetBanking.AccountHolderName == "" || pm.NetBanking.IFSCCode == "" {
			return PaymentMethod{}, errors.New("incomplete netbanking details")
		}
	case PaymentTypeWallet:
		if pm.Wallet == nil {
			return PaymentMethod{}, errors.New("wallet payment method requires wallet details")
		}
		if !validWalletProviders[pm.Wallet.Provider] {
			return PaymentMethod{}, fmt.Errorf("unsupported wallet provider %q", pm.Wallet.Provider)
		}
		if pm.Wallet.PhoneNumber == "" || pm.Wallet.Name == "" {
			return PaymentMethod{}, errors.New("incomplete wallet details")
		}
	default:
		return PaymentMethod{}, fmt.Errorf("unknown payment method type %q", pm.Type)
	}

	return pm, nil
}
