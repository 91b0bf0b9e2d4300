package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCard() *CardDetails {
	return &CardDetails{
		Last4:          "4242",
		Brand:          "visa",
		ExpiryMonth:    "09",
		ExpiryYear:     "2028",
		CardholderName: "Asha Rao",
	}
}

func TestNewPaymentMethodCard(t *testing.T) {
	pm, err := NewPaymentMethod(PaymentMethod{Type: PaymentTypeCard, Card: validCard()})
	require.NoError(t, err)
	assert.Equal(t, PaymentTypeCard, pm.Type)
}

func TestNewPaymentMethodRejectsMultiplePayloads(t *testing.T) {
	_, err := NewPaymentMethod(PaymentMethod{
		Type: PaymentTypeCard,
		Card: validCard(),
		UPI:  &UPIDetails{UPIID: "asha@upi", Name: "Asha"},
	})
	assert.Error(t, err)
}

func TestNewPaymentMethodRejectsNoPayload(t *testing.T) {
	_, err := NewPaymentMethod(PaymentMethod{Type: PaymentTypeCard})
	assert.Error(t, err)
}

func TestNewPaymentMethodRejectsMismatchedPayload(t *testing.T) {
	// Type says UPI but only card details are populated.
	_, err := NewPaymentMethod(PaymentMethod{Type: PaymentTypeUPI, Card: validCard()})
	assert.Error(t, err)
}

func TestNewPaymentMethodCardBrand(t *testing.T) {
	card := validCard()
	card.Brand = "dinersclub"
	_, err := NewPaymentMethod(PaymentMethod{Type: PaymentTypeCard, Card: card})
	assert.Error(t, err)
}

func TestNewPaymentMethodUPI(t *testing.T) {
	_, err := NewPaymentMethod(PaymentMethod{
		Type: PaymentTypeUPI,
		UPI:  &UPIDetails{UPIID: "asha@upi", Name: "Asha"},
	})
	assert.NoError(t, err)

	_, err = NewPaymentMethod(PaymentMethod{
		Type: PaymentTypeUPI,
		UPI:  &UPIDetails{UPIID: "asha@upi"},
	})
	assert.Error(t, err)
}

func TestNewPaymentMethodNetBanking(t *testing.T) {
	_, err := NewPaymentMethod(PaymentMethod{
		Type:       PaymentTypeNetBanking,
		NetBanking: &NetBankingDetails{BankName: "HDFC", AccountHolderName: "Asha Rao", IFSCCode: "HDFC0001234"},
	})
	assert.NoError(t, err)
}

func TestNewPaymentMethodWalletProvider(t *testing.T) {
	_, err := NewPaymentMethod(PaymentMethod{
		Type:   PaymentTypeWallet,
		Wallet: &WalletDetails{Provider: "phonepe", PhoneNumber: "9876543210", Name: "Asha"},
	})
	assert.NoError(t, err)

	_, err = NewPaymentMethod(PaymentMethod{
		Type:   PaymentTypeWallet,
		Wallet: &WalletDetails{Provider: "unknownpay", PhoneNumber: "9876543210", Name: "Asha"},
	})
	assert.Error(t, err)
}

func TestNewPaymentMethodUnknownType(t *testing.T) {
	_, err := NewPaymentMethod(PaymentMethod{Type: "crypto", Card: validCard()})
	assert.Error(t, err)
}
