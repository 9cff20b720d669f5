package domain

import (
	"strings"
	"time"
)

// TokenizeRequest is the credential material for one payment method.
// Concrete variants: BankCardRequest, CardInstrumentRequest, WalletRequest,
// LinkedBankCardRequest, ApplePayRequest, SberbankRequest, SberpayRequest.
type TokenizeRequest interface {
	Method() PaymentMethodType
	Validate() error
	isTokenizeRequest()
}

// BankCard carries raw card data. Never log it.
type BankCard struct {
	Number      string `json:"number" validate:"required,numeric,min=12,max=19,luhn"`
	ExpiryYear  string `json:"expiry_year" validate:"required,numeric,len=4"`
	ExpiryMonth string `json:"expiry_month" validate:"required,numeric,min=1,max=2"`
	CSC         string `json:"csc" validate:"required,csc"`
	Cardholder  string `json:"cardholder,omitempty" validate:"omitempty,max=26"`
}

// Normalized strips separators from the number and pads the month.
func (c BankCard) Normalized() BankCard {
	c.Number = strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return -1
		}
		return r
	}, c.Number)
	c.CSC = strings.TrimSpace(c.CSC)
	if len(c.ExpiryMonth) == 1 {
		c.ExpiryMonth = "0" + c.ExpiryMonth
	}
	return c
}

type BankCardRequest struct {
	Card BankCard `json:"card"`
	// SavePaymentInstrument asks the backend to bind the card to the customer.
	SavePaymentInstrument *bool `json:"save_payment_instrument,omitempty"`
}

func (BankCardRequest) Method() PaymentMethodType { return MethodBankCard }
func (BankCardRequest) isTokenizeRequest()        {}

func (r BankCardRequest) Validate() error {
	return r.ValidateAt(time.Now())
}

// ValidateAt validates the card as of now.
func (r BankCardRequest) ValidateAt(now time.Time) error {
	card := r.Card.Normalized()
	if err := validateStruct(card); err != nil {
		return err
	}
	return validateExpiry(card.ExpiryYear, card.ExpiryMonth, now)
}

// CardInstrumentRequest repeats a payment with a saved instrument.
type CardInstrumentRequest struct {
	PaymentMethodID string `json:"payment_method_id" validate:"required"`
	CSC             string `json:"csc,omitempty" validate:"omitempty,csc"`
}

func (CardInstrumentRequest) Method() PaymentMethodType { return MethodBankCard }
func (CardInstrumentRequest) isTokenizeRequest()        {}
func (r CardInstrumentRequest) Validate() error         { return validateStruct(r) }

// WalletRequest pays from the wallet balance; the credential comes from the
// authorization service.
type WalletRequest struct {
	ReusableToken bool `json:"reusable_token"`
}

func (WalletRequest) Method() PaymentMethodType { return MethodYooMoney }
func (WalletRequest) isTokenizeRequest()        {}
func (WalletRequest) Validate() error           { return nil }

// LinkedBankCardRequest pays with a card bound to the wallet.
type LinkedBankCardRequest struct {
	CardID        string `json:"card_id" validate:"required"`
	CSC           string `json:"csc" validate:"required,csc"`
	ReusableToken bool   `json:"reusable_token"`
}

func (LinkedBankCardRequest) Method() PaymentMethodType { return MethodLinkedBankCard }
func (LinkedBankCardRequest) isTokenizeRequest()        {}
func (r LinkedBankCardRequest) Validate() error         { return validateStruct(r) }

// ApplePayRequest carries the opaque payment blob from the platform sheet.
type ApplePayRequest struct {
	PaymentData string `json:"payment_data" validate:"required"`
}

func (ApplePayRequest) Method() PaymentMethodType { return MethodApplePay }
func (ApplePayRequest) isTokenizeRequest()        {}
func (r ApplePayRequest) Validate() error         { return validateStruct(r) }

// SberbankRequest pays through SMS confirmation sent to the phone number.
type SberbankRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required,e164"`
}

func (SberbankRequest) Method() PaymentMethodType { return MethodSberbank }
func (SberbankRequest) isTokenizeRequest()        {}

func (r SberbankRequest) Validate() error {
	r.PhoneNumber = NormalizePhone(r.PhoneNumber)
	return validateStruct(r)
}

// SberpayRequest pays with a sberbank account confirmed in the bank's app.
// ReturnURL is the deep link the bank app opens once the payer confirms;
// when empty the merchant's return URL is used.
type SberpayRequest struct {
	ReturnURL string `json:"return_url" validate:"required,url"`
}

func (SberpayRequest) Method() PaymentMethodType { return MethodSberbank }
func (SberpayRequest) isTokenizeRequest()        {}
func (r SberpayRequest) Validate() error         { return validateStruct(r) }

// NormalizePhone strips formatting and prefixes "+"; a leading domestic 8
// of an 11-digit Russian number becomes +7.
func NormalizePhone(phone string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	if digits == "" {
		return ""
	}
	if len(digits) == 11 && digits[0] == '8' {
		digits = "7" + digits[1:]
	}
	return "+" + digits
}
