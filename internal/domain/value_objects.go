package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Currency is an ISO-4217 alphabetic code.
type Currency string

const (
	CurrencyRUB Currency = "RUB"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyBYN Currency = "BYN"
	CurrencyKZT Currency = "KZT"
	CurrencyUAH Currency = "UAH"
	CurrencyCNY Currency = "CNY"
	CurrencyJPY Currency = "JPY"
)

// minorUnits maps each supported currency to its number of decimal places.
var minorUnits = map[Currency]int32{
	CurrencyRUB: 2,
	CurrencyUSD: 2,
	CurrencyEUR: 2,
	CurrencyBYN: 2,
	CurrencyKZT: 2,
	CurrencyUAH: 2,
	CurrencyCNY: 2,
	CurrencyJPY: 0,
}

// MinorUnits returns the currency precision and whether the currency is known.
func (c Currency) MinorUnits() (int32, bool) {
	units, ok := minorUnits[c]
	return units, ok
}

// Amount is an immutable monetary value.
type Amount struct {
	Value    decimal.Decimal
	Currency Currency
}

// NewAmount validates value against the currency precision.
func NewAmount(value decimal.Decimal, currency Currency) (Amount, error) {
	currency = Currency(strings.ToUpper(string(currency)))
	units, ok := currency.MinorUnits()
	if !ok {
		return Amount{}, NewInvalidAmountError(fmt.Sprintf("unsupported currency %q", currency))
	}
	if value.IsNegative() {
		return Amount{}, NewInvalidAmountError("amount cannot be negative")
	}
	if !value.Equal(value.Truncate(units)) {
		return Amount{}, NewInvalidAmountError(
			fmt.Sprintf("%s is not representable in %s minor units", value.String(), currency),
		)
	}
	return Amount{Value: value, Currency: currency}, nil
}

// MustAmount parses a decimal string and panics on invalid input. Intended for fixtures.
func MustAmount(value string, currency Currency) Amount {
	d, err := decimal.NewFromString(value)
	if err != nil {
		panic(err)
	}
	a, err := NewAmount(d, currency)
	if err != nil {
		panic(err)
	}
	return a
}

// Validate re-checks an Amount that may have been built without NewAmount.
func (a Amount) Validate() error {
	_, err := NewAmount(a.Value, a.Currency)
	return err
}

// FormattedValue renders the value with exactly the currency's minor units.
func (a Amount) FormattedValue() string {
	units, ok := a.Currency.MinorUnits()
	if !ok {
		return a.Value.String()
	}
	return a.Value.StringFixed(units)
}

func (a Amount) String() string {
	return fmt.Sprintf("%s %s", a.FormattedValue(), a.Currency)
}

// SameCurrency reports whether both amounts are in the same currency.
func (a Amount) SameCurrency(other Amount) bool {
	return a.Currency == other.Currency
}

// Tokens is the single successful output of tokenization.
type Tokens struct {
	PaymentToken string `json:"payment_token"`
}

// ConfirmationType selects how the payer confirms a tokenized payment.
type ConfirmationType string

const (
	ConfirmationRedirect ConfirmationType = "redirect"
	ConfirmationExternal ConfirmationType = "external"
	ConfirmationMobile   ConfirmationType = "mobile_application"
)

// Confirmation is the 3-D Secure / app-to-app step attached to a tokenize call.
type Confirmation struct {
	Type      ConfirmationType `json:"type"`
	ReturnURL string           `json:"return_url,omitempty"`
}

// RedirectConfirmation builds a redirect confirmation returning to returnURL.
func RedirectConfirmation(returnURL string) Confirmation {
	return Confirmation{Type: ConfirmationRedirect, ReturnURL: returnURL}
}
