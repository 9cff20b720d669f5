package rest

import (
	"fmt"
	"time"

	"github.com/DanielPopoola/checkout-tokenization/internal/application"
	"github.com/DanielPopoola/checkout-tokenization/internal/domain"
	"github.com/DanielPopoola/checkout-tokenization/internal/tokenization"
)

type Envelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type Amount struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

func toAmount(a domain.Amount) Amount {
	return Amount{Value: a.FormattedValue(), Currency: string(a.Currency)}
}

type LinkedCard struct {
	ID       string `json:"card_id"`
	Pan      string `json:"pan"`
	CardName string `json:"card_name,omitempty"`
	CardType string `json:"card_type,omitempty"`
}

func toLinkedCard(c domain.LinkedCard) LinkedCard {
	return LinkedCard{ID: c.CardID, Pan: c.Pan, CardName: c.CardName, CardType: c.CardType}
}

type PaymentOption struct {
	ID                       string       `json:"id"`
	Type                     string       `json:"payment_method_type"`
	Charge                   Amount       `json:"charge"`
	SavePaymentMethodAllowed bool         `json:"save_payment_method_allowed"`
	DisplayName              string       `json:"display_name,omitempty"`
	Balance                  *Amount      `json:"balance,omitempty"`
	LinkedCards              []LinkedCard `json:"linked_cards,omitempty"`
}

func ToPaymentOption(o domain.PaymentOption) PaymentOption {
	out := PaymentOption{
		ID:                       o.ID,
		Type:                     string(o.Type),
		Charge:                   toAmount(o.Charge),
		SavePaymentMethodAllowed: o.SavePaymentMethodAllowed,
		DisplayName:              o.DisplayName,
	}
	if o.Balance != nil {
		b := toAmount(*o.Balance)
		out.Balance = &b
	}
	for _, c := range o.LinkedCards {
		out.LinkedCards = append(out.LinkedCards, toLinkedCard(c))
	}
	return out
}

// CreateFlowRequest selects one credential variant by Type. Only the
// matching field is read.
type CreateFlowRequest struct {
	Type              string `json:"type"`
	OptionID          string `json:"option_id,omitempty"`
	SavePaymentMethod bool   `json:"save_payment_method,omitempty"`

	BankCard       *domain.BankCardRequest       `json:"bank_card,omitempty"`
	SavedCard      *domain.CardInstrumentRequest `json:"saved_card,omitempty"`
	Wallet         *domain.WalletRequest         `json:"yoo_money,omitempty"`
	LinkedBankCard *domain.LinkedBankCardRequest `json:"linked_bank_card,omitempty"`
	ApplePay       *domain.ApplePayRequest       `json:"apple_pay,omitempty"`
	Sberbank       *domain.SberbankRequest       `json:"sberbank,omitempty"`
	Sberpay        *domain.SberpayRequest        `json:"sberpay,omitempty"`
}

const (
	// SavedCardType tokenizes a previously saved card by payment method id.
	SavedCardType = "saved_card"
	// SberpayType tokenizes a sberbank option confirmed in the bank's app.
	SberpayType = "sberpay"
)

func (r CreateFlowRequest) TokenizeRequest() (domain.TokenizeRequest, error) {
	if r.Type == "" {
		return nil, domain.NewMissingRequiredFieldError("type")
	}

	var (
		req     domain.TokenizeRequest
		present bool
	)
	switch r.Type {
	case string(domain.MethodBankCard):
		present = r.BankCard != nil
		if present {
			req = *r.BankCard
		}
	case SavedCardType:
		present = r.SavedCard != nil
		if present {
			req = *r.SavedCard
		}
	case string(domain.MethodYooMoney), string(domain.MethodYandexMoney):
		// The wallet has no payer supplied fields.
		present = true
		req = domain.WalletRequest{}
		if r.Wallet != nil {
			req = *r.Wallet
		}
	case string(domain.MethodLinkedBankCard):
		present = r.LinkedBankCard != nil
		if present {
			req = *r.LinkedBankCard
		}
	case string(domain.MethodApplePay):
		present = r.ApplePay != nil
		if present {
			req = *r.ApplePay
		}
	case string(domain.MethodSberbank):
		present = r.Sberbank != nil
		if present {
			req = *r.Sberbank
		}
	case SberpayType:
		// Without a deep link the merchant return URL is used.
		present = true
		req = domain.SberpayRequest{}
		if r.Sberpay != nil {
			req = *r.Sberpay
		}
	default:
		return nil, fmt.Errorf("%w: unknown type %q", ErrBadRequestBody, r.Type)
	}

	if !present {
		return nil, domain.NewMissingRequiredFieldError(r.Type)
	}
	return req, nil
}

type AnswerRequest struct {
	Answer string `json:"answer"`
}

// ConfirmationRequest hands a confirmation url (3-D Secure page or bank app
// deep link) returned by the merchant's payment backend to the module.
type ConfirmationRequest struct {
	URL               string `json:"url"`
	PaymentMethodType string `json:"payment_method_type"`
}

// Method parses the payment method type of the confirmation.
func (r ConfirmationRequest) Method() (domain.PaymentMethodType, error) {
	return ParseMethod(r.PaymentMethodType)
}

// ParseMethod accepts a known payment method type name.
func ParseMethod(name string) (domain.PaymentMethodType, error) {
	if name == "" {
		return "", domain.NewMissingRequiredFieldError("payment_method_type")
	}
	method := domain.PaymentMethodType(name)
	if !method.Valid() {
		return "", domain.NewInvalidFieldError("payment_method_type", nil)
	}
	return method, nil
}

// Confirmation reports the state of a confirmation step.
type Confirmation struct {
	PaymentMethodType string `json:"payment_method_type"`
	Status            string `json:"status"`
}

const (
	ConfirmationPending   = "pending"
	ConfirmationConfirmed = "confirmed"
)

type Challenge struct {
	AuthType            string `json:"auth_type"`
	CodeLength          int    `json:"code_length,omitempty"`
	NextSessionTimeLeft int    `json:"next_session_time_left,omitempty"`
}

type FlowError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type Flow struct {
	ID           string     `json:"id"`
	Method       string     `json:"payment_method_type"`
	State        string     `json:"state"`
	Challenge    *Challenge `json:"challenge,omitempty"`
	PaymentToken string     `json:"payment_token,omitempty"`
	Error        *FlowError `json:"error,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func ToFlow(s tokenization.Snapshot) Flow {
	out := Flow{
		ID:        s.ID,
		Method:    string(s.Method),
		State:     string(s.State),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
	if s.Challenge != nil {
		out.Challenge = &Challenge{
			AuthType:            string(s.Challenge.AuthType),
			CodeLength:          s.Challenge.CodeLength,
			NextSessionTimeLeft: int(s.Challenge.NextSessionTimeLeft / time.Second),
		}
	}
	if s.Tokens != nil {
		out.PaymentToken = s.Tokens.PaymentToken
	}
	if s.Err != nil {
		out.Error = &FlowError{
			Kind:    string(application.KindOf(s.Err)),
			Message: s.Err.Error(),
		}
	}
	return out
}
