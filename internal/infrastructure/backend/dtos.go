package backend

import (
	"fmt"

	"github.com/DanielPopoola/checkout-tokenization/internal/domain"
	"github.com/shopspring/decimal"
)

type AmountDTO struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

func toAmountDTO(a domain.Amount) AmountDTO {
	return AmountDTO{Value: a.FormattedValue(), Currency: string(a.Currency)}
}

func (a AmountDTO) toDomain() (domain.Amount, error) {
	value, err := decimal.NewFromString(a.Value)
	if err != nil {
		return domain.Amount{}, fmt.Errorf("invalid amount value %q: %w", a.Value, err)
	}
	return domain.NewAmount(value, domain.Currency(a.Currency))
}

type PaymentOptionsResponse struct {
	Items []PaymentOptionDTO `json:"items"`
}

type PaymentOptionDTO struct {
	ID                        string          `json:"id"`
	PaymentMethodType         string          `json:"payment_method_type"`
	Charge                    AmountDTO       `json:"charge"`
	SavePaymentMethod         string          `json:"save_payment_method"`
	DisplayName               string          `json:"display_name,omitempty"`
	Balance                   *AmountDTO      `json:"balance,omitempty"`
	IdentificationRequirement string          `json:"identification_requirement,omitempty"`
	Instruments               []InstrumentDTO `json:"payment_instruments,omitempty"`
}

type InstrumentDTO struct {
	CardID   string `json:"card_id"`
	Pan      string `json:"pan"`
	CardName string `json:"card_name,omitempty"`
	CardType string `json:"card_type,omitempty"`
}

func (o PaymentOptionDTO) toDomain() (domain.PaymentOption, error) {
	charge, err := o.Charge.toDomain()
	if err != nil {
		return domain.PaymentOption{}, err
	}
	option := domain.PaymentOption{
		ID:                       o.ID,
		Type:                     domain.PaymentMethodType(o.PaymentMethodType),
		Charge:                   charge,
		SavePaymentMethodAllowed: o.SavePaymentMethod == "allowed",
		DisplayName:              o.DisplayName,
		IdentificationReq:        o.IdentificationRequirement != "",
	}
	if o.Balance != nil {
		balance, err := o.Balance.toDomain()
		if err != nil {
			return domain.PaymentOption{}, err
		}
		option.Balance = &balance
	}
	for _, in := range o.Instruments {
		option.LinkedCards = append(option.LinkedCards, domain.LinkedCard{
			CardID:   in.CardID,
			Pan:      in.Pan,
			CardName: in.CardName,
			CardType: in.CardType,
		})
	}
	return option, nil
}

type PaymentMethodResponse struct {
	ID    string        `json:"id"`
	Type  string        `json:"type"`
	Saved bool          `json:"saved"`
	Title string        `json:"title,omitempty"`
	Card  *SavedCardDTO `json:"card,omitempty"`
}

type SavedCardDTO struct {
	First6      string `json:"first6"`
	Last4       string `json:"last4"`
	ExpiryYear  string `json:"expiry_year"`
	ExpiryMonth string `json:"expiry_month"`
	CardType    string `json:"card_type"`
}

func (m PaymentMethodResponse) toDomain() *domain.PaymentMethod {
	method := &domain.PaymentMethod{
		ID:    m.ID,
		Type:  domain.PaymentMethodType(m.Type),
		Saved: m.Saved,
		Title: m.Title,
	}
	if m.Card != nil {
		method.Card = &domain.SavedCard{
			First6:      m.Card.First6,
			Last4:       m.Card.Last4,
			ExpiryYear:  m.Card.ExpiryYear,
			ExpiryMonth: m.Card.ExpiryMonth,
			CardType:    m.Card.CardType,
		}
	}
	return method
}

type TokensRequest struct {
	Amount                AmountDTO          `json:"amount"`
	TMXSessionID          string             `json:"tmx_session_id"`
	SavePaymentMethod     bool               `json:"save_payment_method"`
	SavePaymentInstrument *bool              `json:"save_payment_instrument,omitempty"`
	Confirmation          *ConfirmationDTO   `json:"confirmation,omitempty"`
	CustomerID            string             `json:"customer_id,omitempty"`
	PaymentMethodID       string             `json:"payment_method_id,omitempty"`
	CSC                   string             `json:"csc,omitempty"`
	PaymentMethodData     *PaymentMethodData `json:"payment_method_data,omitempty"`
}

type ConfirmationDTO struct {
	Type      string `json:"type"`
	ReturnURL string `json:"return_url,omitempty"`
}

// PaymentMethodData is the per-method credential block of a tokens request.
type PaymentMethodData struct {
	Type        string   `json:"type"`
	Card        *CardDTO `json:"card,omitempty"`
	CardID      string   `json:"card_id,omitempty"`
	CSC         string   `json:"csc,omitempty"`
	WalletToken string   `json:"money_auth_token,omitempty"`
	PaymentData string   `json:"payment_data,omitempty"`
	Phone       string   `json:"phone,omitempty"`
}

type CardDTO struct {
	Number      string `json:"number"`
	ExpiryYear  string `json:"expiry_year"`
	ExpiryMonth string `json:"expiry_month"`
	CSC         string `json:"csc"`
	Cardholder  string `json:"cardholder,omitempty"`
}

type TokensResponse struct {
	PaymentToken string `json:"payment_token"`
}

type TokenIssueInitRequest struct {
	TMXSessionID      string     `json:"tmx_session_id"`
	PaymentUsageLimit string     `json:"payment_usage_limit"`
	SingleAmountMax   *AmountDTO `json:"single_amount_max,omitempty"`
}

type TokenIssueInitResponse struct {
	ProcessID     string `json:"process_id"`
	AuthContextID string `json:"auth_context_id"`
	AuthRequired  bool   `json:"auth_required"`
}

type AuthSessionGenerateRequest struct {
	AuthContextID string `json:"auth_context_id"`
	AuthType      string `json:"auth_type"`
}

type AuthSessionGenerateResponse struct {
	AuthType            string `json:"auth_type"`
	CodeLength          int    `json:"code_length"`
	NextSessionTimeLeft int    `json:"next_session_time_left"`
}

type AuthCheckRequest struct {
	AuthContextID string `json:"auth_context_id"`
	AuthType      string `json:"auth_type"`
	Answer        string `json:"answer"`
}

type AuthCheckResponse struct {
	Status string `json:"status"`
}

type TokenIssueExecuteRequest struct {
	ProcessID string `json:"process_id"`
}

type TokenIssueExecuteResponse struct {
	AccessToken string `json:"access_token"`
}
