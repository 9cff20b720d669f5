package analytics

import (
	"time"

	"github.com/DanielPopoola/checkout-tokenization/internal/domain"
	"github.com/google/uuid"
)

type Name string

const (
	EventAttemptStarted     Name = "attempt_started"
	EventAuthChallenge      Name = "auth_challenge_required"
	EventTokenizeSuccess    Name = "tokenize_success"
	EventTokenizeFail       Name = "tokenize_fail"
	EventOptionsFetched     Name = "payment_options_fetched"
	EventOptionsFetchFailed Name = "payment_options_fetch_failed"
	EventLogout             Name = "wallet_logout"
)

// Scheme is the tokenization scheme tag.
type Scheme string

const (
	SchemeWallet        Scheme = "wallet"
	SchemeLinkedCard    Scheme = "linked-card"
	SchemeBankCard      Scheme = "bank-card"
	SchemeSberbank      Scheme = "sms-sbol"
	SchemeSberpay       Scheme = "sber-pay"
	SchemeApplePay      Scheme = "apple-pay"
	SchemeRecurringCard Scheme = "recurring-card"
)

// SchemeFor picks the scheme tag for a request.
func SchemeFor(req domain.TokenizeRequest) Scheme {
	switch req.(type) {
	case domain.CardInstrumentRequest, *domain.CardInstrumentRequest:
		return SchemeRecurringCard
	case domain.SberpayRequest, *domain.SberpayRequest:
		return SchemeSberpay
	}
	switch req.Method().Canonical() {
	case domain.MethodYooMoney:
		return SchemeWallet
	case domain.MethodLinkedBankCard:
		return SchemeLinkedCard
	case domain.MethodSberbank:
		return SchemeSberbank
	case domain.MethodApplePay:
		return SchemeApplePay
	default:
		return SchemeBankCard
	}
}

type AuthType string

const (
	AuthWithout AuthType = "withoutAuth"
	AuthMoney   AuthType = "moneyAuth"
	AuthPayment AuthType = "paymentAuth"
)

type TokenType string

const (
	TokenSingle   TokenType = "single"
	TokenMultiple TokenType = "multiple"
)

// Event is one observational record. It never carries card data or tokens.
type Event struct {
	ID         uuid.UUID `json:"id"`
	Name       Name      `json:"name"`
	FlowID     string    `json:"flow_id,omitempty"`
	Scheme     Scheme    `json:"scheme,omitempty"`
	AuthType   AuthType  `json:"auth_type,omitempty"`
	TokenType  TokenType `json:"token_type,omitempty"`
	ErrorKind  string    `json:"error_kind,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
