package application

import (
	"context"

	"github.com/DanielPopoola/checkout-tokenization/internal/domain"
)

// MerchantAuth identifies the merchant application to the payments API.
type MerchantAuth struct {
	ClientApplicationKey string
}

// PaymentAPI is the port for the payments backend.
type PaymentAPI interface {
	FetchPaymentOptions(ctx context.Context, auth MerchantAuth, query PaymentOptionsQuery) ([]domain.PaymentOption, error)
	FetchPaymentMethod(ctx context.Context, auth MerchantAuth, paymentMethodID string) (*domain.PaymentMethod, error)
	Tokenize(ctx context.Context, auth MerchantAuth, req TokensRequest) (*domain.Tokens, error)
}

// WalletLoginAPI is the port for the wallet token issuing backend.
type WalletLoginAPI interface {
	RequestAuthorization(ctx context.Context, auth MerchantAuth, req WalletLoginRequest) (*domain.LoginResponse, error)
	StartNewSession(ctx context.Context, auth MerchantAuth, req AuthSessionRequest) (*domain.AuthSession, error)
	CheckAnswer(ctx context.Context, auth MerchantAuth, req AuthAnswerRequest) (*domain.LoginResponse, error)
}

// KeyValueStore is the persistent settings capability. Set applies the whole
// batch atomically; a nil value deletes the key.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, entries map[string]*string) error
}

// FingerprintProvider yields the device profiling session id.
type FingerprintProvider interface {
	Profile(ctx context.Context) (string, error)
}

type PaymentOptionsQuery struct {
	Amount            domain.Amount
	GatewayID         string
	CustomerID        string
	SavePaymentMethod *bool
}

// TokensRequest is one tokenize call. Exactly one instrument group is set,
// matching Method.
type TokensRequest struct {
	Method                domain.PaymentMethodType
	Amount                domain.Amount
	TMXSessionID          string
	SavePaymentMethod     bool
	Confirmation          *domain.Confirmation
	CustomerID            string
	SavePaymentInstrument *bool

	Card            *domain.BankCard
	PaymentMethodID string
	CSC             string
	WalletToken     string
	LinkedCardID    string
	ApplePayData    string
	PhoneNumber     string
}

type WalletLoginRequest struct {
	MoneyCenterToken string
	TMXSessionID     string
	UsageLimit       domain.PaymentUsageLimit
	// SingleAmountMax is only sent for single-use tokens.
	SingleAmountMax *domain.Amount
}

type AuthSessionRequest struct {
	MoneyCenterToken string
	ContextID        string
	AuthType         domain.AuthType
}

type AuthAnswerRequest struct {
	MoneyCenterToken string
	ContextID        string
	AuthType         domain.AuthType
	Answer           string
	ProcessID        string
}
