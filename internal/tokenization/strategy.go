package tokenization

import (
	"context"
	"fmt"

	"github.com/DanielPopoola/checkout-tokenization/internal/analytics"
	"github.com/DanielPopoola/checkout-tokenization/internal/application"
	"github.com/DanielPopoola/checkout-tokenization/internal/application/services"
	"github.com/DanielPopoola/checkout-tokenization/internal/domain"
)

// PaymentService is the subset of services.PaymentService a flow drives.
type PaymentService interface {
	FetchPaymentMethod(ctx context.Context, auth application.MerchantAuth, paymentMethodID string) (*domain.PaymentMethod, error)
	TokenizeBankCard(ctx context.Context, auth application.MerchantAuth, card domain.BankCard, savePaymentInstrument *bool, params services.TokenizeParams) (*domain.Tokens, error)
	TokenizeCardInstrument(ctx context.Context, auth application.MerchantAuth, instrumentID, csc string, params services.TokenizeParams) (*domain.Tokens, error)
	TokenizeWallet(ctx context.Context, auth application.MerchantAuth, walletToken string, params services.TokenizeParams) (*domain.Tokens, error)
	TokenizeLinkedBankCard(ctx context.Context, auth application.MerchantAuth, walletToken, cardID, csc string, params services.TokenizeParams) (*domain.Tokens, error)
	TokenizeApplePay(ctx context.Context, auth application.MerchantAuth, paymentData string, params services.TokenizeParams) (*domain.Tokens, error)
	TokenizeSberbank(ctx context.Context, auth application.MerchantAuth, phoneNumber string, params services.TokenizeParams) (*domain.Tokens, error)
	TokenizeSberpay(ctx context.Context, auth application.MerchantAuth, returnURL string, params services.TokenizeParams) (*domain.Tokens, error)
}

// AuthorizationService is the subset of services.AuthorizationService the
// wallet strategies drive.
type AuthorizationService interface {
	HasReusableToken(ctx context.Context) bool
	GetToken(ctx context.Context) (string, error)
	Login(ctx context.Context, req services.LoginRequest) (*domain.LoginResponse, error)
	StartNewAuthSession(ctx context.Context, auth application.MerchantAuth, contextID string, authType domain.AuthType) (*domain.AuthSession, error)
	CheckAnswer(ctx context.Context, auth application.MerchantAuth, contextID string, authType domain.AuthType, answer, processID string) (*domain.LoginResponse, error)
}

// Strategy is the per-method part of a flow. The flow owns the lifecycle;
// a strategy only knows how to validate, authorize and tokenize.
type Strategy interface {
	Method() domain.PaymentMethodType
	Scheme() analytics.Scheme
	// Prepare runs before fingerprinting. Failing here means no device
	// profile is ever requested.
	Prepare(ctx context.Context) error
	// Authorize returns a challenge when the payer must answer one.
	Authorize(ctx context.Context, sessionID string) (*domain.AuthSession, error)
	Tokenize(ctx context.Context, sessionID string) (*domain.Tokens, error)
	Tags() (analytics.AuthType, analytics.TokenType)
}

// ChallengeStrategy is implemented by strategies that can enter awaiting_auth.
type ChallengeStrategy interface {
	Strategy
	// CheckAnswer returns a follow-up challenge, or nil once authorized.
	CheckAnswer(ctx context.Context, challenge domain.AuthSession, answer string) (*domain.AuthSession, error)
	ResendCode(ctx context.Context, challenge domain.AuthSession) (*domain.AuthSession, error)
}

// Params are the request-independent tokenize inputs.
type Params struct {
	Merchant          application.MerchantAuth
	Amount            domain.Amount
	Confirmation      *domain.Confirmation
	SavePaymentMethod bool
	CustomerID        string
}

func (p Params) withSession(sessionID string) services.TokenizeParams {
	return services.TokenizeParams{
		Amount:            p.Amount,
		TMXSessionID:      sessionID,
		Confirmation:      p.Confirmation,
		SavePaymentMethod: p.SavePaymentMethod,
		CustomerID:        p.CustomerID,
	}
}

// NewStrategy picks the strategy for the request variant.
func NewStrategy(req domain.TokenizeRequest, params Params, payments PaymentService, auth AuthorizationService) (Strategy, error) {
	if req == nil {
		return nil, domain.NewMissingRequiredFieldError("payment_method_type")
	}
	base := baseStrategy{params: params, payments: payments}

	switch r := req.(type) {
	case domain.BankCardRequest:
		return &bankCardStrategy{baseStrategy: base, req: r}, nil
	case domain.CardInstrumentRequest:
		return &cardInstrumentStrategy{baseStrategy: base, req: r}, nil
	case domain.WalletRequest:
		return &walletStrategy{walletAuth: newWalletAuth(base, auth, r.ReusableToken)}, nil
	case domain.LinkedBankCardRequest:
		return &linkedCardStrategy{walletAuth: newWalletAuth(base, auth, r.ReusableToken), req: r}, nil
	case domain.ApplePayRequest:
		return &applePayStrategy{baseStrategy: base, req: r}, nil
	case domain.SberbankRequest:
		return &sberbankStrategy{baseStrategy: base, req: r}, nil
	case domain.SberpayRequest:
		return &sberpayStrategy{baseStrategy: base, req: r}, nil
	}
	return nil, fmt.Errorf("unsupported tokenize request %T", req)
}

type baseStrategy struct {
	params   Params
	payments PaymentService
}

func (baseStrategy) Authorize(context.Context, string) (*domain.AuthSession, error) {
	return nil, nil
}

func (baseStrategy) Tags() (analytics.AuthType, analytics.TokenType) {
	return analytics.AuthWithout, ""
}

type bankCardStrategy struct {
	baseStrategy
	req domain.BankCardRequest
}

func (s *bankCardStrategy) Method() domain.PaymentMethodType { return domain.MethodBankCard }
func (s *bankCardStrategy) Scheme() analytics.Scheme         { return analytics.SchemeBankCard }

func (s *bankCardStrategy) Prepare(context.Context) error {
	return s.req.Validate()
}

func (s *bankCardStrategy) Tokenize(ctx context.Context, sessionID string) (*domain.Tokens, error) {
	return s.payments.TokenizeBankCard(ctx, s.params.Merchant, s.req.Card, s.req.SavePaymentInstrument, s.params.withSession(sessionID))
}

// cardInstrumentStrategy repeats a payment with a saved card. The backend is
// authoritative: the instrument is resolved before any device profiling.
type cardInstrumentStrategy struct {
	baseStrategy
	req domain.CardInstrumentRequest
}

func (s *cardInstrumentStrategy) Method() domain.PaymentMethodType { return domain.MethodBankCard }
func (s *cardInstrumentStrategy) Scheme() analytics.Scheme         { return analytics.SchemeRecurringCard }

func (s *cardInstrumentStrategy) Prepare(ctx context.Context) error {
	if err := s.req.Validate(); err != nil {
		return err
	}
	method, err := s.payments.FetchPaymentMethod(ctx, s.params.Merchant, s.req.PaymentMethodID)
	if err != nil {
		return err
	}
	if method.Type.Canonical() != domain.MethodBankCard {
		return domain.ErrPaymentMethodNotFound
	}
	return nil
}

func (s *cardInstrumentStrategy) Tokenize(ctx context.Context, sessionID string) (*domain.Tokens, error) {
	return s.payments.TokenizeCardInstrument(ctx, s.params.Merchant, s.req.PaymentMethodID, s.req.CSC, s.params.withSession(sessionID))
}

type applePayStrategy struct {
	baseStrategy
	req domain.ApplePayRequest
}

func (s *applePayStrategy) Method() domain.PaymentMethodType { return domain.MethodApplePay }
func (s *applePayStrategy) Scheme() analytics.Scheme         { return analytics.SchemeApplePay }

func (s *applePayStrategy) Prepare(context.Context) error {
	return s.req.Validate()
}

func (s *applePayStrategy) Tokenize(ctx context.Context, sessionID string) (*domain.Tokens, error) {
	return s.payments.TokenizeApplePay(ctx, s.params.Merchant, s.req.PaymentData, s.params.withSession(sessionID))
}

type sberbankStrategy struct {
	baseStrategy
	req domain.SberbankRequest
}

func (s *sberbankStrategy) Method() domain.PaymentMethodType { return domain.MethodSberbank }
func (s *sberbankStrategy) Scheme() analytics.Scheme         { return analytics.SchemeSberbank }

func (s *sberbankStrategy) Prepare(context.Context) error {
	return s.req.Validate()
}

func (s *sberbankStrategy) Tokenize(ctx context.Context, sessionID string) (*domain.Tokens, error) {
	return s.payments.TokenizeSberbank(ctx, s.params.Merchant, s.req.PhoneNumber, s.params.withSession(sessionID))
}

// sberpayStrategy hands confirmation off to the bank's app. The merchant
// return URL stands in when the request names no deep link.
type sberpayStrategy struct {
	baseStrategy
	req domain.SberpayRequest
}

func (s *sberpayStrategy) Method() domain.PaymentMethodType { return domain.MethodSberbank }
func (s *sberpayStrategy) Scheme() analytics.Scheme         { return analytics.SchemeSberpay }

func (s *sberpayStrategy) Prepare(context.Context) error {
	if s.req.ReturnURL == "" && s.params.Confirmation != nil {
		s.req.ReturnURL = s.params.Confirmation.ReturnURL
	}
	return s.req.Validate()
}

func (s *sberpayStrategy) Tokenize(ctx context.Context, sessionID string) (*domain.Tokens, error) {
	return s.payments.TokenizeSberpay(ctx, s.params.Merchant, s.req.ReturnURL, s.params.withSession(sessionID))
}
