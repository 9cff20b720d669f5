package tokenization

import (
	"context"
	"sync"

	"github.com/DanielPopoola/checkout-tokenization/internal/analytics"
	"github.com/DanielPopoola/checkout-tokenization/internal/application/services"
	"github.com/DanielPopoola/checkout-tokenization/internal/domain"
)

// walletAuth obtains the wallet credential shared by the wallet and the
// linked card strategies.
type walletAuth struct {
	baseStrategy
	auth     AuthorizationService
	reusable bool

	mu       sync.Mutex
	authType analytics.AuthType
}

func newWalletAuth(base baseStrategy, auth AuthorizationService, reusable bool) *walletAuth {
	return &walletAuth{
		baseStrategy: base,
		auth:         auth,
		reusable:     reusable,
		authType:     analytics.AuthWithout,
	}
}

func (w *walletAuth) Authorize(ctx context.Context, sessionID string) (*domain.AuthSession, error) {
	if w.auth.HasReusableToken(ctx) {
		w.setAuthType(analytics.AuthWithout)
		return nil, nil
	}

	resp, err := w.auth.Login(ctx, services.LoginRequest{
		MerchantAuth:  w.params.Merchant,
		Amount:        w.params.Amount,
		ReusableToken: w.reusable,
		TMXSessionID:  sessionID,
	})
	if err != nil {
		return nil, err
	}
	if resp.IsAuthorized() {
		w.setAuthType(analytics.AuthMoney)
		return nil, nil
	}
	w.setAuthType(analytics.AuthPayment)
	return resp.Challenge, nil
}

func (w *walletAuth) CheckAnswer(ctx context.Context, challenge domain.AuthSession, answer string) (*domain.AuthSession, error) {
	resp, err := w.auth.CheckAnswer(ctx, w.params.Merchant, challenge.ContextID, challenge.AuthType, answer, challenge.ProcessID)
	if err != nil {
		return nil, err
	}
	if resp.IsAuthorized() {
		return nil, nil
	}
	return resp.Challenge, nil
}

func (w *walletAuth) ResendCode(ctx context.Context, challenge domain.AuthSession) (*domain.AuthSession, error) {
	next, err := w.auth.StartNewAuthSession(ctx, w.params.Merchant, challenge.ContextID, challenge.AuthType)
	if err != nil {
		return nil, err
	}
	session := *next
	if session.ContextID == "" {
		session.ContextID = challenge.ContextID
	}
	if session.ProcessID == "" {
		session.ProcessID = challenge.ProcessID
	}
	if session.AuthType == "" {
		session.AuthType = challenge.AuthType
	}
	return &session, nil
}

func (w *walletAuth) Tags() (analytics.AuthType, analytics.TokenType) {
	w.mu.Lock()
	defer w.mu.Unlock()

	tokenType := analytics.TokenSingle
	if w.reusable {
		tokenType = analytics.TokenMultiple
	}
	return w.authType, tokenType
}

func (w *walletAuth) setAuthType(t analytics.AuthType) {
	w.mu.Lock()
	w.authType = t
	w.mu.Unlock()
}

type walletStrategy struct {
	*walletAuth
}

func (s *walletStrategy) Method() domain.PaymentMethodType { return domain.MethodYooMoney }
func (s *walletStrategy) Scheme() analytics.Scheme         { return analytics.SchemeWallet }
func (s *walletStrategy) Prepare(context.Context) error    { return nil }

func (s *walletStrategy) Tokenize(ctx context.Context, sessionID string) (*domain.Tokens, error) {
	token, err := s.auth.GetToken(ctx)
	if err != nil {
		return nil, err
	}
	return s.payments.TokenizeWallet(ctx, s.params.Merchant, token, s.params.withSession(sessionID))
}

type linkedCardStrategy struct {
	*walletAuth
	req domain.LinkedBankCardRequest
}

func (s *linkedCardStrategy) Method() domain.PaymentMethodType { return domain.MethodLinkedBankCard }
func (s *linkedCardStrategy) Scheme() analytics.Scheme         { return analytics.SchemeLinkedCard }

func (s *linkedCardStrategy) Prepare(context.Context) error {
	return s.req.Validate()
}

func (s *linkedCardStrategy) Tokenize(ctx context.Context, sessionID string) (*domain.Tokens, error) {
	token, err := s.auth.GetToken(ctx)
	if err != nil {
		return nil, err
	}
	return s.payments.TokenizeLinkedBankCard(ctx, s.params.Merchant, token, s.req.CardID, s.req.CSC, s.params.withSession(sessionID))
}
