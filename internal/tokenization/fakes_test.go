package tokenization_test

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/DanielPopoola/checkout-tokenization/internal/analytics"
	"github.com/DanielPopoola/checkout-tokenization/internal/application"
	"github.com/DanielPopoola/checkout-tokenization/internal/application/services"
	"github.com/DanielPopoola/checkout-tokenization/internal/domain"
)

type fakePayments struct {
	fetchMethod func(ctx context.Context, id string) (*domain.PaymentMethod, error)
	tokenize    func(ctx context.Context, method domain.PaymentMethodType, params services.TokenizeParams) (*domain.Tokens, error)

	mu    sync.Mutex
	calls []domain.PaymentMethodType
}

func (f *fakePayments) FetchPaymentMethod(ctx context.Context, _ application.MerchantAuth, id string) (*domain.PaymentMethod, error) {
	return f.fetchMethod(ctx, id)
}

func (f *fakePayments) TokenizeBankCard(ctx context.Context, _ application.MerchantAuth, _ domain.BankCard, _ *bool, params services.TokenizeParams) (*domain.Tokens, error) {
	return f.do(ctx, domain.MethodBankCard, params)
}

func (f *fakePayments) TokenizeCardInstrument(ctx context.Context, _ application.MerchantAuth, _, _ string, params services.TokenizeParams) (*domain.Tokens, error) {
	return f.do(ctx, domain.MethodBankCard, params)
}

func (f *fakePayments) TokenizeWallet(ctx context.Context, _ application.MerchantAuth, _ string, params services.TokenizeParams) (*domain.Tokens, error) {
	return f.do(ctx, domain.MethodYooMoney, params)
}

func (f *fakePayments) TokenizeLinkedBankCard(ctx context.Context, _ application.MerchantAuth, _, _, _ string, params services.TokenizeParams) (*domain.Tokens, error) {
	return f.do(ctx, domain.MethodLinkedBankCard, params)
}

func (f *fakePayments) TokenizeApplePay(ctx context.Context, _ application.MerchantAuth, _ string, params services.TokenizeParams) (*domain.Tokens, error) {
	return f.do(ctx, domain.MethodApplePay, params)
}

func (f *fakePayments) TokenizeSberbank(ctx context.Context, _ application.MerchantAuth, _ string, params services.TokenizeParams) (*domain.Tokens, error) {
	return f.do(ctx, domain.MethodSberbank, params)
}

func (f *fakePayments) TokenizeSberpay(ctx context.Context, _ application.MerchantAuth, returnURL string, params services.TokenizeParams) (*domain.Tokens, error) {
	params.Confirmation = &domain.Confirmation{Type: domain.ConfirmationMobile, ReturnURL: returnURL}
	return f.do(ctx, domain.MethodSberbank, params)
}

func (f *fakePayments) do(ctx context.Context, method domain.PaymentMethodType, params services.TokenizeParams) (*domain.Tokens, error) {
	f.mu.Lock()
	f.calls = append(f.calls, method)
	f.mu.Unlock()
	return f.tokenize(ctx, method, params)
}

func (f *fakePayments) Calls() []domain.PaymentMethodType {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.PaymentMethodType(nil), f.calls...)
}

type fakeAuth struct {
	reusable    bool
	token       string
	login       func(ctx context.Context, req services.LoginRequest) (*domain.LoginResponse, error)
	checkAnswer func(ctx context.Context, answer string) (*domain.LoginResponse, error)
	newSession  func(ctx context.Context, contextID string) (*domain.AuthSession, error)
}

func (f *fakeAuth) HasReusableToken(context.Context) bool { return f.reusable }

func (f *fakeAuth) GetToken(context.Context) (string, error) {
	if f.token == "" {
		return "", domain.ErrMissingCredential
	}
	return f.token, nil
}

func (f *fakeAuth) Login(ctx context.Context, req services.LoginRequest) (*domain.LoginResponse, error) {
	return f.login(ctx, req)
}

func (f *fakeAuth) StartNewAuthSession(ctx context.Context, _ application.MerchantAuth, contextID string, _ domain.AuthType) (*domain.AuthSession, error) {
	return f.newSession(ctx, contextID)
}

func (f *fakeAuth) CheckAnswer(ctx context.Context, _ application.MerchantAuth, _ string, _ domain.AuthType, answer, _ string) (*domain.LoginResponse, error) {
	return f.checkAnswer(ctx, answer)
}

type recordingOutput struct {
	mu       sync.Mutex
	tokens   []domain.Tokens
	failures []error
}

func (o *recordingOutput) DidTokenize(_ string, tokens domain.Tokens, _ domain.PaymentMethodType) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.tokens = append(o.tokens, tokens)
}

func (o *recordingOutput) DidFail(_ string, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.failures = append(o.failures, err)
}

func (o *recordingOutput) Events() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.tokens) + len(o.failures)
}

type recordingTracker struct {
	mu     sync.Mutex
	events []analytics.Event
}

func (r *recordingTracker) Track(e analytics.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingTracker) Names() []analytics.Name {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]analytics.Name, 0, len(r.events))
	for _, e := range r.events {
		names = append(names, e.Name)
	}
	return names
}

func (r *recordingTracker) Last() analytics.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[len(r.events)-1]
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// blockUntilDone waits for ctx and reports its error, like a request the
// backend never answers.
func blockUntilDone[T any](ctx context.Context) (T, error) {
	var zero T
	<-ctx.Done()
	return zero, ctx.Err()
}
