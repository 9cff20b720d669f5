package checkout

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/DanielPopoola/checkout-tokenization/internal/analytics"
	"github.com/DanielPopoola/checkout-tokenization/internal/application"
	"github.com/DanielPopoola/checkout-tokenization/internal/domain"
	"github.com/DanielPopoola/checkout-tokenization/internal/tokenization"
)

var (
	ErrNoConfirmationPending = errors.New("no confirmation is pending for this method")
	ErrEmptyConfirmationURL  = errors.New("confirmation url is empty")
)

// ModuleInput is what the embedding app configures a checkout with.
type ModuleInput struct {
	ClientApplicationKey string
	Amount               domain.Amount
	AllowedTypes         []domain.PaymentMethodType
	SavePaymentMethod    domain.SavePaymentMethod
	GatewayID            string
	CustomerID           string
	ReturnURL            string
}

func (in ModuleInput) Validate() error {
	if in.ClientApplicationKey == "" {
		return domain.NewMissingRequiredFieldError("client_application_key")
	}
	return in.Amount.Validate()
}

// Output is implemented by the embedding app.
type Output interface {
	DidTokenize(tokens domain.Tokens, method domain.PaymentMethodType)
	DidFinish(err error)
	StartConfirmationProcess(confirmationURL string, method domain.PaymentMethodType)
	DidSuccessfullyConfirm(method domain.PaymentMethodType)
}

// PaymentService lists options and tokenizes.
type PaymentService interface {
	tokenization.PaymentService
	FetchPaymentOptions(ctx context.Context, auth application.MerchantAuth, query application.PaymentOptionsQuery, allowed []domain.PaymentMethodType) ([]domain.PaymentOption, error)
}

// WalletService owns the wallet credential.
type WalletService interface {
	tokenization.AuthorizationService
	Logout(ctx context.Context) error
}

type Dependencies struct {
	Payments    PaymentService
	Wallet      WalletService
	Fingerprint application.FingerprintProvider
	Tracker     tokenization.Tracker
	Registry    *Registry
	Output      Output
	Logger      *slog.Logger
}

// TokenizeOptions carries the payer's choices for one tokenize call.
type TokenizeOptions struct {
	// Option is the payment option the payer picked, if known.
	Option *domain.PaymentOption
	// SavePaymentMethod is the payer's answer when the merchant lets them choose.
	SavePaymentMethod bool
}

// Module is one checkout session. Flows it starts report back through Output.
type Module struct {
	input       ModuleInput
	payments    PaymentService
	wallet      WalletService
	fingerprint application.FingerprintProvider
	tracker     tokenization.Tracker
	registry    *Registry
	output      Output
	logger      *slog.Logger

	mu      sync.Mutex
	pending map[domain.PaymentMethodType]string
}

func NewModule(input ModuleInput, deps Dependencies) (*Module, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if input.SavePaymentMethod == "" {
		input.SavePaymentMethod = domain.SavePaymentMethodUserSelects
	}
	registry := deps.Registry
	if registry == nil {
		registry = NewRegistry()
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	output := deps.Output
	if output == nil {
		output = discardOutput{}
	}

	return &Module{
		input:       input,
		payments:    deps.Payments,
		wallet:      deps.Wallet,
		fingerprint: deps.Fingerprint,
		tracker:     deps.Tracker,
		registry:    registry,
		output:      output,
		logger:      logger,
		pending:     make(map[domain.PaymentMethodType]string),
	}, nil
}

func (m *Module) merchant() application.MerchantAuth {
	return application.MerchantAuth{ClientApplicationKey: m.input.ClientApplicationKey}
}

// FetchPaymentOptions returns the options the payer may pick from.
func (m *Module) FetchPaymentOptions(ctx context.Context) ([]domain.PaymentOption, error) {
	query := application.PaymentOptionsQuery{
		Amount:            m.input.Amount,
		GatewayID:         m.input.GatewayID,
		CustomerID:        m.input.CustomerID,
		SavePaymentMethod: m.input.SavePaymentMethod.QueryValue(),
	}

	options, err := m.payments.FetchPaymentOptions(ctx, m.merchant(), query, m.input.AllowedTypes)
	if err != nil {
		mapped := application.MapError(err)
		m.track(analytics.Event{Name: analytics.EventOptionsFetchFailed, ErrorKind: string(application.KindOf(mapped))})
		return nil, mapped
	}
	m.track(analytics.Event{Name: analytics.EventOptionsFetched})
	return options, nil
}

// Tokenize starts a flow for the request. The returned flow is already
// running and registered; its result also reaches Output.
func (m *Module) Tokenize(ctx context.Context, req domain.TokenizeRequest, opts TokenizeOptions) (*tokenization.Flow, error) {
	save := m.input.SavePaymentMethod.Resolve(opts.SavePaymentMethod)
	if opts.Option != nil && !opts.Option.SavePaymentMethodAllowed {
		save = false
	}

	var confirmation *domain.Confirmation
	if m.input.ReturnURL != "" {
		c := domain.RedirectConfirmation(m.input.ReturnURL)
		confirmation = &c
	}

	flow, err := tokenization.NewFlow(tokenization.Config{
		Request: req,
		Option:  opts.Option,
		Params: tokenization.Params{
			Merchant:          m.merchant(),
			Amount:            m.input.Amount,
			Confirmation:      confirmation,
			SavePaymentMethod: save,
			CustomerID:        m.input.CustomerID,
		},
	}, tokenization.Dependencies{
		Payments:    m.payments,
		Auth:        m.wallet,
		Fingerprint: m.fingerprint,
		Tracker:     m.tracker,
		Output:      flowOutput{output: m.output},
		Logger:      m.logger,
	})
	if err != nil {
		return nil, application.MapError(err)
	}

	m.registry.Add(flow)
	if err := flow.Start(ctx); err != nil {
		m.registry.Remove(flow.ID())
		return nil, err
	}
	m.logger.Info("tokenization started", "flow_id", flow.ID(), "method", flow.Method())
	return flow, nil
}

// Flow looks up a flow this module started.
func (m *Module) Flow(id string) (*tokenization.Flow, bool) {
	return m.registry.Get(id)
}

// StartConfirmationProcess hands the confirmation url (3-D Secure or the
// bank app) to the embedding app.
func (m *Module) StartConfirmationProcess(confirmationURL string, method domain.PaymentMethodType) error {
	if confirmationURL == "" {
		return ErrEmptyConfirmationURL
	}
	m.mu.Lock()
	m.pending[method.Canonical()] = confirmationURL
	m.mu.Unlock()

	m.output.StartConfirmationProcess(confirmationURL, method)
	return nil
}

// ConfirmationFinished reports that the payer came back from confirmation.
func (m *Module) ConfirmationFinished(method domain.PaymentMethodType) error {
	m.mu.Lock()
	_, ok := m.pending[method.Canonical()]
	delete(m.pending, method.Canonical())
	m.mu.Unlock()

	if !ok {
		return ErrNoConfirmationPending
	}
	m.output.DidSuccessfullyConfirm(method)
	return nil
}

// Logout forgets the stored wallet credential.
func (m *Module) Logout(ctx context.Context) error {
	if err := m.wallet.Logout(ctx); err != nil {
		return application.MapError(err)
	}
	m.track(analytics.Event{Name: analytics.EventLogout})
	return nil
}

func (m *Module) track(event analytics.Event) {
	if m.tracker != nil {
		m.tracker.Track(event)
	}
}

// flowOutput adapts flow terminal events to the module contract.
type flowOutput struct {
	output Output
}

func (o flowOutput) DidTokenize(_ string, tokens domain.Tokens, method domain.PaymentMethodType) {
	o.output.DidTokenize(tokens, method)
}

func (o flowOutput) DidFail(_ string, err error) {
	o.output.DidFinish(err)
}

type discardOutput struct{}

func (discardOutput) DidTokenize(domain.Tokens, domain.PaymentMethodType)       {}
func (discardOutput) DidFinish(error)                                           {}
func (discardOutput) StartConfirmationProcess(string, domain.PaymentMethodType) {}
func (discardOutput) DidSuccessfullyConfirm(domain.PaymentMethodType)           {}
