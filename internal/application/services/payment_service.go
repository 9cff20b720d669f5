package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/DanielPopoola/checkout-tokenization/internal/application"
	"github.com/DanielPopoola/checkout-tokenization/internal/domain"
)

// PaymentService is a stateless facade over the payments backend. It
// validates locally, calls the backend once and never retries.
type PaymentService struct {
	api          application.PaymentAPI
	capabilities PlatformCapabilities
	logger       *slog.Logger
}

func NewPaymentService(api application.PaymentAPI, capabilities PlatformCapabilities, logger *slog.Logger) *PaymentService {
	return &PaymentService{
		api:          api,
		capabilities: capabilities,
		logger:       logger,
	}
}

// TokenizeParams are the fields every tokenize call shares.
type TokenizeParams struct {
	Amount            domain.Amount
	TMXSessionID      string
	Confirmation      *domain.Confirmation
	SavePaymentMethod bool
	CustomerID        string
}

func (p TokenizeParams) validate() error {
	if err := p.Amount.Validate(); err != nil {
		return err
	}
	if p.TMXSessionID == "" {
		return domain.NewMissingRequiredFieldError("tmx_session_id")
	}
	return nil
}

func (p TokenizeParams) request(method domain.PaymentMethodType) application.TokensRequest {
	return application.TokensRequest{
		Method:            method,
		Amount:            p.Amount,
		TMXSessionID:      p.TMXSessionID,
		SavePaymentMethod: p.SavePaymentMethod,
		Confirmation:      p.Confirmation,
		CustomerID:        p.CustomerID,
	}
}

// FetchPaymentOptions lists the options for the amount and applies the
// method filter. An empty result is ErrEmptyPaymentOptions.
func (s *PaymentService) FetchPaymentOptions(
	ctx context.Context,
	auth application.MerchantAuth,
	query application.PaymentOptionsQuery,
	allowed []domain.PaymentMethodType,
) ([]domain.PaymentOption, error) {
	if err := query.Amount.Validate(); err != nil {
		return nil, err
	}

	options, err := s.api.FetchPaymentOptions(ctx, auth, query)
	if err != nil {
		return nil, err
	}

	filtered := FilterPaymentOptions(options, allowed, s.capabilities)
	s.logger.Debug("payment options fetched",
		"received", len(options),
		"presented", len(filtered),
	)
	if len(filtered) == 0 {
		return nil, domain.ErrEmptyPaymentOptions
	}
	return filtered, nil
}

// FetchPaymentMethod resolves a saved instrument for repeat payments.
func (s *PaymentService) FetchPaymentMethod(ctx context.Context, auth application.MerchantAuth, paymentMethodID string) (*domain.PaymentMethod, error) {
	if paymentMethodID == "" {
		return nil, domain.NewMissingRequiredFieldError("payment_method_id")
	}
	method, err := s.api.FetchPaymentMethod(ctx, auth, paymentMethodID)
	if err != nil {
		return nil, err
	}
	if method == nil {
		return nil, domain.ErrPaymentMethodNotFound
	}
	return method, nil
}

func (s *PaymentService) TokenizeBankCard(
	ctx context.Context,
	auth application.MerchantAuth,
	card domain.BankCard,
	savePaymentInstrument *bool,
	params TokenizeParams,
) (*domain.Tokens, error) {
	bankCardReq := domain.BankCardRequest{Card: card, SavePaymentInstrument: savePaymentInstrument}
	if err := bankCardReq.Validate(); err != nil {
		return nil, err
	}
	if err := params.validate(); err != nil {
		return nil, err
	}

	normalized := card.Normalized()
	req := params.request(domain.MethodBankCard)
	req.Card = &normalized
	req.SavePaymentInstrument = savePaymentInstrument
	return s.tokenize(ctx, auth, req)
}

func (s *PaymentService) TokenizeCardInstrument(
	ctx context.Context,
	auth application.MerchantAuth,
	instrumentID, csc string,
	params TokenizeParams,
) (*domain.Tokens, error) {
	if err := (domain.CardInstrumentRequest{PaymentMethodID: instrumentID, CSC: csc}).Validate(); err != nil {
		return nil, err
	}
	if err := params.validate(); err != nil {
		return nil, err
	}

	req := params.request(domain.MethodBankCard)
	req.PaymentMethodID = instrumentID
	req.CSC = csc
	return s.tokenize(ctx, auth, req)
}

func (s *PaymentService) TokenizeWallet(
	ctx context.Context,
	auth application.MerchantAuth,
	walletToken string,
	params TokenizeParams,
) (*domain.Tokens, error) {
	if walletToken == "" {
		return nil, domain.ErrMissingCredential
	}
	if err := params.validate(); err != nil {
		return nil, err
	}

	req := params.request(domain.MethodYooMoney)
	req.WalletToken = walletToken
	return s.tokenize(ctx, auth, req)
}

func (s *PaymentService) TokenizeLinkedBankCard(
	ctx context.Context,
	auth application.MerchantAuth,
	walletToken, cardID, csc string,
	params TokenizeParams,
) (*domain.Tokens, error) {
	if walletToken == "" {
		return nil, domain.ErrMissingCredential
	}
	if err := (domain.LinkedBankCardRequest{CardID: cardID, CSC: csc}).Validate(); err != nil {
		return nil, err
	}
	if err := params.validate(); err != nil {
		return nil, err
	}

	req := params.request(domain.MethodLinkedBankCard)
	req.WalletToken = walletToken
	req.LinkedCardID = cardID
	req.CSC = csc
	return s.tokenize(ctx, auth, req)
}

func (s *PaymentService) TokenizeApplePay(
	ctx context.Context,
	auth application.MerchantAuth,
	paymentData string,
	params TokenizeParams,
) (*domain.Tokens, error) {
	if err := (domain.ApplePayRequest{PaymentData: paymentData}).Validate(); err != nil {
		return nil, err
	}
	if err := params.validate(); err != nil {
		return nil, err
	}

	req := params.request(domain.MethodApplePay)
	req.ApplePayData = paymentData
	// Apple Pay confirms on the device.
	req.Confirmation = nil
	return s.tokenize(ctx, auth, req)
}

func (s *PaymentService) TokenizeSberbank(
	ctx context.Context,
	auth application.MerchantAuth,
	phoneNumber string,
	params TokenizeParams,
) (*domain.Tokens, error) {
	if err := (domain.SberbankRequest{PhoneNumber: phoneNumber}).Validate(); err != nil {
		return nil, err
	}
	if err := params.validate(); err != nil {
		return nil, err
	}

	req := params.request(domain.MethodSberbank)
	req.PhoneNumber = domain.NormalizePhone(phoneNumber)
	// The payer confirms by SMS outside the checkout; any merchant redirect
	// is dropped.
	req.Confirmation = &domain.Confirmation{Type: domain.ConfirmationExternal}
	return s.tokenize(ctx, auth, req)
}

// TokenizeSberpay tokenizes a sberbank payment confirmed in the bank's own
// app, which sends the payer back to returnURL.
func (s *PaymentService) TokenizeSberpay(
	ctx context.Context,
	auth application.MerchantAuth,
	returnURL string,
	params TokenizeParams,
) (*domain.Tokens, error) {
	if err := (domain.SberpayRequest{ReturnURL: returnURL}).Validate(); err != nil {
		return nil, err
	}
	if err := params.validate(); err != nil {
		return nil, err
	}

	req := params.request(domain.MethodSberbank)
	req.Confirmation = &domain.Confirmation{Type: domain.ConfirmationMobile, ReturnURL: returnURL}
	return s.tokenize(ctx, auth, req)
}

func (s *PaymentService) tokenize(ctx context.Context, auth application.MerchantAuth, req application.TokensRequest) (*domain.Tokens, error) {
	tokens, err := s.api.Tokenize(ctx, auth, req)
	if err != nil {
		s.logger.Warn("tokenization failed",
			"method", req.Method,
			"error", err,
		)
		return nil, err
	}
	if tokens == nil || tokens.PaymentToken == "" {
		return nil, errors.New("backend returned an empty payment token")
	}

	s.logger.Info("payment method tokenized", "method", req.Method)
	return tokens, nil
}
