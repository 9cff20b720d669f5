package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/DanielPopoola/checkout-tokenization/internal/application"
	"github.com/DanielPopoola/checkout-tokenization/internal/domain"
)

const (
	keyMoneyCenterToken = "wallet.money_center_token"
	keyWalletToken      = "wallet.token"
	keyWalletReusable   = "wallet.token_reusable"
	keyWalletName       = "wallet.display_name"
)

// AuthorizationService owns the stored wallet credential. Credential writes
// are single atomic batches under the write lock so readers never observe a
// token without its reusable flag.
type AuthorizationService struct {
	settings Settings
	api      application.WalletLoginAPI
	logger   *slog.Logger

	mu sync.RWMutex
}

func NewAuthorizationService(store application.KeyValueStore, api application.WalletLoginAPI, logger *slog.Logger) *AuthorizationService {
	return &AuthorizationService{
		settings: NewSettings(store),
		api:      api,
		logger:   logger,
	}
}

// LoginRequest starts a wallet token issue.
type LoginRequest struct {
	MerchantAuth  application.MerchantAuth
	Amount        domain.Amount
	ReusableToken bool
	TMXSessionID  string
}

// HasReusableToken reports whether a stored reusable wallet token exists.
func (s *AuthorizationService) HasReusableToken(ctx context.Context) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	token, ok, err := s.settings.String(ctx, keyWalletToken)
	if err != nil {
		s.logger.Warn("failed to read wallet token", "error", err)
		return false
	}
	if !ok || token == "" {
		return false
	}
	reusable, err := s.settings.Bool(ctx, keyWalletReusable)
	if err != nil {
		s.logger.Warn("failed to read wallet token flag", "error", err)
		return false
	}
	return reusable
}

// GetToken returns the stored wallet token or ErrMissingCredential.
func (s *AuthorizationService) GetToken(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	token, ok, err := s.settings.String(ctx, keyWalletToken)
	if err != nil {
		return "", err
	}
	if !ok || token == "" {
		return "", domain.ErrMissingCredential
	}
	return token, nil
}

func (s *AuthorizationService) GetDisplayName(ctx context.Context) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	name, ok, err := s.settings.String(ctx, keyWalletName)
	if err != nil {
		s.logger.Warn("failed to read wallet display name", "error", err)
		return "", false
	}
	return name, ok
}

func (s *AuthorizationService) SetDisplayName(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	value := StringValue(name)
	if name == "" {
		value = nil
	}
	return s.settings.Set(ctx, map[string]*string{keyWalletName: value})
}

// SetMoneyCenterToken stores the passport token obtained by the host app.
func (s *AuthorizationService) SetMoneyCenterToken(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	value := StringValue(token)
	if token == "" {
		value = nil
	}
	return s.settings.Set(ctx, map[string]*string{keyMoneyCenterToken: value})
}

// Logout forgets every wallet credential.
func (s *AuthorizationService) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.settings.Set(ctx, map[string]*string{
		keyMoneyCenterToken: nil,
		keyWalletToken:      nil,
		keyWalletReusable:   nil,
		keyWalletName:       nil,
	})
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	s.logger.Info("wallet credentials cleared")
	return nil
}

// Login obtains a wallet token. A stored reusable token short-circuits the
// backend call; otherwise the response may carry an auth challenge.
func (s *AuthorizationService) Login(ctx context.Context, req LoginRequest) (*domain.LoginResponse, error) {
	if s.HasReusableToken(ctx) {
		token, err := s.GetToken(ctx)
		if err == nil {
			s.logger.Debug("reusable wallet token found, skipping login")
			return domain.AuthorizedResponse(token), nil
		}
	}

	if err := req.Amount.Validate(); err != nil {
		return nil, err
	}

	moneyCenterToken, err := s.moneyCenterToken(ctx)
	if err != nil {
		return nil, err
	}

	usageLimit := domain.UsageLimitSingle
	var amountMax *domain.Amount
	if req.ReusableToken {
		usageLimit = domain.UsageLimitMultiple
	} else {
		amount := req.Amount
		amountMax = &amount
	}

	if err := s.resetWalletToken(ctx, req.ReusableToken); err != nil {
		return nil, err
	}

	resp, err := s.api.RequestAuthorization(ctx, req.MerchantAuth, application.WalletLoginRequest{
		MoneyCenterToken: moneyCenterToken,
		TMXSessionID:     req.TMXSessionID,
		UsageLimit:       usageLimit,
		SingleAmountMax:  amountMax,
	})
	if err != nil {
		return nil, err
	}

	return s.handleLoginResponse(ctx, resp)
}

// StartNewAuthSession asks the backend to send a new challenge code.
func (s *AuthorizationService) StartNewAuthSession(
	ctx context.Context,
	auth application.MerchantAuth,
	contextID string,
	authType domain.AuthType,
) (*domain.AuthSession, error) {
	moneyCenterToken, err := s.moneyCenterToken(ctx)
	if err != nil {
		return nil, err
	}

	session, err := s.api.StartNewSession(ctx, auth, application.AuthSessionRequest{
		MoneyCenterToken: moneyCenterToken,
		ContextID:        contextID,
		AuthType:         authType,
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

// CheckAnswer submits the challenge answer. An accepted answer stores the
// issued token.
func (s *AuthorizationService) CheckAnswer(
	ctx context.Context,
	auth application.MerchantAuth,
	contextID string,
	authType domain.AuthType,
	answer, processID string,
) (*domain.LoginResponse, error) {
	if answer == "" {
		return nil, domain.NewMissingRequiredFieldError("answer")
	}

	moneyCenterToken, err := s.moneyCenterToken(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := s.api.CheckAnswer(ctx, auth, application.AuthAnswerRequest{
		MoneyCenterToken: moneyCenterToken,
		ContextID:        contextID,
		AuthType:         authType,
		Answer:           answer,
		ProcessID:        processID,
	})
	if err != nil {
		return nil, err
	}

	return s.handleLoginResponse(ctx, resp)
}

func (s *AuthorizationService) handleLoginResponse(ctx context.Context, resp *domain.LoginResponse) (*domain.LoginResponse, error) {
	if resp == nil || (resp.Authorized == nil && resp.Challenge == nil) {
		return nil, errors.New("wallet login returned an empty response")
	}
	if !resp.IsAuthorized() {
		return resp, nil
	}
	if err := s.saveWalletToken(ctx, resp.Authorized.AccessToken); err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *AuthorizationService) moneyCenterToken(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	token, ok, err := s.settings.String(ctx, keyMoneyCenterToken)
	if err != nil {
		return "", err
	}
	if !ok || token == "" {
		return "", domain.ErrMissingCredential
	}
	return token, nil
}

func (s *AuthorizationService) resetWalletToken(ctx context.Context, reusable bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.settings.Set(ctx, map[string]*string{
		keyWalletToken:    nil,
		keyWalletReusable: BoolValue(reusable),
	})
}

func (s *AuthorizationService) saveWalletToken(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	reusable, err := s.settings.Bool(ctx, keyWalletReusable)
	if err != nil {
		return err
	}
	err = s.settings.Set(ctx, map[string]*string{
		keyWalletToken:    StringValue(token),
		keyWalletReusable: BoolValue(reusable),
	})
	if err != nil {
		return fmt.Errorf("save wallet token: %w", err)
	}
	s.logger.Info("wallet token stored", "reusable", reusable)
	return nil
}
