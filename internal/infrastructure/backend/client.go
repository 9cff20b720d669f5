package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/DanielPopoola/checkout-tokenization/internal/application"
	"github.com/DanielPopoola/checkout-tokenization/internal/config"
	"github.com/DanielPopoola/checkout-tokenization/internal/domain"
)

// Client speaks JSON to the payments API and the wallet token issuing API.
type Client struct {
	baseURL    string
	walletURL  string
	userAgent  string
	authType   domain.AuthType
	httpClient *http.Client
}

var (
	_ application.PaymentAPI     = (*Client)(nil)
	_ application.WalletLoginAPI = (*Client)(nil)
)

func NewClient(cfg config.BackendConfig) *Client {
	authType := domain.AuthType(cfg.WalletAuthType)
	if !authType.Valid() {
		authType = domain.AuthTypeSMS
	}
	return &Client{
		baseURL:   cfg.BaseURL,
		walletURL: cfg.WalletURL(),
		userAgent: cfg.UserAgent,
		authType:  authType,
		httpClient: &http.Client{
			Timeout: cfg.ConnTimeout,
		},
	}
}

func (c *Client) FetchPaymentOptions(ctx context.Context, auth application.MerchantAuth, query application.PaymentOptionsQuery) ([]domain.PaymentOption, error) {
	params := url.Values{}
	params.Set("amount", query.Amount.FormattedValue())
	params.Set("currency", string(query.Amount.Currency))
	if query.GatewayID != "" {
		params.Set("gateway_id", query.GatewayID)
	}
	if query.CustomerID != "" {
		params.Set("merchant_customer_id", query.CustomerID)
	}
	if query.SavePaymentMethod != nil {
		params.Set("save_payment_method", strconv.FormatBool(*query.SavePaymentMethod))
	}

	endpoint := fmt.Sprintf("%s/payment_options?%s", c.baseURL, params.Encode())
	resp, err := sendRequest[any, PaymentOptionsResponse](c, ctx, http.MethodGet, endpoint, nil, c.merchantHeaders(auth))
	if err != nil {
		return nil, err
	}

	options := make([]domain.PaymentOption, 0, len(resp.Items))
	for _, item := range resp.Items {
		option, err := item.toDomain()
		if err != nil {
			return nil, fmt.Errorf("payment option %s: %w", item.ID, err)
		}
		options = append(options, option)
	}
	return options, nil
}

func (c *Client) FetchPaymentMethod(ctx context.Context, auth application.MerchantAuth, paymentMethodID string) (*domain.PaymentMethod, error) {
	endpoint := fmt.Sprintf("%s/payment_method?payment_method_id=%s", c.baseURL, url.QueryEscape(paymentMethodID))
	resp, err := sendRequest[any, PaymentMethodResponse](c, ctx, http.MethodGet, endpoint, nil, c.merchantHeaders(auth))
	if err != nil {
		return nil, notFoundAs(err, domain.ErrPaymentMethodNotFound)
	}
	return resp.toDomain(), nil
}

func (c *Client) Tokenize(ctx context.Context, auth application.MerchantAuth, req application.TokensRequest) (*domain.Tokens, error) {
	body := TokensRequest{
		Amount:                toAmountDTO(req.Amount),
		TMXSessionID:          req.TMXSessionID,
		SavePaymentMethod:     req.SavePaymentMethod,
		SavePaymentInstrument: req.SavePaymentInstrument,
		CustomerID:            req.CustomerID,
	}
	if req.Confirmation != nil {
		body.Confirmation = &ConfirmationDTO{
			Type:      string(req.Confirmation.Type),
			ReturnURL: req.Confirmation.ReturnURL,
		}
	}

	switch {
	case req.PaymentMethodID != "":
		body.PaymentMethodID = req.PaymentMethodID
		body.CSC = req.CSC
	case req.Card != nil:
		body.PaymentMethodData = &PaymentMethodData{
			Type: string(domain.MethodBankCard),
			Card: &CardDTO{
				Number:      req.Card.Number,
				ExpiryYear:  req.Card.ExpiryYear,
				ExpiryMonth: req.Card.ExpiryMonth,
				CSC:         req.Card.CSC,
				Cardholder:  req.Card.Cardholder,
			},
		}
	default:
		body.PaymentMethodData = &PaymentMethodData{
			Type:        string(req.Method),
			CardID:      req.LinkedCardID,
			CSC:         req.CSC,
			WalletToken: req.WalletToken,
			PaymentData: req.ApplePayData,
			Phone:       req.PhoneNumber,
		}
	}

	endpoint := fmt.Sprintf("%s/tokens", c.baseURL)
	resp, err := sendRequest[TokensRequest, TokensResponse](c, ctx, http.MethodPost, endpoint, &body, c.merchantHeaders(auth))
	if err != nil {
		return nil, err
	}
	return &domain.Tokens{PaymentToken: resp.PaymentToken}, nil
}

// RequestAuthorization starts a token issue. When the wallet asks for a
// second factor the first code is requested right away and the session is
// returned as a challenge.
func (c *Client) RequestAuthorization(ctx context.Context, auth application.MerchantAuth, req application.WalletLoginRequest) (*domain.LoginResponse, error) {
	body := TokenIssueInitRequest{
		TMXSessionID:      req.TMXSessionID,
		PaymentUsageLimit: string(req.UsageLimit),
	}
	if req.SingleAmountMax != nil {
		amount := toAmountDTO(*req.SingleAmountMax)
		body.SingleAmountMax = &amount
	}

	headers := c.walletHeaders(auth, req.MoneyCenterToken)
	endpoint := fmt.Sprintf("%s/checkout/token-issue-init", c.walletURL)
	initResp, err := sendRequest[TokenIssueInitRequest, TokenIssueInitResponse](c, ctx, http.MethodPost, endpoint, &body, headers)
	if err != nil {
		return nil, walletError(err)
	}

	if !initResp.AuthRequired {
		return c.executeTokenIssue(ctx, headers, initResp.ProcessID)
	}

	session, err := c.generateSession(ctx, headers, initResp.AuthContextID, c.authType)
	if err != nil {
		return nil, err
	}
	session.ProcessID = initResp.ProcessID
	return domain.ChallengeResponse(*session), nil
}

func (c *Client) StartNewSession(ctx context.Context, auth application.MerchantAuth, req application.AuthSessionRequest) (*domain.AuthSession, error) {
	authType := req.AuthType
	if !authType.Valid() {
		authType = c.authType
	}
	return c.generateSession(ctx, c.walletHeaders(auth, req.MoneyCenterToken), req.ContextID, authType)
}

// CheckAnswer verifies the code and, once accepted, completes the token issue.
func (c *Client) CheckAnswer(ctx context.Context, auth application.MerchantAuth, req application.AuthAnswerRequest) (*domain.LoginResponse, error) {
	headers := c.walletHeaders(auth, req.MoneyCenterToken)
	body := AuthCheckRequest{
		AuthContextID: req.ContextID,
		AuthType:      string(req.AuthType),
		Answer:        req.Answer,
	}

	endpoint := fmt.Sprintf("%s/checkout/auth-check", c.walletURL)
	if _, err := sendRequest[AuthCheckRequest, AuthCheckResponse](c, ctx, http.MethodPost, endpoint, &body, headers); err != nil {
		return nil, walletError(err)
	}
	return c.executeTokenIssue(ctx, headers, req.ProcessID)
}

func (c *Client) generateSession(ctx context.Context, headers http.Header, contextID string, authType domain.AuthType) (*domain.AuthSession, error) {
	body := AuthSessionGenerateRequest{AuthContextID: contextID, AuthType: string(authType)}
	endpoint := fmt.Sprintf("%s/checkout/auth-session-generate", c.walletURL)
	resp, err := sendRequest[AuthSessionGenerateRequest, AuthSessionGenerateResponse](c, ctx, http.MethodPost, endpoint, &body, headers)
	if err != nil {
		return nil, walletError(err)
	}

	sessionType := domain.AuthType(resp.AuthType)
	if !sessionType.Valid() {
		sessionType = authType
	}
	return &domain.AuthSession{
		ContextID:           contextID,
		AuthType:            sessionType,
		CodeLength:          resp.CodeLength,
		NextSessionTimeLeft: time.Duration(resp.NextSessionTimeLeft) * time.Second,
	}, nil
}

func (c *Client) executeTokenIssue(ctx context.Context, headers http.Header, processID string) (*domain.LoginResponse, error) {
	body := TokenIssueExecuteRequest{ProcessID: processID}
	endpoint := fmt.Sprintf("%s/checkout/token-issue-execute", c.walletURL)
	resp, err := sendRequest[TokenIssueExecuteRequest, TokenIssueExecuteResponse](c, ctx, http.MethodPost, endpoint, &body, headers)
	if err != nil {
		return nil, walletError(err)
	}
	if resp.AccessToken == "" {
		return nil, errors.New("token issue returned no access token")
	}
	return domain.AuthorizedResponse(resp.AccessToken), nil
}

func (c *Client) merchantHeaders(auth application.MerchantAuth) http.Header {
	h := http.Header{}
	h.Set("Authorization", "Bearer "+auth.ClientApplicationKey)
	return h
}

func (c *Client) walletHeaders(auth application.MerchantAuth, moneyCenterToken string) http.Header {
	h := c.merchantHeaders(auth)
	h.Set("Passport-Authorization", "Bearer "+moneyCenterToken)
	return h
}

func sendRequest[Req any, Resp any](c *Client, ctx context.Context, method, url string, reqBody *Req, headers http.Header) (*Resp, error) {
	var bodyReader io.Reader
	if reqBody != nil {
		jsonData, err := json.Marshal(reqBody)
		if err != nil {
			return nil, fmt.Errorf("error marshalling json: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	for key, values := range headers {
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}
	httpReq.Header.Set("Accept", "application/json")
	if reqBody != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		var errResp ErrorResponse
		if err := json.Unmarshal(body, &errResp); err != nil {
			return nil, &APIError{
				Code:       http.StatusText(resp.StatusCode),
				Message:    string(body),
				StatusCode: resp.StatusCode,
			}
		}
		return nil, &APIError{
			Code:       errResp.Err,
			Message:    errResp.Message,
			StatusCode: resp.StatusCode,
		}
	}

	var out Resp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("error decoding json response: %w", err)
	}
	return &out, nil
}
