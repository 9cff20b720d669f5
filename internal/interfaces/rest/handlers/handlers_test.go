package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DanielPopoola/checkout-tokenization/internal/application"
	"github.com/DanielPopoola/checkout-tokenization/internal/application/mocks"
	"github.com/DanielPopoola/checkout-tokenization/internal/application/services"
	"github.com/DanielPopoola/checkout-tokenization/internal/checkout"
	"github.com/DanielPopoola/checkout-tokenization/internal/domain"
	"github.com/DanielPopoola/checkout-tokenization/internal/infrastructure/persistence/memory"
	"github.com/DanielPopoola/checkout-tokenization/internal/interfaces/rest"
	"github.com/DanielPopoola/checkout-tokenization/internal/interfaces/rest/handlers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type flowEnvelope struct {
	Success bool      `json:"success"`
	Data    rest.Flow `json:"data"`
}

type optionsEnvelope struct {
	Success bool                 `json:"success"`
	Data    []rest.PaymentOption `json:"data"`
}

type HandlersTestSuite struct {
	suite.Suite
	paymentAPI  *mocks.MockPaymentAPI
	walletAPI   *mocks.MockWalletLoginAPI
	fingerprint *mocks.MockFingerprintProvider
	store       *memory.KVStore
	server      *httptest.Server
}

func TestHandlersSuite(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}

func (suite *HandlersTestSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	suite.paymentAPI = mocks.NewMockPaymentAPI(suite.T())
	suite.walletAPI = mocks.NewMockWalletLoginAPI(suite.T())
	suite.fingerprint = mocks.NewMockFingerprintProvider(suite.T())
	suite.store = memory.NewKVStore()

	wallet := services.NewAuthorizationService(suite.store, suite.walletAPI, logger)
	module, err := checkout.NewModule(checkout.ModuleInput{
		ClientApplicationKey: "live_key",
		Amount:               domain.MustAmount("100.00", domain.CurrencyRUB),
		AllowedTypes:         []domain.PaymentMethodType{domain.MethodBankCard, domain.MethodYooMoney},
		SavePaymentMethod:    domain.SavePaymentMethodUserSelects,
	}, checkout.Dependencies{
		Payments:    services.NewPaymentService(suite.paymentAPI, services.PlatformCapabilities{}, logger),
		Wallet:      wallet,
		Fingerprint: suite.fingerprint,
		Logger:      logger,
	})
	suite.Require().NoError(err)

	mux := http.NewServeMux()
	handlers.NewHandlers(module, logger).Register(mux)
	suite.server = httptest.NewServer(mux)
	suite.T().Cleanup(suite.server.Close)
}

func (suite *HandlersTestSuite) do(method, path string, body any) *http.Response {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(context.Background(), method, suite.server.URL+path, reader)
	suite.Require().NoError(err)
	resp, err := http.DefaultClient.Do(req)
	suite.Require().NoError(err)
	suite.T().Cleanup(func() { resp.Body.Close() })
	return resp
}

func (suite *HandlersTestSuite) decodeFlow(resp *http.Response) rest.Flow {
	var env flowEnvelope
	suite.Require().NoError(json.NewDecoder(resp.Body).Decode(&env))
	suite.Require().True(env.Success)
	return env.Data
}

func (suite *HandlersTestSuite) decodeError(resp *http.Response) rest.ErrorDetail {
	var env rest.ErrorResponse
	suite.Require().NoError(json.NewDecoder(resp.Body).Decode(&env))
	suite.Require().False(env.Success)
	return env.Error
}

// waitFlow polls until the flow reaches state.
func (suite *HandlersTestSuite) waitFlow(id, state string) rest.Flow {
	var last rest.Flow
	suite.Require().Eventually(func() bool {
		last = suite.decodeFlow(suite.do(http.MethodGet, "/v1/flows/"+id, nil))
		return last.State == state
	}, 2*time.Second, 5*time.Millisecond, "flow never reached %s", state)
	return last
}

func bankCardBody() map[string]any {
	return map[string]any{
		"type": "bank_card",
		"bank_card": map[string]any{
			"card": map[string]any{
				"number":       "4111111111111111",
				"expiry_year":  "2030",
				"expiry_month": "12",
				"csc":          "123",
			},
		},
	}
}

func (suite *HandlersTestSuite) TestListPaymentOptions() {
	t := suite.T()
	suite.paymentAPI.EXPECT().
		FetchPaymentOptions(mock.Anything, mock.Anything, mock.Anything).
		Return([]domain.PaymentOption{
			{ID: "1", Type: domain.MethodBankCard, Charge: domain.MustAmount("100.00", domain.CurrencyRUB), SavePaymentMethodAllowed: true},
			{ID: "2", Type: domain.MethodApplePay, Charge: domain.MustAmount("100.00", domain.CurrencyRUB)},
		}, nil).
		Once()

	resp := suite.do(http.MethodGet, "/v1/payment-options", nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var env optionsEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	require.Len(t, env.Data, 1)
	assert.Equal(t, "bank_card", env.Data[0].Type)
	assert.Equal(t, rest.Amount{Value: "100.00", Currency: "RUB"}, env.Data[0].Charge)
}

func (suite *HandlersTestSuite) TestCreateFlow_BankCardSucceeds() {
	t := suite.T()
	suite.fingerprint.EXPECT().Profile(mock.Anything).Return("sid-1", nil).Once()
	suite.paymentAPI.EXPECT().
		Tokenize(mock.Anything, application.MerchantAuth{ClientApplicationKey: "live_key"}, mock.Anything).
		Return(&domain.Tokens{PaymentToken: "tok-abc"}, nil).
		Once()

	resp := suite.do(http.MethodPost, "/v1/flows", bankCardBody())

	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	created := suite.decodeFlow(resp)
	assert.Equal(t, "/v1/flows/"+created.ID, resp.Header.Get("Location"))

	done := suite.waitFlow(created.ID, "succeeded")
	assert.Equal(t, "tok-abc", done.PaymentToken)
	assert.Nil(t, done.Error)
}

func (suite *HandlersTestSuite) TestCreateFlow_InvalidCardFailsFlow() {
	t := suite.T()
	body := bankCardBody()
	body["bank_card"].(map[string]any)["card"].(map[string]any)["number"] = "4111111111111112"

	resp := suite.do(http.MethodPost, "/v1/flows", body)
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	failed := suite.waitFlow(suite.decodeFlow(resp).ID, "failed")
	require.NotNil(t, failed.Error)
	assert.Equal(t, string(application.KindValidation), failed.Error.Kind)
}

func (suite *HandlersTestSuite) TestCreateFlow_BadRequests() {
	t := suite.T()

	cases := []struct {
		name   string
		body   any
		status int
		code   string
	}{
		{"missing type", map[string]any{}, http.StatusBadRequest, domain.ErrCodeMissingRequiredField},
		{"unknown type", map[string]any{"type": "cash"}, http.StatusBadRequest, "BAD_REQUEST"},
		{"variant body absent", map[string]any{"type": "sberbank"}, http.StatusBadRequest, domain.ErrCodeMissingRequiredField},
		{"unknown field", map[string]any{"type": "bank_card", "pan": "4111"}, http.StatusBadRequest, "BAD_REQUEST"},
		{"unknown option", map[string]any{"type": "yoo_money", "option_id": "nope"}, http.StatusNotFound, "NOT_FOUND"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := suite.do(http.MethodPost, "/v1/flows", tc.body)
			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, tc.code, suite.decodeError(resp).Code)
		})
	}
}

func (suite *HandlersTestSuite) TestWalletChallengeRoundTrip() {
	t := suite.T()
	ctx := context.Background()
	wallet := services.NewAuthorizationService(suite.store, suite.walletAPI, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, wallet.SetMoneyCenterToken(ctx, "passport"))

	challenge := domain.AuthSession{ContextID: "ctx-1", AuthType: domain.AuthTypeSMS, ProcessID: "proc-1", CodeLength: 4, NextSessionTimeLeft: 30 * time.Second}
	suite.fingerprint.EXPECT().Profile(mock.Anything).Return("sid-1", nil).Once()
	suite.walletAPI.EXPECT().
		RequestAuthorization(mock.Anything, mock.Anything, mock.Anything).
		Return(domain.ChallengeResponse(challenge), nil).
		Once()
	suite.walletAPI.EXPECT().
		CheckAnswer(mock.Anything, mock.Anything, mock.MatchedBy(func(req application.AuthAnswerRequest) bool { return req.Answer == "0000" })).
		Return(nil, domain.NewAuthError(domain.AuthInvalidAnswer)).
		Once()
	suite.walletAPI.EXPECT().
		CheckAnswer(mock.Anything, mock.Anything, mock.MatchedBy(func(req application.AuthAnswerRequest) bool { return req.Answer == "1234" })).
		Return(domain.AuthorizedResponse("wallet-token"), nil).
		Once()
	suite.paymentAPI.EXPECT().
		Tokenize(mock.Anything, mock.Anything, mock.MatchedBy(func(req application.TokensRequest) bool {
			return req.WalletToken == "wallet-token"
		})).
		Return(&domain.Tokens{PaymentToken: "tok-wallet"}, nil).
		Once()

	resp := suite.do(http.MethodPost, "/v1/flows", map[string]any{"type": "yoo_money"})
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	id := suite.decodeFlow(resp).ID

	awaiting := suite.waitFlow(id, "awaiting_auth")
	require.NotNil(t, awaiting.Challenge)
	assert.Equal(t, 4, awaiting.Challenge.CodeLength)
	assert.Equal(t, 30, awaiting.Challenge.NextSessionTimeLeft)

	resp = suite.do(http.MethodPost, "/v1/flows/"+id+"/answer", rest.AnswerRequest{Answer: "0000"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, string(domain.AuthInvalidAnswer), suite.decodeError(resp).Code)

	resp = suite.do(http.MethodPost, "/v1/flows/"+id+"/answer", rest.AnswerRequest{Answer: "1234"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	done := suite.waitFlow(id, "succeeded")
	assert.Equal(t, "tok-wallet", done.PaymentToken)

	resp = suite.do(http.MethodPost, "/v1/flows/"+id+"/answer", rest.AnswerRequest{Answer: "1234"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func (suite *HandlersTestSuite) TestAbandonFlow() {
	t := suite.T()
	release := make(chan struct{})
	t.Cleanup(func() { close(release) })
	suite.fingerprint.EXPECT().
		Profile(mock.Anything).
		RunAndReturn(func(ctx context.Context) (string, error) {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-release:
				return "sid-1", nil
			}
		}).
		Maybe()

	resp := suite.do(http.MethodPost, "/v1/flows", bankCardBody())
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	id := suite.decodeFlow(resp).ID

	resp = suite.do(http.MethodDelete, "/v1/flows/"+id, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	abandoned := suite.decodeFlow(resp)
	assert.Equal(t, "failed", abandoned.State)
	require.NotNil(t, abandoned.Error)
	assert.Equal(t, string(application.KindInterrupted), abandoned.Error.Kind)
}

func (suite *HandlersTestSuite) TestUnknownFlow() {
	resp := suite.do(http.MethodGet, "/v1/flows/does-not-exist", nil)

	suite.Equal(http.StatusNotFound, resp.StatusCode)
	suite.Equal("NOT_FOUND", suite.decodeError(resp).Code)
}

func (suite *HandlersTestSuite) TestCreateFlow_ChargesPickedOption() {
	t := suite.T()
	suite.paymentAPI.EXPECT().
		FetchPaymentOptions(mock.Anything, mock.Anything, mock.Anything).
		Return([]domain.PaymentOption{
			{ID: "card", Type: domain.MethodBankCard, Charge: domain.MustAmount("105.00", domain.CurrencyRUB)},
		}, nil).
		Once()
	suite.fingerprint.EXPECT().Profile(mock.Anything).Return("sid-1", nil).Once()

	var sent application.TokensRequest
	suite.paymentAPI.EXPECT().
		Tokenize(mock.Anything, mock.Anything, mock.Anything).
		Run(func(_ context.Context, _ application.MerchantAuth, req application.TokensRequest) { sent = req }).
		Return(&domain.Tokens{PaymentToken: "tok-fee"}, nil).
		Once()

	require.Equal(t, http.StatusOK, suite.do(http.MethodGet, "/v1/payment-options", nil).StatusCode)

	body := bankCardBody()
	body["option_id"] = "card"
	resp := suite.do(http.MethodPost, "/v1/flows", body)
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	suite.waitFlow(suite.decodeFlow(resp).ID, "succeeded")
	assert.Equal(t, "105.00 RUB", sent.Amount.String())
}

func (suite *HandlersTestSuite) TestCreateFlow_Sberpay() {
	t := suite.T()
	suite.fingerprint.EXPECT().Profile(mock.Anything).Return("sid-1", nil).Once()

	var sent application.TokensRequest
	suite.paymentAPI.EXPECT().
		Tokenize(mock.Anything, mock.Anything, mock.Anything).
		Run(func(_ context.Context, _ application.MerchantAuth, req application.TokensRequest) { sent = req }).
		Return(&domain.Tokens{PaymentToken: "tok-sberpay"}, nil).
		Once()

	resp := suite.do(http.MethodPost, "/v1/flows", map[string]any{
		"type":    "sberpay",
		"sberpay": map[string]any{"return_url": "shopapp://invoicing/sberpay"},
	})
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	created := suite.decodeFlow(resp)
	assert.Equal(t, "sberbank", created.Method)

	done := suite.waitFlow(created.ID, "succeeded")
	assert.Equal(t, "tok-sberpay", done.PaymentToken)
	assert.Equal(t, domain.MethodSberbank, sent.Method)
	assert.Equal(t, &domain.Confirmation{Type: domain.ConfirmationMobile, ReturnURL: "shopapp://invoicing/sberpay"}, sent.Confirmation)
}

func (suite *HandlersTestSuite) TestConfirmationRoundTrip() {
	t := suite.T()

	resp := suite.do(http.MethodPost, "/v1/confirmations", rest.ConfirmationRequest{
		URL:               "https://3ds.example.com/acs",
		PaymentMethodType: "bank_card",
	})
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	resp = suite.do(http.MethodPost, "/v1/confirmations/bank_card/finish", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var env struct {
		Success bool              `json:"success"`
		Data    rest.Confirmation `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	assert.Equal(t, rest.Confirmation{PaymentMethodType: "bank_card", Status: rest.ConfirmationConfirmed}, env.Data)

	resp = suite.do(http.MethodPost, "/v1/confirmations/bank_card/finish", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "NO_CONFIRMATION_PENDING", suite.decodeError(resp).Code)
}

func (suite *HandlersTestSuite) TestConfirmationBadRequests() {
	t := suite.T()

	cases := []struct {
		name   string
		path   string
		body   any
		status int
		code   string
	}{
		{"empty url", "/v1/confirmations", rest.ConfirmationRequest{PaymentMethodType: "sberbank"}, http.StatusBadRequest, "EMPTY_CONFIRMATION_URL"},
		{"missing method", "/v1/confirmations", rest.ConfirmationRequest{URL: "https://3ds.example.com"}, http.StatusBadRequest, domain.ErrCodeMissingRequiredField},
		{"unknown method", "/v1/confirmations", rest.ConfirmationRequest{URL: "https://3ds.example.com", PaymentMethodType: "cash"}, http.StatusBadRequest, domain.ErrCodeInvalidField},
		{"unknown method on finish", "/v1/confirmations/cash/finish", nil, http.StatusBadRequest, domain.ErrCodeInvalidField},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := suite.do(http.MethodPost, tc.path, tc.body)
			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, tc.code, suite.decodeError(resp).Code)
		})
	}
}

func (suite *HandlersTestSuite) TestLogout() {
	t := suite.T()
	ctx := context.Background()
	wallet := services.NewAuthorizationService(suite.store, suite.walletAPI, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, wallet.SetMoneyCenterToken(ctx, "passport"))

	resp := suite.do(http.MethodPost, "/v1/logout", nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	assert.Empty(t, suite.store.Snapshot())
}
