package middleware_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DanielPopoola/checkout-tokenization/internal/application"
	"github.com/DanielPopoola/checkout-tokenization/internal/interfaces/rest"
	"github.com/DanielPopoola/checkout-tokenization/internal/interfaces/rest/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRecovery(t *testing.T) {
	t.Run("panic becomes an internal error", func(t *testing.T) {
		var logs bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&logs, nil))
		handler := middleware.Recovery(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic("card number 4111111111111111")
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/flows", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		var env rest.ErrorResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
		assert.Equal(t, string(application.KindInternal), env.Error.Code)
		assert.NotContains(t, env.Error.Message, "4111")
		assert.Contains(t, logs.String(), "route=\"POST /v1/flows\"")
	})

	t.Run("committed response is left alone", func(t *testing.T) {
		handler := middleware.Recovery(discard())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusAccepted)
			panic("late")
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/flows/1", nil))

		assert.Equal(t, http.StatusAccepted, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("aborted handler keeps panicking", func(t *testing.T) {
		handler := middleware.Recovery(discard())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic(http.ErrAbortHandler)
		}))

		assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/flows", nil))
		})
	})
}

func TestTimeout(t *testing.T) {
	slow := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
			w.WriteHeader(http.StatusOK)
		case <-r.Context().Done():
		}
	})
	handler := middleware.Timeout(10*time.Millisecond, "/metrics")(slow)

	t.Run("bounded path times out", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/flows", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), "TIMEOUT")
	})

	t.Run("skipped path is served directly", func(t *testing.T) {
		fast := middleware.Timeout(time.Nanosecond, "/metrics")(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}))
		rec := httptest.NewRecorder()
		fast.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusTeapot, rec.Code)
	})
}

func TestLogging_PassesStatusThrough(t *testing.T) {
	handler := middleware.Logging(discard())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/flows", nil))

	assert.Equal(t, http.StatusCreated, rec.Code)
}
