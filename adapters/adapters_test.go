package adapters_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/finmcp/adapters"
	"github.com/effective-security/finmcp/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, h http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(h)
	t.Cleanup(server.Close)
	return server
}

func slowHandler(w http.ResponseWriter, r *http.Request) {
	select {
	case <-r.Context().Done():
	case <-time.After(2 * time.Second):
	}
}

func Test_Extraction(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/ocr-service/process/C%2F1", r.URL.EscapedPath())
			_, _ = io.WriteString(w, `{"documentType":"PAN","documentId":"ABCDE1234F","fullName":"Asha Rao","dateOfBirth":"01-01-1990","gender":"F","address":"Pune"}`)
		})
		a := adapters.NewExtraction(adapters.Config{BaseURL: server.URL + "/ocr-service/process/"}, adapters.WithHTTPClient(server.Client()))
		kyc, err := a.Extract(ctx, "C/1")
		require.NoError(t, err)
		assert.Equal(t, &model.KycDetail{
			DocumentType: model.DocumentTypePAN,
			DocumentID:   "ABCDE1234F",
			FullName:     "Asha Rao",
			DateOfBirth:  "01-01-1990",
			Gender:       "F",
			Address:      "Pune",
		}, kyc)
	})

	tcs := []struct {
		name    string
		handler http.HandlerFunc
		kind    adapters.Kind
		status  int
	}{
		{
			name: "rejected",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "no documents", http.StatusNotFound)
			},
			kind:   adapters.KindRemoteRejected,
			status: http.StatusNotFound,
		},
		{
			name:    "empty body",
			handler: func(w http.ResponseWriter, r *http.Request) {},
			kind:    adapters.KindDecodeFailed,
		},
		{
			name: "malformed",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.WriteString(w, `<html>`)
			},
			kind: adapters.KindDecodeFailed,
		},
		{
			name: "nothing extracted",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.WriteString(w, `{}`)
			},
			kind: adapters.KindDecodeFailed,
		},
		{
			name:    "timeout",
			handler: slowHandler,
			kind:    adapters.KindTimeout,
		},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			server := newServer(t, tc.handler)
			a := adapters.NewExtraction(adapters.Config{BaseURL: server.URL},
				adapters.WithHTTPClient(server.Client()),
				adapters.WithTimeout(100*time.Millisecond))
			kyc, err := a.Extract(ctx, "C1")
			require.Error(t, err)
			assert.Nil(t, kyc)

			var ae *adapters.Error
			require.True(t, errors.As(err, &ae))
			assert.Equal(t, tc.kind, ae.Kind)
			assert.Equal(t, tc.status, ae.Status)
			assert.Equal(t, adapters.NameExtraction, ae.Adapter)
			assert.True(t, adapters.IsKind(err, tc.kind))
		})
	}

	t.Run("network", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		u := server.URL
		server.Close()

		a := adapters.NewExtraction(adapters.Config{BaseURL: u})
		_, err := a.Extract(ctx, "C1")
		kind, ok := adapters.KindOf(err)
		require.True(t, ok)
		assert.Equal(t, adapters.KindNetwork, kind)
	})

	t.Run("canceled", func(t *testing.T) {
		server := newServer(t, slowHandler)
		a := adapters.NewExtraction(adapters.Config{BaseURL: server.URL}, adapters.WithHTTPClient(server.Client()))
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := a.Extract(cctx, "C1")
		assert.True(t, adapters.IsKind(err, adapters.KindNetwork))
		assert.True(t, errors.Is(err, context.Canceled))
	})
}

func Test_Fraud(t *testing.T) {
	ctx := context.Background()

	server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/C1":
			_, _ = io.WriteString(w, `{"clientId":"C1","isFraud":true}`)
		case "/C2":
			_, _ = io.WriteString(w, `{"isFraud":false}`)
		case "/C3":
			_, _ = io.WriteString(w, `{"clientId":"C3"}`)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	})
	a := adapters.NewFraud(adapters.Config{BaseURL: server.URL + "/"}, adapters.WithHTTPClient(server.Client()))

	res, err := a.Check(ctx, "C1")
	require.NoError(t, err)
	assert.Equal(t, &model.FraudResult{ClientID: "C1", IsFraud: true}, res)

	res, err = a.Check(ctx, "C2")
	require.NoError(t, err)
	assert.Equal(t, &model.FraudResult{ClientID: "C2", IsFraud: false}, res)

	_, err = a.Check(ctx, "C3")
	assert.True(t, adapters.IsKind(err, adapters.KindDecodeFailed))

	_, err = a.Check(ctx, "C4")
	assert.True(t, adapters.IsKind(err, adapters.KindRemoteRejected))
	assert.EqualError(t, err, "fraud: RemoteRejected: status 500: Internal Server Error")
}

func Test_Portfolio(t *testing.T) {
	ctx := context.Background()

	server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		msg := r.URL.Query().Get("message")
		if msg == "bad" {
			_, _ = io.WriteString(w, `not json`)
			return
		}
		_ = json.NewEncoder(w).Encode(model.PortfolioReport{ClientReport: "report for " + msg})
	})
	a := adapters.NewPortfolio(adapters.Config{BaseURL: server.URL}, adapters.WithHTTPClient(server.Client()))

	res, err := a.Generate(ctx, "risk averse & 10y")
	require.NoError(t, err)
	assert.Equal(t, "report for risk averse & 10y", res.ClientReport)

	_, err = a.Generate(ctx, "bad")
	assert.True(t, adapters.IsKind(err, adapters.KindDecodeFailed))
}

func Test_LeadRelay(t *testing.T) {
	ctx := context.Background()

	server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var req map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req["contactNumber"] == "0" {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = io.WriteString(w, "Workflow started for "+req["contactNumber"])
	})
	a := adapters.NewLeadRelay(adapters.Config{BaseURL: server.URL}, adapters.WithHTTPClient(server.Client()))

	res, err := a.Relay(ctx, "9876543210")
	require.NoError(t, err)
	assert.Equal(t, "Workflow started for 9876543210", res)

	_, err = a.Relay(ctx, "0")
	assert.True(t, adapters.IsKind(err, adapters.KindRemoteRejected))
}

func Test_Brokerage(t *testing.T) {
	ctx := context.Background()

	server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "text/plain", r.Header.Get("Content-Type"))
		b, _ := io.ReadAll(r.Body)
		switch string(b) {
		case "get-holdings":
			_, _ = io.WriteString(w, `{"holdings":[{"symbol":"INFY","quantity":10}]}`)
		case "empty":
		default:
			_, _ = io.WriteString(w, `done`)
		}
	})
	a := adapters.NewBrokerage(adapters.Config{BaseURL: server.URL}, adapters.WithHTTPClient(server.Client()))

	res, err := a.Chat(ctx, "get-holdings")
	require.NoError(t, err)
	assert.JSONEq(t, `{"holdings":[{"symbol":"INFY","quantity":10}]}`, string(res))

	_, err = a.Chat(ctx, "empty")
	assert.True(t, adapters.IsKind(err, adapters.KindDecodeFailed))
	_, err = a.Chat(ctx, "other")
	assert.True(t, adapters.IsKind(err, adapters.KindDecodeFailed))
}

func Test_BodyLimit(t *testing.T) {
	ctx := context.Background()

	server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		_, _ = io.WriteString(w, strings.Repeat("a", len(req["contactNumber"])))
	})
	a := adapters.NewLeadRelay(adapters.Config{BaseURL: server.URL},
		adapters.WithHTTPClient(server.Client()),
		adapters.WithMaxBodySize(16))

	res, err := a.Relay(ctx, strings.Repeat("1", 16))
	require.NoError(t, err)
	assert.Len(t, res, 16)

	_, err = a.Relay(ctx, strings.Repeat("1", 17))
	require.Error(t, err)
	assert.True(t, adapters.IsKind(err, adapters.KindDecodeFailed))
	assert.EqualError(t, err, "lead_relay: DecodeFailed: response body exceeds 16 bytes")
}

func Test_RejectedMessage(t *testing.T) {
	body := strings.Repeat("a", 255) + "é" + strings.Repeat("b", 10)
	server := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, body)
	})
	a := adapters.NewLeadRelay(adapters.Config{BaseURL: server.URL}, adapters.WithHTTPClient(server.Client()))

	_, err := a.Relay(context.Background(), "9876543210")
	var ae *adapters.Error
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, adapters.KindRemoteRejected, ae.Kind)
	assert.Equal(t, http.StatusInternalServerError, ae.Status)
	assert.True(t, utf8.ValidString(ae.Message))
	assert.Equal(t, strings.Repeat("a", 255), ae.Message)
}

func Test_ErrorFormat(t *testing.T) {
	assert.EqualError(t, &adapters.Error{Adapter: "fraud", Kind: adapters.KindTimeout}, "fraud: Timeout")
	assert.EqualError(t, &adapters.Error{Adapter: "fraud", Kind: adapters.KindTimeout, Message: "exceeded 10s"}, "fraud: Timeout: exceeded 10s")
	_, ok := adapters.KindOf(errors.New("plain"))
	assert.False(t, ok)
	assert.False(t, adapters.IsKind(nil, adapters.KindTimeout))
}

func Test_Fallbacks(t *testing.T) {
	ctx := context.Background()
	failed := errors.New("boom")

	mode, err := adapters.ParseFailMode("")
	require.NoError(t, err)
	assert.Equal(t, adapters.FailOpen, mode)
	mode, err = adapters.ParseFailMode(" Closed ")
	require.NoError(t, err)
	assert.Equal(t, adapters.FailClosed, mode)
	_, err = adapters.ParseFailMode("maybe")
	assert.EqualError(t, err, `unsupported fraud fail mode: "maybe"`)

	ok := &model.FraudResult{ClientID: "C1", IsFraud: true}
	assert.Same(t, ok, adapters.Resolve(ctx, ok, nil, adapters.FraudOnFailure(adapters.FailOpen, "C1")))
	assert.Equal(t, &model.FraudResult{ClientID: "C1"}, adapters.Resolve[*model.FraudResult](ctx, nil, failed, adapters.FraudOnFailure(adapters.FailOpen, "C1")))
	assert.Equal(t, &model.FraudResult{ClientID: "C1", IsFraud: true}, adapters.Resolve[*model.FraudResult](ctx, nil, failed, adapters.FraudOnFailure(adapters.FailClosed, "C1")))

	assert.Equal(t, &model.PortfolioReport{}, adapters.Resolve[*model.PortfolioReport](ctx, nil, failed, adapters.PortfolioOnFailure()))
	assert.Equal(t, adapters.LeadRelayFailedMessage, adapters.Resolve(ctx, "", failed, adapters.LeadRelayOnFailure()))
	assert.JSONEq(t, `{"error":"Failed to process Zerodha chat request"}`,
		string(adapters.Resolve[json.RawMessage](ctx, nil, failed, adapters.BrokerageOnFailure())))
}
