package adapters

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/finmcp/model"
	"github.com/effective-security/xlog"
	"github.com/tidwall/sjson"
)

// Fixed failure payloads
const (
	LeadRelayFailedMessage = "Failed to start onboarding process"
	BrokerageFailedMessage = "Failed to process Zerodha chat request"
)

// OnFailure is the value a degrading call returns in place of a failure.
type OnFailure[T any] func(err error) T

// Resolve returns v when err is nil, otherwise it logs err
// and returns the value of the failure policy.
func Resolve[T any](ctx context.Context, v T, err error, onFailure OnFailure[T]) T {
	if err == nil {
		return v
	}
	logger.ContextKV(ctx, xlog.WARNING,
		"status", "fallback_applied",
		"err", err.Error(),
	)
	return onFailure(err)
}

// FailMode is the fraud verdict policy when the fraud service fails
type FailMode string

const (
	// FailOpen reports isFraud=false when the service fails
	FailOpen FailMode = "open"
	// FailClosed reports isFraud=true when the service fails
	FailClosed FailMode = "closed"
)

// ParseFailMode returns the mode, empty value defaults to FailOpen
func ParseFailMode(s string) (FailMode, error) {
	switch FailMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", FailOpen:
		return FailOpen, nil
	case FailClosed:
		return FailClosed, nil
	default:
		return "", errors.Errorf("unsupported fraud fail mode: %q", s)
	}
}

// FraudOnFailure returns the fraud verdict used for clientID when the check fails
func FraudOnFailure(mode FailMode, clientID string) OnFailure[*model.FraudResult] {
	return func(error) *model.FraudResult {
		return &model.FraudResult{ClientID: clientID, IsFraud: mode == FailClosed}
	}
}

// PortfolioOnFailure returns the empty report
func PortfolioOnFailure() OnFailure[*model.PortfolioReport] {
	return func(error) *model.PortfolioReport {
		return &model.PortfolioReport{}
	}
}

// LeadRelayOnFailure returns the fixed failure text
func LeadRelayOnFailure() OnFailure[string] {
	return func(error) string {
		return LeadRelayFailedMessage
	}
}

// BrokerageOnFailure returns the {"error": ...} document
func BrokerageOnFailure() OnFailure[json.RawMessage] {
	return func(error) json.RawMessage {
		js, _ := sjson.SetBytes([]byte(`{}`), "error", BrokerageFailedMessage)
		return js
	}
}
