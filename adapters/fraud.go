package adapters

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/effective-security/finmcp/model"
)

// Fraud is the fraud scoring service client: GET <base>/<clientID>
type Fraud struct {
	c *caller
}

var _ FraudChecker = (*Fraud)(nil)

// NewFraud returns the fraud scoring client
func NewFraud(cfg Config, opts ...Option) *Fraud {
	return &Fraud{c: newCaller(NameFraud, cfg, ShortTimeout, opts...)}
}

// Check returns the fraud verdict, or an *Error.
func (a *Fraud) Check(ctx context.Context, clientID string) (*model.FraudResult, error) {
	body, err := a.c.do(ctx, request{
		method: http.MethodGet,
		url:    a.c.baseURL + "/" + url.PathEscape(clientID),
	})
	if err != nil {
		return nil, err
	}

	var res struct {
		ClientID string `json:"clientId"`
		IsFraud  *bool  `json:"isFraud"`
	}
	if err = json.Unmarshal(body, &res); err != nil {
		return nil, a.c.decodeFailed("malformed fraud verdict", err)
	}
	if res.IsFraud == nil {
		return nil, a.c.decodeFailed("missing isFraud", nil)
	}
	if res.ClientID == "" {
		res.ClientID = clientID
	}
	return &model.FraudResult{ClientID: res.ClientID, IsFraud: *res.IsFraud}, nil
}
