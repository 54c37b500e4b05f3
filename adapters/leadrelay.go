package adapters

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/cockroachdb/errors"
)

// Relay is the lead routing service client: POST <base> {"contactNumber": ...}
type Relay struct {
	c *caller
}

var _ LeadRelay = (*Relay)(nil)

// NewLeadRelay returns the lead routing client
func NewLeadRelay(cfg Config, opts ...Option) *Relay {
	return &Relay{c: newCaller(NameLeadRelay, cfg, ShortTimeout, opts...)}
}

// Relay returns the response text of the service, or an *Error.
func (a *Relay) Relay(ctx context.Context, contactNumber string) (string, error) {
	js, err := json.Marshal(map[string]string{"contactNumber": contactNumber})
	if err != nil {
		return "", errors.WithStack(err)
	}
	body, err := a.c.do(ctx, request{
		method:      http.MethodPost,
		url:         a.c.baseURL,
		body:        js,
		contentType: "application/json",
	})
	if err != nil {
		return "", err
	}
	return string(body), nil
}
