package adapters

import (
	"context"
	"encoding/json"
	"net/http"
)

// Brokerage is the brokerage agent client: POST <base> with a text/plain message.
type Brokerage struct {
	c *caller
}

var _ BrokerageChat = (*Brokerage)(nil)

// NewBrokerage returns the brokerage agent client, it uses the long timeout class.
func NewBrokerage(cfg Config, opts ...Option) *Brokerage {
	return &Brokerage{c: newCaller(NameBrokerage, cfg, LongTimeout, opts...)}
}

// Chat returns the JSON document produced by the agent, or an *Error.
func (a *Brokerage) Chat(ctx context.Context, message string) (json.RawMessage, error) {
	body, err := a.c.do(ctx, request{
		method:      http.MethodPost,
		url:         a.c.baseURL,
		body:        []byte(message),
		contentType: "text/plain",
	})
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, a.c.decodeFailed("empty body", nil)
	}
	if !json.Valid(body) {
		return nil, a.c.decodeFailed("response is not JSON", nil)
	}
	return json.RawMessage(body), nil
}
