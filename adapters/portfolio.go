package adapters

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/effective-security/finmcp/model"
)

// Portfolio is the portfolio report generator client: GET <base>?message=<message>
type Portfolio struct {
	c *caller
}

var _ PortfolioGenerator = (*Portfolio)(nil)

// NewPortfolio returns the portfolio report client, it uses the long timeout class.
func NewPortfolio(cfg Config, opts ...Option) *Portfolio {
	return &Portfolio{c: newCaller(NamePortfolio, cfg, LongTimeout, opts...)}
}

// Generate returns the report, or an *Error.
func (a *Portfolio) Generate(ctx context.Context, message string) (*model.PortfolioReport, error) {
	body, err := a.c.do(ctx, request{
		method: http.MethodGet,
		url:    a.c.baseURL + "?" + url.Values{"message": []string{message}}.Encode(),
	})
	if err != nil {
		return nil, err
	}

	var res model.PortfolioReport
	if err = json.Unmarshal(body, &res); err != nil {
		return nil, a.c.decodeFailed("malformed portfolio report", err)
	}
	return &res, nil
}
