package adapters

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/effective-security/finmcp/model"
)

// Extraction is the OCR service client: GET <base>/<clientID>
type Extraction struct {
	c *caller
}

var _ Extractor = (*Extraction)(nil)

// NewExtraction returns the KYC extraction client
func NewExtraction(cfg Config, opts ...Option) *Extraction {
	return &Extraction{c: newCaller(NameExtraction, cfg, ShortTimeout, opts...)}
}

// Extract returns the KYC details, or an *Error.
// A response without any extracted field is reported as KindDecodeFailed.
func (a *Extraction) Extract(ctx context.Context, clientID string) (*model.KycDetail, error) {
	body, err := a.c.do(ctx, request{
		method: http.MethodGet,
		url:    a.c.baseURL + "/" + url.PathEscape(clientID),
	})
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, a.c.decodeFailed("empty body", nil)
	}

	var kyc model.KycDetail
	if err = json.Unmarshal(body, &kyc); err != nil {
		return nil, a.c.decodeFailed("malformed KYC details", err)
	}
	if kyc.IsEmpty() {
		return nil, a.c.decodeFailed("no KYC details extracted", nil)
	}
	return &kyc, nil
}
