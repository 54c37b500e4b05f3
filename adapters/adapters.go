// Package adapters contains the clients of the external fintech services.
// Every call is a single attempt bounded by a timeout, and every failure
// is returned as an *Error with a Kind.
package adapters

import (
	"context"
	"encoding/json"

	"github.com/effective-security/finmcp/model"
)

// Adapter names, used in errors, logs and metrics
const (
	NameExtraction = "extraction"
	NameFraud      = "fraud"
	NamePortfolio  = "portfolio"
	NameLeadRelay  = "lead_relay"
	NameBrokerage  = "brokerage"
)

//go:generate mockgen -source=adapters.go -destination=../mocks/mockadapters/adapters_mock.gen.go -package mockadapters

// Extractor extracts KYC details from the documents uploaded by a client.
type Extractor interface {
	Extract(ctx context.Context, clientID string) (*model.KycDetail, error)
}

// FraudChecker scores a client for fraud.
type FraudChecker interface {
	Check(ctx context.Context, clientID string) (*model.FraudResult, error)
}

// PortfolioGenerator produces a portfolio report from a free text request.
type PortfolioGenerator interface {
	Generate(ctx context.Context, message string) (*model.PortfolioReport, error)
}

// LeadRelay forwards a lead contact number to the onboarding workflow service.
type LeadRelay interface {
	Relay(ctx context.Context, contactNumber string) (string, error)
}

// BrokerageChat forwards a free text request to the brokerage agent.
type BrokerageChat interface {
	Chat(ctx context.Context, message string) (json.RawMessage, error)
}
