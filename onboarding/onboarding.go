// Package onboarding implements the client onboarding workflow:
// KYC extraction, client record upsert and the correlated lead update.
package onboarding

import (
	"context"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/finmcp/adapters"
	"github.com/effective-security/finmcp/events"
	"github.com/effective-security/finmcp/model"
	"github.com/effective-security/finmcp/pkg/metricskey"
	"github.com/effective-security/finmcp/store"
	"github.com/effective-security/xlog"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/finmcp", "onboarding")

// ErrClientIDRequired is returned for an empty client ID
var ErrClientIDRequired = errors.New("client id is required")

// Service runs the onboarding workflow.
// It holds no state between runs, concurrent runs for the same client
// are not serialized and the last write wins.
type Service struct {
	extractor adapters.Extractor
	clients   store.ClientStore
	leads     store.LeadStore
	publisher events.Publisher
}

// New returns the onboarding service, publisher may be nil
func New(extractor adapters.Extractor, clients store.ClientStore, leads store.LeadStore, publisher events.Publisher) *Service {
	if publisher == nil {
		publisher = events.NewNop()
	}
	return &Service{
		extractor: extractor,
		clients:   clients,
		leads:     leads,
		publisher: publisher,
	}
}

// Onboard extracts the KYC details of the client, persists the client record
// and moves the lead with the same contact number to its terminal status.
//
// The client record is always written, with FAILED status when the
// extraction failed. An error is returned only when that write fails.
// The lead update and the outcome event are best effort.
func (s *Service) Onboard(ctx context.Context, clientID string) (*model.OnboardingOutcome, error) {
	if strings.TrimSpace(clientID) == "" {
		return nil, ErrClientIDRequired
	}
	started := time.Now()

	logger.ContextKV(ctx, xlog.INFO, "status", "onboarding_started", "client_id", clientID)

	kyc, err := s.extractor.Extract(ctx, clientID)
	if err != nil {
		kind, _ := adapters.KindOf(err)
		logger.ContextKV(ctx, xlog.WARNING,
			"status", "kyc_extraction_failed",
			"client_id", clientID,
			"kind", kind,
			"err", err.Error(),
		)
		kyc = nil
	}
	succeeded := kyc != nil

	client, err := s.clients.UpsertClient(ctx, model.NewClient(clientID, kyc))
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to save client %s", clientID)
	}

	lead := s.updateLead(ctx, clientID, succeeded)

	outcome := &model.OnboardingOutcome{
		ClientID: clientID,
		Status:   model.OnboardingFailed,
		Message:  model.OnboardingFailedMessage,
	}
	if succeeded {
		outcome.Status = model.OnboardingSuccess
		outcome.Message = model.OnboardingSuccessMessage
	}

	leadTag := "none"
	if lead != nil {
		leadTag = "updated"
	}
	metricskey.PerfOnboarding.MeasureSince(started, string(outcome.Status))
	if succeeded {
		metricskey.StatsOnboardingSucceeded.IncrCounter(1, leadTag)
	} else {
		metricskey.StatsOnboardingFailed.IncrCounter(1, leadTag)
	}

	s.publish(ctx, events.NewOnboardingEvent(outcome, client, lead))

	logger.ContextKV(ctx, xlog.INFO,
		"status", "onboarding_completed",
		"client_id", clientID,
		"result", outcome.Status,
		"kyc_status", client.KycStatus,
		"lead", leadTag,
	)
	return outcome, nil
}

// updateLead sets the status of the correlated lead,
// it returns the updated lead or nil.
func (s *Service) updateLead(ctx context.Context, clientID string, succeeded bool) *model.Lead {
	lead, err := s.leads.FindLeadByContactNumber(ctx, clientID)
	if err != nil {
		if store.IsNotFound(err) {
			logger.ContextKV(ctx, xlog.WARNING, "status", "lead_not_found", "client_id", clientID)
		} else {
			logger.ContextKV(ctx, xlog.ERROR, "status", "lead_lookup_failed", "client_id", clientID, "err", err.Error())
		}
		return nil
	}

	lead.Status = model.LeadStatusFailed
	if succeeded {
		lead.Status = model.LeadStatusOnboarded
	}
	updated, err := s.leads.UpsertLead(ctx, lead)
	if err != nil {
		logger.ContextKV(ctx, xlog.ERROR,
			"status", "lead_update_failed",
			"client_id", clientID,
			"lead_id", lead.ID,
			"err", err.Error(),
		)
		return nil
	}

	logger.ContextKV(ctx, xlog.INFO,
		"status", "lead_updated",
		"client_id", clientID,
		"lead_id", updated.ID,
		"lead_status", updated.Status,
	)
	return updated
}

func (s *Service) publish(ctx context.Context, ev *events.OnboardingEvent) {
	if err := s.publisher.Publish(ctx, ev); err != nil {
		metricskey.StatsEventsPublishFailed.IncrCounter(1, ev.Type)
		logger.ContextKV(ctx, xlog.ERROR,
			"status", "event_publish_failed",
			"client_id", ev.ClientID,
			"id", ev.ID,
			"err", err.Error(),
		)
	}
}

// GetClient returns the client record, or a store.NotFoundError
func (s *Service) GetClient(ctx context.Context, clientID string) (*model.Client, error) {
	if strings.TrimSpace(clientID) == "" {
		return nil, ErrClientIDRequired
	}
	return s.clients.GetClient(ctx, clientID)
}
