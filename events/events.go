// Package events publishes the outcome of onboarding runs.
package events

import (
	"context"
	"sync"
	"time"

	"github.com/effective-security/finmcp/model"
	"github.com/effective-security/xlog"
	"github.com/google/uuid"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/finmcp", "events")

// TypeOnboardingCompleted is the type of OnboardingEvent
const TypeOnboardingCompleted = "onboarding.completed"

// OnboardingEvent is the append only record of an onboarding run.
// LeadID and LeadStatus are set when a correlated lead was updated.
type OnboardingEvent struct {
	ID         string                 `json:"id"`
	Type       string                 `json:"type"`
	ClientID   string                 `json:"clientId"`
	Status     model.OnboardingStatus `json:"status"`
	KycStatus  model.KycStatus        `json:"kycStatus"`
	LeadID     int64                  `json:"leadId,omitempty"`
	LeadStatus string                 `json:"leadStatus,omitempty"`
	OccurredAt time.Time              `json:"occurredAt"`
}

// NewOnboardingEvent returns the event of the run, lead may be nil
func NewOnboardingEvent(outcome *model.OnboardingOutcome, client *model.Client, lead *model.Lead) *OnboardingEvent {
	ev := &OnboardingEvent{
		ID:         uuid.NewString(),
		Type:       TypeOnboardingCompleted,
		ClientID:   outcome.ClientID,
		Status:     outcome.Status,
		OccurredAt: time.Now().UTC(),
	}
	if client != nil {
		ev.KycStatus = client.KycStatus
	}
	if lead != nil {
		ev.LeadID = lead.ID
		ev.LeadStatus = lead.Status
	}
	return ev
}

// Publisher delivers onboarding events
type Publisher interface {
	Publish(ctx context.Context, ev *OnboardingEvent) error
	Close() error
}

type nop struct{}

// NewNop returns a publisher that drops the events
func NewNop() Publisher {
	return nop{}
}

func (nop) Publish(ctx context.Context, ev *OnboardingEvent) error {
	logger.ContextKV(ctx, xlog.DEBUG, "status", "event_dropped", "id", ev.ID, "client_id", ev.ClientID)
	return nil
}

func (nop) Close() error {
	return nil
}

// Recorder keeps the published events in memory
type Recorder struct {
	lock   sync.Mutex
	events []*OnboardingEvent
	// Err is returned by Publish when set
	Err error
}

// NewRecorder returns an empty Recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Publish(_ context.Context, ev *OnboardingEvent) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.events = append(r.events, ev)
	return nil
}

// Events returns a copy of the recorded events
func (r *Recorder) Events() []*OnboardingEvent {
	r.lock.Lock()
	defer r.lock.Unlock()
	return append([]*OnboardingEvent{}, r.events...)
}

func (r *Recorder) Close() error {
	return nil
}
