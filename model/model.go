// Package model defines the records persisted by the store and the
// payloads returned by the tools.
package model

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

// TimestampLayout is the display format of client timestamps: dd-MM-yyyy HH:mm:ss
const TimestampLayout = "02-01-2006 15:04:05"

// KycStatus is the state of the client KYC verification
type KycStatus string

const (
	KycStatusCompleted KycStatus = "COMPLETED"
	KycStatusFailed    KycStatus = "FAILED"
	KycStatusPending   KycStatus = "PENDING"
)

// DocumentType is the kind of the identity document
type DocumentType string

const (
	DocumentTypeAadhaar        DocumentType = "AADHAAR"
	DocumentTypePAN            DocumentType = "PAN"
	DocumentTypePassport       DocumentType = "PASSPORT"
	DocumentTypeDrivingLicense DocumentType = "DRIVING_LICENSE"
	DocumentTypeVoterID        DocumentType = "VOTER_ID"
)

// Lead status values set by the onboarding workflow
const (
	LeadStatusNew       = "new"
	LeadStatusOnboarded = "onboarded"
	LeadStatusFailed    = "failed"
)

// KycDetail is the identity data extracted from the client documents.
type KycDetail struct {
	DocumentType DocumentType `json:"documentType,omitempty" yaml:"documentType,omitempty"`
	DocumentID   string       `json:"documentId,omitempty" yaml:"documentId,omitempty"`
	FullName     string       `json:"fullName,omitempty" yaml:"fullName,omitempty"`
	DateOfBirth  string       `json:"dateOfBirth,omitempty" yaml:"dateOfBirth,omitempty"`
	Gender       string       `json:"gender,omitempty" yaml:"gender,omitempty"`
	Address      string       `json:"address,omitempty" yaml:"address,omitempty"`
}

// IsEmpty returns true if no field was extracted
func (k *KycDetail) IsEmpty() bool {
	return k == nil || *k == KycDetail{}
}

// Client is the persisted client record, keyed by ID.
type Client struct {
	ID               string      `json:"id"`
	KycDetails       []KycDetail `json:"kycDetails"`
	KycStatus        KycStatus   `json:"kycStatus"`
	CreatedDate      Timestamp   `json:"createdDate"`
	LastModifiedDate Timestamp   `json:"lastModifiedDate"`
}

// NewClient returns a client record derived from the extraction result:
// COMPLETED with one detail when kyc is present, FAILED with none otherwise.
func NewClient(id string, kyc *KycDetail) *Client {
	c := &Client{
		ID:         id,
		KycDetails: []KycDetail{},
		KycStatus:  KycStatusFailed,
	}
	if kyc != nil {
		c.KycDetails = []KycDetail{*kyc}
		c.KycStatus = KycStatusCompleted
	}
	return c
}

// Clone returns a deep copy
func (c *Client) Clone() *Client {
	if c == nil {
		return nil
	}
	cp := *c
	cp.KycDetails = append([]KycDetail{}, c.KycDetails...)
	return &cp
}

// Validate checks the record invariants
func (c *Client) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return errors.New("client id is required")
	}
	switch c.KycStatus {
	case KycStatusCompleted:
		if len(c.KycDetails) == 0 {
			return errors.Errorf("client %s: COMPLETED status requires KYC details", c.ID)
		}
	case KycStatusFailed, KycStatusPending:
		if len(c.KycDetails) > 0 {
			return errors.Errorf("client %s: %s status must not carry KYC details", c.ID, c.KycStatus)
		}
	default:
		return errors.Errorf("client %s: unsupported KYC status %q", c.ID, c.KycStatus)
	}
	return nil
}

// Lead is the persisted sales lead, correlated with a client by ContactNumber.
type Lead struct {
	ID            int64  `json:"id"`
	FirstName     string `json:"firstName,omitempty"`
	LastName      string `json:"lastName,omitempty"`
	Company       string `json:"company,omitempty"`
	Title         string `json:"title,omitempty"`
	Type          string `json:"type,omitempty"`
	Source        string `json:"source,omitempty"`
	Status        string `json:"status,omitempty"`
	ContactNumber string `json:"contactNumber,omitempty"`
}

// Clone returns a copy
func (l *Lead) Clone() *Lead {
	if l == nil {
		return nil
	}
	cp := *l
	return &cp
}

// OnboardingStatus is the result of the onboarding workflow
type OnboardingStatus string

const (
	OnboardingSuccess OnboardingStatus = "SUCCESS"
	OnboardingFailed  OnboardingStatus = "FAILED"
)

// Onboarding messages returned to the agent
const (
	OnboardingSuccessMessage = "Onboarding successful."
	OnboardingFailedMessage  = "Onboarding failed, please try again later."
)

// OnboardingOutcome is returned by the onboarding workflow, it is not persisted.
type OnboardingOutcome struct {
	ClientID string           `json:"clientId"`
	Status   OnboardingStatus `json:"status"`
	Message  string           `json:"message"`
}

// FraudResult is returned by the fraud check.
type FraudResult struct {
	ClientID string `json:"clientId"`
	IsFraud  bool   `json:"isFraud"`
}

// PortfolioReport is returned by the portfolio generator,
// an empty ClientReport means the report could not be produced.
type PortfolioReport struct {
	ClientReport string `json:"client_report"`
}

// Timestamp is a time rendered in TimestampLayout.
type Timestamp struct {
	time.Time
}

// NewTimestamp returns the time in UTC truncated to the microsecond,
// the precision kept by every store.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC().Truncate(time.Microsecond)}
}

func (t Timestamp) String() string {
	if t.IsZero() {
		return ""
	}
	return t.Format(TimestampLayout)
}

// MarshalJSON implements json.Marshaler
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.Format(TimestampLayout) + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" || s == `""` {
		t.Time = time.Time{}
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return errors.Errorf("invalid timestamp: %s", s)
	}
	v, err := time.ParseInLocation(TimestampLayout, s[1:len(s)-1], time.UTC)
	if err != nil {
		return errors.Wrapf(err, "invalid timestamp: %s", s)
	}
	t.Time = v
	return nil
}
