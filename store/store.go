// Package store provides the record store of clients and leads.
package store

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/finmcp/model"
	"github.com/effective-security/xlog"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/finmcp", "store")

//go:generate mockgen -source=store.go -destination=../mocks/mockstore/store_mock.gen.go -package mockstore

// ErrNotFound is returned by lookups that found no record
var ErrNotFound = errors.New("not found")

// NotFoundError describes the failed lookup, it wraps ErrNotFound.
type NotFoundError struct {
	Entity string
	Field  string
	Key    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found with %s: %s", e.Entity, e.Field, e.Key)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// IsNotFound returns true if err is a lookup miss
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func clientNotFound(id string) error {
	return &NotFoundError{Entity: "Client", Field: "ID", Key: id}
}

func leadNotFound(id int64) error {
	return &NotFoundError{Entity: "Lead", Field: "ID", Key: fmt.Sprint(id)}
}

func leadContactNotFound(contact string) error {
	return &NotFoundError{Entity: "Lead", Field: "contact", Key: contact}
}

// ClientStore persists client records keyed by client ID.
type ClientStore interface {
	// GetClient returns the client, or NotFoundError
	GetClient(ctx context.Context, id string) (*model.Client, error)
	// ListClients returns all clients, most recently modified first
	ListClients(ctx context.Context) ([]*model.Client, error)
	// UpsertClient replaces the record atomically. CreatedDate is set on
	// the first write and preserved, LastModifiedDate advances on every write.
	UpsertClient(ctx context.Context, c *model.Client) (*model.Client, error)
}

// LeadStore persists leads keyed by lead ID.
type LeadStore interface {
	// GetLead returns the lead, or NotFoundError
	GetLead(ctx context.Context, id int64) (*model.Lead, error)
	// FindLeadByContactNumber returns the lead with the lowest ID
	// for the contact number, or NotFoundError
	FindLeadByContactNumber(ctx context.Context, contactNumber string) (*model.Lead, error)
	// ListLeadsByStatus returns the leads with the status, ordered by ID
	ListLeadsByStatus(ctx context.Context, status string) ([]*model.Lead, error)
	// UpsertLead replaces the record atomically
	UpsertLead(ctx context.Context, l *model.Lead) (*model.Lead, error)
}

// Store is the record store
type Store interface {
	ClientStore
	LeadStore
	// Close releases the backend connections
	Close() error
}

// stampClient sets the audit timestamps of c: CreatedDate is taken from prev
// when present, LastModifiedDate is now but strictly after the previous value.
func stampClient(c *model.Client, prev *model.Client, now time.Time) {
	ts := model.NewTimestamp(now)
	c.CreatedDate = ts
	if prev != nil {
		if !prev.CreatedDate.IsZero() {
			c.CreatedDate = prev.CreatedDate
		}
		if !ts.After(prev.LastModifiedDate.Time) {
			ts = model.NewTimestamp(prev.LastModifiedDate.Add(time.Microsecond))
		}
	}
	c.LastModifiedDate = ts
}

func validateLead(l *model.Lead) error {
	if l == nil {
		return errors.New("lead is required")
	}
	if l.ID <= 0 {
		return errors.New("lead id is required")
	}
	return nil
}

func validateClient(c *model.Client) error {
	if c == nil {
		return errors.New("client is required")
	}
	return c.Validate()
}

// sortClients orders by LastModifiedDate descending, then by ID
func sortClients(list []*model.Client) {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if !a.LastModifiedDate.Equal(b.LastModifiedDate.Time) {
			return a.LastModifiedDate.After(b.LastModifiedDate.Time)
		}
		return a.ID < b.ID
	})
}

func sortLeads(list []*model.Lead) {
	sort.Slice(list, func(i, j int) bool {
		return list[i].ID < list[j].ID
	})
}
