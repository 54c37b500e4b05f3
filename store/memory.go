package store

import (
	"context"
	"sync"
	"time"

	"github.com/effective-security/finmcp/model"
)

type inMemory struct {
	lock    sync.RWMutex
	clients map[string]*model.Client
	leads   map[int64]*model.Lead
	last    time.Time
	now     func() time.Time
}

// NewMemoryStore returns the store kept in process memory,
// records are copied in and out.
func NewMemoryStore() Store {
	return &inMemory{
		clients: make(map[string]*model.Client),
		leads:   make(map[int64]*model.Lead),
		now:     time.Now,
	}
}

func (m *inMemory) GetClient(_ context.Context, id string) (*model.Client, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	c, ok := m.clients[id]
	if !ok {
		return nil, clientNotFound(id)
	}
	return c.Clone(), nil
}

func (m *inMemory) ListClients(_ context.Context) ([]*model.Client, error) {
	m.lock.RLock()
	list := make([]*model.Client, 0, len(m.clients))
	for _, c := range m.clients {
		list = append(list, c.Clone())
	}
	m.lock.RUnlock()

	sortClients(list)
	return list, nil
}

func (m *inMemory) UpsertClient(_ context.Context, c *model.Client) (*model.Client, error) {
	if err := validateClient(c); err != nil {
		return nil, err
	}
	rec := c.Clone()

	m.lock.Lock()
	defer m.lock.Unlock()

	// writes are ordered even when the clock does not advance
	now := m.now().UTC().Truncate(time.Microsecond)
	if !now.After(m.last) {
		now = m.last.Add(time.Microsecond)
	}
	m.last = now

	stampClient(rec, m.clients[rec.ID], now)
	m.clients[rec.ID] = rec
	return rec.Clone(), nil
}

func (m *inMemory) GetLead(_ context.Context, id int64) (*model.Lead, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	l, ok := m.leads[id]
	if !ok {
		return nil, leadNotFound(id)
	}
	return l.Clone(), nil
}

func (m *inMemory) FindLeadByContactNumber(_ context.Context, contactNumber string) (*model.Lead, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	var found *model.Lead
	for _, l := range m.leads {
		if l.ContactNumber == contactNumber && (found == nil || l.ID < found.ID) {
			found = l
		}
	}
	if found == nil {
		return nil, leadContactNotFound(contactNumber)
	}
	return found.Clone(), nil
}

func (m *inMemory) ListLeadsByStatus(_ context.Context, status string) ([]*model.Lead, error) {
	m.lock.RLock()
	list := make([]*model.Lead, 0)
	for _, l := range m.leads {
		if l.Status == status {
			list = append(list, l.Clone())
		}
	}
	m.lock.RUnlock()

	sortLeads(list)
	return list, nil
}

func (m *inMemory) UpsertLead(_ context.Context, l *model.Lead) (*model.Lead, error) {
	if err := validateLead(l); err != nil {
		return nil, err
	}
	rec := l.Clone()

	m.lock.Lock()
	m.leads[rec.ID] = rec
	m.lock.Unlock()

	return rec.Clone(), nil
}

func (m *inMemory) Close() error {
	return nil
}
