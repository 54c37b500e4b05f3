package store

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"path"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/finmcp/model"
	"github.com/effective-security/xlog"
	"github.com/redis/go-redis/v9"
)

// The redis store keeps every record as a JSON document and maintains
// sorted sets for the secondary lookups.
// The keys namespace is organized as follows:
// - `/<prefix>/finmcp/clients/<id>` client document
// - `/<prefix>/finmcp/clients_by_modified` client IDs scored by last modified time in microseconds
// - `/<prefix>/finmcp/leads/<id>` lead document
// - `/<prefix>/finmcp/leads_by_contact/<contactNumber>` lead IDs of a contact number
// - `/<prefix>/finmcp/leads_by_status/<status>` lead IDs with a status
// Client IDs, contact numbers and statuses are path escaped, so every
// caller supplied value maps to its own key.
// Lead IDs are stored zero padded with score 0, so the lexical order of
// the set members is the numeric order of the IDs.

const maxTxRetries = 50

type redisStore struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

// NewRedisStore returns the store backed by Redis, keys are created under prefix.
func NewRedisStore(client *redis.Client, prefix string) Store {
	return &redisStore{
		client: client,
		prefix: prefix,
		now:    time.Now,
	}
}

// clientDoc keeps the full precision of the audit timestamps
type clientDoc struct {
	ID         string            `json:"id"`
	KycDetails []model.KycDetail `json:"kycDetails"`
	KycStatus  model.KycStatus   `json:"kycStatus"`
	CreatedOn  time.Time         `json:"createdOn"`
	UpdatedOn  time.Time         `json:"updatedOn"`
}

func toClientDoc(c *model.Client) *clientDoc {
	return &clientDoc{
		ID:         c.ID,
		KycDetails: c.KycDetails,
		KycStatus:  c.KycStatus,
		CreatedOn:  c.CreatedDate.Time,
		UpdatedOn:  c.LastModifiedDate.Time,
	}
}

func (d *clientDoc) toModel() *model.Client {
	details := d.KycDetails
	if details == nil {
		details = []model.KycDetail{}
	}
	return &model.Client{
		ID:               d.ID,
		KycDetails:       details,
		KycStatus:        d.KycStatus,
		CreatedDate:      model.NewTimestamp(d.CreatedOn),
		LastModifiedDate: model.NewTimestamp(d.UpdatedOn),
	}
}

func (m *redisStore) collectionKey(collection, id string) string {
	return path.Join("/", m.prefix, "finmcp", collection) + "/" + url.PathEscape(id)
}

func (m *redisStore) clientKey(id string) string {
	return m.collectionKey("clients", id)
}

func (m *redisStore) clientsByModifiedKey() string {
	return path.Join("/", m.prefix, "finmcp", "clients_by_modified")
}

func (m *redisStore) leadKey(id int64) string {
	return path.Join("/", m.prefix, "finmcp", "leads", strconv.FormatInt(id, 10))
}

func (m *redisStore) leadsByContactKey(contact string) string {
	return m.collectionKey("leads_by_contact", contact)
}

func (m *redisStore) leadsByStatusKey(status string) string {
	return m.collectionKey("leads_by_status", status)
}

// getter is implemented by redis.Client and redis.Tx
type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func leadMember(id int64) string {
	return fmt.Sprintf("%020d", id)
}

func (m *redisStore) GetClient(ctx context.Context, id string) (*model.Client, error) {
	doc, err := getClientDoc(ctx, m.client, m.clientKey(id))
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, clientNotFound(id)
	}
	return doc.toModel(), nil
}

func getClientDoc(ctx context.Context, c getter, key string) (*clientDoc, error) {
	data, err := c.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to get client from Redis")
	}
	var doc clientDoc
	if err = json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal client")
	}
	return &doc, nil
}

func (m *redisStore) ListClients(ctx context.Context) ([]*model.Client, error) {
	ids, err := m.client.ZRevRange(ctx, m.clientsByModifiedKey(), 0, -1).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to list clients from Redis")
	}
	list := make([]*model.Client, 0, len(ids))
	if len(ids) == 0 {
		return list, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = m.clientKey(id)
	}
	values, err := m.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get clients from Redis")
	}
	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			// removed between the two reads
			continue
		}
		var doc clientDoc
		if err = json.Unmarshal([]byte(s), &doc); err != nil {
			logger.ContextKV(ctx, xlog.ERROR, "reason", "unmarshal client", "key", keys[i], "err", err.Error())
			continue
		}
		list = append(list, doc.toModel())
	}

	sortClients(list)
	return list, nil
}

func (m *redisStore) UpsertClient(ctx context.Context, c *model.Client) (*model.Client, error) {
	if err := validateClient(c); err != nil {
		return nil, err
	}
	rec := c.Clone()
	key := m.clientKey(rec.ID)

	txf := func(tx *redis.Tx) error {
		prev, err := getClientDoc(ctx, tx, key)
		if err != nil {
			return err
		}
		var prevModel *model.Client
		if prev != nil {
			prevModel = prev.toModel()
		}
		stampClient(rec, prevModel, m.now())

		data, err := json.Marshal(toClientDoc(rec))
		if err != nil {
			return errors.Wrap(err, "failed to marshal client")
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			pipe.ZAdd(ctx, m.clientsByModifiedKey(), redis.Z{
				Score:  float64(rec.LastModifiedDate.UnixMicro()),
				Member: rec.ID,
			})
			return nil
		})
		return err
	}

	if err := m.watch(ctx, txf, key); err != nil {
		return nil, errors.Wrap(err, "failed to store client in Redis")
	}
	return rec.Clone(), nil
}

// watch runs txf in an optimistic transaction on keys,
// retrying when a concurrent writer modified them.
func (m *redisStore) watch(ctx context.Context, txf func(*redis.Tx) error, keys ...string) error {
	for i := 0; i < maxTxRetries; i++ {
		err := m.client.Watch(ctx, txf, keys...)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
		logger.ContextKV(ctx, xlog.DEBUG, "status", "tx_retry", "keys", keys, "attempt", i+1)
	}
	return errors.Errorf("transaction retries exceeded: %v", keys)
}

func (m *redisStore) GetLead(ctx context.Context, id int64) (*model.Lead, error) {
	l, err := getLead(ctx, m.client, m.leadKey(id))
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, leadNotFound(id)
	}
	return l, nil
}

func getLead(ctx context.Context, c getter, key string) (*model.Lead, error) {
	data, err := c.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to get lead from Redis")
	}
	var l model.Lead
	if err = json.Unmarshal(data, &l); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal lead")
	}
	return &l, nil
}

func (m *redisStore) FindLeadByContactNumber(ctx context.Context, contactNumber string) (*model.Lead, error) {
	members, err := m.client.ZRange(ctx, m.leadsByContactKey(contactNumber), 0, -1).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to find lead in Redis")
	}
	for _, member := range members {
		id, err := strconv.ParseInt(member, 10, 64)
		if err != nil {
			continue
		}
		l, err := getLead(ctx, m.client, m.leadKey(id))
		if err != nil {
			return nil, err
		}
		// the index may briefly point to a lead whose contact changed
		if l != nil && l.ContactNumber == contactNumber {
			return l, nil
		}
	}
	return nil, leadContactNotFound(contactNumber)
}

func (m *redisStore) ListLeadsByStatus(ctx context.Context, status string) ([]*model.Lead, error) {
	members, err := m.client.ZRange(ctx, m.leadsByStatusKey(status), 0, -1).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to list leads from Redis")
	}
	list := make([]*model.Lead, 0, len(members))
	for _, member := range members {
		id, err := strconv.ParseInt(member, 10, 64)
		if err != nil {
			continue
		}
		l, err := getLead(ctx, m.client, m.leadKey(id))
		if err != nil {
			return nil, err
		}
		if l != nil && l.Status == status {
			list = append(list, l)
		}
	}
	sortLeads(list)
	return list, nil
}

func (m *redisStore) UpsertLead(ctx context.Context, l *model.Lead) (*model.Lead, error) {
	if err := validateLead(l); err != nil {
		return nil, err
	}
	rec := l.Clone()
	key := m.leadKey(rec.ID)
	member := leadMember(rec.ID)

	data, err := json.Marshal(rec)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal lead")
	}

	txf := func(tx *redis.Tx) error {
		prev, err := getLead(ctx, tx, key)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if prev != nil && prev.ContactNumber != rec.ContactNumber {
				pipe.ZRem(ctx, m.leadsByContactKey(prev.ContactNumber), member)
			}
			if prev != nil && prev.Status != rec.Status {
				pipe.ZRem(ctx, m.leadsByStatusKey(prev.Status), member)
			}
			pipe.Set(ctx, key, data, 0)
			pipe.ZAdd(ctx, m.leadsByContactKey(rec.ContactNumber), redis.Z{Score: 0, Member: member})
			pipe.ZAdd(ctx, m.leadsByStatusKey(rec.Status), redis.Z{Score: 0, Member: member})
			return nil
		})
		return err
	}

	if err := m.watch(ctx, txf, key); err != nil {
		return nil, errors.Wrap(err, "failed to store lead in Redis")
	}
	return rec, nil
}

func (m *redisStore) Close() error {
	return m.client.Close()
}
