package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_RedisKeys(t *testing.T) {
	m := &redisStore{prefix: "p"}

	assert.Equal(t, "/p/finmcp/clients/C1", m.clientKey("C1"))
	assert.Equal(t, "/p/finmcp/clients/x%2F..%2FC1", m.clientKey("x/../C1"))
	assert.Equal(t, "/p/finmcp/clients/C1%252F", m.clientKey("C1%2F"))
	assert.Equal(t, "/p/finmcp/leads/5", m.leadKey(5))
	assert.Equal(t, "/p/finmcp/leads_by_contact/..%2Fleads%2F5", m.leadsByContactKey("../leads/5"))
	assert.Equal(t, "/p/finmcp/leads_by_status/new", m.leadsByStatusKey("new"))
	assert.Equal(t, "/p/finmcp/clients_by_modified", m.clientsByModifiedKey())

	keys := map[string]string{}
	for _, id := range []string{"C1", "x/../C1", "./C1", "C1/", "C1%2F", "C1 "} {
		key := m.clientKey(id)
		assert.NotContains(t, keys, key, "key of %q collides with %q", id, keys[key])
		keys[key] = id
	}
}
