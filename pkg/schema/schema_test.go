package schema_test

import (
	"reflect"
	"testing"

	"github.com/effective-security/finmcp/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lookup struct {
	ClientID string `json:"clientId" jsonschema:"title=Client ID,description=Identifier of the client"`
}

type address struct {
	City string `json:"city" jsonschema:"title=City"`
}

type profile struct {
	Name    string   `json:"name" jsonschema:"title=Name"`
	Nick    string   `json:"nick,omitempty" jsonschema:"title=Nick"`
	Address *address `json:"address,omitempty" jsonschema:"title=Address"`
}

func TestSchema(t *testing.T) {
	t.Parallel()

	t.Run("flat", func(t *testing.T) {
		t.Parallel()
		s, err := schema.New(reflect.TypeOf(lookup{}))
		require.NoError(t, err)
		exp := `{
	"properties": {
		"clientId": {
			"type": "string",
			"title": "Client ID",
			"description": "Identifier of the client"
		}
	},
	"type": "object",
	"required": [
		"clientId"
	]
}`
		assert.Equal(t, exp, s.String())
		assert.JSONEq(t, exp, string(s.JSON()))
	})

	t.Run("cached", func(t *testing.T) {
		t.Parallel()
		s1, err := schema.For[lookup]()
		require.NoError(t, err)
		s2, err := schema.New(reflect.TypeOf(&lookup{}))
		require.NoError(t, err)
		s3, err := schema.New(reflect.TypeOf(lookup{}))
		require.NoError(t, err)
		assert.Equal(t, s1.String(), s2.String())
		assert.Same(t, s1, s3)
	})

	t.Run("nested", func(t *testing.T) {
		t.Parallel()
		s, err := schema.For[profile]()
		require.NoError(t, err)
		assert.Equal(t, []string{"name"}, s.Parameters.Required)
		addr, ok := s.Parameters.Properties.Get("address")
		require.True(t, ok)
		assert.Equal(t, "object", addr.Type)
		_, ok = addr.Properties.Get("city")
		assert.True(t, ok)
	})

	t.Run("unsupported", func(t *testing.T) {
		t.Parallel()
		_, err := schema.New(reflect.TypeOf(""))
		assert.EqualError(t, err, "schema: unsupported kind string")
		_, err = schema.New(nil)
		assert.EqualError(t, err, "schema: nil type")
	})
}

func TestFromAny(t *testing.T) {
	s, err := schema.FromAny(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"query": map[string]any{"type": "string"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "object", s.Type)
	q, ok := s.Properties.Get("query")
	require.True(t, ok)
	assert.Equal(t, "string", q.Type)
}
