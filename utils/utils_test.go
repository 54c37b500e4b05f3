package utils_test

import (
	"testing"

	"github.com/effective-security/finmcp/utils"
	"github.com/stretchr/testify/assert"
)

func Test_CleanJSON(t *testing.T) {
	input := "\n```json\n\n{\"clientId\": \"c-1\"}\n\n```\n\n"
	assert.Equal(t, "{\"clientId\": \"c-1\"}", string(utils.CleanJSON([]byte(input))))

	input = "Here you go:\n```json\n\n[{\"clientId\": \"c-1\"}]\n```\n\n"
	assert.Equal(t, "[{\"clientId\": \"c-1\"}]", string(utils.CleanJSON([]byte(input))))

	assert.Equal(t, "c-1", string(utils.CleanJSON([]byte("c-1"))))
}

func Test_IsJSONObject(t *testing.T) {
	assert.True(t, utils.IsJSONObject(" {\"a\":1}"))
	assert.False(t, utils.IsJSONObject("9876543210"))
	assert.False(t, utils.IsJSONObject(""))
}

func Test_BackticksJSON(t *testing.T) {
	assert.Equal(t, "\n```json\n{\"a\": 1}\n```\n", utils.BackticksJSON(" {\"a\": 1}\n"))
}

func Test_Encoders(t *testing.T) {
	v := map[string]string{"name": "finmcp"}
	assert.Equal(t, "{\n\t\"name\": \"finmcp\"\n}", utils.ToJSONIndent(v))
	assert.Equal(t, "name: finmcp\n", utils.ToYAML(v))
}
