package sdk

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, body string) any {
	t.Helper()
	v, err := readBody(strings.NewReader(body))
	require.NoError(t, err)
	return v
}

func TestUnwrapList_Shapes(t *testing.T) {
	shapes := map[string]string{
		"nested": `{"success":true,"data":{"data":[{"id":1},{"id":2}],"total":2}}`,
		"data":   `{"data":[{"id":1},{"id":2}]}`,
		"bare":   `[{"id":1},{"id":2}]`,
	}
	for name, body := range shapes {
		t.Run(name, func(t *testing.T) {
			records := UnwrapList(decode(t, body))
			require.Len(t, records, 2)
			assert.Equal(t, "1", records[0].ID())
			assert.Equal(t, "2", records[1].ID())
		})
	}
}

func TestUnwrapList_NoList(t *testing.T) {
	records := UnwrapList(decode(t, `{"data":{"count":3}}`))
	assert.NotNil(t, records)
	assert.Empty(t, records)

	assert.Empty(t, UnwrapList(nil))
	assert.Len(t, UnwrapList(decode(t, `[{"id":1}, "junk", 3]`)), 1)
}

func TestUnwrapObject(t *testing.T) {
	obj := UnwrapObject(decode(t, `{"data":{"data":{"id":"x"}}}`))
	require.NotNil(t, obj)
	assert.Equal(t, "x", obj["id"])

	obj = UnwrapObject(decode(t, `{"id":"y"}`))
	require.NotNil(t, obj)
	assert.Equal(t, "y", obj["id"])

	assert.Nil(t, UnwrapObject(decode(t, `[1,2]`)))
}

func TestMessageOf(t *testing.T) {
	assert.Equal(t, "Invalid password", messageOf(decode(t, `{"message":"Invalid password"}`)))
	assert.Equal(t, "nope", messageOf(decode(t, `{"data":{"error":"nope"}}`)))
	assert.Equal(t, "", messageOf(decode(t, `{"message":"   "}`)))
	assert.Equal(t, "", messageOf(nil))
}

func TestReadBody(t *testing.T) {
	v, err := readBody(strings.NewReader("   "))
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = readBody(strings.NewReader("<html>"))
	assert.Error(t, err)
}
