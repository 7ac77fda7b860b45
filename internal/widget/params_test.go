package widget

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseParamsJSONKeepsOrder(t *testing.T) {
	p, err := ParseParamsJSON([]byte(`{"z":"1","a":2,"m":true,"n":null,"z":"3"}`))
	require.NoError(t, err)
	assert.Equal(t, Params{
		{Key: "z", Value: "3"},
		{Key: "a", Value: "2"},
		{Key: "m", Value: "true"},
		{Key: "n", Value: ""},
	}, p)
}

func TestParseParamsJSONRejectsNonObjects(t *testing.T) {
	for _, raw := range []string{`[1,2]`, `"x"`, ``, `{"a":`} {
		_, err := ParseParamsJSON([]byte(raw))
		assert.Error(t, err, raw)
	}
}

func TestParamsMergeMap(t *testing.T) {
	p := Params{{Key: "b", Value: "old"}}
	p.MergeMap(map[string]string{"c": "3", "a": "1", "b": "2"})
	assert.Equal(t, Params{{Key: "b", Value: "2"}, {Key: "a", Value: "1"}, {Key: "c", Value: "3"}}, p)

	v, ok := p.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "1", v)
	_, ok = p.Get("missing")
	assert.False(t, ok)
}
