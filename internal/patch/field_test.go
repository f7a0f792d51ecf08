package patch

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  Field[string] `json:"name"`
	Count Field[int]    `json:"count"`
}

func TestField_ZeroValueIsAbsent(t *testing.T) {
	var f Field[string]

	assert.False(t, f.Present())
	assert.False(t, f.IsNull())
	_, ok := f.Get()
	assert.False(t, ok)
	assert.Nil(t, f.Ptr())
}

func TestField_Constructors(t *testing.T) {
	v := Value("A1")
	assert.True(t, v.Present())
	assert.False(t, v.IsNull())
	got, ok := v.Get()
	assert.True(t, ok)
	assert.Equal(t, "A1", got)
	require.NotNil(t, v.Ptr())
	assert.Equal(t, "A1", *v.Ptr())

	n := Null[string]()
	assert.True(t, n.Present())
	assert.True(t, n.IsNull())
	assert.Nil(t, n.Ptr())
}

func TestField_UnmarshalDistinguishesOmittedFromNull(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		namePresent bool
		nameNull    bool
		countSet    bool
	}{
		{name: "empty object", body: `{}`},
		{name: "explicit null", body: `{"name":null}`, namePresent: true, nameNull: true},
		{name: "value", body: `{"name":"x","count":3}`, namePresent: true, countSet: true},
		{name: "null with whitespace", body: `{"name": null }`, namePresent: true, nameNull: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s sample
			require.NoError(t, json.Unmarshal([]byte(tt.body), &s))

			assert.Equal(t, tt.namePresent, s.Name.Present())
			assert.Equal(t, tt.nameNull, s.Name.IsNull())
			_, ok := s.Count.Get()
			assert.Equal(t, tt.countSet, ok)
		})
	}
}

func TestField_UnmarshalTypeMismatch(t *testing.T) {
	var s sample
	err := json.Unmarshal([]byte(`{"count":"three"}`), &s)

	assert.Error(t, err)
}

func TestField_Marshal(t *testing.T) {
	b, err := json.Marshal(sample{Name: Value("x"), Count: Null[int]()})

	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"x","count":null}`, string(b))
}
