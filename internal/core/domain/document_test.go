package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleFields() Fields {
	return Fields{
		{Name: CollectionIdentifierField, Values: []string{"common"}},
		{Name: "marc.245a", Values: []string{"B", "A"}},
		{Name: "marc.001a", Values: []string{"1"}},
	}
}

func TestFields_Get(t *testing.T) {
	fs := sampleFields()

	assert.Equal(t, []string{"B", "A"}, fs.Get("marc.245a"))
	assert.Nil(t, fs.Get("marc.missing"))
}

func TestFields_NamesAndLen(t *testing.T) {
	fs := sampleFields()

	assert.Equal(t, []string{CollectionIdentifierField, "marc.245a", "marc.001a"}, fs.Names())
	assert.Equal(t, 4, fs.Len())
	assert.Equal(t, 0, Fields(nil).Len())
}

func TestFields_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(sampleFields())
	require.NoError(t, err)

	assert.Equal(t,
		`{"rec.collectionIdentifier":["common"],"marc.245a":["B","A"],"marc.001a":["1"]}`,
		string(data))
}

func TestFields_MarshalJSON_NilValuesAndEscaping(t *testing.T) {
	data, err := json.Marshal(Fields{{Name: `a"b`}, {Name: "c", Values: []string{"ø"}}})
	require.NoError(t, err)

	assert.Equal(t, `{"a\"b":[],"c":["ø"]}`, string(data))
}

func TestFields_MarshalJSON_InStruct(t *testing.T) {
	data, err := json.Marshal(struct {
		Fields Fields `json:"fields"`
	}{Fields: Fields{{Name: "x.y", Values: []string{"1"}}}})
	require.NoError(t, err)

	assert.Equal(t, `{"fields":{"x.y":["1"]}}`, string(data))
}

func TestFieldSinkFunc(t *testing.T) {
	var got []string
	var sink FieldSink = FieldSinkFunc(func(name, value string) {
		got = append(got, name+"="+value)
	})

	sink.AddField("marc.001a", "1")

	assert.Equal(t, []string{"marc.001a=1"}, got)
}
