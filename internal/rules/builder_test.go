package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/marcfields/internal/core/domain"
	"github.com/custodia-labs/marcfields/internal/fields"
)

func TestSplitSpec(t *testing.T) {
	tests := []struct {
		spec string
		tag  string
		code string
	}{
		{"245a", "245", "a"},
		{"245ø", "245", "ø"},
		{"s11a", "s11", "a"},
		{"y08a", "y08", "a"},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			tag, code, err := SplitSpec(tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.tag, tag)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestSplitSpec_Malformed(t *testing.T) {
	for _, spec := range []string{"", "245", "245ab", "24 a", "245\n", "\xff45a"} {
		t.Run(spec, func(t *testing.T) {
			_, _, err := SplitSpec(spec)
			assert.ErrorIs(t, err, domain.ErrInvalidRuleSpec)
		})
	}
}

func TestBuilder_DirectFields(t *testing.T) {
	rs, err := NewBuilder().DirectFields("fmt", "245a", "245n", "100a").Build()
	require.NoError(t, err)

	fr, ok := rs.Format("fmt")
	require.True(t, ok)
	assert.Equal(t, []string{"100", "245"}, fr.Tags())

	rule, ok := fr.Tag("245")
	require.True(t, ok)
	sub, ok := rule.(SubfieldRules)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "n"}, sub.Codes())

	r, ok := sub.Code("n")
	require.True(t, ok)
	assert.Equal(t, DirectField("marc.245n"), r)
}

func TestBuilder_MalformedSpecifiersFailBuild(t *testing.T) {
	rs, err := NewBuilder().DirectFields("fmt", "245a", "24a", "100ab").Build()

	assert.Nil(t, rs)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidRuleSpec)
	assert.Contains(t, err.Error(), `"24a"`)
	assert.Contains(t, err.Error(), `"100ab"`)
}

func TestBuilder_BulkDoesNotOverrideTrigger(t *testing.T) {
	calls := 0
	rs, err := NewBuilder().
		Trigger("fmt", "s11", func(*fields.Accumulator) { calls++ }).
		DirectFields("fmt", "s11a").
		Build()
	require.NoError(t, err)

	fr, _ := rs.Format("fmt")
	rule, ok := fr.Tag("s11")
	require.True(t, ok)
	trigger, ok := rule.(Trigger)
	require.True(t, ok)
	trigger(fields.New())
	assert.Equal(t, 1, calls)
}

func TestBuilder_BulkDoesNotOverrideCallback(t *testing.T) {
	rs, err := NewBuilder().
		Callback("fmt", "001", "a", func(*fields.Accumulator, string) {}).
		DirectFields("fmt", "001a", "001b").
		Build()
	require.NoError(t, err)

	fr, _ := rs.Format("fmt")
	rule, _ := fr.Tag("001")
	sub := rule.(SubfieldRules)

	a, _ := sub.Code("a")
	assert.IsType(t, Callback(nil), a)
	b, _ := sub.Code("b")
	assert.Equal(t, DirectField("marc.001b"), b)
}

func TestBuilder_DuplicateHandWrittenRules(t *testing.T) {
	noop := func(*fields.Accumulator, string) {}

	tests := []struct {
		name string
		b    *Builder
	}{
		{"callback twice", NewBuilder().Callback("f", "001", "a", noop).Callback("f", "001", "a", noop)},
		{"field over callback", NewBuilder().Callback("f", "001", "a", noop).Field("f", "001", "a", "x.y")},
		{"trigger twice", NewBuilder().Trigger("f", "s11", nil).Trigger("f", "s11", nil)},
		{"trigger over subfields", NewBuilder().Field("f", "s11", "a", "x.y").Trigger("f", "s11", nil)},
		{"subfield on trigger", NewBuilder().Trigger("f", "s11", nil).Callback("f", "s11", "a", noop)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.b.Build()
			assert.ErrorIs(t, err, domain.ErrDuplicateRule)
		})
	}
}

func TestBuilder_InvalidTagAndCode(t *testing.T) {
	_, err := NewBuilder().Field("f", "24", "a", "x.y").Build()
	assert.ErrorIs(t, err, domain.ErrInvalidRuleSpec)

	_, err = NewBuilder().Field("f", "245", "ab", "x.y").Build()
	assert.ErrorIs(t, err, domain.ErrInvalidRuleSpec)

	_, err = NewBuilder().Trigger("f", "s 1", nil).Build()
	assert.ErrorIs(t, err, domain.ErrInvalidRuleSpec)
}

func TestBuilder_BuildIsIsolatedFromBuilder(t *testing.T) {
	b := NewBuilder().DirectFields("fmt", "245a")
	rs, err := b.Build()
	require.NoError(t, err)

	b.DirectFields("fmt", "245b", "100a")

	fr, _ := rs.Format("fmt")
	assert.Equal(t, []string{"245"}, fr.Tags())
	rule, _ := fr.Tag("245")
	assert.Equal(t, []string{"a"}, rule.(SubfieldRules).Codes())
}

func TestRuleSet_Formats(t *testing.T) {
	rs, err := NewBuilder().
		DirectFields("b", "245a").
		DirectFields("a", "100a").
		Build()
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, rs.Formats())

	_, ok := rs.Format("missing")
	assert.False(t, ok)

	var nilSet *RuleSet
	_, ok = nilSet.Format("a")
	assert.False(t, ok)
	assert.Nil(t, nilSet.Formats())
}
