package extractor

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/marcfields/internal/adapters/driven/marcxml"
	"github.com/custodia-labs/marcfields/internal/core/domain"
	"github.com/custodia-labs/marcfields/internal/fields"
	"github.com/custodia-labs/marcfields/internal/logger"
	"github.com/custodia-labs/marcfields/internal/rules"
)

// record wraps datafields in a marcx:record element.
func record(attrs string, datafields ...string) string {
	return `<marcx:record xmlns:marcx="info:lc/xmlns/marcxchange-v1"` + attrs + `>` +
		strings.Join(datafields, "") + `</marcx:record>`
}

// datafield renders a datafield with code/value pairs.
func datafield(tag string, codeValues ...string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<marcx:datafield tag="%s" ind1="0" ind2="0">`, tag)
	for i := 0; i+1 < len(codeValues); i += 2 {
		fmt.Fprintf(&b, `<marcx:subfield code="%s">%s</marcx:subfield>`, codeValues[i], codeValues[i+1])
	}
	b.WriteString(`</marcx:datafield>`)
	return b.String()
}

func parse(t *testing.T, content string) *domain.Node {
	t.Helper()
	root, err := marcxml.New().Parse([]byte(content))
	require.NoError(t, err)
	return root
}

func newExtractor(t *testing.T) *Extractor {
	t.Helper()
	rs, err := rules.NewDanMARC2()
	require.NoError(t, err)
	return New(rs)
}

func extract(t *testing.T, content string) domain.Fields {
	t.Helper()
	res, err := newExtractor(t).Extract(parse(t, content))
	require.NoError(t, err)
	return res.Fields
}

func TestExtract_DefaultCollectionIdentifier(t *testing.T) {
	fs := extract(t, record(""))

	assert.Equal(t, domain.Fields{
		{Name: domain.CollectionIdentifierField, Values: []string{"any"}},
	}, fs)
}

func TestExtract_CommonRecord(t *testing.T) {
	fs := extract(t, record(` format="danMARC2"`,
		datafield("001", "a", "12345678", "b", "870970", "c", "20210131120000", "d", "20020101"),
		datafield("245", "a", "Title", "ø", "Edition"),
	))

	assert.Equal(t, domain.Fields{
		{Name: domain.CollectionIdentifierField, Values: []string{"common"}},
		{Name: "marc.001a", Values: []string{"12345678"}},
		{Name: "marc.001b", Values: []string{"870970"}},
		{Name: "marc.001a001b", Values: []string{"12345678:870970"}},
		{Name: "marc.001c", Values: []string{"2021-01-31T12:00:00Z"}},
		{Name: "marc.001d", Values: []string{"2002-01-01T00:00:00Z"}},
		{Name: "marc.245a", Values: []string{"Title"}},
		{Name: "marc.245ø", Values: []string{"Edition"}},
	}, fs)
}

func TestExtract_RecordAgencyEitherOrder(t *testing.T) {
	agencyFirst := extract(t, record("", datafield("001", "b", "123456", "a", "x1")))

	assert.Equal(t, []string{"x1:123456"}, agencyFirst.Get("marc.001a001b"))
	assert.Equal(t, []string{"any"}, agencyFirst.Get(domain.CollectionIdentifierField))
}

func TestExtract_RecordAgencyNeedsBoth(t *testing.T) {
	fs := extract(t, record("", datafield("001", "a", "x1")))

	assert.Nil(t, fs.Get("marc.001a001b"))
}

func TestExtract_DBCCollection(t *testing.T) {
	tests := []struct {
		name string
		rec  string
		want string
	}{
		{
			"191919 with s11",
			record("", datafield("001", "b", "191919"), datafield("s11", "a", "x")),
			"dk.dbc",
		},
		{
			"191919 without s11",
			record("", datafield("001", "b", "191919")),
			"any",
		},
		{
			"s11 before agency",
			record("", datafield("s11", "a", "x"), datafield("001", "b", "191919")),
			"any",
		},
		{
			"s11 with other agency",
			record("", datafield("001", "b", "870970"), datafield("s11", "a", "x")),
			"common",
		},
		{
			"later common agency wins",
			record("",
				datafield("001", "b", "191919"),
				datafield("s11"),
				datafield("001", "b", "870970")),
			"common",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := extract(t, tt.rec)
			assert.Equal(t, []string{tt.want}, fs.Get(domain.CollectionIdentifierField))
		})
	}
}

func TestExtract_S11SubfieldsAreNotCopied(t *testing.T) {
	fs := extract(t, record("", datafield("s11", "a", "x")))

	assert.Nil(t, fs.Get("marc.s11a"))
}

func TestExtract_RepeatedSubfieldsKeepOrder(t *testing.T) {
	fs := extract(t, record("",
		datafield("245", "a", "first", "a", "second"),
		datafield("100", "a", "author"),
		datafield("245", "a", "third"),
	))

	assert.Equal(t, []string{"first", "second", "third"}, fs.Get("marc.245a"))
	assert.Equal(t,
		[]string{domain.CollectionIdentifierField, "marc.245a", "marc.100a"},
		fs.Names())
}

func TestExtract_UnmappedInputIgnored(t *testing.T) {
	fs := extract(t, record("",
		datafield("999", "a", "nothing"),
		datafield("245", "q", "unmapped code", "a", "Title"),
		`<marcx:leader>00000n    2200000   4500</marcx:leader>`,
		`<other:datafield xmlns:other="urn:other" tag="245"><other:subfield code="a">x</other:subfield></other:datafield>`,
		`<marcx:datafield tag="245"><marcx:subfield code="b">y</marcx:subfield>text<marcx:other code="a">z</marcx:other></marcx:datafield>`,
	))

	assert.Equal(t, domain.Fields{
		{Name: domain.CollectionIdentifierField, Values: []string{"any"}},
		{Name: "marc.245a", Values: []string{"Title"}},
	}, fs)
}

func TestExtract_InvalidDatesDropped(t *testing.T) {
	fs := extract(t, record("", datafield("001", "c", "20021301", "d", "2002121")))

	assert.Nil(t, fs.Get("marc.001c"))
	assert.Nil(t, fs.Get("marc.001d"))
}

func TestExtract_SubfieldTextIncludesNestedText(t *testing.T) {
	fs := extract(t, record("",
		`<marcx:datafield tag="245"><marcx:subfield code="a">Foo &amp; <![CDATA[Bar]]></marcx:subfield></marcx:datafield>`,
	))

	assert.Equal(t, []string{"Foo & Bar"}, fs.Get("marc.245a"))
}

func TestExtract_NotMarcxRecord(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"wrong namespace", `<record xmlns="urn:other"><datafield tag="001"/></record>`},
		{"no namespace", `<record format="danMARC2"/>`},
		{"wrong local name", `<marcx:collection xmlns:marcx="info:lc/xmlns/marcxchange-v1"/>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := newExtractor(t).Extract(parse(t, tt.content))
			assert.Nil(t, res)
			assert.ErrorIs(t, err, domain.ErrNotMarcxRecord)
		})
	}
}

func TestExtract_NilRoot(t *testing.T) {
	res, err := newExtractor(t).Extract(nil)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, domain.ErrNotMarcxRecord)
}

func TestExtract_UnsupportedFormat(t *testing.T) {
	for _, attrs := range []string{` format="MARC21"`, ` format=""`} {
		res, err := newExtractor(t).Extract(parse(t, record(attrs, datafield("001", "a", "x"))))
		assert.Nil(t, res)
		assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
	}
}

func TestExtract_ReportsFormat(t *testing.T) {
	res, err := newExtractor(t).Extract(parse(t, record("")))
	require.NoError(t, err)
	assert.Equal(t, "danMARC2", res.Format)
}

func TestExtract_CustomNamespace(t *testing.T) {
	rs, err := rules.NewDanMARC2()
	require.NoError(t, err)
	e := New(rs, WithNamespace("urn:marc"))

	res, err := e.Extract(parse(t,
		`<record xmlns="urn:marc"><datafield tag="245"><subfield code="a">T</subfield></datafield></record>`))
	require.NoError(t, err)
	assert.Equal(t, []string{"T"}, res.Fields.Get("marc.245a"))
}

func TestExtract_MalformedRulesWarnAndContinue(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	defer logger.SetOutput(os.Stderr)

	rs, err := rules.NewBuilder().
		Trigger("f", "s11", nil).
		Callback("f", "001", "a", nil).
		Field("f", "001", "b", "").
		Field("f", "245", "a", "marc.245a").
		Build()
	require.NoError(t, err)

	res, err := New(rs).Extract(parse(t, record(` format="f"`,
		datafield("s11", "a", "x"),
		datafield("001", "a", "1", "b", "2"),
		datafield("245", "a", "Title"),
	)))
	require.NoError(t, err)

	assert.Equal(t, []string{"Title"}, res.Fields.Get("marc.245a"))
	out := buf.String()
	assert.Contains(t, out, "[WARN] datafield: s11 format: f invalid rule: nil trigger")
	assert.Contains(t, out, "[WARN] datafield: 001a format: f invalid rule: nil callback")
	assert.Contains(t, out, "[WARN] datafield: 001b format: f invalid rule: empty field name")
}

func TestExtract_Idempotent(t *testing.T) {
	e := newExtractor(t)
	root := parse(t, record("",
		datafield("001", "a", "1", "b", "870970"),
		datafield("245", "a", "A", "a", "B"),
	))

	first, err := e.Extract(root)
	require.NoError(t, err)
	second, err := e.Extract(root)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestExtract_ConcurrentRecordsDoNotShareState(t *testing.T) {
	e := newExtractor(t)
	common := parse(t, record("", datafield("001", "a", "1", "b", "870970")))
	dbc := parse(t, record("", datafield("001", "a", "2", "b", "191919"), datafield("s11")))
	plain := parse(t, record("", datafield("245", "a", "T")))

	var wg sync.WaitGroup
	errs := make(chan string, 300)
	for i := 0; i < 100; i++ {
		wg.Add(3)
		check := func(root *domain.Node, want string) {
			defer wg.Done()
			res, err := e.Extract(root)
			if err != nil {
				errs <- err.Error()
				return
			}
			if got := res.Fields.Get(domain.CollectionIdentifierField); len(got) != 1 || got[0] != want {
				errs <- fmt.Sprintf("want %s, got %v", want, got)
			}
			if want == "any" && res.Fields.Get("marc.001a") != nil {
				errs <- "state leaked into plain record"
			}
		}
		go check(common, "common")
		go check(dbc, "dk.dbc")
		go check(plain, "any")
	}
	wg.Wait()
	close(errs)

	for msg := range errs {
		t.Error(msg)
	}
}

func TestAccumulate_ReturnsAccumulator(t *testing.T) {
	acc, format, err := newExtractor(t).Accumulate(parse(t, record("", datafield("001", "a", "1", "b", "2"))))
	require.NoError(t, err)

	assert.Equal(t, "danMARC2", format)
	assert.IsType(t, &fields.Accumulator{}, acc)
	v, ok := acc.State().RecordAgency()
	assert.True(t, ok)
	assert.Equal(t, "1:2", v)
}
