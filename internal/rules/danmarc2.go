package rules

import (
	"sync"

	"github.com/custodia-labs/marcfields/internal/core/domain"
	"github.com/custodia-labs/marcfields/internal/fields"
	"github.com/custodia-labs/marcfields/internal/logger"
)

// DanMARC2 is the format name of danMARC2 records.
const DanMARC2 = domain.DefaultFormat

// Agency ids that decide a record's collection identifier.
const (
	CommonAgency = "870970"
	DBCAgency    = "191919"
)

// Collection identifiers derived from the agency.
const (
	CommonCollection = "common"
	DBCCollection    = "dk.dbc"
)

// DanMARC2Fields lists the danMARC2 subfields copied verbatim to "marc.<tag><code>".
var DanMARC2Fields = []string{
	"002a", "002b", "002c", "002x",
	"004a",
	"008a",
	"009a", "009g",
	"014a",
	"021a", "021e",
	"022a",
	"023a", "023b",
	"024a",
	"028a",
	"100a",
	"110a",
	"245a", "245g", "245n", "245ø",
	"250a",
	"260b",
	"300e",
	"538g",
	"652m",
	"y08a",
	"s11a",
}

// RegisterDanMARC2 adds the danMARC2 rules to b. Extra specifiers are mapped
// like DanMARC2Fields.
func RegisterDanMARC2(b *Builder, extra ...string) *Builder {
	b.Callback(DanMARC2, "001", "a", recordNumber).
		Callback(DanMARC2, "001", "b", agencyID).
		Callback(DanMARC2, "001", "c", timestamp("marc.001c")).
		Callback(DanMARC2, "001", "d", timestamp("marc.001d")).
		Trigger(DanMARC2, "s11", dbcCollection)

	b.DirectFields(DanMARC2, DanMARC2Fields...)
	return b.DirectFields(DanMARC2, extra...)
}

// NewDanMARC2 builds a RuleSet holding only the danMARC2 format.
func NewDanMARC2(extra ...string) (*RuleSet, error) {
	return RegisterDanMARC2(NewBuilder(), extra...).Build()
}

// Default returns the process-wide danMARC2 RuleSet. It is built on first use.
var Default = sync.OnceValues(func() (*RuleSet, error) {
	return NewDanMARC2()
})

func recordNumber(acc *fields.Accumulator, val string) {
	state := acc.State()
	state.SetRecord(val)
	acc.Append("marc.001a", val)
	if id, ok := state.RecordAgency(); ok {
		acc.Append("marc.001a001b", id)
	}
}

func agencyID(acc *fields.Accumulator, val string) {
	logger.Trace("001b %s", val)
	state := acc.State()
	state.SetAgency(val)
	if val == CommonAgency {
		acc.Set(domain.CollectionIdentifierField, CommonCollection)
	}
	acc.Append("marc.001b", val)
	if id, ok := state.RecordAgency(); ok {
		acc.Append("marc.001a001b", id)
	}
}

func timestamp(field string) Callback {
	return func(acc *fields.Accumulator, val string) {
		acc.AppendTimestamp(field, val)
	}
}

func dbcCollection(acc *fields.Accumulator) {
	if agency, ok := acc.State().Agency(); ok && agency == DBCAgency {
		acc.Set(domain.CollectionIdentifierField, DBCCollection)
	}
}
