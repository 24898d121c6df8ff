package fields

import "time"

// TimestampLayout is the canonical form of an index timestamp.
const TimestampLayout = "2006-01-02T15:04:05Z"

// NormaliseTimestamp converts a MARC YYYYMMDD or YYYYMMDDhhmmss value to
// YYYY-MM-DDThh:mm:ssZ. It reports false for any other length, for non-digit
// input, for years before 1000 and for values that are not real calendar
// instants.
func NormaliseTimestamp(value string) (string, bool) {
	// A leading zero means a year below 1000, which has no four-digit form.
	if !isDigits(value) || value[0] == '0' {
		return "", false
	}

	var canonical string
	switch len(value) {
	case 8:
		canonical = value[0:4] + "-" + value[4:6] + "-" + value[6:8] + "T00:00:00Z"
	case 14:
		canonical = value[0:4] + "-" + value[4:6] + "-" + value[6:8] + "T" +
			value[8:10] + ":" + value[10:12] + ":" + value[12:14] + "Z"
	default:
		return "", false
	}

	// A value survives only if parsing and re-rendering gives the same text back.
	ts, err := time.ParseInLocation(TimestampLayout, canonical, time.UTC)
	if err != nil {
		return "", false
	}
	if ts.UTC().Format(TimestampLayout) != canonical {
		return "", false
	}
	return canonical, true
}

// AppendTimestamp appends the normalised form of value to field.
// Invalid values are dropped without error.
func (a *Accumulator) AppendTimestamp(field, value string) bool {
	ts, ok := NormaliseTimestamp(value)
	if !ok {
		return false
	}
	a.Append(field, ts)
	return true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
