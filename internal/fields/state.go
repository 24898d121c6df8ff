package fields

// State remembers values seen earlier in a record that later rules correlate with.
type State struct {
	record    string
	agency    string
	hasRecord bool
	hasAgency bool
}

// SetRecord records the record number (001a).
func (s *State) SetRecord(v string) {
	s.record = v
	s.hasRecord = true
}

// Record returns the record number and whether one has been seen.
func (s *State) Record() (string, bool) {
	return s.record, s.hasRecord
}

// SetAgency records the agency id (001b).
func (s *State) SetAgency(v string) {
	s.agency = v
	s.hasAgency = true
}

// Agency returns the agency id and whether one has been seen.
func (s *State) Agency() (string, bool) {
	return s.agency, s.hasAgency
}

// RecordAgency returns "record:agency" once both halves are known.
func (s *State) RecordAgency() (string, bool) {
	if !s.hasRecord || !s.hasAgency {
		return "", false
	}
	return s.record + ":" + s.agency, true
}
