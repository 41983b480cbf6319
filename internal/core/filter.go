package core

import "fmt"

// RecordError identifies the record and field that broke a filter pass.
type RecordError struct {
	Index int // zero-based position in the input
	Name  string
	Field string
	Value string
	Err   error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("record %d (%s): %s %q: %v", e.Index+1, e.Name, e.Field, e.Value, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }

// FilterByPeriod returns the records dated inside p, in input order. A record
// whose date does not parse aborts the whole pass with a *RecordError; nothing
// is skipped silently. An empty result is not an error.
func FilterByPeriod(records []TaskRecord, p Period) ([]TaskRecord, error) {
	var out []TaskRecord
	for i, r := range records {
		d, err := r.ParsedDate()
		if err != nil {
			return nil, &RecordError{Index: i, Name: r.Name, Field: "date", Value: r.DateText(), Err: err}
		}
		if p.Contains(d) {
			out = append(out, r)
		}
	}
	return out, nil
}
