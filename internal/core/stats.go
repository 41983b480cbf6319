package core

// HoursEntry is one key of an OrderedHours with its accumulated hours.
type HoursEntry struct {
	Key   string
	Hours float64
}

// OrderedHours accumulates hours per key and remembers the order in which
// keys were first seen. The zero value is ready to use.
type OrderedHours struct {
	entries []HoursEntry
	index   map[string]int
}

// Add sums h into key. Keys are compared exactly.
func (o *OrderedHours) Add(key string, h float64) {
	if o.index == nil {
		o.index = make(map[string]int)
	}
	if i, ok := o.index[key]; ok {
		o.entries[i].Hours += h
		return
	}
	o.index[key] = len(o.entries)
	o.entries = append(o.entries, HoursEntry{Key: key, Hours: h})
}

// Get returns the hours accumulated for key.
func (o OrderedHours) Get(key string) (float64, bool) {
	i, ok := o.index[key]
	if !ok {
		return 0, false
	}
	return o.entries[i].Hours, true
}

func (o OrderedHours) Len() int { return len(o.entries) }

// Entries returns a copy of the entries in first-seen order.
func (o OrderedHours) Entries() []HoursEntry {
	return append([]HoursEntry(nil), o.entries...)
}

func (o OrderedHours) Keys() []string {
	keys := make([]string, len(o.entries))
	for i, e := range o.entries {
		keys[i] = e.Key
	}
	return keys
}

// Sum adds every entry in order.
func (o OrderedHours) Sum() float64 {
	var total float64
	for _, e := range o.entries {
		total += e.Hours
	}
	return total
}

// Stats is the aggregation of a filtered record set.
type Stats struct {
	Period         Period
	ByType         OrderedHours
	ByCollaborator OrderedHours
	Total          float64
	Records        int
}

// Aggregate groups records by type and by collaborator and sums hours in
// encounter order. No rounding is applied here.
func Aggregate(records []TaskRecord) Stats {
	var s Stats
	for _, r := range records {
		s.ByType.Add(string(r.Type), r.Hours)
		s.ByCollaborator.Add(r.Name, r.Hours)
		s.Total += r.Hours
	}
	s.Records = len(records)
	return s
}
