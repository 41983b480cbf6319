package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storedRecord(name, date string, hours float64, typ TaskType) TaskRecord {
	return TaskRecord{Name: name, Task: "work", RawDate: date, Hours: hours, Type: typ}
}

func scenarioRecords() []TaskRecord {
	return []TaskRecord{
		storedRecord("A", "15-03-2024", 2.5, Product),
		storedRecord("B", "15-03-2024", 1.0, Marketing),
		storedRecord("A", "20-04-2024", 3.0, Product),
	}
}

func TestFilterByPeriodScenario(t *testing.T) {
	records := scenarioRecords()

	got, err := FilterByPeriod(records, Period{Month: time.March, Year: 2024})
	require.NoError(t, err)
	assert.Equal(t, records[:2], got)

	got, err = FilterByPeriod(records, Period{Month: time.April, Year: 2024})
	require.NoError(t, err)
	assert.Equal(t, records[2:], got)
}

func TestFilterByPeriodMatchesYear(t *testing.T) {
	records := []TaskRecord{
		storedRecord("A", "01-03-2023", 1, Product),
		storedRecord("A", "31-03-2024", 1, Product),
	}
	got, err := FilterByPeriod(records, Period{Month: time.March, Year: 2024})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "31-03-2024", got[0].DateText())
}

func TestFilterByPeriodEmpty(t *testing.T) {
	got, err := FilterByPeriod(nil, Period{Month: time.March, Year: 2024})
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = FilterByPeriod(scenarioRecords(), Period{Month: time.May, Year: 2024})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFilterByPeriodInvalidDateIsFatal(t *testing.T) {
	records := scenarioRecords()
	records = append(records, storedRecord("C", "31-02-2024", 1, Product))

	got, err := FilterByPeriod(records, Period{Month: time.March, Year: 2024})
	require.Error(t, err)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrInvalidDate)

	var re *RecordError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, 3, re.Index)
	assert.Equal(t, "C", re.Name)
	assert.Equal(t, "date", re.Field)
	assert.Equal(t, "31-02-2024", re.Value)
	assert.Contains(t, err.Error(), "record 4 (C)")
}

func TestFilterByPeriodSubset(t *testing.T) {
	records := []TaskRecord{
		storedRecord("A", "01-01-2024", 1, Product),
		storedRecord("B", "31-01-2024", 2, Marketing),
		storedRecord("C", "01-02-2024", 3, Administrative),
		storedRecord("D", "15-01-2025", 4, Product),
		storedRecord("E", "15-01-2024", 5, Product),
	}
	p := Period{Month: time.January, Year: 2024}
	got, err := FilterByPeriod(records, p)
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B", "E"}, names(got))
	for _, r := range got {
		d, err := r.ParsedDate()
		require.NoError(t, err)
		assert.True(t, p.Contains(d))
	}
}

func names(records []TaskRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Name
	}
	return out
}
