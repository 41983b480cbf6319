package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateScenario(t *testing.T) {
	filtered, err := FilterByPeriod(scenarioRecords(), Period{Month: time.March, Year: 2024})
	require.NoError(t, err)

	s := Aggregate(filtered)
	assert.Equal(t, []HoursEntry{{"Product", 2.5}, {"Marketing", 1.0}}, s.ByType.Entries())
	assert.Equal(t, []HoursEntry{{"A", 2.5}, {"B", 1.0}}, s.ByCollaborator.Entries())
	assert.Equal(t, 3.5, s.Total)
	assert.Equal(t, 2, s.Records)
}

func TestAggregateEmpty(t *testing.T) {
	s := Aggregate(nil)
	assert.Equal(t, 0, s.ByType.Len())
	assert.Equal(t, 0, s.ByCollaborator.Len())
	assert.Zero(t, s.Total)
	assert.Empty(t, s.ByType.Entries())
}

func TestAggregateTotalsAgree(t *testing.T) {
	records := []TaskRecord{
		storedRecord("Anna", "01-06-2024", 0.1, Product),
		storedRecord("bo", "02-06-2024", 0.2, Marketing),
		storedRecord("Bo", "03-06-2024", 1.7, Administrative),
		storedRecord("Anna", "04-06-2024", 3.33, Marketing),
		storedRecord("Anna ", "05-06-2024", 0.01, Product),
	}
	s := Aggregate(records)

	assert.InDelta(t, s.Total, s.ByType.Sum(), 1e-9)
	assert.InDelta(t, s.Total, s.ByCollaborator.Sum(), 1e-9)
	// Keys are exact: no case folding, no trimming.
	assert.Equal(t, []string{"Anna", "bo", "Bo", "Anna "}, s.ByCollaborator.Keys())
	assert.Equal(t, []string{"Product", "Marketing", "Administrative"}, s.ByType.Keys())

	h, ok := s.ByCollaborator.Get("Anna")
	require.True(t, ok)
	assert.InDelta(t, 3.43, h, 1e-9)
	_, ok = s.ByCollaborator.Get("anna")
	assert.False(t, ok)
}

func TestAggregateIsIdempotent(t *testing.T) {
	records := scenarioRecords()
	assert.Equal(t, Aggregate(records), Aggregate(records))
}

func TestOrderedHoursZeroValue(t *testing.T) {
	var o OrderedHours
	_, ok := o.Get("x")
	assert.False(t, ok)
	o.Add("x", 1)
	o.Add("y", 2)
	o.Add("x", 0.5)
	assert.Equal(t, []HoursEntry{{"x", 1.5}, {"y", 2}}, o.Entries())

	entries := o.Entries()
	entries[0].Hours = 99
	h, _ := o.Get("x")
	assert.Equal(t, 1.5, h)
}
