package sheets

import (
	"fmt"
	"strings"
	"time"

	"tasklog/internal/core"
)

// MinColumns is the shortest row that maps to a record; Recorded At may be
// missing.
const MinColumns = ColRecordedAt

// Column positions within a task row.
const (
	ColName = iota
	ColTask
	ColDate
	ColHours
	ColType
	ColRecordedAt
)

// RowFromRecord builds the cell values written for r. Hours stay numeric so
// the sheet can sum them.
func RowFromRecord(r core.TaskRecord) []any {
	recorded := ""
	if !r.RecordedAt.IsZero() {
		recorded = r.RecordedAt.Format(core.RecordedAtLayout)
	}
	return []any{r.Name, r.Task, r.DateText(), r.Hours, string(r.Type), recorded}
}

// RecordFromRow maps one stored row to a TaskRecord. The date is kept as raw
// text; it is validated when records are filtered. The Recorded At cell is
// informational and may be missing or blank.
func RecordFromRow(row []string) (core.TaskRecord, error) {
	if len(row) < MinColumns {
		return core.TaskRecord{}, fmt.Errorf("%w: want at least %d columns, got %d", ErrSchemaMismatch, MinColumns, len(row))
	}
	if strings.TrimSpace(row[ColName]) == "" {
		return core.TaskRecord{}, fmt.Errorf("%w: blank name", ErrSchemaMismatch)
	}
	if strings.TrimSpace(row[ColTask]) == "" {
		return core.TaskRecord{}, fmt.Errorf("%w: blank task", ErrSchemaMismatch)
	}
	hours, err := core.ParseHours(row[ColHours])
	if err != nil {
		return core.TaskRecord{}, fmt.Errorf("%w: %w", ErrSchemaMismatch, err)
	}
	typ := core.TaskType(row[ColType])
	if !typ.Valid() {
		return core.TaskRecord{}, fmt.Errorf("%w: unknown type %q", ErrSchemaMismatch, row[ColType])
	}
	r := core.TaskRecord{
		Name:    row[ColName],
		Task:    row[ColTask],
		RawDate: row[ColDate],
		Hours:   hours,
		Type:    typ,
	}
	if len(row) > ColRecordedAt && row[ColRecordedAt] != "" {
		if ts, err := time.ParseInLocation(core.RecordedAtLayout, row[ColRecordedAt], time.Local); err == nil {
			r.RecordedAt = ts
		}
	}
	return r, nil
}

// IsHeaderRow reports whether row looks like the header row.
func IsHeaderRow(row []string) bool {
	return len(row) > 0 && strings.EqualFold(strings.TrimSpace(row[0]), Headers[0])
}

// HeadersMatch reports whether row equals Headers exactly.
func HeadersMatch(row []string) bool {
	if len(row) != len(Headers) {
		return false
	}
	for i, h := range Headers {
		if strings.TrimSpace(row[i]) != h {
			return false
		}
	}
	return true
}

// IsBlankRow reports whether every cell is empty.
func IsBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// RecordsFromSheet converts a sheet dump whose first row is the header,
// whatever that row contains. Blank rows are skipped.
func RecordsFromSheet(rows [][]string) ([]core.TaskRecord, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	return recordsFrom(rows, 1)
}

// RecordsFromRows converts rows that may or may not start with a header, such
// as a CSV seed. A first row reading like the header is skipped, as are blank
// rows. The first unmappable row fails the whole read.
func RecordsFromRows(rows [][]string) ([]core.TaskRecord, error) {
	start := 0
	if len(rows) > 0 && IsHeaderRow(rows[0]) {
		start = 1
	}
	return recordsFrom(rows, start)
}

func recordsFrom(rows [][]string, start int) ([]core.TaskRecord, error) {
	out := make([]core.TaskRecord, 0, len(rows))
	for i := start; i < len(rows); i++ {
		row := rows[i]
		if IsBlankRow(row) {
			continue
		}
		r, err := RecordFromRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		out = append(out, r)
	}
	return out, nil
}
