package google

import (
	"fmt"
	"strings"
)

// toStrings normalises one row of cell values as returned by the Sheets API.
func toStrings(in []interface{}) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}

// valuesToRows converts a values matrix into string rows.
func valuesToRows(values [][]interface{}) [][]string {
	rows := make([][]string, len(values))
	for i, v := range values {
		rows[i] = toStrings(v)
	}
	return rows
}
