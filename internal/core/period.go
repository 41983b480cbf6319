package core

import (
	"fmt"
	"time"
)

// WindowSize is the number of months offered for statistics.
const WindowSize = 12

// Period identifies one calendar month.
type Period struct {
	Month time.Month
	Year  int
}

func (p Period) MonthName() string { return p.Month.String() }

func (p Period) String() string { return fmt.Sprintf("%s %d", p.Month, p.Year) }

// Contains reports whether d falls inside the month.
func (p Period) Contains(d Date) bool {
	return d.Month() == p.Month && d.Year() == p.Year
}

// MonthWindow returns the WindowSize calendar months ending with the month of
// now, oldest first. Year boundaries roll over: February 2025 yields
// March 2024 through February 2025.
func MonthWindow(now time.Time) []Period {
	current := int(now.Month())
	year := now.Year()

	out := make([]Period, 0, WindowSize)
	for i := 0; i < WindowSize; i++ {
		m := floorMod(current-i-1, 12) + 1
		y := year
		if current-i <= 0 {
			y = year - 1
		}
		out = append(out, Period{Month: time.Month(m), Year: y})
	}
	// Collected newest first; present oldest first.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// FindPeriod looks up month/year in window.
func FindPeriod(window []Period, month time.Month, year int) (Period, bool) {
	for _, p := range window {
		if p.Month == month && p.Year == year {
			return p, true
		}
	}
	return Period{}, false
}

func floorMod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}
