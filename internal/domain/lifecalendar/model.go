package lifecalendar

import (
	"errors"
	"fmt"

	"wholenow/internal/domain/grid"
)

// Rendering and content bounds.
const (
	YearsPerRow      = 10
	MaxContentLength = 5000
)

// Domain errors
var (
	ErrBadYear        = errors.New("age year must be at least 1")
	ErrBeyondLifespan = errors.New("age year is beyond the expected lifespan")
	ErrContentTooLong = fmt.Errorf("cell content cannot exceed %d characters", MaxContentLength)
)

// ValidYear reports whether an age-year addresses a cell of a calendar
// bounded by the expected lifespan.
func ValidYear(year, lifespan int) error {
	if year < 1 {
		return ErrBadYear
	}
	if year > lifespan {
		return ErrBeyondLifespan
	}
	return nil
}

// PhaseFor classifies an age cell against the user's current age.
func PhaseFor(year, currentAge int) grid.Phase {
	switch {
	case year < currentAge:
		return grid.Past
	case year == currentAge:
		return grid.Current
	default:
		return grid.Future
	}
}

// Rows lays the age years 1..lifespan out in rows of ten for rendering.
// POST: every year appears exactly once, in order
func Rows(lifespan int) [][]int {
	if lifespan < 1 {
		return nil
	}
	rows := make([][]int, 0, (lifespan+YearsPerRow-1)/YearsPerRow)
	for start := 1; start <= lifespan; start += YearsPerRow {
		end := start + YearsPerRow
		if end > lifespan+1 {
			end = lifespan + 1
		}
		row := make([]int, 0, YearsPerRow)
		for y := start; y < end; y++ {
			row = append(row, y)
		}
		rows = append(rows, row)
	}
	return rows
}
