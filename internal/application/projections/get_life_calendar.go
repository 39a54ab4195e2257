package projections

import (
	"context"
	"time"

	"wholenow/internal/domain/grid"
	"wholenow/internal/domain/lifecalendar"
	"wholenow/internal/domain/profile"
)

// LifeCalendarStore defines the store interface needed by the life calendar projection.
type LifeCalendarStore interface {
	LoadCells(ctx context.Context, userID string) (map[int]string, error)
}

// LifeCalendarProfileStore defines the profile store interface needed by the projection.
type LifeCalendarProfileStore interface {
	Get(ctx context.Context, userID string) (profile.Profile, error)
}

// GetLifeCalendarQuery carries input for the life calendar projection.
type GetLifeCalendarQuery struct {
	UserID string
}

// GetLifeCalendarDeps holds dependencies for the life calendar projection.
type GetLifeCalendarDeps struct {
	LifeStore    LifeCalendarStore
	ProfileStore LifeCalendarProfileStore
	Now          func() time.Time
}

// LifeCell is one age-year of the rendered calendar.
type LifeCell struct {
	Year    int
	Phase   grid.Phase
	Content string // markdown, verbatim
}

// LifeCalendarResult carries the output of the life calendar projection.
type LifeCalendarResult struct {
	HasBirthDate bool // without a birth date every cell is Future
	Age          int  // current age; 0 when no birth date is set
	Lifespan     int
	Rows         [][]LifeCell // rows of ten, last row possibly shorter
}

// QueryGetLifeCalendar assembles the life calendar view: one cell per age year
// up to the expected lifespan, laid out in rows of ten and classified against
// the user's current age.
func QueryGetLifeCalendar(ctx context.Context, query GetLifeCalendarQuery, deps GetLifeCalendarDeps) (LifeCalendarResult, error) {
	now := time.Now
	if deps.Now != nil {
		now = deps.Now
	}
	today := now()

	p, err := deps.ProfileStore.Get(ctx, query.UserID)
	if err != nil {
		return LifeCalendarResult{}, err
	}
	cells, err := deps.LifeStore.LoadCells(ctx, query.UserID)
	if err != nil {
		return LifeCalendarResult{}, err
	}

	age, hasAge := p.Age(today)
	result := LifeCalendarResult{
		HasBirthDate: hasAge,
		Age:          age,
		Lifespan:     p.Lifespan(),
	}

	for _, row := range lifecalendar.Rows(result.Lifespan) {
		cellsRow := make([]LifeCell, 0, len(row))
		for _, year := range row {
			phase := grid.Future
			if hasAge {
				phase = lifecalendar.PhaseFor(year, age)
			}
			cellsRow = append(cellsRow, LifeCell{
				Year:    year,
				Phase:   phase,
				Content: cells[year],
			})
		}
		result.Rows = append(result.Rows, cellsRow)
	}
	return result, nil
}
